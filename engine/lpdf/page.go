package lpdf

import (
	"fmt"
	"math"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/swerling/pdftoedn/engine"
)

// Page returns the 1-based page num, or nil when out of range.
func (d *Document) Page(num int) engine.Page {
	if num < 1 || num > len(d.pages) {
		return nil
	}
	return &page{d: d, v: d.pages[num-1]}
}

type page struct {
	d *Document
	v pdflib.Value
}

func (p *page) MediaHeight() float64 {
	return rectHeight(p.inherited("MediaBox"))
}

func (p *page) CropHeight() float64 {
	if box := p.inherited("CropBox"); box.Kind() == pdflib.Array {
		return rectHeight(box)
	}
	return p.MediaHeight()
}

// inherited resolves a page attribute that may live on an ancestor
// Pages node. The Parent chain walk is depth-capped.
func (p *page) inherited(key string) pdflib.Value {
	node := p.v
	for depth := 0; node.Kind() == pdflib.Dict && depth < p.d.limits.MaxPageTreeDepth; depth++ {
		if box := node.Key(key); box.Kind() == pdflib.Array {
			return box
		}
		node = node.Key("Parent")
	}
	return pdflib.Value{}
}

func rectHeight(box pdflib.Value) float64 {
	if box.Kind() != pdflib.Array || box.Len() < 4 {
		return 0
	}
	return math.Abs(box.Index(3).Float64() - box.Index(1).Float64())
}

// Text extracts the positioned text runs of the page. The library's
// content stream interpreter panics on some malformed streams; the
// panic is converted to an error so a bad page does not abort the
// document.
func (p *page) Text() (runs []engine.TextRun, err error) {
	defer func() {
		if r := recover(); r != nil {
			runs = nil
			err = fmt.Errorf("content stream: %v", r)
		}
	}()
	content := pdflib.Page{V: p.v}.Content()
	runs = make([]engine.TextRun, 0, len(content.Text))
	for _, t := range content.Text {
		runs = append(runs, engine.TextRun{
			Font:     t.Font,
			FontSize: t.FontSize,
			X:        t.X,
			Y:        t.Y,
			W:        t.W,
			Text:     t.S,
		})
	}
	return runs, nil
}

// Links returns the page's link annotations in annotation array order.
func (p *page) Links() ([]engine.LinkAnnot, error) {
	annots := p.v.Key("Annots")
	if annots.Kind() != pdflib.Array {
		return nil, nil
	}
	var out []engine.LinkAnnot
	for i := 0; i < annots.Len(); i++ {
		a := annots.Index(i)
		if a.Kind() != pdflib.Dict || a.Key("Subtype").Name() != "Link" {
			continue
		}
		la := engine.LinkAnnot{Rect: rectFromValue(a.Key("Rect"))}
		if act := a.Key("A"); act.Kind() == pdflib.Dict {
			la.Action = p.d.actionFromDict(act)
		} else if dest, name := p.d.destParts(a.Key("Dest")); dest != nil || name != "" {
			la.Action = engine.GoToAction{Dest: dest, DestName: name}
		}
		out = append(out, la)
	}
	return out, nil
}

func rectFromValue(v pdflib.Value) [4]float64 {
	var rect [4]float64
	if v.Kind() != pdflib.Array || v.Len() < 4 {
		return rect
	}
	for i := 0; i < 4; i++ {
		rect[i] = v.Index(i).Float64()
	}
	return rect
}
