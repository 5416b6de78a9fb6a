// Package device runs single pages through content extraction and
// produces their output records. Three devices exist: TextDevice for
// the default full extraction, LinkDevice for links-only mode, and
// FontDevice for the output-free font pre-scan.
package device

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/swerling/pdftoedn/coords"
	"github.com/swerling/pdftoedn/edn"
	"github.com/swerling/pdftoedn/engine"
	"github.com/swerling/pdftoedn/errtrack"
	"github.com/swerling/pdftoedn/fontstats"
	"github.com/swerling/pdftoedn/outline"
)

const module = "device"

// Device processes one page, identified by its 1-based number, and
// returns the page's record, or nil when the page produced no output.
type Device interface {
	ProcessPage(num int) *PageRecord
}

// PageRecord is the serialized result of one processed page.
// Coordinates are in output space (top-left origin).
type PageRecord struct {
	Number int // 1-based
	Height float64
	Text   []Span
	Links  []Link

	// Errors holds the conditions captured while this page was
	// processed; the emitter fills it from the tracker's page window.
	Errors []errtrack.Entry
}

// Span is one positioned text run.
type Span struct {
	X, Y, Width float64
	Font        string
	Size        float64
	Text        string
}

// Link is one link annotation with its resolved target, if any.
type Link struct {
	// Rect is [x0 y0 x1 y1] with y measured from the page top.
	Rect   [4]float64
	Target *outline.Target
}

// EDN renders the record. Empty sections are omitted.
func (r *PageRecord) EDN() *edn.Hash {
	h := edn.NewHash(5)
	h.Push("number", r.Number)
	h.Push("height", r.Height)
	if len(r.Text) > 0 {
		spans := edn.NewVector(len(r.Text))
		for _, s := range r.Text {
			sh := edn.NewHash(6)
			sh.Push("x", s.X)
			sh.Push("y", s.Y)
			sh.Push("width", s.Width)
			sh.Push("font", s.Font)
			sh.Push("size", s.Size)
			sh.Push("text", s.Text)
			spans.Push(sh)
		}
		h.Push("text", spans)
	}
	if len(r.Links) > 0 {
		links := edn.NewVector(len(r.Links))
		for _, l := range r.Links {
			lh := edn.NewHash(4)
			rect := edn.NewVector(4)
			for _, v := range l.Rect {
				rect.Push(v)
			}
			lh.Push("rect", rect)
			l.Target.EDN(lh)
			links.Push(lh)
		}
		h.Push("links", links)
	}
	if len(r.Errors) > 0 {
		h.Push("errors", errtrack.Report(r.Errors))
	}
	return h
}

// TextDevice extracts text runs and link annotations and feeds font
// statistics.
type TextDevice struct {
	doc        engine.Document
	res        *outline.Resolver
	fonts      *fontstats.Stats
	tracker    *errtrack.Tracker
	useCropBox bool
}

func NewTextDevice(doc engine.Document, res *outline.Resolver, fonts *fontstats.Stats, tracker *errtrack.Tracker, useCropBox bool) *TextDevice {
	return &TextDevice{doc: doc, res: res, fonts: fonts, tracker: tracker, useCropBox: useCropBox}
}

func (d *TextDevice) ProcessPage(num int) *PageRecord {
	page := d.doc.Page(num)
	if page == nil {
		return nil
	}
	h := pageHeight(page, d.useCropBox)
	rec := &PageRecord{Number: num, Height: h}

	runs, err := page.Text()
	if err != nil {
		d.tracker.Error(errtrack.CodePageProcessing, module,
			fmt.Sprintf("page %d: %v", num, err))
	}
	flip := coords.PageFlip(h)
	for _, run := range runs {
		d.fonts.Record(run.Font, run.FontSize, num)
		pos := flip.Transform(coords.Point{X: run.X, Y: run.Y})
		rec.Text = append(rec.Text, Span{
			X:     pos.X,
			Y:     pos.Y,
			Width: run.W,
			Font:  run.Font,
			Size:  run.FontSize,
			Text:  norm.NFC.String(run.Text),
		})
	}

	rec.Links = extractLinks(page, num, h, d.res, d.tracker)
	return rec
}

// LinkDevice extracts only link annotations, ignoring text and
// graphics.
type LinkDevice struct {
	doc        engine.Document
	res        *outline.Resolver
	tracker    *errtrack.Tracker
	useCropBox bool
}

func NewLinkDevice(doc engine.Document, res *outline.Resolver, tracker *errtrack.Tracker, useCropBox bool) *LinkDevice {
	return &LinkDevice{doc: doc, res: res, tracker: tracker, useCropBox: useCropBox}
}

func (d *LinkDevice) ProcessPage(num int) *PageRecord {
	page := d.doc.Page(num)
	if page == nil {
		return nil
	}
	h := pageHeight(page, d.useCropBox)
	rec := &PageRecord{Number: num, Height: h}
	rec.Links = extractLinks(page, num, h, d.res, d.tracker)
	return rec
}

// FontDevice walks a page's text only to register font usage. It never
// produces a record; it exists for the side effect on shared font
// statistics.
type FontDevice struct {
	doc     engine.Document
	fonts   *fontstats.Stats
	tracker *errtrack.Tracker
}

func NewFontDevice(doc engine.Document, fonts *fontstats.Stats, tracker *errtrack.Tracker) *FontDevice {
	return &FontDevice{doc: doc, fonts: fonts, tracker: tracker}
}

func (d *FontDevice) ProcessPage(num int) *PageRecord {
	page := d.doc.Page(num)
	if page == nil {
		return nil
	}
	runs, err := page.Text()
	if err != nil {
		d.tracker.Error(errtrack.CodePageProcessing, module,
			fmt.Sprintf("font pre-scan page %d: %v", num, err))
	}
	for _, run := range runs {
		d.fonts.Record(run.Font, run.FontSize, num)
	}
	return nil
}

func pageHeight(p engine.Page, useCropBox bool) float64 {
	if useCropBox {
		return p.CropHeight()
	}
	return p.MediaHeight()
}

func extractLinks(page engine.Page, num int, h float64, res *outline.Resolver, tracker *errtrack.Tracker) []Link {
	annots, err := page.Links()
	if err != nil {
		tracker.Error(errtrack.CodePageProcessing, module,
			fmt.Sprintf("page %d links: %v", num, err))
		return nil
	}
	links := make([]Link, 0, len(annots))
	for _, a := range annots {
		l := Link{Rect: [4]float64{
			a.Rect[0], coords.FlipY(a.Rect[3], h),
			a.Rect[2], coords.FlipY(a.Rect[1], h),
		}}
		if a.Action != nil {
			if unknown, ok := a.Action.(engine.UnknownAction); ok {
				tracker.Warn(errtrack.CodeUnhandledLinkAction, module,
					fmt.Sprintf("link action kind: %s", unknown.Kind))
			} else {
				l.Target = res.Resolve(a.Action)
			}
		}
		links = append(links, l)
	}
	return links
}
