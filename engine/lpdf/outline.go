package lpdf

import (
	pdflib "github.com/ledongthuc/pdf"

	"github.com/swerling/pdftoedn/engine"
)

// maxSiblings bounds the First/Next sibling walk so a malformed Next
// cycle cannot loop forever.
const maxSiblings = 1 << 16

// Outline returns the root of the document outline, or nil when the
// document has none.
func (d *Document) Outline() engine.OutlineNode {
	root := d.r.Trailer().Key("Root").Key("Outlines")
	if root.Kind() != pdflib.Dict {
		return nil
	}
	return &outlineNode{d: d, v: root}
}

type outlineNode struct {
	d *Document
	v pdflib.Value
}

func (n *outlineNode) Title() string { return n.v.Key("Title").Text() }

func (n *outlineNode) Action() engine.Action {
	if a := n.v.Key("A"); a.Kind() == pdflib.Dict {
		return n.d.actionFromDict(a)
	}
	if dest, name := n.d.destParts(n.v.Key("Dest")); dest != nil || name != "" {
		return engine.GoToAction{Dest: dest, DestName: name}
	}
	return nil
}

func (n *outlineNode) Open() []engine.OutlineNode {
	var kids []engine.OutlineNode
	for item := n.v.Key("First"); item.Kind() == pdflib.Dict; item = item.Key("Next") {
		kids = append(kids, &outlineNode{d: n.d, v: item})
		if len(kids) >= maxSiblings {
			break
		}
	}
	return kids
}

func (n *outlineNode) Close() {}
