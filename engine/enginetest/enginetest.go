// Package enginetest provides in-memory engine implementations for
// tests.
package enginetest

import "github.com/swerling/pdftoedn/engine"

// Doc is a fake engine.Document.
type Doc struct {
	PageList   []*Page
	Major      int
	Minor      int
	Root       *Node
	NamedDests map[string]*engine.Dest
	PageRefs   map[engine.Ref]int
	Closed     bool
}

func (d *Doc) NumPages() int           { return len(d.PageList) }
func (d *Doc) Version() (int, int)     { return d.Major, d.Minor }
func (d *Doc) Catalog() engine.Catalog { return catalog{d} }
func (d *Doc) Close() error            { d.Closed = true; return nil }

func (d *Doc) Outline() engine.OutlineNode {
	if d.Root == nil {
		return nil
	}
	return d.Root
}

func (d *Doc) Page(num int) engine.Page {
	if num < 1 || num > len(d.PageList) {
		return nil
	}
	return d.PageList[num-1]
}

type catalog struct{ d *Doc }

func (c catalog) FindDest(name string) *engine.Dest {
	return c.d.NamedDests[name]
}

func (c catalog) FindPage(ref engine.Ref) int {
	return c.d.PageRefs[ref]
}

// Page is a fake engine.Page.
type Page struct {
	MediaH, CropH float64
	Runs          []engine.TextRun
	Annots        []engine.LinkAnnot
	TextErr       error
	LinksErr      error
}

func (p *Page) MediaHeight() float64 { return p.MediaH }

func (p *Page) CropHeight() float64 {
	if p.CropH != 0 {
		return p.CropH
	}
	return p.MediaH
}

func (p *Page) Text() ([]engine.TextRun, error) {
	return p.Runs, p.TextErr
}

func (p *Page) Links() ([]engine.LinkAnnot, error) {
	return p.Annots, p.LinksErr
}

// Node is a fake engine.OutlineNode that counts open/close calls so
// tests can assert the child-access scope is honored.
type Node struct {
	NodeTitle  string
	NodeAction engine.Action
	Kids       []*Node

	Opens  int
	Closes int
}

func (n *Node) Title() string         { return n.NodeTitle }
func (n *Node) Action() engine.Action { return n.NodeAction }

func (n *Node) Open() []engine.OutlineNode {
	n.Opens++
	out := make([]engine.OutlineNode, len(n.Kids))
	for i, k := range n.Kids {
		out[i] = k
	}
	return out
}

func (n *Node) Close() { n.Closes++ }
