package outline

import (
	"github.com/swerling/pdftoedn/coords"
	"github.com/swerling/pdftoedn/edn"
	"github.com/swerling/pdftoedn/engine"
)

// Target is a resolved link target: a page in this document, an
// external file, a URI, or some combination (external file plus page).
type Target struct {
	// Page is the 1-based target page; 0 when the target has none.
	Page int

	// Dest holds the external filename or URI, verbatim.
	Dest string

	// Link is the positional metadata of the destination, in output
	// space (top-left origin). Nil when the destination carries none.
	Link *LinkMeta
}

// LinkMeta is the positional part of a destination.
type LinkMeta struct {
	Top, Left, Zoom          float64
	HasTop, HasLeft, HasZoom bool
}

// Resolver turns link actions into targets. The media-vs-crop box
// choice is fixed for the session.
type Resolver struct {
	doc        engine.Document
	useCropBox bool
}

func NewResolver(doc engine.Document, useCropBox bool) *Resolver {
	return &Resolver{doc: doc, useCropBox: useCropBox}
}

// Resolve produces the target for an action, or nil when the action
// yields no actionable destination. The match is total over the action
// variants; unknown kinds resolve to nothing and the caller decides
// whether that is worth a warning.
func (r *Resolver) Resolve(action engine.Action) *Target {
	switch a := action.(type) {
	case engine.GoToAction:
		dest := r.lookupDest(a.Dest, a.DestName)
		if dest == nil {
			return nil
		}
		t := &Target{}
		r.applyDest(dest, t)
		return t
	case engine.GoToFileAction:
		// The filename is recorded even when the destination inside the
		// remote file cannot be resolved.
		t := &Target{Dest: a.Filename}
		if dest := r.lookupDest(a.Dest, a.DestName); dest != nil {
			r.applyDest(dest, t)
		}
		return t
	case engine.URIAction:
		return &Target{Dest: a.URI}
	default:
		return nil
	}
}

// lookupDest prefers the action's explicit destination and falls back
// to a catalog lookup by name.
func (r *Resolver) lookupDest(explicit *engine.Dest, name string) *engine.Dest {
	if explicit != nil {
		return explicit
	}
	if name == "" {
		return nil
	}
	return r.doc.Catalog().FindDest(name)
}

// applyDest resolves the destination's page number and copies its
// positional metadata onto the target. Vertical coordinates are
// interpreted against the target page's media- or crop-box height.
func (r *Resolver) applyDest(dest *engine.Dest, t *Target) {
	page := dest.PageNum
	if dest.PageRef != nil {
		page = r.doc.Catalog().FindPage(*dest.PageRef)
	}
	t.Page = page

	if !dest.HasTop && !dest.HasLeft && !dest.HasZoom {
		return
	}
	meta := &LinkMeta{
		Top: dest.Top, HasTop: dest.HasTop,
		Left: dest.Left, HasLeft: dest.HasLeft,
		Zoom: dest.Zoom, HasZoom: dest.HasZoom,
	}
	if meta.HasTop {
		if h, ok := r.pageHeight(page); ok {
			meta.Top = coords.FlipY(meta.Top, h)
		}
	}
	t.Link = meta
}

// pageHeight reports the selected box height of a page in this
// document. External-file targets have no local page to measure.
func (r *Resolver) pageHeight(num int) (float64, bool) {
	if num < 1 || num > r.doc.NumPages() {
		return 0, false
	}
	p := r.doc.Page(num)
	if p == nil {
		return 0, false
	}
	if r.useCropBox {
		return p.CropHeight(), true
	}
	return p.MediaHeight(), true
}

// EDN renders the target's contribution to an entry or link record.
// Absent parts are omitted entirely.
func (t *Target) EDN(h *edn.Hash) {
	if t == nil {
		return
	}
	if t.Page > 0 {
		h.Push("page", t.Page)
	}
	if t.Dest != "" {
		h.Push("dest", t.Dest)
	}
	if t.Link != nil {
		link := edn.NewHash(3)
		if t.Link.HasTop {
			link.Push("top", t.Link.Top)
		}
		if t.Link.HasLeft {
			link.Push("left", t.Link.Left)
		}
		if t.Link.HasZoom {
			link.Push("zoom", t.Link.Zoom)
		}
		if link.Len() > 0 {
			h.Push("link", link)
		}
	}
}
