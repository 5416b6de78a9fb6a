// Package engine defines the document-engine contracts the extraction
// pipeline is written against. The pipeline never parses PDF bytes
// itself; it consumes these interfaces, implemented for real documents
// by engine/lpdf and by in-memory fakes in tests.
package engine

// Ref identifies an indirect object by number and generation.
type Ref struct {
	Num int
	Gen int
}

// Document is an opened document. Page numbers are 1-based, matching
// the engine side; callers converting from external 0-based indexes do
// so at the boundary.
type Document interface {
	// NumPages reports the page count.
	NumPages() int

	// Version reports the PDF header version.
	Version() (major, minor int)

	// Outline returns the root outline node, or nil when the document
	// has no outline.
	Outline() OutlineNode

	// Catalog exposes destination lookups.
	Catalog() Catalog

	// Page returns the given page, or nil when num is out of range.
	Page(num int) Page

	Close() error
}

// Page exposes the geometry and content of a single page.
type Page interface {
	// MediaHeight is the height of the page's media box.
	MediaHeight() float64

	// CropHeight is the height of the page's crop box, falling back to
	// the media box when no crop box is defined.
	CropHeight() float64

	// Text returns the page's text runs in content order.
	Text() ([]TextRun, error)

	// Links returns the page's link annotations.
	Links() ([]LinkAnnot, error)
}

// Catalog resolves named destinations and page references.
type Catalog interface {
	// FindDest looks up a named destination. Nil when the name does not
	// resolve.
	FindDest(name string) *Dest

	// FindPage maps a page object reference to its 1-based page number,
	// or 0 when the reference is not a page.
	FindPage(ref Ref) int
}

// OutlineNode is one bookmark node. Child access follows an explicit
// open/close scope: callers must Open before reading children and Close
// when done, on every path.
type OutlineNode interface {
	// Title returns the node's raw title text.
	Title() string

	// Action returns the node's link action, or nil when the node has
	// no actionable destination.
	Action() Action

	// Open prepares child traversal and returns the children in
	// document order.
	Open() []OutlineNode

	// Close releases the child scope opened by Open.
	Close()
}

// Dest is a resolved destination inside a document. Exactly one of
// PageRef and PageNum identifies the page: PageRef when the destination
// references a page object, PageNum (1-based) when it carries a page
// number directly.
type Dest struct {
	PageRef *Ref
	PageNum int

	Left, Top, Zoom          float64
	HasLeft, HasTop, HasZoom bool
}

// TextRun is one positioned run of text, in PDF user space.
type TextRun struct {
	Font     string
	FontSize float64
	X, Y, W  float64
	Text     string
}

// LinkAnnot is a link annotation on a page.
type LinkAnnot struct {
	// Rect is the annotation rectangle [llx lly urx ury] in PDF user
	// space.
	Rect [4]float64

	// Action triggers when the link is activated; nil for links without
	// a recognizable action.
	Action Action
}
