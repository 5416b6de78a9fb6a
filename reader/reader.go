// Package reader drives document processing. A Session owns one opened
// document plus the state shared across its pages (error tracker, font
// statistics, destination resolver) and streams the extraction result
// as a single EDN record.
package reader

import (
	"fmt"

	"github.com/swerling/pdftoedn/device"
	"github.com/swerling/pdftoedn/engine"
	"github.com/swerling/pdftoedn/engine/lpdf"
	"github.com/swerling/pdftoedn/errtrack"
	"github.com/swerling/pdftoedn/fontstats"
	"github.com/swerling/pdftoedn/observability"
	"github.com/swerling/pdftoedn/outline"
)

// Version is reported in the output's version map.
const Version = "1.0.0"

// OpenError reports a document that could not be opened. Diag carries
// the engine's diagnostic text.
type OpenError struct {
	Diag string
}

func (e *OpenError) Error() string {
	return "document open error: " + e.Diag
}

// RangeError reports a requested page index outside the document.
type RangeError struct {
	Requested int
	PageCount int
}

func (e *RangeError) Error() string {
	noun := "pages"
	if e.PageCount == 1 {
		noun = "page"
	}
	return fmt.Sprintf("requested page number %d is not valid (document has %d %s and value must be 0-indexed)",
		e.Requested, e.PageCount, noun)
}

// Session is a single document extraction run. Sessions are not safe
// for concurrent use; pages are processed in order against shared
// tracker and font state.
type Session struct {
	doc     engine.Document
	opts    Options
	log     observability.Logger
	tracker *errtrack.Tracker
	fonts   *fontstats.Stats
	res     *outline.Resolver
	dev     device.Device
	toc     []*outline.Entry
}

// Open opens the document named in opts and builds a session for it.
func Open(opts Options) (*Session, error) {
	opts.normalize()
	doc, err := lpdf.OpenWithLimits(opts.Filename, opts.OwnerPassword, opts.UserPassword, opts.Limits)
	if err != nil {
		return nil, &OpenError{Diag: err.Error()}
	}
	s, err := NewSession(doc, opts)
	if err != nil {
		doc.Close()
		return nil, err
	}
	return s, nil
}

// NewSession builds a session over an already opened document. The
// page selection is validated here; everything past this point treats
// an out-of-range page as a silent no-op.
func NewSession(doc engine.Document, opts Options) (*Session, error) {
	opts.normalize()
	if opts.PageNumber != AllPages {
		if n := doc.NumPages(); opts.PageNumber < 0 || opts.PageNumber >= n {
			return nil, &RangeError{Requested: opts.PageNumber, PageCount: n}
		}
	}
	s := &Session{
		doc:     doc,
		opts:    opts,
		log:     opts.Logger,
		tracker: errtrack.New(),
		fonts:   fontstats.New(),
	}
	s.res = outline.NewResolver(doc, opts.UseCropBox)

	if opts.LinksOnly {
		s.dev = device.NewLinkDevice(doc, s.res, s.tracker, opts.UseCropBox)
		return s, nil
	}
	if opts.ForceFontPreprocess {
		s.preScanFonts()
	}
	s.dev = device.NewTextDevice(doc, s.res, s.fonts, s.tracker, opts.UseCropBox)
	if !opts.OmitOutline {
		s.buildOutline()
	}
	return s, nil
}

// Close releases the underlying document.
func (s *Session) Close() error {
	return s.doc.Close()
}

// preScanFonts gathers font usage over the selected pages without
// producing output, so meta emitted ahead of the pages already has the
// full font picture.
func (s *Session) preScanFonts() {
	dev := device.NewFontDevice(s.doc, s.fonts, s.tracker)
	first, last := s.pageRange()
	for num := first; num <= last; num++ {
		dev.ProcessPage(num)
	}
}

func (s *Session) buildOutline() {
	root := s.doc.Outline()
	if root == nil {
		return
	}
	b := outline.NewBuilder(s.res, s.tracker, s.log, s.opts.Limits)
	s.toc = b.Build(root)
	s.log.Debug("outline built", observability.Int("entries", len(s.toc)))
}

// pageRange returns the selected pages as a 1-based inclusive range.
func (s *Session) pageRange() (first, last int) {
	if s.opts.PageNumber != AllPages {
		return s.opts.PageNumber + 1, s.opts.PageNumber + 1
	}
	return 1, s.doc.NumPages()
}
