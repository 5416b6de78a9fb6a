package reader

import (
	"runtime"

	"github.com/swerling/pdftoedn/edn"
	"github.com/swerling/pdftoedn/engine/lpdf"
	"github.com/swerling/pdftoedn/fontstats"
	"github.com/swerling/pdftoedn/outline"
)

// dataFormatVersion identifies the output layout. Bump on any change
// to key order or record shapes.
const dataFormatVersion = 1

// metaRecord renders the document metadata block. Key order is fixed;
// conditional keys are fully omitted rather than emitted empty. The
// outline key is always present, as an empty vector when the outline
// was skipped or the document has none; doc_fonts follows the debug
// flag alone and may be an empty vector.
func (s *Session) metaRecord() *edn.Hash {
	h := edn.NewHash(12)
	h.Push("data_format_version", dataFormatVersion)
	h.Push("filename", s.opts.Filename)
	// is_ok reports that the document opened; open failures never
	// reach meta emission. Recovered conditions go to errors below.
	h.Push("is_ok", true)
	h.Push("font_engine_ok", true)
	if s.fonts.FoundWarnings() {
		h.Push("found_font_warnings", true)
	}
	major, minor := s.doc.Version()
	h.Push("pdf_ver_major", major)
	h.Push("pdf_ver_minor", minor)
	h.Push("num_pages", s.doc.NumPages())
	h.Push("outline", outline.EntriesEDN(s.toc))
	if sizes := s.fonts.SizeList(); len(sizes) > 0 {
		v := edn.NewVector(len(sizes))
		for _, size := range sizes {
			v.Push(size)
		}
		h.Push("font_size_list", v)
	}
	if s.opts.IncludeDebugInfo {
		h.Push("doc_fonts", docFonts(s.fonts.List()))
	}
	h.Push("versions", versions())
	if s.tracker.ErrorsReported() {
		h.Push("errors", s.tracker.Report())
	}
	return h
}

func docFonts(fonts []fontstats.Font) *edn.Vector {
	v := edn.NewVector(len(fonts))
	for i, f := range fonts {
		fh := edn.NewHash(3)
		fh.Push("name", f.Name)
		fh.Push("font_idx", i)
		pages := edn.NewVector(len(f.Pages))
		for _, p := range f.Pages {
			pages.Push(p)
		}
		fh.Push("pages", pages)
		v.Push(fh)
	}
	return v
}

func versions() *edn.Hash {
	v := edn.NewHash(3)
	v.Push("pdftoedn", Version)
	v.Push("go", runtime.Version())
	v.Push("ledongthuc_pdf", lpdf.LibVersion)
	return v
}
