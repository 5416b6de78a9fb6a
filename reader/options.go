package reader

import (
	"github.com/swerling/pdftoedn/engine"
	"github.com/swerling/pdftoedn/observability"
)

// AllPages selects every page of the document.
const AllPages = -1

// Options configure a read session.
type Options struct {
	Filename string

	// Passwords for encrypted documents. Empty means none; the user
	// password is tried before the owner password.
	OwnerPassword string
	UserPassword  string

	// PageNumber selects a single 0-based page, or AllPages.
	PageNumber int

	// OmitOutline skips outline extraction; the meta outline is then
	// an empty vector.
	OmitOutline bool

	// LinksOnly restricts page records to link annotations. No text
	// is extracted and the outline is never built.
	LinksOnly bool

	// ForceFontPreprocess runs a font-gathering pass over the selected
	// pages before any output is produced, so the meta font lists
	// cover pages that have not been emitted yet.
	ForceFontPreprocess bool

	// UseCropBox interprets destination coordinates against the crop
	// box height instead of the media box height.
	UseCropBox bool

	// IncludeDebugInfo adds the per-document font table to meta.
	IncludeDebugInfo bool

	Logger observability.Logger
	Limits engine.Limits
}

// DefaultOptions returns options that process every page of filename
// with full extraction.
func DefaultOptions(filename string) Options {
	return Options{
		Filename:   filename,
		PageNumber: AllPages,
		Logger:     observability.NopLogger{},
		Limits:     engine.DefaultLimits(),
	}
}

// normalize fills zero-valued fields that have non-zero defaults.
func (o *Options) normalize() {
	if o.Logger == nil {
		o.Logger = observability.NopLogger{}
	}
	if o.Limits == (engine.Limits{}) {
		o.Limits = engine.DefaultLimits()
	}
}
