// Package fontstats accumulates font usage across a document. The
// font pre-scan and per-page processing both write the same Stats
// value; processing is strictly sequential so no locking is needed.
package fontstats

import "sort"

// Font is one distinct font observed in the document.
type Font struct {
	Name  string
	Pages []int // 1-based pages the font appears on, ascending
}

// Stats is the shared font-statistics registry.
type Stats struct {
	order    []string
	fonts    map[string]*Font
	sizes    map[float64]struct{}
	warnings bool
}

func New() *Stats {
	return &Stats{
		fonts: make(map[string]*Font),
		sizes: make(map[float64]struct{}),
	}
}

// Record registers one font usage on a page. Empty font names and
// non-positive sizes are counted but flagged as warnings.
func (s *Stats) Record(name string, size float64, page int) {
	if name == "" || size <= 0 {
		s.warnings = true
	}
	if size > 0 {
		s.sizes[size] = struct{}{}
	}
	if name == "" {
		return
	}
	f, ok := s.fonts[name]
	if !ok {
		f = &Font{Name: name}
		s.fonts[name] = f
		s.order = append(s.order, name)
	}
	if n := len(f.Pages); n == 0 || f.Pages[n-1] != page {
		f.Pages = append(f.Pages, page)
	}
}

// SizeList returns the distinct font sizes seen, sorted descending.
func (s *Stats) SizeList() []float64 {
	out := make([]float64, 0, len(s.sizes))
	for size := range s.sizes {
		out = append(out, size)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

// List returns the fonts in first-seen order.
func (s *Stats) List() []Font {
	out := make([]Font, 0, len(s.order))
	for _, name := range s.order {
		f := s.fonts[name]
		pages := make([]int, len(f.Pages))
		copy(pages, f.Pages)
		sort.Ints(pages)
		out = append(out, Font{Name: f.Name, Pages: pages})
	}
	return out
}

// FoundWarnings reports whether any suspicious usage was recorded.
func (s *Stats) FoundWarnings() bool { return s.warnings }
