// Package lpdf implements the engine contracts on top of
// github.com/ledongthuc/pdf. The library resolves indirect references
// transparently through its Value API; where a raw object reference is
// needed (mapping destination page objects to page numbers), the
// reference is recovered from the library's stable textual formatting
// of unresolved array members ("N G R").
package lpdf

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/swerling/pdftoedn/engine"
)

// LibVersion is the version of the underlying read engine, reported in
// the output's library version map.
const LibVersion = "v0.0.0-20250511090121-5959a4027728"

// Document is an opened PDF.
type Document struct {
	f        io.Closer
	r        *pdflib.Reader
	major    int
	minor    int
	limits   engine.Limits
	pages    []pdflib.Value
	pageRefs map[engine.Ref]int
}

// Open opens the document at path. Empty passwords mean "no password";
// when the document is encrypted the user password is tried first,
// then the owner password.
func Open(path, ownerPassword, userPassword string) (*Document, error) {
	return OpenWithLimits(path, ownerPassword, userPassword, engine.DefaultLimits())
}

// OpenWithLimits opens the document at path with explicit traversal
// bounds.
func OpenWithLimits(path, ownerPassword, userPassword string, limits engine.Limits) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	d, err := NewDocumentWithLimits(f, fi.Size(), ownerPassword, userPassword, limits)
	if err != nil {
		f.Close()
		return nil, err
	}
	d.f = f
	return d, nil
}

// NewDocument opens a document from an in-memory or file-backed
// reader.
func NewDocument(r io.ReaderAt, size int64, ownerPassword, userPassword string) (*Document, error) {
	return NewDocumentWithLimits(r, size, ownerPassword, userPassword, engine.DefaultLimits())
}

// NewDocumentWithLimits opens a document with explicit traversal
// bounds.
func NewDocumentWithLimits(r io.ReaderAt, size int64, ownerPassword, userPassword string, limits engine.Limits) (*Document, error) {
	rd, err := pdflib.NewReaderEncrypted(r, size, passwordFunc(ownerPassword, userPassword))
	if err != nil {
		return nil, err
	}
	d := &Document{
		r:        rd,
		limits:   limits,
		pageRefs: make(map[engine.Ref]int),
	}
	d.major, d.minor = headerVersion(r)
	d.collectPages()
	return d, nil
}

func (d *Document) NumPages() int       { return len(d.pages) }
func (d *Document) Version() (int, int) { return d.major, d.minor }

func (d *Document) Catalog() engine.Catalog { return catalog{d} }

func (d *Document) Close() error {
	if d.f != nil {
		return d.f.Close()
	}
	return nil
}

// passwordFunc yields each configured password once: user first, then
// owner, matching how readers usually hold the weaker credential.
func passwordFunc(owner, user string) func() string {
	var tries []string
	if user != "" {
		tries = append(tries, user)
	}
	if owner != "" {
		tries = append(tries, owner)
	}
	i := 0
	return func() string {
		if i >= len(tries) {
			return ""
		}
		pw := tries[i]
		i++
		return pw
	}
}

// headerVersion reads the %PDF-M.N header. The library validates the
// header on open, so failures here only zero the reported version.
func headerVersion(r io.ReaderAt) (int, int) {
	buf := make([]byte, 16)
	n, _ := r.ReadAt(buf, 0)
	s := string(buf[:n])
	if !strings.HasPrefix(s, "%PDF-") {
		return 0, 0
	}
	var major, minor int
	if _, err := fmt.Sscanf(s[len("%PDF-"):], "%d.%d", &major, &minor); err != nil {
		return 0, 0
	}
	return major, minor
}

// collectPages flattens the page tree in document order, recording the
// object reference of each page so destinations referencing page
// objects can be mapped back to page numbers.
func (d *Document) collectPages() {
	root := d.r.Trailer().Key("Root").Key("Pages")
	d.walkPageTree(root, 0)
	if len(d.pages) > 0 {
		return
	}
	// Malformed tree; fall back to the library's own page walk. Page
	// refs stay unmapped, which only disables page-ref destination
	// resolution.
	for i := 1; i <= d.r.NumPage(); i++ {
		if pg := d.r.Page(i); !pg.V.IsNull() {
			d.pages = append(d.pages, pg.V)
		}
	}
}

func (d *Document) walkPageTree(node pdflib.Value, depth int) {
	if depth >= d.limits.MaxPageTreeDepth || node.Kind() != pdflib.Dict {
		return
	}
	kids := node.Key("Kids")
	if kids.Kind() != pdflib.Array {
		return
	}
	refs := refsFromArray(kids)
	for i := 0; i < kids.Len(); i++ {
		kid := kids.Index(i)
		if kid.Kind() != pdflib.Dict {
			continue
		}
		switch kid.Key("Type").Name() {
		case "Pages":
			d.walkPageTree(kid, depth+1)
		case "Page":
			d.pages = append(d.pages, kid)
			if refs != nil {
				d.pageRefs[refs[i]] = len(d.pages)
			}
		}
	}
}

// refsFromArray recovers the object references held by an array whose
// members are all indirect references. The library formats unresolved
// members as "N G R"; anything else disqualifies the array and nil is
// returned.
func refsFromArray(arr pdflib.Value) []engine.Ref {
	s := strings.TrimSuffix(strings.TrimPrefix(arr.String(), "["), "]")
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields)%3 != 0 || len(fields)/3 != arr.Len() {
		return nil
	}
	refs := make([]engine.Ref, 0, arr.Len())
	for i := 0; i < len(fields); i += 3 {
		num, err1 := strconv.Atoi(fields[i])
		gen, err2 := strconv.Atoi(fields[i+1])
		if err1 != nil || err2 != nil || fields[i+2] != "R" {
			return nil
		}
		refs = append(refs, engine.Ref{Num: num, Gen: gen})
	}
	return refs
}

type catalog struct{ d *Document }

func (c catalog) FindPage(ref engine.Ref) int {
	return c.d.pageRefs[ref]
}

func (c catalog) FindDest(name string) *engine.Dest {
	root := c.d.r.Trailer().Key("Root")
	if dests := root.Key("Dests"); dests.Kind() == pdflib.Dict {
		if v := dests.Key(name); !v.IsNull() {
			return c.d.destFromValue(v)
		}
	}
	if tree := root.Key("Names").Key("Dests"); tree.Kind() == pdflib.Dict {
		if v := c.d.lookupNameTree(tree, name, 0); !v.IsNull() {
			return c.d.destFromValue(v)
		}
	}
	return nil
}

// lookupNameTree scans a name tree for key. Limits-based pruning is
// skipped: trees seen in practice are small and a full scan stays
// within the depth cap.
func (d *Document) lookupNameTree(node pdflib.Value, key string, depth int) pdflib.Value {
	if depth >= d.limits.MaxNameTreeDepth || node.Kind() != pdflib.Dict {
		return pdflib.Value{}
	}
	names := node.Key("Names")
	for i := 0; i+1 < names.Len(); i += 2 {
		if names.Index(i).Text() == key {
			return names.Index(i + 1)
		}
	}
	kids := node.Key("Kids")
	for i := 0; i < kids.Len(); i++ {
		if v := d.lookupNameTree(kids.Index(i), key, depth+1); !v.IsNull() {
			return v
		}
	}
	return pdflib.Value{}
}
