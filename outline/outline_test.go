package outline

import (
	"strings"
	"testing"

	"github.com/swerling/pdftoedn/edn"
	"github.com/swerling/pdftoedn/engine"
	"github.com/swerling/pdftoedn/engine/enginetest"
	"github.com/swerling/pdftoedn/errtrack"
	"github.com/swerling/pdftoedn/observability"
)

func ref(num, gen int) *engine.Ref { return &engine.Ref{Num: num, Gen: gen} }

func testDoc() *enginetest.Doc {
	return &enginetest.Doc{
		PageList: []*enginetest.Page{
			{MediaH: 792, CropH: 700},
			{MediaH: 792},
			{MediaH: 842},
		},
		NamedDests: map[string]*engine.Dest{
			"chapter2": {PageNum: 2, Top: 650, HasTop: true},
		},
		PageRefs: map[engine.Ref]int{
			{Num: 5, Gen: 0}: 3,
		},
	}
}

func newBuilder(doc engine.Document, tracker *errtrack.Tracker, cropBox bool) *Builder {
	return NewBuilder(NewResolver(doc, cropBox), tracker, observability.NopLogger{}, engine.DefaultLimits())
}

func TestBuildPreservesOrderAndTrimsTitles(t *testing.T) {
	root := &enginetest.Node{Kids: []*enginetest.Node{
		{NodeTitle: "  First  Chapter \n"},
		{NodeTitle: "Second"},
		{NodeTitle: "\tThird"},
	}}
	tracker := errtrack.New()
	entries := newBuilder(testDoc(), tracker, false).Build(root)

	if len(entries) != 3 {
		t.Fatalf("entry count = %d, want 3", len(entries))
	}
	want := []string{"First  Chapter", "Second", "Third"}
	for i, e := range entries {
		if e.Title != want[i] {
			t.Errorf("entry %d title = %q, want %q", i, e.Title, want[i])
		}
	}
	if tracker.ErrorsReported() {
		t.Fatalf("unexpected tracker entries: %s", edn.String(tracker.Report()))
	}
}

func TestGoToExplicitDestWins(t *testing.T) {
	// Explicit dest says page 1; the named dest would say page 2.
	node := &enginetest.Node{
		NodeTitle: "Ch",
		NodeAction: engine.GoToAction{
			Dest:     &engine.Dest{PageNum: 1, Top: 700, HasTop: true},
			DestName: "chapter2",
		},
	}
	root := &enginetest.Node{Kids: []*enginetest.Node{node}}
	entries := newBuilder(testDoc(), errtrack.New(), false).Build(root)

	tgt := entries[0].Target
	if tgt == nil || tgt.Page != 1 {
		t.Fatalf("target = %+v, want page 1", tgt)
	}
	// Top is flipped against page 1's media height.
	if tgt.Link == nil || tgt.Link.Top != 92 {
		t.Fatalf("link meta = %+v, want top 92", tgt.Link)
	}
}

func TestGoToNamedDestFallback(t *testing.T) {
	root := &enginetest.Node{Kids: []*enginetest.Node{
		{NodeTitle: "Ch", NodeAction: engine.GoToAction{DestName: "chapter2"}},
	}}
	entries := newBuilder(testDoc(), errtrack.New(), false).Build(root)
	tgt := entries[0].Target
	if tgt == nil || tgt.Page != 2 {
		t.Fatalf("target = %+v, want page 2", tgt)
	}
}

func TestGoToUnresolvableDestYieldsNoTarget(t *testing.T) {
	tracker := errtrack.New()
	root := &enginetest.Node{Kids: []*enginetest.Node{
		{NodeTitle: "Ch", NodeAction: engine.GoToAction{DestName: "missing"}},
	}}
	entries := newBuilder(testDoc(), tracker, false).Build(root)
	if entries[0].Target != nil {
		t.Fatalf("target = %+v, want nil", entries[0].Target)
	}
	// Absence of a destination is not an error.
	if tracker.ErrorsReported() {
		t.Fatal("unresolvable dest must not be recorded as an error")
	}
}

func TestPageRefResolvedThroughCatalog(t *testing.T) {
	root := &enginetest.Node{Kids: []*enginetest.Node{
		{NodeTitle: "Ch", NodeAction: engine.GoToAction{Dest: &engine.Dest{PageRef: ref(5, 0)}}},
	}}
	entries := newBuilder(testDoc(), errtrack.New(), false).Build(root)
	tgt := entries[0].Target
	if tgt == nil || tgt.Page != 3 {
		t.Fatalf("target = %+v, want page 3 via catalog", tgt)
	}
}

func TestGoToFileKeepsFilenameWithoutDest(t *testing.T) {
	root := &enginetest.Node{Kids: []*enginetest.Node{
		{NodeTitle: "Ext", NodeAction: engine.GoToFileAction{Filename: "other.pdf"}},
	}}
	entries := newBuilder(testDoc(), errtrack.New(), false).Build(root)
	tgt := entries[0].Target
	if tgt == nil || tgt.Dest != "other.pdf" || tgt.Page != 0 {
		t.Fatalf("target = %+v, want filename only", tgt)
	}
}

func TestGoToFileWithDest(t *testing.T) {
	root := &enginetest.Node{Kids: []*enginetest.Node{
		{NodeTitle: "Ext", NodeAction: engine.GoToFileAction{
			Filename: "other.pdf",
			Dest:     &engine.Dest{PageNum: 4},
		}},
	}}
	entries := newBuilder(testDoc(), errtrack.New(), false).Build(root)
	tgt := entries[0].Target
	if tgt == nil || tgt.Dest != "other.pdf" || tgt.Page != 4 {
		t.Fatalf("target = %+v, want other.pdf page 4", tgt)
	}
}

func TestURITargetVerbatim(t *testing.T) {
	root := &enginetest.Node{Kids: []*enginetest.Node{
		{NodeTitle: "Site", NodeAction: engine.URIAction{URI: "https://example.com/?q=a b"}},
	}}
	entries := newBuilder(testDoc(), errtrack.New(), false).Build(root)
	tgt := entries[0].Target
	if tgt == nil || tgt.Dest != "https://example.com/?q=a b" {
		t.Fatalf("target = %+v, want verbatim URI", tgt)
	}
}

func TestUnknownActionWarnsAndContinues(t *testing.T) {
	tracker := errtrack.New()
	root := &enginetest.Node{Kids: []*enginetest.Node{
		{NodeTitle: "Weird", NodeAction: engine.UnknownAction{Kind: "Launch"}},
		{NodeTitle: "After"},
	}}
	entries := newBuilder(testDoc(), tracker, false).Build(root)

	if len(entries) != 2 {
		t.Fatalf("entry count = %d, sibling after unhandled action lost", len(entries))
	}
	if entries[0].Target != nil {
		t.Fatalf("unhandled action produced a target: %+v", entries[0].Target)
	}
	warns := tracker.PageEntries()
	if len(warns) != 1 || warns[0].Code != errtrack.CodeUnhandledLinkAction {
		t.Fatalf("tracker entries = %+v, want one unhandled-link-action warning", warns)
	}
	if !strings.Contains(warns[0].Message, "Launch") {
		t.Fatalf("warning %q does not name the kind", warns[0].Message)
	}
}

func TestChildScopeOpenedAndClosed(t *testing.T) {
	child := &enginetest.Node{NodeTitle: "Child"}
	parent := &enginetest.Node{NodeTitle: "Parent", Kids: []*enginetest.Node{child}}
	root := &enginetest.Node{Kids: []*enginetest.Node{parent}}

	entries := newBuilder(testDoc(), errtrack.New(), false).Build(root)
	if len(entries) != 1 || len(entries[0].Children) != 1 {
		t.Fatalf("tree shape wrong: %+v", entries)
	}
	if entries[0].Children[0].Title != "Child" {
		t.Fatalf("child title = %q", entries[0].Children[0].Title)
	}
	for _, n := range []*enginetest.Node{root, parent, child} {
		if n.Opens != n.Closes {
			t.Fatalf("node %q opens=%d closes=%d", n.NodeTitle, n.Opens, n.Closes)
		}
		if n.Opens == 0 {
			t.Fatalf("node %q never opened", n.NodeTitle)
		}
	}
}

func TestDepthCapSkipsSubtree(t *testing.T) {
	// A chain deeper than the cap.
	leaf := &enginetest.Node{NodeTitle: "L"}
	node := leaf
	for i := 0; i < 5; i++ {
		node = &enginetest.Node{NodeTitle: "N", Kids: []*enginetest.Node{node}}
	}
	root := &enginetest.Node{Kids: []*enginetest.Node{node}}

	tracker := errtrack.New()
	limits := engine.Limits{MaxOutlineDepth: 3}
	b := NewBuilder(NewResolver(testDoc(), false), tracker, observability.NopLogger{}, limits)
	entries := b.Build(root)

	depth := 0
	for e := entries[0]; len(e.Children) > 0; e = e.Children[0] {
		depth++
	}
	if depth != 2 {
		t.Fatalf("tree depth below root level = %d, want 2", depth)
	}
	found := false
	for _, w := range tracker.PageEntries() {
		if w.Code == errtrack.CodeOutlineDepth {
			found = true
		}
	}
	if !found {
		t.Fatal("depth cap hit without a warning")
	}
}

func TestCropBoxHeightSelection(t *testing.T) {
	root := &enginetest.Node{Kids: []*enginetest.Node{
		{NodeTitle: "Ch", NodeAction: engine.GoToAction{
			Dest: &engine.Dest{PageNum: 1, Top: 100, HasTop: true},
		}},
	}}
	entries := newBuilder(testDoc(), errtrack.New(), true).Build(root)
	tgt := entries[0].Target
	// Page 1 crop height is 700.
	if tgt.Link == nil || tgt.Link.Top != 600 {
		t.Fatalf("link meta = %+v, want top 600 against crop box", tgt.Link)
	}
}

func TestEntryEDN(t *testing.T) {
	e := &Entry{
		Title:  "Intro",
		Target: &Target{Page: 2, Link: &LinkMeta{Top: 92, HasTop: true}},
		Children: []*Entry{
			{Title: "Sub", Target: &Target{Dest: "https://example.com"}},
		},
	}
	got := edn.String(e.EDN())
	want := `{:title "Intro" :page 2 :link {:top 92.0} :entries [{:title "Sub" :dest "https://example.com"}]}`
	if got != want {
		t.Fatalf("entry EDN = %s\nwant      %s", got, want)
	}
}

func TestEntriesEDNEmpty(t *testing.T) {
	if got := edn.String(EntriesEDN(nil)); got != "[]" {
		t.Fatalf("empty outline = %s, want []", got)
	}
}
