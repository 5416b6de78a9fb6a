package device

import (
	"errors"
	"strings"
	"testing"

	"github.com/swerling/pdftoedn/edn"
	"github.com/swerling/pdftoedn/engine"
	"github.com/swerling/pdftoedn/engine/enginetest"
	"github.com/swerling/pdftoedn/errtrack"
	"github.com/swerling/pdftoedn/fontstats"
	"github.com/swerling/pdftoedn/outline"
)

func testDoc() *enginetest.Doc {
	return &enginetest.Doc{
		PageList: []*enginetest.Page{
			{
				MediaH: 792,
				Runs: []engine.TextRun{
					{Font: "Helvetica", FontSize: 12, X: 72, Y: 720, W: 60, Text: "Hello"},
					{Font: "Times", FontSize: 8.5, X: 72, Y: 700, W: 40, Text: "small"},
				},
				Annots: []engine.LinkAnnot{
					{Rect: [4]float64{72, 680, 200, 700}, Action: engine.URIAction{URI: "https://example.com"}},
				},
			},
			{MediaH: 792},
		},
	}
}

func TestTextDeviceRecord(t *testing.T) {
	doc := testDoc()
	fonts := fontstats.New()
	tracker := errtrack.New()
	dev := NewTextDevice(doc, outline.NewResolver(doc, false), fonts, tracker, false)

	rec := dev.ProcessPage(1)
	if rec == nil {
		t.Fatal("no record for page 1")
	}
	if rec.Number != 1 || rec.Height != 792 {
		t.Fatalf("record header = %+v", rec)
	}
	if len(rec.Text) != 2 {
		t.Fatalf("span count = %d", len(rec.Text))
	}
	// Y is flipped to top-left origin.
	if rec.Text[0].Y != 72 {
		t.Fatalf("span y = %v, want 72", rec.Text[0].Y)
	}
	if len(rec.Links) != 1 || rec.Links[0].Target == nil || rec.Links[0].Target.Dest != "https://example.com" {
		t.Fatalf("links = %+v", rec.Links)
	}
	// Rect top/bottom flipped: [72 92 200 112].
	if rec.Links[0].Rect != [4]float64{72, 92, 200, 112} {
		t.Fatalf("link rect = %v", rec.Links[0].Rect)
	}
	// Font statistics fed as a side effect.
	sizes := fonts.SizeList()
	if len(sizes) != 2 || sizes[0] != 12 || sizes[1] != 8.5 {
		t.Fatalf("font sizes = %v", sizes)
	}
}

func TestTextDeviceNormalizesRunText(t *testing.T) {
	doc := &enginetest.Doc{PageList: []*enginetest.Page{
		{
			MediaH: 792,
			Runs: []engine.TextRun{
				// "e" followed by a combining acute accent.
				{Font: "Helvetica", FontSize: 12, Text: "éclair"},
			},
		},
	}}
	dev := NewTextDevice(doc, outline.NewResolver(doc, false), fontstats.New(), errtrack.New(), false)

	rec := dev.ProcessPage(1)
	if rec == nil || len(rec.Text) != 1 {
		t.Fatalf("record = %+v", rec)
	}
	if got := rec.Text[0].Text; got != "éclair" {
		t.Fatalf("span text = %q, want precomposed %q", got, "éclair")
	}
}

func TestTextDeviceOutOfRangeIsSilent(t *testing.T) {
	doc := testDoc()
	tracker := errtrack.New()
	dev := NewTextDevice(doc, outline.NewResolver(doc, false), fontstats.New(), tracker, false)
	if rec := dev.ProcessPage(99); rec != nil {
		t.Fatalf("out-of-range page produced record %+v", rec)
	}
	if tracker.ErrorsReported() {
		t.Fatal("out-of-range page at device level must stay silent")
	}
}

func TestTextDeviceCapturesContentErrors(t *testing.T) {
	doc := testDoc()
	doc.PageList[0].TextErr = errors.New("content stream: bad Tj operator")
	tracker := errtrack.New()
	dev := NewTextDevice(doc, outline.NewResolver(doc, false), fontstats.New(), tracker, false)

	rec := dev.ProcessPage(1)
	if rec == nil {
		t.Fatal("error on one page must still produce a record")
	}
	entries := tracker.PageEntries()
	if len(entries) != 1 || entries[0].Sev != errtrack.SevError {
		t.Fatalf("tracker entries = %+v", entries)
	}
	if !strings.Contains(entries[0].Message, "bad Tj operator") {
		t.Fatalf("message %q lost the collaborator error", entries[0].Message)
	}
}

func TestLinkDeviceIgnoresText(t *testing.T) {
	doc := testDoc()
	fonts := fontstats.New()
	tracker := errtrack.New()
	dev := NewLinkDevice(doc, outline.NewResolver(doc, false), tracker, false)

	rec := dev.ProcessPage(1)
	if rec == nil {
		t.Fatal("no record")
	}
	if len(rec.Text) != 0 {
		t.Fatalf("links-only record has text: %+v", rec.Text)
	}
	if len(rec.Links) != 1 {
		t.Fatalf("links = %+v", rec.Links)
	}
	if len(fonts.SizeList()) != 0 {
		t.Fatal("links-only mode touched font statistics")
	}
}

func TestFontDeviceProducesNoOutput(t *testing.T) {
	doc := testDoc()
	fonts := fontstats.New()
	dev := NewFontDevice(doc, fonts, errtrack.New())

	if rec := dev.ProcessPage(1); rec != nil {
		t.Fatalf("font pre-scan produced output: %+v", rec)
	}
	if len(fonts.SizeList()) != 2 {
		t.Fatalf("font sizes = %v", fonts.SizeList())
	}
	list := fonts.List()
	if len(list) != 2 || list[0].Name != "Helvetica" {
		t.Fatalf("font list = %+v", list)
	}
}

func TestUnknownLinkActionWarns(t *testing.T) {
	doc := testDoc()
	doc.PageList[0].Annots = []engine.LinkAnnot{
		{Rect: [4]float64{0, 0, 10, 10}, Action: engine.UnknownAction{Kind: "JavaScript"}},
	}
	tracker := errtrack.New()
	dev := NewLinkDevice(doc, outline.NewResolver(doc, false), tracker, false)

	rec := dev.ProcessPage(1)
	if len(rec.Links) != 1 || rec.Links[0].Target != nil {
		t.Fatalf("links = %+v", rec.Links)
	}
	entries := tracker.PageEntries()
	if len(entries) != 1 || entries[0].Code != errtrack.CodeUnhandledLinkAction {
		t.Fatalf("tracker entries = %+v", entries)
	}
}

func TestPageRecordEDN(t *testing.T) {
	rec := &PageRecord{
		Number: 2,
		Height: 792,
		Text: []Span{
			{X: 72, Y: 72, Width: 60, Font: "Helvetica", Size: 12, Text: "Hello"},
		},
	}
	got := edn.String(rec.EDN())
	want := `{:number 2 :height 792.0 :text [{:x 72.0 :y 72.0 :width 60.0 :font "Helvetica" :size 12.0 :text "Hello"}]}`
	if got != want {
		t.Fatalf("record EDN = %s\nwant       %s", got, want)
	}
}

func TestPageRecordEDNWithErrors(t *testing.T) {
	rec := &PageRecord{
		Number: 1,
		Height: 792,
		Errors: []errtrack.Entry{
			{Sev: errtrack.SevError, Code: errtrack.CodePageProcessing, Module: "device", Message: "boom"},
		},
	}
	got := edn.String(rec.EDN())
	if !strings.Contains(got, `:errors [{:type :page_processing`) {
		t.Fatalf("record EDN missing errors block: %s", got)
	}
}
