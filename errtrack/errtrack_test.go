package errtrack

import (
	"testing"

	"github.com/swerling/pdftoedn/edn"
)

func TestPageWindow(t *testing.T) {
	tr := New()
	tr.Warn(CodeUnhandledLinkAction, "outline", "link action kind: Launch")

	tr.FlushPage()
	tr.Error(CodePageProcessing, "device", "content stream: bad Tj operator")

	page := tr.PageEntries()
	if len(page) != 1 || page[0].Code != CodePageProcessing {
		t.Fatalf("page entries = %+v", page)
	}

	tr.FlushPage()
	if len(tr.PageEntries()) != 0 {
		t.Fatalf("flush did not clear the page window")
	}

	// The session view keeps everything.
	if !tr.ErrorsReported() {
		t.Fatal("session should report errors")
	}
	if tr.Report().Len() != 2 {
		t.Fatalf("session report length = %d", tr.Report().Len())
	}
}

func TestErrorsReportedEmpty(t *testing.T) {
	tr := New()
	if tr.ErrorsReported() {
		t.Fatal("empty tracker reports errors")
	}
}

func TestReportShape(t *testing.T) {
	tr := New()
	tr.Warn(CodeUnhandledLinkAction, "outline", "link action kind: 9")
	got := edn.String(tr.Report())
	want := `[{:type :unhandled_link_action :level :warning :module "outline" :message "link action kind: 9"}]`
	if got != want {
		t.Fatalf("report = %s\nwant     %s", got, want)
	}
}
