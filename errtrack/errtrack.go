// Package errtrack collects recoverable warnings and errors raised
// while processing a document. One tracker lives for the whole session:
// entries recorded before page processing surface in the meta block,
// and the per-page window (reset between pages) surfaces in each page
// record.
package errtrack

import "github.com/swerling/pdftoedn/edn"

// Severity classifies an entry. Fatal conditions are returned as Go
// errors instead and never reach the tracker.
type Severity int

const (
	SevWarning Severity = iota
	SevError
)

func (s Severity) String() string {
	if s == SevError {
		return "error"
	}
	return "warning"
}

// Code names the condition that produced an entry.
type Code string

const (
	CodeUnhandledLinkAction Code = "unhandled_link_action"
	CodePageProcessing      Code = "page_processing"
	CodeOutlineDepth        Code = "outline_depth_exceeded"
	CodeMalformedDest       Code = "malformed_destination"
)

// Entry is one recorded condition.
type Entry struct {
	Sev     Severity
	Code    Code
	Module  string
	Message string
}

// Tracker accumulates entries. The zero value is not usable; use New.
type Tracker struct {
	entries   []Entry
	pageStart int
}

func New() *Tracker {
	return &Tracker{}
}

// Warn records a recoverable warning.
func (t *Tracker) Warn(code Code, module, message string) {
	t.entries = append(t.entries, Entry{Sev: SevWarning, Code: code, Module: module, Message: message})
}

// Error records a recoverable error.
func (t *Tracker) Error(code Code, module, message string) {
	t.entries = append(t.entries, Entry{Sev: SevError, Code: code, Module: module, Message: message})
}

// FlushPage marks the start of a new page window so PageEntries only
// reports conditions raised by the current page.
func (t *Tracker) FlushPage() {
	t.pageStart = len(t.entries)
}

// PageEntries returns the entries recorded since the last FlushPage.
func (t *Tracker) PageEntries() []Entry {
	return t.entries[t.pageStart:]
}

// ErrorsReported reports whether anything has been recorded so far.
func (t *Tracker) ErrorsReported() bool {
	return len(t.entries) > 0
}

// Report renders entries as the error-report vector embedded in meta
// and page records.
func Report(entries []Entry) *edn.Vector {
	v := edn.NewVector(len(entries))
	for _, e := range entries {
		h := edn.NewHash(4)
		h.Push("type", edn.Keyword(e.Code))
		h.Push("level", edn.Keyword(e.Sev.String()))
		h.Push("module", e.Module)
		h.Push("message", e.Message)
		v.Push(h)
	}
	return v
}

// Report renders every entry recorded so far in the session.
func (t *Tracker) Report() *edn.Vector {
	return Report(t.entries)
}
