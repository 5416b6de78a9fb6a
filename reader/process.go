package reader

import (
	"bufio"
	"io"

	"github.com/swerling/pdftoedn/edn"
	"github.com/swerling/pdftoedn/observability"
)

// Process runs the session over its selected pages and writes the
// complete result record to w in a single pass. Meta streams first,
// then each page record as it is produced; nothing is back-patched.
func (s *Session) Process(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("{:meta "); err != nil {
		return err
	}
	if err := edn.Encode(bw, s.metaRecord()); err != nil {
		return err
	}
	if _, err := bw.WriteString(" :pages ["); err != nil {
		return err
	}
	first, last := s.pageRange()
	wrote := false
	for num := first; num <= last; num++ {
		rec, err := s.writePage(bw, num, wrote)
		if err != nil {
			return err
		}
		wrote = wrote || rec
	}
	if _, err := bw.WriteString("]}"); err != nil {
		return err
	}
	return bw.Flush()
}

// writePage processes one page and serializes its record, returning
// whether a record was written. The tracker's page window resets here
// so the record only carries its own page's conditions.
func (s *Session) writePage(w *bufio.Writer, num int, needSep bool) (bool, error) {
	if num < 1 || num > s.doc.NumPages() {
		return false, nil
	}
	s.tracker.FlushPage()
	rec := s.dev.ProcessPage(num)
	if rec == nil {
		return false, nil
	}
	rec.Errors = s.tracker.PageEntries()
	if needSep {
		if err := w.WriteByte(' '); err != nil {
			return false, err
		}
	}
	if err := edn.Encode(w, rec.EDN()); err != nil {
		return false, err
	}
	s.log.Debug("page emitted",
		observability.Int("page", num),
		observability.Int("text_runs", len(rec.Text)),
		observability.Int("links", len(rec.Links)))
	return true, nil
}
