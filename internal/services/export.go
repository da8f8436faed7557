package services

import (
	"bytes"
	"encoding/csv"
	"time"
)

// ExportResponsesCSV renders a form's response set as CSV: a submittedAt
// column first, then one column per question in form order with the
// question's text as header. Rows keep the order of rs. csv.Writer
// handles RFC 4180 quoting (embedded quotes doubled, fields containing
// the delimiter or line breaks quoted).
//
// Columns are keyed by header text, so when two questions share the same
// text the later question's value wins in every duplicated column.
func ExportResponsesCSV(form *Form, rs []*Response) ([]byte, error) {
	header := make([]string, 0, 1+len(form.Questions))
	header = append(header, "submittedAt")
	for _, q := range form.Questions {
		header = append(header, q.Text)
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rs {
		cells := make(map[string]string, len(form.Questions))
		for _, q := range form.Questions {
			cells[q.Text] = r.Answers[q.ID]
		}
		rec := make([]string, 0, len(header))
		rec = append(rec, r.SubmittedAt.UTC().Format(time.RFC3339))
		for _, q := range form.Questions {
			rec = append(rec, cells[q.Text])
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
