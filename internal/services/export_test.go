package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"
)

func TestExportResponsesCSVLayout(t *testing.T) {
	form := feedbackForm()
	at1 := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	at2 := time.Date(2025, 3, 2, 10, 30, 0, 0, time.UTC)
	rs := []*Response{
		{ID: "R1", FormID: "F1", Answers: map[string]string{"q-email": "a@x.com", "q-sat": "Good"}, SubmittedAt: at1},
		{ID: "R2", FormID: "F1", Answers: map[string]string{"q-email": "", "q-sat": "Bad"}, SubmittedAt: at2},
	}

	b, err := ExportResponsesCSV(form, rs)
	if err != nil {
		t.Fatalf("ExportResponsesCSV returned error: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("lines = %d, want M+1 = 3", len(rows))
	}
	for i, row := range rows {
		if len(row) != 3 {
			t.Fatalf("row %d columns = %d, want N+1 = 3", i, len(row))
		}
	}
	if rows[0][0] != "submittedAt" || rows[0][1] != "Email" || rows[0][2] != "Satisfaction" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][0] != "2025-03-02T09:00:00Z" {
		t.Fatalf("submittedAt cell = %q", rows[1][0])
	}
	if rows[1][1] != "a@x.com" || rows[1][2] != "Good" {
		t.Fatalf("row 1 = %v", rows[1])
	}
	if rows[2][1] != "" || rows[2][2] != "Bad" {
		t.Fatalf("row 2 = %v", rows[2])
	}
}

func TestExportResponsesCSVEscaping(t *testing.T) {
	form := &Form{
		ID: "F1",
		Questions: []Question{
			{ID: "q1", Text: "Comment, please", Kind: QuestionKindText},
		},
	}
	tricky := "He said \"hi\",\nthen left"
	rs := []*Response{
		{ID: "R1", FormID: "F1", Answers: map[string]string{"q1": tricky}, SubmittedAt: time.Unix(0, 0).UTC()},
	}

	b, err := ExportResponsesCSV(form, rs)
	if err != nil {
		t.Fatalf("ExportResponsesCSV returned error: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse csv: %v", err)
	}
	if rows[0][1] != "Comment, please" {
		t.Fatalf("header cell = %q", rows[0][1])
	}
	if rows[1][1] != tricky {
		t.Fatalf("cell did not round-trip: %q", rows[1][1])
	}
	if !bytes.Contains(b, []byte(`""hi""`)) {
		t.Fatalf("embedded quotes not doubled: %s", b)
	}
}

func TestExportResponsesCSVDuplicateHeaders(t *testing.T) {
	form := &Form{
		ID: "F1",
		Questions: []Question{
			{ID: "q1", Text: "Name", Kind: QuestionKindText},
			{ID: "q2", Text: "Name", Kind: QuestionKindText},
		},
	}
	rs := []*Response{
		{ID: "R1", FormID: "F1", Answers: map[string]string{"q1": "first", "q2": "second"}, SubmittedAt: time.Unix(0, 0).UTC()},
	}

	b, err := ExportResponsesCSV(form, rs)
	if err != nil {
		t.Fatalf("ExportResponsesCSV returned error: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse csv: %v", err)
	}
	// columns are keyed by header text: the later question wins both cells
	if rows[1][1] != "second" || rows[1][2] != "second" {
		t.Fatalf("duplicate header cells = %v, want last writer in both", rows[1])
	}
}

func TestExportResponsesCSVEmptySet(t *testing.T) {
	b, err := ExportResponsesCSV(feedbackForm(), nil)
	if err != nil {
		t.Fatalf("ExportResponsesCSV returned error: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse csv: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
}
