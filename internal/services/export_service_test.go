package services

import (
	"bytes"
	"testing"
	"time"
)

func TestExportCSVResult(t *testing.T) {
	store := &stubReadStore{
		form: feedbackForm(),
		responses: []*Response{
			{ID: "R1", FormID: "F1", Answers: map[string]string{"q-email": "a@x.com", "q-sat": "Good"}, SubmittedAt: time.Unix(0, 0).UTC()},
		},
	}
	svc := NewExportService(store)

	res, err := svc.ExportCSV("F1")
	if err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}
	if res.Filename != "responses.csv" {
		t.Fatalf("filename = %q", res.Filename)
	}
	if res.ContentType != "text/csv; charset=utf-8" {
		t.Fatalf("content type = %q", res.ContentType)
	}
	if len(res.Data) == 0 {
		t.Fatalf("empty export data")
	}

	again, err := svc.ExportCSV("F1")
	if err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}
	if !bytes.Equal(res.Data, again.Data) {
		t.Fatalf("repeated export differs")
	}
}

func TestExportCSVFormNotFound(t *testing.T) {
	svc := NewExportService(&stubReadStore{})
	_, err := svc.ExportCSV("missing")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}
