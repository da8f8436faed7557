package services

import (
	"errors"
	"testing"
	"time"
)

type stubResponseStore struct {
	form      *Form
	responses []*Response
	appendErr error
	appended  []string
}

func (s *stubResponseStore) GetForm(id string) (*Form, error) {
	if s.form != nil && s.form.ID == id {
		return s.form, nil
	}
	return nil, nil
}

func (s *stubResponseStore) AddResponse(r *Response) error {
	s.responses = append(s.responses, r)
	return nil
}

func (s *stubResponseStore) AppendResponseRef(formID, responseID string, at time.Time) (bool, error) {
	if s.appendErr != nil {
		return false, s.appendErr
	}
	s.appended = append(s.appended, responseID)
	s.form.ResponseIDs = append(s.form.ResponseIDs, responseID)
	s.form.ResponseCount = len(s.form.ResponseIDs)
	s.form.UpdatedAt = at
	return true, nil
}

func (s *stubResponseStore) ListResponsesByForm(formID string) ([]*Response, error) {
	out := []*Response{}
	for _, r := range s.responses {
		if r.FormID == formID {
			out = append(out, r)
		}
	}
	return out, nil
}

func feedbackForm() *Form {
	return &Form{
		ID:        "F1",
		Title:     "Feedback",
		CreatedBy: "owner1",
		Questions: []Question{
			{ID: "q-email", Text: "Email", Kind: QuestionKindText, Required: true},
			{ID: "q-sat", Text: "Satisfaction", Kind: QuestionKindSingleChoice, Options: []string{"Good", "Bad"}},
		},
	}
}

func TestSubmitResponseNormalizesAnswers(t *testing.T) {
	store := &stubResponseStore{form: feedbackForm()}
	svc := NewResponseService(store)
	svc.now = func() time.Time { return time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "R1" }

	id, err := svc.SubmitResponse("F1", map[string]any{
		"q-email":  "a@x.com",
		"q-sat":    "Good",
		"intruder": "dropped",
	})
	if err != nil {
		t.Fatalf("SubmitResponse returned error: %v", err)
	}
	if id != "R1" {
		t.Fatalf("response id = %q, want R1", id)
	}
	if len(store.responses) != 1 {
		t.Fatalf("responses stored = %d, want 1", len(store.responses))
	}
	r := store.responses[0]
	if len(r.Answers) != 2 {
		t.Fatalf("answer keys = %d, want exactly the form's question ids", len(r.Answers))
	}
	if r.Answers["q-email"] != "a@x.com" || r.Answers["q-sat"] != "Good" {
		t.Fatalf("answers = %v", r.Answers)
	}
	if _, ok := r.Answers["intruder"]; ok {
		t.Fatalf("unknown key was persisted")
	}
	if len(store.appended) != 1 || store.appended[0] != "R1" {
		t.Fatalf("response ref not appended: %v", store.appended)
	}
	if store.form.ResponseCount != 1 {
		t.Fatalf("response count = %d, want 1", store.form.ResponseCount)
	}
	if !store.form.UpdatedAt.Equal(r.SubmittedAt) {
		t.Fatalf("updatedAt not refreshed")
	}
}

func TestSubmitResponseMissingAnswersDefaultEmpty(t *testing.T) {
	store := &stubResponseStore{form: feedbackForm()}
	svc := NewResponseService(store)

	// required Email omitted entirely; submission is still accepted
	if _, err := svc.SubmitResponse("F1", map[string]any{"q-sat": "Bad"}); err != nil {
		t.Fatalf("SubmitResponse returned error: %v", err)
	}
	r := store.responses[0]
	if got := r.Answers["q-email"]; got != "" {
		t.Fatalf("missing answer = %q, want empty string", got)
	}
	if r.Answers["q-sat"] != "Bad" {
		t.Fatalf("answers = %v", r.Answers)
	}
}

func TestSubmitResponseCoercesValues(t *testing.T) {
	store := &stubResponseStore{form: feedbackForm()}
	svc := NewResponseService(store)

	// JSON decoding hands numbers as float64 and may hand any shape at all
	if _, err := svc.SubmitResponse("F1", map[string]any{"q-email": float64(42), "q-sat": true}); err != nil {
		t.Fatalf("SubmitResponse returned error: %v", err)
	}
	r := store.responses[0]
	if r.Answers["q-email"] != "42" {
		t.Fatalf("numeric answer = %q, want 42", r.Answers["q-email"])
	}
	if r.Answers["q-sat"] != "true" {
		t.Fatalf("bool answer = %q, want true", r.Answers["q-sat"])
	}
}

func TestSubmitResponseFormNotFound(t *testing.T) {
	svc := NewResponseService(&stubResponseStore{})
	_, err := svc.SubmitResponse("missing", map[string]any{})
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestSubmitResponseSurvivesCounterFailure(t *testing.T) {
	store := &stubResponseStore{form: feedbackForm(), appendErr: errors.New("disk full")}
	svc := NewResponseService(store)

	id, err := svc.SubmitResponse("F1", map[string]any{"q-sat": "Good"})
	if err != nil {
		t.Fatalf("SubmitResponse returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected response id despite counter failure")
	}
	if len(store.responses) != 1 {
		t.Fatalf("response document lost: %d stored", len(store.responses))
	}
}

func TestListResponsesOwnerScoped(t *testing.T) {
	store := &stubResponseStore{form: feedbackForm()}
	svc := NewResponseService(store)
	if _, err := svc.SubmitResponse("F1", map[string]any{"q-sat": "Good"}); err != nil {
		t.Fatalf("SubmitResponse returned error: %v", err)
	}

	rs, err := svc.ListResponses("F1", "owner1")
	if err != nil {
		t.Fatalf("ListResponses returned error: %v", err)
	}
	if len(rs) != 1 {
		t.Fatalf("responses = %d, want 1", len(rs))
	}

	_, err = svc.ListResponses("F1", "intruder")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	_, err = svc.ListResponses("missing", "owner1")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}
