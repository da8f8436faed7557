package services

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResponseStore abstracts persistence operations required by ResponseService.
type ResponseStore interface {
	GetForm(id string) (*Form, error)
	AddResponse(r *Response) error
	AppendResponseRef(formID, responseID string, at time.Time) (bool, error)
	ListResponsesByForm(formID string) ([]*Response, error)
}

// ResponseService normalizes anonymous submissions against the persisted
// form schema and serves the owner-scoped response listing.
type ResponseService struct {
	store ResponseStore
	now   func() time.Time
	newID func() string
}

func NewResponseService(store ResponseStore) *ResponseService {
	return &ResponseService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// SubmitResponse stores a response whose answer keys are exactly the
// form's question IDs. Missing answers become empty strings and unknown
// keys in raw are dropped; malformed client payloads never block
// submission. The required flag is advisory and not enforced here.
func (s *ResponseService) SubmitResponse(formID string, raw map[string]any) (string, error) {
	form, err := s.store.GetForm(formID)
	if err != nil {
		return "", err
	}
	if form == nil {
		return "", NewNotFoundError("form not found")
	}

	answers := make(map[string]string, len(form.Questions))
	for _, q := range form.Questions {
		answers[q.ID] = answerText(raw[q.ID])
	}

	resp := &Response{
		ID:          s.newID(),
		FormID:      formID,
		Answers:     answers,
		SubmittedAt: s.now(),
	}
	if err := s.store.AddResponse(resp); err != nil {
		return "", err
	}
	// The counter update is best-effort: the response itself is already
	// durable and readers recompute counts from the response query.
	if _, err := s.store.AppendResponseRef(formID, resp.ID, resp.SubmittedAt); err != nil {
		log.Printf("response service: append response ref for form %s: %v", formID, err)
	}
	return resp.ID, nil
}

// ListResponses returns the form's responses to its owner.
func (s *ResponseService) ListResponses(formID, requesterID string) ([]*Response, error) {
	form, err := s.store.GetForm(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, NewNotFoundError("form not found")
	}
	if form.CreatedBy != requesterID {
		return nil, NewForbiddenError("forbidden")
	}
	return s.store.ListResponsesByForm(formID)
}

// answerText coerces an untrusted answer value to its text form.
func answerText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		b, _ := json.Marshal(v)
		return strings.Trim(string(b), "\"")
	}
}
