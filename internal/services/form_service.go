package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// FormStore abstracts persistence operations required by FormService.
type FormStore interface {
	AddForm(f *Form) error
	GetForm(id string) (*Form, error)
	ListFormsByOwner(ownerID string) ([]*Form, error)
	DeleteForm(id string) (bool, error)
	DeleteResponsesByForm(formID string) (int, error)
}

// QuestionDefinition is an owner-submitted question before validation.
type QuestionDefinition struct {
	Text     string   `json:"text"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

// FormDefinition is an owner-submitted form before validation.
type FormDefinition struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Questions   []QuestionDefinition `json:"questions"`
}

// FormService validates form definitions, allocates question IDs and
// handles the owner-scoped form lifecycle.
type FormService struct {
	store    FormStore
	now      func() time.Time
	newID    func() string
	sanitize func(string) string
}

func NewFormService(store FormStore) *FormService {
	policy := bluemonday.StrictPolicy()
	return &FormService{
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		sanitize: policy.Sanitize,
	}
}

// CreateForm validates def, stamps question IDs and persists the form.
// Nothing is written when validation fails.
func (s *FormService) CreateForm(ownerID string, def FormDefinition) (*Form, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	questions, err := s.validateDefinition(&def)
	if err != nil {
		return nil, err
	}
	now := s.now()
	form := &Form{
		ID:          s.newID(),
		Title:       def.Title,
		Description: def.Description,
		Questions:   questions,
		CreatedBy:   ownerID,
		ResponseIDs: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.AddForm(form); err != nil {
		return nil, err
	}
	return form, nil
}

// validateDefinition applies the schema rules in order, first failure
// wins, and returns the normalized question list with fresh IDs.
func (s *FormService) validateDefinition(def *FormDefinition) ([]Question, error) {
	def.Title = strings.TrimSpace(s.sanitize(def.Title))
	if def.Title == "" {
		return nil, NewValidationError(RuleMissingTitle, "title is required")
	}
	def.Description = strings.TrimSpace(s.sanitize(def.Description))
	if len(def.Questions) == 0 {
		return nil, NewValidationError(RuleNoQuestions, "at least one question is required")
	}
	questions := make([]Question, 0, len(def.Questions))
	for i, qd := range def.Questions {
		text := strings.TrimSpace(s.sanitize(qd.Text))
		if text == "" {
			return nil, NewValidationError(RuleMissingQuestionText, fmt.Sprintf("question %d has no text", i+1))
		}
		kind := qd.Kind
		if kind == "" {
			kind = QuestionKindText
		}
		q := Question{ID: s.newID(), Text: text, Kind: kind, Required: qd.Required}
		switch kind {
		case QuestionKindSingleChoice:
			options, err := s.normalizeOptions(i, qd.Options)
			if err != nil {
				return nil, err
			}
			q.Options = options
		case QuestionKindText:
			// options forced empty for text questions
			q.Options = nil
		default:
			return nil, NewValidationError(RuleInvalidKind, fmt.Sprintf("question %d has unknown kind %q", i+1, kind))
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (s *FormService) normalizeOptions(idx int, raw []string) ([]string, error) {
	options := make([]string, 0, len(raw))
	seen := map[string]struct{}{}
	for _, opt := range raw {
		opt = strings.TrimSpace(s.sanitize(opt))
		if opt == "" {
			return nil, NewValidationError(RuleInvalidOptions, fmt.Sprintf("question %d has an empty option", idx+1))
		}
		if _, dup := seen[opt]; dup {
			return nil, NewValidationError(RuleInvalidOptions, fmt.Sprintf("question %d has duplicate option %q", idx+1, opt))
		}
		seen[opt] = struct{}{}
		options = append(options, opt)
	}
	if len(options) < 2 {
		return nil, NewValidationError(RuleInvalidOptions, fmt.Sprintf("question %d needs at least 2 options", idx+1))
	}
	return options, nil
}

func (s *FormService) GetForm(id string) (*Form, error) {
	form, err := s.store.GetForm(id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, NewNotFoundError("form not found")
	}
	return form, nil
}

func (s *FormService) ListForms(ownerID string) ([]*Form, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	return s.store.ListFormsByOwner(ownerID)
}

// DeleteForm removes the form and cascades deletion of its responses, so
// no response set ever outlives its form.
func (s *FormService) DeleteForm(id, requesterID string) error {
	form, err := s.store.GetForm(id)
	if err != nil {
		return err
	}
	if form == nil {
		return NewNotFoundError("form not found")
	}
	if form.CreatedBy != requesterID {
		return NewForbiddenError("forbidden")
	}
	if _, err := s.store.DeleteResponsesByForm(id); err != nil {
		return err
	}
	ok, err := s.store.DeleteForm(id)
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFoundError("form not found")
	}
	return nil
}
