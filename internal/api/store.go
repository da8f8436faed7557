package api

import (
	"sync"
	"time"
)

type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

type Form struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Questions     []Question `json:"questions"`
	CreatedBy     string     `json:"created_by"`
	ResponseIDs   []string   `json:"response_ids,omitempty"`
	ResponseCount int        `json:"response_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Response struct {
	ID          string            `json:"id"`
	FormID      string            `json:"form_id"`
	Answers     map[string]string `json:"answers"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type memoryStore struct {
	mu              sync.RWMutex
	forms           map[string]*Form
	responses       map[string]*Response
	responsesByForm map[string][]*Response
	usersByEmail    map[string]*User
}

// NewMemoryStore returns a mutex-guarded in-process Store, used when no
// SQLite path is configured and throughout the tests.
func NewMemoryStore() Store {
	return &memoryStore{
		forms:           map[string]*Form{},
		responses:       map[string]*Response{},
		responsesByForm: map[string][]*Response{},
		usersByEmail:    map[string]*User{},
	}
}

func (s *memoryStore) AddUser(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByEmail[u.Email] = u
	return nil
}

func (s *memoryStore) FindUserByEmail(email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByEmail[email], nil
}

// cloneForm deep-copies a form document. AppendResponseRef mutates the
// stored copy under the lock, so forms crossing the store boundary in
// either direction must never share slices with it.
func cloneForm(f *Form) *Form {
	if f == nil {
		return nil
	}
	cp := *f
	cp.Questions = make([]Question, len(f.Questions))
	for i, q := range f.Questions {
		q.Options = append([]string(nil), q.Options...)
		cp.Questions[i] = q
	}
	cp.ResponseIDs = append([]string(nil), f.ResponseIDs...)
	return &cp
}

func (s *memoryStore) AddForm(f *Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[f.ID] = cloneForm(f)
	return nil
}

func (s *memoryStore) GetForm(id string) (*Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneForm(s.forms[id]), nil
}

func (s *memoryStore) ListFormsByOwner(ownerID string) ([]*Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Form{}
	for _, f := range s.forms {
		if f.CreatedBy == ownerID {
			out = append(out, cloneForm(f))
		}
	}
	return out, nil
}

func (s *memoryStore) DeleteForm(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[id]; !ok {
		return false, nil
	}
	delete(s.forms, id)
	return true, nil
}

func (s *memoryStore) AppendResponseRef(formID, responseID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forms[formID]
	if !ok {
		return false, nil
	}
	f.ResponseIDs = append(f.ResponseIDs, responseID)
	f.ResponseCount = len(f.ResponseIDs)
	f.UpdatedAt = at
	return true, nil
}

func (s *memoryStore) AddResponse(r *Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[r.ID] = r
	s.responsesByForm[r.FormID] = append(s.responsesByForm[r.FormID], r)
	return nil
}

func (s *memoryStore) ListResponsesByForm(formID string) ([]*Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Response(nil), s.responsesByForm[formID]...), nil
}

func (s *memoryStore) DeleteResponsesByForm(formID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := s.responsesByForm[formID]
	for _, r := range rs {
		delete(s.responses, r.ID)
	}
	delete(s.responsesByForm, formID)
	return len(rs), nil
}
