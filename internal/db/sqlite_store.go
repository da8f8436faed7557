package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/formloom/formloom/internal/api"
)

// SQLiteStore persists forms and responses in SQLite. Question lists,
// response-ID sets and answer maps are stored as JSON text columns.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

var _ api.Store = (*SQLiteStore)(nil)

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		log.Printf("sqlite store: parse time %q: %v", s, err)
		return time.Time{}
	}
	return t
}

func (s *SQLiteStore) AddUser(u *api.User) error {
	_, err := s.db.Exec(
		`INSERT INTO users (id, name, email, pass_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PassHash, formatTime(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindUserByEmail(email string) (*api.User, error) {
	row := s.db.QueryRow(`SELECT id, name, email, pass_hash, created_at FROM users WHERE email = ?`, email)
	var u api.User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PassHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

func (s *SQLiteStore) AddForm(f *api.Form) error {
	questions, err := encodeJSON(f.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	refs := f.ResponseIDs
	if refs == nil {
		refs = []string{}
	}
	responseIDs, err := encodeJSON(refs)
	if err != nil {
		return fmt.Errorf("encode response ids: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO forms (id, title, description, questions, created_by, response_ids, response_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Title, f.Description, questions, f.CreatedBy, responseIDs, f.ResponseCount,
		formatTime(f.CreatedAt), formatTime(f.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert form: %w", err)
	}
	return nil
}

func scanForm(scan func(dest ...any) error) (*api.Form, error) {
	var f api.Form
	var questions, responseIDs, createdAt, updatedAt string
	if err := scan(&f.ID, &f.Title, &f.Description, &questions, &f.CreatedBy, &responseIDs, &f.ResponseCount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(questions), &f.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if err := json.Unmarshal([]byte(responseIDs), &f.ResponseIDs); err != nil {
		return nil, fmt.Errorf("decode response ids: %w", err)
	}
	f.CreatedAt = parseTime(createdAt)
	f.UpdatedAt = parseTime(updatedAt)
	return &f, nil
}

const formColumns = `id, title, description, questions, created_by, response_ids, response_count, created_at, updated_at`

func (s *SQLiteStore) GetForm(id string) (*api.Form, error) {
	row := s.db.QueryRow(`SELECT `+formColumns+` FROM forms WHERE id = ?`, id)
	f, err := scanForm(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get form: %w", err)
	}
	return f, nil
}

func (s *SQLiteStore) ListFormsByOwner(ownerID string) ([]*api.Form, error) {
	rows, err := s.db.Query(`SELECT `+formColumns+` FROM forms WHERE created_by = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()
	out := []*api.Form{}
	for rows.Next() {
		f, err := scanForm(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list forms: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteForm(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM forms WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete form: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete form: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) AppendResponseRef(formID, responseID string, at time.Time) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("append response ref: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var refsJSON string
	err = tx.QueryRow(`SELECT response_ids FROM forms WHERE id = ?`, formID).Scan(&refsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("append response ref: %w", err)
	}
	var refs []string
	if err := json.Unmarshal([]byte(refsJSON), &refs); err != nil {
		return false, fmt.Errorf("append response ref: decode: %w", err)
	}
	refs = append(refs, responseID)
	encoded, err := encodeJSON(refs)
	if err != nil {
		return false, fmt.Errorf("append response ref: encode: %w", err)
	}
	if _, err := tx.Exec(
		`UPDATE forms SET response_ids = ?, response_count = ?, updated_at = ? WHERE id = ?`,
		encoded, len(refs), formatTime(at), formID,
	); err != nil {
		return false, fmt.Errorf("append response ref: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("append response ref: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) AddResponse(r *api.Response) error {
	answers, err := encodeJSON(r.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO responses (id, form_id, answers, submitted_at) VALUES (?, ?, ?, ?)`,
		r.ID, r.FormID, answers, formatTime(r.SubmittedAt),
	)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListResponsesByForm(formID string) ([]*api.Response, error) {
	rows, err := s.db.Query(
		`SELECT id, form_id, answers, submitted_at FROM responses WHERE form_id = ? ORDER BY submitted_at, id`,
		formID,
	)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()
	out := []*api.Response{}
	for rows.Next() {
		var r api.Response
		var answers, submittedAt string
		if err := rows.Scan(&r.ID, &r.FormID, &answers, &submittedAt); err != nil {
			return nil, fmt.Errorf("list responses: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &r.Answers); err != nil {
			return nil, fmt.Errorf("list responses: decode answers: %w", err)
		}
		r.SubmittedAt = parseTime(submittedAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteResponsesByForm(formID string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM responses WHERE form_id = ?`, formID)
	if err != nil {
		return 0, fmt.Errorf("delete responses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete responses: %w", err)
	}
	return int(n), nil
}
