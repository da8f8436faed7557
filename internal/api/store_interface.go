package api

import "time"

// Store is the persistence boundary shared by the in-memory and SQLite
// implementations. Two collections: forms (id-keyed) and responses
// (id-keyed, looked up by form), plus the owner accounts.
type Store interface {
	AddUser(u *User) error
	FindUserByEmail(email string) (*User, error)

	AddForm(f *Form) error
	GetForm(id string) (*Form, error)
	ListFormsByOwner(ownerID string) ([]*Form, error)
	DeleteForm(id string) (bool, error)
	// AppendResponseRef appends responseID to the form's ResponseIDs,
	// recomputes ResponseCount and refreshes UpdatedAt.
	AppendResponseRef(formID, responseID string, at time.Time) (bool, error)

	AddResponse(r *Response) error
	ListResponsesByForm(formID string) ([]*Response, error)
	DeleteResponsesByForm(formID string) (int, error)
}

var _ Store = (*memoryStore)(nil)
