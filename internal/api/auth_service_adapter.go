package api

import "github.com/formloom/formloom/internal/services"

type authStoreAdapter struct {
	store Store
}

func newAuthStoreAdapter(store Store) services.AuthStore {
	return &authStoreAdapter{store: store}
}

func (a *authStoreAdapter) FindUserByEmail(email string) (*services.User, error) {
	u, err := a.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return &services.User{ID: u.ID, Name: u.Name, Email: u.Email, PassHash: u.PassHash, CreatedAt: u.CreatedAt}, nil
}

func (a *authStoreAdapter) AddUser(u *services.User) error {
	if u == nil {
		return services.NewInvalidError("user required")
	}
	return a.store.AddUser(&User{ID: u.ID, Name: u.Name, Email: u.Email, PassHash: u.PassHash, CreatedAt: u.CreatedAt})
}

var _ services.AuthStore = (*authStoreAdapter)(nil)
