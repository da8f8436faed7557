package api

import "github.com/formloom/formloom/internal/services"

type formStoreAdapter struct {
	store Store
}

func newFormStoreAdapter(store Store) services.FormStore {
	return &formStoreAdapter{store: store}
}

func (a *formStoreAdapter) AddForm(f *services.Form) error {
	if f == nil {
		return services.NewInvalidError("form required")
	}
	return a.store.AddForm(fromServiceForm(f))
}

func (a *formStoreAdapter) GetForm(id string) (*services.Form, error) {
	f, err := a.store.GetForm(id)
	if err != nil {
		return nil, err
	}
	return toServiceForm(f), nil
}

func (a *formStoreAdapter) ListFormsByOwner(ownerID string) ([]*services.Form, error) {
	forms, err := a.store.ListFormsByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]*services.Form, 0, len(forms))
	for _, f := range forms {
		out = append(out, toServiceForm(f))
	}
	return out, nil
}

func (a *formStoreAdapter) DeleteForm(id string) (bool, error) {
	return a.store.DeleteForm(id)
}

func (a *formStoreAdapter) DeleteResponsesByForm(formID string) (int, error) {
	return a.store.DeleteResponsesByForm(formID)
}

var _ services.FormStore = (*formStoreAdapter)(nil)
