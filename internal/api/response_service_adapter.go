package api

import (
	"time"

	"github.com/formloom/formloom/internal/services"
)

type responseStoreAdapter struct {
	store Store
}

func newResponseStoreAdapter(store Store) services.ResponseStore {
	return &responseStoreAdapter{store: store}
}

func (a *responseStoreAdapter) GetForm(id string) (*services.Form, error) {
	f, err := a.store.GetForm(id)
	if err != nil {
		return nil, err
	}
	return toServiceForm(f), nil
}

func (a *responseStoreAdapter) AddResponse(r *services.Response) error {
	if r == nil {
		return services.NewInvalidError("response required")
	}
	return a.store.AddResponse(fromServiceResponse(r))
}

func (a *responseStoreAdapter) AppendResponseRef(formID, responseID string, at time.Time) (bool, error) {
	return a.store.AppendResponseRef(formID, responseID, at)
}

func (a *responseStoreAdapter) ListResponsesByForm(formID string) ([]*services.Response, error) {
	rs, err := a.store.ListResponsesByForm(formID)
	if err != nil {
		return nil, err
	}
	out := make([]*services.Response, 0, len(rs))
	for _, r := range rs {
		out = append(out, toServiceResponse(r))
	}
	return out, nil
}

var _ services.ResponseStore = (*responseStoreAdapter)(nil)
