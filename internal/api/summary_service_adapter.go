package api

import "github.com/formloom/formloom/internal/services"

// readStoreAdapter serves the pure read paths: summaries and exports.
type readStoreAdapter struct {
	store Store
}

func newReadStoreAdapter(store Store) *readStoreAdapter {
	return &readStoreAdapter{store: store}
}

func (a *readStoreAdapter) GetForm(id string) (*services.Form, error) {
	f, err := a.store.GetForm(id)
	if err != nil {
		return nil, err
	}
	return toServiceForm(f), nil
}

func (a *readStoreAdapter) ListResponsesByForm(formID string) ([]*services.Response, error) {
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

var (
	_ services.SummaryStore = (*readStoreAdapter)(nil)
	_ services.ExportStore  = (*readStoreAdapter)(nil)
)
