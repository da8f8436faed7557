package services

// ExportStore abstracts persistence operations required by ExportService.
type ExportStore interface {
	GetForm(id string) (*Form, error)
	ListResponsesByForm(formID string) ([]*Response, error)
}

// ExportResult carries the rendered file for the HTTP layer.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a form's response set for download.
type ExportService struct {
	store ExportStore
}

func NewExportService(store ExportStore) *ExportService {
	return &ExportService{store: store}
}

// ExportCSV reads the form and its authoritative response set and
// projects them into the tabular CSV layout.
func (s *ExportService) ExportCSV(formID string) (*ExportResult, error) {
	form, err := s.store.GetForm(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, NewNotFoundError("form not found")
	}
	rs, err := s.store.ListResponsesByForm(formID)
	if err != nil {
		return nil, err
	}
	b, err := ExportResponsesCSV(form, rs)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    "responses.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        b,
	}, nil
}
