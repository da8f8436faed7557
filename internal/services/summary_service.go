package services

// SummaryStore abstracts persistence operations required by SummaryService.
type SummaryStore interface {
	GetForm(id string) (*Form, error)
	ListResponsesByForm(formID string) ([]*Response, error)
}

// OptionCount is one (option, tally) pair of a single-choice summary.
type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// QuestionSummary is the per-question aggregate view. Tally is nil for
// text questions, which are not aggregable.
type QuestionSummary struct {
	QuestionID string        `json:"question_id"`
	Question   string        `json:"question"`
	Kind       string        `json:"kind"`
	Tally      []OptionCount `json:"summary"`
}

// SummaryService computes per-question summaries over a form's full
// response set. Pure read path, no mutation.
type SummaryService struct {
	store SummaryStore
}

func NewSummaryService(store SummaryStore) *SummaryService {
	return &SummaryService{store: store}
}

// Summarize tallies each single-choice question's options in declared
// option order, zero counts included. Counting is an exact string match;
// answers matching no declared option are excluded from every tally. The
// response set is always re-read from the store, never derived from the
// form's cached response count.
func (s *SummaryService) Summarize(formID string) ([]QuestionSummary, error) {
	form, err := s.store.GetForm(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, NewNotFoundError("form not found")
	}
	responses, err := s.store.ListResponsesByForm(formID)
	if err != nil {
		return nil, err
	}

	out := make([]QuestionSummary, 0, len(form.Questions))
	for _, q := range form.Questions {
		qs := QuestionSummary{QuestionID: q.ID, Question: q.Text, Kind: q.Kind}
		if q.Kind == QuestionKindSingleChoice {
			qs.Tally = make([]OptionCount, 0, len(q.Options))
			for _, opt := range q.Options {
				count := 0
				for _, r := range responses {
					if r.Answers[q.ID] == opt {
						count++
					}
				}
				qs.Tally = append(qs.Tally, OptionCount{Option: opt, Count: count})
			}
		}
		out = append(out, qs)
	}
	return out, nil
}
