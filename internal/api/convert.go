package api

import "github.com/formloom/formloom/internal/services"

func toServiceForm(f *Form) *services.Form {
	if f == nil {
		return nil
	}
	questions := make([]services.Question, 0, len(f.Questions))
	for _, q := range f.Questions {
		questions = append(questions, services.Question{
			ID:       q.ID,
			Text:     q.Text,
			Kind:     q.Kind,
			Options:  append([]string(nil), q.Options...),
			Required: q.Required,
		})
	}
	return &services.Form{
		ID:            f.ID,
		Title:         f.Title,
		Description:   f.Description,
		Questions:     questions,
		CreatedBy:     f.CreatedBy,
		ResponseIDs:   append([]string(nil), f.ResponseIDs...),
		ResponseCount: f.ResponseCount,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func fromServiceForm(f *services.Form) *Form {
	if f == nil {
		return nil
	}
	questions := make([]Question, 0, len(f.Questions))
	for _, q := range f.Questions {
		questions = append(questions, Question{
			ID:       q.ID,
			Text:     q.Text,
			Kind:     q.Kind,
			Options:  append([]string(nil), q.Options...),
			Required: q.Required,
		})
	}
	return &Form{
		ID:            f.ID,
		Title:         f.Title,
		Description:   f.Description,
		Questions:     questions,
		CreatedBy:     f.CreatedBy,
		ResponseIDs:   append([]string(nil), f.ResponseIDs...),
		ResponseCount: f.ResponseCount,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func toServiceResponse(r *Response) *services.Response {
	if r == nil {
		return nil
	}
	answers := make(map[string]string, len(r.Answers))
	for k, v := range r.Answers {
		answers[k] = v
	}
	return &services.Response{ID: r.ID, FormID: r.FormID, Answers: answers, SubmittedAt: r.SubmittedAt}
}

func fromServiceResponse(r *services.Response) *Response {
	if r == nil {
		return nil
	}
	answers := make(map[string]string, len(r.Answers))
	for k, v := range r.Answers {
		answers[k] = v
	}
	return &Response{ID: r.ID, FormID: r.FormID, Answers: answers, SubmittedAt: r.SubmittedAt}
}
