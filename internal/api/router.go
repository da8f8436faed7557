package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/formloom/formloom/internal/middleware"
	"github.com/formloom/formloom/internal/services"
)

// Router wires the HTTP surface to the services. Identity is resolved by
// the auth middleware and passed into services as an explicit owner ID.
type Router struct {
	store     Store
	auth      *services.AuthService
	forms     *services.FormService
	responses *services.ResponseService
	summaries *services.SummaryService
	exports   *services.ExportService
}

func NewRouter(store Store, signer services.TokenSigner, adminCode string) *Router {
	read := newReadStoreAdapter(store)
	return &Router{
		store:     store,
		auth:      services.NewAuthService(newAuthStoreAdapter(store), signer, adminCode),
		forms:     services.NewFormService(newFormStoreAdapter(store)),
		responses: services.NewResponseService(newResponseStoreAdapter(store)),
		summaries: services.NewSummaryService(read),
		exports:   services.NewExportService(read),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister) // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)       // POST
	mux.HandleFunc("/api/forms", rt.handleForms)            // POST (owner), GET (owner)
	mux.HandleFunc("/api/forms/", rt.handleFormScoped)      // GET /api/forms/{id}, DELETE /api/forms/{id}
	mux.HandleFunc("/api/responses", rt.handleSubmit)       // POST (public)
	mux.HandleFunc("/api/responses/", rt.handleResponseScoped)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors to HTTP statuses. Storage and unknown
// failures are logged and surfaced as an opaque server error.
func writeError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorStorage:
			log.Printf("api: storage failure: %v", se)
			writeJSON(w, status, map[string]any{"message": "server error, try again"})
			return
		}
		body := map[string]any{"message": se.Message}
		if se.Rule != "" {
			body["rule"] = se.Rule
		}
		writeJSON(w, status, body)
		return
	}
	log.Printf("api: internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "server error, try again"})
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		AdminCode string `json:"adminCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Register(req.Name, req.Email, req.Password, req.AdminCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user_id": res.UserID})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user_id": res.UserID})
}

// POST /api/forms (create), GET /api/forms (owner listing)
func (rt *Router) handleForms(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.OwnerIDFromContext(r.Context())
	switch r.Method {
	case http.MethodPost:
		var def services.FormDefinition
		if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		form, err := rt.forms.CreateForm(ownerID, def)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, form)
	case http.MethodGet:
		forms, err := rt.forms.ListForms(ownerID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, forms)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/forms/{id} (public), DELETE /api/forms/{id} (owner)
func (rt *Router) handleFormScoped(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/forms/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		form, err := rt.forms.GetForm(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, form)
	case http.MethodDelete:
		ownerID, ok := middleware.OwnerIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err := rt.forms.DeleteForm(id, ownerID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "form deleted"})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// POST /api/responses — public submission endpoint.
// { formId: string, answers: { <questionId>: <value> } }
func (rt *Router) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		FormID  string         `json:"formId"`
		Answers map[string]any `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := rt.responses.SubmitResponse(req.FormID, req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "Response submitted!", "responseId": id})
}

// GET /api/responses/form/{formId} (owner)
// GET /api/responses/summary/{formId}
// GET /api/responses/export/{formId}
func (rt *Router) handleResponseScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/responses/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] == "" {
		http.NotFound(w, r)
		return
	}
	formID := parts[1]
	switch parts[0] {
	case "form":
		ownerID, ok := middleware.OwnerIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		rs, err := rt.responses.ListResponses(formID, ownerID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rs)
	case "summary":
		summary, err := rt.summaries.Summarize(formID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
	case "export":
		res, err := rt.exports.ExportCSV(formID)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", res.ContentType)
		w.Header().Set("Content-Disposition", "attachment; filename="+res.Filename)
		_, _ = w.Write(res.Data)
	default:
		http.NotFound(w, r)
	}
}
