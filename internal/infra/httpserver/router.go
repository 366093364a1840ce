package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appevals "github.com/bryanwahyu/pitchlens/internal/application/evaluations"
	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
	"github.com/bryanwahyu/pitchlens/internal/middleware"
)

type Router struct {
	evalSvc *appevals.Service
}

func NewRouter(evalSvc *appevals.Service) http.Handler {
	r := &Router{evalSvc: evalSvc}
	mux := chi.NewRouter()

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/pitches/evaluate", r.wrap(r.handleEvaluate))
		rt.Get("/pitches/latest", r.wrap(r.handleLatest))
		rt.Get("/pitches/{id}", r.wrap(r.handleGet))
		rt.Get("/summary", r.wrap(r.handleSummary))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows), errors.Is(err, domain.ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domain.ErrUnsupportedFormat):
				http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			case errors.Is(err, domain.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			case errors.Is(err, domain.ErrNoSource), errors.Is(err, domain.ErrMissingPitchID):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// POST /v1/{tenant}/pitches/evaluate
// Body: {"pitch_id": "...", "content": "...", "document_ref": "..."}
// Runs the full pipeline synchronously and returns its terminal record,
// either the completed report or the failure shape. Pipeline failures are
// carried inside the outcome, not as HTTP errors.
func (r *Router) handleEvaluate(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	var body struct {
		PitchID     string `json:"pitch_id"`
		Content     string `json:"content"`
		DocumentRef string `json:"document_ref"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidatePitchID(body.PitchID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMissingPitchID, err)
	}

	middleware.IncrementEvaluations()
	out, err := r.evalSvc.Evaluate(req.Context(), appevals.EvaluateCommand{
		Tenant:      tenant,
		PitchID:     body.PitchID,
		Content:     body.Content,
		DocumentRef: body.DocumentRef,
	})
	if err != nil {
		return err
	}
	if out.Status == domain.StatusFailed {
		middleware.IncrementEvaluationsFailed()
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(out)
}

// GET /v1/{tenant}/pitches/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.evalSvc.Latest(req.Context(), tenant, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/pitches/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	e, err := r.evalSvc.Get(req.Context(), tenant, domain.RunID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(e)
}

// GET /v1/{tenant}/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))

	summary, err := r.evalSvc.Summary(req.Context(), tenant, middleware.ValidateDays(days))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(summary)
}
