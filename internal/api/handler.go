// Package api serves the dashboard numbers as JSON.
package api

import (
	"encoding/json"
	"net/http"

	"cogdash/domain/survey"
	"cogdash/internal"
	"cogdash/internal/analysis"
	"cogdash/internal/errors"
	"cogdash/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler answers /api requests. Like the page, every request loads the
// source file once and computes from that table only.
type Handler struct {
	loader ports.TableLoader
	log    *internal.Logger
}

// NewHandler creates the JSON API handler
func NewHandler(loader ports.TableLoader, logger *internal.Logger) *Handler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Handler{loader: loader, log: logger.With("API")}
}

// Routes returns the chi router. Paths keep their /api prefix so the router
// can be mounted as-is under another engine.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Cache-Control", "no-store"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", h.handleSummary)
		r.Get("/records", h.handleRecords)
	})
	return r
}

// RecordsResponse is the body of GET /api/records
type RecordsResponse struct {
	Filter  string          `json:"filter"`
	Count   int             `json:"count"`
	Records []survey.Record `json:"records"`
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	table, filter, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysis.Summarize(table, filter))
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	table, filter, ok := h.load(w, r)
	if !ok {
		return
	}
	records := filter.Apply(table).Records()
	writeJSON(w, http.StatusOK, RecordsResponse{
		Filter:  filter.String(),
		Count:   len(records),
		Records: records,
	})
}

// load parses the filter and reads the table, answering the request itself on failure
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*survey.Table, survey.Filter, bool) {
	filter, err := survey.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, errors.InvalidInput(err.Error()))
		return nil, survey.FilterNone, false
	}

	table, err := h.loader.Load(r.Context())
	if err != nil {
		h.log.Error("%s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, err)
		return nil, survey.FilterNone, false
	}
	return table, filter, true
}

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), ErrorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
