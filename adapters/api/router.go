// Package api exposes the dashboard panels as JSON for the browser.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gohappy/app"
	"gohappy/domain/figure"
	"gohappy/domain/happiness"
	"gohappy/internal"
	"gohappy/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var logger = internal.DefaultLogger.With("API")

// Prefix is the path the router is mounted under
const Prefix = "/api"

// Reloader refreshes the dataset behind the dashboard
type Reloader interface {
	Reload(ctx context.Context) (*happiness.Dataset, error)
	LoadedAt() time.Time
}

// Handler serves the JSON API
type Handler struct {
	dashboard *app.DashboardService
	reloader  Reloader
	router    *chi.Mux
}

// NewHandler creates the API router. reloader may be nil, which disables POST /api/reload.
func NewHandler(dashboard *app.DashboardService, reloader Reloader) *Handler {
	h := &Handler{
		dashboard: dashboard,
		reloader:  reloader,
		router:    chi.NewRouter(),
	}

	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.Logger)
	h.router.Use(middleware.Recoverer)
	h.router.Use(middleware.Compress(5))

	h.router.Route(Prefix, func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/options", h.handleOptions)
		r.Get("/detail", h.handleDetail)
		r.Get("/explanation", h.handleExplanation)
		r.Get("/heatmap", h.handleHeatmap)
		r.Get("/scatter", h.handleScatter)
		r.Get("/worldmap", h.handleWorldMap)
		r.Get("/sample/scatter", h.handleSampleScatter)
		r.Get("/dashboard", h.handleDashboard)
		if reloader != nil {
			r.Post("/reload", h.handleReload)
		}
	})

	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{"status": "ok"}
	if h.reloader != nil {
		if at := h.reloader.LoadedAt(); !at.IsZero() {
			body["loaded_at"] = at.UTC().Format(time.RFC3339)
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	panel, err := h.dashboard.Options(r.Context())
	respond(w, panel, err)
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	panel, err := h.dashboard.CountryDetail(r.Context(), q.Get("country"), q.Get("year"))
	respond(w, panel, err)
}

func (h *Handler) handleExplanation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	panel, err := h.dashboard.Explanation(r.Context(), q.Get("country"), q.Get("first"), q.Get("second"))
	respond(w, panel, err)
}

func (h *Handler) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	panel, err := h.dashboard.Heatmap(r.Context(), r.URL.Query().Get("country"))
	respond(w, panel, err)
}

func (h *Handler) handleScatter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	panel, err := h.dashboard.ScatterPlot(r.Context(), q.Get("country"), q.Get("first"), q.Get("second"))
	respond(w, panel, err)
}

func (h *Handler) handleWorldMap(w http.ResponseWriter, r *http.Request) {
	panel, err := h.dashboard.WorldMap(r.Context())
	respond(w, panel, err)
}

func (h *Handler) handleSampleScatter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, figure.SampleScatter())
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := app.Selection{
		Country: q.Get("country"),
		Year:    q.Get("year"),
		First:   q.Get("first"),
		Second:  q.Get("second"),
	}
	view, err := h.dashboard.Dashboard(r.Context(), sel)
	respond(w, view, err)
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	ds, err := h.reloader.Reload(r.Context())
	if err != nil {
		writeError(w, errors.Wrap(err, "failed to reload dataset"))
		return
	}
	logger.Info("dataset reloaded: %d records", ds.Len())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records":   ds.Len(),
		"countries": len(ds.CountryNames()),
		"years":     ds.Years(),
	})
}

func respond(w http.ResponseWriter, body interface{}, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed: %v", err)
	} else {
		logger.Debug("request rejected: %v", err)
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
