package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caain/soilhub/internal/events"
	"github.com/caain/soilhub/internal/fertilizer"
	"github.com/caain/soilhub/internal/location"
	"github.com/caain/soilhub/internal/store"
)

func NewRouter(s store.Store, svc *fertilizer.Service, validator *location.Validator, ev events.Client, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	recs := NewRecommendationsHandler(svc, s)
	opt := NewOptimizerHandler()
	monitors := NewMonitorsHandler(s, ev)
	validate := NewValidationHandler(validator)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(FarmIDMiddleware)

		r.Post("/recommendations", recs.Create)
		r.Get("/recommendations", recs.List)
		r.Get("/recommendations/{id}", recs.Get)

		r.Post("/optimizer/run", opt.Run)

		r.Post("/locations/validate", validate.Coordinates)
		r.Post("/fields/validate", validate.Field)

		r.Post("/drought/monitors", monitors.Create)
		r.Get("/drought/monitors", monitors.List)
		r.Get("/drought/monitors/{id}", monitors.Get)
		r.Patch("/drought/monitors/{id}", monitors.Update)
		r.Delete("/drought/monitors/{id}", monitors.Delete)
		r.Get("/drought/monitors/{id}/status", monitors.Status)
		r.Get("/drought/alerts", monitors.Alerts)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
			r.Post("/drought/monitors/{id}/pause", monitors.Pause)
			r.Post("/drought/monitors/{id}/resume", monitors.Resume)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
