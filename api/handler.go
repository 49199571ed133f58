package api

import (
	"log/slog"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/TudorHulban/jobshop/cache"
	"github.com/TudorHulban/jobshop/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	validate *validator.Validate
	config   *config.Config
	cache    cache.Cache
	metrics  *metrics
	logger   *slog.Logger

	Mux *chi.Mux
}

type ParamsNewHandler struct {
	Config *config.Config

	// Cache is optional; nil solves every request.
	Cache  cache.Cache
	Logger *slog.Logger
}

func NewHandler(params *ParamsNewHandler) (*Handler, error) {
	if params == nil || params.Config == nil {
		return nil,
			goerrors.ErrNilInput{
				InputName: "Config",
			}
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
			validate: validator.New(validator.WithRequiredStructEnabled()),
			config:   params.Config,
			cache:    params.Cache,
			metrics:  newMetrics(),
			logger:   logger,

			Mux: chi.NewRouter(),
		},
		nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestLogger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Health)
	h.Mux.Handle("/metrics", h.metrics.handler())

	h.Mux.Route("/api", func(r chi.Router) {
		r.Get("/csv-files", h.GetJobFiles)

		r.Route("/schedule", func(r chi.Router) {
			r.Post("/", h.CreateSchedule)
			r.Get("/{file}", h.GetSchedule)
		})
	})
}
