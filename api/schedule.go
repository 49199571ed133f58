package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/TudorHulban/jobshop"
	"github.com/TudorHulban/jobshop/cache"
	"github.com/TudorHulban/jobshop/config"
	"github.com/TudorHulban/jobshop/export"
	"github.com/TudorHulban/jobshop/loader"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type TaskView struct {
	Subdivision string `json:"subdivision"`
	JobID       int    `json:"job_id"`
	OperationID int    `json:"operation_id"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Duration    int64  `json:"duration"`
}

func newTaskViews(tasks []*jobshop.Task) []TaskView {
	result := make([]TaskView, len(tasks))

	for ix, task := range tasks {
		result[ix] = TaskView{
			Subdivision: task.Subdivision,
			JobID:       task.JobID,
			OperationID: task.OperationID,
			Start:       task.TimeStart,
			End:         task.TimeEnd(),
			Duration:    task.Duration,
		}
	}

	return result
}

type ScheduleResponse struct {
	RunID       string                    `json:"run_id"`
	Source      string                    `json:"source"`
	Termination jobshop.TerminationReason `json:"termination"`

	Makespan    int64 `json:"makespan"`
	Generations int   `json:"generations"`
	Seed        int64 `json:"seed"`
	Cached      bool  `json:"cached"`

	Tasks      []TaskView        `json:"tasks"`
	Statistics export.Statistics `json:"statistics"`
}

// ParamsRequest overrides the configured GA settings; nil fields keep them.
type ParamsRequest struct {
	PopulationSize *int     `json:"population_size" validate:"omitempty,gt=0"`
	MaxGenerations *int     `json:"max_generations" validate:"omitempty,gt=0"`
	TournamentSize *int     `json:"tournament_size" validate:"omitempty,gt=0"`
	MutationRate   *float64 `json:"mutation_rate" validate:"omitempty,gte=0,lt=1"`
	Seed           *int64   `json:"seed"`
}

func (params *ParamsRequest) apply(ga config.GA) config.GA {
	if params == nil {
		return ga
	}

	if params.PopulationSize != nil {
		ga.PopulationSize = *params.PopulationSize
	}

	if params.MaxGenerations != nil {
		ga.MaxGenerations = *params.MaxGenerations
	}

	if params.TournamentSize != nil {
		ga.TournamentSize = *params.TournamentSize
	}

	if params.MutationRate != nil {
		ga.MutationRate = *params.MutationRate
	}

	if params.Seed != nil {
		ga.Seed = *params.Seed
	}

	return ga
}

type OperationRequest struct {
	Subdivision string `json:"subdivision" validate:"required"`
	JobID       int    `json:"job_id" validate:"gte=0"`
	OperationID int    `json:"operation_id" validate:"gte=0"`
	Duration    int64  `json:"duration" validate:"gt=0"`
}

type ScheduleRequest struct {
	Jobs   []OperationRequest `json:"jobs" validate:"required,min=1,dive"`
	Params *ParamsRequest     `json:"params"`
}

func (req *ScheduleRequest) jobs() jobshop.Jobs {
	result := make(jobshop.Jobs)

	for _, op := range req.Jobs {
		result[op.JobID] = append(
			result[op.JobID],
			jobshop.Operation{
				JobID:       op.JobID,
				OperationID: op.OperationID,
				Subdivision: op.Subdivision,
				Duration:    op.Duration,
			},
		)
	}

	return result
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "ok", nil)
}

func (h *Handler) GetJobFiles(w http.ResponseWriter, r *http.Request) {
	names, err := loader.ListJobFiles(h.config.Jobs.Dir)
	if err != nil {
		h.internalServerError(w, r, err)

		return
	}

	h.successResponse(w, r, "job sets listed", names)
}

func parseQueryOverrides(r *http.Request) (*ParamsRequest, error) {
	query := r.URL.Query()

	var result ParamsRequest

	for key, target := range map[string]**int{
		"population":  &result.PopulationSize,
		"generations": &result.MaxGenerations,
		"tournament":  &result.TournamentSize,
	} {
		if !query.Has(key) {
			continue
		}

		value, err := strconv.Atoi(query.Get(key))
		if err != nil {
			return nil,
				errors.New("invalid " + key + ": " + query.Get(key))
		}

		*target = &value
	}

	if query.Has("mutation") {
		value, err := strconv.ParseFloat(query.Get("mutation"), 64)
		if err != nil {
			return nil,
				errors.New("invalid mutation: " + query.Get("mutation"))
		}

		result.MutationRate = &value
	}

	if query.Has("seed") {
		value, err := strconv.ParseInt(query.Get("seed"), 10, 64)
		if err != nil {
			return nil,
				errors.New("invalid seed: " + query.Get("seed"))
		}

		result.Seed = &value
	}

	return &result,
		nil
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	if !loader.IsJobFileName(file) {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid job set name")

		return
	}

	overrides, err := parseQueryOverrides(r)
	if err != nil {
		h.badRequest(w, r, err)

		return
	}

	if err := h.validate.Struct(overrides); err != nil {
		h.badRequest(w, r, err)

		return
	}

	content, err := os.ReadFile(filepath.Join(h.config.Jobs.Dir, file))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			h.notFound(w, r, "job set not found")

			return
		}

		h.internalServerError(w, r, err)

		return
	}

	jobs, err := loader.Load(
		bytes.NewReader(content),
		h.logger.With("file", file),
	)
	if err != nil {
		if errors.Is(err, jobshop.ErrNoJobs) {
			h.badRequest(w, r, err)

			return
		}

		h.internalServerError(w, r, err)

		return
	}

	h.schedule(
		w, r,
		origin{
			source:   file,
			cacheKey: cache.FileSource(file, content),
			label:    file,
		},
		jobs,
		overrides.apply(h.config.GA),
	)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)

		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.badRequest(w, r, err)

		return
	}

	jobs := req.jobs()
	if err := jobs.IsValid(); err != nil {
		h.badRequest(w, r, err)

		return
	}

	content, err := json.Marshal(req.Jobs)
	if err != nil {
		h.internalServerError(w, r, err)

		return
	}

	source := cache.ContentSource(content)

	h.schedule(
		w, r,
		origin{
			source:   source,
			cacheKey: source,
			label:    labelInline,
		},
		jobs,
		req.Params.apply(h.config.GA),
	)
}

const labelInline = "inline"

// origin describes where a job set came from.
// File-backed sets are cached by content so edits are picked up,
// and metrics are labelled by file name or labelInline to keep label values bounded.
type origin struct {
	source   string
	cacheKey string
	label    string
}

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request, from origin, jobs jobshop.Jobs, ga config.GA) {
	if err := ga.Params(jobs, nil, nil).IsValidSettings(); err != nil {
		h.badRequest(w, r, err)

		return
	}

	response, err := h.solve(r.Context(), from, jobs, ga)
	if err != nil {
		h.internalServerError(w, r, err)

		return
	}

	h.successResponse(w, r, "schedule computed", response)
}

func (h *Handler) solve(ctx context.Context, from origin, jobs jobshop.Jobs, ga config.GA) (*ScheduleResponse, error) {
	runID := uuid.NewString()

	var key string

	if h.cache != nil && cache.Cacheable(ga) {
		key = cache.Key(from.cacheKey, ga)

		entry, found, err := h.cache.Get(ctx, key)
		if err != nil {
			h.logger.Warn("cache read failed", "key", key, "error", err)
		}

		if found {
			h.metrics.cacheHits.Inc()

			return &ScheduleResponse{
					RunID:       runID,
					Source:      from.source,
					Termination: entry.Termination,
					Makespan:    entry.Makespan,
					Generations: entry.Generations,
					Seed:        ga.Seed,
					Cached:      true,
					Tasks:       newTaskViews(entry.Tasks),
					Statistics:  entry.Statistics,
				},
				nil
		}
	}

	seed := ga.EffectiveSeed()

	solver, err := jobshop.NewSolver(
		ga.Params(
			jobs,
			jobshop.NewRandomizer(seed),
			h.logger.With("run", runID, "source", from.source),
		),
	)
	if err != nil {
		return nil,
			err
	}

	result, err := solver.Solve(ctx)
	if err != nil {
		return nil,
			err
	}

	tasks := export.Finalize(result.Best)
	statistics := export.ComputeStatistics(tasks)

	h.metrics.solves.WithLabelValues(string(result.Termination)).Inc()
	h.metrics.solveDuration.Observe(result.Duration.Seconds())
	h.metrics.bestMakespan.WithLabelValues(from.label).Set(float64(result.Best.Fitness))

	if len(key) > 0 {
		if err := h.cache.Set(
			ctx,
			key,
			&cache.Entry{
				Tasks:       tasks,
				Statistics:  statistics,
				Termination: result.Termination,
				Makespan:    result.Best.Fitness,
				Generations: result.Generations,
				CreatedAt:   time.Now(),
			},
		); err != nil {
			h.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return &ScheduleResponse{
			RunID:       runID,
			Source:      from.source,
			Termination: result.Termination,
			Makespan:    result.Best.Fitness,
			Generations: result.Generations,
			Seed:        seed,
			Tasks:       newTaskViews(tasks),
			Statistics:  statistics,
		},
		nil
}
