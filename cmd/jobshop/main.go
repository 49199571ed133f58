package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/TudorHulban/jobshop"
	"github.com/TudorHulban/jobshop/api"
	"github.com/TudorHulban/jobshop/cache"
	"github.com/TudorHulban/jobshop/config"
	"github.com/TudorHulban/jobshop/export"
	"github.com/TudorHulban/jobshop/loader"
)

type options struct {
	configPath string
	jobsPath   string
	csvOut     string

	serve bool
	quiet bool
}

func parseOptions() *options {
	var result options

	flag.StringVar(&result.configPath, "config", "", "YAML configuration file")
	flag.StringVar(&result.jobsPath, "jobs", "", "CSV job set to schedule")
	flag.StringVar(&result.csvOut, "csv-out", "", "write the schedule to this CSV file")
	flag.BoolVar(&result.serve, "serve", false, "start the HTTP API instead of a one-shot solve")
	flag.BoolVar(&result.quiet, "quiet", false, "skip the schedule table")
	flag.Parse()

	return &result
}

func main() {
	opts := parseOptions()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		slog.Error("could not load configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Log.SlogLevel()

	logger := slog.New(
		slog.NewTextHandler(
			os.Stderr,
			&slog.HandlerOptions{
				Level: level,
			},
		),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.serve {
		err = serve(ctx, cfg, logger)
	} else {
		err = solveOnce(ctx, cfg, opts, logger)
	}

	if err != nil {
		logger.Error("jobshop failed", "error", err)
		os.Exit(1)
	}
}

func solveOnce(ctx context.Context, cfg *config.Config, opts *options, logger *slog.Logger) error {
	if len(opts.jobsPath) == 0 {
		return errors.New("a job set is required, use -jobs")
	}

	jobs, err := loader.LoadFile(opts.jobsPath, logger)
	if err != nil {
		return err
	}

	seed := cfg.GA.EffectiveSeed()

	solver, err := jobshop.NewSolver(
		cfg.GA.Params(jobs, jobshop.NewRandomizer(seed), logger),
	)
	if err != nil {
		return err
	}

	result, err := solver.Solve(ctx)
	if err != nil && result == nil {
		return err
	}

	if err != nil {
		logger.Warn("solve interrupted, reporting best so far", "error", err)
	}

	tasks := export.Finalize(result.Best)

	if !opts.quiet {
		if err := export.PrintSchedule(os.Stdout, tasks, export.ParamsPrint{}); err != nil {
			return err
		}
	}

	if err := export.PrintStatistics(os.Stdout, export.ComputeStatistics(tasks)); err != nil {
		return err
	}

	fmt.Printf(
		"makespan %d after %d generations (%s, seed %d, %d repairs, %s)\n",
		result.Best.Fitness,
		result.Generations,
		result.Termination,
		seed,
		result.Repairs,
		result.Duration,
	)

	if len(opts.csvOut) == 0 {
		return nil
	}

	f, err := os.Create(opts.csvOut)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteCSV(f, tasks); err != nil {
		return err
	}

	logger.Info("schedule exported", "path", opts.csvOut)

	return nil
}

func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Cache, func()) {
	if !cfg.Redis.Enabled() {
		return cache.NewMemory(cfg.Redis.TTLDuration()),
			func() {}
	}

	rdb := cache.NewRedis(
		&cache.ParamsNewRedis{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTLDuration(),
		},
	)

	if err := rdb.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, using in-memory cache", "addr", cfg.Redis.Addr, "error", err)

		_ = rdb.Close()

		return cache.NewMemory(cfg.Redis.TTLDuration()),
			func() {}
	}

	return rdb,
		func() { _ = rdb.Close() }
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	resultCache, closeCache := newCache(ctx, cfg, logger)
	defer closeCache()

	handler, err := api.NewHandler(
		&api.ParamsNewHandler{
			Config: cfg,
			Cache:  resultCache,
			Logger: logger,
		},
	)
	if err != nil {
		return err
	}

	handler.RegisterRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.Mux,
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errServe := make(chan error, 1)

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port, "jobs", cfg.Jobs.Dir)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errServe <- err
		}

		close(errServe)
	}()

	select {
	case err := <-errServe:
		return err

	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")

	return nil
}
