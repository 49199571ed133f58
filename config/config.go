package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/TudorHulban/jobshop"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. JOBSHOP_GA_POPULATION_SIZE.
const EnvPrefix = "JOBSHOP_"

type GA struct {
	PopulationSize int     `yaml:"population_size" env:"POPULATION_SIZE"`
	MaxGenerations int     `yaml:"max_generations" env:"MAX_GENERATIONS"`
	TournamentSize int     `yaml:"tournament_size" env:"TOURNAMENT_SIZE"`
	MutationRate   float64 `yaml:"mutation_rate" env:"MUTATION_RATE"`
	Workers        int     `yaml:"workers" env:"WORKERS"`

	// Seed 0 draws a seed from the clock on every solve.
	Seed int64 `yaml:"seed" env:"SEED"`
}

// Params maps the GA section onto solver parameters.
func (ga GA) Params(jobs jobshop.Jobs, random jobshop.Randomizer, logger *slog.Logger) *jobshop.ParamsNewSolver {
	return &jobshop.ParamsNewSolver{
		Jobs:   jobs,
		Random: random,
		Logger: logger,

		PopulationSize: ga.PopulationSize,
		MaxGenerations: ga.MaxGenerations,
		TournamentSize: ga.TournamentSize,
		MutationRate:   ga.MutationRate,
		Workers:        ga.Workers,
	}
}

// EffectiveSeed returns the configured seed, or a clock based one when unset.
func (ga GA) EffectiveSeed() int64 {
	if ga.Seed != 0 {
		return ga.Seed
	}

	return time.Now().UnixNano()
}

// Server timeouts are in seconds.
type Server struct {
	Port            string `yaml:"port" env:"PORT"`
	ReadTimeout     int    `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    int    `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout     int    `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout int    `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type Jobs struct {
	Dir string `yaml:"dir" env:"DIR"`
}

// Redis with an empty address disables the shared result cache.
type Redis struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`

	// TTL of cached results, in seconds.
	TTL int `yaml:"ttl" env:"TTL"`
}

type Log struct {
	Level string `yaml:"level" env:"LEVEL"`
}

type Config struct {
	GA     GA     `yaml:"ga" envPrefix:"GA_"`
	Server Server `yaml:"server" envPrefix:"SERVER_"`
	Jobs   Jobs   `yaml:"jobs" envPrefix:"JOBS_"`
	Redis  Redis  `yaml:"redis" envPrefix:"REDIS_"`
	Log    Log    `yaml:"log" envPrefix:"LOG_"`
}

func Default() *Config {
	return &Config{
		GA: GA{
			PopulationSize: 50,
			MaxGenerations: 100,
			TournamentSize: 5,
			MutationRate:   0.1,
			Workers:        runtime.NumCPU(),
		},
		Server: Server{
			Port:            "3000",
			ReadTimeout:     10,
			WriteTimeout:    60,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Jobs: Jobs{
			Dir: "jobs",
		},
		Redis: Redis{
			TTL: 3600,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load layers defaults, the optional YAML file at path and the environment,
// in this order, then validates the result.
func Load(path string) (*Config, error) {
	result := Default()

	if len(path) > 0 {
		content, errRead := os.ReadFile(path)
		if errRead != nil {
			return nil,
				fmt.Errorf("read config file: %w", errRead)
		}

		if errUnmarshal := yaml.Unmarshal(content, result); errUnmarshal != nil {
			return nil,
				fmt.Errorf("parse config file %s: %w", path, errUnmarshal)
		}
	}

	if errEnv := env.ParseWithOptions(
		result,
		env.Options{
			Prefix: EnvPrefix,
		},
	); errEnv != nil {
		var errAggregate env.AggregateError

		if errors.As(errEnv, &errAggregate) && len(errAggregate.Errors) > 0 {
			return nil,
				errAggregate.Errors[0]
		}

		return nil,
			errEnv
	}

	if errValidation := result.Validate(); errValidation != nil {
		return nil,
			errValidation
	}

	return result,
		nil
}

func (cfg *Config) Validate() error {
	if errGA := cfg.GA.Params(nil, nil, nil).IsValidSettings(); errGA != nil {
		return errGA
	}

	port, errPort := strconv.Atoi(cfg.Server.Port)
	if errPort != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port %q", cfg.Server.Port)
	}

	for name, seconds := range map[string]int{
		"read_timeout":     cfg.Server.ReadTimeout,
		"write_timeout":    cfg.Server.WriteTimeout,
		"idle_timeout":     cfg.Server.IdleTimeout,
		"shutdown_timeout": cfg.Server.ShutdownTimeout,
		"redis ttl":        cfg.Redis.TTL,
	} {
		if seconds < 0 {
			return fmt.Errorf("%s must not be negative: %d", name, seconds)
		}
	}

	if _, errLevel := cfg.Log.SlogLevel(); errLevel != nil {
		return errLevel
	}

	return nil
}

func (l Log) SlogLevel() (slog.Level, error) {
	var result slog.Level

	if errParse := result.UnmarshalText([]byte(l.Level)); errParse != nil {
		return slog.LevelInfo,
			fmt.Errorf("invalid log level %q: %w", l.Level, errParse)
	}

	return result,
		nil
}

func seconds(value int) time.Duration {
	return time.Duration(value) * time.Second
}

func (s Server) Addr() string {
	return ":" + s.Port
}

func (s Server) ReadTimeoutDuration() time.Duration     { return seconds(s.ReadTimeout) }
func (s Server) WriteTimeoutDuration() time.Duration    { return seconds(s.WriteTimeout) }
func (s Server) IdleTimeoutDuration() time.Duration     { return seconds(s.IdleTimeout) }
func (s Server) ShutdownTimeoutDuration() time.Duration { return seconds(s.ShutdownTimeout) }

func (r Redis) TTLDuration() time.Duration {
	return seconds(r.TTL)
}

// Enabled reports whether a Redis address is configured.
func (r Redis) Enabled() bool {
	return len(r.Addr) > 0
}
