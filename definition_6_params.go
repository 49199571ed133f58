package jobshop

import (
	"errors"
	"log/slog"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

// StagnationLimit is the number of converged generations without
// improvement after which the solve stops early.
const StagnationLimit = 10

type ParamsNewSolver struct {
	Jobs   Jobs         `valid:"-"`
	Random Randomizer   `valid:"-"`
	Logger *slog.Logger `valid:"-"`

	PopulationSize int `valid:"required"`
	MaxGenerations int `valid:"required"`
	TournamentSize int `valid:"required"`

	// Workers above 1 evaluates the initial population concurrently.
	Workers int

	// MutationRate is the probability, in [0, 1), of mutating a child.
	MutationRate float64
}

func DefaultParamsNewSolver(jobs Jobs, random Randomizer) *ParamsNewSolver {
	return &ParamsNewSolver{
		Jobs:   jobs,
		Random: random,

		PopulationSize: 50,
		MaxGenerations: 100,
		TournamentSize: 5,
		MutationRate:   0.1,
		Workers:        1,
	}
}

// IsValidSettings checks the numeric settings only, leaving jobs and
// randomizer aside. Configuration layers use it before any job set is loaded.
func (params *ParamsNewSolver) IsValidSettings() error {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return goerrors.ErrServiceValidation{
			ServiceName: "Solver",
			Caller:      "NewSolver",
			Issue:       errValidation,
		}
	}

	for _, field := range []struct {
		name  string
		value int
	}{
		{"PopulationSize", params.PopulationSize},
		{"MaxGenerations", params.MaxGenerations},
		{"TournamentSize", params.TournamentSize},
	} {
		if field.value <= 0 {
			return goerrors.ErrValidation{
				Caller: "IsValid - ParamsNewSolver",
				Issue: goerrors.ErrNegativeInput{
					InputName: field.name,
				},
			}
		}
	}

	if params.Workers < 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewSolver",
			Issue: goerrors.ErrNegativeInput{
				InputName: "Workers",
			},
		}
	}

	if params.MutationRate < 0 || params.MutationRate >= 1 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewSolver",
			Issue: goerrors.ErrInvalidInput{
				InputName:  "MutationRate",
				InputValue: params.MutationRate,
				Issue: errors.New(
					"mutation rate must be in [0, 1)",
				),
			},
		}
	}

	return nil
}

func (params *ParamsNewSolver) IsValid() error {
	if errSettings := params.IsValidSettings(); errSettings != nil {
		return errSettings
	}

	if params.Random == nil {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewSolver",
			Issue: goerrors.ErrNilInput{
				InputName: "Random",
			},
		}
	}

	return params.Jobs.IsValid()
}
