package jobshop

import (
	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

type ParamsInitializePopulation struct {
	Jobs   Jobs       `valid:"-"`
	Random Randomizer `valid:"-"`

	PopulationSize int `valid:"required"`
}

func (params *ParamsInitializePopulation) IsValid() error {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return goerrors.ErrServiceValidation{
			ServiceName: "Population",
			Caller:      "InitializePopulation",
			Issue:       errValidation,
		}
	}

	if params.PopulationSize <= 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsInitializePopulation",
			Issue: goerrors.ErrNegativeInput{
				InputName: "PopulationSize",
			},
		}
	}

	if params.Random == nil {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsInitializePopulation",
			Issue: goerrors.ErrNilInput{
				InputName: "Random",
			},
		}
	}

	return params.Jobs.IsValid()
}

// InitializePopulation builds feasible individuals: per individual the job
// order is shuffled, then each job's operations are timed greedily in
// operation ID order against job precedence and subdivision availability.
// The shuffle is the only source of diversity.
func InitializePopulation(params *ParamsInitializePopulation) ([]*Individual, error) {
	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	operations := params.Jobs.ordered()
	jobIDs := params.Jobs.IDs()

	result := make([]*Individual, params.PopulationSize)

	for i := range params.PopulationSize {
		shuffle(jobIDs, params.Random)

		result[i] = buildIndividual(i, jobIDs, operations)
	}

	return result,
		nil
}

func buildIndividual(id int, jobIDs []int, operations map[int][]Operation) *Individual {
	individual := NewIndividual(id)
	occupancy := make(subdivisions)

	for _, jobID := range jobIDs {
		var previousEnd int64

		for _, op := range operations[jobID] {
			task := NewTask(op)

			occupancy.place(task, previousEnd)
			previousEnd = task.TimeEnd()

			individual.AddTask(task)
		}
	}

	individual.Fitness = individual.Makespan()

	return individual
}
