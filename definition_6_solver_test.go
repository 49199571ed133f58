package jobshop

import (
	"context"
	"testing"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/stretchr/testify/require"
)

func TestSolver(t *testing.T) {
	t.Run(
		"1. valid best, non increasing history",
		func(t *testing.T) {
			params := DefaultParamsNewSolver(jobsFixture(), NewRandomizer(5))
			params.PopulationSize = 20
			params.MaxGenerations = 30
			params.MutationRate = 0.3

			solver, errCr := NewSolver(params)
			require.NoError(t, errCr)
			require.Equal(t, StateInitializing, solver.State())

			result, errSolve := solver.Solve(context.Background())
			require.NoError(t, errSolve)
			require.Equal(t, StateTerminated, solver.State())

			require.NotNil(t, result.Best)
			require.NoError(t, Validate(result.Best))
			require.Len(t, result.Best.Tasks, params.Jobs.NumberOperations())
			require.Equal(t,
				result.Best.Makespan(),
				result.Best.Fitness,
			)

			require.Len(t, result.History, result.Generations+1)

			for ix := 1; ix < len(result.History); ix++ {
				require.LessOrEqual(t,
					result.History[ix],
					result.History[ix-1],
				)
			}

			require.Equal(t,
				result.History[len(result.History)-1],
				result.Best.Fitness,
			)
		},
	)

	t.Run(
		"2. single task stagnates",
		func(t *testing.T) {
			params := DefaultParamsNewSolver(
				Jobs{
					1: {{JobID: 1, OperationID: 1, Subdivision: "A", Duration: 5}},
				},
				NewRandomizer(1),
			)
			params.PopulationSize = 4
			params.MaxGenerations = 100

			solver, errCr := NewSolver(params)
			require.NoError(t, errCr)

			result, errSolve := solver.Solve(context.Background())
			require.NoError(t, errSolve)

			require.Equal(t, TerminationStagnation, result.Termination)
			require.Equal(t, StagnationLimit, result.Generations)
			require.EqualValues(t, 5, result.Best.Fitness)
		},
	)

	t.Run(
		"3. generation cap",
		func(t *testing.T) {
			params := DefaultParamsNewSolver(jobsFixture(), NewRandomizer(9))
			params.PopulationSize = 6
			params.MaxGenerations = 3

			solver, errCr := NewSolver(params)
			require.NoError(t, errCr)

			result, errSolve := solver.Solve(context.Background())
			require.NoError(t, errSolve)

			require.Equal(t, TerminationGenerationCap, result.Termination)
			require.Equal(t, 3, result.Generations)
			require.GreaterOrEqual(t,
				result.Evaluations,
				params.PopulationSize*(params.MaxGenerations+1),
			)
		},
	)

	t.Run(
		"4. cancelled context",
		func(t *testing.T) {
			solver, errCr := NewSolver(
				DefaultParamsNewSolver(jobsFixture(), NewRandomizer(2)),
			)
			require.NoError(t, errCr)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, errSolve := solver.Solve(ctx)
			require.ErrorIs(t, errSolve, context.Canceled)

			require.NotNil(t, result)
			require.Equal(t, TerminationCancelled, result.Termination)
			require.Zero(t, result.Generations)
			require.NoError(t, Validate(result.Best))
		},
	)

	t.Run(
		"5. same seed, same result",
		func(t *testing.T) {
			solve := func() *Result {
				params := DefaultParamsNewSolver(jobsFixture(), NewRandomizer(77))
				params.PopulationSize = 10
				params.MaxGenerations = 15
				params.Workers = 4

				solver, errCr := NewSolver(params)
				require.NoError(t, errCr)

				result, errSolve := solver.Solve(context.Background())
				require.NoError(t, errSolve)

				return result
			}

			first := solve()
			second := solve()

			require.Equal(t, first.History, second.History)
			require.Equal(t, first.Best.Fitness, second.Best.Fitness)
		},
	)
}

func TestNewSolverErrors(t *testing.T) {
	valid := func() *ParamsNewSolver {
		return DefaultParamsNewSolver(jobsFixture(), NewRandomizer(1))
	}

	tests := []struct {
		name   string
		modify func(*ParamsNewSolver)
	}{
		{
			name:   "1. zero population",
			modify: func(p *ParamsNewSolver) { p.PopulationSize = 0 },
		},
		{
			name:   "2. negative generations",
			modify: func(p *ParamsNewSolver) { p.MaxGenerations = -1 },
		},
		{
			name:   "3. negative tournament",
			modify: func(p *ParamsNewSolver) { p.TournamentSize = -3 },
		},
		{
			name:   "4. mutation rate of one",
			modify: func(p *ParamsNewSolver) { p.MutationRate = 1 },
		},
		{
			name:   "5. negative mutation rate",
			modify: func(p *ParamsNewSolver) { p.MutationRate = -0.1 },
		},
		{
			name:   "6. no randomizer",
			modify: func(p *ParamsNewSolver) { p.Random = nil },
		},
		{
			name:   "7. negative workers",
			modify: func(p *ParamsNewSolver) { p.Workers = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				params := valid()
				tt.modify(params)

				solver, errCr := NewSolver(params)
				require.Error(t, errCr)
				require.Nil(t, solver)
			},
		)
	}

	t.Run(
		"8. typed validation error",
		func(t *testing.T) {
			params := valid()
			params.MutationRate = 2

			_, errCr := NewSolver(params)

			var errValidation goerrors.ErrValidation
			require.ErrorAs(t, errCr, &errValidation)
		},
	)

	t.Run(
		"9. no jobs",
		func(t *testing.T) {
			_, errCr := NewSolver(
				DefaultParamsNewSolver(Jobs{}, NewRandomizer(1)),
			)
			require.ErrorIs(t, errCr, ErrNoJobs)
		},
	)
}

// twoStepPopulation holds two feasible copies of one job with two
// operations on different subdivisions. Swapping the operations breaks precedence.
func twoStepPopulation() []*Individual {
	population := []*Individual{
		individualOf(0, newTask(1, 1, "A", 1), newTask(1, 2, "B", 1)),
		individualOf(1, newTask(1, 1, "A", 1), newTask(1, 2, "B", 1)),
	}

	EvaluatePopulation(population, 1)

	return population
}

func TestEvolveRepair(t *testing.T) {
	// draws per slot: two selections, mutation of the child,
	// choice of the repair source, mutation of the repair copy
	tests := []struct {
		name string
		ints []int
	}{
		{
			name: "1. repair copy left unchanged",
			ints: []int{0, 1, 0, 1, 1, 0, 0},
		},
		{
			name: "2. repair mutation breaks precedence, plain copy kept",
			ints: []int{0, 1, 0, 1, 1, 0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				population := twoStepPopulation()

				solver := Solver{
					random: &stubRandom{
						ints:   tt.ints,
						floats: []float64{0},
					},
					logger: loggerOrDiscard(nil),
					best:   fittest(population).Clone(),

					populationSize: len(population),
					tournamentSize: 1,
					workers:        1,
					mutationRate:   0.5,
				}

				next, stats := solver.evolve(population)

				require.Len(t, next, solver.populationSize)
				require.Equal(t, solver.populationSize, stats.repairs)
				require.Equal(t, 2*solver.populationSize, stats.evaluations)
				require.False(t, stats.improved)

				for slot, individual := range next {
					require.Equal(t, slot, individual.ID)
					require.NoError(t, Validate(individual))
					require.EqualValues(t, 2, individual.Fitness)
				}

				require.NoError(t, Validate(solver.best))
				require.EqualValues(t, 2, solver.best.Fitness)
			},
		)
	}
}

func TestStagnation(t *testing.T) {
	population := twoStepPopulation()

	solver := Solver{
		best:       individualOf(9, newTask(1, 1, "A", 5)),
		stagnation: 3,
	}
	solver.best.Fitness = 5

	t.Run(
		"1. improvement resets",
		func(t *testing.T) {
			require.True(t, solver.consider(population[0]))
			require.Zero(t, solver.stagnation)
			require.EqualValues(t, 2, solver.best.Fitness)
		},
	)

	t.Run(
		"2. converged generation counts after the reset",
		func(t *testing.T) {
			solver.updateStagnation(population)
			require.Equal(t, 1, solver.stagnation)
		},
	)

	t.Run(
		"3. diverse generation does not count",
		func(t *testing.T) {
			population[1].Fitness = 7

			solver.updateStagnation(population)
			require.Equal(t, 1, solver.stagnation)

			require.False(t, solver.consider(population[1]))
		},
	)
}
