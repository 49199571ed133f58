package jobshop

import (
	"context"
	"log/slog"
	"time"
)

type State uint8

const (
	StateInitializing State = iota
	StateEvolving
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateEvolving:
		return "evolving"
	case StateTerminated:
		return "terminated"
	}

	return "unknown"
}

type TerminationReason string

const (
	TerminationGenerationCap TerminationReason = "generation-cap"
	TerminationStagnation    TerminationReason = "stagnation"
	TerminationCancelled     TerminationReason = "cancelled"
)

type Result struct {
	// Best is the fittest valid individual seen in any generation.
	Best *Individual

	Termination TerminationReason

	// History holds the best known fitness after initialization
	// and after every completed generation.
	History []int64

	Generations int
	Evaluations int
	Repairs     int

	Duration time.Duration
}

type Solver struct {
	jobs   Jobs
	random Randomizer
	logger *slog.Logger

	best *Individual

	populationSize int
	maxGenerations int
	tournamentSize int
	workers        int
	stagnation     int

	mutationRate float64

	state State
}

func NewSolver(params *ParamsNewSolver) (*Solver, error) {
	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return &Solver{
			jobs:   params.Jobs,
			random: params.Random,
			logger: loggerOrDiscard(params.Logger),

			populationSize: params.PopulationSize,
			maxGenerations: params.MaxGenerations,
			tournamentSize: params.TournamentSize,
			workers:        params.Workers,
			mutationRate:   params.MutationRate,

			state: StateInitializing,
		},
		nil
}

func (s *Solver) State() State {
	return s.state
}

// Solve runs initialization then generations until the generation cap,
// stagnation or context cancellation. On cancellation the best result so far
// is returned together with the context error.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	timeStart := time.Now()

	s.state = StateInitializing
	s.stagnation = 0

	population, errInit := InitializePopulation(
		&ParamsInitializePopulation{
			Jobs:           s.jobs,
			Random:         s.random,
			PopulationSize: s.populationSize,
		},
	)
	if errInit != nil {
		return nil,
			errInit
	}

	EvaluatePopulation(population, s.workers)

	s.best = fittest(population).Clone()

	result := Result{
		Termination: TerminationGenerationCap,
		History:     []int64{s.best.Fitness},
		Evaluations: len(population),
	}

	s.logger.Debug(
		"population initialized",
		"size", len(population),
		"tasks", s.jobs.NumberOperations(),
		"best", s.best.Fitness,
	)

	s.state = StateEvolving

	for generation := range s.maxGenerations {
		if errCtx := ctx.Err(); errCtx != nil {
			result.Termination = TerminationCancelled

			return s.terminate(&result, timeStart),
				errCtx
		}

		next, stats := s.evolve(population)

		population = next

		result.Generations = generation + 1
		result.Evaluations = result.Evaluations + stats.evaluations
		result.Repairs = result.Repairs + stats.repairs

		s.updateStagnation(population)

		result.History = append(result.History, s.best.Fitness)

		s.logger.Debug(
			"generation completed",
			"generation", result.Generations,
			"best", s.best.Fitness,
			"improved", stats.improved,
			"repairs", stats.repairs,
			"stagnation", s.stagnation,
		)

		if s.stagnation >= StagnationLimit {
			result.Termination = TerminationStagnation

			break
		}
	}

	return s.terminate(&result, timeStart),
		nil
}

func (s *Solver) terminate(result *Result, timeStart time.Time) *Result {
	s.state = StateTerminated

	result.Best = s.best.Clone()
	result.Duration = time.Since(timeStart)

	s.logger.Info(
		"solve terminated",
		"reason", result.Termination,
		"generations", result.Generations,
		"makespan", result.Best.Fitness,
		"repairs", result.Repairs,
		"duration", result.Duration,
	)

	return result
}

type generationStats struct {
	evaluations int
	repairs     int
	improved    bool
}

// evolve fills one new generation of exactly populationSize individuals.
// Given a feasible population every member of the new generation is feasible.
func (s *Solver) evolve(population []*Individual) ([]*Individual, generationStats) {
	var stats generationStats

	next := make([]*Individual, 0, s.populationSize)

	for slot := range s.populationSize {
		child := s.offspring(population)
		child.ID = slot
		stats.evaluations++

		if errValidation := Validate(child); errValidation != nil {
			s.logger.Debug(
				"offspring rejected",
				"slot", slot,
				"error", errValidation,
			)

			child = s.repair(population, slot)
			stats.repairs++
			stats.evaluations++
		}

		if s.consider(child) {
			stats.improved = true
		}

		next = append(next, child)
	}

	return next,
		stats
}

func (s *Solver) offspring(population []*Individual) *Individual {
	// population is never empty here, selection cannot fail
	parent1, _ := SelectTournament(population, s.tournamentSize, s.random)
	parent2, _ := SelectTournament(population, s.tournamentSize, s.random)

	child := Crossover(parent1, parent2)

	if s.random.Float64() < s.mutationRate {
		Mutate(child, s.random)
	}

	Evaluate(child)

	return child
}

// repair replaces a rejected child with a mutated copy of a random
// member of the current population. A mutation that breaks feasibility
// is dropped and the plain copy is used instead.
func (s *Solver) repair(population []*Individual, slot int) *Individual {
	source := population[s.random.Intn(len(population))]

	substitute := source.Clone()
	substitute.ID = slot

	if Mutate(substitute, s.random) && !IsFeasible(substitute) {
		substitute = source.Clone()
		substitute.ID = slot
	}

	Evaluate(substitute)

	return substitute
}

// updateStagnation counts a generation as stagnant when every member
// has the best known fitness. Improvements reset the count in consider.
func (s *Solver) updateStagnation(population []*Individual) {
	if converged(population, s.best.Fitness) {
		s.stagnation++
	}
}

// consider records a valid individual as best when it improves the best known
// fitness, resetting the stagnation counter.
func (s *Solver) consider(individual *Individual) bool {
	if individual.Fitness >= s.best.Fitness {
		return false
	}

	s.best = individual.Clone()
	s.stagnation = 0

	return true
}
