package jobshop

import (
	"io"
	"log/slog"
)

func idOf(individual *Individual) int {
	if individual == nil {
		return 0
	}

	return individual.ID
}

// fittest returns the individual with the lowest fitness, first one on ties.
func fittest(population []*Individual) *Individual {
	var result *Individual

	for _, individual := range population {
		if result == nil || individual.Fitness < result.Fitness {
			result = individual
		}
	}

	return result
}

func converged(population []*Individual, fitness int64) bool {
	for _, individual := range population {
		if individual.Fitness != fitness {
			return false
		}
	}

	return true
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
