package jobshop

import goerrors "github.com/TudorHulban/go-errors"

// SelectTournament draws tournamentSize individuals uniformly with replacement
// and returns the one with the lowest fitness. Stored fitness is reused.
// Ties keep the earlier draw.
func SelectTournament(population []*Individual, tournamentSize int, random Randomizer) (*Individual, error) {
	if len(population) == 0 {
		return nil,
			goerrors.ErrInvalidInput{
				Caller:     "SelectTournament",
				InputName:  "population",
				InputValue: 0,
				Issue:      ErrOutOfRange,
			}
	}

	if random == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "SelectTournament",
				Issue: goerrors.ErrNilInput{
					InputName: "random",
				},
			}
	}

	var winner *Individual

	for range max(tournamentSize, 1) {
		candidate := population[random.Intn(len(population))]

		if winner == nil || candidate.Fitness < winner.Fitness {
			winner = candidate
		}
	}

	return winner,
		nil
}
