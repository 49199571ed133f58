package jobshop

// Mutate draws two indices and swaps the tasks only when they differ and
// belong to the same job, then re-evaluates. It reports whether a swap happened.
// Fewer than two tasks, equal indices or different jobs leave the individual unchanged.
func Mutate(individual *Individual, random Randomizer) bool {
	if individual == nil || len(individual.Tasks) < 2 {
		return false
	}

	ix1 := random.Intn(len(individual.Tasks))
	ix2 := random.Intn(len(individual.Tasks))

	if ix1 == ix2 {
		return false
	}

	if individual.Tasks[ix1].JobID != individual.Tasks[ix2].JobID {
		return false
	}

	individual.Tasks[ix1], individual.Tasks[ix2] = individual.Tasks[ix2], individual.Tasks[ix1]

	Evaluate(individual)

	return true
}
