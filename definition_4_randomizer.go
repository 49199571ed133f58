package jobshop

import "math/rand"

// Randomizer is the single source of randomness threaded through
// initialization, selection and mutation. *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
	Float64() float64
}

func NewRandomizer(seed int64) Randomizer {
	return rand.New(rand.NewSource(seed))
}

// shuffle is an in place Fisher-Yates shuffle.
func shuffle[T any](items []T, random Randomizer) {
	for i := len(items) - 1; i > 0; i-- {
		j := random.Intn(i + 1)

		items[i], items[j] = items[j], items[i]
	}
}
