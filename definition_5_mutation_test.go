package jobshop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMutate(t *testing.T) {
	t.Run(
		"1. equal indices",
		func(t *testing.T) {
			individual := individualOf(
				0,
				newTask(1, 1, "A", 2),
				newTask(1, 2, "B", 3),
			)

			require.False(t,
				Mutate(individual, &stubRandom{ints: []int{0, 0}}),
			)
			require.Equal(t, 1, individual.Tasks[0].OperationID)
		},
	)

	t.Run(
		"2. same job swaps",
		func(t *testing.T) {
			individual := individualOf(
				0,
				newTask(1, 1, "A", 2),
				newTask(1, 2, "B", 3),
			)

			require.True(t,
				Mutate(individual, &stubRandom{ints: []int{0, 1}}),
			)
			require.Equal(t, 2, individual.Tasks[0].OperationID)
			require.Equal(t, 1, individual.Tasks[1].OperationID)

			// successor timed first
			require.ErrorIs(t,
				Validate(individual),
				ErrPrecedenceViolated,
			)
		},
	)

	t.Run(
		"3. different jobs",
		func(t *testing.T) {
			individual := individualOf(
				0,
				newTask(1, 1, "A", 2),
				newTask(2, 1, "B", 3),
			)

			require.False(t,
				Mutate(individual, &stubRandom{ints: []int{0, 1}}),
			)
			require.Equal(t, 1, individual.Tasks[0].JobID)
		},
	)

	t.Run(
		"4. fewer than two tasks",
		func(t *testing.T) {
			random := &stubRandom{ints: []int{0, 1}}

			require.False(t,
				Mutate(individualOf(0, newTask(1, 1, "A", 2)), random),
			)
			require.False(t,
				Mutate(NewIndividual(0), random),
			)
			require.False(t,
				Mutate(nil, random),
			)
		},
	)

	t.Run(
		"5. task set preserved",
		func(t *testing.T) {
			individual := individualOf(
				0,
				newTask(1, 1, "A", 2),
				newTask(2, 1, "B", 3),
				newTask(1, 2, "B", 4),
			)

			before := taskSet(individual.Tasks)

			Mutate(individual, &stubRandom{ints: []int{0, 2}})

			require.Equal(t,
				before,
				taskSet(individual.Tasks),
			)
		},
	)
}
