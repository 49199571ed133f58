package jobshop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCrossover(t *testing.T) {
	t.Run(
		"1. complementary parents",
		func(t *testing.T) {
			parent1 := individualOf(4, newTask(2, 1, "A", 10))
			parent2 := individualOf(9, newTask(2, 2, "B", 20))

			child := Crossover(parent1, parent2)

			require.Equal(t, 4, child.ID)
			require.Len(t, child.Tasks, 2)
			require.Equal(t, 1, child.Tasks[0].OperationID)
			require.Equal(t, 2, child.Tasks[1].OperationID)
			require.EqualValues(t, 30, child.Fitness)
			require.NoError(t, Validate(child))
		},
	)

	t.Run(
		"2. shared tasks appear once",
		func(t *testing.T) {
			parent1 := individualOf(
				0,
				newTask(1, 1, "A", 3),
				newTask(1, 2, "B", 4),
			)
			parent2 := individualOf(
				1,
				newTask(1, 2, "B", 4),
				newTask(2, 1, "A", 5),
			)

			child := Crossover(parent1, parent2)

			require.Len(t, child.Tasks, 3)
			require.GreaterOrEqual(t, len(child.Tasks), len(parent1.Tasks))
			require.LessOrEqual(t, len(child.Tasks), len(parent1.Tasks)+len(parent2.Tasks))
		},
	)

	t.Run(
		"3. stable sort by operation",
		func(t *testing.T) {
			parent1 := individualOf(
				0,
				newTask(1, 2, "B", 1),
				newTask(2, 1, "A", 1),
				newTask(1, 1, "A", 1),
			)

			child := Crossover(parent1, nil)

			require.Equal(t,
				[][2]int{{2, 1}, {1, 1}, {1, 2}},
				[][2]int{
					{child.Tasks[0].JobID, child.Tasks[0].OperationID},
					{child.Tasks[1].JobID, child.Tasks[1].OperationID},
					{child.Tasks[2].JobID, child.Tasks[2].OperationID},
				},
			)
		},
	)

	t.Run(
		"4. parents are left untouched",
		func(t *testing.T) {
			parent1 := individualOf(
				0,
				timedTask(1, 1, "A", 50, 3),
			)
			parent2 := individualOf(
				1,
				timedTask(2, 1, "A", 70, 3),
			)

			child := Crossover(parent1, parent2)

			require.EqualValues(t, 50, parent1.Tasks[0].TimeStart)
			require.EqualValues(t, 70, parent2.Tasks[0].TimeStart)

			require.NotSame(t, parent1.Tasks[0], child.Tasks[0])
			require.EqualValues(t, 0, child.Tasks[0].TimeStart)
			require.EqualValues(t, 3, child.Tasks[1].TimeStart)
		},
	)

	t.Run(
		"5. empty parents",
		func(t *testing.T) {
			child := Crossover(NewIndividual(0), NewIndividual(1))

			require.Empty(t, child.Tasks)
			require.Zero(t, child.Fitness)
		},
	)
}
