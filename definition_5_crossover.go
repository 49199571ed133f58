package jobshop

import (
	"cmp"
	"slices"
)

// Crossover copies parent1's tasks in order, appends parent2's tasks not
// already present by (job, operation, duration), stably sorts the result by
// operation ID and evaluates it. The child owns copies of every task and keeps
// parent1's ID.
func Crossover(parent1, parent2 *Individual) *Individual {
	child := NewIndividual(idOf(parent1))

	seen := make(map[taskKey]struct{})

	for _, parent := range []*Individual{parent1, parent2} {
		if parent == nil {
			continue
		}

		for _, task := range parent.Tasks {
			key := task.key()

			if _, exists := seen[key]; exists {
				continue
			}

			seen[key] = struct{}{}

			child.AddTask(task.Clone())
		}
	}

	slices.SortStableFunc(
		child.Tasks,
		func(a, b *Task) int {
			return cmp.Compare(a.OperationID, b.OperationID)
		},
	)

	Evaluate(child)

	return child
}
