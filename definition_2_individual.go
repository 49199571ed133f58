package jobshop

import (
	"fmt"
	"strings"
)

// Individual is one candidate schedule: every task of every job, interleaved,
// plus the makespan of the timed schedule as fitness (lower is better).
// ID is local to the generation that produced it.
type Individual struct {
	Tasks []*Task

	ID      int
	Fitness int64
}

func NewIndividual(id int) *Individual {
	return &Individual{
		ID:    id,
		Tasks: make([]*Task, 0),
	}
}

func (ind *Individual) AddTask(task *Task) {
	ind.Tasks = append(ind.Tasks, task)
}

// Clone copies the tasks so that re-evaluating the copy never moves
// a task still referenced by the source.
func (ind *Individual) Clone() *Individual {
	result := Individual{
		ID:      ind.ID,
		Fitness: ind.Fitness,
		Tasks:   make([]*Task, len(ind.Tasks)),
	}

	for ix, task := range ind.Tasks {
		result.Tasks[ix] = task.Clone()
	}

	return &result
}

// Makespan computes the latest task end from the current start times
// without touching the fitness field.
func (ind *Individual) Makespan() int64 {
	var result int64

	for _, task := range ind.Tasks {
		result = max(result, task.TimeEnd())
	}

	return result
}

func (ind *Individual) String() string {
	var sb strings.Builder

	sb.WriteString(
		fmt.Sprintf(
			"Individual %d (fitness: %d, tasks: %d)\n",

			ind.ID,
			ind.Fitness,
			len(ind.Tasks),
		),
	)

	for ix, task := range ind.Tasks {
		sb.WriteString(
			fmt.Sprintf(
				"%d: %s\n",

				ix+1,
				task.String(),
			),
		)
	}

	return sb.String()
}
