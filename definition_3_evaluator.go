package jobshop

import "github.com/sourcegraph/conc/pool"

// jobProgress holds, per job, the tasks already timed in this pass.
type jobProgress map[int][]*Task

// predecessorsEnd is the latest end among timed tasks of the same job
// with a smaller operation ID.
func (progress jobProgress) predecessorsEnd(task *Task) int64 {
	var result int64

	for _, timed := range progress[task.JobID] {
		if timed.OperationID < task.OperationID {
			result = max(result, timed.TimeEnd())
		}
	}

	return result
}

// Evaluate times the tasks in their current order and returns the makespan.
// Start times are written on the tasks and the makespan on the fitness.
// The order of the task slice is the only input; there is no randomness.
func Evaluate(individual *Individual) int64 {
	if individual == nil {
		return 0
	}

	occupancy := make(subdivisions)
	progress := make(jobProgress)

	var makespan int64

	for _, task := range individual.Tasks {
		occupancy.place(task, progress.predecessorsEnd(task))

		progress[task.JobID] = append(progress[task.JobID], task)
		makespan = max(makespan, task.TimeEnd())
	}

	individual.Fitness = makespan

	return makespan
}

// EvaluatePopulation evaluates every individual, concurrently when workers > 1.
// Individuals own their tasks so evaluations do not interfere.
func EvaluatePopulation(population []*Individual, workers int) {
	if workers <= 1 {
		for _, individual := range population {
			Evaluate(individual)
		}

		return
	}

	p := pool.New().WithMaxGoroutines(workers)

	for _, individual := range population {
		p.Go(
			func() {
				Evaluate(individual)
			},
		)
	}

	p.Wait()
}
