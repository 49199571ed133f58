package jobshop

// stubRandom replays fixed sequences, wrapping around when exhausted.
type stubRandom struct {
	ints   []int
	floats []float64

	ixInt   int
	ixFloat int
}

func (r *stubRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}

	value := r.ints[r.ixInt%len(r.ints)]
	r.ixInt++

	return value % n
}

func (r *stubRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}

	value := r.floats[r.ixFloat%len(r.floats)]
	r.ixFloat++

	return value
}

func newTask(jobID, operationID int, subdivision string, duration int64) *Task {
	return NewTask(
		Operation{
			JobID:       jobID,
			OperationID: operationID,
			Subdivision: subdivision,
			Duration:    duration,
		},
	)
}

func individualOf(id int, tasks ...*Task) *Individual {
	result := NewIndividual(id)

	for _, task := range tasks {
		result.AddTask(task)
	}

	return result
}

// jobsFixture is a 3 jobs x 3 subdivisions instance.
func jobsFixture() Jobs {
	return Jobs{
		1: {
			{JobID: 1, OperationID: 1, Subdivision: "Cutting", Duration: 3},
			{JobID: 1, OperationID: 2, Subdivision: "Welding", Duration: 2},
			{JobID: 1, OperationID: 3, Subdivision: "Painting", Duration: 2},
		},
		2: {
			{JobID: 2, OperationID: 1, Subdivision: "Welding", Duration: 2},
			{JobID: 2, OperationID: 2, Subdivision: "Cutting", Duration: 1},
			{JobID: 2, OperationID: 3, Subdivision: "Painting", Duration: 4},
		},
		3: {
			{JobID: 3, OperationID: 1, Subdivision: "Painting", Duration: 3},
			{JobID: 3, OperationID: 2, Subdivision: "Cutting", Duration: 2},
			{JobID: 3, OperationID: 3, Subdivision: "Welding", Duration: 3},
		},
	}
}

func taskSet(tasks []*Task) map[[2]int]int64 {
	result := make(map[[2]int]int64, len(tasks))

	for _, task := range tasks {
		result[[2]int{task.JobID, task.OperationID}] = task.Duration
	}

	return result
}
