package jobshop

import "fmt"

// taskKey is the structural identity used when merging parents.
type taskKey struct {
	JobID       int
	OperationID int
	Duration    int64
}

type Task struct {
	Subdivision string

	JobID       int
	OperationID int
	Duration    int64
	TimeStart   int64
}

func NewTask(op Operation) *Task {
	return &Task{
		Subdivision: op.Subdivision,
		JobID:       op.JobID,
		OperationID: op.OperationID,
		Duration:    op.Duration,
	}
}

// TimeEnd is always derived, never stored.
func (t *Task) TimeEnd() int64 {
	return t.TimeStart + t.Duration
}

func (t *Task) Interval() TimeInterval {
	return TimeInterval{
		TimeStart: t.TimeStart,
		TimeEnd:   t.TimeEnd(),
	}
}

func (t *Task) Clone() *Task {
	c := *t

	return &c
}

func (t *Task) key() taskKey {
	return taskKey{
		JobID:       t.JobID,
		OperationID: t.OperationID,
		Duration:    t.Duration,
	}
}

func (t *Task) String() string {
	return fmt.Sprintf(
		"Job %d Op %d on %s %s",

		t.JobID,
		t.OperationID,
		t.Subdivision,
		t.Interval(),
	)
}
