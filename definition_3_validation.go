package jobshop

import (
	"cmp"
	"fmt"
	"slices"
)

// Validate checks a timed individual against both hard constraints, taking
// the tasks as they are, whatever their order in the slice:
//   - no task of a job starts before a task of the same job with a smaller operation ID ends
//   - no two tasks of a subdivision overlap in time
func Validate(individual *Individual) error {
	perJob := make(map[int][]*Task)
	perSubdivision := make(map[string][]*Task)

	for _, task := range individual.Tasks {
		perJob[task.JobID] = append(perJob[task.JobID], task)
		perSubdivision[task.Subdivision] = append(perSubdivision[task.Subdivision], task)
	}

	for _, tasks := range perJob {
		if errPrecedence := validatePrecedence(tasks); errPrecedence != nil {
			return errPrecedence
		}
	}

	for _, tasks := range perSubdivision {
		if errOverlap := validateNoOverlap(tasks); errOverlap != nil {
			return errOverlap
		}
	}

	return nil
}

func IsFeasible(individual *Individual) bool {
	return Validate(individual) == nil
}

func validatePrecedence(jobTasks []*Task) error {
	tasks := slices.Clone(jobTasks)

	slices.SortStableFunc(
		tasks,
		func(a, b *Task) int {
			return cmp.Compare(a.OperationID, b.OperationID)
		},
	)

	// latest end among strictly smaller operation IDs
	var latest *Task

	for ix := 0; ix < len(tasks); {
		group := ix

		for group < len(tasks) && tasks[group].OperationID == tasks[ix].OperationID {
			if latest != nil && latest.TimeEnd() > tasks[group].TimeStart {
				return fmt.Errorf(
					"%w: job %d operation %d starts at %d, operation %d ends at %d",
					ErrPrecedenceViolated,
					tasks[group].JobID,
					tasks[group].OperationID,
					tasks[group].TimeStart,
					latest.OperationID,
					latest.TimeEnd(),
				)
			}

			group++
		}

		for _, task := range tasks[ix:group] {
			if latest == nil || task.TimeEnd() > latest.TimeEnd() {
				latest = task
			}
		}

		ix = group
	}

	return nil
}

func validateNoOverlap(subdivisionTasks []*Task) error {
	tasks := slices.Clone(subdivisionTasks)

	slices.SortStableFunc(
		tasks,
		func(a, b *Task) int {
			return cmp.Compare(a.TimeStart, b.TimeStart)
		},
	)

	var occupant *Task

	for _, task := range tasks {
		if occupant != nil && task.TimeStart < occupant.TimeEnd() {
			return fmt.Errorf(
				"%w: %s: job %d operation %d %s overlaps job %d operation %d %s",
				ErrSubdivisionOverlap,
				task.Subdivision,
				task.JobID,
				task.OperationID,
				task.Interval(),
				occupant.JobID,
				occupant.OperationID,
				occupant.Interval(),
			)
		}

		if occupant == nil || task.TimeEnd() > occupant.TimeEnd() {
			occupant = task
		}
	}

	return nil
}
