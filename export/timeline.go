package export

import (
	"cmp"
	"slices"

	"github.com/TudorHulban/jobshop"
)

// Finalize returns copies of the individual's tasks ordered by start time,
// then subdivision, then job.
func Finalize(individual *jobshop.Individual) []*jobshop.Task {
	if individual == nil {
		return nil
	}

	result := make([]*jobshop.Task, len(individual.Tasks))

	for ix, task := range individual.Tasks {
		result[ix] = task.Clone()
	}

	slices.SortStableFunc(
		result,
		func(a, b *jobshop.Task) int {
			return cmp.Or(
				cmp.Compare(a.TimeStart, b.TimeStart),
				cmp.Compare(a.Subdivision, b.Subdivision),
				cmp.Compare(a.JobID, b.JobID),
			)
		},
	)

	return result
}

// Subdivisions lists the distinct subdivisions in order of first appearance.
func Subdivisions(tasks []*jobshop.Task) []string {
	result := make([]string, 0)
	seen := make(map[string]struct{})

	for _, task := range tasks {
		if _, exists := seen[task.Subdivision]; exists {
			continue
		}

		seen[task.Subdivision] = struct{}{}
		result = append(result, task.Subdivision)
	}

	return result
}

func makespan(tasks []*jobshop.Task) int64 {
	var result int64

	for _, task := range tasks {
		result = max(result, task.TimeEnd())
	}

	return result
}

// TimeRow holds, for one unit of time, the task occupying each subdivision.
type TimeRow struct {
	Cells map[string]*jobshop.Task

	Time int64
}

func (row TimeRow) isEmpty(subdivisions []string) bool {
	for _, subdivision := range subdivisions {
		if row.Cells[subdivision] != nil {
			return false
		}
	}

	return true
}

// MaxTimeRows caps the unit grid. Longer schedules are rendered by EventRows.
const MaxTimeRows = 1000

// TimeRows builds one row per unit of time from 0 to makespan-1.
// Every task fills all the units it runs for.
// Memory grows with the makespan, see MaxTimeRows.
func TimeRows(tasks []*jobshop.Task) []TimeRow {
	result := make([]TimeRow, makespan(tasks))

	for ix := range result {
		result[ix] = TimeRow{
			Time:  int64(ix),
			Cells: make(map[string]*jobshop.Task),
		}
	}

	for _, task := range tasks {
		for unit := task.TimeStart; unit < task.TimeEnd(); unit++ {
			result[unit].Cells[task.Subdivision] = task
		}
	}

	return result
}

// EventRows builds one row per distinct task start or end below the makespan.
// Each row holds the tasks running at that time, so the row count
// depends on the number of tasks only.
func EventRows(tasks []*jobshop.Task) []TimeRow {
	end := makespan(tasks)

	times := make([]int64, 0, 2*len(tasks))

	for _, task := range tasks {
		times = append(times, task.TimeStart)

		if task.TimeEnd() < end {
			times = append(times, task.TimeEnd())
		}
	}

	slices.Sort(times)
	times = slices.Compact(times)

	result := make([]TimeRow, len(times))

	for ix, at := range times {
		result[ix] = TimeRow{
			Time:  at,
			Cells: make(map[string]*jobshop.Task),
		}

		for _, task := range tasks {
			if task.TimeStart <= at && at < task.TimeEnd() {
				result[ix].Cells[task.Subdivision] = task
			}
		}
	}

	return result
}

// Rows picks the unit grid for short schedules and event rows past MaxTimeRows.
func Rows(tasks []*jobshop.Task) []TimeRow {
	if makespan(tasks) > MaxTimeRows {
		return EventRows(tasks)
	}

	return TimeRows(tasks)
}
