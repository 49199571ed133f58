package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/TudorHulban/jobshop"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type SubdivisionStatistics struct {
	Subdivision string  `json:"subdivision"`
	Tasks       int     `json:"tasks"`
	BusyTime    int64   `json:"busy_time"`
	Utilisation float64 `json:"utilisation"`
}

type Statistics struct {
	PerSubdivision []SubdivisionStatistics `json:"per_subdivision"`

	Makespan           int64 `json:"makespan"`
	NumberJobs         int   `json:"number_jobs"`
	NumberSubdivisions int   `json:"number_subdivisions"`
	NumberTasks        int   `json:"number_tasks"`

	AverageTasksPerJob    float64 `json:"average_tasks_per_job"`
	AverageProcessingTime float64 `json:"average_processing_time"`
}

func ComputeStatistics(tasks []*jobshop.Task) Statistics {
	subdivisions := Subdivisions(tasks)

	result := Statistics{
		Makespan:           makespan(tasks),
		NumberSubdivisions: len(subdivisions),
		NumberTasks:        len(tasks),
		PerSubdivision:     make([]SubdivisionStatistics, len(subdivisions)),
	}

	if len(tasks) == 0 {
		return result
	}

	position := make(map[string]int, len(subdivisions))

	for ix, subdivision := range subdivisions {
		position[subdivision] = ix
		result.PerSubdivision[ix].Subdivision = subdivision
	}

	jobs := make(map[int]struct{})

	var totalDuration int64

	for _, task := range tasks {
		jobs[task.JobID] = struct{}{}
		totalDuration = totalDuration + task.Duration

		stats := &result.PerSubdivision[position[task.Subdivision]]
		stats.Tasks++
		stats.BusyTime = stats.BusyTime + task.Duration
	}

	result.NumberJobs = len(jobs)
	result.AverageTasksPerJob = float64(len(tasks)) / float64(len(jobs))
	result.AverageProcessingTime = float64(totalDuration) / float64(len(tasks))

	if result.Makespan > 0 {
		for ix := range result.PerSubdivision {
			result.PerSubdivision[ix].Utilisation = float64(result.PerSubdivision[ix].BusyTime) / float64(result.Makespan)
		}
	}

	return result
}

func PrintStatistics(w io.Writer, stats Statistics) error {
	summary := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		StyleFunc(
			func(_, col int) lipgloss.Style {
				if col == 0 {
					return styleHeader
				}

				return styleCell
			},
		).
		Rows(
			[]string{"Total Makespan", strconv.FormatInt(stats.Makespan, 10)},
			[]string{"Number of Jobs", strconv.Itoa(stats.NumberJobs)},
			[]string{"Number of Subdivisions", strconv.Itoa(stats.NumberSubdivisions)},
			[]string{"Total Number of Tasks", strconv.Itoa(stats.NumberTasks)},
			[]string{"Average Tasks per Job", fmt.Sprintf("%.2f", stats.AverageTasksPerJob)},
			[]string{"Average Processing Time", fmt.Sprintf("%.2f", stats.AverageProcessingTime)},
		)

	perSubdivision := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers("Subdivision", "Tasks", "Busy", "Utilisation").
		StyleFunc(
			func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return styleHeader
				}

				return styleCell
			},
		)

	for _, sub := range stats.PerSubdivision {
		perSubdivision.Row(
			sub.Subdivision,
			strconv.Itoa(sub.Tasks),
			strconv.FormatInt(sub.BusyTime, 10),
			fmt.Sprintf("%.1f%%", sub.Utilisation*100),
		)
	}

	_, errWrite := fmt.Fprintln(
		w,
		lipgloss.JoinVertical(
			lipgloss.Left,
			summary.Render(),
			perSubdivision.Render(),
		),
	)

	return errWrite
}
