package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/TudorHulban/jobshop"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const continuation = "│"

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)

	styleCell = lipgloss.NewStyle().
			Padding(0, 1)

	styleTime = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1).
			Align(lipgloss.Right)

	styleBorder = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))
)

type ParamsPrint struct {
	// SubdivisionFilter keeps the subdivisions it returns true for. Nil keeps all.
	SubdivisionFilter func(subdivision string) bool

	// CompactEmptyRows drops the time units where no shown subdivision works.
	CompactEmptyRows bool
}

func (params ParamsPrint) subdivisions(tasks []*jobshop.Task) []string {
	all := Subdivisions(tasks)

	if params.SubdivisionFilter == nil {
		return all
	}

	result := make([]string, 0, len(all))

	for _, subdivision := range all {
		if params.SubdivisionFilter(subdivision) {
			result = append(result, subdivision)
		}
	}

	return result
}

func cell(task *jobshop.Task, unit int64) string {
	if task == nil {
		return ""
	}

	if task.TimeStart == unit {
		return fmt.Sprintf("Job %d Op %d", task.JobID, task.OperationID)
	}

	return continuation
}

// RenderSchedule renders the time grid of the tasks as a table with a time
// column and one column per subdivision. Past MaxTimeRows units only the
// times where a task starts or ends get a row.
func RenderSchedule(tasks []*jobshop.Task, params ParamsPrint) string {
	subdivisions := params.subdivisions(tasks)

	rows := make([][]string, 0)

	for _, row := range Rows(tasks) {
		if params.CompactEmptyRows && row.isEmpty(subdivisions) {
			continue
		}

		cells := make([]string, 0, len(subdivisions)+1)
		cells = append(cells, strconv.FormatInt(row.Time, 10))

		for _, subdivision := range subdivisions {
			cells = append(cells, cell(row.Cells[subdivision], row.Time))
		}

		rows = append(rows, cells)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers(append([]string{"Time"}, subdivisions...)...).
		Rows(rows...).
		StyleFunc(
			func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return styleHeader
				case col == 0:
					return styleTime
				}

				return styleCell
			},
		).
		Render()
}

func PrintSchedule(w io.Writer, tasks []*jobshop.Task, params ParamsPrint) error {
	if len(tasks) == 0 {
		_, errWrite := fmt.Fprintln(w, "The schedule is empty.")

		return errWrite
	}

	_, errWrite := fmt.Fprintln(w, RenderSchedule(tasks, params))

	return errWrite
}
