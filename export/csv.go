package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/TudorHulban/jobshop"
)

var headerCSV = []string{
	"job_id",
	"operation_id",
	"subdivision",
	"start",
	"end",
	"duration",
}

// WriteCSV writes one row per task, in the given order, after a header row.
func WriteCSV(w io.Writer, tasks []*jobshop.Task) error {
	writer := csv.NewWriter(w)

	if errHeader := writer.Write(headerCSV); errHeader != nil {
		return errHeader
	}

	for _, task := range tasks {
		if errRow := writer.Write(
			[]string{
				strconv.Itoa(task.JobID),
				strconv.Itoa(task.OperationID),
				task.Subdivision,
				strconv.FormatInt(task.TimeStart, 10),
				strconv.FormatInt(task.TimeEnd(), 10),
				strconv.FormatInt(task.Duration, 10),
			},
		); errRow != nil {
			return errRow
		}
	}

	writer.Flush()

	return writer.Error()
}
