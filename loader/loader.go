package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/TudorHulban/jobshop"
)

const (
	columnJobID = iota
	columnOperationID
	columnSubdivision
	columnDuration

	numberColumns
)

const extensionCSV = ".csv"

// Load reads a job set with a header row and the columns
// job id, operation id, subdivision, duration.
// Malformed rows are logged and skipped. A nil logger discards.
func Load(r io.Reader, logger *slog.Logger) (jobshop.Jobs, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	if _, errHeader := reader.Read(); errHeader != nil {
		if errors.Is(errHeader, io.EOF) {
			return nil,
				jobshop.ErrNoJobs
		}

		return nil,
			fmt.Errorf("read header: %w", errHeader)
	}

	result := make(jobshop.Jobs)
	seen := make(map[[2]int]struct{})

	for {
		record, errRead := reader.Read()
		if errors.Is(errRead, io.EOF) {
			break
		}

		if errRead != nil {
			var errParse *csv.ParseError

			if errors.As(errRead, &errParse) {
				logger.Warn("skipping unreadable line", "error", errRead)

				continue
			}

			return nil,
				errRead
		}

		line, _ := reader.FieldPos(0)

		op, errRow := parseRow(record)
		if errRow != nil {
			logger.Warn(
				"skipping invalid line",
				"line", line,
				"content", strings.Join(record, ","),
				"error", errRow,
			)

			continue
		}

		key := [2]int{op.JobID, op.OperationID}

		if _, exists := seen[key]; exists {
			logger.Warn(
				"skipping duplicate operation",
				"line", line,
				"job", op.JobID,
				"operation", op.OperationID,
			)

			continue
		}

		seen[key] = struct{}{}

		result[op.JobID] = append(result[op.JobID], *op)
	}

	if len(result) == 0 {
		return nil,
			jobshop.ErrNoJobs
	}

	return result,
		nil
}

func parseRow(record []string) (*jobshop.Operation, error) {
	if len(record) != numberColumns {
		return nil,
			fmt.Errorf(
				"expected %d columns, got %d",
				numberColumns,
				len(record),
			)
	}

	jobID, errJob := strconv.Atoi(strings.TrimSpace(record[columnJobID]))
	if errJob != nil {
		return nil,
			fmt.Errorf("job id: %w", errJob)
	}

	operationID, errOperation := strconv.Atoi(strings.TrimSpace(record[columnOperationID]))
	if errOperation != nil {
		return nil,
			fmt.Errorf("operation id: %w", errOperation)
	}

	duration, errDuration := strconv.ParseInt(strings.TrimSpace(record[columnDuration]), 10, 64)
	if errDuration != nil {
		return nil,
			fmt.Errorf("duration: %w", errDuration)
	}

	result := jobshop.Operation{
		JobID:       jobID,
		OperationID: operationID,
		Subdivision: strings.TrimSpace(record[columnSubdivision]),
		Duration:    duration,
	}

	if errValidation := result.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return &result,
		nil
}

func LoadFile(path string, logger *slog.Logger) (jobshop.Jobs, error) {
	f, errOpen := os.Open(path)
	if errOpen != nil {
		return nil,
			errOpen
	}
	defer f.Close()

	if logger != nil {
		logger = logger.With("file", filepath.Base(path))
	}

	return Load(f, logger)
}

// ListJobFiles returns the sorted names of the CSV job sets in dir.
func ListJobFiles(dir string) ([]string, error) {
	entries, errRead := os.ReadDir(dir)
	if errRead != nil {
		return nil,
			errRead
	}

	result := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), extensionCSV) {
			continue
		}

		result = append(result, entry.Name())
	}

	slices.Sort(result)

	return result,
		nil
}

// IsJobFileName accepts base names with a CSV extension only.
func IsJobFileName(name string) bool {
	return len(name) > len(extensionCSV) &&
		name == filepath.Base(name) &&
		!strings.HasPrefix(name, ".") &&
		strings.EqualFold(filepath.Ext(name), extensionCSV)
}
