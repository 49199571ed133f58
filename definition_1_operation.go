package jobshop

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	goerrors "github.com/TudorHulban/go-errors"
)

// Operation is one loaded input row: job, operation, subdivision and duration.
type Operation struct {
	Subdivision string

	JobID       int
	OperationID int
	Duration    int64
}

func (op Operation) IsValid() error {
	if len(op.Subdivision) == 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - Operation",
			Issue: goerrors.ErrNilInput{
				InputName: "Subdivision",
			},
		}
	}

	if op.Duration <= 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - Operation",
			Issue: goerrors.ErrNegativeInput{
				InputName: "Duration",
			},
		}
	}

	return nil
}

// Jobs maps a job ID to its operations in order of appearance.
type Jobs map[int][]Operation

func (jobs Jobs) IsValid() error {
	if len(jobs) == 0 {
		return ErrNoJobs
	}

	for jobID, operations := range jobs {
		seen := make(map[int]struct{}, len(operations))

		for _, op := range operations {
			if op.JobID != jobID {
				return goerrors.ErrInvalidInput{
					Caller:     "IsValid - Jobs",
					InputName:  "JobID",
					InputValue: op.JobID,
					Issue: fmt.Errorf(
						"operation %d listed under job %d",
						op.OperationID,
						jobID,
					),
				}
			}

			if errOperation := op.IsValid(); errOperation != nil {
				return errOperation
			}

			if _, exists := seen[op.OperationID]; exists {
				return goerrors.ErrInvalidInput{
					Caller:     "IsValid - Jobs",
					InputName:  "OperationID",
					InputValue: op.OperationID,
					Issue: errors.New(
						"duplicate operation ID within job",
					),
				}
			}

			seen[op.OperationID] = struct{}{}
		}
	}

	return nil
}

// IDs returns job IDs in ascending order.
func (jobs Jobs) IDs() []int {
	result := make([]int, 0, len(jobs))

	for jobID := range jobs {
		result = append(result, jobID)
	}

	slices.Sort(result)

	return result
}

func (jobs Jobs) NumberOperations() int {
	var result int

	for _, operations := range jobs {
		result = result + len(operations)
	}

	return result
}

// ordered returns, per job, the operations sorted by operation ID.
// Input slices are not modified.
func (jobs Jobs) ordered() map[int][]Operation {
	result := make(map[int][]Operation, len(jobs))

	for jobID, operations := range jobs {
		sorted := slices.Clone(operations)

		slices.SortStableFunc(
			sorted,
			func(a, b Operation) int {
				return cmp.Compare(a.OperationID, b.OperationID)
			},
		)

		result[jobID] = sorted
	}

	return result
}
