package jobshop

import "errors"

var (
	ErrNoJobs             = errors.New("no jobs to schedule")
	ErrOutOfRange         = errors.New("index out of range")
	ErrPrecedenceViolated = errors.New("operation starts before its predecessor ends")
	ErrSubdivisionOverlap = errors.New("subdivision runs two operations at once")
)
