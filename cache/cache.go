package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/TudorHulban/jobshop"
	"github.com/TudorHulban/jobshop/config"
	"github.com/TudorHulban/jobshop/export"
	"github.com/google/uuid"
)

// Entry is a finished solve, stored without its run identifier.
type Entry struct {
	Tasks      []*jobshop.Task   `json:"tasks"`
	Statistics export.Statistics `json:"statistics"`

	Termination jobshop.TerminationReason `json:"termination"`
	Makespan    int64                     `json:"makespan"`
	Generations int                       `json:"generations"`

	CreatedAt time.Time `json:"created_at"`
}

type Cache interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Set(ctx context.Context, key string, entry *Entry) error
}

// Key identifies a reproducible solve: job set source, GA settings and seed.
// Worker count does not change results and is left out.
func Key(source string, ga config.GA) string {
	return fmt.Sprintf(
		"jobshop:%s:p%d:g%d:t%d:m%g:s%d",

		source,
		ga.PopulationSize,
		ga.MaxGenerations,
		ga.TournamentSize,
		ga.MutationRate,
		ga.Seed,
	)
}

// Digest identifies job set content, so edits to a file change its cache keys.
func Digest(content []byte) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, content).String()
}

// FileSource names a file-backed job set by its base name and content.
func FileSource(name string, content []byte) string {
	return name + "@" + Digest(content)
}

// ContentSource names an inline job set by a digest of its encoded content.
func ContentSource(content []byte) string {
	return "inline-" + Digest(content)
}

// Cacheable reports whether a solve with these settings is reproducible.
func Cacheable(ga config.GA) bool {
	return ga.Seed != 0
}
