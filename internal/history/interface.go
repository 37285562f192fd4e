package history

import (
	"io"
	"time"

	"github.com/dkgw-corpus/dkgw/internal/estimate"
	"github.com/dkgw-corpus/dkgw/internal/report"
)

// Recorder appends runs to the history.
type Recorder interface {
	RecordValidation(section string, t report.Tally, at time.Time) (*Run, error)
	RecordEstimate(root string, stats *estimate.Stats, at time.Time) (*Run, error)
}

// Reader lists recorded runs.
type Reader interface {
	ListRuns(limit int) ([]Run, error)
	SectionCounts(runID string) ([]SectionCount, error)
}

// Migrator handles database schema migrations.
type Migrator interface {
	Migrate() error
}

// Store is the full history backend used by the CLI.
type Store interface {
	io.Closer
	Migrator
	Recorder
	Reader
}

// Compile-time verification that DB implements all interfaces.
var (
	_ Store    = (*DB)(nil)
	_ Migrator = (*DB)(nil)
	_ Recorder = (*DB)(nil)
	_ Reader   = (*DB)(nil)
)
