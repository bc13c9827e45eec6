// Package store persists build history: one record per pipeline run
// plus one row per serialized output file.
package store

// DefaultDBPath is the default relative path for the SQLite DB.
// Open() creates the parent dir (e.g. .beacon).
const DefaultDBPath = ".beacon/history.db"

// Build is one completed pipeline run.
type Build struct {
	ID         int64
	StartedAt  string // ISO 8601 UTC
	FinishedAt string
	BaseURL    string // requested URL of the base Result
	DistDir    string
	FileCount  int
}

// Output is one serialized file of a build.
type Output struct {
	ID      int64
	BuildID int64
	Name    string // variant name, e.g. "en", "error"
	Flavor  string
	Path    string
	Bytes   int
}

// Store is the persistence facade. CLI and the tool server use only
// this interface; implementation is SQLite or in-memory.
type Store interface {
	RecordBuild(b *Build, outputs []Output) (buildID int64, err error)
	GetBuild(buildID int64) (*Build, error)
	ListBuilds() ([]*Build, error)
	ListOutputs(buildID int64) ([]Output, error)
	Close() error
}
