package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// currentSchemaVersion is the target schema version for this build.
const currentSchemaVersion = schemaVersionV1

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("store: check schema_version table: %w", err)
	}
	if tableCount == 0 {
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("store: create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("store: set schema version: %w", err)
		}
		return nil
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("store: read schema version: %w", err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("store: set schema version: %w", err)
		}
		return nil
	}
	if v != currentSchemaVersion {
		return fmt.Errorf("store: unknown schema version %d", v)
	}
	return nil
}

// Close closes the underlying database.
func (s *SqlStore) Close() error { return s.db.Close() }

// RecordBuild inserts the build and its outputs atomically. StartedAt
// and FinishedAt default to now when empty.
func (s *SqlStore) RecordBuild(b *Build, outputs []Output) (int64, error) {
	if b.StartedAt == "" {
		b.StartedAt = nowUTC()
	}
	if b.FinishedAt == "" {
		b.FinishedAt = nowUTC()
	}
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		"INSERT INTO builds(started_at, finished_at, base_url, dist_dir, file_count) VALUES(?,?,?,?,?)",
		b.StartedAt, b.FinishedAt, b.BaseURL, b.DistDir, len(outputs),
	)
	if err != nil {
		return 0, fmt.Errorf("store: insert build: %w", err)
	}
	buildID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: build id: %w", err)
	}
	for _, o := range outputs {
		if _, err := tx.Exec(
			"INSERT INTO outputs(build_id, name, flavor, path, bytes) VALUES(?,?,?,?,?)",
			buildID, o.Name, o.Flavor, o.Path, o.Bytes,
		); err != nil {
			return 0, fmt.Errorf("store: insert output %q: %w", o.Path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return buildID, nil
}

// GetBuild returns one build record.
func (s *SqlStore) GetBuild(buildID int64) (*Build, error) {
	b := &Build{}
	err := s.db.QueryRow(
		"SELECT id, started_at, finished_at, base_url, dist_dir, file_count FROM builds WHERE id = ?",
		buildID,
	).Scan(&b.ID, &b.StartedAt, &b.FinishedAt, &b.BaseURL, &b.DistDir, &b.FileCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: build %d not found", buildID)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get build: %w", err)
	}
	return b, nil
}

// ListBuilds returns all builds, newest first.
func (s *SqlStore) ListBuilds() ([]*Build, error) {
	rows, err := s.db.Query(
		"SELECT id, started_at, finished_at, base_url, dist_dir, file_count FROM builds ORDER BY id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("store: list builds: %w", err)
	}
	defer rows.Close()

	var out []*Build
	for rows.Next() {
		b := &Build{}
		if err := rows.Scan(&b.ID, &b.StartedAt, &b.FinishedAt, &b.BaseURL, &b.DistDir, &b.FileCount); err != nil {
			return nil, fmt.Errorf("store: scan build: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListOutputs returns the outputs of one build in insertion order.
func (s *SqlStore) ListOutputs(buildID int64) ([]Output, error) {
	rows, err := s.db.Query(
		"SELECT id, build_id, name, flavor, path, bytes FROM outputs WHERE build_id = ? ORDER BY id",
		buildID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list outputs: %w", err)
	}
	defer rows.Close()

	var out []Output
	for rows.Next() {
		var o Output
		if err := rows.Scan(&o.ID, &o.BuildID, &o.Name, &o.Flavor, &o.Path, &o.Bytes); err != nil {
			return nil, fmt.Errorf("store: scan output: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
