package store

// schemaVersionV1 is the current build-history schema.
const schemaVersionV1 = 1

var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS builds (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	base_url    TEXT NOT NULL,
	dist_dir    TEXT NOT NULL,
	file_count  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS outputs (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	build_id INTEGER NOT NULL REFERENCES builds(id),
	name     TEXT NOT NULL,
	flavor   TEXT NOT NULL,
	path     TEXT NOT NULL,
	bytes    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outputs_build ON outputs(build_id);
`
