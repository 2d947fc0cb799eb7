package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    source TEXT,
    created_at TEXT,
    sentence_count INTEGER,
    issue_count INTEGER,
    word_count INTEGER
);

CREATE TABLE IF NOT EXISTS issues (
    id INTEGER PRIMARY KEY,
    run_id TEXT REFERENCES runs(id),
    position INTEGER,
    kind TEXT,
    sentence_index INTEGER,
    message TEXT,
    extract TEXT
);

CREATE INDEX IF NOT EXISTS issues_run_id ON issues(run_id, position);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
