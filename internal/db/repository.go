package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"academic_style/internal/style"
)

// Fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type Run struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
	SentenceCount int       `json:"sentence_count"`
	IssueCount    int       `json:"issue_count"`
	WordCount     int       `json:"word_count"`
}

// PersistRun stores one analysis result and its issues in emission order.
func PersistRun(dbPath, source string, res style.Result, at time.Time) (Run, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return Run{}, err
	}
	defer conn.Close()

	run := Run{
		ID:            uuid.New().String(),
		Source:        strings.TrimSpace(source),
		CreatedAt:     at.UTC(),
		SentenceCount: len(res.Sentences),
		IssueCount:    len(res.Issues),
		WordCount:     res.Stats.WordCount,
	}
	if run.Source == "" {
		run.Source = "unknown"
	}

	tx, err := conn.Begin()
	if err != nil {
		return Run{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs(id, source, created_at, sentence_count, issue_count, word_count) VALUES(?,?,?,?,?,?)`,
		run.ID,
		run.Source,
		run.CreatedAt.Format(timeLayout),
		run.SentenceCount,
		run.IssueCount,
		run.WordCount,
	); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	for i, is := range res.Issues {
		if _, err := tx.Exec(
			`INSERT INTO issues(run_id, position, kind, sentence_index, message, extract) VALUES(?,?,?,?,?,?)`,
			run.ID,
			i,
			string(is.Kind),
			is.SentenceIndex,
			is.Message,
			is.Extract,
		); err != nil {
			return Run{}, fmt.Errorf("insert issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit tx: %w", err)
	}
	return run, nil
}

// ListRuns returns the newest runs first. A non-positive limit means all.
func ListRuns(dbPath string, limit int) ([]Run, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if limit <= 0 {
		limit = -1
	}
	rows, err := conn.Query(
		`SELECT id, source, created_at, sentence_count, issue_count, word_count FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Source, &created, &r.SentenceCount, &r.IssueCount, &r.WordCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse run time: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

func RunIssues(dbPath, runID string) ([]style.Issue, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(
		`SELECT kind, sentence_index, message, extract FROM issues WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var out []style.Issue
	for rows.Next() {
		var is style.Issue
		var kind string
		if err := rows.Scan(&kind, &is.SentenceIndex, &is.Message, &is.Extract); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		is.Kind = style.Kind(kind)
		out = append(out, is)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issues: %w", err)
	}
	return out, nil
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
