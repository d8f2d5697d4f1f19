package storage

import (
	"database/sql"
	"fmt"
	"time"

	"jirafill/internal/timeutil"
	"jirafill/worklog"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	issue_key TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	comment TEXT NOT NULL,
	started TEXT NOT NULL,
	seconds INTEGER NOT NULL CHECK(seconds > 0),
	mode TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(issue_key, started, seconds, mode, status)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertRecords stores generated entries, ignoring rows an identical earlier
// run already recorded. Returns the number of newly inserted rows.
func (s *SQLiteStore) InsertRecords(records []worklog.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	const insertStmt = `
INSERT OR IGNORE INTO entries (
	issue_key,
	summary,
	comment,
	started,
	seconds,
	mode,
	status
) VALUES (?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, record := range records {
		res, err := stmt.Exec(
			record.IssueKey,
			record.Summary,
			record.Comment,
			record.Started.Format(time.RFC3339),
			record.Seconds,
			record.Mode,
			record.Status,
		)
		if err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("insert entry: %w", err)
		}

		rows, err := res.RowsAffected()
		if err == nil && rows > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

// ListRecords returns every recorded entry ordered by start time.
func (s *SQLiteStore) ListRecords() ([]worklog.Record, error) {
	const query = `
SELECT id, issue_key, summary, comment, started, seconds, mode, status, created_at
FROM entries
ORDER BY started, id;`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListRecordsByDayRange returns recorded entries whose start day falls in
// the inclusive range. Nil bounds are open.
func (s *SQLiteStore) ListRecordsByDayRange(from, to *time.Time) ([]worklog.Record, error) {
	all, err := s.ListRecords()
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return all, nil
	}

	out := make([]worklog.Record, 0, len(all))
	for _, record := range all {
		day := timeutil.StartOfDay(record.Started)
		if from != nil && day.Before(*from) {
			continue
		}
		if to != nil && day.After(*to) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func scanRecords(rows *sql.Rows) ([]worklog.Record, error) {
	records := make([]worklog.Record, 0, 64)
	for rows.Next() {
		var (
			record    worklog.Record
			started   string
			createdAt string
		)
		if err := rows.Scan(
			&record.ID,
			&record.IssueKey,
			&record.Summary,
			&record.Comment,
			&started,
			&record.Seconds,
			&record.Mode,
			&record.Status,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		parsedStart, err := time.Parse(time.RFC3339, started)
		if err != nil {
			return nil, fmt.Errorf("parse started %q: %w", started, err)
		}
		record.Started = parsedStart

		if parsedCreated, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			record.CreatedAt = parsedCreated
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return records, nil
}
