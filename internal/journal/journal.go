// Package journal keeps a local SQLite history of calculations run from the
// command line.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded calculation.
type Entry struct {
	ID        int64           `json:"id"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// Journal stores calculation entries in dir/journal.db.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database under dir.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "journal.db"))
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		kind       TEXT NOT NULL,
		input      TEXT NOT NULL,
		result     TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating entries table: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record stores a calculation. input and result are JSON-encoded.
func (j *Journal) Record(kind string, input, result any) (int64, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return 0, fmt.Errorf("encoding input: %w", err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("encoding result: %w", err)
	}

	res, err := j.db.Exec(
		`INSERT INTO entries (kind, input, result, created_at) VALUES (?, ?, ?, ?)`,
		kind, string(in), string(out), time.Now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting entry: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first. kind filters by entry
// kind when non-empty.
func (j *Journal) Recent(limit int, kind string) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, kind, input, result, created_at FROM entries
		 WHERE (? = '' OR kind = ?)
		 ORDER BY id DESC LIMIT ?`,
		kind, kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		var in, out string
		var ms int64
		if err := rows.Scan(&e.ID, &e.Kind, &in, &out, &ms); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e.Input = json.RawMessage(in)
		e.Result = json.RawMessage(out)
		e.CreatedAt = time.UnixMilli(ms)
		result = append(result, e)
	}
	return result, rows.Err()
}

// Clear deletes all entries. Returns the number removed.
func (j *Journal) Clear() (int64, error) {
	res, err := j.db.Exec(`DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("clearing entries: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}
