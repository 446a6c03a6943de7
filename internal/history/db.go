package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS exports (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id   TEXT NOT NULL,
    session_file TEXT NOT NULL,
    output_path  TEXT NOT NULL,
    from_line    INTEGER NOT NULL,
    to_line      INTEGER NOT NULL,
    messages     INTEGER NOT NULL,
    checkpoint   INTEGER NOT NULL DEFAULT 0,
    exported_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS exports_output ON exports(output_path, id);
CREATE INDEX IF NOT EXISTS exports_session ON exports(session_id, id);
`

const timeFormat = "2006-01-02T15:04:05Z"

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Run is one successful export into a document.
type Run struct {
	ID          int64
	SessionID   string
	SessionFile string
	OutputPath  string
	FromLine    int // first line consumed
	ToLine      int // last line consumed
	Messages    int
	Checkpoint  bool
	ExportedAt  time.Time
}

func (d *DB) Record(r Run) (int64, error) {
	if r.ExportedAt.IsZero() {
		r.ExportedAt = time.Now()
	}
	checkpoint := 0
	if r.Checkpoint {
		checkpoint = 1
	}

	res, err := d.db.Exec(
		`INSERT INTO exports (session_id, session_file, output_path, from_line, to_line, messages, checkpoint, exported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.SessionFile,
		r.OutputPath,
		r.FromLine,
		r.ToLine,
		r.Messages,
		checkpoint,
		r.ExportedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type Filter struct {
	OutputPath string // "" = all
	SessionID  string // "" = all
	Limit      int    // 0 = no limit
}

// List returns recorded runs, newest first.
func (d *DB) List(f Filter) ([]Run, error) {
	var where []string
	var args []any
	if f.OutputPath != "" {
		where = append(where, "output_path = ?")
		args = append(args, f.OutputPath)
	}
	if f.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, f.SessionID)
	}

	q := "SELECT id, session_id, session_file, output_path, from_line, to_line, messages, checkpoint, exported_at FROM exports"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var checkpoint int
		var ts string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.SessionFile, &r.OutputPath,
			&r.FromLine, &r.ToLine, &r.Messages, &checkpoint, &ts); err != nil {
			return nil, err
		}
		r.Checkpoint = checkpoint != 0
		if t, err := time.Parse(timeFormat, ts); err == nil {
			r.ExportedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM exports").Scan(&n)
	return n, err
}
