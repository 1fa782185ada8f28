package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores backup objects in a single SQLite table. Useful
// when the host prefers one database file over a directory tree, and for
// tests via the ":memory:" path.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases coherent and avoids
	// writer contention on file databases.
	db.SetMaxOpenConns(1)

	return &SQLiteBackend{
		db:   db,
		path: path,
	}, nil
}

// Name returns the identifier name defined for this backend.
func (*SQLiteBackend) Name() string {
	return "sqlite"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (sb *SQLiteBackend) Open(ctx context.Context) error {
	_, err := sb.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS backup_objects (
			scheme      TEXT NOT NULL,
			key         TEXT NOT NULL,
			payload     BLOB NOT NULL,
			modify_time INTEGER NOT NULL,
			PRIMARY KEY (scheme, key)
		)
	`)

	return err
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *SQLiteBackend) Close(ctx context.Context) error {
	return sb.db.Close()
}
