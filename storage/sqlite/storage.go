package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mwantia/backup/data"
)

func (sb *SQLiteBackend) WriteObject(ctx context.Context, scheme, key string, payload []byte) error {
	_, err := sb.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO backup_objects (scheme, key, payload, modify_time)
		VALUES (?, ?, ?, ?)
	`, scheme, key, payload, time.Now().Unix())

	return err
}

func (sb *SQLiteBackend) ReadObject(ctx context.Context, scheme, key string) ([]byte, error) {
	var payload []byte
	err := sb.db.QueryRowContext(ctx, `
		SELECT payload FROM backup_objects WHERE scheme = ? AND key = ?
	`, scheme, key).Scan(&payload)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, data.ErrNotExist
		}

		return nil, err
	}

	return payload, nil
}

func (sb *SQLiteBackend) ReadObjectPrefix(ctx context.Context, scheme, key string, delim byte, chunkSize, maxBytes int) ([]byte, error) {
	// The row is fetched capped at maxBytes; the delimiter scan happens
	// here since substr cannot search for a byte.
	var prefix []byte
	err := sb.db.QueryRowContext(ctx, `
		SELECT substr(payload, 1, ?) FROM backup_objects WHERE scheme = ? AND key = ?
	`, maxBytes, scheme, key).Scan(&prefix)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, data.ErrNotExist
		}

		return nil, err
	}

	if i := bytes.IndexByte(prefix, delim); i >= 0 {
		prefix = prefix[:i+1]
	}

	return prefix, nil
}

func (sb *SQLiteBackend) DeleteObject(ctx context.Context, scheme, key string) error {
	_, err := sb.db.ExecContext(ctx, `
		DELETE FROM backup_objects WHERE scheme = ? AND key = ?
	`, scheme, key)

	return err
}

func (sb *SQLiteBackend) ListObjects(ctx context.Context) ([]data.ObjectRef, error) {
	rows, err := sb.db.QueryContext(ctx, `
		SELECT scheme, key FROM backup_objects ORDER BY scheme, key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []data.ObjectRef
	for rows.Next() {
		var ref data.ObjectRef
		if err := rows.Scan(&ref.Scheme, &ref.Key); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

func (sb *SQLiteBackend) Purge(ctx context.Context) error {
	_, err := sb.db.ExecContext(ctx, `DELETE FROM backup_objects`)
	return err
}
