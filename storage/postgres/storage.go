package postgres

import (
	"bytes"
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/mwantia/backup/data"
)

func (pb *PostgresBackend) WriteObject(ctx context.Context, scheme, key string, payload []byte) error {
	_, err := pb.pool.Exec(ctx, `
		INSERT INTO backup_objects (scheme, key, payload, modify_time)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (scheme, key)
		DO UPDATE SET payload = EXCLUDED.payload, modify_time = now()
	`, scheme, key, payload)

	return err
}

func (pb *PostgresBackend) ReadObject(ctx context.Context, scheme, key string) ([]byte, error) {
	var payload []byte
	err := pb.pool.QueryRow(ctx, `
		SELECT payload FROM backup_objects WHERE scheme = $1 AND key = $2
	`, scheme, key).Scan(&payload)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, data.ErrNotExist
		}

		return nil, err
	}

	return payload, nil
}

func (pb *PostgresBackend) ReadObjectPrefix(ctx context.Context, scheme, key string, delim byte, chunkSize, maxBytes int) ([]byte, error) {
	var prefix []byte
	err := pb.pool.QueryRow(ctx, `
		SELECT substring(payload FROM 1 FOR $3) FROM backup_objects WHERE scheme = $1 AND key = $2
	`, scheme, key, maxBytes).Scan(&prefix)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, data.ErrNotExist
		}

		return nil, err
	}

	if i := bytes.IndexByte(prefix, delim); i >= 0 {
		prefix = prefix[:i+1]
	}

	return prefix, nil
}

func (pb *PostgresBackend) DeleteObject(ctx context.Context, scheme, key string) error {
	_, err := pb.pool.Exec(ctx, `
		DELETE FROM backup_objects WHERE scheme = $1 AND key = $2
	`, scheme, key)

	return err
}

func (pb *PostgresBackend) ListObjects(ctx context.Context) ([]data.ObjectRef, error) {
	rows, err := pb.pool.Query(ctx, `
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

func (pb *PostgresBackend) Purge(ctx context.Context) error {
	_, err := pb.pool.Exec(ctx, `DELETE FROM backup_objects`)
	return err
}
