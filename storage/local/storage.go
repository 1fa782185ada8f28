package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mwantia/backup/data"
)

func (lb *LocalBackend) WriteObject(ctx context.Context, scheme, key string, payload []byte) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	dir := filepath.Join(lb.root, filepath.Clean(scheme))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return mapPathError(err)
	}

	// Write to a unique temp file first, then rename over the target.
	// Rename is atomic on the same filesystem, so readers either see the
	// previous object or the new one in full.
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Clean(key), uuid.Must(uuid.NewV7()).String()))
	if err := os.WriteFile(tmp, payload, 0600); err != nil {
		return mapPathError(err)
	}

	if err := os.Rename(tmp, lb.resolvePath(scheme, key)); err != nil {
		os.Remove(tmp)
		return mapPathError(err)
	}

	return nil
}

func (lb *LocalBackend) ReadObject(ctx context.Context, scheme, key string) ([]byte, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	payload, err := os.ReadFile(lb.resolvePath(scheme, key))
	if err != nil {
		return nil, mapPathError(err)
	}

	return payload, nil
}

func (lb *LocalBackend) ReadObjectPrefix(ctx context.Context, scheme, key string, delim byte, chunkSize, maxBytes int) ([]byte, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	file, err := os.Open(lb.resolvePath(scheme, key))
	if err != nil {
		return nil, mapPathError(err)
	}
	defer file.Close()

	prefix := make([]byte, 0, chunkSize)
	chunk := make([]byte, chunkSize)

	for len(prefix) < maxBytes {
		if remaining := maxBytes - len(prefix); remaining < len(chunk) {
			chunk = chunk[:remaining]
		}

		n, err := file.Read(chunk)
		if n > 0 {
			if end := bytes.IndexByte(chunk[:n], delim); end >= 0 {
				return append(prefix, chunk[:end+1]...), nil
			}
			prefix = append(prefix, chunk[:n]...)
		}

		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
	}

	return prefix, nil
}

func (lb *LocalBackend) DeleteObject(ctx context.Context, scheme, key string) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if err := os.Remove(lb.resolvePath(scheme, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Already gone counts as deleted
			return nil
		}

		return mapPathError(err)
	}

	return nil
}

func (lb *LocalBackend) ListObjects(ctx context.Context) ([]data.ObjectRef, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	schemes, err := os.ReadDir(lb.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, mapPathError(err)
	}

	var refs []data.ObjectRef
	for _, scheme := range schemes {
		if !scheme.IsDir() {
			continue
		}

		entries, err := os.ReadDir(filepath.Join(lb.root, scheme.Name()))
		if err != nil {
			return nil, mapPathError(err)
		}

		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				// Skip leftover temp files from interrupted writes
				continue
			}

			refs = append(refs, data.ObjectRef{
				Scheme: scheme.Name(),
				Key:    entry.Name(),
			})
		}
	}

	return refs, nil
}

func (lb *LocalBackend) Purge(ctx context.Context) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	return os.RemoveAll(lb.root)
}

// mapPathError translates os errors into the shared sentinel errors.
func mapPathError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return data.ErrNotExist
	}
	if errors.Is(err, fs.ErrPermission) {
		return data.ErrPermission
	}

	return err
}
