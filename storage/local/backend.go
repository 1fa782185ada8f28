package local

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// LocalBackend stores backups as plain files under a root directory, one
// subdirectory per scheme and one file per object key. Writes go through
// a uniquely named temp file followed by a rename, so a concurrent reader
// never observes a torn object.
type LocalBackend struct {
	mu   sync.RWMutex
	root string
}

func NewLocalBackend(root string) (*LocalBackend, error) {
	return &LocalBackend{
		root: filepath.Clean(root),
	}, nil
}

// Name returns the identifier name defined for this backend.
func (*LocalBackend) Name() string {
	return "local"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
// The root directory is created when missing; backups from prior runs stay untouched.
func (lb *LocalBackend) Open(ctx context.Context) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if err := os.MkdirAll(lb.root, 0700); err != nil {
		return mapPathError(err)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (lb *LocalBackend) Close(ctx context.Context) error {
	// The underlying filesystem persists independently
	return nil
}

// Root returns the configured root directory.
func (lb *LocalBackend) Root() string {
	return lb.root
}

// resolvePath joins the backend root with a scheme and object key.
func (lb *LocalBackend) resolvePath(scheme, key string) string {
	return filepath.Join(lb.root, filepath.Clean(scheme), filepath.Clean(key))
}
