package ephemeral

import (
	"context"
	"sync"

	"github.com/tidwall/btree"
)

// EphemeralBackend keeps backup objects in process memory, ordered by
// their composed scheme/key. Nothing survives a restart; it exists for
// tests and for hosts that only want crash protection within one session.
type EphemeralBackend struct {
	mu      sync.RWMutex
	objects *btree.Map[string, []byte]
}

func NewEphemeralBackend() *EphemeralBackend {
	return &EphemeralBackend{
		objects: btree.NewMap[string, []byte](0),
	}
}

// Name returns the identifier name defined for this backend.
func (*EphemeralBackend) Name() string {
	return "ephemeral"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (eb *EphemeralBackend) Open(ctx context.Context) error {
	// No initialization needed - backend is ready to use
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (eb *EphemeralBackend) Close(ctx context.Context) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.objects.Clear()
	return nil
}

func composeKey(scheme, key string) string {
	return scheme + "/" + key
}
