package ephemeral

import (
	"bytes"
	"context"
	"strings"

	"github.com/mwantia/backup/data"
)

func (eb *EphemeralBackend) WriteObject(ctx context.Context, scheme, key string, payload []byte) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	stored := make([]byte, len(payload))
	copy(stored, payload)
	eb.objects.Set(composeKey(scheme, key), stored)

	return nil
}

func (eb *EphemeralBackend) ReadObject(ctx context.Context, scheme, key string) ([]byte, error) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	stored, exists := eb.objects.Get(composeKey(scheme, key))
	if !exists {
		return nil, data.ErrNotExist
	}

	payload := make([]byte, len(stored))
	copy(payload, stored)

	return payload, nil
}

func (eb *EphemeralBackend) ReadObjectPrefix(ctx context.Context, scheme, key string, delim byte, chunkSize, maxBytes int) ([]byte, error) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	stored, exists := eb.objects.Get(composeKey(scheme, key))
	if !exists {
		return nil, data.ErrNotExist
	}

	end := len(stored)
	if end > maxBytes {
		end = maxBytes
	}

	if i := bytes.IndexByte(stored[:end], delim); i >= 0 {
		end = i + 1
	}

	prefix := make([]byte, end)
	copy(prefix, stored[:end])

	return prefix, nil
}

func (eb *EphemeralBackend) DeleteObject(ctx context.Context, scheme, key string) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.objects.Delete(composeKey(scheme, key))
	return nil
}

func (eb *EphemeralBackend) ListObjects(ctx context.Context) ([]data.ObjectRef, error) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	refs := make([]data.ObjectRef, 0, eb.objects.Len())
	eb.objects.Scan(func(composed string, _ []byte) bool {
		if scheme, key, found := strings.Cut(composed, "/"); found {
			refs = append(refs, data.ObjectRef{Scheme: scheme, Key: key})
		}
		return true
	})

	return refs, nil
}

func (eb *EphemeralBackend) Purge(ctx context.Context) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.objects.Clear()
	return nil
}
