// Package storage defines the backend contract for backup object stores.
package storage

import (
	"context"

	"github.com/mwantia/backup/data"
)

// Backend is the lifecycle and object contract a backup store implements.
// Objects are addressed by a scheme plus a key; the store keeps one
// object per backed-up resource, latest version only.
type Backend interface {
	// Name returns the identifier name defined for this backend.
	Name() string

	// Open is part of the lifecycle behaviour and gets called when opening this backend.
	Open(ctx context.Context) error

	// Close is part of the lifecycle behaviour and gets called when closing this backend.
	Close(ctx context.Context) error

	// WriteObject replaces the object at scheme/key with the full payload.
	// Writes are whole-object; a reader never observes a partial payload.
	WriteObject(ctx context.Context, scheme, key string, payload []byte) error

	// ReadObject returns the full payload of the object at scheme/key.
	// Returns data.ErrNotExist when the object is absent.
	ReadObject(ctx context.Context, scheme, key string) ([]byte, error)

	// ReadObjectPrefix returns a bounded prefix of the object: all bytes up
	// to and including the first occurrence of delim, reading in chunkSize
	// steps where the medium allows, never more than maxBytes. When delim
	// does not occur within the bound, the capped prefix is returned as-is;
	// deciding what that means is the caller's business.
	ReadObjectPrefix(ctx context.Context, scheme, key string, delim byte, chunkSize, maxBytes int) ([]byte, error)

	// DeleteObject removes the object at scheme/key. Deleting an absent
	// object is not an error.
	DeleteObject(ctx context.Context, scheme, key string) error

	// ListObjects enumerates every stored object, one scheme/key pair each.
	ListObjects(ctx context.Context) ([]data.ObjectRef, error)

	// Purge removes the entire store recursively.
	Purge(ctx context.Context) error
}
