package backup

import (
	"context"

	"github.com/mwantia/backup/data"
	"go.lsp.dev/uri"
)

// BackupService protects unsaved editor content against data loss by
// periodically persisting it to a backup store, tagged with the identity
// of the resource it belongs to, and restoring or discarding those copies
// across process restarts. Backup locations derive deterministically from
// the resource scheme and a hash of the resource path; an in-memory index
// of existing backups is rebuilt from a single store scan on first use.
type BackupService interface {
	// IsBackupEnabled reports whether a backup store is configured.
	// Without one every operation is a no-op.
	IsBackupEnabled() bool

	// HasBackups reports whether any backups are currently known.
	HasBackups(ctx context.Context) (bool, error)

	// LoadBackupResource returns the backup location for the resource when
	// a backup is known to exist at any version, nil otherwise. The check
	// is answered from the index alone; no store access happens.
	LoadBackupResource(ctx context.Context, resource uri.URI) (*data.BackupLocation, error)

	// BackupResource persists the content as the backup for the resource.
	// Passing a versionID makes repeated calls with the same version
	// idempotent: a matching index entry skips the write entirely. Without
	// a versionID any existing backup for the resource suffices to skip.
	// Writes for the same resource are serialized in submission order and
	// each one carries its own index update, so the index always reflects
	// the last write that reached the store. A failed write leaves the
	// index untouched and surfaces to the caller; a retry is never skipped.
	BackupResource(ctx context.Context, resource uri.URI, content string, versionID ...int64) error

	// DiscardResourceBackup removes the backup for the resource, ordered
	// through the same per-resource queue as writes; a backup still in
	// flight when the discard arrives is removed as well. Resources with
	// neither a backup nor a pending operation are a no-op. The index
	// entry is removed only after the delete succeeds.
	DiscardResourceBackup(ctx context.Context, resource uri.URI) error

	// DiscardAllBackups wipes the entire store and clears the index. The
	// service enters shutdown first, so backup requests arriving from this
	// point on are suppressed and cannot resurrect wiped backups. The
	// index is cleared only when the purge succeeds.
	DiscardAllBackups(ctx context.Context) error

	// ListBackups recovers the original resource identifier of every known
	// backup by reading a bounded prefix of each stored object. Entries
	// whose metadata cannot be recovered within the bound are collected
	// into the returned error; they never abort the remaining entries.
	ListBackups(ctx context.Context) ([]uri.URI, error)

	// ExtractUserContent strips the metadata framing line from a backup's
	// text and rejoins the remaining lines with the source's canonical
	// line ending.
	ExtractUserContent(source data.TextSource) string

	// Close releases the backup store. Backups on persistent stores
	// survive for the next session. Closing twice, or using the service
	// after closing it, returns ErrClosed.
	Close(ctx context.Context) error
}
