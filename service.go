package backup

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mwantia/backup/codec"
	"github.com/mwantia/backup/data"
	"github.com/mwantia/backup/index"
	"github.com/mwantia/backup/log"
	"github.com/mwantia/backup/queue"
	"github.com/mwantia/backup/storage"
	"go.lsp.dev/uri"
)

const (
	// Bounds for recovering the framing line from a stored backup without
	// materializing the whole object.
	metadataChunkSize = 512
	metadataMaxBytes  = 10000
)

type backupServiceImpl struct {
	log   *log.Logger
	store storage.Backend

	queue *queue.OperationQueue
	index *index.Index

	initOnce     sync.Once
	ready        chan struct{}
	shuttingDown atomic.Bool
	closed       atomic.Bool
}

func NewBackupService(opts ...BackupServiceOption) (BackupService, error) {
	options := newDefaultBackupServiceOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	return &backupServiceImpl{
		log:   log.NewLogger("backup", options.LogLevel, options.LogFile, options.NoTerminalLog),
		store: options.Backend,
		queue: queue.NewOperationQueue(),
		index: index.New(),
		ready: make(chan struct{}),
	}, nil
}

// awaitReady triggers the one-time store scan on first use and blocks
// until the index is resolved. Initialization never fails; a broken store
// degrades to an empty index.
func (s *backupServiceImpl) awaitReady(ctx context.Context) error {
	if s.closed.Load() {
		return data.ErrClosed
	}

	s.initOnce.Do(func() {
		go s.initialize(context.WithoutCancel(ctx))
	})

	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *backupServiceImpl) initialize(ctx context.Context) {
	defer close(s.ready)

	if s.store == nil {
		s.log.Debug("No backup store configured, backups are disabled")
		return
	}

	if err := s.store.Open(ctx); err != nil {
		// Keep going; the scan below degrades to an empty index and
		// individual writes surface their own failures
		s.log.Warn("Failed to open backup store '%s': %v", s.store.Name(), err)
	}

	s.index.Resolve(ctx, s.store, s.log)
	s.log.Debug("Backup index resolved with %d entries", s.index.Count())
}

func (s *backupServiceImpl) IsBackupEnabled() bool {
	return s.store != nil
}

func (s *backupServiceImpl) HasBackups(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, nil
	}

	if err := s.awaitReady(ctx); err != nil {
		return false, err
	}

	return s.index.Count() > 0, nil
}

func (s *backupServiceImpl) LoadBackupResource(ctx context.Context, resource uri.URI) (*data.BackupLocation, error) {
	if s.store == nil {
		return nil, nil
	}

	if err := s.awaitReady(ctx); err != nil {
		return nil, err
	}

	loc, err := data.LocationFor(resource)
	if err != nil {
		return nil, err
	}

	if !s.index.Has(loc) {
		return nil, nil
	}

	return &loc, nil
}

func (s *backupServiceImpl) BackupResource(ctx context.Context, resource uri.URI, content string, versionID ...int64) error {
	if s.shuttingDown.Load() {
		// A full discard is wiping the store; accepting this write would
		// resurrect a backup the caller is trying to get rid of
		return nil
	}

	if s.store == nil {
		return nil
	}

	if err := s.awaitReady(ctx); err != nil {
		return err
	}

	loc, err := data.LocationFor(resource)
	if err != nil {
		return err
	}

	if s.index.Has(loc, versionID...) {
		// Content unchanged since the last backup
		s.log.Debug("Skipping backup for %s, version already stored", resource)
		return nil
	}

	payload := codec.Frame(resource, content)

	version := int64(0)
	if len(versionID) > 0 {
		version = versionID[0]
	}

	// The index mutation runs inside the queued operation so that for any
	// one location, writes, deletes and their index updates share a single
	// total order. Updating after <-result instead would let two concurrent
	// backups commit their index entries in the opposite order of their
	// writes, leaving the index at a version whose content is not stored.
	result := s.queue.Enqueue(ctx, loc.Key(), func(ctx context.Context) error {
		if err := s.store.WriteObject(ctx, loc.Scheme, loc.Hash, payload); err != nil {
			// Index stays untouched so a retry is not incorrectly skipped
			return err
		}

		s.index.Add(loc, version)
		return nil
	})
	if err := <-result; err != nil {
		return fmt.Errorf("failed to backup %s: %w", resource, err)
	}

	return nil
}

func (s *backupServiceImpl) DiscardResourceBackup(ctx context.Context, resource uri.URI) error {
	if s.store == nil {
		return nil
	}

	if err := s.awaitReady(ctx); err != nil {
		return err
	}

	loc, err := data.LocationFor(resource)
	if err != nil {
		return err
	}

	// A backup still in flight has not reached the index yet; its queued
	// write must not survive this discard, so only a location with neither
	// an entry nor pending operations is a true no-op
	if !s.index.Has(loc) && !s.queue.Pending(loc.Key()) {
		return nil
	}

	result := s.queue.Enqueue(ctx, loc.Key(), func(ctx context.Context) error {
		if err := s.store.DeleteObject(ctx, loc.Scheme, loc.Hash); err != nil {
			// The backup presumably still exists, so the entry stays
			return err
		}

		s.index.Remove(loc)
		return nil
	})
	if err := <-result; err != nil {
		return fmt.Errorf("failed to discard backup for %s: %w", resource, err)
	}

	return nil
}

func (s *backupServiceImpl) DiscardAllBackups(ctx context.Context) error {
	// Suppress new backup writes before touching the store, so nothing
	// written concurrently survives the wipe
	s.shuttingDown.Store(true)

	if s.store == nil {
		return nil
	}

	if err := s.awaitReady(ctx); err != nil {
		return err
	}

	if err := s.store.Purge(ctx); err != nil {
		// Index untouched, a retry can attempt the purge again
		return fmt.Errorf("failed to discard all backups: %w", err)
	}

	s.index.Clear()
	s.log.Info("Discarded all workspace backups")

	return nil
}

func (s *backupServiceImpl) ListBackups(ctx context.Context) ([]uri.URI, error) {
	if s.store == nil {
		return nil, nil
	}

	if err := s.awaitReady(ctx); err != nil {
		return nil, err
	}

	errs := data.Errors{}
	var resources []uri.URI

	for _, loc := range s.index.Locations() {
		prefix, err := s.store.ReadObjectPrefix(ctx, loc.Scheme, loc.Hash, codec.Marker, metadataChunkSize, metadataMaxBytes)
		if err != nil {
			errs.Add(fmt.Errorf("backup %s: %w", loc, err))
			continue
		}

		resource, err := codec.ExtractResource(prefix)
		if err != nil {
			errs.Add(fmt.Errorf("backup %s: %w", loc, err))
			continue
		}

		resources = append(resources, resource)
	}

	return resources, errs.Errors()
}

func (s *backupServiceImpl) ExtractUserContent(source data.TextSource) string {
	return codec.ExtractContent(source)
}

func (s *backupServiceImpl) Close(ctx context.Context) error {
	if s.closed.Swap(true) {
		return data.ErrClosed
	}

	if s.store == nil {
		return nil
	}

	return s.store.Close(ctx)
}
