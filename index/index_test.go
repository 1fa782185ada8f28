package index_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mwantia/backup/data"
	"github.com/mwantia/backup/index"
	"github.com/mwantia/backup/storage/ephemeral"
)

func TestIndex_AddHasRemove(t *testing.T) {
	ix := index.New()
	loc := data.BackupLocation{Scheme: "file", Hash: data.HashPath("/tmp/a")}

	if ix.Has(loc) {
		t.Error("Expected empty index")
	}

	ix.Add(loc, 1)

	if !ix.Has(loc) {
		t.Error("Expected location to be known")
	}
	if !ix.Has(loc, 1) {
		t.Error("Expected exact version match")
	}
	if ix.Has(loc, 2) {
		t.Error("Expected version mismatch to report false")
	}

	ix.Remove(loc)

	if ix.Has(loc) {
		t.Error("Expected location to be forgotten")
	}
}

func TestIndex_AddOverwritesVersion(t *testing.T) {
	ix := index.New()
	loc := data.BackupLocation{Scheme: "file", Hash: data.HashPath("/tmp/a")}

	ix.Add(loc, 1)
	ix.Add(loc, 2)

	if ix.Count() != 1 {
		t.Errorf("Expected a single entry, got %d", ix.Count())
	}
	if !ix.Has(loc, 2) {
		t.Error("Expected latest version to win")
	}
}

func TestIndex_CountAndClear(t *testing.T) {
	ix := index.New()

	for _, path := range []string{"/a", "/b", "/c"} {
		ix.Add(data.BackupLocation{Scheme: "file", Hash: data.HashPath(path)}, 0)
	}

	if ix.Count() != 3 {
		t.Errorf("Expected 3 entries, got %d", ix.Count())
	}

	ix.Clear()

	if ix.Count() != 0 {
		t.Errorf("Expected empty index after clear, got %d", ix.Count())
	}
}

func TestIndex_Locations(t *testing.T) {
	ix := index.New()
	ix.Add(data.BackupLocation{Scheme: "untitled", Hash: "aa"}, 0)
	ix.Add(data.BackupLocation{Scheme: "file", Hash: "bb"}, 0)

	locations := ix.Locations()
	if len(locations) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(locations))
	}

	// Key order: "file/bb" sorts before "untitled/aa"
	if locations[0].Scheme != "file" || locations[1].Scheme != "untitled" {
		t.Errorf("Unexpected location order: %v", locations)
	}
}

func TestIndex_ResolveFromStore(t *testing.T) {
	ctx := context.Background()
	store := ephemeral.NewEphemeralBackend()

	locA := data.BackupLocation{Scheme: "file", Hash: data.HashPath("/a")}
	locB := data.BackupLocation{Scheme: "untitled", Hash: data.HashPath("Untitled-1")}
	for _, loc := range []data.BackupLocation{locA, locB} {
		if err := store.WriteObject(ctx, loc.Scheme, loc.Hash, []byte("x\ny")); err != nil {
			t.Fatalf("WriteObject failed: %v", err)
		}
	}

	ix := index.New()
	ix.Resolve(ctx, store, nil)

	if ix.Count() != 2 {
		t.Fatalf("Expected 2 entries after resolve, got %d", ix.Count())
	}

	// Versions are not persisted, so everything scans in at version 0
	if !ix.Has(locA, 0) || !ix.Has(locB, 0) {
		t.Error("Expected scanned entries at version 0")
	}
	if ix.Has(locA, 7) {
		t.Error("Expected no entry at a prior version")
	}
}

type brokenStore struct {
	ephemeral.EphemeralBackend
}

func (*brokenStore) ListObjects(ctx context.Context) ([]data.ObjectRef, error) {
	return nil, errors.New("scan denied")
}

func TestIndex_ResolveToleratesScanFailure(t *testing.T) {
	ix := index.New()
	ix.Resolve(context.Background(), &brokenStore{}, nil)

	if ix.Count() != 0 {
		t.Errorf("Expected empty index after failed scan, got %d", ix.Count())
	}
}

func TestIndex_ResolveNilStore(t *testing.T) {
	ix := index.New()
	ix.Resolve(context.Background(), nil, nil)

	if ix.Count() != 0 {
		t.Errorf("Expected empty index, got %d", ix.Count())
	}
}
