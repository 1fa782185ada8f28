package data

import (
	"fmt"
	"net/url"
	"strings"

	"go.lsp.dev/uri"
)

// BackupLocation is the derived storage location for a resource's backup:
// the resource scheme plus a hash of the resource path. The mapping is
// one-way; recovering the original resource for a location requires
// reading the backup's framing metadata.
type BackupLocation struct {
	Scheme string
	Hash   string
}

// Key returns the normalized index key for this location.
func (l BackupLocation) Key() string {
	return l.Scheme + "/" + l.Hash
}

func (l BackupLocation) String() string {
	return l.Key()
}

// ParseLocationKey splits a normalized index key back into a location.
func ParseLocationKey(key string) (BackupLocation, bool) {
	scheme, hash, found := strings.Cut(key, "/")
	if !found || scheme == "" || hash == "" {
		return BackupLocation{}, false
	}

	return BackupLocation{Scheme: scheme, Hash: hash}, true
}

// LocationFor derives the backup location for the given resource.
func LocationFor(resource uri.URI) (BackupLocation, error) {
	scheme, path, err := SplitResource(resource)
	if err != nil {
		return BackupLocation{}, err
	}

	return BackupLocation{
		Scheme: scheme,
		Hash:   HashPath(path),
	}, nil
}

// SplitResource breaks a resource identifier into its scheme and path.
// Opaque identifiers such as "untitled:Untitled-1" use the opaque part
// as their path.
func SplitResource(resource uri.URI) (string, string, error) {
	parsed, err := url.Parse(string(resource))
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidResource, resource)
	}

	if parsed.Scheme == "" {
		return "", "", fmt.Errorf("%w: missing scheme in %s", ErrInvalidResource, resource)
	}

	path := parsed.Path
	if path == "" {
		path = parsed.Opaque
	}

	return parsed.Scheme, path, nil
}
