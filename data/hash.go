package data

import (
	"fmt"
	"hash/fnv"
	"io"
)

// HashPath maps a resource path to a fixed-length hexadecimal identifier.
// The mapping is deterministic and stable across process restarts; backups
// written by prior runs are only found again because the same input always
// produces the same output. Changing the algorithm silently invalidates
// every backup already on disk, so it is fixed to 64-bit FNV-1a.
func HashPath(path string) string {
	h := fnv.New64a()
	io.WriteString(h, path)

	return fmt.Sprintf("%016x", h.Sum64())
}
