package data_test

import (
	"testing"

	"github.com/mwantia/backup/data"
)

// TestHashPath_Golden pins the exact output of the hasher. These values
// are what prior runs have written to disk; any change here silently
// orphans every existing backup.
func TestHashPath_Golden(t *testing.T) {
	cases := map[string]string{
		"/home/user/notes.txt": "93c177cc67b29295",
		"/tmp/a":               "6cc13bddf2746ce7",
		"Untitled-1":           "679de4255277bdba",
		"":                     "cbf29ce484222325",
	}

	for path, expected := range cases {
		if got := data.HashPath(path); got != expected {
			t.Errorf("HashPath(%q) = %q, expected %q", path, got, expected)
		}
	}
}

func TestHashPath_Stable(t *testing.T) {
	first := data.HashPath("/some/deeply/nested/path/file.go")

	for i := 0; i < 100; i++ {
		if got := data.HashPath("/some/deeply/nested/path/file.go"); got != first {
			t.Fatalf("HashPath unstable: %q != %q", got, first)
		}
	}
}

func TestHashPath_FixedLength(t *testing.T) {
	for _, path := range []string{"", "a", "/tmp/a", "/very/long/path/with/many/segments/and/a/file.txt"} {
		if got := data.HashPath(path); len(got) != 16 {
			t.Errorf("HashPath(%q) = %q, expected 16 hex characters", path, got)
		}
	}
}

func TestHashPath_Distinct(t *testing.T) {
	if data.HashPath("/tmp/a") == data.HashPath("/tmp/b") {
		t.Error("Expected different hashes for different paths")
	}
}
