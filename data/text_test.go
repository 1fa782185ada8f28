package data_test

import (
	"testing"

	"github.com/mwantia/backup/data"
)

func TestNewTextSource_LF(t *testing.T) {
	source := data.NewTextSource("first\nsecond\nthird")

	if source.EOL != "\n" {
		t.Errorf("Expected LF ending, got %q", source.EOL)
	}

	if len(source.Lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(source.Lines))
	}

	if source.Lines[1] != "second" {
		t.Errorf("Expected 'second', got %q", source.Lines[1])
	}
}

func TestNewTextSource_CRLF(t *testing.T) {
	source := data.NewTextSource("first\r\nsecond")

	if source.EOL != "\r\n" {
		t.Errorf("Expected CRLF ending, got %q", source.EOL)
	}

	if source.Lines[0] != "first" {
		t.Errorf("Expected carriage return stripped, got %q", source.Lines[0])
	}
}

func TestNewTextSource_MixedNormalizes(t *testing.T) {
	source := data.NewTextSource("first\r\nsecond\nthird")

	if got := source.Join(); got != "first\r\nsecond\r\nthird" {
		t.Errorf("Expected normalized CRLF output, got %q", got)
	}
}

func TestTextSource_JoinRoundTrip(t *testing.T) {
	raw := "a\nb\nc\n"
	if got := data.NewTextSource(raw).Join(); got != raw {
		t.Errorf("Round trip mismatch: %q != %q", got, raw)
	}
}
