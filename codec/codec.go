// Package codec frames backup content with the identity of the resource
// it belongs to. A backup file is the original resource identifier, a
// single newline marker, and the user content verbatim.
package codec

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mwantia/backup/data"
	"go.lsp.dev/uri"
)

// Marker separates the framing line from the user content.
const Marker byte = '\n'

// Frame prepends the resource identifier line to the content.
func Frame(resource uri.URI, content string) []byte {
	payload := make([]byte, 0, len(resource)+1+len(content))
	payload = append(payload, resource...)
	payload = append(payload, Marker)
	payload = append(payload, content...)

	return payload
}

// ExtractResource recovers the original resource identifier from a bounded
// prefix of a backup file. The prefix must contain the marker; a prefix
// without one is malformed, never guessed at.
func ExtractResource(prefix []byte) (uri.URI, error) {
	end := bytes.IndexByte(prefix, Marker)
	if end < 0 {
		return "", fmt.Errorf("%w: no marker within %d bytes", data.ErrMetadataMalformed, len(prefix))
	}

	line := strings.TrimSuffix(string(prefix[:end]), "\r")
	if line == "" {
		return "", fmt.Errorf("%w: empty identifier line", data.ErrMetadataMalformed)
	}

	resource := uri.URI(line)
	if _, _, err := data.SplitResource(resource); err != nil {
		return "", fmt.Errorf("%w: %q", data.ErrMetadataMalformed, line)
	}

	return resource, nil
}

// ExtractContent drops the framing line from an already-split backup text
// and rejoins the remaining lines with the source's canonical line ending.
func ExtractContent(source data.TextSource) string {
	if len(source.Lines) == 0 {
		return ""
	}

	return strings.Join(source.Lines[1:], source.EOL)
}
