package data

import "strings"

// TextSource is raw text already split into lines, together with the
// canonical end-of-line string used to rejoin them.
type TextSource struct {
	Lines []string
	EOL   string
}

// NewTextSource splits raw text into a TextSource. Lines are split on
// either ending; the canonical EOL is detected from the content, CRLF
// winning whenever it occurs at least once. Rejoining therefore
// normalizes mixed endings to the canonical one.
func NewTextSource(raw string) TextSource {
	eol := "\n"
	if strings.Contains(raw, "\r\n") {
		eol = "\r\n"
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return TextSource{
		Lines: lines,
		EOL:   eol,
	}
}

// Join reassembles the source into a single string.
func (t TextSource) Join() string {
	return strings.Join(t.Lines, t.EOL)
}
