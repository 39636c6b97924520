package markdown

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/adrg/frontmatter"
)

const (
	frontmatterOpener    = "---"
	frontmatterCloser    = "---"
	frontmatterAltCloser = "..."
)

// FrontmatterBounds locates the body of a YAML frontmatter block. The
// document, ignoring leading whitespace, must start with "---"; the block ends
// at the first following line whose trimmed content is "---" or "...". The
// returned range excludes both delimiter lines and the line terminator that
// precedes the closer. ok is false when there is no complete block.
func FrontmatterBounds(document string) (start, end int, ok bool) {
	trimmed := strings.TrimLeftFunc(document, unicode.IsSpace)
	leading := len(document) - len(trimmed)

	if !strings.HasPrefix(trimmed, frontmatterOpener) {
		return 0, 0, false
	}

	newline := strings.IndexByte(trimmed[len(frontmatterOpener):], '\n')
	if newline < 0 {
		return 0, 0, false
	}
	bodyStart := leading + len(frontmatterOpener) + newline + 1

	pos := bodyStart
	for pos < len(document) {
		lineEnd := strings.IndexByte(document[pos:], '\n')
		next := len(document)
		line := document[pos:]
		if lineEnd >= 0 {
			line = document[pos : pos+lineEnd]
			next = pos + lineEnd + 1
		}

		switch strings.TrimSpace(line) {
		case frontmatterCloser, frontmatterAltCloser:
			return bodyStart, trimTerminator(document, bodyStart, pos), true
		}
		pos = next
	}

	return 0, 0, false
}

// trimTerminator drops the "\n" or "\r\n" that ends the last body line.
func trimTerminator(document string, start, end int) int {
	if end > start && document[end-1] == '\n' {
		end--
		if end > start && document[end-1] == '\r' {
			end--
		}
	}
	return end
}

// ParseFrontmatter decodes the frontmatter block of document into a map and
// returns the remaining body. YAML (---), TOML (+++) and JSON (;;;) blocks are
// recognised. A document without frontmatter yields an empty map and the
// document unchanged.
func ParseFrontmatter(document string) (map[string]any, string, error) {
	meta := map[string]any{}

	body, err := frontmatter.Parse(strings.NewReader(document), &meta)
	if err != nil {
		return nil, "", fmt.Errorf("parse frontmatter: %w", err)
	}

	return meta, string(body), nil
}
