package scope

import "strings"

// Scope names one structural category of a markdown document. Exactly one
// scope is classified per call.
type Scope uint8

const (
	// Frontmatter is the YAML block between the leading "---" markers.
	Frontmatter Scope = iota
	// Prose is body text outside code blocks, block quotes and headings.
	Prose
	// CodeBlock is fenced or indented code block content.
	CodeBlock
	// BlockQuote is block quote content without the ">" markers.
	BlockQuote
	// Heading is ATX and setext heading text, including inline code.
	Heading
	// Stylized is bold, italic and strikethrough text.
	Stylized
	// Italicized is italic text only.
	Italicized
	// NonItalicized is every text run outside italic markers.
	NonItalicized
	// Links is link text followed by the link destination.
	Links
	// Images is image alt text followed by the image source.
	Images
	// Lists is list item content, nested lists included.
	Lists
	// Tables is GFM table header and cell content.
	Tables
	// FootnoteDefinitions is footnote definition content without the marker.
	FootnoteDefinitions
)

type descriptor struct {
	ident       string
	name        string
	key         string
	description string
}

var descriptors = [...]descriptor{
	Frontmatter:         {"Frontmatter", "Frontmatter", "frontmatter", "YAML content between --- markers"},
	Prose:               {"Prose", "Prose", "prose", "Body text outside special elements"},
	CodeBlock:           {"CodeBlock", "Code Block", "code-block", "Fenced or indented code blocks"},
	BlockQuote:          {"BlockQuote", "Block Quote", "block-quote", "Block quote content (excluding > markers)"},
	Heading:             {"Heading", "Heading", "heading", "Heading text (excluding # markers)"},
	Stylized:            {"Stylized", "Stylized", "stylized", "Bold, italic, and strikethrough content"},
	Italicized:          {"Italicized", "Italicized", "italicized", "Italic content only (*text* or _text_)"},
	NonItalicized:       {"NonItalicized", "Non-Italicized", "non-italicized", "Everything except italic content"},
	Links:               {"Links", "Links", "links", "Link text and destination URLs"},
	Images:              {"Images", "Images", "images", "Image alt text and source URLs"},
	Lists:               {"Lists", "Lists", "lists", "List item content (ordered and unordered)"},
	Tables:              {"Tables", "Tables", "tables", "Table headers and cell content (GFM)"},
	FootnoteDefinitions: {"FootnoteDefinitions", "Footnote Definitions", "footnote-definitions", "Footnote content (excluding [^marker])"},
}

// All returns every scope in declaration order.
func All() []Scope {
	out := make([]Scope, len(descriptors))
	for i := range descriptors {
		out[i] = Scope(i)
	}
	return out
}

// Valid reports whether s is one of the declared scopes.
func (s Scope) Valid() bool {
	return int(s) < len(descriptors)
}

// Name returns the human readable label, e.g. "Code Block".
func (s Scope) Name() string {
	if !s.Valid() {
		return "Unknown"
	}
	return descriptors[s].name
}

// Key returns the kebab-case identifier used by configuration and the CLI.
func (s Scope) Key() string {
	if !s.Valid() {
		return "unknown"
	}
	return descriptors[s].key
}

// Description summarises what the scope isolates.
func (s Scope) Description() string {
	if !s.Valid() {
		return ""
	}
	return descriptors[s].description
}

func (s Scope) String() string {
	return s.Name()
}

// MarshalText encodes the scope as its key.
func (s Scope) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, unknownScopeError(s.Key(), int(s))
	}
	return []byte(s.Key()), nil
}

// UnmarshalText accepts anything Parse accepts.
func (s *Scope) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Parse resolves a scope from its key ("code-block"), name ("Code Block") or
// identifier ("CodeBlock"). Matching ignores case, spaces, dashes and
// underscores.
func Parse(value string) (Scope, error) {
	want := normalize(value)
	if want != "" {
		for i, d := range descriptors {
			if want == normalize(d.ident) || want == normalize(d.key) || want == normalize(d.name) {
				return Scope(i), nil
			}
		}
	}
	return 0, unknownScopeError(value, -1)
}

func normalize(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch r {
		case ' ', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
