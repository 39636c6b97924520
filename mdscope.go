package mdscope

import (
	"github.com/goliatone/go-mdscope/internal/interpolate"
	"github.com/goliatone/go-mdscope/internal/isolate"
	"github.com/goliatone/go-mdscope/internal/markdown"
	"github.com/goliatone/go-mdscope/internal/scope"
)

// Scope names one structural category of a markdown document.
type Scope = scope.Scope

// Region is a half-open byte range [Start, End) of a document.
type Region = scope.Region

// Piece is one classified run of text with its source region.
type Piece = scope.Piece

// Action selects how isolated pieces are returned.
type Action = isolate.Action

// Result is either the ordered pieces or their concatenation.
type Result = isolate.Result

// Rewrite is an interpolated document plus the number of replacements.
type Rewrite = interpolate.Rewrite

// Replacement substitutes text for a byte range of the original document.
type Replacement = interpolate.Replacement

const (
	Frontmatter         = scope.Frontmatter
	Prose               = scope.Prose
	CodeBlock           = scope.CodeBlock
	BlockQuote          = scope.BlockQuote
	Heading             = scope.Heading
	Stylized            = scope.Stylized
	Italicized          = scope.Italicized
	NonItalicized       = scope.NonItalicized
	Links               = scope.Links
	Images              = scope.Images
	Lists               = scope.Lists
	Tables              = scope.Tables
	FootnoteDefinitions = scope.FootnoteDefinitions
)

const (
	TextCodeInvalidByteRange = scope.TextCodeInvalidByteRange
	TextCodeUnknownScope     = scope.TextCodeUnknownScope
	TextCodeInvalidPattern   = interpolate.TextCodeInvalidPattern
)

// LeaveAsVector returns every piece separately.
func LeaveAsVector() Action { return isolate.LeaveAsVector() }

// Concatenate joins pieces with nothing between them.
func Concatenate() Action { return isolate.Concatenate() }

// ConcatenateWith joins pieces with delimiter between consecutive pieces.
func ConcatenateWith(delimiter string) Action { return isolate.ConcatenateWith(delimiter) }

// Isolate extracts the content of scope s from document. Pieces borrow from
// document and keep document order.
func Isolate(document string, s Scope, action Action) (Result, error) {
	return isolate.Isolate(document, s, action)
}

// InterpolateLiteral replaces every occurrence of find that lies wholly
// inside scope s. When nothing matches, the returned text is document itself.
func InterpolateLiteral(document string, s Scope, find, replace string) (Rewrite, error) {
	return interpolate.Literal(document, s, find, replace)
}

// InterpolateRegex replaces every match of pattern inside scope s with the
// expansion of template. An invalid pattern fails before the document is parsed.
func InterpolateRegex(document string, s Scope, pattern, template string) (Rewrite, error) {
	return interpolate.Regex(document, s, pattern, template)
}

// Interpolate replaces find everywhere in document, ignoring markdown structure.
func Interpolate(document, find, replace string) Rewrite {
	return interpolate.All(document, find, replace)
}

// InterpolateRegexAll is InterpolateRegex over the whole document.
func InterpolateRegexAll(document, pattern, template string) (Rewrite, error) {
	return interpolate.AllRegex(document, pattern, template)
}

// Classify returns the pieces of scope s in document order, including the
// link and image destinations that have no source range of their own.
func Classify(document string, s Scope) ([]Piece, error) {
	return scope.Classify(document, s)
}

// Regions returns the validated source ranges of scope s.
func Regions(document string, s Scope) ([]Region, error) {
	return scope.Regions(document, s)
}

// ApplyReplacements rewrites document with replacements, last offset first.
// Each replacement must be a valid range of document on character boundaries
// and must not overlap another one. Otherwise the call fails with
// INVALID_BYTE_RANGE and no replacement is applied.
func ApplyReplacements(document string, replacements []Replacement) (string, error) {
	return interpolate.Apply(document, replacements)
}

// FrontmatterData decodes the frontmatter block of document. A document
// without frontmatter yields an empty map.
func FrontmatterData(document string) (map[string]any, error) {
	meta, _, err := markdown.ParseFrontmatter(document)
	return meta, err
}

// ParseScope resolves a scope from its key, display name or identifier.
func ParseScope(value string) (Scope, error) {
	return scope.Parse(value)
}

// AllScopes lists every scope in declaration order.
func AllScopes() []Scope {
	return scope.All()
}

// IsUnknownScope reports whether err was caused by an undeclared scope.
func IsUnknownScope(err error) bool {
	return scope.IsUnknownScope(err)
}

// IsInvalidByteRange reports whether err was caused by a range that failed
// bounds or UTF-8 boundary checks.
func IsInvalidByteRange(err error) bool {
	return scope.IsInvalidByteRange(err)
}

// IsInvalidPattern reports whether err was caused by a regex that did not compile.
func IsInvalidPattern(err error) bool {
	return interpolate.IsInvalidPattern(err)
}
