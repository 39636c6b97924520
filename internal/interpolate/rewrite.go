package interpolate

import (
	"cmp"
	"slices"

	"github.com/goliatone/go-mdscope/internal/scope"
)

// Replacement substitutes Text for the bytes [Start, End) of the original
// document.
type Replacement struct {
	Start int
	End   int
	Text  string
}

// Rewrite is the outcome of an interpolation. When Replaced is zero, Text is
// the input document itself, not a copy.
type Rewrite struct {
	Text     string
	Replaced int
}

// Borrowed reports whether Text is the unmodified input document.
func (r Rewrite) Borrowed() bool {
	return r.Replaced == 0
}

func (r Rewrite) String() string {
	return r.Text
}

// Apply rewrites document with caller supplied replacements. Every
// replacement is checked with scope.Validate against the original document,
// and two replacements may not overlap; zero width insertions may share an
// offset with each other or with the start of a replacement. Any violation
// fails the whole call with INVALID_BYTE_RANGE and nothing is applied.
// Accepted replacements are applied last offset first on one byte buffer.
func Apply(document string, replacements []Replacement) (string, error) {
	if err := checkReplacements(document, replacements); err != nil {
		return "", err
	}
	text, _ := apply(document, replacements)
	return text, nil
}

func checkReplacements(document string, replacements []Replacement) error {
	for _, r := range replacements {
		if _, err := scope.Validate(document, r.Start, r.End); err != nil {
			return err
		}
	}

	ordered := slices.Clone(replacements)
	slices.SortFunc(ordered, func(a, b Replacement) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
	for i := 1; i < len(ordered); i++ {
		prev, next := ordered[i-1], ordered[i]
		if next.Start < prev.End {
			return scope.InvalidByteRangeError(next.Start, next.End, len(document), "overlaps another replacement")
		}
	}
	return nil
}

// apply does no validation: Literal and Regex only hand it ranges built from
// validated regions. Out of range or overlapping entries are dropped.
func apply(document string, replacements []Replacement) (string, int) {
	if len(replacements) == 0 {
		return document, 0
	}

	ordered := slices.Clone(replacements)
	slices.SortStableFunc(ordered, func(a, b Replacement) int {
		if c := cmp.Compare(b.Start, a.Start); c != 0 {
			return c
		}
		return cmp.Compare(b.End, a.End)
	})

	buf := []byte(document)
	limit := len(document)
	applied := 0
	for _, r := range ordered {
		if r.Start < 0 || r.Start > r.End || r.End > limit {
			continue
		}
		buf = slices.Replace(buf, r.Start, r.End, []byte(r.Text)...)
		limit = r.Start
		applied++
	}

	if applied == 0 {
		return document, 0
	}
	return string(buf), applied
}

func rewrite(document string, replacements []Replacement) Rewrite {
	text, applied := apply(document, replacements)
	return Rewrite{Text: text, Replaced: applied}
}
