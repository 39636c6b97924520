package interpolate

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-mdscope/internal/scope"
)

// Literal replaces every non-overlapping occurrence of find inside the
// regions of s. Occurrences are searched left to right within each region
// and never span two regions. An empty find matches nothing.
func Literal(document string, s scope.Scope, find, replace string) (Rewrite, error) {
	regions, err := scope.Regions(document, s)
	if err != nil {
		return Rewrite{}, err
	}
	return rewrite(document, literalMatches(document, regions, find, replace)), nil
}

// Regex replaces every match of pattern inside the regions of s with
// template expanded against the match ($1, ${1}, $name). The pattern uses
// RE2 syntax and is compiled before the document is parsed.
func Regex(document string, s scope.Scope, pattern, template string) (Rewrite, error) {
	re, err := compile(pattern)
	if err != nil {
		return Rewrite{}, err
	}
	regions, err := scope.Regions(document, s)
	if err != nil {
		return Rewrite{}, err
	}
	return rewrite(document, regexMatches(document, regions, re, template)), nil
}

// All is Literal over the whole document, ignoring markdown structure.
func All(document, find, replace string) Rewrite {
	return rewrite(document, literalMatches(document, whole(document), find, replace))
}

// AllRegex is Regex over the whole document, ignoring markdown structure.
func AllRegex(document, pattern, template string) (Rewrite, error) {
	re, err := compile(pattern)
	if err != nil {
		return Rewrite{}, err
	}
	return rewrite(document, regexMatches(document, whole(document), re, template)), nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, invalidPatternError(pattern, err)
	}
	return re, nil
}

func whole(document string) []scope.Region {
	return []scope.Region{{Start: 0, End: len(document)}}
}

func literalMatches(document string, regions []scope.Region, find, replace string) []Replacement {
	if find == "" {
		return nil
	}

	var out []Replacement
	for _, region := range regions {
		text := region.Slice(document)
		offset := 0
		for {
			idx := strings.Index(text[offset:], find)
			if idx < 0 {
				break
			}
			start := region.Start + offset + idx
			out = append(out, Replacement{Start: start, End: start + len(find), Text: replace})
			offset += idx + len(find)
		}
	}
	return out
}

func regexMatches(document string, regions []scope.Region, re *regexp.Regexp, template string) []Replacement {
	var out []Replacement
	for _, region := range regions {
		text := region.Slice(document)
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			expanded := re.ExpandString(nil, template, text, loc)
			out = append(out, Replacement{
				Start: region.Start + loc[0],
				End:   region.Start + loc[1],
				Text:  string(expanded),
			})
		}
	}
	return out
}
