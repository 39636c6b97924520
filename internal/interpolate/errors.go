package interpolate

import (
	goerrors "github.com/goliatone/go-errors"
)

// TextCodeInvalidPattern marks a regular expression that failed to compile.
const TextCodeInvalidPattern = "INVALID_REGEX_PATTERN"

func invalidPatternError(pattern string, err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid regex pattern").
		WithTextCode(TextCodeInvalidPattern).
		WithMetadata(map[string]any{"pattern": pattern})
}

// IsInvalidPattern reports whether err carries the INVALID_REGEX_PATTERN code.
func IsInvalidPattern(err error) bool {
	var target *goerrors.Error
	if !goerrors.As(err, &target) {
		return false
	}
	return target.TextCode == TextCodeInvalidPattern
}
