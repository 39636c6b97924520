package scope

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeInvalidByteRange marks a range that is out of bounds, inverted
	// or splits a UTF-8 sequence.
	TextCodeInvalidByteRange = "INVALID_BYTE_RANGE"
	// TextCodeUnknownScope marks a scope value or name that is not declared.
	TextCodeUnknownScope = "UNKNOWN_SCOPE"
)

func invalidByteRangeError(start, end, length int, reason string) error {
	return goerrors.New("invalid byte range: "+reason, goerrors.CategoryInternal).
		WithTextCode(TextCodeInvalidByteRange).
		WithMetadata(map[string]any{
			"start":  start,
			"end":    end,
			"length": length,
		})
}

// InvalidByteRangeError reports [start, end) as unusable against a document
// of length bytes.
func InvalidByteRangeError(start, end, length int, reason string) error {
	return invalidByteRangeError(start, end, length, reason)
}

func unknownScopeError(value string, ordinal int) error {
	meta := map[string]any{"scope": value}
	if ordinal >= 0 {
		meta["ordinal"] = ordinal
	}
	return goerrors.New("unknown markdown scope", goerrors.CategoryBadInput).
		WithTextCode(TextCodeUnknownScope).
		WithMetadata(meta)
}

// IsInvalidByteRange reports whether err carries the INVALID_BYTE_RANGE code.
func IsInvalidByteRange(err error) bool {
	return hasTextCode(err, TextCodeInvalidByteRange)
}

// IsUnknownScope reports whether err carries the UNKNOWN_SCOPE code.
func IsUnknownScope(err error) bool {
	return hasTextCode(err, TextCodeUnknownScope)
}

func hasTextCode(err error, code string) bool {
	var target *goerrors.Error
	if !goerrors.As(err, &target) {
		return false
	}
	return target.TextCode == code
}
