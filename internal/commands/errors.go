package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

// contextFailures maps the standard context errors to their message and
// text code. Anything else reported by ctx.Err falls back to
// commandContextErrorCode.
var contextFailures = []struct {
	target  error
	message string
	code    string
}{
	{context.Canceled, "command execution cancelled", commandContextCanceled},
	{context.DeadlineExceeded, "command execution deadline exceeded", commandContextTimeout},
}

// wrapValidationError turns ozzo field errors into a CategoryValidation
// error whose ValidationErrors list one entry per offending field.
func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.FromOzzoValidation(err, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	for _, failure := range contextFailures {
		if errors.Is(err, failure.target) {
			return goerrors.Wrap(err, goerrors.CategoryCommand, failure.message).
				WithTextCode(failure.code)
		}
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
		WithTextCode(commandContextErrorCode)
}

// wrapExecuteError leaves engine errors (unknown scope, invalid pattern,
// invalid byte range) untouched: they already carry a category and code.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if isContextError(err) {
		return wrapContextError(err)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}

func isContextError(err error) bool {
	for _, failure := range contextFailures {
		if errors.Is(err, failure.target) {
			return true
		}
	}
	return false
}

// TextCode returns the go-errors text code attached to err, or "".
func TextCode(err error) string {
	var e *goerrors.Error
	if goerrors.As(err, &e) {
		return e.TextCode
	}
	return ""
}
