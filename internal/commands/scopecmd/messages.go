package scopecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-mdscope/internal/scope"
)

const (
	isolateMessageType     = "mdscope.scope.isolate"
	interpolateMessageType = "mdscope.scope.interpolate"
	listScopesMessageType  = "mdscope.scope.list"
)

// IsolateCommand extracts the content of one scope from Document.
type IsolateCommand struct {
	// Document is the markdown source. An empty document is valid and isolates nothing.
	Document string `json:"document"`
	// Scope accepts a key ("code-block"), name ("Code Block") or identifier ("CodeBlock").
	Scope string `json:"scope"`
	// Concatenate joins the isolated pieces instead of returning them one by one.
	Concatenate bool `json:"concatenate,omitempty"`
	// Delimiter separates joined pieces. Only meaningful with Concatenate.
	Delimiter *string `json:"delimiter,omitempty"`
}

// Type implements command.Message.
func (IsolateCommand) Type() string { return isolateMessageType }

// Validate ensures the scope resolves before handlers execute.
func (cmd IsolateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Scope, validation.Required, validation.By(knownScope(isolateMessageType))),
		validation.Field(&cmd.Delimiter, validation.When(!cmd.Concatenate, validation.By(func(value any) error {
			if delimiter, _ := value.(*string); delimiter != nil {
				return validation.NewError(isolateMessageType+".delimiter_requires_concatenate", "delimiter requires concatenate")
			}
			return nil
		}))),
	)
}

// InterpolateCommand replaces matches of Find inside one scope of Document.
type InterpolateCommand struct {
	Document string `json:"document"`
	Scope    string `json:"scope"`
	// Find is a literal needle, or an RE2 pattern when Regex is set. An empty
	// Find leaves the document untouched.
	Find string `json:"find"`
	// Replace is inserted verbatim, or expanded ($1, ${name}) when Regex is set.
	Replace string `json:"replace"`
	Regex   bool   `json:"regex,omitempty"`
}

// Type implements command.Message.
func (InterpolateCommand) Type() string { return interpolateMessageType }

// Validate ensures the scope resolves before handlers execute. Pattern
// compilation is left to the engine so callers see its error code.
func (cmd InterpolateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Scope, validation.Required, validation.By(knownScope(interpolateMessageType))),
	)
}

// ListScopesCommand asks for the catalogue of supported scopes.
type ListScopesCommand struct{}

// Type implements command.Message.
func (ListScopesCommand) Type() string { return listScopesMessageType }

// Validate implements command.Message; the command has no fields.
func (ListScopesCommand) Validate() error { return nil }

func knownScope(messageType string) validation.RuleFunc {
	return func(value any) error {
		name, _ := value.(string)
		if strings.TrimSpace(name) == "" {
			return nil
		}
		if _, err := scope.Parse(name); err != nil {
			return validation.NewError(messageType+".scope_unknown", "scope is not recognised")
		}
		return nil
	}
}
