package interfaces

import "context"

// ScopeService exposes scoped isolation and interpolation over markdown
// documents. Scopes are addressed by key ("code-block"), name ("Code Block")
// or identifier ("CodeBlock") so callers do not depend on the internal enum.
type ScopeService interface {
	IsolateDocument(ctx context.Context, req IsolateRequest) (*IsolateResponse, error)
	InterpolateDocument(ctx context.Context, req InterpolateRequest) (*InterpolateResponse, error)
	Scopes() []ScopeInfo
}

// IsolateRequest selects the scope to extract and how to shape the output.
type IsolateRequest struct {
	Document string
	Scope    string
	// Concatenate joins the pieces into a single string.
	Concatenate bool
	// Delimiter is placed between joined pieces. Nil joins with nothing.
	Delimiter *string
}

// IsolateResponse carries either the ordered pieces or their concatenation.
type IsolateResponse struct {
	Scope        string   `json:"scope"`
	Items        []string `json:"items,omitempty"`
	Text         string   `json:"text,omitempty"`
	Concatenated bool     `json:"concatenated"`
}

// InterpolateRequest describes a scoped find/replace. With Regex set, Find is
// an RE2 pattern and Replace may reference groups ($1, ${name}).
type InterpolateRequest struct {
	Document string
	Scope    string
	Find     string
	Replace  string
	Regex    bool
}

// InterpolateResponse is the rewritten document. Replaced is zero when the
// document came back untouched.
type InterpolateResponse struct {
	Scope    string `json:"scope"`
	Text     string `json:"text"`
	Replaced int    `json:"replaced"`
}

// Changed reports whether any replacement was applied.
func (r *InterpolateResponse) Changed() bool {
	return r != nil && r.Replaced > 0
}

// ScopeInfo describes one available scope.
type ScopeInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
