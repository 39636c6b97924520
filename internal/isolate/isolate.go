package isolate

import (
	"strings"

	"github.com/goliatone/go-mdscope/internal/scope"
)

// Isolate classifies document under s and applies action to the pieces.
// An empty scope produces an empty vector or an empty string.
func Isolate(document string, s scope.Scope, action Action) (Result, error) {
	pieces, err := scope.Classify(document, s)
	if err != nil {
		return Result{}, err
	}
	return Apply(pieces, action), nil
}

// Apply shapes classified pieces according to action, keeping document order.
func Apply(pieces []scope.Piece, action Action) Result {
	items := make([]string, len(pieces))
	for i, p := range pieces {
		items[i] = p.Text
	}

	if !action.Concatenates() {
		return Vector(items)
	}
	delimiter, _ := action.Delimiter()
	return Concatenated(strings.Join(items, delimiter))
}
