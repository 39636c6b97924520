package isolate

// Result is either the ordered list of isolated pieces or their
// concatenation. Vector items are substrings of the source document except
// for synthetic link and image destinations.
type Result struct {
	items        []string
	text         string
	concatenated bool
}

// Vector wraps items as a vector result.
func Vector(items []string) Result {
	if items == nil {
		items = []string{}
	}
	return Result{items: items}
}

// Concatenated wraps text as a concatenated result.
func Concatenated(text string) Result {
	return Result{text: text, concatenated: true}
}

// IsVector reports whether the result holds separate items.
func (r Result) IsVector() bool {
	return !r.concatenated
}

// IsConcatenated reports whether the result holds one joined string.
func (r Result) IsConcatenated() bool {
	return r.concatenated
}

// Items returns the vector items, or nil for a concatenated result.
func (r Result) Items() []string {
	if r.concatenated {
		return nil
	}
	return r.items
}

// Text returns the joined string, or "" for a vector result.
func (r Result) Text() string {
	return r.text
}

// Len is the number of vector items, or 1 for a concatenated result.
func (r Result) Len() int {
	if r.concatenated {
		return 1
	}
	return len(r.items)
}

// IsEmpty reports whether there is no content at all.
func (r Result) IsEmpty() bool {
	if r.concatenated {
		return r.text == ""
	}
	return len(r.items) == 0
}

// Strings converts the result into a fresh slice the caller may modify.
func (r Result) Strings() []string {
	if r.concatenated {
		return []string{r.text}
	}
	out := make([]string, len(r.items))
	copy(out, r.items)
	return out
}
