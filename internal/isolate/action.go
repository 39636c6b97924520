package isolate

// Action selects how classified pieces are returned.
type Action struct {
	concatenate bool
	delimiter   string
	delimited   bool
}

// LeaveAsVector returns every piece as its own item.
func LeaveAsVector() Action {
	return Action{}
}

// Concatenate joins every piece with no separator.
func Concatenate() Action {
	return Action{concatenate: true}
}

// ConcatenateWith joins the pieces with delimiter between consecutive items.
func ConcatenateWith(delimiter string) Action {
	return Action{concatenate: true, delimiter: delimiter, delimited: true}
}

// Concatenates reports whether the action produces a single string.
func (a Action) Concatenates() bool {
	return a.concatenate
}

// Delimiter returns the join delimiter and whether one was set.
func (a Action) Delimiter() (string, bool) {
	return a.delimiter, a.delimited
}

func (a Action) String() string {
	switch {
	case !a.concatenate:
		return "vector"
	case a.delimited:
		return "concatenate_with"
	default:
		return "concatenate"
	}
}
