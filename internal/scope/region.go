package scope

import "unicode/utf8"

// Region is a half-open byte range [Start, End) into a document.
type Region struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (r Region) Len() int {
	return r.End - r.Start
}

// Slice returns the substring of document covered by r. The region must have
// been produced by Validate for the same document.
func (r Region) Slice(document string) string {
	return document[r.Start:r.End]
}

// Contains reports whether the byte offset falls inside the region.
func (r Region) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Piece is one classified unit. Borrowed pieces slice the document and carry
// their region; synthetic pieces (link and image destinations) own their text
// and have a zero region.
type Piece struct {
	Region    Region
	Text      string
	Synthetic bool
}

// Validate checks that [start, end) lies within document and that both
// offsets sit on UTF-8 character boundaries.
func Validate(document string, start, end int) (Region, error) {
	length := len(document)
	switch {
	case start < 0 || end < 0:
		return Region{}, invalidByteRangeError(start, end, length, "negative offset")
	case start > end:
		return Region{}, invalidByteRangeError(start, end, length, "start after end")
	case end > length:
		return Region{}, invalidByteRangeError(start, end, length, "end beyond document")
	case !isBoundary(document, start):
		return Region{}, invalidByteRangeError(start, end, length, "start splits a character")
	case !isBoundary(document, end):
		return Region{}, invalidByteRangeError(start, end, length, "end splits a character")
	}
	return Region{Start: start, End: end}, nil
}

func isBoundary(document string, offset int) bool {
	if offset == 0 || offset == len(document) {
		return true
	}
	return utf8.RuneStart(document[offset])
}
