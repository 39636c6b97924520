package markdown

import "fmt"

// EventKind classifies a structural event emitted by Walk.
type EventKind uint8

const (
	// EventStart opens a tagged construct.
	EventStart EventKind = iota
	// EventEnd closes the construct opened by the matching EventStart.
	EventEnd
	// EventText is a run of literal text with a source range.
	EventText
	// EventCode is the content of an inline code span.
	EventCode
	// EventSoftBreak covers the line terminator of a soft line break.
	EventSoftBreak
	// EventHardBreak covers the trailing spaces or backslash plus the line terminator of a hard break.
	EventHardBreak
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	case EventText:
		return "text"
	case EventCode:
		return "code"
	case EventSoftBreak:
		return "soft_break"
	case EventHardBreak:
		return "hard_break"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Tag names the constructs that produce start/end markers. Nodes without a
// tag (documents, paragraphs, list items, table rows...) emit no markers.
type Tag uint8

const (
	TagNone Tag = iota
	TagHeading
	TagBlockQuote
	TagCodeBlock
	TagList
	TagEmphasis
	TagStrong
	TagStrikethrough
	TagLink
	TagImage
	TagTable
	TagFootnoteDefinition
)

var tagNames = map[Tag]string{
	TagNone:               "none",
	TagHeading:            "heading",
	TagBlockQuote:         "block_quote",
	TagCodeBlock:          "code_block",
	TagList:               "list",
	TagEmphasis:           "emphasis",
	TagStrong:             "strong",
	TagStrikethrough:      "strikethrough",
	TagLink:               "link",
	TagImage:              "image",
	TagTable:              "table",
	TagFootnoteDefinition: "footnote_definition",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// Event is one structural token paired with its byte range in the source.
// Start/End markers carry the tag and, for headings, links and images, the
// extra attributes of the construct. Text, code and break events carry the
// half-open range [Start, Stop) of the bytes they cover.
type Event struct {
	Kind        EventKind
	Tag         Tag
	Start       int
	Stop        int
	Level       int
	Destination string
}

// Opens reports whether the event starts a construct with the given tag.
func (e Event) Opens(tag Tag) bool {
	return e.Kind == EventStart && e.Tag == tag
}

// Closes reports whether the event ends a construct with the given tag.
func (e Event) Closes(tag Tag) bool {
	return e.Kind == EventEnd && e.Tag == tag
}

// IsBreak reports whether the event is a soft or hard line break.
func (e Event) IsBreak() bool {
	return e.Kind == EventSoftBreak || e.Kind == EventHardBreak
}

func (e Event) String() string {
	switch e.Kind {
	case EventStart, EventEnd:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Tag)
	default:
		return fmt.Sprintf("%s[%d:%d]", e.Kind, e.Start, e.Stop)
	}
}
