package scope

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-mdscope/internal/markdown"
)

// Classify returns the pieces of document that belong to s, in document
// order. Every borrowed piece has passed Validate. A document with nothing in
// scope yields an empty slice and no error.
func Classify(document string, s Scope) ([]Piece, error) {
	if !s.Valid() {
		return nil, unknownScopeError(strconv.Itoa(int(s)), int(s))
	}

	c := &collector{document: document}
	if s == Frontmatter {
		if err := c.frontmatter(); err != nil {
			return nil, err
		}
		return c.pieces, nil
	}

	if err := markdown.Walk(document, newMachine(s, c).visit); err != nil {
		return nil, err
	}
	return c.pieces, nil
}

// Regions returns the source ranges of the borrowed pieces of s. Synthetic
// pieces have no position in the document and are skipped.
func Regions(document string, s Scope) ([]Region, error) {
	pieces, err := Classify(document, s)
	if err != nil {
		return nil, err
	}
	regions := make([]Region, 0, len(pieces))
	for _, p := range pieces {
		if p.Synthetic {
			continue
		}
		regions = append(regions, p.Region)
	}
	return regions, nil
}

type collector struct {
	document string
	pieces   []Piece
}

func (c *collector) region(ev markdown.Event) (Region, error) {
	return Validate(c.document, ev.Start, ev.Stop)
}

func (c *collector) add(ev markdown.Event) error {
	r, err := c.region(ev)
	if err != nil {
		return err
	}
	c.keep(r)
	return nil
}

func (c *collector) keep(r Region) {
	c.pieces = append(c.pieces, Piece{Region: r, Text: r.Slice(c.document)})
}

func (c *collector) synthetic(text string) {
	c.pieces = append(c.pieces, Piece{Text: text, Synthetic: true})
}

func (c *collector) frontmatter() error {
	start, end, ok := markdown.FrontmatterBounds(c.document)
	if !ok {
		return nil
	}
	r, err := Validate(c.document, start, end)
	if err != nil {
		return err
	}
	c.keep(r)
	return nil
}

// depth counts open constructs and never drops below zero, so unbalanced
// markers degrade to "outside".
type depth uint32

func (d *depth) enter() { *d++ }

func (d *depth) leave() {
	if *d > 0 {
		*d--
	}
}

func (d depth) inside() bool { return d > 0 }

// track updates d for start/end markers of tag and reports whether ev was one.
func (d *depth) track(ev markdown.Event, tags ...markdown.Tag) bool {
	for _, tag := range tags {
		switch {
		case ev.Opens(tag):
			d.enter()
			return true
		case ev.Closes(tag):
			d.leave()
			return true
		}
	}
	return false
}

type machine interface {
	visit(ev markdown.Event) error
}

func newMachine(s Scope, c *collector) machine {
	switch s {
	case Prose:
		return &proseMachine{c: c}
	case CodeBlock:
		return &textWithin{c: c, tags: []markdown.Tag{markdown.TagCodeBlock}}
	case BlockQuote:
		return &textWithin{c: c, tags: []markdown.Tag{markdown.TagBlockQuote}}
	case Heading:
		return &textWithin{c: c, tags: []markdown.Tag{markdown.TagHeading}, code: true}
	case Stylized:
		return &textWithin{c: c, tags: []markdown.Tag{markdown.TagStrong, markdown.TagEmphasis, markdown.TagStrikethrough}}
	case Italicized:
		return &textWithin{c: c, tags: []markdown.Tag{markdown.TagEmphasis}}
	case NonItalicized:
		return &textWithin{c: c, tags: []markdown.Tag{markdown.TagEmphasis}, outside: true}
	case Links:
		return &destinationMachine{c: c, tag: markdown.TagLink}
	case Images:
		return &destinationMachine{c: c, tag: markdown.TagImage}
	case Lists:
		return &textWithin{c: c, tags: []markdown.Tag{markdown.TagList}}
	case Tables:
		return &textWithin{c: c, tags: []markdown.Tag{markdown.TagTable}}
	default:
		return &textWithin{c: c, tags: []markdown.Tag{markdown.TagFootnoteDefinition}}
	}
}

// textWithin keeps text events while any of tags is open (or, with outside,
// while none is). code also keeps inline code events.
type textWithin struct {
	c       *collector
	tags    []markdown.Tag
	open    depth
	code    bool
	outside bool
}

func (m *textWithin) visit(ev markdown.Event) error {
	if m.open.track(ev, m.tags...) {
		return nil
	}
	switch ev.Kind {
	case markdown.EventText:
	case markdown.EventCode:
		if !m.code {
			return nil
		}
	default:
		return nil
	}
	if m.open.inside() == m.outside {
		return nil
	}
	return m.c.add(ev)
}

// proseMachine keeps text and line breaks outside code blocks, block quotes
// and headings. Whitespace-only text is dropped; breaks are always kept.
type proseMachine struct {
	c        *collector
	code     depth
	quote    depth
	headings depth
}

func (m *proseMachine) visit(ev markdown.Event) error {
	switch {
	case m.code.track(ev, markdown.TagCodeBlock),
		m.quote.track(ev, markdown.TagBlockQuote),
		m.headings.track(ev, markdown.TagHeading):
		return nil
	}
	if m.code.inside() || m.quote.inside() || m.headings.inside() {
		return nil
	}

	switch {
	case ev.IsBreak():
		return m.c.add(ev)
	case ev.Kind == markdown.EventText:
		r, err := m.c.region(ev)
		if err != nil {
			return err
		}
		if strings.TrimSpace(r.Slice(m.c.document)) == "" {
			return nil
		}
		m.c.keep(r)
	}
	return nil
}

// destinationMachine keeps the text of a link or image, then its destination
// as a synthetic piece when the construct closes.
type destinationMachine struct {
	c            *collector
	tag          markdown.Tag
	destinations []string
}

func (m *destinationMachine) visit(ev markdown.Event) error {
	switch {
	case ev.Opens(m.tag):
		m.destinations = append(m.destinations, ev.Destination)
	case ev.Closes(m.tag):
		if n := len(m.destinations); n > 0 {
			m.c.synthetic(m.destinations[n-1])
			m.destinations = m.destinations[:n-1]
		}
	case ev.Kind == markdown.EventText && len(m.destinations) > 0:
		return m.c.add(ev)
	}
	return nil
}
