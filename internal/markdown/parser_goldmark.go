package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Walk parses document with goldmark (CommonMark plus GFM tables,
// strikethrough and footnotes) and streams structural events to fn in
// document order. The first error returned by fn stops the walk and is
// returned unchanged.
func Walk(document string, fn func(Event) error) error {
	if fn == nil {
		return nil
	}
	source := []byte(document)
	root := newGoldmarkEngine().Parser().Parse(text.NewReader(source))

	w := &walker{source: source, emit: fn}
	if err := ast.Walk(root, w.visit); err != nil {
		return err
	}
	return w.flush()
}

// Events collects the full event stream of document.
func Events(document string) ([]Event, error) {
	var events []Event
	err := Walk(document, func(ev Event) error {
		events = append(events, ev)
		return nil
	})
	return events, err
}

// newGoldmarkEngine builds a goldmark.Markdown configured for scope
// classification. A fresh engine is built per call so no parser state is
// shared between documents.
func newGoldmarkEngine() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			footnoteSyntax{},
		),
	)
}

// footnoteSyntax registers the footnote block and inline parsers without the
// HTML-oriented AST transformer, which drops definitions that are never
// referenced and reorders the rest by reference index.
type footnoteSyntax struct{}

func (footnoteSyntax) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(extension.NewFootnoteBlockParser(), 999),
		),
		parser.WithInlineParsers(
			util.Prioritized(extension.NewFootnoteParser(), 101),
		),
	)
}

// walker turns goldmark's entering/exiting callbacks into events. goldmark
// may split one run of text into several adjacent nodes (for example around a
// '!' that did not start an image); adjacent runs of the same kind are merged
// so a single run of source text is reported once.
type walker struct {
	source  []byte
	emit    func(Event) error
	pending Event
	held    bool
}

func (w *walker) send(ev Event) error {
	if err := w.flush(); err != nil {
		return err
	}
	return w.emit(ev)
}

func (w *walker) sendText(ev Event) error {
	if w.held && w.pending.Kind == ev.Kind && w.pending.Stop == ev.Start {
		w.pending.Stop = ev.Stop
		return nil
	}
	if err := w.flush(); err != nil {
		return err
	}
	w.pending, w.held = ev, true
	return nil
}

func (w *walker) flush() error {
	if !w.held {
		return nil
	}
	w.held = false
	return w.emit(w.pending)
}

func (w *walker) visit(node ast.Node, entering bool) (ast.WalkStatus, error) {
	if t, ok := node.(*ast.Text); ok {
		if !entering {
			return ast.WalkContinue, nil
		}
		return ast.WalkContinue, w.text(t)
	}

	marker, ok := w.marker(node)
	if !ok {
		return ast.WalkContinue, nil
	}

	if !entering {
		marker.Kind = EventEnd
		return ast.WalkContinue, w.send(marker)
	}

	marker.Kind = EventStart
	if err := w.send(marker); err != nil {
		return ast.WalkStop, err
	}
	if marker.Tag == TagCodeBlock {
		return ast.WalkContinue, w.codeLines(node)
	}
	return ast.WalkContinue, nil
}

func (w *walker) marker(node ast.Node) (Event, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		return Event{Tag: TagHeading, Level: n.Level}, true
	case *ast.Blockquote:
		return Event{Tag: TagBlockQuote}, true
	case *ast.CodeBlock, *ast.FencedCodeBlock:
		return Event{Tag: TagCodeBlock}, true
	case *ast.List:
		return Event{Tag: TagList}, true
	case *ast.Emphasis:
		if n.Level >= 2 {
			return Event{Tag: TagStrong}, true
		}
		return Event{Tag: TagEmphasis}, true
	case *ast.Link:
		return Event{Tag: TagLink, Destination: string(n.Destination)}, true
	case *ast.AutoLink:
		return Event{Tag: TagLink, Destination: string(n.URL(w.source))}, true
	case *ast.Image:
		return Event{Tag: TagImage, Destination: string(n.Destination)}, true
	case *extast.Strikethrough:
		return Event{Tag: TagStrikethrough}, true
	case *extast.Table:
		return Event{Tag: TagTable}, true
	case *extast.Footnote:
		return Event{Tag: TagFootnoteDefinition}, true
	default:
		return Event{}, false
	}
}

func (w *walker) text(t *ast.Text) error {
	kind := EventText
	if _, ok := t.Parent().(*ast.CodeSpan); ok {
		kind = EventCode
	}

	seg := t.Segment
	if seg.Stop > seg.Start {
		if err := w.sendText(Event{Kind: kind, Start: seg.Start, Stop: seg.Stop}); err != nil {
			return err
		}
	}
	if kind == EventCode {
		return nil
	}

	switch {
	case t.HardLineBreak():
		return w.lineBreak(EventHardBreak, seg.Stop)
	case t.SoftLineBreak():
		return w.lineBreak(EventSoftBreak, seg.Stop)
	}
	return nil
}

func (w *walker) lineBreak(kind EventKind, from int) error {
	stop, ok := lineTerminator(w.source, from)
	if !ok {
		return nil
	}
	return w.send(Event{Kind: kind, Start: from, Stop: stop})
}

// codeLines emits code block content, merging lines that are contiguous in
// the source into a single text event.
func (w *walker) codeLines(node ast.Node) error {
	lines := node.Lines()
	start, stop := -1, -1
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if start >= 0 && seg.Start == stop {
			stop = seg.Stop
			continue
		}
		if err := w.codeRun(start, stop); err != nil {
			return err
		}
		start, stop = seg.Start, seg.Stop
	}
	return w.codeRun(start, stop)
}

func (w *walker) codeRun(start, stop int) error {
	if start < 0 || stop <= start {
		return nil
	}
	return w.sendText(Event{Kind: EventText, Start: start, Stop: stop})
}

// lineTerminator scans from the end of a text segment across break padding
// (spaces, tabs, the hard break backslash, carriage return) and returns the
// offset just past the newline.
func lineTerminator(source []byte, from int) (int, bool) {
	if from < 0 {
		return 0, false
	}
	for i := from; i < len(source); i++ {
		switch source[i] {
		case '\n':
			return i + 1, true
		case ' ', '\t', '\\', '\r':
		default:
			return 0, false
		}
	}
	return 0, false
}
