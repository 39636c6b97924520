// Package mdscope isolates and rewrites the parts of a markdown document that
// belong to one structural scope: prose, headings, code blocks, links, lists,
// tables, footnote definitions and so on.
//
// Isolate returns the text of a scope either piece by piece or joined with a
// delimiter. InterpolateLiteral and InterpolateRegex replace matches only
// where they fall inside the scope and leave every other byte untouched.
// Module wraps the same operations with configuration and structured logging.
package mdscope
