// Package markdown adapts goldmark into the ordered (event, byte range)
// stream consumed by scope classification, and hosts the line-oriented
// frontmatter pre-scan that runs outside that stream.
package markdown
