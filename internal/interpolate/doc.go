// Package interpolate performs find/replace restricted to the regions of a
// markdown scope. Matches are collected against the original document and
// applied last to first so earlier offsets stay valid. A call that replaces
// nothing hands back the caller's document unchanged.
package interpolate
