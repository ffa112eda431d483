// Package overview maintains a scaled outline of the document.
//
// The outline subscribes to commit notifications and recomputes the
// bounds of the visible diagram, deriving the scale and translation that
// fit it into a fixed viewport. It is a pure reader: it never mutates the
// document and records nothing in history.
package overview
