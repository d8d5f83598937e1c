// Package sanitize turns stored WordPress markup into plain CSV-safe text.
//
// The default text format strips anything between '<' and '>' and decodes
// HTML character references, repeating until the value no longer changes so
// that cleaning an already cleaned value is a no-op. The html format uses a
// real HTML tokenizer and drops script and style bodies. The markdown format
// renders the content as Markdown and is intended for people, not for
// repeated cleaning.
package sanitize
