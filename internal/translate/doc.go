// Package translate drives English to Korean subtitle translation.
//
// Entries are sent one at a time to a Completer with a fixed system
// instruction. Replies are cleaned of markdown and label prefixes before they
// replace the entry text. Any failed request leaves that entry in English and
// the run continues, so the output always has the same entries, indices, and
// timings as the input.
//
// Each entry is written and flushed as soon as it is done. Progress and the
// final counts are logged, never written to the output stream.
package translate
