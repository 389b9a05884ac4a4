// Package subtitles reads and writes SubRip (SRT) documents.
//
// Parsing is lenient: malformed blocks are skipped rather than failing the
// whole document. Rendering always emits comma-separated millisecond
// timestamps and a blank line after every block.
package subtitles
