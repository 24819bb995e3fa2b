// Package diff parses unified diff text into typed per-file change sets.
//
// [Parse] turns the raw text into ordered [File] values, each holding
// ordered [Hunk] values whose [Line] entries carry reconstructed old/new
// line coordinates. Binary markers, new/deleted files, and renames are
// tolerated; anything that does not conform to unified-diff syntax fails
// with a [*ParseError] rather than a partial result, since a partially
// parsed diff risks silently skipping lines that should have been scanned.
//
// Parsing is a pure in-memory transformation with no I/O.
package diff
