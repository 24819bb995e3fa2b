// Package gitctx extracts diff text and commit metadata from a local git
// repository.
//
// It supports the unstaged, staged, commit, and range scan modes by
// shelling out to git with appropriate arguments. Results are filtered by
// include/exclude doublestar glob patterns and truncated at whole-file
// boundaries to a configurable maximum byte size, so truncation never
// produces unparseable diff text.
package gitctx
