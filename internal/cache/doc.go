// Package cache provides a file-based cache for fetched pull-request diffs.
//
// Entries are keyed by a SHA-256 hash of owner, repo, PR number, and head
// SHA, so a force-push or new commit naturally invalidates the entry. Each
// entry stores the raw diff text with a creation timestamp and a TTL in
// seconds; expired entries are skipped on read and removed on access.
//
// The default cache directory is $XDG_CACHE_HOME/inclint (or the
// OS-appropriate equivalent).
package cache
