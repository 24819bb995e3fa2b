// Inclint is a CLI that scans diffs for non-inclusive language.
//
// It checks the added lines of unstaged, staged, commit, range, and
// pull-request diffs against a configurable rule set, emitting annotations
// with deterministic exit codes suitable for CI gating and git hooks.
//
// Usage:
//
//	inclint check unstaged            # scan working tree changes
//	inclint check staged              # scan staged changes
//	inclint check commit <sha>        # scan a specific commit
//	inclint check range origin/main..HEAD  # scan a revision range
//	inclint check file changes.diff   # scan a saved diff ("-" for stdin)
//	inclint github <pr-number>        # scan a PR and publish a check run
//
// Repository rule overrides live in .github/inclint.yml.
package main
