// Package cli implements the inclint command-line interface using cobra.
//
// Commands:
//   - check    — scan unstaged, staged, commit, range, or diff-file inputs
//   - github   — scan a pull request and publish a check run
//   - rules    — list the active rule set
//   - config   — manage tool configuration
//   - cache    — manage the PR diff cache
//   - hook     — install or remove the git pre-commit hook
//   - version  — print version
//
// Exit codes: 0 success, 1 findings at or above the fail-on threshold,
// 2 usage error, 3 authentication error, 4 runtime error.
package cli
