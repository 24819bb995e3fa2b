// Package annotate drives the scan: it walks parsed diff files, matches
// added lines against the active rule set, and emits ordered annotations
// anchored at file path and new-file line number.
//
// Only added lines are scanned — violations already present before a change
// are never flagged, so nobody gets blamed for pre-existing text. Binary
// and deleted files are skipped without error. Annotation order is file,
// then line, then rule, and is stable across runs with the same inputs.
//
// [Aggregate] reduces annotations to a single overall [rules.Level] by
// max-reduction, with Off for an empty collection. [Run] wraps the whole
// pipeline and assembles a [Report] in one call.
package annotate
