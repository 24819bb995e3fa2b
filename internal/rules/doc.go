// Package rules defines the severity levels and the validated rule model
// used to scan added diff lines for non-inclusive language.
//
// A [Rule] pairs a case-insensitive pattern with a [Level], a matching
// [Mode] (word-boundary or substring), replacement suggestions, and an
// optional message template. Rules arrive as loosely-typed YAML and are
// validated once into a compiled [Set]; a malformed pattern or level fails
// the load, never a scan. Rules with level off are dropped from the set
// entirely, which is how repository configuration narrows the built-in
// defaults.
//
// [Level] is a totally ordered enumeration (Off < Notice < Warning <
// Failure) with an explicit maximum operation; aggregation elsewhere is a
// max-reduction over this order with Off as identity.
package rules
