// Package resolve selects the candidate of an overload set that accepts a
// call's arguments.
//
// Every candidate of a snapshot is matched independently, in registration
// order. Matching walks the signature left to right:
//
//  1. Positional arguments bind to positional-only, positional-or-named and
//     var-positional parameters. A var-positional parameter absorbs the rest.
//  2. Remaining parameters bind from the named arguments by name; parameters
//     without a default that receive nothing reject the call.
//  3. Named arguments left over are absorbed by a var-named parameter, or
//     reject the call.
//
// Each bound value must satisfy the candidate's binder; unconstrained
// parameters accept anything. A rejection carries a Reason such as
// "unexpected type for parameter `x`" or "too many positional arguments".
//
// The outcome over all candidates is:
//
//	0 matches    NoMatch   (every candidate with its reason)
//	1 match      Resolved
//	2+ matches   Ambiguous (every match)
//
// There is no ranking by specificity. Two accepting candidates are always
// ambiguous, even when one is "more specific" than the other.
//
// Values absorbed by variadic parameters are not type checked unless
// CheckVariadic(true) is passed.
//
// Resolution is a pure function of the snapshot and the arguments; it never
// mutates shared state and is safe for concurrent use.
package resolve
