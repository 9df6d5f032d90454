// Package binder provides the predicates that decide whether an argument
// value satisfies a parameter constraint.
//
// A Binder is chosen per candidate at registration time and never changes.
// Candidates of the same overload set may use different binders.
//
// # Strategies
//
//	Exact       dynamic type identical to a signature.Type (or implementing an interface type)
//	Union       any member of a signature.Union accepts; single types as Exact
//	Universal   always accepts
//	Assignable  reflect assignability, no conversions
//	WIT         WebAssembly Interface Types constraints (see OfWIT)
//
// Every strategy accepts universal constraints (nil or signature.Any).
// Strategies never panic and never convert values: an int is not a float64,
// and an int32 is not an int.
//
// Custom strategies can be written as a Func:
//
//	positive := binder.Func(func(v any, c signature.Constraint) bool {
//	    n, ok := v.(int)
//	    return ok && n > 0
//	})
package binder
