// Package signature models the parameter list of an overload candidate.
//
// A Signature is an ordered, immutable sequence of Parameters. Each parameter
// has a name, a Kind (positional-only, positional-or-named, var-positional,
// named-only, var-named), an optional Constraint and a default-presence flag.
//
//	sig, err := signature.New(
//	    signature.Positional("x", signature.TypeOf[int]()),
//	    signature.Param("y", signature.OneOf(signature.TypeOf[string](), signature.TypeOf[[]byte]())).WithDefault(),
//	    signature.Variadic("rest", nil),
//	    signature.Named("strict", signature.TypeOf[bool]()),
//	    signature.Kwargs("opts", nil),
//	)
//	fmt.Println(sig) // (x int, /, y string | []uint8 = ..., *rest, strict bool, **opts)
//
// Constraints are opaque to this package. Type, Union and Any are provided;
// a binder decides what a constraint means for a given value.
//
// Signatures for existing callables are built through a Describer, the
// introspection capability of the host environment:
//
//	sig, err := signature.FromCallable(host.Describer{}, strings.Repeat)
package signature
