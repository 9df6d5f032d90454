// Package errors provides structured error types for the overload library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: path, Go type, rendered constraint and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseIntrospect, errors.KindTypeMismatch).
//		Path("area", "w").
//		GoType("string").
//		Constraint("float64").
//		Detail("default value does not satisfy the parameter").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseResolve, "overload set", "geo.area")
//	err := errors.DuplicateParameter("x")
//
// Resolution failures (no matching or ambiguous overload) are reported by the
// dispatch package; they match Error values of PhaseResolve through errors.Is.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
