// Package registry stores overload candidates by logical name.
//
// A Registry is an ordinary value created by the program and passed to
// whatever needs it; there is no package-level registry.
//
//	reg := registry.New()
//	sig := signature.MustNew(signature.Param("x", signature.TypeOf[int]()))
//	cand, err := reg.Register("math.abs", sig, binder.Exact, absInt)
//
// Each name owns one OverloadSet for the registry's lifetime. Candidates are
// appended in registration order and never removed. Registering a signature
// that duplicates an existing one is legal.
//
// # Thread Safety
//
// Registration takes a registry-wide write lock, so registration order is a
// total order observable in diagnostics. Readers work on a Snapshot, a copy
// of the candidate list taken under the read lock; a registration that
// happens after the snapshot is never visible through it.
package registry
