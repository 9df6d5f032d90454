// Package dispatch invokes overloaded names.
//
// A Dispatcher looks up the overload set for a name, snapshots it, resolves
// the call and, when exactly one candidate accepts, calls it with the
// original arguments:
//
//	reg := registry.New()
//	// ... register candidates ...
//	d := dispatch.New(reg, dispatch.WithResolveOptions(resolve.CheckVariadic(true)))
//	out, err := d.Invoke(ctx, "geo.area", signature.NewArgs(3, 4))
//
// # Errors
//
// Resolution failures are *NoMatchingOverloadError and *AmbiguousOverloadError.
// Both unwrap to *OverloadError, which carries the name and the arguments,
// and both match ErrNoMatch / ErrAmbiguous with errors.Is. Their Error text
// is the diagnostic rendered by package report.
//
// An error (or panic) from the selected candidate itself is returned
// unchanged, so callers can tell "no viable overload" from "the overload
// failed".
//
// An unknown name is an errors.KindNotFound error.
//
// # Thread Safety
//
// A Dispatcher is safe for concurrent use. Registration may continue while
// calls are in flight; each call sees the overload set as of its snapshot.
package dispatch
