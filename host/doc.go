// Package host turns Go functions into overload candidates.
//
// # Functions
//
// NewFunc describes a Go function by reflection and adapts it to
// registry.Callable:
//
//	f, err := host.NewFunc(func(ctx context.Context, w, h float64) float64 { return w * h },
//	    host.WithNames("w", "h"),
//	    host.WithDefault("h", 1.0))
//	reg.Register("geo.area", f.Signature(), binder.Exact, f)
//
// RegisterFunc does both steps at once.
//
// Parameter mapping:
//
//	context.Context (first)   injected, not part of the signature
//	T                         positional-or-named, constrained to T
//	any                       unconstrained
//	...T (last)               var-positional, elements constrained to T
//	host.Kwargs (last)        var-named
//
// WithPositionalOnly and WithNamedOnly change parameter kinds. Results may be
// (), (T), (error) or (T, error).
//
// # Hosts
//
// RegisterHost registers every exported method of a value under
// "<namespace>.<kebab-case method>", so several hosts sharing a namespace
// form overload sets:
//
//	type intMath struct{}
//	func (intMath) Namespace() string   { return "math" }
//	func (intMath) Abs(x int) int       { ... }
//
//	type floatMath struct{}
//	func (floatMath) Namespace() string     { return "math" }
//	func (floatMath) Abs(x float64) float64 { ... }
//
//	host.RegisterHost(reg, binder.Exact, intMath{})
//	host.RegisterHost(reg, binder.Exact, floatMath{})
//	// "math.abs" now has two candidates.
//
// Hosts can name parameters with ParamNamer or list their functions
// explicitly with ExplicitRegistrar.
package host
