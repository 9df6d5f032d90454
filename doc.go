// Package overload selects, at call time, which of several Go or wasm
// implementations registered under one name handles a call.
//
// Each candidate declares a signature (ordered parameters of five kinds with
// optional type constraints) and a binder deciding whether a value satisfies
// a constraint. A call resolves when exactly one candidate accepts its
// arguments; zero accepting candidates and more than one are both errors,
// and candidates are never ranked against each other.
//
// # Architecture Overview
//
//	overload/            Root facade over registry and dispatch
//	├── signature/       Parameters, kinds, constraints, call arguments
//	├── binder/          Constraint acceptance strategies (exact, union, wit, ...)
//	├── registry/        Overload sets of candidates, in registration order
//	├── resolve/         Per-candidate binding and outcome classification
//	├── report/          Ambiguity and no-match diagnostics
//	├── dispatch/        Resolve-then-invoke with typed errors and observers
//	├── host/            Go functions and methods as candidates
//	├── wasmhost/        Core wasm exports as candidates (wazero)
//	├── metrics/         Prometheus observer
//	├── config/          koanf configuration for the CLI
//	└── errors/          Structured error types
//
// # Quick Start
//
//	ov := overload.New()
//	ov.RegisterFunc("area", binder.Union, func(w, h int) int { return w * h },
//		host.WithNames("w", "h"))
//	ov.RegisterFunc("area", binder.Union, func(w, h float64) float64 { return w * h },
//		host.WithNames("w", "h"))
//
//	v, err := ov.Call(ctx, "area", 2.5, 4.0) // 10.0
//
// A failed resolution returns *dispatch.NoMatchingOverloadError or
// *dispatch.AmbiguousOverloadError; their messages list the candidates:
//
//	no matching overload found for area
//	Reason:
//	  area(w int, h int): unexpected type for parameter `h`
//	  area(w float64, h float64): unexpected type for parameter `w`
//
// # Thread Safety
//
// Registration and dispatch may run concurrently. A resolution sees the
// candidates registered before it started.
package overload
