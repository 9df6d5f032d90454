// Package wasmhost turns exported functions of core WebAssembly modules
// into overload candidates.
//
// Modules are compiled and instantiated with wazero. Only self-contained
// modules are accepted: a module that imports functions is rejected at load
// time. Each export whose parameters and results are numeric becomes an
// Export with one positional-or-named parameter per wasm parameter:
//
//	i32  int32 | uint32
//	i64  int64 | uint64
//	f32  float32
//	f64  float64
//
// Plain Go int is also encoded when it fits, but the union constraints above
// are what resolution sees, so register with binder.Union (the default) and
// pass sized integers when several modules overload the same name.
//
//	loader := wasmhost.NewLoader(ctx, nil)
//	defer loader.Close(ctx)
//
//	m, err := loader.LoadFile(ctx, "math_i32.wasm", "")
//	if err != nil {
//		return err
//	}
//	if _, err := m.Register(reg, "math", nil); err != nil {
//		return err
//	}
package wasmhost
