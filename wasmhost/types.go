package wasmhost

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/signature"
)

var (
	i32Constraint = signature.OneOf(signature.TypeOf[int32](), signature.TypeOf[uint32]())
	i64Constraint = signature.OneOf(signature.TypeOf[int64](), signature.TypeOf[uint64]())
	f32Constraint = signature.TypeOf[float32]()
	f64Constraint = signature.TypeOf[float64]()
)

// constraintFor maps a core wasm value type to the Go types that encode it.
func constraintFor(vt api.ValueType) (signature.Constraint, bool) {
	switch vt {
	case api.ValueTypeI32:
		return i32Constraint, true
	case api.ValueTypeI64:
		return i64Constraint, true
	case api.ValueTypeF32:
		return f32Constraint, true
	case api.ValueTypeF64:
		return f64Constraint, true
	}
	return nil, false
}

// encode converts a Go value to its stack representation for vt.
// Plain int is accepted when it fits.
func encode(name string, vt api.ValueType, v any) (uint64, error) {
	switch vt {
	case api.ValueTypeI32:
		switch x := v.(type) {
		case int32:
			return api.EncodeI32(x), nil
		case uint32:
			return api.EncodeU32(x), nil
		case int:
			n, err := safecast.Conv[int32](x)
			if err != nil {
				return 0, errors.Wrap(errors.PhaseInvoke, errors.KindInvalidInput, err, fmt.Sprintf("%s: %d does not fit i32", name, x))
			}
			return api.EncodeI32(n), nil
		}
	case api.ValueTypeI64:
		switch x := v.(type) {
		case int64:
			return api.EncodeI64(x), nil
		case uint64:
			return x, nil
		case int:
			return api.EncodeI64(int64(x)), nil
		}
	case api.ValueTypeF32:
		if x, ok := v.(float32); ok {
			return api.EncodeF32(x), nil
		}
	case api.ValueTypeF64:
		if x, ok := v.(float64); ok {
			return api.EncodeF64(x), nil
		}
	}
	return 0, errors.TypeMismatch(errors.PhaseInvoke, []string{name}, fmt.Sprintf("%T", v), api.ValueTypeName(vt))
}

// decode converts a result from its stack representation.
func decode(vt api.ValueType, v uint64) any {
	switch vt {
	case api.ValueTypeI32:
		return api.DecodeI32(v)
	case api.ValueTypeI64:
		return int64(v)
	case api.ValueTypeF32:
		return api.DecodeF32(v)
	case api.ValueTypeF64:
		return api.DecodeF64(v)
	}
	return v
}
