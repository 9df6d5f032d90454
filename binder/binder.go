package binder

import (
	"reflect"

	"github.com/wippyai/overload/signature"
)

// Binder decides whether a value satisfies a constraint.
// Implementations must be total and free of side effects.
type Binder interface {
	Accepts(value any, c signature.Constraint) bool
}

// Func adapts a plain predicate to Binder.
type Func func(value any, c signature.Constraint) bool

func (f Func) Accepts(value any, c signature.Constraint) bool {
	if f == nil {
		return false
	}
	return f(value, c)
}

// Name returns a short label for b, used by diagnostics and exports.
func Name(b Binder) string {
	if b == nil {
		return "none"
	}
	if s, ok := b.(interface{ String() string }); ok {
		return s.String()
	}
	return reflect.TypeOf(b).String()
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan,
		reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}

// matchType reports whether value's dynamic type is t, or implements t
// when t is an interface. Untyped nil matches nillable types.
func matchType(value any, t reflect.Type) bool {
	if t == nil {
		return value == nil
	}
	if value == nil {
		return nillable(t.Kind())
	}
	vt := reflect.TypeOf(value)
	if vt == t {
		return true
	}
	return t.Kind() == reflect.Interface && vt.Implements(t)
}
