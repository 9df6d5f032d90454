package binder

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/wippyai/overload/signature"
)

type celsius float64

type intList []int

type stringer struct{}

func (stringer) String() string { return "s" }

func TestExact(t *testing.T) {
	var nilPtr *int
	tests := []struct {
		name  string
		value any
		c     signature.Constraint
		want  bool
	}{
		{"nil constraint", 1.5, nil, true},
		{"any constraint", "x", signature.Any, true},
		{"same type", 1, signature.TypeOf[int](), true},
		{"no numeric coercion", 1, signature.TypeOf[float64](), false},
		{"no width coercion", int32(1), signature.TypeOf[int](), false},
		{"named type differs", celsius(1), signature.TypeOf[float64](), false},
		{"interface implemented", stringer{}, signature.TypeOf[fmt.Stringer](), true},
		{"interface not implemented", 1, signature.TypeOf[fmt.Stringer](), false},
		{"empty interface", struct{}{}, signature.TypeOf[any](), true},
		{"nil for pointer", nil, signature.TypeOf[*int](), true},
		{"nil for interface", nil, signature.TypeOf[io.Reader](), true},
		{"nil for int", nil, signature.TypeOf[int](), false},
		{"typed nil pointer", nilPtr, signature.TypeOf[*int](), true},
		{"union rejected", 1, signature.OneOf(signature.TypeOf[int]()), false},
		{"nil type", nil, signature.TypeFor(nil), true},
		{"nil type non-nil value", 1, signature.TypeFor(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Exact.Accepts(tt.value, tt.c); got != tt.want {
				t.Errorf("Exact.Accepts(%v, %v) = %v, want %v", tt.value, tt.c, got, tt.want)
			}
		})
	}
}

func TestUnion(t *testing.T) {
	intOrString := signature.OneOf(signature.TypeOf[int](), signature.TypeOf[string]())
	nested := signature.Union{signature.TypeOf[bool](), signature.Union{signature.TypeOf[float64]()}}

	tests := []struct {
		name  string
		value any
		c     signature.Constraint
		want  bool
	}{
		{"first member", 1, intOrString, true},
		{"second member", "a", intOrString, true},
		{"no member", 1.5, intOrString, false},
		{"nested union", 2.5, nested, true},
		{"empty union", 1, signature.Union{}, false},
		{"nil member is universal", 1.5, signature.Union{signature.TypeOf[int](), nil}, true},
		{"single type", 1, signature.TypeOf[int](), true},
		{"single type mismatch", "a", signature.TypeOf[int](), false},
		{"foreign constraint", 1, OfWIT(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Union.Accepts(tt.value, tt.c); got != tt.want {
				t.Errorf("Union.Accepts(%v, %v) = %v, want %v", tt.value, tt.c, got, tt.want)
			}
		})
	}
}

func TestUniversal(t *testing.T) {
	for _, v := range []any{nil, 1, "a", struct{}{}} {
		if !Universal.Accepts(v, signature.TypeOf[int]()) {
			t.Errorf("Universal rejected %v", v)
		}
	}
}

func TestAssignable(t *testing.T) {
	tests := []struct {
		name  string
		value any
		c     signature.Constraint
		want  bool
	}{
		{"unnamed to named", []int{1}, signature.TypeOf[intList](), true},
		{"named to named", celsius(1), signature.TypeOf[float64](), false},
		{"interface", strings.NewReader(""), signature.TypeOf[io.Reader](), true},
		{"no conversion", 1, signature.TypeOf[int64](), false},
		{"union", "a", signature.OneOf(signature.TypeOf[int](), signature.TypeOf[string]()), true},
		{"nil map", nil, signature.TypeOf[map[string]int](), true},
		{"nil int", nil, signature.TypeOf[int](), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assignable.Accepts(tt.value, tt.c); got != tt.want {
				t.Errorf("Assignable.Accepts(%v, %v) = %v, want %v", tt.value, tt.c, got, tt.want)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	positive := Func(func(v any, _ signature.Constraint) bool {
		n, ok := v.(int)
		return ok && n > 0
	})
	if !positive.Accepts(3, nil) || positive.Accepts(-1, nil) {
		t.Error("Func did not delegate")
	}
	var nilFunc Func
	if nilFunc.Accepts(1, nil) {
		t.Error("nil Func should reject")
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		b    Binder
		want string
	}{
		{Exact, "exact"},
		{Union, "union"},
		{Universal, "universal"},
		{Assignable, "assignable"},
		{WIT, "wit"},
		{nil, "none"},
		{Func(nil), "binder.Func"},
	}
	for _, tt := range tests {
		if got := Name(tt.b); got != tt.want {
			t.Errorf("Name = %q, want %q", got, tt.want)
		}
	}
}

func TestSelfReferencingUnion(t *testing.T) {
	loop := make(signature.Union, 1)
	loop[0] = loop
	twice := signature.Union{nil, nil}
	twice[0], twice[1] = twice, twice
	withInt := signature.Union{nil, signature.TypeOf[int]()}
	withInt[0] = withInt

	for _, b := range []Binder{Union, Assignable, WIT} {
		t.Run(Name(b), func(t *testing.T) {
			if b.Accepts(1, loop) {
				t.Error("a union of only itself should admit nothing")
			}
			if b.Accepts(1, twice) {
				t.Error("a union of only itself should admit nothing")
			}
			if !b.Accepts(1, withInt) {
				t.Error("int member should still match")
			}
			if b.Accepts("x", withInt) {
				t.Error("string should not match")
			}
		})
	}
}
