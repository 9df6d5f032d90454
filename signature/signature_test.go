package signature

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/wippyai/overload/errors"
)

func TestNew_Valid(t *testing.T) {
	sig, err := New(
		Positional("x", TypeOf[int]()),
		Param("y", TypeOf[string]()).WithDefault(),
		Variadic("rest", nil),
		Named("key", TypeOf[bool]()),
		Kwargs("opts", nil),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sig.Len() != 5 {
		t.Fatalf("Len = %d, want 5", sig.Len())
	}
	if got := sig.At(1); got.Name != "y" || !got.HasDefault {
		t.Errorf("At(1) = %+v", got)
	}
	if kw, ok := sig.VarNamed(); !ok || kw.Name != "opts" || kw.Kind != VarNamed {
		t.Errorf("VarNamed() = %+v, %v", kw, ok)
	}
	p, idx, ok := sig.Lookup("key")
	if !ok || idx != 3 || p.Kind != NamedOnly {
		t.Errorf("Lookup(key) = %+v, %d, %v", p, idx, ok)
	}
	if _, _, ok := sig.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params []Parameter
		kind   errors.Kind
	}{
		{
			name:   "empty name",
			params: []Parameter{Param("", nil)},
			kind:   errors.KindInvalidInput,
		},
		{
			name:   "duplicate name",
			params: []Parameter{Param("x", nil), Named("x", nil)},
			kind:   errors.KindDuplicate,
		},
		{
			name:   "positional-only after positional-or-named",
			params: []Parameter{Param("x", nil), Positional("y", nil)},
			kind:   errors.KindOrdering,
		},
		{
			name:   "positional after named-only",
			params: []Parameter{Named("k", nil), Param("x", nil)},
			kind:   errors.KindOrdering,
		},
		{
			name:   "two var-positional",
			params: []Parameter{Variadic("a", nil), Variadic("b", nil)},
			kind:   errors.KindDuplicate,
		},
		{
			name:   "var-named not last",
			params: []Parameter{Kwargs("kw", nil), Named("k", nil)},
			kind:   errors.KindOrdering,
		},
		{
			name:   "variadic default",
			params: []Parameter{Variadic("rest", nil).WithDefault()},
			kind:   errors.KindInvalidInput,
		},
		{
			name:   "invalid kind",
			params: []Parameter{{Name: "x", Kind: Kind(42)}},
			kind:   errors.KindInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params...)
			if err == nil {
				t.Fatal("expected error")
			}
			var se *errors.Error
			if !stderrors.As(err, &se) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if se.Phase != errors.PhaseSignature || se.Kind != tt.kind {
				t.Errorf("got [%s] %s, want [signature] %s", se.Phase, se.Kind, tt.kind)
			}
		})
	}
}

func TestNew_CopiesParams(t *testing.T) {
	params := []Parameter{Param("x", nil)}
	sig := MustNew(params...)
	params[0].Name = "changed"
	if sig.At(0).Name != "x" {
		t.Error("signature shares caller's slice")
	}
	out := sig.Params()
	out[0].Name = "changed"
	if sig.At(0).Name != "x" {
		t.Error("Params leaks internal slice")
	}
}

func TestSignature_String(t *testing.T) {
	tests := []struct {
		name string
		sig  Signature
		want string
	}{
		{"empty", MustNew(), "()"},
		{"unconstrained", MustNew(Param("x", nil), Param("y", Any)), "(x, y)"},
		{"typed", MustNew(Param("x", TypeOf[int]())), "(x int)"},
		{
			"positional-only marker",
			MustNew(Positional("a", nil), Positional("b", nil), Param("c", nil)),
			"(a, b, /, c)",
		},
		{"trailing positional-only", MustNew(Positional("a", TypeOf[string]())), "(a string, /)"},
		{"bare star", MustNew(Param("x", nil), Named("key", TypeOf[bool]())), "(x, *, key bool)"},
		{
			"full",
			MustNew(
				Positional("x", TypeOf[int]()),
				Param("y", TypeOf[string]()).WithDefault(),
				Variadic("rest", nil),
				Named("key", TypeOf[bool]()),
				Kwargs("opts", nil),
			),
			"(x int, /, y string = ..., *rest, key bool, **opts)",
		},
		{
			"union",
			MustNew(Param("v", OneOf(TypeOf[int](), TypeOf[string]()))),
			"(v int | string)",
		},
		{"typed variadic", MustNew(Variadic("xs", TypeOf[float64]())), "(*xs float64)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sig.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind       Kind
		str        string
		positional bool
		named      bool
		variadic   bool
	}{
		{PositionalOnly, "positional-only", true, false, false},
		{PositionalOrNamed, "positional-or-named", true, true, false},
		{VarPositional, "var-positional", true, false, true},
		{NamedOnly, "named-only", false, true, false},
		{VarNamed, "var-named", false, false, true},
		{Kind(9), "invalid", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if tt.kind.String() != tt.str {
				t.Errorf("String() = %q", tt.kind.String())
			}
			if tt.kind.Positional() != tt.positional {
				t.Errorf("Positional() = %v", tt.kind.Positional())
			}
			if tt.kind.Named() != tt.named {
				t.Errorf("Named() = %v", tt.kind.Named())
			}
			if tt.kind.Variadic() != tt.variadic {
				t.Errorf("Variadic() = %v", tt.kind.Variadic())
			}
		})
	}
}

func TestOneOf_Flattens(t *testing.T) {
	u := OneOf(TypeOf[int](), OneOf(TypeOf[string](), TypeOf[bool]()))
	if len(u) != 3 {
		t.Fatalf("len = %d, want 3", len(u))
	}
	if u.String() != "int | string | bool" {
		t.Errorf("String() = %q", u.String())
	}
}

func TestUnion_SelfReferencing(t *testing.T) {
	u := Union{nil, TypeOf[int]()}
	u[0] = u
	if got := u.String(); got != "... | int" {
		t.Errorf("String() = %q", got)
	}

	var seen []string
	found := u.Some(func(c Constraint) bool {
		seen = append(seen, c.String())
		return false
	})
	if found || len(seen) != 1 || seen[0] != "int" {
		t.Errorf("Some visited %v, found %v", seen, found)
	}

	deep := Union{TypeOf[string]()}
	for range MaxUnionDepth {
		deep = Union{deep}
	}
	if deep.Some(func(Constraint) bool { return true }) {
		t.Error("members nested past MaxUnionDepth should be ignored")
	}
}

func TestIsUniversal(t *testing.T) {
	if !IsUniversal(nil) || !IsUniversal(Any) {
		t.Error("nil and Any should be universal")
	}
	if IsUniversal(TypeOf[int]()) || IsUniversal(Union{}) {
		t.Error("typed constraints are not universal")
	}
}

func TestTypeOf_Interface(t *testing.T) {
	c := TypeOf[error]()
	if c.T.Kind() != reflect.Interface {
		t.Errorf("kind = %v, want interface", c.T.Kind())
	}
	if c.String() != "error" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestArgs(t *testing.T) {
	a := NewArgs(1, "a").With("z", true).With("b", 2.5)
	if got := a.String(); got != `(1, "a", b=2.5, z=true)` {
		t.Errorf("String() = %q", got)
	}
	base := NewArgs()
	_ = base.With("k", 1)
	if base.Named != nil {
		t.Error("With mutated receiver")
	}
}

func TestFromCallable(t *testing.T) {
	ok := DescriberFunc(func(any) ([]Parameter, error) {
		return []Parameter{Param("x", TypeOf[int]())}, nil
	})
	sig, err := FromCallable(ok, func(int) {})
	if err != nil {
		t.Fatalf("FromCallable: %v", err)
	}
	if sig.String() != "(x int)" {
		t.Errorf("sig = %s", sig)
	}

	failing := DescriberFunc(func(any) ([]Parameter, error) {
		return nil, stderrors.New("opaque callable")
	})
	_, err = FromCallable(failing, 42)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseIntrospect, Kind: errors.KindIntrospection}) {
		t.Errorf("err = %v, want introspection error", err)
	}

	bad := DescriberFunc(func(any) ([]Parameter, error) {
		return []Parameter{Param("x", nil), Param("x", nil)}, nil
	})
	if _, err := FromCallable(bad, nil); err == nil {
		t.Error("expected validation error")
	}

	if _, err := FromCallable(nil, nil); err == nil {
		t.Error("expected error for nil describer")
	}
}
