package wasmhost

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/overload/dispatch"
	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/signature"
)

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// addModule builds a module exporting "add" over two values of valType
// (0x7f i32, 0x7c f64) using the given add opcode.
func addModule(valType, addOp byte) []byte {
	b := append([]byte{}, wasmHeader...)
	b = append(b, 0x01, 0x07, 0x01, 0x60, 0x02, valType, valType, 0x01, valType)
	b = append(b, 0x03, 0x02, 0x01, 0x00)
	b = append(b, 0x07, 0x07, 0x01, 0x03, 'a', 'd', 'd', 0x00, 0x00)
	b = append(b, 0x0a, 0x09, 0x01, 0x07, 0x00, 0x20, 0x00, 0x20, 0x01, addOp, 0x0b)
	return b
}

var (
	i32Add = addModule(0x7f, 0x6a)
	f64Add = addModule(0x7c, 0xa0)
)

// importing declares an import of env.f and nothing else.
var importing = append(append([]byte{}, wasmHeader...),
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
	0x02, 0x09, 0x01, 0x03, 'e', 'n', 'v', 0x01, 'f', 0x00, 0x00,
)

// trapping has a start function that executes unreachable, so it compiles
// but cannot be instantiated.
var trapping = append(append([]byte{}, wasmHeader...),
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
	0x03, 0x02, 0x01, 0x00,
	0x08, 0x01, 0x00,
	0x0a, 0x05, 0x01, 0x03, 0x00, 0x00, 0x0b,
)

func newLoader(t *testing.T) *Loader {
	t.Helper()
	ctx := context.Background()
	l := NewLoader(ctx, &Config{MemoryLimitPages: 16})
	t.Cleanup(func() { _ = l.Close(ctx) })
	return l
}

func TestLoad_Exports(t *testing.T) {
	l := newLoader(t)
	m, err := l.Load(context.Background(), "ints", i32Add)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Exports()) != 1 {
		t.Fatalf("exports = %d", len(m.Exports()))
	}
	e, ok := m.Export("add")
	if !ok {
		t.Fatal("add not exported")
	}
	if got := e.Signature().String(); got != "(p0 int32 | uint32, p1 int32 | uint32)" {
		t.Errorf("signature = %q", got)
	}
	if len(l.Modules()) != 1 || l.Modules()[0].Name() != "ints" {
		t.Error("Modules() does not list the module")
	}
}

func TestExport_Call(t *testing.T) {
	l := newLoader(t)
	ctx := context.Background()
	ints, err := l.Load(ctx, "ints", i32Add)
	if err != nil {
		t.Fatal(err)
	}
	floats, err := l.Load(ctx, "floats", f64Add)
	if err != nil {
		t.Fatal(err)
	}
	iadd, _ := ints.Export("add")
	fadd, _ := floats.Export("add")

	tests := []struct {
		name string
		e    *Export
		args signature.Args
		want any
	}{
		{"int32", iadd, signature.NewArgs(int32(2), int32(3)), int32(5)},
		{"negative", iadd, signature.NewArgs(int32(-2), int32(-3)), int32(-5)},
		{"uint32", iadd, signature.NewArgs(uint32(7), uint32(1)), int32(8)},
		{"plain int", iadd, signature.NewArgs(4, 5), int32(9)},
		{"named", iadd, signature.Args{Positional: []any{int32(1)}, Named: map[string]any{"p1": int32(2)}}, int32(3)},
		{"float64", fadd, signature.NewArgs(1.5, 2.25), 3.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.e.Call(ctx, tt.args)
			if err != nil {
				t.Fatalf("Call: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestExport_CallErrors(t *testing.T) {
	l := newLoader(t)
	ctx := context.Background()
	m, err := l.Load(ctx, "ints", i32Add)
	if err != nil {
		t.Fatal(err)
	}
	add, _ := m.Export("add")

	tests := []struct {
		name string
		args signature.Args
	}{
		{"missing", signature.NewArgs(int32(1))},
		{"too many", signature.NewArgs(int32(1), int32(2), int32(3))},
		{"wrong type", signature.NewArgs("1", int32(2))},
		{"overflow", signature.NewArgs(1<<40, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := add.Call(ctx, tt.args)
			var se *errors.Error
			if !stderrors.As(err, &se) || se.Phase != errors.PhaseInvoke {
				t.Errorf("err = %v, want invoke phase error", err)
			}
		})
	}
}

func TestRegister_Overloads(t *testing.T) {
	l := newLoader(t)
	ctx := context.Background()
	reg := registry.New()

	for _, mod := range []struct {
		name string
		wasm []byte
	}{
		{"ints", i32Add},
		{"floats", f64Add},
	} {
		m, err := l.Load(ctx, mod.name, mod.wasm)
		if err != nil {
			t.Fatal(err)
		}
		cands, err := m.Register(reg, "math", nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(cands) != 1 || cands[0].Source() != "wasm:"+mod.name {
			t.Errorf("candidates = %v", cands)
		}
	}

	d := dispatch.New(reg)
	lines, _ := d.Describe("math.add")
	want := "[add(p0 int32 | uint32, p1 int32 | uint32) add(p0 float64, p1 float64)]"
	if fmt.Sprint(lines) != want {
		t.Errorf("Describe = %v", lines)
	}

	if got, err := d.Invoke(ctx, "math.add", signature.NewArgs(int32(20), int32(22))); err != nil || got != int32(42) {
		t.Errorf("i32 add = %v, %v", got, err)
	}
	if got, err := d.Invoke(ctx, "math.add", signature.NewArgs(0.5, 0.25)); err != nil || got != 0.75 {
		t.Errorf("f64 add = %v, %v", got, err)
	}
	if _, err := d.Invoke(ctx, "math.add", signature.NewArgs(1, 2)); !stderrors.Is(err, dispatch.ErrNoMatch) {
		t.Errorf("plain ints: err = %v, want no match", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	l := newLoader(t)
	ctx := context.Background()

	tests := []struct {
		name string
		mod  string
		wasm []byte
		kind errors.Kind
	}{
		{"empty name", "", i32Add, errors.KindInvalidInput},
		{"garbage", "bad", []byte("not wasm"), errors.KindInvalidData},
		{"imports", "imp", importing, errors.KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Load(ctx, tt.mod, tt.wasm)
			var se *errors.Error
			if !stderrors.As(err, &se) || se.Phase != errors.PhaseLoad || se.Kind != tt.kind {
				t.Errorf("err = %v, want [load] %s", err, tt.kind)
			}
		})
	}
}

func TestLoad_InstantiateFailure(t *testing.T) {
	l := newLoader(t)
	ctx := context.Background()

	_, err := l.Load(ctx, "trap", trapping)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindInvalidData}) {
		t.Fatalf("err = %v, want load/invalid_data", err)
	}
	if len(l.Modules()) != 0 {
		t.Errorf("failed module listed: %d modules", len(l.Modules()))
	}

	if _, err := l.Load(ctx, "ints", i32Add); err != nil {
		t.Fatalf("Load after failure: %v", err)
	}
	if len(l.Modules()) != 1 {
		t.Errorf("modules = %d, want 1", len(l.Modules()))
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adder.wasm")
	if err := os.WriteFile(path, i32Add, 0o600); err != nil {
		t.Fatal(err)
	}

	l := newLoader(t)
	m, err := l.LoadFile(context.Background(), path, "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "adder" {
		t.Errorf("name = %q, want adder", m.Name())
	}

	if _, err := l.LoadFile(context.Background(), filepath.Join(dir, "missing.wasm"), ""); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDescriber(t *testing.T) {
	l := newLoader(t)
	m, err := l.Load(context.Background(), "floats", f64Add)
	if err != nil {
		t.Fatal(err)
	}
	add, _ := m.Export("add")
	sig, err := signature.FromCallable(Describer{}, add)
	if err != nil {
		t.Fatal(err)
	}
	if sig.String() != "(p0 float64, p1 float64)" {
		t.Errorf("sig = %s", sig)
	}
	if _, err := signature.FromCallable(Describer{}, 42); err == nil {
		t.Error("expected error for non-wasm callable")
	}
}

func TestModuleName(t *testing.T) {
	tests := map[string]string{
		"a/b/math.wasm": "math",
		"math":          "math",
		`c:\x\y.wasm`:   "y",
		".hidden":       ".hidden",
	}
	for in, want := range tests {
		if got := moduleName(in); got != want {
			t.Errorf("moduleName(%q) = %q, want %q", in, got, want)
		}
	}
}
