package dispatch

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/resolve"
	"github.com/wippyai/overload/signature"
)

func returns(v any) registry.CallableFunc {
	return func(context.Context, signature.Args) (any, error) {
		return v, nil
	}
}

func mustRegister(t *testing.T, reg *registry.Registry, name string, sig signature.Signature, c registry.Callable) {
	t.Helper()
	if _, err := reg.Register(name, sig, binder.Exact, c); err != nil {
		t.Fatalf("Register: %v", err)
	}
}

func TestInvoke_Resolved(t *testing.T) {
	reg := registry.New()
	mustRegister(t, reg, "f", signature.MustNew(signature.Param("x", signature.TypeOf[int]())), returns("int"))
	mustRegister(t, reg, "f", signature.MustNew(signature.Param("x", signature.TypeOf[string]())), returns("string"))
	d := New(reg)

	tests := []struct {
		arg  any
		want string
	}{
		{1, "int"},
		{"a", "string"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.arg), func(t *testing.T) {
			got, err := d.Invoke(context.Background(), "f", signature.NewArgs(tt.arg))
			if err != nil {
				t.Fatalf("Invoke: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvoke_ForwardsOriginalArgs(t *testing.T) {
	reg := registry.New()
	var seen signature.Args
	capture := registry.CallableFunc(func(_ context.Context, args signature.Args) (any, error) {
		seen = args
		return nil, nil
	})
	mustRegister(t, reg, "f", signature.MustNew(signature.Param("x", nil), signature.Kwargs("kw", nil)), capture)

	args := signature.Args{Positional: []any{1}, Named: map[string]any{"extra": 2}}
	if _, err := New(reg).Invoke(context.Background(), "f", args); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if len(seen.Positional) != 1 || seen.Positional[0] != 1 || seen.Named["extra"] != 2 {
		t.Errorf("callable saw %v", seen)
	}
}

func TestInvoke_NoMatch(t *testing.T) {
	reg := registry.New()
	mustRegister(t, reg, "pkg.f", signature.MustNew(signature.Param("x", signature.TypeOf[int]())), returns(1))
	mustRegister(t, reg, "pkg.f", signature.MustNew(signature.Param("x", signature.TypeOf[string]())), returns(2))

	args := signature.NewArgs(1.5)
	_, err := New(reg).Invoke(context.Background(), "pkg.f", args)

	var nm *NoMatchingOverloadError
	if !stderrors.As(err, &nm) {
		t.Fatalf("err = %T %v, want *NoMatchingOverloadError", err, err)
	}
	if len(nm.Rejections) != 2 {
		t.Errorf("got %d rejections", len(nm.Rejections))
	}
	if !stderrors.Is(err, ErrNoMatch) || stderrors.Is(err, ErrAmbiguous) {
		t.Error("errors.Is classification")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindNoMatch}) {
		t.Error("should match structured resolve/no_match error")
	}

	var base *OverloadError
	if !stderrors.As(err, &base) || base.Name != "pkg.f" || base.Args.Positional[0] != 1.5 {
		t.Errorf("base = %+v", base)
	}

	want := "no matching overload found for pkg.f\nReason:\n" +
		"  f(x int): unexpected type for parameter `x`\n" +
		"  f(x string): unexpected type for parameter `x`"
	if err.Error() != want {
		t.Errorf("Error() =\n%s\nwant\n%s", err.Error(), want)
	}
}

func TestInvoke_Ambiguous(t *testing.T) {
	reg := registry.New()
	sig := signature.MustNew(signature.Param("x", signature.TypeOf[int]()))
	mustRegister(t, reg, "f", sig, returns(1))
	mustRegister(t, reg, "f", sig, returns(2))

	_, err := New(reg).Invoke(context.Background(), "f", signature.NewArgs(1))

	var amb *AmbiguousOverloadError
	if !stderrors.As(err, &amb) {
		t.Fatalf("err = %T %v, want *AmbiguousOverloadError", err, err)
	}
	if len(amb.Candidates) != 2 || amb.Candidates[0].Index() != 0 {
		t.Errorf("candidates = %v", amb.Candidates)
	}
	if !stderrors.Is(err, ErrAmbiguous) {
		t.Error("errors.Is(ErrAmbiguous)")
	}
	if !strings.HasPrefix(err.Error(), "ambiguous overloaded call to f\nPossible candidates:\n") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestInvoke_CallableErrorUnchanged(t *testing.T) {
	reg := registry.New()
	boom := stderrors.New("boom")
	mustRegister(t, reg, "f", signature.MustNew(), registry.CallableFunc(func(context.Context, signature.Args) (any, error) {
		return nil, boom
	}))

	_, err := New(reg).Invoke(context.Background(), "f", signature.NewArgs())
	if err != boom {
		t.Errorf("err = %v, want the callable's error unchanged", err)
	}
}

func TestInvoke_CallablePanicPropagates(t *testing.T) {
	reg := registry.New()
	mustRegister(t, reg, "f", signature.MustNew(), registry.CallableFunc(func(context.Context, signature.Args) (any, error) {
		panic("kaboom")
	}))

	defer func() {
		if r := recover(); r != "kaboom" {
			t.Errorf("recovered %v, want kaboom", r)
		}
	}()
	_, _ = New(reg).Invoke(context.Background(), "f", signature.NewArgs())
	t.Error("expected panic")
}

func TestInvoke_UnknownName(t *testing.T) {
	d := New(registry.New())
	_, err := d.Invoke(context.Background(), "missing", signature.NewArgs())
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindNotFound}) {
		t.Errorf("err = %v, want not_found", err)
	}
	if _, err := d.Describe("missing"); err == nil {
		t.Error("Describe should fail for unknown name")
	}
}

func TestInvoke_CheckVariadic(t *testing.T) {
	reg := registry.New()
	mustRegister(t, reg, "sum", signature.MustNew(signature.Variadic("xs", signature.TypeOf[int]())), returns("ints"))

	args := signature.NewArgs(1, "two")
	if _, err := New(reg).Invoke(context.Background(), "sum", args); err != nil {
		t.Errorf("unchecked variadic: %v", err)
	}
	strict := New(reg, WithResolveOptions(resolve.CheckVariadic(true)))
	if _, err := strict.Invoke(context.Background(), "sum", args); !stderrors.Is(err, ErrNoMatch) {
		t.Errorf("checked variadic: err = %v", err)
	}
}

func TestDescribe(t *testing.T) {
	reg := registry.New()
	mustRegister(t, reg, "geo.area", signature.MustNew(signature.Param("r", signature.TypeOf[float64]())), returns(0))
	mustRegister(t, reg, "geo.area", signature.MustNew(
		signature.Param("w", signature.TypeOf[float64]()),
		signature.Param("h", signature.TypeOf[float64]()),
	), returns(0))

	got, err := New(reg).Describe("geo.area")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"area(r float64)", "area(w float64, h float64)"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}

type recorder struct {
	mu          sync.Mutex
	outcomes    []resolve.Outcome
	invocations []error
}

func (r *recorder) ObserveResolution(_ string, res resolve.Result, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, res.Outcome)
}

func (r *recorder) ObserveInvocation(_ string, _ *registry.Candidate, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invocations = append(r.invocations, err)
}

func TestObserver(t *testing.T) {
	reg := registry.New()
	mustRegister(t, reg, "f", signature.MustNew(signature.Param("x", signature.TypeOf[int]())), returns(1))

	a, b := &recorder{}, &recorder{}
	d := New(reg, WithObserver(Observers{a, b}))
	ctx := context.Background()
	_, _ = d.Invoke(ctx, "f", signature.NewArgs(1))
	_, _ = d.Invoke(ctx, "f", signature.NewArgs("x"))
	_, _ = d.Resolve("f", signature.NewArgs(2))
	if res, err := d.Explain("f", signature.NewArgs(3)); err != nil || res.Outcome != resolve.Resolved {
		t.Fatalf("Explain = %v, %v", res.Outcome, err)
	}

	for _, r := range []*recorder{a, b} {
		want := []resolve.Outcome{resolve.Resolved, resolve.NoMatch, resolve.Resolved}
		if fmt.Sprint(r.outcomes) != fmt.Sprint(want) {
			t.Errorf("outcomes = %v, want %v", r.outcomes, want)
		}
		if len(r.invocations) != 1 || r.invocations[0] != nil {
			t.Errorf("invocations = %v", r.invocations)
		}
	}
}

func TestInvoke_ConcurrentWithRegistration(t *testing.T) {
	reg := registry.New()
	mustRegister(t, reg, "f", signature.MustNew(signature.Param("x", signature.TypeOf[int]())), returns(1))
	d := New(reg)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sig := signature.MustNew(signature.Param("x", signature.TypeOf[string]()))
		for i := 0; i < 100; i++ {
			if _, err := reg.Register("f", sig, binder.Exact, returns(2)); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				got, err := d.Invoke(context.Background(), "f", signature.NewArgs(i))
				if err != nil || got != 1 {
					t.Errorf("Invoke = %v, %v", got, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
