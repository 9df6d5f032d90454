package registry

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/signature"
)

func constant(v any) CallableFunc {
	return func(context.Context, signature.Args) (any, error) {
		return v, nil
	}
}

func TestRegister(t *testing.T) {
	reg := New()
	sig := signature.MustNew(signature.Param("x", signature.TypeOf[int]()))

	c1, err := reg.Register("f", sig, binder.Exact, constant(1))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	c2, err := reg.Register("f", sig, binder.Exact, constant(2), WithSource("go"))
	if err != nil {
		t.Fatalf("Register duplicate: %v", err)
	}

	if c1.Index() != 0 || c2.Index() != 1 {
		t.Errorf("indexes = %d, %d", c1.Index(), c2.Index())
	}
	if c1.ID() == c2.ID() {
		t.Error("candidates share an ID")
	}
	if c2.Source() != "go" || c1.Source() != "" {
		t.Errorf("sources = %q, %q", c1.Source(), c2.Source())
	}
	if c1.String() != "f(x int)" {
		t.Errorf("String() = %q", c1.String())
	}

	got, err := c2.Call(context.Background(), signature.NewArgs(1))
	if err != nil || got != 2 {
		t.Errorf("Call = %v, %v", got, err)
	}

	set, ok := reg.Lookup("f")
	if !ok {
		t.Fatal("Lookup failed")
	}
	if set.Name() != "f" || set.Len() != 2 {
		t.Errorf("set = %s/%d", set.Name(), set.Len())
	}
}

func TestRegister_Invalid(t *testing.T) {
	reg := New()
	sig := signature.MustNew()
	var nilFunc CallableFunc

	tests := []struct {
		name     string
		regName  string
		b        binder.Binder
		callable Callable
	}{
		{"empty name", "", binder.Exact, constant(1)},
		{"nil binder", "f", nil, constant(1)},
		{"nil callable", "f", binder.Exact, nil},
		{"typed nil callable", "f", binder.Exact, nilFunc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Register(tt.regName, sig, tt.b, tt.callable)
			if err == nil {
				t.Fatal("expected error")
			}
			var se *errors.Error
			if !stderrors.As(err, &se) || se.Phase != errors.PhaseRegister {
				t.Errorf("err = %v, want register phase error", err)
			}
		})
	}

	if reg.Len() != 0 {
		t.Errorf("failed registrations created %d sets", reg.Len())
	}
}

func TestLookup_Missing(t *testing.T) {
	reg := New()
	if _, ok := reg.Lookup("nope"); ok {
		t.Error("Lookup should fail")
	}
	if _, ok := reg.Snapshot("nope"); ok {
		t.Error("Snapshot should fail")
	}
}

func TestNames_Sorted(t *testing.T) {
	reg := New()
	sig := signature.MustNew()
	for _, n := range []string{"b", "a.z", "c", "a"} {
		if _, err := reg.Register(n, sig, binder.Universal, constant(n)); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{"a", "a.z", "b", "c"}
	got := reg.Names()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestSnapshot_Isolated(t *testing.T) {
	reg := New()
	sig := signature.MustNew()
	if _, err := reg.Register("f", sig, binder.Universal, constant(1)); err != nil {
		t.Fatal(err)
	}

	snap, ok := reg.Snapshot("f")
	if !ok || len(snap.Candidates) != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}

	if _, err := reg.Register("f", sig, binder.Universal, constant(2)); err != nil {
		t.Fatal(err)
	}
	if len(snap.Candidates) != 1 {
		t.Error("snapshot observed later registration")
	}

	again, _ := reg.Snapshot("f")
	if len(again.Candidates) != 2 {
		t.Errorf("new snapshot has %d candidates", len(again.Candidates))
	}
}

func TestRegister_Concurrent(t *testing.T) {
	reg := New()
	sig := signature.MustNew()
	const workers, perWorker = 8, 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := reg.Register("f", sig, binder.Universal, constant(i)); err != nil {
					t.Error(err)
					return
				}
				snap, _ := reg.Snapshot("f")
				for j, c := range snap.Candidates {
					if c.Index() != j {
						t.Errorf("candidate %d has index %d", j, c.Index())
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	snap, _ := reg.Snapshot("f")
	if len(snap.Candidates) != workers*perWorker {
		t.Errorf("got %d candidates, want %d", len(snap.Candidates), workers*perWorker)
	}
}
