package registry

import (
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/signature"
)

// Registry maps logical names to overload sets.
// A single lock serializes registration so that registration order is a
// total order across all names.
type Registry struct {
	sets map[string]*OverloadSet
	mu   sync.RWMutex
}

// OverloadSet holds the candidates registered under one name, in
// registration order. Sets only grow.
type OverloadSet struct {
	reg        *Registry
	name       string
	candidates []*Candidate
}

// Snapshot is an immutable view of an overload set at one point in time.
type Snapshot struct {
	Name       string
	Candidates []*Candidate
}

// Option configures a registration.
type Option func(*Candidate)

// WithSource records where a candidate came from.
func WithSource(source string) Option {
	return func(c *Candidate) {
		c.source = source
	}
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		sets: make(map[string]*OverloadSet),
	}
}

// Register appends a candidate to the overload set for name, creating the
// set on first use. Structurally identical signatures are allowed; they
// surface as ambiguity at call time.
func (r *Registry) Register(name string, sig signature.Signature, b binder.Binder, callable Callable, opts ...Option) (*Candidate, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseRegister, "name cannot be empty")
	}
	if b == nil {
		return nil, errors.Registration(name, errors.InvalidInput(errors.PhaseRegister, "binder cannot be nil"))
	}
	if isNil(callable) {
		return nil, errors.Registration(name, errors.NilPointer(errors.PhaseRegister, []string{"callable"}, "registry.Callable"))
	}

	c := &Candidate{
		id:        uuid.New(),
		name:      name,
		signature: sig,
		binder:    b,
		callable:  callable,
	}
	for _, opt := range opts {
		opt(c)
	}

	r.mu.Lock()
	set, ok := r.sets[name]
	if !ok {
		set = &OverloadSet{reg: r, name: name}
		r.sets[name] = set
	}
	c.index = len(set.candidates)
	set.candidates = append(set.candidates, c)
	r.mu.Unlock()

	Logger().Debug("registered candidate",
		zap.String("name", name),
		zap.Int("index", c.index),
		zap.Stringer("signature", sig),
		zap.String("binder", binder.Name(b)),
		zap.Stringer("id", c.id))

	return c, nil
}

// Lookup returns the overload set registered under name.
func (r *Registry) Lookup(name string) (*OverloadSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[name]
	return set, ok
}

// Snapshot looks up name and snapshots its overload set.
func (r *Registry) Snapshot(name string) (Snapshot, bool) {
	set, ok := r.Lookup(name)
	if !ok {
		return Snapshot{}, false
	}
	return set.Snapshot(), true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of overload sets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sets)
}

// Name returns the set's logical name.
func (s *OverloadSet) Name() string { return s.name }

// Len returns the current number of candidates.
func (s *OverloadSet) Len() int {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()
	return len(s.candidates)
}

// Snapshot copies the candidate list. Later registrations do not affect it.
func (s *OverloadSet) Snapshot() Snapshot {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()
	out := make([]*Candidate, len(s.candidates))
	copy(out, s.candidates)
	return Snapshot{Name: s.name, Candidates: out}
}

func isNil(c Callable) bool {
	if c == nil {
		return true
	}
	rv := reflect.ValueOf(c)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Interface, reflect.Chan, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
