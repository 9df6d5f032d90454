package host

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"sync"

	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/signature"
)

// Kwargs is the type of a trailing parameter that collects named arguments
// not bound to any other parameter. A Go func whose last parameter has this
// type gets a var-named parameter.
type Kwargs map[string]any

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	kwargsType  = reflect.TypeOf(Kwargs(nil))
)

// Func adapts a Go function into an overload candidate. It describes the
// function's parameters and implements registry.Callable, mapping positional
// and named arguments onto the Go parameter list.
//
// A leading context.Context parameter receives the call's context and is not
// part of the signature. A variadic parameter becomes var-positional and a
// trailing Kwargs parameter becomes var-named. Parameters are named arg0,
// arg1, ... unless WithNames is given.
type Func struct {
	fn       reflect.Value
	typ      reflect.Type
	defaults map[string]any
	argsPool sync.Pool
	name     string
	params   []signature.Parameter
	goTypes  []reflect.Type
	sig      signature.Signature
	hasCtx   bool
	hasErr   bool
	hasOut   bool
}

type funcConfig struct {
	defaults       map[string]any
	constraints    map[string]signature.Constraint
	namedOnly      map[string]bool
	names          []string
	positionalOnly int
}

// FuncOption configures how a Go function is described.
type FuncOption func(*funcConfig)

// WithNames names the parameters in order, excluding a leading context.
func WithNames(names ...string) FuncOption {
	return func(c *funcConfig) {
		c.names = names
	}
}

// WithDefault declares a default value for the named parameter.
func WithDefault(name string, v any) FuncOption {
	return func(c *funcConfig) {
		if c.defaults == nil {
			c.defaults = make(map[string]any)
		}
		c.defaults[name] = v
	}
}

// WithConstraint replaces the constraint derived from the parameter's Go type.
// The constraint must only admit values assignable to that type.
func WithConstraint(name string, con signature.Constraint) FuncOption {
	return func(c *funcConfig) {
		if c.constraints == nil {
			c.constraints = make(map[string]signature.Constraint)
		}
		c.constraints[name] = con
	}
}

// WithPositionalOnly marks the first n parameters positional-only.
func WithPositionalOnly(n int) FuncOption {
	return func(c *funcConfig) {
		c.positionalOnly = n
	}
}

// WithNamedOnly marks the given parameters named-only. They must be the
// last non-variadic parameters.
func WithNamedOnly(names ...string) FuncOption {
	return func(c *funcConfig) {
		if c.namedOnly == nil {
			c.namedOnly = make(map[string]bool, len(names))
		}
		for _, n := range names {
			c.namedOnly[n] = true
		}
	}
}

// NewFunc describes fn and returns its adapter.
func NewFunc(fn any, opts ...FuncOption) (*Func, error) {
	var cfg funcConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, errors.Introspection(fmt.Sprintf("%T", fn), "handler must be a non-nil function")
	}
	ft := rv.Type()

	f := &Func{
		fn:   rv,
		typ:  ft,
		name: funcName(rv),
	}
	if err := f.describeResults(); err != nil {
		return nil, err
	}

	numIn := ft.NumIn()
	f.hasCtx = numIn > 0 && ft.In(0) == contextType
	start := 0
	if f.hasCtx {
		start = 1
	}

	count := numIn - start
	if cfg.names != nil && len(cfg.names) != count {
		return nil, errors.New(errors.PhaseIntrospect, errors.KindIntrospection).
			GoType(ft.String()).
			Detail("%d names given for %d parameters", len(cfg.names), count).
			Build()
	}
	if cfg.positionalOnly > count {
		return nil, errors.New(errors.PhaseIntrospect, errors.KindIntrospection).
			GoType(ft.String()).
			Detail("%d positional-only parameters requested, function has %d", cfg.positionalOnly, count).
			Build()
	}

	f.params = make([]signature.Parameter, 0, count)
	f.goTypes = make([]reflect.Type, 0, count)
	for i := start; i < numIn; i++ {
		idx := i - start
		name := fmt.Sprintf("arg%d", idx)
		if cfg.names != nil {
			name = cfg.names[idx]
		}

		t := ft.In(i)
		p := signature.Param(name, constraintFor(t))
		switch {
		case ft.IsVariadic() && i == numIn-1:
			t = t.Elem()
			p = signature.Variadic(name, constraintFor(t))
		case i == numIn-1 && t == kwargsType:
			p = signature.Kwargs(name, nil)
		case idx < cfg.positionalOnly:
			p.Kind = signature.PositionalOnly
		case cfg.namedOnly[name]:
			p.Kind = signature.NamedOnly
		}

		if c, ok := cfg.constraints[name]; ok {
			p.Constraint = c
		}
		if d, ok := cfg.defaults[name]; ok {
			if !assignable(d, t) {
				return nil, errors.New(errors.PhaseIntrospect, errors.KindTypeMismatch).
					Path(name).
					GoType(fmt.Sprintf("%T", d)).
					Constraint(t.String()).
					Detail("default value is not assignable to the parameter").
					Build()
			}
			p = p.WithDefault()
		}

		f.params = append(f.params, p)
		f.goTypes = append(f.goTypes, t)
	}

	for name := range cfg.defaults {
		if !f.declares(name) {
			return nil, errors.NotFound(errors.PhaseIntrospect, "parameter", name)
		}
	}
	for name := range cfg.constraints {
		if !f.declares(name) {
			return nil, errors.NotFound(errors.PhaseIntrospect, "parameter", name)
		}
	}
	for name := range cfg.namedOnly {
		if !f.declares(name) {
			return nil, errors.NotFound(errors.PhaseIntrospect, "parameter", name)
		}
	}

	sig, err := signature.New(f.params...)
	if err != nil {
		return nil, errors.New(errors.PhaseIntrospect, errors.KindIntrospection).
			GoType(ft.String()).
			Cause(err).
			Detail("invalid parameter list").
			Build()
	}
	f.sig = sig
	f.defaults = cfg.defaults

	f.argsPool = sync.Pool{
		New: func() any {
			s := make([]reflect.Value, 0, numIn)
			return &s
		},
	}
	return f, nil
}

func (f *Func) describeResults() error {
	ft := f.typ
	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) == errorType {
			f.hasErr = true
		} else {
			f.hasOut = true
		}
	case 2:
		if ft.Out(1) != errorType {
			return errors.Introspection(ft.String(), "second result must be error")
		}
		f.hasOut, f.hasErr = true, true
	default:
		return errors.Introspection(ft.String(), "at most one result and an error are supported")
	}
	return nil
}

func (f *Func) declares(name string) bool {
	for _, p := range f.params {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Name returns the Go function name, for diagnostics.
func (f *Func) Name() string { return f.name }

// Signature returns the described signature.
func (f *Func) Signature() signature.Signature { return f.sig }

// Parameters returns the described parameter list.
func (f *Func) Parameters() []signature.Parameter { return f.sig.Params() }

// Call binds args to the Go parameters and calls the function.
// Omitted parameters take their declared default. Values are passed as-is;
// a value not assignable to its Go parameter is an invoke error.
func (f *Func) Call(ctx context.Context, args signature.Args) (any, error) {
	inp := f.argsPool.Get().(*[]reflect.Value)
	in := (*inp)[:0]
	defer func() {
		clear(in)
		*inp = in[:0]
		f.argsPool.Put(inp)
	}()

	if f.hasCtx {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
	}

	pos := args.Positional
	p := 0
	for i, param := range f.params {
		t := f.goTypes[i]
		switch param.Kind {
		case signature.VarPositional:
			for ; p < len(pos); p++ {
				v, err := value(param.Name, pos[p], t)
				if err != nil {
					return nil, err
				}
				in = append(in, v)
			}
			continue
		case signature.VarNamed:
			kw := make(Kwargs)
			for k, v := range args.Named {
				if bp, _, ok := f.sig.Lookup(k); ok && bp.Kind.Named() {
					continue
				}
				kw[k] = v
			}
			in = append(in, reflect.ValueOf(kw))
			continue
		}

		var arg any
		switch {
		case param.Kind.Positional() && p < len(pos):
			arg = pos[p]
			p++
		case param.Kind.Named() && hasKey(args.Named, param.Name):
			arg = args.Named[param.Name]
		case param.HasDefault:
			arg = f.defaults[param.Name]
		default:
			return nil, errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
				Path(f.name, param.Name).
				Detail("missing argument").
				Build()
		}

		v, err := value(param.Name, arg, t)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}
	if p < len(pos) {
		return nil, errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
			Path(f.name).
			Detail("%d positional arguments given, %d used", len(pos), p).
			Build()
	}

	out := f.fn.Call(in)

	var err error
	if f.hasErr {
		if e := out[len(out)-1]; !e.IsNil() {
			err = e.Interface().(error)
		}
	}
	if f.hasOut {
		return out[0].Interface(), err
	}
	return nil, err
}

func hasKey(m map[string]any, k string) bool {
	_, ok := m[k]
	return ok
}

func value(name string, v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		if nillable(t.Kind()) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseInvoke, []string{name}, "nil", t.String())
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseInvoke, []string{name}, rv.Type().String(), t.String())
	}
	return rv, nil
}

func assignable(v any, t reflect.Type) bool {
	if v == nil {
		return nillable(t.Kind())
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan,
		reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}

// constraintFor derives a parameter constraint from its Go type.
// The empty interface is unconstrained.
func constraintFor(t reflect.Type) signature.Constraint {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return nil
	}
	return signature.TypeFor(t)
}

func funcName(fn reflect.Value) string {
	if rf := runtime.FuncForPC(fn.Pointer()); rf != nil {
		return rf.Name()
	}
	return fn.Type().String()
}
