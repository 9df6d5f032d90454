package overload

import (
	"context"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/dispatch"
	"github.com/wippyai/overload/host"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/resolve"
	"github.com/wippyai/overload/signature"
)

var (
	// ErrNoMatch matches errors of calls no candidate accepts.
	ErrNoMatch = dispatch.ErrNoMatch
	// ErrAmbiguous matches errors of calls several candidates accept.
	ErrAmbiguous = dispatch.ErrAmbiguous
)

// Overloads couples a registry with a dispatcher over it.
type Overloads struct {
	reg *registry.Registry
	d   *dispatch.Dispatcher
}

// New creates an empty set of overloads.
func New(opts ...dispatch.Option) *Overloads {
	reg := registry.New()
	return &Overloads{reg: reg, d: dispatch.New(reg, opts...)}
}

// Register adds a candidate with an explicit signature.
func (o *Overloads) Register(name string, sig signature.Signature, b binder.Binder, c registry.Callable, opts ...registry.Option) (*registry.Candidate, error) {
	return o.reg.Register(name, sig, b, c, opts...)
}

// RegisterFunc adds a Go function, deriving its signature from its type.
func (o *Overloads) RegisterFunc(name string, b binder.Binder, fn any, opts ...host.FuncOption) (*registry.Candidate, error) {
	return host.RegisterFunc(o.reg, name, b, fn, opts...)
}

// RegisterHost adds every method of h under h's namespace.
func (o *Overloads) RegisterHost(b binder.Binder, h host.Host) ([]*registry.Candidate, error) {
	return host.RegisterHost(o.reg, b, h)
}

// Invoke resolves and calls name with args.
func (o *Overloads) Invoke(ctx context.Context, name string, args signature.Args) (any, error) {
	return o.d.Invoke(ctx, name, args)
}

// Call invokes name with positional arguments only.
func (o *Overloads) Call(ctx context.Context, name string, positional ...any) (any, error) {
	return o.d.Invoke(ctx, name, signature.NewArgs(positional...))
}

// Resolve classifies a call without invoking it.
func (o *Overloads) Resolve(name string, args signature.Args) (resolve.Result, error) {
	return o.d.Resolve(name, args)
}

// Describe returns the signatures of name's candidates in registration order.
func (o *Overloads) Describe(name string) ([]string, error) {
	return o.d.Describe(name)
}

// Names returns the registered overload set names, sorted.
func (o *Overloads) Names() []string {
	return o.reg.Names()
}

// Registry returns the underlying registry.
func (o *Overloads) Registry() *registry.Registry {
	return o.reg
}

// Dispatcher returns the underlying dispatcher.
func (o *Overloads) Dispatcher() *dispatch.Dispatcher {
	return o.d
}
