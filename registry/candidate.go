package registry

import (
	"context"

	"github.com/google/uuid"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/signature"
)

// Callable is the implementation behind a candidate.
// It receives the call's original arguments unchanged.
type Callable interface {
	Call(ctx context.Context, args signature.Args) (any, error)
}

// CallableFunc adapts a function to Callable.
type CallableFunc func(ctx context.Context, args signature.Args) (any, error)

func (f CallableFunc) Call(ctx context.Context, args signature.Args) (any, error) {
	return f(ctx, args)
}

// Candidate is one registered implementation of an overloaded name.
// It is immutable after registration.
type Candidate struct {
	callable  Callable
	binder    binder.Binder
	name      string
	source    string
	signature signature.Signature
	index     int
	id        uuid.UUID
}

// ID returns the candidate's unique identity.
func (c *Candidate) ID() uuid.UUID { return c.id }

// Name returns the logical name the candidate was registered under.
func (c *Candidate) Name() string { return c.name }

// Index returns the candidate's position in its overload set, starting at 0.
func (c *Candidate) Index() int { return c.index }

// Signature returns the candidate's parameter list.
func (c *Candidate) Signature() signature.Signature { return c.signature }

// Binder returns the predicate used to match arguments against constraints.
func (c *Candidate) Binder() binder.Binder { return c.binder }

// Callable returns the candidate's implementation.
func (c *Candidate) Callable() Callable { return c.callable }

// Source describes where the candidate came from (for example "go" or
// "wasm:math"). Empty unless set with WithSource.
func (c *Candidate) Source() string { return c.source }

// Call invokes the candidate's implementation with args.
func (c *Candidate) Call(ctx context.Context, args signature.Args) (any, error) {
	return c.callable.Call(ctx, args)
}

// String renders the candidate as <name><signature>.
func (c *Candidate) String() string {
	return c.name + c.signature.String()
}
