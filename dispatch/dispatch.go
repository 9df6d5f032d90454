package dispatch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/report"
	"github.com/wippyai/overload/resolve"
	"github.com/wippyai/overload/signature"
)

// Dispatcher resolves calls against a registry and invokes the selected candidate.
type Dispatcher struct {
	reg         *registry.Registry
	observer    Observer
	resolveOpts []resolve.Option
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithResolveOptions sets the options passed to every resolution.
func WithResolveOptions(opts ...resolve.Option) Option {
	return func(d *Dispatcher) {
		d.resolveOpts = append(d.resolveOpts, opts...)
	}
}

// WithObserver installs an observer for resolutions and invocations.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		if o != nil {
			d.observer = o
		}
	}
}

// New creates a dispatcher over reg.
func New(reg *registry.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:      reg,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher reads from.
func (d *Dispatcher) Registry() *registry.Registry {
	return d.reg
}

// Resolve classifies a call without invoking anything.
// The only error is an unknown name.
func (d *Dispatcher) Resolve(name string, args signature.Args) (resolve.Result, error) {
	start := time.Now()
	res, err := d.Explain(name, args)
	if err != nil {
		return res, err
	}
	d.observer.ObserveResolution(name, res, time.Since(start))
	return res, nil
}

// Explain classifies a call like Resolve without notifying the observer.
func (d *Dispatcher) Explain(name string, args signature.Args) (resolve.Result, error) {
	snap, ok := d.reg.Snapshot(name)
	if !ok {
		return resolve.Result{}, errors.NotFound(errors.PhaseResolve, "overload set", name)
	}
	return resolve.Resolve(snap, args, d.resolveOpts...), nil
}

// Invoke resolves a call and forwards the original arguments to the single
// accepting candidate, returning its result and error unchanged.
//
// An ambiguous call returns *AmbiguousOverloadError and a call no candidate
// accepts returns *NoMatchingOverloadError.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args signature.Args) (any, error) {
	res, err := d.Resolve(name, args)
	if err != nil {
		return nil, err
	}

	c := res.Candidate()
	if c == nil {
		Logger().Debug("overload resolution failed",
			zap.String("name", name),
			zap.Stringer("outcome", res.Outcome),
			zap.Stringer("args", args))
		return nil, resultError(res, args)
	}

	Logger().Debug("overload resolved",
		zap.String("name", name),
		zap.Int("index", c.Index()),
		zap.Stringer("signature", c.Signature()))

	start := time.Now()
	out, err := c.Call(ctx, args)
	d.observer.ObserveInvocation(name, c, err, time.Since(start))
	return out, err
}

// Describe returns the rendered signatures of name's candidates in
// registration order.
func (d *Dispatcher) Describe(name string) ([]string, error) {
	snap, ok := d.reg.Snapshot(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseResolve, "overload set", name)
	}
	return report.Lines(name, snap.Candidates), nil
}
