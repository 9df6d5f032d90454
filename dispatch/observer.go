package dispatch

import (
	"time"

	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/resolve"
)

// Observer is notified of every resolution and invocation.
// Implementations must be safe for concurrent use.
type Observer interface {
	// ObserveResolution is called once per resolved name with the outcome.
	ObserveResolution(name string, res resolve.Result, elapsed time.Duration)
	// ObserveInvocation is called after a resolved candidate returns.
	ObserveInvocation(name string, c *registry.Candidate, err error, elapsed time.Duration)
}

// Observers fans out to several observers in order.
type Observers []Observer

func (o Observers) ObserveResolution(name string, res resolve.Result, elapsed time.Duration) {
	for _, obs := range o {
		obs.ObserveResolution(name, res, elapsed)
	}
}

func (o Observers) ObserveInvocation(name string, c *registry.Candidate, err error, elapsed time.Duration) {
	for _, obs := range o {
		obs.ObserveInvocation(name, c, err, elapsed)
	}
}

type nopObserver struct{}

func (nopObserver) ObserveResolution(string, resolve.Result, time.Duration) {}

func (nopObserver) ObserveInvocation(string, *registry.Candidate, error, time.Duration) {}
