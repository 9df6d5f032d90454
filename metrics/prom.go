package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/overload/dispatch"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/resolve"
)

// Config selects the metric namespace.
type Config struct {
	Namespace string
}

// Observer records resolutions and invocations in Prometheus metrics.
type Observer struct {
	resolutions        *prometheus.CounterVec
	rejections         *prometheus.CounterVec
	resolutionLatency  *prometheus.HistogramVec
	invocations        *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
}

var _ dispatch.Observer = (*Observer)(nil)

// NewObserver registers the overload metrics on reg.
// If reg is nil, the default registerer is used. Collectors that are
// already registered are reused, so several dispatchers can share them.
func NewObserver(cfg Config, reg prometheus.Registerer) (*Observer, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "resolutions_total",
		Help:      "Overload resolutions by outcome",
	}, []string{"set", "outcome"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "rejections_total",
		Help:      "Rejected candidates by reason",
	}, []string{"set", "reason"})
	resolutionLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Name:      "resolution_duration_seconds",
		Help:      "Time spent matching a call against an overload set",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"set"})
	invocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "invocations_total",
		Help:      "Invocations of resolved candidates",
	}, []string{"set", "source", "status"})
	invocationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Name:      "invocation_duration_seconds",
		Help:      "Duration of resolved candidate calls",
		Buckets:   prometheus.DefBuckets,
	}, []string{"set", "source"})

	var err error
	if resolutions, err = register(reg, resolutions); err != nil {
		return nil, err
	}
	if rejections, err = register(reg, rejections); err != nil {
		return nil, err
	}
	if resolutionLatency, err = register(reg, resolutionLatency); err != nil {
		return nil, err
	}
	if invocations, err = register(reg, invocations); err != nil {
		return nil, err
	}
	if invocationDuration, err = register(reg, invocationDuration); err != nil {
		return nil, err
	}

	return &Observer{
		resolutions:        resolutions,
		rejections:         rejections,
		resolutionLatency:  resolutionLatency,
		invocations:        invocations,
		invocationDuration: invocationDuration,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveResolution counts the outcome and every rejection reason.
func (o *Observer) ObserveResolution(name string, res resolve.Result, elapsed time.Duration) {
	o.resolutions.WithLabelValues(name, res.Outcome.String()).Inc()
	for _, b := range res.Rejections {
		o.rejections.WithLabelValues(name, b.Reason.Code.String()).Inc()
	}
	o.resolutionLatency.WithLabelValues(name).Observe(elapsed.Seconds())
}

// ObserveInvocation counts the call by candidate source and status.
func (o *Observer) ObserveInvocation(name string, c *registry.Candidate, err error, elapsed time.Duration) {
	source := c.Source()
	status := "ok"
	if err != nil {
		status = "error"
	}
	o.invocations.WithLabelValues(name, source, status).Inc()
	o.invocationDuration.WithLabelValues(name, source).Observe(elapsed.Seconds())
}
