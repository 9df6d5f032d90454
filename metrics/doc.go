// Package metrics exports overload resolution and invocation statistics to
// Prometheus.
//
// An Observer plugs into a dispatcher:
//
//	obs, err := metrics.NewObserver(metrics.Config{Namespace: "overload"}, reg)
//	if err != nil {
//		return err
//	}
//	d := dispatch.New(registry, dispatch.WithObserver(obs))
//
// Series are labelled by overload set name; rejections additionally by
// reason code (type_mismatch, missing_argument, ...) and invocations by
// candidate source and status.
package metrics
