package resolve

type options struct {
	checkVariadic bool
}

// Option configures resolution.
type Option func(*options)

// CheckVariadic enables per-element type checks of values absorbed by
// var-positional and var-named parameters. Off by default: variadic
// parameters then only affect arity.
func CheckVariadic(enabled bool) Option {
	return func(o *options) {
		o.checkVariadic = enabled
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
