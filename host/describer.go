package host

import "github.com/wippyai/overload/signature"

// Describer introspects Go functions through reflection.
// A *Func is described by its declared metadata; any other function is
// described with default options.
type Describer struct {
	Options []FuncOption
}

var _ signature.Describer = Describer{}

func (d Describer) DescribeParameters(callable any) ([]signature.Parameter, error) {
	if f, ok := callable.(*Func); ok {
		return f.Parameters(), nil
	}
	f, err := NewFunc(callable, d.Options...)
	if err != nil {
		return nil, err
	}
	return f.Parameters(), nil
}
