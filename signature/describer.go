package signature

import (
	stderrors "errors"
	"fmt"

	"github.com/wippyai/overload/errors"
)

// Describer reports the parameters of a callable.
// Implementations are supplied by the hosting environment (Go reflection,
// wasm function definitions, declared metadata).
type Describer interface {
	DescribeParameters(callable any) ([]Parameter, error)
}

// DescriberFunc adapts a function to Describer.
type DescriberFunc func(callable any) ([]Parameter, error)

func (f DescriberFunc) DescribeParameters(callable any) ([]Parameter, error) {
	return f(callable)
}

// FromCallable builds a signature from the parameters d reports for callable.
// A describer failure is returned as an introspection error.
func FromCallable(d Describer, callable any) (Signature, error) {
	if d == nil {
		return Signature{}, errors.InvalidInput(errors.PhaseIntrospect, "describer cannot be nil")
	}
	params, err := d.DescribeParameters(callable)
	if err != nil {
		var se *errors.Error
		if stderrors.As(err, &se) && se.Phase == errors.PhaseIntrospect {
			return Signature{}, err
		}
		return Signature{}, errors.New(errors.PhaseIntrospect, errors.KindIntrospection).
			GoType(fmt.Sprintf("%T", callable)).
			Cause(err).
			Detail("describe parameters").
			Build()
	}
	return New(params...)
}
