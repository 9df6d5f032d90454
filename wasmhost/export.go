package wasmhost

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/signature"
)

// Export is an exported wasm function usable as a candidate.
// Every parameter is positional-or-named; names come from the module's name
// section when present and default to p0, p1, ...
type Export struct {
	fn      api.Function
	module  *Module
	name    string
	params  []api.ValueType
	results []api.ValueType
	sig     signature.Signature
}

func newExport(m *Module, name string, def api.FunctionDefinition) (*Export, error) {
	params, err := describe(def)
	if err != nil {
		return nil, err
	}
	for _, rt := range def.ResultTypes() {
		if _, ok := constraintFor(rt); !ok {
			return nil, errors.Unsupported(errors.PhaseLoad, "result type "+api.ValueTypeName(rt))
		}
	}
	sig, err := signature.New(params...)
	if err != nil {
		return nil, err
	}
	fn := m.instance.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "export", name)
	}
	return &Export{
		fn:      fn,
		module:  m,
		name:    name,
		params:  def.ParamTypes(),
		results: def.ResultTypes(),
		sig:     sig,
	}, nil
}

func describe(def api.FunctionDefinition) ([]signature.Parameter, error) {
	types := def.ParamTypes()
	names := def.ParamNames()
	params := make([]signature.Parameter, len(types))
	for i, vt := range types {
		c, ok := constraintFor(vt)
		if !ok {
			return nil, errors.New(errors.PhaseIntrospect, errors.KindUnsupported).
				Path(def.Name()).
				Detail("parameter %d has type %s", i, api.ValueTypeName(vt)).
				Build()
		}
		name := fmt.Sprintf("p%d", i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		params[i] = signature.Param(name, c)
	}
	return params, nil
}

// Name returns the export name.
func (e *Export) Name() string { return e.name }

// Signature returns the export's signature.
func (e *Export) Signature() signature.Signature { return e.sig }

// Call encodes args onto the wasm stack and calls the export. A single
// result is returned as its Go value, several as []any, none as nil.
func (e *Export) Call(ctx context.Context, args signature.Args) (any, error) {
	stack := make([]uint64, len(e.params))
	p := 0
	for i, vt := range e.params {
		param := e.sig.At(i)
		var v any
		if p < len(args.Positional) {
			v = args.Positional[p]
			p++
		} else if nv, ok := args.Named[param.Name]; ok {
			v = nv
		} else {
			return nil, errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
				Path(e.module.name, e.name, param.Name).
				Detail("missing argument").
				Build()
		}
		enc, err := encode(param.Name, vt, v)
		if err != nil {
			return nil, err
		}
		stack[i] = enc
	}
	if p < len(args.Positional) {
		return nil, errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
			Path(e.module.name, e.name).
			Detail("%d positional arguments given, %d expected", len(args.Positional), len(e.params)).
			Build()
	}

	out, err := e.fn.Call(ctx, stack...)
	if err != nil {
		return nil, err
	}

	switch len(e.results) {
	case 0:
		return nil, nil
	case 1:
		return decode(e.results[0], out[0]), nil
	}
	vals := make([]any, len(e.results))
	for i, rt := range e.results {
		vals[i] = decode(rt, out[i])
	}
	return vals, nil
}
