package signature

import (
	"strings"

	"github.com/wippyai/overload/errors"
)

// Signature is the ordered, immutable parameter list of one candidate.
type Signature struct {
	params []Parameter
}

// New validates params and builds a signature.
//
// Kinds must appear in declaration order (positional-only, positional-or-named,
// var-positional, named-only, var-named), each variadic kind at most once,
// and names must be unique and non-empty.
func New(params ...Parameter) (Signature, error) {
	seen := make(map[string]struct{}, len(params))
	for i, p := range params {
		if p.Name == "" {
			return Signature{}, errors.New(errors.PhaseSignature, errors.KindInvalidInput).
				Detail("parameter %d has no name", i).
				Build()
		}
		if !p.Kind.Valid() {
			return Signature{}, errors.New(errors.PhaseSignature, errors.KindInvalidInput).
				Path(p.Name).
				Detail("invalid parameter kind %d", uint8(p.Kind)).
				Build()
		}
		if _, dup := seen[p.Name]; dup {
			return Signature{}, errors.DuplicateParameter(p.Name)
		}
		seen[p.Name] = struct{}{}

		if p.Kind.Variadic() && p.HasDefault {
			return Signature{}, errors.New(errors.PhaseSignature, errors.KindInvalidInput).
				Path(p.Name).
				Detail("%s parameter cannot have a default", p.Kind).
				Build()
		}
		if i == 0 {
			continue
		}
		prev := params[i-1].Kind
		if p.Kind < prev {
			return Signature{}, errors.ParameterOrder(p.Name, p.Kind.String(), prev.String())
		}
		if p.Kind == prev && p.Kind.Variadic() {
			return Signature{}, errors.New(errors.PhaseSignature, errors.KindDuplicate).
				Path(p.Name).
				Detail("more than one %s parameter", p.Kind).
				Build()
		}
	}

	out := make([]Parameter, len(params))
	copy(out, params)
	return Signature{params: out}, nil
}

// MustNew is like New but panics on an invalid parameter list.
func MustNew(params ...Parameter) Signature {
	s, err := New(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of parameters.
func (s Signature) Len() int { return len(s.params) }

// At returns the i-th parameter.
func (s Signature) At(i int) Parameter { return s.params[i] }

// Params returns a copy of the parameter list.
func (s Signature) Params() []Parameter {
	out := make([]Parameter, len(s.params))
	copy(out, s.params)
	return out
}

// Lookup finds a parameter by name.
func (s Signature) Lookup(name string) (Parameter, int, bool) {
	for i, p := range s.params {
		if p.Name == name {
			return p, i, true
		}
	}
	return Parameter{}, -1, false
}

// VarNamed returns the var-named parameter, if declared.
func (s Signature) VarNamed() (Parameter, bool) {
	if n := len(s.params); n > 0 && s.params[n-1].Kind == VarNamed {
		return s.params[n-1], true
	}
	return Parameter{}, false
}

// String renders the signature, e.g. (x int, /, y string = ..., *rest, key bool, **opts).
// A "/" follows the last positional-only parameter and a bare "*" precedes
// named-only parameters when no var-positional parameter is declared.
func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')

	sawVarPositional := false
	first := true
	sep := func() {
		if !first {
			b.WriteString(", ")
		}
		first = false
	}

	for i, p := range s.params {
		if p.Kind == VarPositional {
			sawVarPositional = true
		}
		if p.Kind == NamedOnly && !sawVarPositional {
			sep()
			b.WriteByte('*')
			sawVarPositional = true
		}
		sep()
		b.WriteString(p.String())
		if p.Kind == PositionalOnly && (i+1 == len(s.params) || s.params[i+1].Kind != PositionalOnly) {
			b.WriteString(", /")
		}
	}

	b.WriteByte(')')
	return b.String()
}
