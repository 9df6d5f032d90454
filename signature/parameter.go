package signature

import "strings"

// Parameter is one entry of a signature.
// A nil Constraint admits any value.
type Parameter struct {
	Constraint Constraint
	Name       string
	Kind       Kind
	HasDefault bool
}

// Positional declares a positional-only parameter.
func Positional(name string, c Constraint) Parameter {
	return Parameter{Name: name, Kind: PositionalOnly, Constraint: c}
}

// Param declares a parameter bound by position or by name.
func Param(name string, c Constraint) Parameter {
	return Parameter{Name: name, Kind: PositionalOrNamed, Constraint: c}
}

// Variadic declares a parameter absorbing the remaining positional arguments.
// c constrains each absorbed element.
func Variadic(name string, c Constraint) Parameter {
	return Parameter{Name: name, Kind: VarPositional, Constraint: c}
}

// Named declares a named-only parameter.
func Named(name string, c Constraint) Parameter {
	return Parameter{Name: name, Kind: NamedOnly, Constraint: c}
}

// Kwargs declares a parameter absorbing the remaining named arguments.
// c constrains each absorbed value.
func Kwargs(name string, c Constraint) Parameter {
	return Parameter{Name: name, Kind: VarNamed, Constraint: c}
}

// WithDefault returns a copy of p marked as having a default value.
func (p Parameter) WithDefault() Parameter {
	p.HasDefault = true
	return p
}

// Universal reports whether the parameter admits any value.
func (p Parameter) Universal() bool {
	return IsUniversal(p.Constraint)
}

// String renders the parameter as it appears inside a signature.
func (p Parameter) String() string {
	var b strings.Builder
	switch p.Kind {
	case VarPositional:
		b.WriteByte('*')
	case VarNamed:
		b.WriteString("**")
	}
	b.WriteString(p.Name)
	if !p.Universal() {
		b.WriteByte(' ')
		b.WriteString(p.Constraint.String())
	}
	if p.HasDefault {
		b.WriteString(" = ...")
	}
	return b.String()
}
