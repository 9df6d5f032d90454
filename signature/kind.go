package signature

// Kind is the calling convention of a parameter.
// Kinds are declared in the order they must appear in a signature.
type Kind uint8

const (
	PositionalOnly    Kind = iota // bound only by position
	PositionalOrNamed             // bound by position or by name
	VarPositional                 // absorbs remaining positional arguments
	NamedOnly                     // bound only by name
	VarNamed                      // absorbs remaining named arguments
)

var kindNames = [...]string{
	PositionalOnly:    "positional-only",
	PositionalOrNamed: "positional-or-named",
	VarPositional:     "var-positional",
	NamedOnly:         "named-only",
	VarNamed:          "var-named",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k <= VarNamed }

// Positional reports whether a parameter of this kind can take a positional argument.
func (k Kind) Positional() bool {
	return k == PositionalOnly || k == PositionalOrNamed || k == VarPositional
}

// Named reports whether a parameter of this kind can be bound by its own name.
func (k Kind) Named() bool {
	return k == PositionalOrNamed || k == NamedOnly
}

// Variadic reports whether the kind absorbs an unbounded number of arguments.
func (k Kind) Variadic() bool {
	return k == VarPositional || k == VarNamed
}
