package signature

import (
	"reflect"
	"slices"
	"strings"
)

// Constraint describes the values a parameter admits.
// Interpretation is left to a binder; the signature only renders it.
type Constraint interface {
	String() string
}

// Type constrains a parameter to a single Go type.
type Type struct {
	T reflect.Type
}

func (t Type) String() string {
	if t.T == nil {
		return "nil"
	}
	return t.T.String()
}

// TypeOf returns the constraint for the Go type T.
func TypeOf[T any]() Type {
	return Type{T: reflect.TypeFor[T]()}
}

// TypeFor returns the constraint for t.
func TypeFor(t reflect.Type) Type {
	return Type{T: t}
}

// Union is satisfied by a value that satisfies any member.
type Union []Constraint

// MaxUnionDepth bounds how deeply nested unions are followed.
const MaxUnionDepth = 32

func (u Union) String() string {
	return u.render(nil)
}

// render prints nested unions inline. A union already being rendered,
// or nested deeper than MaxUnionDepth, prints as "...".
func (u Union) render(path []*Constraint) string {
	if len(u) == 0 {
		return ""
	}
	if len(path) >= MaxUnionDepth || slices.Contains(path, &u[0]) {
		return "..."
	}
	path = append(path, &u[0])
	parts := make([]string, len(u))
	for i, c := range u {
		switch c := c.(type) {
		case nil:
			parts[i] = Any.String()
		case Union:
			parts[i] = c.render(path)
		default:
			parts[i] = c.String()
		}
	}
	return strings.Join(parts, " | ")
}

// Some reports whether pred holds for any member of u, following nested
// unions. pred never sees a Union. A union that contains itself is not
// revisited, and nesting deeper than MaxUnionDepth is ignored.
func (u Union) Some(pred func(Constraint) bool) bool {
	return u.some(pred, nil)
}

func (u Union) some(pred func(Constraint) bool, path []*Constraint) bool {
	if len(u) == 0 || len(path) >= MaxUnionDepth || slices.Contains(path, &u[0]) {
		return false
	}
	path = append(path, &u[0])
	for _, m := range u {
		if nested, ok := m.(Union); ok {
			if nested.some(pred, path) {
				return true
			}
			continue
		}
		if pred(m) {
			return true
		}
	}
	return false
}

// OneOf builds a union constraint. Nested unions are flattened.
func OneOf(cs ...Constraint) Union {
	u := make(Union, 0, len(cs))
	for _, c := range cs {
		if nested, ok := c.(Union); ok {
			u = append(u, nested...)
			continue
		}
		u = append(u, c)
	}
	return u
}

type anyConstraint struct{}

func (anyConstraint) String() string { return "any" }

// Any admits every value.
var Any Constraint = anyConstraint{}

// IsUniversal reports whether c admits every value without consulting a binder.
func IsUniversal(c Constraint) bool {
	if c == nil {
		return true
	}
	_, ok := c.(anyConstraint)
	return ok
}
