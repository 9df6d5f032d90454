package binder

import (
	"reflect"

	"github.com/wippyai/overload/signature"
)

var (
	// Exact accepts a value whose dynamic type is the constrained type,
	// or implements it when the type is an interface.
	// It does not understand unions and rejects them.
	Exact Binder = exact{}

	// Union accepts a value satisfying any member of a union constraint,
	// recursively. Single types are checked as by Exact.
	Union Binder = union{}

	// Universal accepts every value.
	Universal Binder = universal{}

	// Assignable accepts a value whose dynamic type is assignable to the
	// constrained type. No conversions are applied.
	Assignable Binder = assignable{}
)

type exact struct{}

func (exact) String() string { return "exact" }

func (exact) Accepts(value any, c signature.Constraint) bool {
	if signature.IsUniversal(c) {
		return true
	}
	t, ok := c.(signature.Type)
	if !ok {
		return false
	}
	return matchType(value, t.T)
}

type union struct{}

func (union) String() string { return "union" }

func (u union) Accepts(value any, c signature.Constraint) bool {
	if signature.IsUniversal(c) {
		return true
	}
	switch c := c.(type) {
	case signature.Union:
		return c.Some(func(m signature.Constraint) bool {
			return u.Accepts(value, m)
		})
	case signature.Type:
		return matchType(value, c.T)
	}
	return false
}

type universal struct{}

func (universal) String() string { return "universal" }

func (universal) Accepts(any, signature.Constraint) bool { return true }

type assignable struct{}

func (assignable) String() string { return "assignable" }

func (a assignable) Accepts(value any, c signature.Constraint) bool {
	if signature.IsUniversal(c) {
		return true
	}
	switch c := c.(type) {
	case signature.Union:
		return c.Some(func(m signature.Constraint) bool {
			return a.Accepts(value, m)
		})
	case signature.Type:
		if c.T == nil {
			return value == nil
		}
		if value == nil {
			return nillable(c.T.Kind())
		}
		return reflect.TypeOf(value).AssignableTo(c.T)
	}
	return false
}
