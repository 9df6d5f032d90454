package signature

import (
	"fmt"
	"sort"
	"strings"
)

// Args holds the arguments of one call.
type Args struct {
	Named      map[string]any
	Positional []any
}

// NewArgs returns Args with the given positional values and no named ones.
func NewArgs(positional ...any) Args {
	return Args{Positional: positional}
}

// With returns a copy of a with name bound to v.
func (a Args) With(name string, v any) Args {
	named := make(map[string]any, len(a.Named)+1)
	for k, val := range a.Named {
		named[k] = val
	}
	named[name] = v
	return Args{Positional: a.Positional, Named: named}
}

// NamedKeys returns the named argument keys in sorted order.
func (a Args) NamedKeys() []string {
	keys := make([]string, 0, len(a.Named))
	for k := range a.Named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the arguments as a call list, named arguments sorted by key.
func (a Args) String() string {
	parts := make([]string, 0, len(a.Positional)+len(a.Named))
	for _, v := range a.Positional {
		parts = append(parts, formatValue(v))
	}
	for _, k := range a.NamedKeys() {
		parts = append(parts, k+"="+formatValue(a.Named[k]))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
