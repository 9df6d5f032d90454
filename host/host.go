package host

import (
	"reflect"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/registry"
)

// Source is recorded on candidates registered from Go functions.
const Source = "go"

// Host is the interface for struct-based candidate providers.
// All exported methods (except the ones of the interfaces in this file) are
// registered as candidates named "<namespace>.<kebab-case method name>".
// Several hosts sharing a namespace overload each other's methods.
type Host interface {
	// Namespace returns the prefix of every name the host registers (e.g. "geo").
	Namespace() string
}

// ExplicitRegistrar allows hosts to provide exact candidate names and
// functions when automatic PascalCase-to-kebab-case conversion doesn't apply.
type ExplicitRegistrar interface {
	Register() map[string]any
}

// ParamNamer allows hosts to name method parameters. Keys are the
// kebab-case function names; values list the parameter names in order,
// excluding a leading context.
type ParamNamer interface {
	ParamNames() map[string][]string
}

var reservedMethods = map[string]bool{
	"Namespace":  true,
	"Register":   true,
	"ParamNames": true,
}

// RegisterFunc describes fn and registers it under name with binder b.
func RegisterFunc(reg *registry.Registry, name string, b binder.Binder, fn any, opts ...FuncOption) (*registry.Candidate, error) {
	f, ok := fn.(*Func)
	if !ok {
		var err error
		f, err = NewFunc(fn, opts...)
		if err != nil {
			return nil, errors.Registration(name, err)
		}
	}
	return reg.Register(name, f.Signature(), b, f, registry.WithSource(Source))
}

// RegisterHost registers every function of h under its namespace, in
// method name order, and returns the created candidates. If any function
// cannot be described, nothing is registered.
func RegisterHost(reg *registry.Registry, b binder.Binder, h Host) ([]*registry.Candidate, error) {
	ns := h.Namespace()
	if ns == "" {
		return nil, errors.InvalidInput(errors.PhaseRegister, "namespace cannot be empty")
	}

	var names map[string][]string
	if pn, ok := h.(ParamNamer); ok {
		names = pn.ParamNames()
	}

	funcs := make(map[string]any)
	if er, ok := h.(ExplicitRegistrar); ok {
		for name, fn := range er.Register() {
			funcs[name] = fn
		}
	} else {
		rv := reflect.ValueOf(h)
		rt := rv.Type()
		for i := 0; i < rt.NumMethod(); i++ {
			method := rt.Method(i)
			if !method.IsExported() || reservedMethods[method.Name] {
				continue
			}
			funcs[toKebabCase(method.Name)] = rv.Method(i).Interface()
		}
	}

	keys := make([]string, 0, len(funcs))
	for k := range funcs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Describe everything before registering anything: a host is added
	// whole or not at all.
	described := make([]*Func, len(keys))
	for i, fnName := range keys {
		var opts []FuncOption
		if n, ok := names[fnName]; ok {
			opts = append(opts, WithNames(n...))
		}
		f, ok := funcs[fnName].(*Func)
		if !ok {
			var err error
			f, err = NewFunc(funcs[fnName], opts...)
			if err != nil {
				return nil, errors.Registration(ns+"."+fnName, err)
			}
		}
		described[i] = f
	}
	if b == nil {
		return nil, errors.Registration(ns, errors.InvalidInput(errors.PhaseRegister, "binder cannot be nil"))
	}

	out := make([]*registry.Candidate, 0, len(keys))
	for i, fnName := range keys {
		c, err := RegisterFunc(reg, ns+"."+fnName, b, described[i])
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}

	Logger().Debug("registered host",
		zap.String("namespace", ns),
		zap.Int("functions", len(out)),
		zap.String("binder", binder.Name(b)))
	return out, nil
}

// toKebabCase converts PascalCase to kebab-case.
// Acronyms stay whole: GetHTTPServer -> get-http-server. Adjacent
// acronyms cannot be told apart: GetHTTPURL -> get-httpurl.
func toKebabCase(s string) string {
	if len(s) == 0 {
		return ""
	}

	runes := []rune(s)
	var result strings.Builder

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if unicode.IsUpper(r) {
			acronymEnd := i + 1
			for acronymEnd < len(runes) && unicode.IsUpper(runes[acronymEnd]) {
				acronymEnd++
			}

			if acronymEnd > i+1 {
				// Last uppercase before lowercase starts next word, not part of acronym
				if acronymEnd < len(runes) && unicode.IsLower(runes[acronymEnd]) {
					acronymEnd--
				}
			}

			if i > 0 {
				result.WriteByte('-')
			}

			for j := i; j < acronymEnd; j++ {
				result.WriteRune(unicode.ToLower(runes[j]))
			}
			i = acronymEnd - 1
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
