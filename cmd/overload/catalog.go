package main

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/host"
	"github.com/wippyai/overload/registry"
)

// intGeo and floatGeo overload the geo namespace by parameter type.
type intGeo struct{}

func (intGeo) Namespace() string { return "geo" }

func (intGeo) ParamNames() map[string][]string {
	return map[string][]string{
		"area":  {"w", "h"},
		"scale": {"v", "factor"},
	}
}

func (intGeo) Area(w, h int) int { return w * h }

func (intGeo) Scale(v, factor int) int { return v * factor }

type floatGeo struct{}

func (floatGeo) Namespace() string { return "geo" }

func (floatGeo) ParamNames() map[string][]string {
	return map[string][]string{
		"area":  {"w", "h"},
		"scale": {"v", "factor"},
	}
}

func (floatGeo) Area(w, h float64) float64 { return w * h }

func (floatGeo) Scale(v, factor float64) float64 { return v * factor }

// newCatalog builds the demo overload sets used by describe, call, run
// and explore.
func newCatalog() (*registry.Registry, error) {
	reg := registry.New()

	for _, h := range []host.Host{intGeo{}, floatGeo{}} {
		if _, err := host.RegisterHost(reg, binder.Union, h); err != nil {
			return nil, err
		}
	}

	funcs := []struct {
		name string
		fn   any
		opts []host.FuncOption
	}{
		{"demo.func", func(x, y any) string { return fmt.Sprintf("pair(%v, %v)", x, y) }, []host.FuncOption{host.WithNames("x", "y")}},
		{"demo.func", func(val string) string { return "string(" + val + ")" }, []host.FuncOption{host.WithNames("val")}},
		{"demo.func", func(val bool) string { return fmt.Sprintf("flag(%t)", val) }, []host.FuncOption{host.WithNames("val")}},

		{"geo.circle", func(r float64) float64 { return math.Pi * r * r }, []host.FuncOption{host.WithNames("r")}},
		{
			"geo.rect", func(w, h float64) float64 { return w * h },
			[]host.FuncOption{host.WithNames("w", "h"), host.WithDefault("h", 1.0)},
		},

		{"math.max", maxOf[int], []host.FuncOption{host.WithNames("xs")}},
		{"math.max", maxOf[float64], []host.FuncOption{host.WithNames("xs")}},
		{
			"math.pow", math.Pow,
			[]host.FuncOption{host.WithNames("base", "exp"), host.WithPositionalOnly(1)},
		},

		{"text.join", joinText, []host.FuncOption{host.WithNames("sep", "parts")}},
		{"text.format", formatText, []host.FuncOption{host.WithNames("template", "values")}},
		{
			"text.repeat", strings.Repeat,
			[]host.FuncOption{host.WithNames("s", "count"), host.WithNamedOnly("count")},
		},
		{"text.upper", strings.ToUpper, []host.FuncOption{host.WithNames("s")}},
		{"text.upper", upperContext, []host.FuncOption{host.WithNames("s", "strict")}},
	}
	for _, f := range funcs {
		if _, err := host.RegisterFunc(reg, f.name, binder.Union, f.fn, f.opts...); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func maxOf[T int | float64](xs ...T) (T, error) {
	if len(xs) == 0 {
		var zero T
		return zero, fmt.Errorf("max of no values")
	}
	m := xs[0]
	for _, x := range xs[1:] {
		m = max(m, x)
	}
	return m, nil
}

func joinText(sep string, parts ...string) string {
	return strings.Join(parts, sep)
}

// formatText replaces {key} in template with the named values, in key order.
func formatText(template string, values host.Kwargs) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		template = strings.ReplaceAll(template, "{"+k+"}", fmt.Sprint(values[k]))
	}
	return template
}

func upperContext(ctx context.Context, s string, strict bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strict && strings.ToUpper(s) == s {
		return "", fmt.Errorf("%q is already upper case", s)
	}
	return strings.ToUpper(s), nil
}
