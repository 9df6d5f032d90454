package report

import (
	"strings"

	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/resolve"
)

const indent = "  "

// ShortName returns the part of name after its last ".".
func ShortName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Line renders one candidate as <short name><signature>.
func Line(name string, c *registry.Candidate) string {
	return ShortName(name) + c.Signature().String()
}

// Ambiguous renders the diagnostic for a call accepted by several candidates:
//
//	ambiguous overloaded call to geo.area
//	Possible candidates:
//	  area(w int)
//	  area(w int)
func Ambiguous(name string, candidates []*registry.Candidate) string {
	var b strings.Builder
	b.WriteString("ambiguous overloaded call to ")
	b.WriteString(name)
	b.WriteString("\nPossible candidates:\n")
	for i, c := range candidates {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteString(Line(name, c))
	}
	return b.String()
}

// NoMatch renders the diagnostic for a call no candidate accepted, one
// line per candidate with its rejection reason:
//
//	no matching overload found for geo.area
//	Reason:
//	  area(w int): unexpected type for parameter `w`
//	  area(w float64, h float64): missing required argument `h`
func NoMatch(name string, rejections []resolve.Binding) string {
	var b strings.Builder
	b.WriteString("no matching overload found for ")
	b.WriteString(name)
	b.WriteString("\nReason:\n")
	for i, r := range rejections {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteString(Line(name, r.Candidate))
		b.WriteString(": ")
		b.WriteString(r.Reason.String())
	}
	return b.String()
}

// Describe renders every candidate of an overload set, one per line, in
// registration order.
func Describe(name string, candidates []*registry.Candidate) string {
	lines := Lines(name, candidates)
	return strings.Join(lines, "\n")
}

// Lines returns the rendered candidates of an overload set in registration order.
func Lines(name string, candidates []*registry.Candidate) []string {
	lines := make([]string, len(candidates))
	for i, c := range candidates {
		lines[i] = Line(name, c)
	}
	return lines
}

// Result renders the diagnostic for an unsuccessful resolution.
// It returns "" for a resolved call.
func Result(res resolve.Result) string {
	switch res.Outcome {
	case resolve.Ambiguous:
		return Ambiguous(res.Name, res.Matches)
	case resolve.NoMatch:
		return NoMatch(res.Name, res.Rejections)
	}
	return ""
}
