package resolve

import (
	"sort"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/signature"
)

// Outcome is the classification of a resolution.
type Outcome uint8

const (
	NoMatch Outcome = iota
	Resolved
	Ambiguous
)

var outcomeNames = [...]string{
	NoMatch:   "no_match",
	Resolved:  "resolved",
	Ambiguous: "ambiguous",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Binding is the outcome of matching one candidate against one call.
type Binding struct {
	Candidate *registry.Candidate
	Reason    Reason
	Accepted  bool
}

// Result classifies a call against an overload set snapshot.
//
// Bindings holds every candidate's binding in registration order. Matches
// holds the accepting candidates and Rejections the rejecting ones, both in
// registration order.
type Result struct {
	Name       string
	Bindings   []Binding
	Matches    []*registry.Candidate
	Rejections []Binding
	Outcome    Outcome
}

// Candidate returns the resolved candidate, or nil unless the outcome is Resolved.
func (r Result) Candidate() *registry.Candidate {
	if r.Outcome != Resolved {
		return nil
	}
	return r.Matches[0]
}

// Resolve matches args against every candidate of snap.
// Zero matches is NoMatch, one is Resolved and more than one is Ambiguous.
// Candidates are never ranked against each other.
func Resolve(snap registry.Snapshot, args signature.Args, opts ...Option) Result {
	o := buildOptions(opts)
	res := Result{
		Name:     snap.Name,
		Bindings: make([]Binding, 0, len(snap.Candidates)),
	}
	for _, c := range snap.Candidates {
		b := bind(c, args, o)
		res.Bindings = append(res.Bindings, b)
		if b.Accepted {
			res.Matches = append(res.Matches, c)
		} else {
			res.Rejections = append(res.Rejections, b)
		}
	}

	switch len(res.Matches) {
	case 0:
		res.Outcome = NoMatch
	case 1:
		res.Outcome = Resolved
	default:
		res.Outcome = Ambiguous
	}
	return res
}

// Bind matches args against a single candidate.
func Bind(c *registry.Candidate, args signature.Args, opts ...Option) Binding {
	return bind(c, args, buildOptions(opts))
}

// Check matches args against a signature and binder without a registered candidate.
func Check(sig signature.Signature, b binder.Binder, args signature.Args, opts ...Option) (Reason, bool) {
	return match(sig, b, args, buildOptions(opts))
}

func bind(c *registry.Candidate, args signature.Args, o options) Binding {
	reason, ok := match(c.Signature(), c.Binder(), args, o)
	return Binding{Candidate: c, Reason: reason, Accepted: ok}
}

func match(sig signature.Signature, b binder.Binder, args signature.Args, o options) (Reason, bool) {
	pos := args.Positional
	named := args.Named
	n := sig.Len()

	// Positional-only parameters that took a positional argument. A named
	// argument with the same key is reported as positional-only misuse.
	var boundPositionally map[string]bool

	i, p := 0, 0
	for ; i < n && p < len(pos); i++ {
		param := sig.At(i)
		switch param.Kind {
		case signature.NamedOnly, signature.VarNamed:
			return tooMany, false
		case signature.VarPositional:
			if o.checkVariadic {
				for _, v := range pos[p:] {
					if !accepts(b, v, param) {
						return typeMismatch(param.Name), false
					}
				}
			}
			p = len(pos)
			continue
		case signature.PositionalOrNamed:
			if _, dup := named[param.Name]; dup {
				return multiple(param.Name), false
			}
		}

		if !accepts(b, pos[p], param) {
			return typeMismatch(param.Name), false
		}
		if param.Kind == signature.PositionalOnly {
			if boundPositionally == nil {
				boundPositionally = make(map[string]bool)
			}
			boundPositionally[param.Name] = true
		}
		p++
	}
	if p < len(pos) {
		return tooMany, false
	}

	consumed := 0
	var varNamed *signature.Parameter
	for ; i < n; i++ {
		param := sig.At(i)
		switch param.Kind {
		case signature.VarPositional:
			continue
		case signature.VarNamed:
			varNamed = &param
			continue
		}

		v, present := named[param.Name]
		if !present {
			if !param.HasDefault {
				return missing(param.Name), false
			}
			continue
		}
		if param.Kind == signature.PositionalOnly {
			return positionalOnly(param.Name), false
		}
		if !accepts(b, v, param) {
			return typeMismatch(param.Name), false
		}
		consumed++
	}

	if consumed == len(named) {
		return Reason{}, true
	}

	for _, key := range leftover(sig, named) {
		if varNamed != nil {
			if o.checkVariadic && !accepts(b, named[key], *varNamed) {
				return typeMismatch(varNamed.Name), false
			}
			continue
		}
		if boundPositionally[key] {
			return positionalOnly(key), false
		}
		return unexpected(key), false
	}
	return Reason{}, true
}

// leftover returns, sorted, the named keys that name no named-capable parameter.
func leftover(sig signature.Signature, named map[string]any) []string {
	keys := make([]string, 0, len(named))
	for key := range named {
		param, _, ok := sig.Lookup(key)
		if ok && param.Kind.Named() {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func accepts(b binder.Binder, v any, param signature.Parameter) bool {
	if param.Universal() {
		return binder.Universal.Accepts(v, param.Constraint)
	}
	if b == nil {
		return false
	}
	return b.Accepts(v, param.Constraint)
}
