package dispatch

import (
	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/report"
	"github.com/wippyai/overload/resolve"
	"github.com/wippyai/overload/signature"
)

// OverloadError is the base of resolution failures. It carries the call
// target and the call's original arguments.
type OverloadError struct {
	Args signature.Args
	Name string
}

func (e *OverloadError) Error() string {
	return "overload error during call to " + e.Name
}

// NoMatchingOverloadError is returned when no candidate accepts a call.
// Rejections lists every candidate with its reason, in registration order.
type NoMatchingOverloadError struct {
	OverloadError
	Rejections []resolve.Binding
}

func (e *NoMatchingOverloadError) Error() string {
	return report.NoMatch(e.Name, e.Rejections)
}

func (e *NoMatchingOverloadError) Unwrap() error {
	return &e.OverloadError
}

// Is matches the structured resolve/no_match error.
func (e *NoMatchingOverloadError) Is(target error) bool {
	t, ok := target.(*errors.Error)
	return ok && t.Phase == errors.PhaseResolve && t.Kind == errors.KindNoMatch
}

// AmbiguousOverloadError is returned when more than one candidate accepts
// a call. Candidates lists the matches in registration order.
type AmbiguousOverloadError struct {
	OverloadError
	Candidates []*registry.Candidate
}

func (e *AmbiguousOverloadError) Error() string {
	return report.Ambiguous(e.Name, e.Candidates)
}

func (e *AmbiguousOverloadError) Unwrap() error {
	return &e.OverloadError
}

// Is matches the structured resolve/ambiguous error.
func (e *AmbiguousOverloadError) Is(target error) bool {
	t, ok := target.(*errors.Error)
	return ok && t.Phase == errors.PhaseResolve && t.Kind == errors.KindAmbiguous
}

var (
	// ErrNoMatch matches any NoMatchingOverloadError with errors.Is.
	ErrNoMatch = &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindNoMatch}

	// ErrAmbiguous matches any AmbiguousOverloadError with errors.Is.
	ErrAmbiguous = &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindAmbiguous}
)

// resultError converts an unsuccessful resolution into its error.
func resultError(res resolve.Result, args signature.Args) error {
	base := OverloadError{Name: res.Name, Args: args}
	switch res.Outcome {
	case resolve.Ambiguous:
		return &AmbiguousOverloadError{OverloadError: base, Candidates: res.Matches}
	case resolve.NoMatch:
		return &NoMatchingOverloadError{OverloadError: base, Rejections: res.Rejections}
	}
	return nil
}
