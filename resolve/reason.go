package resolve

import "fmt"

// ReasonCode classifies why a candidate rejected a call.
type ReasonCode uint8

const (
	ReasonNone ReasonCode = iota
	ReasonTypeMismatch
	ReasonMissingArgument
	ReasonTooManyPositional
	ReasonMultipleValues
	ReasonPositionalOnly
	ReasonUnexpectedNamed
)

var reasonCodeNames = [...]string{
	ReasonNone:              "none",
	ReasonTypeMismatch:      "type_mismatch",
	ReasonMissingArgument:   "missing_argument",
	ReasonTooManyPositional: "too_many_positional",
	ReasonMultipleValues:    "multiple_values",
	ReasonPositionalOnly:    "positional_only",
	ReasonUnexpectedNamed:   "unexpected_named",
}

func (c ReasonCode) String() string {
	if int(c) < len(reasonCodeNames) {
		return reasonCodeNames[c]
	}
	return "unknown"
}

// Reason is a candidate's rejection of one call.
// Subject is the parameter name or named-argument key the reason refers to.
type Reason struct {
	Subject string
	Code    ReasonCode
}

func (r Reason) String() string {
	switch r.Code {
	case ReasonNone:
		return ""
	case ReasonTypeMismatch:
		return fmt.Sprintf("unexpected type for parameter `%s`", r.Subject)
	case ReasonMissingArgument:
		return fmt.Sprintf("missing required argument `%s`", r.Subject)
	case ReasonTooManyPositional:
		return "too many positional arguments"
	case ReasonMultipleValues:
		return fmt.Sprintf("multiple values for parameter `%s`", r.Subject)
	case ReasonPositionalOnly:
		return fmt.Sprintf("parameter `%s` is positional-only", r.Subject)
	case ReasonUnexpectedNamed:
		return fmt.Sprintf("unexpected named argument `%s`", r.Subject)
	}
	return fmt.Sprintf("rejected (%s)", r.Code)
}

func typeMismatch(name string) Reason {
	return Reason{Code: ReasonTypeMismatch, Subject: name}
}

func missing(name string) Reason {
	return Reason{Code: ReasonMissingArgument, Subject: name}
}

func multiple(name string) Reason {
	return Reason{Code: ReasonMultipleValues, Subject: name}
}

func positionalOnly(name string) Reason {
	return Reason{Code: ReasonPositionalOnly, Subject: name}
}

func unexpected(key string) Reason {
	return Reason{Code: ReasonUnexpectedNamed, Subject: key}
}

var tooMany = Reason{Code: ReasonTooManyPositional}
