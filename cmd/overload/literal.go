package main

import (
	"strconv"
	"strings"

	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/signature"
)

// parseLiteral reads a command-line argument as nil, bool, int, float64 or
// string, in that order. Quoted text is always a string.
func parseLiteral(s string) any {
	switch s {
	case "nil":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		if s[0] == '"' {
			if u, err := strconv.Unquote(s); err == nil {
				return u
			}
		}
		return s[1 : len(s)-1]
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// parseArgs builds call arguments from positional literals and key=value
// pairs.
func parseArgs(positional, named []string) (signature.Args, error) {
	args := signature.Args{Positional: make([]any, len(positional))}
	for i, s := range positional {
		args.Positional[i] = parseLiteral(s)
	}
	for _, kv := range named {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return signature.Args{}, errors.InvalidInput(errors.PhaseParse, "named argument must be key=value, got "+strconv.Quote(kv))
		}
		if args.Named == nil {
			args.Named = make(map[string]any, len(named))
		}
		if _, dup := args.Named[k]; dup {
			return signature.Args{}, errors.InvalidInput(errors.PhaseParse, "named argument "+k+" given twice")
		}
		args.Named[k] = parseLiteral(v)
	}
	return args, nil
}
