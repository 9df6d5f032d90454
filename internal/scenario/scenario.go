package scenario

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"fortio.org/safecast"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/signature"
)

// Expected outcomes of a call.
const (
	OutcomeResolved  = "resolved"
	OutcomeNoMatch   = "no_match"
	OutcomeAmbiguous = "ambiguous"
	OutcomeError     = "error"
)

// Expect describes what a call should produce. An empty Outcome means
// resolved. Result is compared only when set; Error is a substring of the
// error text.
type Expect struct {
	Result  any    `yaml:"result,omitempty" toml:"result,omitempty"`
	Outcome string `yaml:"outcome,omitempty" toml:"outcome,omitempty"`
	Error   string `yaml:"error,omitempty" toml:"error,omitempty"`
}

// Call is one dispatched call.
type Call struct {
	Named  map[string]any `yaml:"named,omitempty" toml:"named,omitempty"`
	Name   string         `yaml:"name,omitempty" toml:"name,omitempty"`
	Target string         `yaml:"call" toml:"call"`
	Args   []any          `yaml:"args,omitempty" toml:"args,omitempty"`
	Expect Expect         `yaml:"expect" toml:"expect"`
}

// Label is the call's name, or its target when unnamed.
func (c Call) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Target
}

// Arguments converts the call's literals into dispatch arguments.
func (c Call) Arguments() signature.Args {
	args := signature.Args{Positional: make([]any, len(c.Args))}
	for i, v := range c.Args {
		args.Positional[i] = normalize(v)
	}
	if len(c.Named) > 0 {
		args.Named = make(map[string]any, len(c.Named))
		for k, v := range c.Named {
			args.Named[k] = normalize(v)
		}
	}
	return args
}

// File is a named list of calls.
type File struct {
	Name  string `yaml:"name" toml:"name"`
	Calls []Call `yaml:"calls" toml:"calls"`
}

// Format is a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}
	return "", false
}

// Load reads a scenario file, yaml or toml by extension.
func Load(path string) (*File, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.Unsupported(errors.PhaseParse, "scenario format "+filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ParseFailed(path, err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Parse decodes a scenario.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.ParseFailed("yaml scenario", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.ParseFailed("toml scenario", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.InvalidData(errors.PhaseParse, []string{undecoded[0].String()}, "unknown key")
		}
	default:
		return nil, errors.Unsupported(errors.PhaseParse, "scenario format "+string(format))
	}

	for i, c := range f.Calls {
		if c.Target == "" {
			return nil, errors.InvalidData(errors.PhaseParse, []string{"calls", c.Label()}, "call target is required")
		}
		switch c.Expect.Outcome {
		case "":
			f.Calls[i].Expect.Outcome = OutcomeResolved
		case OutcomeResolved, OutcomeNoMatch, OutcomeAmbiguous, OutcomeError:
		default:
			return nil, errors.InvalidData(errors.PhaseParse, []string{"calls", c.Label(), "expect"}, "unknown outcome "+c.Expect.Outcome)
		}
	}
	return &f, nil
}

// normalize maps decoder representations onto the Go types a host catalog
// declares: TOML integers decode as int64 and become int when they fit.
func normalize(v any) any {
	switch x := v.(type) {
	case int64:
		if n, err := safecast.Conv[int](x); err == nil {
			return n
		}
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}
