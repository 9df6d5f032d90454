package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/report"
	"github.com/wippyai/overload/signature"
)

// setInfo is the exported view of an overload set.
type setInfo struct {
	Name       string          `json:"name" yaml:"name" msgpack:"name"`
	Candidates []candidateInfo `json:"candidates" yaml:"candidates" msgpack:"candidates"`
}

type candidateInfo struct {
	ID        string      `json:"id" yaml:"id" msgpack:"id"`
	Signature string      `json:"signature" yaml:"signature" msgpack:"signature"`
	Binder    string      `json:"binder" yaml:"binder" msgpack:"binder"`
	Source    string      `json:"source,omitempty" yaml:"source,omitempty" msgpack:"source,omitempty"`
	Params    []paramInfo `json:"params" yaml:"params" msgpack:"params"`
	Index     int         `json:"index" yaml:"index" msgpack:"index"`
}

type paramInfo struct {
	Name       string `json:"name" yaml:"name" msgpack:"name"`
	Kind       string `json:"kind" yaml:"kind" msgpack:"kind"`
	Constraint string `json:"constraint,omitempty" yaml:"constraint,omitempty" msgpack:"constraint,omitempty"`
	HasDefault bool   `json:"has_default,omitempty" yaml:"has_default,omitempty" msgpack:"has_default,omitempty"`
}

func describeSets(reg *registry.Registry, names []string) ([]setInfo, error) {
	if len(names) == 0 {
		names = reg.Names()
	}
	out := make([]setInfo, 0, len(names))
	for _, name := range names {
		snap, ok := reg.Snapshot(name)
		if !ok {
			return nil, errors.NotFound(errors.PhaseResolve, "overload set", name)
		}
		info := setInfo{Name: name, Candidates: make([]candidateInfo, len(snap.Candidates))}
		for i, c := range snap.Candidates {
			info.Candidates[i] = candidateFor(c)
		}
		out = append(out, info)
	}
	return out, nil
}

func candidateFor(c *registry.Candidate) candidateInfo {
	params := c.Signature().Params()
	ci := candidateInfo{
		ID:        c.ID().String(),
		Index:     c.Index(),
		Signature: report.Line(c.Name(), c),
		Binder:    binder.Name(c.Binder()),
		Source:    c.Source(),
		Params:    make([]paramInfo, len(params)),
	}
	for i, p := range params {
		pi := paramInfo{Name: p.Name, Kind: p.Kind.String(), HasDefault: p.HasDefault}
		if !signature.IsUniversal(p.Constraint) {
			pi.Constraint = p.Constraint.String()
		}
		ci.Params[i] = pi
	}
	return ci
}

func newDescribeCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "describe [name...]",
		Short: "List overload sets and their candidate signatures",
		RunE: func(cmd *cobra.Command, names []string) error {
			reg, err := newCatalog()
			if err != nil {
				return err
			}
			sets, err := describeSets(reg, names)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return writeSets(w, format, sets)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text|json|yaml|msgpack)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func writeSets(w io.Writer, format string, sets []setInfo) error {
	switch format {
	case "text":
		return writeText(w, sets)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sets)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sets); err != nil {
			return err
		}
		return enc.Close()
	case "msgpack":
		enc := msgpack.NewEncoder(w)
		enc.UseCompactInts(true)
		return enc.Encode(sets)
	}
	return errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("unknown format %q", format))
}

var (
	setColor    = color.New(color.FgCyan, color.Bold)
	sourceColor = color.New(color.Faint)
)

// writeText prints one block per set with signatures aligned on the
// source column.
func writeText(w io.Writer, sets []setInfo) error {
	width := 0
	for _, s := range sets {
		for _, c := range s.Candidates {
			width = max(width, runewidth.StringWidth(c.Signature))
		}
	}

	var b strings.Builder
	for i, s := range sets {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(setColor.Sprint(s.Name))
		b.WriteByte('\n')
		for _, c := range s.Candidates {
			fmt.Fprintf(&b, "  %d. ", c.Index+1)
			if c.Source == "" {
				b.WriteString(c.Signature)
			} else {
				b.WriteString(runewidth.FillRight(c.Signature, width))
				b.WriteString("  " + sourceColor.Sprintf("[%s, %s]", c.Source, c.Binder))
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
