package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/overload/dispatch"
	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/metrics"
	"github.com/wippyai/overload/resolve"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D6B")).
			Padding(0, 1)

	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	sigStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#2E7D6B"))
	acceptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	rejectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type exploreState int

const (
	stateSelectSet exploreState = iota
	stateInputArgs
	stateShowResult
)

type exploreModel struct {
	d        *dispatch.Dispatcher
	outcome  *callOutcome
	sets     []setInfo
	input    textinput.Model
	selected int
	state    exploreState
}

// callOutcome is one resolution with the invocation result when resolved.
type callOutcome struct {
	err    error
	value  any
	call   string
	result resolve.Result
}

type outcomeMsg struct {
	outcome *callOutcome
}

func newExploreModel(d *dispatch.Dispatcher, sets []setInfo) *exploreModel {
	ti := textinput.New()
	ti.Placeholder = `2 3   or   2.5 h=4   or   "text" strict=true`
	ti.Prompt = "args: "
	ti.Width = 60
	return &exploreModel{d: d, sets: sets, input: ti, state: stateSelectSet}
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectSet && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.state == stateSelectSet && m.selected < len(m.sets)-1 {
				m.selected++
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateSelectSet:
				if len(m.sets) == 0 {
					return m, nil
				}
				m.state = stateInputArgs
				m.input.SetValue("")
				return m, m.input.Focus()

			case stateInputArgs:
				return m, m.call(m.sets[m.selected].Name, m.input.Value())

			case stateShowResult:
				m.state = stateInputArgs
				m.outcome = nil
				return m, m.input.Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs, stateShowResult:
				m.state = stateSelectSet
				m.outcome = nil
				m.input.Blur()
				return m, nil
			}
		}

	case outcomeMsg:
		m.outcome = msg.outcome
		m.state = stateShowResult
		m.input.Blur()
		return m, nil
	}

	if m.state == stateInputArgs {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *exploreModel) call(name, line string) tea.Cmd {
	d := m.d
	return func() tea.Msg {
		out := &callOutcome{call: name + "(" + line + ")"}
		pos, named, err := splitArgs(line)
		if err != nil {
			out.err = err
			return outcomeMsg{outcome: out}
		}
		args, err := parseArgs(pos, named)
		if err != nil {
			out.err = err
			return outcomeMsg{outcome: out}
		}
		out.call = name + args.String()
		out.result, err = d.Explain(name, args)
		if err != nil {
			out.err = err
			return outcomeMsg{outcome: out}
		}
		if out.result.Outcome == resolve.Resolved {
			out.value, out.err = d.Invoke(context.Background(), name, args)
		}
		return outcomeMsg{outcome: out}
	}
}

// splitArgs splits a line on spaces, keeping quoted text together. Tokens
// of the form key=value with an identifier key are named arguments.
func splitArgs(line string) (positional, named []string, err error) {
	var (
		tok    strings.Builder
		quote  rune
		inTok  bool
		tokens []string
	)
	for _, r := range line {
		switch {
		case quote != 0:
			tok.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
			inTok = true
			tok.WriteRune(r)
		case r == ' ' || r == '\t':
			if inTok {
				tokens = append(tokens, tok.String())
				tok.Reset()
				inTok = false
			}
		default:
			inTok = true
			tok.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, nil, errors.InvalidInput(errors.PhaseParse, "unterminated quote")
	}
	if inTok {
		tokens = append(tokens, tok.String())
	}

	for _, t := range tokens {
		if k, _, ok := strings.Cut(t, "="); ok && isIdent(k) {
			named = append(named, t)
			continue
		}
		positional = append(positional, t)
	}
	return positional, named, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !letter && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func (m *exploreModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Overload Explorer"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectSet:
		b.WriteString("Select an overload set:\n\n")
		for i, s := range m.sets {
			line := fmt.Sprintf("%s (%d)", s.Name, len(s.Candidates))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + nameStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		m.writeSet(&b)
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter resolve • esc back"))

	case stateShowResult:
		m.writeOutcome(&b)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter new call • esc back • q quit"))
	}
	return b.String()
}

func (m *exploreModel) writeSet(b *strings.Builder) {
	s := m.sets[m.selected]
	b.WriteString(nameStyle.Render(s.Name))
	b.WriteString("\n")
	for _, c := range s.Candidates {
		b.WriteString("  ")
		b.WriteString(sigStyle.Render(c.Signature))
		b.WriteString("\n")
	}
}

func (m *exploreModel) writeOutcome(b *strings.Builder) {
	o := m.outcome
	b.WriteString(nameStyle.Render(o.call))
	b.WriteString("\n\n")

	for _, binding := range o.result.Bindings {
		line := binding.Candidate.String()
		if binding.Accepted {
			b.WriteString(acceptStyle.Render("  ✓ " + line))
		} else {
			b.WriteString(rejectStyle.Render("  ✗ " + line + ": " + binding.Reason.String()))
		}
		b.WriteString("\n")
	}
	if len(o.result.Bindings) > 0 {
		b.WriteString("\n")
	}

	switch {
	case o.err != nil:
		b.WriteString(rejectStyle.Render(o.err.Error()))
	case o.result.Outcome == resolve.Resolved:
		b.WriteString(acceptStyle.Render(fmt.Sprintf("= %v", o.value)))
	default:
		b.WriteString(rejectStyle.Render(o.result.Outcome.String()))
	}
	b.WriteString("\n")
}

func newExploreCmd(a *app) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Interactively resolve calls against the demo catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.Unsupported(errors.PhaseInvoke, "explore needs an interactive terminal")
			}
			if metricsAddr != "" {
				a.cfg.Metrics.Addr = metricsAddr
			}
			if a.cfg.Metrics.Addr != "" {
				a.cfg.Metrics.Enabled = true
			}

			d, err := a.catalog()
			if err != nil {
				return err
			}
			sets, err := describeSets(d.Registry(), nil)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if a.cfg.Metrics.Enabled && a.cfg.Metrics.Addr != "" {
				go func() {
					if err := metrics.Serve(ctx, a.cfg.Metrics.Addr, a.metrics, a.log); err != nil {
						a.log.Error("metrics server", zap.Error(err))
					}
				}()
			}

			p := tea.NewProgram(newExploreModel(d, sets), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while exploring")
	return cmd
}
