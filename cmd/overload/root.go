package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/overload/config"
	"github.com/wippyai/overload/dispatch"
	"github.com/wippyai/overload/host"
	"github.com/wippyai/overload/metrics"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/resolve"
	"github.com/wippyai/overload/wasmhost"
)

// app carries what every command needs after flags and config are loaded.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *prometheus.Registry

	configPath string
	color      string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "overload",
		Short:         "Runtime overload resolution toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "configuration file (yaml or json)")
	flags.StringVar(&a.color, "color", "", "colorize output (auto|on|off)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug|info|warn|error)")

	root.AddCommand(
		newDescribeCmd(a),
		newCallCmd(a),
		newRunCmd(a),
		newWasmCmd(a),
		newExploreCmd(a),
	)
	return root
}

// setup loads config, lets flags override it and installs the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.color != "" {
		cfg.CLI.Color = a.color
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	log, err := cfg.Log.NewLogger()
	if err != nil {
		return err
	}
	a.log = log
	registry.SetLogger(log.Named("registry"))
	dispatch.SetLogger(log.Named("dispatch"))
	host.SetLogger(log.Named("host"))
	wasmhost.SetLogger(log.Named("wasmhost"))

	color.NoColor = !useColor(cfg.CLI.Color, os.Stdout)
	return nil
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case config.ColorOn:
		return true
	case config.ColorOff:
		return false
	}
	return isTerminal(f) && os.Getenv("NO_COLOR") == ""
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// dispatcher builds a dispatcher over reg honouring resolve and metrics
// settings. Metrics go to a private registry exposed by a.metrics.
func (a *app) dispatcher(reg *registry.Registry) (*dispatch.Dispatcher, error) {
	opts := []dispatch.Option{
		dispatch.WithResolveOptions(resolve.CheckVariadic(a.cfg.Resolve.CheckVariadic)),
	}
	if a.cfg.Metrics.Enabled {
		if a.metrics == nil {
			a.metrics = prometheus.NewRegistry()
		}
		obs, err := metrics.NewObserver(metrics.Config{Namespace: a.cfg.Metrics.Namespace}, a.metrics)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dispatch.WithObserver(obs))
	}
	return dispatch.New(reg, opts...), nil
}

// catalog returns a dispatcher over the demo catalog.
func (a *app) catalog() (*dispatch.Dispatcher, error) {
	reg, err := newCatalog()
	if err != nil {
		return nil, err
	}
	return a.dispatcher(reg)
}
