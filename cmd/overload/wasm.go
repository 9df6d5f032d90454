package main

import (
	"fortio.org/safecast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/wasmhost"
)

func newWasmCmd(a *app) *cobra.Command {
	var (
		call      string
		namespace string
		named     []string
		memPages  uint32
		exact     bool
	)
	cmd := &cobra.Command{
		Use:   "wasm <module.wasm>... [--call export -- arg...]",
		Short: "Load core wasm modules as overload candidates",
		Long: `Load core wasm modules and register their exports under a shared
namespace, so that exports with the same name in different modules overload
each other. Without --call the resulting overload sets are listed.`,
		Example: `  overload wasm add_i32.wasm add_f64.wasm
  overload wasm add_i32.wasm add_f64.wasm --call add -- 2.5 0.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			ctx := cmd.Context()
			modules, callArgs := argv, []string(nil)
			if call != "" {
				if dash := cmd.ArgsLenAtDash(); dash >= 0 {
					modules, callArgs = argv[:dash], argv[dash:]
				}
			}

			loader := wasmhost.NewLoader(ctx, &wasmhost.Config{MemoryLimitPages: memPages})
			defer func() {
				if err := loader.Close(ctx); err != nil {
					a.log.Warn("close wasm runtime", zap.Error(err))
				}
			}()

			b := binder.Union
			if exact {
				b = binder.Exact
			}
			reg := registry.New()
			for _, path := range modules {
				m, err := loader.LoadFile(ctx, path, "")
				if err != nil {
					return err
				}
				if _, err := m.Register(reg, namespace, b); err != nil {
					return err
				}
			}

			if call == "" {
				sets, err := describeSets(reg, nil)
				if err != nil {
					return err
				}
				return writeText(cmd.OutOrStdout(), sets)
			}

			args, err := parseArgs(callArgs, named)
			if err != nil {
				return err
			}
			args.Positional = sizeForWasm(args.Positional)
			for k, v := range args.Named {
				args.Named[k] = sizeForWasm([]any{v})[0]
			}

			d, err := a.dispatcher(reg)
			if err != nil {
				return err
			}
			return invoke(cmd, d, namespace+"."+call, args)
		},
	}
	cmd.Flags().StringVar(&call, "call", "", "export to call; its arguments follow --")
	cmd.Flags().StringVar(&namespace, "namespace", "wasm", "namespace for every module's exports")
	cmd.Flags().StringArrayVarP(&named, "named", "n", nil, "named argument key=value (repeatable)")
	cmd.Flags().Uint32Var(&memPages, "memory-pages", 0, "memory limit per module in 64 KiB pages")
	cmd.Flags().BoolVar(&exact, "exact", false, "use the exact binder instead of union")
	return cmd
}

// sizeForWasm narrows parsed int literals to int32 when they fit so that
// i32 exports accept them; larger values become int64.
func sizeForWasm(vals []any) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		n, ok := v.(int)
		if !ok {
			out[i] = v
			continue
		}
		if n32, err := safecast.Conv[int32](n); err == nil {
			out[i] = n32
		} else {
			out[i] = int64(n)
		}
	}
	return out
}
