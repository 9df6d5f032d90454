package wasmhost

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/overload/binder"
	"github.com/wippyai/overload/errors"
	"github.com/wippyai/overload/registry"
	"github.com/wippyai/overload/signature"
)

// Config holds loader configuration.
type Config struct {
	// MemoryLimitPages caps each module's memory (64 KiB pages). Zero keeps
	// the wazero default.
	MemoryLimitPages uint32
}

// Loader compiles and instantiates core wasm modules whose exported
// functions become overload candidates.
type Loader struct {
	runtime wazero.Runtime
	modules []*Module
	mu      sync.Mutex
}

// Module is an instantiated wasm module.
type Module struct {
	instance api.Module
	name     string
	exports  []*Export
}

// NewLoader creates a loader backed by a new wazero runtime.
// Calls into loaded modules stop when their context is cancelled.
func NewLoader(ctx context.Context, cfg *Config) *Loader {
	runtimeCfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &Loader{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}
}

// LoadFile reads and loads a module from disk. The module is named after
// the file, without directory or extension, unless name is given.
func (l *Loader) LoadFile(ctx context.Context, path, name string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("read %s", path), err)
	}
	if name == "" {
		name = moduleName(path)
	}
	return l.Load(ctx, name, data)
}

// Load compiles and instantiates wasmBytes.
// Modules must not import functions. Exports whose parameters or results
// are not numeric are skipped.
func (l *Loader) Load(ctx context.Context, name string, wasmBytes []byte) (*Module, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, "module name cannot be empty")
	}

	compiled, err := l.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("compile %s", name), err)
	}

	if imports := compiled.ImportedFunctions(); len(imports) > 0 {
		missing := make([]string, len(imports))
		for i, def := range imports {
			mod, fn, _ := def.Import()
			missing[i] = mod + "#" + fn
		}
		_ = compiled.Close(ctx)
		return nil, errors.New(errors.PhaseLoad, errors.KindUnsupported).
			Path(name).
			Detail("module imports functions: %s", strings.Join(missing, ", ")).
			Build()
	}

	// anonymous instance so the same module can be loaded more than once
	instance, err := l.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Load(fmt.Sprintf("instantiate %s", name), err)
	}

	m := &Module{name: name, instance: instance}

	defs := compiled.ExportedFunctions()
	exportNames := make([]string, 0, len(defs))
	for exportName := range defs {
		exportNames = append(exportNames, exportName)
	}
	sort.Strings(exportNames)

	for _, exportName := range exportNames {
		exp, err := newExport(m, exportName, defs[exportName])
		if err != nil {
			Logger().Debug("skipping export",
				zap.String("module", name),
				zap.String("export", exportName),
				zap.Error(err))
			continue
		}
		m.exports = append(m.exports, exp)
	}

	l.mu.Lock()
	l.modules = append(l.modules, m)
	l.mu.Unlock()

	Logger().Debug("loaded module",
		zap.String("module", name),
		zap.Int("exports", len(m.exports)))
	return m, nil
}

// Close releases every loaded module and the runtime.
func (l *Loader) Close(ctx context.Context) error {
	l.mu.Lock()
	l.modules = nil
	l.mu.Unlock()
	return l.runtime.Close(ctx)
}

// Modules returns the loaded modules in load order.
func (l *Loader) Modules() []*Module {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Module, len(l.modules))
	copy(out, l.modules)
	return out
}

// Name returns the module name given at load time.
func (m *Module) Name() string { return m.name }

// Exports returns the callable exports in name order.
func (m *Module) Exports() []*Export { return m.exports }

// Export returns the export with the given name.
func (m *Module) Export(name string) (*Export, bool) {
	for _, e := range m.exports {
		if e.name == name {
			return e, true
		}
	}
	return nil, false
}

// Register registers every export as a candidate named
// "<namespace>.<export>". The namespace defaults to the module name and
// the binder to binder.Union, since integer parameters admit both signed
// and unsigned Go types.
func (m *Module) Register(reg *registry.Registry, namespace string, b binder.Binder) ([]*registry.Candidate, error) {
	if namespace == "" {
		namespace = m.name
	}
	if b == nil {
		b = binder.Union
	}
	out := make([]*registry.Candidate, 0, len(m.exports))
	for _, e := range m.exports {
		c, err := reg.Register(namespace+"."+e.name, e.sig, b, e, registry.WithSource("wasm:"+m.name))
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Describer describes wasm exports. It accepts an *Export or an
// api.FunctionDefinition.
type Describer struct{}

var _ signature.Describer = Describer{}

func (Describer) DescribeParameters(callable any) ([]signature.Parameter, error) {
	switch c := callable.(type) {
	case *Export:
		return c.sig.Params(), nil
	case api.FunctionDefinition:
		return describe(c)
	}
	return nil, errors.Introspection(fmt.Sprintf("%T", callable), "not a wasm function")
}

func moduleName(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
