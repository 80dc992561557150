// Package wasm binds the exports of a WebAssembly module as problems.
//
// Only numeric exports can be driven: parameters and results are i32, i64,
// f32 or f64, mapped to int, long, double, boolean and char descriptors.
// A declaration may be supplied to give the export a richer signature, for
// example "boolean isPrime(int n)" over an export of type (i32) -> i32.
package wasm

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/sandrolain/leetcase/pkg/functions"
	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/types"
)

// Options configures a Module.
type Options struct {
	Logger *zap.Logger
}

// Option configures a Module.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// Module is an instantiated WebAssembly module.
type Module struct {
	runtime wazero.Runtime
	mod     api.Module
	exports map[string]api.FunctionDefinition
	logger  *zap.Logger
}

// Load reads and instantiates the module at path.
func Load(ctx context.Context, path string, opts ...Option) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module: %w", err)
	}
	return New(ctx, data, opts...)
}

// New compiles and instantiates a module from its binary encoding. The
// module must not import anything. Close releases it.
func New(ctx context.Context, binary []byte, opts ...Option) (*Module, error) {
	options := Options{Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&options)
	}

	cfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	r := wazero.NewRuntimeWithConfig(ctx, cfg)

	compiled, err := r.CompileModule(ctx, binary)
	if err != nil {
		_ = r.Close(ctx)
		return nil, types.Errorf(types.ErrBinding, "invalid module").WithCause(err)
	}
	mod, err := r.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		_ = r.Close(ctx)
		return nil, types.Errorf(types.ErrBinding, "failed to instantiate module").WithCause(err)
	}

	m := &Module{
		runtime: r,
		mod:     mod,
		exports: compiled.ExportedFunctions(),
		logger:  options.Logger,
	}
	m.logger.Debug("Instantiated module", zap.Strings("exports", m.Exports()))
	return m, nil
}

// Close releases the module and its runtime.
func (m *Module) Close(ctx context.Context) error {
	return m.runtime.Close(ctx)
}

// Exports returns the exported function names, sorted.
func (m *Module) Exports() []string {
	names := make([]string, 0, len(m.exports))
	for name := range m.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Signature derives a signature from the export's value types.
func (m *Module) Signature(name string) (*types.Signature, error) {
	def, ok := m.exports[name]
	if !ok {
		return nil, types.Errorf(types.ErrSignatureNotFound, "module exports no function %s", name)
	}
	results := def.ResultTypes()
	if len(results) > 1 {
		return nil, types.Errorf(types.ErrInvalidSignature, "%s returns %d values", name, len(results))
	}

	sig := &types.Signature{Name: name, Return: types.Void()}
	for i, vt := range def.ParamTypes() {
		sig.Params = append(sig.Params, types.Param{
			Name: fmt.Sprintf("p%d", i),
			Type: types.Scalar(scalarOf(vt)),
			Decl: api.ValueTypeName(vt),
		})
	}
	if len(results) == 1 {
		sig.Return = types.Scalar(scalarOf(results[0]))
		sig.Result = api.ValueTypeName(results[0])
	}
	return sig, nil
}

// Problem binds the export name. decl, when not empty, is a declaration
// whose scalar slots replace the derived ones; its name may differ from
// the export name.
func (m *Module) Problem(name, decl string) (*functions.Problem, error) {
	sig, err := m.Signature(name)
	if err != nil {
		return nil, err
	}
	if decl != "" {
		declared, err := parser.ParseSignature(decl)
		if err != nil {
			return nil, err
		}
		if err := m.check(name, declared); err != nil {
			return nil, err
		}
		sig = declared
	}

	fn := m.mod.ExportedFunction(name)
	def := m.exports[name]
	p := &functions.Problem{
		Name:   sig.Name,
		Method: &functions.Method{Signature: sig, Invoke: invoker(fn, def, sig)},
	}
	m.logger.Debug("Bound export", zap.String("export", name), zap.Stringer("signature", sig))
	return p, nil
}

// check verifies that a declared signature fits the export.
func (m *Module) check(name string, sig *types.Signature) error {
	def := m.exports[name]
	params := def.ParamTypes()
	if len(params) != sig.Arity() {
		return types.Errorf(types.ErrInvalidSignature,
			"%s takes %d parameters, declaration has %d", name, len(params), sig.Arity())
	}
	for i, p := range sig.Params {
		if !fits(p.Type, params[i]) {
			return types.Errorf(types.ErrInvalidSignature,
				"parameter %d of %s is %s, declared %s", i+1, name, api.ValueTypeName(params[i]), p.Type)
		}
	}
	results := def.ResultTypes()
	switch {
	case sig.Return.IsVoid() && len(results) == 0:
	case len(results) == 1 && fits(sig.Return, results[0]):
	default:
		return types.Errorf(types.ErrInvalidSignature, "result of %s does not match %s", name, sig.Return)
	}
	return nil
}

func fits(d types.Descriptor, vt api.ValueType) bool {
	if !d.IsScalar() {
		return false
	}
	switch d.Elem() {
	case types.ScalarInt, types.ScalarBoolean, types.ScalarChar:
		return vt == api.ValueTypeI32 || vt == api.ValueTypeI64
	case types.ScalarLong:
		return vt == api.ValueTypeI64 || vt == api.ValueTypeI32
	case types.ScalarDouble:
		return vt == api.ValueTypeF64 || vt == api.ValueTypeF32
	}
	return false
}

func scalarOf(vt api.ValueType) types.ScalarKind {
	switch vt {
	case api.ValueTypeI64:
		return types.ScalarLong
	case api.ValueTypeF32, api.ValueTypeF64:
		return types.ScalarDouble
	default:
		return types.ScalarInt
	}
}

func invoker(fn api.Function, def api.FunctionDefinition, sig *types.Signature) functions.Invoker {
	params := def.ParamTypes()
	return func(ctx context.Context, _ any, args []any) (any, error) {
		stack := make([]uint64, len(args))
		for i, a := range args {
			v, err := encode(a, params[i])
			if err != nil {
				return nil, types.Errorf(types.ErrArgumentType, "argument %d of %s", i+1, sig.Name).WithCause(err)
			}
			stack[i] = v
		}
		out, err := fn.Call(ctx, stack...)
		if err != nil {
			return nil, types.Errorf(types.ErrInvocation, "%s trapped", sig.Name).WithCause(err)
		}
		if sig.Return.IsVoid() || len(out) == 0 {
			return nil, nil
		}
		return decode(out[0], def.ResultTypes()[0], sig.Return.Elem()), nil
	}
}

// encode converts a decoded scalar to its stack representation.
func encode(a any, vt api.ValueType) (uint64, error) {
	var i int64
	var f float64
	isFloat := false
	switch v := a.(type) {
	case int:
		i = int64(v)
	case int64:
		i = v
	case byte:
		i = int64(v)
	case bool:
		if v {
			i = 1
		}
	case float64:
		f, isFloat = v, true
	default:
		return 0, fmt.Errorf("unsupported value %T", a)
	}
	if !isFloat {
		f = float64(i)
	} else {
		i = int64(f)
	}

	switch vt {
	case api.ValueTypeI32:
		if i < math.MinInt32 || i > math.MaxInt32 {
			return 0, fmt.Errorf("%d overflows i32", i)
		}
		return api.EncodeI32(int32(i)), nil
	case api.ValueTypeI64:
		return api.EncodeI64(i), nil
	case api.ValueTypeF32:
		return api.EncodeF32(float32(f)), nil
	case api.ValueTypeF64:
		return api.EncodeF64(f), nil
	}
	return 0, fmt.Errorf("unsupported value type %s", api.ValueTypeName(vt))
}

// decode converts a stack value to the Go type the decoder produces for kind.
func decode(v uint64, vt api.ValueType, kind types.ScalarKind) any {
	var i int64
	var f float64
	switch vt {
	case api.ValueTypeI32:
		i = int64(api.DecodeI32(v))
		f = float64(i)
	case api.ValueTypeI64:
		i = int64(v)
		f = float64(i)
	case api.ValueTypeF32:
		f = float64(api.DecodeF32(v))
		i = int64(f)
	case api.ValueTypeF64:
		f = api.DecodeF64(v)
		i = int64(f)
	}

	switch kind {
	case types.ScalarLong:
		return i
	case types.ScalarDouble:
		return f
	case types.ScalarBoolean:
		return i != 0
	case types.ScalarChar:
		return byte(i)
	default:
		return int(i)
	}
}
