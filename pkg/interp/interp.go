// Package interp binds Go solution files to the engine without compiling
// them: the file is interpreted with yaegi and its functions are bound by
// name, with signatures read from their declarations.
//
// Solutions are usually written as plain files without a package clause,
// using TreeNode and ListNode without declaring them. Both are provided: a
// missing package clause defaults to main and the node types are aliased to
// the ones the decoder builds.
//
// Designs are bound through generated shims: for a type T with a
// Constructor (or NewT) function, every method of T gets a package level
// wrapper taking *T, which is what the engine calls.
package interp

import (
	"fmt"
	"os"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"

	"github.com/sandrolain/leetcase/pkg/functions"
	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/types"
)

// typesPath is the import path the node aliases resolve to.
const typesPath = "github.com/sandrolain/leetcase/pkg/types"

// Symbols exports the node types to interpreted code.
var Symbols = interp.Exports{
	typesPath + "/types": {
		"TreeNode": reflect.ValueOf((*types.TreeNode)(nil)),
		"ListNode": reflect.ValueOf((*types.ListNode)(nil)),
	},
}

// Options configures a Solution.
type Options struct {
	Logger   *zap.Logger
	Registry *functions.Registry
}

// Option configures a Solution.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithRegistry adds every bound problem and design to reg.
func WithRegistry(reg *functions.Registry) Option {
	return func(opts *Options) {
		opts.Registry = reg
	}
}

// Solution is an interpreted solution file.
type Solution struct {
	Path   string
	source string
	pkg    string
	interp *interp.Interpreter
	opts   Options
	logger *zap.Logger
}

// Load reads and interprets the solution at path.
func Load(path string, opts ...Option) (*Solution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read solution: %w", err)
	}
	s, err := LoadSource(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// LoadSource interprets solution source text.
func LoadSource(source string, opts ...Option) (*Solution, error) {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	prepared := prepare(source)
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, types.Errorf(types.ErrBinding, "failed to load stdlib").WithCause(err)
	}
	if err := i.Use(Symbols); err != nil {
		return nil, types.Errorf(types.ErrBinding, "failed to load node types").WithCause(err)
	}

	options.Logger.Debug("Interpreting solution",
		zap.String("package", prepared.pkg),
		zap.Strings("aliases", prepared.aliases),
		zap.Int("shims", prepared.shims))
	if _, err := i.Eval(prepared.text); err != nil {
		return nil, types.Errorf(types.ErrBinding, "solution evaluation failed").WithCause(err)
	}

	return &Solution{
		source: source,
		pkg:    prepared.pkg,
		interp: i,
		opts:   options,
		logger: options.Logger,
	}, nil
}

// Source returns the original source text.
func (s *Solution) Source() string {
	return s.source
}

// Functions returns the names of the top-level functions that can be bound
// as problems, in source order.
func (s *Solution) Functions() []string {
	var names []string
	for _, name := range topLevelFuncs(s.source) {
		if name == "main" || name == "init" || name == "Constructor" {
			continue
		}
		if _, err := parser.FindSignature(s.source, name); err == nil {
			names = append(names, name)
		}
	}
	return names
}

// Designs returns the names of the types that can be bound as designs.
func (s *Solution) Designs() []string {
	var names []string
	for _, recv := range parser.FindReceivers(s.source) {
		if _, err := parser.FindConstructor(s.source, recv); err == nil {
			names = append(names, recv)
		}
	}
	return names
}

// Problem binds the function name as a stateless problem.
func (s *Solution) Problem(name string) (*functions.Problem, error) {
	sig, err := parser.FindSignature(s.source, name)
	if err != nil {
		return nil, err
	}
	fn, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	p := &functions.Problem{
		Name:   sig.Name,
		Method: &functions.Method{Signature: sig, Invoke: funcInvoker(fn)},
	}
	if s.opts.Registry != nil {
		s.opts.Registry.AddProblem(p)
	}
	s.logger.Debug("Bound problem", zap.Stringer("signature", sig))
	return p, nil
}

// Design binds the type name as a stateful design.
func (s *Solution) Design(name string) (*functions.Design, error) {
	ctor, err := parser.FindConstructor(s.source, name)
	if err != nil {
		return nil, err
	}
	ctorFn, err := s.lookup(ctorShimName(name))
	if err != nil {
		return nil, err
	}

	d := &functions.Design{
		Name:        name,
		Constructor: &functions.Method{Signature: ctor, Invoke: ctorInvoker(ctorFn)},
		Methods:     make(map[string]*functions.Method),
	}
	for _, sig := range parser.FindMethods(s.source, name) {
		fn, err := s.lookup(methodShimName(name, sig.Name))
		if err != nil {
			return nil, err
		}
		d.Methods[sig.Name] = &functions.Method{Signature: sig, Invoke: methodInvoker(fn)}
	}

	if s.opts.Registry != nil {
		s.opts.Registry.AddDesign(d)
	}
	s.logger.Debug("Bound design", zap.String("design", name), zap.Strings("methods", d.MethodNames()))
	return d, nil
}

func (s *Solution) lookup(name string) (reflect.Value, error) {
	v, err := s.interp.Eval(s.pkg + "." + name)
	if err != nil {
		return reflect.Value{}, types.Errorf(types.ErrBinding, "%s not found", name).WithCause(err)
	}
	if v.Kind() != reflect.Func {
		return reflect.Value{}, types.Errorf(types.ErrBinding, "%s is a %s, not a function", name, v.Kind())
	}
	return v, nil
}
