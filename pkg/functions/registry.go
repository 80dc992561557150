package functions

import (
	"strings"
	"sync"

	"github.com/sandrolain/leetcase/pkg/cache"
	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/types"
)

// Registry holds the problems and designs of one test setup together with
// the signature cache they were parsed through. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	cache    *cache.Cache
	problems map[string]*Problem
	designs  map[string]*Design
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCache makes the registry parse signatures through c.
func WithCache(c *cache.Cache) RegistryOption {
	return func(r *Registry) {
		r.cache = c
	}
}

// NewRegistry creates an empty registry with its own signature cache.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		problems: make(map[string]*Problem),
		designs:  make(map[string]*Design),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = cache.New(0)
	}
	return r
}

// Signature parses a declaration through the cache. The returned signature
// is shared and must not be modified.
func (r *Registry) Signature(decl string) (*types.Signature, error) {
	return r.cache.GetOrParse(decl, func() (*types.Signature, error) {
		return parser.ParseSignature(decl)
	})
}

// RegisterFunc registers a stateless plain function.
func (r *Registry) RegisterFunc(decl string, inv Invoker) (*Problem, error) {
	return r.RegisterMethod(decl, nil, inv)
}

// RegisterMethod registers a stateless method; newReceiver builds the
// receiver afresh for every test case.
func (r *Registry) RegisterMethod(decl string, newReceiver func() any, inv Invoker) (*Problem, error) {
	sig, err := r.Signature(decl)
	if err != nil {
		return nil, err
	}
	p := &Problem{
		Name:        sig.Name,
		NewReceiver: newReceiver,
		Method:      &Method{Signature: sig, Invoke: inv},
	}
	r.AddProblem(p)
	return p, nil
}

// AddProblem registers an already built problem, replacing any problem of
// the same name.
func (r *Registry) AddProblem(p *Problem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.problems[p.Name] = p
}

// Problem returns a registered problem.
func (r *Registry) Problem(name string) (*Problem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.problems[name]
	return p, ok
}

// AddDesign registers an already built design.
func (r *Registry) AddDesign(d *Design) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.designs[d.Name] = d
}

// LookupDesign returns a registered design.
func (r *Registry) LookupDesign(name string) (*Design, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.designs[name]
	return d, ok
}

// Design starts building a design. Build registers it.
func (r *Registry) Design(name string) *DesignBuilder {
	return &DesignBuilder{
		reg:    r,
		design: &Design{Name: name, Methods: make(map[string]*Method)},
	}
}

// DesignBuilder collects the constructor and methods of a design. The first
// error is kept and returned by Build.
type DesignBuilder struct {
	reg    *Registry
	design *Design
	err    error
}

// Constructor sets the constructor. Its declaration may be a Java
// constructor or a Go function returning the design type.
func (b *DesignBuilder) Constructor(decl string, inv Invoker) *DesignBuilder {
	if b.err != nil {
		return b
	}
	sig, err := b.reg.Signature(decl)
	if err != nil {
		b.err = err
		return b
	}
	b.design.Constructor = &Method{Signature: sig, Invoke: inv}
	return b
}

// Method adds a method.
func (b *DesignBuilder) Method(decl string, inv Invoker) *DesignBuilder {
	if b.err != nil {
		return b
	}
	sig, err := b.reg.Signature(decl)
	if err != nil {
		b.err = err
		return b
	}
	b.design.Methods[sig.Name] = &Method{Signature: sig, Invoke: inv}
	return b
}

// Build validates and registers the design.
func (b *DesignBuilder) Build() (*Design, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.design.Constructor == nil {
		return nil, types.Errorf(types.ErrNoReceiver, "design %s has no constructor", b.design.Name)
	}
	names := b.design.MethodNames()
	for i := 1; i < len(names); i++ {
		for _, prev := range names[:i] {
			if strings.EqualFold(prev, names[i]) {
				return nil, types.Errorf(types.ErrBinding, "design %s: methods %s and %s differ only in case",
					b.design.Name, prev, names[i])
			}
		}
	}
	b.reg.AddDesign(b.design)
	return b.design, nil
}
