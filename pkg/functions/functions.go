// Package functions provides the explicit registry of callables under test.
//
// A solution is described once, at setup time, by its declaration text and a
// typed adapter. No reflection over method names is involved: the engine
// looks callables up by name in the registry.
//
// # Example
//
//	reg := functions.NewRegistry()
//	p, err := reg.RegisterFunc("public int[] twoSum(int[] nums, int target)",
//	    functions.Func2(twoSum))
//
//	d, err := reg.Design("MinStack").
//	    Constructor("public MinStack()", functions.Ctor0(NewMinStack)).
//	    Method("public void push(int val)", functions.MethodProc1((*MinStack).Push)).
//	    Method("public int getMin()", functions.Method0((*MinStack).GetMin)).
//	    Build()
package functions

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandrolain/leetcase/pkg/types"
)

// Invoker calls a bound callable. recv is the live receiver for methods and
// nil for plain functions and constructors; args are decoded values in
// parameter order. Void callables return a nil result.
type Invoker func(ctx context.Context, recv any, args []any) (any, error)

// Method is a callable together with its signature.
type Method struct {
	Signature *types.Signature
	Invoke    Invoker
}

// Name returns the declared name.
func (m *Method) Name() string {
	return m.Signature.Name
}

// Call invokes the method after checking the argument count. A panic inside
// the callable is returned as an I0101 error.
func (m *Method) Call(ctx context.Context, recv any, args []any) (result any, err error) {
	if len(args) != m.Signature.Arity() {
		return nil, types.Errorf(types.ErrArgumentCount,
			"%s takes %d arguments, got %d", m.Signature.Name, m.Signature.Arity(), len(args))
	}
	defer func() {
		if r := recover(); r != nil {
			err = types.Errorf(types.ErrInvocation, "%s panicked: %v", m.Signature.Name, r)
		}
	}()
	result, err = m.Invoke(ctx, recv, args)
	if err != nil && types.CodeOf(err) == "" {
		err = types.Errorf(types.ErrInvocation, "%s failed", m.Signature.Name).WithCause(err)
	}
	return result, err
}

// Problem is a stateless callable.
type Problem struct {
	// Name is the callable name.
	Name string
	// NewReceiver builds a fresh receiver for each test case.
	// Nil means the callable is a plain function.
	NewReceiver func() any
	// Method is the callable itself.
	Method *Method
}

// Receiver returns a fresh receiver, or nil for plain functions.
func (p *Problem) Receiver() any {
	if p.NewReceiver == nil {
		return nil
	}
	return p.NewReceiver()
}

// WithOutput returns a copy of p whose signature names param as the
// observed output of a void call.
func (p *Problem) WithOutput(param string) (*Problem, error) {
	if p.Method.Signature.ParamIndex(param) < 0 {
		return nil, types.Errorf(types.ErrInvalidSignature, "%s has no parameter %s", p.Name, param)
	}
	sig := p.Method.Signature.Clone()
	sig.Output = param
	c := *p
	c.Method = &Method{Signature: sig, Invoke: p.Method.Invoke}
	return &c, nil
}

// Design is a stateful type: one constructor and named methods replayed
// against the receiver it builds.
type Design struct {
	Name        string
	Constructor *Method
	Methods     map[string]*Method
}

// Construct builds a new receiver.
func (d *Design) Construct(ctx context.Context, args []any) (any, error) {
	if d.Constructor == nil {
		return nil, types.Errorf(types.ErrNoReceiver, "%s has no constructor", d.Name)
	}
	recv, err := d.Constructor.Call(ctx, nil, args)
	if err != nil {
		return nil, err
	}
	if recv == nil {
		return nil, types.Errorf(types.ErrNoReceiver, "%s constructor returned nil", d.Name)
	}
	return recv, nil
}

// Lookup finds a method by name. An exact match wins; otherwise the name is
// matched case-insensitively so that "push" finds a Go method Push. When
// several methods fold to the name, the first in sorted order is used.
func (d *Design) Lookup(name string) (*Method, bool) {
	if m, ok := d.Methods[name]; ok {
		return m, true
	}
	for _, key := range d.MethodNames() {
		if strings.EqualFold(key, name) {
			return d.Methods[key], true
		}
	}
	return nil, false
}

// IsConstructor reports whether a call name denotes construction.
func (d *Design) IsConstructor(name string) bool {
	return name == d.Name
}

// MethodNames returns the registered method names in sorted order.
func (d *Design) MethodNames() []string {
	names := make([]string, 0, len(d.Methods))
	for name := range d.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns a short description of the design.
func (d *Design) String() string {
	return fmt.Sprintf("%s (%d methods)", d.Name, len(d.Methods))
}
