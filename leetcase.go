// Package leetcase runs competitive-programming solutions against recorded
// test data.
//
// A solution is bound once by its declaration text. Test data is a plain
// text blob of fragments, one per line, which is decoded according to the
// declared types, fed to the solution and compared against the expected
// output.
//
// # Quick Start
//
//	// Stateless problem
//	p := leetcase.MustFunc("int[] twoSum(int[] nums, int target)",
//	    functions.Func2(twoSum))
//	report, err := leetcase.Run(p, "[2,7,11,15]\n9\n[0,1]\n")
//	fmt.Println(report.Summary())
//
//	// Stateful design
//	d, err := leetcase.Design("MinStack").
//	    Constructor("MinStack()", functions.Ctor0(NewMinStack)).
//	    Method("void push(int val)", functions.MethodProc1((*MinStack).Push)).
//	    Method("int getMin()", functions.Method0((*MinStack).GetMin)).
//	    Build()
//	report, err = leetcase.RunDesign(d, data)
//
// # More Information
//
// For detailed documentation, see:
//   - Engine: github.com/sandrolain/leetcase/pkg/engine
//   - Decoder: github.com/sandrolain/leetcase/pkg/decoder
//   - Comparator: github.com/sandrolain/leetcase/pkg/compare
//   - Functions: github.com/sandrolain/leetcase/pkg/functions
//   - Interpreted solutions: github.com/sandrolain/leetcase/pkg/interp
package leetcase

import (
	"context"
	"fmt"
	"time"

	"github.com/sandrolain/leetcase/pkg/engine"
	"github.com/sandrolain/leetcase/pkg/functions"
	"github.com/sandrolain/leetcase/pkg/loader"
)

// DefaultTimeout bounds the convenience runners.
const DefaultTimeout = 30 * time.Second

var defaultRegistry = functions.NewRegistry()

// Version returns the current version of leetcase.
func Version() string {
	return "v0.1.0-dev"
}

// Func binds a plain function in the default registry.
func Func(decl string, inv functions.Invoker) (*functions.Problem, error) {
	return defaultRegistry.RegisterFunc(decl, inv)
}

// MustFunc is like Func but panics if the declaration cannot be parsed.
// It simplifies safe initialization of global variables.
func MustFunc(decl string, inv functions.Invoker) *functions.Problem {
	p, err := Func(decl, inv)
	if err != nil {
		panic(fmt.Sprintf("leetcase: Func(%q): %v", decl, err))
	}
	return p
}

// Design starts a design in the default registry.
func Design(name string) *functions.DesignBuilder {
	return defaultRegistry.Design(name)
}

// Run runs p against the test data text with a default timeout.
//
// For repeated runs, build an engine.Engine once instead.
func Run(p *functions.Problem, data string, opts ...engine.Option) (*engine.Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	return RunWithContext(ctx, p, data, opts...)
}

// RunWithContext runs p against the test data text.
func RunWithContext(ctx context.Context, p *functions.Problem, data string, opts ...engine.Option) (*engine.Report, error) {
	return engine.New(opts...).Run(ctx, p, loader.ParseString(data))
}

// RunDesign runs d against the test data text with a default timeout.
func RunDesign(d *functions.Design, data string, opts ...engine.Option) (*engine.Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	return RunDesignWithContext(ctx, d, data, opts...)
}

// RunDesignWithContext runs d against the test data text.
func RunDesignWithContext(ctx context.Context, d *functions.Design, data string, opts ...engine.Option) (*engine.Report, error) {
	return engine.New(opts...).RunDesign(ctx, d, loader.ParseString(data))
}
