package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandrolain/leetcase/pkg/diff"
	"github.com/sandrolain/leetcase/pkg/engine"
	"github.com/sandrolain/leetcase/pkg/functions"
	"github.com/sandrolain/leetcase/pkg/interp"
	"github.com/sandrolain/leetcase/pkg/loader"
)

var (
	funcName   string
	designName string
	outParam   string
)

var runCmd = &cobra.Command{
	Use:   "run [solution.go] [data]",
	Short: "Run a Go solution against a test data file or directory",
	Long: `Interprets the solution file and runs it against the test data.

The callable is chosen with --func or --design. Without either, the only
design or the only function of the file is used. When data is a directory,
every file matching the configured pattern is run in name order.

Example:
  leetcase run two_sum.go two_sum.txt
  leetcase run min_stack.go cases/ --design MinStack --range 2-4`,
	Args: cobra.ExactArgs(2),
	RunE: runSolution,
}

func init() {
	for _, cmd := range []*cobra.Command{runCmd, watchCmd} {
		cmd.Flags().StringVarP(&funcName, "func", "f", "", "Function to run")
		cmd.Flags().StringVarP(&designName, "design", "d", "", "Design type to run")
		cmd.Flags().StringVar(&outParam, "out", "", "Parameter observed as the result of a void function")
	}
}

// target is the bound callable of a run.
type target struct {
	problem *functions.Problem
	design  *functions.Design
}

func (t target) name() string {
	if t.design != nil {
		return t.design.Name
	}
	return t.problem.Name
}

func runSolution(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t, err := bindSolution(args[0])
	if err != nil {
		return usageError(err)
	}
	blobs, err := loadData(args[1])
	if err != nil {
		return usageError(err)
	}
	return execute(ctx, cmd.OutOrStdout(), t, blobs)
}

// bindSolution interprets path and binds the selected callable.
func bindSolution(path string) (target, error) {
	sol, err := interp.Load(path, interp.WithLogger(logger))
	if err != nil {
		return target{}, err
	}

	name, fn := designName, funcName
	if name == "" && fn == "" {
		designs, funcs := sol.Designs(), sol.Functions()
		switch {
		case len(designs) == 1:
			name = designs[0]
		case len(designs) == 0 && len(funcs) == 1:
			fn = funcs[0]
		default:
			return target{}, fmt.Errorf("%s declares designs %v and functions %v; choose one with --design or --func",
				path, designs, funcs)
		}
	}

	if name != "" {
		d, err := sol.Design(name)
		if err != nil {
			return target{}, err
		}
		return target{design: d}, nil
	}

	p, err := sol.Problem(fn)
	if err != nil {
		return target{}, err
	}
	if outParam != "" {
		if p, err = p.WithOutput(outParam); err != nil {
			return target{}, err
		}
	}
	return target{problem: p}, nil
}

// loadData loads a test data file, or every matching file of a directory.
func loadData(path string) ([]*loader.Blob, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		blob, err := loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return []*loader.Blob{blob}, nil
	}
	blobs, err := loader.LoadDir(path, cfg.Run.Pattern)
	if err != nil {
		return nil, err
	}
	if len(blobs) == 0 {
		return nil, fmt.Errorf("no files matching %s in %s", cfg.Run.Pattern, path)
	}
	return blobs, nil
}

// engineOptions builds the engine configuration from cfg.
func engineOptions(out io.Writer) ([]engine.Option, error) {
	r, err := engine.ParseRange(cfg.Run.Range)
	if err != nil {
		return nil, err
	}
	opts := []engine.Option{
		engine.WithRange(r),
		engine.WithStrict(cfg.Comparison.Strict),
		engine.WithMultiset(cfg.Comparison.Multiset),
		engine.WithUnorderedRows(cfg.Comparison.UnorderedRows),
		engine.WithPrecision(cfg.Comparison.Precision),
		engine.WithLogger(logger),
	}
	if !cfg.Output.JSON {
		opts = append(opts, engine.WithReporter(diff.New(out, diff.WithColor(cfg.Output.Color))))
	}
	return opts, nil
}

// execute runs t against every blob and prints the reports. It returns an
// exitError with exitFailed when any report is not accepted.
func execute(ctx context.Context, out io.Writer, t target, blobs []*loader.Blob) error {
	opts, err := engineOptions(out)
	if err != nil {
		return usageError(err)
	}
	eng := engine.New(opts...)

	accepted := true
	for _, blob := range blobs {
		var report *engine.Report
		if t.design != nil {
			report, err = eng.RunDesign(ctx, t.design, blob)
		} else {
			report, err = eng.Run(ctx, t.problem, blob)
		}
		if report != nil {
			if perr := printReport(out, blob, report, len(blobs) > 1); perr != nil {
				return perr
			}
			accepted = accepted && report.Accepted()
		}
		if err != nil {
			return err
		}
		logger.Debug("Report written", zap.String("run_id", report.RunID), zap.String("data", blob.Path))
	}

	if !accepted {
		return &exitError{code: exitFailed}
	}
	return nil
}

func printReport(out io.Writer, blob *loader.Blob, report *engine.Report, withPath bool) error {
	if cfg.Output.JSON {
		data, err := report.CanonicalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if withPath {
		fmt.Fprintf(out, "== %s\n", blob.Path)
	}
	passed, failed, skipped := report.Counts()
	fmt.Fprintln(out, report.Summary())
	fmt.Fprintf(out, "%d passed, %d failed, %d skipped in %s\n",
		passed, failed, skipped, report.Duration.Round(time.Microsecond))
	return nil
}
