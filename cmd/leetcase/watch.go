package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandrolain/leetcase/pkg/loader"
	"github.com/sandrolain/leetcase/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [solution.go] [data]",
	Short: "Re-run a solution whenever it or its test data changes",
	Long: `Runs the solution once, then watches the solution file and the test data
and runs again after every change. The solution is re-interpreted on each
run. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(2),
	RunE: watchSolution,
}

func watchSolution(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	solution, data := args[0], args[1]
	blobs, err := loadData(data)
	if err != nil {
		return usageError(err)
	}
	files := append([]string{solution}, blobPaths(blobs)...)

	debounce, err := cfg.DebounceDuration()
	if err != nil {
		return usageError(err)
	}

	out := cmd.OutOrStdout()
	rerun := func(ctx context.Context, changed []string) {
		if len(changed) > 0 {
			fmt.Fprintf(out, "\n--- %s changed at %s\n", changed[0], time.Now().Format(time.TimeOnly))
		}
		runOnce(ctx, out, solution, data)
	}

	w, err := watch.New(files, rerun, watch.WithDebounce(debounce), watch.WithLogger(logger))
	if err != nil {
		return usageError(err)
	}

	rerun(ctx, nil)
	fmt.Fprintf(out, "Watching %d files, press Ctrl-C to stop\n", len(files))
	return w.Run(ctx)
}

// runOnce binds and runs the solution, printing instead of returning
// errors so that watching continues.
func runOnce(ctx context.Context, out io.Writer, solution, data string) {
	t, err := bindSolution(solution)
	if err != nil {
		fmt.Fprintln(out, "Error:", err)
		return
	}
	blobs, err := loadData(data)
	if err != nil {
		fmt.Fprintln(out, "Error:", err)
		return
	}

	err = execute(ctx, out, t, blobs)
	var ee *exitError
	switch {
	case err == nil:
	case errors.As(err, &ee) && ee.code == exitFailed:
		logger.Debug("Run not accepted", zap.String("target", t.name()))
	default:
		fmt.Fprintln(out, "Error:", err)
	}
}

// blobPaths lists the files behind blobs.
func blobPaths(blobs []*loader.Blob) []string {
	paths := make([]string, len(blobs))
	for i, b := range blobs {
		paths[i] = b.Path
	}
	return paths
}
