// Command leetcase runs solution files against recorded test data.
//
//	leetcase run solution.go cases.txt
//	leetcase run solution.go testdata/ --design MinStack --range 2-4
//	leetcase watch solution.go cases.txt
//	leetcase wasm add.wasm cases.txt --func add --sig "int add(int a, int b)"
//	leetcase decode "int[][]" "[[1,2],[3]]"
//
// Exit status is 0 when every report is accepted, 1 when a case failed and
// 2 on usage or binding errors.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandrolain/leetcase/pkg/config"
)

// Exit codes.
const (
	exitAccepted = 0
	exitFailed   = 1
	exitUsage    = 2
)

var (
	verbose    bool
	configPath string
	rangeFlag  string
	unordered  bool
	multiset   bool
	anyRows    bool
	jsonOutput bool
	noColor    bool

	cfg    *config.Config
	logger *zap.Logger
)

// exitError carries the process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// usageError marks err as a usage or binding failure.
func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

var rootCmd = &cobra.Command{
	Use:   "leetcase",
	Short: "Run competitive-programming solutions against recorded test data",
	Long: `leetcase decodes text test data according to the declared signature of a
solution, invokes it and deep-compares the results with the expected output.

Test data is one fragment per line: for a function, one line per argument
followed by the expected result; for a design, three lines holding the call
names, the argument tuples and the expected results.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return usageError(err)
		}
		applyFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return usageError(err)
		}

		logger, err = cfg.BuildLogger(verbose)
		if err != nil {
			return usageError(err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.FileName, "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&rangeFlag, "range", "r", "", "Cases to run, e.g. 3, 2-4, [2,4] (default all)")
	rootCmd.PersistentFlags().BoolVar(&unordered, "unordered", false, "Compare sequences ignoring order")
	rootCmd.PersistentFlags().BoolVar(&multiset, "multiset", false, "Count duplicates in unordered comparison")
	rootCmd.PersistentFlags().BoolVar(&anyRows, "unordered-rows", false, "Also ignore order inside nested rows")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print reports as canonical JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored diffs")

	rootCmd.AddCommand(runCmd, watchCmd, wasmCmd, decodeCmd, initCmd, versionCmd)
}

// applyFlags lets explicitly set flags override the configuration.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("range") {
		cfg.Run.Range = rangeFlag
	}
	if flags.Changed("unordered") {
		cfg.Comparison.Strict = !unordered
	}
	if flags.Changed("multiset") {
		cfg.Comparison.Multiset = multiset
	}
	if flags.Changed("unordered-rows") {
		cfg.Comparison.UnorderedRows = anyRows
	}
	if flags.Changed("json") {
		cfg.Output.JSON = jsonOutput
	}
	if flags.Changed("no-color") {
		cfg.Output.Color = !noColor
	}
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(os.Stderr, "Error:", ee.err)
		}
		os.Exit(ee.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(exitUsage)
}
