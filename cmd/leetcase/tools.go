package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandrolain/leetcase"
	"github.com/sandrolain/leetcase/pkg/config"
	"github.com/sandrolain/leetcase/pkg/decoder"
	"github.com/sandrolain/leetcase/pkg/format"
	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/wasm"
)

var (
	wasmExport string
	wasmSig    string
	initForce  bool
)

var wasmCmd = &cobra.Command{
	Use:   "wasm [module.wasm] [data]",
	Short: "Run an exported function of a WebAssembly module",
	Long: `Instantiates the module and runs one of its exports against the test data.
Exports take and return numbers only. Without --sig the signature is derived
from the export: i32 as int, i64 as long, f32 and f64 as double.

Example:
  leetcase wasm add.wasm add.txt --func add
  leetcase wasm prime.wasm prime.txt --func is_prime --sig "boolean isPrime(int n)"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		mod, err := wasm.Load(ctx, args[0], wasm.WithLogger(logger))
		if err != nil {
			return usageError(err)
		}
		defer mod.Close(ctx)

		export := wasmExport
		if export == "" {
			exports := mod.Exports()
			if len(exports) != 1 {
				return usageError(fmt.Errorf("module exports %v; choose one with --func", exports))
			}
			export = exports[0]
		}
		p, err := mod.Problem(export, wasmSig)
		if err != nil {
			return usageError(err)
		}

		blobs, err := loadData(args[1])
		if err != nil {
			return usageError(err)
		}
		return execute(ctx, cmd.OutOrStdout(), target{problem: p}, blobs)
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode [type] [fragment]",
	Short: "Decode one test data fragment and print the result",
	Long: `Decodes a fragment the way test data is decoded and prints the value,
the decode status and every dropped element.

Example:
  leetcase decode "int[][]" "[[1,2],[3,x]]"
  leetcase decode TreeNode "[3,9,20,null,null,15,7]"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := parser.ParseDescriptor(args[0])
		if err != nil {
			return usageError(err)
		}
		dec := decoder.New(
			decoder.WithPrecision(cfg.Comparison.Precision),
			decoder.WithLogger(logger),
		)
		res := dec.DecodeString(args[1], desc)

		out := cmd.OutOrStdout()
		if !res.OK() {
			fmt.Fprintf(out, "%s: %v\n", res.Status, res.Err)
			return &exitError{code: exitFailed}
		}
		fmt.Fprintln(out, format.ValuePrecision(res.Value, cfg.Comparison.Precision))
		fmt.Fprintln(out, res.Status)
		for _, d := range res.Dropped {
			fmt.Fprintf(out, "  dropped %q at %d: %v\n", d.Token, d.Position, d.Err)
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return usageError(fmt.Errorf("%s already exists; use --force to overwrite", configPath))
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return usageError(err)
		}
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return usageError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "leetcase", leetcase.Version())
	},
}

func init() {
	wasmCmd.Flags().StringVarP(&wasmExport, "func", "f", "", "Exported function to run")
	wasmCmd.Flags().StringVar(&wasmSig, "sig", "", "Declaration giving the export a signature")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
}
