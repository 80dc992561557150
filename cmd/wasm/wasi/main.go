//go:build wasip1

// Command leetcase-wasm-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "source": "<go solution>", "func": "<name>", "design": "<name>",
//	          "data": "<test data>", "range": "2-4", "unordered": false }
//	stdout: <canonical report>          exit code 0 when accepted, 1 otherwise
//	        { "error": "<message>" }    on failure (exit code 2)
//
// Exactly one of func and design must be set.
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o leetcase.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	jq -n --rawfile src two_sum.go --rawfile data two_sum.txt \
//	    '{source: $src, func: "twoSum", data: $data}' | wasmtime leetcase.wasm
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/sandrolain/leetcase/pkg/engine"
	"github.com/sandrolain/leetcase/pkg/interp"
	"github.com/sandrolain/leetcase/pkg/loader"
)

type request struct {
	Source    string `json:"source"`
	Func      string `json:"func"`
	Design    string `json:"design"`
	Data      string `json:"data"`
	Range     string `json:"range"`
	Unordered bool   `json:"unordered"`
}

type response struct {
	Error string `json:"error,omitempty"`
}

func fail(err error) {
	_ = json.NewEncoder(os.Stdout).Encode(response{Error: err.Error()})
	os.Exit(2)
}

func main() {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		fail(errors.New("invalid request JSON: " + err.Error()))
	}
	if (req.Func == "") == (req.Design == "") {
		fail(errors.New("exactly one of func and design is required"))
	}

	r, err := engine.ParseRange(req.Range)
	if err != nil {
		fail(err)
	}
	sol, err := interp.LoadSource(req.Source)
	if err != nil {
		fail(err)
	}

	ctx := context.Background()
	eng := engine.New(engine.WithRange(r), engine.WithStrict(!req.Unordered))
	blob := loader.ParseString(req.Data)

	var report *engine.Report
	if req.Design != "" {
		d, err := sol.Design(req.Design)
		if err != nil {
			fail(err)
		}
		report, err = eng.RunDesign(ctx, d, blob)
		if err != nil {
			fail(err)
		}
	} else {
		p, err := sol.Problem(req.Func)
		if err != nil {
			fail(err)
		}
		report, err = eng.Run(ctx, p, blob)
		if err != nil {
			fail(err)
		}
	}

	out, err := report.CanonicalJSON()
	if err != nil {
		fail(err)
	}
	_, _ = os.Stdout.Write(append(out, '\n'))
	if !report.Accepted() {
		os.Exit(1)
	}
}
