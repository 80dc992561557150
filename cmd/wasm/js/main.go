//go:build js && wasm

// Command leetcase-wasm-js is the WebAssembly entrypoint for browser and Node.js.
//
// It exposes a global `leetcase` object with the following API:
//
//	leetcase.version()                              → string
//	leetcase.decode(type, fragment)                 → resultJSON  (throws on error)
//	leetcase.compare(type, actual, expected, strict) → resultJSON  (throws on error)
//	leetcase.run(source, name, data)                → reportJSON  (throws on error)
//
// type is a declared type such as "int[][]" or "List<String>". run binds the
// design or function called name in the Go source.
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o leetcase.wasm ./cmd/wasm/js/
//
// Usage in Node.js:
//
//	const lc = await load()
//	const r = JSON.parse(lc.compare('int[]', '[1,2]', '[2,1]', false))
//	console.log(r.pass) // true
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/sandrolain/leetcase"
	"github.com/sandrolain/leetcase/pkg/compare"
	"github.com/sandrolain/leetcase/pkg/decoder"
	"github.com/sandrolain/leetcase/pkg/diff"
	"github.com/sandrolain/leetcase/pkg/engine"
	"github.com/sandrolain/leetcase/pkg/format"
	"github.com/sandrolain/leetcase/pkg/interp"
	"github.com/sandrolain/leetcase/pkg/loader"
	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/types"
)

// jsThrow panics with a JS Error so the caller receives a thrown exception.
func jsThrow(msg string) {
	js.Global().Get("Error").New(msg)
	panic(msg)
}

func marshal(fn string, v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		jsThrow(fmt.Sprintf("leetcase.%s: marshal result: %v", fn, err))
	}
	return string(out)
}

func descriptor(fn string, text string) types.Descriptor {
	desc, err := parser.ParseDescriptor(text)
	if err != nil {
		jsThrow(fmt.Sprintf("leetcase.%s: %v", fn, err))
	}
	return desc
}

type decodeResult struct {
	Value   string   `json:"value"`
	Status  string   `json:"status"`
	Dropped []string `json:"dropped,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// jsDecode implements leetcase.decode(type, fragment) → resultJSON.
func jsDecode(_ js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		jsThrow("leetcase.decode requires 2 arguments: type (string) and fragment (string)")
	}
	desc := descriptor("decode", args[0].String())

	res := decoder.New().DecodeString(args[1].String(), desc)
	out := decodeResult{Status: res.Status.String()}
	if res.OK() {
		out.Value = format.Value(res.Value)
	} else {
		out.Error = res.Err.Error()
	}
	for _, d := range res.Dropped {
		out.Dropped = append(out.Dropped, d.Token)
	}
	return marshal("decode", out)
}

type compareResult struct {
	Pass     bool   `json:"pass"`
	Reason   string `json:"reason,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// jsCompare implements leetcase.compare(type, actual, expected, strict) → resultJSON.
// The expected and actual lines carry the plain diff markers.
func jsCompare(_ js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		jsThrow("leetcase.compare requires 3 arguments: type, actual and expected (strings)")
	}
	desc := descriptor("compare", args[0].String())
	strict := len(args) < 4 || args[3].Truthy()

	dec := decoder.New()
	actual := dec.DecodeString(args[1].String(), desc)
	expected := dec.DecodeString(args[2].String(), desc)
	for _, r := range []decoder.Result{actual, expected} {
		if !r.OK() {
			jsThrow(fmt.Sprintf("leetcase.compare: %v", r.Err))
		}
	}

	res := compare.Compare(actual.Value, expected.Value, desc, strict)
	out := compareResult{Pass: res.Pass, Reason: res.Reason}
	if !res.Pass {
		out.Expected, out.Actual = diff.Lines(res.Expected, res.Actual, diff.Mark)
	}
	return marshal("compare", out)
}

// jsRun implements leetcase.run(source, name, data) → reportJSON.
func jsRun(_ js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		jsThrow("leetcase.run requires 3 arguments: source, name and data (strings)")
	}
	sol, err := interp.LoadSource(args[0].String())
	if err != nil {
		jsThrow(fmt.Sprintf("leetcase.run: %v", err))
	}
	name := args[1].String()
	blob := loader.ParseString(args[2].String())
	ctx := context.Background()

	var report *engine.Report
	if d, derr := sol.Design(name); derr == nil {
		report, err = engine.New().RunDesign(ctx, d, blob)
	} else {
		p, perr := sol.Problem(name)
		if perr != nil {
			jsThrow(fmt.Sprintf("leetcase.run: %v", perr))
		}
		report, err = engine.New().Run(ctx, p, blob)
	}
	if err != nil {
		jsThrow(fmt.Sprintf("leetcase.run: %v", err))
	}

	out, err := report.CanonicalJSON()
	if err != nil {
		jsThrow(fmt.Sprintf("leetcase.run: %v", err))
	}
	return string(out)
}

func main() {
	api := map[string]interface{}{
		"decode":  js.FuncOf(jsDecode),
		"compare": js.FuncOf(jsCompare),
		"run":     js.FuncOf(jsRun),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return leetcase.Version()
		}),
	}
	js.Global().Set("leetcase", js.ValueOf(api))

	// Block forever; the JS event loop owns execution from here.
	select {}
}
