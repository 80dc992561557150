// Package compare implements deep comparison of decoded values.
//
// Sequences are compared either strictly (same length, equal values at equal
// indices) or unordered. Unordered comparison uses set semantics by default:
// both sides are reduced to the set of their element keys, so duplicates
// collapse and [1,1,2] matches [2,1]. WithMultiset switches to multiset
// semantics, where element counts must match too. Only the outermost
// sequence is unordered: nested rows are keyed in order, so [[1,2],[1,2]]
// does not match [[1,2],[2,1]]. WithUnorderedRows makes nested rows
// order-free as well. Trees and linked lists are always compared
// structurally.
package compare

import (
	"fmt"
	"math"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sandrolain/leetcase/pkg/format"
	"github.com/sandrolain/leetcase/pkg/types"
)

// DefaultPrecision is the number of decimal places doubles are compared at.
const DefaultPrecision = 5

// Result is the outcome of one comparison.
type Result struct {
	Pass bool
	// Actual and Expected are the rendered values, set when Pass is false.
	Actual   string
	Expected string
	// Reason describes the first difference found.
	Reason string
}

// Err returns a C0101 error describing a failed comparison, or nil.
func (r Result) Err() error {
	if r.Pass {
		return nil
	}
	return types.Errorf(types.ErrMismatch, "%s", r.Reason)
}

// Options configures a Comparator.
type Options struct {
	// Precision is the number of decimal places doubles are rounded to
	// before comparing.
	Precision int
	// Multiset makes unordered comparison count duplicates.
	Multiset bool
	// UnorderedRows ignores element order inside nested rows too.
	UnorderedRows bool
}

// Option configures a Comparator.
type Option func(*Options)

// WithPrecision sets the decimal places doubles are compared at.
func WithPrecision(places int) Option {
	return func(opts *Options) {
		opts.Precision = places
	}
}

// WithMultiset enables or disables multiset semantics for unordered comparison.
func WithMultiset(enabled bool) Option {
	return func(opts *Options) {
		opts.Multiset = enabled
	}
}

// WithUnorderedRows makes unordered comparison ignore order inside nested
// rows, as for group-anagram style answers.
func WithUnorderedRows(enabled bool) Option {
	return func(opts *Options) {
		opts.UnorderedRows = enabled
	}
}

// Comparator compares values according to type descriptors.
// It holds no mutable state and is safe for concurrent use.
type Comparator struct {
	precision int
	scale     float64
	multiset  bool
	rows      bool
}

// New creates a comparator.
func New(opts ...Option) *Comparator {
	options := Options{Precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Precision < 0 {
		options.Precision = DefaultPrecision
	}
	return &Comparator{
		precision: options.Precision,
		scale:     math.Pow10(options.Precision),
		multiset:  options.Multiset,
		rows:      options.UnorderedRows,
	}
}

var defaultComparator = New()

// Compare compares with the default comparator.
func Compare(actual, expected any, desc types.Descriptor, strict bool) Result {
	return defaultComparator.Compare(actual, expected, desc, strict)
}

// Compare reports whether actual matches expected under desc. The strict
// flag selects ordered comparison for sequences and has no effect on trees
// and linked lists. Neither input is modified.
func (c *Comparator) Compare(actual, expected any, desc types.Descriptor, strict bool) Result {
	reason := c.dispatch(actual, expected, desc, strict)
	if reason == "" {
		return Result{Pass: true}
	}
	return Result{
		Actual:   format.ValuePrecision(actual, c.precision),
		Expected: format.ValuePrecision(expected, c.precision),
		Reason:   reason,
	}
}

func (c *Comparator) dispatch(actual, expected any, desc types.Descriptor, strict bool) string {
	switch desc.Kind() {
	case types.KindVoid:
		return ""
	case types.KindScalar:
		return c.scalars("", c.normalize(actual), c.normalize(expected))
	case types.KindArray, types.KindGeneric:
		return c.sequences(c.normalize(actual), c.normalize(expected), strict)
	case types.KindTree:
		return trees(actual, expected)
	case types.KindLinkedList:
		return lists(actual, expected)
	default:
		return c.untyped(actual, expected, strict)
	}
}

// untyped compares values without a usable descriptor. A slice on the
// expected side selects sequence comparison; anything else uses cmp.
func (c *Comparator) untyped(actual, expected any, strict bool) (reason string) {
	if rv := reflect.ValueOf(expected); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return c.sequences(c.normalize(actual), c.normalize(expected), strict)
	}
	switch expected.(type) {
	case *types.TreeNode:
		return trees(actual, expected)
	case *types.ListNode:
		return lists(actual, expected)
	}

	defer func() {
		// cmp panics on unexported fields.
		if r := recover(); r != nil {
			if !reflect.DeepEqual(actual, expected) {
				reason = "values differ"
			}
		}
	}()
	tolerance := 0.5 / c.scale
	if !cmp.Equal(expected, actual, cmpopts.EquateApprox(0, tolerance), cmpopts.EquateEmpty()) {
		return "values differ (-expected +actual):\n" + cmp.Diff(expected, actual, cmpopts.EquateApprox(0, tolerance))
	}
	return ""
}

func (c *Comparator) sequences(actual, expected any, strict bool) string {
	if strict {
		return c.ordered("", actual, expected)
	}
	return c.unordered(actual, expected)
}

// ordered compares element by element, recursing into nested rows.
func (c *Comparator) ordered(path string, actual, expected any) string {
	al, aok := actual.([]any)
	el, eok := expected.([]any)
	if !aok || !eok {
		if aok != eok {
			return fmt.Sprintf("shape mismatch at %s: %s vs %s", pathOrRoot(path), shape(actual), shape(expected))
		}
		return c.scalars(path, actual, expected)
	}
	if len(al) != len(el) {
		return fmt.Sprintf("length mismatch at %s: got %d, expected %d", pathOrRoot(path), len(al), len(el))
	}
	for i := range el {
		if reason := c.ordered(fmt.Sprintf("%s[%d]", path, i), al[i], el[i]); reason != "" {
			return reason
		}
	}
	return ""
}

// unordered compares the key sets (or key multisets) of both sides.
func (c *Comparator) unordered(actual, expected any) string {
	al, aok := actual.([]any)
	el, eok := expected.([]any)
	if !aok || !eok {
		return fmt.Sprintf("shape mismatch: %s vs %s", shape(actual), shape(expected))
	}

	got := c.counts(al)
	want := c.counts(el)
	if len(got) != len(want) {
		return fmt.Sprintf("distinct elements differ: got %d, expected %d", len(got), len(want))
	}
	for _, e := range el {
		k := c.key(e)
		n, ok := got[k]
		if !ok {
			return "expected element " + k + " not found"
		}
		if c.multiset && n != want[k] {
			return fmt.Sprintf("element %s occurs %d times, expected %d", k, n, want[k])
		}
	}
	return ""
}

func (c *Comparator) counts(elems []any) map[string]int {
	m := make(map[string]int, len(elems))
	for _, e := range elems {
		m[c.key(e)]++
	}
	return m
}

// scalars compares two normalized scalars.
func (c *Comparator) scalars(path string, actual, expected any) string {
	if c.scalarEqual(actual, expected) {
		return ""
	}
	return fmt.Sprintf("value mismatch at %s: got %s, expected %s",
		pathOrRoot(path), c.key(actual), c.key(expected))
}

func (c *Comparator) scalarEqual(actual, expected any) bool {
	switch e := expected.(type) {
	case int64:
		switch a := actual.(type) {
		case int64:
			return a == e
		case float64:
			return c.round(a) == c.round(float64(e))
		}
		return false
	case float64:
		switch a := actual.(type) {
		case float64:
			return c.round(a) == c.round(e) || (math.IsNaN(a) && math.IsNaN(e))
		case int64:
			return c.round(float64(a)) == c.round(e)
		}
		return false
	case bool, string:
		return actual == expected
	case nil:
		return actual == nil
	default:
		return reflect.DeepEqual(actual, expected)
	}
}

func (c *Comparator) round(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}
	return math.Round(f*c.scale) / c.scale
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

func shape(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case []any:
		return fmt.Sprintf("list of %d", len(x))
	default:
		return "scalar"
	}
}
