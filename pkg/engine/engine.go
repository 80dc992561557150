// Package engine runs solutions against recorded test data.
//
// Two modes are supported. Run drives a stateless Problem: each test case is
// N argument fragments followed by one expected fragment, and the callable is
// invoked on a fresh receiver per case. RunDesign drives a stateful Design:
// each test case is a triple of fragments (call names, argument tuples,
// expected results) replayed against one constructed receiver.
//
// Execution is synchronous; the context is checked between cases.
package engine

import (
	"go.uber.org/zap"

	"github.com/sandrolain/leetcase/pkg/compare"
	"github.com/sandrolain/leetcase/pkg/decoder"
	"github.com/sandrolain/leetcase/pkg/diff"
	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/types"
)

// Options configures an Engine.
type Options struct {
	// Range restricts which cases are invoked and compared.
	Range Range
	// Strict selects ordered comparison of sequences. Default true.
	Strict bool
	// Multiset makes unordered comparison count duplicates.
	Multiset bool
	// UnorderedRows ignores element order inside nested rows in unordered
	// comparison.
	UnorderedRows bool
	// Precision is the number of decimal places doubles are rounded to.
	Precision int
	// Reporter prints diffs of failed comparisons. Nil prints nothing.
	Reporter *diff.Reporter
	// Logger receives run diagnostics.
	Logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Options)

// WithRange restricts the run to the cases in r.
func WithRange(r Range) Option {
	return func(opts *Options) {
		opts.Range = r
	}
}

// WithStrict enables or disables ordered comparison of sequences.
func WithStrict(enabled bool) Option {
	return func(opts *Options) {
		opts.Strict = enabled
	}
}

// WithMultiset enables multiset semantics for unordered comparison.
func WithMultiset(enabled bool) Option {
	return func(opts *Options) {
		opts.Multiset = enabled
	}
}

// WithUnorderedRows makes unordered comparison ignore order inside nested
// rows as well.
func WithUnorderedRows(enabled bool) Option {
	return func(opts *Options) {
		opts.UnorderedRows = enabled
	}
}

// WithPrecision sets the decimal places doubles are decoded and compared at.
func WithPrecision(places int) Option {
	return func(opts *Options) {
		opts.Precision = places
	}
}

// WithReporter sets the diff reporter.
func WithReporter(r *diff.Reporter) Option {
	return func(opts *Options) {
		opts.Reporter = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// Engine runs test data against registered callables. An Engine keeps no
// state between runs and may be reused.
type Engine struct {
	opts       Options
	decoder    *decoder.Decoder
	comparator *compare.Comparator
	logger     *zap.Logger
}

// New creates an engine.
func New(opts ...Option) *Engine {
	options := Options{
		Strict:    true,
		Precision: decoder.DefaultPrecision,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Engine{
		opts: options,
		decoder: decoder.New(
			decoder.WithPrecision(options.Precision),
			decoder.WithLogger(options.Logger),
		),
		comparator: compare.New(
			compare.WithPrecision(options.Precision),
			compare.WithMultiset(options.Multiset),
			compare.WithUnorderedRows(options.UnorderedRows),
		),
		logger: options.Logger,
	}
}

// Sentinels are the expected-value literals marking a void call as not
// compared.
var Sentinels = []string{parser.NullLiteral, "N/A", "-"}

func isSentinel(tok parser.Token) bool {
	if tok.Style != parser.StyleScalar || tok.Quoted {
		return false
	}
	for _, s := range Sentinels {
		if tok.Value == s {
			return true
		}
	}
	return false
}

// decode decodes one token and turns format problems into errors.
// Dropped elements are returned for the case record.
func (e *Engine) decode(tok parser.Token, desc types.Descriptor) (any, []decoder.Drop, error) {
	res := e.decoder.Decode(tok, desc)
	if !res.OK() {
		return nil, res.Dropped, res.Err
	}
	for _, drop := range res.Dropped {
		if types.CodeOf(drop.Err).IsFormat() {
			return nil, res.Dropped, drop.Err
		}
	}
	return res.Value, res.Dropped, nil
}

// decodeTuple decodes the argument tuple of one stateful call: a bracket
// token whose children are the arguments in parameter order.
func (e *Engine) decodeTuple(sig *types.Signature, tok parser.Token) ([]any, []decoder.Drop, error) {
	var children []parser.Token
	if tok.IsNested() {
		var err error
		children, err = parser.Children(tok)
		if err != nil {
			return nil, nil, err
		}
	} else if !tok.IsBlank() && !tok.IsNull() {
		children = []parser.Token{tok}
	}

	if len(children) != sig.Arity() {
		return nil, nil, types.Errorf(types.ErrArgumentCount,
			"%s takes %d arguments, got %d", sig.Name, sig.Arity(), len(children))
	}

	args := make([]any, len(children))
	var dropped []decoder.Drop
	for i, child := range children {
		v, drops, err := e.decode(child, sig.Params[i].Type)
		dropped = append(dropped, drops...)
		if err != nil {
			return nil, dropped, err
		}
		args[i] = v
	}
	return args, dropped, nil
}

func (e *Engine) mismatch(header string, res compare.Result) {
	if e.opts.Reporter != nil {
		e.opts.Reporter.Mismatch(header, res)
	}
}

func (e *Engine) exception(header string, err error) {
	if e.opts.Reporter != nil {
		e.opts.Reporter.Exception(header, err)
	}
}
