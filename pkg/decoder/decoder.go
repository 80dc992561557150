// Package decoder converts tokens of the bracket grammar into typed Go values.
//
// Decoding is lenient: an element that fails to parse is dropped from its
// containing collection and decoding continues. Every drop is recorded on the
// Result so that callers can tell a clean decode from a partial one.
//
// # Example
//
//	d := decoder.New()
//	res := d.DecodeString("[3,9,20,null,null,15,7]", types.Tree())
//	root := res.Value.(*types.TreeNode)
package decoder

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/types"
)

// DefaultPrecision is the number of decimal places doubles are rounded to.
const DefaultPrecision = 5

// Status is the outcome of one decode.
type Status uint8

const (
	// StatusDecoded means every element was decoded.
	StatusDecoded Status = iota
	// StatusPartial means a value was produced but some elements were dropped.
	StatusPartial
	// StatusFailed means no value could be produced.
	StatusFailed
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusDecoded:
		return "decoded"
	case StatusPartial:
		return "partially decoded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Drop records one element removed during decoding.
type Drop struct {
	Token    string
	Position int
	Err      error
}

// Result is the outcome of decoding one token.
type Result struct {
	Value   any
	Status  Status
	Dropped []Drop
	Err     error // set when Status is StatusFailed
}

// OK reports whether a value was produced.
func (r Result) OK() bool {
	return r.Status != StatusFailed
}

// Options configures a Decoder.
type Options struct {
	// Precision is the number of decimal places doubles are rounded to.
	Precision int
	// Logger receives drop and failure diagnostics.
	Logger *zap.Logger
}

// Option configures a Decoder.
type Option func(*Options)

// WithPrecision sets the decimal places doubles are rounded to.
func WithPrecision(places int) Option {
	return func(opts *Options) {
		opts.Precision = places
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// Decoder decodes tokens according to type descriptors.
// A Decoder holds no per-call state and is safe for concurrent use.
type Decoder struct {
	precision int
	scale     float64
	logger    *zap.Logger
}

// New creates a decoder.
func New(opts ...Option) *Decoder {
	options := Options{Precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Precision < 0 {
		options.Precision = DefaultPrecision
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Decoder{
		precision: options.Precision,
		scale:     math.Pow10(options.Precision),
		logger:    options.Logger,
	}
}

// Precision returns the decimal places doubles are rounded to.
func (d *Decoder) Precision() int {
	return d.precision
}

// DecodeString classifies fragment as one token and decodes it.
func (d *Decoder) DecodeString(fragment string, desc types.Descriptor) Result {
	return d.Decode(parser.Fragment(fragment), desc)
}

// Decode converts tok into the Go value described by desc.
func (d *Decoder) Decode(tok parser.Token, desc types.Descriptor) Result {
	st := &state{}

	var value any
	var err error
	switch desc.Kind() {
	case types.KindVoid:
		return Result{Status: StatusDecoded}
	case types.KindScalar:
		value, err = d.scalar(tok, desc.Elem())
	case types.KindArray, types.KindGeneric:
		value, err = d.sequence(st, tok, desc)
	case types.KindTree:
		value, err = d.tree(st, tok)
	case types.KindLinkedList:
		value, err = d.linkedList(st, tok)
	default:
		err = types.Errorf(types.ErrUnsupportedType, "unsupported descriptor %s", desc)
		d.logger.Warn("Cannot decode value", zap.String("descriptor", desc.String()), zap.Error(err))
	}

	if err != nil {
		return Result{Status: StatusFailed, Dropped: st.dropped, Err: err}
	}
	if len(st.dropped) > 0 {
		for _, drop := range st.dropped {
			d.logger.Debug("Dropped element",
				zap.String("descriptor", desc.String()),
				zap.String("token", drop.Token),
				zap.Error(drop.Err))
		}
		return Result{Value: value, Status: StatusPartial, Dropped: st.dropped}
	}
	return Result{Value: value, Status: StatusDecoded}
}

// Zero returns the value an absent input decodes to for desc: a nil slice of
// the right type, a nil node or the zero scalar.
func Zero(desc types.Descriptor) any {
	switch desc.Kind() {
	case types.KindScalar:
		switch desc.Elem() {
		case types.ScalarInt:
			return 0
		case types.ScalarLong:
			return int64(0)
		case types.ScalarDouble:
			return 0.0
		case types.ScalarBoolean:
			return false
		case types.ScalarChar:
			return byte(0)
		case types.ScalarString:
			return ""
		}
	case types.KindArray, types.KindGeneric:
		switch desc.Elem() {
		case types.ScalarInt:
			return zeroSeq[int](desc.Depth())
		case types.ScalarLong:
			return zeroSeq[int64](desc.Depth())
		case types.ScalarDouble:
			return zeroSeq[float64](desc.Depth())
		case types.ScalarBoolean:
			return zeroSeq[bool](desc.Depth())
		case types.ScalarChar:
			return zeroSeq[byte](desc.Depth())
		case types.ScalarString:
			return zeroSeq[string](desc.Depth())
		}
	case types.KindTree:
		return (*types.TreeNode)(nil)
	case types.KindLinkedList:
		return (*types.ListNode)(nil)
	}
	return nil
}

func zeroSeq[T any](depth int) any {
	switch depth {
	case 1:
		return []T(nil)
	case 2:
		return [][]T(nil)
	default:
		return [][][]T(nil)
	}
}

// scalar decodes a top-level scalar; there is no container to drop from, so
// a parse failure fails the whole decode.
func (d *Decoder) scalar(tok parser.Token, kind types.ScalarKind) (any, error) {
	if tok.IsNested() {
		return nil, shapeMismatch(tok, "scalar")
	}
	switch kind {
	case types.ScalarInt:
		return parseInt(tok.Value)
	case types.ScalarLong:
		return parseLong(tok.Value)
	case types.ScalarDouble:
		return d.parseDouble(tok.Value)
	case types.ScalarBoolean:
		return parseBool(tok.Value)
	case types.ScalarChar:
		return parseChar(tok.Value)
	case types.ScalarString:
		return parseString(tok.Value)
	default:
		return nil, types.Errorf(types.ErrUnsupportedType, "unsupported scalar %s", kind)
	}
}

// Scalar parsers

func parseInt(text string) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, scalarError(text, "int", err)
	}
	return n, nil
}

func parseLong(text string) (int64, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, scalarError(text, "long", err)
	}
	return n, nil
}

func (d *Decoder) parseDouble(text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, scalarError(text, "double", err)
	}
	return d.Round(f), nil
}

// parseBool reads any text containing a 't' as true.
func parseBool(text string) (bool, error) {
	for i := 0; i < len(text); i++ {
		if text[i] == 't' || text[i] == 'T' {
			return true, nil
		}
	}
	return false, nil
}

func parseChar(text string) (byte, error) {
	if text == "" {
		return 0, scalarError(text, "char", nil)
	}
	return text[0], nil
}

func parseString(text string) (string, error) {
	return text, nil
}

// Round rounds f to the decoder precision.
func (d *Decoder) Round(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}
	return math.Round(f*d.scale) / d.scale
}

func scalarError(text, kind string, cause error) error {
	err := types.Errorf(types.ErrScalarParse, "cannot parse %s", kind).WithToken(text)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}

func shapeMismatch(tok parser.Token, want string) error {
	return types.NewError(types.ErrShapeMismatch, "expected "+want, tok.Position).WithToken(tok.Value)
}
