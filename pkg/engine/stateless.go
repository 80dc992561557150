package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sandrolain/leetcase/pkg/compare"
	"github.com/sandrolain/leetcase/pkg/functions"
	"github.com/sandrolain/leetcase/pkg/loader"
	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/types"
)

// Run executes a stateless problem against blob. Each case consumes one
// fragment per parameter plus one expected fragment.
//
// A failed comparison or invalid case data fails that case and the run
// continues. An invocation error aborts the run and is recorded as the
// exception of the report. Running out of fragments part way through a case
// fails that case and ends the run. The returned error is non-nil only when
// ctx is done.
func (e *Engine) Run(ctx context.Context, p *functions.Problem, blob *loader.Blob) (*Report, error) {
	if p == nil || p.Method == nil {
		return nil, types.Errorf(types.ErrBinding, "no problem to run")
	}
	start := time.Now()
	sig := p.Method.Signature
	report := newReport(p.Name, "stateless", e.opts.Range)
	logger := e.logger.With(zap.String("run_id", report.RunID), zap.String("problem", p.Name))
	logger.Debug("Starting run", zap.Stringer("signature", sig), zap.Int("fragments", blob.Len()))

	cur := blob.Cursor()
	for idx := 1; !cur.Done(); idx++ {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}

		c, aborted := e.runCase(ctx, p, cur, idx, logger)
		report.add(c)
		if c.Outcome == OutcomeException {
			report.ExceptionIndex = idx
			report.Exception = c.Err
		}
		if aborted {
			break
		}
	}

	report.Duration = time.Since(start)
	passed, failed, skipped := report.Counts()
	logger.Info("Run finished",
		zap.Int("passed", passed),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped),
		zap.Bool("accepted", report.Accepted()),
		zap.Duration("duration", report.Duration))
	return report, nil
}

// runCase walks one case through AwaitingArgs, Invoked, AwaitingExpected and
// Compared. aborted is true when the run must stop after this case.
func (e *Engine) runCase(ctx context.Context, p *functions.Problem, cur *loader.Cursor, idx int, logger *zap.Logger) (c CaseResult, aborted bool) {
	start := time.Now()
	sig := p.Method.Signature
	c = CaseResult{Index: idx}
	defer func() { c.Duration = time.Since(start) }()

	// AwaitingArgs
	frags, err := cur.Take(sig.Arity() + 1)
	if len(frags) > 0 {
		c.Line = frags[0].Line
	}
	if err != nil {
		logger.Warn("Incomplete test case", zap.Int("case", idx), zap.Error(err))
		c.Outcome = OutcomeFailed
		c.Err = err
		return c, true
	}

	toks := make([]parser.Token, len(frags))
	for i, f := range frags {
		toks[i] = parser.Fragment(f.Text)
	}
	if !e.opts.Range.Contains(idx) {
		c.Outcome = OutcomeSkipped
		return c, false
	}

	args := make([]any, sig.Arity())
	for i, param := range sig.Params {
		v, dropped, err := e.decode(toks[i], param.Type)
		c.Dropped = append(c.Dropped, dropped...)
		if err != nil {
			c.Outcome = OutcomeFailed
			c.Err = fmt.Errorf("argument %s: %w", paramLabel(param, i), err)
			logger.Warn("Cannot decode argument", zap.Int("case", idx), zap.Error(c.Err))
			return c, false
		}
		args[i] = v
	}

	// Invoked
	result, err := p.Method.Call(ctx, p.Receiver(), args)
	if err != nil {
		c.Outcome = OutcomeException
		c.Err = err
		logger.Warn("Invocation failed", zap.Int("case", idx), zap.Error(err))
		e.exception(fmt.Sprintf("Case %d (line %d): exception", idx, c.Line), err)
		return c, true
	}

	// AwaitingExpected
	expTok := toks[len(toks)-1]
	actual, desc, compared := e.observed(sig, result, args, expTok, logger)
	if !compared {
		c.Outcome = OutcomePassed
		return c, false
	}
	expected, dropped, err := e.decode(expTok, desc)
	c.Dropped = append(c.Dropped, dropped...)
	if err != nil {
		c.Outcome = OutcomeFailed
		c.Err = fmt.Errorf("expected value: %w", err)
		logger.Warn("Cannot decode expected value", zap.Int("case", idx), zap.Error(c.Err))
		return c, false
	}

	// Compared
	res := e.comparator.Compare(actual, expected, desc, e.opts.Strict)
	c.Comparison = &res
	if res.Pass {
		c.Outcome = OutcomePassed
		return c, false
	}
	c.Outcome = OutcomeFailed
	logger.Debug("Case failed", zap.Int("case", idx), zap.String("reason", res.Reason))
	e.mismatch(fmt.Sprintf("Case %d (line %d):", idx, c.Line), res)
	return c, false
}

// observed selects the value compared against the expected fragment. For a
// void callable it is the output parameter, unless the expected fragment is
// a sentinel or no parameter can carry a result.
func (e *Engine) observed(sig *types.Signature, result any, args []any, expTok parser.Token, logger *zap.Logger) (any, types.Descriptor, bool) {
	if !sig.Return.IsVoid() {
		return result, sig.Return, true
	}
	if isSentinel(expTok) {
		return nil, types.Void(), false
	}

	i, inferred := sig.OutputParam()
	if i < 0 {
		logger.Debug("Void call without output parameter is not compared", zap.String("callable", sig.Name))
		return nil, types.Void(), false
	}
	if inferred && sig.NonScalarParams() > 1 {
		logger.Warn("Output parameter inferred by position",
			zap.String("callable", sig.Name),
			zap.String("param", paramLabel(sig.Params[i], i)))
	}
	return args[i], sig.Params[i].Type, true
}

func paramLabel(p types.Param, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("#%d", i+1)
}

// compareStep is shared by the stateful engine.
func (e *Engine) compareStep(actual, expected any, desc types.Descriptor) *compare.Result {
	res := e.comparator.Compare(actual, expected, desc, e.opts.Strict)
	return &res
}
