package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sandrolain/leetcase/pkg/functions"
	"github.com/sandrolain/leetcase/pkg/loader"
	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/types"
)

// RunDesign executes a stateful design against blob. Each case is three
// fragments: call names, argument tuples and expected results, one entry
// per call. A call named like the design constructs a fresh receiver and
// its expected slot is ignored; every other call is looked up among the
// design methods and invoked on the live receiver.
//
// Invocation errors are recorded on the step and the sequence continues.
// The returned error is non-nil only when ctx is done.
func (e *Engine) RunDesign(ctx context.Context, d *functions.Design, blob *loader.Blob) (*Report, error) {
	if d == nil {
		return nil, types.Errorf(types.ErrBinding, "no design to run")
	}
	start := time.Now()
	report := newReport(d.Name, "design", e.opts.Range)
	logger := e.logger.With(zap.String("run_id", report.RunID), zap.String("design", d.Name))
	logger.Debug("Starting run", zap.Int("methods", len(d.Methods)), zap.Int("fragments", blob.Len()))

	cur := blob.Cursor()
	for idx := 1; !cur.Done(); idx++ {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}

		frags, err := cur.Take(3)
		c := CaseResult{Index: idx}
		if len(frags) > 0 {
			c.Line = frags[0].Line
		}
		if err != nil {
			logger.Warn("Incomplete call group", zap.Int("case", idx), zap.Error(err))
			c.Outcome = OutcomeFailed
			c.Err = err
			report.add(c)
			break
		}

		e.runGroup(ctx, d, frags, &c, logger)
		report.add(c)
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

// group is one tokenized (names, args, expected) triple.
type group struct {
	names    []parser.Token
	args     []parser.Token
	expected []parser.Token
}

func tokenizeGroup(frags []loader.Fragment) (group, error) {
	var g group
	dst := []*[]parser.Token{&g.names, &g.args, &g.expected}
	for i, f := range frags {
		t := parser.NewTokenizer(f.Text)
		*dst[i] = t.Tokens()
		if err := t.Err(); err != nil {
			return g, fmt.Errorf("line %d: %w", f.Line, err)
		}
	}
	if len(g.names) != len(g.args) || len(g.names) != len(g.expected) {
		return g, types.Errorf(types.ErrLengthMismatch,
			"call group lengths differ: %d names, %d argument tuples, %d expected values",
			len(g.names), len(g.args), len(g.expected))
	}
	return g, nil
}

func (e *Engine) runGroup(ctx context.Context, d *functions.Design, frags []loader.Fragment, c *CaseResult, logger *zap.Logger) {
	start := time.Now()
	defer func() { c.Duration = time.Since(start) }()

	g, err := tokenizeGroup(frags)
	if err != nil {
		logger.Warn("Invalid call group", zap.Int("case", c.Index), zap.Error(err))
		c.Outcome = OutcomeFailed
		c.Err = err
		return
	}
	if !e.opts.Range.Contains(c.Index) {
		c.Outcome = OutcomeSkipped
		return
	}

	// A fresh receiver per group; never carried over.
	var recv any
	c.Outcome = OutcomePassed
	for i, nameTok := range g.names {
		step := e.runStep(ctx, d, &recv, i, nameTok.Value, g.args[i], g.expected[i], c)
		c.Steps = append(c.Steps, step)
		if !step.Failed() {
			continue
		}
		c.Outcome = OutcomeFailed
		header := fmt.Sprintf("Case %d (line %d), call %d %s:", c.Index, c.Line, i+1, step.Name)
		if step.Err != nil {
			logger.Debug("Call failed", zap.Int("case", c.Index), zap.Int("call", i+1), zap.Error(step.Err))
			e.exception(header, step.Err)
		} else {
			e.mismatch(header, *step.Comparison)
		}
	}
}

func (e *Engine) runStep(ctx context.Context, d *functions.Design, recv *any, i int, name string, argTok, expTok parser.Token, c *CaseResult) StepResult {
	step := StepResult{Index: i, Name: name}

	if d.IsConstructor(name) {
		args, dropped, err := e.decodeTuple(d.Constructor.Signature, argTok)
		c.Dropped = append(c.Dropped, dropped...)
		if err != nil {
			step.Err = err
			return step
		}
		r, err := d.Construct(ctx, args)
		if err != nil {
			step.Err = err
			return step
		}
		*recv = r
		return step
	}

	m, ok := d.Lookup(name)
	if !ok {
		step.Err = types.Errorf(types.ErrUnknownMethod, "%s has no method %s", d.Name, name)
		return step
	}
	if *recv == nil {
		step.Err = types.Errorf(types.ErrNoReceiver, "%s called before %s was constructed", name, d.Name)
		return step
	}

	args, dropped, err := e.decodeTuple(m.Signature, argTok)
	c.Dropped = append(c.Dropped, dropped...)
	if err != nil {
		step.Err = err
		return step
	}
	result, err := m.Call(ctx, *recv, args)
	if err != nil {
		step.Err = err
		return step
	}

	if m.Signature.Return.IsVoid() {
		return step
	}
	expected, dropped, err := e.decode(expTok, m.Signature.Return)
	c.Dropped = append(c.Dropped, dropped...)
	if err != nil {
		step.Err = fmt.Errorf("expected value: %w", err)
		return step
	}
	step.Comparison = e.compareStep(result, expected, m.Signature.Return)
	return step
}
