package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	cyberphone "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/google/uuid"

	"github.com/sandrolain/leetcase/pkg/compare"
	"github.com/sandrolain/leetcase/pkg/decoder"
)

// Outcome is the result of one test case.
type Outcome uint8

const (
	// OutcomePassed means every comparison of the case passed.
	OutcomePassed Outcome = iota
	// OutcomeFailed means a comparison failed or the case data was invalid.
	OutcomeFailed
	// OutcomeSkipped means the case was outside the range.
	OutcomeSkipped
	// OutcomeException means the invocation failed and the run stopped.
	OutcomeException
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeException:
		return "exception"
	default:
		return "unknown"
	}
}

// StepResult is the record of one call of a stateful case.
type StepResult struct {
	Index int // 0-based position in the group
	Name  string
	// Comparison is nil when the call was not compared.
	Comparison *compare.Result
	Err        error
}

// Failed reports whether the step errored or mismatched.
func (s StepResult) Failed() bool {
	return s.Err != nil || (s.Comparison != nil && !s.Comparison.Pass)
}

// CaseResult is the record of one test case.
type CaseResult struct {
	Index   int // 1-based
	Line    int // line of the first fragment
	Outcome Outcome
	// Comparison is nil when the case was not compared: skipped, void with
	// a sentinel expected value, or stateful (see Steps).
	Comparison *compare.Result
	Steps      []StepResult
	Dropped    []decoder.Drop
	Err        error
	Duration   time.Duration
}

// Report is the result of one run.
type Report struct {
	RunID   string
	Problem string
	Mode    string
	Range   Range
	Cases   []CaseResult
	// Failures lists the 1-based indices of failed cases.
	Failures []int
	// ExceptionIndex is the 1-based case at which a stateless run was
	// aborted, 0 when none.
	ExceptionIndex int
	Exception      error
	Duration       time.Duration
}

func newReport(problem, mode string, r Range) *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Problem: problem,
		Mode:    mode,
		Range:   r,
	}
}

func (r *Report) add(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if c.Outcome == OutcomeFailed {
		r.Failures = append(r.Failures, c.Index)
	}
}

// Accepted reports whether no case failed and no exception occurred.
func (r *Report) Accepted() bool {
	return len(r.Failures) == 0 && r.ExceptionIndex == 0
}

// Counts returns the number of passed, failed and skipped cases.
func (r *Report) Counts() (passed, failed, skipped int) {
	for _, c := range r.Cases {
		switch c.Outcome {
		case OutcomePassed:
			passed++
		case OutcomeFailed, OutcomeException:
			failed++
		case OutcomeSkipped:
			skipped++
		}
	}
	return passed, failed, skipped
}

// Summary returns "Accepted" or the failing case numbers followed by the
// exception, if any.
func (r *Report) Summary() string {
	if r.Accepted() {
		return "Accepted"
	}
	var lines []string
	if len(r.Failures) > 0 {
		nums := make([]string, len(r.Failures))
		for i, n := range r.Failures {
			nums[i] = strconv.Itoa(n)
		}
		lines = append(lines, "Failed cases: "+strings.Join(nums, ", "))
	}
	if r.ExceptionIndex > 0 {
		lines = append(lines, fmt.Sprintf("Exception at case %d: %v", r.ExceptionIndex, r.Exception))
	}
	return strings.Join(lines, "\n")
}

type jsonStep struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Compared bool   `json:"compared"`
	Pass     bool   `json:"pass"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Error    string `json:"error,omitempty"`
}

type jsonCase struct {
	Index    int        `json:"index"`
	Line     int        `json:"line"`
	Outcome  string     `json:"outcome"`
	Expected string     `json:"expected,omitempty"`
	Actual   string     `json:"actual,omitempty"`
	Reason   string     `json:"reason,omitempty"`
	Error    string     `json:"error,omitempty"`
	Dropped  []string   `json:"dropped,omitempty"`
	Steps    []jsonStep `json:"steps,omitempty"`
}

type jsonReport struct {
	RunID          string     `json:"run_id"`
	Problem        string     `json:"problem"`
	Mode           string     `json:"mode"`
	Range          string     `json:"range"`
	Accepted       bool       `json:"accepted"`
	Failures       []int      `json:"failures"`
	ExceptionIndex int        `json:"exception_index,omitempty"`
	Exception      string     `json:"exception,omitempty"`
	Cases          []jsonCase `json:"cases"`
}

// CanonicalJSON renders the report as RFC 8785 canonical JSON.
func (r *Report) CanonicalJSON() ([]byte, error) {
	out := jsonReport{
		RunID:          r.RunID,
		Problem:        r.Problem,
		Mode:           r.Mode,
		Range:          r.Range.String(),
		Accepted:       r.Accepted(),
		Failures:       append([]int{}, r.Failures...),
		ExceptionIndex: r.ExceptionIndex,
		Cases:          make([]jsonCase, 0, len(r.Cases)),
	}
	if r.Exception != nil {
		out.Exception = r.Exception.Error()
	}

	for _, c := range r.Cases {
		jc := jsonCase{Index: c.Index, Line: c.Line, Outcome: c.Outcome.String()}
		if c.Comparison != nil && !c.Comparison.Pass {
			jc.Expected = c.Comparison.Expected
			jc.Actual = c.Comparison.Actual
			jc.Reason = c.Comparison.Reason
		}
		if c.Err != nil {
			jc.Error = c.Err.Error()
		}
		for _, d := range c.Dropped {
			jc.Dropped = append(jc.Dropped, d.Token)
		}
		for _, s := range c.Steps {
			js := jsonStep{Index: s.Index, Name: s.Name, Compared: s.Comparison != nil, Pass: !s.Failed()}
			if s.Comparison != nil && !s.Comparison.Pass {
				js.Expected = s.Comparison.Expected
				js.Actual = s.Comparison.Actual
				js.Reason = s.Comparison.Reason
			}
			if s.Err != nil {
				js.Error = s.Err.Error()
			}
			jc.Steps = append(jc.Steps, js)
		}
		out.Cases = append(out.Cases, jc)
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	canonical, err := cyberphone.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize report: %w", err)
	}
	return canonical, nil
}
