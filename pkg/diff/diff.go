// Package diff prints two-line diagnostics for failed comparisons.
//
// Both rendered values are split into display tokens on the separators of
// the bracket grammar, walked in lockstep, and every token that differs from
// its counterpart (or has none) is highlighted:
//
//	Expect: [0,>>1<<]
//	Result: [0,>>2<<]
package diff

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandrolain/leetcase/pkg/compare"
	"github.com/sandrolain/leetcase/pkg/parser"
)

// Plain markers wrapped around differing tokens when colour is off.
const (
	MarkOpen  = ">>"
	MarkClose = "<<"
)

var (
	mismatchColor = lipgloss.Color("#E06C75")
	labelColor    = lipgloss.Color("#61AFEF")
)

// Reporter writes diff reports to an output stream.
type Reporter struct {
	w         io.Writer
	color     bool
	highlight lipgloss.Style
	label     lipgloss.Style
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithColor enables lipgloss highlighting instead of plain markers.
func WithColor(enabled bool) Option {
	return func(r *Reporter) {
		r.color = enabled
	}
}

// New creates a reporter writing to w.
func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{w: w}
	for _, opt := range opts {
		opt(r)
	}
	renderer := lipgloss.NewRenderer(w)
	r.highlight = renderer.NewStyle().Foreground(mismatchColor).Bold(true).Underline(true)
	r.label = renderer.NewStyle().Foreground(labelColor).Bold(true)
	return r
}

// Mismatch prints a header followed by the Expect/Result lines of res.
// Passing results print nothing.
func (r *Reporter) Mismatch(header string, res compare.Result) {
	if res.Pass {
		return
	}
	expect, result := Lines(res.Expected, res.Actual, r.mark)
	if header != "" {
		fmt.Fprintln(r.w, r.paint(r.label, header))
	}
	if res.Reason != "" {
		fmt.Fprintf(r.w, "  %s\n", res.Reason)
	}
	fmt.Fprintf(r.w, "  %s %s\n", r.paint(r.label, "Expect:"), expect)
	fmt.Fprintf(r.w, "  %s %s\n", r.paint(r.label, "Result:"), result)
}

// Exception prints an invocation failure.
func (r *Reporter) Exception(header string, err error) {
	fmt.Fprintln(r.w, r.paint(r.label, header))
	fmt.Fprintf(r.w, "  %s\n", r.paint(r.highlight, err.Error()))
}

// Printf writes a free-form line.
func (r *Reporter) Printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) mark(tok string) string {
	if r.color {
		return r.highlight.Render(tok)
	}
	return Mark(tok)
}

func (r *Reporter) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// Mark wraps tok in the plain markers.
func Mark(tok string) string {
	return MarkOpen + tok + MarkClose
}

// Lines walks the display tokens of expected and actual in lockstep and
// returns both strings with differing tokens passed through highlight.
func Lines(expected, actual string, highlight func(string) string) (string, string) {
	et := Tokens(expected)
	at := Tokens(actual)

	var eb, ab strings.Builder
	for i := 0; i < len(et) || i < len(at); i++ {
		switch {
		case i >= len(et):
			ab.WriteString(highlight(at[i]))
		case i >= len(at):
			eb.WriteString(highlight(et[i]))
		case et[i] == at[i]:
			eb.WriteString(et[i])
			ab.WriteString(at[i])
		default:
			eb.WriteString(highlight(et[i]))
			ab.WriteString(highlight(at[i]))
		}
	}
	return eb.String(), ab.String()
}

// Tokens splits a rendered value into display tokens. Separators of the
// bracket grammar become single-character tokens; quoted runs stay inside
// the token they belong to.
func Tokens(s string) []string {
	var toks []string
	start := -1
	var quote rune

	flush := func(end int) {
		if start >= 0 {
			toks = append(toks, s[start:end])
			start = -1
		}
	}

	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		switch {
		case quote != 0:
			if r == '\\' && i+w < len(s) {
				_, ew := utf8.DecodeRuneInString(s[i+w:])
				w += ew
			} else if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
			if start < 0 {
				start = i
			}
		case parser.IsSeparator(r):
			flush(i)
			toks = append(toks, s[i:i+w])
		case r == ' ':
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
		i += w
	}
	flush(len(s))
	return toks
}
