package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sandrolain/leetcase/pkg/types"
)

const eof = -1

// Tokenizer splits a fragment into its top-level tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
//
// A fragment starting with [ or { is split on top-level commas; nested
// delimiters are tracked with a depth counter so that commas inside deeper
// brackets do not split a token. Any other fragment is a single scalar token.
type Tokenizer struct {
	input   string  // Input fragment being scanned
	length  int     // Length of input
	current int     // Current position in input
	width   int     // Width of last rune read
	style   Style   // Detected style of the whole fragment
	tokens  []Token // Tokens produced so far
	err     error   // First error encountered
	done    bool
}

// NewTokenizer creates a tokenizer for the provided fragment.
// The fragment is scanned lazily on the first call to Tokens, Style or Err.
func NewTokenizer(fragment string) *Tokenizer {
	return &Tokenizer{
		input:  fragment,
		length: len(fragment),
	}
}

// Tokenize returns the top-level tokens of fragment. Unbalanced input is
// silently truncated at the point of imbalance; use a Tokenizer to observe
// the error.
func Tokenize(fragment string) []Token {
	return NewTokenizer(fragment).Tokens()
}

// Fragment classifies a whole fragment as a single token: a bracket or brace
// token holding the raw text, or the scalar token it cleans up to.
func Fragment(fragment string) Token {
	trimmed := strings.TrimLeftFunc(fragment, isSpace)
	offset := len(fragment) - len(trimmed)
	trimmed = strings.TrimRightFunc(trimmed, isSpace)
	if trimmed == "" {
		return Token{Position: offset}
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	if style, ok := openStyle(r); ok {
		return Token{Style: style, Value: trimmed, Position: offset}
	}
	toks := Tokenize(fragment)
	if len(toks) == 0 {
		return Token{Position: offset}
	}
	return toks[0]
}

// Children tokenizes a nested token one level deeper.
// Scalar tokens have no children.
func Children(tok Token) ([]Token, error) {
	if !tok.IsNested() {
		return nil, nil
	}
	t := NewTokenizer(tok.Value)
	return t.Tokens(), t.Err()
}

// Tokens returns the top-level tokens of the fragment.
func (t *Tokenizer) Tokens() []Token {
	if !t.done {
		t.done = true
		t.run()
	}
	return t.tokens
}

// Style returns the detected style of the fragment.
func (t *Tokenizer) Style() Style {
	t.Tokens()
	return t.style
}

// Err returns the first error encountered while scanning, if any.
func (t *Tokenizer) Err() error {
	t.Tokens()
	return t.err
}

func (t *Tokenizer) run() {
	t.skipSpace()
	ch := t.nextRune()
	if ch == eof {
		return
	}

	style, ok := openStyle(ch)
	if !ok {
		t.backup()
		t.style = StyleScalar
		if tok := t.scanScalar(); !tok.IsBlank() {
			t.tokens = append(t.tokens, tok)
		}
		return
	}

	t.style = style
	t.scanItems()
}

// scanItems reads comma separated items until the closing delimiter of the
// outer fragment. The opening delimiter has already been consumed.
func (t *Tokenizer) scanItems() {
	for {
		t.skipSpace()
		start := t.current
		ch := t.nextRune()

		switch {
		case ch == eof:
			t.fail(start, "missing closing delimiter")
			return
		case isClose(ch):
			return
		case ch == ',':
			// Empty item
			continue
		case isOpen(ch):
			t.backup()
			tok, ok := t.scanNested()
			if !ok {
				t.fail(start, "unterminated nested fragment")
				return
			}
			t.tokens = append(t.tokens, tok)
			if !t.skipToSeparator() {
				return
			}
		default:
			t.backup()
			tok, term := t.scanElement(start)
			if term == eof {
				t.fail(start, "missing closing delimiter")
				return
			}
			if !tok.IsBlank() {
				t.tokens = append(t.tokens, tok)
			}
			if isClose(term) {
				return
			}
		}
	}
}

// scanNested reads a balanced sub-fragment, returning it raw.
func (t *Tokenizer) scanNested() (Token, bool) {
	start := t.current
	style, _ := openStyle(t.nextRune())
	depth := 1
	var quote rune

	for depth > 0 {
		r := t.nextRune()
		switch {
		case r == eof:
			return Token{}, false
		case quote != 0:
			if r == '\\' {
				t.nextRune()
			} else if r == quote {
				quote = 0
			}
		case isQuote(r):
			quote = r
		case isOpen(r):
			depth++
		case isClose(r):
			depth--
		}
	}

	return Token{Style: style, Value: t.input[start:t.current], Position: start}, true
}

// skipToSeparator discards anything between a nested token and the next
// separator. It returns false when the outer fragment ended.
func (t *Tokenizer) skipToSeparator() bool {
	for {
		r := t.nextRune()
		switch {
		case r == ',':
			return true
		case isClose(r):
			return false
		case r == eof:
			t.fail(t.current, "missing closing delimiter")
			return false
		}
	}
}

// scanElement reads one scalar item. It returns the token together with the
// rune that terminated it: a comma, a closing delimiter, an opening delimiter
// (left unread) or eof.
func (t *Tokenizer) scanElement(start int) (Token, rune) {
	var b strings.Builder
	quoted := false

	for {
		r := t.nextRune()
		switch {
		case r == eof:
			return Token{}, eof
		case isQuote(r):
			quoted = true
			if !t.scanQuoted(r, &b) {
				return Token{}, eof
			}
		case r == ',' || isClose(r):
			return Token{Value: b.String(), Quoted: quoted, Position: start}, r
		case isOpen(r):
			t.backup()
			return Token{Value: b.String(), Quoted: quoted, Position: start}, r
		case IsIgnorable(r):
			continue
		default:
			b.WriteRune(r)
		}
	}
}

// scanScalar reads the rest of the input as one unsplit scalar.
func (t *Tokenizer) scanScalar() Token {
	start := t.current
	var b strings.Builder
	quoted := false

	for {
		r := t.nextRune()
		switch {
		case r == eof:
			return Token{Value: b.String(), Quoted: quoted, Position: start}
		case isQuote(r):
			quoted = true
			// An unterminated quote keeps what was read.
			t.scanQuoted(r, &b)
		case IsIgnorable(r):
			continue
		default:
			b.WriteRune(r)
		}
	}
}

// scanQuoted copies a quoted run into b, unescaping it. The opening quote
// has already been consumed. It returns false if the quote is not closed.
func (t *Tokenizer) scanQuoted(quote rune, b *strings.Builder) bool {
	for {
		r := t.nextRune()
		switch r {
		case eof:
			return false
		case quote:
			return true
		case '\\':
			e := t.nextRune()
			if e == eof {
				return false
			}
			t.writeEscape(e, b)
		default:
			b.WriteRune(r)
		}
	}
}

func (t *Tokenizer) writeEscape(e rune, b *strings.Builder) {
	switch e {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'u':
		if t.current+4 <= t.length {
			if n, err := strconv.ParseUint(t.input[t.current:t.current+4], 16, 32); err == nil {
				t.current += 4
				b.WriteRune(rune(n))
				return
			}
		}
		b.WriteRune(e)
	default:
		// \\ \" \' \/ and anything unknown
		b.WriteRune(e)
	}
}

// Helper methods

func (t *Tokenizer) fail(pos int, message string) {
	if t.err != nil {
		return
	}
	end := pos + 16
	if end > t.length {
		end = t.length
	}
	t.err = types.NewError(types.ErrUnbalancedBrackets, message, pos).WithToken(t.input[pos:end])
}

func (t *Tokenizer) nextRune() rune {
	if t.current >= t.length {
		t.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(t.input[t.current:])
	t.width = w
	t.current += w
	return r
}

func (t *Tokenizer) backup() {
	t.current -= t.width
	t.width = 0
}

func (t *Tokenizer) skipSpace() {
	for {
		r := t.nextRune()
		if r == eof {
			return
		}
		if !isSpace(r) {
			t.backup()
			return
		}
	}
}

// isSpace reports ASCII whitespace and control characters.
func isSpace(r rune) bool {
	return r == ' ' || r < 0x20 || r == 0x7f
}
