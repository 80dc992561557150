package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sandrolain/leetcase/pkg/types"
)

type tokenizerTestCase struct {
	name      string
	input     string
	expected  []Token
	style     Style
	expectErr bool
}

func runTokenizerTests(t *testing.T, tests []tokenizerTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizer(tt.input)
			got := tok.Tokens()
			err := tok.Err()

			if tt.expectErr != (err != nil) {
				t.Fatalf("expected error %v, got %v", tt.expectErr, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
			if tok.Style() != tt.style {
				t.Errorf("expected style %s, got %s", tt.style, tok.Style())
			}
		})
	}
}

func TestTokenizerScalars(t *testing.T) {
	tests := []tokenizerTestCase{
		{
			name:     "number",
			input:    "42",
			expected: []Token{{Value: "42"}},
		},
		{
			name:     "surrounding whitespace",
			input:    "  42 ",
			expected: []Token{{Value: "42", Position: 2}},
		},
		{
			name:     "quoted string keeps spaces",
			input:    `"hello world"`,
			expected: []Token{{Value: "hello world", Quoted: true}},
		},
		{
			name:     "single quoted char",
			input:    `'a'`,
			expected: []Token{{Value: "a", Quoted: true}},
		},
		{
			name:     "escapes",
			input:    `"a\"b\\c\n"`,
			expected: []Token{{Value: "a\"b\\c\n", Quoted: true}},
		},
		{
			name:     "unicode escape",
			input:    `"\u0041"`,
			expected: []Token{{Value: "A", Quoted: true}},
		},
		{
			name:     "empty quoted string is not blank",
			input:    `""`,
			expected: []Token{{Quoted: true}},
		},
		{
			name:  "blank",
			input: "   ",
		},
	}

	runTokenizerTests(t, tests)
}

func TestTokenizerBrackets(t *testing.T) {
	tests := []tokenizerTestCase{
		{
			name:  "flat",
			input: "[1, 2,3]",
			style: StyleBracket,
			expected: []Token{
				{Value: "1", Position: 1},
				{Value: "2", Position: 4},
				{Value: "3", Position: 6},
			},
		},
		{
			name:  "empty",
			input: "[]",
			style: StyleBracket,
		},
		{
			name:  "empty items are skipped",
			input: "[1,,2]",
			style: StyleBracket,
			expected: []Token{
				{Value: "1", Position: 1},
				{Value: "2", Position: 4},
			},
		},
		{
			name:  "nested",
			input: "[[1,2],[3]]",
			style: StyleBracket,
			expected: []Token{
				{Style: StyleBracket, Value: "[1,2]", Position: 1},
				{Style: StyleBracket, Value: "[3]", Position: 7},
			},
		},
		{
			name:  "commas inside quotes",
			input: `["a,b","c"]`,
			style: StyleBracket,
			expected: []Token{
				{Value: "a,b", Quoted: true, Position: 1},
				{Value: "c", Quoted: true, Position: 7},
			},
		},
		{
			name:  "braces",
			input: "{1,2}",
			style: StyleBrace,
			expected: []Token{
				{Value: "1", Position: 1},
				{Value: "2", Position: 3},
			},
		},
		{
			name:  "null literal",
			input: "[null,1]",
			style: StyleBracket,
			expected: []Token{
				{Value: "null", Position: 1},
				{Value: "1", Position: 6},
			},
		},
	}

	runTokenizerTests(t, tests)
}

func TestTokenizerUnbalanced(t *testing.T) {
	tests := []tokenizerTestCase{
		{
			name:      "missing close",
			input:     "[1,2",
			style:     StyleBracket,
			expected:  []Token{{Value: "1", Position: 1}},
			expectErr: true,
		},
		{
			name:      "unterminated nested",
			input:     "[[1,2]",
			style:     StyleBracket,
			expected:  []Token{{Style: StyleBracket, Value: "[1,2]", Position: 1}},
			expectErr: true,
		},
	}

	runTokenizerTests(t, tests)

	_, err := Children(Token{Style: StyleBracket, Value: "[1,[2"})
	if !types.Is(err, types.ErrUnbalancedBrackets) {
		t.Fatalf("expected %s, got %v", types.ErrUnbalancedBrackets, err)
	}
}

func TestFragment(t *testing.T) {
	tests := []struct {
		input    string
		expected Token
	}{
		{"[1,2]", Token{Style: StyleBracket, Value: "[1,2]"}},
		{"  [1] ", Token{Style: StyleBracket, Value: "[1]", Position: 2}},
		{"7", Token{Value: "7"}},
		{`"abc"`, Token{Value: "abc", Quoted: true}},
		{"", Token{}},
	}

	for _, tt := range tests {
		got := Fragment(tt.input)
		if got != tt.expected {
			t.Errorf("Fragment(%q) = %+v, want %+v", tt.input, got, tt.expected)
		}
	}
}

func TestChildren(t *testing.T) {
	got, err := Children(Token{Style: StyleBracket, Value: "[1,[2]]"})
	if err != nil {
		t.Fatal(err)
	}
	want := []Token{
		{Value: "1", Position: 1},
		{Style: StyleBracket, Value: "[2]", Position: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	if got, _ := Children(Token{Value: "1"}); got != nil {
		t.Errorf("scalar has children: %v", got)
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(Token{Value: "null"}).IsNull() {
		t.Error("null literal not recognized")
	}
	if (Token{Value: "null", Quoted: true}).IsNull() {
		t.Error(`"null" must be a string`)
	}
	if !(Token{}).IsBlank() {
		t.Error("empty token is blank")
	}
	if (Token{Quoted: true}).IsBlank() {
		t.Error("empty quoted token is not blank")
	}
}
