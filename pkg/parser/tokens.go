package parser

// Style is the delimiter style of a token.
type Style uint8

const (
	// StyleScalar is a bare, undelimited value.
	StyleScalar Style = iota
	// StyleBracket is a fragment delimited by [ and ].
	StyleBracket
	// StyleBrace is a fragment delimited by { and }.
	StyleBrace
)

// String returns a string representation of the style.
func (s Style) String() string {
	switch s {
	case StyleBracket:
		return "[]"
	case StyleBrace:
		return "{}"
	default:
		return "(scalar)"
	}
}

// Open returns the opening delimiter, or 0 for scalars.
func (s Style) Open() rune {
	switch s {
	case StyleBracket:
		return '['
	case StyleBrace:
		return '{'
	default:
		return 0
	}
}

// Close returns the closing delimiter, or 0 for scalars.
func (s Style) Close() rune {
	switch s {
	case StyleBracket:
		return ']'
	case StyleBrace:
		return '}'
	default:
		return 0
	}
}

// NullLiteral is the literal that stands for "no value" in test data.
const NullLiteral = "null"

// Token is one top-level item of a fragment.
//
// For scalar tokens Value holds the cleaned text: ignorable characters are
// removed and quoted runs are unquoted and unescaped. For bracket and brace
// tokens Value holds the raw delimited text, delimiters included, so that it
// can be tokenized again one level deeper.
type Token struct {
	Style    Style  // Delimiter style
	Value    string // Cleaned scalar text or raw nested text
	Quoted   bool   // The scalar contained a quoted run
	Position int    // Byte offset in the fragment it was produced from
}

// IsNested reports whether the token is a bracket or brace sub-fragment.
func (t Token) IsNested() bool {
	return t.Style != StyleScalar
}

// IsBlank reports whether the token carries no text at all.
func (t Token) IsBlank() bool {
	return t.Style == StyleScalar && t.Value == "" && !t.Quoted
}

// IsNull reports whether the token is the unquoted null literal.
func (t Token) IsNull() bool {
	return t.Style == StyleScalar && !t.Quoted && t.Value == NullLiteral
}

// String returns the token text.
func (t Token) String() string {
	return t.Value
}

// openStyle maps an opening delimiter to its style.
func openStyle(r rune) (Style, bool) {
	switch r {
	case '[':
		return StyleBracket, true
	case '{':
		return StyleBrace, true
	default:
		return StyleScalar, false
	}
}

func isOpen(r rune) bool {
	return r == '[' || r == '{'
}

func isClose(r rune) bool {
	return r == ']' || r == '}'
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}

// IsIgnorable reports whether r is stripped while scanning outside quoted
// runs: quote and escape characters plus the ASCII whitespace/control set.
func IsIgnorable(r rune) bool {
	if r < 0x20 || r == 0x7f {
		return true
	}
	switch r {
	case ' ', '"', '\'', '\\':
		return true
	default:
		return false
	}
}

// IsSeparator reports whether r delimits tokens in the bracket grammar.
func IsSeparator(r rune) bool {
	return r == ',' || isOpen(r) || isClose(r)
}
