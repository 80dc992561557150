package parser

import (
	"strings"
	"unicode"

	"github.com/sandrolain/leetcase/pkg/types"
)

// javaModifiers are skipped in front of Java declarations and parameters.
var javaModifiers = map[string]bool{
	"public":       true,
	"private":      true,
	"protected":    true,
	"static":       true,
	"final":        true,
	"synchronized": true,
	"abstract":     true,
}

// ParseSignature parses a single callable declaration.
//
// Go declarations start with "func":
//
//	func twoSum(nums []int, target int) []int
//	func (this *MinStack) Push(val int)
//	func Constructor() MinStack
//
// Anything else is read as a Java method or constructor:
//
//	public int[] twoSum(int[] nums, int target)
//	public MinStack()
//
// Constructors have a Void return and carry the constructed type in Receiver.
func ParseSignature(decl string) (*types.Signature, error) {
	s := strings.TrimSpace(decl)
	if i := strings.IndexByte(s, '{'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.TrimSuffix(s, ";")
	if s == "" {
		return nil, invalidSignature(decl, "empty declaration")
	}

	if strings.HasPrefix(s, "func") && len(s) > 4 && (s[4] == ' ' || s[4] == '(' || s[4] == '\t') {
		return parseGoSignature(decl, strings.TrimSpace(s[4:]))
	}
	return parseJavaSignature(decl, s)
}

// MustParseSignature is like ParseSignature but panics on error.
func MustParseSignature(decl string) *types.Signature {
	sig, err := ParseSignature(decl)
	if err != nil {
		panic("parser: ParseSignature(" + decl + "): " + err.Error())
	}
	return sig
}

func parseGoSignature(decl, s string) (*types.Signature, error) {
	sig := &types.Signature{Return: types.Void()}

	// Receiver: (this *MinStack)
	if strings.HasPrefix(s, "(") {
		end := matchParen(s, 0)
		if end < 0 {
			return nil, invalidSignature(decl, "unterminated receiver")
		}
		fields := strings.Fields(s[1:end])
		if len(fields) == 0 {
			return nil, invalidSignature(decl, "empty receiver")
		}
		sig.Receiver = strings.TrimPrefix(fields[len(fields)-1], "*")
		s = strings.TrimSpace(s[end+1:])
	}

	open := strings.IndexByte(s, '(')
	if open <= 0 {
		return nil, invalidSignature(decl, "missing parameter list")
	}
	sig.Name = strings.TrimSpace(s[:open])
	if !isIdent(sig.Name) {
		return nil, invalidSignature(decl, "invalid name "+sig.Name)
	}
	close := matchParen(s, open)
	if close < 0 {
		return nil, invalidSignature(decl, "unterminated parameter list")
	}

	params, err := parseGoParams(decl, s[open+1:close])
	if err != nil {
		return nil, err
	}
	sig.Params = params

	result := strings.TrimSpace(s[close+1:])
	sig.Result = result
	if strings.HasPrefix(result, "(") {
		return nil, invalidSignature(decl, "multiple results are not supported")
	}
	if result == "" {
		return sig, nil
	}

	ret, err := ParseDescriptor(result)
	if err != nil {
		// func Constructor(...) MinStack builds a receiver of that type.
		name := strings.TrimPrefix(result, "*")
		if sig.Receiver == "" && isIdent(name) {
			sig.Receiver = name
			return sig, nil
		}
		return nil, invalidSignature(decl, "invalid result type").WithCause(err)
	}
	sig.Return = ret
	return sig, nil
}

// parseGoParams handles named, grouped (a, b int) and unnamed parameters.
func parseGoParams(decl, list string) ([]types.Param, error) {
	parts := splitTopLevel(list)
	if len(parts) == 0 {
		return nil, nil
	}

	// When no part has a name, every part is just a type.
	unnamed := len(strings.Fields(parts[len(parts)-1])) == 1

	var params []types.Param
	var pending []string
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			return nil, invalidSignature(decl, "empty parameter")
		}
		if unnamed {
			d, err := ParseDescriptor(part)
			if err != nil {
				return nil, invalidSignature(decl, "invalid parameter type").WithCause(err)
			}
			params = append(params, types.Param{Type: d, Decl: part})
			continue
		}
		if len(fields) == 1 {
			pending = append(pending, fields[0])
			continue
		}
		spelled := strings.Join(fields[1:], " ")
		d, err := ParseDescriptor(spelled)
		if err != nil {
			return nil, invalidSignature(decl, "invalid type of parameter "+fields[0]).WithCause(err)
		}
		for _, name := range pending {
			params = append(params, types.Param{Name: name, Type: d, Decl: spelled})
		}
		pending = pending[:0]
		params = append(params, types.Param{Name: fields[0], Type: d, Decl: spelled})
	}
	if len(pending) > 0 {
		return nil, invalidSignature(decl, "parameter without type")
	}
	return params, nil
}

func parseJavaSignature(decl, s string) (*types.Signature, error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 {
		return nil, invalidSignature(decl, "missing parameter list")
	}
	close := matchParen(s, open)
	if close < 0 {
		return nil, invalidSignature(decl, "unterminated parameter list")
	}

	head := stripModifiers(stripAnnotations(s[:open]))
	nameStart := strings.LastIndexFunc(head, func(r rune) bool { return !isIdentRune(r) }) + 1
	name := head[nameStart:]
	if !isIdent(name) {
		return nil, invalidSignature(decl, "invalid name "+name)
	}
	retText := strings.TrimSpace(head[:nameStart])

	sig := &types.Signature{Name: name, Return: types.Void(), Result: retText}
	if retText == "" {
		// public MinStack(...)
		sig.Receiver = name
	} else {
		ret, err := ParseDescriptor(retText)
		if err != nil {
			return nil, invalidSignature(decl, "invalid return type").WithCause(err)
		}
		sig.Return = ret
	}

	for _, part := range splitTopLevel(s[open+1 : close]) {
		p := stripModifiers(stripAnnotations(part))
		cut := strings.LastIndexFunc(p, func(r rune) bool { return !isIdentRune(r) }) + 1
		pname := p[cut:]
		ptype := strings.TrimSpace(p[:cut])
		if ptype == "" || !isIdent(pname) {
			return nil, invalidSignature(decl, "invalid parameter "+part)
		}
		d, err := ParseDescriptor(ptype)
		if err != nil {
			return nil, invalidSignature(decl, "invalid type of parameter "+pname).WithCause(err)
		}
		sig.Params = append(sig.Params, types.Param{Name: pname, Type: d, Decl: ptype})
	}
	return sig, nil
}

// splitTopLevel splits a parameter list by commas that are not nested in
// <>, [] or ().
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '[', '(':
			depth++
		case '>', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	if rest := strings.TrimSpace(s[start:]); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

// matchParen returns the index of the parenthesis closing the one at open.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func stripModifiers(s string) string {
	for {
		s = strings.TrimSpace(s)
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 || !javaModifiers[s[:i]] {
			return s
		}
		s = s[i:]
	}
}

func stripAnnotations(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasPrefix(s, "@") {
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			return ""
		}
		s = strings.TrimSpace(s[i:])
	}
	return s
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isIdentRune(r) || (i == 0 && unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

func invalidSignature(decl, message string) *types.Error {
	return types.NewError(types.ErrInvalidSignature, message, -1).WithToken(strings.TrimSpace(decl))
}
