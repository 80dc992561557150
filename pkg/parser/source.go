package parser

import (
	"regexp"
	"strings"

	"github.com/sandrolain/leetcase/pkg/types"
)

// OutputDirective marks the observed output parameter of a void Go function
// when placed on the line above its declaration:
//
//	//leetcase:out nums1
//	func merge(nums1 []int, m int, nums2 []int, n int)
const OutputDirective = "//leetcase:out"

var (
	goMethodDecl = regexp.MustCompile(`(?m)^func\s*\(\s*\w*\s*\*?(\w+)\s*\)\s*(\w+)\s*\(`)
	goFuncDecl   = regexp.MustCompile(`(?m)^func\s+(\w+)\s*\(`)
)

// FindSignature scans source for the declaration of the callable name and
// parses it. Go functions and methods are matched at the start of a line;
// otherwise the first Java-style declaration "<type> name(" is used.
// Declarations spanning several lines are joined before parsing.
func FindSignature(source, name string) (*types.Signature, error) {
	for _, m := range goFuncDecl.FindAllStringSubmatchIndex(source, -1) {
		if source[m[2]:m[3]] == name {
			return parseDeclAt(source, m[0])
		}
	}
	for _, m := range goMethodDecl.FindAllStringSubmatchIndex(source, -1) {
		if source[m[4]:m[5]] == name {
			return parseDeclAt(source, m[0])
		}
	}

	javaDecl := regexp.MustCompile(`(?m)^[ \t]*(?:@\w+\s+)*(?:[\w<>\[\],\s]+?\s+)?` + regexp.QuoteMeta(name) + `\s*\(`)
	for _, m := range javaDecl.FindAllStringIndex(source, -1) {
		line := strings.TrimSpace(source[m[0]:m[1]])
		if strings.HasPrefix(line, "return ") || strings.HasPrefix(line, "new ") {
			continue
		}
		if sig, err := parseDeclAt(source, m[0]); err == nil {
			return sig, nil
		}
	}

	return nil, types.Errorf(types.ErrSignatureNotFound, "no declaration of %s", name)
}

// FindMethods returns the Go methods declared on receiver, in source order.
// Methods whose declarations use types outside the descriptor grammar are
// skipped: they cannot be driven by test data.
func FindMethods(source, receiver string) []*types.Signature {
	var out []*types.Signature
	for _, m := range goMethodDecl.FindAllStringSubmatchIndex(source, -1) {
		if source[m[2]:m[3]] != receiver {
			continue
		}
		sig, err := parseDeclAt(source, m[0])
		if err != nil {
			continue
		}
		out = append(out, sig)
	}
	return out
}

// FindReceivers returns the distinct receiver type names of the Go methods
// in source, in order of first appearance.
func FindReceivers(source string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range goMethodDecl.FindAllStringSubmatch(source, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// FindConstructor returns the Go function that builds receiver: either
// Constructor returning receiver or New<receiver>.
func FindConstructor(source, receiver string) (*types.Signature, error) {
	for _, name := range []string{"Constructor", "New" + receiver} {
		sig, err := FindSignature(source, name)
		if err != nil {
			continue
		}
		if sig.Receiver == receiver {
			return sig, nil
		}
	}
	return nil, types.Errorf(types.ErrSignatureNotFound, "no constructor of %s", receiver)
}

// parseDeclAt parses the declaration starting at offset, attaching the
// output directive found on the preceding line.
func parseDeclAt(source string, offset int) (*types.Signature, error) {
	sig, err := ParseSignature(declarationAt(source, offset))
	if err != nil {
		return nil, err
	}
	if out := directiveAbove(source, offset); out != "" {
		if sig.ParamIndex(out) < 0 {
			return nil, invalidSignature(sig.Name, "output directive names unknown parameter "+out)
		}
		sig.Output = out
	}
	return sig, nil
}

// declarationAt returns the declaration text from offset up to the body.
func declarationAt(source string, offset int) string {
	rest := source[offset:]
	depth := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '{', ';':
			if depth == 0 {
				return strings.Join(strings.Fields(rest[:i]), " ")
			}
		}
	}
	return strings.Join(strings.Fields(rest), " ")
}

func directiveAbove(source string, offset int) string {
	before := strings.TrimRight(source[:offset], " \t\r\n")
	line := before[strings.LastIndexByte(before, '\n')+1:]
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, OutputDirective) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(line, OutputDirective))
}
