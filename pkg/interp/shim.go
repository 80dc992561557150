package interp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/types"
)

// typesAlias is the import name used for the node types in prepared source.
const typesAlias = "leetcasetypes"

var (
	packageClause = regexp.MustCompile(`(?m)^package\s+(\w+)[^\n]*\n?`)
	funcName      = regexp.MustCompile(`(?m)^func\s+(\w+)\s*\(`)
)

// prepared is solution source ready for the interpreter.
type prepared struct {
	text    string
	pkg     string
	aliases []string
	shims   int
}

// prepare adds the package clause, the node aliases and the design shims
// a solution file needs to be interpreted and bound.
func prepare(source string) prepared {
	p := prepared{pkg: "main"}

	var head, body string
	if m := packageClause.FindStringSubmatchIndex(source); m != nil {
		p.pkg = source[m[2]:m[3]]
		head = source[:m[1]]
		body = source[m[1]:]
	} else {
		head = "package main\n"
		body = source
	}

	for _, name := range []string{"TreeNode", "ListNode"} {
		if usesUndeclared(source, name) {
			p.aliases = append(p.aliases, name)
		}
	}

	var b strings.Builder
	b.WriteString(head)
	if len(p.aliases) > 0 {
		fmt.Fprintf(&b, "\nimport %s %q\n\n", typesAlias, typesPath)
	}
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	for _, name := range p.aliases {
		fmt.Fprintf(&b, "\ntype %s = %s.%s\n", name, typesAlias, name)
	}

	for _, recv := range parser.FindReceivers(source) {
		ctor, err := parser.FindConstructor(source, recv)
		if err != nil {
			continue
		}
		writeCtorShim(&b, recv, ctor)
		p.shims++
		for _, m := range parser.FindMethods(source, recv) {
			writeMethodShim(&b, recv, m)
			p.shims++
		}
	}

	p.text = b.String()
	return p
}

// usesUndeclared reports whether source refers to the type name without
// declaring it.
func usesUndeclared(source, name string) bool {
	word := regexp.MustCompile(`\b` + name + `\b`)
	if !word.MatchString(source) {
		return false
	}
	decl := regexp.MustCompile(`(?m)^\s*type\s+` + name + `\b`)
	return !decl.MatchString(source)
}

func ctorShimName(recv string) string {
	return "leetcaseNew_" + recv
}

func methodShimName(recv, method string) string {
	return "leetcaseCall_" + recv + "_" + method
}

// writeCtorShim emits a constructor returning *recv, taking the address of
// a value result so that methods with pointer receivers keep their state.
func writeCtorShim(b *strings.Builder, recv string, ctor *types.Signature) {
	params, args := shimParams(ctor.Params)
	fmt.Fprintf(b, "\nfunc %s(%s) *%s {\n", ctorShimName(recv), params, recv)
	if strings.HasPrefix(ctor.Result, "*") {
		fmt.Fprintf(b, "\treturn %s(%s)\n}\n", ctor.Name, args)
		return
	}
	fmt.Fprintf(b, "\tv := %s(%s)\n\treturn &v\n}\n", ctor.Name, args)
}

// writeMethodShim emits a package level wrapper for a method of recv.
func writeMethodShim(b *strings.Builder, recv string, m *types.Signature) {
	params, args := shimParams(m.Params)
	if params != "" {
		params = ", " + params
	}
	name := methodShimName(recv, m.Name)
	if m.Result == "" {
		fmt.Fprintf(b, "\nfunc %s(r *%s%s) {\n\tr.%s(%s)\n}\n", name, recv, params, m.Name, args)
		return
	}
	fmt.Fprintf(b, "\nfunc %s(r *%s%s) %s {\n\treturn r.%s(%s)\n}\n", name, recv, params, m.Result, m.Name, args)
}

func shimParams(params []types.Param) (decl, call string) {
	decls := make([]string, len(params))
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = fmt.Sprintf("p%d", i)
		decls[i] = names[i] + " " + p.Decl
	}
	return strings.Join(decls, ", "), strings.Join(names, ", ")
}

// topLevelFuncs returns the names of the plain functions in source, in
// source order.
func topLevelFuncs(source string) []string {
	var names []string
	for _, m := range funcName.FindAllStringSubmatch(source, -1) {
		names = append(names, m[1])
	}
	return names
}
