// Package parser implements the text grammars of leetcase.
//
// # Architecture
//
// The parser consists of three main components:
//   - Tokenizer: splits a bracket-delimited fragment into top-level tokens
//   - Descriptor grammar: reads type spellings such as int[][], List<List<Integer>>
//     or *TreeNode into a types.Descriptor
//   - Signature grammar: reads Java or Go declarations into a types.Signature,
//     either from explicit text or by scanning a source file for a declaration
//
// # Example
//
//	toks := parser.Tokenize("[[1,2],[3]]")
//	// toks[0].Value == "[1,2]", toks[1].Value == "[3]"
//
//	sig, err := parser.ParseSignature("public int[] twoSum(int[] nums, int target)")
//	if err != nil {
//	    log.Fatal(err)
//	}
package parser

import (
	"strings"

	"github.com/sandrolain/leetcase/pkg/types"
)

// scalarNames maps every accepted spelling of a primitive to its kind.
var scalarNames = map[string]types.ScalarKind{
	"int":       types.ScalarInt,
	"Integer":   types.ScalarInt,
	"int32":     types.ScalarInt,
	"long":      types.ScalarLong,
	"Long":      types.ScalarLong,
	"int64":     types.ScalarLong,
	"double":    types.ScalarDouble,
	"Double":    types.ScalarDouble,
	"float":     types.ScalarDouble,
	"Float":     types.ScalarDouble,
	"float64":   types.ScalarDouble,
	"float32":   types.ScalarDouble,
	"boolean":   types.ScalarBoolean,
	"Boolean":   types.ScalarBoolean,
	"bool":      types.ScalarBoolean,
	"char":      types.ScalarChar,
	"Character": types.ScalarChar,
	"byte":      types.ScalarChar,
	"rune":      types.ScalarChar,
	"String":    types.ScalarString,
	"string":    types.ScalarString,
}

// genericNames are the container spellings read as one level of List<T>.
var genericNames = map[string]bool{
	"List":       true,
	"ArrayList":  true,
	"LinkedList": true,
	"Collection": true,
	"Iterable":   true,
}

// ParseDescriptor parses a type spelling into a descriptor.
//
// Both Java spellings (int[][], List<List<Integer>>, TreeNode, void) and Go
// spellings ([][]int, *TreeNode, string) are accepted. An empty spelling is
// void, which is how Go declarations without results read.
func ParseDescriptor(text string) (types.Descriptor, error) {
	s := strings.Join(strings.Fields(text), "")
	if s == "" || s == "void" {
		return types.Void(), nil
	}

	// Go slices: []T, [][]T, ...
	arrayDepth := 0
	for strings.HasPrefix(s, "[]") {
		s = s[2:]
		arrayDepth++
	}
	// Java arrays: T[], T[][], ...
	for strings.HasSuffix(s, "[]") {
		s = s[:len(s)-2]
		arrayDepth++
	}

	// Generic lists: List<T>, List<List<T>>, ...
	genericDepth := 0
	for {
		open := strings.IndexByte(s, '<')
		if open <= 0 || !strings.HasSuffix(s, ">") {
			break
		}
		if !genericNames[s[:open]] {
			return types.Descriptor{}, invalidDescriptor(text, "unsupported container "+s[:open])
		}
		s = s[open+1 : len(s)-1]
		genericDepth++
	}

	s = strings.TrimPrefix(s, "*")

	if arrayDepth > 0 && genericDepth > 0 {
		return types.Descriptor{}, invalidDescriptor(text, "arrays of lists are not supported")
	}
	depth := arrayDepth + genericDepth
	if depth > types.MaxDepth {
		return types.Descriptor{}, invalidDescriptor(text, "nesting deeper than 3 levels")
	}

	switch s {
	case "TreeNode":
		if depth > 0 {
			return types.Descriptor{}, invalidDescriptor(text, "collections of trees are not supported")
		}
		return types.Tree(), nil
	case "ListNode":
		if depth > 0 {
			return types.Descriptor{}, invalidDescriptor(text, "collections of lists are not supported")
		}
		return types.LinkedList(), nil
	}

	elem, ok := scalarNames[s]
	if !ok {
		return types.Descriptor{}, invalidDescriptor(text, "unknown type "+s)
	}

	switch {
	case arrayDepth > 0:
		return types.Array(elem, arrayDepth), nil
	case genericDepth > 0:
		return types.Generic(elem, genericDepth), nil
	default:
		return types.Scalar(elem), nil
	}
}

// MustParseDescriptor is like ParseDescriptor but panics on error.
// It simplifies safe initialization of global variables and tests.
func MustParseDescriptor(text string) types.Descriptor {
	d, err := ParseDescriptor(text)
	if err != nil {
		panic("parser: ParseDescriptor(" + text + "): " + err.Error())
	}
	return d
}

func invalidDescriptor(text, message string) error {
	return types.NewError(types.ErrInvalidDescriptor, message, -1).WithToken(text)
}
