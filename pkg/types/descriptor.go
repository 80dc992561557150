// Package types defines the core type system for leetcase.
//
// This package contains type definitions for:
//   - Descriptor: the shape of one value (scalar, array, generic list, tree, linked list)
//   - Signature: the parameter and return descriptors of a callable
//   - TreeNode / ListNode: the recursive structures used by problems
//   - Error types: structured errors with codes
//
// Decoded values use plain Go types:
//
//	int      -> int          long    -> int64
//	double   -> float64      boolean -> bool
//	char     -> byte         String  -> string
//	T[] / List<T>  -> []T (up to three levels of nesting)
//	TreeNode -> *TreeNode    ListNode -> *ListNode
package types

import "strings"

// MaxDepth is the deepest nesting supported for arrays and generic lists.
const MaxDepth = 3

// Kind is the tag of a Descriptor.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindScalar
	KindArray
	KindGeneric
	KindTree
	KindLinkedList
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindGeneric:
		return "generic"
	case KindTree:
		return "tree"
	case KindLinkedList:
		return "linkedlist"
	default:
		return "invalid"
	}
}

// ScalarKind identifies a primitive element type.
type ScalarKind uint8

const (
	ScalarNone ScalarKind = iota
	ScalarInt
	ScalarLong
	ScalarDouble
	ScalarBoolean
	ScalarChar
	ScalarString
)

// String returns the primitive spelling of the scalar kind.
func (s ScalarKind) String() string {
	switch s {
	case ScalarInt:
		return "int"
	case ScalarLong:
		return "long"
	case ScalarDouble:
		return "double"
	case ScalarBoolean:
		return "boolean"
	case ScalarChar:
		return "char"
	case ScalarString:
		return "String"
	default:
		return "none"
	}
}

// Boxed returns the spelling used inside generic lists (Integer, Character, ...).
func (s ScalarKind) Boxed() string {
	switch s {
	case ScalarInt:
		return "Integer"
	case ScalarLong:
		return "Long"
	case ScalarDouble:
		return "Double"
	case ScalarBoolean:
		return "Boolean"
	case ScalarChar:
		return "Character"
	case ScalarString:
		return "String"
	default:
		return "none"
	}
}

// Descriptor describes the shape of one value. It is immutable: the zero
// value is an invalid descriptor and the constructors below are the only way
// to build a valid one.
type Descriptor struct {
	kind  Kind
	elem  ScalarKind
	depth int
}

// Void returns the descriptor of "no value".
func Void() Descriptor { return Descriptor{kind: KindVoid} }

// Scalar returns the descriptor of a single primitive value.
func Scalar(elem ScalarKind) Descriptor {
	return Descriptor{kind: KindScalar, elem: elem}
}

// Array returns the descriptor of a fixed-dimension array.
// It panics if depth is outside 1..MaxDepth or elem is ScalarNone.
func Array(elem ScalarKind, depth int) Descriptor {
	return sequence(KindArray, elem, depth)
}

// Generic returns the descriptor of a nested generic list.
// It panics if depth is outside 1..MaxDepth or elem is ScalarNone.
func Generic(elem ScalarKind, depth int) Descriptor {
	return sequence(KindGeneric, elem, depth)
}

func sequence(kind Kind, elem ScalarKind, depth int) Descriptor {
	if depth < 1 || depth > MaxDepth {
		panic("types: sequence depth out of range")
	}
	if elem == ScalarNone {
		panic("types: sequence without element kind")
	}
	return Descriptor{kind: kind, elem: elem, depth: depth}
}

// Tree returns the descriptor of a binary tree of ints.
func Tree() Descriptor { return Descriptor{kind: KindTree, elem: ScalarInt} }

// LinkedList returns the descriptor of a singly linked list of ints.
func LinkedList() Descriptor { return Descriptor{kind: KindLinkedList, elem: ScalarInt} }

// Kind returns the descriptor tag.
func (d Descriptor) Kind() Kind { return d.kind }

// Elem returns the scalar element kind (the value kind for scalars).
func (d Descriptor) Elem() ScalarKind { return d.elem }

// Depth returns the nesting depth of arrays and generic lists, 0 otherwise.
func (d Descriptor) Depth() int { return d.depth }

// IsValid reports whether the descriptor was built by a constructor.
func (d Descriptor) IsValid() bool { return d.kind != KindInvalid }

// IsVoid reports whether the descriptor denotes "no value".
func (d Descriptor) IsVoid() bool { return d.kind == KindVoid }

// IsScalar reports whether the descriptor is a single primitive.
func (d Descriptor) IsScalar() bool { return d.kind == KindScalar }

// IsSequence reports whether the descriptor is an array or a generic list.
func (d Descriptor) IsSequence() bool {
	return d.kind == KindArray || d.kind == KindGeneric
}

// Inner returns the descriptor of one element of a sequence: a sequence one
// level shallower, or the element scalar at depth 1. Non-sequences return
// themselves.
func (d Descriptor) Inner() Descriptor {
	if !d.IsSequence() {
		return d
	}
	if d.depth == 1 {
		return Scalar(d.elem)
	}
	return Descriptor{kind: d.kind, elem: d.elem, depth: d.depth - 1}
}

// String returns the canonical spelling of the descriptor.
func (d Descriptor) String() string {
	switch d.kind {
	case KindVoid:
		return "void"
	case KindScalar:
		return d.elem.String()
	case KindArray:
		return d.elem.String() + strings.Repeat("[]", d.depth)
	case KindGeneric:
		return strings.Repeat("List<", d.depth) + d.elem.Boxed() + strings.Repeat(">", d.depth)
	case KindTree:
		return "TreeNode"
	case KindLinkedList:
		return "ListNode"
	default:
		return "invalid"
	}
}
