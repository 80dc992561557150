package decoder

import (
	"github.com/sandrolain/leetcase/pkg/parser"
	"github.com/sandrolain/leetcase/pkg/types"
)

// state accumulates the drops of one decode.
type state struct {
	dropped []Drop
}

func (st *state) drop(tok parser.Token, err error) {
	st.dropped = append(st.dropped, Drop{Token: tok.Value, Position: tok.Position, Err: err})
}

// children tokenizes a nested token. Tokens cut off by unbalanced brackets
// are recorded as one drop.
func (st *state) children(tok parser.Token) []parser.Token {
	t := parser.NewTokenizer(tok.Value)
	toks := t.Tokens()
	if err := t.Err(); err != nil {
		st.dropped = append(st.dropped, Drop{Token: tok.Value, Position: tok.Position, Err: err})
	}
	return toks
}

// element decodes one child token; ok is false when it was dropped.
type element[T any] func(parser.Token) (T, bool)

// leaf builds the element decoder of a depth-1 collection.
func leaf[T any](st *state, parse func(string) (T, error)) element[T] {
	return func(tok parser.Token) (T, bool) {
		var zero T
		if tok.IsNested() {
			st.drop(tok, shapeMismatch(tok, "scalar element"))
			return zero, false
		}
		v, err := parse(tok.Value)
		if err != nil {
			st.drop(tok, err)
			return zero, false
		}
		return v, true
	}
}

// collect decodes the children of a nested token, keeping the ones elem
// accepts. It returns false when tok is not nested at all.
func collect[T any](st *state, tok parser.Token, elem element[T]) ([]T, bool) {
	if !tok.IsNested() {
		return nil, false
	}
	children := st.children(tok)
	out := make([]T, 0, len(children))
	for _, child := range children {
		if v, ok := elem(child); ok {
			out = append(out, v)
		}
	}
	return out, true
}

// nested lifts an element decoder one level deeper: the resulting element
// is a row. Rows of the wrong shape are dropped.
func nested[T any](st *state, elem element[T]) element[[]T] {
	return func(tok parser.Token) ([]T, bool) {
		row, ok := collect(st, tok, elem)
		if !ok {
			st.drop(tok, shapeMismatch(tok, "nested row"))
		}
		return row, ok
	}
}

// sequenceOf decodes a depth 1..3 sequence whose leaves are decoded by elem.
func sequenceOf[T any](st *state, tok parser.Token, depth int, elem element[T]) (any, bool) {
	switch depth {
	case 1:
		return collect(st, tok, elem)
	case 2:
		return collect(st, tok, nested(st, elem))
	default:
		return collect(st, tok, nested(st, nested(st, elem)))
	}
}

func (d *Decoder) sequence(st *state, tok parser.Token, desc types.Descriptor) (any, error) {
	if tok.IsNull() {
		return Zero(desc), nil
	}

	var value any
	var ok bool
	depth := desc.Depth()
	switch desc.Elem() {
	case types.ScalarInt:
		value, ok = sequenceOf(st, tok, depth, leaf(st, parseInt))
	case types.ScalarLong:
		value, ok = sequenceOf(st, tok, depth, leaf(st, parseLong))
	case types.ScalarDouble:
		value, ok = sequenceOf(st, tok, depth, leaf(st, d.parseDouble))
	case types.ScalarBoolean:
		value, ok = sequenceOf(st, tok, depth, leaf(st, parseBool))
	case types.ScalarChar:
		value, ok = sequenceOf(st, tok, depth, leaf(st, parseChar))
	case types.ScalarString:
		value, ok = sequenceOf(st, tok, depth, leaf(st, parseString))
	default:
		return nil, types.Errorf(types.ErrUnsupportedType, "unsupported element %s", desc.Elem())
	}

	if !ok {
		return nil, shapeMismatch(tok, desc.String())
	}
	return value, nil
}

// tree rebuilds a binary tree from its level-order encoding. Every non-null
// node takes the next two slots as its children.
func (d *Decoder) tree(st *state, tok parser.Token) (any, error) {
	if tok.IsNull() {
		return (*types.TreeNode)(nil), nil
	}
	slots, ok := collect(st, tok, nullable(st))
	if !ok {
		return nil, shapeMismatch(tok, "TreeNode")
	}
	return BuildTree(slots), nil
}

// BuildTree links level-order slots into a tree; a nil slot is no node.
func BuildTree(slots []*int) *types.TreeNode {
	if len(slots) == 0 || slots[0] == nil {
		return nil
	}

	root := &types.TreeNode{Val: *slots[0]}
	queue := []*types.TreeNode{root}
	i := 1
	for len(queue) > 0 && i < len(slots) {
		node := queue[0]
		queue = queue[1:]

		if v := slots[i]; v != nil {
			node.Left = &types.TreeNode{Val: *v}
			queue = append(queue, node.Left)
		}
		i++

		if i < len(slots) {
			if v := slots[i]; v != nil {
				node.Right = &types.TreeNode{Val: *v}
				queue = append(queue, node.Right)
			}
			i++
		}
	}
	return root
}

// nullable decodes int slots where the null literal is an empty slot.
func nullable(st *state) element[*int] {
	ints := leaf(st, parseInt)
	return func(tok parser.Token) (*int, bool) {
		if tok.IsNull() {
			return nil, true
		}
		v, ok := ints(tok)
		if !ok {
			return nil, false
		}
		return &v, true
	}
}

func (d *Decoder) linkedList(st *state, tok parser.Token) (any, error) {
	if tok.IsNull() {
		return (*types.ListNode)(nil), nil
	}
	values, ok := collect(st, tok, leaf(st, parseInt))
	if !ok {
		return nil, shapeMismatch(tok, "ListNode")
	}
	return BuildList(values), nil
}

// BuildList chains values into a singly linked list in order.
func BuildList(values []int) *types.ListNode {
	var head, tail *types.ListNode
	for _, v := range values {
		node := &types.ListNode{Val: v}
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}
		tail = node
	}
	return head
}
