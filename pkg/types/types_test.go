package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(ErrUnbalancedBrackets, "missing closing delimiter", 4).WithToken("[1,2")
	assert.Equal(t, `F0101 at position 4: missing closing delimiter (token "[1,2")`, err.Error())

	err = Errorf(ErrInvocation, "%s failed", "twoSum").WithCause(errors.New("boom"))
	assert.Equal(t, "I0101: twoSum failed: boom", err.Error())
}

func TestErrorMatching(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("case 3: %w", Errorf(ErrNoReceiver, "no receiver").WithCause(cause))

	assert.True(t, Is(err, ErrNoReceiver))
	assert.False(t, Is(err, ErrInvocation))
	assert.False(t, Is(nil, ErrNoReceiver))
	assert.Equal(t, ErrNoReceiver, CodeOf(err))
	assert.Equal(t, ErrorCode(""), CodeOf(cause))

	assert.True(t, errors.Is(err, Errorf(ErrNoReceiver, "")))
	assert.True(t, errors.Is(err, cause))
}

func TestErrorCodeFamilies(t *testing.T) {
	assert.True(t, ErrLengthMismatch.IsFormat())
	assert.True(t, ErrSignatureNotFound.IsFormat())
	assert.False(t, ErrScalarParse.IsFormat())
	assert.False(t, ErrMismatch.IsFormat())
}

func TestDescriptor(t *testing.T) {
	d := Array(ScalarInt, 3)
	assert.True(t, d.IsSequence())
	assert.Equal(t, 3, d.Depth())
	assert.Equal(t, "int[][][]", d.String())
	assert.Equal(t, Array(ScalarInt, 2), d.Inner())
	assert.Equal(t, Scalar(ScalarInt), d.Inner().Inner().Inner())

	g := Generic(ScalarChar, 2)
	assert.Equal(t, "List<List<Character>>", g.String())
	assert.Equal(t, KindGeneric, g.Inner().Kind())

	assert.False(t, Descriptor{}.IsValid())
	assert.Equal(t, "invalid", Descriptor{}.String())
	assert.True(t, Void().IsVoid())
	assert.Equal(t, Tree(), Tree().Inner())
	assert.Equal(t, "ListNode", LinkedList().String())
}

func TestDescriptorConstructorsPanic(t *testing.T) {
	assert.Panics(t, func() { Array(ScalarInt, 0) })
	assert.Panics(t, func() { Generic(ScalarInt, MaxDepth+1) })
	assert.Panics(t, func() { Array(ScalarNone, 1) })
}

func TestSignatureClone(t *testing.T) {
	s := &Signature{
		Name:   "merge",
		Params: []Param{{Name: "a", Type: Array(ScalarInt, 1)}, {Name: "n", Type: Scalar(ScalarInt)}},
		Return: Void(),
	}
	c := s.Clone()
	c.Params[0].Name = "b"
	c.Output = "b"

	assert.Equal(t, "a", s.Params[0].Name)
	assert.Empty(t, s.Output)
	assert.Equal(t, 0, c.ParamIndex("b"))
	assert.Equal(t, -1, c.ParamIndex("a"))
	assert.Equal(t, "void merge(int[] a, int n)", s.String())
}

func TestNodes(t *testing.T) {
	l := &ListNode{Val: 1, Next: &ListNode{Val: 2, Next: &ListNode{Val: 3}}}
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []int{1, 2, 3}, l.Values())

	var empty *ListNode
	assert.Zero(t, empty.Len())
	assert.Empty(t, empty.Values())

	tree := &TreeNode{Val: 1, Left: &TreeNode{Val: 2}, Right: &TreeNode{Val: 3, Left: &TreeNode{Val: 4}}}
	assert.Equal(t, 4, tree.Size())
	assert.Zero(t, (*TreeNode)(nil).Size())

	l.Next.Next.Next = l.Next
	assert.Equal(t, []int{1, 2, 3}, l.Values())
	tree.Right.Left.Right = tree
	assert.Equal(t, 4, tree.Size())
}
