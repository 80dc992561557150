package decoder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/leetcase/pkg/types"
)

func TestDecodeScalars(t *testing.T) {
	d := New()
	tests := []struct {
		input    string
		desc     types.Descriptor
		expected any
	}{
		{"42", types.Scalar(types.ScalarInt), 42},
		{"-7", types.Scalar(types.ScalarInt), -7},
		{"9000000000", types.Scalar(types.ScalarLong), int64(9000000000)},
		{"3.14159265", types.Scalar(types.ScalarDouble), 3.14159},
		{"true", types.Scalar(types.ScalarBoolean), true},
		{"false", types.Scalar(types.ScalarBoolean), false},
		{`'x'`, types.Scalar(types.ScalarChar), byte('x')},
		{`"hello world"`, types.Scalar(types.ScalarString), "hello world"},
		{`""`, types.Scalar(types.ScalarString), ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := d.DecodeString(tt.input, tt.desc)
			require.NoError(t, res.Err)
			assert.Equal(t, StatusDecoded, res.Status)
			assert.Equal(t, tt.expected, res.Value)
		})
	}
}

func TestDecodeScalarFailures(t *testing.T) {
	d := New()
	tests := []struct {
		input string
		desc  types.Descriptor
		code  types.ErrorCode
	}{
		{"abc", types.Scalar(types.ScalarInt), types.ErrScalarParse},
		{"1.5", types.Scalar(types.ScalarInt), types.ErrScalarParse},
		{"[1]", types.Scalar(types.ScalarInt), types.ErrShapeMismatch},
		{"", types.Scalar(types.ScalarChar), types.ErrScalarParse},
		{"1", types.Array(types.ScalarInt, 1), types.ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := d.DecodeString(tt.input, tt.desc)
			assert.False(t, res.OK())
			assert.Equal(t, StatusFailed, res.Status)
			assert.True(t, types.Is(res.Err, tt.code), "got %v", res.Err)
		})
	}
}

func TestDecodeSequences(t *testing.T) {
	d := New()
	tests := []struct {
		name     string
		input    string
		desc     types.Descriptor
		expected any
	}{
		{"ints", "[1,2,3]", types.Array(types.ScalarInt, 1), []int{1, 2, 3}},
		{"empty", "[]", types.Array(types.ScalarInt, 1), []int{}},
		{"braces", "{4, 5}", types.Array(types.ScalarLong, 1), []int64{4, 5}},
		{"doubles", "[0.123456,2]", types.Array(types.ScalarDouble, 1), []float64{0.12346, 2}},
		{"bools", "[true,false]", types.Array(types.ScalarBoolean, 1), []bool{true, false}},
		{"chars", `["a","b"]`, types.Array(types.ScalarChar, 1), []byte{'a', 'b'}},
		{"grid", "[[1,2],[3]]", types.Array(types.ScalarInt, 2), [][]int{{1, 2}, {3}}},
		{"strings", `[["a","b"],["c"]]`, types.Generic(types.ScalarString, 2), [][]string{{"a", "b"}, {"c"}}},
		{"cube", "[[[1],[2,3]],[]]", types.Array(types.ScalarInt, 3), [][][]int{{{1}, {2, 3}}, {}}},
		{"null list", "null", types.Generic(types.ScalarInt, 1), []int(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.DecodeString(tt.input, tt.desc)
			require.True(t, res.OK(), "decode failed: %v", res.Err)
			assert.Equal(t, StatusDecoded, res.Status)
			if diff := cmp.Diff(tt.expected, res.Value); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeDropsBadElements(t *testing.T) {
	d := New()

	res := d.DecodeString("[1,a,3]", types.Array(types.ScalarInt, 1))
	assert.Equal(t, StatusPartial, res.Status)
	assert.Equal(t, []int{1, 3}, res.Value)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "a", res.Dropped[0].Token)
	assert.Equal(t, 3, res.Dropped[0].Position)
	assert.True(t, types.Is(res.Dropped[0].Err, types.ErrScalarParse))

	res = d.DecodeString("[[1],2]", types.Array(types.ScalarInt, 2))
	assert.Equal(t, StatusPartial, res.Status)
	assert.Equal(t, [][]int{{1}}, res.Value)
	require.Len(t, res.Dropped, 1)
	assert.True(t, types.Is(res.Dropped[0].Err, types.ErrShapeMismatch))

	res = d.DecodeString("[1,[2]]", types.Array(types.ScalarInt, 1))
	assert.Equal(t, []int{1}, res.Value)
	assert.Len(t, res.Dropped, 1)
}

func TestDecodeUnbalanced(t *testing.T) {
	res := New().DecodeString("[1,2", types.Array(types.ScalarInt, 1))
	assert.Equal(t, StatusPartial, res.Status)
	require.NotEmpty(t, res.Dropped)
	assert.True(t, types.Is(res.Dropped[len(res.Dropped)-1].Err, types.ErrUnbalancedBrackets))
}

func TestDecodeTree(t *testing.T) {
	d := New()

	res := d.DecodeString("[3,9,20,null,null,15,7]", types.Tree())
	require.True(t, res.OK())
	root := res.Value.(*types.TreeNode)
	want := &types.TreeNode{
		Val:  3,
		Left: &types.TreeNode{Val: 9},
		Right: &types.TreeNode{
			Val:   20,
			Left:  &types.TreeNode{Val: 15},
			Right: &types.TreeNode{Val: 7},
		},
	}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	for _, input := range []string{"[]", "null", "[null,1]"} {
		res = d.DecodeString(input, types.Tree())
		require.True(t, res.OK(), input)
		assert.Nil(t, res.Value.(*types.TreeNode), input)
	}

	// A null slot leaves the left child empty: [1,null,2] is a root with a
	// right child only.
	res = d.DecodeString("[1,null,2]", types.Tree())
	require.True(t, res.OK())
	root = res.Value.(*types.TreeNode)
	if diff := cmp.Diff(&types.TreeNode{Val: 1, Right: &types.TreeNode{Val: 2}}, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, root.Size())

	res = d.DecodeString("[1,null,2,3]", types.Tree())
	root = res.Value.(*types.TreeNode)
	assert.Nil(t, root.Left)
	assert.Equal(t, 2, root.Right.Val)
	assert.Equal(t, 3, root.Right.Left.Val)
}

func TestDecodeLinkedList(t *testing.T) {
	d := New()

	res := d.DecodeString("[1,2,3]", types.LinkedList())
	require.True(t, res.OK())
	assert.Equal(t, []int{1, 2, 3}, res.Value.(*types.ListNode).Values())

	res = d.DecodeString("[]", types.LinkedList())
	assert.Nil(t, res.Value.(*types.ListNode))

	res = d.DecodeString("4", types.LinkedList())
	assert.True(t, types.Is(res.Err, types.ErrShapeMismatch))
}

func TestDecodeVoid(t *testing.T) {
	res := New().DecodeString("anything", types.Void())
	assert.Equal(t, StatusDecoded, res.Status)
	assert.Nil(t, res.Value)
}

func TestPrecision(t *testing.T) {
	d := New(WithPrecision(2))
	assert.Equal(t, 2, d.Precision())
	assert.Equal(t, 1.23, d.Round(1.2345))

	res := d.DecodeString("[1.005,2.499]", types.Array(types.ScalarDouble, 1))
	assert.Equal(t, []float64{1, 2.5}, res.Value)

	assert.Equal(t, DefaultPrecision, New(WithPrecision(-1)).Precision())
}

func TestZero(t *testing.T) {
	assert.Equal(t, 0, Zero(types.Scalar(types.ScalarInt)))
	assert.Equal(t, int64(0), Zero(types.Scalar(types.ScalarLong)))
	assert.Equal(t, "", Zero(types.Scalar(types.ScalarString)))
	assert.Equal(t, [][]bool(nil), Zero(types.Array(types.ScalarBoolean, 2)))
	assert.Equal(t, [][][]string(nil), Zero(types.Generic(types.ScalarString, 3)))
	assert.Equal(t, (*types.TreeNode)(nil), Zero(types.Tree()))
	assert.Nil(t, Zero(types.Void()))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "decoded", StatusDecoded.String())
	assert.Equal(t, "partially decoded", StatusPartial.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
