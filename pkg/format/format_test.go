package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/leetcase/pkg/compare"
	"github.com/sandrolain/leetcase/pkg/decoder"
	"github.com/sandrolain/leetcase/pkg/format"
	"github.com/sandrolain/leetcase/pkg/types"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, "null"},
		{"int", 42, "42"},
		{"long", int64(-9000000000), "-9000000000"},
		{"double", 3.5, "3.50000"},
		{"bool", true, "true"},
		{"char", byte('a'), `"a"`},
		{"string", `say "hi"`, `"say \"hi\""`},
		{"ints", []int{1, 2}, "[1,2]"},
		{"nil ints", []int(nil), "[]"},
		{"grid", [][]int{{1}, {}}, "[[1],[]]"},
		{"strings", []string{"x", "y"}, `["x","y"]`},
		{"bools", []bool{true, false}, "[true,false]"},
		{"chars", [][]byte{{'a', 'b'}}, `[["a","b"]]`},
		{"any", []any{1, "a", nil}, `[1,"a",null]`},
		{"list", &types.ListNode{Val: 1, Next: &types.ListNode{Val: 2}}, "[1,2]"},
		{"nil list", (*types.ListNode)(nil), "[]"},
		{"tree", &types.TreeNode{Val: 1, Right: &types.TreeNode{Val: 2}}, "[1,null,2]"},
		{"nil tree", (*types.TreeNode)(nil), "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format.Value(tt.input))
		})
	}
}

func TestValuePrecision(t *testing.T) {
	assert.Equal(t, "0.10", format.ValuePrecision(0.1, 2))
	assert.Equal(t, "[1.0,2.5]", format.ValuePrecision([]float64{1, 2.5}, 1))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a\nb"`, format.Quote("a\nb"))
	assert.Equal(t, `"tab\t"`, format.Quote("tab\t"))
	assert.Equal(t, `"\u0001"`, format.Quote("\x01"))
	assert.Equal(t, `"héllo"`, format.Quote("héllo"))
}

func TestTreeSlots(t *testing.T) {
	root := &types.TreeNode{
		Val:   3,
		Left:  &types.TreeNode{Val: 9},
		Right: &types.TreeNode{Val: 20, Left: &types.TreeNode{Val: 15}, Right: &types.TreeNode{Val: 7}},
	}
	assert.Equal(t, []string{"3", "9", "20", "null", "null", "15", "7"}, format.TreeSlots(root))
	assert.Nil(t, format.TreeSlots(nil))
}

func TestCycles(t *testing.T) {
	list := &types.ListNode{Val: 1, Next: &types.ListNode{Val: 2}}
	list.Next.Next = list
	assert.Equal(t, "[1,2,...(cycle)]", format.Value(list))

	self := &types.ListNode{Val: 5}
	self.Next = self
	assert.Equal(t, "[5,...(cycle)]", format.Value(self))

	root := &types.TreeNode{Val: 3, Left: &types.TreeNode{Val: 9}, Right: &types.TreeNode{Val: 20}}
	root.Right.Right = root
	assert.Equal(t, []string{"3", "9", "20", "null", "null", "null", format.CycleMarker}, format.TreeSlots(root))
	assert.Equal(t, "[3,9,20,null,null,null,...(cycle)]", format.Value(root))
}

// Rendering a decoded value and decoding it again yields an equal value.
func TestRoundTrip(t *testing.T) {
	dec := decoder.New()
	tests := []struct {
		input string
		desc  types.Descriptor
	}{
		{"7", types.Scalar(types.ScalarInt)},
		{"123456789012", types.Scalar(types.ScalarLong)},
		{"2.71828", types.Scalar(types.ScalarDouble)},
		{"false", types.Scalar(types.ScalarBoolean)},
		{`"q"`, types.Scalar(types.ScalarChar)},
		{`"a \"quoted\" word"`, types.Scalar(types.ScalarString)},
		{"[1,-2,3]", types.Array(types.ScalarInt, 1)},
		{"[[1,2],[],[3]]", types.Array(types.ScalarInt, 2)},
		{"[[[1],[2,3]],[[4]]]", types.Array(types.ScalarLong, 3)},
		{"[0.5,1.25]", types.Array(types.ScalarDouble, 1)},
		{`[["a","b"],["c"]]`, types.Array(types.ScalarChar, 2)},
		{`["x,y","z"]`, types.Generic(types.ScalarString, 1)},
		{`[[["deep"]]]`, types.Generic(types.ScalarString, 3)},
		{"[3,9,20,null,null,15,7]", types.Tree()},
		{"[1,null,2]", types.Tree()},
		{"[1,5,4,2,9,9,9]", types.LinkedList()},
	}

	for _, tt := range tests {
		t.Run(tt.desc.String()+" "+tt.input, func(t *testing.T) {
			first := dec.DecodeString(tt.input, tt.desc)
			require.Equal(t, decoder.StatusDecoded, first.Status, "decode %q: %v", tt.input, first.Err)

			rendered := format.Value(first.Value)
			second := dec.DecodeString(rendered, tt.desc)
			require.Equal(t, decoder.StatusDecoded, second.Status, "decode %q: %v", rendered, second.Err)

			res := compare.Compare(second.Value, first.Value, tt.desc, true)
			assert.True(t, res.Pass, "%s: %s", rendered, res.Reason)
		})
	}
}
