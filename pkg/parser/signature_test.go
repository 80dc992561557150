package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/leetcase/pkg/types"
)

func TestParseJavaSignature(t *testing.T) {
	sig, err := ParseSignature("public int[] twoSum(int[] nums, int target) {")
	require.NoError(t, err)

	assert.Equal(t, "twoSum", sig.Name)
	assert.Empty(t, sig.Receiver)
	assert.Equal(t, types.Array(types.ScalarInt, 1), sig.Return)
	require.Equal(t, 2, sig.Arity())
	assert.Equal(t, types.Param{Name: "nums", Type: types.Array(types.ScalarInt, 1), Decl: "int[]"}, sig.Params[0])
	assert.Equal(t, "target", sig.Params[1].Name)
	assert.Equal(t, "int[] twoSum(int[] nums, int target)", sig.String())
}

func TestParseJavaGenericParams(t *testing.T) {
	sig, err := ParseSignature("public List<List<Integer>> merge(List<List<Integer>> a, final Map<Integer, Integer> b)")
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrInvalidSignature))

	sig, err = ParseSignature("public List<List<Integer>> groups(@NotNull List<String> words, int k);")
	require.NoError(t, err)
	assert.Equal(t, types.Generic(types.ScalarInt, 2), sig.Return)
	assert.Equal(t, types.Generic(types.ScalarString, 1), sig.Params[0].Type)
	assert.Equal(t, "words", sig.Params[0].Name)
}

func TestParseJavaConstructor(t *testing.T) {
	sig, err := ParseSignature("public MinStack()")
	require.NoError(t, err)
	assert.Equal(t, "MinStack", sig.Name)
	assert.Equal(t, "MinStack", sig.Receiver)
	assert.True(t, sig.Return.IsVoid())
	assert.Zero(t, sig.Arity())

	sig, err = ParseSignature("LRUCache(int capacity)")
	require.NoError(t, err)
	assert.Equal(t, "LRUCache", sig.Receiver)
	assert.Equal(t, 1, sig.Arity())
}

func TestParseGoSignature(t *testing.T) {
	sig, err := ParseSignature("func twoSum(nums []int, target int) []int")
	require.NoError(t, err)
	assert.Equal(t, "twoSum", sig.Name)
	assert.Equal(t, types.Array(types.ScalarInt, 1), sig.Return)
	assert.Equal(t, "[]int", sig.Result)
	assert.Equal(t, "[]int", sig.Params[0].Decl)

	sig, err = ParseSignature("func merge(nums1 []int, m int, nums2 []int, n int)")
	require.NoError(t, err)
	assert.True(t, sig.Return.IsVoid())
	assert.Empty(t, sig.Result)
	assert.Equal(t, 4, sig.Arity())
}

func TestParseGoGroupedParams(t *testing.T) {
	sig, err := ParseSignature("func add(a, b int, s string) int")
	require.NoError(t, err)
	require.Equal(t, 3, sig.Arity())
	assert.Equal(t, "a", sig.Params[0].Name)
	assert.Equal(t, types.Scalar(types.ScalarInt), sig.Params[0].Type)
	assert.Equal(t, "b", sig.Params[1].Name)
	assert.Equal(t, types.Scalar(types.ScalarString), sig.Params[2].Type)

	sig, err = ParseSignature("func(int, []int) bool")
	require.Error(t, err)

	sig, err = ParseSignature("func f(int, []int) bool")
	require.NoError(t, err)
	assert.Empty(t, sig.Params[0].Name)
	assert.Equal(t, types.Array(types.ScalarInt, 1), sig.Params[1].Type)
}

func TestParseGoMethod(t *testing.T) {
	sig, err := ParseSignature("func (this *MinStack) Push(val int)")
	require.NoError(t, err)
	assert.Equal(t, "Push", sig.Name)
	assert.Equal(t, "MinStack", sig.Receiver)
	assert.True(t, sig.Return.IsVoid())

	sig, err = ParseSignature("func (c Codec) serialize(root *TreeNode) string")
	require.NoError(t, err)
	assert.Equal(t, "Codec", sig.Receiver)
	assert.Equal(t, types.Tree(), sig.Params[0].Type)
}

func TestParseGoConstructor(t *testing.T) {
	sig, err := ParseSignature("func Constructor(capacity int) LRUCache")
	require.NoError(t, err)
	assert.Equal(t, "Constructor", sig.Name)
	assert.Equal(t, "LRUCache", sig.Receiver)
	assert.Equal(t, "LRUCache", sig.Result)
	assert.True(t, sig.Return.IsVoid())

	sig, err = ParseSignature("func NewCounter() *Counter")
	require.NoError(t, err)
	assert.Equal(t, "Counter", sig.Receiver)
	assert.Equal(t, "*Counter", sig.Result)
}

func TestParseSignatureErrors(t *testing.T) {
	for _, decl := range []string{
		"",
		"int",
		"func f(a int",
		"func f() (int, error)",
		"func (s *S) M() Unknown",
		"public int f(Map<Integer,Integer> m)",
		"public int 9lives()",
		"func f(a) int",
	} {
		t.Run(decl, func(t *testing.T) {
			_, err := ParseSignature(decl)
			require.Error(t, err)
			assert.True(t, types.Is(err, types.ErrInvalidSignature), err.Error())
		})
	}
}

func TestSignatureOutputParam(t *testing.T) {
	sig := MustParseSignature("func merge(nums1 []int, m int, nums2 []int, n int)")

	i, inferred := sig.OutputParam()
	assert.Equal(t, 0, i)
	assert.True(t, inferred)
	assert.Equal(t, 2, sig.NonScalarParams())

	sig.Output = "nums2"
	i, inferred = sig.OutputParam()
	assert.Equal(t, 2, i)
	assert.False(t, inferred)

	i, _ = MustParseSignature("int f(int[] a)").OutputParam()
	assert.Equal(t, -1, i)

	i, _ = MustParseSignature("void f(int a)").OutputParam()
	assert.Equal(t, -1, i)
}
