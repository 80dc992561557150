package interp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/leetcase/pkg/functions"
	"github.com/sandrolain/leetcase/pkg/types"
)

const twoSumSource = `func twoSum(nums []int, target int) []int {
	seen := map[int]int{}
	for i, n := range nums {
		if j, ok := seen[target-n]; ok {
			return []int{j, i}
		}
		seen[n] = i
	}
	return nil
}
`

const minStackSource = `package main

type MinStack struct {
	data []int
	mins []int
}

func Constructor() MinStack {
	return MinStack{}
}

func (this *MinStack) Push(val int) {
	this.data = append(this.data, val)
	if len(this.mins) == 0 || val <= this.mins[len(this.mins)-1] {
		this.mins = append(this.mins, val)
	}
}

func (this *MinStack) Pop() {
	top := this.data[len(this.data)-1]
	this.data = this.data[:len(this.data)-1]
	if top == this.mins[len(this.mins)-1] {
		this.mins = this.mins[:len(this.mins)-1]
	}
}

func (this *MinStack) Top() int {
	return this.data[len(this.data)-1]
}

func (this *MinStack) GetMin() int {
	return this.mins[len(this.mins)-1]
}
`

func TestPrepareAddsPackageClause(t *testing.T) {
	p := prepare(twoSumSource)
	assert.Equal(t, "main", p.pkg)
	assert.True(t, strings.HasPrefix(p.text, "package main\n"))
	assert.Empty(t, p.aliases)
	assert.Zero(t, p.shims)
}

func TestPrepareKeepsPackageName(t *testing.T) {
	p := prepare("package solution\n\n" + twoSumSource)
	assert.Equal(t, "solution", p.pkg)
	assert.Equal(t, 1, strings.Count(p.text, "package "))
}

func TestPrepareAliasesNodeTypes(t *testing.T) {
	src := `/**
 * Definition for a binary tree node.
 * type TreeNode struct {
 *     Val int
 *     Left *TreeNode
 *     Right *TreeNode
 * }
 */
func maxDepth(root *TreeNode) int {
	if root == nil {
		return 0
	}
	return 1 + max(maxDepth(root.Left), maxDepth(root.Right))
}
`
	p := prepare(src)
	assert.Equal(t, []string{"TreeNode"}, p.aliases)
	assert.Contains(t, p.text, `import leetcasetypes "github.com/sandrolain/leetcase/pkg/types"`)
	assert.Contains(t, p.text, "type TreeNode = leetcasetypes.TreeNode")
}

func TestPrepareSkipsDeclaredNodeTypes(t *testing.T) {
	src := "type ListNode struct {\n\tVal  int\n\tNext *ListNode\n}\n\nfunc f(head *ListNode) int { return 0 }\n"
	assert.Empty(t, prepare(src).aliases)
}

func TestPrepareGeneratesShims(t *testing.T) {
	p := prepare(minStackSource)
	assert.Equal(t, 5, p.shims)
	assert.Contains(t, p.text, "func leetcaseNew_MinStack() *MinStack {\n\tv := Constructor()\n\treturn &v\n}")
	assert.Contains(t, p.text, "func leetcaseCall_MinStack_Push(r *MinStack, p0 int) {\n\tr.Push(p0)\n}")
	assert.Contains(t, p.text, "func leetcaseCall_MinStack_GetMin(r *MinStack) int {\n\treturn r.GetMin()\n}")
}

func TestPreparePointerConstructor(t *testing.T) {
	src := "type Counter struct{ n int }\n\nfunc NewCounter(start int) *Counter { return &Counter{n: start} }\n\nfunc (c *Counter) Inc() int { c.n++; return c.n }\n"
	p := prepare(src)
	assert.Contains(t, p.text, "func leetcaseNew_Counter(p0 int) *Counter {\n\treturn NewCounter(p0)\n}")
}

func TestProblem(t *testing.T) {
	reg := functions.NewRegistry()
	s, err := LoadSource(twoSumSource, WithRegistry(reg))
	require.NoError(t, err)

	assert.Equal(t, []string{"twoSum"}, s.Functions())

	p, err := s.Problem("twoSum")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Method.Signature.Arity())

	got, err := p.Method.Call(context.Background(), nil, []any{[]int{2, 7, 11, 15}, 9})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, got)

	registered, ok := reg.Problem("twoSum")
	require.True(t, ok)
	assert.Same(t, p, registered)
}

func TestProblemNotFound(t *testing.T) {
	s, err := LoadSource(twoSumSource)
	require.NoError(t, err)

	_, err = s.Problem("threeSum")
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrSignatureNotFound))
}

func TestProblemConvertsArguments(t *testing.T) {
	s, err := LoadSource("func sum(nums []int32) int64 {\n\tvar t int64\n\tfor _, n := range nums {\n\t\tt += int64(n)\n\t}\n\treturn t\n}\n")
	require.NoError(t, err)
	p, err := s.Problem("sum")
	require.NoError(t, err)

	got, err := p.Method.Call(context.Background(), nil, []any{[]int{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)
}

func TestProblemInPlace(t *testing.T) {
	src := "//leetcase:out nums\nfunc reverse(nums []int) {\n\tfor i, j := 0, len(nums)-1; i < j; i, j = i+1, j-1 {\n\t\tnums[i], nums[j] = nums[j], nums[i]\n\t}\n}\n"
	s, err := LoadSource(src)
	require.NoError(t, err)
	p, err := s.Problem("reverse")
	require.NoError(t, err)
	assert.Equal(t, "nums", p.Method.Signature.Output)

	args := []any{[]int{1, 2, 3}}
	_, err = p.Method.Call(context.Background(), nil, args)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, args[0])
}

func TestProblemPanicIsInvocationError(t *testing.T) {
	s, err := LoadSource("func first(nums []int) int {\n\treturn nums[0]\n}\n")
	require.NoError(t, err)
	p, err := s.Problem("first")
	require.NoError(t, err)

	_, err = p.Method.Call(context.Background(), nil, []any{[]int{}})
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrInvocation))
}

func TestTreeProblem(t *testing.T) {
	src := "func maxDepth(root *TreeNode) int {\n\tif root == nil {\n\t\treturn 0\n\t}\n\tl, r := maxDepth(root.Left), maxDepth(root.Right)\n\tif l > r {\n\t\treturn l + 1\n\t}\n\treturn r + 1\n}\n"
	s, err := LoadSource(src)
	require.NoError(t, err)
	p, err := s.Problem("maxDepth")
	require.NoError(t, err)

	root := &types.TreeNode{Val: 3, Left: &types.TreeNode{Val: 9}, Right: &types.TreeNode{Val: 20, Right: &types.TreeNode{Val: 7}}}
	got, err := p.Method.Call(context.Background(), nil, []any{root})
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestDesign(t *testing.T) {
	s, err := LoadSource(minStackSource)
	require.NoError(t, err)
	assert.Equal(t, []string{"MinStack"}, s.Designs())
	assert.Empty(t, s.Functions())

	d, err := s.Design("MinStack")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Push", "Pop", "Top", "GetMin"}, d.MethodNames())

	ctx := context.Background()
	recv, err := d.Construct(ctx, nil)
	require.NoError(t, err)

	call := func(name string, args ...any) any {
		t.Helper()
		m, ok := d.Lookup(name)
		require.True(t, ok, name)
		if args == nil {
			args = []any{}
		}
		got, err := m.Call(ctx, recv, args)
		require.NoError(t, err)
		return got
	}

	call("push", -2)
	call("push", 0)
	call("push", -3)
	assert.Equal(t, -3, call("getMin"))
	call("pop")
	assert.Equal(t, 0, call("top"))
	assert.Equal(t, -2, call("getMin"))
}

func TestDesignNotFound(t *testing.T) {
	s, err := LoadSource(minStackSource)
	require.NoError(t, err)

	_, err = s.Design("MaxStack")
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrSignatureNotFound))
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := LoadSource("func broken( {\n")
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrBinding))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.go")
	require.NoError(t, os.WriteFile(path, []byte(twoSumSource), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path)
	assert.Equal(t, twoSumSource, s.Source())

	_, err = Load(filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)
}

func TestCoerce(t *testing.T) {
	v, same, err := coerce([]int{1, 2}, reflectTypeOf[[]int]())
	require.NoError(t, err)
	assert.True(t, same)
	assert.Equal(t, []int{1, 2}, v.Interface())

	v, same, err = coerce([][]int{{1}, {2, 3}}, reflectTypeOf[[][]int64]())
	require.NoError(t, err)
	assert.False(t, same)
	assert.Equal(t, [][]int64{{1}, {2, 3}}, v.Interface())

	v, _, err = coerce(nil, reflectTypeOf[[]string]())
	require.NoError(t, err)
	assert.Nil(t, v.Interface())

	_, _, err = coerce("x", reflectTypeOf[int]())
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrArgumentType))
}

type userList struct {
	Val  int
	Next *userList
}

func TestNodeConversion(t *testing.T) {
	head := &types.ListNode{Val: 1, Next: &types.ListNode{Val: 2}}
	v, same, err := coerce(head, reflectTypeOf[*userList]())
	require.NoError(t, err)
	assert.False(t, same)
	ul := v.Interface().(*userList)
	assert.Equal(t, 1, ul.Val)
	assert.Equal(t, 2, ul.Next.Val)
	assert.Nil(t, ul.Next.Next)

	back := exportValue(v)
	assert.Equal(t, head, back)
}
