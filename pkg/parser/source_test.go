package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/leetcase/pkg/types"
)

const goSource = `package main

// twoSum returns the indices of the two numbers adding up to target.
func twoSum(nums []int,
	target int) []int {
	return helper(nums, target)
}

//leetcase:out nums1
func merge(nums1 []int, m int, nums2 []int, n int) {
}

type LRUCache struct{ cap int }

func Constructor(capacity int) LRUCache {
	return LRUCache{cap: capacity}
}

func (this *LRUCache) Get(key int) int {
	return -1
}

func (this *LRUCache) Put(key int, value int) {}

func (this *LRUCache) debug() map[int]int { return nil }

type Counter struct{ n int }

func NewCounter() *Counter { return &Counter{} }

func (c *Counter) Inc() int { c.n++; return c.n }
`

const javaSource = `class Solution {
    public int[] twoSum(int[] nums, int target) {
        int[] res = helper(nums, target);
        return twoSum(nums, target - 1);
    }

    @Override
    public boolean isValid(String s) {
        return true;
    }
}
`

func TestFindSignatureGo(t *testing.T) {
	sig, err := FindSignature(goSource, "twoSum")
	require.NoError(t, err)
	assert.Equal(t, 2, sig.Arity())
	assert.Equal(t, types.Array(types.ScalarInt, 1), sig.Return)
}

func TestFindSignatureDirective(t *testing.T) {
	sig, err := FindSignature(goSource, "merge")
	require.NoError(t, err)
	assert.Equal(t, "nums1", sig.Output)

	_, err = FindSignature("//leetcase:out missing\nfunc f(a []int) {}\n", "f")
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrInvalidSignature))
}

func TestFindSignatureMethod(t *testing.T) {
	sig, err := FindSignature(goSource, "Get")
	require.NoError(t, err)
	assert.Equal(t, "LRUCache", sig.Receiver)
}

func TestFindSignatureJava(t *testing.T) {
	sig, err := FindSignature(javaSource, "twoSum")
	require.NoError(t, err)
	assert.Equal(t, "twoSum", sig.Name)
	assert.Equal(t, []string{"nums", "target"}, []string{sig.Params[0].Name, sig.Params[1].Name})

	sig, err = FindSignature(javaSource, "isValid")
	require.NoError(t, err)
	assert.Equal(t, types.Scalar(types.ScalarBoolean), sig.Return)
}

func TestFindSignatureNotFound(t *testing.T) {
	_, err := FindSignature(goSource, "threeSum")
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrSignatureNotFound))
}

func TestFindMethods(t *testing.T) {
	methods := FindMethods(goSource, "LRUCache")
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Name
	}
	// debug returns a map and cannot be driven by test data.
	assert.Equal(t, []string{"Get", "Put"}, names)
}

func TestFindReceivers(t *testing.T) {
	assert.Equal(t, []string{"LRUCache", "Counter"}, FindReceivers(goSource))
}

func TestFindConstructor(t *testing.T) {
	sig, err := FindConstructor(goSource, "LRUCache")
	require.NoError(t, err)
	assert.Equal(t, "Constructor", sig.Name)

	sig, err = FindConstructor(goSource, "Counter")
	require.NoError(t, err)
	assert.Equal(t, "NewCounter", sig.Name)
	assert.Equal(t, "*Counter", sig.Result)

	_, err = FindConstructor(goSource, "Missing")
	assert.True(t, types.Is(err, types.ErrSignatureNotFound))
}
