package types

// TreeNode is a binary tree node.
type TreeNode struct {
	Val   int
	Left  *TreeNode
	Right *TreeNode
}

// ListNode is a singly linked list node.
type ListNode struct {
	Val  int
	Next *ListNode
}

// Len returns the number of distinct nodes reachable from l. The walk stops
// at the first node reached twice.
func (l *ListNode) Len() int {
	return len(l.Values())
}

// Values returns the node values in list order, stopping at the first node
// reached twice.
func (l *ListNode) Values() []int {
	var out []int
	seen := make(map[*ListNode]bool)
	for ; l != nil && !seen[l]; l = l.Next {
		seen[l] = true
		out = append(out, l.Val)
	}
	return out
}

// Size returns the number of distinct nodes in the tree rooted at t.
func (t *TreeNode) Size() int {
	seen := make(map[*TreeNode]bool)
	var walk func(*TreeNode)
	walk = func(n *TreeNode) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		walk(n.Left)
		walk(n.Right)
	}
	walk(t)
	return len(seen)
}
