package compare

import (
	"fmt"

	"github.com/sandrolain/leetcase/pkg/types"
)

func asTree(v any) (*types.TreeNode, bool) {
	if v == nil {
		return nil, true
	}
	t, ok := v.(*types.TreeNode)
	return t, ok
}

func asList(v any) (*types.ListNode, bool) {
	if v == nil {
		return nil, true
	}
	l, ok := v.(*types.ListNode)
	return l, ok
}

// trees walks both trees in level order and stops at the first difference.
func trees(actual, expected any) string {
	a, aok := asTree(actual)
	e, eok := asTree(expected)
	if !aok || !eok {
		return fmt.Sprintf("type mismatch: %T vs %T", actual, expected)
	}

	seenA := make(map[*types.TreeNode]bool)
	seenE := make(map[*types.TreeNode]bool)
	qa := []*types.TreeNode{a}
	qe := []*types.TreeNode{e}
	for i := 0; len(qe) > 0; i++ {
		na, ne := qa[0], qe[0]
		qa, qe = qa[1:], qe[1:]

		switch {
		case na == nil && ne == nil:
			continue
		case na != nil && seenA[na]:
			return fmt.Sprintf("tree cycle at level-order slot %d: node %d reached twice", i, na.Val)
		case ne != nil && seenE[ne]:
			return fmt.Sprintf("expected tree cycle at level-order slot %d: node %d reached twice", i, ne.Val)
		case na == nil:
			return fmt.Sprintf("tree shape mismatch at level-order slot %d: missing node %d", i, ne.Val)
		case ne == nil:
			return fmt.Sprintf("tree shape mismatch at level-order slot %d: unexpected node %d", i, na.Val)
		case na.Val != ne.Val:
			return fmt.Sprintf("tree value mismatch at level-order slot %d: got %d, expected %d", i, na.Val, ne.Val)
		}
		seenA[na], seenE[ne] = true, true
		qa = append(qa, na.Left, na.Right)
		qe = append(qe, ne.Left, ne.Right)
	}
	return ""
}

// lists walks both lists together and stops at the first difference.
func lists(actual, expected any) string {
	a, aok := asList(actual)
	e, eok := asList(expected)
	if !aok || !eok {
		return fmt.Sprintf("type mismatch: %T vs %T", actual, expected)
	}

	seenA := make(map[*types.ListNode]bool)
	seenE := make(map[*types.ListNode]bool)
	i := 0
	for ; a != nil && e != nil; a, e, i = a.Next, e.Next, i+1 {
		switch {
		case seenA[a]:
			return fmt.Sprintf("list cycle at node %d: node %d reached twice", i, a.Val)
		case seenE[e]:
			return fmt.Sprintf("expected list cycle at node %d: node %d reached twice", i, e.Val)
		}
		seenA[a], seenE[e] = true, true
		if a.Val != e.Val {
			return fmt.Sprintf("list value mismatch at node %d: got %d, expected %d", i, a.Val, e.Val)
		}
	}
	switch {
	case a != nil && seenA[a]:
		return fmt.Sprintf("list cycle at node %d: node %d reached twice", i, a.Val)
	case a != nil:
		return fmt.Sprintf("list longer than expected: extra node at %d", i)
	case e != nil:
		return fmt.Sprintf("list shorter than expected: missing node at %d", i)
	}
	return ""
}
