// Package format renders Go values back into the bracket grammar.
//
// The output of Value decodes back to the same value: for every descriptor T
// and every value v built by T, decoding Value(v) against T yields v.
package format

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sandrolain/leetcase/pkg/types"
)

// DefaultPrecision is the number of decimals doubles are rendered with.
const DefaultPrecision = 5

// Value renders v with the default precision.
func Value(v any) string {
	return ValuePrecision(v, DefaultPrecision)
}

// ValuePrecision renders v with doubles printed to places decimals.
func ValuePrecision(v any, places int) string {
	var b strings.Builder
	w := writer{b: &b, places: places}
	w.value(v)
	return b.String()
}

type writer struct {
	b      *strings.Builder
	places int
}

func (w writer) value(v any) {
	switch x := v.(type) {
	case nil:
		w.b.WriteString("null")
	case int:
		w.b.WriteString(strconv.Itoa(x))
	case int64:
		w.b.WriteString(strconv.FormatInt(x, 10))
	case int32:
		w.b.WriteString(strconv.FormatInt(int64(x), 10))
	case float64:
		w.b.WriteString(strconv.FormatFloat(x, 'f', w.places, 64))
	case float32:
		w.b.WriteString(strconv.FormatFloat(float64(x), 'f', w.places, 64))
	case bool:
		w.b.WriteString(strconv.FormatBool(x))
	case byte:
		w.b.WriteString(Quote(string([]byte{x})))
	case string:
		w.b.WriteString(Quote(x))
	case *types.TreeNode:
		w.tree(x)
	case *types.ListNode:
		w.list(x)
	case []int:
		writeSlice(w, x)
	case [][]int:
		writeSlice(w, x)
	case []string:
		writeSlice(w, x)
	default:
		w.reflected(reflect.ValueOf(v))
	}
}

// writeSlice is the fast path for the most common slice types.
func writeSlice[T any](w writer, s []T) {
	w.b.WriteByte('[')
	for i := range s {
		if i > 0 {
			w.b.WriteByte(',')
		}
		w.value(s[i])
	}
	w.b.WriteByte(']')
}

func (w writer) reflected(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		w.b.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				w.b.WriteByte(',')
			}
			w.value(rv.Index(i).Interface())
		}
		w.b.WriteByte(']')
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			w.b.WriteString("null")
			return
		}
		w.value(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.b.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		w.b.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Uint8:
		w.b.WriteString(Quote(string([]byte{byte(rv.Uint())})))
	case reflect.Float32, reflect.Float64:
		w.b.WriteString(strconv.FormatFloat(rv.Float(), 'f', w.places, 64))
	case reflect.Bool:
		w.b.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.String:
		w.b.WriteString(Quote(rv.String()))
	case reflect.Invalid:
		w.b.WriteString("null")
	default:
		fmt.Fprintf(w.b, "%v", rv.Interface())
	}
}

// tree renders the level-order encoding with trailing nulls trimmed.
func (w writer) tree(root *types.TreeNode) {
	w.b.WriteByte('[')
	w.b.WriteString(strings.Join(TreeSlots(root), ","))
	w.b.WriteByte(']')
}

// CycleMarker ends the rendering of a list or tree that reaches a node twice.
const CycleMarker = "...(cycle)"

// TreeSlots returns the level-order slots of the tree, "null" for missing
// children, with trailing nulls trimmed. A node reached a second time ends
// the walk with CycleMarker and the slots before it are kept untrimmed.
func TreeSlots(root *types.TreeNode) []string {
	if root == nil {
		return nil
	}
	var slots []string
	seen := make(map[*types.TreeNode]bool)
	cyclic := false
	queue := []*types.TreeNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node == nil {
			slots = append(slots, "null")
			continue
		}
		if seen[node] {
			cyclic = true
			break
		}
		seen[node] = true
		slots = append(slots, strconv.Itoa(node.Val))
		queue = append(queue, node.Left, node.Right)
	}
	if cyclic {
		return append(slots, CycleMarker)
	}
	for len(slots) > 0 && slots[len(slots)-1] == "null" {
		slots = slots[:len(slots)-1]
	}
	return slots
}

func (w writer) list(head *types.ListNode) {
	w.b.WriteByte('[')
	seen := make(map[*types.ListNode]bool)
	for n := head; n != nil; n = n.Next {
		if len(seen) > 0 {
			w.b.WriteByte(',')
		}
		if seen[n] {
			w.b.WriteString(CycleMarker)
			break
		}
		seen[n] = true
		w.b.WriteString(strconv.Itoa(n.Val))
	}
	w.b.WriteByte(']')
}

// Quote wraps s in double quotes, escaping what the tokenizer unescapes.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		i += width
		if r == utf8.RuneError && width == 1 {
			b.WriteByte(s[i-1])
			continue
		}
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
