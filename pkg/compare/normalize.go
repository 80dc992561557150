package compare

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/sandrolain/leetcase/pkg/format"
)

// char keeps byte values apart from integers after normalization.
type char byte

// normalize maps a value onto a small set of types: int64, float64, bool,
// string, char, nil and []any for any slice or array. It allocates fresh
// slices and never writes to v.
func (c *Comparator) normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int:
		return int64(x)
	case int64:
		return x
	case float64:
		return x
	case bool, string:
		return x
	case byte:
		return char(x)
	case []int:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = int64(n)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint8:
		return char(rv.Uint())
	case reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = c.normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
	}
	return v
}

// key renders a normalized value so that equal values under unordered
// comparison get equal keys. Nested lists keep their order unless unordered
// rows are on; then they are keyed by their sorted element keys,
// deduplicated unless multiset semantics are on.
func (c *Comparator) key(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(c.round(x), 'f', c.precision, 64)
	case bool:
		return strconv.FormatBool(x)
	case string:
		return format.Quote(x)
	case char:
		return format.Quote(string([]byte{byte(x)}))
	case []any:
		if !c.rows {
			keys := make([]string, len(x))
			for i, e := range x {
				keys[i] = c.key(e)
			}
			return "[" + strings.Join(keys, ",") + "]"
		}
		keys := make([]string, 0, len(x))
		seen := make(map[string]bool, len(x))
		for _, e := range x {
			k := c.key(e)
			if !c.multiset && seen[k] {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "[" + strings.Join(keys, ",") + "]"
	default:
		return format.Value(v)
	}
}
