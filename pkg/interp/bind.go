package interp

import (
	"context"
	"reflect"

	"github.com/sandrolain/leetcase/pkg/functions"
	"github.com/sandrolain/leetcase/pkg/types"
)

var (
	treeType = reflect.TypeOf((*types.TreeNode)(nil))
	listType = reflect.TypeOf((*types.ListNode)(nil))
)

func funcInvoker(fn reflect.Value) functions.Invoker {
	return func(_ context.Context, _ any, args []any) (any, error) {
		out, err := call(fn, nil, args)
		if err != nil {
			return nil, err
		}
		return exportValue(out), nil
	}
}

func ctorInvoker(fn reflect.Value) functions.Invoker {
	return func(_ context.Context, _ any, args []any) (any, error) {
		v, err := call(fn, nil, args)
		if err != nil || !v.IsValid() {
			return nil, err
		}
		// The receiver stays a reflect.Value: interpreted types are only
		// usable through the generated shims.
		if v.Kind() == reflect.Ptr && v.IsNil() {
			return nil, nil
		}
		return v, nil
	}
}

func methodInvoker(fn reflect.Value) functions.Invoker {
	return func(_ context.Context, recv any, args []any) (any, error) {
		r, ok := recv.(reflect.Value)
		if !ok || !r.IsValid() {
			return nil, types.Errorf(types.ErrNoReceiver, "receiver is %T", recv)
		}
		out, err := call(fn, &r, args)
		if err != nil {
			return nil, err
		}
		return exportValue(out), nil
	}
}

// call coerces args to the parameter types of fn and calls it, returning
// the first result or the zero Value. Arguments that had to be converted
// are written back to args after the call so that in-place results stay
// observable.
func call(fn reflect.Value, recv *reflect.Value, args []any) (reflect.Value, error) {
	ft := fn.Type()
	offset := 0
	var in []reflect.Value
	if recv != nil {
		offset = 1
		in = append(in, *recv)
	}
	if ft.NumIn() != len(args)+offset {
		return reflect.Value{}, types.Errorf(types.ErrArgumentCount,
			"function takes %d arguments, got %d", ft.NumIn()-offset, len(args))
	}

	converted := make([]bool, len(args))
	for i, a := range args {
		v, same, err := coerce(a, ft.In(i+offset))
		if err != nil {
			return reflect.Value{}, types.Errorf(types.ErrArgumentType, "argument %d", i+1).WithCause(err)
		}
		converted[i] = !same
		in = append(in, v)
	}

	out := fn.Call(in)

	for i, c := range converted {
		if c && args[i] != nil {
			args[i] = exportValue(in[i+offset])
		}
	}
	if len(out) == 0 {
		return reflect.Value{}, nil
	}
	return out[0], nil
}

// coerce converts a decoded value to t. same is true when the returned value
// is a itself, sharing its storage.
func coerce(a any, t reflect.Type) (v reflect.Value, same bool, err error) {
	if a == nil {
		return reflect.Zero(t), true, nil
	}
	v = reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, true, nil
	}

	switch {
	case isNumber(v.Kind()) && isNumber(t.Kind()),
		v.Kind() == reflect.String && t.Kind() == reflect.String,
		v.Kind() == reflect.Bool && t.Kind() == reflect.Bool:
		return v.Convert(t), false, nil

	case v.Kind() == reflect.Slice && t.Kind() == reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(t), false, nil
		}
		out := reflect.MakeSlice(t, v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			e, _, err := coerce(v.Index(i).Interface(), t.Elem())
			if err != nil {
				return reflect.Value{}, false, err
			}
			out.Index(i).Set(e)
		}
		return out, false, nil

	case isNode(v.Type()) && t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct:
		out, err := copyNode(v, t)
		return out, false, err
	}

	return reflect.Value{}, false, types.Errorf(types.ErrArgumentType, "cannot use %s as %s", v.Type(), t)
}

// exportValue turns a value produced by interpreted code into one the
// comparator understands.
func exportValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return exportValue(v.Elem())
	case reflect.Ptr:
		if isNode(v.Type()) || v.Type().Elem().Kind() != reflect.Struct {
			break
		}
		if target := nodeTarget(v.Type().Elem()); target != nil {
			if v.IsNil() {
				return reflect.Zero(target).Interface()
			}
			if out, err := copyNode(v, target); err == nil {
				return out.Interface()
			}
		}
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Interface {
			out := make([]any, v.Len())
			for i := range out {
				out[i] = exportValue(v.Index(i))
			}
			return out
		}
	}
	if !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

func isNode(t reflect.Type) bool {
	return t == treeType || t == listType
}

// nodeTarget picks the node type a user declared struct maps to.
func nodeTarget(st reflect.Type) reflect.Type {
	if _, ok := st.FieldByName("Val"); !ok {
		return nil
	}
	if _, ok := st.FieldByName("Left"); ok {
		return treeType
	}
	if _, ok := st.FieldByName("Next"); ok {
		return listType
	}
	return nil
}

// copyNode copies a linked node structure field by field into a structure
// of pointer type t.
func copyNode(src reflect.Value, t reflect.Type) (reflect.Value, error) {
	for src.Kind() == reflect.Interface {
		src = src.Elem()
	}
	if !src.IsValid() || src.IsNil() {
		return reflect.Zero(t), nil
	}
	dst := reflect.New(t.Elem())
	se := src.Elem()
	for i := 0; i < se.NumField(); i++ {
		sf := se.Type().Field(i)
		df := dst.Elem().FieldByName(sf.Name)
		if !df.IsValid() || !df.CanSet() || !se.Field(i).CanInterface() {
			continue
		}
		fv := se.Field(i)
		if df.Kind() == reflect.Ptr && (fv.Kind() == reflect.Ptr || fv.Kind() == reflect.Interface) {
			child, err := copyNode(fv, df.Type())
			if err != nil {
				return reflect.Value{}, err
			}
			df.Set(child)
			continue
		}
		v, _, err := coerce(fv.Interface(), df.Type())
		if err != nil {
			return reflect.Value{}, err
		}
		df.Set(v)
	}
	return dst, nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
