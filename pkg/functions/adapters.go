package functions

import (
	"context"

	"github.com/sandrolain/leetcase/pkg/types"
)

// arg extracts args[i] as T. A nil argument is the zero T, which is how an
// empty tree, list or slice arrives.
func arg[T any](args []any, i int) (T, error) {
	var zero T
	if i >= len(args) {
		return zero, types.Errorf(types.ErrArgumentCount, "missing argument %d", i)
	}
	if args[i] == nil {
		return zero, nil
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, types.Errorf(types.ErrArgumentType, "argument %d is %T, want %T", i, args[i], zero)
	}
	return v, nil
}

// receiver extracts the live receiver as R.
func receiver[R any](recv any) (R, error) {
	var zero R
	if recv == nil {
		return zero, types.Errorf(types.ErrNoReceiver, "method called before construction")
	}
	r, ok := recv.(R)
	if !ok {
		return zero, types.Errorf(types.ErrArgumentType, "receiver is %T, want %T", recv, zero)
	}
	return r, nil
}

// Functions returning a value.

// Func0 adapts a function of no arguments returning a value.
func Func0[Ret any](fn func() Ret) Invoker {
	return func(ctx context.Context, recv any, args []any) (any, error) {
		return fn(), nil
	}
}

// Func1 adapts a function of one argument returning a value.
func Func1[A, Ret any](fn func(A) Ret) Invoker {
	return func(ctx context.Context, recv any, args []any) (any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		return fn(a), nil
	}
}

// Func2 adapts a function of two arguments returning a value.
func Func2[A, B, Ret any](fn func(A, B) Ret) Invoker {
	return func(ctx context.Context, recv any, args []any) (any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		return fn(a, b), nil
	}
}

// Func3 adapts a function of three arguments returning a value.
func Func3[A, B, C, Ret any](fn func(A, B, C) Ret) Invoker {
	return func(ctx context.Context, recv any, args []any) (any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		c, err := arg[C](args, 2)
		if err != nil {
			return nil, err
		}
		return fn(a, b, c), nil
	}
}

// Func4 adapts a function of four arguments returning a value.
func Func4[A, B, C, D, Ret any](fn func(A, B, C, D) Ret) Invoker {
	return func(ctx context.Context, recv any, args []any) (any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		c, err := arg[C](args, 2)
		if err != nil {
			return nil, err
		}
		d, err := arg[D](args, 3)
		if err != nil {
			return nil, err
		}
		return fn(a, b, c, d), nil
	}
}

// Void functions. The result is always nil; the engine observes the output
// parameter instead.

// Proc1 adapts a void function of one argument. Its result is nil; in-place
// changes to the arguments are what the engine observes.
func Proc1[A any](fn func(A)) Invoker {
	return Func1(func(a A) any { fn(a); return nil })
}

// Proc2 adapts a void function of two arguments.
func Proc2[A, B any](fn func(A, B)) Invoker {
	return Func2(func(a A, b B) any { fn(a, b); return nil })
}

// Proc3 adapts a void function of three arguments.
func Proc3[A, B, C any](fn func(A, B, C)) Invoker {
	return Func3(func(a A, b B, c C) any { fn(a, b, c); return nil })
}

// Proc4 adapts a void function of four arguments.
func Proc4[A, B, C, D any](fn func(A, B, C, D)) Invoker {
	return Func4(func(a A, b B, c C, d D) any { fn(a, b, c, d); return nil })
}

// Methods on a receiver of type R, usually written as method expressions:
// functions.Method1((*LRUCache).Get).

// Method0 adapts a method expression of no arguments returning a value, such
// as (*MinStack).GetMin. The receiver must have type R.
func Method0[R, Ret any](fn func(R) Ret) Invoker {
	return func(ctx context.Context, recv any, args []any) (any, error) {
		r, err := receiver[R](recv)
		if err != nil {
			return nil, err
		}
		return fn(r), nil
	}
}

// Method1 adapts a method expression of one argument returning a value.
func Method1[R, A, Ret any](fn func(R, A) Ret) Invoker {
	return func(ctx context.Context, recv any, args []any) (any, error) {
		r, err := receiver[R](recv)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		return fn(r, a), nil
	}
}

// Method2 adapts a method expression of two arguments returning a value.
func Method2[R, A, B, Ret any](fn func(R, A, B) Ret) Invoker {
	return func(ctx context.Context, recv any, args []any) (any, error) {
		r, err := receiver[R](recv)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		return fn(r, a, b), nil
	}
}

// Method3 adapts a method expression of three arguments returning a value.
func Method3[R, A, B, C, Ret any](fn func(R, A, B, C) Ret) Invoker {
	return func(ctx context.Context, recv any, args []any) (any, error) {
		r, err := receiver[R](recv)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		c, err := arg[C](args, 2)
		if err != nil {
			return nil, err
		}
		return fn(r, a, b, c), nil
	}
}

// MethodProc0 adapts a void method expression of no arguments.
func MethodProc0[R any](fn func(R)) Invoker {
	return Method0(func(r R) any { fn(r); return nil })
}

// MethodProc1 adapts a void method expression of one argument.
func MethodProc1[R, A any](fn func(R, A)) Invoker {
	return Method1(func(r R, a A) any { fn(r, a); return nil })
}

// MethodProc2 adapts a void method expression of two arguments.
func MethodProc2[R, A, B any](fn func(R, A, B)) Invoker {
	return Method2(func(r R, a A, b B) any { fn(r, a, b); return nil })
}

// MethodProc3 adapts a void method expression of three arguments.
func MethodProc3[R, A, B, C any](fn func(R, A, B, C)) Invoker {
	return Method3(func(r R, a A, b B, c C) any { fn(r, a, b, c); return nil })
}

// Constructors. The returned value becomes the receiver.

// Ctor0 adapts a constructor of no arguments; the value it returns becomes
// the receiver of the design's methods.
func Ctor0[R any](fn func() R) Invoker {
	return Func0(fn)
}

// Ctor1 adapts a constructor of one argument.
func Ctor1[A, R any](fn func(A) R) Invoker {
	return Func1(fn)
}

// Ctor2 adapts a constructor of two arguments.
func Ctor2[A, B, R any](fn func(A, B) R) Invoker {
	return Func2(fn)
}

// Ctor3 adapts a constructor of three arguments.
func Ctor3[A, B, C, R any](fn func(A, B, C) R) Invoker {
	return Func3(fn)
}
