package core

import (
	"fmt"
	"math"

	"github.com/davemus/malgo/pkg/types"
)

// number is the evaluator-internal view of a numeric operand: every
// operation folds over int64 until the first Float operand promotes the
// whole computation to float64.
type number struct {
	i       int64
	f       float64
	isFloat bool
}

func asNumber(name string, v types.Value) (number, error) {
	switch n := v.(type) {
	case types.Int:
		return number{i: int64(n)}, nil
	case types.Float:
		return number{f: float64(n), isFloat: true}, nil
	default:
		return number{}, types.NewTypeError(fmt.Sprintf("%s: expected a number, got %s", name, v.String()))
	}
}

func (n number) asFloat() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n number) value() types.Value {
	if n.isFloat {
		return types.Float(n.f)
	}
	return types.Int(n.i)
}

func registerArithmetic(ns map[types.Sym]*types.Builtin) {
	builtin(ns, "+", func(args []types.Value) (types.Value, error) {
		return fold("+", args, func(a, b int64) (int64, error) { return a + b, nil },
			func(a, b float64) float64 { return a + b })
	})
	builtin(ns, "-", func(args []types.Value) (types.Value, error) {
		return fold("-", args, func(a, b int64) (int64, error) { return a - b, nil },
			func(a, b float64) float64 { return a - b })
	})
	builtin(ns, "*", func(args []types.Value) (types.Value, error) {
		return fold("*", args, func(a, b int64) (int64, error) { return a * b, nil },
			func(a, b float64) float64 { return a * b })
	})
	builtin(ns, "/", func(args []types.Value) (types.Value, error) {
		// Integer division by zero is an error; float division follows
		// IEEE-754 and yields infinities or NaN.
		return fold("/", args, func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, types.NewArgumentError("division by zero")
			}
			return a / b, nil
		}, func(a, b float64) float64 { return a / b })
	})
	builtin(ns, "%", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("%", 2, args); err != nil {
			return nil, err
		}
		a, err := asNumber("%", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber("%", args[1])
		if err != nil {
			return nil, err
		}
		if a.isFloat || b.isFloat {
			return types.Float(math.Mod(a.asFloat(), b.asFloat())), nil
		}
		if b.i == 0 {
			return nil, types.NewArgumentError("division by zero")
		}
		return types.Int(a.i % b.i), nil
	})

	builtin(ns, "=", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("=", 2, args); err != nil {
			return nil, err
		}
		return types.Bool(types.Equal(args[0], args[1])), nil
	})
	compare(ns, "<", func(a, b float64) bool { return a < b })
	compare(ns, "<=", func(a, b float64) bool { return a <= b })
	compare(ns, ">", func(a, b float64) bool { return a > b })
	compare(ns, ">=", func(a, b float64) bool { return a >= b })
}

func fold(name string, args []types.Value, intOp func(a, b int64) (int64, error), floatOp func(a, b float64) float64) (types.Value, error) {
	if err := arityAtLeast(name, 2, args); err != nil {
		return nil, err
	}
	acc, err := asNumber(name, args[0])
	if err != nil {
		return nil, err
	}
	for _, arg := range args[1:] {
		n, err := asNumber(name, arg)
		if err != nil {
			return nil, err
		}
		if acc.isFloat || n.isFloat {
			acc = number{f: floatOp(acc.asFloat(), n.asFloat()), isFloat: true}
			continue
		}
		i, err := intOp(acc.i, n.i)
		if err != nil {
			return nil, err
		}
		acc = number{i: i}
	}
	return acc.value(), nil
}

func compare(ns map[types.Sym]*types.Builtin, name string, op func(a, b float64) bool) {
	builtin(ns, name, func(args []types.Value) (types.Value, error) {
		if err := arityExactly(name, 2, args); err != nil {
			return nil, err
		}
		a, err := asNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber(name, args[1])
		if err != nil {
			return nil, err
		}
		return types.Bool(op(a.asFloat(), b.asFloat())), nil
	})
}
