package core

import (
	"fmt"

	"github.com/davemus/malgo/pkg/eval"
	"github.com/davemus/malgo/pkg/types"
)

// seqItems widens types.Seq to also treat nil as an empty sequence, which
// most sequence builtins accept.
func seqItems(name string, v types.Value) ([]types.Value, error) {
	if _, ok := v.(types.Nil); ok {
		return nil, nil
	}
	if items, ok := types.Seq(v); ok {
		return items, nil
	}
	return nil, types.NewTypeError(fmt.Sprintf("%s: expected a list or vector, got %s", name, v.String()))
}

func registerSequences(ns map[types.Sym]*types.Builtin) {
	builtin(ns, "list", func(args []types.Value) (types.Value, error) {
		return types.NewList(args...), nil
	})

	builtin(ns, "cons", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("cons", 2, args); err != nil {
			return nil, err
		}
		tail, err := seqItems("cons", args[1])
		if err != nil {
			return nil, err
		}
		items := make([]types.Value, 0, len(tail)+1)
		items = append(items, args[0])
		items = append(items, tail...)
		return types.NewList(items...), nil
	})

	builtin(ns, "concat", func(args []types.Value) (types.Value, error) {
		var items []types.Value
		for _, arg := range args {
			part, err := seqItems("concat", arg)
			if err != nil {
				return nil, err
			}
			items = append(items, part...)
		}
		return types.NewList(items...), nil
	})

	builtin(ns, "vec", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("vec", 1, args); err != nil {
			return nil, err
		}
		if v, ok := args[0].(*types.Vector); ok {
			return v, nil
		}
		items, err := seqItems("vec", args[0])
		if err != nil {
			return nil, err
		}
		return types.NewVector(items...), nil
	})

	builtin(ns, "nth", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("nth", 2, args); err != nil {
			return nil, err
		}
		items, err := seqItems("nth", args[0])
		if err != nil {
			return nil, err
		}
		idx, ok := args[1].(types.Int)
		if !ok {
			return nil, types.NewTypeError("nth: index must be an integer, got " + args[1].String())
		}
		if idx < 0 || int(idx) >= len(items) {
			return nil, types.NewArgumentError(fmt.Sprintf("nth: index %d out of range for sequence of length %d", idx, len(items)))
		}
		return items[idx], nil
	})

	builtin(ns, "first", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("first", 1, args); err != nil {
			return nil, err
		}
		items, err := seqItems("first", args[0])
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return types.Nil{}, nil
		}
		return items[0], nil
	})

	builtin(ns, "rest", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("rest", 1, args); err != nil {
			return nil, err
		}
		items, err := seqItems("rest", args[0])
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return types.NewList(), nil
		}
		rest := make([]types.Value, len(items)-1)
		copy(rest, items[1:])
		return types.NewList(rest...), nil
	})

	builtin(ns, "count", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("count", 1, args); err != nil {
			return nil, err
		}
		items, err := seqItems("count", args[0])
		if err != nil {
			return nil, err
		}
		return types.Int(len(items)), nil
	})

	builtin(ns, "conj", func(args []types.Value) (types.Value, error) {
		if err := arityAtLeast("conj", 1, args); err != nil {
			return nil, err
		}
		switch coll := args[0].(type) {
		case *types.List:
			items := append([]types.Value{}, coll.Items...)
			for _, x := range args[1:] {
				items = append([]types.Value{x}, items...)
			}
			return types.NewList(items...), nil
		case *types.Vector:
			items := append([]types.Value{}, coll.Items...)
			items = append(items, args[1:]...)
			return types.NewVector(items...), nil
		default:
			return nil, types.NewTypeError("conj: expected a list or vector, got " + args[0].String())
		}
	})

	builtin(ns, "seq", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("seq", 1, args); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case types.Nil:
			return types.Nil{}, nil
		case types.Str:
			if len(v) == 0 {
				return types.Nil{}, nil
			}
			var chars []types.Value
			for _, r := range string(v) {
				chars = append(chars, types.Str(string(r)))
			}
			return types.NewList(chars...), nil
		case *types.List:
			if v.IsEmpty() {
				return types.Nil{}, nil
			}
			return v, nil
		case *types.Vector:
			if v.IsEmpty() {
				return types.Nil{}, nil
			}
			return types.NewList(v.Items...), nil
		default:
			return nil, types.NewTypeError("seq: expected a list, vector, string, or nil, got " + args[0].String())
		}
	})

	builtin(ns, "apply", func(args []types.Value) (types.Value, error) {
		if err := arityAtLeast("apply", 2, args); err != nil {
			return nil, err
		}
		tail, err := seqItems("apply", args[len(args)-1])
		if err != nil {
			return nil, err
		}
		callArgs := make([]types.Value, 0, len(args)-2+len(tail))
		callArgs = append(callArgs, args[1:len(args)-1]...)
		callArgs = append(callArgs, tail...)
		return eval.Apply(args[0], callArgs)
	})

	builtin(ns, "map", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("map", 2, args); err != nil {
			return nil, err
		}
		items, err := seqItems("map", args[1])
		if err != nil {
			return nil, err
		}
		out := make([]types.Value, len(items))
		for i, item := range items {
			v, err := eval.Apply(args[0], []types.Value{item})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return types.NewList(out...), nil
	})
}
