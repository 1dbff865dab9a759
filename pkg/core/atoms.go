package core

import (
	"github.com/davemus/malgo/pkg/eval"
	"github.com/davemus/malgo/pkg/types"
)

func registerAtoms(ns map[types.Sym]*types.Builtin) {
	builtin(ns, "atom", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("atom", 1, args); err != nil {
			return nil, err
		}
		return types.NewAtom(args[0]), nil
	})

	predicate(ns, "atom?", func(v types.Value) bool {
		_, ok := v.(*types.Atom)
		return ok
	})

	builtin(ns, "deref", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("deref", 1, args); err != nil {
			return nil, err
		}
		a, ok := args[0].(*types.Atom)
		if !ok {
			return nil, types.NewTypeError("deref: expected an atom, got " + args[0].String())
		}
		return a.Val, nil
	})

	builtin(ns, "reset!", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("reset!", 2, args); err != nil {
			return nil, err
		}
		a, ok := args[0].(*types.Atom)
		if !ok {
			return nil, types.NewTypeError("reset!: expected an atom, got " + args[0].String())
		}
		a.Val = args[1]
		return args[1], nil
	})

	builtin(ns, "swap!", func(args []types.Value) (types.Value, error) {
		if err := arityAtLeast("swap!", 2, args); err != nil {
			return nil, err
		}
		a, ok := args[0].(*types.Atom)
		if !ok {
			return nil, types.NewTypeError("swap!: expected an atom, got " + args[0].String())
		}
		callArgs := make([]types.Value, 0, len(args)-1)
		callArgs = append(callArgs, a.Val)
		callArgs = append(callArgs, args[2:]...)
		v, err := eval.Apply(args[1], callArgs)
		if err != nil {
			return nil, err
		}
		a.Val = v
		return v, nil
	})
}
