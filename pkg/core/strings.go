package core

import (
	"github.com/davemus/malgo/pkg/types"
)

func registerStrings(ns map[types.Sym]*types.Builtin) {
	builtin(ns, "symbol", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("symbol", 1, args); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case types.Str:
			return types.Sym(v), nil
		case types.Sym:
			return v, nil
		default:
			return nil, types.NewTypeError("symbol: expected a string, got " + args[0].String())
		}
	})

	builtin(ns, "keyword", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("keyword", 1, args); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case types.Str:
			return types.Kw(v), nil
		case types.Kw:
			return v, nil
		default:
			return nil, types.NewTypeError("keyword: expected a string or keyword, got " + args[0].String())
		}
	})
}
