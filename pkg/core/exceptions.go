package core

import (
	"github.com/davemus/malgo/pkg/types"
)

func registerExceptions(ns map[types.Sym]*types.Builtin) {
	builtin(ns, "throw", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("throw", 1, args); err != nil {
			return nil, err
		}
		return nil, types.NewUserException(args[0])
	})
}
