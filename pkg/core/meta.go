package core

import (
	"github.com/davemus/malgo/pkg/types"
)

// metaCarrier is implemented by every value kind that can hold metadata:
// lists, vectors, maps, closures, and builtins. Primitives are not
// carriers, so with-meta on them is a type error.
type metaCarrier interface {
	GetMeta() types.Value
	WithMeta(m types.Value) types.Value
}

func registerMeta(ns map[types.Sym]*types.Builtin) {
	builtin(ns, "meta", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("meta", 1, args); err != nil {
			return nil, err
		}
		carrier, ok := args[0].(metaCarrier)
		if !ok {
			return types.Nil{}, nil
		}
		return carrier.GetMeta(), nil
	})

	builtin(ns, "with-meta", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("with-meta", 2, args); err != nil {
			return nil, err
		}
		carrier, ok := args[0].(metaCarrier)
		if !ok {
			return nil, types.NewTypeError("with-meta: " + args[0].String() + " cannot carry metadata")
		}
		return carrier.WithMeta(args[1]), nil
	})
}
