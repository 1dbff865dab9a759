package core

import (
	"github.com/davemus/malgo/pkg/types"
)

func registerHashmap(ns map[types.Sym]*types.Builtin) {
	builtin(ns, "hash-map", func(args []types.Value) (types.Value, error) {
		return types.NewMapFromPairs(args)
	})

	builtin(ns, "assoc", func(args []types.Value) (types.Value, error) {
		if err := arityAtLeast("assoc", 1, args); err != nil {
			return nil, err
		}
		m, ok := args[0].(*types.Map)
		if !ok {
			return nil, types.NewTypeError("assoc: expected a hash-map, got " + args[0].String())
		}
		if (len(args)-1)%2 != 0 {
			return nil, types.NewArityError("assoc: expected an even number of key/value arguments")
		}
		out := m.Clone()
		for i := 1; i < len(args); i += 2 {
			switch args[i].(type) {
			case types.Str, types.Kw:
			default:
				return nil, types.NewTypeError("assoc: map key must be a string or keyword, got " + args[i].String())
			}
			out.Set(args[i], args[i+1])
		}
		return out, nil
	})

	// dissoc of a key that is absent is a no-op, so repeated dissoc is
	// idempotent.
	builtin(ns, "dissoc", func(args []types.Value) (types.Value, error) {
		if err := arityAtLeast("dissoc", 1, args); err != nil {
			return nil, err
		}
		m, ok := args[0].(*types.Map)
		if !ok {
			return nil, types.NewTypeError("dissoc: expected a hash-map, got " + args[0].String())
		}
		out := m.Clone()
		for _, k := range args[1:] {
			out.Delete(k)
		}
		return out, nil
	})

	builtin(ns, "get", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("get", 2, args); err != nil {
			return nil, err
		}
		if _, ok := args[0].(types.Nil); ok {
			return types.Nil{}, nil
		}
		m, ok := args[0].(*types.Map)
		if !ok {
			return nil, types.NewTypeError("get: expected a hash-map or nil, got " + args[0].String())
		}
		if v, ok := m.Get(args[1]); ok {
			return v, nil
		}
		return types.Nil{}, nil
	})

	builtin(ns, "contains?", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("contains?", 2, args); err != nil {
			return nil, err
		}
		m, ok := args[0].(*types.Map)
		if !ok {
			return nil, types.NewTypeError("contains?: expected a hash-map, got " + args[0].String())
		}
		_, found := m.Get(args[1])
		return types.Bool(found), nil
	})

	builtin(ns, "keys", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("keys", 1, args); err != nil {
			return nil, err
		}
		m, ok := args[0].(*types.Map)
		if !ok {
			return nil, types.NewTypeError("keys: expected a hash-map, got " + args[0].String())
		}
		return types.NewList(m.Keys()...), nil
	})

	builtin(ns, "vals", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("vals", 1, args); err != nil {
			return nil, err
		}
		m, ok := args[0].(*types.Map)
		if !ok {
			return nil, types.NewTypeError("vals: expected a hash-map, got " + args[0].String())
		}
		var vals []types.Value
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			vals = append(vals, v)
		}
		return types.NewList(vals...), nil
	})
}
