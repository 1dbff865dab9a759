package core

import (
	"github.com/davemus/malgo/pkg/types"
)

func registerPredicates(ns map[types.Sym]*types.Builtin) {
	predicate(ns, "nil?", func(v types.Value) bool {
		_, ok := v.(types.Nil)
		return ok
	})
	predicate(ns, "true?", func(v types.Value) bool {
		b, ok := v.(types.Bool)
		return ok && bool(b)
	})
	predicate(ns, "false?", func(v types.Value) bool {
		b, ok := v.(types.Bool)
		return ok && !bool(b)
	})
	predicate(ns, "symbol?", func(v types.Value) bool {
		_, ok := v.(types.Sym)
		return ok
	})
	predicate(ns, "keyword?", func(v types.Value) bool {
		_, ok := v.(types.Kw)
		return ok
	})
	predicate(ns, "string?", func(v types.Value) bool {
		_, ok := v.(types.Str)
		return ok
	})
	predicate(ns, "number?", func(v types.Value) bool {
		switch v.(type) {
		case types.Int, types.Float:
			return true
		default:
			return false
		}
	})
	predicate(ns, "list?", func(v types.Value) bool {
		_, ok := v.(*types.List)
		return ok
	})
	predicate(ns, "vector?", func(v types.Value) bool {
		_, ok := v.(*types.Vector)
		return ok
	})
	predicate(ns, "map?", func(v types.Value) bool {
		_, ok := v.(*types.Map)
		return ok
	})
	predicate(ns, "sequential?", func(v types.Value) bool {
		_, ok := types.Seq(v)
		return ok
	})
	predicate(ns, "fn?", func(v types.Value) bool {
		switch f := v.(type) {
		case *types.Builtin:
			return true
		case *types.Closure:
			return !f.IsMacro
		default:
			return false
		}
	})
	predicate(ns, "macro?", func(v types.Value) bool {
		c, ok := v.(*types.Closure)
		return ok && c.IsMacro
	})

	builtin(ns, "empty?", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("empty?", 1, args); err != nil {
			return nil, err
		}
		items, err := seqItems("empty?", args[0])
		if err != nil {
			return nil, err
		}
		return types.Bool(len(items) == 0), nil
	})
}

func predicate(ns map[types.Sym]*types.Builtin, name string, test func(v types.Value) bool) {
	builtin(ns, name, func(args []types.Value) (types.Value, error) {
		if err := arityExactly(name, 1, args); err != nil {
			return nil, err
		}
		return types.Bool(test(args[0])), nil
	})
}
