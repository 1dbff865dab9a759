// Package core implements the built-in function namespace: the set of
// names every fresh root environment starts with, organized one file per
// functional area.
package core

import (
	"fmt"

	"github.com/davemus/malgo/pkg/env"
	"github.com/davemus/malgo/pkg/types"
)

// builtin is the shared constructor every domain file uses to register a
// name into the namespace table passed to Install.
func builtin(ns map[types.Sym]*types.Builtin, name string, fn func(args []types.Value) (types.Value, error)) {
	ns[types.Sym(name)] = &types.Builtin{Name: name, Call: fn}
}

// Install populates e with every core-namespace binding.
func Install(e *env.Env) {
	ns := make(map[types.Sym]*types.Builtin)
	registerArithmetic(ns)
	registerSequences(ns)
	registerHashmap(ns)
	registerPredicates(ns)
	registerIO(ns)
	registerAtoms(ns)
	registerExceptions(ns)
	registerMeta(ns)
	registerTime(ns)
	registerStrings(ns)
	for name, b := range ns {
		e.Set(name, b)
	}
}

func arityExactly(name string, n int, args []types.Value) error {
	if len(args) != n {
		return types.NewArityError(argcMsg(name, n, len(args)))
	}
	return nil
}

func arityAtLeast(name string, n int, args []types.Value) error {
	if len(args) < n {
		return types.NewArityError(argcMsg(name, n, len(args)))
	}
	return nil
}

func argcMsg(name string, want, got int) string {
	return fmt.Sprintf("%s: expected %d argument(s), got %d", name, want, got)
}
