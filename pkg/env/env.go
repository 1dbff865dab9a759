// Package env implements the interpreter's lexical scope chain: a
// name-to-value mapping with a parent link, plus the parameter-list
// binding rules used when a closure is applied.
package env

import (
	"fmt"

	"github.com/davemus/malgo/pkg/types"
)

// AmpersandSym is the variadic marker symbol: a parameter list ending in
// "& rest" binds every trailing argument into a fresh list named rest.
const AmpersandSym = types.Sym("&")

// Env is a single scope frame: a bindings map plus an optional parent.
type Env struct {
	bindings map[types.Sym]types.Value
	outer    *Env
}

// New creates a root environment with no parent.
func New() *Env {
	return &Env{bindings: make(map[types.Sym]types.Value)}
}

// NewChild creates a new environment scoped inside outer.
func NewChild(outer *Env) *Env {
	return &Env{bindings: make(map[types.Sym]types.Value), outer: outer}
}

// NewWithBinds creates a child environment with params bound to args. A
// trailing "&" followed by exactly one symbol collects every remaining
// argument into a list.
func NewWithBinds(outer *Env, params []types.Sym, args []types.Value) (*Env, error) {
	e := NewChild(outer)
	if err := e.bind(params, args); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Env) bind(params []types.Sym, args []types.Value) error {
	ampIdx := -1
	for i, p := range params {
		if p == AmpersandSym {
			ampIdx = i
			break
		}
	}
	if ampIdx < 0 {
		if len(params) != len(args) {
			return types.NewArityError(arityMsg(len(params), len(args)))
		}
		for i, p := range params {
			e.Set(p, args[i])
		}
		return nil
	}

	if ampIdx+2 != len(params) {
		return types.NewSpecialFormError("'&' must be followed by exactly one symbol")
	}
	fixed := params[:ampIdx]
	rest := params[ampIdx+1]
	if len(args) < len(fixed) {
		return types.NewArityError(arityMsg(len(fixed), len(args)))
	}
	for i, p := range fixed {
		e.Set(p, args[i])
	}
	restArgs := append([]types.Value{}, args[len(fixed):]...)
	e.Set(rest, types.NewList(restArgs...))
	return nil
}

func arityMsg(want, got int) string {
	if got < want {
		return fmt.Sprintf("too few arguments: expected at least %d, got %d", want, got)
	}
	return fmt.Sprintf("too many arguments: expected %d, got %d", want, got)
}

// Set binds name to v in this frame, shadowing any outer binding.
func (e *Env) Set(name types.Sym, v types.Value) {
	e.bindings[name] = v
}

// Find walks the parent chain and returns the frame that owns name, or
// nil if no frame defines it.
func (e *Env) Find(name types.Sym) *Env {
	for cur := e; cur != nil; cur = cur.outer {
		if _, ok := cur.bindings[name]; ok {
			return cur
		}
	}
	return nil
}

// Get looks up name, returning a NotFound MalError on miss.
func (e *Env) Get(name types.Sym) (types.Value, error) {
	if frame := e.Find(name); frame != nil {
		return frame.bindings[name], nil
	}
	return nil, types.NewNotFoundError(string(name))
}

// Outer returns the parent environment, or nil at the root.
func (e *Env) Outer() *Env { return e.outer }

// Names returns every name visible from this environment, shadowed or
// not, in no particular order. Used by the REPL's tab completion.
func (e *Env) Names() []types.Sym {
	seen := make(map[types.Sym]bool)
	var names []types.Sym
	for cur := e; cur != nil; cur = cur.outer {
		for name := range cur.bindings {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
