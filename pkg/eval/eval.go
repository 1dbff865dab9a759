// Package eval implements the tail-call-optimized interpreter: special
// form dispatch, macro expansion, quasiquote rewriting, and function
// application.
package eval

import (
	"github.com/davemus/malgo/pkg/env"
	"github.com/davemus/malgo/pkg/types"
)

var (
	symDef        = types.Sym("def!")
	symLet        = types.Sym("let*")
	symDo         = types.Sym("do")
	symIf         = types.Sym("if")
	symFn         = types.Sym("fn*")
	symQuote      = types.Sym("quote")
	symQuasiquote = types.Sym("quasiquote")
	symUnquote    = types.Sym("unquote")
	symSpliceUnq  = types.Sym("splice-unquote")
	symDefmacro   = types.Sym("defmacro!")
	symMacroexp   = types.Sym("macroexpand")
	symTry        = types.Sym("try*")
	symCatch      = types.Sym("catch*")
)

// Eval evaluates ast in env. The surrounding for-loop is the interpreter's
// tail-call-optimization mechanism: special forms in tail position
// reassign ast/env and `continue` rather than recursing, so deeply
// tail-recursive MAL programs run in constant Go stack space.
func Eval(ast types.Value, e *env.Env) (types.Value, error) {
	for {
		list, isList := ast.(*types.List)
		if !isList {
			return evalNonList(ast, e)
		}
		if list.IsEmpty() {
			return list, nil
		}

		expanded, err := macroexpand(ast, e)
		if err != nil {
			return nil, err
		}
		list, isList = expanded.(*types.List)
		if !isList || list.IsEmpty() {
			return evalNonList(expanded, e)
		}
		ast = list

		if head, ok := list.Items[0].(types.Sym); ok {
			switch head {
			case symDef:
				return evalDef(list.Items[1:], e)
			case symLet:
				newAst, newEnv, err := evalLet(list.Items[1:], e)
				if err != nil {
					return nil, err
				}
				ast, e = newAst, newEnv
				continue
			case symDo:
				newAst, err := evalDo(list.Items[1:], e)
				if err != nil {
					return nil, err
				}
				ast = newAst
				continue
			case symIf:
				newAst, err := evalIf(list.Items[1:], e)
				if err != nil {
					return nil, err
				}
				ast = newAst
				continue
			case symFn:
				return evalFnStar(list.Items[1:], e)
			case symQuote:
				return evalQuote(list.Items[1:])
			case symQuasiquote:
				newAst, err := evalQuasiquoteForm(list.Items[1:])
				if err != nil {
					return nil, err
				}
				ast = newAst
				continue
			case symDefmacro:
				return evalDefmacro(list.Items[1:], e)
			case symMacroexp:
				if len(list.Items) != 2 {
					return nil, types.NewArityError("macroexpand requires exactly 1 argument")
				}
				return macroexpand(list.Items[1], e)
			case symTry:
				return evalTry(list.Items[1:], e)
			}
		}

		// Application: evaluate head and every argument, then dispatch.
		fnVal, err := Eval(list.Items[0], e)
		if err != nil {
			return nil, err
		}
		args := make([]types.Value, len(list.Items)-1)
		for i, a := range list.Items[1:] {
			v, err := Eval(a, e)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}

		switch fn := fnVal.(type) {
		case *types.Builtin:
			return fn.Call(args)
		case *types.Closure:
			newEnv, err := env.NewWithBinds(fn.Env.(*env.Env), fn.Params, args)
			if err != nil {
				return nil, err
			}
			ast = fn.Body
			e = newEnv
			continue
		default:
			return nil, types.NewTypeError("not a function: " + fnVal.String())
		}
	}
}

// Apply calls fn with already-evaluated args, used by core-namespace
// builtins (map, apply, swap!) that need to invoke a
// user-supplied function value without going through the reader.
func Apply(fn types.Value, args []types.Value) (types.Value, error) {
	switch f := fn.(type) {
	case *types.Builtin:
		return f.Call(args)
	case *types.Closure:
		newEnv, err := env.NewWithBinds(f.Env.(*env.Env), f.Params, args)
		if err != nil {
			return nil, err
		}
		return Eval(f.Body, newEnv)
	default:
		return nil, types.NewTypeError("not a function: " + fn.String())
	}
}

func evalNonList(ast types.Value, e *env.Env) (types.Value, error) {
	switch v := ast.(type) {
	case types.Sym:
		return e.Get(v)
	case *types.Vector:
		items := make([]types.Value, len(v.Items))
		for i, it := range v.Items {
			ev, err := Eval(it, e)
			if err != nil {
				return nil, err
			}
			items[i] = ev
		}
		return types.NewVector(items...), nil
	case *types.Map:
		out := types.NewMap()
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			ev, err := Eval(val, e)
			if err != nil {
				return nil, err
			}
			out.Set(k, ev)
		}
		return out, nil
	default:
		return ast, nil
	}
}

func evalDef(args []types.Value, e *env.Env) (types.Value, error) {
	if len(args) != 2 {
		return nil, types.NewSpecialFormError("def! requires exactly 2 arguments: (def! symbol expr)")
	}
	name, ok := args[0].(types.Sym)
	if !ok {
		return nil, types.NewSpecialFormError("def! first argument must be a symbol")
	}
	val, err := Eval(args[1], e)
	if err != nil {
		return nil, err
	}
	e.Set(name, val)
	return val, nil
}

// evalLet returns the body to evaluate and the new environment, for the
// caller's TCO loop to continue with.
func evalLet(args []types.Value, e *env.Env) (types.Value, *env.Env, error) {
	if len(args) != 2 {
		return nil, nil, types.NewSpecialFormError("let* requires exactly 2 arguments: (let* (bindings) body)")
	}
	bindingsSeq, ok := types.Seq(args[0])
	if !ok {
		return nil, nil, types.NewSpecialFormError("let* bindings must be a list or vector")
	}
	if len(bindingsSeq)%2 != 0 {
		return nil, nil, types.NewSpecialFormError("let* bindings must have an even number of forms")
	}
	newEnv := env.NewChild(e)
	for i := 0; i < len(bindingsSeq); i += 2 {
		sym, ok := bindingsSeq[i].(types.Sym)
		if !ok {
			return nil, nil, types.NewSpecialFormError("let* binding name must be a symbol")
		}
		val, err := Eval(bindingsSeq[i+1], newEnv)
		if err != nil {
			return nil, nil, err
		}
		newEnv.Set(sym, val)
	}
	return args[1], newEnv, nil
}

func evalDo(args []types.Value, e *env.Env) (types.Value, error) {
	if len(args) == 0 {
		return types.Nil{}, nil
	}
	for _, expr := range args[:len(args)-1] {
		if _, err := Eval(expr, e); err != nil {
			return nil, err
		}
	}
	return args[len(args)-1], nil
}

func evalIf(args []types.Value, e *env.Env) (types.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, types.NewSpecialFormError("if requires 2 or 3 arguments")
	}
	cond, err := Eval(args[0], e)
	if err != nil {
		return nil, err
	}
	if types.Truthy(cond) {
		return args[1], nil
	}
	if len(args) == 3 {
		return args[2], nil
	}
	return types.Nil{}, nil
}

func evalFnStar(args []types.Value, e *env.Env) (types.Value, error) {
	if len(args) != 2 {
		return nil, types.NewSpecialFormError("fn* requires exactly 2 arguments: (fn* (params) body)")
	}
	paramsSeq, ok := types.Seq(args[0])
	if !ok {
		return nil, types.NewSpecialFormError("fn* parameter list must be a list or vector")
	}
	params := make([]types.Sym, len(paramsSeq))
	for i, p := range paramsSeq {
		sym, ok := p.(types.Sym)
		if !ok {
			return nil, types.NewSpecialFormError("fn* parameters must be symbols")
		}
		params[i] = sym
	}
	var variadic types.Sym
	if n := len(params); n >= 2 && params[n-2] == env.AmpersandSym {
		variadic = params[n-1]
	}
	return &types.Closure{Params: params, Variadic: variadic, Body: args[1], Env: e}, nil
}

func evalQuote(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return nil, types.NewSpecialFormError("quote requires exactly 1 argument")
	}
	return args[0], nil
}

func evalQuasiquoteForm(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return nil, types.NewSpecialFormError("quasiquote requires exactly 1 argument")
	}
	return quasiquoteExpand(args[0]), nil
}

// quasiquoteExpand rewrites a quasiquoted form into code that builds it:
// list elements are walked right-to-left accumulating cons calls, with
// `splice-unquote` elements spliced in via concat.
func quasiquoteExpand(ast types.Value) types.Value {
	if list, ok := ast.(*types.List); ok {
		if list.IsEmpty() {
			return list
		}
		if sym, ok := list.Items[0].(types.Sym); ok && sym == symUnquote && len(list.Items) == 2 {
			return list.Items[1]
		}
		var acc types.Value = types.NewList()
		for i := len(list.Items) - 1; i >= 0; i-- {
			elt := list.Items[i]
			if eltList, ok := elt.(*types.List); ok && !eltList.IsEmpty() {
				if sym, ok := eltList.Items[0].(types.Sym); ok && sym == symSpliceUnq && len(eltList.Items) == 2 {
					acc = types.NewList(types.Sym("concat"), eltList.Items[1], acc)
					continue
				}
			}
			acc = types.NewList(types.Sym("cons"), quasiquoteExpand(elt), acc)
		}
		return acc
	}
	if vec, ok := ast.(*types.Vector); ok {
		asList := types.NewList(vec.Items...)
		return types.NewList(types.Sym("vec"), quasiquoteExpand(asList))
	}
	switch ast.(type) {
	case types.Sym, *types.Map:
		return types.NewList(symQuote, ast)
	default:
		return ast
	}
}
