package eval

import (
	"github.com/davemus/malgo/pkg/env"
	"github.com/davemus/malgo/pkg/types"
)

// evalDefmacro evaluates the (fn* ...) form to a closure and marks it as
// a macro.
func evalDefmacro(args []types.Value, e *env.Env) (types.Value, error) {
	if len(args) != 2 {
		return nil, types.NewSpecialFormError("defmacro! requires exactly 2 arguments: (defmacro! symbol (fn* ...))")
	}
	name, ok := args[0].(types.Sym)
	if !ok {
		return nil, types.NewSpecialFormError("defmacro! first argument must be a symbol")
	}
	val, err := Eval(args[1], e)
	if err != nil {
		return nil, err
	}
	closure, ok := val.(*types.Closure)
	if !ok {
		return nil, types.NewTypeError("defmacro! second argument must evaluate to a function")
	}
	closure.IsMacro = true
	e.Set(name, closure)
	return types.Nil{}, nil
}

// macroexpand repeatedly replaces ast with the result of calling its head
// macro (arguments unevaluated), stopping once the head no longer
// resolves to a macro.
func macroexpand(ast types.Value, e *env.Env) (types.Value, error) {
	for {
		list, ok := ast.(*types.List)
		if !ok || list.IsEmpty() {
			return ast, nil
		}
		sym, ok := list.Items[0].(types.Sym)
		if !ok {
			return ast, nil
		}
		val, err := e.Get(sym)
		if err != nil {
			return ast, nil
		}
		closure, ok := val.(*types.Closure)
		if !ok || !closure.IsMacro {
			return ast, nil
		}
		macroEnv, err := env.NewWithBinds(closure.Env.(*env.Env), closure.Params, list.Items[1:])
		if err != nil {
			return nil, err
		}
		expanded, err := Eval(closure.Body, macroEnv)
		if err != nil {
			return nil, err
		}
		ast = expanded
	}
}

// evalTry implements try*/catch*: evaluate the body, and on error bind
// the exception payload in a child env for the handler.
func evalTry(args []types.Value, e *env.Env) (types.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, types.NewSpecialFormError("try* requires 1 or 2 arguments: (try* expr) or (try* expr (catch* sym handler))")
	}
	result, err := Eval(args[0], e)
	if err == nil {
		return result, nil
	}
	if len(args) == 1 {
		return nil, err
	}
	catchForm, ok := args[1].(*types.List)
	if !ok || catchForm.IsEmpty() || len(catchForm.Items) != 3 {
		return nil, types.NewSpecialFormError("catch* requires exactly (catch* symbol handler)")
	}
	if head, ok := catchForm.Items[0].(types.Sym); !ok || head != symCatch {
		return nil, types.NewSpecialFormError("try*'s second form must be a catch* clause")
	}
	excSym, ok := catchForm.Items[1].(types.Sym)
	if !ok {
		return nil, types.NewSpecialFormError("catch* first argument must be a symbol")
	}
	handler := catchForm.Items[2]
	catchEnv := env.NewChild(e)
	catchEnv.Set(excSym, types.ExceptionPayload(err))
	return Eval(handler, catchEnv)
}
