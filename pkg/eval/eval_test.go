package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davemus/malgo/pkg/core"
	"github.com/davemus/malgo/pkg/env"
	"github.com/davemus/malgo/pkg/eval"
	"github.com/davemus/malgo/pkg/printer"
	"github.com/davemus/malgo/pkg/reader"
	"github.com/davemus/malgo/pkg/types"
)

// newEnv builds a root environment with the core namespace, the way the
// driver does, so special forms that expand into core calls (quasiquote,
// cond-style macros) resolve.
func newEnv(t *testing.T) *env.Env {
	t.Helper()
	e := env.New()
	core.Install(e)
	return e
}

func evalStr(t *testing.T, e *env.Env, src string) (types.Value, error) {
	t.Helper()
	ast, err := reader.ReadStr(src)
	require.NoError(t, err)
	return eval.Eval(ast, e)
}

// rep evaluates src and renders the result readably, failing the test on
// any error.
func rep(t *testing.T, e *env.Env, src string) string {
	t.Helper()
	v, err := evalStr(t, e, src)
	require.NoError(t, err)
	return printer.PrStr(v, true)
}

func TestEvalSelfEvaluating(t *testing.T) {
	e := newEnv(t)
	for _, src := range []string{"nil", "true", "7", "2.5", `"str"`, ":kw"} {
		assert.Equal(t, src, rep(t, e, src))
	}
}

func TestEvalSymbolLookup(t *testing.T) {
	e := newEnv(t)
	e.Set("x", types.Int(9))
	assert.Equal(t, "9", rep(t, e, "x"))

	_, err := evalStr(t, e, "missing")
	var me *types.MalError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindNotFound, me.Kind)
}

func TestEvalVectorAndMapContents(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "[1 3]", rep(t, e, "[1 (+ 1 2)]"))
	assert.Equal(t, "{:a 3}", rep(t, e, "{:a (+ 1 2)}"))
}

func TestEmptyListEvaluatesToItself(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "()", rep(t, e, "()"))
}

func TestArithmetic(t *testing.T) {
	e := newEnv(t)
	tests := []struct{ src, want string }{
		{"(+ 1 (* 2 3))", "7"},
		{"(- 10 3 2)", "5"},
		{"(/ 12 3 2)", "2"},
		{"(+ 1 2.5)", "3.5"},
		{"(/ 1.0 0)", "Infinity"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rep(t, e, tt.src), tt.src)
	}

	_, err := evalStr(t, e, "(/ 1 0)")
	require.Error(t, err)
	_, err = evalStr(t, e, `(+ 1 "x")`)
	var me *types.MalError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindType, me.Kind)
}

func TestDef(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "10", rep(t, e, "(def! a 10)"))
	assert.Equal(t, "10", rep(t, e, "a"))
}

// let* binds sequentially: later pairs see earlier ones, and inner names
// shadow outer ones without touching them.
func TestLetSequentialBinding(t *testing.T) {
	e := newEnv(t)
	rep(t, e, "(def! a 10)")
	assert.Equal(t, "21", rep(t, e, "(let* (a 20 b (+ a 1)) b)"))
	assert.Equal(t, "10", rep(t, e, "a"))
}

func TestDo(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "3", rep(t, e, "(do 1 2 3)"))
	assert.Equal(t, "nil", rep(t, e, "(do)"))
	rep(t, e, "(do (def! side 1) (def! side 2))")
	assert.Equal(t, "2", rep(t, e, "side"))
}

func TestIfTruthiness(t *testing.T) {
	e := newEnv(t)
	tests := []struct{ src, want string }{
		{"(if true 1 2)", "1"},
		{"(if false 1 2)", "2"},
		{"(if nil 1 2)", "2"},
		{"(if 0 :a :b)", ":a"},
		{`(if "" :a :b)`, ":a"},
		{"(if () :a :b)", ":a"},
		{"(if false 1)", "nil"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rep(t, e, tt.src), tt.src)
	}
}

func TestClosures(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "3", rep(t, e, "((fn* (a b) (+ a b)) 1 2)"))

	// closures capture their defining environment
	rep(t, e, "(def! make-adder (fn* (n) (fn* (x) (+ x n))))")
	rep(t, e, "(def! add5 (make-adder 5))")
	assert.Equal(t, "12", rep(t, e, "(add5 7)"))
}

func TestVariadicClosure(t *testing.T) {
	e := newEnv(t)
	rep(t, e, "(def! f (fn* (a & rest) (list a rest)))")
	assert.Equal(t, "(1 (2 3))", rep(t, e, "(f 1 2 3)"))
	assert.Equal(t, "(1 ())", rep(t, e, "(f 1)"))
}

func TestCallNonFunction(t *testing.T) {
	e := newEnv(t)
	_, err := evalStr(t, e, "(1 2 3)")
	var me *types.MalError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindType, me.Kind)
}

// Deep tail recursion must run in constant Go stack space.
func TestTailCallOptimization(t *testing.T) {
	e := newEnv(t)
	rep(t, e, "(def! sum (fn* (n acc) (if (= n 0) acc (sum (- n 1) (+ n acc)))))")
	assert.Equal(t, "50005000", rep(t, e, "(sum 10000 0)"))
}

func TestMutualTailRecursion(t *testing.T) {
	e := newEnv(t)
	rep(t, e, "(def! even? (fn* (n) (if (= n 0) true (odd? (- n 1)))))")
	rep(t, e, "(def! odd? (fn* (n) (if (= n 0) false (even? (- n 1)))))")
	assert.Equal(t, "true", rep(t, e, "(even? 10000)"))
}

func TestQuote(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "(1 2 3)", rep(t, e, "'(1 2 3)"))
	assert.Equal(t, "abc", rep(t, e, "'abc"))
}

func TestQuasiquote(t *testing.T) {
	e := newEnv(t)
	rep(t, e, "(def! ns (list 2 3))")
	tests := []struct{ src, want string }{
		{"`7", "7"},
		{"`(1 2 3)", "(1 2 3)"},
		{"`~(+ 1 2)", "3"},
		{"`(1 ~(+ 1 1) 3)", "(1 2 3)"},
		{"`(1 ~@ns 4)", "(1 2 3 4)"},
		{"`[1 ~@ns 4]", "[1 2 3 4]"},
		{"`(a b c)", "(a b c)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rep(t, e, tt.src), tt.src)
	}
}

// Quasiquote with no unquotes behaves exactly like quote.
func TestQuasiquoteIdentityOnData(t *testing.T) {
	e := newEnv(t)
	for _, form := range []string{"(1 2 (3 4))", "sym", "{:a 1}", "[1 2]"} {
		quoted, err := evalStr(t, e, "(quote "+form+")")
		require.NoError(t, err)
		qquoted, err := evalStr(t, e, "(quasiquote "+form+")")
		require.NoError(t, err)
		assert.True(t, types.Equal(quoted, qquoted), form)
	}
}

func TestDefmacroAndMacroexpand(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "nil", rep(t, e, "(defmacro! unless (fn* (p a b) `(if ~p ~b ~a)))"))
	assert.Equal(t, "7", rep(t, e, "(unless false 7 8)"))
	assert.Equal(t, "8", rep(t, e, "(unless true 7 8)"))
	assert.Equal(t, "(if false 8 7)", rep(t, e, "(macroexpand (unless false 7 8))"))
}

func TestMacroexpandFixpoint(t *testing.T) {
	e := newEnv(t)
	rep(t, e, "(defmacro! m1 (fn* () '(m2)))")
	rep(t, e, "(defmacro! m2 (fn* () '(+ 1 2)))")
	// expansion runs macro-to-macro until the head is no longer a macro,
	// so expanding an already-expanded form is the identity
	assert.Equal(t, "(+ 1 2)", rep(t, e, "(macroexpand (m1))"))
	assert.Equal(t, "(+ 1 2)", rep(t, e, "(macroexpand (+ 1 2))"))
}

func TestMacroArgumentsNotEvaluated(t *testing.T) {
	e := newEnv(t)
	rep(t, e, "(defmacro! quoter (fn* (x) `(quote ~x)))")
	assert.Equal(t, "(undefined-symbol 1)", rep(t, e, "(quoter (undefined-symbol 1))"))
}

func TestThrowCatch(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, `"boom"`, rep(t, e, `(try* (throw "boom") (catch* e e))`))
	assert.Equal(t, "7", rep(t, e, "(try* 7 (catch* e 0))"))
	assert.Equal(t, "(:data 1)", rep(t, e, "(try* (throw (list :data 1)) (catch* exc exc))"))
}

func TestCatchBindsBuiltinErrorsAsStrings(t *testing.T) {
	e := newEnv(t)
	out := rep(t, e, "(try* (missing-symbol) (catch* e e))")
	assert.Contains(t, out, "not found")
}

func TestUncaughtThrowPropagates(t *testing.T) {
	e := newEnv(t)
	_, err := evalStr(t, e, `(throw "up")`)
	var me *types.MalError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindUserException, me.Kind)
	assert.Equal(t, types.Str("up"), me.Payload)

	_, err = evalStr(t, e, `(try* (throw "up"))`)
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindUserException, me.Kind)
}

func TestSpecialFormArityErrors(t *testing.T) {
	e := newEnv(t)
	for _, src := range []string{
		"(def! a)",
		"(def! 1 2)",
		"(let* (a) a)",
		"(fn* (1) 2)",
		"(if)",
		"(quote)",
		"(try* (throw 1) (catch* e))",
	} {
		_, err := evalStr(t, e, src)
		require.Error(t, err, src)
		var me *types.MalError
		require.ErrorAs(t, err, &me, src)
		assert.Equal(t, types.KindSpecialForm, me.Kind, src)
	}
}
