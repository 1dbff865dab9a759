// Package mal wires the reader, evaluator, and printer into a complete
// interpreter. Each Interpreter owns its root environment, so independent
// instances coexist in one process (nothing in the language runtime is
// process-global).
package mal

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/davemus/malgo/pkg/core"
	"github.com/davemus/malgo/pkg/env"
	"github.com/davemus/malgo/pkg/eval"
	"github.com/davemus/malgo/pkg/printer"
	"github.com/davemus/malgo/pkg/reader"
	"github.com/davemus/malgo/pkg/types"
)

// Logger receives interpreter-internal diagnostics: session lifecycle,
// script load timing. It never carries language-visible output, which
// always goes through pkg/printer. Discarded by default; the CLI driver
// redirects it when asked.
var Logger = zerolog.New(io.Discard)

// bootstrapForms are evaluated in order against every fresh root
// environment, defining the parts of the standard prelude that are
// written in the language itself.
var bootstrapForms = []string{
	`(def! not (fn* (a) (if a false true)))`,
	`(def! load-file (fn* (f) (eval (read-string (str "(do " (slurp f) "\nnil)")))))`,
	`(defmacro! cond (fn* (& xs) (if (> (count xs) 0) (list 'if (first xs) (if (> (count xs) 1) (nth xs 1) (throw "odd number of forms to cond")) (cons 'cond (rest (rest xs)))))))`,
}

// Interpreter is one self-contained language runtime.
type Interpreter struct {
	root *env.Env
}

// New builds an interpreter with the core namespace installed and the
// bootstrap prelude evaluated.
func New() (*Interpreter, error) {
	in := &Interpreter{root: env.New()}
	core.Install(in.root)

	// eval must run in the root environment, not the caller's, so the
	// builtin closes over the interpreter rather than taking an env.
	in.root.Set(types.Sym("eval"), &types.Builtin{
		Name: "eval",
		Call: func(args []types.Value) (types.Value, error) {
			if len(args) != 1 {
				return nil, types.NewArityError(fmt.Sprintf("eval: expected 1 argument(s), got %d", len(args)))
			}
			return eval.Eval(args[0], in.root)
		},
	})
	in.root.Set(types.Sym("*ARGV*"), types.NewList())

	for _, form := range bootstrapForms {
		if _, err := in.Rep(form); err != nil {
			return nil, err
		}
	}
	Logger.Debug().Msg("interpreter ready")
	return in, nil
}

// Env exposes the root environment, used by the REPL's tab completion.
func (in *Interpreter) Env() *env.Env { return in.root }

// Rep is the read-eval-print pipeline: source text in, readable-printed
// result out.
func (in *Interpreter) Rep(src string) (string, error) {
	ast, err := reader.ReadStr(src)
	if err != nil {
		return "", err
	}
	result, err := eval.Eval(ast, in.root)
	if err != nil {
		return "", err
	}
	return printer.PrStr(result, true), nil
}

// Eval evaluates an already-read form in the root environment.
func (in *Interpreter) Eval(ast types.Value) (types.Value, error) {
	return eval.Eval(ast, in.root)
}

var numericArg = regexp.MustCompile(`^\d+$`)

// SetArgs binds *FILENAME* and *ARGV* for a script run. Arguments that
// look numeric are passed as integers, everything else as strings.
func (in *Interpreter) SetArgs(filename string, args []string) {
	vals := make([]types.Value, len(args))
	for i, a := range args {
		if numericArg.MatchString(a) {
			n, err := strconv.ParseInt(a, 10, 64)
			if err == nil {
				vals[i] = types.Int(n)
				continue
			}
		}
		vals[i] = types.Str(a)
	}
	in.root.Set(types.Sym("*ARGV*"), types.NewList(vals...))
	in.root.Set(types.Sym("*FILENAME*"), types.Str(filename))
}

// LoadFile runs (load-file *FILENAME*) for the script path previously
// bound by SetArgs.
func (in *Interpreter) LoadFile(filename string) error {
	start := time.Now()
	_, err := in.Rep(`(load-file *FILENAME*)`)
	evt := Logger.Debug().Str("file", filename).Dur("took", time.Since(start))
	if err != nil {
		evt.Err(err).Msg("script failed")
		return err
	}
	evt.Msg("script loaded")
	return nil
}
