package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davemus/malgo/pkg/printer"
	"github.com/davemus/malgo/pkg/reader"
	"github.com/davemus/malgo/pkg/types"
)

// Stdout and Stdin are the streams the printing and readline builtins use,
// overridable so tests can capture output and script input.
var (
	Stdout io.Writer = os.Stdout
	Stdin  io.Reader = os.Stdin
)

func registerIO(ns map[types.Sym]*types.Builtin) {
	builtin(ns, "pr-str", func(args []types.Value) (types.Value, error) {
		return types.Str(joinPrinted(args, " ", true)), nil
	})

	builtin(ns, "str", func(args []types.Value) (types.Value, error) {
		return types.Str(joinPrinted(args, "", false)), nil
	})

	builtin(ns, "prn", func(args []types.Value) (types.Value, error) {
		fmt.Fprintln(Stdout, joinPrinted(args, " ", true))
		return types.Nil{}, nil
	})

	builtin(ns, "println", func(args []types.Value) (types.Value, error) {
		fmt.Fprintln(Stdout, joinPrinted(args, " ", false))
		return types.Nil{}, nil
	})

	builtin(ns, "read-string", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("read-string", 1, args); err != nil {
			return nil, err
		}
		s, ok := args[0].(types.Str)
		if !ok {
			return nil, types.NewTypeError("read-string: expected a string, got " + args[0].String())
		}
		return reader.ReadStr(string(s))
	})

	builtin(ns, "slurp", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("slurp", 1, args); err != nil {
			return nil, err
		}
		path, ok := args[0].(types.Str)
		if !ok {
			return nil, types.NewTypeError("slurp: expected a string path, got " + args[0].String())
		}
		data, err := os.ReadFile(string(path))
		if err != nil {
			return nil, types.NewArgumentError("slurp: " + err.Error())
		}
		return types.Str(stripComments(string(data))), nil
	})

	builtin(ns, "readline", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("readline", 1, args); err != nil {
			return nil, err
		}
		prompt, ok := args[0].(types.Str)
		if !ok {
			return nil, types.NewTypeError("readline: expected a string prompt, got " + args[0].String())
		}
		fmt.Fprint(Stdout, string(prompt))
		r := bufio.NewReader(Stdin)
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return types.Nil{}, nil
		}
		return types.Str(strings.TrimRight(line, "\n")), nil
	})
}

func joinPrinted(args []types.Value, sep string, readable bool) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = printer.PrStr(a, readable)
	}
	return strings.Join(parts, sep)
}

// stripComments removes ;-comments line by line so a file ending in a
// comment-only line still wraps cleanly into the (do ...) form that
// load-file builds around it. A semicolon inside a string literal is
// left alone.
func stripComments(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = stripLineComment(line)
	}
	return strings.Join(lines, "\n")
}

func stripLineComment(line string) string {
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if inString {
				i++
			}
		case '"':
			inString = !inString
		case ';':
			if !inString {
				return line[:i]
			}
		}
	}
	return line
}
