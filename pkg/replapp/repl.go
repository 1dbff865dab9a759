// Package replapp is the interactive shell around the interpreter: a
// readline-backed prompt loop with history, tab completion over the
// visible bindings, and colorized result/error output. It talks to the
// language runtime through mal.Interpreter's Rep, and reads the root
// environment's names for completion.
package replapp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/davemus/malgo/pkg/mal"
)

const historyLimit = 1000

// Run drives the prompt loop until EOF or interrupt.
func Run(interp *mal.Interpreter) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "user> ",
		HistoryFile:     historyPath(),
		HistoryLimit:    historyLimit,
		AutoComplete:    &symbolCompleter{interp: interp},
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		// No terminal (piped input, dumb term): fall back to a plain loop.
		return runPlain(interp)
	}
	defer rl.Close()

	mal.Logger.Debug().Msg("repl session start")
	formatter := newErrorFormatter()
	resultColor := color.New(color.FgGreen)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			break
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		out, evalErr := interp.Rep(line)
		if evalErr != nil {
			fmt.Println(formatter.format(evalErr))
			continue
		}
		resultColor.Println(out)
	}
	mal.Logger.Debug().Msg("repl session end")
	return nil
}

func runPlain(interp *mal.Interpreter) error {
	formatter := newErrorFormatter()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("user> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out, err := interp.Rep(line)
		if err != nil {
			fmt.Println(formatter.format(err))
			continue
		}
		fmt.Println(out)
	}
}

// historyPath locates ~/.mal_history, or falls back to the current
// directory when HOME is unset.
func historyPath() string {
	home := os.Getenv("HOME")
	if home == "" {
		return ".mal_history"
	}
	return filepath.Join(home, ".mal_history")
}

// symbolCompleter completes the token under the cursor against every
// binding visible from the root environment.
type symbolCompleter struct {
	interp *mal.Interpreter
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !isDelimiter(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	var candidates [][]rune
	for _, name := range c.interp.Env().Names() {
		s := string(name)
		if strings.HasPrefix(s, prefix) {
			candidates = append(candidates, []rune(s[len(prefix):]))
		}
	}
	return candidates, len(prefix)
}

func isDelimiter(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', '[', ']', '{', '}', '\'', '`', '~', '@', '^', '"', ',':
		return true
	}
	return false
}
