// Package reader converts MAL source text into a Value tree: a regex
// tokenizer feeds a recursive-descent parser that expands reader macros
// into ordinary list forms.
package reader

import (
	"regexp"
	"strings"

	"github.com/davemus/malgo/pkg/types"
)

// tokenRegexp matches one token per application: `~@`, a single special
// character, a double-quoted string (possibly unterminated), a line
// comment, or a run of ordinary characters. Leading whitespace and commas
// are consumed with the match.
var tokenRegexp = regexp.MustCompile(`[\s,]*(~@|[\[\]{}()'` + "`" + `~^@]|"(?:\\.|[^\\"])*"?|;.*|[^\s\[\]{}('"` + "`" + `,;)]*)`)

// Token is a single lexical unit with its source position.
type Token struct {
	Text string
	Pos  types.Position
}

// Tokenize splits src into tokens, tracking line/column for error
// reporting. Whitespace, commas, and line comments are dropped.
func Tokenize(src string) []Token {
	var tokens []Token
	line, col := 1, 1
	pos := 0
	for pos < len(src) {
		loc := tokenRegexp.FindStringSubmatchIndex(src[pos:])
		if loc == nil {
			break
		}
		wholeStart, wholeEnd := loc[0], loc[1]
		tokStart, tokEnd := loc[2], loc[3]

		// advance line/col across the whitespace/prefix we skipped
		advance(src[pos:pos+tokStart], &line, &col)
		tokenPos := types.Position{Line: line, Column: col}
		text := src[pos+tokStart : pos+tokEnd]
		advance(text, &line, &col)

		if wholeEnd == wholeStart {
			break // no progress; avoid an infinite loop on trailing garbage
		}
		pos += wholeEnd

		if text == "" || strings.HasPrefix(text, ";") {
			continue
		}
		tokens = append(tokens, Token{Text: text, Pos: tokenPos})
	}
	return tokens
}

func advance(s string, line, col *int) {
	for _, r := range s {
		if r == '\n' {
			*line++
			*col = 1
		} else {
			*col++
		}
	}
}
