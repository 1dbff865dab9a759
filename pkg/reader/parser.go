package reader

import (
	"strconv"
	"strings"

	"github.com/davemus/malgo/pkg/types"
)

// cursor walks a token slice for the recursive-descent parser.
type cursor struct {
	tokens []Token
	pos    int
}

func (c *cursor) peek() (Token, bool) {
	if c.pos >= len(c.tokens) {
		return Token{}, false
	}
	return c.tokens[c.pos], true
}

func (c *cursor) next() (Token, bool) {
	tok, ok := c.peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

func (c *cursor) lastPos() types.Position {
	if len(c.tokens) == 0 {
		return types.Position{Line: 1, Column: 1}
	}
	if c.pos > 0 && c.pos-1 < len(c.tokens) {
		return c.tokens[c.pos-1].Pos
	}
	return c.tokens[0].Pos
}

// ReadStr parses one form from src. A blank or comment-only input reads
// as nil.
func ReadStr(src string) (types.Value, error) {
	tokens := Tokenize(src)
	if len(tokens) == 0 {
		return types.Nil{}, nil
	}
	c := &cursor{tokens: tokens}
	return readForm(c)
}

func readForm(c *cursor) (types.Value, error) {
	tok, ok := c.peek()
	if !ok {
		return nil, types.NewReadError("unexpected EOF", c.lastPos())
	}

	switch tok.Text {
	case "(":
		return readSeq(c, "(", ")", func(items []types.Value) types.Value { return types.NewList(items...) })
	case "[":
		return readSeq(c, "[", "]", func(items []types.Value) types.Value { return types.NewVector(items...) })
	case "{":
		return readMap(c)
	case ")", "]", "}":
		return nil, types.NewReadError("unexpected '"+tok.Text+"'", tok.Pos)
	case "'":
		return readWrapped(c, types.Sym("quote"))
	case "`":
		return readWrapped(c, types.Sym("quasiquote"))
	case "~":
		return readWrapped(c, types.Sym("unquote"))
	case "~@":
		return readWrapped(c, types.Sym("splice-unquote"))
	case "@":
		return readWrapped(c, types.Sym("deref"))
	case "^":
		return readWithMeta(c)
	default:
		c.next()
		return readAtom(tok)
	}
}

func readWrapped(c *cursor, sym types.Sym) (types.Value, error) {
	c.next() // consume the macro character
	inner, err := readForm(c)
	if err != nil {
		return nil, err
	}
	return types.NewList(sym, inner), nil
}

// readWithMeta implements `^m x` -> (with-meta x m): metadata is read
// first but emitted as the second argument.
func readWithMeta(c *cursor) (types.Value, error) {
	c.next() // consume '^'
	meta, err := readForm(c)
	if err != nil {
		return nil, err
	}
	target, err := readForm(c)
	if err != nil {
		return nil, err
	}
	return types.NewList(types.Sym("with-meta"), target, meta), nil
}

func readSeq(c *cursor, open, closeTok string, build func([]types.Value) types.Value) (types.Value, error) {
	startPos := c.lastPos()
	if tok, ok := c.peek(); ok {
		startPos = tok.Pos
	}
	c.next() // consume opening bracket
	var items []types.Value
	for {
		tok, ok := c.peek()
		if !ok {
			return nil, types.NewReadError("expected '"+closeTok+"', got EOF", startPos)
		}
		if tok.Text == closeTok {
			c.next()
			return build(items), nil
		}
		item, err := readForm(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func readMap(c *cursor) (types.Value, error) {
	var mapErr error
	v, err := readSeq(c, "{", "}", func(items []types.Value) types.Value {
		m, buildErr := types.NewMapFromPairs(items)
		if buildErr != nil {
			mapErr = buildErr
			return nil
		}
		return m
	})
	if err != nil {
		return nil, err
	}
	if mapErr != nil {
		return nil, types.NewReadError(mapErr.Error(), c.lastPos())
	}
	return v, nil
}

func readAtom(tok Token) (types.Value, error) {
	switch tok.Text {
	case "nil":
		return types.Nil{}, nil
	case "true":
		return types.Bool(true), nil
	case "false":
		return types.Bool(false), nil
	}

	if strings.HasPrefix(tok.Text, "\"") {
		if !isTerminatedString(tok.Text) {
			return nil, types.NewReadError("expected '\"', got EOF", tok.Pos)
		}
		s, err := unescapeString(tok.Text[1 : len(tok.Text)-1])
		if err != nil {
			return nil, types.NewReadError(err.Error(), tok.Pos)
		}
		return types.Str(s), nil
	}

	if strings.HasPrefix(tok.Text, ":") {
		return types.Kw(tok.Text[1:]), nil
	}

	if i, err := strconv.ParseInt(tok.Text, 10, 64); err == nil {
		return types.Int(i), nil
	}
	if f, err := strconv.ParseFloat(tok.Text, 64); err == nil {
		return types.Float(f), nil
	}

	return types.Sym(tok.Text), nil
}

// isTerminatedString reports whether tok (including its quotes) ends in an
// unescaped closing quote, as opposed to a trailing backslash that
// escapes what looks like a closer.
func isTerminatedString(tok string) bool {
	if len(tok) < 2 || tok[len(tok)-1] != '"' {
		return false
	}
	body := tok[1 : len(tok)-1]
	backslashes := 0
	for i := len(body) - 1; i >= 0 && body[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 0
}

func unescapeString(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		i++
		if i >= len(s) {
			return "", &unterminatedEscape{}
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}

type unterminatedEscape struct{}

func (*unterminatedEscape) Error() string { return "unterminated escape sequence in string" }
