// Package printer renders Values back to text, the inverse of pkg/reader.
package printer

import (
	"strings"

	"github.com/davemus/malgo/pkg/types"
)

// PrStr renders v. When readable is true, strings are escaped and
// round-trip through the reader; when false (display mode), strings are
// emitted verbatim.
func PrStr(v types.Value, readable bool) string {
	switch vv := v.(type) {
	case nil:
		return "nil"
	case types.Str:
		if !readable {
			return string(vv)
		}
		return quoteString(string(vv))
	case *types.List:
		return seqString(vv.Items, "(", ")", readable)
	case *types.Vector:
		return seqString(vv.Items, "[", "]", readable)
	case *types.Map:
		return mapString(vv, readable)
	case *types.Atom:
		return "(atom " + PrStr(vv.Val, readable) + ")"
	case *types.Closure:
		if vv.IsMacro {
			return "#<macro " + PrStr(vv.Body, readable) + ">"
		}
		return "#<function>"
	default:
		return v.String()
	}
}

func seqString(items []types.Value, open, close string, readable bool) string {
	var b strings.Builder
	b.WriteString(open)
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(PrStr(it, readable))
	}
	b.WriteString(close)
	return b.String()
}

func mapString(m *types.Map, readable bool) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		v, _ := m.Get(k)
		b.WriteString(PrStr(k, readable))
		b.WriteByte(' ')
		b.WriteString(PrStr(v, readable))
	}
	b.WriteByte('}')
	return b.String()
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
