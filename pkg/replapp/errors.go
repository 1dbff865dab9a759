package replapp

import (
	"errors"

	"github.com/fatih/color"

	"github.com/davemus/malgo/pkg/types"
)

// errorFormatter colorizes uncaught errors by kind before they reach the
// prompt. Unlike a message-sniffing categorizer, it switches on the typed
// MalError kind the runtime attaches to every failure.
type errorFormatter struct {
	prefix  *color.Color
	byKind  map[types.ErrorKind]*color.Color
	general *color.Color
}

func newErrorFormatter() *errorFormatter {
	return &errorFormatter{
		prefix: color.New(color.FgRed, color.Bold),
		byKind: map[types.ErrorKind]*color.Color{
			types.KindRead:          color.New(color.FgRed, color.Bold),
			types.KindNotFound:      color.New(color.FgYellow, color.Bold),
			types.KindType:          color.New(color.FgCyan, color.Bold),
			types.KindArity:         color.New(color.FgMagenta, color.Bold),
			types.KindSpecialForm:   color.New(color.FgMagenta, color.Bold),
			types.KindArgument:      color.New(color.FgMagenta, color.Bold),
			types.KindUserException: color.New(color.FgBlue, color.Bold),
		},
		general: color.New(color.FgWhite, color.Bold),
	}
}

func (f *errorFormatter) format(err error) string {
	body := f.general
	var me *types.MalError
	if errors.As(err, &me) {
		if c, ok := f.byKind[me.Kind]; ok {
			body = c
		}
	}
	return f.prefix.Sprint("Error: ") + body.Sprint(err.Error())
}
