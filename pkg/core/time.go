package core

import (
	"time"

	"github.com/davemus/malgo/pkg/types"
)

func registerTime(ns map[types.Sym]*types.Builtin) {
	builtin(ns, "time-ms", func(args []types.Value) (types.Value, error) {
		if err := arityExactly("time-ms", 0, args); err != nil {
			return nil, err
		}
		return types.Int(time.Now().UnixMilli()), nil
	})
}
