package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davemus/malgo/pkg/types"
)

func TestSetGet(t *testing.T) {
	e := New()
	e.Set("x", types.Int(1))
	v, err := e.Get("x")
	require.NoError(t, err)
	assert.Equal(t, types.Int(1), v)
}

func TestGetWalksParentChain(t *testing.T) {
	root := New()
	root.Set("x", types.Int(1))
	child := NewChild(NewChild(root))
	v, err := child.Get("x")
	require.NoError(t, err)
	assert.Equal(t, types.Int(1), v)
}

func TestChildShadowsParent(t *testing.T) {
	root := New()
	root.Set("x", types.Int(1))
	child := NewChild(root)
	child.Set("x", types.Int(2))

	v, _ := child.Get("x")
	assert.Equal(t, types.Int(2), v)
	v, _ = root.Get("x")
	assert.Equal(t, types.Int(1), v)
}

func TestGetMissIsNotFound(t *testing.T) {
	_, err := New().Get("nope")
	require.Error(t, err)
	var me *types.MalError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindNotFound, me.Kind)
	assert.Equal(t, "NotFound: 'nope' not found", err.Error())
}

func TestFind(t *testing.T) {
	root := New()
	root.Set("x", types.Int(1))
	child := NewChild(root)
	assert.Equal(t, root, child.Find("x"))
	assert.Nil(t, child.Find("y"))
}

func TestBindExact(t *testing.T) {
	e, err := NewWithBinds(nil, []types.Sym{"a", "b"}, []types.Value{types.Int(1), types.Int(2)})
	require.NoError(t, err)
	v, _ := e.Get("b")
	assert.Equal(t, types.Int(2), v)
}

func TestBindArityMismatch(t *testing.T) {
	var me *types.MalError

	_, err := NewWithBinds(nil, []types.Sym{"a"}, []types.Value{types.Int(1), types.Int(2)})
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindArity, me.Kind)

	_, err = NewWithBinds(nil, []types.Sym{"a", "b"}, []types.Value{types.Int(1)})
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindArity, me.Kind)
}

func TestBindVariadic(t *testing.T) {
	tests := []struct {
		name string
		args []types.Value
		want string
	}{
		{"rest gets extras", []types.Value{types.Int(1), types.Int(2), types.Int(3)}, "(2 3)"},
		{"rest may be empty", []types.Value{types.Int(1)}, "()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewWithBinds(nil, []types.Sym{"a", AmpersandSym, "rest"}, tt.args)
			require.NoError(t, err)
			v, _ := e.Get("rest")
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestBindVariadicNeedsFixedArgs(t *testing.T) {
	_, err := NewWithBinds(nil, []types.Sym{"a", "b", AmpersandSym, "rest"}, []types.Value{types.Int(1)})
	var me *types.MalError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindArity, me.Kind)
}

// "&" must be followed by exactly one symbol, in final position.
func TestBindMalformedAmpersand(t *testing.T) {
	var me *types.MalError

	_, err := NewWithBinds(nil, []types.Sym{"a", AmpersandSym}, []types.Value{types.Int(1)})
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindSpecialForm, me.Kind)

	_, err = NewWithBinds(nil, []types.Sym{AmpersandSym, "r", "extra"}, []types.Value{types.Int(1)})
	require.ErrorAs(t, err, &me)
	assert.Equal(t, types.KindSpecialForm, me.Kind)
}
