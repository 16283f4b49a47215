package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nest(levels int) any {
	var v any = "leaf"
	for i := 0; i < levels; i++ {
		if i%2 == 0 {
			v = map[string]any{"k": v}
		} else {
			v = []any{v}
		}
	}
	return v
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth("x"))
	assert.Equal(t, 1, Depth(map[string]any{}))
	assert.Equal(t, 1, Depth([]any{1, 2}))
	assert.Equal(t, 5, Depth(nest(5)))
	assert.Equal(t, 3, Depth(map[string]any{
		"a": 1,
		"b": []any{map[string]any{"c": 2}},
	}))
}

func TestCheckDepth(t *testing.T) {
	v := nest(10)
	assert.NoError(t, CheckDepth(v, 10))
	assert.NoError(t, CheckDepth(v, 0))
	assert.ErrorIs(t, CheckDepth(v, 9), ErrTooDeep)
	assert.NoError(t, CheckDepth("scalar", 1))
}
