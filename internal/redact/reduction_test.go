package redact

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduction_Apply(t *testing.T) {
	seq := []any{1, 2, 3}
	tests := []struct {
		name string
		rule Reduction
		want any
	}{
		{"none", NoReduction(), []any{1, 2, 3}},
		{"all", Summarize(), "[Object ARRAY[3]]"},
		{"threshold below", Truncate(5), []any{1, 2, 3}},
		{"threshold equal", Truncate(3), []any{1, 2, 3}},
		{"threshold above", Truncate(2), []any{1, 2, "...[Object ARRAY[3]]"}},
		{"threshold zero", Truncate(0), []any{"...[Object ARRAY[3]]"}},
		{"custom", ReduceUsing(func(s []any) (any, error) { return len(s) * 10, nil }), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.Apply(seq)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, []any{1, 2, 3}, seq, "input must not change")
}

func TestReduction_SummarizeEmpty(t *testing.T) {
	got, err := Summarize().Apply(nil)
	require.NoError(t, err)
	assert.Equal(t, "[Object ARRAY[0]]", got)
}

func TestReduction_Invalid(t *testing.T) {
	for name, r := range map[string]Reduction{
		"zero":     {},
		"negative": Truncate(-1),
		"nil func": ReduceUsing(nil),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := r.Apply([]any{1})
			assert.True(t, errors.Is(err, ErrInvalidReductionRule), "%v", err)
		})
	}
}

func TestReduction_CustomError(t *testing.T) {
	cause := errors.New("too long")
	r := ReduceUsing(func([]any) (any, error) { return nil, cause })
	_, err := r.Apply([]any{1, 2})
	assert.True(t, errors.Is(err, ErrReductionPolicyFailure))
	assert.True(t, errors.Is(err, cause))
}

func TestParseReduction(t *testing.T) {
	tests := []struct {
		in    any
		kind  ReductionKind
		limit int
	}{
		{nil, ReduceNone, 0},
		{false, ReduceNone, 0},
		{true, ReduceAll, 0},
		{0, ReduceNone, 0},
		{3, ReduceThreshold, 3},
		{int64(4), ReduceThreshold, 4},
		{float64(2), ReduceThreshold, 2},
		{"", ReduceNone, 0},
		{"off", ReduceNone, 0},
		{"false", ReduceNone, 0},
		{"TRUE", ReduceAll, 0},
		{"all", ReduceAll, 0},
		{" 7 ", ReduceThreshold, 7},
		{Summarize(), ReduceAll, 0},
	}
	for _, tt := range tests {
		r, err := ParseReduction(tt.in)
		require.NoError(t, err, "input %#v", tt.in)
		assert.Equal(t, tt.kind, r.Kind(), "input %#v", tt.in)
		assert.Equal(t, tt.limit, r.Limit(), "input %#v", tt.in)
	}

	r, err := ParseReduction(ReduceFunc(func(s []any) (any, error) { return nil, nil }))
	require.NoError(t, err)
	assert.Equal(t, ReduceCustom, r.Kind())
}

func TestParseReduction_Invalid(t *testing.T) {
	for _, in := range []any{-1, 1.5, "sometimes", "-2", struct{}{}, []int{1}, ReduceFunc(nil)} {
		_, err := ParseReduction(in)
		assert.True(t, errors.Is(err, ErrInvalidReductionRule), "input %#v: %v", in, err)
	}
}

func TestReduction_String(t *testing.T) {
	for _, r := range []Reduction{NoReduction(), Summarize(), Truncate(4)} {
		back, err := ParseReduction(r.String())
		require.NoError(t, err)
		assert.Equal(t, r.Kind(), back.Kind())
		assert.Equal(t, r.Limit(), back.Limit())
	}
}
