package redact

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultProperties(t *testing.T) {
	r, err := NewWithMarker(censorMarker)
	require.NoError(t, err)

	marker, ok := r.Redaction().Marker()
	require.True(t, ok)
	assert.Equal(t, censorMarker, marker)
	assert.Equal(t, ReduceNone, r.Reduction().Kind())
	assert.Equal(t, DefaultSecrets, FormatSecrets(r.Secrets()))
	assert.True(t, r.IsSecret("secret"))

	r3, err := New(Options{})
	require.NoError(t, err)
	marker, _ = r3.Redaction().Marker()
	assert.Equal(t, DefaultMarker, marker)
}

func TestNew_EmptySecretsMatchNothing(t *testing.T) {
	r, err := New(Options{Secrets: []SecretSpec{}})
	require.NoError(t, err)
	assert.False(t, r.IsSecret("password"))
	assert.Empty(t, r.Secrets())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Options{Secrets: []SecretSpec{{}}})
	assert.True(t, errors.Is(err, ErrInvalidSecretSpec))

	_, err = New(Options{ReduceArrays: Truncate(-3)})
	assert.True(t, errors.Is(err, ErrInvalidReductionRule))
}

func TestRedactor_SetSecrets(t *testing.T) {
	r, err := NewWithMarker(censorMarker)
	require.NoError(t, err)

	require.NoError(t, r.SetSecrets(Literals("password", "token")...))
	assert.Equal(t, []string{"password", "token"}, FormatSecrets(r.Secrets()))
	assert.False(t, r.IsSecret("ssn"))

	err = r.SetSecrets(Literal("ok"), SecretSpec{})
	assert.True(t, errors.Is(err, ErrInvalidSecretSpec))
	assert.True(t, r.IsSecret("token"), "failed set keeps previous secrets")
}

func TestRedactor_SetRules(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)

	assert.True(t, errors.Is(r.SetRedaction(Redaction{}), ErrInvalidRedactionRule))
	assert.True(t, errors.Is(r.SetReduction(Reduction{}), ErrInvalidReductionRule))

	require.NoError(t, r.SetReduction(Truncate(2)))
	assert.Equal(t, ReduceThreshold, r.Reduction().Kind())
	assert.Equal(t, 2, r.Reduction().Limit())
}
