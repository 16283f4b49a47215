package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetDefaults(t *testing.T) {
	t.Helper()
	ResetDefaults()
	t.Cleanup(ResetDefaults)
}

func TestDefaults_ReplacedForNewInstances(t *testing.T) {
	resetDefaults(t)

	require.NoError(t, SetDefaultRedaction(RedactWith("🤫")))
	require.NoError(t, SetDefaultSecrets(Literal("password"), MustPattern("ssn")))

	in := map[string]any{"password": "123", "ssn": "000-00-0000"}
	want := map[string]any{"password": "🤫", "ssn": "🤫"}

	a, err := New(Options{})
	require.NoError(t, err)
	out, err := a.Censor(in)
	require.NoError(t, err)
	assert.Equal(t, want, out)

	require.NoError(t, SetDefaultRedaction(RedactWith("[MIND YA OWN BUSINESS]")))
	b, err := New(Options{})
	require.NoError(t, err)
	out, err = b.Censor(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"password": "[MIND YA OWN BUSINESS]",
		"ssn":      "[MIND YA OWN BUSINESS]",
	}, out)
}

// Redactors copy the defaults when they are built, so later changes only
// reach redactors built afterwards.
func TestDefaults_SnapshotAtConstruction(t *testing.T) {
	resetDefaults(t)

	implicit, err := New(Options{})
	require.NoError(t, err)
	explicit, err := NewWithMarker("[EXPLICIT]")
	require.NoError(t, err)

	require.NoError(t, SetDefaultRedaction(RedactWith("[NEW]")))
	require.NoError(t, SetDefaultSecrets(Literal("apiKey")))
	require.NoError(t, SetDefaultReduction(Summarize()))

	in := map[string]any{"password": "p", "apiKey": "k", "list": []any{1}}

	out, err := implicit.Censor(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"password": DefaultMarker, "apiKey": "k", "list": []any{1}}, out)

	out, err = explicit.Censor(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"password": "[EXPLICIT]", "apiKey": "k", "list": []any{1}}, out)

	fresh, err := New(Options{})
	require.NoError(t, err)
	out, err = fresh.Censor(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"password": "p", "apiKey": "[NEW]", "list": "[Object ARRAY[1]]"}, out)
}

func TestDefaults_CopyIsIsolated(t *testing.T) {
	resetDefaults(t)

	d := Defaults()
	d.Secrets[0] = Literal("mutated")
	assert.Equal(t, "password", Defaults().Secrets[0].String())
}

func TestDefaults_RejectInvalid(t *testing.T) {
	resetDefaults(t)

	assert.Error(t, SetDefaultSecrets(SecretSpec{}))
	assert.Error(t, SetDefaultRedaction(Redaction{}))
	assert.Error(t, SetDefaultReduction(Truncate(-1)))

	r, err := New(Options{})
	require.NoError(t, err)
	assert.True(t, r.IsSecret("password"))
}
