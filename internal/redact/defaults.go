package redact

import "sync"

// DefaultSecrets are the key names treated as secrets when nothing else is
// configured.
var DefaultSecrets = []string{
	"password",
	"pass",
	"socialSecurityNumber",
	"ssn",
	"secret",
	"clientSecret",
	"token",
}

// Settings is the set of rules a Redactor is built from.
type Settings struct {
	Secrets      []SecretSpec
	Redact       Redaction
	ReduceArrays Reduction
}

func builtinSettings() Settings {
	return Settings{
		Secrets:      Literals(DefaultSecrets...),
		Redact:       RedactWith(DefaultMarker),
		ReduceArrays: NoReduction(),
	}
}

var defaults = struct {
	sync.RWMutex
	s Settings
}{s: builtinSettings()}

// Defaults returns a copy of the process-wide defaults.
func Defaults() Settings {
	defaults.RLock()
	defer defaults.RUnlock()
	s := defaults.s
	s.Secrets = append([]SecretSpec(nil), defaults.s.Secrets...)
	return s
}

// SetDefaultSecrets replaces the default secrets. Existing redactors keep
// the secrets they were created with.
func SetDefaultSecrets(specs ...SecretSpec) error {
	if _, err := NewMatcher(specs...); err != nil {
		return err
	}
	defaults.Lock()
	defer defaults.Unlock()
	defaults.s.Secrets = append([]SecretSpec(nil), specs...)
	return nil
}

// SetDefaultRedaction replaces the default redaction rule.
func SetDefaultRedaction(r Redaction) error {
	if err := r.validate(); err != nil {
		return err
	}
	defaults.Lock()
	defer defaults.Unlock()
	defaults.s.Redact = r
	return nil
}

// SetDefaultReduction replaces the default reduction rule.
func SetDefaultReduction(r Reduction) error {
	if err := r.validate(); err != nil {
		return err
	}
	defaults.Lock()
	defer defaults.Unlock()
	defaults.s.ReduceArrays = r
	return nil
}

// ResetDefaults restores the built-in defaults.
func ResetDefaults() {
	defaults.Lock()
	defer defaults.Unlock()
	defaults.s = builtinSettings()
}
