package redact

import (
	"regexp"

	"github.com/cockroachdb/errors"
)

type specKind uint8

const (
	specInvalid specKind = iota
	specLiteral
	specPattern
)

// SecretSpec describes which map keys hold secrets: either one exact key
// name or a regular expression tested against the key.
type SecretSpec struct {
	kind    specKind
	literal string
	pattern *regexp.Regexp
	source  string // configured text of a parsed pattern
}

// Literal returns a spec matching exactly the key s.
func Literal(s string) SecretSpec {
	return SecretSpec{kind: specLiteral, literal: s}
}

// Pattern returns a spec matching any key for which re reports a match.
// A nil re yields an invalid spec.
func Pattern(re *regexp.Regexp) SecretSpec {
	if re == nil {
		return SecretSpec{}
	}
	return SecretSpec{kind: specPattern, pattern: re}
}

// MustPattern compiles expr and returns it as a pattern spec. It panics if
// expr does not compile.
func MustPattern(expr string) SecretSpec {
	return Pattern(regexp.MustCompile(expr))
}

// Literals converts plain key names into specs.
func Literals(keys ...string) []SecretSpec {
	specs := make([]SecretSpec, len(keys))
	for i, k := range keys {
		specs[i] = Literal(k)
	}
	return specs
}

// IsPattern reports whether s is a regular-expression spec.
func (s SecretSpec) IsPattern() bool {
	return s.kind == specPattern
}

// Valid reports whether s is a literal or a pattern.
func (s SecretSpec) Valid() bool {
	return s.kind == specLiteral || s.kind == specPattern
}

// String renders s in the form accepted by ParseSecretSpec.
func (s SecretSpec) String() string {
	switch s.kind {
	case specLiteral:
		return s.literal
	case specPattern:
		if s.source != "" {
			return s.source
		}
		return "/" + s.pattern.String() + "/"
	default:
		return "<invalid>"
	}
}

func (s SecretSpec) matches(key string) bool {
	if s.kind == specPattern {
		return s.pattern.MatchString(key)
	}
	return s.literal == key
}

// Matcher decides whether a map key names a secret.
//
// When every spec is a literal the matcher runs in exact mode and answers
// with a set lookup. A single pattern switches the whole matcher to a linear
// scan in which literals are compared for equality.
type Matcher struct {
	specs []SecretSpec
	exact map[string]struct{}
}

// NewMatcher builds a matcher from specs. Order does not affect the outcome.
func NewMatcher(specs ...SecretSpec) (*Matcher, error) {
	m := &Matcher{specs: make([]SecretSpec, len(specs))}
	copy(m.specs, specs)

	patterns := false
	for i, s := range m.specs {
		if !s.Valid() {
			return nil, errors.Wrapf(ErrInvalidSecretSpec, "secret #%d", i)
		}
		if s.IsPattern() {
			patterns = true
		}
	}
	if patterns {
		return m, nil
	}

	m.exact = make(map[string]struct{}, len(m.specs))
	for _, s := range m.specs {
		m.exact[s.literal] = struct{}{}
	}
	return m, nil
}

// Match reports whether key is a secret. The empty key never matches.
func (m *Matcher) Match(key string) bool {
	if key == "" {
		return false
	}
	if m.exact != nil {
		_, ok := m.exact[key]
		return ok
	}
	for _, s := range m.specs {
		if s.matches(key) {
			return true
		}
	}
	return false
}

// PatternMode reports whether the matcher scans specs instead of using a set.
func (m *Matcher) PatternMode() bool {
	return m.exact == nil
}

// Specs returns a copy of the specs the matcher was built from.
func (m *Matcher) Specs() []SecretSpec {
	out := make([]SecretSpec, len(m.specs))
	copy(out, m.specs)
	return out
}
