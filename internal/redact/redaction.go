package redact

import "github.com/cockroachdb/errors"

// DefaultMarker replaces redacted values unless configured otherwise.
const DefaultMarker = "[REDACT]"

// RedactFunc computes the replacement for the value found under a secret
// key. It must not modify value. An empty key means the value had no key,
// which happens for a scalar passed straight to Censor.
type RedactFunc func(key string, value any) (any, error)

// Redaction is the rule producing the replacement for a secret value: a
// constant marker or a RedactFunc. The zero Redaction is unset.
type Redaction struct {
	marker any
	fn     RedactFunc
	set    bool
}

// RedactWith returns a rule replacing every secret with marker.
func RedactWith(marker any) Redaction {
	return Redaction{marker: marker, set: true}
}

// RedactUsing returns a rule replacing every secret with the result of fn.
func RedactUsing(fn RedactFunc) Redaction {
	if fn == nil {
		return Redaction{}
	}
	return Redaction{fn: fn, set: true}
}

// IsZero reports whether r was never set.
func (r Redaction) IsZero() bool {
	return !r.set
}

// Marker returns the constant marker and true, or nil and false when r
// uses a function.
func (r Redaction) Marker() (any, bool) {
	if !r.set || r.fn != nil {
		return nil, false
	}
	return r.marker, true
}

// Func returns the function of a function rule, or nil.
func (r Redaction) Func() RedactFunc {
	return r.fn
}

// Apply returns the replacement for value found under key. Errors from a
// RedactFunc are returned marked with ErrRedactionPolicyFailure.
func (r Redaction) Apply(key string, value any) (any, error) {
	if !r.set {
		return nil, ErrInvalidRedactionRule
	}
	if r.fn == nil {
		return r.marker, nil
	}
	out, err := r.fn(key, value)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "redacting key %q", key), ErrRedactionPolicyFailure)
	}
	return out, nil
}

func (r Redaction) validate() error {
	if !r.set {
		return ErrInvalidRedactionRule
	}
	return nil
}
