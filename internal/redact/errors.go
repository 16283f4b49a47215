package redact

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidSecretSpec is returned when a secret spec is neither a
	// literal nor a compiled pattern, or a pattern fails to parse.
	ErrInvalidSecretSpec = errors.New("invalid secret spec")
	// ErrInvalidRedactionRule is returned for a zero Redaction or one built
	// from a nil function.
	ErrInvalidRedactionRule = errors.New("invalid redaction rule")
	// ErrInvalidReductionRule is returned for a Reduction of unknown kind, a
	// negative limit, or a nil function.
	ErrInvalidReductionRule = errors.New("invalid reduction rule")
	// ErrRedactionPolicyFailure marks errors returned by a RedactFunc.
	ErrRedactionPolicyFailure = errors.New("redaction policy failed")
	// ErrReductionPolicyFailure marks errors returned by a ReduceFunc.
	ErrReductionPolicyFailure = errors.New("reduction policy failed")
)
