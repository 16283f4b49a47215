// Package redact makes deep copies of nested values with secrets removed,
// so structured data can be logged or shipped without leaking credentials.
//
// A [Redactor] walks maps (map[string]any) and sequences ([]any) top-down and
// builds a new value. Every map key is checked against a [Matcher]; the value
// under a matching key is replaced by the [Redaction] rule and is not walked
// any further. Sequences are censored element by element and then handed to
// the [Reduction] rule, which can leave them alone, summarize them as
// "[Object ARRAY[n]]", truncate them to a limit, or call a custom function.
// Other Go maps, slices and arrays are walked the same way and rebuilt as
// map[string]any, map[any]any or []any. Anything else is a scalar and is
// shared with the input as-is. The input is never written to.
//
// A scalar passed directly to [Redactor.Censor] has no key to match and is
// replaced by the redaction rule outright.
//
// Redactors created with [New] copy the process-wide defaults (see
// [Defaults]) for every field the caller leaves out. The copy is taken at
// construction: changing the defaults later affects new redactors only.
//
// Cyclic values are not supported.
package redact
