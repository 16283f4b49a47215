// Package document decodes JSON, JSON Lines and YAML input into the plain
// map[string]any / []any values the redact package walks.
//
// It also provides the depth guard applied to untrusted input before it is
// censored, since the walker itself recurses without a limit.
package document
