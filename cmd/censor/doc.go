// Censor is a CLI for redacting secrets from structured data before it is
// logged or shared.
//
// It reads JSON, JSON Lines and YAML documents, replaces the values under
// secret keys, optionally collapses long arrays, and writes the copies in the
// requested format.
//
// Usage:
//
//	censor redact config.yaml                 # censor a file to stdout
//	censor redact --format jsonl < events.jsonl
//	censor redact --secrets 'apiKey,/^x-auth/i' --reduce-arrays 5 dump.json
//	censor check password username            # exit 1 if any key is secret
//	censor config set reduceArrays true
//	censor cache show
package main
