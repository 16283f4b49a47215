// Package cli wires together the Cobra command tree for the censor binary.
//
// It defines the root command and all subcommands (redact, check, config,
// cache, version), binds flags, reads configuration, runs documents through
// the redactor, and returns deterministic exit codes.
package cli
