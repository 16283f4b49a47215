// Package cache stores censored output on disk so that re-running censor
// over unchanged input with unchanged rules skips decoding and walking.
//
// Entries are keyed by a SHA-256 hash over the redactor fingerprint, the
// input and output formats and the raw input bytes. Each entry holds the
// rendered output with a creation timestamp and a TTL (in seconds); expired
// entries are skipped on read and counted by [Cache.GetStats].
//
// The default directory is $XDG_CACHE_HOME/censor (or the OS-appropriate
// equivalent). Only censored output is ever written, never the input.
package cache
