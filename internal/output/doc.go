// Package output writes censored documents for display or further
// processing.
//
// Four formats are supported:
//   - json: each document pretty-printed (default)
//   - jsonl: one compact document per line, for log pipelines
//   - yaml: documents separated by "---"
//   - text: Go-syntax dump for eyeballing nested values
//
// Use [GetWriter] to obtain a [Writer] for a format string and [Open] for
// the destination.
package output
