package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

// Supported output formats.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatYAML  = "yaml"
	FormatText  = "text"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Writer writes documents in a specific format.
type Writer interface {
	Write(w io.Writer, docs []any) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case FormatJSON:
		return &JSONWriter{Indent: "  "}, nil
	case FormatJSONL:
		return &JSONWriter{}, nil
	case FormatYAML:
		return &YAMLWriter{}, nil
	case FormatText:
		return &TextWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Destination is where rendered output goes: stdout, or a file that is only
// replaced once Commit succeeds.
type Destination struct {
	w    io.Writer
	tmp  *os.File
	path string
	done bool
}

// Open returns a Destination for outPath, or for stdout when outPath is
// empty. File output is staged in a temporary file beside outPath so that a
// failed run leaves any existing file untouched.
func Open(outPath string) (*Destination, error) {
	if outPath == "" {
		return &Destination{w: os.Stdout}, nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return &Destination{w: tmp, tmp: tmp, path: outPath}, nil
}

func (d *Destination) Write(p []byte) (int, error) {
	return d.w.Write(p)
}

// Commit moves staged output into place. It is a no-op for stdout.
func (d *Destination) Commit() error {
	if d.tmp == nil || d.done {
		return nil
	}
	d.done = true
	name := d.tmp.Name()
	if err := d.tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("closing output file: %w", err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return fmt.Errorf("setting output file mode: %w", err)
	}
	if err := os.Rename(name, d.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// Abort discards staged output. It does nothing after Commit.
func (d *Destination) Abort() {
	if d.tmp == nil || d.done {
		return
	}
	d.done = true
	d.tmp.Close()
	os.Remove(d.tmp.Name())
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(p []byte) {
	if ew.err != nil {
		return
	}
	_, ew.err = ew.w.Write(p)
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
