package output

import (
	"bytes"
	stdjson "encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func sampleDocs() []any {
	return []any{
		map[string]any{
			"name":     "User",
			"password": "[REDACT]",
			"id":       stdjson.Number("12345678901234567890"),
			"tags":     []any{"a", "...[Object ARRAY[3]]"},
		},
		map[string]any{"msg": "second"},
	}
}

func TestGetWriter(t *testing.T) {
	for _, f := range []string{FormatJSON, FormatJSONL, FormatYAML, FormatText} {
		if _, err := GetWriter(f); err != nil {
			t.Errorf("GetWriter(%q) error: %v", f, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestJSONWriter_Indented(t *testing.T) {
	w, _ := GetWriter(FormatJSON)
	var buf bytes.Buffer
	if err := w.Write(&buf, sampleDocs()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	dec := stdjson.NewDecoder(&buf)
	dec.UseNumber()
	var first map[string]any
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if first["password"] != "[REDACT]" {
		t.Errorf("password = %v, want [REDACT]", first["password"])
	}
	if first["id"] != stdjson.Number("12345678901234567890") {
		t.Errorf("id = %v, want exact big integer", first["id"])
	}
	var second map[string]any
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("second document: %v", err)
	}
	if second["msg"] != "second" {
		t.Errorf("msg = %v, want second", second["msg"])
	}
}

func TestJSONWriter_Lines(t *testing.T) {
	w, _ := GetWriter(FormatJSONL)
	var buf bytes.Buffer
	if err := w.Write(&buf, sampleDocs()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if lines[1] != `{"msg":"second"}` {
		t.Errorf("line 2 = %s", lines[1])
	}
}

func TestYAMLWriter(t *testing.T) {
	w, _ := GetWriter(FormatYAML)
	var buf bytes.Buffer
	if err := w.Write(&buf, sampleDocs()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "---") {
		t.Errorf("expected document separator in:\n%s", buf.String())
	}

	dec := yaml.NewDecoder(&buf)
	var first map[string]any
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}
	if first["password"] != "[REDACT]" {
		t.Errorf("password = %v", first["password"])
	}
	if first["id"] != uint64(12345678901234567890) {
		t.Errorf("id = %#v, want unquoted integer", first["id"])
	}
}

func TestYAMLWriter_Numbers(t *testing.T) {
	docs := []any{map[string]any{
		"big":   stdjson.Number("12345678901234567890"),
		"ratio": stdjson.Number("1.5"),
		"count": stdjson.Number("3"),
		"exp":   stdjson.Number("-2e3"),
		"list":  []any{stdjson.Number("7"), "8"},
	}}
	var buf bytes.Buffer
	if err := (&YAMLWriter{}).Write(&buf, docs); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	want := "big: 12345678901234567890\ncount: 3\nexp: -2e3\nlist:\n  - 7\n  - \"8\"\nratio: 1.5\n"
	if buf.String() != want {
		t.Errorf("YAML output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestTextWriter(t *testing.T) {
	w, _ := GetWriter(FormatText)
	var buf bytes.Buffer
	if err := w.Write(&buf, sampleDocs()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"# document 1", "# document 2", "[REDACT]", "second"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestTextWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, nil); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if buf.String() != "(no documents)\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestDestination_Commit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := (&JSONWriter{}).Write(d, sampleDocs()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output file exists before Commit: %v", err)
	}
	if err := d.Commit(); err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), `"password":"[REDACT]"`) {
		t.Errorf("unexpected output: %s", data)
	}
	d.Abort()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Abort after Commit removed output: %v", err)
	}
}

func TestDestination_AbortKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := os.WriteFile(path, []byte("previous\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, err := d.Write([]byte("partial")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	d.Abort()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "previous\n" {
		t.Errorf("output = %q, want previous contents", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary file left behind: %v", entries)
	}
}

func TestDestination_MissingDir(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope", "out.json")); err == nil {
		t.Error("Expected error for missing directory")
	}
}
