package output

import (
	"fmt"
	"io"
)

// JSONWriter writes one JSON value per document followed by a newline. With
// an empty Indent every document sits on a single line (JSON Lines).
type JSONWriter struct {
	Indent string
}

func (j *JSONWriter) Write(w io.Writer, docs []any) error {
	ew := &errWriter{w: w}
	for i, doc := range docs {
		var (
			data []byte
			err  error
		)
		if j.Indent != "" {
			data, err = json.MarshalIndent(doc, "", j.Indent)
		} else {
			data, err = json.Marshal(doc)
		}
		if err != nil {
			return fmt.Errorf("marshaling JSON document %d: %w", i+1, err)
		}
		ew.write(data)
		ew.write([]byte{'\n'})
	}
	if ew.err != nil {
		return fmt.Errorf("writing JSON: %w", ew.err)
	}
	return nil
}
