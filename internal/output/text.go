package output

import (
	"io"

	"github.com/kr/pretty"
)

// TextWriter dumps documents in Go syntax, one block per document.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, docs []any) error {
	ew := &errWriter{w: w}
	for i, doc := range docs {
		if len(docs) > 1 {
			ew.printf("# document %d\n", i+1)
		}
		ew.printf("%# v\n", pretty.Formatter(doc))
	}
	if len(docs) == 0 {
		ew.printf("(no documents)\n")
	}
	return ew.err
}
