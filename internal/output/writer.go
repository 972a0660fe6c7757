package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/pgnview-go/internal/gametree"
)

// TreeWriter is the interface for writing parsed games to output.
// Different implementations handle different output formats (PGN, JSON).
type TreeWriter interface {
	// WriteTree writes one game. Name may be empty.
	WriteTree(name string, tree *gametree.Tree) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer. For batch writers (like JSON), this also
	// writes any pending output.
	Close() error
}

// PGNWriter writes games as PGN movetext.
type PGNWriter struct {
	w    io.Writer
	opts PGNOptions
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, opts PGNOptions) *PGNWriter {
	return &PGNWriter{w: w, opts: opts}
}

// WriteTree writes a game, preceded by an Event tag when it has a name.
func (pw *PGNWriter) WriteTree(name string, tree *gametree.Tree) error {
	if name != "" {
		if _, err := fmt.Fprintf(pw.w, "[Event \"%s\"]\n\n", escapeTagValue(name)); err != nil {
			return err
		}
	}
	WritePGN(pw.w, tree, pw.opts)
	_, err := fmt.Fprintln(pw.w)
	return err
}

// Flush is a no-op: PGN is written immediately.
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// JSONNamedTree is a game with its name, as written by JSONWriter.
type JSONNamedTree struct {
	Name string `json:"name,omitempty"`
	*JSONTree
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []JSONNamedTree `json:"games"`
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as one document on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []JSONNamedTree
	single bool // write each game immediately instead of batching
}

// NewJSONWriter creates a JSON writer that batches games into one document.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WriteTree buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteTree(name string, tree *gametree.Tree) error {
	named := JSONNamedTree{Name: name, JSONTree: TreeToJSON(tree)}
	if jw.single {
		return EncodeJSON(jw.w, named)
	}
	jw.games = append(jw.games, named)
	return nil
}

// Flush writes all buffered games as a JSON document.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}
	err := EncodeJSON(jw.w, &JSONOutput{Games: jw.games})
	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
