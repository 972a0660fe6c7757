// Package output renders game trees as PGN movetext and JSON.
package output

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/lgbarn/pgnview-go/internal/gametree"
)

// DefaultLineLength is the wrapping width used when none is given.
const DefaultLineLength = 80

// clockAnnotationRegex matches clock annotations like [%clk H:MM:SS] or [%clk H:MM:SS.d]
var clockAnnotationRegex = regexp.MustCompile(`\[%clk\s+\d+:\d{2}:\d{2}(?:\.\d+)?\]`)

// stripClockAnnotations removes clock annotations from comment text.
func stripClockAnnotations(text string) string {
	return strings.TrimSpace(clockAnnotationRegex.ReplaceAllString(text, ""))
}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator or a line break if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// WriteOpen writes s so that the next write follows it without a space.
func (o *OutputWriter) WriteOpen(s string) {
	o.Write(s)
	o.needsSpace = false
}

// WriteNoSpace writes without adding a leading space.
func (o *OutputWriter) WriteNoSpace(s string) {
	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// PGNOptions controls movetext rendering.
type PGNOptions struct {
	LineLength            int
	StripClockAnnotations bool
}

// RenderPGN renders a tree as PGN movetext wrapped at width columns.
// Parsing the result builds an equal tree.
func RenderPGN(tree *gametree.Tree, width int) string {
	var sb strings.Builder
	WritePGN(&sb, tree, PGNOptions{LineLength: width})
	return sb.String()
}

// WritePGN writes a tree as PGN movetext followed by a newline.
func WritePGN(w io.Writer, tree *gametree.Tree, opts PGNOptions) {
	ow := NewOutputWriter(w, opts.LineLength)

	for _, tok := range tree.Display {
		switch tok.Kind {
		case gametree.DisplayMove:
			if tok.ShowNumber {
				ow.Write(moveNumber(tok))
			}
			ow.Write(tok.Text)

		case gametree.DisplayNAG:
			if tok.NAGCode > 0 {
				ow.Write(fmt.Sprintf("$%d", tok.NAGCode))
			}

		case gametree.DisplayComment:
			outputComment(tok.Text, opts, ow)

		case gametree.DisplayVariationStart:
			ow.WriteOpen("(")

		case gametree.DisplayVariationEnd:
			ow.WriteNoSpace(")")
		}
	}

	if tree.Result != "" {
		ow.Write(tree.Result)
	}
	ow.NewLine()
}

// moveNumber returns "N." for White and "N..." for Black.
func moveNumber(tok gametree.DisplayToken) string {
	if tok.White {
		return fmt.Sprintf("%d.", tok.MoveNumber)
	}
	return fmt.Sprintf("%d...", tok.MoveNumber)
}

// outputComment writes a comment, optionally stripping clock annotations.
func outputComment(text string, opts PGNOptions, ow *OutputWriter) {
	if opts.StripClockAnnotations {
		text = stripClockAnnotations(text)
	}
	if text == "" {
		return
	}
	ow.Write("{" + text + "}")
}
