// Package errors provides sentinel errors and error types for the replay engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrUnresolvedMove indicates no piece on the board could make the move.
	ErrUnresolvedMove = errors.New("unresolved move")

	// ErrAmbiguousMove indicates more than one piece could make the move.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrUnmatchedVariationEnd indicates a ')' with no open variation.
	ErrUnmatchedVariationEnd = errors.New("unmatched variation end")

	// ErrUnclosedVariation indicates the input ended inside a variation.
	ErrUnclosedVariation = errors.New("unclosed variation")

	// ErrTooManyNodes indicates movetext beyond the tree size limit.
	ErrTooManyNodes = errors.New("too many nodes")

	// ErrUnknownNode indicates a node id outside the tree.
	ErrUnknownNode = errors.New("unknown node")

	// ErrGameNotFound indicates a game id missing from the library.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRequest indicates a malformed API request.
	ErrInvalidRequest = errors.New("invalid request")
)

// MoveError wraps errors with position context, including node id,
// ply and move text. It implements the error interface and supports
// unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	Node     int    // Node id the problem is attached to (-1 if none)
	Ply      int    // Ply number where the problem occurred (0 if not applicable)
	MoveText string // The move text that caused the problem (if applicable)
	Offset   int    // Byte offset in the input text (-1 if unknown)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Offset >= 0 {
		parts = append(parts, fmt.Sprintf("offset %d", e.Offset))
	}
	if e.Node >= 0 {
		parts = append(parts, fmt.Sprintf("node %d", e.Node))
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%s: %v", context, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "move error"
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
