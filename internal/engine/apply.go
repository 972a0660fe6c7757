package engine

import (
	"fmt"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/errors"
)

// Disambiguation selects how a source square is chosen when the move text
// leaves more than one candidate.
type Disambiguation int

const (
	// FirstMatch takes the first reachable candidate in row-major order.
	FirstMatch Disambiguation = iota
	// Strict drops candidates that leave their own king attacked and
	// rejects moves that still have more than one candidate.
	Strict
)

var disambiguationNames = [...]string{"first-match", "strict"}

func (d Disambiguation) String() string {
	if d >= 0 && int(d) < len(disambiguationNames) {
		return disambiguationNames[d]
	}
	return "unknown"
}

// ParseDisambiguation parses a disambiguation mode name.
func ParseDisambiguation(s string) (Disambiguation, error) {
	for i, name := range disambiguationNames {
		if s == name {
			return Disambiguation(i), nil
		}
	}
	return FirstMatch, fmt.Errorf("disambiguation %q: %w", s, errors.ErrInvalidConfig)
}

// UnresolvedPolicy selects what happens to the board when no source square
// is found for a move.
type UnresolvedPolicy int

const (
	// FallbackCorner treats a8 as the source: a8 is emptied and the moving
	// piece appears on the destination.
	FallbackCorner UnresolvedPolicy = iota
	// KeepBoard leaves the board unchanged.
	KeepBoard
)

var unresolvedNames = [...]string{"corner", "keep-board"}

func (p UnresolvedPolicy) String() string {
	if p >= 0 && int(p) < len(unresolvedNames) {
		return unresolvedNames[p]
	}
	return "unknown"
}

// ParseUnresolvedPolicy parses an unresolved-move policy name.
func ParseUnresolvedPolicy(s string) (UnresolvedPolicy, error) {
	for i, name := range unresolvedNames {
		if s == name {
			return UnresolvedPolicy(i), nil
		}
	}
	return FallbackCorner, fmt.Errorf("unresolved policy %q: %w", s, errors.ErrInvalidConfig)
}

// Options controls move resolution. The zero value is the lenient default.
type Options struct {
	Disambiguation Disambiguation
	Unresolved     UnresolvedPolicy
}

// Resolution is the outcome of applying one SAN move.
type Resolution struct {
	Board      chess.Board
	Move       chess.Move
	Class      chess.MoveClass
	Resolved   bool
	Candidates int   // reachable source squares found
	Err        error // ErrUnresolvedMove or ErrAmbiguousMove when !Resolved
}

var cornerSquare = chess.Square{R: 0, C: 0}

// ApplySAN resolves move text for the side to move against board and returns
// the resulting position. The input board is never modified.
func ApplySAN(board *chess.Board, san string, side chess.Colour, opts Options) Resolution {
	res := Resolution{Board: *board}

	d, ok := DecodeSAN(san)
	if !ok {
		res.Class = chess.UnknownMove
		res.Err = errors.ErrUnresolvedMove
		res.Move = chess.Move{From: cornerSquare, To: cornerSquare}
		return res
	}
	res.Class = d.Class

	switch d.Class {
	case chess.KingsideCastle, chess.QueensideCastle:
		res.Move = applyCastle(&res.Board, side, d.Class == chess.KingsideCastle)
		res.Resolved = true
		return res
	}

	sources := findSources(board, d, side)
	res.Candidates = len(sources)

	if opts.Disambiguation == Strict {
		sources = safeSources(board, d, side, sources)
		if len(sources) > 1 {
			res.Err = errors.ErrAmbiguousMove
			return unresolved(res, d, side, opts.Unresolved)
		}
	}
	if len(sources) == 0 {
		res.Err = errors.ErrUnresolvedMove
		return unresolved(res, d, side, opts.Unresolved)
	}

	from := sources[0]
	if d.Kind == chess.Pawn && isEnPassant(board, from, d.To) {
		res.Class = chess.EnPassantPawnMove
	}
	applyResolved(&res.Board, d, side, from)
	res.Move = chess.Move{From: from, To: d.To}
	res.Resolved = true
	return res
}

// safeSources keeps the candidates whose move does not leave the mover's
// king attacked.
func safeSources(board *chess.Board, d Decoded, side chess.Colour, sources []chess.Square) []chess.Square {
	var safe []chess.Square
	for _, from := range sources {
		next := *board
		applyResolved(&next, d, side, from)
		if !IsInCheck(&next, side) {
			safe = append(safe, from)
		}
	}
	return safe
}

// applyResolved moves the piece on from to the destination, handling en
// passant removal and promotion.
func applyResolved(board *chess.Board, d Decoded, side chess.Colour, from chess.Square) {
	if d.Kind == chess.Pawn && isEnPassant(board, from, d.To) {
		board.Clear(chess.Square{R: from.R, C: d.To.C})
	}
	board.Clear(from)
	board.Set(d.To, movedPiece(d, side))
}

// unresolved applies the configured policy for a move without a source.
func unresolved(res Resolution, d Decoded, side chess.Colour, policy UnresolvedPolicy) Resolution {
	if policy == KeepBoard {
		res.Move = chess.Move{From: d.To, To: d.To}
		return res
	}
	res.Board.Clear(cornerSquare)
	res.Board.Set(d.To, movedPiece(d, side))
	res.Move = chess.Move{From: cornerSquare, To: d.To}
	return res
}

// movedPiece is the piece that ends up on the destination square.
func movedPiece(d Decoded, side chess.Colour) chess.Piece {
	kind := d.Kind
	if d.Promotion != chess.NoKind {
		kind = d.Promotion
	}
	return chess.Piece{Kind: kind, Colour: side}
}
