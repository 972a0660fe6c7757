package engine

import "github.com/lgbarn/pgnview-go/internal/chess"

// pawnStartRow returns the row a pawn of the given colour starts on.
func pawnStartRow(colour chess.Colour) int {
	if colour == chess.White {
		return 6
	}
	return 1
}

// canPawnMove checks pawn geometry. Captures move one square diagonally
// forward; the destination may be empty (en passant). Advances move one
// square onto an empty square, or two from the start row through an empty one.
func canPawnMove(board *chess.Board, colour chess.Colour, from, to chess.Square, capture bool) bool {
	dir := chess.PawnDirection(colour)
	rowDiff := to.R - from.R
	colDiff := to.C - from.C

	if capture {
		return abs(colDiff) == 1 && rowDiff == dir
	}
	if colDiff != 0 {
		return false
	}
	if rowDiff == dir {
		return board.At(to).IsEmpty()
	}
	if rowDiff == 2*dir && from.R == pawnStartRow(colour) {
		middle := chess.Square{R: from.R + dir, C: from.C}
		return board.At(middle).IsEmpty() && board.At(to).IsEmpty()
	}
	return false
}

// isEnPassant reports whether a pawn moving from -> to onto an empty square
// is capturing en passant.
func isEnPassant(board *chess.Board, from, to chess.Square) bool {
	return from.C != to.C && board.At(to).IsEmpty()
}
