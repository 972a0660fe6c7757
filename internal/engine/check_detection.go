package engine

import "github.com/lgbarn/pgnview-go/internal/chess"

var (
	knightOffsets  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	diagonalDirs   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	kingNeighbours = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// IsInCheck returns true if the given colour's king is attacked.
// A board without that king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king, ok := board.Find(chess.Piece{Kind: chess.King, Colour: colour})
	if !ok {
		return false
	}
	return isSquareAttacked(board, king, colour.Opposite())
}

// isSquareAttacked returns true if the square is attacked by the given colour.
func isSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	// Pawns attack from one row behind their direction of travel.
	pawn := chess.Piece{Kind: chess.Pawn, Colour: byColour}
	pawnRow := sq.R - chess.PawnDirection(byColour)
	for _, dc := range []int{-1, 1} {
		if board.At(chess.Square{R: pawnRow, C: sq.C + dc}) == pawn {
			return true
		}
	}

	knight := chess.Piece{Kind: chess.Knight, Colour: byColour}
	for _, off := range knightOffsets {
		if board.At(chess.Square{R: sq.R + off[0], C: sq.C + off[1]}) == knight {
			return true
		}
	}

	king := chess.Piece{Kind: chess.King, Colour: byColour}
	for _, off := range kingNeighbours {
		if board.At(chess.Square{R: sq.R + off[0], C: sq.C + off[1]}) == king {
			return true
		}
	}

	queen := chess.Piece{Kind: chess.Queen, Colour: byColour}
	bishop := chess.Piece{Kind: chess.Bishop, Colour: byColour}
	if slidingAttack(board, sq, diagonalDirs, bishop, queen) {
		return true
	}
	rook := chess.Piece{Kind: chess.Rook, Colour: byColour}
	return slidingAttack(board, sq, straightDirs, rook, queen)
}

// slidingAttack walks each direction from sq until the first piece and
// reports whether it is one of the attackers.
func slidingAttack(board *chess.Board, sq chess.Square, dirs [][2]int, attackers ...chess.Piece) bool {
	for _, dir := range dirs {
		cur := chess.Square{R: sq.R + dir[0], C: sq.C + dir[1]}
		for cur.Valid() {
			piece := board.At(cur)
			if !piece.IsEmpty() {
				for _, a := range attackers {
					if piece == a {
						return true
					}
				}
				break // Blocked
			}
			cur.R += dir[0]
			cur.C += dir[1]
		}
	}
	return false
}
