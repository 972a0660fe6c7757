package engine

import "github.com/lgbarn/pgnview-go/internal/chess"

// canPieceMove checks if a non-pawn piece can move from one square to another,
// blocked by intervening pieces for sliders.
func canPieceMove(board *chess.Board, kind chess.Kind, from, to chess.Square) bool {
	rowDiff := abs(to.R - from.R)
	colDiff := abs(to.C - from.C)
	if rowDiff == 0 && colDiff == 0 {
		return false
	}

	switch kind {
	case chess.Knight:
		return (colDiff == 1 && rowDiff == 2) || (colDiff == 2 && rowDiff == 1)

	case chess.Bishop:
		if colDiff != rowDiff {
			return false
		}
		return isPathClear(board, from, to)

	case chess.Rook:
		if colDiff != 0 && rowDiff != 0 {
			return false
		}
		return isPathClear(board, from, to)

	case chess.Queen:
		if colDiff == rowDiff || colDiff == 0 || rowDiff == 0 {
			return isPathClear(board, from, to)
		}
		return false

	case chess.King:
		return colDiff <= 1 && rowDiff <= 1
	}

	return false
}

// isPathClear checks that every square strictly between from and to is empty.
// The squares must share a row, column or diagonal.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	rowDir := sign(to.R - from.R)
	colDir := sign(to.C - from.C)

	sq := chess.Square{R: from.R + rowDir, C: from.C + colDir}
	for sq != to {
		if !board.At(sq).IsEmpty() {
			return false
		}
		sq.R += rowDir
		sq.C += colDir
	}

	return true
}
