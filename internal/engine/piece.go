package engine

import "github.com/lgbarn/pgnview-go/internal/chess"

// findSources returns every square, in row-major order, holding a piece of
// the decoded kind and colour that can reach the destination and matches the
// file and rank hints.
func findSources(board *chess.Board, d Decoded, colour chess.Colour) []chess.Square {
	piece := chess.Piece{Kind: d.Kind, Colour: colour}
	capture := pawnCaptures(d)

	var sources []chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if board[row][col] != piece {
				continue
			}

			// Check disambiguation
			if d.FromCol >= 0 && col != d.FromCol {
				continue
			}
			if d.FromRow >= 0 && row != d.FromRow {
				continue
			}

			from := chess.Square{R: row, C: col}
			if canReach(board, d.Kind, colour, from, d.To, capture) {
				sources = append(sources, from)
			}
		}
	}
	return sources
}

// canReach dispatches to the pawn or piece geometry check.
func canReach(board *chess.Board, kind chess.Kind, colour chess.Colour, from, to chess.Square, capture bool) bool {
	if kind == chess.Pawn {
		return canPawnMove(board, colour, from, to, capture)
	}
	return canPieceMove(board, kind, from, to)
}

// pawnCaptures reports whether a pawn move is a capture: an explicit marker,
// or a source file that differs from the destination file.
func pawnCaptures(d Decoded) bool {
	return d.Capture || (d.FromCol >= 0 && d.FromCol != d.To.C)
}
