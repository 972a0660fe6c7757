package engine

import "github.com/lgbarn/pgnview-go/internal/chess"

// Castling columns.
const (
	kingCol          = 4
	kingsideRookCol  = 7
	queensideRookCol = 0
)

// applyCastle relocates the king and rook of the given side to their castled
// squares. No legality check is made.
func applyCastle(board *chess.Board, colour chess.Colour, kingside bool) chess.Move {
	row := chess.HomeRow(colour)

	kingTo, rookFrom, rookTo := 2, queensideRookCol, 3
	if kingside {
		kingTo, rookFrom, rookTo = 6, kingsideRookCol, 5
	}

	board.Clear(chess.Square{R: row, C: kingCol})
	board.Clear(chess.Square{R: row, C: rookFrom})
	board.Set(chess.Square{R: row, C: kingTo}, chess.Piece{Kind: chess.King, Colour: colour})
	board.Set(chess.Square{R: row, C: rookTo}, chess.Piece{Kind: chess.Rook, Colour: colour})

	return chess.Move{
		From: chess.Square{R: row, C: kingCol},
		To:   chess.Square{R: row, C: kingTo},
	}
}
