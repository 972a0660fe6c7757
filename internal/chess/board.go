package chess

import "strings"

// Board is an 8x8 grid of pieces. It is a value type: assignment copies every
// square, so a board handed out by the engine never aliases another one.
type Board [BoardSize][BoardSize]Piece

// NewBoard creates a new empty board.
func NewBoard() Board {
	return Board{}
}

// NewInitialBoard returns the standard chess starting position.
func NewInitialBoard() Board {
	var b Board
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b[0][col] = B(backRank[col])
		b[1][col] = B(Pawn)
		b[6][col] = W(Pawn)
		b[7][col] = W(backRank[col])
	}
	return b
}

// At returns the piece on a square. Off-board squares read as empty.
func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return b[sq.R][sq.C]
}

// Get returns the piece at the given algebraic coordinates ('a'-'h', '1'-'8').
func (b *Board) Get(file, rank byte) Piece {
	if !IsFile(file) || !IsRank(rank) {
		return Piece{}
	}
	return b.At(SquareOf(file, rank))
}

// Set places a piece on a square. Off-board squares are ignored.
func (b *Board) Set(sq Square, p Piece) {
	if sq.Valid() {
		b[sq.R][sq.C] = p
	}
}

// Clear empties a square.
func (b *Board) Clear(sq Square) {
	b.Set(sq, Piece{})
}

// Find returns the first square holding p in row-major order.
func (b *Board) Find(p Piece) (Square, bool) {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c] == p {
				return Square{R: r, C: c}, true
			}
		}
	}
	return Square{}, false
}

// Count returns how many squares hold p.
func (b *Board) Count(p Piece) int {
	n := 0
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c] == p {
				n++
			}
		}
	}
	return n
}

// String renders the board as eight lines of FEN letters, rank 8 first,
// with '.' for empty squares.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if l := b[r][c].FENLetter(); l != 0 {
				sb.WriteByte(l)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
