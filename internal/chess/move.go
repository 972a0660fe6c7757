package chess

// MoveClass categorizes different types of chess moves.
type MoveClass int

const (
	PawnMove MoveClass = iota
	PawnMoveWithPromotion
	EnPassantPawnMove
	PieceMove
	KingsideCastle
	QueensideCastle
	UnknownMove
)

// String returns the string representation of a move class.
func (c MoveClass) String() string {
	names := []string{"PawnMove", "PawnMoveWithPromotion", "EnPassantPawnMove", "PieceMove",
		"KingsideCastle", "QueensideCastle", "UnknownMove"}
	if c >= 0 && int(c) < len(names) {
		return names[c]
	}
	return "UnknownMove"
}

// Move records the squares a move went from and to.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// String returns the move in long algebraic form, e.g. "e2e4".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}
