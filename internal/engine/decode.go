package engine

import (
	"strings"

	"github.com/lgbarn/pgnview-go/internal/chess"
)

// Decoded holds the information carried by SAN move text, before it is
// resolved against a board.
type Decoded struct {
	Class     chess.MoveClass
	Kind      chess.Kind
	To        chess.Square
	FromCol   int // -1 when the text gives no file hint
	FromRow   int // -1 when the text gives no rank hint
	Capture   bool
	Promotion chess.Kind
}

// isCapture returns true if c is a capture marker.
func isCapture(c byte) bool {
	return c == 'x' || c == 'X' || c == ':'
}

// StripSuffix removes trailing check, mate and annotation characters.
func StripSuffix(san string) string {
	return strings.TrimRight(san, "+#!?")
}

// DecodeSAN parses move text into its components. It reports false when the
// text has no recognisable destination square.
func DecodeSAN(san string) (Decoded, bool) {
	text := StripSuffix(strings.TrimSpace(san))
	d := Decoded{FromCol: -1, FromRow: -1}

	switch text {
	case "O-O", "0-0":
		d.Class = chess.KingsideCastle
		d.Kind = chess.King
		return d, true
	case "O-O-O", "0-0-0":
		d.Class = chess.QueensideCastle
		d.Kind = chess.King
		return d, true
	}

	// Promotion: "=Q" anywhere, or a bare piece letter straight after the rank.
	if i := strings.IndexByte(text, '='); i >= 0 {
		if i+1 < len(text) {
			d.Promotion = promotionKind(text[i+1])
		}
		text = text[:i]
	} else if n := len(text); n >= 3 && chess.IsRank(text[n-2]) {
		if k := promotionKind(text[n-1]); k != chess.NoKind {
			d.Promotion = k
			text = text[:n-1]
		}
	}

	d.Kind = chess.Pawn
	if len(text) > 0 {
		if k := chess.KindFromLetter(text[0]); k != chess.NoKind && k != chess.Pawn {
			d.Kind = k
			text = text[1:]
		}
	}

	if len(text) < 2 {
		return d, false
	}
	file, rank := text[len(text)-2], text[len(text)-1]
	if !chess.IsFile(file) || !chess.IsRank(rank) {
		return d, false
	}
	d.To = chess.SquareOf(file, rank)

	for i := 0; i < len(text)-2; i++ {
		c := text[i]
		switch {
		case isCapture(c):
			d.Capture = true
		case chess.IsFile(c):
			d.FromCol = chess.FileToCol(c)
		case chess.IsRank(c):
			d.FromRow = chess.RankToRow(c)
		}
	}

	switch {
	case d.Kind != chess.Pawn:
		d.Class = chess.PieceMove
	case d.Promotion != chess.NoKind:
		d.Class = chess.PawnMoveWithPromotion
	default:
		d.Class = chess.PawnMove
	}
	return d, true
}

// promotionKind returns the piece a pawn may promote to for a letter.
func promotionKind(c byte) chess.Kind {
	switch c {
	case 'Q', 'R', 'B', 'N':
		return chess.KindFromLetter(c)
	}
	return chess.NoKind
}
