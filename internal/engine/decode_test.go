package engine

import (
	"testing"

	"github.com/lgbarn/pgnview-go/internal/chess"
)

func sq(name string) chess.Square {
	return chess.SquareOf(name[0], name[1])
}

func TestDecodeSAN(t *testing.T) {
	tests := []struct {
		san  string
		want Decoded
	}{
		{"e4", Decoded{Class: chess.PawnMove, Kind: chess.Pawn, To: sq("e4"), FromCol: -1, FromRow: -1}},
		{"exd5", Decoded{Class: chess.PawnMove, Kind: chess.Pawn, To: sq("d5"), FromCol: 4, FromRow: -1, Capture: true}},
		{"Nf3", Decoded{Class: chess.PieceMove, Kind: chess.Knight, To: sq("f3"), FromCol: -1, FromRow: -1}},
		{"Nbd2", Decoded{Class: chess.PieceMove, Kind: chess.Knight, To: sq("d2"), FromCol: 1, FromRow: -1}},
		{"R1e2", Decoded{Class: chess.PieceMove, Kind: chess.Rook, To: sq("e2"), FromCol: -1, FromRow: 7}},
		{"Qh4xe1+", Decoded{Class: chess.PieceMove, Kind: chess.Queen, To: sq("e1"), FromCol: 7, FromRow: 4, Capture: true}},
		{"Kxf7??", Decoded{Class: chess.PieceMove, Kind: chess.King, To: sq("f7"), FromCol: -1, FromRow: -1, Capture: true}},
		{"exd8=Q+", Decoded{Class: chess.PawnMoveWithPromotion, Kind: chess.Pawn, To: sq("d8"), FromCol: 4, FromRow: -1, Capture: true, Promotion: chess.Queen}},
		{"e8N", Decoded{Class: chess.PawnMoveWithPromotion, Kind: chess.Pawn, To: sq("e8"), FromCol: -1, FromRow: -1, Promotion: chess.Knight}},
		{"O-O", Decoded{Class: chess.KingsideCastle, Kind: chess.King, FromCol: -1, FromRow: -1}},
		{"0-0-0", Decoded{Class: chess.QueensideCastle, Kind: chess.King, FromCol: -1, FromRow: -1}},
		{"O-O+", Decoded{Class: chess.KingsideCastle, Kind: chess.King, FromCol: -1, FromRow: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.san, func(t *testing.T) {
			got, ok := DecodeSAN(tt.san)
			if !ok {
				t.Fatalf("DecodeSAN(%q) reported failure", tt.san)
			}
			if got != tt.want {
				t.Errorf("DecodeSAN(%q) = %+v, want %+v", tt.san, got, tt.want)
			}
		})
	}
}

func TestDecodeSAN_Invalid(t *testing.T) {
	for _, san := range []string{"", "Z", "Nx", "x9", "+", "N"} {
		t.Run(san, func(t *testing.T) {
			if _, ok := DecodeSAN(san); ok {
				t.Errorf("DecodeSAN(%q) = ok, want failure", san)
			}
		})
	}
}

func TestStripSuffix(t *testing.T) {
	tests := map[string]string{
		"e4":      "e4",
		"Nf3+":    "Nf3",
		"Qxf7#":   "Qxf7",
		"e8=Q!?":  "e8=Q",
		"O-O-O+!": "O-O-O",
	}
	for in, want := range tests {
		if got := StripSuffix(in); got != want {
			t.Errorf("StripSuffix(%q) = %q, want %q", in, got, want)
		}
	}
}
