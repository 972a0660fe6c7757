package testutil

import (
	"strings"
	"testing"

	refchess "github.com/notnil/chess"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
)

// MustBoard parses a FEN string and returns the board.
// It calls t.Fatal if the FEN is invalid.
func MustBoard(t *testing.T, fen string) chess.Board {
	t.Helper()
	board, _, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("invalid test FEN %q: %v", fen, err)
	}
	return board
}

// AssertPlacement fails if the board's FEN placement differs from want.
func AssertPlacement(t *testing.T, board *chess.Board, want string, msgAndArgs ...interface{}) {
	t.Helper()
	got := engine.PlacementFEN(board)
	if got == want {
		return
	}
	msg := formatMessage(msgAndArgs...)
	if msg != "" {
		t.Errorf("%s: placement = %q, want %q\n%s", msg, got, want, board.String())
	} else {
		t.Errorf("placement = %q, want %q\n%s", got, want, board.String())
	}
}

// ReferencePlacements plays SAN moves from the starting position with an
// independent rules implementation and returns the FEN placement after each
// move. It calls t.Fatal if the reference rejects a move.
func ReferencePlacements(t *testing.T, moves []string) []string {
	t.Helper()
	game := refchess.NewGame()
	placements := make([]string, 0, len(moves))
	for i, san := range moves {
		if err := game.MoveStr(san); err != nil {
			t.Fatalf("reference rejected move %d %q: %v", i+1, san, err)
		}
		placements = append(placements, strings.Fields(game.Position().String())[0])
	}
	return placements
}
