// Package engine decodes SAN move text and applies it to a board.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// ConvertFENCharToKind converts a FEN character of either case to a piece kind.
func ConvertFENCharToKind(c byte) chess.Kind {
	return chess.KindFromLetter(byte(unicode.ToUpper(rune(c))))
}

// NewBoardFromFEN creates a board from a FEN string. Only the placement and
// side-to-move fields are read; a missing side field means White.
func NewBoardFromFEN(fen string) (chess.Board, chess.Colour, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return chess.Board{}, chess.White, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board, err := parsePiecePositions(parts[0])
	if err != nil {
		return chess.Board{}, chess.White, err
	}

	turn, err := parseSideToMove(parts)
	if err != nil {
		return chess.Board{}, chess.White, err
	}

	return board, turn, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(positions string) (chess.Board, error) {
	var board chess.Board
	row, col := 0, 0

	for _, c := range positions {
		switch {
		case c == '/':
			if col != chess.BoardSize {
				return board, fmt.Errorf("short rank %d: %w", chess.BoardSize-row, errors.ErrInvalidFEN)
			}
			row++
			col = 0
		case c >= '1' && c <= '8':
			col += int(c - '0')
			if col > chess.BoardSize {
				return board, fmt.Errorf("rank %d overflows: %w", chess.BoardSize-row, errors.ErrInvalidFEN)
			}
		default:
			kind := chess.NoKind
			if c < unicode.MaxASCII {
				kind = ConvertFENCharToKind(byte(c))
			}
			if kind == chess.NoKind {
				return board, fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if col >= chess.BoardSize || row >= chess.BoardSize {
				return board, fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			board[row][col] = chess.Piece{Kind: kind, Colour: colour}
			col++
		}
	}

	if row != chess.BoardSize-1 || col != chess.BoardSize {
		return board, fmt.Errorf("expected 8 full ranks: %w", errors.ErrInvalidFEN)
	}
	return board, nil
}

// parseSideToMove parses the active colour field.
func parseSideToMove(parts []string) (chess.Colour, error) {
	if len(parts) < 2 {
		return chess.White, nil
	}
	switch parts[1] {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	default:
		return chess.White, fmt.Errorf("invalid side to move %q: %w", parts[1], errors.ErrInvalidFEN)
	}
}

// PlacementFEN returns the piece placement field for a board.
func PlacementFEN(board *chess.Board) string {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < chess.BoardSize; col++ {
			letter := board[row][col].FENLetter()
			if letter == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	return sb.String()
}

// BoardToFEN returns a FEN string for the board. Castling and en passant
// fields are not tracked and are always "-".
func BoardToFEN(board *chess.Board, turn chess.Colour, moveNumber int) string {
	if moveNumber < 1 {
		moveNumber = 1
	}
	return fmt.Sprintf("%s %c - - 0 %d", PlacementFEN(board), turn.Letter(), moveNumber)
}
