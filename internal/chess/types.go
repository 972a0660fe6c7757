// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour uint8

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Letter returns the FEN side-to-move letter for a colour.
func (c Colour) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Kind represents a chess piece type.
type Kind uint8

const (
	NoKind Kind = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter returns the piece kind for an uppercase SAN letter, or NoKind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K':
		return King
	case 'Q':
		return Queen
	case 'R':
		return Rook
	case 'B':
		return Bishop
	case 'N':
		return Knight
	case 'P':
		return Pawn
	}
	return NoKind
}

// Piece is a coloured piece. The zero value is an empty square.
// A Board of Pieces is 128 bytes, so every tree node can own a copy.
type Piece struct {
	Kind   Kind
	Colour Colour
}

// W creates a white piece.
func W(kind Kind) Piece {
	return Piece{Kind: kind, Colour: White}
}

// B creates a black piece.
func B(kind Kind) Piece {
	return Piece{Kind: kind, Colour: Black}
}

// IsEmpty reports whether the square holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// FENLetter returns the FEN letter of the piece: uppercase for White,
// lowercase for Black, 0 for an empty square.
func (p Piece) FENLetter() byte {
	if p.IsEmpty() {
		return 0
	}
	l := p.Kind.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	FirstRank = '1'
	LastRank  = FirstRank + BoardSize - 1
	FirstFile = 'a'
	LastFile  = FirstFile + BoardSize - 1
)

// Square addresses a board cell. Row 0 is rank 8, column 0 is file a.
type Square struct {
	R int `json:"r"`
	C int `json:"c"`
}

// IsFile returns true if c is a valid file character.
func IsFile(c byte) bool {
	return c >= FirstFile && c <= LastFile
}

// IsRank returns true if c is a valid rank character.
func IsRank(c byte) bool {
	return c >= FirstRank && c <= LastRank
}

// FileToCol converts a file character to a column index.
func FileToCol(file byte) int {
	return int(file - FirstFile)
}

// RankToRow converts a rank character to a row index.
func RankToRow(rank byte) int {
	return int(LastRank - rank)
}

// SquareOf builds a square from algebraic file and rank characters.
// The caller is responsible for validating them with IsFile and IsRank.
func SquareOf(file, rank byte) Square {
	return Square{R: RankToRow(rank), C: FileToCol(file)}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.R >= 0 && s.R < BoardSize && s.C >= 0 && s.C < BoardSize
}

// File returns the file character of the square.
func (s Square) File() byte {
	return byte(FirstFile + s.C)
}

// Rank returns the rank character of the square.
func (s Square) Rank() byte {
	return byte(LastRank - s.R)
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{s.File(), s.Rank()})
}

// HomeRow returns the back-rank row of a colour.
func HomeRow(colour Colour) int {
	if colour == White {
		return BoardSize - 1
	}
	return 0
}

// PawnDirection returns the row delta of a pawn advance: -1 for White, +1 for Black.
func PawnDirection(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}
