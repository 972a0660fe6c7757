// Package parser provides PGN movetext tokenizing.
package parser

// TokenType represents the type of a lexical token.
type TokenType int

const (
	MoveToken TokenType = iota
	CommentToken
	VariationStart
	VariationEnd
	NAGToken
	ResultToken
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	MoveToken:      "MOVE",
	CommentToken:   "COMMENT",
	VariationStart: "VARIATION_START",
	VariationEnd:   "VARIATION_END",
	NAGToken:       "NAG",
	ResultToken:    "RESULT",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token represents a lexical token with its value.
type Token struct {
	Type TokenType

	// Text is the move text, comment body, NAG glyph or result marker.
	// It is empty for variation brackets.
	Text string

	// Code holds the numeric value of a NAG token.
	Code int

	// Offset is the byte position of the token in the input.
	Offset int
}

// Move creates a move token.
func Move(san string) Token {
	return Token{Type: MoveToken, Text: san}
}

// Comment creates a comment token.
func Comment(text string) Token {
	return Token{Type: CommentToken, Text: text}
}

// NAG creates a NAG token for a numeric code.
func NAG(code int) Token {
	return Token{Type: NAGToken, Text: NAGGlyph(code), Code: code}
}

// Result creates a result token.
func Result(text string) Token {
	return Token{Type: ResultToken, Text: text}
}
