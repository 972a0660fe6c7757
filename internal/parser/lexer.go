package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// charClass classifies a byte for the scanner.
type charClass int

const (
	otherChar charClass = iota
	whitespaceChar
	commentStartChar
	lineCommentChar
	tagStartChar
	ravStartChar
	ravEndChar
	nagChar
	starChar
	digitChar
	alphaChar
	percentChar
)

// Character classification table
var chTab [256]charClass

func init() {
	initLexTables()
}

// initLexTables initializes the character classification table.
func initLexTables() {
	for _, c := range []byte{' ', '\t', '\r', '\n', '\f', '\v'} {
		chTab[c] = whitespaceChar
	}

	chTab['{'] = commentStartChar
	chTab[';'] = lineCommentChar
	chTab['['] = tagStartChar
	chTab['('] = ravStartChar
	chTab[')'] = ravEndChar
	chTab['$'] = nagChar
	chTab['*'] = starChar
	chTab['%'] = percentChar

	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = digitChar
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = alphaChar
		chTab[c+32] = alphaChar
	}
}

var (
	castleRegex = regexp.MustCompile(`^(?:O-O-O|O-O)[+#!?]*`)
	sanRegex    = regexp.MustCompile(`^[KQRBN]?[a-h]?[1-8]?x?[a-h][1-8](?:=?[QRBN])?[+#!?]*`)
)

// Results in the order they must be tried.
var resultMarkers = []string{"1/2-1/2", "1-0", "0-1", "1/2"}

// Lexer tokenizes PGN movetext. It never fails: anything it does not
// recognise is skipped, and every call advances by at least one byte.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given text.
func NewLexer(text string) *Lexer {
	return &Lexer{input: text}
}

// Tokenize scans the whole text and returns its tokens in order.
func Tokenize(text string) []Token {
	l := NewLexer(text)
	var tokens []Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token, or false at end of input.
func (l *Lexer) NextToken() (Token, bool) {
	for l.pos < len(l.input) {
		if tok, ok := l.nextSymbol(); ok {
			return tok, true
		}
	}
	return Token{}, false
}

// Offset returns the current scan position.
func (l *Lexer) Offset() int {
	return l.pos
}

// nextSymbol consumes one symbol. It returns false when the symbol
// produced no token.
func (l *Lexer) nextSymbol() (Token, bool) {
	start := l.pos
	ch := l.input[l.pos]

	switch chTab[ch] {
	case whitespaceChar:
		for l.pos < len(l.input) && chTab[l.input[l.pos]] == whitespaceChar {
			l.pos++
		}
		return Token{}, false

	case commentStartChar:
		return l.gatherComment(start), true

	case lineCommentChar:
		end := strings.IndexByte(l.input[start:], '\n')
		if end < 0 {
			l.pos = len(l.input)
		} else {
			l.pos = start + end
		}
		return Token{Type: CommentToken, Text: strings.TrimSpace(l.input[start+1 : l.pos]), Offset: start}, true

	case tagStartChar:
		l.skipTag()
		return Token{}, false

	case ravStartChar:
		l.pos++
		return Token{Type: VariationStart, Offset: start}, true

	case ravEndChar:
		l.pos++
		return Token{Type: VariationEnd, Offset: start}, true

	case nagChar:
		return l.gatherNAG(start)

	case starChar:
		l.pos++
		return Token{Type: ResultToken, Text: "*", Offset: start}, true

	case digitChar:
		return l.gatherNumeric(start)

	case alphaChar:
		return l.gatherMove(start)

	case percentChar:
		// Escape lines only count at the start of a line.
		if start == 0 || l.input[start-1] == '\n' {
			l.skipLine()
		} else {
			l.pos++
		}
		return Token{}, false

	default:
		l.pos++
		return Token{}, false
	}
}

// gatherComment gathers a {...} comment. An unterminated comment
// runs to the end of the input.
func (l *Lexer) gatherComment(start int) Token {
	body := l.input[start+1:]
	end := strings.IndexByte(body, '}')
	if end < 0 {
		l.pos = len(l.input)
	} else {
		body = body[:end]
		l.pos = start + 1 + end + 1
	}
	return Token{Type: CommentToken, Text: strings.TrimSpace(body), Offset: start}
}

// gatherNAG gathers $<digits>. A bare '$' is skipped.
func (l *Lexer) gatherNAG(start int) (Token, bool) {
	l.pos++
	digits := l.pos
	for l.pos < len(l.input) && chTab[l.input[l.pos]] == digitChar {
		l.pos++
	}
	if l.pos == digits {
		return Token{}, false
	}
	code, err := strconv.Atoi(l.input[digits:l.pos])
	if err != nil {
		code = -1
	}
	return Token{Type: NAGToken, Text: NAGGlyph(code), Code: code, Offset: start}, true
}

// gatherNumeric handles tokens starting with a digit: results, zero-style
// castling and move numbers. Move numbers produce no token.
func (l *Lexer) gatherNumeric(start int) (Token, bool) {
	remaining := l.input[start:]

	for _, marker := range resultMarkers {
		if strings.HasPrefix(remaining, marker) {
			l.pos += len(marker)
			text := marker
			if marker == "1/2" {
				text = "1/2-1/2"
			}
			return Token{Type: ResultToken, Text: text, Offset: start}, true
		}
	}

	if strings.HasPrefix(remaining, "0-0") {
		text := "O-O"
		if strings.HasPrefix(remaining, "0-0-0") {
			text = "O-O-O"
		}
		l.pos += len(text)
		text += l.gatherSuffix()
		return Token{Type: MoveToken, Text: text, Offset: start}, true
	}

	// Move number: digits followed by any periods.
	for l.pos < len(l.input) && chTab[l.input[l.pos]] == digitChar {
		l.pos++
	}
	for l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
	}
	return Token{}, false
}

// gatherMove matches castling or a SAN move at the current position.
// Anything else skips a single character.
func (l *Lexer) gatherMove(start int) (Token, bool) {
	remaining := l.input[start:]

	match := castleRegex.FindString(remaining)
	if match == "" {
		match = sanRegex.FindString(remaining)
	}
	if match == "" {
		l.pos++
		return Token{}, false
	}

	l.pos += len(match)
	return Token{Type: MoveToken, Text: match, Offset: start}, true
}

// gatherSuffix consumes check and annotation characters after a move.
func (l *Lexer) gatherSuffix() string {
	start := l.pos
	for l.pos < len(l.input) && strings.IndexByte("+#!?", l.input[l.pos]) >= 0 {
		l.pos++
	}
	return l.input[start:l.pos]
}

// skipTag skips a [Name "Value"] tag pair, honouring quoted strings.
// A tag never extends past the end of its line, even with an open string.
func (l *Lexer) skipTag() {
	l.pos++
	inString := false
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		l.pos++
		switch {
		case ch == '\n':
			return
		case inString && ch == '\\':
			if l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		case ch == '"':
			inString = !inString
		case ch == ']' && !inString:
			return
		}
	}
}

// skipLine skips to the end of the current line.
func (l *Lexer) skipLine() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
}
