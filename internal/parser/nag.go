package parser

// nagGlyphs maps Numeric Annotation Glyph codes to their display symbols.
var nagGlyphs = map[int]string{
	1:   "!",
	2:   "?",
	3:   "!!",
	4:   "??",
	5:   "!?",
	6:   "?!",
	7:   "□",
	10:  "=",
	13:  "∞",
	14:  "⩲",
	15:  "⩱",
	16:  "±",
	17:  "∓",
	18:  "+-",
	19:  "-+",
	22:  "⨀",
	23:  "⨀",
	32:  "⟳",
	33:  "⟳",
	36:  "→",
	37:  "→",
	40:  "↑",
	41:  "↑",
	132: "⇆",
	133: "⇆",
	138: "⊕",
	139: "⊕",
	140: "∆",
	146: "N",
}

// NAGGlyph returns the display symbol for a NAG code.
// Unknown codes map to the empty string.
func NAGGlyph(code int) string {
	return nagGlyphs[code]
}
