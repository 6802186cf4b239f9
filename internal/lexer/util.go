package lexer

import (
	"strings"
	"unicode"

	"cargo-expand/internal/token"
)

const punctChars = "+-*/%^!&|=<>@.,;:#$?~\\"

func isPunctByte(b byte) bool {
	return b != 0 && strings.IndexByte(punctChars, b) >= 0
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(r rune) bool {
	if r < 0x80 {
		return r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_ID_Start, r)
}

func isIdentContinue(r rune) bool {
	if r < 0x80 {
		return isIdentStart(r) || r >= '0' && r <= '9'
	}
	return isIdentStart(r) ||
		unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc) ||
		unicode.Is(unicode.Other_ID_Continue, r)
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x85, 0x200e, 0x200f, 0x2028, 0x2029:
		return true
	}
	return false
}

// IsIdent reports whether s is a valid Rust identifier, raw identifiers
// included. `_` and path keywords cannot be spelled raw.
func IsIdent(s string) bool {
	name := s
	if token.IsRaw(s) {
		name = token.Unraw(s)
		if name == "_" || token.IsPathKeyword(name) {
			return false
		}
	}
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if i > 0 && !isIdentContinue(r) {
			return false
		}
	}
	return true
}
