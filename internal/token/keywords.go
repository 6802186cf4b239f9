package token

import "strings"

var strictKeywords = map[string]struct{}{
	"as": {}, "break": {}, "const": {}, "continue": {}, "crate": {}, "else": {},
	"enum": {}, "extern": {}, "false": {}, "fn": {}, "for": {}, "if": {}, "impl": {},
	"in": {}, "let": {}, "loop": {}, "match": {}, "mod": {}, "move": {}, "mut": {},
	"pub": {}, "ref": {}, "return": {}, "self": {}, "Self": {}, "static": {},
	"struct": {}, "super": {}, "trait": {}, "true": {}, "type": {}, "unsafe": {},
	"use": {}, "where": {}, "while": {}, "async": {}, "await": {}, "dyn": {},
	// reserved
	"abstract": {}, "become": {}, "box": {}, "do": {}, "final": {}, "macro": {},
	"override": {}, "priv": {}, "typeof": {}, "unsized": {}, "virtual": {},
	"yield": {}, "try": {}, "gen": {},
}

// pathKeywords may appear as path segments but never as raw identifiers.
var pathKeywords = map[string]struct{}{
	"crate": {}, "self": {}, "Self": {}, "super": {},
}

// IsKeyword reports whether s is a strict or reserved Rust keyword.
func IsKeyword(s string) bool {
	_, ok := strictKeywords[s]
	return ok
}

// IsPathKeyword reports whether s is a keyword usable as a path segment.
func IsPathKeyword(s string) bool {
	_, ok := pathKeywords[s]
	return ok
}

// IsRaw reports whether s is spelled as a raw identifier.
func IsRaw(s string) bool {
	return strings.HasPrefix(s, "r#")
}

// Unraw strips the `r#` prefix of a raw identifier.
func Unraw(s string) string {
	return strings.TrimPrefix(s, "r#")
}
