package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// QuoteString returns s as a Rust string literal.
func QuoteString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r == utf8.RuneError || !unicode.IsPrint(r) && r != ' ' {
				fmt.Fprintf(&sb, `\u{%x}`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// UnquoteString decodes a Rust string literal (plain or raw). It reports false
// for byte strings, C strings, suffixed literals and malformed escapes.
func UnquoteString(lit string) (string, bool) {
	if strings.HasPrefix(lit, "r") {
		body := lit[1:]
		hashes := 0
		for hashes < len(body) && body[hashes] == '#' {
			hashes++
		}
		body = body[hashes:]
		closing := "\"" + strings.Repeat("#", hashes)
		if !strings.HasPrefix(body, "\"") || !strings.HasSuffix(body, closing) || len(body) < 1+len(closing) {
			return "", false
		}
		return body[1 : len(body)-len(closing)], true
	}
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", false
	}
	body := lit[1 : len(lit)-1]
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", false
		}
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\':
			sb.WriteByte('\\')
		case '0':
			sb.WriteByte(0)
		case '\'':
			sb.WriteByte('\'')
		case '"':
			sb.WriteByte('"')
		case 'x':
			if i+2 >= len(body) {
				return "", false
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil || v > 0x7f {
				return "", false
			}
			sb.WriteByte(byte(v))
			i += 2
		case 'u':
			end := strings.IndexByte(body[i:], '}')
			if i+1 >= len(body) || body[i+1] != '{' || end < 0 {
				return "", false
			}
			hex := strings.ReplaceAll(body[i+2:i+end], "_", "")
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return "", false
			}
			sb.WriteRune(rune(v))
			i += end
		case '\n':
			// line continuation: skip the newline and leading whitespace
			for i+1 < len(body) && strings.IndexByte(" \t\n\r", body[i+1]) >= 0 {
				i++
			}
		default:
			return "", false
		}
	}
	return sb.String(), true
}
