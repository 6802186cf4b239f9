package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Ident is an identifier or keyword, raw identifiers included (`r#type`).
	Ident
	// Lifetime is a quote followed by an identifier (`'a`, `'static`).
	Lifetime
	// Literal is any char, string, byte, numeric literal.
	Literal
	// Punct is a single punctuation character.
	Punct
	// Open is an opening delimiter: ( [ {
	Open
	// Close is a closing delimiter: ) ] }
	Close
	// DocComment is a `///`, `//!`, `/** */` or `/*! */` comment. Its Text
	// holds the comment body as a quoted string literal.
	DocComment
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of file",
	Ident:      "identifier",
	Lifetime:   "lifetime",
	Literal:    "literal",
	Punct:      "punctuation",
	Open:       "opening delimiter",
	Close:      "closing delimiter",
	DocComment: "doc comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// LitKind distinguishes literal forms.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitStr
	LitRawStr
	LitByteStr
	LitRawByteStr
	LitCStr
	LitRawCStr
	LitChar
	LitByte
	// LitBool is never produced by the lexer; the parser turns the
	// identifiers `true` and `false` into boolean literals.
	LitBool
)

// IsString reports whether the literal is any string-like form.
func (k LitKind) IsString() bool {
	switch k {
	case LitStr, LitRawStr, LitByteStr, LitRawByteStr, LitCStr, LitRawCStr:
		return true
	default:
		return false
	}
}

// Delim identifies a delimiter pair.
type Delim uint8

const (
	NoDelim Delim = iota
	Paren
	Bracket
	Brace
)

// Open returns the opening character of the pair.
func (d Delim) Open() string {
	switch d {
	case Paren:
		return "("
	case Bracket:
		return "["
	case Brace:
		return "{"
	default:
		return ""
	}
}

// Close returns the closing character of the pair.
func (d Delim) Close() string {
	switch d {
	case Paren:
		return ")"
	case Bracket:
		return "]"
	case Brace:
		return "}"
	default:
		return ""
	}
}
