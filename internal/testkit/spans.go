package testkit

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"cargo-expand/internal/source"
	"cargo-expand/internal/token"
)

// CheckTokenSpans runs a minimal set of span invariants on a lexed file:
// 1) every token span is non-empty and within content bounds
// 2) spans are ordered and never overlap
// 3) the text of plain tokens is exactly the source they cover
// 4) the union of spans is covered by the file
func CheckTokenSpans(file *source.File, toks token.Stream) error {
	if file == nil {
		return errors.New("nil file")
	}
	n := file.Len()
	var union source.Span
	var prevEnd uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.Empty() || sp.End < sp.Start {
			return errors.Newf("token %d (%s) has empty span %v", i, tok.Kind, sp)
		}
		if sp.End > n {
			return errors.Newf("token %d span end beyond content: %d > %d", i, sp.End, n)
		}
		if sp.Start < prevEnd {
			return errors.Newf("token %d span %v overlaps previous token ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		// doc comments carry a quoted body; identifiers may be NFC-normalized
		switch {
		case tok.Kind == token.DocComment:
		case tok.Kind == token.Ident && !isASCII(tok.Text):
		default:
			if got := file.Text(sp); got != tok.Text {
				return errors.Newf("token %d text %q does not match source %q", i, tok.Text, got)
			}
		}

		if i == 0 {
			union = sp
		} else {
			union = union.Cover(sp)
		}
	}
	if len(toks) > 0 && union.End > n {
		return errors.Newf("content of %d bytes does not cover tokens %v", n, union)
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
