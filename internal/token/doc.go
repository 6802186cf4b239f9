// Package token defines the lexical vocabulary of Rust source as seen by the
// expanded-output pipeline: identifiers, lifetimes, literals, single-character
// punctuation with a joint flag, delimiters and doc comments.
//
// Punctuation is kept one character per token, the way procedural macros see
// it. Multi-character operators such as `::`, `->` or `>>=` are recognized by
// the parser from runs of joint tokens, which keeps closing generic brackets
// (`Vec<Vec<u8>>`) trivial to split.
package token
