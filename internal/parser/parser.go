package parser

import (
	"cargo-expand/internal/ast"
	"cargo-expand/internal/lexer"
	"cargo-expand/internal/source"
	"cargo-expand/internal/token"
)

// maxNesting bounds the recursion of the parser so that pathological macro
// output reports an error instead of exhausting the stack.
const maxNesting = 1000

// Parser — состояние парсера на один файл.
type Parser struct {
	file     *source.File
	toks     token.Stream
	pos      int
	depth    int
	noStruct bool // struct literals are not allowed: `if x {}`, `match x {}`
}

// bailout carries the first syntax error up to ParseFile.
type bailout struct {
	err *source.Error
}

// ParseFile parses a whole Rust source file. Parsing stops at the first
// syntax error, which is returned as a *source.Error.
func ParseFile(file *source.File) (_ *ast.File, err error) {
	res, err := lexer.Lex(file)
	if err != nil {
		return nil, err
	}
	p := &Parser{file: file, toks: res.Tokens}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()
	out := &ast.File{Shebang: res.Shebang}
	out.Attrs = p.parseInnerAttrs()
	for !p.atEOF() {
		out.Items = append(out.Items, p.parseItem())
	}
	return out, nil
}

// ParseString parses source text that has no file name.
func ParseString(src string) (*ast.File, error) {
	return ParseFile(source.NewFile("", []byte(src)))
}

func (p *Parser) errorf(format string, args ...any) {
	panic(bailout{err: p.file.Errorf(p.peek().Span, format, args...)})
}

func (p *Parser) enter() {
	p.depth++
	if p.depth > maxNesting {
		p.errorf("nesting too deep")
	}
}

func (p *Parser) leave() {
	p.depth--
}

// withStruct runs fn with struct literals allowed or forbidden, restoring
// the previous mode afterwards.
func withStruct[T any](p *Parser, allow bool, fn func() T) T {
	saved := p.noStruct
	p.noStruct = !allow
	defer func() { p.noStruct = saved }()
	return fn()
}
