package ast

import (
	"strconv"

	"cargo-expand/internal/token"
)

type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinAnd // &&
	BinOr  // ||
	BinBitXor
	BinBitAnd
	BinBitOr
	BinShl
	BinShr
	BinEq
	BinLt
	BinLe
	BinNe
	BinGe
	BinGt
	BinAddAssign
	BinSubAssign
	BinMulAssign
	BinDivAssign
	BinRemAssign
	BinBitXorAssign
	BinBitAndAssign
	BinBitOrAssign
	BinShlAssign
	BinShrAssign
)

var binOpText = [...]string{
	BinAdd:          "+",
	BinSub:          "-",
	BinMul:          "*",
	BinDiv:          "/",
	BinRem:          "%",
	BinAnd:          "&&",
	BinOr:           "||",
	BinBitXor:       "^",
	BinBitAnd:       "&",
	BinBitOr:        "|",
	BinShl:          "<<",
	BinShr:          ">>",
	BinEq:           "==",
	BinLt:           "<",
	BinLe:           "<=",
	BinNe:           "!=",
	BinGe:           ">=",
	BinGt:           ">",
	BinAddAssign:    "+=",
	BinSubAssign:    "-=",
	BinMulAssign:    "*=",
	BinDivAssign:    "/=",
	BinRemAssign:    "%=",
	BinBitXorAssign: "^=",
	BinBitAndAssign: "&=",
	BinBitOrAssign:  "|=",
	BinShlAssign:    "<<=",
	BinShrAssign:    ">>=",
}

func (op BinOp) String() string {
	if int(op) < len(binOpText) {
		return binOpText[op]
	}
	return "?"
}

// BinOpOf looks up an operator by its text.
func BinOpOf(text string) (BinOp, bool) {
	for op, s := range binOpText {
		if s == text {
			return BinOp(op), true
		}
	}
	return 0, false
}

// Prec is operator precedence, lowest first.
type Prec uint8

const (
	PrecJump Prec = iota // return, break, closures
	PrecAssign
	PrecRange
	PrecOr
	PrecAnd
	PrecCompare
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecShift
	PrecSum
	PrecProduct
	PrecCast
	PrecPrefix
	PrecPostfix
	PrecUnambiguous
)

// Prec returns the binding strength of the operator.
func (op BinOp) Prec() Prec {
	switch op {
	case BinAdd, BinSub:
		return PrecSum
	case BinMul, BinDiv, BinRem:
		return PrecProduct
	case BinAnd:
		return PrecAnd
	case BinOr:
		return PrecOr
	case BinBitXor:
		return PrecBitXor
	case BinBitAnd:
		return PrecBitAnd
	case BinBitOr:
		return PrecBitOr
	case BinShl, BinShr:
		return PrecShift
	case BinEq, BinLt, BinLe, BinNe, BinGe, BinGt:
		return PrecCompare
	default:
		return PrecAssign
	}
}

// IsAssign reports whether op is a compound assignment.
func (op BinOp) IsAssign() bool {
	return op >= BinAddAssign
}

type UnOp uint8

const (
	UnDeref UnOp = iota
	UnNot
	UnNeg
)

func (op UnOp) String() string {
	switch op {
	case UnDeref:
		return "*"
	case UnNot:
		return "!"
	default:
		return "-"
	}
}

type RangeLimits uint8

const (
	RangeHalfOpen RangeLimits = iota // ..
	RangeClosed                      // ..=
)

// Lit is a literal token: numbers, strings, chars, `true` and `false`.
type Lit struct {
	Kind token.LitKind
	Text string
}

// Member names a struct field or a tuple index.
type Member struct {
	Name  string
	Index int // valid when Name is empty
}

func (m Member) String() string {
	if m.Name != "" {
		return m.Name
	}
	return strconv.Itoa(m.Index)
}

type (
	ExprArray struct {
		Attrs []Attribute
		Elems []Expr
	}
	ExprAssign struct {
		Attrs []Attribute
		Left  Expr
		Right Expr
	}
	ExprAsync struct {
		Attrs []Attribute
		Move  bool
		Block *Block
	}
	ExprAwait struct {
		Attrs []Attribute
		Base  Expr
	}
	ExprBinary struct {
		Attrs []Attribute
		Left  Expr
		Op    BinOp
		Right Expr
	}
	ExprBlock struct {
		Attrs []Attribute
		Label string
		Block *Block
	}
	ExprBreak struct {
		Attrs []Attribute
		Label string
		Expr  Expr
	}
	ExprCall struct {
		Attrs []Attribute
		Func  Expr
		Args  []Expr
	}
	ExprCast struct {
		Attrs []Attribute
		Expr  Expr
		Type  Type
	}
	ExprClosure struct {
		Attrs  []Attribute
		Const  bool
		Static bool
		Async  bool
		Move   bool
		Inputs []Pat
		Output Type
		Body   Expr
	}
	ExprConst struct {
		Attrs []Attribute
		Block *Block
	}
	ExprContinue struct {
		Attrs []Attribute
		Label string
	}
	ExprField struct {
		Attrs  []Attribute
		Base   Expr
		Member Member
	}
	ExprForLoop struct {
		Attrs []Attribute
		Label string
		Pat   Pat
		Expr  Expr
		Body  *Block
	}
	// ExprIf is `if cond { then } else ...`; Else is an *ExprIf or an
	// *ExprBlock when present.
	ExprIf struct {
		Attrs []Attribute
		Cond  Expr
		Then  *Block
		Else  Expr
	}
	ExprIndex struct {
		Attrs []Attribute
		Expr  Expr
		Index Expr
	}
	ExprInfer struct {
		Attrs []Attribute
	}
	// ExprLet is `let pat = expr` in the condition of an if or while.
	ExprLet struct {
		Attrs []Attribute
		Pat   Pat
		Expr  Expr
	}
	ExprLit struct {
		Attrs []Attribute
		Lit   Lit
	}
	ExprLoop struct {
		Attrs []Attribute
		Label string
		Body  *Block
	}
	ExprMacro struct {
		Attrs []Attribute
		Mac   Macro
	}
	ExprMatch struct {
		Attrs []Attribute
		Expr  Expr
		Arms  []Arm
	}
	ExprMethodCall struct {
		Attrs     []Attribute
		Receiver  Expr
		Method    string
		Turbofish *GenericArgs
		Args      []Expr
	}
	ExprParen struct {
		Attrs []Attribute
		Expr  Expr
	}
	ExprPath struct {
		Attrs []Attribute
		QSelf *QSelf
		Path  Path
	}
	ExprRange struct {
		Attrs  []Attribute
		Start  Expr
		Limits RangeLimits
		End    Expr
	}
	ExprReference struct {
		Attrs []Attribute
		Raw   bool // &raw const / &raw mut
		Mut   bool
		Expr  Expr
	}
	ExprRepeat struct {
		Attrs []Attribute
		Expr  Expr
		Len   Expr
	}
	ExprReturn struct {
		Attrs []Attribute
		Expr  Expr
	}
	ExprStruct struct {
		Attrs   []Attribute
		QSelf   *QSelf
		Path    Path
		Fields  []FieldValue
		HasRest bool // `..` with or without a base expression
		Rest    Expr
	}
	ExprTry struct {
		Attrs []Attribute
		Expr  Expr
	}
	ExprTryBlock struct {
		Attrs []Attribute
		Block *Block
	}
	ExprTuple struct {
		Attrs []Attribute
		Elems []Expr
	}
	ExprUnary struct {
		Attrs []Attribute
		Op    UnOp
		Expr  Expr
	}
	ExprUnsafe struct {
		Attrs []Attribute
		Block *Block
	}
	ExprWhile struct {
		Attrs []Attribute
		Label string
		Cond  Expr
		Body  *Block
	}
	ExprYield struct {
		Attrs []Attribute
		Expr  Expr
	}
	// ExprVerbatim is an expression kept as raw tokens.
	ExprVerbatim struct {
		Tokens token.Stream
	}
)

type Arm struct {
	Attrs []Attribute
	Pat   Pat
	Guard Expr
	Body  Expr
	Comma bool
}

type FieldValue struct {
	Attrs     []Attribute
	Member    Member
	Expr      Expr
	Shorthand bool
}

func (*ExprArray) aNode()      {}
func (*ExprAssign) aNode()     {}
func (*ExprAsync) aNode()      {}
func (*ExprAwait) aNode()      {}
func (*ExprBinary) aNode()     {}
func (*ExprBlock) aNode()      {}
func (*ExprBreak) aNode()      {}
func (*ExprCall) aNode()       {}
func (*ExprCast) aNode()       {}
func (*ExprClosure) aNode()    {}
func (*ExprConst) aNode()      {}
func (*ExprContinue) aNode()   {}
func (*ExprField) aNode()      {}
func (*ExprForLoop) aNode()    {}
func (*ExprIf) aNode()         {}
func (*ExprIndex) aNode()      {}
func (*ExprInfer) aNode()      {}
func (*ExprLet) aNode()        {}
func (*ExprLit) aNode()        {}
func (*ExprLoop) aNode()       {}
func (*ExprMacro) aNode()      {}
func (*ExprMatch) aNode()      {}
func (*ExprMethodCall) aNode() {}
func (*ExprParen) aNode()      {}
func (*ExprPath) aNode()       {}
func (*ExprRange) aNode()      {}
func (*ExprReference) aNode()  {}
func (*ExprRepeat) aNode()     {}
func (*ExprReturn) aNode()     {}
func (*ExprStruct) aNode()     {}
func (*ExprTry) aNode()        {}
func (*ExprTryBlock) aNode()   {}
func (*ExprTuple) aNode()      {}
func (*ExprUnary) aNode()      {}
func (*ExprUnsafe) aNode()     {}
func (*ExprWhile) aNode()      {}
func (*ExprYield) aNode()      {}
func (*ExprVerbatim) aNode()   {}

func (*ExprArray) exprNode()      {}
func (*ExprAssign) exprNode()     {}
func (*ExprAsync) exprNode()      {}
func (*ExprAwait) exprNode()      {}
func (*ExprBinary) exprNode()     {}
func (*ExprBlock) exprNode()      {}
func (*ExprBreak) exprNode()      {}
func (*ExprCall) exprNode()       {}
func (*ExprCast) exprNode()       {}
func (*ExprClosure) exprNode()    {}
func (*ExprConst) exprNode()      {}
func (*ExprContinue) exprNode()   {}
func (*ExprField) exprNode()      {}
func (*ExprForLoop) exprNode()    {}
func (*ExprIf) exprNode()         {}
func (*ExprIndex) exprNode()      {}
func (*ExprInfer) exprNode()      {}
func (*ExprLet) exprNode()        {}
func (*ExprLit) exprNode()        {}
func (*ExprLoop) exprNode()       {}
func (*ExprMacro) exprNode()      {}
func (*ExprMatch) exprNode()      {}
func (*ExprMethodCall) exprNode() {}
func (*ExprParen) exprNode()      {}
func (*ExprPath) exprNode()       {}
func (*ExprRange) exprNode()      {}
func (*ExprReference) exprNode()  {}
func (*ExprRepeat) exprNode()     {}
func (*ExprReturn) exprNode()     {}
func (*ExprStruct) exprNode()     {}
func (*ExprTry) exprNode()        {}
func (*ExprTryBlock) exprNode()   {}
func (*ExprTuple) exprNode()      {}
func (*ExprUnary) exprNode()      {}
func (*ExprUnsafe) exprNode()     {}
func (*ExprWhile) exprNode()      {}
func (*ExprYield) exprNode()      {}
func (*ExprVerbatim) exprNode()   {}

// ExprAttrs returns a pointer to the outer attributes of e, or nil when the
// expression cannot carry any.
func ExprAttrs(e Expr) *[]Attribute {
	switch x := e.(type) {
	case *ExprArray:
		return &x.Attrs
	case *ExprAssign:
		return &x.Attrs
	case *ExprAsync:
		return &x.Attrs
	case *ExprAwait:
		return &x.Attrs
	case *ExprBinary:
		return &x.Attrs
	case *ExprBlock:
		return &x.Attrs
	case *ExprBreak:
		return &x.Attrs
	case *ExprCall:
		return &x.Attrs
	case *ExprCast:
		return &x.Attrs
	case *ExprClosure:
		return &x.Attrs
	case *ExprConst:
		return &x.Attrs
	case *ExprContinue:
		return &x.Attrs
	case *ExprField:
		return &x.Attrs
	case *ExprForLoop:
		return &x.Attrs
	case *ExprIf:
		return &x.Attrs
	case *ExprIndex:
		return &x.Attrs
	case *ExprInfer:
		return &x.Attrs
	case *ExprLet:
		return &x.Attrs
	case *ExprLit:
		return &x.Attrs
	case *ExprLoop:
		return &x.Attrs
	case *ExprMacro:
		return &x.Attrs
	case *ExprMatch:
		return &x.Attrs
	case *ExprMethodCall:
		return &x.Attrs
	case *ExprParen:
		return &x.Attrs
	case *ExprPath:
		return &x.Attrs
	case *ExprRange:
		return &x.Attrs
	case *ExprReference:
		return &x.Attrs
	case *ExprRepeat:
		return &x.Attrs
	case *ExprReturn:
		return &x.Attrs
	case *ExprStruct:
		return &x.Attrs
	case *ExprTry:
		return &x.Attrs
	case *ExprTryBlock:
		return &x.Attrs
	case *ExprTuple:
		return &x.Attrs
	case *ExprUnary:
		return &x.Attrs
	case *ExprUnsafe:
		return &x.Attrs
	case *ExprWhile:
		return &x.Attrs
	case *ExprYield:
		return &x.Attrs
	default:
		return nil
	}
}

// IsBlockLike reports whether e ends in a block and so needs no semicolon
// when it stands as a statement.
func IsBlockLike(e Expr) bool {
	switch e.(type) {
	case *ExprBlock, *ExprIf, *ExprMatch, *ExprLoop, *ExprWhile, *ExprForLoop,
		*ExprUnsafe, *ExprConst, *ExprTryBlock, *ExprAsync:
		return true
	case *ExprMacro:
		return e.(*ExprMacro).Mac.Delim == token.Brace
	default:
		return false
	}
}
