package ast

import "cargo-expand/internal/token"

type (
	// PatIdent is `ref mut name @ sub`.
	PatIdent struct {
		Ref  bool
		Mut  bool
		Name string
		Sub  Pat
	}
	PatWild struct{}
	PatRest struct{}
	// PatLit is a literal pattern; Expr is an ExprLit or a negated ExprLit.
	PatLit struct {
		Expr Expr
	}
	// PatRange is `lo..=hi`, `lo..hi`, `lo..` or `..=hi`.
	PatRange struct {
		Lo        Expr
		Hi        Expr
		Inclusive bool
	}
	PatPath struct {
		QSelf *QSelf
		Path  Path
	}
	PatTupleStruct struct {
		QSelf *QSelf
		Path  Path
		Elems []Pat
	}
	PatStruct struct {
		QSelf  *QSelf
		Path   Path
		Fields []FieldPat
		Rest   bool
	}
	PatTuple struct {
		Elems []Pat
	}
	PatSlice struct {
		Elems []Pat
	}
	PatRef struct {
		Mut bool
		Pat Pat
	}
	PatOr struct {
		Cases []Pat
	}
	PatParen struct {
		Pat Pat
	}
	// PatType is `pat: Type`, found in function and closure parameters.
	PatType struct {
		Pat  Pat
		Type Type
	}
	PatMacro struct {
		Mac Macro
	}
	PatVerbatim struct {
		Tokens token.Stream
	}
)

type FieldPat struct {
	Attrs     []Attribute
	Member    Member
	Pat       Pat
	Shorthand bool
}

func (*PatIdent) aNode()       {}
func (*PatWild) aNode()        {}
func (*PatRest) aNode()        {}
func (*PatLit) aNode()         {}
func (*PatRange) aNode()       {}
func (*PatPath) aNode()        {}
func (*PatTupleStruct) aNode() {}
func (*PatStruct) aNode()      {}
func (*PatTuple) aNode()       {}
func (*PatSlice) aNode()       {}
func (*PatRef) aNode()         {}
func (*PatOr) aNode()          {}
func (*PatParen) aNode()       {}
func (*PatType) aNode()        {}
func (*PatMacro) aNode()       {}
func (*PatVerbatim) aNode()    {}

func (*PatIdent) patNode()       {}
func (*PatWild) patNode()        {}
func (*PatRest) patNode()        {}
func (*PatLit) patNode()         {}
func (*PatRange) patNode()       {}
func (*PatPath) patNode()        {}
func (*PatTupleStruct) patNode() {}
func (*PatStruct) patNode()      {}
func (*PatTuple) patNode()       {}
func (*PatSlice) patNode()       {}
func (*PatRef) patNode()         {}
func (*PatOr) patNode()          {}
func (*PatParen) patNode()       {}
func (*PatType) patNode()        {}
func (*PatMacro) patNode()       {}
func (*PatVerbatim) patNode()    {}

// Binding builds the simple pattern `name`.
func Binding(name string) *PatIdent {
	return &PatIdent{Name: name}
}
