package ast

import "cargo-expand/internal/token"

type (
	// TypePath is `std::vec::Vec<T>` or `<T as Trait>::Assoc`.
	TypePath struct {
		QSelf *QSelf
		Path  Path
	}
	// TypeRef is `&'a mut T`.
	TypeRef struct {
		Lifetime string
		Mut      bool
		Elem     Type
	}
	// TypePtr is `*const T` or `*mut T`.
	TypePtr struct {
		Mut  bool
		Elem Type
	}
	TypeSlice struct {
		Elem Type
	}
	TypeArray struct {
		Elem Type
		Len  Expr
	}
	TypeTuple struct {
		Elems []Type
	}
	TypeNever struct{}
	TypeInfer struct{}
	// TypeFn is a function pointer, `for<'a> unsafe extern "C" fn(x: &'a u8) -> u8`.
	TypeFn struct {
		Lifetimes []string
		Unsafe    bool
		ABI       *ABI
		Inputs    []BareFnArg
		Variadic  bool
		Output    Type
	}
	TypeImplTrait struct {
		Bounds []TypeParamBound
	}
	TypeTraitObject struct {
		Dyn    bool
		Bounds []TypeParamBound
	}
	TypeParen struct {
		Elem Type
	}
	TypeMacro struct {
		Mac Macro
	}
	TypeVerbatim struct {
		Tokens token.Stream
	}
)

type BareFnArg struct {
	Name string // empty when unnamed
	Type Type
}

// ABI is the `extern "C"` qualifier. Name holds the string literal, or is
// empty for a bare `extern`.
type ABI struct {
	Name string
}

// TypeParamBound is a trait bound (`?Sized`, `for<'a> Fn(&'a u8)`) or a
// lifetime bound (`'a`).
type TypeParamBound struct {
	Lifetime  string
	Maybe     bool
	Lifetimes []string
	Path      Path
}

func (*TypePath) aNode()        {}
func (*TypeRef) aNode()         {}
func (*TypePtr) aNode()         {}
func (*TypeSlice) aNode()       {}
func (*TypeArray) aNode()       {}
func (*TypeTuple) aNode()       {}
func (*TypeNever) aNode()       {}
func (*TypeInfer) aNode()       {}
func (*TypeFn) aNode()          {}
func (*TypeImplTrait) aNode()   {}
func (*TypeTraitObject) aNode() {}
func (*TypeParen) aNode()       {}
func (*TypeMacro) aNode()       {}
func (*TypeVerbatim) aNode()    {}

func (*TypePath) typeNode()        {}
func (*TypeRef) typeNode()         {}
func (*TypePtr) typeNode()         {}
func (*TypeSlice) typeNode()       {}
func (*TypeArray) typeNode()       {}
func (*TypeTuple) typeNode()       {}
func (*TypeNever) typeNode()       {}
func (*TypeInfer) typeNode()       {}
func (*TypeFn) typeNode()          {}
func (*TypeImplTrait) typeNode()   {}
func (*TypeTraitObject) typeNode() {}
func (*TypeParen) typeNode()       {}
func (*TypeMacro) typeNode()       {}
func (*TypeVerbatim) typeNode()    {}

// TypeName builds a plain path type such as `u8` or `Self`.
func TypeName(idents ...string) *TypePath {
	return &TypePath{Path: PathOf(idents...)}
}
