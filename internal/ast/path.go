package ast

import "strings"

// Path is a `::`-separated path, optionally global (`::std::vec::Vec`).
type Path struct {
	Global   bool
	Segments []PathSegment
}

type PathSegment struct {
	Ident string
	Args  *GenericArgs // nil when the segment has no arguments
}

// PathOf builds a plain path from identifiers.
func PathOf(idents ...string) Path {
	segs := make([]PathSegment, len(idents))
	for i, id := range idents {
		segs[i].Ident = id
	}
	return Path{Segments: segs}
}

// IsIdent reports whether the path is the single bare identifier name.
func (p Path) IsIdent(name string) bool {
	return !p.Global && len(p.Segments) == 1 && p.Segments[0].Args == nil && p.Segments[0].Ident == name
}

// String renders the path without generic arguments.
func (p Path) String() string {
	var sb strings.Builder
	if p.Global {
		sb.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(seg.Ident)
	}
	return sb.String()
}

// QSelf is the `<Type as Trait>` prefix of a qualified path.
type QSelf struct {
	Type  Type
	Trait *Path // nil for `<Type>::x`
}

// GenericArgs are either angle bracketed (`<T, 'a, N = 3>`) or parenthesized
// (`Fn(A, B) -> C`).
type GenericArgs struct {
	Colon  bool // turbofish `::<...>`
	Paren  bool
	Args   []GenericArg // angle bracketed
	Inputs []Type       // parenthesized
	Output Type         // parenthesized, nil for `()`
}

type GenericArgKind uint8

const (
	ArgLifetime GenericArgKind = iota
	ArgType
	ArgConst
	ArgAssocType   // Item = T
	ArgAssocConst  // N = 3
	ArgConstraint  // Item: Bound
)

type GenericArg struct {
	Kind     GenericArgKind
	Lifetime string           // ArgLifetime
	Type     Type             // ArgType, ArgAssocType
	Const    Expr             // ArgConst, ArgAssocConst
	Ident    string           // ArgAssocType, ArgAssocConst, ArgConstraint
	Bounds   []TypeParamBound // ArgConstraint
}
