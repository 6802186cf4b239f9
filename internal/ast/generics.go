package ast

type GenericParamKind uint8

const (
	ParamLifetime GenericParamKind = iota
	ParamType
	ParamConst
)

type Generics struct {
	Params []GenericParam
	Where  []WherePredicate
}

// IsEmpty reports whether there is nothing to print.
func (g *Generics) IsEmpty() bool {
	return len(g.Params) == 0 && len(g.Where) == 0
}

type GenericParam struct {
	Attrs          []Attribute
	Kind           GenericParamKind
	Name           string           // lifetimes keep their quote: 'a
	LifetimeBounds []string         // ParamLifetime: 'a: 'b + 'c
	Bounds         []TypeParamBound // ParamType
	Default        Type             // ParamType
	Type           Type             // ParamConst
	ConstDefault   Expr             // ParamConst
}

// WherePredicate is either `'a: 'b` (Lifetime set) or
// `for<'a> T: Bound` (Type set).
type WherePredicate struct {
	Lifetimes      []string
	Lifetime       string
	LifetimeBounds []string
	Type           Type
	Bounds         []TypeParamBound
}
