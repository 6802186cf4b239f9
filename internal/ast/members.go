package ast

import "cargo-expand/internal/token"

type (
	TraitItemConst struct {
		Attrs    []Attribute
		Name     string
		Generics Generics
		Type     Type
		Default  Expr // nil without a default value
	}
	TraitItemFn struct {
		Attrs   []Attribute
		Sig     Signature
		Default *Block // nil without a default body
	}
	TraitItemType struct {
		Attrs    []Attribute
		Name     string
		Generics Generics
		Bounds   []TypeParamBound
		Default  Type // nil without a default
	}
	TraitItemMacro struct {
		Attrs []Attribute
		Mac   Macro
		Semi  bool
	}
	TraitItemVerbatim struct {
		Tokens token.Stream
	}
)

type (
	ImplItemConst struct {
		Attrs    []Attribute
		Vis      Visibility
		Default  bool
		Name     string
		Generics Generics
		Type     Type
		Expr     Expr
	}
	ImplItemFn struct {
		Attrs   []Attribute
		Vis     Visibility
		Default bool
		Sig     Signature
		Body    *Block
	}
	ImplItemType struct {
		Attrs    []Attribute
		Vis      Visibility
		Default  bool
		Name     string
		Generics Generics
		Type     Type
	}
	ImplItemMacro struct {
		Attrs []Attribute
		Mac   Macro
		Semi  bool
	}
	ImplItemVerbatim struct {
		Tokens token.Stream
	}
)

type (
	ForeignItemFn struct {
		Attrs []Attribute
		Vis   Visibility
		Sig   Signature
	}
	ForeignItemStatic struct {
		Attrs []Attribute
		Vis   Visibility
		Mut   bool
		Name  string
		Type  Type
	}
	ForeignItemType struct {
		Attrs    []Attribute
		Vis      Visibility
		Name     string
		Generics Generics
	}
	ForeignItemMacro struct {
		Attrs []Attribute
		Mac   Macro
		Semi  bool
	}
	ForeignItemVerbatim struct {
		Tokens token.Stream
	}
)

func (*TraitItemConst) aNode()    {}
func (*TraitItemFn) aNode()       {}
func (*TraitItemType) aNode()     {}
func (*TraitItemMacro) aNode()    {}
func (*TraitItemVerbatim) aNode() {}

func (*TraitItemConst) traitItemNode()    {}
func (*TraitItemFn) traitItemNode()       {}
func (*TraitItemType) traitItemNode()     {}
func (*TraitItemMacro) traitItemNode()    {}
func (*TraitItemVerbatim) traitItemNode() {}

func (*ImplItemConst) aNode()    {}
func (*ImplItemFn) aNode()       {}
func (*ImplItemType) aNode()     {}
func (*ImplItemMacro) aNode()    {}
func (*ImplItemVerbatim) aNode() {}

func (*ImplItemConst) implItemNode()    {}
func (*ImplItemFn) implItemNode()       {}
func (*ImplItemType) implItemNode()     {}
func (*ImplItemMacro) implItemNode()    {}
func (*ImplItemVerbatim) implItemNode() {}

func (*ForeignItemFn) aNode()       {}
func (*ForeignItemStatic) aNode()   {}
func (*ForeignItemType) aNode()     {}
func (*ForeignItemMacro) aNode()    {}
func (*ForeignItemVerbatim) aNode() {}

func (*ForeignItemFn) foreignItemNode()       {}
func (*ForeignItemStatic) foreignItemNode()   {}
func (*ForeignItemType) foreignItemNode()     {}
func (*ForeignItemMacro) foreignItemNode()    {}
func (*ForeignItemVerbatim) foreignItemNode() {}
