package ast

import "cargo-expand/internal/token"

type VisKind uint8

const (
	VisInherited  VisKind = iota
	VisPublic             // pub
	VisCrate              // pub(crate)
	VisRestricted         // pub(self), pub(super), pub(in path)
)

type Visibility struct {
	Kind VisKind
	In   bool // pub(in path)
	Path Path // VisRestricted
}

// Public is the `pub` visibility.
var Public = Visibility{Kind: VisPublic}

type (
	// ItemConst is `const NAME: Type = expr;`. Name may be `_`.
	ItemConst struct {
		Attrs    []Attribute
		Vis      Visibility
		Name     string
		Generics Generics
		Type     Type
		Expr     Expr
	}
	ItemStatic struct {
		Attrs []Attribute
		Vis   Visibility
		Mut   bool
		Name  string
		Type  Type
		Expr  Expr
	}
	ItemFn struct {
		Attrs []Attribute
		Vis   Visibility
		Sig   Signature
		Body  *Block
	}
	// ItemMod is `mod name { ... }`, or `mod name;` when Inline is false.
	ItemMod struct {
		Attrs  []Attribute
		Vis    Visibility
		Unsafe bool
		Name   string
		Inline bool
		Items  []Item
	}
	ItemType struct {
		Attrs    []Attribute
		Vis      Visibility
		Name     string
		Generics Generics
		Type     Type
	}
	ItemStruct struct {
		Attrs    []Attribute
		Vis      Visibility
		Name     string
		Generics Generics
		Fields   Fields
	}
	ItemEnum struct {
		Attrs    []Attribute
		Vis      Visibility
		Name     string
		Generics Generics
		Variants []Variant
	}
	ItemUnion struct {
		Attrs    []Attribute
		Vis      Visibility
		Name     string
		Generics Generics
		Fields   Fields
	}
	ItemTrait struct {
		Attrs       []Attribute
		Vis         Visibility
		Unsafe      bool
		Auto        bool
		Name        string
		Generics    Generics
		Supertraits []TypeParamBound
		Items       []TraitItem
	}
	// ItemImpl is `impl<G> Trait for SelfTy { ... }`; Trait is nil for an
	// inherent impl.
	ItemImpl struct {
		Attrs    []Attribute
		Default  bool
		Unsafe   bool
		Generics Generics
		Negative bool
		Trait    *Path
		SelfTy   Type
		Items    []ImplItem
	}
	ItemForeignMod struct {
		Attrs  []Attribute
		Unsafe bool
		ABI    ABI
		Items  []ForeignItem
	}
	ItemUse struct {
		Attrs  []Attribute
		Vis    Visibility
		Global bool
		Tree   UseTree
	}
	ItemExternCrate struct {
		Attrs  []Attribute
		Vis    Visibility
		Name   string
		Rename string
	}
	// ItemMacro is an item-position macro. `macro_rules! name { ... }`
	// definitions carry their Name.
	ItemMacro struct {
		Attrs []Attribute
		Name  string
		Mac   Macro
		Semi  bool
	}
	ItemVerbatim struct {
		Tokens token.Stream
	}
)

// IsDefinition reports whether the macro item defines a macro by example.
func (m *ItemMacro) IsDefinition() bool {
	return m.Mac.Path.IsIdent("macro_rules")
}

// Macro is an invocation `path!(tokens)`.
type Macro struct {
	Path   Path
	Delim  token.Delim
	Tokens token.Stream
}

type Signature struct {
	Const    bool
	Async    bool
	Unsafe   bool
	ABI      *ABI
	Name     string
	Generics Generics
	Inputs   []FnArg
	Variadic bool
	Output   Type // nil for `()`
}

// FnArg is either a receiver (`&'a mut self`) or a typed pattern.
type FnArg struct {
	Attrs    []Attribute
	Receiver *Receiver
	Pat      Pat
	Type     Type
}

type Receiver struct {
	Ref      bool
	Lifetime string
	Mut      bool
	Type     Type // explicit `self: Box<Self>`
}

type FieldsKind uint8

const (
	FieldsUnit FieldsKind = iota
	FieldsNamed
	FieldsUnnamed
)

type Fields struct {
	Kind   FieldsKind
	Fields []Field
}

type Field struct {
	Attrs []Attribute
	Vis   Visibility
	Name  string // empty for tuple fields
	Type  Type
}

type Variant struct {
	Attrs        []Attribute
	Name         string
	Fields       Fields
	Discriminant Expr
}

type UseKind uint8

const (
	UsePath   UseKind = iota // ident::Next
	UseName                  // ident
	UseRename                // ident as rename
	UseGlob                  // *
	UseGroup                 // {a, b}
)

type UseTree struct {
	Kind   UseKind
	Ident  string
	Rename string
	Next   *UseTree
	Group  []UseTree
}

func (*ItemConst) aNode()       {}
func (*ItemStatic) aNode()      {}
func (*ItemFn) aNode()          {}
func (*ItemMod) aNode()         {}
func (*ItemType) aNode()        {}
func (*ItemStruct) aNode()      {}
func (*ItemEnum) aNode()        {}
func (*ItemUnion) aNode()       {}
func (*ItemTrait) aNode()       {}
func (*ItemImpl) aNode()        {}
func (*ItemForeignMod) aNode()  {}
func (*ItemUse) aNode()         {}
func (*ItemExternCrate) aNode() {}
func (*ItemMacro) aNode()       {}
func (*ItemVerbatim) aNode()    {}

func (*ItemConst) itemNode()       {}
func (*ItemStatic) itemNode()      {}
func (*ItemFn) itemNode()          {}
func (*ItemMod) itemNode()         {}
func (*ItemType) itemNode()        {}
func (*ItemStruct) itemNode()      {}
func (*ItemEnum) itemNode()        {}
func (*ItemUnion) itemNode()       {}
func (*ItemTrait) itemNode()       {}
func (*ItemImpl) itemNode()        {}
func (*ItemForeignMod) itemNode()  {}
func (*ItemUse) itemNode()         {}
func (*ItemExternCrate) itemNode() {}
func (*ItemMacro) itemNode()       {}
func (*ItemVerbatim) itemNode()    {}

// ItemAttrs returns a pointer to the attribute list of item, or nil for
// verbatim items.
func ItemAttrs(item Item) *[]Attribute {
	switch it := item.(type) {
	case *ItemConst:
		return &it.Attrs
	case *ItemStatic:
		return &it.Attrs
	case *ItemFn:
		return &it.Attrs
	case *ItemMod:
		return &it.Attrs
	case *ItemType:
		return &it.Attrs
	case *ItemStruct:
		return &it.Attrs
	case *ItemEnum:
		return &it.Attrs
	case *ItemUnion:
		return &it.Attrs
	case *ItemTrait:
		return &it.Attrs
	case *ItemImpl:
		return &it.Attrs
	case *ItemForeignMod:
		return &it.Attrs
	case *ItemUse:
		return &it.Attrs
	case *ItemExternCrate:
		return &it.Attrs
	case *ItemMacro:
		return &it.Attrs
	default:
		return nil
	}
}

// ItemName returns the name an item is addressed by, if it has one. An
// extern crate is addressed by its rename.
func ItemName(item Item) (string, bool) {
	switch it := item.(type) {
	case *ItemExternCrate:
		if it.Rename != "" {
			return it.Rename, true
		}
		return it.Name, true
	case *ItemStatic:
		return it.Name, true
	case *ItemConst:
		return it.Name, true
	case *ItemFn:
		return it.Sig.Name, true
	case *ItemMod:
		return it.Name, true
	case *ItemType:
		return it.Name, true
	case *ItemStruct:
		return it.Name, true
	case *ItemEnum:
		return it.Name, true
	case *ItemUnion:
		return it.Name, true
	case *ItemTrait:
		return it.Name, true
	case *ItemMacro:
		return it.Name, it.Name != ""
	case *ItemUse, *ItemImpl, *ItemForeignMod, *ItemVerbatim:
		return "", false
	default:
		return "", false
	}
}
