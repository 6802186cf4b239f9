package ast

// Inspect traverses the tree rooted at node in depth-first order. It calls
// f(node); if f returns true, Inspect visits each child of node and then
// calls f(nil). Nodes replaced in place during the walk are seen in their
// new form.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	w := walker{f: f}
	w.children(node)
	f(nil)
}

type walker struct {
	f func(Node) bool
}

func (w walker) node(n Node) {
	if n == nil {
		return
	}
	Inspect(n, w.f)
}

func (w walker) expr(e Expr) {
	if e != nil {
		w.node(e)
	}
}

func (w walker) typ(t Type) {
	if t != nil {
		w.node(t)
	}
}

func (w walker) pat(p Pat) {
	if p != nil {
		w.node(p)
	}
}

// A nil *Block must not be wrapped into a non-nil Node.
func (w walker) block(b *Block) {
	if b != nil {
		w.node(b)
	}
}

func (w walker) exprs(list []Expr) {
	for _, e := range list {
		w.expr(e)
	}
}

func (w walker) path(p *Path) {
	for i := range p.Segments {
		if args := p.Segments[i].Args; args != nil {
			w.genericArgs(args)
		}
	}
}

func (w walker) qself(q *QSelf) {
	if q == nil {
		return
	}
	w.typ(q.Type)
	if q.Trait != nil {
		w.path(q.Trait)
	}
}

func (w walker) genericArgs(a *GenericArgs) {
	for i := range a.Args {
		arg := &a.Args[i]
		w.typ(arg.Type)
		w.expr(arg.Const)
		w.bounds(arg.Bounds)
	}
	for _, t := range a.Inputs {
		w.typ(t)
	}
	w.typ(a.Output)
}

func (w walker) bounds(list []TypeParamBound) {
	for i := range list {
		w.path(&list[i].Path)
	}
}

func (w walker) generics(g *Generics) {
	for i := range g.Params {
		p := &g.Params[i]
		w.bounds(p.Bounds)
		w.typ(p.Default)
		w.typ(p.Type)
		w.expr(p.ConstDefault)
	}
	for i := range g.Where {
		w.typ(g.Where[i].Type)
		w.bounds(g.Where[i].Bounds)
	}
}

func (w walker) sig(s *Signature) {
	w.generics(&s.Generics)
	for i := range s.Inputs {
		in := &s.Inputs[i]
		if in.Receiver != nil {
			w.typ(in.Receiver.Type)
			continue
		}
		w.pat(in.Pat)
		w.typ(in.Type)
	}
	w.typ(s.Output)
}

func (w walker) fields(f *Fields) {
	for i := range f.Fields {
		w.typ(f.Fields[i].Type)
	}
}

func (w walker) vis(v *Visibility) {
	w.path(&v.Path)
}

func (w walker) children(node Node) {
	switch n := node.(type) {
	case *File:
		for _, it := range n.Items {
			w.node(it)
		}
	case *Block:
		for _, s := range n.Stmts {
			w.node(s)
		}

	// Items
	case *ItemConst:
		w.generics(&n.Generics)
		w.typ(n.Type)
		w.expr(n.Expr)
	case *ItemStatic:
		w.typ(n.Type)
		w.expr(n.Expr)
	case *ItemFn:
		w.sig(&n.Sig)
		w.block(n.Body)
	case *ItemMod:
		for _, it := range n.Items {
			w.node(it)
		}
	case *ItemType:
		w.generics(&n.Generics)
		w.typ(n.Type)
	case *ItemStruct:
		w.generics(&n.Generics)
		w.fields(&n.Fields)
	case *ItemEnum:
		w.generics(&n.Generics)
		for i := range n.Variants {
			w.fields(&n.Variants[i].Fields)
			w.expr(n.Variants[i].Discriminant)
		}
	case *ItemUnion:
		w.generics(&n.Generics)
		w.fields(&n.Fields)
	case *ItemTrait:
		w.generics(&n.Generics)
		w.bounds(n.Supertraits)
		for _, it := range n.Items {
			w.node(it)
		}
	case *ItemImpl:
		w.generics(&n.Generics)
		if n.Trait != nil {
			w.path(n.Trait)
		}
		w.typ(n.SelfTy)
		for _, it := range n.Items {
			w.node(it)
		}
	case *ItemForeignMod:
		for _, it := range n.Items {
			w.node(it)
		}
	case *ItemMacro:
		w.path(&n.Mac.Path)
	case *ItemUse, *ItemExternCrate, *ItemVerbatim:

	// Trait, impl and foreign members
	case *TraitItemConst:
		w.generics(&n.Generics)
		w.typ(n.Type)
		w.expr(n.Default)
	case *TraitItemFn:
		w.sig(&n.Sig)
		w.block(n.Default)
	case *TraitItemType:
		w.generics(&n.Generics)
		w.bounds(n.Bounds)
		w.typ(n.Default)
	case *ImplItemConst:
		w.generics(&n.Generics)
		w.typ(n.Type)
		w.expr(n.Expr)
	case *ImplItemFn:
		w.sig(&n.Sig)
		w.block(n.Body)
	case *ImplItemType:
		w.generics(&n.Generics)
		w.typ(n.Type)
	case *ForeignItemFn:
		w.sig(&n.Sig)
	case *ForeignItemStatic:
		w.typ(n.Type)
	case *ForeignItemType:
		w.generics(&n.Generics)
	case *TraitItemMacro, *ImplItemMacro, *ForeignItemMacro,
		*TraitItemVerbatim, *ImplItemVerbatim, *ForeignItemVerbatim:

	// Statements
	case *StmtLocal:
		w.pat(n.Pat)
		w.typ(n.Type)
		w.expr(n.Init)
		w.block(n.Else)
	case *StmtItem:
		w.node(n.Item)
	case *StmtExpr:
		w.expr(n.Expr)

	// Expressions
	case *ExprArray:
		w.exprs(n.Elems)
	case *ExprAssign:
		w.expr(n.Left)
		w.expr(n.Right)
	case *ExprAsync:
		w.block(n.Block)
	case *ExprAwait:
		w.expr(n.Base)
	case *ExprBinary:
		w.expr(n.Left)
		w.expr(n.Right)
	case *ExprBlock:
		w.block(n.Block)
	case *ExprBreak:
		w.expr(n.Expr)
	case *ExprCall:
		w.expr(n.Func)
		w.exprs(n.Args)
	case *ExprCast:
		w.expr(n.Expr)
		w.typ(n.Type)
	case *ExprClosure:
		for _, p := range n.Inputs {
			w.pat(p)
		}
		w.typ(n.Output)
		w.expr(n.Body)
	case *ExprConst:
		w.block(n.Block)
	case *ExprField:
		w.expr(n.Base)
	case *ExprForLoop:
		w.pat(n.Pat)
		w.expr(n.Expr)
		w.block(n.Body)
	case *ExprIf:
		w.expr(n.Cond)
		w.block(n.Then)
		w.expr(n.Else)
	case *ExprIndex:
		w.expr(n.Expr)
		w.expr(n.Index)
	case *ExprLet:
		w.pat(n.Pat)
		w.expr(n.Expr)
	case *ExprLoop:
		w.block(n.Body)
	case *ExprMatch:
		w.expr(n.Expr)
		for i := range n.Arms {
			w.pat(n.Arms[i].Pat)
			w.expr(n.Arms[i].Guard)
			w.expr(n.Arms[i].Body)
		}
	case *ExprMethodCall:
		w.expr(n.Receiver)
		if n.Turbofish != nil {
			w.genericArgs(n.Turbofish)
		}
		w.exprs(n.Args)
	case *ExprParen:
		w.expr(n.Expr)
	case *ExprPath:
		w.qself(n.QSelf)
		w.path(&n.Path)
	case *ExprRange:
		w.expr(n.Start)
		w.expr(n.End)
	case *ExprReference:
		w.expr(n.Expr)
	case *ExprRepeat:
		w.expr(n.Expr)
		w.expr(n.Len)
	case *ExprReturn:
		w.expr(n.Expr)
	case *ExprStruct:
		w.qself(n.QSelf)
		w.path(&n.Path)
		for i := range n.Fields {
			w.expr(n.Fields[i].Expr)
		}
		w.expr(n.Rest)
	case *ExprTry:
		w.expr(n.Expr)
	case *ExprTryBlock:
		w.block(n.Block)
	case *ExprTuple:
		w.exprs(n.Elems)
	case *ExprUnary:
		w.expr(n.Expr)
	case *ExprUnsafe:
		w.block(n.Block)
	case *ExprWhile:
		w.expr(n.Cond)
		w.block(n.Body)
	case *ExprYield:
		w.expr(n.Expr)
	case *ExprMacro:
		w.path(&n.Mac.Path)
	case *ExprContinue, *ExprInfer, *ExprLit, *ExprVerbatim:

	// Types
	case *TypePath:
		w.qself(n.QSelf)
		w.path(&n.Path)
	case *TypeRef:
		w.typ(n.Elem)
	case *TypePtr:
		w.typ(n.Elem)
	case *TypeSlice:
		w.typ(n.Elem)
	case *TypeArray:
		w.typ(n.Elem)
		w.expr(n.Len)
	case *TypeTuple:
		for _, t := range n.Elems {
			w.typ(t)
		}
	case *TypeFn:
		for i := range n.Inputs {
			w.typ(n.Inputs[i].Type)
		}
		w.typ(n.Output)
	case *TypeImplTrait:
		w.bounds(n.Bounds)
	case *TypeTraitObject:
		w.bounds(n.Bounds)
	case *TypeParen:
		w.typ(n.Elem)
	case *TypeNever, *TypeInfer, *TypeMacro, *TypeVerbatim:

	// Patterns
	case *PatIdent:
		w.pat(n.Sub)
	case *PatLit:
		w.expr(n.Expr)
	case *PatRange:
		w.expr(n.Lo)
		w.expr(n.Hi)
	case *PatPath:
		w.qself(n.QSelf)
		w.path(&n.Path)
	case *PatTupleStruct:
		w.qself(n.QSelf)
		w.path(&n.Path)
		for _, p := range n.Elems {
			w.pat(p)
		}
	case *PatStruct:
		w.qself(n.QSelf)
		w.path(&n.Path)
		for i := range n.Fields {
			w.pat(n.Fields[i].Pat)
		}
	case *PatTuple:
		for _, p := range n.Elems {
			w.pat(p)
		}
	case *PatSlice:
		for _, p := range n.Elems {
			w.pat(p)
		}
	case *PatRef:
		w.pat(n.Pat)
	case *PatOr:
		for _, p := range n.Cases {
			w.pat(p)
		}
	case *PatParen:
		w.pat(n.Pat)
	case *PatType:
		w.pat(n.Pat)
		w.typ(n.Type)
	case *PatWild, *PatRest, *PatMacro, *PatVerbatim:
	}
}
