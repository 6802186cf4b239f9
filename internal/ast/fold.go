package ast

// Folder rewrites the six folded node categories. Each method receives a
// node and returns its replacement, which may be the same node.
type Folder interface {
	FoldItem(Item) Item
	FoldStmt(Stmt) Stmt
	FoldExpr(Expr) Expr
	FoldTraitItem(TraitItem) TraitItem
	FoldImplItem(ImplItem) ImplItem
	FoldForeignItem(ForeignItem) ForeignItem
}

// FoldFile applies f to every top-level item of file.
func FoldFile(f Folder, file *File) {
	for i, it := range file.Items {
		file.Items[i] = f.FoldItem(it)
	}
}

// The Fold*Children functions apply f to every immediate child of a node
// that belongs to one of the folded categories, reaching through blocks,
// types, generics, signatures, fields and match arms. Children are replaced
// in place and the node itself is returned. Patterns are not folded.

func FoldItemChildren(f Folder, item Item) Item {
	c := childFolder{f}
	switch n := item.(type) {
	case *ItemConst:
		c.vis(&n.Vis)
		c.generics(&n.Generics)
		n.Type = c.typ(n.Type)
		n.Expr = c.expr(n.Expr)
	case *ItemStatic:
		c.vis(&n.Vis)
		n.Type = c.typ(n.Type)
		n.Expr = c.expr(n.Expr)
	case *ItemFn:
		c.vis(&n.Vis)
		c.sig(&n.Sig)
		c.block(n.Body)
	case *ItemMod:
		c.vis(&n.Vis)
		for i, it := range n.Items {
			n.Items[i] = f.FoldItem(it)
		}
	case *ItemType:
		c.generics(&n.Generics)
		n.Type = c.typ(n.Type)
	case *ItemStruct:
		c.generics(&n.Generics)
		c.fields(&n.Fields)
	case *ItemEnum:
		c.generics(&n.Generics)
		for i := range n.Variants {
			v := &n.Variants[i]
			c.fields(&v.Fields)
			v.Discriminant = c.expr(v.Discriminant)
		}
	case *ItemUnion:
		c.generics(&n.Generics)
		c.fields(&n.Fields)
	case *ItemTrait:
		c.generics(&n.Generics)
		c.bounds(n.Supertraits)
		for i, it := range n.Items {
			n.Items[i] = f.FoldTraitItem(it)
		}
	case *ItemImpl:
		c.generics(&n.Generics)
		if n.Trait != nil {
			c.path(n.Trait)
		}
		n.SelfTy = c.typ(n.SelfTy)
		for i, it := range n.Items {
			n.Items[i] = f.FoldImplItem(it)
		}
	case *ItemForeignMod:
		for i, it := range n.Items {
			n.Items[i] = f.FoldForeignItem(it)
		}
	}
	return item
}

func FoldStmtChildren(f Folder, stmt Stmt) Stmt {
	c := childFolder{f}
	switch n := stmt.(type) {
	case *StmtLocal:
		n.Type = c.typ(n.Type)
		n.Init = c.expr(n.Init)
		c.block(n.Else)
	case *StmtItem:
		n.Item = f.FoldItem(n.Item)
	case *StmtExpr:
		n.Expr = c.expr(n.Expr)
	}
	return stmt
}

func FoldExprChildren(f Folder, expr Expr) Expr {
	c := childFolder{f}
	switch n := expr.(type) {
	case *ExprArray:
		c.exprs(n.Elems)
	case *ExprAssign:
		n.Left = c.expr(n.Left)
		n.Right = c.expr(n.Right)
	case *ExprAsync:
		c.block(n.Block)
	case *ExprAwait:
		n.Base = c.expr(n.Base)
	case *ExprBinary:
		n.Left = c.expr(n.Left)
		n.Right = c.expr(n.Right)
	case *ExprBlock:
		c.block(n.Block)
	case *ExprBreak:
		n.Expr = c.expr(n.Expr)
	case *ExprCall:
		n.Func = c.expr(n.Func)
		c.exprs(n.Args)
	case *ExprCast:
		n.Expr = c.expr(n.Expr)
		n.Type = c.typ(n.Type)
	case *ExprClosure:
		n.Output = c.typ(n.Output)
		n.Body = c.expr(n.Body)
	case *ExprConst:
		c.block(n.Block)
	case *ExprField:
		n.Base = c.expr(n.Base)
	case *ExprForLoop:
		n.Expr = c.expr(n.Expr)
		c.block(n.Body)
	case *ExprIf:
		n.Cond = c.expr(n.Cond)
		c.block(n.Then)
		n.Else = c.expr(n.Else)
	case *ExprIndex:
		n.Expr = c.expr(n.Expr)
		n.Index = c.expr(n.Index)
	case *ExprLet:
		n.Expr = c.expr(n.Expr)
	case *ExprLoop:
		c.block(n.Body)
	case *ExprMatch:
		n.Expr = c.expr(n.Expr)
		for i := range n.Arms {
			arm := &n.Arms[i]
			arm.Guard = c.expr(arm.Guard)
			arm.Body = c.expr(arm.Body)
		}
	case *ExprMethodCall:
		n.Receiver = c.expr(n.Receiver)
		if n.Turbofish != nil {
			c.genericArgs(n.Turbofish)
		}
		c.exprs(n.Args)
	case *ExprParen:
		n.Expr = c.expr(n.Expr)
	case *ExprPath:
		c.qself(n.QSelf)
		c.path(&n.Path)
	case *ExprRange:
		n.Start = c.expr(n.Start)
		n.End = c.expr(n.End)
	case *ExprReference:
		n.Expr = c.expr(n.Expr)
	case *ExprRepeat:
		n.Expr = c.expr(n.Expr)
		n.Len = c.expr(n.Len)
	case *ExprReturn:
		n.Expr = c.expr(n.Expr)
	case *ExprStruct:
		c.qself(n.QSelf)
		c.path(&n.Path)
		for i := range n.Fields {
			n.Fields[i].Expr = c.expr(n.Fields[i].Expr)
		}
		n.Rest = c.expr(n.Rest)
	case *ExprTry:
		n.Expr = c.expr(n.Expr)
	case *ExprTryBlock:
		c.block(n.Block)
	case *ExprTuple:
		c.exprs(n.Elems)
	case *ExprUnary:
		n.Expr = c.expr(n.Expr)
	case *ExprUnsafe:
		c.block(n.Block)
	case *ExprWhile:
		n.Cond = c.expr(n.Cond)
		c.block(n.Body)
	case *ExprYield:
		n.Expr = c.expr(n.Expr)
	}
	return expr
}

func FoldTraitItemChildren(f Folder, item TraitItem) TraitItem {
	c := childFolder{f}
	switch n := item.(type) {
	case *TraitItemConst:
		c.generics(&n.Generics)
		n.Type = c.typ(n.Type)
		n.Default = c.expr(n.Default)
	case *TraitItemFn:
		c.sig(&n.Sig)
		c.block(n.Default)
	case *TraitItemType:
		c.generics(&n.Generics)
		c.bounds(n.Bounds)
		n.Default = c.typ(n.Default)
	}
	return item
}

func FoldImplItemChildren(f Folder, item ImplItem) ImplItem {
	c := childFolder{f}
	switch n := item.(type) {
	case *ImplItemConst:
		c.generics(&n.Generics)
		n.Type = c.typ(n.Type)
		n.Expr = c.expr(n.Expr)
	case *ImplItemFn:
		c.vis(&n.Vis)
		c.sig(&n.Sig)
		c.block(n.Body)
	case *ImplItemType:
		c.generics(&n.Generics)
		n.Type = c.typ(n.Type)
	}
	return item
}

func FoldForeignItemChildren(f Folder, item ForeignItem) ForeignItem {
	c := childFolder{f}
	switch n := item.(type) {
	case *ForeignItemFn:
		c.sig(&n.Sig)
	case *ForeignItemStatic:
		n.Type = c.typ(n.Type)
	case *ForeignItemType:
		c.generics(&n.Generics)
	}
	return item
}

// childFolder descends through the structure between two folded nodes.
type childFolder struct {
	f Folder
}

func (c childFolder) expr(e Expr) Expr {
	if e == nil {
		return nil
	}
	return c.f.FoldExpr(e)
}

func (c childFolder) exprs(list []Expr) {
	for i, e := range list {
		list[i] = c.expr(e)
	}
}

func (c childFolder) block(b *Block) {
	if b == nil {
		return
	}
	for i, s := range b.Stmts {
		b.Stmts[i] = c.f.FoldStmt(s)
	}
}

// typ folds the expressions embedded in a type: array lengths and const
// generic arguments.
func (c childFolder) typ(t Type) Type {
	switch n := t.(type) {
	case *TypePath:
		c.qself(n.QSelf)
		c.path(&n.Path)
	case *TypeRef:
		n.Elem = c.typ(n.Elem)
	case *TypePtr:
		n.Elem = c.typ(n.Elem)
	case *TypeSlice:
		n.Elem = c.typ(n.Elem)
	case *TypeArray:
		n.Elem = c.typ(n.Elem)
		n.Len = c.expr(n.Len)
	case *TypeTuple:
		for i, e := range n.Elems {
			n.Elems[i] = c.typ(e)
		}
	case *TypeFn:
		for i := range n.Inputs {
			n.Inputs[i].Type = c.typ(n.Inputs[i].Type)
		}
		n.Output = c.typ(n.Output)
	case *TypeImplTrait:
		c.bounds(n.Bounds)
	case *TypeTraitObject:
		c.bounds(n.Bounds)
	case *TypeParen:
		n.Elem = c.typ(n.Elem)
	}
	return t
}

func (c childFolder) qself(q *QSelf) {
	if q == nil {
		return
	}
	q.Type = c.typ(q.Type)
	if q.Trait != nil {
		c.path(q.Trait)
	}
}

func (c childFolder) path(p *Path) {
	for i := range p.Segments {
		if args := p.Segments[i].Args; args != nil {
			c.genericArgs(args)
		}
	}
}

func (c childFolder) genericArgs(a *GenericArgs) {
	for i := range a.Args {
		arg := &a.Args[i]
		arg.Type = c.typ(arg.Type)
		arg.Const = c.expr(arg.Const)
		c.bounds(arg.Bounds)
	}
	for i, t := range a.Inputs {
		a.Inputs[i] = c.typ(t)
	}
	a.Output = c.typ(a.Output)
}

func (c childFolder) bounds(list []TypeParamBound) {
	for i := range list {
		c.path(&list[i].Path)
	}
}

func (c childFolder) generics(g *Generics) {
	for i := range g.Params {
		p := &g.Params[i]
		c.bounds(p.Bounds)
		p.Default = c.typ(p.Default)
		p.Type = c.typ(p.Type)
		p.ConstDefault = c.expr(p.ConstDefault)
	}
	for i := range g.Where {
		g.Where[i].Type = c.typ(g.Where[i].Type)
		c.bounds(g.Where[i].Bounds)
	}
}

func (c childFolder) sig(s *Signature) {
	c.generics(&s.Generics)
	for i := range s.Inputs {
		in := &s.Inputs[i]
		if in.Receiver != nil {
			in.Receiver.Type = c.typ(in.Receiver.Type)
			continue
		}
		in.Type = c.typ(in.Type)
	}
	s.Output = c.typ(s.Output)
}

func (c childFolder) fields(f *Fields) {
	for i := range f.Fields {
		f.Fields[i].Type = c.typ(f.Fields[i].Type)
	}
}

func (c childFolder) vis(v *Visibility) {
	c.path(&v.Path)
}
