package unparse

import (
	"context"
	"slices"
	"strconv"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/fault"
	"cargo-expand/internal/trace"
)

// Primitive renders a whole file. It may panic on trees it does not support.
type Primitive func(*ast.File) string

// Maximal renders file with prim, replacing the subtrees prim cannot print
// with placeholders. File-level attributes that cannot be printed are
// dropped. The tree is modified in place when a fallback is
// needed. Panics signalling a broken fault boundary are not recovered.
func Maximal(ctx context.Context, file *ast.File, prim Primitive) string {
	if out, err := fault.Catch(func() string { return prim(file) }); err == nil {
		return out
	}

	sp, ctx := trace.Start(ctx, trace.ScopePass, "unparse.fallback")
	r := &repairer{
		prim:   prim,
		tracer: trace.FromContext(ctx),
		span:   trace.CurrentSpan(ctx),
	}
	r.header(file)
	ast.FoldFile(r, file)
	sp.WithExtra("attempts", strconv.Itoa(r.attempts)).
		WithExtra("placeholders", strconv.Itoa(r.placeholders)).
		WithExtra("dropped", strconv.Itoa(r.dropped)).
		End("")

	return prim(file)
}

// repairer is the ast.Folder driving the per-node fallback.
type repairer struct {
	prim   Primitive
	tracer trace.Tracer
	span   uint64

	attempts     int
	placeholders int
	dropped      int
}

func (r *repairer) FoldItem(it ast.Item) ast.Item {
	return resolve(r, it, wrapItem, ast.FoldItemChildren, ast.PlaceholderItem)
}

func (r *repairer) FoldStmt(s ast.Stmt) ast.Stmt {
	return resolve(r, s, wrapStmt, ast.FoldStmtChildren, ast.PlaceholderStmt)
}

func (r *repairer) FoldExpr(e ast.Expr) ast.Expr {
	return resolve(r, e, wrapExpr, ast.FoldExprChildren, ast.PlaceholderExpr)
}

func (r *repairer) FoldTraitItem(it ast.TraitItem) ast.TraitItem {
	return resolve(r, it, wrapTraitItem, ast.FoldTraitItemChildren, ast.PlaceholderTraitItem)
}

func (r *repairer) FoldImplItem(it ast.ImplItem) ast.ImplItem {
	return resolve(r, it, wrapImplItem, ast.FoldImplItemChildren, ast.PlaceholderImplItem)
}

func (r *repairer) FoldForeignItem(it ast.ForeignItem) ast.ForeignItem {
	return resolve(r, it, wrapForeignItem, ast.FoldForeignItemChildren, ast.PlaceholderForeignItem)
}

// resolve is the per-node fallback: try n alone, then with repaired
// children, then give up on it.
func resolve[N ast.Node](
	r *repairer,
	n N,
	wrap func(N) ast.Item,
	children func(ast.Folder, N) N,
	placeholder func() N,
) N {
	if r.renders(wrap(n), n, "first") {
		return n
	}
	trace.Point(r.tracer, trace.ScopeNode, "unparse.descend", ast.Describe(n), r.span)

	n = children(r, n)
	if r.renders(wrap(n), n, "retry") {
		return n
	}

	r.placeholders++
	trace.Point(r.tracer, trace.ScopeNode, "unparse.placeholder", ast.Describe(n), r.span)
	return placeholder()
}

// header drops the shebang and the inner attributes of file that prim
// cannot print. They have no placeholder form.
func (r *repairer) header(file *ast.File) {
	if file.Shebang != "" {
		if !r.try(&ast.File{Shebang: file.Shebang}, "shebang", "first") {
			r.drop("shebang")
			file.Shebang = ""
		}
	}
	file.Attrs = slices.DeleteFunc(file.Attrs, func(a ast.Attribute) bool {
		what := "attribute " + a.Path.String()
		if r.try(&ast.File{Attrs: []ast.Attribute{a}}, what, "first") {
			return false
		}
		r.drop(what)
		return true
	})
}

func (r *repairer) drop(what string) {
	r.dropped++
	trace.Point(r.tracer, trace.ScopeNode, "unparse.drop", what, r.span)
}

func (r *repairer) renders(item ast.Item, n ast.Node, attempt string) bool {
	return r.try(&ast.File{Items: []ast.Item{item}}, ast.Describe(n), attempt)
}

func (r *repairer) try(file *ast.File, what, attempt string) bool {
	r.attempts++
	_, err := fault.Catch(func() string { return r.prim(file) })
	if err != nil && r.tracer.Level().ShouldEmit(trace.ScopeAttempt) {
		trace.Point(r.tracer, trace.ScopeAttempt, "unparse."+attempt, what+": "+err.Error(), r.span)
	}
	return err == nil
}
