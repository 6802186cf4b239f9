// Package unparse renders syntax trees that the underlying printer cannot
// always handle in one piece.
//
// Maximal first tries the whole file. When that fails it folds over the
// tree and tests each node on its own, wrapped in the smallest legal
// context for its category:
//
//	item          itself
//	statement     fn main() { stmt }
//	expression    const _: _ = expr;
//	foreign item  extern { item }
//	trait item    trait Trait { item }
//	impl item     impl _ { item }
//
// A node that fails is repaired through its children and tried once more.
// If it still fails it is replaced by a `...` placeholder, so the loss stays
// local to the smallest subtree that cannot be printed.
package unparse
