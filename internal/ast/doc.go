// Package ast is the syntax tree of a Rust compilation unit as produced by
// macro expansion.
//
// Every syntactic category (items, statements, expressions, types, patterns
// and the members of traits, impls and extern blocks) is a closed set of
// variants: a sealed interface with one pointer struct per variant. Code that
// dispatches on a category does so with an exhaustive type switch.
//
// Ownership is strictly by containment. A parent exclusively owns its
// children and no node is reachable from two parents, so passes are free to
// rewrite the tree in place.
//
// Each category that can be elided has a Verbatim variant; a Verbatim node
// holding exactly the `...` token stream is a placeholder for content that
// could not be reproduced (see IsPlaceholder).
package ast
