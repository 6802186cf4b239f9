// Package format renders syntax trees back to Rust source text.
//
// Назначение: два примитива печати поверх ast.File. Unparse печатает
// читаемый код с отступами и переносами длинных списков, Tokens печатает всё
// в одну строку для последующей передачи в rustfmt.
// Не делает: восстановления после ошибок. Unsupported nodes make both
// primitives panic; callers isolate that through package fault.
// Зависимости: internal/ast, internal/token, internal/lexer.
package format
