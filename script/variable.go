package script

import (
	"github.com/opal-lang/shgen/core/arith"
	"github.com/opal-lang/shgen/core/ast"
	"github.com/opal-lang/shgen/core/invariant"
	"github.com/opal-lang/shgen/core/quote"
)

// Variable is a typed handle over an allocated shell variable name. The type
// parameter is a phantom tag tracking the declared element type through
// modifications; it has no runtime representation.
//
// A Variable references shell state, it does not own it: a modified-expansion
// variable derived from a base variable reads the same underlying name at
// render time and shares no mutable state with it.
type Variable[T any] struct {
	name   string
	expand func(name string) string
}

// Name returns the underlying shell variable name.
func (v Variable[T]) Name() string { return v.name }

// Expansion returns the raw, unquoted expansion text, e.g. $_v or ${_v:-x}.
func (v Variable[T]) Expansion() string {
	if v.expand == nil {
		return "$" + v.name
	}
	return v.expand(v.name)
}

// Arith references the variable inside an arithmetic expression, where
// expansion stays unquoted.
func (v Variable[T]) Arith() arith.Expr {
	return arith.Var(v.Expansion())
}

// paramText makes Variable usable directly as a command parameter: the
// expansion, double-quoted.
func (v Variable[T]) paramText(*Env) string {
	return `"` + v.Expansion() + `"`
}

// External references a shell variable the build does not own, such as HOME
// or an inherited environment variable. Allocator names always start with an
// underscore, so external names cannot collide with generated ones.
func External[T any](name string) Variable[T] {
	invariant.NotEmpty(name, "variable name")
	return Variable[T]{name: name}
}

// Declare allocates a fresh variable, assigns it the given value, and
// returns the handle.
func Declare[T any](s *Script, hint string, val Param) Variable[T] {
	v := Variable[T]{name: s.env.Allocate(VarName, hint)}
	Set(s, v, val)
	return v
}

// Set emits an assignment to the variable's underlying name.
func Set[T any](s *Script, v Variable[T], val Param) {
	s.emit(ast.Cmd{Text: v.name + "=" + val.paramText(s.env)})
}

// Export marks the variable for the environment of subsequent commands.
func Export[T any](s *Script, v Variable[T]) {
	s.emit(ast.Cmd{Text: "export " + v.name})
}

// Default derives a variable expanding to a fallback word when the base is
// unset or empty: ${name:-word}.
func Default[T any](v Variable[T], def string) Variable[T] {
	return Variable[T]{name: v.name, expand: func(n string) string {
		return "${" + n + ":-" + quote.Quote(def) + "}"
	}}
}

// OrFail derives a variable whose expansion aborts the script with the given
// message when the base is unset or empty: ${name:?msg}.
func OrFail[T any](v Variable[T], msg string) Variable[T] {
	return Variable[T]{name: v.name, expand: func(n string) string {
		return "${" + n + ":?" + quote.Quote(msg) + "}"
	}}
}

// TrimPrefix derives a variable with the shortest match of the pattern
// removed from the front: ${name#pat}. Defined on scalar text variables only.
func TrimPrefix(v Variable[string], pat string) Variable[string] {
	invariant.NotEmpty(pat, "trim pattern")
	return Variable[string]{name: v.name, expand: func(n string) string {
		return "${" + n + "#" + quote.Glob(pat) + "}"
	}}
}

// TrimSuffix derives a variable with the shortest match of the pattern
// removed from the end: ${name%pat}.
func TrimSuffix(v Variable[string], pat string) Variable[string] {
	invariant.NotEmpty(pat, "trim pattern")
	return Variable[string]{name: v.name, expand: func(n string) string {
		return "${" + n + "%" + quote.Glob(pat) + "}"
	}}
}

// Length derives a variable expanding to the length of the base value:
// ${#name}.
func Length[T any](v Variable[T]) Variable[int] {
	return Variable[int]{name: v.name, expand: func(n string) string {
		return "${#" + n + "}"
	}}
}

// Retag reinterprets a variable's phantom type without touching its
// representation. Unsafe: the tag is the only thing that changes, so the
// caller asserts the semantic type really is U. Reserved for combinator
// internals that legitimately change a derived variable's type.
func Retag[U, T any](v Variable[T]) Variable[U] {
	return Variable[U]{name: v.name, expand: v.expand}
}
