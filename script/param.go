package script

import (
	"fmt"

	"github.com/opal-lang/shgen/core/arith"
	"github.com/opal-lang/shgen/core/ast"
	"github.com/opal-lang/shgen/core/quote"
)

// Param is one command argument. Each implementation fixes how its value is
// made shell-safe: quoted literal, raw splice, quoted expansion, command
// substitution, or arithmetic substitution.
type Param interface {
	paramText(env *Env) string
}

type textParam string

func (p textParam) paramText(*Env) string { return quote.Quote(string(p)) }

// Text is a literal argument; it is quoted so the command receives the text
// verbatim regardless of embedded metacharacters.
func Text(s string) Param { return textParam(s) }

type valueParam struct {
	v any
}

func (p valueParam) paramText(*Env) string { return fmt.Sprint(p.v) }

// Value renders an arbitrary value through its ordinary textual form,
// unquoted. Use it for values that are syntactically safe by construction,
// such as numbers; anything else belongs in Text.
func Value(v any) Param { return valueParam{v} }

type rawParam string

func (p rawParam) paramText(*Env) string { return string(p) }

// Raw splices pre-quoted text as-is. Shell safety is the caller's
// responsibility.
func Raw(s string) Param { return rawParam(s) }

type outputParam struct {
	f func(*Script)
}

func (p outputParam) paramText(env *Env) string {
	sub := &Script{env: env}
	p.f(sub)
	return `"$(` + ast.Linearize(sub.nodes) + `)"`
}

// Output captures the stdout of a nested fragment as an argument: the
// fragment is linearized into a quoted command substitution. Names allocated
// inside the fragment consume the surrounding build's namespace.
func Output(f func(*Script)) Param { return outputParam{f} }

type calcParam struct {
	e arith.Expr
}

func (p calcParam) paramText(*Env) string {
	return `"$((` + arith.Compile(p.e) + `))"`
}

// Calc renders an arithmetic expression as a quoted arithmetic substitution.
func Calc(e arith.Expr) Param { return calcParam{e} }
