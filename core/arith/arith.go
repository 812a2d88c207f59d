// Package arith compiles arithmetic expression trees into POSIX shell
// arithmetic text.
//
// Every operator is rendered fully parenthesized regardless of shell
// precedence rules: precedence tables differ subtly between arithmetic
// evaluation contexts, and unconditional parenthesization is correct in all
// of them. Boolean-valued operators evaluate to 1/0 per shell arithmetic
// semantics; there is no distinct boolean type.
package arith

import "strconv"

// Expr is one node of an arithmetic expression. The variant set is closed;
// construct values through the package functions.
type Expr interface {
	compile() string
}

type num struct {
	n int
}

type ref struct {
	text string
}

type unary struct {
	op string
	x  Expr
}

type binary struct {
	op   string
	l, r Expr
}

type ternary struct {
	cond, then, els Expr
}

// Num is an integer literal.
func Num(n int) Expr { return num{n} }

// Var references a shell variable by its raw (unquoted) expansion text,
// e.g. "$_count". Arithmetic contexts do not require quoting.
func Var(expansion string) Expr { return ref{expansion} }

// Neg is arithmetic negation, Not is logical negation (1 when the operand is
// zero, 0 otherwise).
func Neg(x Expr) Expr { return unary{"-", x} }
func Not(x Expr) Expr { return unary{"!", x} }

func Add(l, r Expr) Expr { return binary{"+", l, r} }
func Sub(l, r Expr) Expr { return binary{"-", l, r} }
func Mul(l, r Expr) Expr { return binary{"*", l, r} }
func Div(l, r Expr) Expr { return binary{"/", l, r} }
func Mod(l, r Expr) Expr { return binary{"%", l, r} }

func Eq(l, r Expr) Expr { return binary{"==", l, r} }
func Ne(l, r Expr) Expr { return binary{"!=", l, r} }
func Lt(l, r Expr) Expr { return binary{"<", l, r} }
func Le(l, r Expr) Expr { return binary{"<=", l, r} }
func Gt(l, r Expr) Expr { return binary{">", l, r} }
func Ge(l, r Expr) Expr { return binary{">=", l, r} }

func And(l, r Expr) Expr { return binary{"&&", l, r} }
func Or(l, r Expr) Expr  { return binary{"||", l, r} }

func BitAnd(l, r Expr) Expr { return binary{"&", l, r} }
func BitOr(l, r Expr) Expr  { return binary{"|", l, r} }
func Xor(l, r Expr) Expr    { return binary{"^", l, r} }
func Shl(l, r Expr) Expr    { return binary{"<<", l, r} }
func Shr(l, r Expr) Expr    { return binary{">>", l, r} }

// Cond is the ternary conditional cond ? then : els.
func Cond(cond, then, els Expr) Expr { return ternary{cond, then, els} }

// Compile renders the expression as shell arithmetic text, without the
// surrounding $(( )) substitution markers.
func Compile(e Expr) string { return e.compile() }

func (e num) compile() string { return strconv.Itoa(e.n) }

func (e ref) compile() string { return e.text }

// group parenthesizes an operand. Unary, binary and ternary results already
// carry their own outer parentheses, so only atoms need wrapping.
func group(e Expr) string {
	switch e.(type) {
	case num, ref:
		return "(" + e.compile() + ")"
	}
	return e.compile()
}

func (e unary) compile() string {
	return "(" + e.op + group(e.x) + ")"
}

func (e binary) compile() string {
	return "(" + group(e.l) + " " + e.op + " " + group(e.r) + ")"
}

func (e ternary) compile() string {
	return "(" + group(e.cond) + " ? " + group(e.then) + " : " + group(e.els) + ")"
}
