package script

import (
	"strings"

	"github.com/opal-lang/shgen/core/ast"
	"github.com/opal-lang/shgen/core/quote"
)

// block emits a keyword line carrying a leading no-op, then the indented
// body. The no-op keeps an empty body syntactically valid and makes the
// single-line join uniform: "do :", "then :", "else :".
func block(keyword string, body []ast.Node) []ast.Node {
	nodes := make([]ast.Node, 0, len(body)+1)
	nodes = append(nodes, ast.Cmd{Text: keyword + " :"})
	nodes = append(nodes, ast.Indent(body)...)
	return nodes
}

// ForEach iterates over the whitespace-split output of the source fragment.
// The source is linearized into a command substitution; the body receives the
// freshly allocated loop variable.
func (s *Script) ForEach(source func(*Script), body func(*Script, Variable[string])) {
	src := s.run(source)
	v := Variable[string]{name: s.env.Allocate(VarName, "")}
	s.emit(ast.Cmd{Text: "for " + v.name + " in $(" + ast.Linearize(src) + ")"})
	s.emit(block("do", s.run(func(sub *Script) { body(sub, v) }))...)
	s.emit(ast.Cmd{Text: "done"})
}

// While loops as long as the condition fragment succeeds. The condition is
// command-substituted rather than executed directly, trading a subshell
// invocation for uniform single-line and multiline formatting.
func (s *Script) While(cond func(*Script), body func(*Script)) {
	c := s.run(cond)
	s.emit(ast.Cmd{Text: "while $(" + ast.Linearize(c) + ")"})
	s.emit(block("do", s.run(body))...)
	s.emit(ast.Cmd{Text: "done"})
}

// If runs the body when the condition fragment succeeds.
func (s *Script) If(cond func(*Script), then func(*Script)) {
	s.ifElse(cond, then, nil, false)
}

// IfElse runs then when the condition fragment succeeds and els otherwise.
func (s *Script) IfElse(cond func(*Script), then func(*Script), els func(*Script)) {
	s.ifElse(cond, then, els, false)
}

// Unless runs the body when the condition fragment fails.
func (s *Script) Unless(cond func(*Script), body func(*Script)) {
	s.ifElse(cond, body, nil, true)
}

func (s *Script) ifElse(cond func(*Script), then func(*Script), els func(*Script), negate bool) {
	condNodes := s.run(cond)

	header := "if "
	if negate {
		header = "if ! "
	}
	s.emit(ast.Cmd{Text: header + ast.Linearize([]ast.Node{inlineCondition(condNodes)})})
	s.emit(block("then", s.run(then))...)
	if els != nil {
		s.emit(block("else", s.run(els))...)
	}
	s.emit(ast.Cmd{Text: "fi"})
}

// inlineCondition keeps a condition that is already a single command or a
// single subshell as-is; anything else is wrapped in an anonymous subshell so
// it reads as one expression after if.
func inlineCondition(nodes []ast.Node) ast.Node {
	if len(nodes) == 1 {
		switch nodes[0].(type) {
		case ast.Cmd, ast.Subshell:
			return nodes[0]
		}
	}
	return ast.Subshell{Nodes: nodes}
}

// CaseAlt is one pattern/body alternative of a Case dispatch. The pattern is
// glob-escaped, so it keeps its wildcard power but nothing else.
type CaseAlt struct {
	Pattern string
	Body    func(*Script)
}

// Case dispatches on the variable's expansion. The case header is glued to
// the first alternative and each ;; to the following one, which keeps the
// construct valid in both render modes. An empty alternative list emits
// nothing.
func Case[T any](s *Script, v Variable[T], alts ...CaseAlt) {
	if len(alts) == 0 {
		return
	}
	for i, alt := range alts {
		head := ";; "
		if i == 0 {
			head = "case " + v.paramText(s.env) + " in "
		}
		s.emit(ast.Cmd{Text: head + quote.Glob(alt.Pattern) + ") :"})
		s.emit(ast.Indent(s.run(alt.Body))...)
	}
	s.emit(ast.Cmd{Text: ";; esac"})
}

// Function is an invocation handle over an environment-unique function name
// bound once to a body.
type Function struct {
	name string
}

// Name returns the generated function name.
func (f Function) Name() string { return f.name }

// Function defines a shell function: it allocates a unique name, runs the
// body against the threaded environment so inner names consume the global
// namespace, and returns the invocation handle.
func (s *Script) Function(hint string, body func(*Script)) Function {
	name := s.env.Allocate(FuncName, hint)
	bodyNodes := s.run(body)
	s.emit(ast.Cmd{Text: name + " () { :"})
	s.emit(ast.Indent(bodyNodes)...)
	s.emit(ast.Cmd{Text: "}"})
	return Function{name: name}
}

// Call invokes a defined function with the given parameter list.
func (s *Script) Call(f Function, params ...Param) {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, f.name)
	for _, p := range params {
		parts = append(parts, p.paramText(s.env))
	}
	s.emit(ast.Cmd{Text: strings.Join(parts, " ")})
}

// TakeParameter pops the next positional parameter into a fresh variable:
// <name>="$1" followed by shift. Meant for function bodies; calling it with
// no positional parameters left fails at shell-execution time under ordinary
// POSIX semantics.
func (s *Script) TakeParameter(hint string) Variable[string] {
	v := Variable[string]{name: s.env.Allocate(VarName, hint)}
	s.emit(ast.Cmd{Text: v.name + `="$1"`})
	s.emit(ast.Cmd{Text: "shift"})
	return v
}
