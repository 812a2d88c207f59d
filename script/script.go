// Package script builds POSIX shell programs out of typed building blocks.
//
// A Script is the single mutable handle for one build: it owns the naming
// environment and accumulates AST nodes in order. Every interpolated value
// goes through the quoting layer and every generated name is unique within
// the build. The finished node list renders through core/ast in either
// multiline or single-line mode.
//
// Construction is pure and synchronous. The generated script may still fail
// at shell-execution time under ordinary POSIX semantics; the builder's job
// is only to emit syntactically correct code for the requested semantics.
package script

import (
	"strconv"
	"strings"

	"github.com/opal-lang/shgen/core/ast"
	"github.com/opal-lang/shgen/core/quote"
)

// Script accumulates the AST of one shell program while threading the naming
// environment through every operation. Combinators that embed sub-scripts run
// them against the same environment, so names allocated inside nested bodies
// stay unique across the whole build.
type Script struct {
	env   *Env
	nodes []ast.Node
}

// New starts an empty build with a fresh environment.
func New() *Script {
	return &Script{env: NewEnv()}
}

// Env exposes the build's naming environment.
func (s *Script) Env() *Env { return s.env }

// Nodes returns the accumulated node list.
func (s *Script) Nodes() []ast.Node { return s.nodes }

// Render produces the final script text in the given mode.
func (s *Script) Render(mode ast.Mode) string {
	return ast.Render(mode, s.nodes)
}

func (s *Script) emit(nodes ...ast.Node) {
	s.nodes = append(s.nodes, nodes...)
}

// run executes a sub-builder against the same environment and captures the
// nodes it emitted. The environment mutations carry forward into the outer
// build; only the node list is scoped.
func (s *Script) run(f func(*Script)) []ast.Node {
	sub := &Script{env: s.env}
	f(sub)
	return sub.nodes
}

// collapse reduces a fragment to a single node so it can feed a binary
// combinator or a redirection: multi-node fragments are wrapped in an
// anonymous subshell, an empty fragment becomes the no-op command.
func collapse(nodes []ast.Node) ast.Node {
	switch len(nodes) {
	case 0:
		return ast.Cmd{Text: ":"}
	case 1:
		return nodes[0]
	default:
		return ast.Subshell{Nodes: nodes}
	}
}

// Cmd emits a command invocation. The command word and every parameter are
// rendered shell-safe according to their category.
func (s *Script) Cmd(name string, params ...Param) {
	s.emit(s.cmdNode(name, params))
}

func (s *Script) cmdNode(name string, params []Param) ast.Cmd {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, quote.Quote(name))
	for _, p := range params {
		parts = append(parts, p.paramText(s.env))
	}
	return ast.Cmd{Text: strings.Join(parts, " ")}
}

// Splice emits an already-quoted command line as-is. Shell safety is the
// caller's responsibility; prefer Cmd wherever possible.
func (s *Script) Splice(text string) {
	s.emit(ast.Cmd{Text: text})
}

// Comment emits a script comment.
func (s *Script) Comment(text string) {
	s.emit(ast.Comment{Text: text})
}

// Subshell runs the body in a grouped ( ... ) environment of its own.
func (s *Script) Subshell(body func(*Script)) {
	s.emit(ast.Subshell{Nodes: s.run(body)})
}

// Redirected emits the body with the given redirection attached. A multi-node
// body is grouped in a subshell first so the redirection covers all of it.
func (s *Script) Redirected(spec ast.RedirSpec, body func(*Script)) {
	s.emit(ast.Redirect{Node: collapse(s.run(body)), Spec: spec})
}

// StopOnFailure toggles abort-on-error for the rest of the script:
// set -e when on, set +e when off.
func (s *Script) StopOnFailure(on bool) {
	if on {
		s.emit(ast.Cmd{Text: "set -e"})
		return
	}
	s.emit(ast.Cmd{Text: "set +e"})
}

// ToFile redirects stdout to a file, truncating it.
func ToFile(path string) ast.RedirSpec {
	return ast.RedirSpec{Mode: ast.RedirToFile, FD: 1, Target: quote.Quote(path)}
}

// AppendTo redirects stdout to a file, appending.
func AppendTo(path string) ast.RedirSpec {
	return ast.RedirSpec{Mode: ast.RedirAppend, FD: 1, Target: quote.Quote(path)}
}

// FromFile reads stdin from a file.
func FromFile(path string) ast.RedirSpec {
	return ast.RedirSpec{Mode: ast.RedirFromFile, FD: 0, Target: quote.Quote(path)}
}

// DupOut duplicates output descriptor fd onto to, as in 2>&1.
func DupOut(fd, to int) ast.RedirSpec {
	return ast.RedirSpec{Mode: ast.RedirDupOut, FD: fd, Target: strconv.Itoa(to)}
}

// DupIn duplicates input descriptor fd from to, as in 0<&3.
func DupIn(fd, to int) ast.RedirSpec {
	return ast.RedirSpec{Mode: ast.RedirDupIn, FD: fd, Target: strconv.Itoa(to)}
}

// HereDoc feeds the body text to stdin as a here-document. The renderer
// picks a collision-free delimiter in multiline mode and rewrites the
// document into an echo pipeline in single-line mode.
func HereDoc(body string) ast.RedirSpec {
	return ast.RedirSpec{Mode: ast.RedirHereDoc, FD: 0, Target: body}
}
