package ast

import (
	"strings"

	"github.com/opal-lang/shgen/core/invariant"
	"github.com/opal-lang/shgen/core/quote"
)

// Mode selects the output layout of Render.
type Mode int

const (
	// Multiline emits a human-readable script: shebang line, one statement
	// per line, indented block bodies.
	Multiline Mode = iota
	// Oneline emits the same statements joined by "; ", usable as a single
	// statement sequence (for example inside sh -c or a command
	// substitution).
	Oneline
)

// indentUnit is one level of block indentation in multiline output.
const indentUnit = "  "

// shebang is the interpreter line prefixed to every multiline script.
const shebang = "#!/bin/sh"

// Render turns a node list into final script text. Both modes terminate the
// output with a newline; only Multiline carries the shebang.
func Render(mode Mode, nodes []Node) string {
	if mode == Multiline {
		var b strings.Builder
		b.WriteString(shebang)
		b.WriteByte('\n')
		for _, n := range nodes {
			b.WriteString(renderNode(Multiline, n))
			b.WriteByte('\n')
		}
		return b.String()
	}
	return Linearize(nodes) + "\n"
}

// Linearize joins the nodes' single-line renderings with "; ", without a
// terminator. Used for command substitutions and inline conditions.
func Linearize(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = renderNode(Oneline, n)
	}
	return strings.Join(parts, "; ")
}

func renderNode(mode Mode, n Node) string {
	switch n := n.(type) {
	case Cmd:
		if mode == Oneline {
			return n.Text
		}
		return pad(n.indent) + n.Text

	case Comment:
		// A # comment would swallow everything joined after it on a single
		// line, so Oneline emits a no-op carrying the text instead.
		if mode == Oneline {
			return ": " + quote.Quote(n.Text)
		}
		return pad(n.indent) + "# " + strings.ReplaceAll(n.Text, "\n", "")

	case Subshell:
		return renderSubshell(mode, n)

	case Pipe:
		return renderOperand(mode, n.Left) + " | " + renderOperand(mode, n.Right)

	case And:
		return renderOperand(mode, n.Left) + " && " + renderOperand(mode, n.Right)

	case Or:
		return renderOperand(mode, n.Left) + " || " + renderOperand(mode, n.Right)

	case Redirect:
		return renderRedirect(mode, n)
	}
	invariant.Unreachable("unknown node type %T", n)
	return ""
}

// renderOperand renders a node in a position where more text follows on the
// same line. A here-document cannot sit there in multiline output because its
// delimiter must own a whole line, so the document form is traded for the
// echo pipeline the single-line mode uses.
func renderOperand(mode Mode, n Node) string {
	if r, ok := n.(Redirect); ok && r.Spec.Mode == RedirHereDoc && mode == Multiline {
		return renderNode(mode, hereDocPipeline(r))
	}
	return renderNode(mode, n)
}

func renderSubshell(mode Mode, n Subshell) string {
	// An empty group still needs a command between the parentheses.
	if len(n.Nodes) == 0 {
		if mode == Oneline {
			return "(:)"
		}
		return pad(n.indent) + "(:)"
	}

	if mode == Oneline {
		return "(" + Linearize(n.Nodes) + ")"
	}

	// A group with a single one-line member stays inline; this keeps wrapped
	// conditions and suppressed commands readable.
	if len(n.Nodes) == 1 {
		inner := renderNode(Multiline, n.Nodes[0])
		if !strings.Contains(inner, "\n") {
			return pad(n.indent) + "(" + strings.TrimLeft(inner, " ") + ")"
		}
	}

	var b strings.Builder
	b.WriteString(pad(n.indent))
	b.WriteString("(")
	for _, child := range n.Nodes {
		b.WriteByte('\n')
		b.WriteString(renderChild(child, n.indent+1))
	}
	b.WriteByte('\n')
	b.WriteString(pad(n.indent))
	b.WriteString(")")
	return b.String()
}

func renderRedirect(mode Mode, r Redirect) string {
	if r.Spec.Mode == RedirHereDoc {
		if mode == Oneline {
			return renderNode(mode, hereDocPipeline(r))
		}
		delim := HereDocDelimiter(r.Spec.Target)
		return renderOperand(mode, r.Node) + " <<" + delim + "\n" + r.Spec.Target + "\n" + delim
	}
	return renderOperand(mode, r.Node) + " " + r.Spec.prefix() + r.Spec.operator() + r.Spec.Target
}

// hereDocPipeline rewrites a here-document redirect into an equivalent
// pipeline: a subshell with one echo per document line, piped into the
// redirected node. Indentation carried by the node moves to the subshell,
// which now starts the line. The original tree is left intact so it can
// still be rendered as a document later.
func hereDocPipeline(r Redirect) Node {
	node, level := takeIndent(r.Node)
	lines := strings.Split(r.Spec.Target, "\n")
	echos := make([]Node, len(lines))
	for i, line := range lines {
		echos[i] = Cmd{Text: "echo " + quote.Quote(line)}
	}
	return Pipe{Left: Subshell{Nodes: echos, indent: level}, Right: node}
}

// takeIndent strips the indentation that starts the node's first line and
// returns it alongside the stripped copy.
func takeIndent(n Node) (Node, int) {
	switch n := n.(type) {
	case Cmd:
		level := n.indent
		n.indent = 0
		return n, level
	case Comment:
		level := n.indent
		n.indent = 0
		return n, level
	case Subshell:
		level := n.indent
		n.indent = 0
		return n, level
	case Pipe:
		left, level := takeIndent(n.Left)
		n.Left = left
		return n, level
	case And:
		left, level := takeIndent(n.Left)
		n.Left = left
		return n, level
	case Or:
		left, level := takeIndent(n.Left)
		n.Left = left
		return n, level
	case Redirect:
		child, level := takeIndent(n.Node)
		n.Node = child
		return n, level
	}
	invariant.Unreachable("unknown node type %T", n)
	return nil, 0
}

// renderChild renders a subshell child at the given indent level. A
// here-document body and its delimiter must stay at the line start or the
// delimiter would no longer terminate the document, so only the command part
// of a heredoc redirect is shifted.
func renderChild(n Node, level int) string {
	if r, ok := n.(Redirect); ok && r.Spec.Mode == RedirHereDoc {
		delim := HereDocDelimiter(r.Spec.Target)
		return renderChild(r.Node, level) + " <<" + delim + "\n" + r.Spec.Target + "\n" + delim
	}
	return indentText(renderNode(Multiline, n), level)
}

// indentText prefixes every line of already-rendered text with the given
// number of indent units.
func indentText(text string, level int) string {
	prefix := strings.Repeat(indentUnit, level)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func pad(indent int) string {
	return strings.Repeat(indentUnit, indent)
}
