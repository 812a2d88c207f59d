package ast

import "github.com/opal-lang/shgen/core/invariant"

// Indent returns a copy of the node list rendered one indent unit deeper in
// multiline mode. Single-line output is unaffected. Combinators apply it when
// embedding a fragment inside a do/then/else style block.
func Indent(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = indentNode(n)
	}
	return out
}

func indentNode(n Node) Node {
	switch n := n.(type) {
	case Cmd:
		n.indent++
		return n
	case Comment:
		n.indent++
		return n
	case Subshell:
		n.indent++
		return n
	case Pipe:
		// Composite nodes render on one line; only the left-most element
		// starts it.
		n.Left = indentNode(n.Left)
		return n
	case And:
		n.Left = indentNode(n.Left)
		return n
	case Or:
		n.Left = indentNode(n.Left)
		return n
	case Redirect:
		n.Node = indentNode(n.Node)
		return n
	}
	invariant.Unreachable("unknown node type %T", n)
	return nil
}

// Suppress rewrites a node list so that no node's failure can propagate to
// the surrounding script: plain commands and && combinations become
// (<node>) || true. Comments pass through. Pipes are rewritten only on their
// last stage, on the assumption that pipefail is never enabled and only the
// final stage's exit status matters. The left side of an existing || is
// already failure-tolerant and stays as-is. A redirected command is rewritten
// inside a group, keeping the redirection on the command.
func Suppress(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = suppressNode(n)
	}
	return out
}

func suppressNode(n Node) Node {
	switch n := n.(type) {
	case Cmd:
		return orTrue(n)
	case Comment:
		return n
	case Subshell:
		n.Nodes = Suppress(n.Nodes)
		return n
	case Pipe:
		n.Right = suppressNode(n.Right)
		return n
	case And:
		return orTrue(n)
	case Or:
		n.Right = suppressNode(n.Right)
		return n
	case Redirect:
		// The rewritten child ends in || true; grouping keeps the
		// redirection attached to the original command rather than to true.
		n.Node = Subshell{Nodes: []Node{suppressNode(n.Node)}}
		return n
	}
	invariant.Unreachable("unknown node type %T", n)
	return nil
}

func orTrue(n Node) Node {
	return Or{Left: Subshell{Nodes: []Node{n}}, Right: Cmd{Text: "true"}}
}
