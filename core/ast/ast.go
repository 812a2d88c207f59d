// Package ast defines the intermediate representation for generated shell
// scripts: a closed set of immutable node variants plus the transforms and
// renderer that turn a node list into POSIX sh source text.
//
// Nodes are created by the script builder and consumed by Render. Transforms
// (Indent, Suppress) always produce new trees; a tree can therefore be
// rendered in both modes, or transformed speculatively, without invalidating
// the original.
package ast

import (
	"strconv"
	"strings"
)

// Node is one emitted unit of shell syntax. The variant set is closed:
// Cmd, Comment, Subshell, Pipe, And, Or, Redirect.
type Node interface {
	String() string
	node()
}

// Cmd is a literal command invocation. Text is pre-joined and already
// shell-quoted; the renderer emits it verbatim.
type Cmd struct {
	Text string

	indent int
}

// Comment is a script comment. Embedded newlines are dropped at render time
// so a comment can never span lines.
type Comment struct {
	Text string

	indent int
}

// Subshell groups an ordered list of child nodes into one ( ... ) unit.
type Subshell struct {
	Nodes []Node

	indent int
}

// Pipe connects the left node's stdout to the right node's stdin.
type Pipe struct {
	Left  Node
	Right Node
}

// And runs the right node only if the left one succeeds.
type And struct {
	Left  Node
	Right Node
}

// Or runs the right node only if the left one fails.
type Or struct {
	Left  Node
	Right Node
}

// Redirect attaches a redirection to a child node.
type Redirect struct {
	Node Node
	Spec RedirSpec
}

func (Cmd) node()      {}
func (Comment) node()  {}
func (Subshell) node() {}
func (Pipe) node()     {}
func (And) node()      {}
func (Or) node()       {}
func (Redirect) node() {}

func (n Cmd) String() string      { return renderNode(Multiline, n) }
func (n Comment) String() string  { return renderNode(Multiline, n) }
func (n Subshell) String() string { return renderNode(Multiline, n) }
func (n Pipe) String() string     { return renderNode(Multiline, n) }
func (n And) String() string      { return renderNode(Multiline, n) }
func (n Or) String() string       { return renderNode(Multiline, n) }
func (n Redirect) String() string { return renderNode(Multiline, n) }

// RedirMode tags the direction and style of a redirection.
type RedirMode int

const (
	// RedirToFile truncates and writes the descriptor to a file: cmd > f
	RedirToFile RedirMode = iota
	// RedirAppend appends the descriptor to a file: cmd >> f
	RedirAppend
	// RedirFromFile reads the descriptor from a file: cmd < f
	RedirFromFile
	// RedirDupOut duplicates an output descriptor: cmd >&2
	RedirDupOut
	// RedirDupIn duplicates an input descriptor: cmd <&3
	RedirDupIn
	// RedirHereDoc feeds a literal document to the descriptor: cmd <<EOF
	RedirHereDoc
)

// RedirSpec describes one redirection: the affected descriptor, the operator
// mode, and the target. For file modes Target is an already-quoted path, for
// dup modes the decimal text of the other descriptor, and for RedirHereDoc
// the raw document body.
type RedirSpec struct {
	Mode   RedirMode
	FD     int
	Target string
}

// operator returns the shell operator text for the mode.
func (s RedirSpec) operator() string {
	switch s.Mode {
	case RedirToFile:
		return ">"
	case RedirAppend:
		return ">>"
	case RedirFromFile:
		return "<"
	case RedirDupOut:
		return ">&"
	case RedirDupIn:
		return "<&"
	case RedirHereDoc:
		return "<<"
	}
	return ""
}

// defaultFD returns the descriptor the operator implies when none is written:
// stdout for output modes, stdin for input modes.
func (s RedirSpec) defaultFD() int {
	switch s.Mode {
	case RedirToFile, RedirAppend, RedirDupOut:
		return 1
	default:
		return 0
	}
}

// prefix renders the descriptor number, omitting it when it matches the
// operator's implicit default.
func (s RedirSpec) prefix() string {
	if s.FD == s.defaultFD() {
		return ""
	}
	return strconv.Itoa(s.FD)
}

// HereDocDelimiter picks a marker that does not occur as a substring of the
// document body, probing EOF, EOF2, EOF3, and so on. Selection cannot fail
// for finite input.
func HereDocDelimiter(body string) string {
	delim := "EOF"
	for i := 2; strings.Contains(body, delim); i++ {
		delim = "EOF" + strconv.Itoa(i)
	}
	return delim
}
