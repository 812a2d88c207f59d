package script

import "github.com/opal-lang/shgen/core/ast"

// IgnoreFailure runs the body and rewrites the resulting fragment so no
// command's failure can propagate: each plain command and && combination
// becomes (<node>) || true. Comments and ordering are preserved. Pipes are
// rewritten on their last stage only; pipefail is assumed to never be set.
func (s *Script) IgnoreFailure(body func(*Script)) {
	s.emit(ast.Suppress(s.run(body))...)
}

// PipeTo connects two fragments with |. Each side is collapsed to a single
// node first, wrapping multi-node fragments in an anonymous subshell.
func (s *Script) PipeTo(left, right func(*Script)) {
	s.emit(ast.Pipe{Left: collapse(s.run(left)), Right: collapse(s.run(right))})
}

// AllOf connects two fragments with &&: the right side runs only when the
// left succeeds.
func (s *Script) AllOf(left, right func(*Script)) {
	s.emit(ast.And{Left: collapse(s.run(left)), Right: collapse(s.run(right))})
}

// AnyOf connects two fragments with ||: the right side runs only when the
// left fails.
func (s *Script) AnyOf(left, right func(*Script)) {
	s.emit(ast.Or{Left: collapse(s.run(left)), Right: collapse(s.run(right))})
}
