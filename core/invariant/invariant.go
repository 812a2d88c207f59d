// Package invariant provides contract assertions for shgen.
//
// Script construction is pure and synchronous, so a contract violation is
// always a programming error in the calling code, never a runtime condition
// of the generated script. All functions panic on violation so that misuse is
// reported at the offending call site instead of surfacing later as malformed
// shell text.
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func TrimSuffix(v Variable, pat string) Variable {
//	    invariant.Precondition(pat != "", "trim pattern must not be empty")
//	    // ... work ...
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Invariant checks an internal consistency condition mid-function.
// Panics with INVARIANT VIOLATION if condition is false.
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotEmpty panics if a required string argument is empty.
func NotEmpty(value, name string) {
	if value == "" {
		fail("PRECONDITION", "%s must not be empty", name)
	}
}

// Unreachable marks code that a closed variant set should make impossible to
// reach, such as the default arm of a switch over AST node types.
func Unreachable(format string, args ...interface{}) {
	fail("UNREACHABLE", format, args...)
}

// fail panics with a formatted message including the violating call site.
func fail(kind, format string, args ...interface{}) {
	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]interface{}{kind}, args...)...)

	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])
	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
