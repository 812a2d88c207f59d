// Package quote turns arbitrary text into shell-safe literals.
//
// Quote guarantees the result is a single shell word whose expansion equals
// the input verbatim, for any input. Glob is the weaker variant for text that
// should keep its pattern-matching power.
package quote

import "strings"

// Characters that never need quoting in a POSIX shell word. Taken from
// IEEE Std 1003.1: everything outside this set is either a metacharacter,
// whitespace, or reserved for future use.
const safeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_@%+=:,./-"

// Glob metacharacters that Glob passes through unescaped so the result still
// matches as a pattern. Everything else outside the alphanumerics gets a
// backslash escape.
const globChars = "*?[]!-_."

// Quote returns text safe to splice unescaped into shell source as a single
// word. Strings made only of safe characters pass through unchanged for
// readability; everything else is wrapped in single quotes, with embedded
// single quotes emitted as '\''.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if containsOnly(s, safeChars) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	b.WriteByte('\'')
	for {
		i := strings.IndexByte(s, '\'')
		if i == -1 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		b.WriteString(`'\''`)
		s = s[i+1:]
	}
	b.WriteByte('\'')
	return b.String()
}

// Glob escapes text meant to be interpreted as a shell pattern: alphanumerics
// and glob metacharacters pass through, everything else is backslash-escaped.
func Glob(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlnum(c) || strings.IndexByte(globChars, c) != -1 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return b.String()
}

func containsOnly(s, set string) bool {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(set, s[i]) == -1 {
			return false
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
