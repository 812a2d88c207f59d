package script

import "strconv"

// NameKind selects the namespace an allocation draws from. Variable and
// function names never collide with each other in shell syntax, so the two
// namespaces are tracked separately.
type NameKind int

const (
	VarName NameKind = iota
	FuncName
)

// Env records every variable and function name handed out during one script
// build. Names are never freed: a name stays recorded even if the fragment
// that used it is discarded, which keeps allocation collision-free across
// speculative builder runs. An Env has no identity beyond a single build.
type Env struct {
	vars  map[string]bool
	funcs map[string]bool
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{
		vars:  make(map[string]bool),
		funcs: make(map[string]bool),
	}
}

// Allocate hands out a fresh name in the given namespace. Only the alphabetic
// characters of the hint are kept as a seed; an empty hint seeds "v" for
// variables and "p" for functions. Candidates are "_" + seed, then
// "_" + seed + "2", "_" + seed + "3", and so on until one is unused.
func (e *Env) Allocate(kind NameKind, hint string) string {
	set := e.vars
	seed := "v"
	if kind == FuncName {
		set = e.funcs
		seed = "p"
	}
	if hint != "" {
		// A hint with no alphabetic characters degrades to the empty seed;
		// the suffix still disambiguates.
		seed = keepAlpha(hint)
	}

	for attempt := 0; ; attempt++ {
		name := "_" + seed
		if attempt > 0 {
			name += strconv.Itoa(attempt + 1)
		}
		if !set[name] {
			set[name] = true
			return name
		}
	}
}

func keepAlpha(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			out = append(out, c)
		}
	}
	return string(out)
}
