// Package taskfile builds shell scripts from declarative YAML task
// descriptions, so simple scripts can be assembled without writing Go against
// the script package directly.
//
// A task file is a named list of steps. Each step sets exactly one of:
// comment, run, raw, set, foreach, when, ignore_errors. Arguments of the
// form $name refer to handles bound earlier by set or foreach; any other
// argument is a quoted literal.
package taskfile

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/opal-lang/shgen/script"
)

// File is one parsed task description.
type File struct {
	Name   string `yaml:"name"`
	Strict bool   `yaml:"strict"`
	Tasks  []Step `yaml:"tasks"`
}

// Step is one build instruction. Exactly one field may be set.
type Step struct {
	Comment      string       `yaml:"comment,omitempty"`
	Run          []string     `yaml:"run,omitempty"`
	Raw          string       `yaml:"raw,omitempty"`
	Set          *SetStep     `yaml:"set,omitempty"`
	ForEach      *ForEachStep `yaml:"foreach,omitempty"`
	When         *WhenStep    `yaml:"when,omitempty"`
	IgnoreErrors []Step       `yaml:"ignore_errors,omitempty"`
}

// SetStep assigns a literal value to a fresh variable and binds it under As.
type SetStep struct {
	As    string `yaml:"as"`
	Value string `yaml:"value"`
}

// ForEachStep loops over the whitespace-split output of Source, binding the
// loop variable under As for the nested steps.
type ForEachStep struct {
	Source []string `yaml:"source"`
	As     string   `yaml:"as"`
	Do     []Step   `yaml:"do"`
}

// WhenStep runs the nested steps only when the Test command succeeds.
type WhenStep struct {
	Test []string `yaml:"test"`
	Do   []Step   `yaml:"do"`
}

// Load parses a task file. Unknown keys are rejected.
func Load(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing task file: %w", err)
	}
	return &f, nil
}

// Build assembles the described script.
func (f *File) Build() (*script.Script, error) {
	s := script.New()
	b := &builder{vars: make(map[string]script.Variable[string])}

	if f.Name != "" {
		s.Comment(f.Name)
	}
	if f.Strict {
		s.StopOnFailure(true)
	}
	b.steps(s, f.Tasks)
	if b.err != nil {
		return nil, b.err
	}
	return s, nil
}

// builder threads the name-to-handle bindings and the first error through the
// nested step bodies, which run as sub-builder callbacks.
type builder struct {
	vars map[string]script.Variable[string]
	err  error
}

func (b *builder) steps(s *script.Script, steps []Step) {
	for i := range steps {
		if b.err != nil {
			return
		}
		b.step(s, &steps[i])
	}
}

func (b *builder) step(s *script.Script, st *Step) {
	if err := st.validate(); err != nil {
		b.err = err
		return
	}

	switch {
	case st.Comment != "":
		s.Comment(st.Comment)

	case len(st.Run) > 0:
		name, params, err := b.command(st.Run)
		if err != nil {
			b.err = err
			return
		}
		s.Cmd(name, params...)

	case st.Raw != "":
		s.Splice(st.Raw)

	case st.Set != nil:
		if st.Set.As == "" {
			b.err = fmt.Errorf("set step needs an 'as' name")
			return
		}
		b.vars[st.Set.As] = script.Declare[string](s, st.Set.As, script.Text(st.Set.Value))

	case st.ForEach != nil:
		b.forEach(s, st.ForEach)

	case st.When != nil:
		b.when(s, st.When)

	case st.IgnoreErrors != nil:
		inner := st.IgnoreErrors
		s.IgnoreFailure(func(sub *script.Script) {
			b.steps(sub, inner)
		})
	}
}

func (b *builder) forEach(s *script.Script, fe *ForEachStep) {
	if len(fe.Source) == 0 {
		b.err = fmt.Errorf("foreach step needs a source command")
		return
	}
	if fe.As == "" {
		b.err = fmt.Errorf("foreach step needs an 'as' name")
		return
	}
	name, params, err := b.command(fe.Source)
	if err != nil {
		b.err = err
		return
	}
	s.ForEach(
		func(src *script.Script) { src.Cmd(name, params...) },
		func(body *script.Script, v script.Variable[string]) {
			prev, had := b.vars[fe.As]
			b.vars[fe.As] = v
			b.steps(body, fe.Do)
			if had {
				b.vars[fe.As] = prev
			} else {
				delete(b.vars, fe.As)
			}
		},
	)
}

func (b *builder) when(s *script.Script, w *WhenStep) {
	if len(w.Test) == 0 {
		b.err = fmt.Errorf("when step needs a test command")
		return
	}
	name, params, err := b.command(w.Test)
	if err != nil {
		b.err = err
		return
	}
	s.If(
		func(cond *script.Script) { cond.Cmd(name, params...) },
		func(then *script.Script) { b.steps(then, w.Do) },
	)
}

// command splits an argv into the command word and parameters, resolving
// $name references against the current bindings.
func (b *builder) command(argv []string) (string, []script.Param, error) {
	if len(argv) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	params := make([]script.Param, 0, len(argv)-1)
	for _, arg := range argv[1:] {
		if len(arg) > 1 && arg[0] == '$' {
			v, ok := b.vars[arg[1:]]
			if !ok {
				return "", nil, fmt.Errorf("unknown variable reference %q", arg)
			}
			params = append(params, v)
			continue
		}
		params = append(params, script.Text(arg))
	}
	return argv[0], params, nil
}

func (st *Step) validate() error {
	n := 0
	if st.Comment != "" {
		n++
	}
	if len(st.Run) > 0 {
		n++
	}
	if st.Raw != "" {
		n++
	}
	if st.Set != nil {
		n++
	}
	if st.ForEach != nil {
		n++
	}
	if st.When != nil {
		n++
	}
	if st.IgnoreErrors != nil {
		n++
	}
	if n != 1 {
		return fmt.Errorf("step must set exactly one of comment, run, raw, set, foreach, when, ignore_errors")
	}
	return nil
}
