package script

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opal-lang/shgen/core/arith"
	"github.com/opal-lang/shgen/core/ast"
)

// lines renders multiline and drops the shebang, which most expectations
// here do not care about.
func lines(s *Script) string {
	return strings.TrimPrefix(s.Render(ast.Multiline), "#!/bin/sh\n")
}

func TestCmd_ParameterCategories(t *testing.T) {
	tests := []struct {
		name  string
		build func(s *Script)
		want  string
	}{
		{
			name:  "bare command",
			build: func(s *Script) { s.Cmd("ls") },
			want:  "ls\n",
		},
		{
			name:  "literal text quoted",
			build: func(s *Script) { s.Cmd("echo", Text("hello world"), Text("$HOME")) },
			want:  "echo 'hello world' '$HOME'\n",
		},
		{
			name:  "numeric value unquoted",
			build: func(s *Script) { s.Cmd("sleep", Value(3)) },
			want:  "sleep 3\n",
		},
		{
			name:  "raw splice as-is",
			build: func(s *Script) { s.Cmd("echo", Raw(`"$@"`)) },
			want:  "echo \"$@\"\n",
		},
		{
			name: "captured output",
			build: func(s *Script) {
				s.Cmd("echo", Output(func(sub *Script) {
					sub.Cmd("date")
					sub.Cmd("hostname")
				}))
			},
			want: "echo \"$(date; hostname)\"\n",
		},
		{
			name: "arithmetic substitution",
			build: func(s *Script) {
				s.Cmd("echo", Calc(arith.Add(arith.Num(1), arith.Mul(arith.Num(2), arith.Num(3)))))
			},
			want: "echo \"$((((1) + ((2) * (3)))))\"\n",
		},
		{
			name:  "command word itself is quoted",
			build: func(s *Script) { s.Cmd("my command") },
			want:  "'my command'\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.build(s)
			if diff := cmp.Diff(tt.want, lines(s)); diff != "" {
				t.Errorf("script mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVariableParameter(t *testing.T) {
	s := New()
	v := Declare[string](s, "greeting", Text("hi there"))
	s.Cmd("echo", v)

	want := "_greeting='hi there'\necho \"$_greeting\"\n"
	if diff := cmp.Diff(want, lines(s)); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestRedirected(t *testing.T) {
	tests := []struct {
		name  string
		build func(s *Script)
		want  string
	}{
		{
			name: "stdout to file",
			build: func(s *Script) {
				s.Redirected(ToFile("out.log"), func(b *Script) { b.Cmd("echo", Text("hi")) })
			},
			want: "echo hi >out.log\n",
		},
		{
			name: "append with quoting",
			build: func(s *Script) {
				s.Redirected(AppendTo("my log.txt"), func(b *Script) { b.Cmd("date") })
			},
			want: "date >>'my log.txt'\n",
		},
		{
			name: "stderr onto stdout",
			build: func(s *Script) {
				s.Redirected(DupOut(2, 1), func(b *Script) { b.Cmd("make") })
			},
			want: "make 2>&1\n",
		},
		{
			name: "multi-node body grouped",
			build: func(s *Script) {
				s.Redirected(ToFile("all.txt"), func(b *Script) {
					b.Cmd("echo", Text("a"))
					b.Cmd("echo", Text("b"))
				})
			},
			want: "(\n  echo a\n  echo b\n) >all.txt\n",
		},
		{
			name: "here document",
			build: func(s *Script) {
				s.Redirected(HereDoc("line1\nline2"), func(b *Script) { b.Cmd("cat") })
			},
			want: "cat <<EOF\nline1\nline2\nEOF\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.build(s)
			if diff := cmp.Diff(tt.want, lines(s)); diff != "" {
				t.Errorf("script mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRedirected_HereDocFedPipeline(t *testing.T) {
	s := New()
	s.PipeTo(
		func(l *Script) {
			l.Redirected(HereDoc("alpha\nbeta"), func(b *Script) { b.Cmd("cat") })
		},
		func(r *Script) { r.Cmd("wc", Text("-l")) },
	)

	// The document form cannot continue a pipeline line, so both modes use
	// the same echo pipeline and count the same two lines.
	want := "(\n  echo alpha\n  echo beta\n) | cat | wc -l\n"
	if diff := cmp.Diff(want, lines(s)); diff != "" {
		t.Errorf("multiline mismatch (-want +got):\n%s", diff)
	}

	wantOneline := "(echo alpha; echo beta) | cat | wc -l\n"
	if diff := cmp.Diff(wantOneline, s.Render(ast.Oneline)); diff != "" {
		t.Errorf("oneline mismatch (-want +got):\n%s", diff)
	}
}

func TestSubshell_EmptyBodyStaysValid(t *testing.T) {
	s := New()
	s.Subshell(func(b *Script) {})

	want := "(:)\n"
	if diff := cmp.Diff(want, lines(s)); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestStopOnFailure(t *testing.T) {
	s := New()
	s.StopOnFailure(true)
	s.Cmd("make")
	s.StopOnFailure(false)

	want := "set -e\nmake\nset +e\n"
	if diff := cmp.Diff(want, lines(s)); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestSubshellAndComment(t *testing.T) {
	s := New()
	s.Comment("group")
	s.Subshell(func(b *Script) {
		b.Cmd("cd", Text("/tmp"))
		b.Cmd("ls")
	})

	want := "# group\n(\n  cd /tmp\n  ls\n)\n"
	if diff := cmp.Diff(want, lines(s)); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}
