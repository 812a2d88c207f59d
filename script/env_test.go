package script

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnv_Allocate(t *testing.T) {
	tests := []struct {
		name  string
		kind  NameKind
		hints []string
		want  []string
	}{
		{
			name:  "default variable seed",
			kind:  VarName,
			hints: []string{"", "", ""},
			want:  []string{"_v", "_v2", "_v3"},
		},
		{
			name:  "default function seed",
			kind:  FuncName,
			hints: []string{"", ""},
			want:  []string{"_p", "_p2"},
		},
		{
			name:  "hint kept",
			kind:  VarName,
			hints: []string{"count", "count"},
			want:  []string{"_count", "_count2"},
		},
		{
			name:  "non alphabetic characters filtered",
			kind:  VarName,
			hints: []string{"x1y-2z", "3-.14"},
			want:  []string{"_xyz", "_"},
		},
		{
			name:  "fully non alphabetic hints disambiguated by suffix",
			kind:  VarName,
			hints: []string{"123", "456"},
			want:  []string{"_", "_2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnv()
			got := make([]string, len(tt.hints))
			for i, h := range tt.hints {
				got[i] = env.Allocate(tt.kind, h)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("allocation sequence mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnv_SeparateNamespaces(t *testing.T) {
	env := NewEnv()
	v := env.Allocate(VarName, "run")
	f := env.Allocate(FuncName, "run")
	if v != "_run" || f != "_run" {
		t.Fatalf("got %q and %q, want both _run: namespaces must not interfere", v, f)
	}
}

func TestEnv_NamesNeverFreed(t *testing.T) {
	env := NewEnv()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := env.Allocate(VarName, "tmp")
		if seen[name] {
			t.Fatalf("Allocate returned %q twice", name)
		}
		seen[name] = true
	}
}
