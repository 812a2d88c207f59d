package script

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/opal-lang/shgen/core/ast"
)

// buildDeploy assembles a small but representative script touching most of
// the builder surface.
func buildDeploy() *Script {
	s := New()
	s.Comment("deploy latest build")
	s.StopOnFailure(true)
	dest := Declare[string](s, "dest", Text("/srv/app"))
	s.Unless(
		func(c *Script) { c.Cmd("test", Text("-d"), dest) },
		func(b *Script) { b.Cmd("mkdir", Text("-p"), dest) },
	)
	s.ForEach(
		func(src *Script) { src.Cmd("ls", Text("dist")) },
		func(body *Script, file Variable[string]) {
			body.Cmd("cp", file, dest)
		},
	)
	s.IgnoreFailure(func(b *Script) {
		b.Cmd("systemctl", Text("restart"), Text("app"))
	})
	return s
}

func TestDeployScript_Golden(t *testing.T) {
	g := goldie.New(t)
	s := buildDeploy()

	g.Assert(t, "deploy", []byte(s.Render(ast.Multiline)))
	g.Assert(t, "deploy_oneline", []byte(s.Render(ast.Oneline)))
}
