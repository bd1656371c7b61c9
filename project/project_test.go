package project

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"shale/common"
	"shale/verify"
)

// --- helpers -----------------------------------------------------------------

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, common.ProjectFileName)
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write project file: %v", err)
	}

	return dir
}

// --- tests -------------------------------------------------------------------

func TestLoadFullProject(t *testing.T) {
	dir := writeProjectFile(t, `
[project]
name = "deploy"
entry = "src/main.sl"
output = "out/deploy.sh"
dialect = "dash"
verify-level = "paranoid"
optimize = false
emit-proof = true
shale-version = ">= 0.3"
`)

	proj, err := Load(dir)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if proj.Name != "deploy" {
		t.Errorf("name: got %q", proj.Name)
	}
	if proj.Root != dir {
		t.Errorf("root: got %q, want %q", proj.Root, dir)
	}
	if proj.EntryPath != filepath.Join(dir, "src", "main.sl") {
		t.Errorf("entry path: got %q", proj.EntryPath)
	}
	if proj.OutputPath != filepath.Join(dir, "out", "deploy.sh") {
		t.Errorf("output path: got %q", proj.OutputPath)
	}
	if proj.Config.Dialect != common.DialectDash {
		t.Errorf("dialect: got %v", proj.Config.Dialect)
	}
	if proj.Config.VerifyLevel != verify.LevelParanoid {
		t.Errorf("verify level: got %v", proj.Config.VerifyLevel)
	}
	if proj.Config.Optimize {
		t.Error("optimize must be disabled")
	}
	if !proj.Config.EmitProof {
		t.Error("emit-proof must be enabled")
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := writeProjectFile(t, `
[project]
name = "tool"
entry = "main.sl"
`)

	proj, err := Load(dir)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if proj.OutputPath != filepath.Join(dir, "tool.sh") {
		t.Errorf("default output path: got %q", proj.OutputPath)
	}
	if proj.Config.Dialect != common.DialectPosix {
		t.Errorf("default dialect: got %v", proj.Config.Dialect)
	}
	if proj.Config.VerifyLevel != verify.LevelStrict {
		t.Errorf("default verify level: got %v", proj.Config.VerifyLevel)
	}
	if !proj.Config.Optimize {
		t.Error("optimizer must default to enabled")
	}
	if proj.Config.EmitProof {
		t.Error("proof emission must default to disabled")
	}
}

func TestLoadVersionConstraint(t *testing.T) {
	dir := writeProjectFile(t, `
[project]
name = "tool"
entry = "main.sl"
shale-version = "< 0.3"
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("want version constraint failure")
	}
	if !strings.Contains(err.Error(), common.ShaleVersion) {
		t.Errorf("error must name the running version: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"missing table", `title = "not a project"`, "missing [project] table"},
		{"missing name", "[project]\nentry = \"main.sl\"", "missing project name"},
		{"missing entry", "[project]\nname = \"tool\"", "missing entry source file"},
		{"bad dialect", "[project]\nname = \"tool\"\nentry = \"main.sl\"\ndialect = \"zsh\"", "unknown dialect"},
		{"bad level", "[project]\nname = \"tool\"\nentry = \"main.sl\"\nverify-level = \"extreme\"", "unknown verification level"},
		{"bad constraint", "[project]\nname = \"tool\"\nentry = \"main.sl\"\nshale-version = \"not a version\"", "invalid shale-version constraint"},
		{"malformed toml", "[project\nname =", "malformed project file"},
	}

	for _, c := range cases {
		dir := writeProjectFile(t, c.content)

		_, err := Load(dir)
		if err == nil {
			t.Errorf("%s: want error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: got %q, want substring %q", c.name, err.Error(), c.want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("want error for a directory with no project file")
	}
}
