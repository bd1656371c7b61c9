package project

import (
	"fmt"
	"io/ioutil"
	"path/filepath"

	"shale/common"
	"shale/transpile"
	"shale/verify"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml"
)

// tomlProjectFile represents the project file as it is encoded in TOML.
type tomlProjectFile struct {
	Project *tomlProject `toml:"project"`
}

// tomlProject represents a shale project as it is encoded in TOML.
type tomlProject struct {
	Name         string `toml:"name"`
	Entry        string `toml:"entry"`
	Output       string `toml:"output,omitempty"`
	Dialect      string `toml:"dialect,omitempty"`
	VerifyLevel  string `toml:"verify-level,omitempty"`
	Optimize     *bool  `toml:"optimize,omitempty"`
	EmitProof    bool   `toml:"emit-proof,omitempty"`
	ShaleVersion string `toml:"shale-version,omitempty"`
}

// Project is a loaded and validated shale project.
type Project struct {
	// The project name.
	Name string

	// The directory enclosing the project file.
	Root string

	// The absolute path to the entry source file.
	EntryPath string

	// The absolute path the emitted script is written to.
	OutputPath string

	// The pipeline configuration derived from the project file.
	Config transpile.Config
}

// Load loads and validates the project file in the given directory.
func Load(dir string) (*Project, error) {
	buff, err := ioutil.ReadFile(filepath.Join(dir, common.ProjectFileName))
	if err != nil {
		return nil, err
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, fmt.Errorf("malformed project file: %s", err)
	}

	if tpf.Project == nil {
		return nil, fmt.Errorf("missing [project] table in %s", common.ProjectFileName)
	}

	tp := tpf.Project

	if tp.Name == "" {
		return nil, fmt.Errorf("missing project name for project at %s", dir)
	}

	if tp.Entry == "" {
		return nil, fmt.Errorf("missing entry source file for project `%s`", tp.Name)
	}

	if err := checkVersion(tp); err != nil {
		return nil, err
	}

	proj := &Project{
		Name:      tp.Name,
		Root:      dir,
		EntryPath: filepath.Join(dir, tp.Entry),
		Config:    transpile.DefaultConfig(),
	}

	if tp.Output != "" {
		proj.OutputPath = filepath.Join(dir, tp.Output)
	} else {
		proj.OutputPath = filepath.Join(dir, tp.Name+".sh")
	}

	if tp.Dialect != "" {
		dialect, ok := common.DialectByName(tp.Dialect)
		if !ok {
			return nil, fmt.Errorf("unknown dialect `%s`", tp.Dialect)
		}

		proj.Config.Dialect = dialect
	}

	if tp.VerifyLevel != "" {
		level, ok := verify.LevelByName(tp.VerifyLevel)
		if !ok {
			return nil, fmt.Errorf("unknown verification level `%s`", tp.VerifyLevel)
		}

		proj.Config.VerifyLevel = level
	}

	if tp.Optimize != nil {
		proj.Config.Optimize = *tp.Optimize
	}

	proj.Config.EmitProof = tp.EmitProof

	return proj, nil
}

// checkVersion checks the project's compiler version constraint, if any,
// against the running compiler.
func checkVersion(tp *tomlProject) error {
	if tp.ShaleVersion == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(tp.ShaleVersion)
	if err != nil {
		return fmt.Errorf("invalid shale-version constraint `%s`: %s", tp.ShaleVersion, err)
	}

	version, err := semver.NewVersion(common.ShaleVersion)
	if err != nil {
		return err
	}

	if !constraint.Check(version) {
		return fmt.Errorf("project `%s` requires shale %s but this is shale %s",
			tp.Name, tp.ShaleVersion, common.ShaleVersion)
	}

	return nil
}
