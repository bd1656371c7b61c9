package cmd

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"shale/common"
	"shale/project"
	"shale/report"
	"shale/transpile"
	"shale/verify"

	"github.com/ComedicChimera/olive"
)

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult) {
	relPath, _ := result.PrimaryArg()

	absPath, err := filepath.Abs(relPath)
	if err != nil {
		report.ReportFatal("invalid path: %s", relPath)
	}

	finfo, err := os.Stat(absPath)
	if err != nil {
		report.ReportFatal("cannot open %s: %s", relPath, err)
	}

	// A directory argument names a project; a file argument is transpiled
	// with the default configuration.
	srcPath := absPath
	outPath := ""
	cfg := transpile.DefaultConfig()

	if finfo.IsDir() {
		proj, err := project.Load(absPath)
		if err != nil {
			report.ReportFatal("project error: %s", err)
		}

		srcPath = proj.EntryPath
		outPath = proj.OutputPath
		cfg = proj.Config
	}

	// Command-line arguments override project settings.
	if value, ok := result.Arguments["out"]; ok {
		outPath = value.(string)
	}

	if value, ok := result.Arguments["dialect"]; ok {
		dialect, ok := common.DialectByName(value.(string))
		if !ok {
			report.ReportFatal("unknown dialect `%s`", value)
		}

		cfg.Dialect = dialect
	}

	if value, ok := result.Arguments["level"]; ok {
		level, ok := verify.LevelByName(value.(string))
		if !ok {
			report.ReportFatal("unknown verification level `%s`", value)
		}

		cfg.VerifyLevel = level
	}

	if result.HasFlag("no-optimize") {
		cfg.Optimize = false
	}

	if result.HasFlag("proof") {
		cfg.EmitProof = true
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(srcPath, common.SourceExt) + ".sh"
	}

	// Run the pipeline.
	buff, err := ioutil.ReadFile(srcPath)
	if err != nil {
		report.ReportFatal("cannot read %s: %s", srcPath, err)
	}

	source := string(buff)

	res, err := transpile.Transpile(source, cfg)
	if err != nil {
		report.ReportError(srcPath, source, err)
		os.Exit(1)
	}

	displayFindings(srcPath, source, res.Verification)

	if !res.Verification.Pass() && !result.HasFlag("force") {
		report.ReportFatal("verification failed at level %s with %d violation(s)",
			res.Verification.Level, len(res.Verification.Violations))
	}

	if err := ioutil.WriteFile(outPath, []byte(res.Script), 0755); err != nil {
		report.ReportFatal("cannot write %s: %s", outPath, err)
	}

	if cfg.EmitProof {
		if err := writeProof(outPath, res.Verification); err != nil {
			report.ReportFatal("cannot write proof artifact: %s", err)
		}
	}

	report.ReportSuccess("wrote %s (effects: %s)", outPath, res.Effects)
}

// displayFindings displays the warnings and violations of a verification run.
func displayFindings(srcPath, source string, result *verify.Result) {
	for _, warning := range result.Warnings {
		report.ReportWarning(srcPath, warning.Span, warning.Error())
	}

	for _, violation := range result.Violations {
		report.ReportError(srcPath, source, violation)
	}
}

// writeProof serializes the verification result next to the emitted script.
func writeProof(outPath string, result *verify.Result) error {
	artifact, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	return ioutil.WriteFile(outPath+".proof.json", append(artifact, '\n'), 0644)
}

// execCheckCommand executes the check subcommand: validation and lowering
// only, for fast feedback without emission.
func execCheckCommand(result *olive.ArgParseResult) {
	relPath, _ := result.PrimaryArg()

	absPath, err := filepath.Abs(relPath)
	if err != nil {
		report.ReportFatal("invalid path: %s", relPath)
	}

	buff, err := ioutil.ReadFile(absPath)
	if err != nil {
		report.ReportFatal("cannot read %s: %s", relPath, err)
	}

	source := string(buff)

	if err := transpile.Check(source); err != nil {
		report.ReportError(absPath, source, err)
		os.Exit(1)
	}

	report.ReportSuccess("%s: ok", relPath)
}
