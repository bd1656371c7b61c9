// Package cmd is the top-level "driver" package for the shale transpiler: it
// contains all the functionality for parsing command-line arguments, loading
// project configuration, and running the pipeline over source files.
package cmd

import (
	"fmt"
	"os"

	"shale/common"
	"shale/report"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `shale` application.
func Execute() {
	// Set up the argument parser and all its commands and arguments.
	cli := olive.NewCLI("shale", "shale compiles a restricted deployment language into safe POSIX shell scripts", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "transpile a source file or project to shell", true)
	buildCmd.AddPrimaryArg("path", "the path to the source file or project directory", true)
	buildCmd.AddStringArg("out", "o", "the path to write the emitted script to", false)
	buildCmd.AddStringArg("dialect", "d", "the target shell dialect: posix, dash, or ash", false)
	buildCmd.AddStringArg("level", "l", "the verification level: basic, strict, or paranoid", false)
	buildCmd.AddFlag("no-optimize", "n", "disable the optimizer")
	buildCmd.AddFlag("proof", "p", "write the verification result as a proof artifact alongside the script")
	buildCmd.AddFlag("force", "f", "write the script even when verification fails")

	checkCmd := cli.AddSubcommand("check", "validate a source file without emitting", true)
	checkCmd.AddPrimaryArg("path", "the path to the source file", true)

	cli.AddSubcommand("version", "print the shale version", false)

	// Run the argument parser.
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "usage error: %s\n", err)
		os.Exit(2)
	}

	report.InitReporter(report.LogLevelByName(result.Arguments["loglevel"].(string)))

	// Process the inputed command line.
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult)
	case "check":
		execCheckCommand(subResult)
	case "version":
		fmt.Println("shale " + common.ShaleVersion)
	}
}
