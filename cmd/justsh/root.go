// Package main provides the command-line interface for justsh.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sammcj/justsh/internal/codegen"
)

var (
	// Version is set at build time via -ldflags.
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	verbose  bool
	noColor  bool
	outFlag  string
	nameFlag string
)

// rootCmd compiles a justfile into a standalone POSIX shell script.
var rootCmd = &cobra.Command{
	Use:   "justsh [justfile]",
	Short: "Compile a justfile into a standalone POSIX shell script",
	Long: `justsh reads a justfile and emits a single POSIX sh script that
reproduces its recipes, variables, and dependency graph without
requiring just itself to be installed on the target machine.

Examples:
  # Compile ./justfile to ./just.sh
  justsh

  # Compile a specific file to a chosen path
  justsh ./build/justfile --out ./build/run.sh

  # Compile without ANSI color codes in the generated script
  justsh --no-color`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	codegen.Version = Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report the compiled file and its recipe count on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "omit ANSI color codes from the generated script")

	rootCmd.Flags().StringVarP(&outFlag, "out", "o", "", "output path for the generated script (default: ./just.sh)")
	rootCmd.Flags().StringVar(&nameFlag, "outfile-name", "", "override the justfile name recorded in the generated script's banner")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: 2, err: err}
	})

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(validateCmd)
}

func printInfo(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "justsh: "+format+"\n", args...)
}

func printSuccess(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// exitCodeFor maps a returned error to the process exit code: an
// *exitError carries its own code (1 for a parse/compile failure, 2
// for an unknown or malformed flag); any other error, including an
// I/O error or a wrong argument count, exits 1.
func exitCodeFor(err error) int {
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return 1
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func compileError(err error) error {
	return &exitError{code: 1, err: err}
}
