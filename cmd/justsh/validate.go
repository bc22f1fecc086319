package main

import (
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [justfile]",
	Short: "Parse and validate a justfile without generating a script",
	Long: `validate runs the parser and semantic model builder against a
justfile and reports any syntax error, duplicate name, alias or
dependency cycle, or unknown attribute/setting it finds, without
writing a generated script.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := "justfile"
	if len(args) > 0 {
		path = args[0]
	} else if p, ok := findJustfile("."); ok {
		path = p
	}

	src, err := os.ReadFile(path)
	if err != nil {
		printError("reading %s: %v", path, err)
		return err
	}

	m, err := compileSource(path, string(src))
	if err != nil {
		printError("%s", err)
		return compileError(err)
	}

	printSuccess("%s is valid: %d recipe(s), %d variable(s), %d alias(es)", path, len(m.Recipes), len(m.Variables), len(m.Aliases))
	return nil
}
