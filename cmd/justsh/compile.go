package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sammcj/justsh/internal/codegen"
	"github.com/sammcj/justsh/internal/config"
	"github.com/sammcj/justsh/internal/model"
	"github.com/sammcj/justsh/internal/parser"
)

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		printError("loading config: %v", err)
		return err
	}

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

	name := nameFlag
	if name == "" {
		name = filepath.Base(path)
	}
	out, err := codegen.Emit(m, codegen.Options{
		SourceName: name,
		SourceText: string(src),
		NoColor:    noColor || cfg.Output.NoColor,
	})
	if err != nil {
		printError("%s", err)
		return compileError(err)
	}

	outPath := outFlag
	if outPath == "" {
		if cfg.Output.Dir != "" {
			outPath = filepath.Join(cfg.Output.Dir, "just.sh")
		} else {
			outPath = "just.sh"
		}
	}
	if err := os.WriteFile(outPath, []byte(out), 0o755); err != nil {
		printError("writing %s: %v", outPath, err)
		return err
	}

	printInfo("compiled %s -> %s (%d recipes)", path, outPath, len(m.Recipes))
	return nil
}

// compileSource runs the parse and semantic-model passes shared by
// compile and validate.
func compileSource(path, src string) (*model.Model, error) {
	f, err := parser.Parse(src)
	if err != nil {
		return nil, annotate(path, err)
	}

	m, err := model.Build(f.Items)
	if err != nil {
		return nil, annotate(path, err)
	}

	return m, nil
}

func annotate(path string, err error) error {
	return fmt.Errorf("%s: %w", path, err)
}

// findJustfile walks up from dir looking for a file named "justfile",
// "Justfile" or ".justfile", searching parent directories as well.
func findJustfile(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range []string{"justfile", "Justfile", ".justfile"} {
			p := filepath.Join(abs, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, true
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}
