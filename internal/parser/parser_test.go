package parser

import (
	"testing"

	"github.com/sammcj/justsh/internal/ast"
)

func TestParseSimpleRecipe(t *testing.T) {
	input := "# Build the project\nbuild:\n\tgo build ./...\n"

	f, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var recipes []*ast.Recipe
	for _, it := range f.Items {
		if r, ok := it.(*ast.Recipe); ok {
			recipes = append(recipes, r)
		}
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}

	r := recipes[0]
	assertEqual(t, "name", r.Name, "build")
	assertEqual(t, "doc", r.Doc, "Build the project")
	if len(r.Body) != 1 {
		t.Fatalf("expected 1 body line, got %d", len(r.Body))
	}
	assertEqual(t, "body literal", r.Body[0].Segments[0].Literal, "go build ./...")
}

func TestParseVariableAssignment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		export   bool
	}{
		{name: "simple string", input: `greeting := "hello"`, wantName: "greeting"},
		{name: "export variable", input: `export PATH := "/usr/bin"`, wantName: "PATH", export: true},
		{name: "private variable", input: `_secret := "x"`, wantName: "_secret"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Parse(tc.input + "\n")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(f.Items) != 1 {
				t.Fatalf("expected 1 item, got %d", len(f.Items))
			}
			a, ok := f.Items[0].(*ast.Assignment)
			if !ok {
				t.Fatalf("expected *ast.Assignment, got %T", f.Items[0])
			}
			assertEqual(t, "name", a.Name, tc.wantName)
			assertEqual(t, "exported", a.Exported, tc.export)
		})
	}
}

func TestParseRecipeWithParamsAndDeps(t *testing.T) {
	input := "deploy target env=\"dev\" +flags: build test\n\techo deploying\n"

	f, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := f.Items[0].(*ast.Recipe)
	assertEqual(t, "name", r.Name, "deploy")
	if len(r.Params) != 3 {
		t.Fatalf("expected 3 params, got %d", len(r.Params))
	}
	assertEqual(t, "param 0", r.Params[0].Name, "target")
	assertEqual(t, "param 1", r.Params[1].Name, "env")
	assertEqual(t, "param 2 variadic", r.Params[2].Variadic, "+")
	if len(r.Dependencies) != 2 {
		t.Fatalf("expected 2 deps, got %d", len(r.Dependencies))
	}
	assertEqual(t, "dep 0", r.Dependencies[0], "build")
	assertEqual(t, "dep 1", r.Dependencies[1], "test")
}

func TestParseAlias(t *testing.T) {
	f, err := Parse("alias b := build\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := f.Items[0].(*ast.Alias)
	assertEqual(t, "name", a.Name, "b")
	assertEqual(t, "target", a.Target, "build")
}

func TestParseSetting(t *testing.T) {
	f, err := Parse("set shell := [\"bash\", \"-c\"]\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := f.Items[0].(*ast.Setting)
	assertEqual(t, "key", s.Key, "shell")
	assertEqual(t, "has value", s.HasValue, true)
}

func TestParseBodyLinePrefixes(t *testing.T) {
	input := "run:\n\t@echo silent\n\t-echo ignored\n"
	f, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := f.Items[0].(*ast.Recipe)
	if len(r.Body) != 2 {
		t.Fatalf("expected 2 body lines, got %d", len(r.Body))
	}
	assertEqual(t, "silent", r.Body[0].Silent, true)
	assertEqual(t, "ignore error", r.Body[1].IgnoreError, true)
}

func TestParseAttributes(t *testing.T) {
	input := "[private]\n[no-cd]\n_hidden:\n\techo hi\n"
	f, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := f.Items[0].(*ast.Recipe)
	if !r.HasAttribute("private") || !r.HasAttribute("no-cd") {
		t.Fatalf("expected both attributes, got %v", r.Attributes)
	}
}

func TestParseUnknownAttributeErrors(t *testing.T) {
	_, err := Parse("[bogus]\nfoo:\n\techo hi\n")
	if err == nil {
		t.Fatal("expected an error for unknown attribute")
	}
}

func assertEqual[T comparable](t *testing.T, label string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", label, got, want)
	}
}

func TestParseImportIsUnsupported(t *testing.T) {
	_, err := Parse("import \"other.just\"\n")
	if err == nil {
		t.Fatal("expected an error for import")
	}
}

func TestParseConfirmAttributeIsUnsupported(t *testing.T) {
	_, err := Parse("[confirm]\nfoo:\n\techo hi\n")
	if err == nil {
		t.Fatal("expected an error for [confirm]")
	}
}

func TestParsePlatformAttributes(t *testing.T) {
	input := "[linux]\n[macos]\nbuild:\n\techo hi\n"
	f, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := f.Items[0].(*ast.Recipe)
	if !r.HasAttribute("linux") || !r.HasAttribute("macos") {
		t.Fatalf("expected both platform attributes, got %v", r.Attributes)
	}
}
