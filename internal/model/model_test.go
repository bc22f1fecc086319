package model

import (
	"errors"
	"testing"

	jerrors "github.com/sammcj/justsh/internal/errors"
	"github.com/sammcj/justsh/internal/parser"
)

func build(t *testing.T, src string) (*Model, error) {
	t.Helper()
	f, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Build(f.Items)
}

func TestBuildIndexesRecipesAndVariables(t *testing.T) {
	m, err := build(t, "name := \"world\"\n\nbuild: test\n\tgo build ./...\n\ntest:\n\techo ok\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(m.Recipes))
	}
	if m.Recipe("build") == nil || m.Recipe("test") == nil {
		t.Fatal("expected both recipes to be indexed")
	}
	if m.Variable("name") == nil {
		t.Fatal("expected variable 'name' to be indexed")
	}
	if got := m.DefaultRecipe(); got == nil || got.Name != "build" {
		t.Fatalf("expected default recipe 'build', got %v", got)
	}
}

func TestBuildRejectsDuplicateRecipe(t *testing.T) {
	_, err := build(t, "foo:\n\techo one\n\nfoo:\n\techo two\n")
	if !errors.Is(err, jerrors.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestBuildRejectsUnknownDependency(t *testing.T) {
	_, err := build(t, "build: missing\n\techo hi\n")
	if !errors.Is(err, jerrors.ErrUnknownRecipe) {
		t.Fatalf("expected ErrUnknownRecipe, got %v", err)
	}
}

func TestBuildRejectsDependencyCycle(t *testing.T) {
	_, err := build(t, "a: b\n\techo a\n\nb: a\n\techo b\n")
	if !errors.Is(err, jerrors.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestBuildResolvesAliasChain(t *testing.T) {
	m, err := build(t, "alias b := build\nalias bb := b\n\nbuild:\n\techo hi\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Recipe("bb") == nil || m.Recipe("bb").Name != "build" {
		t.Fatalf("expected alias chain to resolve to 'build', got %v", m.Recipe("bb"))
	}
}

func TestBuildRejectsAliasCycle(t *testing.T) {
	_, err := build(t, "alias a := b\nalias b := a\n")
	if !errors.Is(err, jerrors.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestBuildRejectsParamDefaultReferencingLaterParam(t *testing.T) {
	_, err := build(t, "deploy a=b b:\n\techo hi\n")
	if !errors.Is(err, jerrors.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestBuildRejectsVariableRecipeNameCollision(t *testing.T) {
	_, err := build(t, "build := \"x\"\n\nbuild:\n\techo hi\n")
	if !errors.Is(err, jerrors.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}
