// Package model builds the indexed semantic representation of a
// parsed justfile: named lookup tables, resolved alias/dependency
// graphs, and validated settings, consolidating what would otherwise
// be scattered lookup helpers into a single build pass that reports
// every error in the compiler's error taxonomy.
package model

import (
	"github.com/sammcj/justsh/internal/ast"
	jerrors "github.com/sammcj/justsh/internal/errors"
)

// Model is the resolved view of a justfile used by eval and codegen.
type Model struct {
	Variables    []*ast.Assignment // source order
	Recipes      []*ast.Recipe     // source order
	Aliases      []*ast.Alias
	Settings     map[string]*ast.Setting

	recipeByName map[string]*ast.Recipe
	varByName    map[string]*ast.Assignment
	aliasByName  map[string]*ast.Alias
}

// DefaultRecipe returns the recipe dispatch falls back to when no
// recipe is named on the command line: the first recipe in source
// order, after alias resolution does not apply (aliases never shadow
// the first recipe).
func (m *Model) DefaultRecipe() *ast.Recipe {
	if len(m.Recipes) == 0 {
		return nil
	}
	return m.Recipes[0]
}

// Recipe looks up a recipe by name, resolving it through the alias
// table first (following alias -> alias -> ... -> recipe chains).
func (m *Model) Recipe(name string) *ast.Recipe {
	for i := 0; i <= len(m.aliasByName); i++ {
		a, ok := m.aliasByName[name]
		if !ok {
			break
		}
		name = a.Target
	}
	return m.recipeByName[name]
}

// Variable looks up a top-level variable assignment by name.
func (m *Model) Variable(name string) *ast.Assignment {
	return m.varByName[name]
}

// Build indexes items into a Model, resolving aliases and
// dependencies and validating parameter defaults. Attribute and
// setting names are already checked by the parser. It returns the
// first *errors.CompileError encountered.
func Build(items []ast.Item) (*Model, error) {
	m := &Model{
		Settings:     map[string]*ast.Setting{},
		recipeByName: map[string]*ast.Recipe{},
		varByName:    map[string]*ast.Assignment{},
		aliasByName:  map[string]*ast.Alias{},
	}

	for _, item := range items {
		switch it := item.(type) {
		case *ast.Assignment:
			if _, dup := m.varByName[it.Name]; dup {
				return nil, jerrors.New(jerrors.ErrDuplicateName, it.Pos.Line, it.Pos.Column, "variable '"+it.Name+"' is already defined")
			}
			if _, dup := m.recipeByName[it.Name]; dup {
				return nil, jerrors.New(jerrors.ErrDuplicateName, it.Pos.Line, it.Pos.Column, "'"+it.Name+"' is defined as both a variable and a recipe")
			}
			m.varByName[it.Name] = it
			m.Variables = append(m.Variables, it)

		case *ast.Recipe:
			if _, dup := m.recipeByName[it.Name]; dup {
				return nil, jerrors.New(jerrors.ErrDuplicateName, it.Pos.Line, it.Pos.Column, "recipe '"+it.Name+"' is already defined")
			}
			if _, dup := m.varByName[it.Name]; dup {
				return nil, jerrors.New(jerrors.ErrDuplicateName, it.Pos.Line, it.Pos.Column, "'"+it.Name+"' is defined as both a variable and a recipe")
			}
			m.recipeByName[it.Name] = it
			m.Recipes = append(m.Recipes, it)

		case *ast.Alias:
			if _, dup := m.aliasByName[it.Name]; dup {
				return nil, jerrors.New(jerrors.ErrDuplicateName, it.Pos.Line, it.Pos.Column, "alias '"+it.Name+"' is already defined")
			}
			m.aliasByName[it.Name] = it
			m.Aliases = append(m.Aliases, it)

		case *ast.Setting:
			if _, dup := m.Settings[it.Key]; dup {
				return nil, jerrors.New(jerrors.ErrDuplicateName, it.Pos.Line, it.Pos.Column, "setting '"+it.Key+"' is already defined")
			}
			m.Settings[it.Key] = it

		case *ast.Comment:
			// documentation only; nothing to index

		default:
			// unreachable: every ast.Item kind is handled above
		}
	}

	if err := resolveAliases(m); err != nil {
		return nil, err
	}
	if err := resolveDependencies(m); err != nil {
		return nil, err
	}
	if err := validateParams(m); err != nil {
		return nil, err
	}

	return m, nil
}
