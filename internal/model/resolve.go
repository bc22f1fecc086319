package model

import (
	"github.com/sammcj/justsh/internal/ast"
	jerrors "github.com/sammcj/justsh/internal/errors"
)

// resolveAliases checks every alias target exists and that alias
// chains (alias -> alias -> ... -> recipe) contain no cycle and
// terminate at a real recipe.
func resolveAliases(m *Model) error {
	for _, a := range m.Aliases {
		seen := map[string]bool{a.Name: true}
		target := a.Target
		for {
			if next, ok := m.aliasByName[target]; ok {
				if seen[target] {
					return jerrors.New(jerrors.ErrCycle, a.Pos.Line, a.Pos.Column, "alias cycle involving '"+a.Name+"'")
				}
				seen[target] = true
				target = next.Target
				continue
			}
			break
		}
		if _, ok := m.recipeByName[target]; !ok {
			return jerrors.New(jerrors.ErrUnknownRecipe, a.Pos.Line, a.Pos.Column, "alias '"+a.Name+"' targets unknown recipe '"+a.Target+"'")
		}
	}
	return nil
}

// resolveDependencies checks every recipe's dependency list names an
// existing recipe (after alias resolution) and that the dependency
// graph is acyclic.
func resolveDependencies(m *Model) error {
	for _, r := range m.Recipes {
		for _, dep := range r.Dependencies {
			if m.Recipe(dep) == nil {
				return jerrors.New(jerrors.ErrUnknownRecipe, r.Pos.Line, r.Pos.Column, "recipe '"+r.Name+"' depends on unknown recipe '"+dep+"'")
			}
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}

	var visit func(r *ast.Recipe) error
	visit = func(r *ast.Recipe) error {
		color[r.Name] = gray
		for _, dep := range r.Dependencies {
			depRecipe := m.Recipe(dep)
			switch color[depRecipe.Name] {
			case white:
				if err := visit(depRecipe); err != nil {
					return err
				}
			case gray:
				return jerrors.New(jerrors.ErrCycle, r.Pos.Line, r.Pos.Column, "dependency cycle involving '"+r.Name+"'")
			}
		}
		color[r.Name] = black
		return nil
	}

	for _, r := range m.Recipes {
		if color[r.Name] == white {
			if err := visit(r); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateParams checks that default expressions only reference
// earlier parameters in the same recipe's signature, never a later
// one.
func validateParams(m *Model) error {
	for _, r := range m.Recipes {
		inScope := map[string]bool{}
		for _, p := range r.Params {
			if p.Default != nil {
				if err := checkRefsInScope(p.Default, inScope, r); err != nil {
					return err
				}
			}
			inScope[p.Name] = true
		}
	}
	return nil
}

func checkRefsInScope(e ast.Expr, inScope map[string]bool, r *ast.Recipe) error {
	switch n := e.(type) {
	case *ast.NameRef:
		isParam := false
		for _, p := range r.Params {
			if p.Name == n.Name {
				isParam = true
				break
			}
		}
		if isParam && !inScope[n.Name] {
			return jerrors.New(jerrors.ErrInvalidParameter, n.Pos.Line, n.Pos.Column, "default value references later parameter '"+n.Name+"' in '"+r.Name+"'")
		}
	case *ast.Concat:
		if err := checkRefsInScope(n.Lhs, inScope, r); err != nil {
			return err
		}
		return checkRefsInScope(n.Rhs, inScope, r)
	case *ast.PathJoin:
		if err := checkRefsInScope(n.Lhs, inScope, r); err != nil {
			return err
		}
		return checkRefsInScope(n.Rhs, inScope, r)
	case *ast.Conditional:
		for _, sub := range []ast.Expr{n.Lhs, n.Rhs, n.Then, n.Else} {
			if err := checkRefsInScope(sub, inScope, r); err != nil {
				return err
			}
		}
	case *ast.Call:
		for _, a := range n.Args {
			if err := checkRefsInScope(a, inScope, r); err != nil {
				return err
			}
		}
	}
	return nil
}
