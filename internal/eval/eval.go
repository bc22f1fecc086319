// Package eval lowers AST expressions to POSIX shell fragments:
// literal escaping, concatenation, conditionals, builtin function
// calls, and variable references.
package eval

import (
	"strings"

	"github.com/sammcj/justsh/internal/ast"
	jerrors "github.com/sammcj/justsh/internal/errors"
	"github.com/sammcj/justsh/internal/shellname"
)

// Scope tells Lower which names are in-scope recipe parameters (bound
// to a local shell variable) versus global variables (bound to an
// eager/exported shell variable); anything else is a compile error.
type Scope struct {
	Params    map[string]bool
	Variables map[string]bool
}

// NewScope returns a scope with only global variables visible.
func NewScope(variables map[string]bool) *Scope {
	return &Scope{Params: map[string]bool{}, Variables: variables}
}

// WithParam returns a copy of s with name additionally in scope as a
// recipe parameter.
func (s *Scope) WithParam(name string) *Scope {
	next := &Scope{Params: map[string]bool{}, Variables: s.Variables}
	for k := range s.Params {
		next.Params[k] = true
	}
	next.Params[name] = true
	return next
}

// Lower lowers expr into a complete, self-quoted POSIX shell
// expression suitable for use as an assignment's right-hand side.
func Lower(expr ast.Expr, scope *Scope) (string, error) {
	switch e := expr.(type) {
	case *ast.StringLit:
		return Quote(e.Value), nil

	case *ast.NameRef:
		ref, err := nameRef(e, scope)
		if err != nil {
			return "", err
		}
		return `"` + ref + `"`, nil

	case *ast.Conditional:
		return lowerConditional(e, scope)

	case *ast.Call:
		return lowerCall(e, scope)

	case *ast.Backtick:
		inner, err := lowerSegmentsInner(e.Parts, scope)
		if err != nil {
			return "", err
		}
		return `"$(` + inner + `)"`, nil

	case *ast.Concat, *ast.PathJoin:
		if lit, ok := foldLiteral(e); ok {
			return Quote(lit), nil
		}
		inner, err := innerDouble(e, scope)
		if err != nil {
			return "", err
		}
		return `"` + inner + `"`, nil

	default:
		return "", jerrors.New(jerrors.ErrParse, 0, 0, "unsupported expression node")
	}
}

func nameRef(e *ast.NameRef, scope *Scope) (string, error) {
	if scope.Params[e.Name] {
		return "$" + shellname.Param(e.Name), nil
	}
	if scope.Variables[e.Name] {
		return "${" + shellname.Var(e.Name) + "}", nil
	}
	return "", jerrors.New(jerrors.ErrUndefinedVariable, e.Pos.Line, e.Pos.Column, "undefined variable '"+e.Name+"'")
}

// innerDouble renders e as raw text safe to splice inside an
// already-open double-quoted shell string: name references become
// ${...}/$..., concatenation/path-join recurse without adding their
// own quote layer, and anything else falls back to Lower's quoted
// form with its outer quotes stripped.
func innerDouble(e ast.Expr, scope *Scope) (string, error) {
	switch n := e.(type) {
	case *ast.StringLit:
		return escapeForDoubleQuotes(n.Value), nil
	case *ast.NameRef:
		return nameRef(n, scope)
	case *ast.Concat:
		lhs, err := innerDouble(n.Lhs, scope)
		if err != nil {
			return "", err
		}
		rhs, err := innerDouble(n.Rhs, scope)
		if err != nil {
			return "", err
		}
		return lhs + rhs, nil
	case *ast.PathJoin:
		lhs, err := innerDouble(n.Lhs, scope)
		if err != nil {
			return "", err
		}
		rhs, err := innerDouble(n.Rhs, scope)
		if err != nil {
			return "", err
		}
		return lhs + "/" + rhs, nil
	case *ast.Backtick:
		return lowerSegmentsInner(n.Parts, scope)
	default:
		full, err := Lower(e, scope)
		if err != nil {
			return "", err
		}
		return "$(" + full + ")", nil
	}
}

func lowerConditional(e *ast.Conditional, scope *Scope) (string, error) {
	lhs, err := innerDouble(e.Lhs, scope)
	if err != nil {
		return "", err
	}
	rhs, err := innerDouble(e.Rhs, scope)
	if err != nil {
		return "", err
	}
	thenVal, err := Lower(e.Then, scope)
	if err != nil {
		return "", err
	}
	elseVal, err := Lower(e.Else, scope)
	if err != nil {
		return "", err
	}
	op := "="
	if e.Op == ast.CondNe {
		op = "!="
	}
	return `"$( if [ "` + lhs + `" ` + op + ` "` + rhs + `" ]; then printf %s ` + thenVal + `; else printf %s ` + elseVal + `; fi )"`, nil
}

// foldLiteral returns the compile-time-known value of a Concat or
// PathJoin whose operands are both literal strings, and collapses
// adjacent path separators for PathJoin.
func foldLiteral(e ast.Expr) (string, bool) {
	switch n := e.(type) {
	case *ast.Concat:
		l, okL := literalValue(n.Lhs)
		r, okR := literalValue(n.Rhs)
		if okL && okR {
			return l + r, true
		}
	case *ast.PathJoin:
		l, okL := literalValue(n.Lhs)
		r, okR := literalValue(n.Rhs)
		if okL && okR {
			return strings.TrimRight(l, "/") + "/" + strings.TrimLeft(r, "/"), true
		}
	}
	return "", false
}

func literalValue(e ast.Expr) (string, bool) {
	if s, ok := e.(*ast.StringLit); ok {
		return s.Value, true
	}
	return "", false
}

func escapeForDoubleQuotes(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", "\\$", "`", "\\`")
	return r.Replace(s)
}

// LowerBodySegments lowers a recipe body line's literal/interpolation
// segments into one shell source fragment, embedded unquoted directly
// in the emitted script (the literal text is shell source, not data).
func LowerBodySegments(segs []ast.Segment, scope *Scope) (string, error) {
	var b strings.Builder
	for _, seg := range segs {
		if seg.Expr != nil {
			v, err := Lower(seg.Expr, scope)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
			continue
		}
		b.WriteString(seg.Literal)
	}
	return b.String(), nil
}

// RenderDisplay lowers segs into text safe to splice inside an
// already-open double-quoted string, for echoing a body line's
// resolved form before it runs (codegen's emitDisplay decides when
// the echo is shown).
func RenderDisplay(segs []ast.Segment, scope *Scope) (string, error) {
	return lowerSegmentsInner(segs, scope)
}

func lowerSegmentsInner(segs []ast.Segment, scope *Scope) (string, error) {
	var b strings.Builder
	for _, seg := range segs {
		if seg.Expr != nil {
			v, err := innerDouble(seg.Expr, scope)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
			continue
		}
		b.WriteString(escapeForDoubleQuotes(seg.Literal))
	}
	return b.String(), nil
}
