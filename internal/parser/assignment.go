package parser

import (
	"strings"

	"github.com/sammcj/justsh/internal/ast"
	jerrors "github.com/sammcj/justsh/internal/errors"
)

// parseAssignment parses `[export] name := expr`.
func (p *parser) parseAssignment(line string, lineNo, col int) (*ast.Assignment, error) {
	rest := line
	exported := false
	offset := col
	if after, ok := strings.CutPrefix(rest, "export "); ok {
		exported = true
		rest = strings.TrimLeft(after, " \t")
		offset += len(line) - len(rest)
	}

	idx := strings.Index(rest, ":=")
	if idx < 0 {
		return nil, jerrors.New(jerrors.ErrParse, lineNo, offset, "malformed assignment: "+line)
	}
	name := strings.TrimSpace(rest[:idx])
	exprSrc := strings.TrimSpace(rest[idx+2:])
	exprCol := offset + idx + 2 + (len(rest[idx+2:]) - len(strings.TrimLeft(rest[idx+2:], " \t")))

	expr, err := parseExprString(exprSrc, lineNo, exprCol)
	if err != nil {
		return nil, err
	}

	return &ast.Assignment{
		Pos:      ast.Pos{Line: lineNo, Column: offset},
		Name:     name,
		Expr:     expr,
		Exported: exported,
		Private:  strings.HasPrefix(name, "_"),
	}, nil
}
