package parser

import (
	"strings"

	"github.com/sammcj/justsh/internal/ast"
	jerrors "github.com/sammcj/justsh/internal/errors"
	"github.com/sammcj/justsh/internal/lexer"
)

// parseRecipeHeader parses `name param1 param2="default" *variadic: dep1 dep2`.
func (p *parser) parseRecipeHeader(line string, lineNo, col int) (*ast.Recipe, error) {
	toks, err := lexer.TokenizeExpr(line, lineNo, col)
	if err != nil {
		return nil, err
	}
	rp := &exprParser{toks: toks}

	nameTok, err := rp.expect(lexer.Ident, "a recipe name")
	if err != nil {
		return nil, err
	}

	recipe := &ast.Recipe{Pos: posFrom(nameTok), Name: nameTok.Value}

	var sawVariadic bool
	for rp.cur().Kind != lexer.Colon {
		if rp.cur().Kind == lexer.EOF {
			t := rp.cur()
			return nil, jerrors.New(jerrors.ErrParse, t.Line, t.Column, "expected ':' to end recipe header '"+recipe.Name+"'")
		}
		param, err := parseParam(rp)
		if err != nil {
			return nil, err
		}
		if sawVariadic {
			return nil, jerrors.New(jerrors.ErrInvalidParameter, param.Pos.Line, param.Pos.Column, "parameter after variadic parameter in '"+recipe.Name+"'")
		}
		if param.Variadic != "" {
			sawVariadic = true
		}
		recipe.Params = append(recipe.Params, param)
	}

	if _, err := rp.expect(lexer.Colon, "':'"); err != nil {
		return nil, err
	}

	for rp.cur().Kind == lexer.Ident {
		dep := rp.advance()
		recipe.Dependencies = append(recipe.Dependencies, dep.Value)
	}
	if rp.cur().Kind != lexer.EOF {
		t := rp.cur()
		return nil, jerrors.New(jerrors.ErrParse, t.Line, t.Column, "unexpected token in dependency list: '"+t.Value+"'")
	}

	if err := validateParamNames(recipe); err != nil {
		return nil, err
	}

	return recipe, nil
}

func validateParamNames(r *ast.Recipe) error {
	seen := map[string]bool{}
	for _, p := range r.Params {
		if seen[p.Name] {
			return jerrors.New(jerrors.ErrInvalidParameter, p.Pos.Line, p.Pos.Column, "duplicate parameter name '"+p.Name+"' in '"+r.Name+"'")
		}
		seen[p.Name] = true
	}
	return nil
}

// parseParam parses one parameter token group: optional '$', optional
// '*'/'+' variadic marker, the name, and an optional '=' default
// expression.
func parseParam(rp *exprParser) (ast.Param, error) {
	var p ast.Param
	start := rp.cur()
	p.Pos = posFrom(start)

	if rp.cur().Kind == lexer.Dollar {
		rp.advance()
		p.Export = true
	}
	switch rp.cur().Kind {
	case lexer.Star:
		p.Variadic = "*"
		rp.advance()
	case lexer.Plus:
		p.Variadic = "+"
		rp.advance()
	}

	nameTok, err := rp.expect(lexer.Ident, "a parameter name")
	if err != nil {
		return p, err
	}
	p.Name = nameTok.Value

	if rp.cur().Kind == lexer.Assign {
		rp.advance()
		defExpr, err := rp.parseUnary()
		if err != nil {
			return p, err
		}
		p.Default = defExpr
	}

	return p, nil
}

// parseRecipeBody consumes the Indent tokens immediately following the
// header into recipe.Body.
func (p *parser) parseRecipeBody(recipe *ast.Recipe) error {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind == lexer.Indent {
		tok := p.toks[p.pos]
		p.pos++

		raw := tok.Value
		bl := ast.BodyLine{Pos: ast.Pos{Line: tok.Line, Column: 1}}

		text := raw
		for len(text) > 0 {
			switch text[0] {
			case '@':
				bl.Silent = true
				text = text[1:]
				continue
			case '-':
				bl.IgnoreError = true
				text = text[1:]
				continue
			case '+':
				bl.Elevated = true
				text = text[1:]
				continue
			}
			break
		}

		if strings.HasPrefix(text, "#!") {
			bl.Shebang = true
		}

		if strings.HasSuffix(text, "\\") && !bl.Shebang {
			bl.Continuation = true
			text = text[:len(text)-1]
		}

		segs, err := parseInterpSegments(text, tok.Line, 1)
		if err != nil {
			return err
		}
		bl.Segments = segs

		recipe.Body = append(recipe.Body, bl)
	}
	return nil
}
