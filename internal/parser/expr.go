package parser

import (
	"github.com/sammcj/justsh/internal/ast"
	jerrors "github.com/sammcj/justsh/internal/errors"
	"github.com/sammcj/justsh/internal/lexer"
)

// exprParser parses one expression out of a token slice already
// produced by lexer.TokenizeExpr.
type exprParser struct {
	toks []lexer.Token
	pos  int
}

func parseExprString(s string, line, col int) (ast.Expr, error) {
	toks, err := lexer.TokenizeExpr(s, line, col)
	if err != nil {
		return nil, err
	}
	ep := &exprParser{toks: toks}
	e, err := ep.parseExpr()
	if err != nil {
		return nil, err
	}
	if ep.cur().Kind != lexer.EOF {
		t := ep.cur()
		return nil, jerrors.New(jerrors.ErrParse, t.Line, t.Column, "unexpected trailing token: "+t.Value)
	}
	return e, nil
}

func (ep *exprParser) cur() lexer.Token {
	if ep.pos >= len(ep.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return ep.toks[ep.pos]
}

func (ep *exprParser) advance() lexer.Token {
	t := ep.cur()
	if ep.pos < len(ep.toks) {
		ep.pos++
	}
	return t
}

func (ep *exprParser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	t := ep.cur()
	if t.Kind != k {
		return t, jerrors.New(jerrors.ErrParse, t.Line, t.Column, "expected "+what+", found '"+t.Value+"'")
	}
	return ep.advance(), nil
}

// parseExpr := additive
func (ep *exprParser) parseExpr() (ast.Expr, error) {
	return ep.parseAdditive()
}

// parseAdditive := unary (('+' | '/') unary)*
func (ep *exprParser) parseAdditive() (ast.Expr, error) {
	lhs, err := ep.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch ep.cur().Kind {
		case lexer.Plus:
			pos := ep.advance()
			rhs, err := ep.parseUnary()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Concat{Pos: posFrom(pos), Lhs: lhs, Rhs: rhs}
		case lexer.Slash:
			pos := ep.advance()
			rhs, err := ep.parseUnary()
			if err != nil {
				return nil, err
			}
			lhs = &ast.PathJoin{Pos: posFrom(pos), Lhs: lhs, Rhs: rhs}
		default:
			return lhs, nil
		}
	}
}

func posFrom(t lexer.Token) ast.Pos { return ast.Pos{Line: t.Line, Column: t.Column} }

// parseUnary := primary
func (ep *exprParser) parseUnary() (ast.Expr, error) {
	t := ep.cur()
	switch t.Kind {
	case lexer.String:
		ep.advance()
		return &ast.StringLit{Pos: posFrom(t), Value: t.Value}, nil
	case lexer.Backtick:
		ep.advance()
		segs, err := parseInterpSegments(t.Value, t.Line, t.Column)
		if err != nil {
			return nil, err
		}
		return &ast.Backtick{Pos: posFrom(t), Parts: segs}, nil
	case lexer.KwIf:
		return ep.parseConditional()
	case lexer.Ident:
		ep.advance()
		if ep.cur().Kind == lexer.LParen {
			return ep.parseCall(t)
		}
		return &ast.NameRef{Pos: posFrom(t), Name: t.Value}, nil
	case lexer.LParen:
		ep.advance()
		e, err := ep.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := ep.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, jerrors.New(jerrors.ErrParse, t.Line, t.Column, "expected an expression, found '"+t.Value+"'")
	}
}

func (ep *exprParser) parseCall(name lexer.Token) (ast.Expr, error) {
	if _, err := ep.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if ep.cur().Kind != lexer.RParen {
		for {
			a, err := ep.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if ep.cur().Kind == lexer.Comma {
				ep.advance()
				continue
			}
			break
		}
	}
	if _, err := ep.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	return &ast.Call{Pos: posFrom(name), Name: name.Value, Args: args}, nil
}

// parseConditional := 'if' expr ('==' | '!=') expr '{' expr '}' 'else' ( '{' expr '}' | conditional )
func (ep *exprParser) parseConditional() (ast.Expr, error) {
	kw, err := ep.expect(lexer.KwIf, "'if'")
	if err != nil {
		return nil, err
	}
	lhs, err := ep.parseExpr()
	if err != nil {
		return nil, err
	}
	var op ast.CondOp
	switch ep.cur().Kind {
	case lexer.Eq:
		op = ast.CondEq
		ep.advance()
	case lexer.Ne:
		op = ast.CondNe
		ep.advance()
	default:
		t := ep.cur()
		return nil, jerrors.New(jerrors.ErrParse, t.Line, t.Column, "expected '==' or '!=' in conditional")
	}
	rhs, err := ep.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := ep.expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}
	thenExpr, err := ep.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := ep.expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}
	if _, err := ep.expect(lexer.KwElse, "'else'"); err != nil {
		return nil, err
	}

	var elseExpr ast.Expr
	if ep.cur().Kind == lexer.KwIf {
		elseExpr, err = ep.parseConditional()
		if err != nil {
			return nil, err
		}
	} else {
		if _, err := ep.expect(lexer.LBrace, "'{'"); err != nil {
			return nil, err
		}
		elseExpr, err = ep.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := ep.expect(lexer.RBrace, "'}'"); err != nil {
			return nil, err
		}
	}

	return &ast.Conditional{Pos: posFrom(kw), Lhs: lhs, Rhs: rhs, Op: op, Then: thenExpr, Else: elseExpr}, nil
}
