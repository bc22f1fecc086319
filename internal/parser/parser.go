// Package parser implements a recursive-descent parser over the
// lexer's token stream, producing an internal/ast tree. The shape
// mirrors aledsdavies-devcmd's parser: a flat token slice, a position
// cursor, and one parse* method per grammar production, fixed up for
// this grammar's line-sensitive recipe bodies.
package parser

import (
	"strings"

	"github.com/sammcj/justsh/internal/ast"
	jerrors "github.com/sammcj/justsh/internal/errors"
	"github.com/sammcj/justsh/internal/lexer"
)

// File is the parsed justfile: a flat, source-ordered item list.
type File struct {
	Items []ast.Item
}

// Parse tokenizes and parses justfile source text into a File, or
// returns the first *errors.CompileError encountered.
func Parse(src string) (*File, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks, src: src}
	return p.parseFile()
}

type parser struct {
	toks []lexer.Token
	pos  int
	src  string

	pendingDoc    string
	pendingAttrs  []ast.Attribute
}

func (p *parser) parseFile() (*File, error) {
	f := &File{}

	for p.pos < len(p.toks) {
		tok := p.toks[p.pos]

		if tok.Kind == lexer.Indent {
			// Stray body line with no preceding recipe header: error.
			return nil, jerrors.New(jerrors.ErrParse, tok.Line, 1, "unexpected indented line outside of a recipe body")
		}

		// tok.Kind == Newline always at top level; Value holds the
		// trimmed line text, or "" for a blank line.
		p.pos++
		line := tok.Value
		lineNo := tok.Line
		col := tok.Column
		if col == 0 {
			col = 1
		}

		if line == "" {
			p.pendingDoc = ""
			continue
		}

		item, err := p.parseLine(line, lineNo, col)
		if err != nil {
			return nil, err
		}
		if item != nil {
			f.Items = append(f.Items, item)
		}
	}

	return f, nil
}

func (p *parser) parseLine(line string, lineNo, col int) (ast.Item, error) {
	switch {
	case strings.HasPrefix(line, "#"):
		text := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		p.pendingDoc = text
		return &ast.Comment{Pos: ast.Pos{Line: lineNo, Column: col}, Text: text}, nil

	case strings.HasPrefix(line, "["):
		attr, err := p.parseAttributeLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		p.pendingAttrs = append(p.pendingAttrs, attr...)
		return nil, nil

	case line == "import" || strings.HasPrefix(line, "import "):
		return nil, jerrors.New(jerrors.ErrUnsupportedFeature, lineNo, col, "import is not supported")

	case strings.HasPrefix(line, "alias "):
		item, err := p.parseAlias(line, lineNo, col)
		p.pendingDoc = ""
		return item, err

	case strings.HasPrefix(line, "set "):
		item, err := p.parseSetting(line, lineNo, col)
		p.pendingDoc = ""
		return item, err

	case isAssignment(line):
		item, err := p.parseAssignment(line, lineNo, col)
		p.pendingDoc = ""
		return item, err

	default:
		item, err := p.parseRecipeHeader(line, lineNo, col)
		doc := p.pendingDoc
		attrs := p.pendingAttrs
		p.pendingDoc = ""
		p.pendingAttrs = nil
		if err != nil {
			return nil, err
		}
		item.Doc = doc
		item.Attributes = attrs
		if err := p.parseRecipeBody(item); err != nil {
			return nil, err
		}
		return item, nil
	}
}

// isAssignment reports whether line is `[export] name := expr`,
// distinguishing it from a recipe header (which uses a bare `:`, never
// `:=`, before any dependency list).
func isAssignment(line string) bool {
	rest := line
	if after, ok := strings.CutPrefix(rest, "export "); ok {
		rest = strings.TrimSpace(after)
	}
	idx := strings.Index(rest, ":=")
	if idx < 0 {
		return false
	}
	name := strings.TrimSpace(rest[:idx])
	return isValidIdent(name)
}

func isValidIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-' || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}
