package parser

import (
	"strings"

	"github.com/sammcj/justsh/internal/ast"
)

// parseInterpSegments splits text on `{{ expr }}` holes into a
// Literal/Expr segment list. line/col anchor diagnostics for any
// expression found inside a hole.
func parseInterpSegments(text string, line, col int) ([]ast.Segment, error) {
	var segs []ast.Segment
	rest := text
	offset := col

	for {
		idx := strings.Index(rest, "{{")
		if idx < 0 {
			if rest != "" {
				segs = append(segs, ast.Segment{Literal: rest})
			}
			return segs, nil
		}
		if idx > 0 {
			segs = append(segs, ast.Segment{Literal: rest[:idx]})
		}
		afterOpen := rest[idx+2:]
		end := strings.Index(afterOpen, "}}")
		if end < 0 {
			// No closing delimiter: treat the rest as literal text,
			// matching the reference tool's tolerant behavior for a
			// stray "{{" with no matching close.
			segs = append(segs, ast.Segment{Literal: rest[idx:]})
			return segs, nil
		}
		exprSrc := strings.TrimSpace(afterOpen[:end])
		exprCol := offset + idx + 2
		e, err := parseExprString(exprSrc, line, exprCol)
		if err != nil {
			return nil, err
		}
		segs = append(segs, ast.Segment{Expr: e})

		consumed := idx + 2 + end + 2
		rest = rest[consumed:]
		offset += consumed
	}
}
