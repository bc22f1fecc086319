package parser

import (
	"strings"

	"github.com/sammcj/justsh/internal/ast"
	jerrors "github.com/sammcj/justsh/internal/errors"
)

// knownAttributes is the closed set of recognised recipe attributes.
var knownAttributes = map[string]bool{
	"private":          true,
	"no-cd":            true,
	"no-exit-message":  true,
	"linewise":         true,
	"windows":          true,
	"unix":             true,
	"macos":            true,
	"linux":            true,
	"confirm":          true,
}

// parseAttributeLine parses a `[attr, attr(arg)]` bracket line. Multiple
// bracket groups are allowed stacked on consecutive lines; this parses
// just the one line given.
func (p *parser) parseAttributeLine(line string, lineNo int) ([]ast.Attribute, error) {
	inner := strings.TrimSpace(line)
	if !strings.HasPrefix(inner, "[") || !strings.HasSuffix(inner, "]") {
		return nil, jerrors.New(jerrors.ErrParse, lineNo, 1, "malformed attribute line: "+line)
	}
	inner = inner[1 : len(inner)-1]

	var attrs []ast.Attribute
	for _, part := range splitTopLevelComma(inner) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := part
		var args []string
		if idx := strings.Index(part, "("); idx >= 0 && strings.HasSuffix(part, ")") {
			name = strings.TrimSpace(part[:idx])
			argStr := part[idx+1 : len(part)-1]
			for _, a := range splitTopLevelComma(argStr) {
				a = strings.TrimSpace(a)
				a = strings.Trim(a, `"'`)
				if a != "" {
					args = append(args, a)
				}
			}
		}
		if !knownAttributes[name] {
			return nil, jerrors.New(jerrors.ErrUnknownAttribute, lineNo, 1, "unknown attribute: "+name)
		}
		if name == "confirm" {
			return nil, jerrors.New(jerrors.ErrUnsupportedFeature, lineNo, 1, "[confirm] is not supported")
		}
		attrs = append(attrs, ast.Attribute{Pos: ast.Pos{Line: lineNo, Column: 1}, Name: name, Args: args})
	}
	return attrs, nil
}

// splitTopLevelComma splits on commas that are not nested inside
// parentheses.
func splitTopLevelComma(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
