package parser

import (
	"strings"

	"github.com/sammcj/justsh/internal/ast"
	jerrors "github.com/sammcj/justsh/internal/errors"
)

// knownSettings is the closed set of recognised `set` directives.
var knownSettings = map[string]bool{
	"export":                  true,
	"positional-arguments":    true,
	"allow-duplicate-recipes": true,
	"dotenv-load":             true,
	"dotenv-filename":         true,
	"dotenv-path":             true,
	"fallback":                true,
	"ignore-comments":         true,
	"shell":                   true,
	"tempdir":                 true,
	"windows-powershell":      true,
	"windows-shell":           true,
}

// parseAlias parses `alias name := target`.
func (p *parser) parseAlias(line string, lineNo, col int) (*ast.Alias, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "alias"))
	idx := strings.Index(rest, ":=")
	if idx < 0 {
		return nil, jerrors.New(jerrors.ErrParse, lineNo, col, "malformed alias: "+line)
	}
	name := strings.TrimSpace(rest[:idx])
	target := strings.TrimSpace(rest[idx+2:])
	if name == "" || target == "" {
		return nil, jerrors.New(jerrors.ErrParse, lineNo, col, "malformed alias: "+line)
	}
	return &ast.Alias{Pos: ast.Pos{Line: lineNo, Column: col}, Name: name, Target: target}, nil
}

// parseSetting parses `set key` or `set key := value`.
func (p *parser) parseSetting(line string, lineNo, col int) (*ast.Setting, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "set"))
	key := rest
	value := ""
	hasValue := false
	if idx := strings.Index(rest, ":="); idx >= 0 {
		key = strings.TrimSpace(rest[:idx])
		value = strings.TrimSpace(rest[idx+2:])
		value = strings.Trim(value, `"'`)
		hasValue = true
	}
	key = strings.TrimSpace(key)
	if !knownSettings[key] {
		return nil, jerrors.New(jerrors.ErrUnknownSetting, lineNo, col, "unknown setting: "+key)
	}
	return &ast.Setting{Pos: ast.Pos{Line: lineNo, Column: col}, Key: key, Value: value, HasValue: hasValue}, nil
}
