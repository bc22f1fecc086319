package eval

import (
	"strconv"
	"strings"

	"github.com/sammcj/justsh/internal/ast"
	jerrors "github.com/sammcj/justsh/internal/errors"
)

// arity bounds a builtin's argument count; max -1 means unbounded
// (join() takes two or more path components).
type arity struct {
	min, max int
}

// Builtins is the closed function table of recognised expression
// functions. Every entry here has a matching `__jsh_<name>` shell
// function in the emitted runtime preamble
// (internal/codegen/runtime.sh.tmpl); unlisted names are an
// UnimplementedFunctionError.
var Builtins = map[string]arity{
	"os":                          {0, 0},
	"os_family":                   {0, 0},
	"arch":                        {0, 0},
	"env_var":                     {1, 1},
	"env_var_or_default":          {2, 2},
	"justfile":                    {0, 0},
	"justfile_directory":          {0, 0},
	"invocation_directory":        {0, 0},
	"invocation_directory_native": {0, 0},
	"just_executable":             {0, 0},
	"just_pid":                    {0, 0},
	"clean":                       {1, 1},
	"join":                        {2, -1},
	"absolute_path":               {1, 1},
	"extension":                   {1, 1},
	"file_name":                   {1, 1},
	"file_stem":                   {1, 1},
	"parent_directory":            {1, 1},
	"without_extension":           {1, 1},
	"quote":                       {1, 1},
	"replace":                     {3, 3},
	"replace_regex":               {3, 3},
	"uppercase":                   {1, 1},
	"lowercase":                   {1, 1},
	"capitalize":                  {1, 1},
	"lowercamelcase":              {1, 1},
	"snakecase":                   {1, 1},
	"kebabcase":                   {1, 1},
	"shoutysnakecase":             {1, 1},
	"shoutykebabcase":             {1, 1},
	"trim":                        {1, 1},
	"error":                       {1, 1},
	"path_exists":                 {1, 1},
	"uuid":                        {0, 0},
	"sha256":                      {1, 1},
	"sha256_file":                 {1, 1},
	"blake3":                      {1, 1},
	"blake3_file":                 {1, 1},
}

func lowerCall(c *ast.Call, scope *Scope) (string, error) {
	ar, ok := Builtins[c.Name]
	if !ok {
		return "", jerrors.New(jerrors.ErrUnimplementedFunction, c.Pos.Line, c.Pos.Column, "function '"+c.Name+"' is not implemented")
	}
	if len(c.Args) < ar.min || (ar.max >= 0 && len(c.Args) > ar.max) {
		return "", jerrors.New(jerrors.ErrParse, c.Pos.Line, c.Pos.Column,
			"wrong number of arguments to '"+c.Name+"' ("+strconv.Itoa(len(c.Args))+")")
	}

	var parts []string
	for _, a := range c.Args {
		v, err := Lower(a, scope)
		if err != nil {
			return "", err
		}
		parts = append(parts, v)
	}

	return `"$( __jsh_` + c.Name + ` ` + strings.Join(parts, " ") + ` )"`, nil
}
