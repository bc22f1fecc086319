package codegen

import (
	"fmt"
	"strings"

	"github.com/sammcj/justsh/internal/ast"
	"github.com/sammcj/justsh/internal/model"
)

// emitShowOne renders __jsh_show_one, which `--show R` (runtime.sh.tmpl)
// dispatches a single recipe's reconstructed source to. The
// reconstruction is best-effort: it prints signature-equivalent
// justfile syntax rebuilt from the AST, not the original byte range.
func emitShowOne(m *model.Model) string {
	var b strings.Builder
	b.WriteString("\n__jsh_show_one() {\n\tcase \"$1\" in\n")
	for _, r := range m.Recipes {
		fmt.Fprintf(&b, "\t%s) cat <<'__JSH_SHOW_EOF__'\n%s__JSH_SHOW_EOF__\n\t\t;;\n", shQuoteGo(r.Name), reconstructRecipe(r))
	}
	b.WriteString("\t*) die \"Justfile does not contain recipe \\`$1\\`.\" ;;\n")
	b.WriteString("\tesac\n}\n")
	return b.String()
}

// reconstructRecipe rebuilds approximate justfile source for r from
// its AST: the header line, then one line per body line with
// interpolation holes rendered back as `{{ expr }}`.
func reconstructRecipe(r *ast.Recipe) string {
	var b strings.Builder
	for _, a := range r.Attributes {
		if len(a.Args) > 0 {
			fmt.Fprintf(&b, "[%s(%s)]\n", a.Name, strings.Join(a.Args, ", "))
		} else {
			fmt.Fprintf(&b, "[%s]\n", a.Name)
		}
	}

	sig := r.Name
	for _, p := range r.Params {
		sig += " " + reconstructParam(p)
	}
	if len(r.Dependencies) > 0 {
		sig += ": " + strings.Join(r.Dependencies, " ")
	} else {
		sig += ":"
	}
	b.WriteString(sig)
	b.WriteString("\n")

	for _, line := range r.Body {
		prefix := ""
		if line.Silent {
			prefix += "@"
		}
		if line.IgnoreError {
			prefix += "-"
		}
		if line.Elevated {
			prefix += "+"
		}
		b.WriteString("    " + prefix + reconstructSegments(line.Segments) + "\n")
	}

	return b.String()
}

func reconstructParam(p ast.Param) string {
	s := ""
	if p.Export {
		s += "$"
	}
	s += p.Variadic
	s += p.Name
	if p.Default != nil {
		s += "=" + reconstructExpr(p.Default)
	}
	return s
}

func reconstructSegments(segs []ast.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Expr != nil {
			b.WriteString("{{ " + reconstructExpr(s.Expr) + " }}")
			continue
		}
		b.WriteString(s.Literal)
	}
	return b.String()
}

func reconstructExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.StringLit:
		return `"` + strings.ReplaceAll(n.Value, `"`, `\"`) + `"`
	case *ast.NameRef:
		return n.Name
	case *ast.Concat:
		return reconstructExpr(n.Lhs) + " + " + reconstructExpr(n.Rhs)
	case *ast.PathJoin:
		return reconstructExpr(n.Lhs) + " / " + reconstructExpr(n.Rhs)
	case *ast.Conditional:
		op := "=="
		if n.Op == ast.CondNe {
			op = "!="
		}
		return "if " + reconstructExpr(n.Lhs) + " " + op + " " + reconstructExpr(n.Rhs) +
			" { " + reconstructExpr(n.Then) + " } else { " + reconstructExpr(n.Else) + " }"
	case *ast.Call:
		var args []string
		for _, a := range n.Args {
			args = append(args, reconstructExpr(a))
		}
		return n.Name + "(" + strings.Join(args, ", ") + ")"
	case *ast.Backtick:
		return "`" + reconstructSegments(n.Parts) + "`"
	default:
		return ""
	}
}
