package codegen

import (
	"fmt"
	"strings"

	"github.com/sammcj/justsh/internal/eval"
	"github.com/sammcj/justsh/internal/model"
	"github.com/sammcj/justsh/internal/shellname"
)

// emitVariables renders the eager variable-assignment block, in
// source order.
func emitVariables(m *model.Model, scope *eval.Scope) (string, error) {
	var b strings.Builder
	b.WriteString("\n# --- variables -------------------------------------------------------\n\n")

	for _, v := range m.Variables {
		rhs, err := eval.Lower(v.Expr, scope)
		if err != nil {
			return "", err
		}
		name := shellname.Var(v.Name)
		fmt.Fprintf(&b, "%s=%s\n", name, rhs)
		fmt.Fprintf(&b, "if [ -n \"${__JSH_OVERRIDE_%s+x}\" ]; then %s=$__JSH_OVERRIDE_%s; fi\n", name, name, name)
		if v.Exported {
			fmt.Fprintf(&b, "export %s\n", name)
		}
	}

	b.WriteString(emitEvaluateOne(m))

	if s, ok := m.Settings["dotenv-load"]; ok && (!s.HasValue || s.Value != "false") {
		fname := ".env"
		if fs, ok := m.Settings["dotenv-filename"]; ok && fs.HasValue {
			fname = fs.Value
		}
		path := `"$__JSH_JUSTFILE_DIR"/` + shQuoteGo(fname)
		if fp, ok := m.Settings["dotenv-path"]; ok && fp.HasValue {
			path = shQuoteGo(fp.Value)
		}
		fmt.Fprintf(&b, "\nif [ -f %s ]; then\n\tset -a\n\t. %s\n\tset +a\nfi\n", path, path)
	}

	return b.String(), nil
}

// emitEvaluateOne renders __jsh_evaluate_one, which `evaluate <name>`
// (runtime.sh.tmpl) dispatches a single variable lookup to.
func emitEvaluateOne(m *model.Model) string {
	var b strings.Builder
	b.WriteString("\n__jsh_evaluate_one() {\n\tcase \"$1\" in\n")
	for _, v := range m.Variables {
		fmt.Fprintf(&b, "\t%s) printf '%%s\\n' \"${%s}\" ;;\n", shQuoteGo(v.Name), shellname.Var(v.Name))
	}
	b.WriteString("\t*) die \"Justfile does not contain variable \\`$1\\`.\" ;;\n")
	b.WriteString("\tesac\n}\n")
	return b.String()
}
