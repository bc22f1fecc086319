package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sammcj/justsh/internal/ast"
	"github.com/sammcj/justsh/internal/eval"
	"github.com/sammcj/justsh/internal/model"
	"github.com/sammcj/justsh/internal/shellname"
)

// emitRecipes renders one FUN_<name>/PRE_<name> pair per recipe.
func emitRecipes(m *model.Model, scope *eval.Scope) (string, error) {
	var b strings.Builder
	b.WriteString("\n# --- recipes ----------------------------------------------------------\n")

	for _, r := range m.Recipes {
		fn, err := emitRecipeFunctions(r, scope)
		if err != nil {
			return "", err
		}
		b.WriteString(fn)
	}

	b.WriteString(emitShowOne(m))

	return b.String(), nil
}

func emitRecipeFunctions(r *ast.Recipe, globalScope *eval.Scope) (string, error) {
	var b strings.Builder
	fn := shellname.Func(r.Name)
	pre := shellname.Pre(r.Name)
	hasRun := shellname.HasRun(r.Name)

	fmt.Fprintf(&b, "\n%s() {\n", pre)
	for _, dep := range r.Dependencies {
		fmt.Fprintf(&b, "\t%s\n", shellname.Func(dep))
	}
	if !r.HasAttribute("private") && !allLinesSilent(r) {
		fmt.Fprintf(&b, "\tif [ \"$__JSH_QUIET\" != \"1\" ]; then printf '%%s===> %s%%s\\n' \"$COLOR_RECIPE\" \"$COLOR_RESET\"; fi\n", shQuoteGo(r.Name))
	}
	b.WriteString("}\n")

	fmt.Fprintf(&b, "\n%s() {\n", fn)

	if plats := platformAttrs(r); len(plats) > 0 {
		var checks []string
		for _, p := range plats {
			checks = append(checks, "__jsh_platform_matches "+p)
		}
		fmt.Fprintf(&b, "\tif ! { %s; }; then die \"Recipe \\`%s\\` is not available on this platform.\"; fi\n",
			strings.Join(checks, " || "), r.Name)
	}

	scope := globalScope
	bindErr := error(nil)
	for i, p := range r.Params {
		line, err := bindParam(p, i, scope)
		if err != nil {
			bindErr = err
			break
		}
		b.WriteString(line)
		scope = scope.WithParam(p.Name)
	}
	if bindErr != nil {
		return "", bindErr
	}

	var argRefs []string
	for _, p := range r.Params {
		argRefs = append(argRefs, "\"$"+shellname.Param(p.Name)+"\"")
	}
	fmt.Fprintf(&b, "\t__jsh_key=$(__jsh_cache_key %s %s)\n", shQuoteGo(r.Name), strings.Join(argRefs, " "))
	fmt.Fprintf(&b, "\tif ! __jsh_cache_has_run \"$__jsh_key\"; then\n")
	fmt.Fprintf(&b, "\t\t%s\n", pre)

	if !r.HasAttribute("no-cd") && !isShebangRecipe(r) {
		b.WriteString("\t\tcd \"$__JSH_JUSTFILE_DIR\"\n")
	}

	body, err := emitBody(r, scope)
	if err != nil {
		return "", err
	}
	b.WriteString(indentBlock(body, "\t\t"))

	fmt.Fprintf(&b, "\t\t__jsh_cache_mark_run \"$__jsh_key\"\n")
	b.WriteString("\tfi\n")
	fmt.Fprintf(&b, "\t%s=1\n", hasRun)
	b.WriteString("}\n")

	return b.String(), nil
}

// platformAttrs returns the recipe's platform-gate attribute names
// (windows/unix/macos/linux), if any. Multiple such attributes are an
// OR: the recipe runs if the current OS matches any one of them.
func platformAttrs(r *ast.Recipe) []string {
	var out []string
	for _, a := range r.Attributes {
		switch a.Name {
		case "windows", "unix", "macos", "linux":
			out = append(out, a.Name)
		}
	}
	return out
}

func allLinesSilent(r *ast.Recipe) bool {
	if len(r.Body) == 0 {
		return false
	}
	for _, l := range r.Body {
		if !l.Silent {
			return false
		}
	}
	return true
}

func isShebangRecipe(r *ast.Recipe) bool {
	return len(r.Body) > 0 && r.Body[0].Shebang
}

func bindParam(p ast.Param, index int, scope *eval.Scope) (string, error) {
	var b strings.Builder
	name := shellname.Param(p.Name)
	pos := strconv.Itoa(index + 1)

	switch {
	case p.Variadic == "+":
		fmt.Fprintf(&b, "\tif [ \"$#\" -lt %s ]; then die \"recipe requires at least one argument for '%s'\"; fi\n", pos, p.Name)
		fmt.Fprintf(&b, "\tshift %s; %s=\"$*\"; set --\n", strconv.Itoa(index), name)
	case p.Variadic == "*":
		fmt.Fprintf(&b, "\tshift %s 2>/dev/null || shift $#; %s=\"$*\"; set --\n", strconv.Itoa(index), name)
	default:
		fmt.Fprintf(&b, "\tif [ \"$#\" -ge %s ]; then %s=$%s; else\n", pos, name, pos)
		if p.Default != nil {
			def, err := eval.Lower(p.Default, scope)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "\t\t%s=%s\n", name, def)
		} else {
			fmt.Fprintf(&b, "\t\tdie \"recipe requires argument '%s'\"\n", p.Name)
		}
		b.WriteString("\tfi\n")
	}

	if p.Export {
		fmt.Fprintf(&b, "\texport %s\n", name)
	}

	return b.String(), nil
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
