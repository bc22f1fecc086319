package codegen

import (
	"fmt"
	"strings"

	"github.com/sammcj/justsh/internal/model"
	"github.com/sammcj/justsh/internal/shellname"
)

// emitDispatch renders dispatch_recipe, the name-to-function case
// table that both direct CLI invocation (emitEntrypoint) and the
// runtime's choose() rely on, plus __jsh_recipe_argc, which reports
// how many positional arguments a recipe name consumes so the
// entrypoint can dispatch several recipes from one argument list.
func emitDispatch(m *model.Model) string {
	var b strings.Builder
	b.WriteString("\n# --- dispatch ----------------------------------------------------------\n")
	b.WriteString("dispatch_recipe() {\n")
	fmt.Fprintf(&b, "\t__jsh_name=$1\n\tshift\n\tcase \"$__jsh_name\" in\n")

	for _, r := range m.Recipes {
		fmt.Fprintf(&b, "\t%s) %s \"$@\" ;;\n", shQuoteGo(r.Name), shellname.Func(r.Name))
	}
	for _, a := range m.Aliases {
		target := m.Recipe(a.Target)
		if target == nil {
			continue
		}
		fmt.Fprintf(&b, "\t%s) %s \"$@\" ;;\n", shQuoteGo(a.Name), shellname.Func(target.Name))
	}

	b.WriteString("\t*) die \"Justfile does not contain recipe \\`$__jsh_name\\`.\" ;;\n")
	b.WriteString("\tesac\n")
	b.WriteString("}\n")

	b.WriteString(emitRecipeArgc(m))

	return b.String()
}

// emitRecipeArgc renders __jsh_recipe_argc, printing the number of
// positional arguments a recipe name accepts, or -1 if one of its
// parameters is variadic and swallows every remaining argument.
func emitRecipeArgc(m *model.Model) string {
	var b strings.Builder
	b.WriteString("\n__jsh_recipe_argc() {\n\tcase \"$1\" in\n")
	for _, r := range m.Recipes {
		argc := len(r.Params)
		for _, p := range r.Params {
			if p.Variadic != "" {
				argc = -1
				break
			}
		}
		fmt.Fprintf(&b, "\t%s) printf '%%s\\n' %d ;;\n", shQuoteGo(r.Name), argc)
	}
	for _, a := range m.Aliases {
		target := m.Recipe(a.Target)
		if target == nil {
			continue
		}
		argc := len(target.Params)
		for _, p := range target.Params {
			if p.Variadic != "" {
				argc = -1
				break
			}
		}
		fmt.Fprintf(&b, "\t%s) printf '%%s\\n' %d ;;\n", shQuoteGo(a.Name), argc)
	}
	b.WriteString("\t*) printf '%s\\n' 0 ;;\n")
	b.WriteString("\tesac\n}\n")
	return b.String()
}
