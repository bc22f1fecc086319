package codegen

import (
	"fmt"
	"strings"

	"github.com/sammcj/justsh/internal/model"
)

// emitPresetOverrides renders a pre-scan over the script's original
// arguments that pulls out every `--set NAME VALUE` pair before the
// variable-assignment block runs, so an override is visible to
// `evaluate`/every recipe rather than only to the final dispatch.
// Arguments are saved and restored around the scan (via `quote`) so
// the real entrypoint parser further down still sees the untouched
// argument list, where `--set` is recognized again only to be
// skipped (its effect already applied here).
func emitPresetOverrides() string {
	var b strings.Builder
	b.WriteString("\n# --- --set overrides (applied before variables are assigned) --------\n")
	b.WriteString("__jsh_saved_argv=\"\"\n")
	b.WriteString("for __jsh_a in \"$@\"; do __jsh_saved_argv=\"$__jsh_saved_argv $(quote \"$__jsh_a\")\"; done\n")
	b.WriteString("while [ $# -gt 0 ]; do\n")
	b.WriteString("\tcase \"$1\" in\n")
	b.WriteString("\t--set) [ $# -ge 3 ] || die \"--set requires a name and a value\"\n")
	b.WriteString("\t\teval \"__JSH_OVERRIDE_VAR_$(printf '%s' \"$2\" | tr -- '-' '_')=$(quote \"$3\")\"\n")
	b.WriteString("\t\tshift 3 ;;\n")
	b.WriteString("\t*) shift ;;\n")
	b.WriteString("\tesac\n")
	b.WriteString("done\n")
	b.WriteString("eval \"set -- $__jsh_saved_argv\"\n")

	return b.String()
}

// emitEntrypoint renders the flag parser and recipe-selection logic,
// a POSIX `case "$1" in` argument loop over the script's own $@.
func emitEntrypoint(m *model.Model) string {
	var b strings.Builder
	b.WriteString("\n# --- entrypoint ----------------------------------------------------------\n")
	b.WriteString("while [ $# -gt 0 ]; do\n")
	b.WriteString("\tcase \"$1\" in\n")
	b.WriteString("\t--list|-l) list; exit 0 ;;\n")
	b.WriteString("\t--choose) choose; exit 0 ;;\n")
	b.WriteString("\t--dump) dump; exit 0 ;;\n")
	b.WriteString("\t--summary) summary; exit 0 ;;\n")
	b.WriteString("\t--show) shift; show \"$1\"; exit 0 ;;\n")
	b.WriteString("\t--evaluate) shift; evaluate \"$@\"; exit 0 ;;\n")
	b.WriteString("\t--quiet|-q) __JSH_QUIET=1; shift ;;\n")
	b.WriteString("\t--verbose|-v) __JSH_VERBOSE=1; shift ;;\n")
	b.WriteString("\t--dry-run|-n) __JSH_DRY_RUN=1; shift ;;\n")
	b.WriteString("\t--force|-f) __JSH_FORCE=1; shift ;;\n")
	b.WriteString("\t--shell) __JSH_SHELL=$2; shift 2 ;;\n")
	b.WriteString("\t--shell-arg) __JSH_SHELL_ARG=$2; shift 2 ;;\n")
	b.WriteString("\t--no-color) __JSH_COLOR=0; shift ;;\n")
	b.WriteString("\t--color) case \"$2\" in always) __JSH_COLOR=1 ;; never) __JSH_COLOR=0 ;; auto) ;; *) die \"invalid --color value '$2'\" ;; esac; shift 2 ;;\n")
	b.WriteString("\t--set) shift 3 ;;\n") // already applied by the pre-scan in emitPresetOverrides
	b.WriteString("\t--justfile) shift 2 ;;\n") // accepted for compatibility; the file is inlined
	b.WriteString("\t--working-directory) __JSH_WORKDIR=$2; shift 2 ;;\n")
	b.WriteString("\t--) shift; break ;;\n")
	b.WriteString("\t-*) die \"unknown flag '$1'\" ;;\n")
	b.WriteString("\t*) break ;;\n")
	b.WriteString("\tesac\n")
	b.WriteString("done\n\n")
	b.WriteString("if [ -n \"${__JSH_WORKDIR:-}\" ]; then cd \"$__JSH_WORKDIR\" || die \"no such directory '$__JSH_WORKDIR'\"; fi\n\n")

	def := m.DefaultRecipe()
	if def == nil {
		b.WriteString("if [ $# -eq 0 ]; then\n\tdie \"Justfile contains no recipes.\"\nfi\n")
	} else {
		fmt.Fprintf(&b, "if [ $# -eq 0 ]; then\n\tdispatch_recipe %s\n\texit 0\nfi\n", shQuoteGo(def.Name))
	}

	b.WriteString("\nwhile [ $# -gt 0 ]; do\n")
	b.WriteString("\t__jsh_recipe=$1\n")
	b.WriteString("\tshift\n")
	b.WriteString("\t__jsh_argc=$(__jsh_recipe_argc \"$__jsh_recipe\")\n")
	b.WriteString("\tif [ \"$__jsh_argc\" = \"-1\" ]; then\n")
	b.WriteString("\t\tdispatch_recipe \"$__jsh_recipe\" \"$@\"\n")
	b.WriteString("\t\tset --\n")
	b.WriteString("\telse\n")
	b.WriteString("\t\t__jsh_saved_argv=\"\"\n")
	b.WriteString("\t\t__jsh_n=0\n")
	b.WriteString("\t\twhile [ \"$__jsh_n\" -lt \"$__jsh_argc\" ] && [ $# -gt 0 ]; do\n")
	b.WriteString("\t\t\t__jsh_saved_argv=\"$__jsh_saved_argv $(quote \"$1\")\"\n")
	b.WriteString("\t\t\tshift\n")
	b.WriteString("\t\t\t__jsh_n=$((__jsh_n + 1))\n")
	b.WriteString("\t\tdone\n")
	b.WriteString("\t\teval \"dispatch_recipe \\\"\\$__jsh_recipe\\\" $__jsh_saved_argv\"\n")
	b.WriteString("\tfi\n")
	b.WriteString("done\n")

	return b.String()
}
