package codegen

import (
	"fmt"
	"strings"

	"github.com/sammcj/justsh/internal/ast"
	"github.com/sammcj/justsh/internal/eval"
	"github.com/sammcj/justsh/internal/shellname"
)

// emitBody renders a recipe's body: a
// shebang body is written to a tempfile and executed directly; a
// [linewise] body runs each line as its own shell invocation; the
// default body joins its lines into a single shell invocation so
// state (cd, variables, control flow) carries across lines.
func emitBody(r *ast.Recipe, scope *eval.Scope) (string, error) {
	if len(r.Body) == 0 {
		return "", nil
	}
	if isShebangRecipe(r) {
		return emitShebangBody(r, scope)
	}
	if r.HasAttribute("linewise") {
		return emitLinewiseBody(r, scope)
	}
	return emitBatchBody(r, scope)
}

func emitShebangBody(r *ast.Recipe, scope *eval.Scope) (string, error) {
	var b strings.Builder
	script := "$__JSH_TMPDIR/" + shellname.Func(r.Name) + ".run"
	fmt.Fprintf(&b, "__jsh_script=%s\n", shQuoteGo(script))
	b.WriteString("cat <<__JSH_SCRIPT_EOF__ > \"$__jsh_script\"\n")
	for _, line := range r.Body {
		text, err := eval.LowerBodySegments(line.Segments, scope)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	b.WriteString("__JSH_SCRIPT_EOF__\n")
	b.WriteString("chmod +x \"$__jsh_script\"\n")
	fmt.Fprintf(&b, "%s\n", exitGuard(r, "\"$__jsh_script\"", r.Body[0].Pos.Line))
	return b.String(), nil
}

func emitLinewiseBody(r *ast.Recipe, scope *eval.Scope) (string, error) {
	var b strings.Builder
	for _, line := range r.Body {
		stmt, err := emitOneLine(r, line, scope)
		if err != nil {
			return "", err
		}
		b.WriteString(stmt)
	}
	return b.String(), nil
}

func emitBatchBody(r *ast.Recipe, scope *eval.Scope) (string, error) {
	var b strings.Builder
	var script strings.Builder
	for i, line := range r.Body {
		stmt, err := lineStatement(line, scope)
		if err != nil {
			return "", err
		}
		display, err := echoText(line, scope)
		if err != nil {
			return "", err
		}
		b.WriteString(emitDisplay(display, line.Silent))
		script.WriteString(stmt)
		if i != len(r.Body)-1 {
			script.WriteString("\n")
		}
	}

	invoke := `"$__JSH_SHELL" "$__JSH_SHELL_ARG" ` + shQuoteGo(script.String())
	fmt.Fprintf(&b, "if [ \"$__JSH_DRY_RUN\" != \"1\" ]; then\n\t%s\nfi\n", exitGuard(r, invoke, r.Body[0].Pos.Line))
	return b.String(), nil
}

func emitOneLine(r *ast.Recipe, line ast.BodyLine, scope *eval.Scope) (string, error) {
	stmt, err := lineStatement(line, scope)
	if err != nil {
		return "", err
	}
	display, err := echoText(line, scope)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(emitDisplay(display, line.Silent))
	invoke := `"$__JSH_SHELL" "$__JSH_SHELL_ARG" ` + shQuoteGo(stmt)
	fmt.Fprintf(&b, "if [ \"$__JSH_DRY_RUN\" != \"1\" ]; then\n\t%s\nfi\n", exitGuard(r, invoke, line.Pos.Line))
	return b.String(), nil
}

func lineStatement(line ast.BodyLine, scope *eval.Scope) (string, error) {
	text, err := eval.LowerBodySegments(line.Segments, scope)
	if err != nil {
		return "", err
	}
	if line.IgnoreError {
		text += " || :"
	}
	return text, nil
}

func echoText(line ast.BodyLine, scope *eval.Scope) (string, error) {
	return eval.RenderDisplay(line.Segments, scope)
}

// emitDisplay prints a body line's command text before it runs. A
// non-silent line is always shown unless --quiet; a silent (`@`) line
// is shown only when --verbose forces it. --dry-run always shows the
// command, regardless of silence or --quiet, since nothing will
// actually run.
func emitDisplay(display string, silent bool) string {
	echoCond := `[ "$__JSH_QUIET" != "1" ]`
	if silent {
		echoCond = `[ "$__JSH_VERBOSE" = "1" ] && [ "$__JSH_QUIET" != "1" ]`
	}
	printDisplay := "printf '%s\\n' \"" + display + "\""
	return fmt.Sprintf("if [ \"$__JSH_DRY_RUN\" = \"1\" ]; then\n\t%s\nelif %s; then\n\t%s\nfi\n", printDisplay, echoCond, printDisplay)
}

// exitGuard wraps a shell command so a non-zero exit produces the
// "recipe failed" diagnostic the [no-exit-message] attribute
// suppresses.
func exitGuard(r *ast.Recipe, cmd string, lineNo int) string {
	if r.HasAttribute("no-exit-message") {
		return cmd
	}
	return cmd + " || { __jsh_status=$?; " +
		fmt.Sprintf("err \"Recipe \\`%s\\` failed on line %d with exit code $__jsh_status\"; ", r.Name, lineNo) +
		"exit \"$__jsh_status\"; }"
}
