// Package codegen emits the single POSIX shell script that reproduces
// a justfile's runtime behavior. The runtime preamble is stored as one
// embedded text/template resource (runtime.sh.tmpl) with a small
// number of interpolation holes rather than composed from many small
// fragments, following a text/template-over-bytes.Buffer shape for
// emitting a large generated text artifact.
package codegen

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/sammcj/justsh/internal/ast"
	"github.com/sammcj/justsh/internal/eval"
	"github.com/sammcj/justsh/internal/model"
	"github.com/sammcj/justsh/internal/shellname"
)

//go:embed runtime.sh.tmpl
var runtimeTemplate string

// Version is the transpiler's version banner string.
var Version = "dev"

// Options configures emission. Threaded explicitly through Emit and
// its helpers rather than held in package-level state.
type Options struct {
	SourceName string // base name of the justfile being compiled, for the version banner and `justfile()`
	SourceText string // raw justfile text, for `--dump`
	NoColor    bool
}

// Emit produces the complete shell script for m.
func Emit(m *model.Model, opts Options) (string, error) {
	varNames := map[string]bool{}
	for _, v := range m.Variables {
		varNames[v.Name] = true
	}
	scope := eval.NewScope(varNames)

	var b strings.Builder

	runtime, err := renderRuntime(m, opts)
	if err != nil {
		return "", err
	}
	b.WriteString(runtime)
	b.WriteString("\n")
	b.WriteString(emitPresetOverrides())
	b.WriteString(settingsComment(m))

	varsBlock, err := emitVariables(m, scope)
	if err != nil {
		return "", err
	}
	b.WriteString(varsBlock)

	recipesBlock, err := emitRecipes(m, scope)
	if err != nil {
		return "", err
	}
	b.WriteString(recipesBlock)

	b.WriteString(emitDispatch(m))
	b.WriteString(emitEntrypoint(m))

	return b.String(), nil
}

type runtimeData struct {
	Version      string
	SourceName   string
	SummaryLine  string
	ListBody     string
	DumpBody     string
	EvaluateBody string
	ForceNoColor string
}

func renderRuntime(m *model.Model, opts Options) (string, error) {
	tmpl, err := template.New("runtime").Parse(runtimeTemplate)
	if err != nil {
		return "", fmt.Errorf("internal error: parsing embedded runtime template: %w", err)
	}

	var names []string
	for _, r := range m.Recipes {
		names = append(names, r.Name)
	}

	forceNoColor := "0"
	if opts.NoColor {
		forceNoColor = "1"
	}

	data := runtimeData{
		Version:      Version,
		SourceName:   opts.SourceName,
		SummaryLine:  strings.Join(names, " "),
		ListBody:     listBody(m),
		DumpBody:     opts.SourceText,
		EvaluateBody: evaluateBody(m),
		ForceNoColor: forceNoColor,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("internal error: rendering runtime template: %w", err)
	}
	return buf.String(), nil
}

func listBody(m *model.Model) string {
	var b strings.Builder
	b.WriteString("\tprintf 'Available recipes:\\n'\n")
	for _, r := range m.Recipes {
		if r.HasAttribute("private") {
			continue
		}
		sig := r.Name
		for _, p := range r.Params {
			sig += " " + p.Name
		}
		line := "    " + sig
		if r.Doc != "" {
			line += " # " + r.Doc
		}
		fmt.Fprintf(&b, "\tprintf '%%s\\n' %s\n", shQuoteGo(line))
	}
	return b.String()
}

func evaluateBody(m *model.Model) string {
	var b strings.Builder
	for _, v := range m.Variables {
		fmt.Fprintf(&b, "\tprintf '%%s := \"%%s\"\\n' %s \"${%s}\"\n", shQuoteGo(v.Name), shellname.Var(v.Name))
	}
	return b.String()
}

// shQuoteGo single-quotes a Go string for embedding directly in the
// generated shell source (as opposed to eval.Quote, which quotes a
// justfile *value* that will be re-interpreted at script runtime).
func shQuoteGo(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func sortedKeys(m map[string]*ast.Setting) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// settingsComment records the justfile's active `set` directives in
// the generated script, in stable order, for anyone reading the
// output to debug a discrepancy.
func settingsComment(m *model.Model) string {
	if len(m.Settings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("# --- settings (informational) ----------------------------------------\n")
	for _, k := range sortedKeys(m.Settings) {
		s := m.Settings[k]
		if s.HasValue {
			fmt.Fprintf(&b, "# set %s := %s\n", k, shQuoteGo(s.Value))
		} else {
			fmt.Fprintf(&b, "# set %s\n", k)
		}
	}
	b.WriteString("\n")
	return b.String()
}
