package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sammcj/justsh/internal/model"
	"github.com/sammcj/justsh/internal/parser"
)

func emitSource(t *testing.T, src string) string {
	t.Helper()
	f, err := parser.Parse(src)
	require.NoError(t, err)
	m, err := model.Build(f.Items)
	require.NoError(t, err)
	out, err := Emit(m, Options{SourceName: "justfile", SourceText: src})
	require.NoError(t, err)
	return out
}

func TestEmitProducesShebangAndStrictMode(t *testing.T) {
	out := emitSource(t, "hello:\n\techo world\n")
	require.True(t, len(out) > 0)
	require.Contains(t, out, "#!/bin/sh")
	require.Contains(t, out, "set -eu")
}

func TestEmitIsDeterministic(t *testing.T) {
	src := "greet name=\"world\":\n\techo \"hello {{name}}\"\n"
	a := emitSource(t, src)
	b := emitSource(t, src)
	require.Equal(t, a, b)
}

func TestEmitSummaryListsRecipesInSourceOrder(t *testing.T) {
	out := emitSource(t, "a:\n\techo a\nb:\n\techo b\nc:\n\techo c\n")
	require.Contains(t, out, `printf '%s\n' "a b c"`)
}

func TestEmitRecipeFunctionsAndHasRunFlag(t *testing.T) {
	out := emitSource(t, "a:\n\techo a\nb: a\n\techo b\n")
	require.Contains(t, out, "FUN_a() {")
	require.Contains(t, out, "FUN_b() {")
	require.Contains(t, out, "PRE_b() {")
	require.Contains(t, out, "HAS_RUN_a=1")
	require.Contains(t, out, "HAS_RUN_b=1")
}

func TestEmitDispatchTableInSourceOrder(t *testing.T) {
	out := emitSource(t, "build:\n\techo build\ntest: build\n\techo test\n")
	buildIdx := indexOf(out, `'build') FUN_build "$@" ;;`)
	testIdx := indexOf(out, `'test') FUN_test "$@" ;;`)
	require.GreaterOrEqual(t, buildIdx, 0)
	require.Greater(t, testIdx, buildIdx)
}

func TestEmitPrivateRecipeOmittedFromList(t *testing.T) {
	out := emitSource(t, "[private]\n_internal:\n\techo hidden\n")
	require.NotContains(t, out, "'    _internal'")
	require.Contains(t, out, "FUN__internal() {")
}

func TestEmitAliasDispatchesToTarget(t *testing.T) {
	out := emitSource(t, "alias t := test\ntest:\n\techo ok\n")
	require.Contains(t, out, `'t') FUN_test "$@" ;;`)
}

func TestEmitVariablesInSourceOrderWithOverrideHook(t *testing.T) {
	out := emitSource(t, "x := \"1\"\ny := x + \"2\"\n")
	require.Contains(t, out, `VAR_x='1'`)
	require.Contains(t, out, "__JSH_OVERRIDE_VAR_x")
	require.Contains(t, out, "__JSH_OVERRIDE_VAR_y")
}

func TestEmitExportedVariableIsExported(t *testing.T) {
	out := emitSource(t, "export FOO := \"bar\"\n")
	require.Contains(t, out, "export VAR_FOO")
}

func TestEmitNoCdAttributeSkipsDirectoryChange(t *testing.T) {
	out := emitSource(t, "[no-cd]\nbuild:\n\techo hi\n")
	require.NotContains(t, out, `cd "$__JSH_JUSTFILE_DIR"`)
}

func TestEmitShebangRecipeWritesTempfile(t *testing.T) {
	out := emitSource(t, "run:\n\t#!/usr/bin/env python3\n\tprint(\"hi\")\n")
	require.Contains(t, out, "chmod +x")
}

func TestEmitTwoParamRecipeBindsBothPositionally(t *testing.T) {
	out := emitSource(t, "greet first last:\n\techo \"$first $last\"\n")
	require.Contains(t, out, `if [ "$#" -ge 1 ]; then PARAM_first=$1; else`)
	require.Contains(t, out, `if [ "$#" -ge 2 ]; then PARAM_last=$2; else`)
	require.NotContains(t, out, "PARAM_first=$1; shift")
}

func TestEmitMultipleRecipesDispatchedInOneInvocation(t *testing.T) {
	out := emitSource(t, "a:\n\techo a\nb:\n\techo b\n")
	require.Contains(t, out, "__jsh_recipe_argc")
	require.Contains(t, out, "dispatch_recipe \"$__jsh_recipe\"")
}

func TestEmitColorFlagConsumesArgument(t *testing.T) {
	out := emitSource(t, "hello:\n\techo hi\n")
	require.Contains(t, out, `--color) case "$2" in`)
	require.Contains(t, out, "shift 2 ;;")
}

func TestEmitDryRunAndVerboseAreWired(t *testing.T) {
	out := emitSource(t, "hello:\n\techo hi\n\t@echo quiet\n")
	require.Contains(t, out, `__JSH_DRY_RUN" = "1"`)
	require.Contains(t, out, `__JSH_VERBOSE" = "1"`)
}

func TestEmitCommandEchoGoesToStdout(t *testing.T) {
	out := emitSource(t, "hello:\n\techo hi\n")
	require.Contains(t, out, `printf '%s\n' "echo hi"`)
	require.NotContains(t, out, `printf '%s\n' "echo hi" >&2`)
}

func TestEmitPlatformGateChecksUname(t *testing.T) {
	out := emitSource(t, "[linux]\nbuild:\n\techo hi\n")
	require.Contains(t, out, "__jsh_platform_matches linux")
	require.Contains(t, out, "is not available on this platform")
}

func TestEmitUnknownFunctionIsCompileError(t *testing.T) {
	_, err := func() (string, error) {
		f, err := parser.Parse("x := not_a_builtin(\"a\")\n")
		if err != nil {
			return "", err
		}
		m, err := model.Build(f.Items)
		if err != nil {
			return "", err
		}
		return Emit(m, Options{SourceName: "justfile"})
	}()
	require.Error(t, err)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
