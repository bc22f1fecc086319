package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sammcj/justsh/internal/ast"
)

func lit(s string) ast.Expr { return &ast.StringLit{Value: s} }

func TestLowerStringLiteral(t *testing.T) {
	got, err := Lower(lit("hello world"), NewScope(nil))
	require.NoError(t, err)
	require.Equal(t, `'hello world'`, got)
}

func TestLowerStringLiteralEscapesSingleQuotes(t *testing.T) {
	got, err := Lower(lit("it's"), NewScope(nil))
	require.NoError(t, err)
	require.Equal(t, `'it'\''s'`, got)
}

func TestLowerNameRefGlobalVariable(t *testing.T) {
	scope := NewScope(map[string]bool{"name": true})
	got, err := Lower(&ast.NameRef{Name: "name"}, scope)
	require.NoError(t, err)
	require.Equal(t, `"${VAR_name}"`, got)
}

func TestLowerNameRefParameter(t *testing.T) {
	scope := NewScope(nil).WithParam("target")
	got, err := Lower(&ast.NameRef{Name: "target"}, scope)
	require.NoError(t, err)
	require.Equal(t, `"$PARAM_target"`, got)
}

func TestLowerNameRefUndefinedIsError(t *testing.T) {
	_, err := Lower(&ast.NameRef{Name: "bogus"}, NewScope(nil))
	require.Error(t, err)
}

func TestLowerConcatFoldsLiterals(t *testing.T) {
	scope := NewScope(nil)
	got, err := Lower(&ast.Concat{Lhs: lit("a"), Rhs: lit("b")}, scope)
	require.NoError(t, err)
	require.Equal(t, `'ab'`, got)
}

func TestLowerPathJoinFoldsAndCollapsesSeparators(t *testing.T) {
	scope := NewScope(nil)
	got, err := Lower(&ast.PathJoin{Lhs: lit("a/"), Rhs: lit("/b")}, scope)
	require.NoError(t, err)
	require.Equal(t, `'a/b'`, got)
}

func TestLowerConcatWithVariableDoesNotFold(t *testing.T) {
	scope := NewScope(map[string]bool{"x": true})
	got, err := Lower(&ast.Concat{Lhs: lit("a"), Rhs: &ast.NameRef{Name: "x"}}, scope)
	require.NoError(t, err)
	require.Equal(t, `"a${VAR_x}"`, got)
}

func TestLowerConditional(t *testing.T) {
	scope := NewScope(map[string]bool{"os": true})
	cond := &ast.Conditional{
		Lhs: &ast.NameRef{Name: "os"}, Rhs: lit("linux"), Op: ast.CondEq,
		Then: lit("yes"), Else: lit("no"),
	}
	got, err := Lower(cond, scope)
	require.NoError(t, err)
	require.Contains(t, got, `[ "${VAR_os}" = "linux" ]`)
	require.Contains(t, got, "printf %s 'yes'")
	require.Contains(t, got, "printf %s 'no'")
}

func TestLowerCallKnownBuiltin(t *testing.T) {
	scope := NewScope(nil)
	got, err := Lower(&ast.Call{Name: "uppercase", Args: []ast.Expr{lit("hi")}}, scope)
	require.NoError(t, err)
	require.Equal(t, `"$( __jsh_uppercase 'hi' )"`, got)
}

func TestLowerCallUnknownFunctionIsUnimplementedError(t *testing.T) {
	_, err := Lower(&ast.Call{Name: "not_a_builtin", Args: nil}, NewScope(nil))
	require.Error(t, err)
}

func TestLowerCallWrongArityIsError(t *testing.T) {
	_, err := Lower(&ast.Call{Name: "uppercase", Args: nil}, NewScope(nil))
	require.Error(t, err)
}

func TestLowerBacktick(t *testing.T) {
	scope := NewScope(nil)
	got, err := Lower(&ast.Backtick{Parts: []ast.Segment{{Literal: "echo hi"}}}, scope)
	require.NoError(t, err)
	require.Equal(t, `"$(echo hi)"`, got)
}

func TestQuoteRoundTripsArbitraryBytes(t *testing.T) {
	cases := []string{"", "plain", "it's", `a"b`, "a\nb", "$(rm -rf /)"}
	for _, c := range cases {
		q := Quote(c)
		require.True(t, len(q) >= 2, "quoted form must be wrapped: %q", q)
		require.Equal(t, c, strings.ReplaceAll(q[1:len(q)-1], `'\''`, `'`))
	}
}
