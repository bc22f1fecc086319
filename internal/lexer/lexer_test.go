package lexer

import "testing"

func TestTokenizeSplitsLinesAndBodies(t *testing.T) {
	input := "build:\n\tgo build ./...\n\ngreet:\n    echo hi\n"

	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	want := []Kind{Newline, Indent, Newline, Newline, Indent}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		assertEqual(t, "kind", kinds[i], want[i])
	}

	assertEqual(t, "body text", toks[1].Value, "go build ./...")
	assertEqual(t, "space-indented body text", toks[4].Value, "echo hi")
}

func TestTokenizeColumnTracksIndentation(t *testing.T) {
	toks, err := Tokenize("  name := \"x\"\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertEqual(t, "value", toks[0].Value, `name := "x"`)
	assertEqual(t, "column", toks[0].Column, 3)
}

func TestTokenizeExprOperatorsAndLiterals(t *testing.T) {
	toks, err := TokenizeExpr(`a + "b" / 'c' == d`, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	want := []Kind{Ident, Plus, String, Slash, String, Eq, Ident, EOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		assertEqual(t, "kind", kinds[i], want[i])
	}
}

func TestTokenizeExprKeywords(t *testing.T) {
	toks, err := TokenizeExpr("if export alias set else x", 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Kind{KwIf, KwExport, KwAlias, KwSet, KwElse, Ident, EOF}
	for i, k := range want {
		assertEqual(t, "kind", toks[i].Kind, k)
	}
}

func TestMaskTripleSpansPreservesSingleLogicalLine(t *testing.T) {
	input := "x := \"\"\"\nline one\nline two\n\"\"\"\n"
	masked := maskTripleSpans(input)
	if countRune(masked, '\n') != 1 {
		t.Fatalf("expected triple-quoted newlines to be masked, got %q", masked)
	}
}

func countRune(s string, r rune) int {
	n := 0
	for _, c := range s {
		if c == r {
			n++
		}
	}
	return n
}

func assertEqual[T comparable](t *testing.T, label string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", label, got, want)
	}
}
