// Package lexer turns justfile source text into a token stream.
//
// The grammar is line-sensitive (recipe bodies are delimited by
// indentation) so tokenization happens in two layers: Tokenize splits
// the file into top-level lines and opaque indented body lines, and
// TokenizeExpr turns a single expression fragment (an assignment's
// right-hand side, a recipe header's parameter list, an
// interpolation hole) into the operator/literal tokens the parser
// consumes. This mirrors the state-machine line scan in
// friedelschoen-mk's lexer while keeping expression tokenization
// reusable across every context an expression can appear in.
package lexer

import (
	"strings"

	jerrors "github.com/sammcj/justsh/internal/errors"
)

// Tokenize splits justfile source into top-level tokens. Recipe body
// lines (indented with a tab or four spaces, immediately following a
// recipe header) are emitted as single Indent tokens carrying the
// dedented raw text; everything else is split into Newline-terminated
// logical lines whose content the parser feeds to TokenizeExpr.
func Tokenize(src string) ([]Token, error) {
	var toks []Token
	lines := strings.Split(strings.TrimSuffix(maskTripleSpans(src), "\n"), "\n")

	inBody := false
	for i, raw := range lines {
		lineNo := i + 1

		if inBody && len(raw) > 0 && (raw[0] == '\t' || strings.HasPrefix(raw, "    ")) {
			body := raw
			if raw[0] == '\t' {
				body = raw[1:]
			} else {
				body = raw[4:]
			}
			toks = append(toks, Token{Kind: Indent, Value: body, Line: lineNo, Column: 1})
			continue
		}

		rightTrimmed := strings.TrimRight(raw, " \t\r")
		if strings.TrimSpace(rightTrimmed) == "" {
			inBody = false
			toks = append(toks, Token{Kind: Newline, Line: lineNo})
			continue
		}

		leadLen := len(rightTrimmed) - len(strings.TrimLeft(rightTrimmed, " \t"))
		trimmed := rightTrimmed[leadLen:]
		toks = append(toks, Token{Kind: Newline, Value: trimmed, Line: lineNo, Column: leadLen + 1})

		// Whether the following indented lines are body lines is
		// decided here by the cheap syntactic check in
		// looksLikeHeaderOrOpensBody; the parser re-tokenizes trimmed
		// via TokenizeExpr to parse the header itself, but does not
		// revisit this decision.
		inBody = looksLikeHeaderOrOpensBody(trimmed)
	}

	return toks, nil
}

// looksLikeHeaderOrOpensBody is a cheap syntactic pre-filter: any
// non-comment, non-blank top-level line can in principle be followed
// by an indented block only if it is a recipe header (name[params]:
// [deps]). Assignments, aliases, settings, and comments never open a
// body.
func looksLikeHeaderOrOpensBody(trimmed string) bool {
	if strings.HasPrefix(trimmed, "#") {
		return false
	}
	if strings.HasPrefix(trimmed, "[") {
		return true // attribute line; body belongs to the recipe header that follows
	}
	if strings.HasPrefix(trimmed, "alias ") || strings.HasPrefix(trimmed, "set ") {
		return false
	}
	if idx := strings.Index(trimmed, ":="); idx >= 0 {
		return false
	}
	return strings.Contains(trimmed, ":")
}

// TokenizeExpr lexes a single expression fragment (no newlines) into
// tokens, tracking column offsets from startCol so parser errors point
// at the right place in the original file.
func TokenizeExpr(s string, line, startCol int) ([]Token, error) {
	var toks []Token
	runes := []rune(s)
	i := 0
	col := startCol

	peekStr := func(n int) string {
		end := i + n
		if end > len(runes) {
			end = len(runes)
		}
		return string(runes[i:end])
	}

	for i < len(runes) {
		r := runes[i]

		switch {
		case r == ' ' || r == '\t':
			i++
			col++
			continue
		case r == '#':
			// trailing comment: stop.
			i = len(runes)
			continue
		case peekStr(2) == ":=":
			toks = append(toks, Token{Kind: ColonEq, Value: ":=", Line: line, Column: col})
			i += 2
			col += 2
		case peekStr(2) == "==":
			toks = append(toks, Token{Kind: Eq, Value: "==", Line: line, Column: col})
			i += 2
			col += 2
		case peekStr(2) == "!=":
			toks = append(toks, Token{Kind: Ne, Value: "!=", Line: line, Column: col})
			i += 2
			col += 2
		case r == '=':
			toks = append(toks, Token{Kind: Assign, Value: "=", Line: line, Column: col})
			i++
			col++
		case peekStr(3) == "```":
			val, n, err := readTripleBacktick(runes[i:])
			if err != nil {
				return nil, jerrors.New(jerrors.ErrParse, line, col, err.Error())
			}
			toks = append(toks, Token{Kind: Backtick, Value: val, Line: line, Column: col})
			i += n
			col += n
		case r == '`':
			val, n, err := readDelimited(runes[i:], '`')
			if err != nil {
				return nil, jerrors.New(jerrors.ErrParse, line, col, err.Error())
			}
			toks = append(toks, Token{Kind: Backtick, Value: val, Line: line, Column: col})
			i += n
			col += n
		case peekStr(3) == `"""`:
			val, n, err := readTripleQuoted(runes[i:], '"', true)
			if err != nil {
				return nil, jerrors.New(jerrors.ErrParse, line, col, err.Error())
			}
			toks = append(toks, Token{Kind: String, Value: val, Line: line, Column: col})
			i += n
			col += n
		case peekStr(3) == "'''":
			val, n, err := readTripleQuoted(runes[i:], '\'', false)
			if err != nil {
				return nil, jerrors.New(jerrors.ErrParse, line, col, err.Error())
			}
			toks = append(toks, Token{Kind: String, Value: val, Line: line, Column: col})
			i += n
			col += n
		case r == '"':
			val, n, err := readQuoted(runes[i:], '"', true)
			if err != nil {
				return nil, jerrors.New(jerrors.ErrParse, line, col, err.Error())
			}
			toks = append(toks, Token{Kind: String, Value: val, Line: line, Column: col})
			i += n
			col += n
		case r == '\'':
			val, n, err := readQuoted(runes[i:], '\'', false)
			if err != nil {
				return nil, jerrors.New(jerrors.ErrParse, line, col, err.Error())
			}
			toks = append(toks, Token{Kind: String, Value: val, Line: line, Column: col})
			i += n
			col += n
		case r == ':':
			toks = append(toks, Token{Kind: Colon, Value: ":", Line: line, Column: col})
			i++
			col++
		case r == ',':
			toks = append(toks, Token{Kind: Comma, Value: ",", Line: line, Column: col})
			i++
			col++
		case r == '(':
			toks = append(toks, Token{Kind: LParen, Value: "(", Line: line, Column: col})
			i++
			col++
		case r == ')':
			toks = append(toks, Token{Kind: RParen, Value: ")", Line: line, Column: col})
			i++
			col++
		case r == '{':
			toks = append(toks, Token{Kind: LBrace, Value: "{", Line: line, Column: col})
			i++
			col++
		case r == '}':
			toks = append(toks, Token{Kind: RBrace, Value: "}", Line: line, Column: col})
			i++
			col++
		case r == '[':
			toks = append(toks, Token{Kind: LBracket, Value: "[", Line: line, Column: col})
			i++
			col++
		case r == ']':
			toks = append(toks, Token{Kind: RBracket, Value: "]", Line: line, Column: col})
			i++
			col++
		case r == '+':
			toks = append(toks, Token{Kind: Plus, Value: "+", Line: line, Column: col})
			i++
			col++
		case r == '/':
			toks = append(toks, Token{Kind: Slash, Value: "/", Line: line, Column: col})
			i++
			col++
		case r == '*':
			toks = append(toks, Token{Kind: Star, Value: "*", Line: line, Column: col})
			i++
			col++
		case r == '$':
			toks = append(toks, Token{Kind: Dollar, Value: "$", Line: line, Column: col})
			i++
			col++
		case r == '@':
			toks = append(toks, Token{Kind: At, Value: "@", Line: line, Column: col})
			i++
			col++
		case r == '-':
			toks = append(toks, Token{Kind: Dash, Value: "-", Line: line, Column: col})
			i++
			col++
		case isIdentStart(r):
			start := i
			startCol2 := col
			for i < len(runes) && isIdentCont(runes[i]) {
				i++
				col++
			}
			word := string(runes[start:i])
			toks = append(toks, identOrKeyword(word, line, startCol2))
		default:
			return nil, jerrors.New(jerrors.ErrParse, line, col, "unexpected character '"+string(r)+"'")
		}
	}

	toks = append(toks, Token{Kind: EOF, Line: line, Column: col})
	return toks, nil
}

func identOrKeyword(word string, line, col int) Token {
	switch word {
	case "if":
		return Token{Kind: KwIf, Value: word, Line: line, Column: col}
	case "else":
		return Token{Kind: KwElse, Value: word, Line: line, Column: col}
	case "export":
		return Token{Kind: KwExport, Value: word, Line: line, Column: col}
	case "alias":
		return Token{Kind: KwAlias, Value: word, Line: line, Column: col}
	case "set":
		return Token{Kind: KwSet, Value: word, Line: line, Column: col}
	default:
		return Token{Kind: Ident, Value: word, Line: line, Column: col}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '-'
}

// maskedNewline stands in for a newline embedded inside a triple-quoted
// string or triple-backtick command, so Tokenize's line split doesn't
// break the span apart. readTripleQuoted/readTripleBacktick translate
// it back to '\n' when they build the token's Value.
const maskedNewline = '\u2028'

// maskTripleSpans replaces newlines inside ``` / """ / ''' delimited
// spans with maskedNewline so the line-based splitter in Tokenize
// leaves them intact as a single logical line.
func maskTripleSpans(src string) string {
	runes := []rune(src)
	var b strings.Builder
	b.Grow(len(runes))

	i := 0
	for i < len(runes) {
		delim, ok := tripleDelimAt(runes, i)
		if !ok {
			b.WriteRune(runes[i])
			i++
			continue
		}
		b.WriteRune(delim)
		b.WriteRune(delim)
		b.WriteRune(delim)
		i += 3
		for i < len(runes) {
			if d2, ok := tripleDelimAt(runes, i); ok && d2 == delim {
				b.WriteRune(delim)
				b.WriteRune(delim)
				b.WriteRune(delim)
				i += 3
				break
			}
			if runes[i] == '\n' {
				b.WriteRune(maskedNewline)
			} else {
				b.WriteRune(runes[i])
			}
			i++
		}
	}
	return b.String()
}

func tripleDelimAt(runes []rune, i int) (rune, bool) {
	if i+2 >= len(runes) {
		return 0, false
	}
	if runes[i] == '`' && runes[i+1] == '`' && runes[i+2] == '`' {
		return '`', true
	}
	if runes[i] == '"' && runes[i+1] == '"' && runes[i+2] == '"' {
		return '"', true
	}
	if runes[i] == '\'' && runes[i+1] == '\'' && runes[i+2] == '\'' {
		return '\'', true
	}
	return 0, false
}
