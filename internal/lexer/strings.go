package lexer

import (
	"errors"
	"strings"
)

// readQuoted reads a single-line quoted string starting at runes[0]
// (the opening quote) and returns its unescaped value and the number
// of runes consumed including both quotes. Double-quoted strings
// honor C-style escapes; single-quoted strings are raw.
func readQuoted(runes []rune, quote rune, escapes bool) (string, int, error) {
	var b strings.Builder
	i := 1
	for i < len(runes) {
		r := runes[i]
		if r == quote {
			return b.String(), i + 1, nil
		}
		if escapes && r == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			switch next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteRune('\\')
				b.WriteRune(next)
			}
			i += 2
			continue
		}
		b.WriteRune(r)
		i++
	}
	return "", 0, errors.New("unterminated string literal")
}

// readTripleQuoted reads a """ or ''' delimited multi-line string.
func readTripleQuoted(runes []rune, quote rune, escapes bool) (string, int, error) {
	i := 3
	var b strings.Builder
	for i < len(runes) {
		if i+2 < len(runes) && runes[i] == quote && runes[i+1] == quote && runes[i+2] == quote {
			return b.String(), i + 3, nil
		}
		if i+2 == len(runes) && runes[i] == quote && runes[i+1] == quote {
			// malformed; fall through to error below
			break
		}
		r := runes[i]
		if r == maskedNewline {
			b.WriteByte('\n')
			i++
			continue
		}
		if escapes && r == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			switch next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteRune('\\')
				b.WriteRune(next)
			}
			i += 2
			continue
		}
		b.WriteRune(r)
		i++
	}
	return "", 0, errors.New("unterminated triple-quoted string literal")
}

// readDelimited reads a single-line backtick command.
func readDelimited(runes []rune, delim rune) (string, int, error) {
	var b strings.Builder
	i := 1
	for i < len(runes) {
		if runes[i] == delim {
			return b.String(), i + 1, nil
		}
		b.WriteRune(runes[i])
		i++
	}
	return "", 0, errors.New("unterminated backtick command")
}

// readTripleBacktick reads a ``` delimited command (single logical
// token even though, in a full multi-line body, its content may span
// several physical source lines joined by the caller before lexing).
func readTripleBacktick(runes []rune) (string, int, error) {
	i := 3
	var b strings.Builder
	for i < len(runes) {
		if i+2 < len(runes) && runes[i] == '`' && runes[i+1] == '`' && runes[i+2] == '`' {
			return b.String(), i + 3, nil
		}
		if runes[i] == maskedNewline {
			b.WriteByte('\n')
			i++
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return "", 0, errors.New("unterminated triple-backtick command")
}
