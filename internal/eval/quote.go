package eval

import "strings"

// Quote renders s as a POSIX-safe single-quoted shell literal. Every
// embedded single quote is closed, escaped, and reopened (`'\''`), the
// standard trick for quoting arbitrary byte strings in POSIX sh. For
// every byte string s, `eval "printf %s $(Quote(s))"` reproduces s.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			b.WriteString(`'\''`)
			continue
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('\'')
	return b.String()
}
