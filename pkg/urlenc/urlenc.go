// Package urlenc implements the two percent-encodings PayFast expects: the
// component encoding used for the signature string and the form encoding
// used for the request body. Both map space to '+' and differ only in which
// punctuation is left unescaped.
package urlenc

import "strings"

const upperhex = "0123456789ABCDEF"

// Pair is one key/value of an ordered form.
type Pair struct {
	Key   string
	Value string
}

// Component escapes s like ECMAScript encodeURIComponent, then rewrites
// %20 as '+'. Unreserved: A-Z a-z 0-9 - _ . ! ~ * ' ( )
func Component(s string) string {
	return escape(s, componentSafe)
}

// FormValue escapes s with application/x-www-form-urlencoded rules.
// Unreserved: A-Z a-z 0-9 * - . _
func FormValue(s string) string {
	return escape(s, formSafe)
}

// Form serializes pairs in the given order. url.Values sorts keys, which
// the gateway does not tolerate.
func Form(pairs []Pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(FormValue(p.Key))
		b.WriteByte('=')
		b.WriteString(FormValue(p.Value))
	}
	return b.String()
}

func escape(s string, safe func(byte) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case safe(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func componentSafe(c byte) bool {
	if isAlnum(c) {
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

func formSafe(c byte) bool {
	if isAlnum(c) {
		return true
	}
	switch c {
	case '*', '-', '.', '_':
		return true
	}
	return false
}
