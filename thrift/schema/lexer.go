package schema

import (
	"fmt"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexer tokenizes Thrift IDL text.  It recognises identifiers (including
// dotted references), numeric and string literals and single-character
// punctuation, and discards whitespace plus #, // and /* */ comments.
type lexer struct {
	src    []rune
	pos    int
	line   int
	peeked *token
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1}
}

func (l *lexer) peek() token {
	if l.peeked == nil {
		t := l.scan()
		l.peeked = &t
	}
	return *l.peeked
}

func (l *lexer) next() token {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t
	}
	return l.scan()
}

func (l *lexer) scan() token {
	l.skipTrivia()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}
	}
	r := l.src[l.pos]
	switch {
	case r == '"' || r == '\'':
		return l.scanString(r)
	case unicode.IsLetter(r) || r == '_':
		return l.scanWhile(tokIdent, isIdentRune)
	case unicode.IsDigit(r) || r == '-' || r == '+':
		return l.scanWhile(tokNumber, isNumberRune)
	default:
		l.pos++
		return token{kind: tokPunct, text: string(r), line: l.line}
	}
}

func (l *lexer) skipTrivia() {
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case r == '\n':
			l.line++
			l.pos++
		case unicode.IsSpace(r):
			l.pos++
		case r == '#':
			l.skipLine()
		case r == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			l.skipLine()
		case r == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			l.pos += 2
			for l.pos < len(l.src) {
				if l.src[l.pos] == '\n' {
					l.line++
				}
				if l.src[l.pos] == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
					l.pos += 2
					break
				}
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) skipLine() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func (l *lexer) scanString(quote rune) token {
	start := l.line
	l.pos++
	var out []rune
	for l.pos < len(l.src) && l.src[l.pos] != quote {
		if l.src[l.pos] == '\n' {
			l.line++
		}
		out = append(out, l.src[l.pos])
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++ // closing quote
	}
	return token{kind: tokString, text: string(out), line: start}
}

func (l *lexer) scanWhile(kind tokenKind, accept func(rune) bool) token {
	start := l.pos
	for l.pos < len(l.src) && accept(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: kind, text: string(l.src[start:l.pos]), line: l.line}
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}

func isNumberRune(r rune) bool {
	return unicode.IsDigit(r) || r == '.' || r == 'x' || r == 'X' || r == '-' || r == '+' ||
		(r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (t token) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", t.line, fmt.Sprintf(format, args...))
}
