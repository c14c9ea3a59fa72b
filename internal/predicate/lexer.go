package predicate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenNumber
	tokenOperator
	tokenPunct
)

type token struct {
	kind tokenKind
	text string
	// pos is the byte offset of the token in the input.
	pos int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

type lexer struct {
	input string
	pos   int
}

// tokenize splits the input into tokens, ending with a tokenEOF.
func tokenize(input string) ([]token, error) {
	l := &lexer{input: input}

	var tokens []token

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)

		if tok.kind == tokenEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()

	start := l.pos
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, pos: start}, nil
	}

	c := l.input[l.pos]

	switch {
	case c == '\'' || c == '"':
		s, err := l.readString(c)
		if err != nil {
			return token{}, err
		}

		return token{kind: tokenString, text: s, pos: start}, nil

	case isDigit(c) || (c == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])):
		return token{kind: tokenNumber, text: l.readNumber(), pos: start}, nil

	case c == '_' || c < utf8.RuneSelf && unicode.IsLetter(rune(c)):
		for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
			l.pos++
		}

		return token{kind: tokenIdent, text: l.input[start:l.pos], pos: start}, nil

	case strings.ContainsRune("[](),-", rune(c)):
		l.pos++
		return token{kind: tokenPunct, text: string(c), pos: start}, nil

	case strings.ContainsRune("=!<>", rune(c)):
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			l.pos++
		}

		op := l.input[start:l.pos]
		if op == "=" || op == "!" {
			return token{}, syntaxErrorf(start, "unexpected %q", op)
		}

		return token{kind: tokenOperator, text: op, pos: start}, nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])

	return token{}, syntaxErrorf(start, "unexpected character %q", r)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) readString(quote byte) (string, error) {
	start := l.pos
	l.pos++

	var sb strings.Builder

	for l.pos < len(l.input) {
		c := l.input[l.pos]

		switch c {
		case quote:
			l.pos++
			return sb.String(), nil
		case '\\':
			if l.pos+1 >= len(l.input) {
				return "", syntaxErrorf(start, "unterminated string")
			}

			l.pos++
			sb.WriteByte(unescape(l.input[l.pos]))
		default:
			sb.WriteByte(c)
		}

		l.pos++
	}

	return "", syntaxErrorf(start, "unterminated string")
}

func (l *lexer) readNumber() string {
	start := l.pos

	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.') {
		l.pos++
	}

	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.pos++
		}

		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}

	return l.input[start:l.pos]
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c byte) bool {
	return c == '_' || isDigit(c) || c < utf8.RuneSelf && unicode.IsLetter(rune(c))
}
