// Package lexer turns Vela source text into a stream of tokens.
package lexer

import (
	"strconv"
	"strings"

	"github.com/velalang/velac/internal/token"
)

// Lexer is a hand-rolled scanner, one byte of lookahead.
type Lexer struct {
	file         string
	input        string
	position     int
	readPosition int
	ch           byte
	line         int
	col          int
}

// New creates a Lexer over input, attributing positions to file.
func New(file, input string) *Lexer {
	l := &Lexer{file: file, input: input, line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.col++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) pos() token.Position {
	return token.Position{File: l.file, Line: l.line, Col: l.col}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func newSimple(t token.Type, lexeme string, p token.Position) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Pos: p}
}

// NextToken returns the next token in the stream, ending in a stream of
// token.EOF once the input is exhausted.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()
	p := l.pos()

	switch l.ch {
	case 0:
		return newSimple(token.EOF, "", p)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newSimple(token.EQ, "==", p)
		}
		l.readChar()
		return newSimple(token.ASSIGN, "=", p)
	case '+':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newSimple(token.PLUS_ASSIGN, "+=", p)
		}
		l.readChar()
		return newSimple(token.PLUS, "+", p)
	case '-':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newSimple(token.MINUS_ASSIGN, "-=", p)
		}
		l.readChar()
		return newSimple(token.MINUS, "-", p)
	case '*':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newSimple(token.ASTERISK_ASSIGN, "*=", p)
		}
		l.readChar()
		return newSimple(token.ASTERISK, "*", p)
	case '/':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newSimple(token.SLASH_ASSIGN, "/=", p)
		}
		l.readChar()
		return newSimple(token.SLASH, "/", p)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newSimple(token.NOT_EQ, "!=", p)
		}
		l.readChar()
		return newSimple(token.BANG, "!", p)
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newSimple(token.LTE, "<=", p)
		}
		l.readChar()
		return newSimple(token.LT, "<", p)
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newSimple(token.GTE, ">=", p)
		}
		l.readChar()
		return newSimple(token.GT, ">", p)
	case ',':
		l.readChar()
		return newSimple(token.COMMA, ",", p)
	case ';':
		l.readChar()
		return newSimple(token.SEMI, ";", p)
	case ':':
		l.readChar()
		return newSimple(token.COLON, ":", p)
	case '.':
		l.readChar()
		return newSimple(token.DOT, ".", p)
	case '@':
		l.readChar()
		return newSimple(token.AT, "@", p)
	case '(':
		l.readChar()
		return newSimple(token.LPAREN, "(", p)
	case ')':
		l.readChar()
		return newSimple(token.RPAREN, ")", p)
	case '{':
		l.readChar()
		return newSimple(token.LBRACE, "{", p)
	case '}':
		l.readChar()
		return newSimple(token.RBRACE, "}", p)
	case '[':
		l.readChar()
		return newSimple(token.LBRACKET, "[", p)
	case ']':
		l.readChar()
		return newSimple(token.RBRACKET, "]", p)
	case '"':
		return l.readString(p)
	default:
		if isLetter(l.ch) {
			return l.readIdentifier(p)
		}
		if isDigit(l.ch) {
			return l.readNumber(p)
		}
		lex := string(l.ch)
		l.readChar()
		return newSimple(token.ILLEGAL, lex, p)
	}
}

func (l *Lexer) readIdentifier(p token.Position) token.Token {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(lit), Lexeme: lit, Pos: p}
}

func (l *Lexer) readNumber(p token.Position) token.Token {
	start := l.position
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lit := l.input[start:l.position]
	if isFloat {
		v, _ := strconv.ParseFloat(lit, 64)
		return token.Token{Type: token.FLOAT, Lexeme: lit, Pos: p, Literal: v}
	}
	v, _ := strconv.ParseInt(lit, 10, 64)
	return token.Token{Type: token.INT, Lexeme: lit, Pos: p, Literal: v}
}

func (l *Lexer) readString(p token.Position) token.Token {
	var sb strings.Builder
	l.readChar() // consume opening quote
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	s := sb.String()
	return token.Token{Type: token.STRING, Lexeme: s, Pos: p, Literal: s}
}

func isLetter(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
