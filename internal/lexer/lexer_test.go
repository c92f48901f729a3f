package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/token"
)

func TestNextTokenOperatorsAndPunctuation(t *testing.T) {
	input := `= == + += - -= * *= / /= ! != < <= > >= , ; : . @ ( ) { } [ ]`
	want := []token.Type{
		token.ASSIGN, token.EQ, token.PLUS, token.PLUS_ASSIGN,
		token.MINUS, token.MINUS_ASSIGN, token.ASTERISK, token.ASTERISK_ASSIGN,
		token.SLASH, token.SLASH_ASSIGN, token.BANG, token.NOT_EQ,
		token.LT, token.LTE, token.GT, token.GTE,
		token.COMMA, token.SEMI, token.COLON, token.DOT, token.AT,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET,
		token.EOF,
	}

	l := lexer.New("t.vela", input)
	for i, w := range want {
		tok := l.NextToken()
		assert.Equal(t, w, tok.Type, "token %d", i)
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	input := `class Widget extends Base implements Marker { static extern func new var val this super if else while break continue return true false null as foo }`
	want := []token.Type{
		token.CLASS, token.IDENT, token.EXTENDS, token.IDENT,
		token.IMPLEMENTS, token.IDENT, token.LBRACE,
		token.STATIC, token.EXTERN, token.FUNC, token.NEW,
		token.VAR, token.VAL, token.THIS, token.SUPER,
		token.IF, token.ELSE, token.WHILE, token.BREAK, token.CONTINUE,
		token.RETURN, token.TRUE, token.FALSE, token.NULL, token.AS,
		token.IDENT, token.RBRACE, token.EOF,
	}

	l := lexer.New("t.vela", input)
	for i, w := range want {
		tok := l.NextToken()
		assert.Equal(t, w, tok.Type, "token %d", i)
	}
}

func TestNumberLiterals(t *testing.T) {
	l := lexer.New("t.vela", `42 3.25`)

	tok := l.NextToken()
	assert.Equal(t, token.INT, tok.Type)
	assert.Equal(t, int64(42), tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, token.FLOAT, tok.Type)
	assert.Equal(t, 3.25, tok.Literal)
}

func TestFieldAccessOnIntDoesNotLexAsFloat(t *testing.T) {
	// `1.foo` is INT DOT IDENT, not a malformed float.
	l := lexer.New("t.vela", `1.foo`)
	assert.Equal(t, token.INT, l.NextToken().Type)
	assert.Equal(t, token.DOT, l.NextToken().Type)
	assert.Equal(t, token.IDENT, l.NextToken().Type)
}

func TestStringEscapes(t *testing.T) {
	l := lexer.New("t.vela", `"a=%d\n" "tab\there" "say \"hi\""`)

	tok := l.NextToken()
	assert.Equal(t, token.STRING, tok.Type)
	assert.Equal(t, "a=%d\n", tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, "tab\there", tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, `say "hi"`, tok.Literal)
}

func TestLineCommentsAreSkipped(t *testing.T) {
	input := "a // rest of line\nb"
	l := lexer.New("t.vela", input)

	tok := l.NextToken()
	assert.Equal(t, "a", tok.Lexeme)
	tok = l.NextToken()
	assert.Equal(t, "b", tok.Lexeme)
	assert.Equal(t, 2, tok.Pos.Line)
	assert.Equal(t, token.EOF, l.NextToken().Type)
}

func TestPositions(t *testing.T) {
	input := "ab\n  cd"
	l := lexer.New("t.vela", input)

	tok := l.NextToken()
	assert.Equal(t, token.Position{File: "t.vela", Line: 1, Col: 1}, tok.Pos)

	tok = l.NextToken()
	assert.Equal(t, token.Position{File: "t.vela", Line: 2, Col: 3}, tok.Pos)
}

func TestIllegalByte(t *testing.T) {
	l := lexer.New("t.vela", `#`)
	tok := l.NextToken()
	assert.Equal(t, token.ILLEGAL, tok.Type)
	assert.Equal(t, "#", tok.Lexeme)
}
