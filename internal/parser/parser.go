// Package parser is a Pratt recursive-descent parser that turns a
// token stream from package lexer into an internal/ast.Module. It
// performs no semantic checks of its own; those belong to package
// analyzer.
package parser

import (
	"fmt"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/token"
	"github.com/velalang/velac/internal/typesystem"
)

// Operator precedence, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGNP // = += -= *= /=
	EQUALS  // == <
	SUM     // + -
	PRODUCT // * /
	PREFIX  // -x !x
	CAST    // expr as Type
	POSTFIX // . [ (
)

var precedences = map[token.Type]int{
	token.ASSIGN:          ASSIGNP,
	token.PLUS_ASSIGN:     ASSIGNP,
	token.MINUS_ASSIGN:    ASSIGNP,
	token.ASTERISK_ASSIGN: ASSIGNP,
	token.SLASH_ASSIGN:    ASSIGNP,
	token.EQ:              EQUALS,
	token.LT:              EQUALS,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.ASTERISK:        PRODUCT,
	token.SLASH:           PRODUCT,
	token.AS:              CAST,
	token.DOT:             POSTFIX,
	token.LBRACKET:        POSTFIX,
	token.LPAREN:          POSTFIX,
}

var binOps = map[token.Type]ast.BinOpKind{
	token.ASSIGN:          ast.OpAssign,
	token.PLUS_ASSIGN:     ast.OpAddAssign,
	token.MINUS_ASSIGN:    ast.OpSubAssign,
	token.ASTERISK_ASSIGN: ast.OpMulAssign,
	token.SLASH_ASSIGN:    ast.OpDivAssign,
	token.EQ:              ast.OpEq,
	token.LT:              ast.OpLt,
	token.PLUS:            ast.OpAdd,
	token.MINUS:           ast.OpSub,
	token.ASTERISK:        ast.OpMul,
	token.SLASH:           ast.OpDiv,
}

type (
	prefixParseFn func() (ast.Expr, *diagnostics.Error)
	infixParseFn  func(ast.Expr) (ast.Expr, *diagnostics.Error)
)

// Parser holds the state of one parse over a single file.
type Parser struct {
	l    *lexer.Lexer
	file string

	cur  token.Token
	peek token.Token

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New creates a Parser over l and primes the two-token lookahead.
func New(file string, l *lexer.Lexer) *Parser {
	p := &Parser{l: l, file: file}

	p.prefixFns = map[token.Type]prefixParseFn{}
	p.registerPrefix(token.IDENT, p.parseIdent)
	p.registerPrefix(token.INT, p.parseIntLit)
	p.registerPrefix(token.FLOAT, p.parseFloatLit)
	p.registerPrefix(token.STRING, p.parseStringLit)
	p.registerPrefix(token.TRUE, p.parseBoolLit)
	p.registerPrefix(token.FALSE, p.parseBoolLit)
	p.registerPrefix(token.NULL, p.parseNullLit)
	p.registerPrefix(token.THIS, p.parseThis)
	p.registerPrefix(token.SUPER, p.parseSuper)
	p.registerPrefix(token.NEW, p.parseNew)
	p.registerPrefix(token.VAR, p.parseVar)
	p.registerPrefix(token.VAL, p.parseVar)
	p.registerPrefix(token.MINUS, p.parseUnary)
	p.registerPrefix(token.BANG, p.parseUnary)
	p.registerPrefix(token.LPAREN, p.parseParenOrTuple)
	p.registerPrefix(token.LBRACE, p.parseBlock)
	p.registerPrefix(token.IF, p.parseIf)
	p.registerPrefix(token.WHILE, p.parseWhile)
	p.registerPrefix(token.BREAK, p.parseBreak)
	p.registerPrefix(token.CONTINUE, p.parseContinue)
	p.registerPrefix(token.RETURN, p.parseReturn)

	p.infixFns = map[token.Type]infixParseFn{}
	for tt := range binOps {
		p.registerInfix(tt, p.parseBinOp)
	}
	p.registerInfix(token.DOT, p.parseField)
	p.registerInfix(token.LBRACKET, p.parseIndex)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.AS, p.parseCast)

	p.next()
	p.next()
	return p
}

func (p *Parser) registerPrefix(tt token.Type, fn prefixParseFn) { p.prefixFns[tt] = fn }
func (p *Parser) registerInfix(tt token.Type, fn infixParseFn)   { p.infixFns[tt] = fn }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(tt token.Type) bool { return p.cur.Type == tt }

func (p *Parser) expect(tt token.Type) *diagnostics.Error {
	if p.curIs(tt) {
		p.next()
		return nil
	}
	return diagnostics.NewSyntax(p.cur.Pos, fmt.Sprintf("expected %s, got %s", tt, p.cur.Type))
}

func (p *Parser) span(start token.Position) token.Span {
	return token.Span{Min: start, Max: p.cur.Pos}
}

// ---- Module level ----

// ParseModule parses one complete compilation unit: a package clause,
// zero or more imports, then top-level class/struct declarations.
func (p *Parser) ParseModule() (*ast.Module, *diagnostics.Error) {
	mod := &ast.Module{}

	if err := p.expect(token.PACKAGE); err != nil {
		return nil, err
	}
	pkgSegs, err := p.parseDottedSegments()
	if err != nil {
		return nil, err
	}
	mod.Package = typesystem.NewPath(pkgSegs...)

	for p.curIs(token.IMPORT) {
		p.next()
		segs, err := p.parseDottedSegments()
		if err != nil {
			return nil, err
		}
		mod.Imports = append(mod.Imports, typesystem.NewPath(segs...))
	}

	for !p.curIs(token.EOF) {
		def, err := p.parseTypeDef()
		if err != nil {
			return nil, err
		}
		mod.Defs = append(mod.Defs, def)
	}
	return mod, nil
}

func (p *Parser) parseDottedSegments() ([]string, *diagnostics.Error) {
	if !p.curIs(token.IDENT) {
		return nil, diagnostics.NewSyntax(p.cur.Pos, "expected identifier")
	}
	segs := []string{p.cur.Lexeme}
	p.next()
	for p.curIs(token.DOT) {
		p.next()
		if !p.curIs(token.IDENT) {
			return nil, diagnostics.NewSyntax(p.cur.Pos, "expected identifier")
		}
		segs = append(segs, p.cur.Lexeme)
		p.next()
	}
	return segs, nil
}

var typeDefMods = map[token.Type]ast.MemberMod{
	token.STATIC:  ast.ModStatic,
	token.PUBLIC:  ast.ModPublic,
	token.PRIVATE: ast.ModPrivate,
	token.EXTERN:  ast.ModExtern,
}

func (p *Parser) parseModSet() ast.ModSet {
	mods := ast.ModSet{}
	for {
		mod, ok := typeDefMods[p.cur.Type]
		if !ok {
			return mods
		}
		mods[mod] = true
		p.next()
	}
}

// parseAttributes parses zero or more `@Name("literal")` attributes
// preceding a member.
func (p *Parser) parseAttributes() (map[string]ast.Const, *diagnostics.Error) {
	var atts map[string]ast.Const
	for p.curIs(token.AT) {
		p.next()
		if !p.curIs(token.IDENT) {
			return nil, diagnostics.NewSyntax(p.cur.Pos, "expected attribute name")
		}
		name := p.cur.Lexeme
		p.next()
		if err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		if !p.curIs(token.STRING) {
			return nil, diagnostics.NewSyntax(p.cur.Pos, "expected string literal attribute argument")
		}
		val := &ast.StringConst{Pos: token.SpanAt(p.cur.Pos), Value: p.cur.Literal.(string)}
		p.next()
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		if atts == nil {
			atts = map[string]ast.Const{}
		}
		atts[name] = val
	}
	return atts, nil
}

func (p *Parser) parseTypeDef() (*ast.TypeDef, *diagnostics.Error) {
	start := p.cur.Pos
	mods := p.parseModSet()

	switch p.cur.Type {
	case token.CLASS:
		p.next()
		path, err := p.parseTypePath()
		if err != nil {
			return nil, err
		}
		var extends *typesystem.Path
		var implements []typesystem.Path
		if p.curIs(token.EXTENDS) {
			p.next()
			ep, err := p.parseTypePath()
			if err != nil {
				return nil, err
			}
			extends = &ep
		}
		if p.curIs(token.IMPLEMENTS) {
			p.next()
			for {
				ip, err := p.parseTypePath()
				if err != nil {
					return nil, err
				}
				implements = append(implements, ip)
				if !p.curIs(token.COMMA) {
					break
				}
				p.next()
			}
		}
		members, err := p.parseMemberBlock()
		if err != nil {
			return nil, err
		}
		return &ast.TypeDef{
			Pos: p.span(start), Path: path, Mods: mods,
			Kind:    ast.ClassKind{Extends: extends, Implements: implements},
			Members: members,
		}, nil

	case token.STRUCT:
		p.next()
		path, err := p.parseTypePath()
		if err != nil {
			return nil, err
		}
		members, err := p.parseMemberBlock()
		if err != nil {
			return nil, err
		}
		return &ast.TypeDef{Pos: p.span(start), Path: path, Mods: mods, Kind: ast.StructKind{}, Members: members}, nil

	default:
		return nil, diagnostics.NewSyntax(p.cur.Pos, "expected 'class' or 'struct'")
	}
}

func (p *Parser) parseTypePath() (typesystem.Path, *diagnostics.Error) {
	segs, err := p.parseDottedSegments()
	if err != nil {
		return typesystem.Path{}, err
	}
	return typesystem.NewPath(segs...), nil
}

func (p *Parser) parseMemberBlock() ([]*ast.MemberDef, *diagnostics.Error) {
	if err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var members []*ast.MemberDef
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return members, nil
}

func (p *Parser) parseMember() (*ast.MemberDef, *diagnostics.Error) {
	start := p.cur.Pos
	atts, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	mods := p.parseModSet()

	switch p.cur.Type {
	case token.VAR, token.VAL:
		variability := ast.Variable
		if p.cur.Type == token.VAL {
			variability = ast.Constant
		}
		p.next()
		if !p.curIs(token.IDENT) {
			return nil, diagnostics.NewSyntax(p.cur.Pos, "expected field name")
		}
		name := p.cur.Lexeme
		p.next()
		var typeAnn ast.Type
		if p.curIs(token.COLON) {
			p.next()
			typeAnn, err = p.parseType()
			if err != nil {
				return nil, err
			}
		}
		var init ast.Expr
		if p.curIs(token.ASSIGN) {
			p.next()
			init, err = p.parseExpr(LOWEST)
			if err != nil {
				return nil, err
			}
		}
		return &ast.MemberDef{
			Pos: p.span(start), Name: name, Mods: mods, Atts: atts,
			Kind: ast.VarMember{Variability: variability, TypeAnn: typeAnn, Init: init},
		}, nil

	case token.FUNC:
		p.next()
		if !p.curIs(token.IDENT) {
			return nil, diagnostics.NewSyntax(p.cur.Pos, "expected function name")
		}
		name := p.cur.Lexeme
		p.next()
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		var body ast.Expr
		if p.curIs(token.LBRACE) {
			body, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
		return &ast.MemberDef{
			Pos: p.span(start), Name: name, Mods: mods, Atts: atts,
			Kind: ast.FuncMember{Params: params, Ret: ret, Body: body},
		}, nil

	case token.NEW:
		p.next()
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.MemberDef{
			Pos: p.span(start), Name: "new", Mods: mods, Atts: atts,
			Kind: ast.ConstrMember{Params: params, Body: body},
		}, nil

	default:
		return nil, diagnostics.NewSyntax(p.cur.Pos, "expected 'var', 'val', 'func' or 'new'")
	}
}

func (p *Parser) parseParams() ([]ast.Param, *diagnostics.Error) {
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.curIs(token.RPAREN) {
		start := p.cur.Pos
		if !p.curIs(token.IDENT) {
			return nil, diagnostics.NewSyntax(p.cur.Pos, "expected parameter name")
		}
		name := p.cur.Lexeme
		p.next()
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Pos: p.span(start), Name: name, Type: ty})
		if !p.curIs(token.COMMA) {
			break
		}
		p.next()
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// ---- Types ----

var primTypeNames = map[token.Type]string{
	token.INT_TY: "int", token.FLOAT_TY: "float", token.BOOL_TY: "bool",
	token.SHORT_TY: "short", token.STRING_TY: "string", token.VOID_TY: "void",
}

func (p *Parser) parseType() (ast.Type, *diagnostics.Error) {
	start := p.cur.Pos
	if name, ok := primTypeNames[p.cur.Type]; ok {
		p.next()
		return &ast.PrimType{Pos: p.span(start), Name: name}, nil
	}
	if p.curIs(token.LPAREN) {
		p.next()
		var elems []ast.Type
		for !p.curIs(token.RPAREN) {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
			if !p.curIs(token.COMMA) {
				break
			}
			p.next()
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.TupleType{Pos: p.span(start), Elems: elems}, nil
	}
	if p.curIs(token.IDENT) {
		segs, err := p.parseDottedSegments()
		if err != nil {
			return nil, err
		}
		return &ast.PathType{Pos: p.span(start), Segments: segs}, nil
	}
	return nil, diagnostics.NewSyntax(p.cur.Pos, "expected a type")
}

// ---- Expressions (Pratt) ----

// curPrecedence is the binding power of the operator at cur. Every
// prefix function leaves cur on the first token after its expression,
// so the infix loop below always finds the candidate operator at cur,
// never at peek.
func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parseExpr(precedence int) (ast.Expr, *diagnostics.Error) {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		return nil, diagnostics.NewSyntax(p.cur.Pos, fmt.Sprintf("unexpected token %s in expression", p.cur.Type))
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}
	for precedence < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur.Type]
		if !ok {
			return left, nil
		}
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseIdent() (ast.Expr, *diagnostics.Error) {
	e := &ast.IdentExpr{Pos: token.SpanAt(p.cur.Pos), Name: p.cur.Lexeme}
	p.next()
	return e, nil
}

func (p *Parser) parseIntLit() (ast.Expr, *diagnostics.Error) {
	v := p.cur.Literal.(int64)
	e := &ast.ConstExpr{Pos: token.SpanAt(p.cur.Pos), C: &ast.IntConst{Pos: token.SpanAt(p.cur.Pos), Value: v}}
	p.next()
	return e, nil
}

func (p *Parser) parseFloatLit() (ast.Expr, *diagnostics.Error) {
	v := p.cur.Literal.(float64)
	e := &ast.ConstExpr{Pos: token.SpanAt(p.cur.Pos), C: &ast.FloatConst{Pos: token.SpanAt(p.cur.Pos), Value: v}}
	p.next()
	return e, nil
}

func (p *Parser) parseStringLit() (ast.Expr, *diagnostics.Error) {
	v := p.cur.Literal.(string)
	e := &ast.ConstExpr{Pos: token.SpanAt(p.cur.Pos), C: &ast.StringConst{Pos: token.SpanAt(p.cur.Pos), Value: v}}
	p.next()
	return e, nil
}

func (p *Parser) parseBoolLit() (ast.Expr, *diagnostics.Error) {
	v := p.cur.Type == token.TRUE
	e := &ast.ConstExpr{Pos: token.SpanAt(p.cur.Pos), C: &ast.BoolConst{Pos: token.SpanAt(p.cur.Pos), Value: v}}
	p.next()
	return e, nil
}

func (p *Parser) parseNullLit() (ast.Expr, *diagnostics.Error) {
	e := &ast.ConstExpr{Pos: token.SpanAt(p.cur.Pos), C: &ast.NullConst{Pos: token.SpanAt(p.cur.Pos)}}
	p.next()
	return e, nil
}

func (p *Parser) parseThis() (ast.Expr, *diagnostics.Error) {
	e := &ast.ThisExpr{Pos: token.SpanAt(p.cur.Pos)}
	p.next()
	return e, nil
}

func (p *Parser) parseSuper() (ast.Expr, *diagnostics.Error) {
	e := &ast.SuperExpr{Pos: token.SpanAt(p.cur.Pos)}
	p.next()
	return e, nil
}

func (p *Parser) parseNew() (ast.Expr, *diagnostics.Error) {
	start := p.cur.Pos
	p.next()
	segs, err := p.parseDottedSegments()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &ast.NewExpr{Pos: p.span(start), Path: segs, Args: args}, nil
}

func (p *Parser) parseVar() (ast.Expr, *diagnostics.Error) {
	start := p.cur.Pos
	variability := ast.Variable
	if p.cur.Type == token.VAL {
		variability = ast.Constant
	}
	p.next()
	if !p.curIs(token.IDENT) {
		return nil, diagnostics.NewSyntax(p.cur.Pos, "expected variable name")
	}
	name := p.cur.Lexeme
	p.next()
	var typeAnn ast.Type
	var err *diagnostics.Error
	if p.curIs(token.COLON) {
		p.next()
		typeAnn, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	init, err := p.parseExpr(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.VarExpr{Pos: p.span(start), Variability: variability, TypeAnn: typeAnn, Name: name, Init: init}, nil
}

func (p *Parser) parseUnary() (ast.Expr, *diagnostics.Error) {
	start := p.cur.Pos
	op := ast.OpNeg
	if p.cur.Type == token.BANG {
		op = ast.OpNot
	}
	p.next()
	operand, err := p.parseExpr(PREFIX)
	if err != nil {
		return nil, err
	}
	return &ast.UnOpExpr{Pos: p.span(start), Op: op, A: operand}, nil
}

func (p *Parser) parseParenOrTuple() (ast.Expr, *diagnostics.Error) {
	start := p.cur.Pos
	p.next()
	var elems []ast.Expr
	for !p.curIs(token.RPAREN) {
		e, err := p.parseExpr(LOWEST)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if !p.curIs(token.COMMA) {
			break
		}
		p.next()
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if len(elems) == 1 {
		return &ast.ParenExpr{Pos: p.span(start), E: elems[0]}, nil
	}
	return &ast.TupleExpr{Pos: p.span(start), Elems: elems}, nil
}

func (p *Parser) parseBlock() (ast.Expr, *diagnostics.Error) {
	start := p.cur.Pos
	if err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var exprs []ast.Expr
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		// `;` may separate the expressions of a block, as in the
		// single-line form the pretty-printer emits.
		if p.curIs(token.SEMI) {
			p.next()
			continue
		}
		e, err := p.parseExpr(LOWEST)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.BlockExpr{Pos: p.span(start), Exprs: exprs}, nil
}

func (p *Parser) parseIf() (ast.Expr, *diagnostics.Error) {
	start := p.cur.Pos
	p.next()
	cond, err := p.parseExpr(LOWEST)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Expr
	if p.curIs(token.ELSE) {
		p.next()
		if p.curIs(token.IF) {
			elseBranch, err = p.parseIf()
		} else {
			elseBranch, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfExpr{Pos: p.span(start), Cond: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) parseWhile() (ast.Expr, *diagnostics.Error) {
	start := p.cur.Pos
	p.next()
	cond, err := p.parseExpr(LOWEST)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileExpr{Pos: p.span(start), Cond: cond, Body: body}, nil
}

func (p *Parser) parseBreak() (ast.Expr, *diagnostics.Error) {
	e := &ast.BreakExpr{Pos: token.SpanAt(p.cur.Pos)}
	p.next()
	return e, nil
}

func (p *Parser) parseContinue() (ast.Expr, *diagnostics.Error) {
	e := &ast.ContinueExpr{Pos: token.SpanAt(p.cur.Pos)}
	p.next()
	return e, nil
}

func (p *Parser) parseReturn() (ast.Expr, *diagnostics.Error) {
	start := p.cur.Pos
	p.next()
	if p.curIs(token.RBRACE) || p.curIs(token.SEMI) || p.curIs(token.EOF) {
		return &ast.ReturnExpr{Pos: p.span(start)}, nil
	}
	e, err := p.parseExpr(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.ReturnExpr{Pos: p.span(start), E: e}, nil
}

func (p *Parser) parseBinOp(left ast.Expr) (ast.Expr, *diagnostics.Error) {
	op := binOps[p.cur.Type]
	start := left.Span().Min
	prec := precedences[p.cur.Type]
	p.next()
	right, err := p.parseExpr(prec)
	if err != nil {
		return nil, err
	}
	return &ast.BinOpExpr{Pos: p.span(start), Op: op, A: left, B: right}, nil
}

func (p *Parser) parseField(obj ast.Expr) (ast.Expr, *diagnostics.Error) {
	p.next()
	if !p.curIs(token.IDENT) {
		return nil, diagnostics.NewSyntax(p.cur.Pos, "expected field name")
	}
	name := p.cur.Lexeme
	start := obj.Span().Min
	p.next()
	return &ast.FieldExpr{Pos: p.span(start), Obj: obj, Name: name}, nil
}

func (p *Parser) parseIndex(obj ast.Expr) (ast.Expr, *diagnostics.Error) {
	start := obj.Span().Min
	p.next()
	idx, err := p.parseExpr(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ArrayIndexExpr{Pos: p.span(start), Obj: obj, Index: idx}, nil
}

func (p *Parser) parseCall(callee ast.Expr) (ast.Expr, *diagnostics.Error) {
	start := callee.Span().Min
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &ast.CallExpr{Pos: p.span(start), Callee: callee, Args: args}, nil
}

func (p *Parser) parseArgs() ([]ast.Expr, *diagnostics.Error) {
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.curIs(token.RPAREN) {
		e, err := p.parseExpr(LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !p.curIs(token.COMMA) {
			break
		}
		p.next()
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseCast(e ast.Expr) (ast.Expr, *diagnostics.Error) {
	start := e.Span().Min
	p.next()
	to, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.CastExpr{Pos: p.span(start), E: e, To: to}, nil
}
