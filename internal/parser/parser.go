// Package parser builds an AISpec AST directly from lexer tokens. Unlike a
// two-stage grammar → parse-tree → transformer pipeline, this parser folds
// the AISpec grammar's transformation rules into the descent itself: each
// production method returns the typed ast value it produces, not an
// intermediate parse-tree node.
package parser

import (
	"fmt"

	"github.com/spak-project/spak/internal/ast"
	apperrors "github.com/spak-project/spak/internal/errors"
	"github.com/spak-project/spak/internal/lexer"
)

// Parser consumes tokens from a Lexer and produces a *ast.SystemSpec.
//
// The grammar is LL(1): every production is decided by the current token
// alone, with one exception — opaque bodies. Deliberately there is no
// token-level lookahead buffer, because prefetching a token past an opening
// '{' or ':' would tokenize the first fragment of an opaque body as
// structural AISpec syntax before the lexer's raw scan ever sees it.
// Keeping the parser at exactly one token of lookahead means the
// underlying lexer's rune position is always known the instant cur becomes
// LBRACE or COLON, which is what lets scanBracedBody/scanUnbracedBody read
// the raw body text from the correct offset.
type Parser struct {
	l      *lexer.Lexer
	file   string
	source string

	cur lexer.Token

	errors []*apperrors.ParseError
}

// New creates a Parser over source. file is used in error messages and may
// be empty for in-memory sources.
func New(source, file string) *Parser {
	p := &Parser{l: lexer.New(source), file: file, source: source}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.l.NextToken()
}

func (p *Parser) addError(pos lexer.Position, message, token string) {
	p.errors = append(p.errors, apperrors.NewParseError(pos, message, token, p.source, p.file))
}

func (p *Parser) curIs(tt lexer.TokenType) bool { return p.cur.Type == tt }

// expect checks the current token's type, records an error if it mismatches,
// and advances past it regardless (best-effort recovery for a single parse).
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.cur
	if tok.Type != tt {
		p.addError(tok.Pos, fmt.Sprintf("expected %s", tt), tok.Literal)
	}
	p.advance()
	return tok
}

// ParseSystem parses a full AISpec source document: an optional `meta`
// block followed by exactly one `system` block.
func (p *Parser) ParseSystem() (*ast.SystemSpec, []*apperrors.ParseError) {
	meta := map[string]string{}
	var metaKeys []string

	if p.curIs(lexer.META) {
		meta, metaKeys = p.parseMeta()
	}

	if !p.curIs(lexer.SYSTEM) {
		p.addError(p.cur.Pos, "expected 'system' declaration", p.cur.Literal)
		return nil, p.errors
	}

	spec := p.parseSystemBody()
	spec.Meta = meta
	spec.MetaKeys = metaKeys

	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return spec, nil
}

func (p *Parser) parseMeta() (map[string]string, []string) {
	p.advance() // 'meta'
	p.expect(lexer.LBRACE)

	meta := map[string]string{}
	var keys []string
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		key := p.cur.Literal
		p.advance() // NAME (possibly a keyword token; metadata keys are free-form)
		p.expect(lexer.ASSIGN)
		val := p.expect(lexer.STRING).Literal
		if _, exists := meta[key]; !exists {
			keys = append(keys, key)
		}
		meta[key] = val // later keys override earlier ones
		p.skipOptionalSemi()
	}
	p.expect(lexer.RBRACE)
	return meta, keys
}

func (p *Parser) skipOptionalSemi() {
	if p.curIs(lexer.SEMI) {
		p.advance()
	}
}

func (p *Parser) parseSystemBody() *ast.SystemSpec {
	p.advance() // 'system'
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.LBRACE)

	spec := &ast.SystemSpec{Name: name}

	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		switch p.cur.Type {
		case lexer.COMPONENT:
			spec.Components = append(spec.Components, p.parseComponent())
		case lexer.EFFECT:
			spec.Effects = append(spec.Effects, p.parseEffect())
		case lexer.WORKFLOW:
			spec.Workflows = append(spec.Workflows, p.parseWorkflow())
		case lexer.IMPORT:
			p.advance()
			spec.Imports = append(spec.Imports, p.expect(lexer.IDENT).Literal)
			p.skipOptionalSemi()
		default:
			p.addError(p.cur.Pos, "expected component, effect, workflow, or import declaration", p.cur.Literal)
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return spec
}

func (p *Parser) parseComponent() ast.ComponentSpec {
	p.advance() // 'component'
	c := ast.ComponentSpec{Name: p.expect(lexer.IDENT).Literal}
	p.expect(lexer.LBRACE)

	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		switch p.cur.Type {
		case lexer.DESCRIPTION:
			p.advance()
			p.expect(lexer.COLON)
			c.Description = p.expect(lexer.STRING).Literal // last assignment wins
			p.skipOptionalSemi()
		case lexer.STATE:
			c.States = append(c.States, p.parseState())
		case lexer.FUNCTION:
			c.Functions = append(c.Functions, p.parseFunction())
		case lexer.INVARIANT:
			p.advance() // 'invariant'
			c.Invariants = append(c.Invariants, p.scanUnbracedBody(lexer.COLON))
			p.skipOptionalSemi()
		case lexer.CONSTRAINT:
			p.advance() // 'constraint'
			c.Constraints = append(c.Constraints, p.scanUnbracedBody(lexer.COLON))
			p.skipOptionalSemi()
		default:
			p.addError(p.cur.Pos, "expected component member", p.cur.Literal)
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return c
}

// scanUnbracedBody expects cur to be the token that introduces a braceless
// opaque body (COLON, for invariant/constraint). It does not advance past
// that token through the normal NextToken path — doing so would prefetch
// and structurally tokenize the first fragment of the body — and instead
// scans raw text directly from the lexer's current rune position, which is
// already just past the colon. It then resyncs cur to whatever terminated
// the scan (SEMI or RBRACE).
func (p *Parser) scanUnbracedBody(introducer lexer.TokenType) string {
	if !p.curIs(introducer) {
		p.addError(p.cur.Pos, fmt.Sprintf("expected %s before body", introducer), p.cur.Literal)
	}
	body, _ := p.l.ScanUnbracedBody()
	p.advance()
	return body
}

// scanBracedBody is scanUnbracedBody's counterpart for '{'-delimited
// bodies (function and step). On return cur is resynced to the terminating
// '}', which the caller must still consume.
func (p *Parser) scanBracedBody() string {
	if !p.curIs(lexer.LBRACE) {
		p.addError(p.cur.Pos, "expected '{' before body", p.cur.Literal)
	}
	body, _ := p.l.ScanBracedBody()
	p.advance()
	return body
}

func (p *Parser) parseState() ast.StateSpec {
	p.advance() // 'state'
	st := ast.StateSpec{Name: p.expect(lexer.IDENT).Literal}
	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		st.Fields = append(st.Fields, p.parseField())
		p.skipOptionalSemi()
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return st
}

func (p *Parser) parseField() ast.Field {
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.COLON)
	return ast.Field{Name: name, Type: p.parseType()}
}

func (p *Parser) parseType() ast.TypeRef {
	name := p.cur.Literal
	switch p.cur.Type {
	case lexer.LIST, lexer.MAP, lexer.RESULT, lexer.IDENT:
		p.advance()
	default:
		p.addError(p.cur.Pos, "expected type name", p.cur.Literal)
		p.advance()
	}

	if !p.curIs(lexer.LBRACK) && !p.curIs(lexer.LANGLE) {
		return ast.TypeRef{Name: name}
	}

	closing := lexer.RBRACK
	if p.curIs(lexer.LANGLE) {
		closing = lexer.RANGLE
	}
	p.advance() // '[' or '<'

	var args []ast.TypeRef
	args = append(args, p.parseType())
	for p.curIs(lexer.COMMA) {
		p.advance()
		args = append(args, p.parseType())
	}
	p.expect(closing)

	return ast.TypeRef{Name: name, Args: args}
}

func (p *Parser) parseParams() []ast.Field {
	p.expect(lexer.LPAREN)
	var fields []ast.Field
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		fields = append(fields, p.parseField())
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RPAREN)
	return fields
}

// parseFunction handles `function` members (optional `{ body }`);
// parseEffectOperation parses `operation` entries into the same
// FunctionSpec shape without a body.
func (p *Parser) parseFunction() ast.FunctionSpec {
	p.advance() // 'function'
	fn := ast.FunctionSpec{Name: p.expect(lexer.IDENT).Literal}
	fn.Params = p.parseParams()
	p.expect(lexer.ARROW)
	fn.Return = p.parseType()

	switch p.cur.Type {
	case lexer.SEMI:
		p.advance()
	case lexer.LBRACE:
		body := p.scanBracedBody()
		p.expect(lexer.RBRACE)
		fn.Body = &body
	default:
		p.addError(p.cur.Pos, "expected ';' or '{' after function signature", p.cur.Literal)
	}
	return fn
}

func (p *Parser) parseEffect() ast.EffectSpec {
	p.advance() // 'effect'
	e := ast.EffectSpec{Name: p.expect(lexer.IDENT).Literal}
	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		e.Operations = append(e.Operations, p.parseEffectOperation())
	}
	p.expect(lexer.RBRACE)
	return e
}

// parseEffectOperation parses `operation NAME(params) -> type ;`, which is
// uniform with a bodyless function.
func (p *Parser) parseEffectOperation() ast.FunctionSpec {
	p.advance() // 'operation'
	op := ast.FunctionSpec{Name: p.expect(lexer.IDENT).Literal}
	op.Params = p.parseParams()
	p.expect(lexer.ARROW)
	op.Return = p.parseType()
	p.skipOptionalSemi()
	return op
}

func (p *Parser) parseWorkflow() ast.WorkflowSpec {
	p.advance() // 'workflow'
	w := ast.WorkflowSpec{Name: p.expect(lexer.IDENT).Literal}
	w.Params = p.parseParams()
	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		w.Steps = append(w.Steps, p.parseStep())
	}
	p.expect(lexer.RBRACE)
	return w
}

func (p *Parser) parseStep() ast.StepSpec {
	p.advance() // 'step'
	step := ast.StepSpec{Name: p.expect(lexer.IDENT).Literal}
	body := p.scanBracedBody()
	p.expect(lexer.RBRACE)
	step.Body = body
	return step
}
