package lexer

import "testing"

func TestNextTokenStructural(t *testing.T) {
	input := `system Foo { component Bar { } }`
	l := New(input)

	want := []TokenType{SYSTEM, IDENT, LBRACE, COMPONENT, IDENT, LBRACE, RBRACE, RBRACE, EOF}
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: got %s, want %s (literal %q)", i, tok.Type, wantType, tok.Literal)
		}
	}
}

func TestNextTokenArrowAndGenerics(t *testing.T) {
	input := `function baz(x: List[Int]) -> Result<Int>`
	l := New(input)

	want := []TokenType{
		FUNCTION, IDENT, LPAREN, IDENT, COLON, LIST, LBRACK, IDENT, RBRACK, RPAREN,
		ARROW, RESULT, LANGLE, IDENT, RANGLE, EOF,
	}
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: got %s, want %s (literal %q)", i, tok.Type, wantType, tok.Literal)
		}
	}
}

func TestNextTokenString(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hello world" {
		t.Fatalf("got %+v", tok)
	}
}

func TestNextTokenComments(t *testing.T) {
	input := "// line comment\nsystem /* block */ Foo"
	l := New(input)
	tok := l.NextToken()
	if tok.Type != SYSTEM {
		t.Fatalf("expected SYSTEM after comments, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "Foo" {
		t.Fatalf("got %+v", tok)
	}
}

func TestUnterminatedBlockCommentRecordsError(t *testing.T) {
	l := New("system /* never closed")
	l.NextToken() // SYSTEM
	l.NextToken() // should hit the unterminated comment and stop
	if len(l.Errors()) == 0 {
		t.Error("expected an unterminated block comment error")
	}
}

func TestIllegalCharacterRecordsError(t *testing.T) {
	l := New("system Foo ~ Bar")
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
	}
	if len(l.Errors()) == 0 {
		t.Error("expected an illegal character error for '~'")
	}
}

func TestColumnCountsRunesNotBytes(t *testing.T) {
	// "é" is multi-byte in UTF-8 but must count as a single column.
	l := New(`"é" x`)
	strTok := l.NextToken()
	if strTok.Type != STRING {
		t.Fatalf("expected STRING, got %s", strTok.Type)
	}
	identTok := l.NextToken()
	if identTok.Type != IDENT || identTok.Literal != "x" {
		t.Fatalf("got %+v", identTok)
	}
	// The identifier starts right after the 3-rune string token + space:
	// '"', 'é', '"', ' ' = columns 1-4, so 'x' is column 5.
	if identTok.Pos.Column != 5 {
		t.Errorf("column = %d, want 5", identTok.Pos.Column)
	}
}

func TestScanBracedBodyStopsOnlyAtClosingBrace(t *testing.T) {
	l := New(`{ x = 1; y = 2 } rest`)
	tok := l.NextToken() // consumes '{'
	if tok.Type != LBRACE {
		t.Fatalf("expected LBRACE, got %s", tok.Type)
	}
	body, _ := l.ScanBracedBody()
	if body != "x = 1; y = 2" {
		t.Fatalf("body = %q, want %q", body, "x = 1; y = 2")
	}
	closing := l.NextToken()
	if closing.Type != RBRACE {
		t.Fatalf("expected RBRACE after body, got %s", closing.Type)
	}
}

func TestScanUnbracedBodyStopsAtSemiOrBrace(t *testing.T) {
	l := New(`: x > 0; constraint`)
	colon := l.NextToken()
	if colon.Type != COLON {
		t.Fatalf("expected COLON, got %s", colon.Type)
	}
	body, _ := l.ScanUnbracedBody()
	if body != "x > 0" {
		t.Fatalf("body = %q, want %q", body, "x > 0")
	}
}
