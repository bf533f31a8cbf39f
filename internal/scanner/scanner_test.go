package scanner

import (
	"testing"

	"lumen/internal/token"
)

func scanAll(src string) []token.Token {
	s := New(src)
	var out []token.Token
	for {
		tok := s.ScanToken()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll("(){};,.+-*/% ! != = == < <= > >=")
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Semicolon, token.Comma, token.Dot, token.Plus, token.Minus,
		token.Star, token.Slash, token.Percent,
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll("var x = classify")
	want := []token.Kind{token.Var, token.Identifier, token.Equal, token.Identifier, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[1].Lexeme != "x" {
		t.Errorf("lexeme = %q, want x", toks[1].Lexeme)
	}
	if toks[3].Lexeme != "classify" {
		t.Errorf("lexeme = %q, want classify (not mistaken for keyword class)", toks[3].Lexeme)
	}
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll("123 45.67 8.")
	if toks[0].Kind != token.Number || toks[0].Lexeme != "123" {
		t.Errorf("got %v %q", toks[0].Kind, toks[0].Lexeme)
	}
	if toks[1].Kind != token.Number || toks[1].Lexeme != "45.67" {
		t.Errorf("got %v %q", toks[1].Kind, toks[1].Lexeme)
	}
	// "8." : trailing dot with no digit after is not consumed as part of the number.
	if toks[2].Kind != token.Number || toks[2].Lexeme != "8" {
		t.Errorf("got %v %q", toks[2].Kind, toks[2].Lexeme)
	}
	if toks[3].Kind != token.Dot {
		t.Errorf("got %v, want Dot", toks[3].Kind)
	}
}

func TestScanStrings(t *testing.T) {
	toks := scanAll(`"hello" "unterminated`)
	if toks[0].Kind != token.String || toks[0].Lexeme != `"hello"` {
		t.Errorf("got %v %q", toks[0].Kind, toks[0].Lexeme)
	}
	if toks[1].Kind != token.Error {
		t.Errorf("got %v, want Error for unterminated string", toks[1].Kind)
	}
}

func TestScanMultilineStringTracksLine(t *testing.T) {
	s := New("\"a\nb\" nil")
	str := s.ScanToken()
	if str.Kind != token.String {
		t.Fatalf("got %v, want String", str.Kind)
	}
	next := s.ScanToken()
	if next.Line != 2 {
		t.Errorf("line = %d, want 2", next.Line)
	}
}

func TestScanSkipsLineComments(t *testing.T) {
	toks := scanAll("nil // a comment\ntrue")
	if toks[0].Kind != token.Nil {
		t.Errorf("got %v, want Nil", toks[0].Kind)
	}
	if toks[1].Kind != token.True {
		t.Errorf("got %v, want True", toks[1].Kind)
	}
	if toks[1].Line != 2 {
		t.Errorf("line = %d, want 2", toks[1].Line)
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	toks := scanAll("@")
	if toks[0].Kind != token.Error {
		t.Errorf("got %v, want Error", toks[0].Kind)
	}
}

func TestScanEmptySourceYieldsEOF(t *testing.T) {
	toks := scanAll("")
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Errorf("got %v, want single EOF token", toks)
	}
}
