package dsl

import "testing"

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Wrapper, Act, A { X | Y => B },")

	want := []struct {
		typ TokenType
		lit string
	}{
		{TokenIdent, "Wrapper"},
		{TokenComma, ","},
		{TokenIdent, "Act"},
		{TokenComma, ","},
		{TokenIdent, "A"},
		{TokenLBrace, "{"},
		{TokenIdent, "X"},
		{TokenPipe, "|"},
		{TokenIdent, "Y"},
		{TokenArrow, "=>"},
		{TokenIdent, "B"},
		{TokenRBrace, "}"},
		{TokenComma, ","},
		{TokenEOF, ""},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Type != w.typ || tokens[i].Literal != w.lit {
			t.Errorf("token %d = {%v %q}, want {%v %q}",
				i, tokens[i].Type, tokens[i].Literal, w.typ, w.lit)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	tokens := Tokenize("A => B")
	wantPos := []int{0, 2, 5}
	for i, p := range wantPos {
		if tokens[i].Pos != p {
			t.Errorf("token %d at %d, want %d", i, tokens[i].Pos, p)
		}
	}
}

func TestLexerComments(t *testing.T) {
	tokens := Tokenize("A // the initial state\n{ }")
	want := []TokenType{TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Type != w {
			t.Errorf("token %d = %v, want %v", i, tokens[i].Type, w)
		}
	}
}

func TestLexerIllegal(t *testing.T) {
	tests := []string{"=", "?", "A = B"}
	for _, input := range tests {
		found := false
		for _, tok := range Tokenize(input) {
			if tok.Type == TokenIllegal {
				found = true
			}
		}
		if !found {
			t.Errorf("Tokenize(%q): expected an illegal token", input)
		}
	}
}
