package lexer

import "testing"

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Type
	}{
		{"simple ident", "meter", []Type{IDENT, EOF}},
		{"juxtaposition", "cm 3", []Type{IDENT, NUMBER, EOF}},
		{"implicit exponent", "cm3", []Type{IDENT, NUMBER, EOF}},
		{"ratio", "1|2 foot", []Type{NUMBER, PIPE, NUMBER, IDENT, EOF}},
		{"operators", "a^2 * b / c ** d", []Type{IDENT, CARET, NUMBER, STAR, IDENT, SLASH, IDENT, STARSTAR, IDENT, EOF}},
		{"parens and tilde", "~tempF(75)", []Type{TILDE, IDENT, LPAREN, NUMBER, RPAREN, EOF}},
		{"decimal and exponent", "6.02e23", []Type{NUMBER, EOF}},
		{"minus", "a - b", []Type{IDENT, MINUS, IDENT, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			for i, want := range tt.want {
				tok := l.Next()
				if tok.Type != want {
					t.Fatalf("token %d: got %s, want %s (text=%q)", i, tok.Type, want, tok.Text)
				}
			}
		})
	}
}

func TestLexerImplicitExponentHasNoGap(t *testing.T) {
	l := New("cm3")
	id := l.Next()
	num := l.Next()
	if id.Type != IDENT || num.Type != NUMBER {
		t.Fatalf("unexpected token types: %s %s", id.Type, num.Type)
	}
	if num.PrecededBySpace {
		t.Error("expected no space between identifier and trailing digits")
	}
	if id.End.Offset != num.Start.Offset {
		t.Errorf("expected contiguous tokens, got end=%d start=%d", id.End.Offset, num.Start.Offset)
	}
}

func TestLexerJuxtapositionHasGap(t *testing.T) {
	l := New("cm 3")
	_ = l.Next()
	num := l.Next()
	if !num.PrecededBySpace {
		t.Error("expected a space before the number")
	}
}
