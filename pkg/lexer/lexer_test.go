package lexer_test

import (
	"testing"

	"aiscript/interpreter-go/pkg/lexer"
)

func scan(t *testing.T, src string) []lexer.Token {
	t.Helper()
	lex := lexer.New("<test>", src)
	lex.ScanTokens()
	if len(lex.Errors) != 0 {
		for _, x := range lex.Errors {
			t.Log(x.String())
		}
		t.Fatalf("expected no lexer errors for %q", src)
	}
	return lex.Tokens
}

func types(tokens []lexer.Token) []lexer.TokenType {
	out := make([]lexer.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func TestLexerSigils(t *testing.T) {
	tokens := scan(t, `<: #a = 1 $b <- _ << x ~ ~~ :: .? => != <= >= yes no note`)
	want := []lexer.TokenType{
		lexer.PRINT, lexer.HASH, lexer.IDENTIFIER, lexer.EQUAL, lexer.NUMBER,
		lexer.DOLLAR, lexer.IDENTIFIER, lexer.LEFT_ARROW, lexer.NULL,
		lexer.RETURN, lexer.IDENTIFIER, lexer.TILDE, lexer.DOUBLE_TILDE, lexer.DOUBLE_COLON,
		lexer.DOT_QUESTION, lexer.FAT_ARROW, lexer.BANG_EQUAL, lexer.LESS_EQUAL, lexer.GREATER_EQUAL,
		lexer.YES, lexer.NO, lexer.IDENTIFIER, lexer.EOF,
	}
	got := types(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), tokens)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestLexerSpaceBefore(t *testing.T) {
	tokens := scan(t, "obj.a [1] f(x) Arr:len")
	// obj . a [ 1 ] f ( x ) Arr : len EOF
	spaced := []bool{true, false, false, true, false, false, true, false, false, false, true, false, false, true}
	if len(tokens) != len(spaced) {
		t.Fatalf("expected %d tokens, got %d: %v", len(spaced), len(tokens), tokens)
	}
	for i, want := range spaced {
		if tokens[i].SpaceBefore != want {
			t.Fatalf("token %d (%s): SpaceBefore = %v, want %v", i, tokens[i], tokens[i].SpaceBefore, want)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tokens := scan(t, `"ai saw a note \"bebeyo\"."`)
	if tokens[0].Type != lexer.STRING {
		t.Fatalf("expected string token, got %s", tokens[0].Type)
	}
	if got := tokens[0].Literal.(string); got != `ai saw a note "bebeyo".` {
		t.Fatalf("unexpected literal %q", got)
	}
}

func TestLexerComments(t *testing.T) {
	tokens := scan(t, "a // line\n/* block\ncomment */ b")
	got := types(tokens)
	if len(got) != 3 || got[0] != lexer.IDENTIFIER || got[1] != lexer.IDENTIFIER {
		t.Fatalf("unexpected tokens %v", tokens)
	}
	if !tokens[1].SpaceBefore || tokens[1].Line != 3 {
		t.Fatalf("expected b on line 3 after a comment, got %s", tokens[1])
	}
}

func TestLexerTemplate(t *testing.T) {
	tokens := scan(t, "`1 + 1 = {(1 + 1)} {obj.a}!`")
	if tokens[0].Type != lexer.TEMPLATE {
		t.Fatalf("expected template token, got %s", tokens[0].Type)
	}
	parts := tokens[0].Literal.([]lexer.TemplatePart)
	want := []lexer.TemplatePart{
		{Text: "1 + 1 = "},
		{Text: "(1 + 1)", Expr: true},
		{Text: " "},
		{Text: "obj.a", Expr: true},
		{Text: "!"},
	}
	if len(parts) != len(want) {
		t.Fatalf("expected %d parts, got %#v", len(want), parts)
	}
	for i := range want {
		if parts[i].Text != want[i].Text || parts[i].Expr != want[i].Expr {
			t.Fatalf("part %d: got %#v, want %#v", i, parts[i], want[i])
		}
	}
}

func TestLexerGraphemeStrings(t *testing.T) {
	tokens := scan(t, `"👍🏽🍆🌮"`)
	if tokens[0].Literal.(string) != "👍🏽🍆🌮" {
		t.Fatalf("unexpected literal %q", tokens[0].Literal)
	}
}

func TestLexerBad(t *testing.T) {
	badInputs := []string{
		`"unterminated`,
		"`open {template",
		"/* open comment",
		"a ^ b",
		"\"abraca\xc3\x28 dabra\"",
	}
	for i, input := range badInputs {
		lex := lexer.New("<test>", input)
		lex.ScanTokens()
		if len(lex.Errors) == 0 {
			t.Errorf("tests[%d] (%q): expected errors, got none", i, input)
		}
	}
}
