package boa

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// kinds strips a token stream down to its type sequence.
func kinds(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func mustTokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	return tokens
}

func TestTokenizeBasic(t *testing.T) {
	tokens := mustTokenize(t, "x = 42\n")
	want := []Token{
		{Type: IDENT, Lexeme: "x", Line: 1, Col: 1},
		{Type: ASSIGN, Lexeme: "=", Line: 1, Col: 3},
		{Type: INT, Lexeme: "42", Line: 1, Col: 5},
		{Type: NEWLINE, Line: 1, Col: 7},
		{Type: EOF, Line: 2, Col: 1},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeKeywords(t *testing.T) {
	tokens := mustTokenize(t, "fn imp ret if elif else for in while try except finally pass and or not true false none class\n")
	want := []TokenType{
		FN, IMP, RET, IF, ELIF, ELSE, FOR, IN, WHILE, TRY, EXCEPT, FINALLY,
		PASS, AND, OR, NOT, TRUE, FALSE, NONE, CLASS, NEWLINE, EOF,
	}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Errorf("keyword kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeOperators(t *testing.T) {
	tokens := mustTokenize(t, "+ - * / % ** == != < <= > >= = += -= *= /=\n")
	want := []TokenType{
		PLUS, MINUS, STAR, SLASH, PERCENT, POW, EQ, NEQ, LESS, LESS_EQ,
		GREATER, GREATER_EQ, ASSIGN, PLUS_EQ, MINUS_EQ, STAR_EQ, SLASH_EQ,
		NEWLINE, EOF,
	}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Errorf("operator kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeDelimiters(t *testing.T) {
	tokens := mustTokenize(t, "( ) [ ] { } : , .\n")
	want := []TokenType{
		LPAREN, RPAREN, LBRACKET, RBRACKET, LBRACE, RBRACE, COLON, COMMA, DOT,
		NEWLINE, EOF,
	}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Errorf("delimiter kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeString(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want string
	}{
		{`"hello world"` + "\n", "hello world"},
		{`'single'` + "\n", "single"},
		{`"a\nb\tc"` + "\n", "a\nb\tc"},
		{`"q\"q"` + "\n", `q"q`},
		{`'it\'s'` + "\n", "it's"},
		{`"back\\slash"` + "\n", `back\slash`},
		{`"nul\0byte"` + "\n", "nul\x00byte"},
		{`"cr\r"` + "\n", "cr\r"},
	} {
		tokens := mustTokenize(t, tc.src)
		if tokens[0].Type != STRING || tokens[0].Lexeme != tc.want {
			t.Errorf("Tokenize(%q): got %q (%v), want STRING %q",
				tc.src, tokens[0].Lexeme, tokens[0].Type, tc.want)
		}
	}
}

func TestTokenizeStringErrors(t *testing.T) {
	for _, src := range []string{
		"\"unterminated\n",
		"\"reaches eof",
		`"bad \x escape"` + "\n",
		`"ends in backslash\`,
	} {
		_, err := NewLexer(src).Tokenize()
		if err == nil {
			t.Errorf("Tokenize(%q): want LexError, got nil", src)
			continue
		}
		if _, ok := err.(*LexError); !ok {
			t.Errorf("Tokenize(%q): want *LexError, got %T (%v)", src, err, err)
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tokens := mustTokenize(t, "42 3.14 1e5 2.5e-3 7.\n")
	want := []Token{
		{Type: INT, Lexeme: "42", Line: 1, Col: 1},
		{Type: FLOAT, Lexeme: "3.14", Line: 1, Col: 4},
		{Type: FLOAT, Lexeme: "1e5", Line: 1, Col: 9},
		{Type: FLOAT, Lexeme: "2.5e-3", Line: 1, Col: 13},
		// "7." is an Int followed by Dot: member access on an integer,
		// rejected only at parse time.
		{Type: INT, Lexeme: "7", Line: 1, Col: 20},
		{Type: DOT, Lexeme: ".", Line: 1, Col: 21},
		{Type: NEWLINE, Line: 1, Col: 22},
		{Type: EOF, Line: 2, Col: 1},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("number stream mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeExponentNeedsDigit(t *testing.T) {
	_, err := NewLexer("1e+\n").Tokenize()
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("want *LexError for dangling exponent, got %T (%v)", err, err)
	}
}

func TestTokenizeComment(t *testing.T) {
	tokens := mustTokenize(t, "x = 1 # this is a comment\ny = 2\n")
	want := []TokenType{IDENT, ASSIGN, INT, NEWLINE, IDENT, ASSIGN, INT, NEWLINE, EOF}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Errorf("comment stream mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeIndentDedent(t *testing.T) {
	src := "if true:\n    x = 1\n    y = 2\nz = 3\n"
	tokens := mustTokenize(t, src)
	want := []TokenType{
		IF, TRUE, COLON, NEWLINE,
		INDENT, IDENT, ASSIGN, INT, NEWLINE,
		IDENT, ASSIGN, INT, NEWLINE,
		DEDENT, IDENT, ASSIGN, INT, NEWLINE,
		EOF,
	}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Errorf("indent stream mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeNestedIndent(t *testing.T) {
	src := "if a:\n    if b:\n        x = 1\n"
	tokens := mustTokenize(t, src)

	indents, dedents := 0, 0
	for _, tok := range tokens {
		switch tok.Type {
		case INDENT:
			indents++
		case DEDENT:
			dedents++
		}
	}
	if indents != 2 || dedents != 2 {
		t.Fatalf("want 2 INDENT / 2 DEDENT, got %d / %d", indents, dedents)
	}
}

// Balanced INDENT/DEDENT holds for every successfully lexed input.
func TestIndentBalanceInvariant(t *testing.T) {
	sources := []string{
		"x = 1\n",
		"if a:\n    b\n",
		"if a:\n    if b:\n        c\nd\n",
		"fn f():\n    pass\n\nfn g():\n    pass\n",
		"while x:\n\tbody\n",
		"if a:\n    b\n    # comment at odd depth\n    c\n",
		"if a:\n    b",
	}
	for _, src := range sources {
		tokens := mustTokenize(t, src)
		bal := 0
		for _, tok := range tokens {
			switch tok.Type {
			case INDENT:
				bal++
			case DEDENT:
				bal--
			}
			if bal < 0 {
				t.Fatalf("source %q: DEDENT before matching INDENT", src)
			}
		}
		if bal != 0 {
			t.Errorf("source %q: unbalanced indentation tokens (%+d)", src, bal)
		}
	}
}

func TestTokenizeTabIndent(t *testing.T) {
	// A tab advances the indent count to the next multiple of 8, so a
	// tab-indented body opens one block below the header.
	src := "if a:\n\tb\n"
	tokens := mustTokenize(t, src)
	want := []TokenType{IF, IDENT, COLON, NEWLINE, INDENT, IDENT, NEWLINE, DEDENT, EOF}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Errorf("tab indent mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeBlankAndCommentLinesSkipIndent(t *testing.T) {
	src := "if a:\n    b\n\n  # dangling comment\n    c\n"
	tokens := mustTokenize(t, src)
	indents := 0
	for _, tok := range tokens {
		if tok.Type == INDENT {
			indents++
		}
	}
	if indents != 1 {
		t.Fatalf("blank/comment lines must not affect indentation; got %d INDENTs", indents)
	}
}

func TestTokenizeMismatchedDedent(t *testing.T) {
	_, err := NewLexer("if x:\n    x\n  y\n").Tokenize()
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %T (%v)", err, err)
	}
	if !strings.Contains(le.Msg, "unindent does not match") {
		t.Fatalf("unexpected message: %q", le.Msg)
	}
}

func TestTokenizeLoneBang(t *testing.T) {
	_, err := NewLexer("1 ! 2\n").Tokenize()
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %T (%v)", err, err)
	}
	if !strings.Contains(le.Msg, "did you mean '!='") {
		t.Fatalf("unexpected message: %q", le.Msg)
	}
}

func TestTokenizeCRLF(t *testing.T) {
	tokens := mustTokenize(t, "x = 1\r\ny = 2\r")
	want := []TokenType{IDENT, ASSIGN, INT, NEWLINE, IDENT, ASSIGN, INT, NEWLINE, EOF}
	if diff := cmp.Diff(want, kinds(tokens), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("CRLF stream mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeFinalNewlineSynthesized(t *testing.T) {
	tokens := mustTokenize(t, "x = 1")
	if tokens[len(tokens)-2].Type != NEWLINE || tokens[len(tokens)-1].Type != EOF {
		t.Fatalf("want trailing NEWLINE EOF, got %v", kinds(tokens))
	}
}
