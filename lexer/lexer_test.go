package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// tagsValues strips the Line field so test tables can compare just shape.
func tagsValues(toks []Token) []Token {
	out := make([]Token, len(toks))
	for i, tok := range toks {
		out[i] = Token{Tag: tok.Tag, Value: tok.Value}
	}
	return out
}

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "arithmetic and assignment",
			src:  `x : number = 2 + 3 * 4`,
			want: []Token{
				{Tag: ID, Value: "x"},
				{Tag: ":", Value: ":"},
				{Tag: TYPE, Value: "number"},
				{Tag: "=", Value: "="},
				{Tag: NUMBER, Value: "2"},
				{Tag: "+", Value: "+"},
				{Tag: NUMBER, Value: "3"},
				{Tag: "*", Value: "*"},
				{Tag: NUMBER, Value: "4"},
			},
		},
		{
			name: "keywords and booleans",
			src:  `if (true) { } else { while (false) { break continue } }`,
			want: []Token{
				{Tag: IF, Value: "if"},
				{Tag: "(", Value: "("},
				{Tag: TRUE, Value: "true"},
				{Tag: ")", Value: ")"},
				{Tag: "{", Value: "{"},
				{Tag: "}", Value: "}"},
				{Tag: ELSE, Value: "else"},
				{Tag: "{", Value: "{"},
				{Tag: WHILE, Value: "while"},
				{Tag: "(", Value: "("},
				{Tag: FALSE, Value: "false"},
				{Tag: ")", Value: ")"},
				{Tag: "{", Value: "{"},
				{Tag: BREAK, Value: "break"},
				{Tag: CONTINUE, Value: "continue"},
				{Tag: "}", Value: "}"},
				{Tag: "}", Value: "}"},
			},
		},
		{
			name: "multi-char operators",
			src:  `a <= b && c != d || e >= f -> g`,
			want: []Token{
				{Tag: ID, Value: "a"},
				{Tag: LTE, Value: "<="},
				{Tag: ID, Value: "b"},
				{Tag: AND, Value: "&&"},
				{Tag: ID, Value: "c"},
				{Tag: NEQ, Value: "!="},
				{Tag: ID, Value: "d"},
				{Tag: OR, Value: "||"},
				{Tag: ID, Value: "e"},
				{Tag: GTE, Value: ">="},
				{Tag: ID, Value: "f"},
				{Tag: RARROW, Value: "->"},
				{Tag: ID, Value: "g"},
			},
		},
		{
			name: "string literal strips quotes",
			src:  `send(c, "hi there")`,
			want: []Token{
				{Tag: ID, Value: "send"},
				{Tag: "(", Value: "("},
				{Tag: ID, Value: "c"},
				{Tag: ",", Value: ","},
				{Tag: STRING, Value: "hi there"},
				{Tag: ")", Value: ")"},
			},
		},
		{
			name: "comments are skipped",
			src:  "x # trailing comment\n/* block\ncomment */y",
			want: []Token{
				{Tag: ID, Value: "x"},
				{Tag: ID, Value: "y"},
			},
		},
		{
			name: "channel statements",
			src:  `c_channel conn { "127.0.0.1", 9000 }`,
			want: []Token{
				{Tag: CCHANNEL, Value: "c_channel"},
				{Tag: ID, Value: "conn"},
				{Tag: "{", Value: "{"},
				{Tag: STRING, Value: "127.0.0.1"},
				{Tag: ",", Value: ","},
				{Tag: NUMBER, Value: "9000"},
				{Tag: "}", Value: "}"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx := New(tt.src)
			got := tagsValues(lx.Tokens())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexer_LineTracking(t *testing.T) {
	lx := New("x\ny\n/* multi\nline */z")

	tok := lx.Next()
	assert.Equal(t, 1, tok.Line)

	tok = lx.Next()
	assert.Equal(t, 2, tok.Line)

	tok = lx.Next()
	assert.Equal(t, 4, tok.Line)
}

func TestLexer_EOF(t *testing.T) {
	lx := New("x")
	lx.Next()
	tok := lx.Next()
	assert.Equal(t, EOF, tok.Tag)
	tok = lx.Next()
	assert.Equal(t, EOF, tok.Tag, "repeated calls past EOF keep returning EOF")
}

func TestLexer_OtherCatchesUnknownBytes(t *testing.T) {
	lx := New("@")
	tok := lx.Next()
	assert.Equal(t, Tag("@"), tok.Tag)
	assert.Equal(t, "@", tok.Value)
}
