// Package lexer implements MiniPar's scanner: a single combined regular
// expression with one named group per token class, tried in priority order
// so the first alternative that matches at the current position wins —
// the same scheme as the reference lexer's TOKEN_REGEX, ported to Go's
// regexp (RE2) package, which resolves alternation leftmost-first like
// Python's re module.
package lexer

import (
	"regexp"
	"strings"
)

// tokenPattern lists every lexical class in priority order. A NAME that
// turns out to be a keyword or type word is remapped after matching (see
// remapName); everything else falls through to OTHER, whose tag is the
// matched rune itself.
var tokenPattern = regexp.MustCompile(
	`(?P<NAME>[A-Za-z_][A-Za-z0-9_]*)` +
		`|(?P<NUMBER>\d+\.\d+|\.\d+|\d+)` +
		`|(?P<RARROW>->)` +
		`|(?P<STRING>"[^"]*")` +
		`|(?P<SCOMMENT>#[^\n]*)` +
		`|(?P<MCOMMENT>(?s:/\*.*?\*/))` +
		`|(?P<OR>\|\|)` +
		`|(?P<AND>&&)` +
		`|(?P<EQ>==)` +
		`|(?P<NEQ>!=)` +
		`|(?P<LTE><=)` +
		`|(?P<GTE>>=)` +
		`|(?P<NEWLINE>\n)` +
		`|(?P<WHITESPACE>[ \t\r]+)` +
		`|(?P<OTHER>.)`,
)

var subexpNames = tokenPattern.SubexpNames()

// Lexer is a lazy, single-pass token source over a source string. It
// exposes no error type: every byte is consumed by some pattern, down to
// OTHER's single-rune catch-all, so the lexer itself cannot fail (per
// spec, undefined tokens surface as parse errors downstream).
type Lexer struct {
	src  string
	pos  int
	line int
}

// New creates a Lexer positioned at the start of src, line 1.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Line reports the line the most recently returned token started on.
func (l *Lexer) Line() int {
	return l.line
}

// Next returns the next token, skipping whitespace and comments and
// advancing the line counter across embedded newlines. Returns a Token
// tagged EOF once the source is exhausted.
func (l *Lexer) Next() Token {
	for {
		if l.pos >= len(l.src) {
			return Token{Tag: EOF, Value: "EOF", Line: l.line}
		}

		rest := l.src[l.pos:]
		loc := tokenPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			return Token{Tag: EOF, Value: "EOF", Line: l.line}
		}

		group, text := matchedGroup(rest, loc)
		l.pos += loc[1]

		switch group {
		case "WHITESPACE", "SCOMMENT":
			continue
		case "MCOMMENT":
			l.line += strings.Count(text, "\n")
			continue
		case "NEWLINE":
			l.line++
			continue
		case "NAME":
			return Token{Tag: remapName(text), Value: text, Line: l.line}
		case "STRING":
			return Token{Tag: STRING, Value: strings.Trim(text, `"`), Line: l.line}
		case "RARROW":
			return Token{Tag: RARROW, Value: text, Line: l.line}
		case "OR":
			return Token{Tag: OR, Value: text, Line: l.line}
		case "AND":
			return Token{Tag: AND, Value: text, Line: l.line}
		case "EQ":
			return Token{Tag: EQ, Value: text, Line: l.line}
		case "NEQ":
			return Token{Tag: NEQ, Value: text, Line: l.line}
		case "LTE":
			return Token{Tag: LTE, Value: text, Line: l.line}
		case "GTE":
			return Token{Tag: GTE, Value: text, Line: l.line}
		case "NUMBER":
			return Token{Tag: NUMBER, Value: text, Line: l.line}
		case "OTHER":
			return Token{Tag: Tag(text), Value: text, Line: l.line}
		default:
			continue
		}
	}
}

// matchedGroup finds which named group of a FindStringSubmatchIndex result
// actually participated in the match, and returns its name and text.
func matchedGroup(s string, loc []int) (name, text string) {
	for i := 1; i < len(subexpNames); i++ {
		if subexpNames[i] == "" {
			continue
		}
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 {
			return subexpNames[i], s[start:end]
		}
	}
	return "", ""
}

// Tokens drains the lexer to a slice, excluding the terminal EOF. Used by
// the CLI's -tok mode and by tests that want to inspect a whole stream.
func (l *Lexer) Tokens() []Token {
	out := make([]Token, 0)
	for {
		tok := l.Next()
		if tok.Tag == EOF {
			break
		}
		out = append(out, tok)
	}
	return out
}
