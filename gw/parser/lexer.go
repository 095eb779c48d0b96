package parser

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes .gw source text. It never fails: input it cannot
// classify degrades to TokenUnknown tokens and the caller decides
// whether that matters.
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.column}
}

// Tokenize scans the whole input. The result is always terminated by a
// TokenEOF token.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for l.pos < len(l.input) {
		if l.peek() == '\n' {
			start := l.Position()
			l.advance()
			tokens = append(tokens, Token{Kind: TokenNewline, Literal: "\n", Pos: start})
			continue
		}

		l.skipSpace()
		if l.pos >= len(l.input) {
			break
		}
		if l.peek() == '\n' {
			continue
		}

		tokens = append(tokens, l.next())
	}
	tokens = append(tokens, Token{Kind: TokenEOF, Pos: l.Position()})
	return tokens
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// restore rewinds the cursor to a previously captured position. Used by
// the compound-keyword lookahead; the saved position must be exact so
// that re-lexing produces identical tokens.
func (l *Lexer) restore(p Position) {
	l.pos = p.Offset
	l.line = p.Line
	l.column = p.Column
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
		} else {
			break
		}
	}
}

func (l *Lexer) next() Token {
	start := l.Position()
	ch := l.peek()

	// Full-line comments only at column 1, and only when the word
	// after '#' is not a known modifier: event lines like "#birt ..."
	// start at column 1 too.
	if ch == '#' && l.column == 1 && !l.hashWordFollows() {
		return l.scanComment(start)
	}

	if l.column == 1 {
		if tok, ok := l.scanBlockKeyword(start); ok {
			return tok
		}
	}

	if ch == '#' {
		return l.scanHashModifier(start)
	}

	if isDigit(ch) || ch == '~' || ch == '?' || ch == '<' || ch == '>' {
		return l.scanDate(start)
	}

	if ch == '.' && isDigit(l.peekAt(1)) {
		return l.scanNumber(start)
	}

	if kind, ok := punctuation[ch]; ok {
		l.advance()
		return Token{Kind: kind, Literal: string(ch), Pos: start}
	}

	if isWordStart(l.input[l.pos:]) {
		return l.scanIdent(start)
	}

	if ch == '"' {
		return l.scanString(start)
	}

	r := l.advance()
	return Token{Kind: TokenUnknown, Literal: string(r), Pos: start}
}

var punctuation = map[byte]TokenKind{
	':': TokenColon,
	'-': TokenDash,
	'+': TokenPlus,
	'.': TokenDot,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
}

// hashWordFollows reports whether the '#' at the cursor introduces a
// known modifier or event keyword rather than a comment.
func (l *Lexer) hashWordFollows() bool {
	end := l.pos + 1
	for end < len(l.input) {
		ch := l.input[end]
		if isAlnum(ch) || ch == '-' || ch == '_' {
			end++
		} else {
			break
		}
	}
	word := l.input[l.pos+1 : end]
	if _, ok := hashModifiers[word]; ok {
		return true
	}
	_, ok := hashEvents[word]
	return ok
}

func (l *Lexer) scanComment(start Position) Token {
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return Token{Kind: TokenComment, Literal: l.input[start.Offset:l.pos], Pos: start}
}

// scanBlockKeyword recognizes block and structural keywords at column
// 1. "end" takes one word of lookahead for the compound terminators;
// when the pair is not a known compound the cursor rewinds to just
// after "end" and the bare keyword is emitted instead.
func (l *Lexer) scanBlockKeyword(start Position) (Token, bool) {
	word := l.scanKeywordWord()
	if word == "" {
		l.restore(start)
		return Token{}, false
	}

	if word == "end" {
		afterEnd := l.Position()
		l.skipSpace()
		next := l.scanKeywordWord()
		if kind, ok := compoundEnds[next]; ok {
			return Token{Kind: kind, Literal: "end " + next, Pos: start}, true
		}
		l.restore(afterEnd)
		return Token{Kind: TokenEnd, Literal: "end", Pos: start}, true
	}

	if kind, ok := blockKeywords[word]; ok {
		return Token{Kind: kind, Literal: word, Pos: start}, true
	}

	l.restore(start)
	return Token{}, false
}

func (l *Lexer) scanKeywordWord() string {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.peek()
		if isAlnum(ch) || ch == '-' || ch == '_' {
			l.advance()
		} else {
			break
		}
	}
	return l.input[start:l.pos]
}

func (l *Lexer) scanHashModifier(start Position) Token {
	l.advance() // '#'
	word := l.scanKeywordWord()

	kind, ok := hashModifiers[word]
	if !ok {
		kind, ok = hashEvents[word]
	}
	if !ok {
		kind = TokenIdent
	}
	return Token{Kind: kind, Literal: "#" + word, Pos: start}
}

// scanDate consumes a date literal. The unknown-date form 0(free text)
// captures its payload verbatim, balancing nested parentheses.
func (l *Lexer) scanDate(start Position) Token {
	if l.peek() == '0' && l.peekAt(1) == '(' {
		depth := 0
		for l.pos < len(l.input) {
			ch := l.peek()
			l.advance()
			if ch == '(' {
				depth++
			} else if ch == ')' {
				depth--
				if depth == 0 {
					break
				}
			}
		}
		return Token{Kind: TokenDate, Literal: l.input[start.Offset:l.pos], Pos: start}
	}

	for l.pos < len(l.input) {
		ch := l.peek()
		if isDigit(ch) || isDateMark(ch) || isASCIILetter(ch) {
			l.advance()
		} else {
			break
		}
	}
	return Token{Kind: TokenDate, Literal: l.input[start.Offset:l.pos], Pos: start}
}

func (l *Lexer) scanNumber(start Position) Token {
	for l.pos < len(l.input) {
		ch := l.peek()
		if isDigit(ch) || ch == '.' {
			l.advance()
		} else {
			break
		}
	}
	return Token{Kind: TokenNumber, Literal: l.input[start.Offset:l.pos], Pos: start}
}

// scanIdent consumes an identifier. Apostrophes and hyphens join
// compound and particle names into one token, but only as interior
// characters with a letter or digit on the far side.
func (l *Lexer) scanIdent(start Position) Token {
	for l.pos < len(l.input) {
		rest := l.input[l.pos:]
		ch := l.peek()
		switch {
		case isAlnum(ch) || ch == '_':
			l.advance()
		case ch >= utf8.RuneSelf:
			r, _ := utf8.DecodeRuneInString(rest)
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				l.advance()
			} else {
				return l.identToken(start)
			}
		case (ch == '\'' || ch == '-') && len(rest) > 1 && isWordStart(rest[1:]):
			l.advance()
		default:
			return l.identToken(start)
		}
	}
	return l.identToken(start)
}

func (l *Lexer) identToken(start Position) Token {
	literal := l.input[start.Offset:l.pos]
	return Token{Kind: LookupWord(literal), Literal: literal, Pos: start}
}

func (l *Lexer) scanString(start Position) Token {
	l.advance() // opening quote
	var value []byte
	for l.pos < len(l.input) && l.peek() != '"' {
		if l.peek() == '\\' && l.pos+1 < len(l.input) {
			l.advance()
			switch l.peek() {
			case '"':
				value = append(value, '"')
			case '\\':
				value = append(value, '\\')
			default:
				// Not a documented escape: pass both through.
				value = append(value, '\\', l.peek())
			}
			l.advance()
			continue
		}
		r := l.advance()
		value = utf8.AppendRune(value, r)
	}
	if l.pos < len(l.input) {
		l.advance() // closing quote
	}
	return Token{Kind: TokenString, Literal: string(value), Pos: start}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlnum(ch byte) bool {
	return isASCIILetter(ch) || isDigit(ch)
}

// isDateMark reports bytes legal inside a date literal besides digits
// and the trailing calendar letters: separators, prefixes, alternative
// markers and the parenthesized text form.
func isDateMark(ch byte) bool {
	switch ch {
	case '/', '~', '?', '<', '>', '|', '.', '(', ')':
		return true
	}
	return false
}

// isWordStart reports whether the text begins an identifier: a letter
// (including accented letters) or an underscore.
func isWordStart(s string) bool {
	if s == "" {
		return false
	}
	ch := s[0]
	if ch < utf8.RuneSelf {
		return isASCIILetter(ch) || ch == '_'
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}
