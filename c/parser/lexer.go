package parser

import "unicode/utf8"

// Lexer turns a source file into tokens. Line endings are normalized: "\r"
// and "\r\n" both count as a single newline for line and column tracking.
type Lexer struct {
	source *SourceFile
	input  []byte
	diags  *Diagnostics
	pos    int
	line   int
	column int
}

// NewLexer returns a lexer positioned at the start of src. Problems are
// recorded in diags; a fresh sink is created when diags is nil.
func NewLexer(src *SourceFile, diags *Diagnostics) *Lexer {
	if diags == nil {
		diags = NewDiagnostics()
	}
	return &Lexer{
		source: src,
		input:  src.Content,
		diags:  diags,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Diagnostics() *Diagnostics {
	return l.diags
}

func (l *Lexer) Source() *SourceFile {
	return l.source
}

func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// Reset moves the lexer back to the start of its input. Diagnostics already
// recorded are kept.
func (l *Lexer) Reset() {
	l.pos = 0
	l.line = 1
	l.column = 1
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peek() byte {
	return l.peekN(0)
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos+n]
	if ch == '\r' {
		return '\n'
	}
	return ch
}

func (l *Lexer) advance() byte {
	if l.atEOF() {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	switch ch {
	case '\r':
		if l.pos < len(l.input) && l.input[l.pos] == '\n' {
			l.pos++
		}
		l.line++
		l.column = 1
		return '\n'
	case '\n':
		l.line++
		l.column = 1
	default:
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) location(start Position) Location {
	return Location{
		File:   l.source,
		Offset: start.Offset,
		Length: l.pos - start.Offset,
		Line:   start.Line,
		Column: start.Column,
	}
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{Kind: kind, Location: l.location(start)}
}

func (l *Lexer) errorf(start Position, msg string) {
	l.diags.Add(CodeLexical, msg, l.location(start))
}

// NextToken returns the next token. Whitespace and comments are skipped
// unless the matching flag is set. Once the input is exhausted every call
// returns an EOF token of length zero.
func (l *Lexer) NextToken(includeWhitespace, includeComments bool) Token {
	for {
		start := l.Position()
		if l.atEOF() {
			return l.token(TokenEOF, start)
		}

		ch := l.peek()
		switch {
		case isSpace(ch):
			tok := l.scanWhitespace(start)
			if includeWhitespace {
				return tok
			}
			continue
		case ch == '/' && l.peekN(1) == '/':
			tok := l.scanLineComment(start)
			if includeComments {
				return tok
			}
			continue
		case ch == '/' && l.peekN(1) == '*':
			tok := l.scanBlockComment(start)
			if includeComments {
				return tok
			}
			continue
		case isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))):
			return l.scanNumber(start)
		case ch == '"' || ch == '\'':
			tok, ok := l.scanQuoted(start, ch)
			if !ok {
				continue
			}
			return tok
		}

		if tok, ok := l.scanPunctuator(start); ok {
			return tok
		}
		if isIdentStart(ch) {
			return l.scanIdentOrKeyword(start)
		}

		_, size := utf8.DecodeRune(l.input[l.pos:])
		l.advanceN(size)
		l.errorf(start, MsgUnexpectedCharacter)
		return l.token(TokenUnexpected, start)
	}
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for !l.atEOF() && isSpace(l.peek()) {
		l.advance()
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for !l.atEOF() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for {
		if l.atEOF() {
			l.errorf(start, MsgUnterminatedComment)
			return l.token(TokenBlockComment, start)
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return l.token(TokenBlockComment, start)
		}
		l.advance()
	}
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for !l.atEOF() && isIdentPart(l.peek()) {
		l.advance()
	}
	kind := LookupKeyword(string(l.input[start.Offset:l.pos]))
	return l.token(kind, start)
}

func (l *Lexer) scanPunctuator(start Position) (Token, bool) {
	rest := l.input[l.pos:]
	for _, p := range punctuators {
		if len(rest) >= len(p.text) && string(rest[:len(p.text)]) == p.text {
			l.advanceN(len(p.text))
			return l.token(p.kind, start), true
		}
	}
	return Token{}, false
}

// scanQuoted scans a string or character literal. An unterminated literal
// yields no token: the diagnostic is recorded and the caller resumes lexing
// after the offending newline.
func (l *Lexer) scanQuoted(start Position, quote byte) (Token, bool) {
	kind := TokenStringLiteral
	if quote == '\'' {
		kind = TokenCharLiteral
	}
	l.advance()
	for {
		if l.atEOF() || l.peek() == '\n' {
			l.errorf(start, MsgUnterminatedString)
			l.advance()
			return Token{}, false
		}
		ch := l.advance()
		if ch == '\\' {
			l.advance()
			continue
		}
		if ch == quote {
			return l.token(kind, start), true
		}
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	base := 10
	if l.peek() == '0' {
		switch l.peekN(1) {
		case 'x', 'X':
			base = 16
			l.advanceN(2)
		case 'b', 'B':
			base = 2
			l.advanceN(2)
		}
	}

	intStart := l.pos
	for isDigitOf(l.peek(), base) {
		l.advance()
	}
	integer := string(l.input[intStart:l.pos])

	expChar := byte('e')
	if base == 16 {
		expChar = 'p'
	}
	next := toLower(l.peek())
	if next == '.' || next == expChar {
		return l.scanFloat(start, base, integer, expChar)
	}

	invalid := integer == ""
	if base == 10 && len(integer) > 1 && integer[0] == '0' {
		base = 8
	}
	for i := 0; i < len(integer); i++ {
		if (base == 8 && integer[i] > '7') || (base == 2 && integer[i] > '1') {
			invalid = true
		}
	}

	tok := Token{Kind: TokenIntLiteral}
	tok.Int = IntLiteral{Digits: integer, Base: base, Type: l.scanIntSuffix()}
	tok.Location = l.location(start)
	if invalid {
		l.diags.Add(CodeLexical, MsgInvalidNumericLiteral, tok.Location)
	}
	return tok
}

func (l *Lexer) scanIntSuffix() IntType {
	var s [3]byte
	for i := range s {
		s[i] = toLower(l.peekN(i))
	}
	switch {
	case s == [3]byte{'u', 'l', 'l'} || s == [3]byte{'l', 'l', 'u'}:
		l.advanceN(3)
		return IntUnsignedLongLong
	case s[0] == 'l' && s[1] == 'l':
		l.advanceN(2)
		return IntLongLong
	case (s[0] == 'u' && s[1] == 'l') || (s[0] == 'l' && s[1] == 'u'):
		l.advanceN(2)
		return IntUnsignedLong
	case s[0] == 'l':
		l.advance()
		return IntLong
	case s[0] == 'u':
		l.advance()
		return IntUnsigned
	}
	return IntPlain
}

func (l *Lexer) scanFloat(start Position, base int, integer string, expChar byte) Token {
	invalid := base == 2
	f := FloatLiteral{
		Hex:        base == 16,
		HasInteger: integer != "",
		Integer:    integer,
	}

	if l.peek() == '.' {
		l.advance()
		fracStart := l.pos
		for (f.Hex && isHexDigit(l.peek())) || (!f.Hex && isDigit(l.peek())) {
			l.advance()
		}
		f.Fraction = string(l.input[fracStart:l.pos])
		f.HasFraction = f.Fraction != ""
	}
	if !f.HasInteger && !f.HasFraction {
		invalid = true
	}

	if toLower(l.peek()) == expChar {
		l.advance()
		f.HasExponent = true
		if l.peek() == '+' || l.peek() == '-' {
			f.ExponentNegative = l.advance() == '-'
		}
		expStart := l.pos
		for isDigit(l.peek()) {
			l.advance()
		}
		f.Exponent = string(l.input[expStart:l.pos])
		if f.Exponent == "" {
			invalid = true
		}
	} else if f.Hex {
		invalid = true
	}

	f.Type = FloatDouble
	switch toLower(l.peek()) {
	case 'f':
		l.advance()
		f.Type = FloatFloat
		switch {
		case l.peek() == '1' && l.peekN(1) == '6':
			l.advanceN(2)
			f.Type = FloatBinary16
		case l.peek() == '3' && l.peekN(1) == '2':
			l.advanceN(2)
			f.Type = FloatBinary32
		case l.peek() == '6' && l.peekN(1) == '4':
			l.advanceN(2)
			f.Type = FloatBinary64
		}
	case 'l':
		l.advance()
		f.Type = FloatLongDouble
	case 'd':
		l.advance()
		switch toLower(l.peek()) {
		case 'f':
			l.advance()
			f.Type = FloatDecimal32
		case 'd':
			l.advance()
			f.Type = FloatDecimal64
		case 'l':
			l.advance()
			f.Type = FloatDecimal128
		default:
			invalid = true
		}
	}

	tok := Token{Kind: TokenFloatLiteral, Float: f}
	tok.Location = l.location(start)
	if invalid {
		l.diags.Add(CodeLexical, MsgInvalidNumericLiteral, tok.Location)
	}
	return tok
}

// Tokenize lexes src to the end and returns every token including the
// final EOF token.
func Tokenize(src *SourceFile, diags *Diagnostics, includeWhitespace, includeComments bool) []Token {
	l := NewLexer(src, diags)
	var tokens []Token
	for {
		tok := l.NextToken(includeWhitespace, includeComments)
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isDigitOf accepts every decimal digit for bases 2 and 10 so that bad
// octal and binary digits end up inside the literal and get diagnosed.
func isDigitOf(ch byte, base int) bool {
	if base == 16 {
		return isHexDigit(ch)
	}
	return isDigit(ch)
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func toLower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}
