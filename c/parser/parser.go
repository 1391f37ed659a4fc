package parser

import (
	"fmt"
	"io"
)

type Option func(*Parser)

// WithFile sets the path recorded in locations when the parser reads its
// input from an io.Reader.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithTypedefNames makes the given identifiers parse as typedef names.
// Without it no identifier is ever treated as a type.
func WithTypedefNames(names ...string) Option {
	return func(p *Parser) {
		for _, name := range names {
			p.typedefs[name] = true
		}
	}
}

// WithDiagnostics sets the sink that lexer and parser report into.
func WithDiagnostics(d *Diagnostics) Option {
	return func(p *Parser) {
		p.diags = d
	}
}

type parseFunc func(*Parser) Node

type Parser struct {
	file     string
	reader   io.Reader
	source   *SourceFile
	tokens   []Token
	pos      int
	diags    *Diagnostics
	typedefs map[string]bool
	entry    parseFunc
	err      error
}

// New returns a parser over an already lexed token buffer. Whitespace and
// comment tokens are dropped; an EOF token is appended when missing.
func New(tokens []Token, diags *Diagnostics, opts ...Option) *Parser {
	p := newParser(opts)
	if diags != nil {
		p.diags = diags
	}
	p.setTokens(tokens)
	return p
}

func newParser(opts []Option) *Parser {
	p := &Parser{
		typedefs: make(map[string]bool),
		entry:    (*Parser).parseUnitNode,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.diags == nil {
		p.diags = NewDiagnostics()
	}
	return p
}

func newReaderParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := newParser(opts)
	p.reader = r
	p.entry = entry
	return p
}

// ParseExpression prepares a parser that reads a single expression from r.
// Call Finish to run it.
func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newReaderParser(r, (*Parser).parseExpressionNode, opts)
}

// ParseDeclaration prepares a parser that reads a single declaration from r.
func ParseDeclaration(r io.Reader, opts ...Option) *Parser {
	return newReaderParser(r, (*Parser).parseDeclarationNode, opts)
}

// ParseUnit prepares a parser that reads a sequence of declarations and
// statements from r.
func ParseUnit(r io.Reader, opts ...Option) *Parser {
	return newReaderParser(r, (*Parser).parseUnitNode, opts)
}

// Finish lexes pending input and runs the parse. The returned node may be
// non-nil even when err is set; err lists every diagnostic.
func (p *Parser) Finish() (Node, error) {
	if p.reader != nil {
		data, err := io.ReadAll(p.reader)
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		p.reader = nil
		p.source = NewSourceFile(p.file, data)
		p.setTokens(Tokenize(p.source, p.diags, false, false))
	}
	node := p.entry(p)
	return node, p.diags.Err()
}

func (p *Parser) setTokens(tokens []Token) {
	p.tokens = p.tokens[:0]
	for _, tok := range tokens {
		if tok.Kind.IsTrivia() {
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	if len(p.tokens) == 0 || p.tokens[len(p.tokens)-1].Kind != TokenEOF {
		eof := Token{Kind: TokenEOF}
		if len(p.tokens) > 0 {
			last := p.tokens[len(p.tokens)-1].Location
			eof.Location = last
			eof.Location.Offset = last.End()
			eof.Location.Length = 0
			end := last.EndPosition()
			eof.Location.Line, eof.Location.Column = end.Line, end.Column
		} else {
			eof.Location.File = p.source
		}
		p.tokens = append(p.tokens, eof)
	}
	if p.source == nil && len(p.tokens) > 0 {
		p.source = p.tokens[0].Location.File
	}
	p.pos = 0
}

func (p *Parser) Diagnostics() *Diagnostics {
	return p.diags
}

func (p *Parser) Source() *SourceFile {
	return p.source
}

func (p *Parser) Tokens() []Token {
	return p.tokens
}

// Err reports the unsupported construct that stopped the current parse.
func (p *Parser) Err() error {
	return p.err
}

// IsTypedefName reports whether name parses as a type specifier.
func (p *Parser) IsTypedefName(name string) bool {
	return p.typedefs[name]
}

// Mark is a saved cursor position.
type Mark struct {
	pos   int
	diags int
}

func (p *Parser) Mark() Mark {
	return Mark{pos: p.pos, diags: p.diags.Len()}
}

// Rewind moves the cursor back to m and drops the diagnostics this parser
// recorded since. Once an unsupported construct was hit nothing is dropped.
func (p *Parser) Rewind(m Mark) {
	p.pos = m.pos
	if p.err == nil {
		p.diags.discard(p, m.diags)
	}
}

// AtEOF reports whether every token has been consumed.
func (p *Parser) AtEOF() bool {
	return p.check(TokenEOF)
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	return nil
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) errorAt(loc Location, msg string) {
	if p.err != nil {
		return
	}
	p.diags.add(p, CodeSyntax, msg, loc)
}

// errorHere reports msg at the current token. At the end of input that is
// the zero-length EOF location.
func (p *Parser) errorHere(msg string) {
	p.errorAt(p.peek().Location, msg)
}

// missingExpression reports an absent operand.
func (p *Parser) missingExpression() {
	if p.check(TokenEOF) {
		p.errorHere(MsgUnexpectedEOF)
		return
	}
	p.errorHere(MsgExpectedExpression)
}

// unsupported records that the input uses a construct the grammar does not
// implement and stops every alternative of the current parse.
func (p *Parser) unsupported(what string, loc Location) {
	if p.err != nil {
		return
	}
	p.diags.add(p, CodeUnsupported, fmt.Sprintf(MsgUnsupportedFormat, what), loc)
	p.err = fmt.Errorf("%s: %s: %w", loc, what, ErrUnsupported)
	log.Debugf("%s: unsupported %s", loc, what)
}

// synchronize skips to the end of the current item: past the next ';' at
// brace depth zero, or past a closing '}' that returns to depth zero.
func (p *Parser) synchronize() {
	depth := 0
	for !p.check(TokenEOF) {
		tok := p.advance()
		switch tok.Kind {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			if depth > 0 {
				depth--
			}
			if depth == 0 && !p.check(TokenSemicolon) {
				return
			}
		case TokenSemicolon:
			if depth == 0 {
				return
			}
		}
	}
}

func (p *Parser) parseExpressionNode() Node {
	n := p.diags.Len()
	e := p.ParseExpression()
	if e == nil {
		if p.err == nil && p.diags.Len() == n {
			p.missingExpression()
		}
		return nil
	}
	if !p.check(TokenEOF) {
		p.errorAt(p.peek().Location, MsgTrailingTokens)
	}
	return e
}

func (p *Parser) parseDeclarationNode() Node {
	d := p.ParseDeclaration()
	if d == nil {
		return nil
	}
	if !p.check(TokenEOF) {
		p.errorAt(p.peek().Location, MsgTrailingTokens)
	}
	return d
}

func (p *Parser) parseUnitNode() Node {
	return p.ParseUnit()
}

// ParseUnit parses declarations and statements up to the end of input. A
// failed item is skipped so that later items are still checked.
func (p *Parser) ParseUnit() *Unit {
	unit := &Unit{}
	start := p.peek().Location
	for !p.check(TokenEOF) {
		var item Node
		if p.startsDeclaration() {
			if d := p.ParseDeclaration(); d != nil {
				item = d
			}
		} else if s := p.ParseStatement(); s != nil {
			item = s
		}
		if item == nil {
			if p.err != nil {
				log.Debugf("skipping item after %v", p.err)
				p.err = nil
			}
			p.synchronize()
			continue
		}
		unit.Items = append(unit.Items, item)
	}
	unit.Location = Concat(start, p.peek().Location)
	return unit
}

func (p *Parser) startsDeclaration() bool {
	tok := p.peek()
	switch tok.Kind {
	case TokenInline, TokenAlignas, TokenAtomic, TokenStaticAssert:
		return true
	case TokenIdent:
		return p.IsTypedefName(tok.Literal())
	}
	if _, ok := storageClassKeywords[tok.Kind]; ok {
		return true
	}
	if _, ok := typeSpecifierKeywords[tok.Kind]; ok {
		return true
	}
	_, ok := typeQualifierKeywords[tok.Kind]
	return ok
}

var statementKeywords = map[TokenKind]string{
	TokenIf:       "if statement",
	TokenElse:     "else clause",
	TokenSwitch:   "switch statement",
	TokenCase:     "case label",
	TokenDefault:  "default label",
	TokenWhile:    "while statement",
	TokenDo:       "do statement",
	TokenFor:      "for statement",
	TokenGoto:     "goto statement",
	TokenContinue: "continue statement",
	TokenBreak:    "break statement",
	TokenReturn:   "return statement",
	TokenLBrace:   "compound statement",
}

// ParseStatement parses an expression statement or an empty statement.
// Every other statement form is reported as unsupported.
func (p *Parser) ParseStatement() Stmt {
	start := p.peek()
	if what, ok := statementKeywords[start.Kind]; ok {
		p.unsupported(what, start.Location)
		return nil
	}
	if start.Kind == TokenIdent && p.peekN(1).Kind == TokenColon {
		p.unsupported("labeled statement", start.Location)
		return nil
	}
	if start.Kind == TokenSemicolon {
		p.advance()
		return &ExprStmt{Location: start.Location}
	}

	x := p.operand(p.ParseExpression)
	if x == nil {
		return nil
	}
	semi := p.expect(TokenSemicolon)
	if semi == nil {
		p.errorHere(MsgExpectedStmtSemicolon)
		return nil
	}
	return &ExprStmt{X: x, Location: Concat(start.Location, semi.Location)}
}
