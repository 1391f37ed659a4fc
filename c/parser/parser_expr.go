package parser

// operand runs parse for an operand that must be present. When parse fails
// without reporting anything, a missing expression is reported at the
// current token.
func (p *Parser) operand(parse func() Expr) Expr {
	n := p.diags.Len()
	e := parse()
	if e == nil && p.err == nil && p.diags.Len() == n {
		p.missingExpression()
	}
	return e
}

type binaryOps map[TokenKind]BinaryOp

var (
	assignmentOps = binaryOps{
		TokenAssign:        BinaryAssign,
		TokenStarAssign:    BinaryMulAssign,
		TokenSlashAssign:   BinaryDivAssign,
		TokenPercentAssign: BinaryModAssign,
		TokenPlusAssign:    BinaryAddAssign,
		TokenMinusAssign:   BinarySubAssign,
		TokenShlAssign:     BinaryShlAssign,
		TokenShrAssign:     BinaryShrAssign,
		TokenAndAssign:     BinaryAndAssign,
		TokenXorAssign:     BinaryXorAssign,
		TokenOrAssign:      BinaryOrAssign,
	}
	logicalOrOps      = binaryOps{TokenOrOr: BinaryLogicalOr}
	logicalAndOps     = binaryOps{TokenAndAnd: BinaryLogicalAnd}
	bitwiseOrOps      = binaryOps{TokenPipe: BinaryBitwiseOr}
	bitwiseXorOps     = binaryOps{TokenCaret: BinaryBitwiseXor}
	bitwiseAndOps     = binaryOps{TokenAmp: BinaryBitwiseAnd}
	equalityOps       = binaryOps{TokenEq: BinaryEqual, TokenNotEq: BinaryNotEqual}
	relationalOps     = binaryOps{TokenLT: BinaryLess, TokenGT: BinaryGreater, TokenLE: BinaryLessEqual, TokenGE: BinaryGreaterEqual}
	shiftOps          = binaryOps{TokenShl: BinaryShl, TokenShr: BinaryShr}
	additiveOps       = binaryOps{TokenPlus: BinaryAdd, TokenMinus: BinarySub}
	multiplicativeOps = binaryOps{TokenStar: BinaryMul, TokenSlash: BinaryDiv, TokenPercent: BinaryMod}
)

var prefixOps = map[TokenKind]UnaryOp{
	TokenAmp:   UnaryAddressOf,
	TokenStar:  UnaryDereference,
	TokenPlus:  UnaryPlus,
	TokenMinus: UnaryMinus,
	TokenTilde: UnaryBitwiseNot,
	TokenBang:  UnaryLogicalNot,
}

// parseLeftAssoc parses next, then folds further operands joined by any of
// ops into left-associative binary nodes.
func (p *Parser) parseLeftAssoc(next func() Expr, ops binaryOps) Expr {
	left := next()
	if left == nil {
		return nil
	}
	for {
		op, ok := ops[p.peek().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.operand(next)
		if right == nil {
			return nil
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Location: Concat(left.Loc(), right.Loc())}
	}
}

// ParseExpression parses a comma expression.
func (p *Parser) ParseExpression() Expr {
	return p.parseLeftAssoc(p.ParseAssignmentExpression, binaryOps{TokenComma: BinaryComma})
}

func (p *Parser) ParseAssignmentExpression() Expr {
	left := p.ParseConditionalExpression()
	if left == nil {
		return nil
	}
	op, ok := assignmentOps[p.peek().Kind]
	if !ok {
		return left
	}
	p.advance()
	right := p.operand(p.ParseAssignmentExpression)
	if right == nil {
		return nil
	}
	return &BinaryExpr{Op: op, Left: left, Right: right, Location: Concat(left.Loc(), right.Loc())}
}

func (p *Parser) ParseConditionalExpression() Expr {
	cond := p.parseLogicalOrExpr()
	if cond == nil {
		return nil
	}
	if !p.check(TokenQuestion) {
		return cond
	}
	p.advance()
	then := p.operand(p.ParseExpression)
	if then == nil {
		return nil
	}
	if p.expect(TokenColon) == nil {
		p.errorHere(MsgExpectedColon)
		return nil
	}
	els := p.operand(p.ParseConditionalExpression)
	if els == nil {
		return nil
	}
	return &TernaryExpr{
		Op:       TernaryConditional,
		Cond:     cond,
		Then:     then,
		Else:     els,
		Location: Concat(cond.Loc(), els.Loc()),
	}
}

func (p *Parser) parseLogicalOrExpr() Expr {
	return p.parseLeftAssoc(p.parseLogicalAndExpr, logicalOrOps)
}

func (p *Parser) parseLogicalAndExpr() Expr {
	return p.parseLeftAssoc(p.parseBitOrExpr, logicalAndOps)
}

func (p *Parser) parseBitOrExpr() Expr {
	return p.parseLeftAssoc(p.parseBitXorExpr, bitwiseOrOps)
}

func (p *Parser) parseBitXorExpr() Expr {
	return p.parseLeftAssoc(p.parseBitAndExpr, bitwiseXorOps)
}

func (p *Parser) parseBitAndExpr() Expr {
	return p.parseLeftAssoc(p.parseEqualityExpr, bitwiseAndOps)
}

func (p *Parser) parseEqualityExpr() Expr {
	return p.parseLeftAssoc(p.parseRelationalExpr, equalityOps)
}

func (p *Parser) parseRelationalExpr() Expr {
	return p.parseLeftAssoc(p.parseShiftExpr, relationalOps)
}

func (p *Parser) parseShiftExpr() Expr {
	return p.parseLeftAssoc(p.parseAdditiveExpr, shiftOps)
}

func (p *Parser) parseAdditiveExpr() Expr {
	return p.parseLeftAssoc(p.parseMultiplicativeExpr, additiveOps)
}

func (p *Parser) parseMultiplicativeExpr() Expr {
	return p.parseLeftAssoc(p.ParseCastExpression, multiplicativeOps)
}

// ParseCastExpression parses "(type-name) cast-expression" or falls back to
// a unary expression when the parenthesized tokens do not form a cast.
func (p *Parser) ParseCastExpression() Expr {
	if p.check(TokenLParen) {
		if e, ok := p.parseCast(); ok {
			return e
		}
	}
	return p.ParseUnaryExpression()
}

// parseCast reports ok=false, with the cursor restored, when the input at
// '(' is not a cast.
func (p *Parser) parseCast() (Expr, bool) {
	mark := p.Mark()
	lparen := p.advance()
	tn := p.ParseTypeName()
	if tn == nil {
		if p.err != nil {
			return nil, true
		}
		p.Rewind(mark)
		return nil, false
	}
	rparen := p.expect(TokenRParen)
	if rparen == nil {
		if !startsWithTypedefName(tn) {
			p.errorHere(MsgExpectedCastParen)
			return nil, true
		}
		log.Debugf("%s: not a cast, rewinding", lparen.Location)
		p.Rewind(mark)
		return nil, false
	}
	if p.check(TokenLBrace) {
		p.Rewind(mark)
		return nil, false
	}
	operand := p.operand(p.ParseCastExpression)
	if operand == nil {
		return nil, true
	}
	return &CastExpr{Type: tn, Operand: operand, Location: Concat(lparen.Location, operand.Loc())}, true
}

// startsWithTypedefName reports whether tn could also be read as an
// expression, which is only possible when it begins with an identifier.
func startsWithTypedefName(tn *TypeName) bool {
	sq := tn.SpecifierQualifiers
	return len(sq.Specifiers) > 0 && sq.Specifiers[0].Kind == SpecTypedefName && sq.Qualifiers == 0
}

func (p *Parser) ParseUnaryExpression() Expr {
	tok := p.peek()
	switch tok.Kind {
	case TokenIncrement, TokenDecrement:
		p.advance()
		operand := p.operand(p.ParseUnaryExpression)
		if operand == nil {
			return nil
		}
		op := UnaryPreIncrement
		if tok.Kind == TokenDecrement {
			op = UnaryPreDecrement
		}
		return &UnaryExpr{Op: op, Operand: operand, Location: Concat(tok.Location, operand.Loc())}
	case TokenSizeof:
		return p.parseSizeof()
	case TokenAlignof:
		p.unsupported("_Alignof expression", tok.Location)
		return nil
	}

	if op, ok := prefixOps[tok.Kind]; ok {
		p.advance()
		operand := p.operand(p.ParseCastExpression)
		if operand == nil {
			return nil
		}
		return &UnaryExpr{Op: op, Operand: operand, Location: Concat(tok.Location, operand.Loc())}
	}
	return p.ParsePostfixExpression()
}

func (p *Parser) parseSizeof() Expr {
	sizeof := p.advance()
	if p.check(TokenLParen) {
		mark := p.Mark()
		p.advance()
		if tn := p.ParseTypeName(); tn != nil {
			rparen := p.expect(TokenRParen)
			switch {
			case rparen == nil && !startsWithTypedefName(tn):
				p.errorHere(MsgExpectedSizeofParen)
				return nil
			case rparen != nil && !p.check(TokenLBrace):
				return &SizeofTypeExpr{Type: tn, Location: Concat(sizeof.Location, rparen.Location)}
			}
		}
		if p.err != nil {
			return nil
		}
		p.Rewind(mark)
	}
	operand := p.operand(p.ParseUnaryExpression)
	if operand == nil {
		return nil
	}
	return &UnaryExpr{Op: UnarySizeof, Operand: operand, Location: Concat(sizeof.Location, operand.Loc())}
}

// ParsePostfixExpression parses a primary expression followed by any number
// of subscripts, member accesses, calls and postfix increments.
func (p *Parser) ParsePostfixExpression() Expr {
	if p.check(TokenLParen) && p.isCompoundLiteral() {
		return nil
	}
	e := p.ParsePrimaryExpression()
	if e == nil {
		return nil
	}
	for {
		switch p.peek().Kind {
		case TokenLBracket:
			p.advance()
			index := p.operand(p.ParseExpression)
			if index == nil {
				return nil
			}
			rbracket := p.expect(TokenRBracket)
			if rbracket == nil {
				p.errorHere(MsgExpectedSubscript)
				return nil
			}
			e = &BinaryExpr{Op: BinarySubscript, Left: e, Right: index, Location: Concat(e.Loc(), rbracket.Location)}
		case TokenDot, TokenArrow:
			op := p.advance()
			member := p.expect(TokenIdent)
			if member == nil {
				p.errorHere(MsgExpectedMember)
				return nil
			}
			e = &MemberAccessExpr{
				Object:   e,
				Member:   *member,
				Arrow:    op.Kind == TokenArrow,
				Location: Concat(e.Loc(), member.Location),
			}
		case TokenIncrement, TokenDecrement:
			tok := p.advance()
			op := UnaryPostIncrement
			if tok.Kind == TokenDecrement {
				op = UnaryPostDecrement
			}
			e = &UnaryExpr{Op: op, Operand: e, Location: Concat(e.Loc(), tok.Location)}
		case TokenLParen:
			call := p.parseCall(e)
			if call == nil {
				return nil
			}
			e = call
		default:
			return e
		}
	}
}

// isCompoundLiteral reports "(type-name) {" as unsupported. The cursor is
// left unchanged otherwise.
func (p *Parser) isCompoundLiteral() bool {
	mark := p.Mark()
	lparen := p.advance()
	tn := p.ParseTypeName()
	if tn != nil && p.check(TokenRParen) && p.peekN(1).Kind == TokenLBrace {
		p.unsupported("compound literal", Concat(lparen.Location, p.peekN(1).Location))
		return true
	}
	if p.err != nil {
		return true
	}
	p.Rewind(mark)
	return false
}

func (p *Parser) parseCall(callee Expr) Expr {
	p.advance()
	call := &CallExpr{Callee: callee}
	if rparen := p.expect(TokenRParen); rparen != nil {
		call.Location = Concat(callee.Loc(), rparen.Location)
		return call
	}
	for {
		arg := p.operand(p.ParseAssignmentExpression)
		if arg == nil {
			return nil
		}
		call.Args = append(call.Args, arg)
		if p.expect(TokenComma) != nil {
			continue
		}
		if rparen := p.expect(TokenRParen); rparen != nil {
			call.Location = Concat(callee.Loc(), rparen.Location)
			return call
		}
		p.errorHere(MsgExpectedArgument)
		return nil
	}
}

// ParsePrimaryExpression parses an identifier, a literal or a parenthesized
// expression. It fails silently when the current token starts none of them.
func (p *Parser) ParsePrimaryExpression() Expr {
	tok := p.peek()
	switch tok.Kind {
	case TokenIdent, TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenStringLiteral:
		p.advance()
		return &PrimaryExpr{Token: tok}
	case TokenLParen:
		p.advance()
		e := p.operand(p.ParseExpression)
		if e == nil {
			return nil
		}
		if p.expect(TokenRParen) == nil {
			p.errorHere(MsgExpectedParen)
			return nil
		}
		return e
	case TokenGeneric:
		p.unsupported("generic selection", tok.Location)
	}
	return nil
}
