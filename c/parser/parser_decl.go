package parser

// typeSpecifier consumes the current token when it is a type specifier.
// Identifiers count as typedef names only when no type specifier has been
// seen yet. A false result with p.err set means the specifier is one the
// grammar does not implement.
func (p *Parser) typeSpecifier(haveType bool) (TypeSpecifier, bool) {
	tok := p.peek()
	if kind, ok := typeSpecifierKeywords[tok.Kind]; ok {
		if kind == SpecStruct || kind == SpecUnion || kind == SpecEnum {
			p.unsupported(kind.String()+" specifier", tok.Location)
			return TypeSpecifier{}, false
		}
		p.advance()
		return TypeSpecifier{Kind: kind, Location: tok.Location}, true
	}
	switch tok.Kind {
	case TokenIdent:
		if !haveType && p.IsTypedefName(tok.Literal()) {
			p.advance()
			return TypeSpecifier{Kind: SpecTypedefName, Name: tok.Literal(), Location: tok.Location}, true
		}
	case TokenAtomic:
		p.unsupported("_Atomic type", tok.Location)
	case TokenAlignas:
		p.unsupported("alignment specifier", tok.Location)
	}
	return TypeSpecifier{}, false
}

// ParseSpecifierQualifierList parses type specifiers and qualifiers in any
// order. It fails silently when the first token is neither.
func (p *Parser) ParseSpecifierQualifierList() *SpecifierQualifierList {
	list := &SpecifierQualifierList{}
	count := 0
	for {
		tok := p.peek()
		if q, ok := typeQualifierKeywords[tok.Kind]; ok {
			p.advance()
			list.Qualifiers |= q
		} else if spec, ok := p.typeSpecifier(len(list.Specifiers) > 0); ok {
			list.Specifiers = append(list.Specifiers, spec)
		} else {
			break
		}
		if count == 0 {
			list.Location = tok.Location
		} else {
			list.Location = Concat(list.Location, tok.Location)
		}
		count++
	}
	if count == 0 || p.err != nil {
		return nil
	}
	return list
}

// ParseTypeName parses a specifier-qualifier list and an optional abstract
// declarator made of pointers only.
func (p *Parser) ParseTypeName() *TypeName {
	sq := p.ParseSpecifierQualifierList()
	if sq == nil {
		return nil
	}
	tn := &TypeName{SpecifierQualifiers: sq, Location: sq.Location}
	if p.check(TokenStar) {
		ptr := p.ParsePointer()
		if ptr == nil {
			return nil
		}
		tn.Pointer = ptr
		tn.Location = Concat(tn.Location, ptr.Location)
	}
	if tok := p.peek(); tok.Kind == TokenLBracket || tok.Kind == TokenLParen {
		p.unsupported("abstract declarator", tok.Location)
		return nil
	}
	return tn
}

// ParsePointer parses one or more '*' levels, each with its qualifiers.
func (p *Parser) ParsePointer() *Pointer {
	star := p.expect(TokenStar)
	if star == nil {
		return nil
	}
	ptr := &Pointer{Location: star.Location}
	for {
		tok := p.peek()
		if tok.Kind == TokenAtomic {
			p.unsupported("_Atomic type", tok.Location)
			return nil
		}
		q, ok := typeQualifierKeywords[tok.Kind]
		if !ok {
			break
		}
		p.advance()
		ptr.Qualifiers |= q
		ptr.Location = Concat(ptr.Location, tok.Location)
	}
	if p.check(TokenStar) {
		ptr.Next = p.ParsePointer()
		if ptr.Next == nil {
			return nil
		}
		ptr.Location = Concat(ptr.Location, ptr.Next.Location)
	}
	return ptr
}

// ParseDeclarationSpecifiers collects storage classes, type specifiers,
// qualifiers and function specifiers in any order, stopping at the first
// token that is none of them.
func (p *Parser) ParseDeclarationSpecifiers() *DeclarationSpecifiers {
	specs := &DeclarationSpecifiers{}
	count := 0
	for {
		tok := p.peek()
		if class, ok := storageClassKeywords[tok.Kind]; ok {
			p.advance()
			specs.StorageClasses = append(specs.StorageClasses, StorageClassSpecifier{Class: class, Location: tok.Location})
		} else if q, ok := typeQualifierKeywords[tok.Kind]; ok {
			p.advance()
			specs.Qualifiers |= q
		} else if tok.Kind == TokenInline {
			p.advance()
			specs.FunctionSpecifiers |= FuncInline
		} else if spec, ok := p.typeSpecifier(len(specs.TypeSpecifiers) > 0); ok {
			specs.TypeSpecifiers = append(specs.TypeSpecifiers, spec)
		} else {
			break
		}
		if count == 0 {
			specs.Location = tok.Location
		} else {
			specs.Location = Concat(specs.Location, tok.Location)
		}
		count++
	}
	if p.err != nil {
		return nil
	}
	if count == 0 {
		p.errorHere(MsgExpectedDeclSpecifier)
		return nil
	}
	return specs
}

// ParseDeclarator parses an optional pointer chain and a direct declarator.
func (p *Parser) ParseDeclarator() *Declarator {
	start := p.peek().Location
	d := &Declarator{}
	if p.check(TokenStar) {
		d.Pointer = p.ParsePointer()
		if d.Pointer == nil {
			return nil
		}
	}
	d.Direct = p.ParseDirectDeclarator()
	if d.Direct == nil {
		return nil
	}
	d.Location = Concat(start, d.Direct.Location)
	return d
}

// ParseDirectDeclarator parses an identifier or a parenthesized declarator.
// Array and function suffixes are unsupported.
func (p *Parser) ParseDirectDeclarator() *DirectDeclarator {
	tok := p.peek()
	var dd *DirectDeclarator
	switch tok.Kind {
	case TokenIdent:
		p.advance()
		dd = &DirectDeclarator{Kind: DirectIdentifier, Identifier: tok, Location: tok.Location}
	case TokenLParen:
		p.advance()
		inner := p.ParseDeclarator()
		if inner == nil {
			return nil
		}
		rparen := p.expect(TokenRParen)
		if rparen == nil {
			p.errorHere(MsgExpectedDeclaratorEnd)
			return nil
		}
		dd = &DirectDeclarator{Kind: DirectParenthesized, Declarator: inner, Location: Concat(tok.Location, rparen.Location)}
	default:
		p.errorHere(MsgExpectedDeclarator)
		return nil
	}

	switch next := p.peek(); next.Kind {
	case TokenLBracket:
		p.unsupported("array declarator", next.Location)
		return nil
	case TokenLParen:
		p.unsupported("function declarator", next.Location)
		return nil
	}
	return dd
}

// ParseDeclaration parses declaration specifiers terminated by ';'. A
// declaration naming declarators is reported as unsupported.
func (p *Parser) ParseDeclaration() *Declaration {
	if tok := p.peek(); tok.Kind == TokenStaticAssert {
		p.unsupported("static assertion", tok.Location)
		return nil
	}
	specs := p.ParseDeclarationSpecifiers()
	if specs == nil {
		return nil
	}
	semi := p.expect(TokenSemicolon)
	if semi == nil {
		switch next := p.peek(); next.Kind {
		case TokenIdent, TokenStar, TokenLParen:
			p.unsupported("init-declarator list", next.Location)
		default:
			p.errorHere(MsgExpectedSemicolon)
		}
		return nil
	}
	return &Declaration{
		Specifiers: specs,
		Semicolon:  semi.Location,
		Location:   Concat(specs.Location, semi.Location),
	}
}
