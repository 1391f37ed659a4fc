// Package parser implements the front end of a C compiler: a lexer that
// turns source bytes into tokens and a recursive-descent parser that turns
// tokens into a typed syntax tree.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│ SourceFile  │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (AST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌───────────────────────────────┐
//	                    │          Diagnostics          │
//	                    └───────────────────────────────┘
//
// The whole input is lexed into a token buffer before parsing starts. The
// parser never looks at raw text again; every node location is built with
// Concat from the locations of the tokens and children it was made of.
//
// # Lexing
//
//	src := parser.NewSourceFile("main.c", data)
//	diags := parser.NewDiagnostics()
//	lx := parser.NewLexer(src, diags)
//	for {
//	    tok := lx.NextToken(false, false)
//	    if tok.Kind == parser.TokenEOF {
//	        break
//	    }
//	}
//
// Lexical errors never stop the lexer. Unterminated comments still produce
// a comment token, unterminated string literals are skipped, and stray
// characters become TokenUnexpected.
//
// # Parsing
//
// Every grammar production is a method on Parser and returns nil on failure.
// A production that fails because the input is malformed records a
// diagnostic first; one that fails because the input simply is not that
// construct stays silent so callers can try something else:
//
//	p := parser.New(parser.Tokenize(src, diags, false, false), diags)
//	expr := p.ParseExpression()
//
// Speculative parses save and restore the cursor with Mark and Rewind.
//
// The reader-based helpers mirror that for whole inputs:
//
//	node, err := parser.ParseUnit(r, parser.WithFile("main.c")).Finish()
//
// # Unsupported constructs
//
// Struct, union and enum specifiers, array and function declarators,
// abstract declarators other than pointers, compound literals,
// init-declarator lists and statements other than expression statements
// are recognized but not implemented. Hitting one records a diagnostic with
// CodeUnsupported and the error returned by Finish matches ErrUnsupported.
package parser
