package grammar

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/cfront/c/parser"
)

// TokenProductions maps token kinds to the lexical production their
// spelling must match.
var TokenProductions = map[parser.TokenKind]string{
	parser.TokenIdent:         "identifier",
	parser.TokenIntLiteral:    "integer_constant",
	parser.TokenFloatLiteral:  "floating_constant",
	parser.TokenCharLiteral:   "character_constant",
	parser.TokenStringLiteral: "string_literal",
}

type memoKey struct {
	name   string
	offset int
}

// Matcher measures how much of an input a lexical production accepts.
// Alternatives take their longest match and repetitions are greedy; there
// is no backtracking.
type Matcher struct {
	grammar  ebnf.Grammar
	input    []byte
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func NewMatcher(g ebnf.Grammar) *Matcher {
	return &Matcher{grammar: g}
}

// Match returns the length of the longest prefix of input accepted by the
// named production.
func (m *Matcher) Match(production string, input []byte) (int, error) {
	if _, ok := m.grammar[production]; !ok {
		return 0, fmt.Errorf("production %q not found in grammar", production)
	}
	m.input = input
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
	return max(m.matchName(production, 0), 0), nil
}

func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return m.matchToken(e.String, offset)
	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)
	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total
	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best
	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}
	case *ebnf.Option:
		if n := m.match(e.Body, offset); n > 0 {
			return n
		}
		return 0
	case *ebnf.Group:
		return m.match(e.Body, offset)
	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

// matchName memoizes per offset and treats left recursion as no match.
func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	if m.visiting[key] {
		return -1
	}
	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = -1
		return -1
	}

	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)
	m.memo[key] = n
	return n
}

func (m *Matcher) matchToken(s string, offset int) int {
	if offset+len(s) > len(m.input) || string(m.input[offset:offset+len(s)]) != s {
		return -1
	}
	return len(s)
}

func (m *Matcher) matchRange(begin, end string, offset int) int {
	if offset >= len(m.input) {
		return -1
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRune(m.input[offset:])
	if r < lo || r > hi {
		return -1
	}
	return size
}

// Mismatch is a token whose spelling the grammar does not accept in full.
type Mismatch struct {
	Token      parser.Token
	Production string
	Matched    int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s %q: %s accepts %d of %d bytes",
		m.Token.Location, m.Token.Kind, m.Token.Literal(), m.Production, m.Matched, m.Token.Location.Length)
}

// CrossCheck matches every identifier and literal token against its
// lexical production and returns the tokens that do not match exactly.
func CrossCheck(g ebnf.Grammar, tokens []parser.Token) ([]Mismatch, error) {
	m := NewMatcher(g)
	var mismatches []Mismatch
	for _, tok := range tokens {
		production, ok := TokenProductions[tok.Kind]
		if !ok {
			continue
		}
		n, err := m.Match(production, []byte(tok.Literal()))
		if err != nil {
			return nil, err
		}
		if n != tok.Location.Length {
			mismatches = append(mismatches, Mismatch{Token: tok, Production: production, Matched: n})
		}
	}
	if len(mismatches) > 0 {
		log.Debugf("%d tokens disagree with the grammar", len(mismatches))
	}
	return mismatches, nil
}
