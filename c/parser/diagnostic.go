package parser

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cfront.parser")

// Diagnostic messages. Tools match on these strings; keep them stable.
const (
	MsgUnterminatedComment    = "unterminated comment"
	MsgUnterminatedString     = "unterminated string literal"
	MsgUnexpectedEOF          = "unexpected end of file"
	MsgInvalidNumericLiteral  = "invalid numeric literal"
	MsgUnexpectedCharacter    = "unexpected character"
	MsgExpectedColon          = "expected ':' in conditional expression"
	MsgExpectedCastParen      = "expected ')' in cast expression"
	MsgExpectedSizeofParen    = "expected ')' in sizeof(type) expression"
	MsgExpectedSubscript      = "expected ']' in subscript expression"
	MsgExpectedParen          = "expected ')' in parenthesized expression"
	MsgExpectedMember         = "expected identifier after '.' or '->' in member access expression"
	MsgExpectedArgument       = "expected ',' or ')' in function call argument list"
	MsgExpectedExpression     = "expected expression"
	MsgExpectedDeclSpecifier  = "expected declaration specifier"
	MsgExpectedDeclarator     = "expected identifier or '(' in declarator"
	MsgExpectedDeclaratorEnd  = "expected ')' in parenthesized declarator"
	MsgExpectedSemicolon      = "expected ';' after declaration"
	MsgExpectedStmtSemicolon  = "expected ';' after expression statement"
	MsgTrailingTokens         = "unexpected token after expression"
	MsgUnsupportedFormat      = "unsupported construct: %s"
)

// ErrUnsupported is matched by errors.Is when a parse hit a construct the
// grammar recognizes but does not implement.
var ErrUnsupported = errors.New("unsupported construct")

type Code int

const (
	CodeLexical Code = iota
	CodeSyntax
	CodeUnsupported
)

var codeNames = map[Code]string{
	CodeLexical:     "lexical",
	CodeSyntax:      "syntax",
	CodeUnsupported: "unsupported",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "Unknown"
}

type Diagnostic struct {
	Message  string
	Location Location
	Code     Code
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: error: %s", d.Location, d.Message)
}

// Diagnostics is a list of diagnostics in the order they were recorded. It
// is safe for concurrent use. Several parsers may share one sink: a parser
// that rewinds only drops the diagnostics it recorded itself.
type Diagnostics struct {
	mu     sync.Mutex
	items  []Diagnostic
	owners []any
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) Add(code Code, msg string, loc Location) {
	d.add(nil, code, msg, loc)
}

func (d *Diagnostics) add(owner any, code Code, msg string, loc Location) {
	d.mu.Lock()
	defer d.mu.Unlock()
	log.Debugf("%s: %s (%s)", loc, msg, code)
	d.items = append(d.items, Diagnostic{Message: msg, Location: loc, Code: code})
	d.owners = append(d.owners, owner)
}

func (d *Diagnostics) All() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Diagnostic, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Truncate drops every diagnostic recorded after the first n, whoever
// recorded it.
func (d *Diagnostics) Truncate(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n < len(d.items) {
		d.items = d.items[:n]
		d.owners = d.owners[:n]
	}
}

// discard drops the diagnostics owner recorded at index n or later.
func (d *Diagnostics) discard(owner any, n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n >= len(d.items) {
		return
	}
	items, owners := d.items[:n], d.owners[:n]
	for i := n; i < len(d.items); i++ {
		if d.owners[i] != owner {
			items = append(items, d.items[i])
			owners = append(owners, d.owners[i])
		}
	}
	d.items, d.owners = items, owners
}

func (d *Diagnostics) HasUnsupported() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, item := range d.items {
		if item.Code == CodeUnsupported {
			return true
		}
	}
	return false
}

// Err returns nil when no diagnostics were recorded.
func (d *Diagnostics) Err() error {
	items := d.All()
	if len(items) == 0 {
		return nil
	}
	return &Error{Diagnostics: items}
}

// Error carries every diagnostic of a failed run.
type Error struct {
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("\n\t")
		b.WriteString(d.String())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	for _, d := range e.Diagnostics {
		if d.Code == CodeUnsupported {
			return ErrUnsupported
		}
	}
	return nil
}
