package format

import (
	"io"
	"strings"

	"github.com/dhamidi/cfront/c/parser"
)

// TreeEncoder prints a syntax tree one node per line, children indented
// under their parent.
//
//	BinaryExpr Add
//	  PrimaryExpr 1
//	  BinaryExpr Mul
//	    PrimaryExpr 2
//	    PrimaryExpr 3
type TreeEncoder struct {
	w         io.Writer
	positions bool
}

func NewTreeEncoder(w io.Writer, positions bool) *TreeEncoder {
	return &TreeEncoder{w: w, positions: positions}
}

func (e *TreeEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalNode(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalNode(node parser.Node) ([]byte, error) {
	var sb strings.Builder
	if node != nil {
		e.write(&sb, node, 0)
	}
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) write(sb *strings.Builder, n parser.Node, depth int) {
	kind, detail := describe(n)
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(kind)
	if detail != "" {
		sb.WriteByte(' ')
		sb.WriteString(detail)
	}
	if e.positions {
		sb.WriteString(" <")
		sb.WriteString(span(n.Loc()))
		sb.WriteByte('>')
	}
	sb.WriteByte('\n')
	for _, child := range parser.Children(n) {
		e.write(sb, child, depth+1)
	}
}
