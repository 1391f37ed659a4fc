package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cfront/c/parser"
)

// NodeEncoder writes a syntax tree to its underlying writer.
type NodeEncoder interface {
	Encode(node parser.Node) error
	MarshalNode(node parser.Node) ([]byte, error)
}

// NewNodeEncoder returns the encoder registered under name: "tree" or "json".
func NewNodeEncoder(name string, w io.Writer, positions bool) (NodeEncoder, error) {
	switch name {
	case "", "tree":
		return NewTreeEncoder(w, positions), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown tree format %q", name)
}

// describe returns the node kind and a short summary of its payload.
func describe(n parser.Node) (string, string) {
	switch n := n.(type) {
	case *parser.UnaryExpr:
		return "UnaryExpr", n.Op.Name()
	case *parser.BinaryExpr:
		return "BinaryExpr", n.Op.Name()
	case *parser.TernaryExpr:
		return "TernaryExpr", n.Op.Name()
	case *parser.CastExpr:
		return "CastExpr", n.Type.String()
	case *parser.SizeofTypeExpr:
		return "SizeofTypeExpr", n.Type.String()
	case *parser.MemberAccessExpr:
		if n.Arrow {
			return "MemberAccessExpr", "->" + n.Member.Literal()
		}
		return "MemberAccessExpr", "." + n.Member.Literal()
	case *parser.CallExpr:
		return "CallExpr", fmt.Sprintf("%d args", len(n.Args))
	case *parser.PrimaryExpr:
		return "PrimaryExpr", n.Token.Literal()
	case *parser.ExprStmt:
		if n.X == nil {
			return "EmptyStmt", ""
		}
		return "ExprStmt", ""
	case *parser.Unit:
		return "Unit", fmt.Sprintf("%d items", len(n.Items))
	case *parser.TypeName:
		return "TypeName", n.String()
	case *parser.SpecifierQualifierList:
		return "SpecifierQualifierList", joinWords(n.Qualifiers.String(), specifierNames(n.Specifiers))
	case *parser.Pointer:
		return "Pointer", n.Qualifiers.String()
	case *parser.DeclarationSpecifiers:
		var classes []string
		for _, s := range n.StorageClasses {
			classes = append(classes, s.Class.String())
		}
		return "DeclarationSpecifiers", joinWords(
			strings.Join(classes, " "),
			n.FunctionSpecifiers.String(),
			n.Qualifiers.String(),
			specifierNames(n.TypeSpecifiers),
		)
	case *parser.Declarator:
		return "Declarator", n.Name()
	case *parser.DirectDeclarator:
		if n.Kind == parser.DirectIdentifier {
			return "DirectDeclarator", n.Identifier.Literal()
		}
		return "DirectDeclarator", n.Kind.String()
	case *parser.Declaration:
		return "Declaration", ""
	}
	return fmt.Sprintf("%T", n), ""
}

func specifierNames(specs []parser.TypeSpecifier) string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.String()
	}
	return strings.Join(names, " ")
}

func joinWords(words ...string) string {
	var parts []string
	for _, w := range words {
		if w != "" {
			parts = append(parts, w)
		}
	}
	return strings.Join(parts, " ")
}

func span(loc parser.Location) string {
	end := loc.EndPosition()
	return fmt.Sprintf("%d:%d-%d:%d", loc.Line, loc.Column, end.Line, end.Column)
}
