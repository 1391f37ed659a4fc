package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cfront/c/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalNode(node)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *ASTJSONEncoder) MarshalNode(node parser.Node) ([]byte, error) {
	if node == nil {
		return []byte("null"), nil
	}
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Detail   string         `json:"detail,omitempty"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Token    *jsonToken     `json:"token,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Offset int             `json:"offset"`
	Length int             `json:"length"`
	Start  astJSONPosition `json:"start"`
	End    astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func spanToJSON(loc parser.Location) *astJSONSpan {
	if loc.Line == 0 {
		return nil
	}
	end := loc.EndPosition()
	return &astJSONSpan{
		Offset: loc.Offset,
		Length: loc.Length,
		Start:  astJSONPosition{Line: loc.Line, Column: loc.Column},
		End:    astJSONPosition{Line: end.Line, Column: end.Column},
	}
}

func nodeToJSON(n parser.Node) *astJSONNode {
	kind, detail := describe(n)
	jn := &astJSONNode{
		Kind:   kind,
		Detail: detail,
		Span:   spanToJSON(n.Loc()),
	}

	switch n := n.(type) {
	case *parser.PrimaryExpr:
		jn.Token = tokenToJSON(n.Token)
	case *parser.MemberAccessExpr:
		jn.Token = tokenToJSON(n.Member)
	}

	children := parser.Children(n)
	if len(children) > 0 {
		jn.Children = make([]*astJSONNode, len(children))
		for i, child := range children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
