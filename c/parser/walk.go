package parser

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *UnaryExpr:
		return []Node{n.Operand}
	case *BinaryExpr:
		return []Node{n.Left, n.Right}
	case *TernaryExpr:
		return []Node{n.Cond, n.Then, n.Else}
	case *CastExpr:
		return []Node{n.Type, n.Operand}
	case *SizeofTypeExpr:
		return []Node{n.Type}
	case *MemberAccessExpr:
		return []Node{n.Object}
	case *CallExpr:
		children := []Node{n.Callee}
		for _, arg := range n.Args {
			children = append(children, arg)
		}
		return children
	case *ExprStmt:
		if n.X != nil {
			return []Node{n.X}
		}
	case *Unit:
		return n.Items
	case *TypeName:
		children := []Node{n.SpecifierQualifiers}
		if n.Pointer != nil {
			children = append(children, n.Pointer)
		}
		return children
	case *Pointer:
		if n.Next != nil {
			return []Node{n.Next}
		}
	case *Declarator:
		var children []Node
		if n.Pointer != nil {
			children = append(children, n.Pointer)
		}
		return append(children, n.Direct)
	case *DirectDeclarator:
		if n.Declarator != nil {
			return []Node{n.Declarator}
		}
	case *Declaration:
		return []Node{n.Specifiers}
	}
	return nil
}

// Walk calls fn for n and its descendants in depth-first order. Children
// of a node are skipped when fn returns false for it.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, fn)
	}
}
