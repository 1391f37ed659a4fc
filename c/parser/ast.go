package parser

// Node is implemented by every syntax tree node.
type Node interface {
	Loc() Location
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type UnaryOp int

const (
	UnarySizeof UnaryOp = iota
	UnaryAddressOf
	UnaryDereference
	UnaryPlus
	UnaryMinus
	UnaryBitwiseNot
	UnaryLogicalNot
	UnaryPreIncrement
	UnaryPreDecrement
	UnaryPostIncrement
	UnaryPostDecrement
)

var unaryOpNames = map[UnaryOp][2]string{
	UnarySizeof:        {"Sizeof", "sizeof"},
	UnaryAddressOf:     {"AddressOf", "&"},
	UnaryDereference:   {"Dereference", "*"},
	UnaryPlus:          {"Plus", "+"},
	UnaryMinus:         {"Minus", "-"},
	UnaryBitwiseNot:    {"BitwiseNot", "~"},
	UnaryLogicalNot:    {"LogicalNot", "!"},
	UnaryPreIncrement:  {"PreIncrement", "++"},
	UnaryPreDecrement:  {"PreDecrement", "--"},
	UnaryPostIncrement: {"PostIncrement", "++"},
	UnaryPostDecrement: {"PostDecrement", "--"},
}

func (op UnaryOp) Name() string {
	if names, ok := unaryOpNames[op]; ok {
		return names[0]
	}
	return "Unknown"
}

// String returns the C spelling of the operator.
func (op UnaryOp) String() string {
	if names, ok := unaryOpNames[op]; ok {
		return names[1]
	}
	return "?"
}

func (op UnaryOp) IsPostfix() bool {
	return op == UnaryPostIncrement || op == UnaryPostDecrement
}

type BinaryOp int

const (
	BinaryComma BinaryOp = iota
	BinaryAssign
	BinaryMulAssign
	BinaryDivAssign
	BinaryModAssign
	BinaryAddAssign
	BinarySubAssign
	BinaryShlAssign
	BinaryShrAssign
	BinaryAndAssign
	BinaryXorAssign
	BinaryOrAssign
	BinaryLogicalOr
	BinaryLogicalAnd
	BinaryBitwiseOr
	BinaryBitwiseXor
	BinaryBitwiseAnd
	BinaryEqual
	BinaryNotEqual
	BinaryLess
	BinaryGreater
	BinaryLessEqual
	BinaryGreaterEqual
	BinaryShl
	BinaryShr
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinarySubscript
)

var binaryOpNames = map[BinaryOp][2]string{
	BinaryComma:        {"Comma", ","},
	BinaryAssign:       {"Assign", "="},
	BinaryMulAssign:    {"MulAssign", "*="},
	BinaryDivAssign:    {"DivAssign", "/="},
	BinaryModAssign:    {"ModAssign", "%="},
	BinaryAddAssign:    {"AddAssign", "+="},
	BinarySubAssign:    {"SubAssign", "-="},
	BinaryShlAssign:    {"ShlAssign", "<<="},
	BinaryShrAssign:    {"ShrAssign", ">>="},
	BinaryAndAssign:    {"AndAssign", "&="},
	BinaryXorAssign:    {"XorAssign", "^="},
	BinaryOrAssign:     {"OrAssign", "|="},
	BinaryLogicalOr:    {"LogicalOr", "||"},
	BinaryLogicalAnd:   {"LogicalAnd", "&&"},
	BinaryBitwiseOr:    {"BitwiseOr", "|"},
	BinaryBitwiseXor:   {"BitwiseXor", "^"},
	BinaryBitwiseAnd:   {"BitwiseAnd", "&"},
	BinaryEqual:        {"Equal", "=="},
	BinaryNotEqual:     {"NotEqual", "!="},
	BinaryLess:         {"Less", "<"},
	BinaryGreater:      {"Greater", ">"},
	BinaryLessEqual:    {"LessEqual", "<="},
	BinaryGreaterEqual: {"GreaterEqual", ">="},
	BinaryShl:          {"Shl", "<<"},
	BinaryShr:          {"Shr", ">>"},
	BinaryAdd:          {"Add", "+"},
	BinarySub:          {"Sub", "-"},
	BinaryMul:          {"Mul", "*"},
	BinaryDiv:          {"Div", "/"},
	BinaryMod:          {"Mod", "%"},
	BinarySubscript:    {"Subscript", "[]"},
}

func (op BinaryOp) Name() string {
	if names, ok := binaryOpNames[op]; ok {
		return names[0]
	}
	return "Unknown"
}

func (op BinaryOp) String() string {
	if names, ok := binaryOpNames[op]; ok {
		return names[1]
	}
	return "?"
}

func (op BinaryOp) IsAssignment() bool {
	return op >= BinaryAssign && op <= BinaryOrAssign
}

type TernaryOp int

const (
	TernaryConditional TernaryOp = iota
)

func (op TernaryOp) Name() string {
	return "Conditional"
}

func (op TernaryOp) String() string {
	return "?:"
}

type UnaryExpr struct {
	Op       UnaryOp
	Operand  Expr
	Location Location
}

type BinaryExpr struct {
	Op       BinaryOp
	Left     Expr
	Right    Expr
	Location Location
}

type TernaryExpr struct {
	Op       TernaryOp
	Cond     Expr
	Then     Expr
	Else     Expr
	Location Location
}

type CastExpr struct {
	Type     *TypeName
	Operand  Expr
	Location Location
}

type SizeofTypeExpr struct {
	Type     *TypeName
	Location Location
}

// MemberAccessExpr is Object.Member, or Object->Member when Arrow is set.
type MemberAccessExpr struct {
	Object   Expr
	Member   Token
	Arrow    bool
	Location Location
}

type CallExpr struct {
	Callee   Expr
	Args     []Expr
	Location Location
}

// PrimaryExpr is an identifier or a literal.
type PrimaryExpr struct {
	Token Token
}

func (e *UnaryExpr) Loc() Location        { return e.Location }
func (e *BinaryExpr) Loc() Location       { return e.Location }
func (e *TernaryExpr) Loc() Location      { return e.Location }
func (e *CastExpr) Loc() Location         { return e.Location }
func (e *SizeofTypeExpr) Loc() Location   { return e.Location }
func (e *MemberAccessExpr) Loc() Location { return e.Location }
func (e *CallExpr) Loc() Location         { return e.Location }
func (e *PrimaryExpr) Loc() Location      { return e.Token.Location }

func (*UnaryExpr) exprNode()        {}
func (*BinaryExpr) exprNode()       {}
func (*TernaryExpr) exprNode()      {}
func (*CastExpr) exprNode()         {}
func (*SizeofTypeExpr) exprNode()   {}
func (*MemberAccessExpr) exprNode() {}
func (*CallExpr) exprNode()         {}
func (*PrimaryExpr) exprNode()      {}

// ExprStmt is an expression followed by ';'. X is nil for the empty
// statement.
type ExprStmt struct {
	X        Expr
	Location Location
}

func (s *ExprStmt) Loc() Location { return s.Location }
func (*ExprStmt) stmtNode()       {}

// Unit is a sequence of declarations and statements, in source order.
type Unit struct {
	Items    []Node
	Location Location
}

func (u *Unit) Loc() Location { return u.Location }
