package parser

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenUnexpected
	TokenWhitespace
	TokenLineComment
	TokenBlockComment

	// Literals
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenIdent

	// Keywords
	TokenAuto
	TokenBreak
	TokenCase
	TokenChar
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtern
	TokenFloat
	TokenFor
	TokenGoto
	TokenIf
	TokenInline
	TokenInt
	TokenLong
	TokenRegister
	TokenRestrict
	TokenReturn
	TokenShort
	TokenSigned
	TokenSizeof
	TokenStatic
	TokenStruct
	TokenSwitch
	TokenTypedef
	TokenUnion
	TokenUnsigned
	TokenVoid
	TokenVolatile
	TokenWhile
	TokenAlignas
	TokenAlignof
	TokenAtomic
	TokenGeneric
	TokenStaticAssert
	TokenThreadLocal

	// Punctuators
	TokenShlAssign
	TokenShrAssign
	TokenEllipsis
	TokenEq
	TokenNotEq
	TokenLE
	TokenGE
	TokenIncrement
	TokenDecrement
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenAndAnd
	TokenOrOr
	TokenShl
	TokenShr
	TokenArrow
	TokenHashHash
	TokenAssign
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenAmp
	TokenPipe
	TokenCaret
	TokenTilde
	TokenBang
	TokenQuestion
	TokenColon
	TokenHash
	TokenLT
	TokenGT
	TokenDot
	TokenComma
	TokenSemicolon
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenUnexpected:    "Unexpected",
	TokenWhitespace:    "Whitespace",
	TokenLineComment:   "LineComment",
	TokenBlockComment:  "BlockComment",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenIdent:         "Identifier",
	TokenAuto:          "auto",
	TokenBreak:         "break",
	TokenCase:          "case",
	TokenChar:          "char",
	TokenConst:         "const",
	TokenContinue:      "continue",
	TokenDefault:       "default",
	TokenDo:            "do",
	TokenDouble:        "double",
	TokenElse:          "else",
	TokenEnum:          "enum",
	TokenExtern:        "extern",
	TokenFloat:         "float",
	TokenFor:           "for",
	TokenGoto:          "goto",
	TokenIf:            "if",
	TokenInline:        "inline",
	TokenInt:           "int",
	TokenLong:          "long",
	TokenRegister:      "register",
	TokenRestrict:      "restrict",
	TokenReturn:        "return",
	TokenShort:         "short",
	TokenSigned:        "signed",
	TokenSizeof:        "sizeof",
	TokenStatic:        "static",
	TokenStruct:        "struct",
	TokenSwitch:        "switch",
	TokenTypedef:       "typedef",
	TokenUnion:         "union",
	TokenUnsigned:      "unsigned",
	TokenVoid:          "void",
	TokenVolatile:      "volatile",
	TokenWhile:         "while",
	TokenAlignas:       "_Alignas",
	TokenAlignof:       "_Alignof",
	TokenAtomic:        "_Atomic",
	TokenGeneric:       "_Generic",
	TokenStaticAssert:  "_Static_assert",
	TokenThreadLocal:   "_Thread_local",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenEllipsis:      "...",
	TokenEq:            "==",
	TokenNotEq:         "!=",
	TokenLE:            "<=",
	TokenGE:            ">=",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenAndAnd:        "&&",
	TokenOrOr:          "||",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenArrow:         "->",
	TokenHashHash:      "##",
	TokenAssign:        "=",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenAmp:           "&",
	TokenPipe:          "|",
	TokenCaret:         "^",
	TokenTilde:         "~",
	TokenBang:          "!",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenHash:          "#",
	TokenLT:            "<",
	TokenGT:            ">",
	TokenDot:           ".",
	TokenComma:         ",",
	TokenSemicolon:     ";",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k TokenKind) IsKeyword() bool {
	return k >= TokenAuto && k <= TokenThreadLocal
}

func (k TokenKind) IsPunctuator() bool {
	return k >= TokenShlAssign && k <= TokenRBracket
}

func (k TokenKind) IsLiteral() bool {
	return k >= TokenIntLiteral && k <= TokenStringLiteral
}

// IsTrivia reports whether tokens of kind k are skipped by the parser.
func (k TokenKind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenLineComment || k == TokenBlockComment
}

type IntType int

const (
	IntPlain IntType = iota
	IntLong
	IntLongLong
	IntUnsigned
	IntUnsignedLong
	IntUnsignedLongLong
)

var intTypeNames = map[IntType]string{
	IntPlain:            "int",
	IntLong:             "long",
	IntLongLong:         "long long",
	IntUnsigned:         "unsigned int",
	IntUnsignedLong:     "unsigned long",
	IntUnsignedLongLong: "unsigned long long",
}

func (t IntType) String() string {
	if name, ok := intTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

func (t IntType) IsUnsigned() bool {
	return t >= IntUnsigned
}

type FloatType int

const (
	FloatDouble FloatType = iota
	FloatFloat
	FloatLongDouble
	FloatBinary16
	FloatBinary32
	FloatBinary64
	FloatDecimal32
	FloatDecimal64
	FloatDecimal128
)

var floatTypeNames = map[FloatType]string{
	FloatDouble:     "double",
	FloatFloat:      "float",
	FloatLongDouble: "long double",
	FloatBinary16:   "_Float16",
	FloatBinary32:   "_Float32",
	FloatBinary64:   "_Float64",
	FloatDecimal32:  "_Decimal32",
	FloatDecimal64:  "_Decimal64",
	FloatDecimal128: "_Decimal128",
}

func (t FloatType) String() string {
	if name, ok := floatTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

func (t FloatType) IsDecimal() bool {
	return t >= FloatDecimal32
}

// IntLiteral is the payload of an integer literal. Digits excludes the radix
// prefix and the suffix.
type IntLiteral struct {
	Digits string
	Base   int
	Type   IntType
}

type FloatLiteral struct {
	Hex              bool
	HasInteger       bool
	Integer          string
	HasFraction      bool
	Fraction         string
	HasExponent      bool
	ExponentNegative bool
	Exponent         string
	Type             FloatType
}

// Token is a classified range of the source. Int and Float are only
// meaningful for integer and floating literals.
type Token struct {
	Kind     TokenKind
	Location Location
	Int      IntLiteral
	Float    FloatLiteral
}

func (t Token) Literal() string {
	return t.Location.Snippet()
}

func (t Token) Loc() Location {
	return t.Location
}

var keywords = map[string]TokenKind{
	"auto":           TokenAuto,
	"break":          TokenBreak,
	"case":           TokenCase,
	"char":           TokenChar,
	"const":          TokenConst,
	"continue":       TokenContinue,
	"default":        TokenDefault,
	"do":             TokenDo,
	"double":         TokenDouble,
	"else":           TokenElse,
	"enum":           TokenEnum,
	"extern":         TokenExtern,
	"float":          TokenFloat,
	"for":            TokenFor,
	"goto":           TokenGoto,
	"if":             TokenIf,
	"inline":         TokenInline,
	"int":            TokenInt,
	"long":           TokenLong,
	"register":       TokenRegister,
	"restrict":       TokenRestrict,
	"return":         TokenReturn,
	"short":          TokenShort,
	"signed":         TokenSigned,
	"sizeof":         TokenSizeof,
	"static":         TokenStatic,
	"struct":         TokenStruct,
	"switch":         TokenSwitch,
	"typedef":        TokenTypedef,
	"union":          TokenUnion,
	"unsigned":       TokenUnsigned,
	"void":           TokenVoid,
	"volatile":       TokenVolatile,
	"while":          TokenWhile,
	"_Alignas":       TokenAlignas,
	"_Alignof":       TokenAlignof,
	"_Atomic":        TokenAtomic,
	"_Generic":       TokenGeneric,
	"_Static_assert": TokenStaticAssert,
	"_Thread_local":  TokenThreadLocal,
	"alignas":        TokenAlignas,
	"alignof":        TokenAlignof,
	"static_assert":  TokenStaticAssert,
	"thread_local":   TokenThreadLocal,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// punctuators is ordered longest first; the lexer takes the first match.
var punctuators = []struct {
	text string
	kind TokenKind
}{
	{"<<=", TokenShlAssign},
	{">>=", TokenShrAssign},
	{"...", TokenEllipsis},
	{"==", TokenEq},
	{"!=", TokenNotEq},
	{"<=", TokenLE},
	{">=", TokenGE},
	{"++", TokenIncrement},
	{"--", TokenDecrement},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenStarAssign},
	{"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign},
	{"&=", TokenAndAssign},
	{"|=", TokenOrAssign},
	{"^=", TokenXorAssign},
	{"&&", TokenAndAnd},
	{"||", TokenOrOr},
	{"<<", TokenShl},
	{">>", TokenShr},
	{"->", TokenArrow},
	{"##", TokenHashHash},
	{"=", TokenAssign},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"%", TokenPercent},
	{"&", TokenAmp},
	{"|", TokenPipe},
	{"^", TokenCaret},
	{"~", TokenTilde},
	{"!", TokenBang},
	{"?", TokenQuestion},
	{":", TokenColon},
	{"#", TokenHash},
	{"<", TokenLT},
	{">", TokenGT},
	{".", TokenDot},
	{",", TokenComma},
	{";", TokenSemicolon},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
}
