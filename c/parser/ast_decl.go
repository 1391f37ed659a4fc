package parser

import "strings"

type TypeSpecifierKind int

const (
	SpecVoid TypeSpecifierKind = iota
	SpecChar
	SpecShort
	SpecInt
	SpecLong
	SpecFloat
	SpecDouble
	SpecSigned
	SpecUnsigned
	SpecStruct
	SpecUnion
	SpecEnum
	SpecTypedefName
)

var typeSpecifierNames = map[TypeSpecifierKind]string{
	SpecVoid:        "void",
	SpecChar:        "char",
	SpecShort:       "short",
	SpecInt:         "int",
	SpecLong:        "long",
	SpecFloat:       "float",
	SpecDouble:      "double",
	SpecSigned:      "signed",
	SpecUnsigned:    "unsigned",
	SpecStruct:      "struct",
	SpecUnion:       "union",
	SpecEnum:        "enum",
	SpecTypedefName: "typedef-name",
}

func (k TypeSpecifierKind) String() string {
	if name, ok := typeSpecifierNames[k]; ok {
		return name
	}
	return "Unknown"
}

var typeSpecifierKeywords = map[TokenKind]TypeSpecifierKind{
	TokenVoid:     SpecVoid,
	TokenChar:     SpecChar,
	TokenShort:    SpecShort,
	TokenInt:      SpecInt,
	TokenLong:     SpecLong,
	TokenFloat:    SpecFloat,
	TokenDouble:   SpecDouble,
	TokenSigned:   SpecSigned,
	TokenUnsigned: SpecUnsigned,
	TokenStruct:   SpecStruct,
	TokenUnion:    SpecUnion,
	TokenEnum:     SpecEnum,
}

// TypeSpecifier is one type specifier keyword, or a typedef name in which
// case Name holds the identifier.
type TypeSpecifier struct {
	Kind     TypeSpecifierKind
	Name     string
	Location Location
}

func (s TypeSpecifier) String() string {
	if s.Kind == SpecTypedefName {
		return s.Name
	}
	return s.Kind.String()
}

type TypeQualifiers uint8

const (
	QualConst TypeQualifiers = 1 << iota
	QualRestrict
	QualVolatile
)

var typeQualifierKeywords = map[TokenKind]TypeQualifiers{
	TokenConst:    QualConst,
	TokenRestrict: QualRestrict,
	TokenVolatile: QualVolatile,
}

func (q TypeQualifiers) Has(flag TypeQualifiers) bool {
	return q&flag != 0
}

func (q TypeQualifiers) String() string {
	var parts []string
	if q.Has(QualConst) {
		parts = append(parts, "const")
	}
	if q.Has(QualRestrict) {
		parts = append(parts, "restrict")
	}
	if q.Has(QualVolatile) {
		parts = append(parts, "volatile")
	}
	return strings.Join(parts, " ")
}

type StorageClass int

const (
	StorageAuto StorageClass = iota
	StorageExtern
	StorageRegister
	StorageStatic
	StorageTypedef
	StorageThreadLocal
)

var storageClassNames = map[StorageClass]string{
	StorageAuto:        "auto",
	StorageExtern:      "extern",
	StorageRegister:    "register",
	StorageStatic:      "static",
	StorageTypedef:     "typedef",
	StorageThreadLocal: "_Thread_local",
}

var storageClassKeywords = map[TokenKind]StorageClass{
	TokenAuto:        StorageAuto,
	TokenExtern:      StorageExtern,
	TokenRegister:    StorageRegister,
	TokenStatic:      StorageStatic,
	TokenTypedef:     StorageTypedef,
	TokenThreadLocal: StorageThreadLocal,
}

func (s StorageClass) String() string {
	if name, ok := storageClassNames[s]; ok {
		return name
	}
	return "Unknown"
}

type StorageClassSpecifier struct {
	Class    StorageClass
	Location Location
}

type FunctionSpecifiers uint8

const (
	FuncInline FunctionSpecifiers = 1 << iota
)

func (f FunctionSpecifiers) Has(flag FunctionSpecifiers) bool {
	return f&flag != 0
}

func (f FunctionSpecifiers) String() string {
	if f.Has(FuncInline) {
		return "inline"
	}
	return ""
}

// SpecifierQualifierList is the type-only part of a declaration's
// specifiers.
type SpecifierQualifierList struct {
	Specifiers []TypeSpecifier
	Qualifiers TypeQualifiers
	Location   Location
}

func (l *SpecifierQualifierList) Loc() Location { return l.Location }

// TypeName is a specifier-qualifier list with an optional pointer-only
// abstract declarator, as in "const char *".
type TypeName struct {
	SpecifierQualifiers *SpecifierQualifierList
	Pointer             *Pointer
	Location            Location
}

func (t *TypeName) Loc() Location { return t.Location }

func (t *TypeName) String() string {
	var parts []string
	if q := t.SpecifierQualifiers.Qualifiers.String(); q != "" {
		parts = append(parts, q)
	}
	for _, s := range t.SpecifierQualifiers.Specifiers {
		parts = append(parts, s.String())
	}
	s := strings.Join(parts, " ")
	if t.Pointer != nil {
		s += " " + t.Pointer.String()
	}
	return s
}

type DeclarationSpecifiers struct {
	StorageClasses     []StorageClassSpecifier
	TypeSpecifiers     []TypeSpecifier
	Qualifiers         TypeQualifiers
	FunctionSpecifiers FunctionSpecifiers
	Location           Location
}

func (d *DeclarationSpecifiers) Loc() Location { return d.Location }

func (d *DeclarationSpecifiers) HasStorageClass(class StorageClass) bool {
	for _, s := range d.StorageClasses {
		if s.Class == class {
			return true
		}
	}
	return false
}

// Pointer is one '*' level with its qualifiers. Next is the following
// level, so "* const *" is a chain of two.
type Pointer struct {
	Qualifiers TypeQualifiers
	Next       *Pointer
	Location   Location
}

func (p *Pointer) Loc() Location { return p.Location }

func (p *Pointer) Depth() int {
	n := 0
	for q := p; q != nil; q = q.Next {
		n++
	}
	return n
}

func (p *Pointer) String() string {
	var b strings.Builder
	for q := p; q != nil; q = q.Next {
		b.WriteByte('*')
		if s := q.Qualifiers.String(); s != "" {
			b.WriteString(" " + s)
			if q.Next != nil {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

type DirectDeclaratorKind int

const (
	DirectIdentifier DirectDeclaratorKind = iota
	DirectParenthesized
)

func (k DirectDeclaratorKind) String() string {
	if k == DirectParenthesized {
		return "Parenthesized"
	}
	return "Identifier"
}

// DirectDeclarator is either an identifier or a parenthesized declarator.
type DirectDeclarator struct {
	Kind       DirectDeclaratorKind
	Identifier Token
	Declarator *Declarator
	Location   Location
}

func (d *DirectDeclarator) Loc() Location { return d.Location }

type Declarator struct {
	Pointer  *Pointer
	Direct   *DirectDeclarator
	Location Location
}

func (d *Declarator) Loc() Location { return d.Location }

// Name returns the declared identifier.
func (d *Declarator) Name() string {
	for dd := d.Direct; dd != nil; {
		if dd.Kind == DirectIdentifier {
			return dd.Identifier.Literal()
		}
		if dd.Declarator == nil {
			return ""
		}
		dd = dd.Declarator.Direct
	}
	return ""
}

// Declaration is a specifier list terminated by ';'.
type Declaration struct {
	Specifiers *DeclarationSpecifiers
	Semicolon  Location
	Location   Location
}

func (d *Declaration) Loc() Location { return d.Location }
