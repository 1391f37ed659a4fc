package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDeclarationSpecifiers(t *testing.T) {
	p := newTestParser("static const unsigned long int x")
	specs := p.ParseDeclarationSpecifiers()
	if specs == nil {
		t.Fatalf("ParseDeclarationSpecifiers() = nil: %v", p.Diagnostics().All())
	}
	if !specs.HasStorageClass(StorageStatic) {
		t.Error("missing static storage class")
	}
	if !specs.Qualifiers.Has(QualConst) {
		t.Error("missing const qualifier")
	}
	var kinds []TypeSpecifierKind
	for _, s := range specs.TypeSpecifiers {
		kinds = append(kinds, s.Kind)
	}
	want := []TypeSpecifierKind{SpecUnsigned, SpecLong, SpecInt}
	if len(kinds) != len(want) {
		t.Fatalf("type specifiers = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("specifier %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	if got := p.peek().Literal(); got != "x" {
		t.Errorf("stopped at %q, want %q", got, "x")
	}
	if got := specs.Loc().Snippet(); got != "static const unsigned long int" {
		t.Errorf("Snippet = %q", got)
	}
}

func TestParseDeclarationSpecifiersInline(t *testing.T) {
	p := newTestParser("inline _Thread_local volatile double")
	specs := p.ParseDeclarationSpecifiers()
	if specs == nil {
		t.Fatalf("ParseDeclarationSpecifiers() = nil: %v", p.Diagnostics().All())
	}
	if specs.FunctionSpecifiers&FuncInline == 0 {
		t.Error("missing inline")
	}
	if !specs.HasStorageClass(StorageThreadLocal) {
		t.Error("missing _Thread_local")
	}
	if !p.AtEOF() {
		t.Errorf("stopped at %q", p.peek().Literal())
	}
}

func TestParseDeclaration(t *testing.T) {
	node, err := ParseDeclaration(strings.NewReader("typedef int;")).Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	decl, ok := node.(*Declaration)
	if !ok {
		t.Fatalf("node = %T, want *Declaration", node)
	}
	if !decl.Specifiers.HasStorageClass(StorageTypedef) {
		t.Error("missing typedef storage class")
	}
	if decl.Semicolon.Snippet() != ";" {
		t.Errorf("Semicolon = %q", decl.Semicolon.Snippet())
	}
	if decl.Loc().Snippet() != "typedef int;" {
		t.Errorf("Snippet = %q", decl.Loc().Snippet())
	}
}

func TestParseDeclarationErrors(t *testing.T) {
	tests := []struct {
		input       string
		msg         string
		at          string
		unsupported bool
	}{
		{"x;", MsgExpectedDeclSpecifier, "x", false},
		{"int +", MsgExpectedSemicolon, "+", false},
		{"int", MsgExpectedSemicolon, "", false},
		{"typedef int; x", MsgTrailingTokens, "x", false},
		{"int x;", "unsupported construct: init-declarator list", "x", true},
		{"const *p;", "unsupported construct: init-declarator list", "*", true},
		{"struct s;", "unsupported construct: struct specifier", "struct", true},
		{"enum e;", "unsupported construct: enum specifier", "enum", true},
		{"_Atomic int;", "unsupported construct: _Atomic type", "_Atomic", true},
		{"_Alignas(8) int;", "unsupported construct: alignment specifier", "_Alignas", true},
		{`_Static_assert(1, "x");`, "unsupported construct: static assertion", "_Static_assert", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDeclaration(strings.NewReader(tt.input)).Finish()
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("Finish() error = %v, want *Error", err)
			}
			if len(perr.Diagnostics) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(perr.Diagnostics), perr.Diagnostics)
			}
			d := perr.Diagnostics[0]
			if d.Message != tt.msg {
				t.Errorf("Message = %q, want %q", d.Message, tt.msg)
			}
			if d.Location.Snippet() != tt.at {
				t.Errorf("diagnostic at %q, want %q", d.Location.Snippet(), tt.at)
			}
			if got := errors.Is(err, ErrUnsupported); got != tt.unsupported {
				t.Errorf("errors.Is(err, ErrUnsupported) = %v, want %v", got, tt.unsupported)
			}
		})
	}
}

func TestParseDeclarationTypedefNames(t *testing.T) {
	node, err := ParseDeclaration(strings.NewReader("const T;"), WithTypedefNames("T")).Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	specs := node.(*Declaration).Specifiers
	if len(specs.TypeSpecifiers) != 1 || specs.TypeSpecifiers[0].Name != "T" {
		t.Errorf("type specifiers = %v, want [T]", specs.TypeSpecifiers)
	}

	// A second identifier is a declarator, not another type.
	_, err = ParseDeclaration(strings.NewReader("T T;"), WithTypedefNames("T")).Finish()
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("T T; error = %v, want unsupported init-declarator list", err)
	}
}

func TestIsTypedefName(t *testing.T) {
	p := newTestParser("T x", WithTypedefNames("T", "size_t"))
	for name, want := range map[string]bool{"T": true, "size_t": true, "x": false, "int": false} {
		if got := p.IsTypedefName(name); got != want {
			t.Errorf("IsTypedefName(%q) = %v, want %v", name, got, want)
		}
	}
	if !p.startsDeclaration() {
		t.Error("startsDeclaration() = false at typedef name T")
	}
	p.advance()
	if p.startsDeclaration() {
		t.Error("startsDeclaration() = true at identifier x")
	}
}

func TestParseDeclarator(t *testing.T) {
	t.Run("pointer chain", func(t *testing.T) {
		p := newTestParser("* const * p")
		d := p.ParseDeclarator()
		if d == nil {
			t.Fatalf("ParseDeclarator() = nil: %v", p.Diagnostics().All())
		}
		if d.Pointer.Depth() != 2 {
			t.Errorf("Depth = %d, want 2", d.Pointer.Depth())
		}
		if !d.Pointer.Qualifiers.Has(QualConst) {
			t.Error("first level is not const")
		}
		if d.Pointer.Next.Qualifiers != 0 {
			t.Errorf("second level qualifiers = %v, want none", d.Pointer.Next.Qualifiers)
		}
		if d.Name() != "p" {
			t.Errorf("Name = %q, want p", d.Name())
		}
		if d.Loc().Snippet() != "* const * p" {
			t.Errorf("Snippet = %q", d.Loc().Snippet())
		}
	})

	t.Run("parenthesized", func(t *testing.T) {
		p := newTestParser("(*fp)")
		d := p.ParseDeclarator()
		if d == nil {
			t.Fatalf("ParseDeclarator() = nil: %v", p.Diagnostics().All())
		}
		if d.Direct.Kind != DirectParenthesized {
			t.Errorf("Kind = %v, want parenthesized", d.Direct.Kind)
		}
		if d.Name() != "fp" {
			t.Errorf("Name = %q, want fp", d.Name())
		}
		if d.Direct.Declarator.Pointer.Depth() != 1 {
			t.Error("inner declarator lost its pointer")
		}
		if d.Loc().Snippet() != "(*fp)" {
			t.Errorf("Snippet = %q", d.Loc().Snippet())
		}
	})
}

func TestParseDeclaratorErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		at    string
	}{
		{"*;", MsgExpectedDeclarator, ";"},
		{"(*fp;", MsgExpectedDeclaratorEnd, ";"},
		{"a[3]", "unsupported construct: array declarator", "["},
		{"f(void)", "unsupported construct: function declarator", "("},
		{"* _Atomic p", "unsupported construct: _Atomic type", "_Atomic"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(tt.input)
			if d := p.ParseDeclarator(); d != nil {
				t.Fatalf("ParseDeclarator() = %+v, want nil", d)
			}
			all := p.Diagnostics().All()
			if len(all) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(all), all)
			}
			if all[0].Message != tt.msg {
				t.Errorf("Message = %q, want %q", all[0].Message, tt.msg)
			}
			if all[0].Location.Snippet() != tt.at {
				t.Errorf("diagnostic at %q, want %q", all[0].Location.Snippet(), tt.at)
			}
		})
	}
}

func TestParseTypeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
		depth int
	}{
		{"int", "int", 0},
		{"const char *", "const char *", 1},
		{"unsigned long long", "unsigned long long", 0},
		{"void **", "void **", 2},
		{"volatile float * restrict", "volatile float * restrict", 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(tt.input)
			tn := p.ParseTypeName()
			if tn == nil {
				t.Fatalf("ParseTypeName() = nil: %v", p.Diagnostics().All())
			}
			if got := tn.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if tn.Pointer.Depth() != tt.depth {
				t.Errorf("Depth = %d, want %d", tn.Pointer.Depth(), tt.depth)
			}
			if tn.Loc().Snippet() != tt.input {
				t.Errorf("Snippet = %q, want %q", tn.Loc().Snippet(), tt.input)
			}
		})
	}

	p := newTestParser("x")
	if tn := p.ParseTypeName(); tn != nil {
		t.Errorf("ParseTypeName(x) = %v, want nil", tn)
	}
	if p.Diagnostics().Len() != 0 || p.peek().Literal() != "x" {
		t.Error("failed type name reported or consumed input")
	}
}

func TestWalkDeclaration(t *testing.T) {
	node, err := ParseDeclaration(strings.NewReader("static int;")).Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	var kinds []string
	Walk(node, func(n Node) bool {
		switch n.(type) {
		case *Declaration:
			kinds = append(kinds, "decl")
		case *DeclarationSpecifiers:
			kinds = append(kinds, "specs")
		}
		return true
	})
	if strings.Join(kinds, ",") != "decl,specs" {
		t.Errorf("visited %v, want decl then specs", kinds)
	}
}
