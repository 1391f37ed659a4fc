package parser

import "testing"

func TestConcat(t *testing.T) {
	src := NewSourceFile("test.c", []byte("alpha + beta"))
	a := Location{File: src, Offset: 0, Length: 5, Line: 1, Column: 1}
	b := Location{File: src, Offset: 8, Length: 4, Line: 1, Column: 9}

	got := Concat(a, b)
	if got.Offset != 0 || got.Length != 12 {
		t.Errorf("Concat = [%d,+%d), want [0,+12)", got.Offset, got.Length)
	}
	if got.Snippet() != "alpha + beta" {
		t.Errorf("Snippet = %q, want %q", got.Snippet(), "alpha + beta")
	}
	if got.Line != 1 || got.Column != 1 {
		t.Errorf("start = %d:%d, want 1:1", got.Line, got.Column)
	}
	if same := Concat(b, b); same != b {
		t.Errorf("Concat(b, b) = %+v, want %+v", same, b)
	}
}

func TestConcatDifferentSourcesPanics(t *testing.T) {
	a := Location{File: NewSourceFile("a.c", []byte("x"))}
	b := Location{File: NewSourceFile("a.c", []byte("x"))}

	defer func() {
		if recover() == nil {
			t.Error("Concat of two different sources did not panic")
		}
	}()
	Concat(a, b)
}

func TestLocationEndPosition(t *testing.T) {
	src := NewSourceFile("test.c", []byte("/* a\r\nbc */"))
	loc := Location{File: src, Offset: 0, Length: len(src.Content), Line: 1, Column: 1}

	end := loc.EndPosition()
	if end.Line != 2 || end.Column != 6 {
		t.Errorf("EndPosition = %d:%d, want 2:6", end.Line, end.Column)
	}
	if end.Offset != len(src.Content) {
		t.Errorf("EndPosition offset = %d, want %d", end.Offset, len(src.Content))
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{File: NewSourceFile("dir/main.c", nil), Line: 3, Column: 14}
	if got := loc.String(); got != "dir/main.c:3:14" {
		t.Errorf("String = %q, want %q", got, "dir/main.c:3:14")
	}
	if (Location{}).IsValid() {
		t.Error("zero Location is valid")
	}
}

func TestSourceFileLine(t *testing.T) {
	src := NewSourceFile("test.c", []byte("first\r\nsecond\rthird\nfourth"))
	tests := []struct {
		n    int
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, "fourth"},
		{5, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := src.Line(tt.n); got != tt.want {
			t.Errorf("Line(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
