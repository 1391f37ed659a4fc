package parser

import (
	"math"
	"testing"
)

func TestTokenIntValue(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
	}{
		{"0", 0},
		{"42", 42},
		{"0x1Full", 31},
		{"010", 8},
		{"0b101", 5},
		{"18446744073709551615u", math.MaxUint64},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, _ := lexOne(t, tt.input)
			got, err := tok.IntValue()
			if err != nil {
				t.Fatalf("IntValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IntValue() = %d, want %d", got, tt.want)
			}
		})
	}

	tok, _ := lexOne(t, "019")
	if _, err := tok.IntValue(); err == nil {
		t.Error("IntValue() of 019 succeeded, want error")
	}
}

func TestTokenFloatValue(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1.5e10", 1.5e10},
		{".25", 0.25},
		{"3.", 3},
		{"1e-3", 1e-3},
		{"0x1.8p1", 3},
		{"0x.8p0", 0.5},
		{"2.5f", 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, _ := lexOne(t, tt.input)
			got, err := tok.FloatValue()
			if err != nil {
				t.Fatalf("FloatValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FloatValue() = %v, want %v", got, tt.want)
			}
		})
	}

	tok, _ := lexOne(t, "1.0dd")
	if _, err := tok.FloatValue(); err == nil {
		t.Error("FloatValue() of a decimal float succeeded, want error")
	}
}

func TestTokenStringValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"plain"`, "plain"},
		{`"a\tb\n"`, "a\tb\n"},
		{`"\\ \' \" \?"`, `\ ' " ?`},
		{`"\x41\x62"`, "Ab"},
		{`"\101\0"`, "A\x00"},
		{`"é"`, "é"},
		{`"\U0001F600"`, "\U0001F600"},
		{`"\e\a"`, "\x1b\a"},
		{`"\q"`, "q"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, _ := lexOne(t, tt.input)
			got, err := tok.StringValue()
			if err != nil {
				t.Fatalf("StringValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("StringValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenStringValueErrors(t *testing.T) {
	for _, input := range []string{`"\x"`, `"\u12"`, `"\U0001F6"`} {
		t.Run(input, func(t *testing.T) {
			tok, _ := lexOne(t, input)
			if _, err := tok.StringValue(); err == nil {
				t.Errorf("StringValue() of %s succeeded, want error", input)
			}
		})
	}
}

func TestTokenCharValue(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{`'a'`, 'a'},
		{`'\n'`, '\n'},
		{`'\x41'`, 'A'},
		{`'\''`, '\''},
		{`'\xff'`, 255},
		{`'\377'`, 255},
		{`'\x80'`, 0x80},
		{`'\u00e9'`, 'é'},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, _ := lexOne(t, tt.input)
			got, err := tok.CharValue()
			if err != nil {
				t.Fatalf("CharValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CharValue() = %q, want %q", got, tt.want)
			}
		})
	}
}
