package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errNotLiteral = errors.New("token is not a literal of the requested kind")

// IntValue returns the value of an integer literal.
func (t Token) IntValue() (uint64, error) {
	if t.Kind != TokenIntLiteral {
		return 0, errNotLiteral
	}
	v, err := strconv.ParseUint(t.Int.Digits, t.Int.Base, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", t.Literal(), err)
	}
	return v, nil
}

// FloatValue returns the value of a binary floating literal. Decimal
// floating classes have no float64 representation and report an error.
func (t Token) FloatValue() (float64, error) {
	if t.Kind != TokenFloatLiteral {
		return 0, errNotLiteral
	}
	f := t.Float
	if f.Type.IsDecimal() {
		return 0, fmt.Errorf("%s: decimal floating literal", t.Literal())
	}

	var b strings.Builder
	if f.Hex {
		b.WriteString("0x")
	}
	if f.HasInteger {
		b.WriteString(f.Integer)
	} else {
		b.WriteByte('0')
	}
	if f.HasFraction {
		b.WriteByte('.')
		b.WriteString(f.Fraction)
	}
	if f.HasExponent {
		if f.Hex {
			b.WriteByte('p')
		} else {
			b.WriteByte('e')
		}
		if f.ExponentNegative {
			b.WriteByte('-')
		}
		b.WriteString(f.Exponent)
	}

	bits := 64
	if f.Type == FloatFloat || f.Type == FloatBinary32 || f.Type == FloatBinary16 {
		bits = 32
	}
	v, err := strconv.ParseFloat(b.String(), bits)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", t.Literal(), err)
	}
	return v, nil
}

// StringValue returns the decoded contents of a string or character literal.
func (t Token) StringValue() (string, error) {
	if t.Kind != TokenStringLiteral && t.Kind != TokenCharLiteral {
		return "", errNotLiteral
	}
	text := t.Literal()
	if len(text) < 2 {
		return "", fmt.Errorf("%s: truncated literal", text)
	}
	return DecodeEscapes(text[1 : len(text)-1])
}

// CharValue returns the value of a character literal. Multi-character
// constants yield their first character.
func (t Token) CharValue() (rune, error) {
	if t.Kind != TokenCharLiteral {
		return 0, errNotLiteral
	}
	s, err := t.StringValue()
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, fmt.Errorf("%s: empty character constant", t.Literal())
	}
	// A lone byte escape such as \xff is a byte value, not UTF-8.
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return rune(s[0]), nil
	}
	return r, nil
}

var simpleEscapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'e':  0x1b,
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'?':  '?',
}

// DecodeEscapes resolves C escape sequences in s. Unknown escapes stand for
// the escaped character itself.
func DecodeEscapes(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		i++
		if i >= len(s) {
			return "", errors.New("trailing backslash in literal")
		}
		ch = s[i]
		if v, ok := simpleEscapes[ch]; ok {
			b.WriteByte(v)
			continue
		}
		switch {
		case ch == 'x':
			j := i + 1
			for j < len(s) && isHexDigit(s[j]) {
				j++
			}
			if j == i+1 {
				return "", errors.New(`\x used with no following hex digits`)
			}
			v, err := strconv.ParseUint(s[i+1:j], 16, 64)
			if err != nil || v > 0xff {
				return "", fmt.Errorf(`hex escape \x%s out of range`, s[i+1:j])
			}
			b.WriteByte(byte(v))
			i = j - 1
		case ch == 'u' || ch == 'U':
			n := 4
			if ch == 'U' {
				n = 8
			}
			if i+n >= len(s) {
				return "", fmt.Errorf(`incomplete universal character name \%c`, ch)
			}
			digits := s[i+1 : i+1+n]
			v, err := strconv.ParseUint(digits, 16, 32)
			if err != nil {
				return "", fmt.Errorf(`invalid universal character name \%c%s`, ch, digits)
			}
			b.WriteRune(rune(v))
			i += n
		case ch >= '0' && ch <= '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i:j], 8, 16)
			b.WriteByte(byte(v))
			i = j - 1
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), nil
}
