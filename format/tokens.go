package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/cfront/c/parser"
)

// TokenEncoder dumps a token stream, one token per line in text mode or as
// a JSON array.
type TokenEncoder struct {
	w    io.Writer
	json bool
}

func NewTokenEncoder(w io.Writer, format string) (*TokenEncoder, error) {
	switch format {
	case "", "text":
		return &TokenEncoder{w: w}, nil
	case "json":
		return &TokenEncoder{w: w, json: true}, nil
	}
	return nil, fmt.Errorf("unknown token format %q", format)
}

func (e *TokenEncoder) Encode(tokens []parser.Token) error {
	text, err := e.MarshalTokens(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenEncoder) MarshalTokens(tokens []parser.Token) ([]byte, error) {
	if e.json {
		out := make([]*jsonToken, len(tokens))
		for i, tok := range tokens {
			out[i] = tokenToJSON(tok)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%d:%d %s %s", tok.Location.Line, tok.Location.Column, tok.Kind, strconv.Quote(tok.Literal()))
		if payload := tokenPayload(tok); payload != "" {
			sb.WriteByte(' ')
			sb.WriteString(payload)
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// tokenPayload renders the literal classification of tok, or its decoded
// value for strings and characters.
func tokenPayload(tok parser.Token) string {
	switch tok.Kind {
	case parser.TokenIntLiteral:
		return fmt.Sprintf("base=%d digits=%s type=%q", tok.Int.Base, tok.Int.Digits, tok.Int.Type)
	case parser.TokenFloatLiteral:
		f := tok.Float
		parts := []string{fmt.Sprintf("hex=%t", f.Hex)}
		if f.HasInteger {
			parts = append(parts, "int="+f.Integer)
		}
		if f.HasFraction {
			parts = append(parts, "frac="+f.Fraction)
		}
		if f.HasExponent {
			sign := "+"
			if f.ExponentNegative {
				sign = "-"
			}
			parts = append(parts, "exp="+sign+f.Exponent)
		}
		parts = append(parts, fmt.Sprintf("type=%q", f.Type))
		return strings.Join(parts, " ")
	case parser.TokenStringLiteral:
		if v, err := tok.StringValue(); err == nil {
			return "value=" + strconv.Quote(v)
		}
	case parser.TokenCharLiteral:
		if v, err := tok.CharValue(); err == nil {
			return "value=" + strconv.QuoteRune(v)
		}
	}
	return ""
}

type jsonToken struct {
	Kind    parser.TokenKind `json:"kind"`
	Literal string           `json:"literal"`
	Line    int              `json:"line"`
	Column  int              `json:"column"`
	Offset  int              `json:"offset"`
	Int     *jsonInt         `json:"int,omitempty"`
	Float   *jsonFloat       `json:"float,omitempty"`
	Value   *string          `json:"value,omitempty"`
}

type jsonInt struct {
	Digits string `json:"digits"`
	Base   int    `json:"base"`
	Type   string `json:"type"`
}

type jsonFloat struct {
	Hex      bool    `json:"hex"`
	Integer  *string `json:"integer,omitempty"`
	Fraction *string `json:"fraction,omitempty"`
	Exponent *string `json:"exponent,omitempty"`
	Type     string  `json:"type"`
}

func tokenToJSON(tok parser.Token) *jsonToken {
	jt := &jsonToken{
		Kind:    tok.Kind,
		Literal: tok.Literal(),
		Line:    tok.Location.Line,
		Column:  tok.Location.Column,
		Offset:  tok.Location.Offset,
	}
	switch tok.Kind {
	case parser.TokenIntLiteral:
		jt.Int = &jsonInt{Digits: tok.Int.Digits, Base: tok.Int.Base, Type: tok.Int.Type.String()}
	case parser.TokenFloatLiteral:
		f := tok.Float
		jf := &jsonFloat{Hex: f.Hex, Type: f.Type.String()}
		if f.HasInteger {
			jf.Integer = &f.Integer
		}
		if f.HasFraction {
			jf.Fraction = &f.Fraction
		}
		if f.HasExponent {
			exp := f.Exponent
			if f.ExponentNegative {
				exp = "-" + exp
			}
			jf.Exponent = &exp
		}
		jt.Float = jf
	case parser.TokenStringLiteral:
		if v, err := tok.StringValue(); err == nil {
			jt.Value = &v
		}
	case parser.TokenCharLiteral:
		if v, err := tok.CharValue(); err == nil {
			s := string(v)
			jt.Value = &s
		}
	}
	return jt
}
