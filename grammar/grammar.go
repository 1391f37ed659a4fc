// Package grammar carries the reference EBNF grammar of the accepted C
// subset and checks it, and token streams, against golang.org/x/exp/ebnf.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"reflect"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

// Start is the production every other production is reachable from.
const Start = "Start"

//go:embed c.ebnf
var source []byte

var log = commonlog.GetLogger("cfront.grammar")

// Source returns the text of the embedded grammar.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses and verifies the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return Check("c.ebnf", bytes.NewReader(source), Start)
}

// Check parses the grammar read from r and verifies it from start. With an
// empty start only the syntax is checked.
func Check(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	if start != "" {
		if err := ebnf.Verify(g, start); err != nil {
			return nil, err
		}
	}
	log.Debugf("%s: %d productions", filename, len(g))
	return g, nil
}

// Errors splits the error list returned by ebnf.Parse and ebnf.Verify into
// its individual errors.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		return []error{err}
	}
	errs := make([]error, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if e, ok := v.Index(i).Interface().(error); ok {
			errs = append(errs, e)
		} else {
			errs = append(errs, fmt.Errorf("%v", v.Index(i).Interface()))
		}
	}
	return errs
}
