// SPDX-License-Identifier: MIT

package sedfile

import (
	"github.com/katalvlaran/saltmag/internal/fault"
	"github.com/spf13/cast"
)

// Tokens is a cursor over the whitespace tokens of a "KEY: values" file.
// Keys are recognised by the caller; Tokens only hands out typed values.
type Tokens struct {
	path string
	toks []string
	pos  int
}

// ReadTokens loads every non-comment token of path.
func ReadTokens(path string) (*Tokens, error) {
	t := &Tokens{path: path}
	err := scanFields("sedfile.ReadTokens", path, func(_ int, fields []string) error {
		t.toks = append(t.toks, fields...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// NewTokens wraps an in-memory token list; path is used in messages only.
func NewTokens(path string, toks []string) *Tokens {
	return &Tokens{path: path, toks: toks}
}

// Path returns the source file.
func (t *Tokens) Path() string { return t.path }

// Next returns the next token and false at the end of the stream.
func (t *Tokens) Next() (string, bool) {
	if t.pos >= len(t.toks) {
		return "", false
	}
	s := t.toks[t.pos]
	t.pos++

	return s, true
}

// String returns the next token as the value of key.
func (t *Tokens) String(key string) (string, error) {
	s, ok := t.Next()
	if !ok {
		return "", fault.Newf("sedfile.Tokens", ErrEndOfTokens,
			"missing value for "+key, "see '%s'", t.path)
	}

	return s, nil
}

// Float returns the next token coerced to float64.
func (t *Tokens) Float(key string) (float64, error) {
	s, err := t.String(key)
	if err != nil {
		return 0, err
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, fault.Newf("sedfile.Tokens", ErrSyntax,
			"bad float for "+key, "'%s': %q", t.path, s)
	}

	return v, nil
}

// Int returns the next token coerced to int.
func (t *Tokens) Int(key string) (int, error) {
	s, err := t.String(key)
	if err != nil {
		return 0, err
	}
	v, err := cast.ToIntE(s)
	if err != nil {
		return 0, fault.Newf("sedfile.Tokens", ErrSyntax,
			"bad integer for "+key, "'%s': %q", t.path, s)
	}

	return v, nil
}

// Floats reads n consecutive floats for key.
func (t *Tokens) Floats(key string, n int) ([]float64, error) {
	out := make([]float64, n)
	for k := range out {
		v, err := t.Float(key)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}

	return out, nil
}
