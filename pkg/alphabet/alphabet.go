// Package alphabet implements the symbol tables shared by the base16, base32
// and base64 codecs.
//
// An Alphabet is an ordered set of N printable ASCII symbols (N is 16, 32 or
// 64) together with its decode map, a 256-entry table that sends every byte
// either to its index in the alphabet or to Invalid. Alphabets are built once
// and never modified, so a single value may be shared by any number of
// goroutines.
package alphabet

import (
	"errors"
	"fmt"
)

const (
	// Invalid marks decode map entries for bytes outside the alphabet.
	Invalid = 0xFF

	// Padding is the reserved filler symbol for short final groups. It is
	// never a member of an alphabet.
	Padding = '='
)

var (
	ErrInvalidSize       = errors.New("alphabet: size must be 16, 32 or 64")
	ErrDuplicateSymbol   = errors.New("alphabet: duplicate symbol")
	ErrPaddingSymbol     = errors.New("alphabet: padding symbol in alphabet")
	ErrUnprintableSymbol = errors.New("alphabet: symbol is not printable ASCII")
)

// Alphabet maps values in [0, Len()) to symbols and back.
type Alphabet struct {
	symbols string
	decode  [256]byte
	folded  bool
}

type options struct {
	caseInsensitive bool
}

// Option configures New.
type Option func(*options)

// CaseInsensitive makes the decode side accept both cases of every letter in
// the alphabet. Encoding still emits the symbols exactly as given.
func CaseInsensitive() Option {
	return func(o *options) {
		o.caseInsensitive = true
	}
}

// New validates symbols and builds the alphabet.
func New(symbols string, opts ...Option) (*Alphabet, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch len(symbols) {
	case 16, 32, 64:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, len(symbols))
	}

	seen := [256]bool{}
	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		switch {
		case c == Padding:
			return nil, fmt.Errorf("%w: offset %d", ErrPaddingSymbol, i)
		case c < 0x21 || c > 0x7E:
			return nil, fmt.Errorf("%w: %#x at offset %d", ErrUnprintableSymbol, c, i)
		case seen[c]:
			return nil, fmt.Errorf("%w: %q at offset %d", ErrDuplicateSymbol, c, i)
		}
		seen[c] = true
	}

	a := &Alphabet{
		symbols: symbols,
		decode:  DecodeMap(symbols),
		folded:  o.caseInsensitive,
	}
	if o.caseInsensitive {
		for i := 0; i < len(symbols); i++ {
			alt, ok := otherCase(symbols[i])
			if !ok {
				continue
			}
			if seen[alt] {
				return nil, fmt.Errorf("%w: %q and %q under case folding", ErrDuplicateSymbol, symbols[i], alt)
			}
			a.decode[alt] = byte(i)
		}
	}

	return a, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// alphabets built from constants.
func MustNew(symbols string, opts ...Option) *Alphabet {
	a, err := New(symbols, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// DecodeMap returns the inverse of symbols: m[symbols[i]] == i and every other
// entry is Invalid. It does not validate symbols.
func DecodeMap(symbols string) [256]byte {
	var m [256]byte
	for i := range m {
		m[i] = Invalid
	}
	for i := 0; i < len(symbols); i++ {
		m[symbols[i]] = byte(i)
	}
	return m
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int { return len(a.symbols) }

// Symbol returns the symbol for v. v must be less than Len().
func (a *Alphabet) Symbol(v byte) byte { return a.symbols[v] }

// Value returns the value of symbol c, or Invalid and false.
func (a *Alphabet) Value(c byte) (byte, bool) {
	v := a.decode[c]
	return v, v != Invalid
}

// DecodeMap returns a copy of the alphabet's decode table, including any case
// folded entries.
func (a *Alphabet) DecodeMap() [256]byte { return a.decode }

// CaseInsensitive reports whether the alphabet was built with CaseInsensitive.
func (a *Alphabet) CaseInsensitive() bool { return a.folded }

// String returns the symbols in value order.
func (a *Alphabet) String() string { return a.symbols }

func otherCase(c byte) (byte, bool) {
	switch {
	case 'a' <= c && c <= 'z':
		return c - 'a' + 'A', true
	case 'A' <= c && c <= 'Z':
		return c - 'A' + 'a', true
	}
	return 0, false
}
