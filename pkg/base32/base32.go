// Package base32 implements the RFC 4648 base32 encoding with padding.
//
// Five source bytes (40 bits) become eight symbols of five bits each. A short
// final group is packed left-justified and padded with '=' to a full eight
// symbols, giving the canonical pad counts 6, 4, 3 and 1 for one to four
// trailing bytes.
package base32

import (
	"fmt"

	"github.com/ssargent/basekit/pkg/alphabet"
)

const (
	// StdAlphabet is the standard base32 alphabet.
	StdAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

	// HexAlphabet is the "extended hex" base32 alphabet.
	HexAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUV"
)

var (
	// StdEncoding uses StdAlphabet.
	StdEncoding = mustEncoding("base32", StdAlphabet)

	// HexEncoding uses HexAlphabet.
	HexEncoding = mustEncoding("base32hex", HexAlphabet)
)

// InvalidByteError reports a byte outside the alphabet, or a padding symbol
// where padding is not permitted.
type InvalidByteError struct {
	Byte   byte
	Offset int
}

func (e InvalidByteError) Error() string {
	return fmt.Sprintf("base32: invalid byte %#U at offset %d", rune(e.Byte), e.Offset)
}

// InvalidLengthError reports an input whose length is not a multiple of 8.
type InvalidLengthError int

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf("base32: invalid input length %d", int(e))
}

// Encoding is a base32 encoding bound to one alphabet.
type Encoding struct {
	name     string
	alphabet *alphabet.Alphabet
}

// NewEncoding returns an Encoding over a 32-symbol alphabet.
func NewEncoding(symbols string) (*Encoding, error) {
	if len(symbols) != 32 {
		return nil, fmt.Errorf("base32: alphabet must have 32 symbols, got %d", len(symbols))
	}
	a, err := alphabet.New(symbols)
	if err != nil {
		return nil, fmt.Errorf("base32: %w", err)
	}
	return &Encoding{name: "base32", alphabet: a}, nil
}

func mustEncoding(name, symbols string) *Encoding {
	return &Encoding{name: name, alphabet: alphabet.MustNew(symbols)}
}

// EncodedLen returns the length of an encoding of n source bytes.
func EncodedLen(n int) int { return (n + 4) / 5 * 8 }

// DecodedLen returns the maximum length of a decoding of n source bytes.
func DecodedLen(n int) int { return n / 8 * 5 }

// decodedBytes maps the number of real symbols in the final group to the
// number of bytes they carry. Zero marks a non-canonical count.
var decodedBytes = [9]int{8: 5, 7: 4, 5: 3, 4: 2, 2: 1}

// Name returns the registry name of the encoding.
func (enc *Encoding) Name() string { return enc.name }

// Alphabet returns the symbol table of the encoding.
func (enc *Encoding) Alphabet() *alphabet.Alphabet { return enc.alphabet }

// EncodedLen is EncodedLen; padding is always emitted.
func (enc *Encoding) EncodedLen(n int) int { return EncodedLen(n) }

// Encode writes EncodedLen(len(src)) bytes of base32 into dst.
func (enc *Encoding) Encode(dst, src []byte) {
	sym := enc.alphabet.Symbol
	si, di := 0, 0
	n := len(src) / 5 * 5
	for si < n {
		val := uint64(src[si])<<32 |
			uint64(src[si+1])<<24 |
			uint64(src[si+2])<<16 |
			uint64(src[si+3])<<8 |
			uint64(src[si+4])

		dst[di+0] = sym(byte(val >> 35 & 0x1F))
		dst[di+1] = sym(byte(val >> 30 & 0x1F))
		dst[di+2] = sym(byte(val >> 25 & 0x1F))
		dst[di+3] = sym(byte(val >> 20 & 0x1F))
		dst[di+4] = sym(byte(val >> 15 & 0x1F))
		dst[di+5] = sym(byte(val >> 10 & 0x1F))
		dst[di+6] = sym(byte(val >> 5 & 0x1F))
		dst[di+7] = sym(byte(val & 0x1F))

		si += 5
		di += 8
	}

	remain := len(src) - si
	if remain == 0 {
		return
	}

	var val uint64
	for i := 0; i < remain; i++ {
		val |= uint64(src[si+i]) << (32 - 8*i)
	}
	used := (remain*8 + 4) / 5
	for k := 0; k < 8; k++ {
		if k < used {
			dst[di+k] = sym(byte(val >> (35 - 5*k) & 0x1F))
		} else {
			dst[di+k] = alphabet.Padding
		}
	}
}

// EncodeToString returns the base32 encoding of src.
func (enc *Encoding) EncodeToString(src []byte) string {
	dst := make([]byte, EncodedLen(len(src)))
	enc.Encode(dst, src)
	return string(dst)
}

// Decode decodes src into dst and returns the number of bytes written. dst
// must have room for DecodedLen(len(src)) bytes.
//
// Padding is only accepted at the end of the final group and only in the
// counts the encoder produces; anything else is an InvalidByteError on the
// first offending '='. Non-zero bits below the last whole byte are ignored.
func (enc *Encoding) Decode(dst, src []byte) (int, error) {
	if len(src)%8 != 0 {
		return 0, InvalidLengthError(len(src))
	}

	n := 0
	for si := 0; si < len(src); si += 8 {
		group := src[si : si+8]

		symbols := 8
		if si+8 == len(src) {
			for symbols > 0 && group[symbols-1] == alphabet.Padding {
				symbols--
			}
			if decodedBytes[symbols] == 0 {
				return n, InvalidByteError{Byte: alphabet.Padding, Offset: si + symbols}
			}
		}

		var val uint64
		for k := 0; k < symbols; k++ {
			v, ok := enc.alphabet.Value(group[k])
			if !ok {
				return n, InvalidByteError{Byte: group[k], Offset: si + k}
			}
			val |= uint64(v) << (35 - 5*k)
		}

		for k := 0; k < decodedBytes[symbols]; k++ {
			dst[n] = byte(val >> (32 - 8*k))
			n++
		}
	}
	return n, nil
}

// DecodeString returns the bytes represented by the base32 string s.
func (enc *Encoding) DecodeString(s string) ([]byte, error) {
	src := []byte(s)
	dst := make([]byte, DecodedLen(len(src)))
	n, err := enc.Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
