// Package base64 implements the RFC 4648 base64 encoding with padding.
//
// Three source bytes (24 bits) become four symbols of six bits each. Decoding
// requires a non-empty input whose length is a multiple of four; padding is
// only recognised in the last two positions of the final group.
package base64

import (
	"fmt"

	"github.com/ssargent/basekit/pkg/alphabet"
)

const (
	// StdAlphabet is the standard base64 alphabet.
	StdAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	// URLAlphabet is the URL and filename safe base64 alphabet.
	URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

var (
	// StdEncoding uses StdAlphabet.
	StdEncoding = mustEncoding("base64", StdAlphabet)

	// URLEncoding uses URLAlphabet.
	URLEncoding = mustEncoding("base64url", URLAlphabet)
)

// InvalidByteError reports a byte outside the alphabet, or a padding symbol
// where padding is not permitted.
type InvalidByteError struct {
	Byte   byte
	Offset int
}

func (e InvalidByteError) Error() string {
	return fmt.Sprintf("base64: invalid byte %#U at offset %d", rune(e.Byte), e.Offset)
}

// InvalidLengthError reports an input that is empty or whose length is not a
// multiple of 4.
type InvalidLengthError int

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf("base64: invalid input length %d", int(e))
}

// Encoding is a base64 encoding bound to one alphabet.
type Encoding struct {
	name     string
	alphabet *alphabet.Alphabet
}

// NewEncoding returns an Encoding over a 64-symbol alphabet.
func NewEncoding(symbols string) (*Encoding, error) {
	if len(symbols) != 64 {
		return nil, fmt.Errorf("base64: alphabet must have 64 symbols, got %d", len(symbols))
	}
	a, err := alphabet.New(symbols)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	return &Encoding{name: "base64", alphabet: a}, nil
}

func mustEncoding(name, symbols string) *Encoding {
	return &Encoding{name: name, alphabet: alphabet.MustNew(symbols)}
}

// DecodeMap builds the 256-entry inverse table of symbols.
func DecodeMap(symbols string) [256]byte {
	return alphabet.DecodeMap(symbols)
}

// EncodedLen returns the length of an encoding of n source bytes.
func EncodedLen(n int) int { return (n + 2) / 3 * 4 }

// DecodedLen returns the maximum length of a decoding of n source bytes. The
// actual length is up to two bytes shorter when the input is padded.
func DecodedLen(n int) int { return n / 4 * 3 }

// Name returns the registry name of the encoding.
func (enc *Encoding) Name() string { return enc.name }

// Alphabet returns the symbol table of the encoding.
func (enc *Encoding) Alphabet() *alphabet.Alphabet { return enc.alphabet }

// EncodedLen is EncodedLen; padding is always emitted.
func (enc *Encoding) EncodedLen(n int) int { return EncodedLen(n) }

// Encode writes EncodedLen(len(src)) bytes of base64 into dst.
func (enc *Encoding) Encode(dst, src []byte) {
	sym := enc.alphabet.Symbol
	si, di := 0, 0
	n := len(src) / 3 * 3
	for si < n {
		val := uint32(src[si])<<16 | uint32(src[si+1])<<8 | uint32(src[si+2])

		dst[di+0] = sym(byte(val >> 18 & 0x3F))
		dst[di+1] = sym(byte(val >> 12 & 0x3F))
		dst[di+2] = sym(byte(val >> 6 & 0x3F))
		dst[di+3] = sym(byte(val & 0x3F))

		si += 3
		di += 4
	}

	switch len(src) - si {
	case 1:
		val := uint32(src[si]) << 16
		dst[di+0] = sym(byte(val >> 18 & 0x3F))
		dst[di+1] = sym(byte(val >> 12 & 0x3F))
		dst[di+2] = alphabet.Padding
		dst[di+3] = alphabet.Padding
	case 2:
		val := uint32(src[si])<<16 | uint32(src[si+1])<<8
		dst[di+0] = sym(byte(val >> 18 & 0x3F))
		dst[di+1] = sym(byte(val >> 12 & 0x3F))
		dst[di+2] = sym(byte(val >> 6 & 0x3F))
		dst[di+3] = alphabet.Padding
	}
}

// EncodeToString returns the base64 encoding of src.
func (enc *Encoding) EncodeToString(src []byte) string {
	dst := make([]byte, EncodedLen(len(src)))
	enc.Encode(dst, src)
	return string(dst)
}

// Decode decodes src into dst and returns the number of bytes written. dst
// must have room for DecodedLen(len(src)) bytes.
func (enc *Encoding) Decode(dst, src []byte) (int, error) {
	if len(src) == 0 || len(src)%4 != 0 {
		return 0, InvalidLengthError(len(src))
	}

	n := 0
	last := len(src) - 4
	for si := 0; si < last; si += 4 {
		val, err := enc.decodeQuantum(src, si, 4)
		if err != nil {
			return n, err
		}
		dst[n+0] = byte(val >> 16)
		dst[n+1] = byte(val >> 8)
		dst[n+2] = byte(val)
		n += 3
	}

	symbols := 4
	switch {
	case src[last+2] == alphabet.Padding:
		if src[last+3] != alphabet.Padding {
			return n, InvalidByteError{Byte: src[last+2], Offset: last + 2}
		}
		symbols = 2
	case src[last+3] == alphabet.Padding:
		symbols = 3
	}

	val, err := enc.decodeQuantum(src, last, symbols)
	if err != nil {
		return n, err
	}
	dst[n] = byte(val >> 16)
	n++
	if symbols > 2 {
		dst[n] = byte(val >> 8)
		n++
	}
	if symbols > 3 {
		dst[n] = byte(val)
		n++
	}
	return n, nil
}

// decodeQuantum combines the first count symbols at src[si:] into the top of
// a 24-bit value.
func (enc *Encoding) decodeQuantum(src []byte, si, count int) (uint32, error) {
	var val uint32
	for k := 0; k < count; k++ {
		v, ok := enc.alphabet.Value(src[si+k])
		if !ok {
			return 0, InvalidByteError{Byte: src[si+k], Offset: si + k}
		}
		val |= uint32(v) << (18 - 6*k)
	}
	return val, nil
}

// DecodeString returns the bytes represented by the base64 string s.
func (enc *Encoding) DecodeString(s string) ([]byte, error) {
	src := []byte(s)
	dst := make([]byte, DecodedLen(len(src)))
	n, err := enc.Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
