// Package base16 implements the RFC 4648 base16 (hex) encoding.
//
// Encoding always emits lowercase digits. Decoding accepts either case.
package base16

import (
	"errors"
	"fmt"

	"github.com/ssargent/basekit/pkg/alphabet"
)

// Alphabet is the base16 symbol set in value order.
const Alphabet = "0123456789abcdef"

// ErrOddLength is returned when a hex string has an odd number of digits.
var ErrOddLength = errors.New("base16: odd length hex string")

// InvalidByteError reports a byte that is not a hex digit.
type InvalidByteError struct {
	Byte   byte
	Offset int
}

func (e InvalidByteError) Error() string {
	return fmt.Sprintf("base16: invalid byte %#U at offset %d", rune(e.Byte), e.Offset)
}

var hexAlphabet = alphabet.MustNew(Alphabet, alphabet.CaseInsensitive())

// EncodedLen returns the length of an encoding of n source bytes.
func EncodedLen(n int) int { return n * 2 }

// DecodedLen returns the length of a decoding of n source bytes.
func DecodedLen(n int) int { return n / 2 }

// Encode writes the hex encoding of src into dst and returns the number of
// bytes written, always EncodedLen(len(src)).
func Encode(dst, src []byte) int {
	j := 0
	for _, v := range src {
		dst[j] = hexAlphabet.Symbol(v >> 4)
		dst[j+1] = hexAlphabet.Symbol(v & 0x0F)
		j += 2
	}
	return len(src) * 2
}

// AppendEncode appends the hex encoding of src to dst.
func AppendEncode(dst, src []byte) []byte {
	n := EncodedLen(len(src))
	out := append(dst, make([]byte, n)...)
	Encode(out[len(dst):], src)
	return out
}

// Decode decodes src into DecodedLen(len(src)) bytes of dst and returns the
// number of bytes written.
//
// If src has odd length the final digit is still validated, so an invalid
// trailing byte is reported as InvalidByteError rather than ErrOddLength.
func Decode(dst, src []byte) (int, error) {
	i, j := 0, 1
	for ; j < len(src); j += 2 {
		hi, ok := hexAlphabet.Value(src[j-1])
		if !ok {
			return i, InvalidByteError{Byte: src[j-1], Offset: j - 1}
		}
		lo, ok := hexAlphabet.Value(src[j])
		if !ok {
			return i, InvalidByteError{Byte: src[j], Offset: j}
		}
		dst[i] = hi<<4 | lo
		i++
	}
	if len(src)%2 == 1 {
		if _, ok := hexAlphabet.Value(src[j-1]); !ok {
			return i, InvalidByteError{Byte: src[j-1], Offset: j - 1}
		}
		return i, ErrOddLength
	}
	return i, nil
}

// EncodeToString returns the hex encoding of src.
func EncodeToString(src []byte) string {
	dst := make([]byte, EncodedLen(len(src)))
	Encode(dst, src)
	return string(dst)
}

// DecodeString returns the bytes represented by the hex string s.
func DecodeString(s string) ([]byte, error) {
	src := []byte(s)
	dst := make([]byte, DecodedLen(len(src)))
	n, err := Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
