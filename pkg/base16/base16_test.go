package base16

import (
	"encoding/hex"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_Vectors(t *testing.T) {
	testCases := []struct {
		name    string
		data    []byte
		encoded string
	}{
		{name: "empty", data: []byte{}, encoded: ""},
		{name: "low bytes", data: []byte{0, 1, 2, 3, 4, 5, 6, 7}, encoded: "0001020304050607"},
		{name: "low nibbles", data: []byte{8, 9, 10, 11, 12, 13, 14, 15}, encoded: "08090a0b0c0d0e0f"},
		{name: "high bytes", data: []byte{0xf0, 0xf1, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7}, encoded: "f0f1f2f3f4f5f6f7"},
		{name: "top bytes", data: []byte{0xf8, 0xf9, 0xfa, 0xfb, 0xfc, 0xfd, 0xfe, 0xff}, encoded: "f8f9fafbfcfdfeff"},
		{name: "single", data: []byte("g"), encoded: "67"},
		{name: "pair", data: []byte{0xe3, 0xa1}, encoded: "e3a1"},
		{name: "f", data: []byte("f"), encoded: "66"},
		{name: "foobar", data: []byte("foobar"), encoded: "666f6f626172"},
		{name: "hello", data: []byte("hello"), encoded: "68656c6c6f"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := EncodeToString(tc.data)
			assert.Equal(t, tc.encoded, encoded)
			assert.Len(t, encoded, EncodedLen(len(tc.data)))

			decoded, err := DecodeString(encoded)
			require.NoError(t, err)
			assert.Equal(t, tc.data, decoded)
		})
	}
}

func TestDecode_MixedCase(t *testing.T) {
	decoded, err := DecodeString("F0e1D2c3BbAa")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xf0, 0xe1, 0xd2, 0xc3, 0xbb, 0xaa}, decoded)
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantOdd    bool
		wantByte   byte
		wantOffset int
	}{
		{name: "odd length", input: "abc", wantOdd: true},
		{name: "single digit", input: "a", wantOdd: true},
		{name: "invalid pair", input: "zz", wantByte: 'z', wantOffset: 0},
		{name: "invalid low nibble", input: "0g", wantByte: 'g', wantOffset: 1},
		{name: "invalid later pair", input: "00ff0x", wantByte: 'x', wantOffset: 5},
		{name: "odd with invalid trailer", input: "abz", wantByte: 'z', wantOffset: 2},
		{name: "odd with invalid earlier byte", input: "zbc", wantByte: 'z', wantOffset: 0},
		{name: "padding symbol", input: "6=", wantByte: '=', wantOffset: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := DecodeString(tc.input)
			require.Error(t, err)
			assert.Nil(t, decoded)

			if tc.wantOdd {
				assert.ErrorIs(t, err, ErrOddLength)
				return
			}

			var invalid InvalidByteError
			require.True(t, errors.As(err, &invalid), "got %T: %v", err, err)
			assert.Equal(t, tc.wantByte, invalid.Byte)
			assert.Equal(t, tc.wantOffset, invalid.Offset)
			assert.False(t, errors.Is(err, ErrOddLength))
		})
	}
}

func TestInvalidByteError_Message(t *testing.T) {
	_, err := DecodeString("zz")
	assert.EqualError(t, err, "base16: invalid byte U+007A 'z' at offset 0")
}

func TestLengths(t *testing.T) {
	prev := 0
	for n := 0; n < 64; n++ {
		enc := EncodedLen(n)
		assert.Equal(t, 2*n, enc)
		assert.GreaterOrEqual(t, enc, prev)
		assert.GreaterOrEqual(t, DecodedLen(enc), n)
		assert.Equal(t, n/2, DecodedLen(n))
		prev = enc
	}
}

func TestAppendEncode(t *testing.T) {
	out := AppendEncode([]byte("id="), []byte{0xde, 0xad})
	assert.Equal(t, "id=dead", string(out))
}

func TestRoundTrip_MatchesStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		data := make([]byte, rng.Intn(100))
		rng.Read(data)

		encoded := EncodeToString(data)
		assert.Equal(t, hex.EncodeToString(data), encoded)

		decoded, err := DecodeString(encoded)
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	}
}
