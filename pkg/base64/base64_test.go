package base64

import (
	stdbase64 "encoding/base64"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/basekit/pkg/alphabet"
)

func TestStdEncoding_Vectors(t *testing.T) {
	testCases := []struct {
		data    string
		encoded string
	}{
		{data: "f", encoded: "Zg=="},
		{data: "fo", encoded: "Zm8="},
		{data: "foo", encoded: "Zm9v"},
		{data: "foob", encoded: "Zm9vYg=="},
		{data: "fooba", encoded: "Zm9vYmE="},
		{data: "foobar", encoded: "Zm9vYmFy"},
		{data: "sure.", encoded: "c3VyZS4="},
		{data: "sure", encoded: "c3VyZQ=="},
		{data: "sur", encoded: "c3Vy"},
		{data: "su", encoded: "c3U="},
		{data: "leasure.", encoded: "bGVhc3VyZS4="},
		{data: "easure.", encoded: "ZWFzdXJlLg=="},
		{data: "asure.", encoded: "YXN1cmUu"},
		{data: "hello", encoded: "aGVsbG8="},
	}

	for _, tc := range testCases {
		t.Run(tc.data, func(t *testing.T) {
			encoded := StdEncoding.EncodeToString([]byte(tc.data))
			assert.Equal(t, tc.encoded, encoded)

			decoded, err := StdEncoding.DecodeString(encoded)
			require.NoError(t, err)
			assert.Equal(t, tc.data, string(decoded))
		})
	}
}

func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "", StdEncoding.EncodeToString(nil))
	assert.Equal(t, "", URLEncoding.EncodeToString([]byte{}))
}

func TestURLEncoding(t *testing.T) {
	data := []byte{0xfb, 0xff, 0xbf}

	assert.Equal(t, "+/+/", StdEncoding.EncodeToString(data))
	assert.Equal(t, "-_-_", URLEncoding.EncodeToString(data))

	decoded, err := URLEncoding.DecodeString("-_-_")
	require.NoError(t, err)
	assert.Equal(t, data, decoded)

	_, err = URLEncoding.DecodeString("+/+/")
	var invalid InvalidByteError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, byte('+'), invalid.Byte)
}

func TestLengths(t *testing.T) {
	testCases := []struct {
		n       int
		encoded int
	}{
		{n: 0, encoded: 0},
		{n: 1, encoded: 4},
		{n: 2, encoded: 4},
		{n: 3, encoded: 4},
		{n: 4, encoded: 8},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.encoded, EncodedLen(tc.n), "n=%d", tc.n)
	}

	prev := 0
	for n := 0; n < 100; n++ {
		enc := EncodedLen(n)
		assert.GreaterOrEqual(t, enc, prev)
		assert.GreaterOrEqual(t, DecodedLen(enc), n)
		prev = enc
	}
	assert.Equal(t, 3, DecodedLen(4))
	assert.Equal(t, 3, DecodedLen(7))
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantLength bool
		wantByte   byte
		wantOffset int
	}{
		{name: "empty", input: "", wantLength: true},
		{name: "short", input: "Zg=", wantLength: true},
		{name: "five symbols", input: "Zm9vY", wantLength: true},
		{name: "invalid symbol", input: "Zm9*", wantByte: '*', wantOffset: 3},
		{name: "invalid symbol in earlier group", input: "Z!9vYmFy", wantByte: '!', wantOffset: 1},
		{name: "padding in earlier group", input: "Zg==Zg==", wantByte: '=', wantOffset: 2},
		{name: "padding in second position", input: "Z===", wantByte: '=', wantOffset: 1},
		{name: "padding in first position", input: "====", wantByte: '=', wantOffset: 0},
		{name: "padding followed by symbol", input: "Zg=A", wantByte: '=', wantOffset: 2},
		{name: "newline", input: "Zm9v\n===", wantByte: '\n', wantOffset: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := StdEncoding.DecodeString(tc.input)
			require.Error(t, err)
			assert.Nil(t, decoded)

			if tc.wantLength {
				var lengthErr InvalidLengthError
				require.True(t, errors.As(err, &lengthErr), "got %T: %v", err, err)
				assert.Equal(t, len(tc.input), int(lengthErr))
				return
			}

			var invalid InvalidByteError
			require.True(t, errors.As(err, &invalid), "got %T: %v", err, err)
			assert.Equal(t, tc.wantByte, invalid.Byte)
			assert.Equal(t, tc.wantOffset, invalid.Offset)
		})
	}
}

func TestDecode_PaddingPositions(t *testing.T) {
	testCases := []struct {
		input string
		want  []byte
	}{
		{input: "Zm9v", want: []byte("foo")},
		{input: "Zm8=", want: []byte("fo")},
		{input: "Zg==", want: []byte("f")},
		{input: "Zm9vYmFy", want: []byte("foobar")},
		{input: "Zm9vYmE=", want: []byte("fooba")},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			dst := make([]byte, DecodedLen(len(tc.input)))
			n, err := StdEncoding.Decode(dst, []byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, dst[:n])
		})
	}
}

func TestDecodeMap_MatchesStaticTable(t *testing.T) {
	assert.Equal(t, StdDecodeMap(), DecodeMap(StdAlphabet))
	assert.Equal(t, StdDecodeMap(), StdEncoding.Alphabet().DecodeMap())

	m := StdDecodeMap()
	m['A'] = 0x3f
	assert.Equal(t, byte(0x3f), m['A'])
	assert.Equal(t, byte(0x00), StdDecodeMap()['A'])

	url := DecodeMap(URLAlphabet)
	assert.Equal(t, byte(62), url['-'])
	assert.Equal(t, byte(63), url['_'])
	assert.Equal(t, byte(alphabet.Invalid), url['+'])
	assert.Equal(t, byte(alphabet.Invalid), url['/'])
	assert.Equal(t, byte(alphabet.Invalid), url[alphabet.Padding])
}

func TestNewEncoding(t *testing.T) {
	_, err := NewEncoding(StdAlphabet[:32])
	assert.Error(t, err)

	_, err = NewEncoding(StdAlphabet[:63] + "A")
	assert.ErrorIs(t, err, alphabet.ErrDuplicateSymbol)

	enc, err := NewEncoding("./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")
	require.NoError(t, err)
	decoded, err := enc.DecodeString(enc.EncodeToString([]byte("crypt")))
	require.NoError(t, err)
	assert.Equal(t, "crypt", string(decoded))
}

func TestRoundTrip_MatchesStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(64))
	pairs := []struct {
		ours *Encoding
		std  *stdbase64.Encoding
	}{
		{ours: StdEncoding, std: stdbase64.StdEncoding},
		{ours: URLEncoding, std: stdbase64.URLEncoding},
	}

	for _, p := range pairs {
		t.Run(p.ours.Name(), func(t *testing.T) {
			for i := 0; i < 300; i++ {
				data := make([]byte, 1+rng.Intn(120))
				rng.Read(data)

				encoded := p.ours.EncodeToString(data)
				require.Equal(t, p.std.EncodeToString(data), encoded)

				decoded, err := p.ours.DecodeString(encoded)
				require.NoError(t, err)
				require.Equal(t, data, decoded)
			}
		})
	}
}
