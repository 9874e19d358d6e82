package codec_test

import (
	"fmt"
	"log"

	"github.com/ssargent/basekit/pkg/codec"
)

// ExampleRecordCodec_basic demonstrates basic record encoding and decoding
func ExampleRecordCodec_basic() {
	rc := codec.NewRecordCodec()

	encoded, err := rc.Encode([]byte("base64"), []byte("john@example.com"))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoded %d bytes\n", len(encoded))

	record, err := rc.Decode(encoded)
	if err != nil {
		log.Fatal(err)
	}

	if err := record.Validate(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoding: %s\n", record.Encoding)
	fmt.Printf("Value: %s\n", record.Value)

	// Output:
	// Encoded 40 bytes
	// Encoding: base64
	// Value: john@example.com
}

// ExampleRecordCodec_errorHandling demonstrates error handling
func ExampleRecordCodec_errorHandling() {
	rc := codec.NewRecordCodec()

	_, err := rc.Decode([]byte{0x01, 0x02, 0x03})
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
	}

	// Output:
	// Decode error: data too short for record header: 3 < 18
}

// ExampleLookup demonstrates selecting a text codec by name
func ExampleLookup() {
	for _, name := range []string{"hex", "base32", "base64"} {
		c, err := codec.Lookup(name)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %s\n", c.Name(), c.EncodeToString([]byte("hello")))
	}

	// Output:
	// hex: 68656c6c6f
	// base32: NBSWY3DP
	// base64: aGVsbG8=
}
