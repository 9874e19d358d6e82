// Package codec provides the record framing used by the basekit blob store
// and a registry of named binary-to-text codecs.
//
// # Record Format
//
// Records are serialized in a binary format with the following structure:
//
//	[CRC32(4)][EncodingLen(2)][ValueSize(4)][Timestamp(8)][Encoding][Value]
//
// Fields:
//   - CRC32: IEEE checksum of every byte after the CRC field (little-endian)
//   - EncodingLen: 16-bit length of the encoding name (little-endian)
//   - ValueSize: 32-bit length of the payload (little-endian)
//   - Timestamp: 64-bit Unix timestamp in nanoseconds (little-endian)
//   - Encoding: name of the text encoding the payload was submitted in
//   - Value: the decoded payload bytes
//
// Integer fields are written with byteorder.LittleEndian. The total record
// size is HeaderSize + len(encoding) + len(value).
//
// # Usage
//
//	rc := codec.NewRecordCodec()
//
//	encoded, err := rc.Encode([]byte("base64"), payload)
//	if err != nil {
//	    return err
//	}
//
//	record, err := rc.Decode(encoded)
//	if err != nil {
//	    return err
//	}
//	if err := record.Validate(); err != nil {
//	    return err // corrupted
//	}
//
// # Text Codecs
//
// Lookup resolves the names hex, base16, base32, base32hex, base64 and
// base64url to a TextCodec. The codecs are stateless and safe for concurrent
// use.
package codec
