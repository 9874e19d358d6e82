package codec

import (
	"fmt"
	"hash/crc32"
	"time"

	"github.com/ssargent/basekit/pkg/byteorder"
)

// HeaderSize is the fixed size of an encoded record header:
// CRC32(4) + EncodingLen(2) + ValueSize(4) + Timestamp(8).
const HeaderSize = 18

// MaxEncodingName is the longest encoding name a record can carry.
const MaxEncodingName = 1<<16 - 1

var order = byteorder.LittleEndian

// Record is a stored payload together with the name of the text encoding it
// was submitted in.
type Record struct {
	CRC32       uint32 // CRC32 checksum for integrity
	EncodingLen uint16 // Size of the encoding name in bytes
	ValueSize   uint32 // Size of the value in bytes
	Timestamp   uint64 // Unix timestamp in nanoseconds
	Encoding    []byte // Encoding name, e.g. "base64"
	Value       []byte // Raw payload
}

// RecordCodec handles serialization and deserialization of records
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Encode serializes an encoding name and payload into the binary record format
// Format: [CRC32(4)][EncodingLen(2)][ValueSize(4)][Timestamp(8)][Encoding][Value]
func (c *RecordCodec) Encode(encoding, value []byte) ([]byte, error) {
	r, err := NewRecord(encoding, value)
	if err != nil {
		return nil, err
	}
	return c.EncodeRecord(r), nil
}

// EncodeRecord serializes r, recomputing its checksum.
func (c *RecordCodec) EncodeRecord(r *Record) []byte {
	r.CRC32 = r.calculateCRC32()

	buf := make([]byte, r.Size())
	order.PutUint32(buf[0:], r.CRC32)
	r.putHeader(buf[4:HeaderSize])
	copy(buf[HeaderSize:], r.Encoding)
	copy(buf[HeaderSize+len(r.Encoding):], r.Value)

	return buf
}

// Decode deserializes a binary record into a Record struct. The returned
// record aliases data.
func (c *RecordCodec) Decode(data []byte) (*Record, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("data too short for record header: %d < %d", len(data), HeaderSize)
	}

	r := &Record{}
	r.CRC32 = order.Uint32(data[0:4])
	r.EncodingLen = order.Uint16(data[4:6])
	r.ValueSize = order.Uint32(data[6:10])
	r.Timestamp = order.Uint64(data[10:18])

	need := uint64(HeaderSize) + uint64(r.EncodingLen) + uint64(r.ValueSize)
	if uint64(len(data)) < need {
		return nil, fmt.Errorf("data too short for encoding/value sizes: %d < %d", len(data), need)
	}

	end := HeaderSize + int(r.EncodingLen)
	r.Encoding = data[HeaderSize:end]
	r.Value = data[end : end+int(r.ValueSize)]

	return r, nil
}

// Validate checks the integrity of a record using CRC32
func (r *Record) Validate() error {
	if sum := r.calculateCRC32(); r.CRC32 != sum {
		return fmt.Errorf("CRC32 mismatch: %d != %d", r.CRC32, sum)
	}
	return nil
}

// Size returns the total size of the record when encoded
func (r *Record) Size() int {
	return HeaderSize + len(r.Encoding) + len(r.Value)
}

// Time returns the record timestamp.
func (r *Record) Time() time.Time {
	return time.Unix(0, int64(r.Timestamp))
}

// NewRecord creates a new record with the current timestamp
func NewRecord(encoding, value []byte) (*Record, error) {
	if len(encoding) > MaxEncodingName {
		return nil, fmt.Errorf("encoding name too large: %d bytes", len(encoding))
	}
	if uint64(len(value)) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("value too large: %d bytes", len(value))
	}
	return &Record{
		EncodingLen: uint16(len(encoding)),
		ValueSize:   uint32(len(value)),
		Timestamp:   uint64(time.Now().UnixNano()),
		Encoding:    encoding,
		Value:       value,
	}, nil
}

func (r *Record) putHeader(b []byte) {
	order.PutUint16(b[0:], r.EncodingLen)
	order.PutUint32(b[2:], r.ValueSize)
	order.PutUint64(b[6:], r.Timestamp)
}

// calculateCRC32 computes the checksum over everything after the CRC field
func (r *Record) calculateCRC32() uint32 {
	var header [HeaderSize - 4]byte
	r.putHeader(header[:])

	crc := crc32.ChecksumIEEE(header[:])
	crc = crc32.Update(crc, crc32.IEEETable, r.Encoding)
	return crc32.Update(crc, crc32.IEEETable, r.Value)
}
