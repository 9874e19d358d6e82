package byteorder

import "fmt"

// Pack writes v as an unsigned integer of the given bit width using order.
// It fails if v does not fit in bits.
func Pack(order ByteOrder, bits int, v uint64) ([]byte, error) {
	size, err := Sizeof(bits)
	if err != nil {
		return nil, err
	}
	if bits < 64 && v>>uint(bits) != 0 {
		return nil, fmt.Errorf("byteorder: value %d overflows uint%d", v, bits)
	}

	b := make([]byte, size)
	switch size {
	case 2:
		order.PutUint16(b, uint16(v))
	case 4:
		order.PutUint32(b, uint32(v))
	default:
		order.PutUint64(b, v)
	}
	return b, nil
}

// Unpack reads an unsigned integer from b, whose length selects the width.
func Unpack(order ByteOrder, b []byte) (uint64, error) {
	switch len(b) {
	case 2:
		return uint64(order.Uint16(b)), nil
	case 4:
		return uint64(order.Uint32(b)), nil
	case 8:
		return order.Uint64(b), nil
	}
	return 0, fmt.Errorf("byteorder: cannot unpack %d bytes", len(b))
}
