package picowire

// MaxVarintLen is the longest encoding of a 64-bit value: ten 7-bit groups.
const MaxVarintLen = 10

// AppendUvarint appends the varint encoding of x to dst.
func AppendUvarint(dst []byte, x uint64) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

// UvarintLen returns the encoded size of x in bytes.
func UvarintLen(x uint64) int {
	n := 1
	for x >= 0x80 {
		x >>= 7
		n++
	}
	return n
}

// Uvarint decodes a varint from the start of b, returning the value and the
// number of bytes consumed. A continuation run past MaxVarintLen bytes or a
// final group that overflows 64 bits fails with ErrInvalidLength; input that
// ends before a terminating byte fails with ErrBufferTooSmall.
func Uvarint(b []byte) (uint64, int, error) {
	var x uint64
	var s uint
	for i, c := range b {
		if c < 0x80 {
			if i == MaxVarintLen-1 && c > 1 {
				return 0, 0, ErrInvalidLength
			}
			return x | uint64(c)<<s, i + 1, nil
		}
		if i == MaxVarintLen-1 {
			return 0, 0, ErrInvalidLength
		}
		x |= uint64(c&0x7F) << s
		s += 7
	}
	return 0, 0, ErrBufferTooSmall
}

// Zigzag maps a signed integer to its unsigned image, interleaving sign and
// magnitude so small-magnitude values stay short under varint coding.
func Zigzag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// Unzigzag is the inverse of Zigzag.
func Unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// AppendVarint appends the zigzag varint encoding of v to dst.
func AppendVarint(dst []byte, v int64) []byte {
	return AppendUvarint(dst, Zigzag(v))
}

// Varint decodes a zigzag varint from the start of b.
func Varint(b []byte) (int64, int, error) {
	u, n, err := Uvarint(b)
	if err != nil {
		return 0, 0, err
	}
	return Unzigzag(u), n, nil
}
