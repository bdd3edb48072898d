package picowire

import "math"

// Float wire tags. Short forms match on the exact bit pattern; everything
// else takes the raw escape.
const (
	floatZero   = 0x00
	floatOne    = 0x01
	floatNegOne = 0x02
	floatRaw    = 0xFF
)

const (
	f32OneBits    = 0x3F800000
	f32NegOneBits = 0xBF800000
	f64OneBits    = 0x3FF0000000000000
	f64NegOneBits = 0xBFF0000000000000
)

// Serializer owns an output buffer and appends field encodings to it.
// The zero value is not usable; construct with NewSerializer,
// NewSerializerSize or NewFixedSerializer.
//
// In fixed-capacity mode every write checks that the whole field fits before
// committing a single byte, so a failed write leaves the buffer unchanged.
type Serializer struct {
	buf   []byte
	fixed bool
}

// NewSerializer returns a growable serializer with a default capacity of
// 1024 bytes.
func NewSerializer() *Serializer {
	return NewSerializerSize(1024)
}

// NewSerializerSize returns a growable serializer with the given initial
// capacity.
func NewSerializerSize(capacity int) *Serializer {
	return &Serializer{buf: make([]byte, 0, capacity)}
}

// NewFixedSerializer returns a serializer that writes into buf from the
// start and never reallocates. Capacity is cap(buf); writes that would
// exceed it fail with ErrBufferTooSmall.
func NewFixedSerializer(buf []byte) *Serializer {
	return &Serializer{buf: buf[:0], fixed: true}
}

// grow reserves room for n more bytes. Growable buffers rely on append's
// geometric growth; fixed buffers fail instead.
func (s *Serializer) grow(n int) error {
	if s.fixed && len(s.buf)+n > cap(s.buf) {
		return ErrBufferTooSmall
	}
	return nil
}

// rollback restores the buffer to a previous length so a failed multi-part
// write commits nothing.
func (s *Serializer) rollback(mark int, err error) error {
	s.buf = s.buf[:mark]
	return err
}

// Finish yields the completed buffer. The serializer is unusable afterward:
// further writes fail with ErrBufferTooSmall.
func (s *Serializer) Finish() []byte {
	out := s.buf
	s.buf = nil
	s.fixed = true
	return out
}

// Bytes returns the currently serialized data without finishing.
func (s *Serializer) Bytes() []byte {
	return s.buf
}

// Len returns the number of bytes written so far.
func (s *Serializer) Len() int {
	return len(s.buf)
}

// Reset discards written data, keeping the buffer for reuse.
func (s *Serializer) Reset() {
	s.buf = s.buf[:0]
}

// WriteU8 writes a single raw byte.
func (s *Serializer) WriteU8(v uint8) error {
	if err := s.grow(1); err != nil {
		return err
	}
	s.buf = append(s.buf, v)
	return nil
}

// WriteU16 writes an unsigned 16-bit integer as a varint.
func (s *Serializer) WriteU16(v uint16) error {
	return s.WriteUvarint(uint64(v))
}

// WriteU32 writes an unsigned 32-bit integer as a varint.
func (s *Serializer) WriteU32(v uint32) error {
	return s.WriteUvarint(uint64(v))
}

// WriteU64 writes an unsigned 64-bit integer as a varint.
func (s *Serializer) WriteU64(v uint64) error {
	return s.WriteUvarint(v)
}

// WriteUvarint writes a varint-encoded unsigned integer.
func (s *Serializer) WriteUvarint(v uint64) error {
	if err := s.grow(UvarintLen(v)); err != nil {
		return err
	}
	s.buf = AppendUvarint(s.buf, v)
	return nil
}

// WriteI8 writes a signed 8-bit integer as a zigzag varint.
func (s *Serializer) WriteI8(v int8) error {
	return s.WriteVarint(int64(v))
}

// WriteI16 writes a signed 16-bit integer as a zigzag varint.
func (s *Serializer) WriteI16(v int16) error {
	return s.WriteVarint(int64(v))
}

// WriteI32 writes a signed 32-bit integer as a zigzag varint.
func (s *Serializer) WriteI32(v int32) error {
	return s.WriteVarint(int64(v))
}

// WriteI64 writes a signed 64-bit integer as a zigzag varint.
func (s *Serializer) WriteI64(v int64) error {
	return s.WriteVarint(v)
}

// WriteVarint writes a zigzag varint-encoded signed integer.
func (s *Serializer) WriteVarint(v int64) error {
	return s.WriteUvarint(Zigzag(v))
}

// WriteBool writes a boolean as a single byte, 0x00 or 0x01.
func (s *Serializer) WriteBool(v bool) error {
	if v {
		return s.WriteU8(1)
	}
	return s.WriteU8(0)
}

// WriteF32 writes a 32-bit float. The bit patterns of 0.0, 1.0 and -1.0
// collapse to one tag byte; all others escape to the raw form, so -0.0 and
// NaN payloads survive exactly.
func (s *Serializer) WriteF32(v float32) error {
	switch math.Float32bits(v) {
	case 0:
		return s.WriteU8(floatZero)
	case f32OneBits:
		return s.WriteU8(floatOne)
	case f32NegOneBits:
		return s.WriteU8(floatNegOne)
	}
	if err := s.grow(5); err != nil {
		return err
	}
	bits := math.Float32bits(v)
	s.buf = append(s.buf, floatRaw,
		byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	return nil
}

// WriteF64 writes a 64-bit float, with the same short forms as WriteF32.
func (s *Serializer) WriteF64(v float64) error {
	switch math.Float64bits(v) {
	case 0:
		return s.WriteU8(floatZero)
	case f64OneBits:
		return s.WriteU8(floatOne)
	case f64NegOneBits:
		return s.WriteU8(floatNegOne)
	}
	if err := s.grow(9); err != nil {
		return err
	}
	bits := math.Float64bits(v)
	s.buf = append(s.buf, floatRaw,
		byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24),
		byte(bits>>32), byte(bits>>40), byte(bits>>48), byte(bits>>56))
	return nil
}

// WriteString writes a length-prefixed UTF-8 byte sequence.
func (s *Serializer) WriteString(v string) error {
	if err := s.grow(UvarintLen(uint64(len(v))) + len(v)); err != nil {
		return err
	}
	s.buf = AppendUvarint(s.buf, uint64(len(v)))
	s.buf = append(s.buf, v...)
	return nil
}

// WriteBytes writes a length-prefixed byte slice.
func (s *Serializer) WriteBytes(v []byte) error {
	if err := s.grow(UvarintLen(uint64(len(v))) + len(v)); err != nil {
		return err
	}
	s.buf = AppendUvarint(s.buf, uint64(len(v)))
	s.buf = append(s.buf, v...)
	return nil
}

// WriteRaw appends bytes with no length prefix, for fixed-width fields such
// as [N]byte keys whose size is part of the type.
func (s *Serializer) WriteRaw(v []byte) error {
	if err := s.grow(len(v)); err != nil {
		return err
	}
	s.buf = append(s.buf, v...)
	return nil
}

// WriteBoolSlice writes an element count followed by bit-packed booleans,
// eight per byte, first element in the least significant bit.
func (s *Serializer) WriteBoolSlice(v []bool) error {
	packed := (len(v) + 7) / 8
	if err := s.grow(UvarintLen(uint64(len(v))) + packed); err != nil {
		return err
	}
	s.buf = AppendUvarint(s.buf, uint64(len(v)))
	var b byte
	for i, bit := range v {
		if bit {
			b |= 1 << (i & 7)
		}
		if i&7 == 7 {
			s.buf = append(s.buf, b)
			b = 0
		}
	}
	if len(v)&7 != 0 {
		s.buf = append(s.buf, b)
	}
	return nil
}

// WriteU8Slice writes a length-prefixed byte slice. Identical on the wire to
// WriteBytes; the element count is the byte count.
func (s *Serializer) WriteU8Slice(v []uint8) error {
	return s.WriteBytes(v)
}

// WriteU16Slice writes an element count followed by varint elements.
func (s *Serializer) WriteU16Slice(v []uint16) error {
	mark := len(s.buf)
	if err := s.WriteUvarint(uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := s.WriteUvarint(uint64(e)); err != nil {
			return s.rollback(mark, err)
		}
	}
	return nil
}

// WriteU32Slice writes an element count followed by varint elements.
func (s *Serializer) WriteU32Slice(v []uint32) error {
	mark := len(s.buf)
	if err := s.WriteUvarint(uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := s.WriteUvarint(uint64(e)); err != nil {
			return s.rollback(mark, err)
		}
	}
	return nil
}

// WriteU64Slice writes an element count followed by varint elements.
func (s *Serializer) WriteU64Slice(v []uint64) error {
	mark := len(s.buf)
	if err := s.WriteUvarint(uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := s.WriteUvarint(e); err != nil {
			return s.rollback(mark, err)
		}
	}
	return nil
}

// WriteI8Slice writes an element count followed by zigzag varint elements.
func (s *Serializer) WriteI8Slice(v []int8) error {
	mark := len(s.buf)
	if err := s.WriteUvarint(uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := s.WriteVarint(int64(e)); err != nil {
			return s.rollback(mark, err)
		}
	}
	return nil
}

// WriteI16Slice writes an element count followed by zigzag varint elements.
func (s *Serializer) WriteI16Slice(v []int16) error {
	mark := len(s.buf)
	if err := s.WriteUvarint(uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := s.WriteVarint(int64(e)); err != nil {
			return s.rollback(mark, err)
		}
	}
	return nil
}

// WriteI32Slice writes an element count followed by zigzag varint elements.
func (s *Serializer) WriteI32Slice(v []int32) error {
	mark := len(s.buf)
	if err := s.WriteUvarint(uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := s.WriteVarint(int64(e)); err != nil {
			return s.rollback(mark, err)
		}
	}
	return nil
}

// WriteI64Slice writes an element count followed by zigzag varint elements.
func (s *Serializer) WriteI64Slice(v []int64) error {
	mark := len(s.buf)
	if err := s.WriteUvarint(uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := s.WriteVarint(e); err != nil {
			return s.rollback(mark, err)
		}
	}
	return nil
}

// WriteF32Slice writes an element count followed by float encodings.
func (s *Serializer) WriteF32Slice(v []float32) error {
	mark := len(s.buf)
	if err := s.WriteUvarint(uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := s.WriteF32(e); err != nil {
			return s.rollback(mark, err)
		}
	}
	return nil
}

// WriteF64Slice writes an element count followed by float encodings.
func (s *Serializer) WriteF64Slice(v []float64) error {
	mark := len(s.buf)
	if err := s.WriteUvarint(uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := s.WriteF64(e); err != nil {
			return s.rollback(mark, err)
		}
	}
	return nil
}

// WriteStringSlice writes an element count followed by length-prefixed
// strings.
func (s *Serializer) WriteStringSlice(v []string) error {
	mark := len(s.buf)
	if err := s.WriteUvarint(uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := s.WriteString(e); err != nil {
			return s.rollback(mark, err)
		}
	}
	return nil
}
