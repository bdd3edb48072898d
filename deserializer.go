package picowire

import (
	"math"
	"unsafe"
)

// Options controls deserializer behavior.
type Options struct {
	// ZeroCopyStrings makes string reads alias the input buffer via unsafe
	// instead of copying; the caller must keep the buffer alive and
	// unmodified for as long as the strings are reachable.
	ZeroCopyStrings bool
}

// Deserializer borrows an immutable input buffer and reads field encodings
// from it in order. It never copies or takes ownership of the input; byte
// slice reads return views into it.
//
// After any read fails the cursor position is unspecified; discard the
// instance.
type Deserializer struct {
	data []byte
	pos  int
	opts Options
}

// NewDeserializer returns a deserializer over data.
func NewDeserializer(data []byte) *Deserializer {
	return &Deserializer{data: data}
}

// NewDeserializerOptions returns a deserializer over data with explicit
// options.
func NewDeserializerOptions(data []byte, opts Options) *Deserializer {
	return &Deserializer{data: data, opts: opts}
}

// HasData reports whether unread bytes remain.
func (d *Deserializer) HasData() bool {
	return d.pos < len(d.data)
}

// Pos returns the current read position.
func (d *Deserializer) Pos() int {
	return d.pos
}

// Remaining returns the number of unread bytes.
func (d *Deserializer) Remaining() int {
	return len(d.data) - d.pos
}

// ReadU8 reads a single raw byte.
func (d *Deserializer) ReadU8() (uint8, error) {
	if d.pos >= len(d.data) {
		return 0, ErrBufferTooSmall
	}
	v := d.data[d.pos]
	d.pos++
	return v, nil
}

// ReadUvarint reads a varint-encoded unsigned integer.
func (d *Deserializer) ReadUvarint() (uint64, error) {
	v, n, err := Uvarint(d.data[d.pos:])
	if err != nil {
		return 0, err
	}
	d.pos += n
	return v, nil
}

// ReadU16 reads a varint and rejects values outside the 16-bit range.
func (d *Deserializer) ReadU16() (uint16, error) {
	v, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint16 {
		return 0, ErrInvalidLength
	}
	return uint16(v), nil
}

// ReadU32 reads a varint and rejects values outside the 32-bit range.
func (d *Deserializer) ReadU32() (uint32, error) {
	v, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, ErrInvalidLength
	}
	return uint32(v), nil
}

// ReadU64 reads a varint-encoded unsigned 64-bit integer.
func (d *Deserializer) ReadU64() (uint64, error) {
	return d.ReadUvarint()
}

// ReadVarint reads a zigzag varint-encoded signed integer.
func (d *Deserializer) ReadVarint() (int64, error) {
	u, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return Unzigzag(u), nil
}

// ReadI8 reads a zigzag varint and rejects values outside the 8-bit range.
func (d *Deserializer) ReadI8() (int8, error) {
	v, err := d.ReadVarint()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt8 || v > math.MaxInt8 {
		return 0, ErrInvalidLength
	}
	return int8(v), nil
}

// ReadI16 reads a zigzag varint and rejects values outside the 16-bit range.
func (d *Deserializer) ReadI16() (int16, error) {
	v, err := d.ReadVarint()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, ErrInvalidLength
	}
	return int16(v), nil
}

// ReadI32 reads a zigzag varint and rejects values outside the 32-bit range.
func (d *Deserializer) ReadI32() (int32, error) {
	v, err := d.ReadVarint()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrInvalidLength
	}
	return int32(v), nil
}

// ReadI64 reads a zigzag varint-encoded signed 64-bit integer.
func (d *Deserializer) ReadI64() (int64, error) {
	return d.ReadVarint()
}

// ReadBool reads a boolean byte. Only 0x00 and 0x01 are valid.
func (d *Deserializer) ReadBool() (bool, error) {
	b, err := d.ReadU8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidData
	}
}

// ReadF32 reads a 32-bit float in either short or raw form.
func (d *Deserializer) ReadF32() (float32, error) {
	tag, err := d.ReadU8()
	if err != nil {
		return 0, err
	}
	switch tag {
	case floatZero:
		return 0, nil
	case floatOne:
		return 1, nil
	case floatNegOne:
		return -1, nil
	case floatRaw:
		if d.Remaining() < 4 {
			return 0, ErrBufferTooSmall
		}
		b := d.data[d.pos:]
		bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		d.pos += 4
		return math.Float32frombits(bits), nil
	default:
		return 0, ErrInvalidData
	}
}

// ReadF64 reads a 64-bit float in either short or raw form.
func (d *Deserializer) ReadF64() (float64, error) {
	tag, err := d.ReadU8()
	if err != nil {
		return 0, err
	}
	switch tag {
	case floatZero:
		return 0, nil
	case floatOne:
		return 1, nil
	case floatNegOne:
		return -1, nil
	case floatRaw:
		if d.Remaining() < 8 {
			return 0, ErrBufferTooSmall
		}
		b := d.data[d.pos:]
		bits := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
		d.pos += 8
		return math.Float64frombits(bits), nil
	default:
		return 0, ErrInvalidData
	}
}

// ReadBytes reads a length-prefixed byte slice as a view into the input
// buffer. No copy is made; the view is valid only as long as the input.
func (d *Deserializer) ReadBytes() ([]byte, error) {
	n, err := d.readCount()
	if err != nil {
		return nil, err
	}
	v := d.data[d.pos : d.pos+n]
	d.pos += n
	return v, nil
}

// ReadString reads a length-prefixed string. By default the bytes are
// copied; with Options.ZeroCopyStrings the result aliases the input.
func (d *Deserializer) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", nil
	}
	if d.opts.ZeroCopyStrings {
		return unsafe.String(&b[0], len(b)), nil
	}
	return string(b), nil
}

// ReadRaw reads n bytes with no length prefix as a view into the input, for
// fixed-width fields whose size is part of the type.
func (d *Deserializer) ReadRaw(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	if n > d.Remaining() {
		return nil, ErrBufferTooSmall
	}
	v := d.data[d.pos : d.pos+n]
	d.pos += n
	return v, nil
}

// ReadBoolSlice reads a bit-packed boolean sequence.
func (d *Deserializer) ReadBoolSlice() ([]bool, error) {
	count, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	// Eight bits per remaining byte. Bounding the raw count first keeps the
	// rounding arithmetic below from wrapping on huge counts.
	if count > uint64(d.Remaining())*8 {
		return nil, ErrInvalidLength
	}
	packed := (count + 7) / 8
	out := make([]bool, count)
	for i := range out {
		out[i] = d.data[d.pos+i/8]&(1<<(i&7)) != 0
	}
	d.pos += int(packed)
	return out, nil
}

// readCount decodes an element count and validates it against the remaining
// input. Every element encoding takes at least one byte, so a count larger
// than the remaining byte count can never be satisfied; rejecting it here
// bounds allocation on adversarial input.
func (d *Deserializer) readCount() (int, error) {
	v, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if v > uint64(d.Remaining()) {
		return 0, ErrInvalidLength
	}
	return int(v), nil
}

// ReadU8Slice reads a length-prefixed byte slice. Identical on the wire to
// ReadBytes.
func (d *Deserializer) ReadU8Slice() ([]uint8, error) {
	return d.ReadBytes()
}

// ReadU16Slice reads an element count followed by varint elements.
func (d *Deserializer) ReadU16Slice() ([]uint16, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	for i := range out {
		if out[i], err = d.ReadU16(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadU32Slice reads an element count followed by varint elements.
func (d *Deserializer) ReadU32Slice() ([]uint32, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		if out[i], err = d.ReadU32(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadU64Slice reads an element count followed by varint elements.
func (d *Deserializer) ReadU64Slice() ([]uint64, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]uint64, count)
	for i := range out {
		if out[i], err = d.ReadUvarint(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadI8Slice reads an element count followed by zigzag varint elements.
func (d *Deserializer) ReadI8Slice() ([]int8, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]int8, count)
	for i := range out {
		if out[i], err = d.ReadI8(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadI16Slice reads an element count followed by zigzag varint elements.
func (d *Deserializer) ReadI16Slice() ([]int16, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]int16, count)
	for i := range out {
		if out[i], err = d.ReadI16(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadI32Slice reads an element count followed by zigzag varint elements.
func (d *Deserializer) ReadI32Slice() ([]int32, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]int32, count)
	for i := range out {
		if out[i], err = d.ReadI32(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadI64Slice reads an element count followed by zigzag varint elements.
func (d *Deserializer) ReadI64Slice() ([]int64, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]int64, count)
	for i := range out {
		if out[i], err = d.ReadVarint(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadF32Slice reads an element count followed by float encodings.
func (d *Deserializer) ReadF32Slice() ([]float32, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]float32, count)
	for i := range out {
		if out[i], err = d.ReadF32(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadF64Slice reads an element count followed by float encodings.
func (d *Deserializer) ReadF64Slice() ([]float64, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]float64, count)
	for i := range out {
		if out[i], err = d.ReadF64(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadStringSlice reads an element count followed by length-prefixed
// strings.
func (d *Deserializer) ReadStringSlice() ([]string, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := range out {
		if out[i], err = d.ReadString(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
