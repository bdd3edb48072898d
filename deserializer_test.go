package picowire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringOverRead(t *testing.T) {
	// Declared length 100, only two payload bytes present.
	data := append(AppendUvarint(nil, 100), 'h', 'i')
	d := NewDeserializer(data)
	_, err := d.ReadString()
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestSliceCountOverRead(t *testing.T) {
	// A count that cannot fit in the remaining bytes must be rejected
	// before any allocation.
	data := AppendUvarint(nil, 1<<40)
	d := NewDeserializer(data)
	_, err := d.ReadU64Slice()
	assert.ErrorIs(t, err, ErrInvalidLength)

	d = NewDeserializer(AppendUvarint(nil, 1<<40))
	_, err = d.ReadBoolSlice()
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestBoolSliceCountOverflow(t *testing.T) {
	// Counts near the 64-bit ceiling would wrap the packed-byte rounding if
	// they were not bounded first; they must fail cleanly, not panic.
	for _, count := range []uint64{^uint64(0), 1<<64 - 7, 1 << 63} {
		d := NewDeserializer(AppendUvarint(nil, count))
		_, err := d.ReadBoolSlice()
		assert.ErrorIs(t, err, ErrInvalidLength)
	}
}

func TestBadBoolByte(t *testing.T) {
	d := NewDeserializer([]byte{0x02})
	_, err := d.ReadBool()
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestBadFloatTag(t *testing.T) {
	d := NewDeserializer([]byte{0x07})
	_, err := d.ReadF64()
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestTruncatedFloatPayload(t *testing.T) {
	d := NewDeserializer([]byte{0xFF, 0x01, 0x02})
	_, err := d.ReadF64()
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	d = NewDeserializer([]byte{0xFF})
	_, err = d.ReadF32()
	assert.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestReadPastEnd(t *testing.T) {
	d := NewDeserializer(nil)
	_, err := d.ReadU8()
	assert.ErrorIs(t, err, ErrBufferTooSmall)
	_, err = d.ReadUvarint()
	assert.ErrorIs(t, err, ErrBufferTooSmall)
	_, err = d.ReadBool()
	assert.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestWidthOverflowRejected(t *testing.T) {
	// 65536 does not fit a u16 slot.
	d := NewDeserializer(AppendUvarint(nil, 65536))
	_, err := d.ReadU16()
	assert.ErrorIs(t, err, ErrInvalidLength)

	// 128 does not fit an i8 slot.
	d = NewDeserializer(AppendVarint(nil, 128))
	_, err = d.ReadI8()
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestReadBytesZeroCopy(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteBytes([]byte{10, 20, 30}))
	data := s.Finish()

	d := NewDeserializer(data)
	view, err := d.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 30}, view)

	// The view aliases the source buffer.
	data[len(data)-1] = 99
	assert.Equal(t, byte(99), view[2])
}

func TestZeroCopyStrings(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteString("alias me"))
	data := s.Finish()

	d := NewDeserializerOptions(data, Options{ZeroCopyStrings: true})
	str, err := d.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "alias me", str)
}

func TestReadRaw(t *testing.T) {
	d := NewDeserializer([]byte{1, 2, 3, 4})
	raw, err := d.ReadRaw(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, raw)
	_, err = d.ReadRaw(2)
	assert.ErrorIs(t, err, ErrBufferTooSmall)
	_, err = d.ReadRaw(-1)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestCursorAccounting(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteU64(300))
	require.NoError(t, s.WriteBool(true))
	data := s.Finish()

	d := NewDeserializer(data)
	assert.Equal(t, 0, d.Pos())
	assert.Equal(t, len(data), d.Remaining())
	_, err := d.ReadU64()
	require.NoError(t, err)
	assert.Equal(t, 2, d.Pos())
	_, err = d.ReadBool()
	require.NoError(t, err)
	assert.False(t, d.HasData())
}

func FuzzDecodeNoPanic(f *testing.F) {
	f.Add([]byte{0xFF, 0x01})
	f.Add([]byte{0x80, 0x80, 0x80})
	f.Add(AppendUvarint(nil, 1<<40))
	f.Fuzz(func(t *testing.T, data []byte) {
		// Every reader must fail cleanly on arbitrary input, never panic.
		d := NewDeserializer(data)
		_, _ = d.ReadUvarint()
		_, _ = d.ReadVarint()
		_, _ = d.ReadBool()
		_, _ = d.ReadF32()
		_, _ = d.ReadF64()
		_, _ = d.ReadString()
		_, _ = d.ReadBytes()
		_, _ = d.ReadBoolSlice()
		_, _ = d.ReadU16Slice()
		_, _ = d.ReadI64Slice()
		_, _ = d.ReadStringSlice()
	})
}
