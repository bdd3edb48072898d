package picowire

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatShortForms(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteF32(0.0))
	require.NoError(t, s.WriteF32(1.0))
	require.NoError(t, s.WriteF32(-1.0))
	require.NoError(t, s.WriteF32(3.14159))
	data := s.Bytes()
	assert.Equal(t, byte(0x00), data[0])
	assert.Equal(t, byte(0x01), data[1])
	assert.Equal(t, byte(0x02), data[2])
	assert.Equal(t, byte(0xFF), data[3]) // needs full encoding
}

func TestFloat64GeneralForm(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteF64(2.5))
	want := append([]byte{0xFF}, binary.LittleEndian.AppendUint64(nil, math.Float64bits(2.5))...)
	assert.Equal(t, want, s.Bytes())
}

func TestNegativeZeroEscapes(t *testing.T) {
	negZero := math.Copysign(0, -1)
	s := NewSerializer()
	require.NoError(t, s.WriteF64(negZero))
	require.Equal(t, byte(0xFF), s.Bytes()[0])

	d := NewDeserializer(s.Finish())
	got, err := d.ReadF64()
	require.NoError(t, err)
	assert.Equal(t, math.Float64bits(negZero), math.Float64bits(got))
	assert.True(t, math.Signbit(got))
}

func TestNaNPayloadRoundTrip(t *testing.T) {
	payloads := []uint64{
		math.Float64bits(math.NaN()),
		0x7FF8000000000001,
		0xFFF0000000000000, // -Inf
	}
	for _, bits := range payloads {
		s := NewSerializer()
		require.NoError(t, s.WriteF64(math.Float64frombits(bits)))
		d := NewDeserializer(s.Finish())
		got, err := d.ReadF64()
		require.NoError(t, err)
		assert.Equal(t, bits, math.Float64bits(got))
	}

	nan32 := uint32(0x7FC00001)
	s := NewSerializer()
	require.NoError(t, s.WriteF32(math.Float32frombits(nan32)))
	d := NewDeserializer(s.Finish())
	got, err := d.ReadF32()
	require.NoError(t, err)
	assert.Equal(t, nan32, math.Float32bits(got))
}

func TestBoolSlicePacking(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteBoolSlice([]bool{true, false, true}))
	// varint(3) then exactly one packed byte, first element in bit 0.
	assert.Equal(t, []byte{0x03, 0x05}, s.Bytes())

	d := NewDeserializer(s.Finish())
	got, err := d.ReadBoolSlice()
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, got)
}

func TestBoolSliceLong(t *testing.T) {
	bools := make([]bool, 10000)
	for i := range bools {
		bools[i] = i%3 == 0
	}
	s := NewSerializer()
	require.NoError(t, s.WriteBoolSlice(bools))
	data := s.Finish()
	// check for size reduction
	assert.Less(t, len(data), len(bools)/2)

	d := NewDeserializer(data)
	got, err := d.ReadBoolSlice()
	require.NoError(t, err)
	assert.Equal(t, bools, got)
}

func TestFixedCapacityExactFit(t *testing.T) {
	s := NewFixedSerializer(make([]byte, 4))
	require.NoError(t, s.WriteU8(1))
	require.NoError(t, s.WriteU8(2))
	require.NoError(t, s.WriteU8(3))
	require.NoError(t, s.WriteU8(4))
	assert.Equal(t, []byte{1, 2, 3, 4}, s.Finish())
}

func TestFixedCapacityOverflow(t *testing.T) {
	s := NewFixedSerializer(make([]byte, 3))
	require.NoError(t, s.WriteU8(0xAA))
	// The string needs 1+5 bytes; only 2 remain. Nothing may be committed.
	err := s.WriteString("hello")
	require.ErrorIs(t, err, ErrBufferTooSmall)
	assert.Equal(t, []byte{0xAA}, s.Bytes())

	// A field that still fits keeps working after a failed write.
	require.NoError(t, s.WriteU16(300))
	assert.Equal(t, 3, s.Len())
}

func TestFixedCapacitySliceAtomic(t *testing.T) {
	s := NewFixedSerializer(make([]byte, 4))
	err := s.WriteU64Slice([]uint64{1, 2, 300, 4, 5})
	require.ErrorIs(t, err, ErrBufferTooSmall)
	assert.Equal(t, 0, s.Len())
}

func TestFinishPoisons(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteBool(true))
	out := s.Finish()
	assert.Equal(t, []byte{0x01}, out)
	assert.ErrorIs(t, s.WriteU8(1), ErrBufferTooSmall)
}

func TestStringAndBytes(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteString("Hello, world! 🚀"))
	require.NoError(t, s.WriteBytes([]byte{1, 2, 3}))
	require.NoError(t, s.WriteString(""))

	d := NewDeserializer(s.Finish())
	str, err := d.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "Hello, world! 🚀", str)
	b, err := d.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
	empty, err := d.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "", empty)
	assert.False(t, d.HasData())
}

func TestScalarSlices(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteU16Slice([]uint16{0, 127, 128, 65535}))
	require.NoError(t, s.WriteI64Slice([]int64{-1, 0, 1, math.MinInt64, math.MaxInt64}))
	require.NoError(t, s.WriteF32Slice([]float32{0, 1, -1, 2.5}))
	require.NoError(t, s.WriteStringSlice([]string{"a", "", "bc"}))

	d := NewDeserializer(s.Finish())
	u16s, err := d.ReadU16Slice()
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 127, 128, 65535}, u16s)
	i64s, err := d.ReadI64Slice()
	require.NoError(t, err)
	assert.Equal(t, []int64{-1, 0, 1, math.MinInt64, math.MaxInt64}, i64s)
	f32s, err := d.ReadF32Slice()
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, -1, 2.5}, f32s)
	strs, err := d.ReadStringSlice()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "bc"}, strs)
}

func TestSerializerReset(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteU64(12345))
	s.Reset()
	assert.Equal(t, 0, s.Len())
	require.NoError(t, s.WriteU8(7))
	assert.Equal(t, []byte{7}, s.Bytes())
}
