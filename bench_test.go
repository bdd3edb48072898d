package picowire

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/stretchr/testify/require"
)

type benchStruct struct {
	Val      []string
	Mod      []int8
	Integers []int16
	Float3   []float32
	Float6   []float64
}

var benchValue = benchStruct{
	Val:      []string{"azerty", "hello", "world", "random"},
	Mod:      []int8{12, 10, 13, 0},
	Integers: []int16{100, 250, 300},
	Float3:   []float32{12.13, 16.23, 75.1},
	Float6:   []float64{100.5, 165.63, 153.5},
}

func BenchmarkCodecEncode(b *testing.B) {
	c := NewCodec(Options{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = c.Encode(benchValue)
	}
}

func BenchmarkCodecDecode(b *testing.B) {
	c := NewCodec(Options{})
	data, err := c.Encode(benchValue)
	require.NoError(b, err)
	res := &benchStruct{}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Decode(data, res)
	}
	require.EqualValues(b, benchValue, *res)
}

func BenchmarkSerializerFixed(b *testing.B) {
	// The no-alloc path: primitives into a preallocated buffer.
	buf := make([]byte, 64)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := NewFixedSerializer(buf)
		_ = s.WriteU64(uint64(i))
		_ = s.WriteVarint(int64(-i))
		_ = s.WriteBool(i&1 == 0)
		_ = s.WriteF64(2.5)
	}
}

func BenchmarkUvarint(b *testing.B) {
	buf := make([]byte, 0, MaxVarintLen)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf = AppendUvarint(buf[:0], uint64(i)*1000)
		_, _, _ = Uvarint(buf)
	}
}

func BenchmarkYaml(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = yaml.Marshal(benchValue)
	}
}

func BenchmarkCBOR(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = cbor.Marshal(benchValue)
	}
}
