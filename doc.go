// Package picowire is a compact binary codec for resource-constrained
// targets: embedded systems and on-chain virtual-machine programs where heap
// allocation, code size and CPU cycles are all scarce.
//
// The codec is a buffer-to-buffer transformation. A Serializer owns an output
// buffer and appends field encodings; a Deserializer borrows an input buffer
// and reads them back in the same order. Both are per-call objects with no
// shared state.
//
// # Wire format
//
// All multi-byte scalars go through a varint: 7-bit groups, least-significant
// group first, the high bit of every non-final byte set. A 64-bit value takes
// at most 10 bytes; longer continuation runs are rejected.
//
//	u8                 raw byte
//	u16/u32/u64        varint
//	i8/i16/i32/i64     zigzag, then varint
//	bool               one byte, 0x00 or 0x01
//	f32/f64            0x00 -> 0.0, 0x01 -> 1.0, 0x02 -> -1.0,
//	                   0xFF + raw little-endian IEEE-754 bits otherwise
//	string / bytes     varint byte count + raw bytes
//	[]bool             varint element count + packed bits, LSB-first, 8 per byte
//	[]T                varint element count + each element's encoding
//	struct             field encodings concatenated in declared order
//	enum               varint variant index (declared order from 0) + fields
//
// Float short forms match on the exact bit pattern, so -0.0 and every NaN
// payload round-trip through the escape path unchanged.
//
// # Derivation contract
//
// Composite types implement Marshaler and Unmarshaler by writing and reading
// their fields in declaration order; position alone discriminates fields and
// there are no delimiters on the wire. The contract is agnostic to how an
// implementation is produced: by hand, by a generator, or through the
// reflection-driven Codec in this package.
//
// # No-allocation mode
//
// NewFixedSerializer writes into a caller-supplied buffer and fails with
// ErrBufferTooSmall instead of growing. ReadBytes returns views into the
// input, and Options{ZeroCopyStrings: true} extends that to strings; such
// views must not outlive the source buffer.
package picowire
