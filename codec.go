package picowire

// Marshaler is the encode half of the derivation contract. Implementations
// write their fields in declaration order; struct layouts carry no field
// identifiers or delimiters, position alone discriminates.
type Marshaler interface {
	MarshalWire(s *Serializer) error
}

// Unmarshaler is the decode half of the derivation contract. Implementations
// read their fields in the exact order MarshalWire wrote them.
type Unmarshaler interface {
	UnmarshalWire(d *Deserializer) error
}

// Marshal encodes v into a fresh growable buffer.
func Marshal(v Marshaler) ([]byte, error) {
	s := NewSerializer()
	if err := v.MarshalWire(s); err != nil {
		return nil, err
	}
	return s.Finish(), nil
}

// MarshalFixed encodes v into buf without allocating. It fails with
// ErrBufferTooSmall if the encoding does not fit.
func MarshalFixed(buf []byte, v Marshaler) ([]byte, error) {
	s := NewFixedSerializer(buf)
	if err := v.MarshalWire(s); err != nil {
		return nil, err
	}
	return s.Finish(), nil
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v Unmarshaler) error {
	return v.UnmarshalWire(NewDeserializer(data))
}

// WriteVariant writes an enum's selected-variant index. Variant indices are
// assigned by declaration order starting at zero; the variant's own fields
// follow.
func WriteVariant(s *Serializer, index uint64) error {
	return s.WriteUvarint(index)
}

// ReadVariant reads an enum's selected-variant index. The caller dispatches
// on it and reads the matching variant's fields; an index with no declared
// variant should be treated as ErrInvalidData.
func ReadVariant(d *Deserializer) (uint64, error) {
	return d.ReadUvarint()
}
