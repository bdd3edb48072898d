package picowire

import "errors"

var (
	// ErrBufferTooSmall signals that a fixed-capacity serializer ran out of
	// space, or that a deserializer's input ended before the current read
	// could complete.
	ErrBufferTooSmall = errors.New("buffer too small")
	// ErrInvalidData signals a tag byte or bit pattern with no defined
	// meaning on the wire.
	ErrInvalidData = errors.New("invalid data")
	// ErrInvalidLength signals a decoded length or varint that exceeds the
	// remaining input or the representable range.
	ErrInvalidLength = errors.New("invalid length")
	// ErrUnsupportedType signals a field type with no wire mapping.
	ErrUnsupportedType = errors.New("unsupported type")
)
