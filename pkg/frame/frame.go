// Package frame provides a CRC-guarded envelope for moving serialized
// payloads across untrusted links or storage. A frame is
//
//	[magic: 2 bytes][type: 1 byte][total length: u32 LE][payload][CRC32 LE]
//
// where the length covers the whole frame and the checksum covers everything
// after the magic, trailer excluded.
package frame

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

const (
	magic0 = 0x9C
	magic1 = 0x77

	// TypeData carries an opaque serialized payload.
	TypeData byte = 0x01
	// TypeError carries a one-byte error code followed by detail bytes.
	TypeError byte = 0x02

	headerSize  = 2 + 1 + 4
	trailerSize = 4
)

var (
	ErrBadMagic       = errors.New("bad frame magic")
	ErrBadType        = errors.New("unexpected frame type")
	ErrTruncated      = errors.New("truncated frame")
	ErrLengthMismatch = errors.New("frame length mismatch")
	ErrChecksum       = errors.New("frame checksum mismatch")
)

func encode(typ byte, payload []byte) []byte {
	total := headerSize + len(payload) + trailerSize
	out := make([]byte, 0, total)
	out = append(out, magic0, magic1, typ)
	out = binary.LittleEndian.AppendUint32(out, uint32(total))
	out = append(out, payload...)
	crc := crc32.ChecksumIEEE(out[2:])
	return binary.LittleEndian.AppendUint32(out, crc)
}

// Encode wraps payload in a data frame.
func Encode(payload []byte) []byte {
	return encode(TypeData, payload)
}

// EncodeError wraps an error code and detail bytes in an error frame.
func EncodeError(code byte, detail []byte) []byte {
	payload := make([]byte, 0, 1+len(detail))
	payload = append(payload, code)
	payload = append(payload, detail...)
	return encode(TypeError, payload)
}

// parse validates magic, length and checksum, returning the frame type and a
// view of the payload.
func parse(frame []byte) (byte, []byte, error) {
	if len(frame) < headerSize+trailerSize {
		return 0, nil, ErrTruncated
	}
	if frame[0] != magic0 || frame[1] != magic1 {
		return 0, nil, ErrBadMagic
	}
	total := binary.LittleEndian.Uint32(frame[3:])
	if int(total) != len(frame) {
		return 0, nil, ErrLengthMismatch
	}
	body := frame[2 : len(frame)-trailerSize]
	want := binary.LittleEndian.Uint32(frame[len(frame)-trailerSize:])
	if crc32.ChecksumIEEE(body) != want {
		return 0, nil, ErrChecksum
	}
	return frame[2], frame[headerSize : len(frame)-trailerSize], nil
}

// Decode unwraps a data frame, returning a view of its payload.
func Decode(frame []byte) ([]byte, error) {
	typ, payload, err := parse(frame)
	if err != nil {
		return nil, err
	}
	if typ != TypeData {
		return nil, ErrBadType
	}
	return payload, nil
}

// DecodeError unwraps an error frame into its code and detail bytes.
func DecodeError(frame []byte) (byte, []byte, error) {
	typ, payload, err := parse(frame)
	if err != nil {
		return 0, nil, err
	}
	if typ != TypeError || len(payload) < 1 {
		return 0, nil, ErrBadType
	}
	return payload[0], payload[1:], nil
}
