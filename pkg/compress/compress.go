// Package compress wraps serialized payloads in a compressed envelope:
// a one-byte compressor code, a varint uncompressed size, then the
// compressed bytes. The size prefix lets decoders pre-size the output and
// reject frames whose contents do not match their declaration.
package compress

import (
	"errors"

	"github.com/picowire/picowire"
)

var (
	ErrUnknownCode  = errors.New("unknown compressor code")
	ErrSizeMismatch = errors.New("uncompressed size mismatch")
	ErrTruncated    = errors.New("truncated envelope")
)

// Compressor turns a byte payload into a smaller one and back. Code
// identifies the algorithm inside an envelope.
type Compressor interface {
	Code() byte
	Compress(data []byte) ([]byte, error)
	Uncompress(data []byte) ([]byte, error)
}

// Wrap compresses payload with c and frames it as
// [code][uncompressed-size varint][compressed bytes].
func Wrap(c Compressor, payload []byte) ([]byte, error) {
	comp, err := c.Compress(payload)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+picowire.UvarintLen(uint64(len(payload)))+len(comp))
	out = append(out, c.Code())
	out = picowire.AppendUvarint(out, uint64(len(payload)))
	return append(out, comp...), nil
}

// Unwrap reverses Wrap, dispatching on the envelope's code byte across the
// given compressors. The declared uncompressed size must match what the
// compressor actually produced.
func Unwrap(envelope []byte, codecs ...Compressor) ([]byte, error) {
	if len(envelope) < 2 {
		return nil, ErrTruncated
	}
	var c Compressor
	for _, cand := range codecs {
		if cand.Code() == envelope[0] {
			c = cand
			break
		}
	}
	if c == nil {
		return nil, ErrUnknownCode
	}
	size, n, err := picowire.Uvarint(envelope[1:])
	if err != nil {
		return nil, ErrTruncated
	}
	raw, err := c.Uncompress(envelope[1+n:])
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) != size {
		return nil, ErrSizeMismatch
	}
	return raw, nil
}
