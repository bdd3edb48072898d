package compress

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Lz4Compressor implements the Compressor interface using the lz4 frame
// format, which carries its own block sizing so decompression does not need
// an external bound.
type Lz4Compressor struct{}

func (Lz4Compressor) Code() byte {
	return 2
}

// Compress data
func (Lz4Compressor) Compress(data []byte) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	w := lz4.NewWriter(buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	// Close must be called before reading buf, otherwise the trailing
	// frame data has not been flushed yet.
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Uncompress data
func (Lz4Compressor) Uncompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	res, err := io.ReadAll(r)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return res, nil
}
