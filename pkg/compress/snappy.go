package compress

import "github.com/golang/snappy"

// SnappyCompressor implements the Compressor interface using snappy's block
// format.
type SnappyCompressor struct{}

func (SnappyCompressor) Code() byte {
	return 3
}

// Compress data
func (SnappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

// Uncompress data
func (SnappyCompressor) Uncompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}
