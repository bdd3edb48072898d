package compress

import "github.com/klauspost/compress/zstd"

// ZstdCompressor implements the Compressor interface
type ZstdCompressor struct{}

func (ZstdCompressor) Code() byte {
	return 1
}

// Compress data
func (ZstdCompressor) Compress(data []byte) ([]byte, error) {
	bestLevel := zstd.WithEncoderLevel(zstd.SpeedBetterCompression)
	enc, err := zstd.NewWriter(nil, bestLevel)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// Uncompress data
func (ZstdCompressor) Uncompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
