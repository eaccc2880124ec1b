package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// MaxDecompressedSize bounds the output of BrotliDecompress.
const MaxDecompressedSize = 1024 * 1024 * 20 // 20MB

var ErrTooLarge = errors.New("decompressed data exceeds limit")

func BrotliCompress(data []byte) ([]byte, error) {

	if len(data) == 0 {
		return nil, nil
	}

	buf := bytes.NewBuffer(nil)

	writer := brotli.NewWriterV2(buf, 9)

	_, err := writer.Write(data)
	if err != nil {
		return nil, fmt.Errorf("failed to write data to brotli compressor: %w", err)
	}
	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to close brotli compressor: %w", err)
	}

	return buf.Bytes(), nil

}

func MustBrotliCompress(data []byte) []byte {
	compressed, err := BrotliCompress(data)
	if err != nil {
		panic(fmt.Errorf("failed to compress data: %w", err))
	}
	return compressed
}

// BrotliDecompress fails with ErrTooLarge rather than truncating when the
// output would exceed MaxDecompressedSize.
func BrotliDecompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	reader := brotli.NewReader(bytes.NewReader(data))
	d, err := io.ReadAll(io.LimitReader(reader, MaxDecompressedSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read brotli stream: %w", err)
	}
	if len(d) > MaxDecompressedSize {
		return nil, ErrTooLarge
	}
	return d, nil
}
