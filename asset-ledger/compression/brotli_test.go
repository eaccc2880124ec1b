package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBrotliRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("mint 0xabc class 5 amount 100;"), 200)

	compressed, err := BrotliCompress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data))

	d, err := BrotliDecompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, d)
}

func TestBrotliEmpty(t *testing.T) {
	compressed, err := BrotliCompress(nil)
	require.NoError(t, err)
	require.Nil(t, compressed)

	d, err := BrotliDecompress(nil)
	require.NoError(t, err)
	require.Nil(t, d)
}

func TestBrotliDecompressTooLarge(t *testing.T) {
	compressed := MustBrotliCompress(make([]byte, MaxDecompressedSize+1))

	_, err := BrotliDecompress(compressed)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestBrotliDecompressTruncated(t *testing.T) {
	compressed := MustBrotliCompress(bytes.Repeat([]byte{1, 2, 3, 4, 5, 6, 7}, 4096))

	_, err := BrotliDecompress(compressed[:len(compressed)/2])
	require.Error(t, err)
}
