package archive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionRoundTrip(t *testing.T) {
	// Repetitive payload so lz4/zstd actually compress.
	data := bytes.Repeat([]byte("annotation chunk payload "), 200)

	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(compression.Name(), func(t *testing.T) {
			block, err := compressBlock(data, compression)
			require.NoError(t, err)

			got, err := decompressBlock(block, compression)
			require.NoError(t, err)
			require.Equal(t, data, got)

			if compression != CompressionNone {
				require.Less(t, len(block), len(data), "repetitive payload should shrink")
			}
		})
	}
}

func TestCompressionIncompressibleFallsBack(t *testing.T) {
	// High-entropy payload; stored uncompressed behind the header.
	data := make([]byte, 512)
	state := uint32(2463534242)
	for i := range data {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		data[i] = byte(state)
	}

	block, err := compressBlock(data, CompressionLZ4)
	require.NoError(t, err)

	got, err := decompressBlock(block, CompressionLZ4)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestDecompressTruncatedBlock(t *testing.T) {
	_, err := decompressBlock([]byte{1, 2, 3}, CompressionZSTD)
	require.Error(t, err)
}

func TestCompressionByName(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := compressionByName(compression.Name())
		require.NoError(t, err)
		require.Equal(t, compression, got)
	}

	_, err := compressionByName("snappy")
	require.Error(t, err)
}
