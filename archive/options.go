package archive

import (
	"golang.org/x/time/rate"

	"github.com/hupe1980/annot3d/codec"
)

// DefaultChunkRows is the number of array rows per chunk blob.
const DefaultChunkRows = 1024

type options struct {
	compression Compression
	chunkRows   int
	codec       codec.Codec
	limiter     *rate.Limiter
}

// Option configures archive reads and writes.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		compression: CompressionZSTD,
		chunkRows:   DefaultChunkRows,
		codec:       codec.Default,
	}
}

// WithCompression sets the chunk compression algorithm used when writing.
// Reads auto-detect from the archive metadata.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithChunkRows sets how many array rows go into each chunk blob.
func WithChunkRows(rows int) Option {
	return func(o *options) {
		if rows > 0 {
			o.chunkRows = rows
		}
	}
}

// WithCodec sets the metadata codec used when writing. Reads select the
// codec recorded in the archive.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithRateLimit throttles blob transfer to the limiter's byte rate. Useful
// when the store is shared with an interactive session and a large save
// must not starve it.
func WithRateLimit(l *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}
