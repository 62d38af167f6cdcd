package archive

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/hupe1980/annot3d/blobstore"
	"github.com/hupe1980/annot3d/codec"
)

// FormatVersion is the archive format version written by this package.
const FormatVersion = 1

const (
	metaBlob   = "meta.json"
	attrsBlob  = "attrs.json"
	chunkBlobs = "chunks/%06d"
)

// Array is a rectangular float64 array plus user attributes, the unit an
// archive stores.
type Array struct {
	Data  [][]float64
	Attrs map[string]any
}

// Rows returns the number of rows.
func (a *Array) Rows() int { return len(a.Data) }

// Cols returns the row width, or 0 for an empty array.
func (a *Array) Cols() int {
	if len(a.Data) == 0 {
		return 0
	}
	return len(a.Data[0])
}

type metaDocument struct {
	Version     int    `json:"version"`
	ID          string `json:"id"`
	Shape       []int  `json:"shape"`
	DType       string `json:"dtype"`
	ChunkRows   int    `json:"chunk_rows"`
	Compression string `json:"compression"`
	Codec       string `json:"codec"`
}

// Save writes arr as the named archive on the store, replacing any archive
// of the same name. The metadata document is written last, so a reader
// never observes a committed archive with missing chunks.
func Save(ctx context.Context, store blobstore.BlobStore, name string, arr *Array, opts ...Option) error {
	if name == "" {
		return ErrEmptyName
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	rows := arr.Rows()
	cols := arr.Cols()
	for _, row := range arr.Data {
		if len(row) != cols {
			return ErrRaggedData
		}
	}

	for i, lo := 0, 0; lo < rows; i, lo = i+1, lo+o.chunkRows {
		hi := lo + o.chunkRows
		if hi > rows {
			hi = rows
		}

		raw := encodeRows(arr.Data[lo:hi], cols)
		chunk, err := compressBlock(raw, o.compression)
		if err != nil {
			return fmt.Errorf("archive: compress chunk %d: %w", i, err)
		}
		if err := o.wait(ctx, len(chunk)); err != nil {
			return err
		}
		if err := store.Put(ctx, fmt.Sprintf(name+"/"+chunkBlobs, i), chunk); err != nil {
			return fmt.Errorf("archive: write chunk %d: %w", i, err)
		}
	}

	attrs := arr.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	attrsData, err := o.codec.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("archive: encode attrs: %w", err)
	}
	if err := o.wait(ctx, len(attrsData)); err != nil {
		return err
	}
	if err := store.Put(ctx, name+"/"+attrsBlob, attrsData); err != nil {
		return fmt.Errorf("archive: write attrs: %w", err)
	}

	meta := metaDocument{
		Version:     FormatVersion,
		ID:          uuid.NewString(),
		Shape:       []int{rows, cols},
		DType:       "float64",
		ChunkRows:   o.chunkRows,
		Compression: o.compression.Name(),
		Codec:       o.codec.Name(),
	}
	metaData, err := o.codec.Marshal(meta)
	if err != nil {
		return fmt.Errorf("archive: encode meta: %w", err)
	}
	if err := o.wait(ctx, len(metaData)); err != nil {
		return err
	}
	if err := store.Put(ctx, name+"/"+metaBlob, metaData); err != nil {
		return fmt.Errorf("archive: write meta: %w", err)
	}
	return nil
}

// Load reads the named archive from the store. Compression and codec are
// taken from the archive's own metadata; the corresponding options are
// ignored on reads.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*Array, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	metaData, err := blobstore.ReadAll(ctx, store, name+"/"+metaBlob)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("archive %q: %w", name, blobstore.ErrNotFound)
		}
		return nil, fmt.Errorf("archive: read meta: %w", err)
	}
	if err := o.wait(ctx, len(metaData)); err != nil {
		return nil, err
	}

	// Both built-in codecs speak JSON, so the metadata document is always
	// decodable before the recorded codec is known.
	var meta metaDocument
	if err := (codec.JSON{}).Unmarshal(metaData, &meta); err != nil {
		return nil, &ErrFormat{Name: name, Issue: "malformed metadata", cause: err}
	}
	if meta.Version != FormatVersion {
		return nil, &ErrFormat{Name: name, Issue: fmt.Sprintf("unsupported format version %d", meta.Version)}
	}
	if meta.DType != "float64" {
		return nil, &ErrFormat{Name: name, Issue: fmt.Sprintf("unsupported dtype %q", meta.DType)}
	}
	if len(meta.Shape) != 2 || meta.Shape[0] < 0 || meta.Shape[1] < 0 {
		return nil, &ErrFormat{Name: name, Issue: fmt.Sprintf("unsupported shape %v", meta.Shape)}
	}
	if meta.ChunkRows <= 0 {
		return nil, &ErrFormat{Name: name, Issue: fmt.Sprintf("invalid chunk size %d", meta.ChunkRows)}
	}

	compression, err := compressionByName(meta.Compression)
	if err != nil {
		return nil, &ErrFormat{Name: name, Issue: fmt.Sprintf("unknown compression %q", meta.Compression)}
	}
	attrCodec, ok := codec.ByName(meta.Codec)
	if !ok {
		return nil, &ErrFormat{Name: name, Issue: fmt.Sprintf("unknown codec %q", meta.Codec)}
	}

	attrsData, err := blobstore.ReadAll(ctx, store, name+"/"+attrsBlob)
	if err != nil {
		return nil, fmt.Errorf("archive: read attrs: %w", err)
	}
	if err := o.wait(ctx, len(attrsData)); err != nil {
		return nil, err
	}
	attrs := map[string]any{}
	if err := attrCodec.Unmarshal(attrsData, &attrs); err != nil {
		return nil, &ErrFormat{Name: name, Issue: "malformed attrs", cause: err}
	}

	rows, cols := meta.Shape[0], meta.Shape[1]
	data := make([][]float64, 0, rows)

	for i, lo := 0, 0; lo < rows; i, lo = i+1, lo+meta.ChunkRows {
		hi := lo + meta.ChunkRows
		if hi > rows {
			hi = rows
		}

		chunk, err := blobstore.ReadAll(ctx, store, fmt.Sprintf(name+"/"+chunkBlobs, i))
		if err != nil {
			return nil, fmt.Errorf("archive: read chunk %d: %w", i, err)
		}
		if err := o.wait(ctx, len(chunk)); err != nil {
			return nil, err
		}

		raw, err := decompressBlock(chunk, compression)
		if err != nil {
			return nil, &ErrFormat{Name: name, Issue: fmt.Sprintf("chunk %d", i), cause: err}
		}
		chunkRows, err := decodeRows(raw, hi-lo, cols)
		if err != nil {
			return nil, &ErrFormat{Name: name, Issue: fmt.Sprintf("chunk %d", i), cause: err}
		}
		data = append(data, chunkRows...)
	}

	return &Array{Data: data, Attrs: attrs}, nil
}

// Delete removes the named archive and all of its chunks.
func Delete(ctx context.Context, store blobstore.BlobStore, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	names, err := store.List(ctx, name+"/")
	if err != nil {
		return fmt.Errorf("archive: list %q: %w", name, err)
	}
	for _, blob := range names {
		if err := store.Delete(ctx, blob); err != nil {
			return fmt.Errorf("archive: delete %q: %w", blob, err)
		}
	}
	return nil
}

// List returns the names of archives below the given prefix: every
// directory holding a metadata document.
func List(ctx context.Context, store blobstore.BlobStore, prefix string) ([]string, error) {
	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	var archives []string
	for _, blob := range names {
		const suffix = "/" + metaBlob
		if len(blob) > len(suffix) && blob[len(blob)-len(suffix):] == suffix {
			archives = append(archives, blob[:len(blob)-len(suffix)])
		}
	}
	return archives, nil
}

func encodeRows(rows [][]float64, cols int) []byte {
	out := make([]byte, 0, len(rows)*cols*8)
	var buf [8]byte
	for _, row := range rows {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			out = append(out, buf[:]...)
		}
	}
	return out
}

func decodeRows(raw []byte, rows, cols int) ([][]float64, error) {
	if len(raw) != rows*cols*8 {
		return nil, fmt.Errorf("size mismatch: got %d bytes, want %d", len(raw), rows*cols*8)
	}
	out := make([][]float64, rows)
	off := 0
	for i := range out {
		row := make([]float64, cols)
		for j := range row {
			row[j] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off:]))
			off += 8
		}
		out[i] = row
	}
	return out, nil
}

// wait throttles a transfer of n bytes when a rate limit is configured.
// Transfers larger than the limiter's burst are waited for in burst-sized
// pieces.
func (o *options) wait(ctx context.Context, n int) error {
	if o.limiter == nil || n == 0 {
		return nil
	}
	burst := o.limiter.Burst()
	for n > 0 {
		step := n
		if burst > 0 && step > burst {
			step = burst
		}
		if err := o.limiter.WaitN(ctx, step); err != nil {
			return fmt.Errorf("archive: rate limit: %w", err)
		}
		n -= step
	}
	return nil
}
