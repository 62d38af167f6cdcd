// Package archive reads and writes annotation arrays as chunked,
// compressed, self-describing archives on a blob store.
//
// An archive is a named directory of blobs:
//
//	<name>/meta.json    format version, archive id, shape, dtype,
//	                    chunk size, compression and codec names
//	<name>/attrs.json   user attributes, including the annotation type tag
//	<name>/chunks/%06d  row-range chunks of the data array
//
// Chunks hold little-endian float64 values and are block-compressed
// (zstd or lz4) with a small header, so an archive written with one
// compression setting can always be read back without prior knowledge.
//
// The annotation type tag ("annotation_type" in attrs.json) guards
// round-trips: loading a sphere archive into a plain point model fails
// with an error naming both the expected and the found type.
package archive
