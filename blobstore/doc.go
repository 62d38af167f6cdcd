// Package blobstore provides the storage abstraction annotation archives
// are written to.
//
// BlobStore is the interface for reading and writing data blobs (archive
// metadata documents and chunk files). Implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: In-memory store for tests and ephemeral sessions
//   - LocalStore: Local filesystem with atomic writes
//   - minio.Store: MinIO and S3-compatible object storage
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)      // Open for reading
//	    Put(ctx, name, data) error         // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
