// Package storage abstracts where uploaded assets live.
//
// Two drivers ship with Veyra:
//
//   - "local" — files under the configured uploads root (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// The thumbnail pipeline only ever talks to Disk, so switching the public
// asset root to object storage is a configuration change.
package storage

import "io"

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed
	// and overwriting any existing file.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file at path.
	Size(path string) (int64, error)

	// Delete removes a file. A missing file is not an error.
	Delete(path string) error

	// Files lists the names (not paths) of files directly inside
	// directory. A missing directory yields an empty list.
	Files(directory string) ([]string, error)

	// MakeDirectory creates directory and any parents.
	MakeDirectory(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
