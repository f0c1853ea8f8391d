package services

import (
	"fmt"
	"path"
	"strings"

	"github.com/veyralabs/veyra/pkg/imaging"
	"github.com/veyralabs/veyra/pkg/logger"
	"github.com/veyralabs/veyra/pkg/metrics"
	"github.com/veyralabs/veyra/pkg/storage"
)

// Upload limits and thumbnail bounding boxes.
const (
	MaxUploadBytes = 2050 * 1024 // 2050 KB form-level cap

	BrandThumbBox   = 124 // brands and categories
	ProductThumbBox = 300 // primary and gallery product images
)

// Upload directories, relative to the disk root.
const (
	BrandDir    = "uploads/brands"
	CategoryDir = "uploads/categories"
	ProductDir  = "uploads/products"
)

// allowedExt is the accepted set of client-supplied extensions. Matching is
// exact and lowercase only; "photo.JPG" is rejected.
var allowedExt = map[string]bool{"jpg": true, "jpeg": true, "png": true}

// Upload is one file received from the form, read fully into memory.
type Upload struct {
	Name string
	Data []byte
}

// Ext returns the filename extension without the dot, unmodified.
func (u Upload) Ext() string {
	i := strings.LastIndexByte(u.Name, '.')
	if i < 0 || i == len(u.Name)-1 {
		return ""
	}
	return u.Name[i+1:]
}

// validate checks the extension allowlist and the size cap, reporting
// failures against the given form field.
func (u Upload) validate(field string) *ValidationError {
	if !allowedExt[u.Ext()] {
		return NewValidationError(field,
			fmt.Sprintf("The %s must be a file of type: jpg, jpeg, png.", field))
	}
	if len(u.Data) > MaxUploadBytes {
		return NewValidationError(field,
			fmt.Sprintf("The %s must not be greater than 2050 kilobytes.", field))
	}
	return nil
}

// MediaStore owns the thumbnail lifecycle on one storage disk.
type MediaStore struct {
	disk storage.Disk
}

// NewMediaStore returns a MediaStore over the default disk.
func NewMediaStore() *MediaStore {
	return &MediaStore{disk: storage.Default()}
}

// NewMediaStoreWith returns a MediaStore over an explicit disk.
func NewMediaStoreWith(d storage.Disk) *MediaStore {
	return &MediaStore{disk: d}
}

// Disk exposes the underlying disk for read-side checks.
func (m *MediaStore) Disk() storage.Disk { return m.disk }

// Put decodes data, resizes it into a box×box bounding area (never
// upscaling), and writes the result to dir/name. The directory is created if
// missing and an existing file is overwritten.
func (m *MediaStore) Put(dir, name string, data []byte, box int) error {
	if err := m.disk.MakeDirectory(dir); err != nil {
		return fmt.Errorf("media: ensure %s: %w", dir, err)
	}

	thumb, _, err := imaging.Thumbnail(data, box, box)
	if err != nil {
		return fmt.Errorf("media: process %s: %w", name, err)
	}

	if err := m.disk.Put(path.Join(dir, name), thumb); err != nil {
		return fmt.Errorf("media: write %s: %w", name, err)
	}

	metrics.RecordThumbnail(box, box)
	return nil
}

// Remove deletes dir/name. Empty names and missing files are not errors.
func (m *MediaStore) Remove(dir, name string) error {
	if name == "" {
		return nil
	}
	return m.disk.Delete(path.Join(dir, name))
}

// RemoveAll deletes every named file under dir, logging failures instead of
// aborting so one stuck file cannot stop a cascade.
func (m *MediaStore) RemoveAll(dir string, names []string) {
	for _, n := range names {
		if err := m.Remove(dir, n); err != nil {
			logger.Warn("media: remove failed", "dir", dir, "file", n, "error", err)
		}
	}
}
