// Package maintenance holds the background jobs that keep the uploads tree
// honest. File writes and row writes are not transactional, so a crash can
// leave thumbnail files no row references; the sweeper collects them.
package maintenance

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/pkg/collection"
	"github.com/veyralabs/veyra/pkg/logger"
	"github.com/veyralabs/veyra/pkg/orm"
	"github.com/veyralabs/veyra/pkg/storage"
	"github.com/veyralabs/veyra/pkg/workerpool"
)

// graceAge protects files younger than this from the sweep. Stored names
// start with their creation unix timestamp, so age needs no stat call. The
// margin covers an upload whose row has not been committed yet.
const graceAge = time.Hour

// sweepWorkers bounds the concurrent deletes per sweep.
const sweepWorkers = 8

// Sweeper removes upload files that no catalog row references.
type Sweeper struct {
	disk storage.Disk
	q    *orm.Query
}

// NewSweeper builds a sweeper over the default disk and application database.
func NewSweeper() *Sweeper {
	return &Sweeper{disk: storage.Default(), q: orm.DB()}
}

// NewSweeperWith builds a sweeper from explicit collaborators.
func NewSweeperWith(disk storage.Disk, q *orm.Query) *Sweeper {
	return &Sweeper{disk: disk, q: q}
}

// Sweep scans every uploads directory and deletes orphaned files older than
// the grace period. It returns the number of files removed.
func (s *Sweeper) Sweep() (int, error) {
	refs, err := s.referenced()
	if err != nil {
		return 0, fmt.Errorf("maintenance: collect references: %w", err)
	}

	pool := workerpool.New(sweepWorkers)
	defer pool.Shutdown()

	cutoff := time.Now().Add(-graceAge).Unix()
	var removed atomic.Int64

	for _, dir := range []string{"uploads/brands", "uploads/categories", "uploads/products"} {
		files, err := s.disk.Files(dir)
		if err != nil {
			return int(removed.Load()), fmt.Errorf("maintenance: list %s: %w", dir, err)
		}

		stale := collection.Filter(files, func(name string) bool {
			if refs[path.Join(dir, name)] {
				return false
			}
			ts, ok := stampOf(name)
			return ok && ts < cutoff
		})

		for _, name := range stale {
			dir, name := dir, name
			if err := pool.SubmitWait(func() {
				if err := s.disk.Delete(path.Join(dir, name)); err != nil {
					logger.Warn("sweep: delete failed", "dir", dir, "file", name, "error", err)
					return
				}
				removed.Add(1)
			}); err != nil {
				break
			}
		}
	}

	pool.Shutdown()
	return int(removed.Load()), nil
}

// referenced returns the set of dir-qualified filenames any row points at.
func (s *Sweeper) referenced() (map[string]bool, error) {
	refs := make(map[string]bool)

	var brands []models.Brand
	if err := s.q.Model(&models.Brand{}).Get(&brands); err != nil {
		return nil, err
	}
	for _, b := range brands {
		if b.Image != "" {
			refs[path.Join("uploads/brands", b.Image)] = true
		}
	}

	var categories []models.Category
	if err := s.q.Model(&models.Category{}).Get(&categories); err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.Image != "" {
			refs[path.Join("uploads/categories", c.Image)] = true
		}
	}

	var products []models.Product
	if err := s.q.Model(&models.Product{}).Get(&products); err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Image != "" {
			refs[path.Join("uploads/products", p.Image)] = true
		}
		for _, g := range p.GalleryList() {
			refs[path.Join("uploads/products", g)] = true
		}
	}

	return refs, nil
}

// stampOf extracts the creation timestamp from a stored filename, which is
// either <unix>.<ext> or <unix>-<ordinal>.<ext>. Files that don't match the
// scheme are left alone.
func stampOf(name string) (int64, bool) {
	base := name
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if i := strings.IndexByte(base, '-'); i >= 0 {
		base = base[:i]
	}
	ts, err := strconv.ParseInt(base, 10, 64)
	if err != nil || ts <= 0 {
		return 0, false
	}
	return ts, true
}
