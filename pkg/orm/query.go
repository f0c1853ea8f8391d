// Package orm is a thin query wrapper over gorm used by the repositories.
//
// It exists so repository code reads like a query plan, pagination is done
// one way everywhere, and hot read queries can opt into the Redis
// read-through cache without importing it.
package orm

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/veyralabs/veyra/pkg/database"
)

// DefaultPerPage is the admin listing page size.
const DefaultPerPage = 10

// Cacher is implemented by the cache bridge wired in at boot. Keeping it an
// interface here breaks the orm ↔ cache import cycle.
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
}

// CacheStore is the process-wide cache bridge; nil disables Cache().
var CacheStore Cacher

// Pagination describes one page of a listing.
type Pagination struct {
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

// Query is an immutable builder; every method returns a derived Query.
type Query struct {
	db *gorm.DB
}

// DB returns a Query over the application database.
func DB() *Query { return &Query{db: database.DB} }

// New returns a Query over an explicit gorm handle (tests use an in-memory
// sqlite DB).
func New(db *gorm.DB) *Query { return &Query{db: db} }

// Gorm exposes the underlying handle for the rare operation the wrapper has
// no verb for.
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(expr string) *Query {
	return &Query{db: q.db.Order(expr)}
}

func (q *Query) Preload(assoc string) *Query {
	return &Query{db: q.db.Preload(assoc)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Offset(n int) *Query {
	return &Query{db: q.db.Offset(n)}
}

// Get loads all matching rows into dest.
func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

// First loads the first matching row. Returns gorm.ErrRecordNotFound when
// there is none.
func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Count returns the number of matching rows.
func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Exists reports whether any row matches.
func (q *Query) Exists() (bool, error) {
	n, err := q.Count()
	return n > 0, err
}

// Create inserts v.
func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

// Save writes all fields of v.
func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

// Delete removes v (hard delete when the model has no DeletedAt).
func (q *Query) Delete(v interface{}) error {
	return q.db.Delete(v).Error
}

// GetWithPagination loads one page into dest and returns page metadata.
// page is 1-based; perPage ≤ 0 falls back to DefaultPerPage.
func (q *Query) GetWithPagination(dest interface{}, page, perPage int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total, err := q.Count()
	if err != nil {
		return Pagination{}, fmt.Errorf("orm: count: %w", err)
	}

	if err := q.db.Limit(perPage).Offset((page - 1) * perPage).Find(dest).Error; err != nil {
		return Pagination{}, fmt.Errorf("orm: page %d: %w", page, err)
	}

	last := int(math.Ceil(float64(total) / float64(perPage)))
	if last < 1 {
		last = 1
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, LastPage: last}, nil
}

// Cache loads dest from the cache bridge under key, falling through to the
// query (and populating the cache) on a miss. With no bridge wired it is a
// plain Get.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		_ = CacheStore.Set(key, dest, ttl)
	}
	return nil
}
