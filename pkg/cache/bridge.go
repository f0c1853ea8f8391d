package cache

import (
	"time"

	"github.com/veyralabs/veyra/pkg/orm"
)

// store adapts this package's helpers to orm.Cacher.
type store struct{}

func (store) Get(key string, dest interface{}) bool { return Get(key, dest) }
func (store) Set(key string, value interface{}, ttl time.Duration) error {
	return Set(key, value, ttl)
}

func init() {
	orm.CacheStore = store{}
}
