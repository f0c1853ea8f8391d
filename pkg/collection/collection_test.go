package collection_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veyralabs/veyra/pkg/collection"
)

func TestMap(t *testing.T) {
	got := collection.Map([]string{"a.jpg", "b.png"}, strings.ToUpper)
	assert.Equal(t, []string{"A.JPG", "B.PNG"}, got)

	assert.Empty(t, collection.Map(nil, strings.ToUpper))
}

func TestFilterAndReject(t *testing.T) {
	isPNG := func(s string) bool { return strings.HasSuffix(s, ".png") }
	files := []string{"a.jpg", "b.png", "c.png"}

	assert.Equal(t, []string{"b.png", "c.png"}, collection.Filter(files, isPNG))
	assert.Equal(t, []string{"a.jpg"}, collection.Reject(files, isPNG))
}

func TestFirstAndContains(t *testing.T) {
	nums := []int{3, 7, 11}

	v, ok := collection.First(nums, func(n int) bool { return n > 5 })
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = collection.First(nums, func(n int) bool { return n > 100 })
	assert.False(t, ok)

	assert.True(t, collection.Contains(nums, func(n int) bool { return n == 11 }))
	assert.False(t, collection.Contains(nums, func(n int) bool { return n == 4 }))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, collection.Unique([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, collection.Unique[string](nil))
}

func TestChunk(t *testing.T) {
	got := collection.Chunk([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, got)

	assert.Nil(t, collection.Chunk([]int{1}, 0))
}

func TestSortBy(t *testing.T) {
	got := collection.SortBy([]int{4, 1, 3}, func(a, b int) bool { return a < b })
	assert.Equal(t, []int{1, 3, 4}, got)
}

func TestReduce(t *testing.T) {
	total := collection.Reduce([]int{1, 2, 3}, 0, func(carry, n int) int { return carry + n })
	assert.Equal(t, 6, total)
}
