package maintenance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/pkg/orm"
	"github.com/veyralabs/veyra/pkg/storage"
	"github.com/veyralabs/veyra/pkg/testkit"
)

func newSweeperFixture(t *testing.T) (*Sweeper, storage.Disk, *orm.Query) {
	t.Helper()
	db := testkit.NewDB(t, &models.Brand{}, &models.Category{}, &models.Product{})
	disk := testkit.TempDisk(t)
	q := orm.New(db)
	return NewSweeperWith(disk, q), disk, q
}

// staleName builds a filename whose embedded timestamp is well past the
// grace period.
func staleName(ext string) string {
	return fmt.Sprintf("%d.%s", time.Now().Add(-2*time.Hour).Unix(), ext)
}

func TestSweep_RemovesOrphans(t *testing.T) {
	sweeper, disk, _ := newSweeperFixture(t)

	orphans := []string{
		"uploads/brands/" + staleName("jpg"),
		"uploads/categories/" + staleName("png"),
		"uploads/products/" + staleName("jpeg"),
	}
	for _, p := range orphans {
		require.NoError(t, disk.Put(p, []byte("x")))
	}

	removed, err := sweeper.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	for _, p := range orphans {
		assert.False(t, disk.Exists(p), "orphan %s should be gone", p)
	}
}

func TestSweep_KeepsReferencedFiles(t *testing.T) {
	sweeper, disk, q := newSweeperFixture(t)

	old := time.Now().Add(-3 * time.Hour).Unix()
	brandImage := fmt.Sprintf("%d.jpg", old)
	productImage := fmt.Sprintf("%d.jpg", old+1)
	galleryImage := fmt.Sprintf("%d-1.png", old+1)

	require.NoError(t, q.Create(&models.Brand{Name: "Acme", Slug: "acme", Image: brandImage}))
	product := models.Product{
		Name: "Runner", Slug: "runner", StockStatus: models.StockInStock,
		CategoryID: 1, BrandID: 1, Image: productImage,
	}
	product.SetGallery([]string{galleryImage})
	require.NoError(t, q.Create(&product))

	kept := []string{
		"uploads/brands/" + brandImage,
		"uploads/products/" + productImage,
		"uploads/products/" + galleryImage,
	}
	for _, p := range kept {
		require.NoError(t, disk.Put(p, []byte("x")))
	}
	orphan := "uploads/products/" + staleName("png")
	require.NoError(t, disk.Put(orphan, []byte("x")))

	removed, err := sweeper.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	for _, p := range kept {
		assert.True(t, disk.Exists(p), "referenced file %s must survive", p)
	}
	assert.False(t, disk.Exists(orphan))
}

func TestSweep_SkipsYoungFiles(t *testing.T) {
	sweeper, disk, _ := newSweeperFixture(t)

	// unreferenced but inside the grace period: likely an in-flight upload
	young := fmt.Sprintf("uploads/brands/%d.jpg", time.Now().Unix())
	require.NoError(t, disk.Put(young, []byte("x")))

	removed, err := sweeper.Sweep()
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.True(t, disk.Exists(young))
}

func TestSweep_SkipsForeignFilenames(t *testing.T) {
	sweeper, disk, _ := newSweeperFixture(t)

	// no timestamp prefix, so age is unknowable; leave it alone
	require.NoError(t, disk.Put("uploads/brands/readme.txt", []byte("x")))

	removed, err := sweeper.Sweep()
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.True(t, disk.Exists("uploads/brands/readme.txt"))
}

func TestStampOf(t *testing.T) {
	ts, ok := stampOf("1700000000.jpg")
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000), ts)

	ts, ok = stampOf("1700000001-3.png")
	assert.True(t, ok)
	assert.Equal(t, int64(1700000001), ts)

	_, ok = stampOf("readme.txt")
	assert.False(t, ok)

	_, ok = stampOf("-5.png")
	assert.False(t, ok)
}
