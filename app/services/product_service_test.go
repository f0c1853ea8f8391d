package services_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/app/repositories"
	"github.com/veyralabs/veyra/app/services"
	"github.com/veyralabs/veyra/pkg/orm"
	"github.com/veyralabs/veyra/pkg/storage"
	"github.com/veyralabs/veyra/pkg/testkit"
)

type productServiceFixture struct {
	svc  *services.ProductService
	disk storage.Disk
	in   services.ProductInput
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func newProductService(t *testing.T) productServiceFixture {
	t.Helper()
	db := testkit.NewDB(t, &models.Brand{}, &models.Category{}, &models.Product{})

	brand := models.Brand{Name: "Acme", Slug: "acme"}
	category := models.Category{Name: "Shoes", Slug: "shoes"}
	require.NoError(t, db.Create(&brand).Error)
	require.NoError(t, db.Create(&category).Error)

	disk := testkit.TempDisk(t)
	return productServiceFixture{
		svc: services.NewProductServiceWith(
			repositories.NewProductRepositoryWith(orm.New(db)),
			services.NewMediaStoreWith(disk),
		),
		disk: disk,
		in: services.ProductInput{
			Name:             "Trail Runner",
			Slug:             "ignored-on-create",
			ShortDescription: "Light trail shoe",
			Description:      "A long description.",
			RegularPrice:     floatPtr(129.99),
			SalePrice:        floatPtr(99.99),
			SKU:              "TR-001",
			StockStatus:      models.StockInStock,
			Featured:         boolPtr(false),
			Quantity:         intPtr(10),
			CategoryID:       category.ID,
			BrandID:          brand.ID,
		},
	}
}

func (f productServiceFixture) primary(t *testing.T) *services.Upload {
	return &services.Upload{Name: "main.jpg", Data: testkit.JPEG(t, 600, 600)}
}

func (f productServiceFixture) files(t *testing.T) []string {
	t.Helper()
	files, err := f.disk.Files(services.ProductDir)
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func TestProductService_CreateRequiresImage(t *testing.T) {
	f := newProductService(t)

	_, err := f.svc.Create(f.in, nil, nil)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "The image field is required.", verr.Fields["image"])
}

func TestProductService_CreateSlugFromName(t *testing.T) {
	f := newProductService(t)

	product, err := f.svc.Create(f.in, f.primary(t), nil)
	require.NoError(t, err)

	assert.Equal(t, "trail-runner", product.Slug)
	assert.Regexp(t, `^\d+\.jpg$`, product.Image)
	assert.True(t, f.disk.Exists(services.ProductDir+"/"+product.Image))
}

func TestProductService_CreateGallerySkipsBadExtensions(t *testing.T) {
	f := newProductService(t)

	gallery := []services.Upload{
		{Name: "a.jpg", Data: testkit.JPEG(t, 80, 80)},
		{Name: "b.txt", Data: []byte("not an image")},
		{Name: "c.png", Data: testkit.PNG(t, 80, 80)},
	}

	product, err := f.svc.Create(f.in, f.primary(t), gallery)
	require.NoError(t, err)

	names := product.GalleryList()
	require.Len(t, names, 2)

	// ordinals stay dense over the accepted files
	assert.Regexp(t, `^\d+-1\.jpg$`, names[0])
	assert.Regexp(t, `^\d+-2\.png$`, names[1])
	for _, n := range names {
		assert.True(t, f.disk.Exists(services.ProductDir+"/"+n), "gallery file %s", n)
	}
}

func TestProductService_CreateGallerySkipsUndecodableFile(t *testing.T) {
	f := newProductService(t)

	gallery := []services.Upload{
		{Name: "fake.jpg", Data: []byte("jpg in name only")},
		{Name: "real.png", Data: testkit.PNG(t, 40, 40)},
	}

	product, err := f.svc.Create(f.in, f.primary(t), gallery)
	require.NoError(t, err)

	names := product.GalleryList()
	require.Len(t, names, 1)
	assert.Regexp(t, `^\d+-1\.png$`, names[0])
}

func TestProductService_CreateValidation(t *testing.T) {
	f := newProductService(t)

	in := f.in
	in.StockStatus = "backorder"
	in.RegularPrice = floatPtr(-1)

	_, err := f.svc.Create(in, f.primary(t), nil)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "The selected stock_status is invalid.", verr.Fields["stock_status"])
	assert.Contains(t, verr.Fields, "regular_price")
}

func TestProductService_CreateRequiresPriceQuantityFeatured(t *testing.T) {
	f := newProductService(t)

	in := f.in
	in.RegularPrice = nil
	in.SalePrice = nil
	in.Quantity = nil
	in.Featured = nil

	_, err := f.svc.Create(in, f.primary(t), nil)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "The regular_price field is required.", verr.Fields["regular_price"])
	assert.Equal(t, "The sale_price field is required.", verr.Fields["sale_price"])
	assert.Equal(t, "The quantity field is required.", verr.Fields["quantity"])
	assert.Equal(t, "The featured field is required.", verr.Fields["featured"])

	// nothing written, nothing persisted
	assert.Empty(t, f.files(t))
	products, _, err := f.svc.List(1)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_CreateAcceptsZeroValues(t *testing.T) {
	f := newProductService(t)

	in := f.in
	in.RegularPrice = floatPtr(0)
	in.SalePrice = floatPtr(0)
	in.Quantity = intPtr(0)
	in.Featured = boolPtr(false)

	product, err := f.svc.Create(in, f.primary(t), nil)
	require.NoError(t, err)

	assert.Zero(t, product.RegularPrice)
	assert.Zero(t, product.SalePrice)
	assert.Zero(t, product.Quantity)
	assert.False(t, product.Featured)
}

func TestProductService_GalleryShareTimestampWithPrimaryImage(t *testing.T) {
	f := newProductService(t)

	product, err := f.svc.Create(f.in, f.primary(t), []services.Upload{
		{Name: "a.jpg", Data: testkit.JPEG(t, 80, 80)},
		{Name: "b.png", Data: testkit.PNG(t, 80, 80)},
	})
	require.NoError(t, err)

	stamp := strings.TrimSuffix(product.Image, ".jpg")
	names := product.GalleryList()
	require.Len(t, names, 2)
	assert.Equal(t, stamp+"-1.jpg", names[0])
	assert.Equal(t, stamp+"-2.png", names[1])
}

func TestProductService_UpdateReplacesGalleryCompletely(t *testing.T) {
	f := newProductService(t)

	product, err := f.svc.Create(f.in, f.primary(t), []services.Upload{
		{Name: "a.jpg", Data: testkit.JPEG(t, 80, 80)},
		{Name: "b.png", Data: testkit.PNG(t, 80, 80)},
	})
	require.NoError(t, err)
	oldGallery := product.GalleryList()
	require.Len(t, oldGallery, 2)

	in := f.in
	in.Slug = product.Slug
	updated, err := f.svc.Update(product.ID, in, nil, []services.Upload{
		{Name: "fresh.png", Data: testkit.PNG(t, 90, 90)},
	})
	require.NoError(t, err)

	newGallery := updated.GalleryList()
	require.Len(t, newGallery, 1)

	// every old file is gone, not merged into the new set
	for _, n := range oldGallery {
		assert.False(t, f.disk.Exists(services.ProductDir+"/"+n), "stale gallery file %s", n)
	}
	assert.True(t, f.disk.Exists(services.ProductDir+"/"+newGallery[0]))
}

func TestProductService_UpdateWithoutGalleryKeepsExisting(t *testing.T) {
	f := newProductService(t)

	product, err := f.svc.Create(f.in, f.primary(t), []services.Upload{
		{Name: "a.jpg", Data: testkit.JPEG(t, 80, 80)},
	})
	require.NoError(t, err)

	in := f.in
	in.Slug = product.Slug
	updated, err := f.svc.Update(product.ID, in, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, product.GalleryList(), updated.GalleryList())
	assert.True(t, f.disk.Exists(services.ProductDir+"/"+product.GalleryList()[0]))
}

func TestProductService_UpdateMissing(t *testing.T) {
	f := newProductService(t)

	_, err := f.svc.Update(500, f.in, f.primary(t), nil)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, f.files(t))
}

func TestProductService_DeleteRemovesAllFiles(t *testing.T) {
	f := newProductService(t)

	product, err := f.svc.Create(f.in, f.primary(t), []services.Upload{
		{Name: "a.jpg", Data: testkit.JPEG(t, 80, 80)},
		{Name: "b.png", Data: testkit.PNG(t, 80, 80)},
	})
	require.NoError(t, err)
	require.Len(t, f.files(t), 3)

	require.NoError(t, f.svc.Delete(product.ID))

	assert.Empty(t, f.files(t))
	_, err = f.svc.Get(product.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
