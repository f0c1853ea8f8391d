package services_test

import (
	"errors"
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

func newBrandService(t *testing.T) (*services.BrandService, storage.Disk) {
	t.Helper()
	db := testkit.NewDB(t, &models.Brand{})
	disk := testkit.TempDisk(t)
	svc := services.NewBrandServiceWith(
		repositories.NewBrandRepositoryWith(orm.New(db)),
		services.NewMediaStoreWith(disk),
	)
	return svc, disk
}

func brandFiles(t *testing.T, disk storage.Disk) []string {
	t.Helper()
	files, err := disk.Files(services.BrandDir)
	require.NoError(t, err)
	return files
}

func TestBrandService_CreateSlugComesFromName(t *testing.T) {
	svc, _ := newBrandService(t)

	// the submitted slug is ignored on create
	brand, err := svc.Create(services.BrandInput{Name: "Nike Air", Slug: "whatever-was-typed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "nike-air", brand.Slug)
}

func TestBrandService_CreateWithImage(t *testing.T) {
	svc, disk := newBrandService(t)

	img := &services.Upload{Name: "logo.png", Data: testkit.PNG(t, 400, 400)}
	brand, err := svc.Create(services.BrandInput{Name: "Acme", Slug: "acme"}, img)
	require.NoError(t, err)

	require.NotEmpty(t, brand.Image)
	assert.Regexp(t, `^\d+\.png$`, brand.Image)
	assert.True(t, disk.Exists(services.BrandDir+"/"+brand.Image))
}

func TestBrandService_CreateValidation(t *testing.T) {
	svc, _ := newBrandService(t)

	_, err := svc.Create(services.BrandInput{}, nil)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "slug")
}

func TestBrandService_CreateRejectsBadUploadBeforeWriting(t *testing.T) {
	svc, disk := newBrandService(t)

	// wrong extension, including uppercase variants
	for _, name := range []string{"doc.gif", "photo.JPG", "noext"} {
		_, err := svc.Create(
			services.BrandInput{Name: "Brand " + name, Slug: "x"},
			&services.Upload{Name: name, Data: testkit.PNG(t, 10, 10)},
		)

		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr, "upload %q", name)
		assert.Equal(t, "The image must be a file of type: jpg, jpeg, png.", verr.Fields["image"])
	}

	assert.Empty(t, brandFiles(t, disk))
}

func TestBrandService_CreateRejectsOversizedUpload(t *testing.T) {
	svc, _ := newBrandService(t)

	big := services.Upload{Name: "big.jpg", Data: make([]byte, services.MaxUploadBytes+1)}
	_, err := svc.Create(services.BrandInput{Name: "Big", Slug: "big"}, &big)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "The image must not be greater than 2050 kilobytes.", verr.Fields["image"])
}

func TestBrandService_CreateSlugConflictLeavesNoFile(t *testing.T) {
	svc, disk := newBrandService(t)

	_, err := svc.Create(services.BrandInput{Name: "Acme", Slug: "acme"}, nil)
	require.NoError(t, err)

	img := &services.Upload{Name: "logo.png", Data: testkit.PNG(t, 50, 50)}
	_, err = svc.Create(services.BrandInput{Name: "Acme", Slug: "other"}, img)
	assert.ErrorIs(t, err, repositories.ErrSlugTaken)

	// the conflict is caught before the thumbnail is written
	assert.Empty(t, brandFiles(t, disk))
}

func TestBrandService_UpdateSlugComesFromSlugField(t *testing.T) {
	svc, _ := newBrandService(t)

	brand, err := svc.Create(services.BrandInput{Name: "Acme", Slug: "ignored"}, nil)
	require.NoError(t, err)

	updated, err := svc.Update(brand.ID, services.BrandInput{Name: "Acme Renamed", Slug: "Custom Slug!"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", updated.Slug)
	assert.Equal(t, "Acme Renamed", updated.Name)
}

func TestBrandService_UpdateKeepingOwnSlug(t *testing.T) {
	svc, _ := newBrandService(t)

	brand, err := svc.Create(services.BrandInput{Name: "Acme", Slug: "acme"}, nil)
	require.NoError(t, err)

	// resubmitting the record's own slug must not count as a conflict
	updated, err := svc.Update(brand.ID, services.BrandInput{Name: "Acme", Slug: brand.Slug}, nil)
	require.NoError(t, err)
	assert.Equal(t, brand.Slug, updated.Slug)
}

func TestBrandService_UpdateSlugConflict(t *testing.T) {
	svc, _ := newBrandService(t)

	_, err := svc.Create(services.BrandInput{Name: "Acme", Slug: "acme"}, nil)
	require.NoError(t, err)
	other, err := svc.Create(services.BrandInput{Name: "Bolt", Slug: "bolt"}, nil)
	require.NoError(t, err)

	_, err = svc.Update(other.ID, services.BrandInput{Name: "Bolt", Slug: "acme"}, nil)
	assert.ErrorIs(t, err, repositories.ErrSlugTaken)
}

func TestBrandService_UpdateReplacesImageFile(t *testing.T) {
	svc, disk := newBrandService(t)

	brand, err := svc.Create(
		services.BrandInput{Name: "Acme", Slug: "acme"},
		&services.Upload{Name: "old.png", Data: testkit.PNG(t, 50, 50)},
	)
	require.NoError(t, err)
	oldName := brand.Image

	updated, err := svc.Update(brand.ID,
		services.BrandInput{Name: "Acme", Slug: "acme"},
		&services.Upload{Name: "new.jpg", Data: testkit.JPEG(t, 50, 50)},
	)
	require.NoError(t, err)

	assert.NotEqual(t, oldName, updated.Image)
	assert.True(t, disk.Exists(services.BrandDir+"/"+updated.Image))
	assert.False(t, disk.Exists(services.BrandDir+"/"+oldName))
}

func TestBrandService_UpdateMissing(t *testing.T) {
	svc, disk := newBrandService(t)

	_, err := svc.Update(404,
		services.BrandInput{Name: "Ghost", Slug: "ghost"},
		&services.Upload{Name: "g.png", Data: testkit.PNG(t, 10, 10)},
	)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, brandFiles(t, disk))
}

func TestBrandService_DeleteRemovesFileAndRow(t *testing.T) {
	svc, disk := newBrandService(t)

	brand, err := svc.Create(
		services.BrandInput{Name: "Acme", Slug: "acme"},
		&services.Upload{Name: "logo.jpeg", Data: testkit.JPEG(t, 60, 60)},
	)
	require.NoError(t, err)
	require.True(t, disk.Exists(services.BrandDir+"/"+brand.Image))

	require.NoError(t, svc.Delete(brand.ID))

	assert.False(t, disk.Exists(services.BrandDir+"/"+brand.Image))
	_, err = svc.Get(brand.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestBrandService_DeleteWithoutImage(t *testing.T) {
	svc, _ := newBrandService(t)

	brand, err := svc.Create(services.BrandInput{Name: "Acme", Slug: "acme"}, nil)
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(brand.ID))
}

func TestBrandService_DeleteMissing(t *testing.T) {
	svc, _ := newBrandService(t)
	err := svc.Delete(77)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
