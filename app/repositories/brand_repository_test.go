package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/app/repositories"
	"github.com/veyralabs/veyra/pkg/orm"
	"github.com/veyralabs/veyra/pkg/testkit"
)

func newBrandRepo(t *testing.T) *repositories.BrandRepository {
	t.Helper()
	db := testkit.NewDB(t, &models.Brand{})
	return repositories.NewBrandRepositoryWith(orm.New(db))
}

func TestBrandRepository_CreateAndFind(t *testing.T) {
	repo := newBrandRepo(t)

	brand := models.Brand{Name: "Acme", Slug: "acme"}
	require.NoError(t, repo.Create(&brand))
	require.NotZero(t, brand.ID)

	got, err := repo.Find(brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "acme", got.Slug)
}

func TestBrandRepository_FindMissing(t *testing.T) {
	repo := newBrandRepo(t)

	_, err := repo.Find(999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestBrandRepository_CreateRejectsDuplicateSlug(t *testing.T) {
	repo := newBrandRepo(t)

	require.NoError(t, repo.Create(&models.Brand{Name: "Acme", Slug: "acme"}))

	err := repo.Create(&models.Brand{Name: "Acme Two", Slug: "acme"})
	assert.ErrorIs(t, err, repositories.ErrSlugTaken)
}

func TestBrandRepository_UpdateExcludesSelfFromSlugCheck(t *testing.T) {
	repo := newBrandRepo(t)

	brand := models.Brand{Name: "Acme", Slug: "acme"}
	require.NoError(t, repo.Create(&brand))

	// re-saving with its own slug is fine
	brand.Name = "Acme Renamed"
	require.NoError(t, repo.Update(&brand))

	// but taking another row's slug is not
	other := models.Brand{Name: "Bolt", Slug: "bolt"}
	require.NoError(t, repo.Create(&other))

	other.Slug = "acme"
	assert.ErrorIs(t, repo.Update(&other), repositories.ErrSlugTaken)
}

func TestBrandRepository_UpdateMissing(t *testing.T) {
	repo := newBrandRepo(t)
	err := repo.Update(&models.Brand{ID: 42, Name: "Ghost", Slug: "ghost"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestBrandRepository_Delete(t *testing.T) {
	repo := newBrandRepo(t)

	brand := models.Brand{Name: "Acme", Slug: "acme"}
	require.NoError(t, repo.Create(&brand))

	require.NoError(t, repo.Delete(brand.ID))

	_, err := repo.Find(brand.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// hard delete: the row is really gone
	n, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, repo.Delete(brand.ID), repositories.ErrNotFound)
}

func TestBrandRepository_ListPaginates(t *testing.T) {
	repo := newBrandRepo(t)

	for i := 1; i <= 13; i++ {
		require.NoError(t, repo.Create(&models.Brand{
			Name: fmt.Sprintf("Brand %02d", i),
			Slug: fmt.Sprintf("brand-%02d", i),
		}))
	}

	brands, pg, err := repo.List(1)
	require.NoError(t, err)
	assert.Len(t, brands, 10)
	assert.Equal(t, int64(13), pg.Total)
	assert.Equal(t, 2, pg.LastPage)
	assert.Equal(t, "brand-01", brands[0].Slug)
	assert.Equal(t, "brand-10", brands[9].Slug)

	brands, pg, err = repo.List(2)
	require.NoError(t, err)
	assert.Len(t, brands, 3)
	assert.Equal(t, 2, pg.Page)
	assert.Equal(t, "brand-11", brands[0].Slug)
}
