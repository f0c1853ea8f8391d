package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/pkg/orm"
)

// BrandRepository handles database operations for Brand.
type BrandRepository struct {
	q *orm.Query
}

// NewBrandRepository returns a repository over the application database.
func NewBrandRepository() *BrandRepository {
	return &BrandRepository{q: orm.DB()}
}

// NewBrandRepositoryWith returns a repository over an explicit query handle.
func NewBrandRepositoryWith(q *orm.Query) *BrandRepository {
	return &BrandRepository{q: q}
}

// List returns one page of brands in ascending id order.
func (r *BrandRepository) List(page int) ([]models.Brand, orm.Pagination, error) {
	var brands []models.Brand
	pg, err := r.q.Model(&models.Brand{}).
		Order("id asc").
		GetWithPagination(&brands, page, orm.DefaultPerPage)
	return brands, pg, err
}

// Find looks up a brand by primary key.
func (r *BrandRepository) Find(id uint) (models.Brand, error) {
	var brand models.Brand
	err := r.q.Model(&models.Brand{}).Where("id = ?", id).First(&brand)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return brand, ErrNotFound
	}
	return brand, err
}

// SlugExists reports whether slug belongs to a brand other than excludeID.
// Pass excludeID 0 on create.
func (r *BrandRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	q := r.q.Model(&models.Brand{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return q.Exists()
}

// Create persists a new brand, failing with ErrSlugTaken on a slug collision.
func (r *BrandRepository) Create(brand *models.Brand) error {
	taken, err := r.SlugExists(brand.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return r.q.Create(brand)
}

// Update persists changes to an existing brand. The slug check excludes the
// row itself, so re-submitting an unchanged slug succeeds.
func (r *BrandRepository) Update(brand *models.Brand) error {
	if _, err := r.Find(brand.ID); err != nil {
		return err
	}
	taken, err := r.SlugExists(brand.Slug, brand.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return r.q.Save(brand)
}

// Delete removes the brand row.
func (r *BrandRepository) Delete(id uint) error {
	brand, err := r.Find(id)
	if err != nil {
		return err
	}
	return r.q.Delete(&brand)
}

// Count returns the total number of brands.
func (r *BrandRepository) Count() (int64, error) {
	return r.q.Model(&models.Brand{}).Count()
}
