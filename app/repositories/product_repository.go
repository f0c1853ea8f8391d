package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	q *orm.Query
}

// NewProductRepository returns a repository over the application database.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{q: orm.DB()}
}

// NewProductRepositoryWith returns a repository over an explicit query handle.
func NewProductRepositoryWith(q *orm.Query) *ProductRepository {
	return &ProductRepository{q: q}
}

// List returns one page of products in ascending creation order, with the
// owning category and brand preloaded for the listing table.
func (r *ProductRepository) List(page int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	pg, err := r.q.Model(&models.Product{}).
		Preload("Category").
		Preload("Brand").
		Order("created_at asc").
		GetWithPagination(&products, page, orm.DefaultPerPage)
	return products, pg, err
}

// Find looks up a product by primary key.
func (r *ProductRepository) Find(id uint) (models.Product, error) {
	var product models.Product
	err := r.q.Model(&models.Product{}).Where("id = ?", id).First(&product)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return product, ErrNotFound
	}
	return product, err
}

// SlugExists reports whether slug belongs to a product other than excludeID.
func (r *ProductRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	q := r.q.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return q.Exists()
}

// Create persists a new product, failing with ErrSlugTaken on a collision.
func (r *ProductRepository) Create(product *models.Product) error {
	taken, err := r.SlugExists(product.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return r.q.Create(product)
}

// Update persists changes to an existing product, excluding the row itself
// from the slug check.
func (r *ProductRepository) Update(product *models.Product) error {
	if _, err := r.Find(product.ID); err != nil {
		return err
	}
	taken, err := r.SlugExists(product.Slug, product.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return r.q.Save(product)
}

// Delete removes the product row.
func (r *ProductRepository) Delete(id uint) error {
	product, err := r.Find(id)
	if err != nil {
		return err
	}
	return r.q.Delete(&product)
}

// Count returns the total number of products.
func (r *ProductRepository) Count() (int64, error) {
	return r.q.Model(&models.Product{}).Count()
}
