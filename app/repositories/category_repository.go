package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/pkg/orm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	q *orm.Query
}

// NewCategoryRepository returns a repository over the application database.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{q: orm.DB()}
}

// NewCategoryRepositoryWith returns a repository over an explicit query handle.
func NewCategoryRepositoryWith(q *orm.Query) *CategoryRepository {
	return &CategoryRepository{q: q}
}

// List returns one page of categories in ascending id order.
func (r *CategoryRepository) List(page int) ([]models.Category, orm.Pagination, error) {
	var categories []models.Category
	pg, err := r.q.Model(&models.Category{}).
		Order("id asc").
		GetWithPagination(&categories, page, orm.DefaultPerPage)
	return categories, pg, err
}

// Find looks up a category by primary key.
func (r *CategoryRepository) Find(id uint) (models.Category, error) {
	var category models.Category
	err := r.q.Model(&models.Category{}).Where("id = ?", id).First(&category)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return category, ErrNotFound
	}
	return category, err
}

// SlugExists reports whether slug belongs to a category other than excludeID.
func (r *CategoryRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	q := r.q.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return q.Exists()
}

// Create persists a new category, failing with ErrSlugTaken on a collision.
func (r *CategoryRepository) Create(category *models.Category) error {
	taken, err := r.SlugExists(category.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return r.q.Create(category)
}

// Update persists changes to an existing category, excluding the row itself
// from the slug check.
func (r *CategoryRepository) Update(category *models.Category) error {
	if _, err := r.Find(category.ID); err != nil {
		return err
	}
	taken, err := r.SlugExists(category.Slug, category.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return r.q.Save(category)
}

// Delete removes the category row.
func (r *CategoryRepository) Delete(id uint) error {
	category, err := r.Find(id)
	if err != nil {
		return err
	}
	return r.q.Delete(&category)
}

// Count returns the total number of categories.
func (r *CategoryRepository) Count() (int64, error) {
	return r.q.Model(&models.Category{}).Count()
}
