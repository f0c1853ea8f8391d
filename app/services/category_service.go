package services

import (
	"fmt"
	"time"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/app/repositories"
	"github.com/veyralabs/veyra/pkg/event"
	"github.com/veyralabs/veyra/pkg/metrics"
	"github.com/veyralabs/veyra/pkg/orm"
	"github.com/veyralabs/veyra/pkg/validate"
)

// CategoryInput is the form payload for creating or updating a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"required,max=255"`
}

// CategoryService mirrors BrandService for the category kind.
type CategoryService struct {
	repo  *repositories.CategoryRepository
	media *MediaStore
}

// NewCategoryService wires the service against the application database and
// the default storage disk.
func NewCategoryService() *CategoryService {
	return &CategoryService{repo: repositories.NewCategoryRepository(), media: NewMediaStore()}
}

// NewCategoryServiceWith builds a service from explicit collaborators.
func NewCategoryServiceWith(repo *repositories.CategoryRepository, media *MediaStore) *CategoryService {
	return &CategoryService{repo: repo, media: media}
}

// List returns one admin page of categories.
func (s *CategoryService) List(page int) ([]models.Category, orm.Pagination, error) {
	return s.repo.List(page)
}

// Get fetches a single category for the edit form.
func (s *CategoryService) Get(id uint) (models.Category, error) {
	return s.repo.Find(id)
}

// Create derives the slug from the submitted name and persists the row with
// its optional thumbnail. Conflicts are detected before any write.
func (s *CategoryService) Create(in CategoryInput, image *Upload) (models.Category, error) {
	var category models.Category

	if verr := FieldErrors(validate.Struct(in)); verr != nil {
		return category, verr
	}

	category.Name = in.Name
	category.Slug = Slugify(in.Name)

	if taken, err := s.repo.SlugExists(category.Slug, 0); err != nil {
		return category, err
	} else if taken {
		return category, repositories.ErrSlugTaken
	}

	if image != nil {
		name, err := s.storeImage(*image)
		if err != nil {
			return category, err
		}
		category.Image = name
	}

	if err := s.repo.Create(&category); err != nil {
		return category, err
	}

	metrics.RecordMutation("category", "create")
	event.Fire("category.created", category)
	return category, nil
}

// Update replaces all mutable fields; the slug comes from the submitted slug
// value. A new image replaces the old file only after the new one is written.
func (s *CategoryService) Update(id uint, in CategoryInput, image *Upload) (models.Category, error) {
	category, err := s.repo.Find(id)
	if err != nil {
		return category, err
	}

	if verr := FieldErrors(validate.Struct(in)); verr != nil {
		return category, verr
	}

	category.Name = in.Name
	category.Slug = Slugify(in.Slug)

	if taken, err := s.repo.SlugExists(category.Slug, category.ID); err != nil {
		return category, err
	} else if taken {
		return category, repositories.ErrSlugTaken
	}

	oldImage := category.Image
	if image != nil {
		name, err := s.storeImage(*image)
		if err != nil {
			return category, err
		}
		category.Image = name
	}

	if err := s.repo.Update(&category); err != nil {
		return category, err
	}

	if image != nil && oldImage != "" {
		_ = s.media.Remove(CategoryDir, oldImage)
	}

	metrics.RecordMutation("category", "update")
	event.Fire("category.updated", category)
	return category, nil
}

// Delete removes the thumbnail file first, then the row.
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.Find(id)
	if err != nil {
		return err
	}

	if err := s.media.Remove(CategoryDir, category.Image); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	metrics.RecordMutation("category", "delete")
	event.Fire("category.deleted", category)
	return nil
}

func (s *CategoryService) storeImage(image Upload) (string, error) {
	if verr := image.validate("image"); verr != nil {
		return "", verr
	}

	name := fmt.Sprintf("%d.%s", time.Now().Unix(), image.Ext())
	if err := s.media.Put(CategoryDir, name, image.Data, BrandThumbBox); err != nil {
		return "", err
	}

	metrics.RecordUpload("category", len(image.Data))
	return name, nil
}
