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

// BrandInput is the form payload for creating or updating a brand.
type BrandInput struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"required,max=255"`
}

// BrandService owns brand policy: slug derivation, image lifecycle, and
// repository writes.
type BrandService struct {
	repo  *repositories.BrandRepository
	media *MediaStore
}

// NewBrandService wires the service against the application database and the
// default storage disk.
func NewBrandService() *BrandService {
	return &BrandService{repo: repositories.NewBrandRepository(), media: NewMediaStore()}
}

// NewBrandServiceWith builds a service from explicit collaborators.
func NewBrandServiceWith(repo *repositories.BrandRepository, media *MediaStore) *BrandService {
	return &BrandService{repo: repo, media: media}
}

// List returns one admin page of brands.
func (s *BrandService) List(page int) ([]models.Brand, orm.Pagination, error) {
	return s.repo.List(page)
}

// Get fetches a single brand for the edit form.
func (s *BrandService) Get(id uint) (models.Brand, error) {
	return s.repo.Find(id)
}

// Create validates the input, derives the slug from the submitted name (any
// submitted slug value is ignored on create), stores the optional thumbnail,
// and persists the row. The slug conflict is detected before any file or row
// is written.
func (s *BrandService) Create(in BrandInput, image *Upload) (models.Brand, error) {
	var brand models.Brand

	if verr := FieldErrors(validate.Struct(in)); verr != nil {
		return brand, verr
	}

	brand.Name = in.Name
	brand.Slug = Slugify(in.Name)

	if taken, err := s.repo.SlugExists(brand.Slug, 0); err != nil {
		return brand, err
	} else if taken {
		return brand, repositories.ErrSlugTaken
	}

	if image != nil {
		name, err := s.storeImage(*image)
		if err != nil {
			return brand, err
		}
		brand.Image = name
	}

	if err := s.repo.Create(&brand); err != nil {
		return brand, err
	}

	metrics.RecordMutation("brand", "create")
	event.Fire("brand.created", brand)
	return brand, nil
}

// Update replaces all mutable fields. The slug is derived from the submitted
// slug value, not the name. A new image replaces the old file only after the
// new one is written.
func (s *BrandService) Update(id uint, in BrandInput, image *Upload) (models.Brand, error) {
	brand, err := s.repo.Find(id)
	if err != nil {
		return brand, err
	}

	if verr := FieldErrors(validate.Struct(in)); verr != nil {
		return brand, verr
	}

	brand.Name = in.Name
	brand.Slug = Slugify(in.Slug)

	if taken, err := s.repo.SlugExists(brand.Slug, brand.ID); err != nil {
		return brand, err
	} else if taken {
		return brand, repositories.ErrSlugTaken
	}

	oldImage := brand.Image
	if image != nil {
		name, err := s.storeImage(*image)
		if err != nil {
			return brand, err
		}
		brand.Image = name
	}

	if err := s.repo.Update(&brand); err != nil {
		return brand, err
	}

	if image != nil && oldImage != "" {
		_ = s.media.Remove(BrandDir, oldImage)
	}

	metrics.RecordMutation("brand", "update")
	event.Fire("brand.updated", brand)
	return brand, nil
}

// Delete removes the thumbnail file first, then the row. A missing file is
// not an error; a row failure after the file is gone is accepted as-is.
func (s *BrandService) Delete(id uint) error {
	brand, err := s.repo.Find(id)
	if err != nil {
		return err
	}

	if err := s.media.Remove(BrandDir, brand.Image); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	metrics.RecordMutation("brand", "delete")
	event.Fire("brand.deleted", brand)
	return nil
}

func (s *BrandService) storeImage(image Upload) (string, error) {
	if verr := image.validate("image"); verr != nil {
		return "", verr
	}

	name := fmt.Sprintf("%d.%s", time.Now().Unix(), image.Ext())
	if err := s.media.Put(BrandDir, name, image.Data, BrandThumbBox); err != nil {
		return "", err
	}

	metrics.RecordUpload("brand", len(image.Data))
	return name, nil
}
