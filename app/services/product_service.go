package services

import (
	"fmt"
	"time"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/app/repositories"
	"github.com/veyralabs/veyra/pkg/event"
	"github.com/veyralabs/veyra/pkg/logger"
	"github.com/veyralabs/veyra/pkg/metrics"
	"github.com/veyralabs/veyra/pkg/orm"
	"github.com/veyralabs/veyra/pkg/validate"
)

// ProductInput is the form payload for creating or updating a product.
// Prices, quantity, and featured arrive as strings from the form; the binder
// parses them and reports malformed values as field errors before validation
// runs. They are pointers because all four are mandatory yet zero is a legal
// value, so a nil field means it was never submitted.
type ProductInput struct {
	Name             string   `json:"name" validate:"required,max=255"`
	Slug             string   `json:"slug" validate:"required,max=255"`
	ShortDescription string   `json:"short_description" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	RegularPrice     *float64 `json:"regular_price" validate:"required,gte=0"`
	SalePrice        *float64 `json:"sale_price" validate:"required,gte=0"`
	SKU              string   `json:"sku" validate:"required"`
	StockStatus      string   `json:"stock_status" validate:"required,in=instock,outofstock"`
	Featured         *bool    `json:"featured" validate:"required"`
	Quantity         *int     `json:"quantity" validate:"required,gte=0"`
	CategoryID       uint     `json:"category_id" validate:"required"`
	BrandID          uint     `json:"brand_id" validate:"required"`
}

// ProductService owns product policy, including the gallery lifecycle.
type ProductService struct {
	repo  *repositories.ProductRepository
	media *MediaStore
}

// NewProductService wires the service against the application database and
// the default storage disk.
func NewProductService() *ProductService {
	return &ProductService{repo: repositories.NewProductRepository(), media: NewMediaStore()}
}

// NewProductServiceWith builds a service from explicit collaborators.
func NewProductServiceWith(repo *repositories.ProductRepository, media *MediaStore) *ProductService {
	return &ProductService{repo: repo, media: media}
}

// List returns one admin page of products.
func (s *ProductService) List(page int) ([]models.Product, orm.Pagination, error) {
	return s.repo.List(page)
}

// Get fetches a single product for the edit form.
func (s *ProductService) Get(id uint) (models.Product, error) {
	return s.repo.Find(id)
}

// Create validates the input, derives the slug from the submitted name, and
// persists the row with its mandatory primary thumbnail plus any gallery
// images. Slug conflicts and image failures abort before the row is written.
func (s *ProductService) Create(in ProductInput, image *Upload, gallery []Upload) (models.Product, error) {
	var product models.Product

	fields := validate.Struct(in)
	if image == nil {
		fields["image"] = "The image field is required."
	}
	if verr := FieldErrors(fields); verr != nil {
		return product, verr
	}

	applyInput(&product, in)
	product.Slug = Slugify(in.Name)

	if taken, err := s.repo.SlugExists(product.Slug, 0); err != nil {
		return product, err
	} else if taken {
		return product, repositories.ErrSlugTaken
	}

	ts := time.Now().Unix()
	name, err := s.storeImage(*image, ts)
	if err != nil {
		return product, err
	}
	product.Image = name
	product.SetGallery(s.storeGallery(gallery, ts))

	if err := s.repo.Create(&product); err != nil {
		return product, err
	}

	metrics.RecordMutation("product", "create")
	event.Fire("product.created", product)
	return product, nil
}

// Update replaces all mutable fields; the slug comes from the submitted slug
// value. A new primary image replaces the old file after the new one is
// written. A newly submitted gallery replaces the stored set completely: all
// old files are deleted first, then the new set is processed from scratch.
func (s *ProductService) Update(id uint, in ProductInput, image *Upload, gallery []Upload) (models.Product, error) {
	product, err := s.repo.Find(id)
	if err != nil {
		return product, err
	}

	if verr := FieldErrors(validate.Struct(in)); verr != nil {
		return product, verr
	}

	applyInput(&product, in)
	product.Slug = Slugify(in.Slug)

	if taken, err := s.repo.SlugExists(product.Slug, product.ID); err != nil {
		return product, err
	} else if taken {
		return product, repositories.ErrSlugTaken
	}

	ts := time.Now().Unix()
	oldImage := product.Image
	if image != nil {
		name, err := s.storeImage(*image, ts)
		if err != nil {
			return product, err
		}
		product.Image = name
	}

	if len(gallery) > 0 {
		s.media.RemoveAll(ProductDir, product.GalleryList())
		product.SetGallery(s.storeGallery(gallery, ts))
	}

	if err := s.repo.Update(&product); err != nil {
		return product, err
	}

	if image != nil && oldImage != "" {
		_ = s.media.Remove(ProductDir, oldImage)
	}

	metrics.RecordMutation("product", "update")
	event.Fire("product.updated", product)
	return product, nil
}

// Delete removes the primary thumbnail and every gallery file, then the row.
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.Find(id)
	if err != nil {
		return err
	}

	if err := s.media.Remove(ProductDir, product.Image); err != nil {
		return err
	}
	s.media.RemoveAll(ProductDir, product.GalleryList())

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	metrics.RecordMutation("product", "delete")
	event.Fire("product.deleted", product)
	return nil
}

// applyInput copies the payload onto the row. Validation has already run, so
// the pointer fields are non-nil here.
func applyInput(p *models.Product, in ProductInput) {
	p.Name = in.Name
	p.ShortDescription = in.ShortDescription
	p.Description = in.Description
	p.RegularPrice = *in.RegularPrice
	p.SalePrice = *in.SalePrice
	p.SKU = in.SKU
	p.StockStatus = in.StockStatus
	p.Featured = *in.Featured
	p.Quantity = *in.Quantity
	p.CategoryID = in.CategoryID
	p.BrandID = in.BrandID
}

// storeImage writes the primary thumbnail as <ts>.<ext>. The caller supplies
// the timestamp so the primary image and the gallery of one save share a
// single prefix.
func (s *ProductService) storeImage(image Upload, ts int64) (string, error) {
	if verr := image.validate("image"); verr != nil {
		return "", verr
	}

	name := fmt.Sprintf("%d.%s", ts, image.Ext())
	if err := s.media.Put(ProductDir, name, image.Data, ProductThumbBox); err != nil {
		return "", err
	}

	metrics.RecordUpload("product", len(image.Data))
	return name, nil
}

// storeGallery processes gallery uploads in submission order. Files with a
// disallowed extension are skipped silently, and skipped files do not consume
// an ordinal: stored names are <ts>-1, <ts>-2, ... dense over accepted files.
// A decode failure likewise skips just that file.
func (s *ProductService) storeGallery(gallery []Upload, ts int64) []string {
	if len(gallery) == 0 {
		return nil
	}

	var names []string

	for _, g := range gallery {
		if !allowedExt[g.Ext()] {
			continue
		}

		name := fmt.Sprintf("%d-%d.%s", ts, len(names)+1, g.Ext())
		if err := s.media.Put(ProductDir, name, g.Data, ProductThumbBox); err != nil {
			logger.Warn("media: gallery file skipped", "file", g.Name, "error", err)
			continue
		}

		metrics.RecordUpload("product", len(g.Data))
		names = append(names, name)
	}

	return names
}
