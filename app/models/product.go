package models

import (
	"strings"
	"time"
)

// Stock status values for Product.StockStatus.
const (
	StockInStock    = "instock"
	StockOutOfStock = "outofstock"
)

// galleryDelimiter joins gallery filenames into the Images column. Stored
// filenames are timestamp-generated and can never contain it; SetGallery
// still guards against it for safety.
const galleryDelimiter = ","

// Product is a catalog product. Image is the primary thumbnail filename;
// Images is the ordered gallery, persisted as a comma-joined string.
type Product struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Name             string  `gorm:"size:255;not null" json:"name"`
	Slug             string  `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	ShortDescription string  `gorm:"type:text" json:"short_description"`
	Description      string  `gorm:"type:text" json:"description"`
	RegularPrice     float64 `gorm:"not null;default:0" json:"regular_price"`
	SalePrice        float64 `gorm:"not null;default:0" json:"sale_price"`
	SKU              string  `gorm:"size:100" json:"sku"`
	StockStatus      string  `gorm:"size:20;not null;default:instock" json:"stock_status"`
	Featured         bool    `gorm:"not null;default:false" json:"featured"`
	Quantity         int     `gorm:"not null;default:0" json:"quantity"`
	Image            string  `gorm:"size:255" json:"image"`
	Images           string  `gorm:"type:text" json:"images"`
	CategoryID       uint    `gorm:"not null;index" json:"category_id"`
	BrandID          uint    `gorm:"not null;index" json:"brand_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// GalleryList returns the gallery filenames in stored order.
func (p *Product) GalleryList() []string {
	if p.Images == "" {
		return nil
	}
	return strings.Split(p.Images, galleryDelimiter)
}

// SetGallery stores the filenames as the product's gallery. Names containing
// the delimiter are dropped rather than corrupting the joined column.
func (p *Product) SetGallery(names []string) {
	kept := names[:0:0]
	for _, n := range names {
		if n == "" || strings.Contains(n, galleryDelimiter) {
			continue
		}
		kept = append(kept, n)
	}
	p.Images = strings.Join(kept, galleryDelimiter)
}
