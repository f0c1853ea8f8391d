// Package resources shapes catalog models into the JSON the admin client
// renders. Image fields carry both the stored filename and a resolved URL.
package resources

import (
	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/config"
	"github.com/veyralabs/veyra/pkg/collection"
	"github.com/veyralabs/veyra/pkg/resource"
)

func imageURL(dir, name string) string {
	if name == "" {
		return ""
	}
	return config.StorageURL() + "/" + dir + "/" + name
}

// Brand transforms one brand row.
func Brand(b models.Brand) resource.Map {
	return resource.Map{
		"id":         b.ID,
		"name":       b.Name,
		"slug":       b.Slug,
		"image":      b.Image,
		"image_url":  imageURL("uploads/brands", b.Image),
		"created_at": b.CreatedAt,
	}
}

// Category transforms one category row.
func Category(c models.Category) resource.Map {
	return resource.Map{
		"id":         c.ID,
		"name":       c.Name,
		"slug":       c.Slug,
		"image":      c.Image,
		"image_url":  imageURL("uploads/categories", c.Image),
		"created_at": c.CreatedAt,
	}
}

// Product transforms one product row, expanding the gallery into URLs.
func Product(p models.Product) resource.Map {
	gallery := collection.Map(p.GalleryList(), func(name string) resource.Map {
		return resource.Map{
			"image":     name,
			"image_url": imageURL("uploads/products", name),
		}
	})
	if gallery == nil {
		gallery = []resource.Map{}
	}

	out := resource.Map{
		"id":                p.ID,
		"name":              p.Name,
		"slug":              p.Slug,
		"short_description": p.ShortDescription,
		"description":       p.Description,
		"regular_price":     p.RegularPrice,
		"sale_price":        p.SalePrice,
		"sku":               p.SKU,
		"stock_status":      p.StockStatus,
		"featured":          p.Featured,
		"quantity":          p.Quantity,
		"category_id":       p.CategoryID,
		"brand_id":          p.BrandID,
		"image":             p.Image,
		"image_url":         imageURL("uploads/products", p.Image),
		"gallery":           gallery,
		"created_at":        p.CreatedAt,
	}

	if p.Category.ID != 0 {
		out["category"] = resource.Map{"id": p.Category.ID, "name": p.Category.Name}
	}
	if p.Brand.ID != 0 {
		out["brand"] = resource.Map{"id": p.Brand.ID, "name": p.Brand.Name}
	}
	return out
}
