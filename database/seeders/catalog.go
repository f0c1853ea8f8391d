package seeders

import (
	"gorm.io/gorm"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/app/services"
	"github.com/veyralabs/veyra/pkg/auth"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("catalog", SeedCatalog)
}

// SeedAdminUser creates the default back-office account if none exists.
// Change the password immediately on a real deployment.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:     "Admin",
		Email:    "admin@veyra.local",
		Password: hash,
		Role:     "admin",
	}).Error
}

// SeedCatalog inserts a small demo catalog for local development.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Brand{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	brands := []models.Brand{
		{Name: "Acme Audio", Slug: services.Slugify("Acme Audio")},
		{Name: "Northwind", Slug: services.Slugify("Northwind")},
	}
	if err := db.Create(&brands).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Headphones", Slug: services.Slugify("Headphones")},
		{Name: "Speakers", Slug: services.Slugify("Speakers")},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name:             "Studio Monitor Mk II",
			Slug:             services.Slugify("Studio Monitor Mk II"),
			ShortDescription: "Compact nearfield monitor.",
			Description:      "A compact nearfield studio monitor with a flat response.",
			RegularPrice:     249,
			SalePrice:        199,
			SKU:              "SM-MK2",
			StockStatus:      models.StockInStock,
			Featured:         true,
			Quantity:         40,
			CategoryID:       categories[1].ID,
			BrandID:          brands[0].ID,
		},
		{
			Name:             "Travel Buds",
			Slug:             services.Slugify("Travel Buds"),
			ShortDescription: "In-ear travel earbuds.",
			Description:      "Foldable in-ear earbuds with a charging case.",
			RegularPrice:     89,
			SalePrice:        89,
			SKU:              "TB-01",
			StockStatus:      models.StockOutOfStock,
			Featured:         false,
			Quantity:         0,
			CategoryID:       categories[0].ID,
			BrandID:          brands[1].ID,
		},
	}
	return db.Create(&products).Error
}
