package migrations

import (
	"gorm.io/gorm"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_brands_table", &CreateBrandsTable{})
	migration.Register("20260301000002_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260301000003_create_products_table", &CreateProductsTable{})
}

// -------- 0000: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0001: brands --------

type CreateBrandsTable struct{}

func (m *CreateBrandsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Brand{})
}

func (m *CreateBrandsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("brands")
}

// -------- 0002: categories --------

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

// -------- 0003: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}
