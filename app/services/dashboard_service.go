package services

import (
	"time"

	"github.com/veyralabs/veyra/app/repositories"
	"github.com/veyralabs/veyra/pkg/cache"
)

// Stats is the admin landing-page summary.
type Stats struct {
	Brands     int64 `json:"brands"`
	Categories int64 `json:"categories"`
	Products   int64 `json:"products"`
}

const statsCacheKey = "veyra:dashboard:stats"

// DashboardService aggregates catalog counts for the admin home screen.
type DashboardService struct {
	brands     *repositories.BrandRepository
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
}

// NewDashboardService wires the service against the application database.
func NewDashboardService() *DashboardService {
	return &DashboardService{
		brands:     repositories.NewBrandRepository(),
		categories: repositories.NewCategoryRepository(),
		products:   repositories.NewProductRepository(),
	}
}

// NewDashboardServiceWith builds a service from explicit repositories.
func NewDashboardServiceWith(b *repositories.BrandRepository, c *repositories.CategoryRepository, p *repositories.ProductRepository) *DashboardService {
	return &DashboardService{brands: b, categories: c, products: p}
}

// Stats returns the entity counts, served from a short-lived cache so the
// dashboard does not hammer the database with COUNT queries.
func (s *DashboardService) Stats() (Stats, error) {
	var stats Stats
	if cache.Get(statsCacheKey, &stats) {
		return stats, nil
	}

	var err error
	if stats.Brands, err = s.brands.Count(); err != nil {
		return stats, err
	}
	if stats.Categories, err = s.categories.Count(); err != nil {
		return stats, err
	}
	if stats.Products, err = s.products.Count(); err != nil {
		return stats, err
	}

	_ = cache.Set(statsCacheKey, stats, 30*time.Second)
	return stats, nil
}
