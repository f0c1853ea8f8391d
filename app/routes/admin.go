// Package routes mounts the admin surface onto the router.
package routes

import (
	"net/http"
	"time"

	"github.com/veyralabs/veyra/app/controllers"
	"github.com/veyralabs/veyra/config"
	"github.com/veyralabs/veyra/pkg/ctx"
	"github.com/veyralabs/veyra/pkg/metrics"
	"github.com/veyralabs/veyra/pkg/middleware"
	"github.com/veyralabs/veyra/pkg/router"
	"github.com/veyralabs/veyra/pkg/ws"
)

// Register mounts every route. The feed hub is created at boot and shared
// with the event listeners.
func Register(r *router.Router, hub *ws.Hub) {
	authController := controllers.NewAuthController()
	dashboard := controllers.NewDashboardController()
	brands := controllers.NewBrandController()
	categories := controllers.NewCategoryController()
	products := controllers.NewProductController()

	r.HandleFunc("/metrics", metrics.Handler())

	// Thumbnails are public assets when stored on the local disk.
	if config.StorageDisk() == "local" {
		fs := http.StripPrefix("/uploads/",
			http.FileServer(http.Dir(config.UploadsRoot()+"/uploads")))
		r.HandleFunc("/uploads/*", fs.ServeHTTP)
	}

	api := r.Group("/api", middleware.RateLimit(60, time.Minute))
	api.Post("/login", "auth.login", ctx.Wrap(authController.Login))
	api.Post("/refresh", "auth.refresh", ctx.Wrap(authController.Refresh))

	admin := r.Group("/admin", middleware.Auth)
	admin.Get("", "admin.home", ctx.Wrap(dashboard.Index))
	admin.Get("/me", "admin.me", ctx.Wrap(authController.Me))

	admin.Get("/feed", "admin.feed", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	})

	admin.Get("/brands", "admin.brands", ctx.Wrap(brands.Index))
	admin.Post("/brands", "admin.brand.store", ctx.Wrap(brands.Store))
	admin.Get("/brands/{id}", "admin.brand.show", ctx.Wrap(brands.Show))
	admin.Put("/brands/{id}", "admin.brand.update", ctx.Wrap(brands.Update))
	admin.Delete("/brands/{id}", "admin.brand.destroy", ctx.Wrap(brands.Destroy))

	admin.Get("/categories", "admin.categories", ctx.Wrap(categories.Index))
	admin.Post("/categories", "admin.category.store", ctx.Wrap(categories.Store))
	admin.Get("/categories/{id}", "admin.category.show", ctx.Wrap(categories.Show))
	admin.Put("/categories/{id}", "admin.category.update", ctx.Wrap(categories.Update))
	admin.Delete("/categories/{id}", "admin.category.destroy", ctx.Wrap(categories.Destroy))

	admin.Get("/products", "admin.products", ctx.Wrap(products.Index))
	admin.Post("/products", "admin.product.store", ctx.Wrap(products.Store))
	admin.Get("/products/{id}", "admin.product.show", ctx.Wrap(products.Show))
	admin.Put("/products/{id}", "admin.product.update", ctx.Wrap(products.Update))
	admin.Delete("/products/{id}", "admin.product.destroy", ctx.Wrap(products.Destroy))
}
