package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyralabs/veyra/app/controllers"
	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/app/repositories"
	"github.com/veyralabs/veyra/app/services"
	"github.com/veyralabs/veyra/pkg/ctx"
	"github.com/veyralabs/veyra/pkg/orm"
	"github.com/veyralabs/veyra/pkg/router"
	"github.com/veyralabs/veyra/pkg/testkit"
)

func newProductRouter(t *testing.T) (*router.Router, *services.ProductService) {
	t.Helper()
	db := testkit.NewDB(t, &models.Brand{}, &models.Category{}, &models.Product{})
	require.NoError(t, db.Create(&models.Brand{Name: "Acme", Slug: "acme"}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Shoes", Slug: "shoes"}).Error)

	svc := services.NewProductServiceWith(
		repositories.NewProductRepositoryWith(orm.New(db)),
		services.NewMediaStoreWith(testkit.TempDisk(t)),
	)

	ct := controllers.NewProductControllerWith(svc)
	r := router.New()
	r.Get("/admin/products", "admin.products", ctx.Wrap(ct.Index))
	r.Post("/admin/products", "admin.product.store", ctx.Wrap(ct.Store))
	r.Get("/admin/products/{id}", "admin.product.show", ctx.Wrap(ct.Show))
	r.Put("/admin/products/{id}", "admin.product.update", ctx.Wrap(ct.Update))
	r.Delete("/admin/products/{id}", "admin.product.destroy", ctx.Wrap(ct.Destroy))
	return r, svc
}

// productForm fills in every mandatory field; tests override what they probe.
func productForm(t *testing.T) *testkit.FormBuilder {
	return testkit.NewForm(t).
		Field("name", "Trail Runner").
		Field("slug", "x").
		Field("short_description", "Light trail shoe").
		Field("description", "A long description.").
		Field("regular_price", "0").
		Field("sale_price", "0").
		Field("sku", "TR-001").
		Field("stock_status", "instock").
		Field("featured", "0").
		Field("quantity", "0").
		Field("category_id", "1").
		Field("brand_id", "1").
		File("image", "main.jpg", testkit.JPEG(t, 600, 600))
}

func TestProductController_StoreAcceptsZeroPricesAndQuantity(t *testing.T) {
	r, svc := newProductRouter(t)

	rec := testkit.Do(r.Handler(), productForm(t).Request(http.MethodPost, "/admin/products"))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/products", rec.Header().Get("Location"))

	products, _, err := svc.List(1)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "trail-runner", products[0].Slug)
	assert.Zero(t, products[0].RegularPrice)
	assert.Zero(t, products[0].Quantity)
	assert.False(t, products[0].Featured)
}

func TestProductController_StoreMissingPriceFields(t *testing.T) {
	r, svc := newProductRouter(t)

	req := testkit.NewForm(t).
		Field("name", "Trail Runner").
		Field("slug", "x").
		Field("short_description", "Light trail shoe").
		Field("description", "A long description.").
		Field("sku", "TR-001").
		Field("stock_status", "instock").
		Field("category_id", "1").
		Field("brand_id", "1").
		File("image", "main.jpg", testkit.JPEG(t, 600, 600)).
		Request(http.MethodPost, "/admin/products")

	rec := testkit.Do(r.Handler(), req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The regular_price field is required.", body.Errors["regular_price"])
	assert.Equal(t, "The sale_price field is required.", body.Errors["sale_price"])
	assert.Equal(t, "The quantity field is required.", body.Errors["quantity"])
	assert.Equal(t, "The featured field is required.", body.Errors["featured"])

	products, _, err := svc.List(1)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductController_StoreMalformedPrice(t *testing.T) {
	r, _ := newProductRouter(t)

	req := testkit.NewForm(t).
		Field("name", "Trail Runner").
		Field("slug", "x").
		Field("short_description", "Light trail shoe").
		Field("description", "A long description.").
		Field("regular_price", "not-a-number").
		Field("sale_price", "0").
		Field("sku", "TR-001").
		Field("stock_status", "instock").
		Field("featured", "0").
		Field("quantity", "0").
		Field("category_id", "1").
		Field("brand_id", "1").
		File("image", "main.jpg", testkit.JPEG(t, 600, 600)).
		Request(http.MethodPost, "/admin/products")

	rec := testkit.Do(r.Handler(), req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The regular_price field must be a number.", body.Errors["regular_price"])
}
