package controllers

import (
	"net/http"

	"github.com/veyralabs/veyra/app/resources"
	"github.com/veyralabs/veyra/app/services"
	"github.com/veyralabs/veyra/pkg/ctx"
	"github.com/veyralabs/veyra/pkg/resource"
)

// ProductController serves the product screens of the admin, including the
// gallery upload field.
type ProductController struct {
	service *services.ProductService
}

func NewProductController() *ProductController {
	return &ProductController{service: services.NewProductService()}
}

func NewProductControllerWith(s *services.ProductService) *ProductController {
	return &ProductController{service: s}
}

// Index lists products, 10 per page, oldest first.
func (ct *ProductController) Index(c *ctx.Context) {
	products, pg, err := ct.service.List(c.QueryInt("page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resource.List(c.W, resource.Transform(products, resources.Product), pg)
}

// Show returns one product for the edit form.
func (ct *ProductController) Show(c *ctx.Context) {
	product, err := ct.service.Get(c.ParamUint("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resource.One(c.W, resources.Product(product))
}

// Store creates a product with its mandatory primary image and optional
// gallery files.
func (ct *ProductController) Store(c *ctx.Context) {
	in, image, gallery, ok := ct.bindForm(c)
	if !ok {
		return
	}

	if _, err := ct.service.Create(in, image, gallery); err != nil {
		respondServiceError(c, err)
		return
	}
	flashAndRedirect(c, "Product has been added successfully!", "admin.products")
}

// Update replaces a product. A submitted gallery replaces the stored set
// completely.
func (ct *ProductController) Update(c *ctx.Context) {
	in, image, gallery, ok := ct.bindForm(c)
	if !ok {
		return
	}

	if _, err := ct.service.Update(c.ParamUint("id"), in, image, gallery); err != nil {
		respondServiceError(c, err)
		return
	}
	flashAndRedirect(c, "Product has been updated successfully!", "admin.products")
}

// Destroy deletes the product, its primary image, and every gallery file.
func (ct *ProductController) Destroy(c *ctx.Context) {
	if err := ct.service.Delete(c.ParamUint("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	flashAndRedirect(c, "Product has been deleted successfully!", "admin.products")
}

// bindForm parses the product form plus its file fields. It writes the error
// response itself and reports ok=false when the request is already answered.
func (ct *ProductController) bindForm(c *ctx.Context) (in services.ProductInput, image *services.Upload, gallery []services.Upload, ok bool) {
	errs, err := c.BindForm(&in)
	if err != nil {
		c.Error(http.StatusBadRequest, "Malformed form submission")
		return
	}
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	image, err = readUpload(c, c.FormFile("image"))
	if err != nil {
		c.Error(http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	gallery, err = readUploads(c, c.FormFiles("images"))
	if err != nil {
		c.Error(http.StatusBadRequest, "Could not read uploaded gallery files")
		return
	}

	ok = true
	return
}
