package controllers

import (
	"net/http"

	"github.com/veyralabs/veyra/app/resources"
	"github.com/veyralabs/veyra/app/services"
	"github.com/veyralabs/veyra/pkg/ctx"
	"github.com/veyralabs/veyra/pkg/resource"
)

// BrandController serves the brand screens of the admin.
type BrandController struct {
	service *services.BrandService
}

func NewBrandController() *BrandController {
	return &BrandController{service: services.NewBrandService()}
}

func NewBrandControllerWith(s *services.BrandService) *BrandController {
	return &BrandController{service: s}
}

// Index lists brands, 10 per page, in ascending id order.
func (ct *BrandController) Index(c *ctx.Context) {
	brands, pg, err := ct.service.List(c.QueryInt("page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resource.List(c.W, resource.Transform(brands, resources.Brand), pg)
}

// Show returns one brand for the edit form.
func (ct *BrandController) Show(c *ctx.Context) {
	brand, err := ct.service.Get(c.ParamUint("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resource.One(c.W, resources.Brand(brand))
}

// Store creates a brand from the submitted form.
func (ct *BrandController) Store(c *ctx.Context) {
	var in services.BrandInput
	errs, err := c.BindForm(&in)
	if err != nil {
		c.Error(http.StatusBadRequest, "Malformed form submission")
		return
	}
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	image, err := readUpload(c, c.FormFile("image"))
	if err != nil {
		c.Error(http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	if _, err := ct.service.Create(in, image); err != nil {
		respondServiceError(c, err)
		return
	}
	flashAndRedirect(c, "Brand has been added successfully!", "admin.brands")
}

// Update replaces a brand from the submitted form.
func (ct *BrandController) Update(c *ctx.Context) {
	var in services.BrandInput
	errs, err := c.BindForm(&in)
	if err != nil {
		c.Error(http.StatusBadRequest, "Malformed form submission")
		return
	}
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	image, err := readUpload(c, c.FormFile("image"))
	if err != nil {
		c.Error(http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	if _, err := ct.service.Update(c.ParamUint("id"), in, image); err != nil {
		respondServiceError(c, err)
		return
	}
	flashAndRedirect(c, "Brand has been updated successfully!", "admin.brands")
}

// Destroy deletes the brand and its thumbnail file.
func (ct *BrandController) Destroy(c *ctx.Context) {
	if err := ct.service.Delete(c.ParamUint("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	flashAndRedirect(c, "Brand has been deleted successfully!", "admin.brands")
}
