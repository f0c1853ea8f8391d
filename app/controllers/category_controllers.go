package controllers

import (
	"net/http"

	"github.com/veyralabs/veyra/app/resources"
	"github.com/veyralabs/veyra/app/services"
	"github.com/veyralabs/veyra/pkg/ctx"
	"github.com/veyralabs/veyra/pkg/resource"
)

// CategoryController serves the category screens of the admin.
type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController() *CategoryController {
	return &CategoryController{service: services.NewCategoryService()}
}

func NewCategoryControllerWith(s *services.CategoryService) *CategoryController {
	return &CategoryController{service: s}
}

// Index lists categories, 10 per page, in ascending id order.
func (ct *CategoryController) Index(c *ctx.Context) {
	categories, pg, err := ct.service.List(c.QueryInt("page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resource.List(c.W, resource.Transform(categories, resources.Category), pg)
}

// Show returns one category for the edit form.
func (ct *CategoryController) Show(c *ctx.Context) {
	category, err := ct.service.Get(c.ParamUint("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resource.One(c.W, resources.Category(category))
}

// Store creates a category from the submitted form.
func (ct *CategoryController) Store(c *ctx.Context) {
	var in services.CategoryInput
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
	flashAndRedirect(c, "Category has been added successfully!", "admin.categories")
}

// Update replaces a category from the submitted form.
func (ct *CategoryController) Update(c *ctx.Context) {
	var in services.CategoryInput
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
	flashAndRedirect(c, "Category has been updated successfully!", "admin.categories")
}

// Destroy deletes the category and its thumbnail file.
func (ct *CategoryController) Destroy(c *ctx.Context) {
	if err := ct.service.Delete(c.ParamUint("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	flashAndRedirect(c, "Category has been deleted successfully!", "admin.categories")
}
