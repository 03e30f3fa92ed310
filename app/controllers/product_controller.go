package controllers

import (
	"net/http"

	"github.com/siddhant14g/Real-shop/app/services"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/response"
	"github.com/siddhant14g/Real-shop/pkg/validate"
)

type ProductController struct {
	svc *services.ProductService
}

func NewProductController(svc *services.ProductService) *ProductController {
	return &ProductController{svc: svc}
}

// List handles GET /products.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.svc.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, products)
}

// Search handles GET /products/search?name=.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	products, err := c.svc.Search(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, products)
}

// Create handles POST /products. Multipart: name, description, image file.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	admin, err := callerID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.FromError(w, apperr.Validation("Invalid multipart payload"))
		return
	}

	in := services.CreateProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.FromError(w, apperr.Validation("Product image is required"))
		return
	}
	defer file.Close()

	p, err := c.svc.Create(r.Context(), in, admin, header.Filename, file)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.CreatedMessage(w, "Product created", p)
}

// Toggle handles PUT /products/{id}/toggle.
func (c *ProductController) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	p, err := c.svc.ToggleAvailability(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SuccessMessage(w, "Product availability updated", p)
}

// Delete handles DELETE /products/{id}.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.SuccessMessage(w, "Product deleted", nil)
}
