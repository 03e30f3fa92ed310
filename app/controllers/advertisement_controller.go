package controllers

import (
	"net/http"

	"github.com/siddhant14g/Real-shop/app/services"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/response"
)

type AdvertisementController struct {
	svc *services.AdvertisementService
}

func NewAdvertisementController(svc *services.AdvertisementService) *AdvertisementController {
	return &AdvertisementController{svc: svc}
}

// List handles GET /advertisements.
func (c *AdvertisementController) List(w http.ResponseWriter, r *http.Request) {
	ads, err := c.svc.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, ads)
}

// Create handles POST /advertisements. Multipart: caption, image file.
func (c *AdvertisementController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.FromError(w, apperr.Validation("Invalid multipart payload"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.FromError(w, apperr.Validation("Advertisement image is required"))
		return
	}
	defer file.Close()

	ad, err := c.svc.Create(r.Context(), r.FormValue("caption"), header.Filename, file)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.CreatedMessage(w, "Advertisement created", ad)
}

// Delete handles DELETE /advertisements/{id}.
func (c *AdvertisementController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.SuccessMessage(w, "Advertisement deleted", nil)
}
