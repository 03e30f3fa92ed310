package controllers

import (
	"io"
	"net/http"

	"github.com/siddhant14g/Real-shop/app/services"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/bind"
	"github.com/siddhant14g/Real-shop/pkg/response"
	"github.com/siddhant14g/Real-shop/pkg/storage"
)

// BillSaver stores an uploaded bill image, returning its canonical URL.
type BillSaver func(originalName string, r io.Reader) (string, error)

type OrderController struct {
	svc      *services.OrderService
	saveBill BillSaver
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{
		svc: svc,
		saveBill: func(name string, r io.Reader) (string, error) {
			return storage.SaveImage(storage.Default(), storage.BillFolder, name, r)
		},
	}
}

// WithBillSaver overrides bill image storage, used by tests.
func (c *OrderController) WithBillSaver(fn BillSaver) *OrderController {
	c.saveBill = fn
	return c
}

type orderItemsRequest struct {
	Items []services.OrderItemInput `json:"items"`
}

// Place handles POST /orders.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req orderItemsRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	o, err := c.svc.Place(r.Context(), caller, req.Items)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.CreatedMessage(w, "Order placed successfully", o)
}

// MyOrders handles GET /orders/my-orders.
func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	views, err := c.svc.MyOrders(r.Context(), caller)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, views)
}

// All handles GET /orders (admin).
func (c *OrderController) All(w http.ResponseWriter, r *http.Request) {
	views, err := c.svc.AllOrders(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, views)
}

// Update handles PUT /orders/{id}.
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req orderItemsRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	o, err := c.svc.UpdateItems(r.Context(), id, caller, req.Items)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SuccessMessage(w, "Order updated successfully", o)
}

// Delete handles DELETE /orders/{id}.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := c.svc.Cancel(r.Context(), id, caller); err != nil {
		response.FromError(w, err)
		return
	}
	response.SuccessMessage(w, "Order deleted successfully", nil)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,in=Pending,Completed"`
}

// UpdateStatus handles PUT /orders/{id}/status (admin).
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req statusRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	o, err := c.svc.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SuccessMessage(w, "Order status updated", o)
}

// UploadBill handles POST /orders/{id}/bill (admin). Multipart: billImage.
func (c *OrderController) UploadBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.FromError(w, apperr.Validation("Invalid multipart payload"))
		return
	}

	file, header, err := r.FormFile("billImage")
	if err != nil {
		response.FromError(w, apperr.Validation("No image uploaded"))
		return
	}
	defer file.Close()

	url, err := c.saveBill(header.Filename, file)
	if err != nil {
		response.FromError(w, err)
		return
	}

	o, err := c.svc.AttachBill(r.Context(), id, url)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SuccessMessage(w, "Bill image uploaded", o)
}
