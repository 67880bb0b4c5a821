package main

import (
	"net/http"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/service"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlaceOrderRequest struct {
	CartLineIDs    []string `json:"cart_line_ids" validate:"required,min=1"`
	AddressID      string   `json:"address_id" validate:"required"`
	PaymentID      string   `json:"payment_id"`
	PaymentStatus  string   `json:"payment_status"`
	CustomImageURL string   `json:"custom_image_url"`
}

type UpdateTrackingRequest struct {
	Status    string `json:"status" validate:"required"`
	UpdatedBy string `json:"updated_by" validate:"required"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// placeOrderHandler godoc
//
//	@Summary		Place order
//	@Description	Converts cart lines into orders, one order per line
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string				true	"User ID"
//	@Param			request		body		PlaceOrderRequest	true	"Checkout"
//	@Success		201			{array}		domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/orders [post]
func (app *application) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	lineIDs := make([]primitive.ObjectID, 0, len(req.CartLineIDs))
	for _, raw := range req.CartLineIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		lineIDs = append(lineIDs, id)
	}

	addressID, err := primitive.ObjectIDFromHex(req.AddressID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	orders, err := app.orderService.PlaceOrder(r.Context(), getUserID(r), service.PlaceOrderInput{
		CartLineIDs:    lineIDs,
		AddressID:      addressID,
		PaymentID:      req.PaymentID,
		PaymentStatus:  req.PaymentStatus,
		CustomImageURL: req.CustomImageURL,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOrdersHandler godoc
//
//	@Summary		List own orders
//	@Tags			orders
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"User ID"
//	@Success		200			{array}		domain.Order
//	@Router			/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := app.orderService.ListOrders(r.Context(), getUserID(r))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listAllOrdersHandler godoc
//
//	@Summary		List all orders
//	@Description	Admin-facing listing of every non-deleted order
//	@Tags			orders
//	@Produce		json
//	@Success		200	{array}	domain.Order
//	@Router			/orders/all [get]
func (app *application) listAllOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := app.orderService.ListAllOrders(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// orderStatsHandler godoc
//
//	@Summary		Order statistics
//	@Tags			orders
//	@Produce		json
//	@Success		200	{object}	domain.OrderStats
//	@Router			/orders/stats [get]
func (app *application) orderStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.orderService.Stats(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateTrackingHandler godoc
//
//	@Summary		Update order tracking status
//	@Description	Moves the order forward along Pending, Processing, Shipped, Delivered
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string					true	"Order ID"
//	@Param			request		body		UpdateTrackingRequest	true	"New status"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/orders/{order_id}/tracking [put]
func (app *application) updateTrackingHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateTrackingRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderService.UpdateTracking(r.Context(), orderID, domain.TrackingStatus(req.Status), req.UpdatedBy)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// cancelOrderHandler godoc
//
//	@Summary		Cancel order
//	@Description	Cancels one of the caller's own pending or processing orders
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string				true	"User ID"
//	@Param			order_id	path		string				true	"Order ID"
//	@Param			request		body		CancelOrderRequest	true	"Reason"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/orders/{order_id}/cancel [post]
func (app *application) cancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req CancelOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderService.CancelOrder(r.Context(), orderID, getUserID(r), req.Reason)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteOrderHandler godoc
//
//	@Summary		Soft delete order
//	@Description	Hides the order from listings; the document is retained
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path	string	true	"Order ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Failure		409	{object}	map[string]string
//	@Router			/orders/{order_id} [delete]
func (app *application) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.orderService.DeleteOrder(r.Context(), orderID); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
