package main

import (
	"net/http"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/service"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AddCartLineRequest struct {
	ProductID string                   `json:"product_id" validate:"required"`
	Selection []service.SelectionInput `json:"selection" validate:"dive"`
}

type UpdateCartLineRequest struct {
	Quantity int64 `json:"quantity" validate:"gte=0"`
}

func cartLineIDParam(r *http.Request) (primitive.ObjectID, error) {
	raw := chi.URLParam(r, "line_id")
	if raw == "" {
		return primitive.NilObjectID, ErrInvalidID
	}
	return primitive.ObjectIDFromHex(raw)
}

// addCartLineHandler godoc
//
//	@Summary		Add cart line
//	@Description	Adds a product with a specific attribute selection, quantity 1
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string				true	"User ID"
//	@Param			request		body		AddCartLineRequest	true	"Line"
//	@Success		201			{object}	domain.CartLine
//	@Failure		400			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/cart [post]
func (app *application) addCartLineHandler(w http.ResponseWriter, r *http.Request) {
	var req AddCartLineRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	line, err := app.cartService.AddLine(r.Context(), getUserID(r), productID, req.Selection)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, line); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCartHandler godoc
//
//	@Summary		List cart lines
//	@Tags			cart
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"User ID"
//	@Success		200			{array}		domain.CartLine
//	@Router			/cart [get]
func (app *application) listCartHandler(w http.ResponseWriter, r *http.Request) {
	lines, err := app.cartService.ListLines(r.Context(), getUserID(r))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, lines); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateCartLineHandler godoc
//
//	@Summary		Set cart line quantity
//	@Description	Sets the quantity; zero removes the line
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string					true	"User ID"
//	@Param			line_id		path		string					true	"Line ID"
//	@Param			request		body		UpdateCartLineRequest	true	"Quantity"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Router			/cart/{line_id} [patch]
func (app *application) updateCartLineHandler(w http.ResponseWriter, r *http.Request) {
	lineID, err := cartLineIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateCartLineRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.cartService.UpdateQuantity(r.Context(), getUserID(r), lineID, req.Quantity); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// incrementCartLineHandler godoc
//
//	@Summary		Increment cart line quantity
//	@Tags			cart
//	@Produce		json
//	@Param			X-User-ID	header	string	true	"User ID"
//	@Param			line_id		path	string	true	"Line ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Router			/cart/{line_id}/increment [post]
func (app *application) incrementCartLineHandler(w http.ResponseWriter, r *http.Request) {
	lineID, err := cartLineIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.cartService.IncrementLine(r.Context(), getUserID(r), lineID); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decrementCartLineHandler godoc
//
//	@Summary		Decrement cart line quantity
//	@Description	Decrements the quantity; falling below one removes the line
//	@Tags			cart
//	@Produce		json
//	@Param			X-User-ID	header	string	true	"User ID"
//	@Param			line_id		path	string	true	"Line ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Router			/cart/{line_id}/decrement [post]
func (app *application) decrementCartLineHandler(w http.ResponseWriter, r *http.Request) {
	lineID, err := cartLineIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.cartService.DecrementLine(r.Context(), getUserID(r), lineID); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removeCartLineHandler godoc
//
//	@Summary		Remove cart line
//	@Tags			cart
//	@Produce		json
//	@Param			X-User-ID	header	string	true	"User ID"
//	@Param			line_id		path	string	true	"Line ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Router			/cart/{line_id} [delete]
func (app *application) removeCartLineHandler(w http.ResponseWriter, r *http.Request) {
	lineID, err := cartLineIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.cartService.RemoveLine(r.Context(), getUserID(r), lineID); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
