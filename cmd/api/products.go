package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/service"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidID = errors.New("invalid ID format")

type AttributeOptionRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Stock *int64  `json:"stock" validate:"omitempty,gte=0"`
	Unit  string  `json:"unit"`
}

type AttributeGroupRequest struct {
	Name    string                   `json:"name" validate:"required"`
	Options []AttributeOptionRequest `json:"options" validate:"required,min=1,dive"`
}

type DetailEntryRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type CreateProductRequest struct {
	Name            string                  `json:"name" validate:"required"`
	Description     string                  `json:"description"`
	Images          []string                `json:"image"`
	AttributeGroups []AttributeGroupRequest `json:"attributes" validate:"dive"`
	MoreDetails     []DetailEntryRequest    `json:"more_details" validate:"dive"`
	Publish         bool                    `json:"publish"`
	ComboOffer      bool                    `json:"combo_offer"`
}

type UpdateProductRequest struct {
	Name            *string                 `json:"name"`
	Description     *string                 `json:"description"`
	Images          []string                `json:"image"`
	AttributeGroups []AttributeGroupRequest `json:"attributes" validate:"omitempty,dive"`
	MoreDetails     []DetailEntryRequest    `json:"more_details" validate:"omitempty,dive"`
	Publish         *bool                   `json:"publish"`
	ComboOffer      *bool                   `json:"combo_offer"`
}

type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int64            `json:"page"`
	Limit    int64            `json:"limit"`
}

func toAttributeGroups(reqs []AttributeGroupRequest) []domain.AttributeGroup {
	if reqs == nil {
		return nil
	}
	groups := make([]domain.AttributeGroup, 0, len(reqs))
	for _, g := range reqs {
		options := make([]domain.AttributeOption, 0, len(g.Options))
		for _, o := range g.Options {
			options = append(options, domain.AttributeOption{
				Name:  o.Name,
				Price: o.Price,
				Stock: o.Stock,
				Unit:  o.Unit,
			})
		}
		groups = append(groups, domain.AttributeGroup{Name: g.Name, Options: options})
	}
	return groups
}

func toDetailEntries(reqs []DetailEntryRequest) []domain.DetailEntry {
	if reqs == nil {
		return nil
	}
	details := make([]domain.DetailEntry, 0, len(reqs))
	for _, d := range reqs {
		details = append(details, domain.DetailEntry{Key: d.Key, Value: d.Value})
	}
	return details
}

func productIDParam(r *http.Request) (primitive.ObjectID, error) {
	raw := chi.URLParam(r, "product_id")
	if raw == "" {
		return primitive.NilObjectID, ErrInvalidID
	}
	return primitive.ObjectIDFromHex(raw)
}

// createProductHandler godoc
//
//	@Summary		Create product
//	@Description	Creates a product with its attribute groups
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProductRequest	true	"Product"
//	@Success		201		{object}	domain.Product
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/products [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product := &domain.Product{
		Name:            req.Name,
		Description:     req.Description,
		Images:          req.Images,
		AttributeGroups: toAttributeGroups(req.AttributeGroups),
		MoreDetails:     toDetailEntries(req.MoreDetails),
		Publish:         req.Publish,
		ComboOffer:      req.ComboOffer,
	}

	if err := app.productService.CreateProduct(r.Context(), product); err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProductHandler godoc
//
//	@Summary		Get product
//	@Tags			products
//	@Produce		json
//	@Param			product_id	path		string	true	"Product ID"
//	@Success		200			{object}	domain.Product
//	@Failure		404			{object}	map[string]string
//	@Router			/products/{product_id} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	product, err := app.productService.GetProduct(r.Context(), productID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	Paginated product listing with optional text search
//	@Tags			products
//	@Produce		json
//	@Param			search	query		string	false	"Text search"
//	@Param			page	query		int		false	"Page (1-based)"
//	@Param			limit	query		int		false	"Page size"
//	@Success		200		{object}	ListProductsResponse
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)

	products, total, err := app.productService.ListProducts(r.Context(), filter)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	response := ListProductsResponse{
		Products: products,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listComboOffersHandler godoc
//
//	@Summary		List combo offer products
//	@Tags			products
//	@Produce		json
//	@Param			page	query		int	false	"Page (1-based)"
//	@Param			limit	query		int	false	"Page size"
//	@Success		200		{object}	ListProductsResponse
//	@Router			/products/combo-offers [get]
func (app *application) listComboOffersHandler(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)
	combo := true
	filter.ComboOffer = &combo

	products, total, err := app.productService.ListProducts(r.Context(), filter)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	response := ListProductsResponse{
		Products: products,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func parseListFilter(r *http.Request) repo.ListProductsFilter {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return repo.ListProductsFilter{
		Search: q.Get("search"),
		Page:   page,
		Limit:  limit,
	}
}

// updateProductHandler godoc
//
//	@Summary		Update product
//	@Description	Partial update; omitted fields are left untouched
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product_id	path		string					true	"Product ID"
//	@Param			request		body		UpdateProductRequest	true	"Fields to update"
//	@Success		200			{object}	domain.Product
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/products/{product_id} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateProductRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input := service.UpdateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Images:          req.Images,
		AttributeGroups: toAttributeGroups(req.AttributeGroups),
		MoreDetails:     toDetailEntries(req.MoreDetails),
		Publish:         req.Publish,
		ComboOffer:      req.ComboOffer,
	}

	product, err := app.productService.UpdateProduct(r.Context(), productID, input)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteProductHandler godoc
//
//	@Summary		Delete product
//	@Tags			products
//	@Produce		json
//	@Param			product_id	path	string	true	"Product ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Router			/products/{product_id} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.productService.DeleteProduct(r.Context(), productID); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type ResolveSelectionRequest struct {
	Selection map[string]string `json:"selection"`
}

// resolveSelectionHandler godoc
//
//	@Summary		Resolve a selection to price, stock and unit
//	@Description	Computes the effective price, stock and unit for a partial or full attribute selection
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product_id	path		string					true	"Product ID"
//	@Param			request		body		ResolveSelectionRequest	true	"Attribute selection"
//	@Success		200			{object}	catalog.Resolution
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/products/{product_id}/resolve [post]
func (app *application) resolveSelectionHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req ResolveSelectionRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	resolution, err := app.productService.ResolveSelection(r.Context(), productID, req.Selection)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, resolution); err != nil {
		app.internalServerError(w, r, err)
	}
}

type AddAttributeGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// addAttributeGroupHandler godoc
//
//	@Summary		Add attribute group
//	@Tags			attributes
//	@Accept			json
//	@Produce		json
//	@Param			product_id	path		string						true	"Product ID"
//	@Param			request		body		AddAttributeGroupRequest	true	"Group"
//	@Success		200			{object}	domain.Product
//	@Failure		400			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/products/{product_id}/attributes [post]
func (app *application) addAttributeGroupHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req AddAttributeGroupRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.productService.AddAttributeGroup(r.Context(), productID, req.Name)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeAttributeGroupHandler godoc
//
//	@Summary		Remove attribute group
//	@Tags			attributes
//	@Produce		json
//	@Param			product_id	path		string	true	"Product ID"
//	@Param			group_name	path		string	true	"Group name"
//	@Success		200			{object}	domain.Product
//	@Failure		404			{object}	map[string]string
//	@Router			/products/{product_id}/attributes/{group_name} [delete]
func (app *application) removeAttributeGroupHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	groupName := chi.URLParam(r, "group_name")

	product, err := app.productService.RemoveAttributeGroup(r.Context(), productID, groupName)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addAttributeOptionHandler godoc
//
//	@Summary		Add attribute option
//	@Tags			attributes
//	@Accept			json
//	@Produce		json
//	@Param			product_id	path		string					true	"Product ID"
//	@Param			group_name	path		string					true	"Group name"
//	@Param			request		body		AttributeOptionRequest	true	"Option"
//	@Success		200			{object}	domain.Product
//	@Failure		400			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/products/{product_id}/attributes/{group_name}/options [post]
func (app *application) addAttributeOptionHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	groupName := chi.URLParam(r, "group_name")

	var req AttributeOptionRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	opt := domain.AttributeOption{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
		Unit:  req.Unit,
	}

	product, err := app.productService.AddAttributeOption(r.Context(), productID, groupName, opt)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeAttributeOptionHandler godoc
//
//	@Summary		Remove attribute option
//	@Tags			attributes
//	@Produce		json
//	@Param			product_id	path		string	true	"Product ID"
//	@Param			group_name	path		string	true	"Group name"
//	@Param			option_name	path		string	true	"Option name"
//	@Success		200			{object}	domain.Product
//	@Failure		404			{object}	map[string]string
//	@Router			/products/{product_id}/attributes/{group_name}/options/{option_name} [delete]
func (app *application) removeAttributeOptionHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	groupName := chi.URLParam(r, "group_name")
	optionName := chi.URLParam(r, "option_name")

	product, err := app.productService.RemoveAttributeOption(r.Context(), productID, groupName, optionName)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateDetailsRequest struct {
	MoreDetails []DetailEntryRequest `json:"more_details" validate:"dive"`
}

// updateDetailsHandler godoc
//
//	@Summary		Replace product details
//	@Description	Replaces the ordered key/value detail list wholesale
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product_id	path		string					true	"Product ID"
//	@Param			request		body		UpdateDetailsRequest	true	"Details"
//	@Success		200			{object}	domain.Product
//	@Failure		400			{object}	map[string]string
//	@Router			/products/{product_id}/details [patch]
func (app *application) updateDetailsHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateDetailsRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.productService.UpdateMoreDetails(r.Context(), productID, toDetailEntries(req.MoreDetails))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}
