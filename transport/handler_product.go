package transport

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	"github.com/muhammadheryan/marketplace/utils/errors"
)

// ListProducts handler
// @Summary List active products
// @Description Newest first, filtered and paginated
// @Tags Products
// @Produce json
// @Param category_id query int false "Category ID"
// @Param subcategory_id query int false "Subcategory ID"
// @Param search query string false "Substring of title or description"
// @Param location_city query string false "City"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param condition_state query string false "new, like_new, good, fair, for_parts"
// @Param page query int false "Page, default 1"
// @Param limit query int false "Page size, default 20, max 100"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Router /api/products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, page, limit, err := parseProductQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.ProductApp.ListProducts(r.Context(), filter, page, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Data: res.Items, Pagination: &res.Pagination})
}

// GetProduct handler
// @Summary Get product
// @Description Product detail with images; every call counts as a view
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Response
// @Failure 404 {object} model.Response
// @Router /api/products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	product, err := s.ProductApp.GetProduct(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Data: product})
}

// CreateProduct handler
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateProductRequest true "Product"
// @Success 201 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 401 {object} model.Response
// @Router /api/products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.ProductApp.CreateProduct(r.Context(), callerID(r), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.Response{Message: "Product created successfully", Data: res})
}

// UpdateProduct handler
// @Summary Update own product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body model.UpdateProductRequest true "Fields to change"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 404 {object} model.Response
// @Router /api/products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req model.UpdateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.ProductApp.UpdateProduct(r.Context(), id, callerID(r), &req); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Message: "Product updated successfully"})
}

// DeleteProduct handler
// @Summary Delete own product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} model.Response
// @Failure 404 {object} model.Response
// @Router /api/products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.ProductApp.DeleteProduct(r.Context(), id, callerID(r)); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Message: "Product deleted successfully"})
}

// MyProducts handler
// @Summary List own products
// @Description Every status, newest first
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Response
// @Failure 401 {object} model.Response
// @Router /api/products/user/my-products [get]
func (s *RestHandler) MyProducts(w http.ResponseWriter, r *http.Request) {
	items, err := s.ProductApp.ListMyProducts(r.Context(), callerID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if items == nil {
		items = []model.ProductListItem{}
	}

	writeSuccess(w, http.StatusOK, model.Response{Data: items})
}

// MarkGiven handler
// @Summary Mark own product as given
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body model.MarkGivenRequest true "Recipient"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 404 {object} model.Response
// @Router /api/products/{id}/mark-given [post]
func (s *RestHandler) MarkGiven(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req model.MarkGivenRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.ProductApp.MarkGiven(r.Context(), id, callerID(r), &req); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Message: "Product marked as given successfully"})
}

func parseProductQuery(q url.Values) (*model.ProductFilter, int, int, error) {
	filter := &model.ProductFilter{
		Search:         q.Get("search"),
		LocationCity:   q.Get("location_city"),
		ConditionState: constant.ConditionState(q.Get("condition_state")),
	}

	var err error
	if filter.CategoryID, err = queryUint(q, "category_id"); err != nil {
		return nil, 0, 0, err
	}
	if filter.SubcategoryID, err = queryUint(q, "subcategory_id"); err != nil {
		return nil, 0, 0, err
	}
	if filter.MinPrice, err = queryFloat(q, "min_price"); err != nil {
		return nil, 0, 0, err
	}
	if filter.MaxPrice, err = queryFloat(q, "max_price"); err != nil {
		return nil, 0, 0, err
	}

	page, err := queryInt(q, "page")
	if err != nil {
		return nil, 0, 0, err
	}
	limit, err := queryInt(q, "limit")
	if err != nil {
		return nil, 0, 0, err
	}
	return filter, page, limit, nil
}

func invalidParam(name string) error {
	return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Invalid " + name)
}

func queryUint(q url.Values, name string) (uint64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, invalidParam(name)
	}
	return v, nil
}

func queryInt(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam(name)
	}
	return v, nil
}

func queryFloat(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, invalidParam(name)
	}
	return &v, nil
}
