package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/marketplace/model"
)

// ListCategories handler
// @Summary List categories
// @Description Active categories ordered by display order, with their subcategories
// @Tags Categories
// @Produce json
// @Success 200 {object} model.Response
// @Router /api/categories [get]
func (s *RestHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.CategoryApp.ListCategories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Data: categories})
}

// GetCategory handler
// @Summary Get category by slug
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} model.Response
// @Failure 404 {object} model.Response
// @Router /api/categories/{slug} [get]
func (s *RestHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.CategoryApp.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Data: category})
}

// ListSubcategories handler
// @Summary List subcategories of a category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} model.Response
// @Router /api/categories/{id}/subcategories [get]
func (s *RestHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	subcategories, err := s.CategoryApp.ListSubcategories(r.Context(), categoryID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Data: subcategories})
}

// CreateCategory handler
// @Summary Create category
// @Tags Internal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateCategoryRequest true "Category"
// @Success 201 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 409 {object} model.Response
// @Router /internal/v1/categories [post]
func (s *RestHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	category, err := s.CategoryApp.CreateCategory(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.Response{Message: "Category created successfully", Data: category})
}

// CreateSubcategory handler
// @Summary Create subcategory
// @Tags Internal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body model.CreateSubcategoryRequest true "Subcategory"
// @Success 201 {object} model.Response
// @Failure 404 {object} model.Response
// @Router /internal/v1/categories/{id}/subcategories [post]
func (s *RestHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req model.CreateSubcategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	req.CategoryID = categoryID

	subcategory, err := s.CategoryApp.CreateSubcategory(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.Response{Message: "Subcategory created successfully", Data: subcategory})
}
