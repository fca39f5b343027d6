package category

import (
	"context"
	"strings"

	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	categoryrepo "github.com/muhammadheryan/marketplace/repository/category"
	"github.com/muhammadheryan/marketplace/repository/sqlerr"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	"go.uber.org/zap"
)

type CategoryApp interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	ListSubcategories(ctx context.Context, categoryID uint64) ([]model.Subcategory, error)
	CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	CreateSubcategory(ctx context.Context, req *model.CreateSubcategoryRequest) (*model.Subcategory, error)
}

type categoryAppImpl struct {
	categoryRepo categoryrepo.CategoryRepository
}

func NewCategoryApp(categoryRepo categoryrepo.CategoryRepository) CategoryApp {
	return &categoryAppImpl{categoryRepo: categoryRepo}
}

// ListCategories returns the active catalogue with subcategories nested under their parents.
func (s *categoryAppImpl) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		logger.Error("[ListCategories] error categoryRepo.ListActive", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}

	subcategories, err := s.categoryRepo.ListActiveSubcategories(ctx)
	if err != nil {
		logger.Error("[ListCategories] error categoryRepo.ListActiveSubcategories", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}

	byParent := make(map[uint64][]model.Subcategory, len(categories))
	for _, sub := range subcategories {
		byParent[sub.CategoryID] = append(byParent[sub.CategoryID], sub)
	}

	for i := range categories {
		categories[i].Subcategories = byParent[categories[i].ID]
		if categories[i].Subcategories == nil {
			categories[i].Subcategories = []model.Subcategory{}
		}
	}

	return categories, nil
}

func (s *categoryAppImpl) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		logger.Error("[GetBySlug] error categoryRepo.GetBySlug", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	if category == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage("Category not found")
	}

	subcategories, err := s.categoryRepo.ListSubcategoriesByCategory(ctx, category.ID)
	if err != nil {
		logger.Error("[GetBySlug] error categoryRepo.ListSubcategoriesByCategory", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	category.Subcategories = subcategories

	return category, nil
}

// ListSubcategories returns an empty list for unknown categories.
func (s *categoryAppImpl) ListSubcategories(ctx context.Context, categoryID uint64) ([]model.Subcategory, error) {
	subcategories, err := s.categoryRepo.ListSubcategoriesByCategory(ctx, categoryID)
	if err != nil {
		logger.Error("[ListSubcategories] error categoryRepo.ListSubcategoriesByCategory", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	return subcategories, nil
}

func (s *categoryAppImpl) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	if req.Name == "" || req.Slug == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Name and slug are required")
	}

	id, err := s.categoryRepo.Create(ctx, req)
	if err != nil {
		if sqlerr.IsDuplicate(err) {
			return nil, errors.SetCustomError(constant.ErrConflict).WithMessage("Slug already exists")
		}
		logger.Error("[CreateCategory] error categoryRepo.Create", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}

	return &model.Category{
		ID:            id,
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Icon:          req.Icon,
		DisplayOrder:  req.DisplayOrder,
		IsActive:      true,
		Subcategories: []model.Subcategory{},
	}, nil
}

func (s *categoryAppImpl) CreateSubcategory(ctx context.Context, req *model.CreateSubcategoryRequest) (*model.Subcategory, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("name is required")
	}

	parent, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		logger.Error("[CreateSubcategory] error categoryRepo.GetByID", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	if parent == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage("Category not found")
	}

	id, err := s.categoryRepo.CreateSubcategory(ctx, req)
	if err != nil {
		if sqlerr.IsDuplicate(err) {
			return nil, errors.SetCustomError(constant.ErrConflict).WithMessage("Slug already exists")
		}
		logger.Error("[CreateSubcategory] error categoryRepo.CreateSubcategory", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}

	return &model.Subcategory{
		ID:           id,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Slug:         req.Slug,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}, nil
}
