package category

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]model.Category, error)
	ListActiveSubcategories(ctx context.Context) ([]model.Subcategory, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	GetByID(ctx context.Context, id uint64) (*model.Category, error)
	ListSubcategoriesByCategory(ctx context.Context, categoryID uint64) ([]model.Subcategory, error)
	Create(ctx context.Context, req *model.CreateCategoryRequest) (uint64, error)
	CreateSubcategory(ctx context.Context, req *model.CreateSubcategoryRequest) (uint64, error)
}

func NewCategoryRepository(conn *sqlx.DB) CategoryRepository {
	return &SQL{conn: conn}
}

const (
	categoryColumns    = `id, name, slug, description, icon, display_order, is_active, created_at`
	subcategoryColumns = `id, category_id, name, slug, display_order, is_active, created_at`

	listCategoriesQuery     = `SELECT ` + categoryColumns + ` FROM categories WHERE is_active = true ORDER BY display_order ASC, id ASC`
	listSubcategoriesQuery  = `SELECT ` + subcategoryColumns + ` FROM subcategories WHERE is_active = true ORDER BY display_order ASC, id ASC`
	getCategoryBySlugQuery  = `SELECT ` + categoryColumns + ` FROM categories WHERE slug = ? AND is_active = true`
	getCategoryByIDQuery    = `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	listSubsByCategoryQuery = `SELECT ` + subcategoryColumns + ` FROM subcategories WHERE category_id = ? AND is_active = true ORDER BY display_order ASC, id ASC`
	insertCategoryQuery     = `INSERT INTO categories (name, slug, description, icon, display_order, is_active) VALUES (?, ?, ?, ?, ?, true)`
	insertSubcategoryQuery  = `INSERT INTO subcategories (category_id, name, slug, display_order, is_active) VALUES (?, ?, ?, ?, true)`
)

func (s *SQL) ListActive(ctx context.Context) ([]model.Category, error) {
	items := make([]model.Category, 0)
	if err := s.conn.SelectContext(ctx, &items, listCategoriesQuery); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) ListActiveSubcategories(ctx context.Context) ([]model.Subcategory, error) {
	items := make([]model.Subcategory, 0)
	if err := s.conn.SelectContext(ctx, &items, listSubcategoriesQuery); err != nil {
		return nil, err
	}
	return items, nil
}

// GetBySlug returns nil, nil for an unknown or inactive slug.
func (s *SQL) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return s.getOne(ctx, getCategoryBySlugQuery, slug)
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	return s.getOne(ctx, getCategoryByIDQuery, id)
}

func (s *SQL) getOne(ctx context.Context, query string, arg any) (*model.Category, error) {
	var c model.Category
	if err := s.conn.GetContext(ctx, &c, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *SQL) ListSubcategoriesByCategory(ctx context.Context, categoryID uint64) ([]model.Subcategory, error) {
	items := make([]model.Subcategory, 0)
	if err := s.conn.SelectContext(ctx, &items, listSubsByCategoryQuery, categoryID); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) Create(ctx context.Context, req *model.CreateCategoryRequest) (uint64, error) {
	res, err := s.conn.ExecContext(ctx, insertCategoryQuery, req.Name, req.Slug, req.Description, req.Icon, req.DisplayOrder)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *SQL) CreateSubcategory(ctx context.Context, req *model.CreateSubcategoryRequest) (uint64, error) {
	res, err := s.conn.ExecContext(ctx, insertSubcategoryQuery, req.CategoryID, req.Name, req.Slug, req.DisplayOrder)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
