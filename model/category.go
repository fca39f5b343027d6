package model

import "time"

type Category struct {
	ID            uint64        `db:"id" json:"id"`
	Name          string        `db:"name" json:"name"`
	Slug          string        `db:"slug" json:"slug"`
	Description   *string       `db:"description" json:"description,omitempty"`
	Icon          *string       `db:"icon" json:"icon,omitempty"`
	DisplayOrder  int           `db:"display_order" json:"display_order"`
	IsActive      bool          `db:"is_active" json:"is_active"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	Subcategories []Subcategory `db:"-" json:"subcategories"`
}

type Subcategory struct {
	ID           uint64    `db:"id" json:"id"`
	CategoryID   uint64    `db:"category_id" json:"category_id"`
	Name         string    `db:"name" json:"name"`
	Slug         *string   `db:"slug" json:"slug,omitempty"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CreateCategoryRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Slug         string  `json:"slug" validate:"required,max=100"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	DisplayOrder int     `json:"display_order"`
}

type CreateSubcategoryRequest struct {
	CategoryID   uint64  `json:"-"`
	Name         string  `json:"name" validate:"required,max=100"`
	Slug         *string `json:"slug"`
	DisplayOrder int     `json:"display_order"`
}
