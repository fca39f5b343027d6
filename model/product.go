package model

import (
	"time"

	"github.com/muhammadheryan/marketplace/constant"
)

// ProductEntity mirrors the products table.
type ProductEntity struct {
	ID               uint64                   `db:"id" json:"id"`
	UserID           uint64                   `db:"user_id" json:"user_id"`
	CategoryID       uint64                   `db:"category_id" json:"category_id"`
	SubcategoryID    *uint64                  `db:"subcategory_id" json:"subcategory_id"`
	Title            string                   `db:"title" json:"title"`
	Description      string                   `db:"description" json:"description"`
	Price            *float64                 `db:"price" json:"price"`
	Currency         string                   `db:"currency" json:"currency"`
	ConditionState   *constant.ConditionState `db:"condition_state" json:"condition_state"`
	LocationCity     string                   `db:"location_city" json:"location_city"`
	LocationArea     *string                  `db:"location_area" json:"location_area"`
	ContactName      *string                  `db:"contact_name" json:"contact_name"`
	ContactPhone     *string                  `db:"contact_phone" json:"contact_phone"`
	ContactEmail     *string                  `db:"contact_email" json:"contact_email"`
	IsNegotiable     bool                     `db:"is_negotiable" json:"is_negotiable"`
	IsTradeAllowed   bool                     `db:"is_trade_allowed" json:"is_trade_allowed"`
	TradeDescription *string                  `db:"trade_description" json:"trade_description"`
	Status           constant.ProductStatus   `db:"status" json:"status"`
	ViewsCount       int64                    `db:"views_count" json:"views_count"`
	CreatedAt        time.Time                `db:"created_at" json:"created_at"`
	UpdatedAt        *time.Time               `db:"updated_at" json:"updated_at,omitempty"`
}

// ProductListItem is a listing denormalised for feeds and "my products".
type ProductListItem struct {
	ProductEntity
	UserName        *string `db:"user_name" json:"user_name"`
	CategoryName    *string `db:"category_name" json:"category_name"`
	SubcategoryName *string `db:"subcategory_name" json:"subcategory_name"`
	PrimaryImage    *string `db:"primary_image" json:"primary_image"`
	ImagesCount     int64   `db:"images_count" json:"images_count"`
}

type ProductDetail struct {
	ProductEntity
	UserName        *string        `db:"user_name" json:"user_name"`
	UserEmail       *string        `db:"user_email" json:"user_email"`
	CategoryName    *string        `db:"category_name" json:"category_name"`
	CategorySlug    *string        `db:"category_slug" json:"category_slug"`
	SubcategoryName *string        `db:"subcategory_name" json:"subcategory_name"`
	SubcategorySlug *string        `db:"subcategory_slug" json:"subcategory_slug"`
	Images          []ProductImage `db:"-" json:"images"`
}

type ProductImage struct {
	ID         uint64    `db:"id" json:"id"`
	ProductID  uint64    `db:"product_id" json:"product_id"`
	ImageURL   string    `db:"image_url" json:"image_url"`
	ImageOrder int       `db:"image_order" json:"image_order"`
	IsPrimary  bool      `db:"is_primary" json:"is_primary"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ProductOwnership is the minimal row read to gate owner-only mutations.
type ProductOwnership struct {
	ID     uint64                 `db:"id"`
	UserID uint64                 `db:"user_id"`
	Status constant.ProductStatus `db:"status"`
}

type ProductFilter struct {
	CategoryID     uint64
	SubcategoryID  uint64
	Search         string
	LocationCity   string
	MinPrice       *float64
	MaxPrice       *float64
	ConditionState constant.ConditionState
}

type CreateProductRequest struct {
	CategoryID       uint64                  `json:"category_id" validate:"required"`
	SubcategoryID    *uint64                 `json:"subcategory_id"`
	Title            string                  `json:"title" validate:"required,max=200"`
	Description      string                  `json:"description" validate:"required"`
	Price            *float64                `json:"price" validate:"omitempty,gte=0"`
	Currency         string                  `json:"currency" validate:"omitempty,len=3"`
	ConditionState   constant.ConditionState `json:"condition_state" validate:"omitempty,oneof=new like_new good fair for_parts"`
	LocationCity     string                  `json:"location_city" validate:"required"`
	LocationArea     *string                 `json:"location_area"`
	ContactName      *string                 `json:"contact_name"`
	ContactPhone     *string                 `json:"contact_phone"`
	ContactEmail     *string                 `json:"contact_email" validate:"omitempty,email_shape"`
	IsNegotiable     bool                    `json:"is_negotiable"`
	IsTradeAllowed   bool                    `json:"is_trade_allowed"`
	TradeDescription *string                 `json:"trade_description"`
	Images           []string                `json:"images" validate:"omitempty,dive,required"`
}

// UpdateProductRequest is a partial update; nil fields keep their stored value.
type UpdateProductRequest struct {
	Title            *string                  `json:"title" validate:"omitempty,min=1,max=200"`
	Description      *string                  `json:"description" validate:"omitempty,min=1"`
	Price            *float64                 `json:"price" validate:"omitempty,gte=0"`
	ConditionState   *constant.ConditionState `json:"condition_state" validate:"omitempty,oneof=new like_new good fair for_parts"`
	LocationCity     *string                  `json:"location_city" validate:"omitempty,min=1"`
	LocationArea     *string                  `json:"location_area"`
	IsNegotiable     *bool                    `json:"is_negotiable"`
	IsTradeAllowed   *bool                    `json:"is_trade_allowed"`
	TradeDescription *string                  `json:"trade_description"`
	Status           *constant.ProductStatus  `json:"status" validate:"omitempty,oneof=pending active reserved given sold inactive"`
}

func (r *UpdateProductRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Price == nil && r.ConditionState == nil &&
		r.LocationCity == nil && r.LocationArea == nil && r.IsNegotiable == nil &&
		r.IsTradeAllowed == nil && r.TradeDescription == nil && r.Status == nil
}

type MarkGivenRequest struct {
	RecipientName  *string `json:"recipient_name" validate:"required_without=RecipientID"`
	RecipientID    *uint64 `json:"recipient_id" validate:"required_without=RecipientName"`
	RecipientPhone *string `json:"recipient_phone"`
	RecipientEmail *string `json:"recipient_email" validate:"omitempty,email_shape"`
	Notes          *string `json:"notes"`
}

// ProductTransaction is the audit row written when a listing is given away.
type ProductTransaction struct {
	ProductID      uint64
	GiverID        uint64
	RecipientID    *uint64
	RecipientName  *string
	RecipientPhone *string
	RecipientEmail *string
	Notes          *string
}

type CreateProductResponse struct {
	ProductID uint64 `json:"product_id"`
}

type ProductListResponse struct {
	Items      []ProductListItem `json:"items"`
	Pagination Pagination        `json:"pagination"`
}
