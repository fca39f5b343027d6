package product

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	InsertProductTx(ctx context.Context, tx *sqlx.Tx, ownerID uint64, req *model.CreateProductRequest) (uint64, error)
	InsertImagesTx(ctx context.Context, tx *sqlx.Tx, productID uint64, images []string) error
	List(ctx context.Context, filter *model.ProductFilter, page, limit int) ([]model.ProductListItem, int64, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.ProductListItem, error)
	IncrementViews(ctx context.Context, id uint64) (bool, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error)
	ListImages(ctx context.Context, productID uint64) ([]model.ProductImage, error)
	GetOwned(ctx context.Context, id, ownerID uint64) (*model.ProductOwnership, error)
	Update(ctx context.Context, id uint64, req *model.UpdateProductRequest) error
	Delete(ctx context.Context, id, ownerID uint64) (bool, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.ProductStatus) error
	InsertTransactionTx(ctx context.Context, tx *sqlx.Tx, req *model.ProductTransaction) error
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	productColumns = `p.id, p.user_id, p.category_id, p.subcategory_id, p.title, p.description, p.price, p.currency,
p.condition_state, p.location_city, p.location_area, p.contact_name, p.contact_phone, p.contact_email,
p.is_negotiable, p.is_trade_allowed, p.trade_description, p.status, p.views_count, p.created_at, p.updated_at`

	listProductsBase = `SELECT ` + productColumns + `,
u.name AS user_name, c.name AS category_name, s.name AS subcategory_name,
(SELECT pi.image_url FROM product_images pi WHERE pi.product_id = p.id AND pi.is_primary = true ORDER BY pi.image_order LIMIT 1) AS primary_image,
(SELECT COUNT(*) FROM product_images pi WHERE pi.product_id = p.id) AS images_count
FROM products p
LEFT JOIN users u ON p.user_id = u.id
LEFT JOIN categories c ON p.category_id = c.id
LEFT JOIN subcategories s ON p.subcategory_id = s.id
WHERE true`

	countProductsBase = `SELECT COUNT(*) FROM products p WHERE true`

	newestFirst = ` ORDER BY p.created_at DESC, p.id DESC`

	getProductDetail = `SELECT ` + productColumns + `,
u.name AS user_name, u.email AS user_email,
c.name AS category_name, c.slug AS category_slug,
s.name AS subcategory_name, s.slug AS subcategory_slug
FROM products p
LEFT JOIN users u ON p.user_id = u.id
LEFT JOIN categories c ON p.category_id = c.id
LEFT JOIN subcategories s ON p.subcategory_id = s.id
WHERE p.id = ?`

	insertProductQuery = `INSERT INTO products (
user_id, category_id, subcategory_id, title, description,
price, currency, condition_state, location_city, location_area,
contact_name, contact_phone, contact_email,
is_negotiable, is_trade_allowed, trade_description, status
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertImageQuery       = `INSERT INTO product_images (product_id, image_url, image_order, is_primary) VALUES (?, ?, ?, ?)`
	incrementViewsQuery    = `UPDATE products SET views_count = views_count + 1 WHERE id = ?`
	listImagesQuery        = `SELECT id, product_id, image_url, image_order, is_primary, created_at FROM product_images WHERE product_id = ? ORDER BY image_order ASC`
	getOwnedQuery          = `SELECT id, user_id, status FROM products WHERE id = ? AND user_id = ?`
	deleteProductQuery     = `DELETE FROM products WHERE id = ? AND user_id = ?`
	updateStatusQuery      = `UPDATE products SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	insertTransactionQuery = `INSERT INTO product_transactions (product_id, giver_id, recipient_id, recipient_name, recipient_phone, recipient_email, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`
)

func (s *SQL) InsertProductTx(ctx context.Context, tx *sqlx.Tx, ownerID uint64, req *model.CreateProductRequest) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertProductQuery,
		ownerID, req.CategoryID, req.SubcategoryID, req.Title, req.Description,
		req.Price, req.Currency, nullableCondition(req.ConditionState), req.LocationCity, req.LocationArea,
		req.ContactName, req.ContactPhone, req.ContactEmail,
		req.IsNegotiable, req.IsTradeAllowed, req.TradeDescription, constant.ProductStatusActive,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// InsertImagesTx stores images in the given order; the first one is primary.
func (s *SQL) InsertImagesTx(ctx context.Context, tx *sqlx.Tx, productID uint64, images []string) error {
	for i, url := range images {
		if _, err := tx.ExecContext(ctx, insertImageQuery, productID, url, i, i == 0); err != nil {
			return err
		}
	}
	return nil
}

// filterClause renders the optional, conjunctive feed filters. Only active
// listings are ever part of the feed.
func filterClause(filter *model.ProductFilter) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 9)

	sb.WriteString(" AND p.status = ?")
	args = append(args, constant.ProductStatusActive)

	if filter == nil {
		return sb.String(), args
	}
	if filter.CategoryID != 0 {
		sb.WriteString(" AND p.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.SubcategoryID != 0 {
		sb.WriteString(" AND p.subcategory_id = ?")
		args = append(args, filter.SubcategoryID)
	}
	if filter.Search != "" {
		like := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		sb.WriteString(" AND (LOWER(p.title) LIKE ? OR LOWER(p.description) LIKE ?)")
		args = append(args, like, like)
	}
	if filter.LocationCity != "" {
		sb.WriteString(" AND p.location_city = ?")
		args = append(args, filter.LocationCity)
	}
	if filter.MinPrice != nil {
		sb.WriteString(" AND p.price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		sb.WriteString(" AND p.price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if filter.ConditionState != "" {
		sb.WriteString(" AND p.condition_state = ?")
		args = append(args, filter.ConditionState)
	}
	return sb.String(), args
}

func nullableCondition(c constant.ConditionState) any {
	if c == "" {
		return nil
	}
	return c
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (s *SQL) List(ctx context.Context, filter *model.ProductFilter, page, limit int) ([]model.ProductListItem, int64, error) {
	offset := (page - 1) * limit
	where, args := filterClause(filter)

	items := make([]model.ProductListItem, 0)
	query := listProductsBase + where + newestFirst + " LIMIT ? OFFSET ?"
	if err := s.conn.SelectContext(ctx, &items, query, append(args, limit, offset)...); err != nil {
		return nil, 0, err
	}

	// same filters, no pagination
	var total int64
	if err := s.conn.GetContext(ctx, &total, countProductsBase+where, args...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListByOwner returns every listing of the owner regardless of status.
func (s *SQL) ListByOwner(ctx context.Context, ownerID uint64) ([]model.ProductListItem, error) {
	items := make([]model.ProductListItem, 0)
	query := listProductsBase + " AND p.user_id = ?" + newestFirst
	if err := s.conn.SelectContext(ctx, &items, query, ownerID); err != nil {
		return nil, err
	}
	return items, nil
}

// IncrementViews reports whether the listing exists.
func (s *SQL) IncrementViews(ctx context.Context, id uint64) (bool, error) {
	res, err := s.conn.ExecContext(ctx, incrementViewsQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByID returns nil, nil when the listing does not exist.
func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	var detail model.ProductDetail
	if err := s.conn.QueryRowxContext(ctx, getProductDetail, id).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (s *SQL) ListImages(ctx context.Context, productID uint64) ([]model.ProductImage, error) {
	images := make([]model.ProductImage, 0)
	if err := s.conn.SelectContext(ctx, &images, listImagesQuery, productID); err != nil {
		return nil, err
	}
	return images, nil
}

// GetOwned looks a listing up by id and owner together, so a listing owned by
// someone else is indistinguishable from a missing one.
func (s *SQL) GetOwned(ctx context.Context, id, ownerID uint64) (*model.ProductOwnership, error) {
	var row model.ProductOwnership
	if err := s.conn.GetContext(ctx, &row, getOwnedQuery, id, ownerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *SQL) Update(ctx context.Context, id uint64, req *model.UpdateProductRequest) error {
	sets := make([]string, 0, 11)
	args := make([]any, 0, 12)

	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.Price != nil {
		set("price", *req.Price)
	}
	if req.ConditionState != nil {
		set("condition_state", *req.ConditionState)
	}
	if req.LocationCity != nil {
		set("location_city", *req.LocationCity)
	}
	if req.LocationArea != nil {
		set("location_area", *req.LocationArea)
	}
	if req.IsNegotiable != nil {
		set("is_negotiable", *req.IsNegotiable)
	}
	if req.IsTradeAllowed != nil {
		set("is_trade_allowed", *req.IsTradeAllowed)
	}
	if req.TradeDescription != nil {
		set("trade_description", *req.TradeDescription)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	_, err := s.conn.ExecContext(ctx, "UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

// Delete removes an owned listing; images and transactions cascade.
func (s *SQL) Delete(ctx context.Context, id, ownerID uint64) (bool, error) {
	res, err := s.conn.ExecContext(ctx, deleteProductQuery, id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.ProductStatus) error {
	_, err := tx.ExecContext(ctx, updateStatusQuery, status, id)
	return err
}

func (s *SQL) InsertTransactionTx(ctx context.Context, tx *sqlx.Tx, req *model.ProductTransaction) error {
	_, err := tx.ExecContext(ctx, insertTransactionQuery,
		req.ProductID, req.GiverID, req.RecipientID, req.RecipientName, req.RecipientPhone, req.RecipientEmail, req.Notes)
	return err
}
