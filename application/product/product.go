package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	productRepo "github.com/muhammadheryan/marketplace/repository/product"
	"github.com/muhammadheryan/marketplace/repository/sqlerr"
	txrepo "github.com/muhammadheryan/marketplace/repository/tx"
	"github.com/muhammadheryan/marketplace/thirdparty/rabbitmq"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	validatorx "github.com/muhammadheryan/marketplace/utils/validator"
	"go.uber.org/zap"
)

type ProductApp interface {
	CreateProduct(ctx context.Context, ownerID uint64, req *model.CreateProductRequest) (*model.CreateProductResponse, error)
	ListProducts(ctx context.Context, filter *model.ProductFilter, page, limit int) (*model.ProductListResponse, error)
	GetProduct(ctx context.Context, id uint64) (*model.ProductDetail, error)
	UpdateProduct(ctx context.Context, id, ownerID uint64, req *model.UpdateProductRequest) error
	DeleteProduct(ctx context.Context, id, ownerID uint64) error
	ListMyProducts(ctx context.Context, ownerID uint64) ([]model.ProductListItem, error)
	MarkGiven(ctx context.Context, id, ownerID uint64, req *model.MarkGivenRequest) error
}

type productAppImpl struct {
	txRepo      txrepo.TxRepository
	productRepo productRepo.ProductRepository
	publisher   rabbitmq.Publisher
}

// NewProductApp wires the listing use cases. publisher may be nil, in which case
// lifecycle events are not emitted.
func NewProductApp(txRepo txrepo.TxRepository, productRepo productRepo.ProductRepository, publisher rabbitmq.Publisher) ProductApp {
	return &productAppImpl{txRepo: txRepo, productRepo: productRepo, publisher: publisher}
}

func (s *productAppImpl) CreateProduct(ctx context.Context, ownerID uint64, req *model.CreateProductRequest) (*model.CreateProductResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.LocationCity = strings.TrimSpace(req.LocationCity)
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = constant.DefaultCurrency
	}

	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage(validatorx.Describe(err))
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateProduct] begin tx", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	productID, err := s.productRepo.InsertProductTx(ctx, tx, ownerID, req)
	if err != nil {
		if sqlerr.IsForeignKeyViolation(err) {
			return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Invalid category or subcategory")
		}
		logger.Error("[CreateProduct] insert product", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}

	// first image becomes the primary one
	if len(req.Images) > 0 {
		if err := s.productRepo.InsertImagesTx(ctx, tx, productID, req.Images); err != nil {
			logger.Error("[CreateProduct] insert images", zap.String("error", err.Error()))
			return nil, sqlerr.AsCustomError(err)
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateProduct] commit tx", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	committed = true

	s.publish(ctx, rabbitmq.EventListingCreated, productID, ownerID)

	return &model.CreateProductResponse{ProductID: productID}, nil
}

func (s *productAppImpl) ListProducts(ctx context.Context, filter *model.ProductFilter, page, limit int) (*model.ProductListResponse, error) {
	if page <= 0 {
		page = constant.DefaultPage
	}
	if limit <= 0 {
		limit = constant.DefaultPageSize
	}
	if limit > constant.MaxPageSize {
		limit = constant.MaxPageSize
	}

	if filter == nil {
		filter = &model.ProductFilter{}
	}
	if filter.ConditionState != "" && !filter.ConditionState.Valid() {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest).
			WithMessage("condition_state must be one of: new like_new good fair for_parts")
	}
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := s.productRepo.List(ctx, filter, page, limit)
	if err != nil {
		logger.Error("[ListProducts] error productRepo.List", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}

	return &model.ProductListResponse{
		Items:      items,
		Pagination: model.NewPagination(page, limit, total),
	}, nil
}

// GetProduct counts a view on every fetch, then loads the detail with its images.
func (s *productAppImpl) GetProduct(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	found, err := s.productRepo.IncrementViews(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] error productRepo.IncrementViews", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	if !found {
		return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage("Product not found")
	}

	result, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	if result == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage("Product not found")
	}

	images, err := s.productRepo.ListImages(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] error productRepo.ListImages", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	result.Images = images

	return result, nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, id, ownerID uint64, req *model.UpdateProductRequest) error {
	if req.Empty() {
		return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("No fields to update")
	}
	trimPtr(req.Title)
	trimPtr(req.Description)
	trimPtr(req.LocationCity)
	trimPtr(req.LocationArea)
	trimPtr(req.TradeDescription)
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage(validatorx.Describe(err))
	}
	// given always comes with a transaction record
	if req.Status != nil && *req.Status == constant.ProductStatusGiven {
		return errors.SetCustomError(constant.ErrInvalidStatusTransition).
			WithMessage("Use mark-given to mark a product as given")
	}

	owned, err := s.productRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		logger.Error("[UpdateProduct] error productRepo.GetOwned", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}
	if owned == nil {
		return errors.SetCustomError(constant.ErrNotFound).WithMessage("Product not found or unauthorized")
	}

	if req.Status != nil && !owned.Status.CanTransitionTo(*req.Status) {
		return errors.SetCustomError(constant.ErrInvalidStatusTransition).
			WithMessage(fmt.Sprintf("Cannot change status from %s to %s", owned.Status, *req.Status))
	}

	if err := s.productRepo.Update(ctx, id, req); err != nil {
		logger.Error("[UpdateProduct] error productRepo.Update", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}
	return nil
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, id, ownerID uint64) error {
	deleted, err := s.productRepo.Delete(ctx, id, ownerID)
	if err != nil {
		logger.Error("[DeleteProduct] error productRepo.Delete", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}
	if !deleted {
		return errors.SetCustomError(constant.ErrNotFound).WithMessage("Product not found or unauthorized")
	}

	s.publish(ctx, rabbitmq.EventListingDeleted, id, ownerID)
	return nil
}

func (s *productAppImpl) ListMyProducts(ctx context.Context, ownerID uint64) ([]model.ProductListItem, error) {
	items, err := s.productRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		logger.Error("[ListMyProducts] error productRepo.ListByOwner", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	return items, nil
}

// MarkGiven moves the listing to given and records who received it, atomically.
func (s *productAppImpl) MarkGiven(ctx context.Context, id, ownerID uint64, req *model.MarkGivenRequest) error {
	if req.RecipientName != nil {
		name := strings.TrimSpace(*req.RecipientName)
		req.RecipientName = &name
		if name == "" {
			req.RecipientName = nil
		}
	}
	if req.RecipientName == nil && req.RecipientID == nil {
		return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Recipient name or ID is required")
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage(validatorx.Describe(err))
	}

	owned, err := s.productRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		logger.Error("[MarkGiven] error productRepo.GetOwned", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}
	if owned == nil {
		return errors.SetCustomError(constant.ErrNotFound).WithMessage("Product not found or unauthorized")
	}

	// given is terminal, a second audit row would be a duplicate
	if owned.Status == constant.ProductStatusGiven || !owned.Status.CanTransitionTo(constant.ProductStatusGiven) {
		return errors.SetCustomError(constant.ErrInvalidStatusTransition).
			WithMessage(fmt.Sprintf("Cannot mark a %s product as given", owned.Status))
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[MarkGiven] begin tx", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := s.productRepo.UpdateStatusTx(ctx, tx, id, constant.ProductStatusGiven); err != nil {
		logger.Error("[MarkGiven] update status", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}

	err = s.productRepo.InsertTransactionTx(ctx, tx, &model.ProductTransaction{
		ProductID:      id,
		GiverID:        ownerID,
		RecipientID:    req.RecipientID,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		RecipientEmail: req.RecipientEmail,
		Notes:          req.Notes,
	})
	if err != nil {
		if sqlerr.IsForeignKeyViolation(err) {
			return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Recipient not found")
		}
		logger.Error("[MarkGiven] insert transaction", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[MarkGiven] commit tx", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}
	committed = true

	s.publish(ctx, rabbitmq.EventListingGiven, id, ownerID)
	return nil
}

func (s *productAppImpl) publish(ctx context.Context, eventType string, productID, userID uint64) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.ListingEvent{
		Type:       eventType,
		ProductID:  productID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishListingEvent(ctx, event); err != nil {
		logger.Error("[publish] publish listing event", zap.String("type", eventType), zap.String("error", err.Error()))
	}
}

func trimPtr(v *string) {
	if v != nil {
		*v = strings.TrimSpace(*v)
	}
}
