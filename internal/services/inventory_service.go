package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tradewisearg/servitec-web/internal/models"
	"github.com/tradewisearg/servitec-web/internal/repositories"
	"github.com/tradewisearg/servitec-web/internal/storage"
	"github.com/tradewisearg/servitec-web/pkg/utils"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrProductNotFound   = errors.New("product not found")
	ErrProductExists     = errors.New("product with this name already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// CreateProductRequest is the payload for adding a product. Image is the
// raw uploaded file; it is processed and stored before the database write.
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Cost     float64 `json:"cost" binding:"min=0"`
	Price    float64 `json:"price" binding:"min=0"`
	Quantity int     `json:"quantity" binding:"min=0"`
	Image    []byte  `json:"-"`
}

// UpdateProductRequest is the payload for editing a product in place.
type UpdateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Cost     float64 `json:"cost" binding:"min=0"`
	Price    float64 `json:"price" binding:"min=0"`
	Quantity int     `json:"quantity" binding:"min=0"`
}

// RecordSaleRequest is the payload for registering a sale.
type RecordSaleRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// SaleResult reports the outcome of a committed sale.
type SaleResult struct {
	Product  *models.Product  `json:"product"`
	Movement *models.Movement `json:"movement"`
	Revenue  float64          `json:"revenue"`
	Cost     float64          `json:"cost"`
	Profit   float64          `json:"profit"`
}

// InventoryService owns every write to products and the movement ledger.
// Each multi-record operation runs in a single transaction: stock update
// and ledger append succeed or fail together.
type InventoryService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest, actor string) (*models.Product, error)
	UpdateProduct(id int64, req UpdateProductRequest, actor string) (*models.Product, error)
	RecordSale(req RecordSaleRequest, actor string) (*SaleResult, error)
	DeleteProduct(id int64) error
	GetProduct(id int64) (*models.Product, error)
	ListProducts(category *string, sort string) ([]models.Product, error)
	GetMovements(filters models.MovementFilters) ([]models.Movement, int, error)
}

type inventoryService struct {
	productRepo  repositories.ProductRepository
	movementRepo repositories.MovementRepository
	summaryRepo  repositories.SummaryRepository
	uploader     storage.Uploader
	db           repositories.SQLExecutor
	beginTx      func() (serviceTx, error)
}

// NewInventoryService creates a new instance of InventoryService.
// uploader may be nil, in which case image uploads are rejected.
func NewInventoryService(
	pr repositories.ProductRepository,
	mr repositories.MovementRepository,
	sr repositories.SummaryRepository,
	uploader storage.Uploader,
	db *sql.DB,
) InventoryService {
	return &inventoryService{
		productRepo:  pr,
		movementRepo: mr,
		summaryRepo:  sr,
		uploader:     uploader,
		db:           db,
		beginTx:      beginSQLTx(db),
	}
}

func validateProductFields(name string, cost, price float64, quantity int) error {
	if utils.IsEmpty(name) {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if cost < 0 || price < 0 {
		return fmt.Errorf("%w: cost and price must be non-negative", ErrValidation)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ErrValidation)
	}
	return nil
}

func (s *inventoryService) CreateProduct(ctx context.Context, req CreateProductRequest, actor string) (*models.Product, error) {
	if err := validateProductFields(req.Name, req.Cost, req.Price, req.Quantity); err != nil {
		return nil, err
	}

	var imageURL *string
	if len(req.Image) > 0 {
		if s.uploader == nil {
			return nil, fmt.Errorf("%w: image uploads are not configured", ErrValidation)
		}
		processed, err := storage.ProcessImage(req.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		url, err := s.uploader.UploadProductImage(ctx, processed)
		if err != nil {
			return nil, fmt.Errorf("failed to upload product image: %w", err)
		}
		imageURL = models.NewNullString(url)
	}

	tx, err := s.beginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	product := &models.Product{
		Name:     req.Name,
		Category: models.NormalizeCategory(req.Category),
		Cost:     req.Cost,
		Price:    req.Price,
		Quantity: req.Quantity,
		ImageURL: imageURL,
	}

	if _, err := s.productRepo.Create(tx, product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrProductExists
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if req.Quantity > 0 {
		movement := &models.Movement{
			Type:          models.MovementInbound,
			ProductName:   product.Name,
			Quantity:      req.Quantity,
			PriorQuantity: 0,
			NewQuantity:   req.Quantity,
			UnitPrice:     product.Price,
			Actor:         actor,
		}
		if _, err := s.movementRepo.Append(tx, movement); err != nil {
			return nil, fmt.Errorf("failed to record inbound movement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit product creation: %w", err)
	}
	return product, nil
}

func (s *inventoryService) UpdateProduct(id int64, req UpdateProductRequest, actor string) (*models.Product, error) {
	if err := validateProductFields(req.Name, req.Cost, req.Price, req.Quantity); err != nil {
		return nil, err
	}

	prior, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product for update: %w", err)
	}

	tx, err := s.beginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	product := &models.Product{
		ID:       id,
		Name:     req.Name,
		Category: models.NormalizeCategory(req.Category),
		Cost:     req.Cost,
		Price:    req.Price,
		Quantity: req.Quantity,
		ImageURL: prior.ImageURL,
	}

	if err := s.productRepo.Update(tx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrProductExists
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if req.Quantity != prior.Quantity {
		movementType := models.MovementInbound
		delta := req.Quantity - prior.Quantity
		if delta < 0 {
			movementType = models.MovementOutbound
			delta = -delta
		}
		movement := &models.Movement{
			Type:          movementType,
			ProductName:   product.Name,
			Quantity:      delta,
			PriorQuantity: prior.Quantity,
			NewQuantity:   req.Quantity,
			UnitPrice:     product.Price,
			Actor:         actor,
		}
		if _, err := s.movementRepo.Append(tx, movement); err != nil {
			return nil, fmt.Errorf("failed to record adjustment movement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit product update: %w", err)
	}
	return product, nil
}

func (s *inventoryService) RecordSale(req RecordSaleRequest, actor string) (*SaleResult, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: sale quantity must be positive", ErrValidation)
	}

	product, err := s.productRepo.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product for sale: %w", err)
	}

	// Stock sufficiency is checked before any write; a violation leaves
	// stock and ledger untouched.
	if req.Quantity > product.Quantity {
		return nil, fmt.Errorf("%w: %s has %d units, requested %d",
			ErrInsufficientStock, product.Name, product.Quantity, req.Quantity)
	}

	revenue := product.Price * float64(req.Quantity)
	cost := product.Cost * float64(req.Quantity)
	profit := revenue - cost
	newQuantity := product.Quantity - req.Quantity

	tx, err := s.beginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.productRepo.UpdateQuantity(tx, product.ID, newQuantity); err != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	movement := &models.Movement{
		Type:          models.MovementSale,
		ProductName:   product.Name,
		Quantity:      req.Quantity,
		PriorQuantity: product.Quantity,
		NewQuantity:   newQuantity,
		UnitPrice:     product.Price,
		Total:         revenue,
		Actor:         actor,
	}
	if _, err := s.movementRepo.Append(tx, movement); err != nil {
		return nil, fmt.Errorf("failed to record sale movement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	// The daily summary is a best-effort side effect: the sale is already
	// committed, so a failure here is logged and swallowed.
	day := models.SummaryDay(time.Now())
	if err := s.summaryRepo.AddSale(s.db, day, revenue, cost, profit, req.Quantity); err != nil {
		utils.LogError(err, "daily summary increment failed after committed sale")
	}

	product.Quantity = newQuantity
	return &SaleResult{
		Product:  product,
		Movement: movement,
		Revenue:  revenue,
		Cost:     cost,
		Profit:   profit,
	}, nil
}

// DeleteProduct removes the product record only. Ledger entries that
// reference it are retained; the ledger outlives its subject.
func (s *inventoryService) DeleteProduct(id int64) error {
	if err := s.productRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *inventoryService) GetProduct(id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

func (s *inventoryService) ListProducts(category *string, sort string) ([]models.Product, error) {
	return s.productRepo.List(category, sort)
}

func (s *inventoryService) GetMovements(filters models.MovementFilters) ([]models.Movement, int, error) {
	return s.movementRepo.GetMovements(filters)
}
