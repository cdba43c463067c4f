package service

import (
	"context"
	"errors"

	"ledgerdesk/internal/dto"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo        repository.ProductRepository
	expenseRepo repository.ExpenseRepository
}

func NewProductService(repo repository.ProductRepository, expenseRepo repository.ExpenseRepository) ProductService {
	return &productService{repo: repo, expenseRepo: expenseRepo}
}

var defaultVATRate = decimal.NewFromInt(18)

// Create inserts the product and, when it arrives with stock on hand and a
// purchase price, records the purchase expense in the same transaction.
func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	vat := defaultVATRate
	if req.VATRate != nil {
		vat = *req.VATRate
	}
	p := model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		PurchasePrice: req.PurchasePrice,
		StockQuantity: req.StockQuantity,
		Barcode:       req.Barcode,
		VATRate:       vat,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &p); err != nil {
			return err
		}
		return s.recordStockInExpense(tx, &p, req.StockQuantity)
	})
	if txErr != nil {
		return nil, txErr
	}

	return productToResponse(&p), nil
}

func (s *productService) Get(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Update saves the product and records a purchase expense for any stock
// increase, mirroring what a manual restock would do.
func (s *productService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated *model.Product
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		stockDiff := req.StockQuantity - p.StockQuantity

		p.Name = req.Name
		p.Description = req.Description
		p.Price = req.Price
		p.PurchasePrice = req.PurchasePrice
		p.StockQuantity = req.StockQuantity
		p.Barcode = req.Barcode
		if req.VATRate != nil {
			p.VATRate = *req.VATRate
		}

		if err := s.repo.UpdateTx(tx, p); err != nil {
			return err
		}
		if err := s.recordStockInExpense(tx, p, stockDiff); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return productToResponse(updated), nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// recordStockInExpense writes the purchase expense for qty incoming units.
// No-op when qty <= 0 or the product has no purchase price.
func (s *productService) recordStockInExpense(tx *gorm.DB, p *model.Product, qty int) error {
	if qty <= 0 || !p.PurchasePrice.IsPositive() {
		return nil
	}
	category := model.CategoryPurchase
	return s.expenseRepo.CreateTx(tx, &model.Expense{
		Description: "Stock purchase: " + p.Name,
		Amount:      p.PurchasePrice.Mul(decimal.NewFromInt(int64(qty))),
		Category:    &category,
	})
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		PurchasePrice: p.PurchasePrice,
		StockQuantity: p.StockQuantity,
		Barcode:       p.Barcode,
		VATRate:       p.VATRate,
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
