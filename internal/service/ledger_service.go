package service

import (
	"context"
	"errors"
	"time"

	"ledgerdesk/internal/dto"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService owns every mutation that touches sales and stock together.
// All writes happen inside a single transaction so a failure on any line item
// leaves both the sale ledger and stock levels untouched.
type LedgerService interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.CreateSaleResponse, error)
	UpdateSale(ctx context.Context, id uint, req dto.UpdateSaleRequest) (*dto.UpdateSaleResponse, error)
	DeleteSale(ctx context.Context, id uint) (*dto.DeleteSaleResponse, error)
	Restock(ctx context.Context, productID uint, req dto.RestockRequest) (*dto.RestockResponse, error)
	GetSaleDetails(ctx context.Context, id uint) (*dto.SaleDetailsResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type ledgerService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	expenseRepo  repository.ExpenseRepository
}

func NewLedgerService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	expenseRepo repository.ExpenseRepository,
) LedgerService {
	return &ledgerService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		expenseRepo:  expenseRepo,
	}
}

// ── CreateSale ───────────────────────────────────────────────────────────────
// Single ACID transaction:
//   1. Check every product exists and has enough stock, in request order.
//   2. Insert the sale with its items. The stored total is always recomputed
//      as Σ(price × quantity).
//   3. Decrement stock with a guarded UPDATE per line item. The guard catches
//      what the per-line check cannot, e.g. the same product appearing on two
//      lines whose combined quantity exceeds stock.
// Any failure rolls the whole thing back.

func (s *ledgerService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	paymentType, chequeDate, err := resolvePayment(req.PaymentType, req.ChequeDate)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindByID(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
	}

	var saleID uint
	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		total := decimal.Zero
		for _, item := range req.Items {
			p, err := s.productRepo.FindByIDTx(tx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			if p.StockQuantity < item.Quantity {
				return &InsufficientStockError{
					ProductID: p.ID,
					Product:   p.Name,
					Requested: item.Quantity,
					Available: p.StockQuantity,
				}
			}
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		if req.TotalAmount != nil && !req.TotalAmount.Equal(total) {
			log.Warn().
				Str("supplied", req.TotalAmount.String()).
				Str("computed", total.String()).
				Msg("sale total mismatch, storing computed value")
		}

		sale := model.Sale{
			CustomerID:  req.CustomerID,
			TotalAmount: total,
			PaymentType: paymentType,
			ChequeDate:  chequeDate,
		}
		for _, item := range req.Items {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
		if err := s.saleRepo.CreateTx(tx, &sale); err != nil {
			return err
		}

		for _, item := range req.Items {
			if err := s.decrementGuarded(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		saleID = sale.ID
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CreateSaleResponse{SaleID: saleID, Success: true}, nil
}

// ── UpdateSale ───────────────────────────────────────────────────────────────
// Replaces the sale's line items in one transaction:
//   1. Pre-flight each new line against stock plus what the old sale already
//      holds of that product (units the sale allocated come back when the old
//      items are restored, so only the difference must be on hand).
//   2. Restore stock for every old item, delete them, insert the new items,
//      and decrement stock with the guarded UPDATE.
// An empty PaymentType keeps the sale's existing payment fields.

func (s *ledgerService) UpdateSale(ctx context.Context, id uint, req dto.UpdateSaleRequest) (*dto.UpdateSaleResponse, error) {
	paymentType, chequeDate, err := resolvePayment(req.PaymentType, req.ChequeDate)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindByID(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
	}

	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		sale, err := s.saleRepo.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		oldItems, err := s.saleRepo.FindItemsTx(tx, id)
		if err != nil {
			return err
		}
		allocated := make(map[uint]int, len(oldItems))
		for _, item := range oldItems {
			allocated[item.ProductID] += item.Quantity
		}

		// Pre-flight in request order, first violation reported.
		total := decimal.Zero
		requested := make(map[uint]int, len(req.Items))
		for _, item := range req.Items {
			p, err := s.productRepo.FindByIDTx(tx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			requested[item.ProductID] += item.Quantity
			additional := requested[item.ProductID] - allocated[item.ProductID]
			if additional > p.StockQuantity {
				return &InsufficientStockError{
					ProductID: p.ID,
					Product:   p.Name,
					Requested: item.Quantity,
					Available: p.StockQuantity + allocated[item.ProductID],
				}
			}
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		if req.TotalAmount != nil && !req.TotalAmount.Equal(total) {
			log.Warn().
				Str("supplied", req.TotalAmount.String()).
				Str("computed", total.String()).
				Msg("sale total mismatch, storing computed value")
		}

		// Reverse the old allocation, then apply the new one.
		for _, item := range oldItems {
			if err := s.productRepo.UpdateStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := s.saleRepo.DeleteItemsTx(tx, id); err != nil {
			return err
		}

		sale.CustomerID = req.CustomerID
		sale.TotalAmount = total
		if paymentType != nil {
			sale.PaymentType = paymentType
			sale.ChequeDate = chequeDate
		}
		if err := s.saleRepo.UpdateTx(tx, sale); err != nil {
			return err
		}

		newItems := make([]model.SaleItem, 0, len(req.Items))
		for _, item := range req.Items {
			newItems = append(newItems, model.SaleItem{
				SaleID:    id,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
		if err := s.saleRepo.InsertItemsTx(tx, newItems); err != nil {
			return err
		}

		for _, item := range req.Items {
			if err := s.decrementGuarded(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.UpdateSaleResponse{Success: true}, nil
}

// ── DeleteSale ───────────────────────────────────────────────────────────────

func (s *ledgerService) DeleteSale(ctx context.Context, id uint) (*dto.DeleteSaleResponse, error) {
	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		if _, err := s.saleRepo.FindByIDTx(tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		items, err := s.saleRepo.FindItemsTx(tx, id)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := s.productRepo.UpdateStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.saleRepo.DeleteItemsTx(tx, id); err != nil {
			return err
		}
		return s.saleRepo.DeleteTx(tx, id)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.DeleteSaleResponse{ID: id, Success: true}, nil
}

// ── Restock ──────────────────────────────────────────────────────────────────
// Adjusts stock by a signed delta. A positive delta with a positive purchase
// price records a purchase expense (price × quantity) in the same
// transaction. A negative delta may not push stock below zero.

func (s *ledgerService) Restock(ctx context.Context, productID uint, req dto.RestockRequest) (*dto.RestockResponse, error) {
	resp := &dto.RestockResponse{Success: true}

	txErr := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.productRepo.FindByIDTx(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		switch {
		case req.Quantity > 0:
			if err := s.productRepo.UpdateStockTx(tx, productID, req.Quantity); err != nil {
				return err
			}
			if p.PurchasePrice.IsPositive() {
				amount := p.PurchasePrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
				category := model.CategoryPurchase
				expense := model.Expense{
					Description: "Stock purchase: " + p.Name,
					Amount:      amount,
					Category:    &category,
				}
				if err := s.expenseRepo.CreateTx(tx, &expense); err != nil {
					return err
				}
				resp.ExpenseCreated = true
				resp.ExpenseAmount = &amount
			}
		case req.Quantity < 0:
			if err := s.decrementGuarded(tx, productID, -req.Quantity); err != nil {
				return err
			}
		}
		// Zero delta is a no-op.
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return resp, nil
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *ledgerService) GetSaleDetails(ctx context.Context, id uint) (*dto.SaleDetailsResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	resp := &dto.SaleDetailsResponse{
		Sale: dto.SaleInfo{
			ID:          sale.ID,
			CustomerID:  sale.CustomerID,
			TotalAmount: sale.TotalAmount,
			SaleDate:    sale.SaleDate.Format("2006-01-02T15:04:05Z"),
			PaymentType: sale.PaymentType,
			ChequeDate:  formatDatePtr(sale.ChequeDate),
		},
		Items: make([]dto.SaleItemDetail, 0, len(sale.Items)),
	}
	if sale.Customer != nil {
		resp.Customer = &dto.CustomerInfo{
			ID:      sale.Customer.ID,
			Name:    sale.Customer.Name,
			Phone:   sale.Customer.Phone,
			Email:   sale.Customer.Email,
			Address: sale.Customer.Address,
		}
	}
	for _, item := range sale.Items {
		detail := dto.SaleItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			ItemTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
		if item.Product != nil {
			detail.ProductName = item.Product.Name
			detail.Barcode = item.Product.Barcode
			detail.VATRate = item.Product.VATRate
		}
		resp.Items = append(resp.Items, detail)
	}
	return resp, nil
}

func (s *ledgerService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleListItem, 0, len(sales))
	for _, sale := range sales {
		item := dto.SaleListItem{
			ID:          sale.ID,
			CustomerID:  sale.CustomerID,
			TotalAmount: sale.TotalAmount,
			SaleDate:    sale.SaleDate.Format("2006-01-02T15:04:05Z"),
			PaymentType: sale.PaymentType,
			ChequeDate:  formatDatePtr(sale.ChequeDate),
		}
		if sale.Customer != nil {
			name := sale.Customer.Name
			item.CustomerName = &name
		}
		items = append(items, item)
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// decrementGuarded runs the guarded stock decrement and converts a rejected
// guard into an InsufficientStockError with the stock level seen inside the
// transaction.
func (s *ledgerService) decrementGuarded(tx *gorm.DB, productID uint, qty int) error {
	ok, err := s.productRepo.DecrementStockGuardedTx(tx, productID, qty)
	if err != nil {
		return err
	}
	if !ok {
		p, err := s.productRepo.FindByIDTx(tx, productID)
		if err != nil {
			return &InsufficientStockError{ProductID: productID, Requested: qty}
		}
		return &InsufficientStockError{
			ProductID: p.ID,
			Product:   p.Name,
			Requested: qty,
			Available: p.StockQuantity,
		}
	}
	return nil
}

// resolvePayment validates the payment type / cheque date pairing. An empty
// payment type returns (nil, nil, nil), which UpdateSale reads as "keep the
// existing payment fields".
func resolvePayment(paymentType string, chequeDate *string) (*string, *time.Time, error) {
	if paymentType == "" {
		return nil, nil, nil
	}
	if paymentType == model.PaymentCheque {
		if chequeDate == nil || *chequeDate == "" {
			return nil, nil, invalidArgf("cheque payment requires a cheque date")
		}
		d, err := time.Parse("2006-01-02", *chequeDate)
		if err != nil {
			return nil, nil, invalidArgf("invalid cheque date %q", *chequeDate)
		}
		return &paymentType, &d, nil
	}
	return &paymentType, nil, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
