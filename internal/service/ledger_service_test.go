package service_test

import (
	"context"
	"testing"

	"ledgerdesk/internal/dto"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/repository"
	"ledgerdesk/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository. Tx methods ignore the
// (nil) tx: runTx calls them directly in unit-test mode.
type stubProductRepo struct {
	products map[uint]*model.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error { return r.CreateTx(nil, p) }

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error { return r.UpdateTx(nil, p) }

func (r *stubProductRepo) UpdateTx(_ *gorm.DB, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uint, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubProductRepo) DecrementStockGuardedTx(_ *gorm.DB, id uint, qty int) (bool, error) {
	p, ok := r.products[id]
	if !ok || p.StockQuantity < qty {
		return false, nil
	}
	p.StockQuantity -= qty
	return true, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubSaleRepo is an in-memory SaleRepository.
type stubSaleRepo struct {
	sales      map[uint]*model.Sale
	items      map[uint][]model.SaleItem
	nextID     uint
	nextItemID uint
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{
		sales: make(map[uint]*model.Sale),
		items: make(map[uint][]model.SaleItem),
	}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	r.nextID++
	s.ID = r.nextID
	for i := range s.Items {
		r.nextItemID++
		s.Items[i].ID = r.nextItemID
		s.Items[i].SaleID = s.ID
	}
	cp := *s
	r.sales[s.ID] = &cp
	r.items[s.ID] = append([]model.SaleItem(nil), s.Items...)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uint) (*model.Sale, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubSaleRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	cp.Items = append([]model.SaleItem(nil), r.items[id]...)
	return &cp, nil
}

func (r *stubSaleRepo) FindItemsTx(_ *gorm.DB, saleID uint) ([]model.SaleItem, error) {
	return append([]model.SaleItem(nil), r.items[saleID]...), nil
}

func (r *stubSaleRepo) InsertItemsTx(_ *gorm.DB, items []model.SaleItem) error {
	for i := range items {
		r.nextItemID++
		items[i].ID = r.nextItemID
		r.items[items[i].SaleID] = append(r.items[items[i].SaleID], items[i])
	}
	return nil
}

func (r *stubSaleRepo) DeleteItemsTx(_ *gorm.DB, saleID uint) error {
	r.items[saleID] = nil
	return nil
}

func (r *stubSaleRepo) UpdateTx(_ *gorm.DB, s *model.Sale) error {
	stored, ok := r.sales[s.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.CustomerID = s.CustomerID
	stored.TotalAmount = s.TotalAmount
	stored.PaymentType = s.PaymentType
	stored.ChequeDate = s.ChequeDate
	return nil
}

func (r *stubSaleRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.sales, id)
	delete(r.items, id)
	return nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubCustomerRepo holds customers keyed by ID.
type stubCustomerRepo struct {
	customers map[uint]*model.Customer
	nextID    uint
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uint]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	r.nextID++
	c.ID = r.nextID
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uint) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) List(_ context.Context, _ dto.CustomerFilter) ([]model.Customer, int64, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	if _, ok := r.customers[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uint) error {
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) DB() *gorm.DB { return nil }

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// stubExpenseRepo captures created expenses for assertion.
type stubExpenseRepo struct {
	expenses []model.Expense
	nextID   uint
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error { return r.CreateTx(nil, e) }

func (r *stubExpenseRepo) CreateTx(_ *gorm.DB, e *model.Expense) error {
	r.nextID++
	e.ID = r.nextID
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id uint) (*model.Expense, error) {
	for i := range r.expenses {
		if r.expenses[i].ID == id {
			cp := r.expenses[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubExpenseRepo) List(_ context.Context, _ dto.ExpenseFilter) ([]model.Expense, int64, error) {
	return append([]model.Expense(nil), r.expenses...), int64(len(r.expenses)), nil
}

func (r *stubExpenseRepo) Update(_ context.Context, e *model.Expense) error {
	for i := range r.expenses {
		if r.expenses[i].ID == e.ID {
			r.expenses[i] = *e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubExpenseRepo) Delete(_ context.Context, id uint) error {
	for i := range r.expenses {
		if r.expenses[i].ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubExpenseRepo) DB() *gorm.DB { return nil }

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildLedgerSvc() (service.LedgerService, *stubSaleRepo, *stubProductRepo, *stubCustomerRepo, *stubExpenseRepo) {
	saleRepo := newStubSaleRepo()
	productRepo := newStubProductRepo()
	customerRepo := newStubCustomerRepo()
	expenseRepo := &stubExpenseRepo{}
	svc := service.NewLedgerService(saleRepo, productRepo, customerRepo, expenseRepo)
	return svc, saleRepo, productRepo, customerRepo, expenseRepo
}

func seedProduct(repo *stubProductRepo, name string, price, purchasePrice float64, stock int) *model.Product {
	p := &model.Product{
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		PurchasePrice: decimal.NewFromFloat(purchasePrice),
		StockQuantity: stock,
		VATRate:       decimal.NewFromInt(18),
	}
	_ = repo.Create(context.Background(), p)
	return p
}

func seedCustomer(repo *stubCustomerRepo, name string) *model.Customer {
	c := &model.Customer{Name: name}
	_ = repo.Create(context.Background(), c)
	return c
}

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// ── CreateSale ────────────────────────────────────────────────────────────────

func TestCreateSale_ComputesTotalAndDecrementsStock(t *testing.T) {
	svc, saleRepo, productRepo, customerRepo, _ := buildLedgerSvc()
	p1 := seedProduct(productRepo, "Notebook", 4.50, 2.00, 10)
	p2 := seedProduct(productRepo, "Pen", 1.25, 0.40, 30)
	cust := seedCustomer(customerRepo, "Acme Ltd")

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: &cust.ID,
		Items: []dto.SaleItemRequest{
			{ProductID: p1.ID, Quantity: 2, Price: d(4.50)},
			{ProductID: p2.ID, Quantity: 4, Price: d(1.25)},
		},
		PaymentType: model.PaymentCash,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	stored, err := saleRepo.FindByID(context.Background(), resp.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "14", stored.TotalAmount.String()) // 2×4.50 + 4×1.25
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, 8, productRepo.products[p1.ID].StockQuantity)
	assert.Equal(t, 26, productRepo.products[p2.ID].StockQuantity)
}

func TestCreateSale_SuppliedTotalIsIgnored(t *testing.T) {
	svc, saleRepo, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Stapler", 10.00, 4.00, 5)

	wrong := d(999)
	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 3, Price: d(10)}},
		TotalAmount: &wrong,
	})
	require.NoError(t, err)

	stored, _ := saleRepo.FindByID(context.Background(), resp.SaleID)
	assert.Equal(t, "30", stored.TotalAmount.String())
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	svc, saleRepo, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Envelope", 0.50, 0.10, 2)

	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 5, Price: d(0.50)}},
	})

	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p.ID, stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// Rejected before any mutation: stock and ledger untouched.
	assert.Equal(t, 2, productRepo.products[p.ID].StockQuantity)
	assert.Empty(t, saleRepo.sales)
}

func TestCreateSale_DuplicateLinesCaughtByGuard(t *testing.T) {
	svc, _, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Tape", 2.00, 0.80, 5)

	// Each line passes the per-line check (3 ≤ 5, 4 ≤ 5) but their sum does
	// not. The guarded decrement rejects the second line.
	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: p.ID, Quantity: 3, Price: d(2)},
			{ProductID: p.ID, Quantity: 4, Price: d(2)},
		},
	})

	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 4, stockErr.Requested)
}

func TestCreateSale_ProductNotFound(t *testing.T) {
	svc, _, _, _, _ := buildLedgerSvc()

	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: 99, Quantity: 1, Price: d(1)}},
	})
	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestCreateSale_CustomerNotFound(t *testing.T) {
	svc, _, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Ruler", 1.00, 0.30, 10)

	missing := uint(42)
	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: &missing,
		Items:      []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 1, Price: d(1)}},
	})
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestCreateSale_ChequeRequiresDate(t *testing.T) {
	svc, _, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Binder", 3.00, 1.00, 10)

	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 1, Price: d(3)}},
		PaymentType: model.PaymentCheque,
	})

	var invalidErr *service.InvalidArgumentError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestCreateSale_ChequeStoresDate(t *testing.T) {
	svc, saleRepo, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Marker", 2.00, 0.70, 10)

	date := "2026-09-15"
	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 1, Price: d(2)}},
		PaymentType: model.PaymentCheque,
		ChequeDate:  &date,
	})
	require.NoError(t, err)

	stored, _ := saleRepo.FindByID(context.Background(), resp.SaleID)
	require.NotNil(t, stored.ChequeDate)
	assert.Equal(t, date, stored.ChequeDate.Format("2006-01-02"))
	assert.Equal(t, model.PaymentCheque, *stored.PaymentType)
}

// ── UpdateSale ────────────────────────────────────────────────────────────────

func TestUpdateSale_ReusesAllocatedStock(t *testing.T) {
	svc, _, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Clip", 0.20, 0.05, 5)

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 5, Price: d(0.20)}},
	})
	require.NoError(t, err)
	require.Equal(t, 0, productRepo.products[p.ID].StockQuantity)

	// Stock on hand is zero, but the sale already holds 5 units, so keeping
	// the same quantity must succeed.
	_, err = svc.UpdateSale(context.Background(), resp.SaleID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 5, Price: d(0.25)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, productRepo.products[p.ID].StockQuantity)

	// One more than on hand plus allocated must fail.
	_, err = svc.UpdateSale(context.Background(), resp.SaleID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 6, Price: d(0.25)}},
	})
	var stockErr *service.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
}

func TestUpdateSale_ReplacesItemsAndRecomputesTotal(t *testing.T) {
	svc, saleRepo, productRepo, _, _ := buildLedgerSvc()
	p1 := seedProduct(productRepo, "Folder", 1.50, 0.50, 10)
	p2 := seedProduct(productRepo, "Label", 0.75, 0.25, 20)

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p1.ID, Quantity: 4, Price: d(1.50)}},
	})
	require.NoError(t, err)
	require.Equal(t, 6, productRepo.products[p1.ID].StockQuantity)

	_, err = svc.UpdateSale(context.Background(), resp.SaleID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: p1.ID, Quantity: 1, Price: d(1.50)},
			{ProductID: p2.ID, Quantity: 2, Price: d(0.75)},
		},
	})
	require.NoError(t, err)

	// p1: 6 + 4 restored − 1 = 9; p2: 20 − 2 = 18.
	assert.Equal(t, 9, productRepo.products[p1.ID].StockQuantity)
	assert.Equal(t, 18, productRepo.products[p2.ID].StockQuantity)

	stored, _ := saleRepo.FindByID(context.Background(), resp.SaleID)
	assert.Equal(t, "3", stored.TotalAmount.String())
	assert.Len(t, stored.Items, 2)
}

func TestUpdateSale_EmptyPaymentTypeKeepsFields(t *testing.T) {
	svc, saleRepo, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Glue", 2.50, 1.00, 10)

	date := "2026-10-01"
	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 1, Price: d(2.50)}},
		PaymentType: model.PaymentCheque,
		ChequeDate:  &date,
	})
	require.NoError(t, err)

	_, err = svc.UpdateSale(context.Background(), resp.SaleID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 2, Price: d(2.50)}},
	})
	require.NoError(t, err)

	stored, _ := saleRepo.FindByID(context.Background(), resp.SaleID)
	require.NotNil(t, stored.PaymentType)
	assert.Equal(t, model.PaymentCheque, *stored.PaymentType)
	require.NotNil(t, stored.ChequeDate)
	assert.Equal(t, date, stored.ChequeDate.Format("2006-01-02"))
}

func TestUpdateSale_NotFound(t *testing.T) {
	svc, _, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Eraser", 0.80, 0.30, 10)

	_, err := svc.UpdateSale(context.Background(), 777, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 1, Price: d(0.80)}},
	})
	assert.ErrorIs(t, err, service.ErrSaleNotFound)
}

// ── DeleteSale ────────────────────────────────────────────────────────────────

func TestDeleteSale_RestoresStock(t *testing.T) {
	svc, saleRepo, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Scissors", 5.00, 2.00, 10)

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 3, Price: d(5)}},
	})
	require.NoError(t, err)
	require.Equal(t, 7, productRepo.products[p.ID].StockQuantity)

	delResp, err := svc.DeleteSale(context.Background(), resp.SaleID)
	require.NoError(t, err)
	assert.Equal(t, resp.SaleID, delResp.ID)
	assert.Equal(t, 10, productRepo.products[p.ID].StockQuantity)
	assert.Empty(t, saleRepo.sales)
}

func TestDeleteSale_NotFound(t *testing.T) {
	svc, _, _, _, _ := buildLedgerSvc()
	_, err := svc.DeleteSale(context.Background(), 123)
	assert.ErrorIs(t, err, service.ErrSaleNotFound)
}

// ── Restock ───────────────────────────────────────────────────────────────────

func TestRestock_PositiveCreatesPurchaseExpense(t *testing.T) {
	svc, _, productRepo, _, expenseRepo := buildLedgerSvc()
	p := seedProduct(productRepo, "Paper A4", 6.00, 3.50, 2)

	resp, err := svc.Restock(context.Background(), p.ID, dto.RestockRequest{Quantity: 10})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.ExpenseCreated)
	require.NotNil(t, resp.ExpenseAmount)
	assert.Equal(t, "35", resp.ExpenseAmount.String()) // 3.50 × 10

	assert.Equal(t, 12, productRepo.products[p.ID].StockQuantity)
	require.Len(t, expenseRepo.expenses, 1)
	exp := expenseRepo.expenses[0]
	assert.Equal(t, "35", exp.Amount.String())
	require.NotNil(t, exp.Category)
	assert.Equal(t, model.CategoryPurchase, *exp.Category)
}

func TestRestock_NoPurchasePriceNoExpense(t *testing.T) {
	svc, _, productRepo, _, expenseRepo := buildLedgerSvc()
	p := seedProduct(productRepo, "Sample item", 1.00, 0, 0)

	resp, err := svc.Restock(context.Background(), p.ID, dto.RestockRequest{Quantity: 5})
	require.NoError(t, err)
	assert.False(t, resp.ExpenseCreated)
	assert.Nil(t, resp.ExpenseAmount)
	assert.Equal(t, 5, productRepo.products[p.ID].StockQuantity)
	assert.Empty(t, expenseRepo.expenses)
}

func TestRestock_ZeroIsNoop(t *testing.T) {
	svc, _, productRepo, _, expenseRepo := buildLedgerSvc()
	p := seedProduct(productRepo, "Pencil", 0.50, 0.20, 8)

	resp, err := svc.Restock(context.Background(), p.ID, dto.RestockRequest{Quantity: 0})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.ExpenseCreated)
	assert.Equal(t, 8, productRepo.products[p.ID].StockQuantity)
	assert.Empty(t, expenseRepo.expenses)
}

func TestRestock_NegativeGuardsAgainstNegativeStock(t *testing.T) {
	svc, _, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Highlighter", 1.80, 0.60, 3)

	// Adjusting down within stock is fine.
	_, err := svc.Restock(context.Background(), p.ID, dto.RestockRequest{Quantity: -2})
	require.NoError(t, err)
	assert.Equal(t, 1, productRepo.products[p.ID].StockQuantity)

	// Below zero is rejected.
	_, err = svc.Restock(context.Background(), p.ID, dto.RestockRequest{Quantity: -2})
	var stockErr *service.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, productRepo.products[p.ID].StockQuantity)
}

func TestRestock_ProductNotFound(t *testing.T) {
	svc, _, _, _, _ := buildLedgerSvc()
	_, err := svc.Restock(context.Background(), 404, dto.RestockRequest{Quantity: 1})
	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func TestGetSaleDetails_NotFound(t *testing.T) {
	svc, _, _, _, _ := buildLedgerSvc()
	_, err := svc.GetSaleDetails(context.Background(), 9)
	assert.ErrorIs(t, err, service.ErrSaleNotFound)
}

func TestGetSaleDetails_ItemTotals(t *testing.T) {
	svc, saleRepo, productRepo, _, _ := buildLedgerSvc()
	p := seedProduct(productRepo, "Calculator", 12.00, 7.00, 5)

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 3, Price: d(12)}},
	})
	require.NoError(t, err)

	// The stub does not preload products; attach one like the real repo would.
	for i := range saleRepo.items[resp.SaleID] {
		saleRepo.items[resp.SaleID][i].Product = productRepo.products[p.ID]
	}

	details, err := svc.GetSaleDetails(context.Background(), resp.SaleID)
	require.NoError(t, err)
	require.Len(t, details.Items, 1)
	assert.Equal(t, "36", details.Items[0].ItemTotal.String())
	assert.Equal(t, "Calculator", details.Items[0].ProductName)
	assert.Equal(t, "36", details.Sale.TotalAmount.String())
}
