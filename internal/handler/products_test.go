package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"ledgerdesk/internal/dto"
	"ledgerdesk/internal/handler"
	"ledgerdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductSvc struct {
	createResp *dto.ProductResponse
	createErr  error
	getErr     error
}

func (s *stubProductSvc) Create(_ context.Context, _ dto.CreateProductRequest) (*dto.ProductResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubProductSvc) Get(_ context.Context, _ uint) (*dto.ProductResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &dto.ProductResponse{}, nil
}

func (s *stubProductSvc) List(_ context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	return &dto.ProductListResponse{Data: []dto.ProductResponse{}, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *stubProductSvc) Update(_ context.Context, _ uint, _ dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	return &dto.ProductResponse{}, nil
}

func (s *stubProductSvc) Delete(_ context.Context, _ uint) error { return nil }

var _ service.ProductService = (*stubProductSvc)(nil)

func newProductsRouter(svc *stubProductSvc, ledger *stubLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewProductsHandler(svc, ledger)
	r.POST("/v1/products", h.Create)
	r.GET("/v1/products/:id", h.Get)
	r.PATCH("/v1/products/:id/stock", h.Restock)
	return r
}

func TestProductsCreate_MissingNameIs422(t *testing.T) {
	r := newProductsRouter(&stubProductSvc{}, &stubLedger{})

	w := doJSON(t, r, http.MethodPost, "/v1/products", map[string]interface{}{
		"price": "4.50",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "Name")
}

func TestProductsCreate_Returns201(t *testing.T) {
	svc := &stubProductSvc{createResp: &dto.ProductResponse{
		ID:    1,
		Name:  "Notebook",
		Price: decimal.NewFromFloat(4.5),
	}}
	r := newProductsRouter(svc, &stubLedger{})

	w := doJSON(t, r, http.MethodPost, "/v1/products", dto.CreateProductRequest{
		Name:  "Notebook",
		Price: decimal.NewFromFloat(4.5),
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestProductsGet_NotFoundIs404(t *testing.T) {
	r := newProductsRouter(&stubProductSvc{getErr: service.ErrProductNotFound}, &stubLedger{})
	w := doJSON(t, r, http.MethodGet, "/v1/products/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRestock_PassesSignedDelta(t *testing.T) {
	ledger := &stubLedger{}
	r := newProductsRouter(&stubProductSvc{}, ledger)

	w := doJSON(t, r, http.MethodPatch, "/v1/products/3/stock", dto.RestockRequest{Quantity: -2})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ledger.lastRestock)
	assert.Equal(t, -2, ledger.lastRestock.Quantity)
}

func TestRestock_BelowZeroIs409(t *testing.T) {
	ledger := &stubLedger{restockErr: &service.InsufficientStockError{
		ProductID: 3, Product: "Tape", Requested: 5, Available: 1,
	}}
	r := newProductsRouter(&stubProductSvc{}, ledger)

	w := doJSON(t, r, http.MethodPatch, "/v1/products/3/stock", dto.RestockRequest{Quantity: -5})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRestock_ProductNotFoundIs404(t *testing.T) {
	ledger := &stubLedger{restockErr: service.ErrProductNotFound}
	r := newProductsRouter(&stubProductSvc{}, ledger)

	w := doJSON(t, r, http.MethodPatch, "/v1/products/44/stock", dto.RestockRequest{Quantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
