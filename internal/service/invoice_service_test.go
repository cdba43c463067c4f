package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ledgerdesk/internal/dto"
	"ledgerdesk/internal/infra"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/repository"
	"ledgerdesk/internal/service"
	"ledgerdesk/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func buildInvoiceSvc(t *testing.T) (service.InvoiceService, *gorm.DB, *worker.Dispatcher, string) {
	t.Helper()
	db := openTestDB(t)
	money, err := infra.NewCurrencyFormatter("en", "USD")
	require.NoError(t, err)
	dispatcher := worker.NewDispatcher(8)
	exportDir := t.TempDir()
	svc := service.NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewSaleRepository(db),
		dispatcher,
		money,
		service.CompanyInfo{Name: "Ledger Desk Ltd", Address: "1 Main St"},
		exportDir,
	)
	return svc, db, dispatcher, exportDir
}

func seedSaleWithItems(t *testing.T, db *gorm.DB, saleDate string) *model.Sale {
	t.Helper()
	p := mustCreateProduct(t, db, "Office chair", 90.00, 55.00, 10)
	day, err := time.Parse("2006-01-02", saleDate)
	require.NoError(t, err)
	payment := model.PaymentCash
	sale := &model.Sale{
		TotalAmount: decimal.NewFromFloat(180),
		SaleDate:    day,
		PaymentType: &payment,
		Items: []model.SaleItem{
			{ProductID: p.ID, Quantity: 2, Price: decimal.NewFromFloat(90)},
		},
	}
	require.NoError(t, db.Create(sale).Error)
	return sale
}

func TestSaveInvoice_NumberFromSaleYearAndID(t *testing.T) {
	svc, db, _, _ := buildInvoiceSvc(t)
	sale := seedSaleWithItems(t, db, "2026-03-05")

	resp, err := svc.SaveInvoice(context.Background(), dto.SaveInvoiceRequest{SaleID: sale.ID})
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", resp.InvoiceNumber)
	assert.Equal(t, "standard", resp.TemplateType)
}

func TestSaveInvoice_SaleNotFound(t *testing.T) {
	svc, _, _, _ := buildInvoiceSvc(t)
	_, err := svc.SaveInvoice(context.Background(), dto.SaveInvoiceRequest{SaleID: 12})
	assert.ErrorIs(t, err, service.ErrSaleNotFound)
}

func TestSaveInvoice_SnapshotsTemplate(t *testing.T) {
	svc, db, _, _ := buildInvoiceSvc(t)
	sale := seedSaleWithItems(t, db, "2026-03-06")

	tpl, err := svc.CreateTemplate(context.Background(), dto.CreateInvoiceTemplateRequest{
		Name: "carbon-copy",
		Data: dto.InvoiceTemplateData{
			Fields: map[string]dto.FieldSetting{
				"invoiceNumber": {X: 150, Y: 20},
				"total":         {X: 150, Y: 90, Size: 14},
			},
			Copy: true,
		},
	})
	require.NoError(t, err)

	resp, err := svc.SaveInvoice(context.Background(), dto.SaveInvoiceRequest{
		SaleID:     sale.ID,
		TemplateID: &tpl.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "carbon-copy", resp.TemplateType)
}

func TestTemplateCRUD_RoundTripsLayout(t *testing.T) {
	svc, _, _, _ := buildInvoiceSvc(t)

	created, err := svc.CreateTemplate(context.Background(), dto.CreateInvoiceTemplateRequest{
		Name: "half-page",
		Data: dto.InvoiceTemplateData{
			Fields: map[string]dto.FieldSetting{
				"customerName": {X: 20, Y: 40, Size: 11},
				"itemName":     {X: 20, Y: 70},
			},
			SelectedFields: []string{"customerName", "itemName"},
			RowGap:         8,
		},
	})
	require.NoError(t, err)

	got, err := svc.GetTemplate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got.Data.RowGap)
	assert.Equal(t, 11.0, got.Data.Fields["customerName"].Size)
	assert.Equal(t, []string{"customerName", "itemName"}, got.Data.SelectedFields)

	got.Data.RowGap = 10
	updated, err := svc.UpdateTemplate(context.Background(), created.ID, dto.UpdateInvoiceTemplateRequest{
		Name: "half-page",
		Data: got.Data,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, updated.Data.RowGap)

	require.NoError(t, svc.DeleteTemplate(context.Background(), created.ID))
	_, err = svc.GetTemplate(context.Background(), created.ID)
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)
}

func TestRenderPDF_DefaultLayout(t *testing.T) {
	svc, db, _, _ := buildInvoiceSvc(t)
	sale := seedSaleWithItems(t, db, "2026-03-07")

	pdfBytes, filename, err := svc.RenderPDF(context.Background(), sale.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001.pdf", filename)
	require.Greater(t, len(pdfBytes), 4)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestRenderPDF_TemplateLayout(t *testing.T) {
	svc, db, _, _ := buildInvoiceSvc(t)
	sale := seedSaleWithItems(t, db, "2026-03-08")

	tpl, err := svc.CreateTemplate(context.Background(), dto.CreateInvoiceTemplateRequest{
		Name: "positioned",
		Data: dto.InvoiceTemplateData{
			Fields: map[string]dto.FieldSetting{
				"invoiceNumber": {X: 160, Y: 15},
				"itemName":      {X: 15, Y: 60},
				"itemTotal":     {X: 170, Y: 60},
			},
		},
	})
	require.NoError(t, err)

	pdfBytes, _, err := svc.RenderPDF(context.Background(), sale.ID, &tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestRenderPDF_TemplateNotFound(t *testing.T) {
	svc, db, _, _ := buildInvoiceSvc(t)
	sale := seedSaleWithItems(t, db, "2026-03-09")

	missing := uint(77)
	_, _, err := svc.RenderPDF(context.Background(), sale.ID, &missing)
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)
}

func TestExportAsync_EnqueuesAndReportsPath(t *testing.T) {
	svc, db, _, exportDir := buildInvoiceSvc(t)
	sale := seedSaleWithItems(t, db, "2026-03-10")

	resp, err := svc.ExportAsync(context.Background(), sale.ID, nil)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, filepath.Join(exportDir, "INV-2026-0001.pdf"), resp.Path)
}

func TestExportToFile_WritesPDF(t *testing.T) {
	svc, db, _, exportDir := buildInvoiceSvc(t)
	sale := seedSaleWithItems(t, db, "2026-03-11")

	path := filepath.Join(exportDir, "out", "INV-2026-0001.pdf")
	err := svc.ExportToFile(context.Background(), worker.InvoiceExportPayload{
		SaleID:     sale.ID,
		OutputPath: path,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
