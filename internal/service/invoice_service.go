package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ledgerdesk/internal/dto"
	"ledgerdesk/internal/infra"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/repository"
	"ledgerdesk/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompanyInfo is printed on every invoice.
type CompanyInfo struct {
	Name    string
	Address string
}

type InvoiceService interface {
	// Templates
	CreateTemplate(ctx context.Context, req dto.CreateInvoiceTemplateRequest) (*dto.InvoiceTemplateResponse, error)
	GetTemplate(ctx context.Context, id uint) (*dto.InvoiceTemplateResponse, error)
	ListTemplates(ctx context.Context) ([]dto.InvoiceTemplateResponse, error)
	UpdateTemplate(ctx context.Context, id uint, req dto.UpdateInvoiceTemplateRequest) (*dto.InvoiceTemplateResponse, error)
	DeleteTemplate(ctx context.Context, id uint) error

	// Saved invoices
	SaveInvoice(ctx context.Context, req dto.SaveInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id uint) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context) ([]dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id uint) error

	// Rendering
	RenderPDF(ctx context.Context, saleID uint, templateID *uint) ([]byte, string, error)
	ExportAsync(ctx context.Context, saleID uint, templateID *uint) (*dto.ExportInvoiceResponse, error)
	ExportToFile(ctx context.Context, payload worker.InvoiceExportPayload) error
}

type invoiceService struct {
	repo       repository.InvoiceRepository
	saleRepo   repository.SaleRepository
	dispatcher *worker.Dispatcher
	money      *infra.CurrencyFormatter
	company    CompanyInfo
	exportDir  string
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	saleRepo repository.SaleRepository,
	dispatcher *worker.Dispatcher,
	money *infra.CurrencyFormatter,
	company CompanyInfo,
	exportDir string,
) InvoiceService {
	return &invoiceService{
		repo:       repo,
		saleRepo:   saleRepo,
		dispatcher: dispatcher,
		money:      money,
		company:    company,
		exportDir:  exportDir,
	}
}

// ── Templates ────────────────────────────────────────────────────────────────

func (s *invoiceService) CreateTemplate(ctx context.Context, req dto.CreateInvoiceTemplateRequest) (*dto.InvoiceTemplateResponse, error) {
	data, err := json.Marshal(req.Data)
	if err != nil {
		return nil, invalidArgf("invalid template data: %v", err)
	}
	t := model.InvoiceTemplate{Name: req.Name, Data: string(data)}
	if err := s.repo.CreateTemplate(ctx, &t); err != nil {
		return nil, err
	}
	return templateToResponse(&t)
}

func (s *invoiceService) GetTemplate(ctx context.Context, id uint) (*dto.InvoiceTemplateResponse, error) {
	t, err := s.repo.FindTemplateByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return templateToResponse(t)
}

func (s *invoiceService) ListTemplates(ctx context.Context) ([]dto.InvoiceTemplateResponse, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceTemplateResponse, 0, len(templates))
	for i := range templates {
		resp, err := templateToResponse(&templates[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *invoiceService) UpdateTemplate(ctx context.Context, id uint, req dto.UpdateInvoiceTemplateRequest) (*dto.InvoiceTemplateResponse, error) {
	t, err := s.repo.FindTemplateByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	data, err := json.Marshal(req.Data)
	if err != nil {
		return nil, invalidArgf("invalid template data: %v", err)
	}
	t.Name = req.Name
	t.Data = string(data)
	if err := s.repo.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return templateToResponse(t)
}

func (s *invoiceService) DeleteTemplate(ctx context.Context, id uint) error {
	if _, err := s.repo.FindTemplateByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return s.repo.DeleteTemplate(ctx, id)
}

// ── Saved invoices ───────────────────────────────────────────────────────────

// SaveInvoice records that an invoice was issued for a sale. The number is
// INV-{year}-{saleID, zero padded}, so a sale keeps the same number when the
// invoice is re-issued.
func (s *invoiceService) SaveInvoice(ctx context.Context, req dto.SaveInvoiceRequest) (*dto.InvoiceResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, req.SaleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	inv := model.Invoice{
		SaleID:        sale.ID,
		InvoiceNumber: invoiceNumber(sale),
		TemplateType:  "standard",
	}
	if req.TemplateID != nil {
		t, err := s.repo.FindTemplateByID(ctx, *req.TemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTemplateNotFound
			}
			return nil, err
		}
		inv.TemplateType = t.Name
		inv.TemplateData = &t.Data
	}

	if err := s.repo.Create(ctx, &inv); err != nil {
		return nil, err
	}
	return invoiceToResponse(&inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uint) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return invoiceToResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]dto.InvoiceResponse, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		out = append(out, *invoiceToResponse(&invoices[i]))
	}
	return out, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvoiceNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ── Rendering ────────────────────────────────────────────────────────────────

func (s *invoiceService) RenderPDF(ctx context.Context, saleID uint, templateID *uint) ([]byte, string, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSaleNotFound
		}
		return nil, "", err
	}

	var tpl *dto.InvoiceTemplateData
	if templateID != nil {
		t, err := s.repo.FindTemplateByID(ctx, *templateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrTemplateNotFound
			}
			return nil, "", err
		}
		var parsed dto.InvoiceTemplateData
		if err := json.Unmarshal([]byte(t.Data), &parsed); err != nil {
			return nil, "", fmt.Errorf("template %d: %w", t.ID, err)
		}
		tpl = &parsed
	}

	number := invoiceNumber(sale)
	pdfBytes, err := infra.RenderInvoicePDF(s.buildInvoiceData(sale, number), tpl, s.money)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, number + ".pdf", nil
}

// ExportAsync queues the PDF export onto the worker pool and returns the
// destination path straight away.
func (s *invoiceService) ExportAsync(ctx context.Context, saleID uint, templateID *uint) (*dto.ExportInvoiceResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	path := filepath.Join(s.exportDir, invoiceNumber(sale)+".pdf")
	err = s.dispatcher.EnqueueInvoiceExport(ctx, worker.InvoiceExportPayload{
		SaleID:     saleID,
		TemplateID: templateID,
		OutputPath: path,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ExportInvoiceResponse{Success: true, Path: path}, nil
}

// ExportToFile renders the invoice and writes it to the payload's path.
// Runs on the worker pool.
func (s *invoiceService) ExportToFile(ctx context.Context, payload worker.InvoiceExportPayload) error {
	pdfBytes, _, err := s.RenderPDF(ctx, payload.SaleID, payload.TemplateID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(payload.OutputPath), 0755); err != nil {
		return fmt.Errorf("invoice export: %w", err)
	}
	return os.WriteFile(payload.OutputPath, pdfBytes, 0644)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func invoiceNumber(sale *model.Sale) string {
	return fmt.Sprintf("INV-%d-%04d", sale.SaleDate.Year(), sale.ID)
}

func (s *invoiceService) buildInvoiceData(sale *model.Sale, number string) infra.InvoiceData {
	data := infra.InvoiceData{
		InvoiceNumber:  number,
		Date:           sale.SaleDate,
		CompanyName:    s.company.Name,
		CompanyAddress: s.company.Address,
		Total:          sale.TotalAmount,
	}
	if sale.PaymentType != nil {
		data.PaymentType = *sale.PaymentType
	}
	if sale.ChequeDate != nil {
		data.ChequeDate = sale.ChequeDate.Format("2006-01-02")
	}
	if sale.Customer != nil {
		data.CustomerName = sale.Customer.Name
		if sale.Customer.Address != nil {
			data.CustomerAddress = *sale.Customer.Address
		}
		if sale.Customer.Phone != nil {
			data.CustomerPhone = *sale.Customer.Phone
		}
	}
	for _, item := range sale.Items {
		line := infra.InvoiceLine{
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
		if item.Product != nil {
			line.Name = item.Product.Name
			if item.Product.Barcode != nil {
				line.Barcode = *item.Product.Barcode
			}
		}
		data.Lines = append(data.Lines, line)
	}
	return data
}

func templateToResponse(t *model.InvoiceTemplate) (*dto.InvoiceTemplateResponse, error) {
	var data dto.InvoiceTemplateData
	if err := json.Unmarshal([]byte(t.Data), &data); err != nil {
		return nil, fmt.Errorf("template %d: %w", t.ID, err)
	}
	return &dto.InvoiceTemplateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Data:      data,
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

func invoiceToResponse(inv *model.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		SaleID:        inv.SaleID,
		InvoiceNumber: inv.InvoiceNumber,
		TemplateType:  inv.TemplateType,
		CreatedAt:     inv.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
