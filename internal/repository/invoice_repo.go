package repository

import (
	"context"

	"ledgerdesk/internal/model"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	// Templates
	CreateTemplate(ctx context.Context, t *model.InvoiceTemplate) error
	FindTemplateByID(ctx context.Context, id uint) (*model.InvoiceTemplate, error)
	ListTemplates(ctx context.Context) ([]model.InvoiceTemplate, error)
	UpdateTemplate(ctx context.Context, t *model.InvoiceTemplate) error
	DeleteTemplate(ctx context.Context, id uint) error

	// Saved invoices
	Create(ctx context.Context, inv *model.Invoice) error
	FindByID(ctx context.Context, id uint) (*model.Invoice, error)
	FindBySaleID(ctx context.Context, saleID uint) (*model.Invoice, error)
	List(ctx context.Context) ([]model.Invoice, error)
	Delete(ctx context.Context, id uint) error

	DB() *gorm.DB
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) CreateTemplate(ctx context.Context, t *model.InvoiceTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *invoiceRepo) FindTemplateByID(ctx context.Context, id uint) (*model.InvoiceTemplate, error) {
	var t model.InvoiceTemplate
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *invoiceRepo) ListTemplates(ctx context.Context) ([]model.InvoiceTemplate, error) {
	var templates []model.InvoiceTemplate
	err := r.db.WithContext(ctx).Order("name ASC").Find(&templates).Error
	return templates, err
}

func (r *invoiceRepo) UpdateTemplate(ctx context.Context, t *model.InvoiceTemplate) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *invoiceRepo) DeleteTemplate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.InvoiceTemplate{}, id).Error
}

func (r *invoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uint) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Preload("Sale").First(&inv, id).Error
	return &inv, err
}

func (r *invoiceRepo) FindBySaleID(ctx context.Context, saleID uint) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Where("sale_id = ?", saleID).Order("id DESC").First(&inv).Error
	return &inv, err
}

func (r *invoiceRepo) List(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Invoice{}, id).Error
}
