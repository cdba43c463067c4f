package repository

import (
	"context"

	"ledgerdesk/internal/dto"
	"ledgerdesk/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Sale, error)
	FindItemsTx(tx *gorm.DB, saleID uint) ([]model.SaleItem, error)
	InsertItemsTx(tx *gorm.DB, items []model.SaleItem) error
	DeleteItemsTx(tx *gorm.DB, saleID uint) error
	UpdateTx(tx *gorm.DB, s *model.Sale) error
	DeleteTx(tx *gorm.DB, id uint) error
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Customer").Preload("Items.Product").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Sale, error) {
	var s model.Sale
	err := tx.First(&s, id).Error
	return &s, err
}

func (r *saleRepo) FindItemsTx(tx *gorm.DB, saleID uint) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := tx.Where("sale_id = ?", saleID).Find(&items).Error
	return items, err
}

func (r *saleRepo) InsertItemsTx(tx *gorm.DB, items []model.SaleItem) error {
	return tx.Create(&items).Error
}

func (r *saleRepo) DeleteItemsTx(tx *gorm.DB, saleID uint) error {
	return tx.Where("sale_id = ?", saleID).Delete(&model.SaleItem{}).Error
}

func (r *saleRepo) UpdateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Model(&model.Sale{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"customer_id":  s.CustomerID,
		"total_amount": s.TotalAmount,
		"payment_type": s.PaymentType,
		"cheque_date":  s.ChequeDate,
	}).Error
}

func (r *saleRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Sale{}, id).Error
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.StartDate != "" {
		q = q.Where("DATE(sale_date) >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("DATE(sale_date) <= ?", filter.EndDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").
		Order("sale_date DESC, id DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}
