package repository

import (
	"time"

	"go-cafe-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	FindByUser(userID uuid.UUID, from, to *time.Time) ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindItems(from, to *time.Time) ([]model.SaleItem, error)
	SetPaidStatus(id uuid.UUID, isPaid bool) (int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindByUser(userID uuid.UUID, from, to *time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.Preload("Items").Preload("Items.MenuItem").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if from != nil && to != nil {
		q = q.Where("created_at BETWEEN ? AND ?", from, to)
	}
	err := q.Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").Preload("Items.MenuItem").First(&sale, "id = ?", id).Error
	return &sale, err
}

// FindItems returns the flat line-item view used by the dashboard charts.
// The date filter applies to the owning sale, not the item row.
func (r *saleRepo) FindItems(from, to *time.Time) ([]model.SaleItem, error) {
	var items []model.SaleItem
	q := r.db.Preload("MenuItem").
		Joins("JOIN sales ON sales.id = sale_items.sale_id AND sales.deleted_at IS NULL")
	if from != nil && to != nil {
		q = q.Where("sales.created_at BETWEEN ? AND ?", from, to)
	}
	err := q.Find(&items).Error
	return items, err
}

// SetPaidStatus returns the number of rows touched so the caller can
// distinguish a missing sale from a no-op toggle
func (r *saleRepo) SetPaidStatus(id uuid.UUID, isPaid bool) (int64, error) {
	res := r.db.Model(&model.Sale{}).Where("id = ?", id).Update("is_paid", isPaid)
	return res.RowsAffected, res.Error
}
