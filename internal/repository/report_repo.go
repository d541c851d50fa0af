package repository

import (
	"time"

	"go-cafe-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportRepository interface {
	GetSalesSummary(userID uuid.UUID, from, to *time.Time) (*SalesSummary, error)
	GetExpenseTotal(userID uuid.UUID, from, to *time.Time) (decimal.Decimal, error)
	GetItemQuantities(from, to *time.Time) ([]ItemQuantity, error)
	GetSalesPerDay(userID uuid.UUID, from, to *time.Time) ([]DailySales, error)
}

// SalesSummary for the dashboard overview cards
type SalesSummary struct {
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// ItemQuantity for the per-menu-item pie chart
type ItemQuantity struct {
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Title      string          `json:"title"`
	Quantity   int64           `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// DailySales for the sales-per-day line chart
type DailySales struct {
	Date    string          `json:"date"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func dateScope(q *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil && to != nil {
		return q.Where(column+" BETWEEN ? AND ?", from, to)
	}
	return q
}

func (r *reportRepo) GetSalesSummary(userID uuid.UUID, from, to *time.Time) (*SalesSummary, error) {
	var summary SalesSummary

	q := dateScope(r.db.Model(&model.Sale{}).Where("user_id = ?", userID), "created_at", from, to)
	if err := q.Count(&summary.TotalSales).Error; err != nil {
		return nil, err
	}

	q = dateScope(r.db.Model(&model.Sale{}).Where("user_id = ?", userID), "created_at", from, to)
	if err := q.Select("COALESCE(SUM(total), 0)").Scan(&summary.TotalRevenue).Error; err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *reportRepo) GetExpenseTotal(userID uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := dateScope(r.db.Model(&model.Expense{}).Where("user_id = ?", userID), "created_at", from, to)
	err := q.Select("COALESCE(SUM(total), 0)").Scan(&total).Error
	return total, err
}

// GetItemQuantities aggregates sold quantities per catalog entry. The catalog
// is shared, so this view is deliberately not user-scoped.
func (r *reportRepo) GetItemQuantities(from, to *time.Time) ([]ItemQuantity, error) {
	var results []ItemQuantity

	q := r.db.Model(&model.SaleItem{}).
		Select(`
			sale_items.menu_item_id as menu_item_id,
			menu_items.title as title,
			COALESCE(SUM(sale_items.quantity), 0) as quantity,
			COALESCE(SUM(sale_items.quantity * menu_items.price), 0) as revenue
		`).
		Joins("JOIN menu_items ON menu_items.id = sale_items.menu_item_id").
		Joins("JOIN sales ON sales.id = sale_items.sale_id AND sales.deleted_at IS NULL").
		Where("sale_items.deleted_at IS NULL")
	q = dateScope(q, "sales.created_at", from, to)

	rows, err := q.Group("sale_items.menu_item_id, menu_items.title").
		Order("quantity DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data ItemQuantity
		if err := rows.Scan(&data.MenuItemID, &data.Title, &data.Quantity, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *reportRepo) GetSalesPerDay(userID uuid.UUID, from, to *time.Time) ([]DailySales, error) {
	var results []DailySales

	q := r.db.Model(&model.Sale{}).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as count,
			COALESCE(SUM(total), 0) as revenue
		`).
		Where("user_id = ?", userID)
	q = dateScope(q, "created_at", from, to)

	rows, err := q.Group("DATE(created_at)").Order("date ASC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySales
		if err := rows.Scan(&data.Date, &data.Count, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
