package repository

import (
	"time"

	"go-cafe-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	FindByUser(userID uuid.UUID, from, to *time.Time) ([]model.Expense, error)
	FindByID(id uuid.UUID) (*model.Expense, error)
	Update(expense *model.Expense) error
	Delete(id uuid.UUID) (int64, error)
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepo) FindByUser(userID uuid.UUID, from, to *time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	q := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if from != nil && to != nil {
		q = q.Where("created_at BETWEEN ? AND ?", from, to)
	}
	err := q.Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.First(&expense, "id = ?", id).Error
	return &expense, err
}

func (r *expenseRepo) Update(expense *model.Expense) error {
	return r.db.Save(expense).Error
}

func (r *expenseRepo) Delete(id uuid.UUID) (int64, error) {
	res := r.db.Delete(&model.Expense{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
