package service

import (
	"errors"
	"fmt"
	"time"

	"go-cafe-pos/internal/model"
	"go-cafe-pos/internal/repository"
	"go-cafe-pos/internal/ws"
	"go-cafe-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrExpenseNotFound = errors.New("expense not found")

type ExpenseService interface {
	CreateExpense(userID uuid.UUID, req *ExpenseRequest) (*model.Expense, error)
	UpdateExpense(id uuid.UUID, req *ExpenseRequest) (*model.Expense, error)
	DeleteExpense(id uuid.UUID) error
	GetExpenses(userID uuid.UUID, from, to *time.Time) ([]model.Expense, error)
}

type ExpenseRequest struct {
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price" validate:"decimal_nonneg"`
	Remarks   string          `json:"remarks"`
	CreatedAt *time.Time      `json:"created_at"` // optional backdating
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	wsHub       *ws.Hub
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, hub *ws.Hub) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		wsHub:       hub,
	}
}

func (s *expenseService) CreateExpense(userID uuid.UUID, req *ExpenseRequest) (*model.Expense, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	expense := &model.Expense{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		Remarks:  req.Remarks,
		Total:    req.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		UserID:   userID,
	}
	if req.CreatedAt != nil {
		expense.CreatedAt = *req.CreatedAt
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.EventExpenseRecorded, expense)
	return expense, nil
}

func (s *expenseService) UpdateExpense(id uuid.UUID, req *ExpenseRequest) (*model.Expense, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	expense, err := s.expenseRepo.FindByID(id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}

	expense.Name = req.Name
	expense.Quantity = req.Quantity
	expense.Price = req.Price
	expense.Remarks = req.Remarks
	expense.Total = req.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) DeleteExpense(id uuid.UUID) error {
	rows, err := s.expenseRepo.Delete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *expenseService) GetExpenses(userID uuid.UUID, from, to *time.Time) ([]model.Expense, error) {
	return s.expenseRepo.FindByUser(userID, from, to)
}
