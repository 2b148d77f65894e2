package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/mesahq/mesa-api/pkg/docnum"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ExpenseService handles other expenses and their partial payments.
// The payment ceiling is amount + tax_amount, enforced under a row
// lock the same way PO payments are.
type ExpenseService struct {
	expenseRepo        repository.ExpenseRepository
	expensePaymentRepo repository.ExpensePaymentRepository
	vendorRepo         repository.VendorRepository
	docNumbers         *DocNumberService
	transactor         repository.Transactor
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	expensePaymentRepo repository.ExpensePaymentRepository,
	vendorRepo repository.VendorRepository,
	docNumbers *DocNumberService,
	transactor repository.Transactor,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:        expenseRepo,
		expensePaymentRepo: expensePaymentRepo,
		vendorRepo:         vendorRepo,
		docNumbers:         docNumbers,
		transactor:         transactor,
	}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	Description string
	Category    string
	Amount      decimal.Decimal
	TaxAmount   decimal.Decimal
	ExpenseDate time.Time
	VendorID    *uuid.UUID
	CreatedBy   uuid.UUID
	Notes       string
}

// CreateExpense creates a new expense
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.OtherExpense, error) {
	if input.Description == "" {
		return nil, apperror.NewBadRequestError("Description is required")
	}
	if input.Category == "" {
		return nil, apperror.NewBadRequestError("Category is required")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}
	if input.TaxAmount.IsNegative() {
		return nil, apperror.NewBadRequestError("Tax amount cannot be negative")
	}

	if input.VendorID != nil {
		vendor, err := s.vendorRepo.GetByID(ctx, *input.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, apperror.NewNotFoundError("Vendor")
		}
	}

	expenseDate := input.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense := &entity.OtherExpense{
		Description:   input.Description,
		Category:      input.Category,
		Amount:        input.Amount.Round(2),
		TaxAmount:     input.TaxAmount.Round(2),
		PaymentStatus: enum.PaymentStatusUnpaid,
		ExpenseDate:   expenseDate,
		VendorID:      input.VendorID,
		CreatedByID:   input.CreatedBy,
		Notes:         input.Notes,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// ExpenseDetail is an expense with its payment position
type ExpenseDetail struct {
	Expense     *entity.OtherExpense    `json:"expense"`
	TotalPaid   decimal.Decimal         `json:"total_paid"`
	Outstanding decimal.Decimal         `json:"outstanding"`
	Payments    []entity.ExpensePayment `json:"payments"`
}

// GetExpense retrieves an expense with its payments
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseDetail, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	totalPaid, err := s.expensePaymentRepo.TotalPaidForExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.expensePaymentRepo.ListByExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseDetail{
		Expense:     expense,
		TotalPaid:   totalPaid,
		Outstanding: expense.TotalPayable().Sub(totalPaid),
		Payments:    payments,
	}, nil
}

// UpdateExpenseInput represents the update expense input
type UpdateExpenseInput struct {
	Description *string
	Category    *string
	Amount      *decimal.Decimal
	TaxAmount   *decimal.Decimal
	ExpenseDate *time.Time
	Notes       *string
}

// UpdateExpense updates an expense. Amount edits are rejected once the
// expense has payments; shrinking the payable under recorded payments
// would break the ceiling invariant.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, input *UpdateExpenseInput) (*entity.OtherExpense, error) {
	var expense *entity.OtherExpense
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		expense, err = s.expenseRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if expense == nil {
			return apperror.NewNotFoundError("Expense")
		}

		if input.Amount != nil || input.TaxAmount != nil {
			totalPaid, err := s.expensePaymentRepo.TotalPaidForExpense(ctx, id)
			if err != nil {
				return err
			}

			newAmount := expense.Amount
			if input.Amount != nil {
				if input.Amount.LessThanOrEqual(decimal.Zero) {
					return apperror.NewBadRequestError("Amount must be positive")
				}
				newAmount = input.Amount.Round(2)
			}
			newTax := expense.TaxAmount
			if input.TaxAmount != nil {
				if input.TaxAmount.IsNegative() {
					return apperror.NewBadRequestError("Tax amount cannot be negative")
				}
				newTax = input.TaxAmount.Round(2)
			}

			if newAmount.Add(newTax).LessThan(totalPaid) {
				return apperror.NewConflictError("Payable cannot be reduced below the amount already paid")
			}

			expense.Amount = newAmount
			expense.TaxAmount = newTax
			expense.PaymentStatus = enum.DerivePaymentStatus(totalPaid, expense.TotalPayable())
		}

		if input.Description != nil {
			if *input.Description == "" {
				return apperror.NewBadRequestError("Description cannot be empty")
			}
			expense.Description = *input.Description
		}
		if input.Category != nil {
			expense.Category = *input.Category
		}
		if input.ExpenseDate != nil {
			expense.ExpenseDate = *input.ExpenseDate
		}
		if input.Notes != nil {
			expense.Notes = *input.Notes
		}

		return s.expenseRepo.Update(ctx, expense)
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteExpense deletes an expense that has no payments
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}

	totalPaid, err := s.expensePaymentRepo.TotalPaidForExpense(ctx, id)
	if err != nil {
		return err
	}
	if totalPaid.GreaterThan(decimal.Zero) {
		return apperror.NewConflictError("Expense has payments and cannot be deleted")
	}

	return s.expenseRepo.Delete(ctx, id)
}

// ListExpenses retrieves expenses with filtering and pagination
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.OtherExpense], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(expenses, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// PayExpenseInput represents the expense payment input
type PayExpenseInput struct {
	Amount      decimal.Decimal
	Method      enum.PaymentMethod
	PaymentDate time.Time
	Reference   string
	RecordedBy  uuid.UUID
}

// ExpensePaymentResult is a recorded expense payment with the updated position
type ExpensePaymentResult struct {
	Payment       *entity.ExpensePayment `json:"payment"`
	TotalPaid     decimal.Decimal        `json:"total_paid"`
	Outstanding   decimal.Decimal        `json:"outstanding"`
	PaymentStatus enum.PaymentStatus     `json:"payment_status"`
}

// PayExpense records a payment against an expense under the same
// ceiling rule as PO payments
func (s *ExpenseService) PayExpense(ctx context.Context, id uuid.UUID, input *PayExpenseInput) (*ExpensePaymentResult, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	amount := input.Amount.Round(2)

	var result *ExpensePaymentResult
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		expense, err := s.expenseRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if expense == nil {
			return apperror.NewNotFoundError("Expense")
		}

		totalPaid, err := s.expensePaymentRepo.TotalPaidForExpense(ctx, id)
		if err != nil {
			return err
		}

		payable := expense.TotalPayable()
		outstanding := payable.Sub(totalPaid)
		if amount.GreaterThan(outstanding) {
			return apperror.NewBadRequestError("Payment amount exceeds outstanding balance")
		}

		paymentNo, err := s.docNumbers.Next(ctx, docnum.KindExpensePayment, paymentDate)
		if err != nil {
			return err
		}

		payment := &entity.ExpensePayment{
			PaymentNo:    paymentNo,
			ExpenseID:    id,
			RecordedByID: input.RecordedBy,
			Amount:       amount,
			Method:       input.Method,
			State:        entity.PaymentStateCompleted,
			PaymentDate:  paymentDate,
			Reference:    input.Reference,
		}
		if err := s.expensePaymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		newTotalPaid := totalPaid.Add(amount)
		expense.PaymentStatus = enum.DerivePaymentStatus(newTotalPaid, payable)
		if err := s.expenseRepo.Update(ctx, expense); err != nil {
			return err
		}

		result = &ExpensePaymentResult{
			Payment:       payment,
			TotalPaid:     newTotalPaid,
			Outstanding:   payable.Sub(newTotalPaid),
			PaymentStatus: expense.PaymentStatus,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
