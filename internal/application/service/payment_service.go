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

// PaymentService handles vendor payments against purchase orders. The
// ceiling check and the insert run in one transaction under a row lock
// on the PO, so two concurrent payments cannot jointly exceed the
// outstanding balance.
type PaymentService struct {
	paymentRepo   repository.PaymentRepository
	poRepo        repository.PurchaseOrderRepository
	grnRepo       repository.GRNRepository
	analyticsRepo repository.AnalyticsRepository
	docNumbers    *DocNumberService
	transactor    repository.Transactor
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	poRepo repository.PurchaseOrderRepository,
	grnRepo repository.GRNRepository,
	analyticsRepo repository.AnalyticsRepository,
	docNumbers *DocNumberService,
	transactor repository.Transactor,
) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		poRepo:        poRepo,
		grnRepo:       grnRepo,
		analyticsRepo: analyticsRepo,
		docNumbers:    docNumbers,
		transactor:    transactor,
	}
}

// CreatePaymentInput represents the record payment input
type CreatePaymentInput struct {
	PurchaseOrderID uuid.UUID
	RecordedBy      uuid.UUID
	Amount          decimal.Decimal
	Method          enum.PaymentMethod
	PaymentDate     time.Time
	Reference       string
	Notes           string
}

// PaymentResult is a recorded payment with the PO's updated position.
// GRNValueWarning is advisory: payment went through, but cumulative
// payments now exceed the value of goods actually received.
type PaymentResult struct {
	Payment         *entity.Payment    `json:"payment"`
	TotalPaid       decimal.Decimal    `json:"total_paid"`
	Outstanding     decimal.Decimal    `json:"outstanding"`
	PaymentStatus   enum.PaymentStatus `json:"payment_status"`
	GRNValueWarning string             `json:"grn_value_warning,omitempty"`
}

// CreatePayment records a vendor payment against a purchase order
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*PaymentResult, error) {
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

	var result *PaymentResult
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		po, err := s.poRepo.GetForUpdate(ctx, input.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return apperror.NewNotFoundError("Purchase order")
		}

		totalPaid, err := s.paymentRepo.TotalPaidForPO(ctx, po.ID)
		if err != nil {
			return err
		}

		receivable := po.ReceivableAmount()
		outstanding := receivable.Sub(totalPaid)
		if amount.GreaterThan(outstanding) {
			return apperror.NewBadRequestError("Payment amount exceeds outstanding balance")
		}

		paymentNo, err := s.docNumbers.Next(ctx, docnum.KindPayment, paymentDate)
		if err != nil {
			return err
		}

		payment := &entity.Payment{
			PaymentNo:       paymentNo,
			PurchaseOrderID: po.ID,
			RecordedByID:    input.RecordedBy,
			Amount:          amount,
			Method:          input.Method,
			State:           entity.PaymentStateCompleted,
			PaymentDate:     paymentDate,
			Reference:       input.Reference,
			Notes:           input.Notes,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		newTotalPaid := totalPaid.Add(amount)
		po.PaymentStatus = enum.DerivePaymentStatus(newTotalPaid, receivable)
		if err := s.poRepo.Update(ctx, po); err != nil {
			return err
		}

		result = &PaymentResult{
			Payment:       payment,
			TotalPaid:     newTotalPaid,
			Outstanding:   receivable.Sub(newTotalPaid),
			PaymentStatus: po.PaymentStatus,
		}

		receivedValue, err := s.grnRepo.TotalReceivedValue(ctx, po.ID)
		if err != nil {
			return err
		}
		if newTotalPaid.GreaterThan(receivedValue) {
			result.GRNValueWarning = "Cumulative payments exceed the value of goods received so far"
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments retrieves payments with filtering and pagination
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(payments, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// OutstandingPayables is the payables position: per-vendor rows plus
// aggregate totals, including unpaid other-expenses.
type OutstandingPayables struct {
	Vendors            []repository.VendorPayableResult `json:"vendors"`
	TotalOutstanding   decimal.Decimal                  `json:"total_outstanding"`
	ExpenseOutstanding decimal.Decimal                  `json:"expense_outstanding"`
	GrandTotal         decimal.Decimal                  `json:"grand_total"`
}

// GetOutstanding builds the outstanding payables view
func (s *PaymentService) GetOutstanding(ctx context.Context) (*OutstandingPayables, error) {
	vendors, err := s.analyticsRepo.OutstandingPayables(ctx)
	if err != nil {
		return nil, err
	}

	totalOutstanding, err := s.analyticsRepo.TotalOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	expenseOutstanding, err := s.analyticsRepo.ExpenseOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	return &OutstandingPayables{
		Vendors:            vendors,
		TotalOutstanding:   totalOutstanding,
		ExpenseOutstanding: expenseOutstanding,
		GrandTotal:         totalOutstanding.Add(expenseOutstanding),
	}, nil
}
