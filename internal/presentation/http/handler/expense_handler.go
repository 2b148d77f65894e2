package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/internal/presentation/http/dto/response"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles other-expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create handles creating an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Description string          `json:"description" binding:"required"`
		Category    string          `json:"category" binding:"required"`
		Amount      decimal.Decimal `json:"amount" binding:"required"`
		TaxAmount   decimal.Decimal `json:"tax_amount"`
		ExpenseDate *time.Time      `json:"expense_date"`
		VendorID    *uuid.UUID      `json:"vendor_id"`
		Notes       string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	expenseDate := time.Now()
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		TaxAmount:   req.TaxAmount,
		ExpenseDate: expenseDate,
		VendorID:    req.VendorID,
		CreatedBy:   *userID,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense created successfully", expense)
}

// Get handles retrieving an expense with its payments
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	detail, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", detail)
}

// Update handles updating an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	var req struct {
		Description *string          `json:"description"`
		Category    *string          `json:"category"`
		Amount      *decimal.Decimal `json:"amount"`
		TaxAmount   *decimal.Decimal `json:"tax_amount"`
		ExpenseDate *time.Time       `json:"expense_date"`
		Notes       *string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, &service.UpdateExpenseInput{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		TaxAmount:   req.TaxAmount,
		ExpenseDate: req.ExpenseDate,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated successfully", expense)
}

// Delete handles deleting an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense deleted successfully", nil)
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ExpenseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Category: c.Query("category"),
	}

	if psStr := c.Query("payment_status"); psStr != "" {
		params.PaymentStatus = &psStr
	}
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// Pay handles recording a payment against an expense
func (h *ExpenseHandler) Pay(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	var req struct {
		Amount      decimal.Decimal `json:"amount" binding:"required"`
		Method      string          `json:"method" binding:"required"`
		PaymentDate *time.Time      `json:"payment_date"`
		Reference   string          `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	result, err := h.expenseService.PayExpense(c.Request.Context(), id, &service.PayExpenseInput{
		Amount:      req.Amount,
		Method:      enum.PaymentMethod(req.Method),
		PaymentDate: paymentDate,
		Reference:   req.Reference,
		RecordedBy:  *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense payment recorded successfully", result)
}
