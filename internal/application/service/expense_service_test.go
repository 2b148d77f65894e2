package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpenseFixture(t *testing.T) (*ExpenseService, uuid.UUID) {
	t.Helper()

	svc := NewExpenseService(
		newFakeExpenseRepo(), &fakeExpensePaymentRepo{}, nil,
		NewDocNumberService(newFakeSequenceRepo()),
		&fakeTransactor{},
	)
	return svc, uuid.New()
}

func TestPayExpenseCeilingIncludesTax(t *testing.T) {
	svc, userID := newExpenseFixture(t)
	ctx := context.Background()

	expense, err := svc.CreateExpense(ctx, &CreateExpenseInput{
		Description: "Kitchen deep clean",
		Category:    "maintenance",
		Amount:      decimal.NewFromInt(1000),
		TaxAmount:   decimal.NewFromInt(180),
		ExpenseDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		CreatedBy:   userID,
	})
	require.NoError(t, err)
	assert.Equal(t, "1180", expense.TotalPayable().String())

	// Paying beyond amount plus tax is rejected
	_, err = svc.PayExpense(ctx, expense.ID, &PayExpenseInput{
		Amount:     decimal.NewFromInt(1181),
		Method:     enum.PaymentMethodCash,
		RecordedBy: userID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds outstanding balance")

	// Paying exactly amount plus tax settles the expense
	result, err := svc.PayExpense(ctx, expense.ID, &PayExpenseInput{
		Amount:     decimal.NewFromInt(1180),
		Method:     enum.PaymentMethodCash,
		RecordedBy: userID,
	})
	require.NoError(t, err)
	assert.Equal(t, "1180", result.TotalPaid.String())
	assert.True(t, result.Outstanding.IsZero())
	assert.Equal(t, enum.PaymentStatusPaid, result.PaymentStatus)
}

func TestPayExpensePartialTracksStatus(t *testing.T) {
	svc, userID := newExpenseFixture(t)
	ctx := context.Background()

	expense, err := svc.CreateExpense(ctx, &CreateExpenseInput{
		Description: "Monthly rent",
		Category:    "rent",
		Amount:      decimal.NewFromInt(500),
		ExpenseDate: time.Now(),
		CreatedBy:   userID,
	})
	require.NoError(t, err)

	result, err := svc.PayExpense(ctx, expense.ID, &PayExpenseInput{
		Amount:     decimal.NewFromInt(200),
		Method:     enum.PaymentMethodUPI,
		RecordedBy: userID,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartial, result.PaymentStatus)
	assert.Equal(t, "300", result.Outstanding.String())
}

func TestUpdateExpenseCannotShrinkBelowPaid(t *testing.T) {
	svc, userID := newExpenseFixture(t)
	ctx := context.Background()

	expense, err := svc.CreateExpense(ctx, &CreateExpenseInput{
		Description: "Gas refill",
		Category:    "utilities",
		Amount:      decimal.NewFromInt(800),
		ExpenseDate: time.Now(),
		CreatedBy:   userID,
	})
	require.NoError(t, err)

	_, err = svc.PayExpense(ctx, expense.ID, &PayExpenseInput{
		Amount:     decimal.NewFromInt(600),
		Method:     enum.PaymentMethodCash,
		RecordedBy: userID,
	})
	require.NoError(t, err)

	smaller := decimal.NewFromInt(500)
	_, err = svc.UpdateExpense(ctx, expense.ID, &UpdateExpenseInput{
		Amount: &smaller,
	})
	require.Error(t, err)
}

func TestDeleteExpenseBlockedWhenPaid(t *testing.T) {
	svc, userID := newExpenseFixture(t)
	ctx := context.Background()

	expense, err := svc.CreateExpense(ctx, &CreateExpenseInput{
		Description: "Pest control",
		Category:    "maintenance",
		Amount:      decimal.NewFromInt(300),
		ExpenseDate: time.Now(),
		CreatedBy:   userID,
	})
	require.NoError(t, err)

	_, err = svc.PayExpense(ctx, expense.ID, &PayExpenseInput{
		Amount:     decimal.NewFromInt(100),
		Method:     enum.PaymentMethodCash,
		RecordedBy: userID,
	})
	require.NoError(t, err)

	err = svc.DeleteExpense(ctx, expense.ID)
	require.Error(t, err)
}
