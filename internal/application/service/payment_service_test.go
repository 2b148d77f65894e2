package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	service     *PaymentService
	poRepo      *fakePORepo
	grnRepo     *fakeGRNRepo
	paymentRepo *fakePaymentRepo

	po     *entity.PurchaseOrder
	userID uuid.UUID
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		poRepo:      newFakePORepo(),
		grnRepo:     newFakeGRNRepo(),
		paymentRepo: newFakePaymentRepo(),
		userID:      uuid.New(),
	}
	f.service = NewPaymentService(
		f.paymentRepo, f.poRepo, f.grnRepo, nil,
		NewDocNumberService(newFakeSequenceRepo()),
		&fakeTransactor{},
	)

	f.po = &entity.PurchaseOrder{
		ID:            uuid.New(),
		PONo:          "PO-20260815-0001",
		VendorID:      uuid.New(),
		CreatedByID:   f.userID,
		Status:        enum.POStatusConfirmed,
		PaymentStatus: enum.PaymentStatusUnpaid,
		TotalAmount:   decimal.NewFromInt(1000),
	}
	require.NoError(t, f.poRepo.Create(context.Background(), f.po))

	return f
}

func (f *paymentFixture) pay(t *testing.T, amount int64) (*PaymentResult, error) {
	t.Helper()
	return f.service.CreatePayment(context.Background(), &CreatePaymentInput{
		PurchaseOrderID: f.po.ID,
		RecordedBy:      f.userID,
		Amount:          decimal.NewFromInt(amount),
		Method:          enum.PaymentMethodBankTransfer,
	})
}

func TestCreatePaymentPartialThenFull(t *testing.T) {
	f := newPaymentFixture(t)

	result, err := f.pay(t, 400)
	require.NoError(t, err)
	assert.Equal(t, "400", result.TotalPaid.String())
	assert.Equal(t, "600", result.Outstanding.String())
	assert.Equal(t, enum.PaymentStatusPartial, result.PaymentStatus)

	result, err = f.pay(t, 600)
	require.NoError(t, err)
	assert.Equal(t, "1000", result.TotalPaid.String())
	assert.True(t, result.Outstanding.IsZero())
	assert.Equal(t, enum.PaymentStatusPaid, result.PaymentStatus)
}

func TestCreatePaymentRejectsExceedingOutstanding(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.pay(t, 400)
	require.NoError(t, err)

	_, err = f.pay(t, 601)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds outstanding balance")

	// The failed attempt must not change the paid total
	total, err := f.paymentRepo.TotalPaidForPO(context.Background(), f.po.ID)
	require.NoError(t, err)
	assert.Equal(t, "400", total.String())
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.pay(t, 0)
	require.Error(t, err)

	_, err = f.pay(t, -50)
	require.Error(t, err)
}

func TestCreatePaymentCeilingFollowsReceivable(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	// Goods came in short: the receivable drops below the ordered total
	f.po.ActualReceivableAmount = decimal.NewFromInt(960)
	require.NoError(t, f.poRepo.Update(ctx, f.po))

	_, err := f.pay(t, 1000)
	require.Error(t, err)

	result, err := f.pay(t, 960)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, result.PaymentStatus)
}

func TestCreatePaymentWarnsWhenPaidExceedsReceivedValue(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	// Only 300 worth of goods received so far
	require.NoError(t, f.grnRepo.Create(ctx, &entity.GRN{
		GRNNo:           "GRN-20260820-0001",
		PurchaseOrderID: f.po.ID,
		ReceivedByID:    f.userID,
		TotalValue:      decimal.NewFromInt(300),
	}))

	result, err := f.pay(t, 500)
	require.NoError(t, err)
	assert.NotEmpty(t, result.GRNValueWarning)

	// Paying within the received value carries no warning
	f2 := newPaymentFixture(t)
	require.NoError(t, f2.grnRepo.Create(ctx, &entity.GRN{
		GRNNo:           "GRN-20260820-0002",
		PurchaseOrderID: f2.po.ID,
		ReceivedByID:    f2.userID,
		TotalValue:      decimal.NewFromInt(800),
	}))
	result, err = f2.pay(t, 500)
	require.NoError(t, err)
	assert.Empty(t, result.GRNValueWarning)
}
