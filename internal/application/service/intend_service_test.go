package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intendFixture struct {
	service        *IntendService
	intendRepo     *fakeIntendRepo
	intendItemRepo *fakeIntendItemRepo
	vendorRepo     *fakeVendorRepo
	ingredientRepo *fakeIngredientRepo
	poRepo         *fakePORepo
	poItemRepo     *fakePOItemRepo

	vendor     *entity.Vendor
	ingredient *entity.Ingredient
	userID     uuid.UUID
}

func newIntendFixture(t *testing.T) *intendFixture {
	t.Helper()
	ctx := context.Background()

	f := &intendFixture{
		intendRepo:     newFakeIntendRepo(),
		intendItemRepo: &fakeIntendItemRepo{},
		vendorRepo:     newFakeVendorRepo(),
		ingredientRepo: newFakeIngredientRepo(),
		poRepo:         newFakePORepo(),
		poItemRepo:     newFakePOItemRepo(),
		userID:         uuid.New(),
	}
	f.intendRepo.items = f.intendItemRepo
	f.service = NewIntendService(
		f.intendRepo, f.intendItemRepo, f.ingredientRepo,
		f.vendorRepo, f.poRepo, f.poItemRepo,
		NewDocNumberService(newFakeSequenceRepo()),
		&fakeTransactor{},
	)

	f.vendor = &entity.Vendor{ID: uuid.New(), Name: "Fresh Farms"}
	require.NoError(t, f.vendorRepo.Create(ctx, f.vendor))

	f.ingredient = &entity.Ingredient{
		ID:        uuid.New(),
		Name:      "Onions",
		Unit:      "kg",
		LastPrice: decimal.NewFromInt(30),
	}
	require.NoError(t, f.ingredientRepo.Create(ctx, f.ingredient))

	return f
}

func (f *intendFixture) approvedIntend(t *testing.T) *entity.Intend {
	t.Helper()

	intend := &entity.Intend{
		ID:          uuid.New(),
		IntendNo:    "INT-20260825-0001",
		Status:      enum.IntendStatusApproved,
		VendorID:    &f.vendor.ID,
		RequestedBy: f.userID,
		Items: []entity.IntendItem{{
			IngredientID:      f.ingredient.ID,
			QuantityRequested: decimal.NewFromInt(50),
		}},
	}
	require.NoError(t, f.intendRepo.Create(context.Background(), intend))
	return intend
}

func TestCreateIntendRoundTrip(t *testing.T) {
	f := newIntendFixture(t)
	ctx := context.Background()

	second := &entity.Ingredient{
		ID:        uuid.New(),
		Name:      "Garlic",
		Unit:      "kg",
		LastPrice: decimal.NewFromInt(120),
	}
	require.NoError(t, f.ingredientRepo.Create(ctx, second))

	created, err := f.service.CreateIntend(ctx, &CreateIntendInput{
		RequestedBy: f.userID,
		VendorID:    &f.vendor.ID,
		Notes:       "weekly produce",
		Items: []IntendItemInput{
			{IngredientID: f.ingredient.ID, Quantity: decimal.NewFromFloat(12.5)},
			{IngredientID: second.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	expectedNo := fmt.Sprintf("INT-%s-0001", time.Now().Format("20060102"))
	assert.Equal(t, expectedNo, created.IntendNo)
	assert.Equal(t, enum.IntendStatusPending, created.Status)

	fetched, err := f.service.GetIntend(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 2)

	quantities := make(map[uuid.UUID]string, len(fetched.Items))
	for _, item := range fetched.Items {
		quantities[item.IngredientID] = item.QuantityRequested.String()
	}
	assert.Equal(t, "12.5", quantities[f.ingredient.ID])
	assert.Equal(t, "2", quantities[second.ID])
}

func TestCreateIntendAsDraft(t *testing.T) {
	f := newIntendFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateIntend(ctx, &CreateIntendInput{
		RequestedBy: f.userID,
		Draft:       true,
		Items: []IntendItemInput{
			{IngredientID: f.ingredient.ID, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.IntendStatusDraft, created.Status)

	// Drafts submit the same way pending intends do
	submitted, err := f.service.SubmitIntend(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.IntendStatusSubmitted, submitted.Status)
}

func TestCreateIntendRejectsUnknownIngredient(t *testing.T) {
	f := newIntendFixture(t)

	_, err := f.service.CreateIntend(context.Background(), &CreateIntendInput{
		RequestedBy: f.userID,
		Items: []IntendItemInput{
			{IngredientID: uuid.New(), Quantity: decimal.NewFromInt(3)},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateIntendRejectsUnknownIngredientInItems(t *testing.T) {
	f := newIntendFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateIntend(ctx, &CreateIntendInput{
		RequestedBy: f.userID,
		Items: []IntendItemInput{
			{IngredientID: f.ingredient.ID, Quantity: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)

	_, err = f.service.UpdateIntend(ctx, created.ID, &UpdateIntendInput{
		Items: []IntendItemInput{
			{IngredientID: uuid.New(), Quantity: decimal.NewFromInt(1)},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	// Original items survive the rejected replacement
	fetched, err := f.service.GetIntend(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, f.ingredient.ID, fetched.Items[0].IngredientID)
}

func TestConvertToPOUsesLastPriceByDefault(t *testing.T) {
	f := newIntendFixture(t)
	intend := f.approvedIntend(t)

	po, err := f.service.ConvertToPO(context.Background(), intend.ID, &ConvertToPOInput{
		CreatedBy: f.userID,
	})
	require.NoError(t, err)

	// 50 kg at the ingredient's last price of 30
	assert.Equal(t, "1500", po.TotalAmount.String())
	assert.Equal(t, enum.POStatusPending, po.Status)
	assert.Equal(t, f.vendor.ID, po.VendorID)
	require.NotNil(t, po.IntendID)
	assert.Equal(t, intend.ID, *po.IntendID)

	stored, err := f.intendRepo.GetByID(context.Background(), intend.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.IntendStatusFulfilled, stored.Status)
}

func TestConvertToPOWithPriceOverride(t *testing.T) {
	f := newIntendFixture(t)
	intend := f.approvedIntend(t)

	po, err := f.service.ConvertToPO(context.Background(), intend.ID, &ConvertToPOInput{
		CreatedBy: f.userID,
		ItemPrices: []ConvertItemInput{{
			IngredientID: f.ingredient.ID,
			UnitPrice:    decimal.NewFromInt(28),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1400", po.TotalAmount.String())

	items, err := f.poItemRepo.GetByPOID(context.Background(), po.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "28", items[0].UnitPrice.String())
}

func TestConvertToPORequiresApprovedStatus(t *testing.T) {
	f := newIntendFixture(t)
	intend := f.approvedIntend(t)
	intend.Status = enum.IntendStatusSubmitted
	require.NoError(t, f.intendRepo.Update(context.Background(), intend))

	_, err := f.service.ConvertToPO(context.Background(), intend.ID, &ConvertToPOInput{
		CreatedBy: f.userID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approved")
}

func TestConvertToPORequiresVendor(t *testing.T) {
	f := newIntendFixture(t)
	intend := f.approvedIntend(t)
	intend.VendorID = nil
	require.NoError(t, f.intendRepo.Update(context.Background(), intend))

	_, err := f.service.ConvertToPO(context.Background(), intend.ID, &ConvertToPOInput{
		CreatedBy: f.userID,
	})
	require.Error(t, err)

	// An override vendor on the conversion satisfies the requirement
	po, err := f.service.ConvertToPO(context.Background(), intend.ID, &ConvertToPOInput{
		CreatedBy: f.userID,
		VendorID:  &f.vendor.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.vendor.ID, po.VendorID)
}

func TestSubmitAndApproveTransitions(t *testing.T) {
	f := newIntendFixture(t)
	ctx := context.Background()

	intend := &entity.Intend{
		ID:          uuid.New(),
		IntendNo:    "INT-20260825-0002",
		Status:      enum.IntendStatusPending,
		RequestedBy: f.userID,
	}
	require.NoError(t, f.intendRepo.Create(ctx, intend))

	// Approve straight from pending is rejected
	_, err := f.service.ApproveIntend(ctx, intend.ID)
	require.Error(t, err)

	submitted, err := f.service.SubmitIntend(ctx, intend.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.IntendStatusSubmitted, submitted.Status)

	// Submitting twice is rejected
	_, err = f.service.SubmitIntend(ctx, intend.ID)
	require.Error(t, err)

	approved, err := f.service.ApproveIntend(ctx, intend.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.IntendStatusApproved, approved.Status)
}
