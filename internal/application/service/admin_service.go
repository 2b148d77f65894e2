package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// AdminService handles the destructive maintenance endpoints. Both
// operations are admin-role gated at the route level and re-checked by
// the middleware on every request.
type AdminService struct {
	adminRepo      repository.AdminRepository
	ingredientRepo repository.IngredientRepository
	vendorRepo     repository.VendorRepository
	recipeRepo     repository.RecipeRepository
	seqRepo        repository.SequenceRepository
	transactor     repository.Transactor
	dashboards     *DashboardService
	pos            *PurchaseOrderService
	grns           *GRNService
	payments       *PaymentService
	sales          *SaleService
}

// NewAdminService creates a new admin service
func NewAdminService(
	adminRepo repository.AdminRepository,
	ingredientRepo repository.IngredientRepository,
	vendorRepo repository.VendorRepository,
	recipeRepo repository.RecipeRepository,
	seqRepo repository.SequenceRepository,
	transactor repository.Transactor,
	dashboards *DashboardService,
	pos *PurchaseOrderService,
	grns *GRNService,
	payments *PaymentService,
	sales *SaleService,
) *AdminService {
	return &AdminService{
		adminRepo:      adminRepo,
		ingredientRepo: ingredientRepo,
		vendorRepo:     vendorRepo,
		recipeRepo:     recipeRepo,
		seqRepo:        seqRepo,
		transactor:     transactor,
		dashboards:     dashboards,
		pos:            pos,
		grns:           grns,
		payments:       payments,
		sales:          sales,
	}
}

// DeleteAllTransactions wipes all transactional data in one
// transaction. Master data survives; ingredient stock is reset to zero
// and document number sequences start over.
func (s *AdminService) DeleteAllTransactions(ctx context.Context) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.adminRepo.WipeTransactions(ctx); err != nil {
			return err
		}
		if err := s.ingredientRepo.ResetAllStock(ctx); err != nil {
			return err
		}
		return s.seqRepo.ResetAll(ctx)
	})
	if err != nil {
		return err
	}

	s.dashboards.InvalidateCache(ctx)
	return nil
}

// SeedResult summarizes what the seeder generated
type SeedResult struct {
	PurchaseOrders int `json:"purchase_orders"`
	GRNs           int `json:"grns"`
	Payments       int `json:"payments"`
	Sales          int `json:"sales"`
}

// SeedTransactions generates synthetic purchasing and sales history
// through the regular service flows, so rollups, ledgers and document
// numbers come out exactly as real usage would produce them.
func (s *AdminService) SeedTransactions(ctx context.Context, actorID uuid.UUID, days int) (*SeedResult, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	ingredients, _, err := s.ingredientRepo.List(ctx, &repository.IngredientFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 50},
	})
	if err != nil {
		return nil, err
	}
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients to seed against; create master data first")
	}

	vendors, _, err := s.vendorRepo.List(ctx, &pagination.PaginationParams{Page: 1, PerPage: 20}, "")
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, fmt.Errorf("no vendors to seed against; create master data first")
	}

	recipes, _, err := s.recipeRepo.List(ctx, &repository.RecipeFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 50},
	})
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	result := &SeedResult{}

	for day := 0; day < days; day++ {
		vendor := vendors[rng.Intn(len(vendors))]

		// One PO per day over a few random ingredients
		itemCount := 1 + rng.Intn(3)
		items := make([]POItemInput, 0, itemCount)
		seen := make(map[uuid.UUID]bool)
		for len(items) < itemCount {
			ing := ingredients[rng.Intn(len(ingredients))]
			if seen[ing.ID] {
				continue
			}
			seen[ing.ID] = true

			price := ing.LastPrice
			if price.LessThanOrEqual(decimal.Zero) {
				price = decimal.NewFromInt(int64(10 + rng.Intn(90)))
			}
			items = append(items, POItemInput{
				IngredientID: ing.ID,
				Quantity:     decimal.NewFromInt(int64(5 + rng.Intn(45))),
				UnitPrice:    price,
			})
		}

		po, err := s.pos.CreatePO(ctx, &CreatePOInput{
			CreatedBy: actorID,
			VendorID:  vendor.ID,
			Notes:     "seeded",
			Items:     items,
		})
		if err != nil {
			return nil, err
		}
		result.PurchaseOrders++

		if _, err := s.pos.ConfirmPO(ctx, po.ID); err != nil {
			return nil, err
		}

		// Receive most of the order at a slightly drifted price
		grnItems := make([]GRNItemInput, 0, len(po.Items))
		for _, item := range po.Items {
			fraction := decimal.NewFromFloat(0.6 + rng.Float64()*0.4)
			drift := decimal.NewFromFloat(0.9 + rng.Float64()*0.2)
			grnItems = append(grnItems, GRNItemInput{
				POItemID:         item.ID,
				QuantityReceived: item.QuantityOrdered.Mul(fraction).Round(3),
				UnitPriceActual:  item.UnitPrice.Mul(drift).Round(2),
			})
		}

		grnResult, err := s.grns.CreateGRN(ctx, &CreateGRNInput{
			PurchaseOrderID: po.ID,
			ReceivedBy:      actorID,
			Notes:           "seeded",
			Items:           grnItems,
		})
		if err != nil {
			return nil, err
		}
		result.GRNs++

		// Pay part of the received value
		receivable := grnResult.PurchaseOrder.ReceivableAmount()
		if receivable.GreaterThan(decimal.Zero) {
			amount := receivable.Mul(decimal.NewFromFloat(0.5)).Round(2)
			if amount.GreaterThan(decimal.Zero) {
				if _, err := s.payments.CreatePayment(ctx, &CreatePaymentInput{
					PurchaseOrderID: po.ID,
					RecordedBy:      actorID,
					Amount:          amount,
					Method:          enum.PaymentMethodBankTransfer,
					Notes:           "seeded",
				}); err != nil {
					return nil, err
				}
				result.Payments++
			}
		}

		// A sale per day when recipes exist
		if len(recipes) > 0 {
			saleItems := make([]SaleItemInput, 0, 2)
			for i := 0; i < 1+rng.Intn(2); i++ {
				recipe := recipes[rng.Intn(len(recipes))]
				saleItems = append(saleItems, SaleItemInput{
					RecipeID: recipe.ID,
					Quantity: 1 + rng.Intn(10),
				})
			}

			saleDate := time.Now().AddDate(0, 0, -day)
			if _, err := s.sales.CreateSale(ctx, &CreateSaleInput{
				SaleDate:   saleDate,
				RecordedBy: actorID,
				Notes:      "seeded",
				Items:      saleItems,
			}); err != nil {
				return nil, err
			}
			result.Sales++
		}
	}

	s.dashboards.InvalidateCache(ctx)
	return result, nil
}
