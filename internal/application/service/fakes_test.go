package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes. They keep everything in maps and ignore
// row locking; the services under test call the same methods they would
// against Postgres.

type fakeTransactor struct{}

func (t *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSequenceRepo struct {
	values map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{values: make(map[string]int64)}
}

func (r *fakeSequenceRepo) Next(ctx context.Context, scope string) (int64, error) {
	r.values[scope]++
	return r.values[scope], nil
}

func (r *fakeSequenceRepo) ResetAll(ctx context.Context) error {
	r.values = make(map[string]int64)
	return nil
}

type fakePORepo struct {
	pos map[uuid.UUID]*entity.PurchaseOrder
}

func newFakePORepo() *fakePORepo {
	return &fakePORepo{pos: make(map[uuid.UUID]*entity.PurchaseOrder)}
}

func (r *fakePORepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	r.pos[po.ID] = po
	return nil
}

func (r *fakePORepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return r.pos[id], nil
}

func (r *fakePORepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return r.pos[id], nil
}

func (r *fakePORepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return r.pos[id], nil
}

func (r *fakePORepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	r.pos[po.ID] = po
	return nil
}

func (r *fakePORepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.pos, id)
	return nil
}

func (r *fakePORepo) List(ctx context.Context, params *repository.POFilterParams) ([]entity.PurchaseOrder, int64, error) {
	out := make([]entity.PurchaseOrder, 0, len(r.pos))
	for _, po := range r.pos {
		out = append(out, *po)
	}
	return out, int64(len(out)), nil
}

func (r *fakePORepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.pos)), nil
}

func (r *fakePORepo) CountByStatus(ctx context.Context, status enum.POStatus) (int64, error) {
	var n int64
	for _, po := range r.pos {
		if po.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakePORepo) CountOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	for _, po := range r.pos {
		if po.ExpectedDate != nil && po.ExpectedDate.Before(asOf) && po.Status != enum.POStatusReceived {
			n++
		}
	}
	return n, nil
}

func (r *fakePORepo) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]entity.PurchaseOrder, error) {
	var out []entity.PurchaseOrder
	for _, po := range r.pos {
		if po.VendorID == vendorID {
			out = append(out, *po)
		}
	}
	return out, nil
}

type fakePOItemRepo struct {
	items map[uuid.UUID]*entity.POItem
}

func newFakePOItemRepo() *fakePOItemRepo {
	return &fakePOItemRepo{items: make(map[uuid.UUID]*entity.POItem)}
}

func (r *fakePOItemRepo) CreateBatch(ctx context.Context, items []entity.POItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		item := items[i]
		r.items[item.ID] = &item
	}
	return nil
}

func (r *fakePOItemRepo) GetByPOID(ctx context.Context, poID uuid.UUID) ([]entity.POItem, error) {
	var out []entity.POItem
	for _, item := range r.items {
		if item.PurchaseOrderID == poID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakePOItemRepo) Update(ctx context.Context, item *entity.POItem) error {
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakePOItemRepo) DeleteByPOID(ctx context.Context, poID uuid.UUID) error {
	for id, item := range r.items {
		if item.PurchaseOrderID == poID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeGRNRepo struct {
	grns map[uuid.UUID]*entity.GRN
}

func newFakeGRNRepo() *fakeGRNRepo {
	return &fakeGRNRepo{grns: make(map[uuid.UUID]*entity.GRN)}
}

func (r *fakeGRNRepo) Create(ctx context.Context, grn *entity.GRN) error {
	if grn.ID == uuid.Nil {
		grn.ID = uuid.New()
	}
	r.grns[grn.ID] = grn
	return nil
}

func (r *fakeGRNRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.GRN, error) {
	return r.grns[id], nil
}

func (r *fakeGRNRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.GRN, error) {
	return r.grns[id], nil
}

func (r *fakeGRNRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.GRN, int64, error) {
	out := make([]entity.GRN, 0, len(r.grns))
	for _, grn := range r.grns {
		out = append(out, *grn)
	}
	return out, int64(len(out)), nil
}

func (r *fakeGRNRepo) ListByPO(ctx context.Context, poID uuid.UUID) ([]entity.GRN, error) {
	var out []entity.GRN
	for _, grn := range r.grns {
		if grn.PurchaseOrderID == poID {
			out = append(out, *grn)
		}
	}
	return out, nil
}

func (r *fakeGRNRepo) TotalReceivedValue(ctx context.Context, poID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, grn := range r.grns {
		if grn.PurchaseOrderID == poID {
			total = total.Add(grn.TotalValue)
		}
	}
	return total, nil
}

type fakeGRNItemRepo struct {
	items []entity.GRNItem
}

func (r *fakeGRNItemRepo) CreateBatch(ctx context.Context, items []entity.GRNItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeGRNItemRepo) GetByGRNID(ctx context.Context, grnID uuid.UUID) ([]entity.GRNItem, error) {
	var out []entity.GRNItem
	for _, item := range r.items {
		if item.GRNID == grnID {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeIngredientRepo struct {
	ingredients map[uuid.UUID]*entity.Ingredient
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{ingredients: make(map[uuid.UUID]*entity.Ingredient)}
}

func (r *fakeIngredientRepo) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	if ingredient.ID == uuid.Nil {
		ingredient.ID = uuid.New()
	}
	r.ingredients[ingredient.ID] = ingredient
	return nil
}

func (r *fakeIngredientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error) {
	return r.ingredients[id], nil
}

func (r *fakeIngredientRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Ingredient, error) {
	var out []entity.Ingredient
	for _, id := range ids {
		if ing, ok := r.ingredients[id]; ok {
			out = append(out, *ing)
		}
	}
	return out, nil
}

func (r *fakeIngredientRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error) {
	return r.ingredients[id], nil
}

func (r *fakeIngredientRepo) Update(ctx context.Context, ingredient *entity.Ingredient) error {
	r.ingredients[ingredient.ID] = ingredient
	return nil
}

func (r *fakeIngredientRepo) UpdateStockAndPrice(ctx context.Context, id uuid.UUID, newStock, lastPrice decimal.Decimal) error {
	if ing, ok := r.ingredients[id]; ok {
		ing.CurrentStock = newStock
		ing.LastPrice = lastPrice
	}
	return nil
}

func (r *fakeIngredientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.ingredients, id)
	return nil
}

func (r *fakeIngredientRepo) List(ctx context.Context, params *repository.IngredientFilterParams) ([]entity.Ingredient, int64, error) {
	out := make([]entity.Ingredient, 0, len(r.ingredients))
	for _, ing := range r.ingredients {
		out = append(out, *ing)
	}
	return out, int64(len(out)), nil
}

func (r *fakeIngredientRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.ingredients)), nil
}

func (r *fakeIngredientRepo) CountLowStock(ctx context.Context) (int64, error) {
	var n int64
	for _, ing := range r.ingredients {
		if ing.IsLowStock() {
			n++
		}
	}
	return n, nil
}

func (r *fakeIngredientRepo) ResetAllStock(ctx context.Context) error {
	for _, ing := range r.ingredients {
		ing.CurrentStock = decimal.Zero
	}
	return nil
}

type fakeStockRepo struct {
	movements []entity.StockMovement
}

func (r *fakeStockRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *fakeStockRepo) ListByIngredient(ctx context.Context, ingredientID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockMovement, int64, error) {
	var out []entity.StockMovement
	for _, m := range r.movements {
		if m.IngredientID == ingredientID {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeStockRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return r.payments[id], nil
}

func (r *fakePaymentRepo) List(ctx context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	out := make([]entity.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) ListByPO(ctx context.Context, poID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.PurchaseOrderID == poID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListRecent(ctx context.Context, limit int) ([]entity.Payment, error) {
	out := make([]entity.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) TotalPaidForPO(ctx context.Context, poID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.payments {
		if p.PurchaseOrderID == poID && p.State == entity.PaymentStateCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

type fakeExpenseRepo struct {
	expenses map[uuid.UUID]*entity.OtherExpense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[uuid.UUID]*entity.OtherExpense)}
}

func (r *fakeExpenseRepo) Create(ctx context.Context, expense *entity.OtherExpense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	r.expenses[expense.ID] = expense
	return nil
}

func (r *fakeExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.OtherExpense, error) {
	return r.expenses[id], nil
}

func (r *fakeExpenseRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.OtherExpense, error) {
	return r.expenses[id], nil
}

func (r *fakeExpenseRepo) Update(ctx context.Context, expense *entity.OtherExpense) error {
	r.expenses[expense.ID] = expense
	return nil
}

func (r *fakeExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) List(ctx context.Context, params *repository.ExpenseFilterParams) ([]entity.OtherExpense, int64, error) {
	out := make([]entity.OtherExpense, 0, len(r.expenses))
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

type fakeExpensePaymentRepo struct {
	payments []entity.ExpensePayment
}

func (r *fakeExpensePaymentRepo) Create(ctx context.Context, payment *entity.ExpensePayment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakeExpensePaymentRepo) ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]entity.ExpensePayment, error) {
	var out []entity.ExpensePayment
	for _, p := range r.payments {
		if p.ExpenseID == expenseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeExpensePaymentRepo) TotalPaidForExpense(ctx context.Context, expenseID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.payments {
		if p.ExpenseID == expenseID && p.State == entity.PaymentStateCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

type fakeVendorRepo struct {
	vendors map[uuid.UUID]*entity.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[uuid.UUID]*entity.Vendor)}
}

func (r *fakeVendorRepo) Create(ctx context.Context, vendor *entity.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	r.vendors[vendor.ID] = vendor
	return nil
}

func (r *fakeVendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	return r.vendors[id], nil
}

func (r *fakeVendorRepo) Update(ctx context.Context, vendor *entity.Vendor) error {
	r.vendors[vendor.ID] = vendor
	return nil
}

func (r *fakeVendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.vendors, id)
	return nil
}

func (r *fakeVendorRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Vendor, int64, error) {
	out := make([]entity.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVendorRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.vendors)), nil
}

type fakeIntendRepo struct {
	intends map[uuid.UUID]*entity.Intend
	items   *fakeIntendItemRepo
}

func newFakeIntendRepo() *fakeIntendRepo {
	return &fakeIntendRepo{intends: make(map[uuid.UUID]*entity.Intend)}
}

func (r *fakeIntendRepo) Create(ctx context.Context, intend *entity.Intend) error {
	if intend.ID == uuid.Nil {
		intend.ID = uuid.New()
	}
	r.intends[intend.ID] = intend
	return nil
}

func (r *fakeIntendRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Intend, error) {
	return r.intends[id], nil
}

func (r *fakeIntendRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Intend, error) {
	intend := r.intends[id]
	if intend == nil {
		return nil, nil
	}
	if r.items != nil {
		if rows, _ := r.items.GetByIntendID(ctx, id); len(rows) > 0 {
			intend.Items = rows
		}
	}
	return intend, nil
}

func (r *fakeIntendRepo) Update(ctx context.Context, intend *entity.Intend) error {
	r.intends[intend.ID] = intend
	return nil
}

func (r *fakeIntendRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.IntendStatus) error {
	if intend, ok := r.intends[id]; ok {
		intend.Status = status
	}
	return nil
}

func (r *fakeIntendRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.intends, id)
	return nil
}

func (r *fakeIntendRepo) List(ctx context.Context, params *repository.IntendFilterParams) ([]entity.Intend, int64, error) {
	out := make([]entity.Intend, 0, len(r.intends))
	for _, intend := range r.intends {
		out = append(out, *intend)
	}
	return out, int64(len(out)), nil
}

type fakeIntendItemRepo struct {
	items []entity.IntendItem
}

func (r *fakeIntendItemRepo) CreateBatch(ctx context.Context, items []entity.IntendItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeIntendItemRepo) GetByIntendID(ctx context.Context, intendID uuid.UUID) ([]entity.IntendItem, error) {
	var out []entity.IntendItem
	for _, item := range r.items {
		if item.IntendID == intendID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeIntendItemRepo) DeleteByIntendID(ctx context.Context, intendID uuid.UUID) error {
	kept := r.items[:0]
	for _, item := range r.items {
		if item.IntendID != intendID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

type fakeRecipeRepo struct {
	recipes map[uuid.UUID]*entity.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[uuid.UUID]*entity.Recipe)}
}

func (r *fakeRecipeRepo) Create(ctx context.Context, recipe *entity.Recipe) error {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	return r.recipes[id], nil
}

func (r *fakeRecipeRepo) GetWithIngredients(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	return r.recipes[id], nil
}

func (r *fakeRecipeRepo) GetWithIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Recipe, error) {
	var out []entity.Recipe
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if recipe, ok := r.recipes[id]; ok {
			out = append(out, *recipe)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) Update(ctx context.Context, recipe *entity.Recipe) error {
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.recipes, id)
	return nil
}

func (r *fakeRecipeRepo) List(ctx context.Context, params *repository.RecipeFilterParams) ([]entity.Recipe, int64, error) {
	out := make([]entity.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		out = append(out, *recipe)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRecipeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.recipes)), nil
}

type fakeRecipeIngredientRepo struct {
	lines []entity.RecipeIngredient
}

func (r *fakeRecipeIngredientRepo) CreateBatch(ctx context.Context, items []entity.RecipeIngredient) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	r.lines = append(r.lines, items...)
	return nil
}

func (r *fakeRecipeIngredientRepo) DeleteByRecipeID(ctx context.Context, recipeID uuid.UUID) error {
	kept := r.lines[:0]
	for _, line := range r.lines {
		if line.RecipeID != recipeID {
			kept = append(kept, line)
		}
	}
	r.lines = kept
	return nil
}

type fakeSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	r.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	out := make([]entity.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		out = append(out, *sale)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.sales)), nil
}

type fakeSaleItemRepo struct {
	items []entity.SaleItem
}

func (r *fakeSaleItemRepo) CreateBatch(ctx context.Context, items []entity.SaleItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeSaleItemRepo) DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error {
	kept := r.items[:0]
	for _, item := range r.items {
		if item.SaleID != saleID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}
