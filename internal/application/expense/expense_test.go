package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/shiptrack/internal/domain/expense"
)

// fakeExpenseRepo 内存费用仓储
type fakeExpenseRepo struct {
	expenses   map[uint]*expense.Expense
	budgets    map[uint]*expense.Budget
	categories []*expense.Category
	vendors    []*expense.Vendor
	nextID     uint
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{
		expenses: make(map[uint]*expense.Expense),
		budgets:  make(map[uint]*expense.Budget),
	}
}

func (f *fakeExpenseRepo) Create(ctx context.Context, e *expense.Expense) error {
	f.nextID++
	e.ID = f.nextID
	copied := *e
	f.expenses[e.ID] = &copied
	return nil
}

func (f *fakeExpenseRepo) FindByID(ctx context.Context, id uint) (*expense.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, expense.ErrExpenseNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeExpenseRepo) Update(ctx context.Context, e *expense.Expense) error {
	copied := *e
	f.expenses[e.ID] = &copied
	return nil
}

func (f *fakeExpenseRepo) List(ctx context.Context, page, pageSize int, status expense.ExpenseStatus) ([]*expense.Expense, int64, error) {
	var out []*expense.Expense
	for _, e := range f.expenses {
		if status != "" && e.Status != status {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeExpenseRepo) SumApprovedUSD(ctx context.Context, categoryID uint, from, to time.Time) (int64, error) {
	var total int64
	for _, e := range f.expenses {
		if e.CategoryID != categoryID || e.Status != expense.StatusApproved {
			continue
		}
		if e.ExpenseDate.Before(from) || !e.ExpenseDate.Before(to) {
			continue
		}
		total += e.AmountUSD
	}
	return total, nil
}

func (f *fakeExpenseRepo) CreateCategory(ctx context.Context, c *expense.Category) error {
	c.ID = uint(len(f.categories) + 1)
	f.categories = append(f.categories, c)
	return nil
}

func (f *fakeExpenseRepo) ListCategories(ctx context.Context) ([]*expense.Category, error) {
	return f.categories, nil
}

func (f *fakeExpenseRepo) CreateVendor(ctx context.Context, v *expense.Vendor) error {
	v.ID = uint(len(f.vendors) + 1)
	f.vendors = append(f.vendors, v)
	return nil
}

func (f *fakeExpenseRepo) ListVendors(ctx context.Context) ([]*expense.Vendor, error) {
	return f.vendors, nil
}

func (f *fakeExpenseRepo) CreateBudget(ctx context.Context, b *expense.Budget) error {
	f.nextID++
	b.ID = f.nextID
	copied := *b
	f.budgets[b.ID] = &copied
	return nil
}

func (f *fakeExpenseRepo) FindBudget(ctx context.Context, id uint) (*expense.Budget, error) {
	b, ok := f.budgets[id]
	if !ok {
		return nil, expense.ErrBudgetNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeExpenseRepo) ListBudgets(ctx context.Context) ([]*expense.Budget, error) {
	var out []*expense.Budget
	for _, b := range f.budgets {
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func TestCreateExpense_ConvertsToUSD(t *testing.T) {
	repo := newFakeExpenseRepo()
	uc := NewCreateExpenseUseCase(repo)

	resp, err := uc.Execute(context.Background(), CreateExpenseRequest{
		CategoryID:  1,
		VendorID:    2,
		Description: "干线运输费",
		Amount:      100000, // 1000.00 CNY
		Currency:    "CNY",
		ExpenseDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ExpenseNumber)
	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, int64(14000), resp.AmountUSD) // 1000 CNY * 0.14 = 140 USD
}

func TestCreateExpense_UnknownCurrency(t *testing.T) {
	uc := NewCreateExpenseUseCase(newFakeExpenseRepo())

	_, err := uc.Execute(context.Background(), CreateExpenseRequest{
		CategoryID: 1, VendorID: 1, Amount: 100, Currency: "XYZ",
	})
	assert.Error(t, err)
}

func TestReviewExpense_Workflow(t *testing.T) {
	repo := newFakeExpenseRepo()
	createUC := NewCreateExpenseUseCase(repo)
	reviewUC := NewReviewExpenseUseCase(repo)
	ctx := context.Background()

	created, err := createUC.Execute(ctx, CreateExpenseRequest{
		CategoryID: 1, VendorID: 1, Amount: 5000, Currency: "USD",
	})
	require.NoError(t, err)

	// 草稿不能直接批准
	_, err = reviewUC.Approve(ctx, created.ID, "王经理")
	assert.ErrorIs(t, err, expense.ErrInvalidTransition)

	submitted, err := reviewUC.Submit(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "submitted", submitted.Status)

	approved, err := reviewUC.Approve(ctx, created.ID, "王经理")
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, "王经理", approved.ApprovedBy)
	assert.NotEmpty(t, approved.ReviewedAt)

	// 终态不可再流转
	_, err = reviewUC.Reject(ctx, created.ID, "王经理")
	assert.ErrorIs(t, err, expense.ErrInvalidTransition)
}

func TestUpdateExpense_DraftOnly(t *testing.T) {
	repo := newFakeExpenseRepo()
	createUC := NewCreateExpenseUseCase(repo)
	queryUC := NewQueryExpensesUseCase(repo)
	reviewUC := NewReviewExpenseUseCase(repo)
	ctx := context.Background()

	created, err := createUC.Execute(ctx, CreateExpenseRequest{
		CategoryID: 1, VendorID: 1, Amount: 5000, Currency: "USD",
	})
	require.NoError(t, err)

	// 草稿可编辑,换币种重算美元金额
	updated, err := queryUC.Update(ctx, created.ID, UpdateExpenseRequest{Amount: 100000, Currency: "CNY"})
	require.NoError(t, err)
	assert.Equal(t, int64(14000), updated.AmountUSD)

	_, err = reviewUC.Submit(ctx, created.ID)
	require.NoError(t, err)

	// 提交后不可编辑
	_, err = queryUC.Update(ctx, created.ID, UpdateExpenseRequest{Amount: 1})
	assert.Error(t, err)
}

func TestBudgetVariance(t *testing.T) {
	repo := newFakeExpenseRepo()
	createUC := NewCreateExpenseUseCase(repo)
	reviewUC := NewReviewExpenseUseCase(repo)
	budgetUC := NewManageBudgetsUseCase(repo)
	ctx := context.Background()

	budget, err := budgetUC.Create(ctx, CreateBudgetRequest{
		CategoryID:  1,
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-04-01",
		AmountUSD:   50000, // 500 USD
	})
	require.NoError(t, err)

	// 周期内一笔批准(100 USD)、一笔待审、一笔周期外批准
	makeExpense := func(amount int64, date string, approve bool) {
		d, _ := time.Parse("2006-01-02", date)
		e, err := createUC.Execute(ctx, CreateExpenseRequest{
			CategoryID: 1, VendorID: 1, Amount: amount, Currency: "USD", ExpenseDate: d,
		})
		require.NoError(t, err)
		_, err = reviewUC.Submit(ctx, e.ID)
		require.NoError(t, err)
		if approve {
			_, err = reviewUC.Approve(ctx, e.ID, "王经理")
			require.NoError(t, err)
		}
	}
	makeExpense(10000, "2026-03-15", true)
	makeExpense(20000, "2026-03-20", false)
	makeExpense(30000, "2026-05-01", true)

	v, err := budgetUC.Variance(ctx, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), v.ActualUSD)
	assert.Equal(t, int64(40000), v.VarianceUSD)
}

func TestBudget_InvalidPeriod(t *testing.T) {
	uc := NewManageBudgetsUseCase(newFakeExpenseRepo())

	_, err := uc.Create(context.Background(), CreateBudgetRequest{
		CategoryID:  1,
		PeriodStart: "2026-04-01",
		PeriodEnd:   "2026-03-01",
		AmountUSD:   100,
	})
	assert.Error(t, err)
}
