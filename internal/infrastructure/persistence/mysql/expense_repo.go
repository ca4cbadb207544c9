package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/shiptrack/internal/domain/expense"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// expenseRepository 费用仓储实现(MySQL)
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository 创建费用仓储
func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &expenseRepository{db: db}
}

// Create 创建费用单
func (r *expenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	model := toExpenseModel(e)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "费用单号已存在")
		}
		return apperrors.Wrap(err, "创建费用单失败")
	}

	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	e.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找费用单
func (r *expenseRepository) FindByID(ctx context.Context, id uint) (*expense.Expense, error) {
	var model ExpenseModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expense.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(err, "查询费用单失败")
	}
	return toExpenseEntity(&model), nil
}

// Update 更新费用单
func (r *expenseRepository) Update(ctx context.Context, e *expense.Expense) error {
	model := toExpenseModel(e)
	model.ID = e.ID
	model.CreatedAt = e.CreatedAt

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新费用单失败")
	}
	e.UpdatedAt = model.UpdatedAt
	return nil
}

// List 分页查询费用单
func (r *expenseRepository) List(ctx context.Context, page, pageSize int, status expense.ExpenseStatus) ([]*expense.Expense, int64, error) {
	var models []ExpenseModel
	var total int64

	query := getDB(ctx, r.db).Model(&ExpenseModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询费用单总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("expense_date DESC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询费用单列表失败")
	}

	expenses := make([]*expense.Expense, len(models))
	for i := range models {
		expenses[i] = toExpenseEntity(&models[i])
	}
	return expenses, total, nil
}

// SumApprovedUSD 某类别在周期内已批准费用的美元总额(美分)
func (r *expenseRepository) SumApprovedUSD(ctx context.Context, categoryID uint, from, to time.Time) (int64, error) {
	var total int64
	err := getDB(ctx, r.db).Model(&ExpenseModel{}).
		Where("category_id = ? AND status = ? AND expense_date >= ? AND expense_date < ?",
			categoryID, string(expense.StatusApproved), from, to).
		Select("COALESCE(SUM(amount_usd), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "汇总已批准费用失败")
	}
	return total, nil
}

// CreateCategory 创建费用类别
func (r *expenseRepository) CreateCategory(ctx context.Context, c *expense.Category) error {
	model := &CategoryModel{Name: c.Name, Description: c.Description}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "类别名称已存在")
		}
		return apperrors.Wrap(err, "创建费用类别失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

// ListCategories 查询全部费用类别
func (r *expenseRepository) ListCategories(ctx context.Context) ([]*expense.Category, error) {
	var models []CategoryModel
	if err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询费用类别失败")
	}

	categories := make([]*expense.Category, len(models))
	for i, m := range models {
		categories[i] = &expense.Category{ID: m.ID, Name: m.Name, Description: m.Description, CreatedAt: m.CreatedAt}
	}
	return categories, nil
}

// CreateVendor 创建供应商
func (r *expenseRepository) CreateVendor(ctx context.Context, v *expense.Vendor) error {
	model := &VendorModel{Name: v.Name, ContactInfo: v.ContactInfo}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建供应商失败")
	}
	v.ID = model.ID
	v.CreatedAt = model.CreatedAt
	return nil
}

// ListVendors 查询全部供应商
func (r *expenseRepository) ListVendors(ctx context.Context) ([]*expense.Vendor, error) {
	var models []VendorModel
	if err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询供应商失败")
	}

	vendors := make([]*expense.Vendor, len(models))
	for i, m := range models {
		vendors[i] = &expense.Vendor{ID: m.ID, Name: m.Name, ContactInfo: m.ContactInfo, CreatedAt: m.CreatedAt}
	}
	return vendors, nil
}

// CreateBudget 创建预算
func (r *expenseRepository) CreateBudget(ctx context.Context, b *expense.Budget) error {
	model := &BudgetModel{
		CategoryID:  b.CategoryID,
		PeriodStart: b.PeriodStart,
		PeriodEnd:   b.PeriodEnd,
		AmountUSD:   b.AmountUSD,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建预算失败")
	}
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindBudget 根据ID查找预算
func (r *expenseRepository) FindBudget(ctx context.Context, id uint) (*expense.Budget, error) {
	var model BudgetModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expense.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(err, "查询预算失败")
	}
	return toBudgetEntity(&model), nil
}

// ListBudgets 查询全部预算
func (r *expenseRepository) ListBudgets(ctx context.Context) ([]*expense.Budget, error) {
	var models []BudgetModel
	if err := getDB(ctx, r.db).Order("period_start DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询预算失败")
	}

	budgets := make([]*expense.Budget, len(models))
	for i := range models {
		budgets[i] = toBudgetEntity(&models[i])
	}
	return budgets, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toExpenseModel(e *expense.Expense) *ExpenseModel {
	return &ExpenseModel{
		ExpenseNumber: e.ExpenseNumber,
		CategoryID:    e.CategoryID,
		VendorID:      e.VendorID,
		ShipmentID:    e.ShipmentID,
		Description:   e.Description,
		Amount:        e.Amount,
		Currency:      e.Currency,
		AmountUSD:     e.AmountUSD,
		Status:        string(e.Status),
		ExpenseDate:   e.ExpenseDate,
		ApprovedBy:    e.ApprovedBy,
		ReviewedAt:    e.ReviewedAt,
	}
}

func toExpenseEntity(model *ExpenseModel) *expense.Expense {
	return &expense.Expense{
		ID:            model.ID,
		ExpenseNumber: model.ExpenseNumber,
		CategoryID:    model.CategoryID,
		VendorID:      model.VendorID,
		ShipmentID:    model.ShipmentID,
		Description:   model.Description,
		Amount:        model.Amount,
		Currency:      model.Currency,
		AmountUSD:     model.AmountUSD,
		Status:        expense.ExpenseStatus(model.Status),
		ExpenseDate:   model.ExpenseDate,
		ApprovedBy:    model.ApprovedBy,
		ReviewedAt:    model.ReviewedAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toBudgetEntity(model *BudgetModel) *expense.Budget {
	return &expense.Budget{
		ID:          model.ID,
		CategoryID:  model.CategoryID,
		PeriodStart: model.PeriodStart,
		PeriodEnd:   model.PeriodEnd,
		AmountUSD:   model.AmountUSD,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
