package expense

import (
	"context"
	"time"
)

// Repository 费用仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建费用单
	Create(ctx context.Context, e *Expense) error

	// FindByID 根据ID查找费用单
	FindByID(ctx context.Context, id uint) (*Expense, error)

	// Update 更新费用单
	Update(ctx context.Context, e *Expense) error

	// List 分页查询费用单,status为空表示不过滤
	List(ctx context.Context, page, pageSize int, status ExpenseStatus) ([]*Expense, int64, error)

	// SumApprovedUSD 某类别在周期内已批准费用的美元总额(美分)
	// 预算差异报表用
	SumApprovedUSD(ctx context.Context, categoryID uint, from, to time.Time) (int64, error)

	// CreateCategory 创建费用类别
	CreateCategory(ctx context.Context, c *Category) error

	// ListCategories 查询全部费用类别
	ListCategories(ctx context.Context) ([]*Category, error)

	// CreateVendor 创建供应商
	CreateVendor(ctx context.Context, v *Vendor) error

	// ListVendors 查询全部供应商
	ListVendors(ctx context.Context) ([]*Vendor, error)

	// CreateBudget 创建预算
	CreateBudget(ctx context.Context, b *Budget) error

	// FindBudget 根据ID查找预算
	FindBudget(ctx context.Context, id uint) (*Budget, error)

	// ListBudgets 查询全部预算
	ListBudgets(ctx context.Context) ([]*Budget, error)
}
