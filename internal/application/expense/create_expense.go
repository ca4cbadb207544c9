// Package expense 费用管理用例
package expense

import (
	"context"
	"time"

	"github.com/xiebiao/shiptrack/internal/domain/expense"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// usdRates 创建时点的美元汇率表(1单位原币=多少美元)
// 冗余换算后的美元金额存进费用单,跨币种聚合不再依赖汇率服务;
// 汇率仅用于预算对比,精度要求不高,静态表定期随版本更新
var usdRates = map[string]float64{
	"USD": 1.0,
	"CNY": 0.14,
	"EUR": 1.08,
	"GBP": 1.27,
	"JPY": 0.0067,
	"HKD": 0.128,
}

// convertToUSD 原币金额(分)换算为美元金额(美分)
func convertToUSD(amount int64, currency string) (int64, error) {
	rate, ok := usdRates[currency]
	if !ok {
		return 0, apperrors.New(apperrors.ErrCodeInvalidParams, "不支持的币种: "+currency)
	}
	return int64(float64(amount)*rate + 0.5), nil
}

// CreateExpenseUseCase 创建费用单用例
type CreateExpenseUseCase struct {
	expenseRepo expense.Repository
}

// NewCreateExpenseUseCase 创建用例
func NewCreateExpenseUseCase(expenseRepo expense.Repository) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{expenseRepo: expenseRepo}
}

// CreateExpenseRequest 创建费用单请求DTO
type CreateExpenseRequest struct {
	CategoryID  uint
	VendorID    uint
	ShipmentID  *uint // 可选关联运单
	Description string
	Amount      int64  // 原币金额(分)
	Currency    string // ISO 4217
	ExpenseDate time.Time
}

// Execute 执行创建费用单
// 费用单号由系统生成,美元金额按创建时汇率冗余存储,初始状态为草稿
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if req.Amount <= 0 {
		return nil, expense.ErrInvalidAmount
	}

	amountUSD, err := convertToUSD(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	expenseDate := req.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	e := expense.NewExpense(
		expense.GenerateExpenseNumber(),
		req.CategoryID,
		req.VendorID,
		req.ShipmentID,
		req.Description,
		req.Amount,
		req.Currency,
		amountUSD,
		expenseDate,
	)
	if err := uc.expenseRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	resp := toExpenseResponse(e)
	return &resp, nil
}
