package expense

import (
	"context"

	"github.com/xiebiao/shiptrack/internal/domain/expense"
)

// QueryExpensesUseCase 费用单查询与草稿编辑用例
type QueryExpensesUseCase struct {
	expenseRepo expense.Repository
}

// NewQueryExpensesUseCase 创建用例
func NewQueryExpensesUseCase(expenseRepo expense.Repository) *QueryExpensesUseCase {
	return &QueryExpensesUseCase{expenseRepo: expenseRepo}
}

// Get 按ID查询费用单
func (uc *QueryExpensesUseCase) Get(ctx context.Context, id uint) (*ExpenseResponse, error) {
	e, err := uc.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toExpenseResponse(e)
	return &resp, nil
}

// ExpenseListResponse 费用单列表响应DTO
type ExpenseListResponse struct {
	List     []ExpenseResponse `json:"list"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// List 分页查询费用单,status为空表示全部
func (uc *QueryExpensesUseCase) List(ctx context.Context, page, pageSize int, status string) (*ExpenseListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	expenses, total, err := uc.expenseRepo.List(ctx, page, pageSize, expense.ExpenseStatus(status))
	if err != nil {
		return nil, err
	}

	list := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		list[i] = toExpenseResponse(e)
	}
	return &ExpenseListResponse{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

// UpdateExpenseRequest 草稿编辑请求DTO(零值字段不更新)
type UpdateExpenseRequest struct {
	Description string
	Amount      int64
	Currency    string
}

// Update 编辑草稿费用单
// 只有草稿允许编辑;金额或币种变化时重算美元金额
func (uc *QueryExpensesUseCase) Update(ctx context.Context, id uint, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	e, err := uc.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.IsEditable() {
		return nil, expense.ErrExpenseImmutable
	}

	if req.Description != "" {
		e.Description = req.Description
	}
	if req.Amount > 0 {
		e.Amount = req.Amount
	}
	if req.Currency != "" {
		e.Currency = req.Currency
	}
	amountUSD, err := convertToUSD(e.Amount, e.Currency)
	if err != nil {
		return nil, err
	}
	e.AmountUSD = amountUSD

	if err := uc.expenseRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	resp := toExpenseResponse(e)
	return &resp, nil
}
