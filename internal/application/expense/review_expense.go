package expense

import (
	"context"

	"github.com/xiebiao/shiptrack/internal/domain/expense"
)

// ReviewExpenseUseCase 费用单工作流用例(提交/批准/驳回)
// 流转规则由实体校验:draft→submitted→approved/rejected,
// approved/rejected是终态
type ReviewExpenseUseCase struct {
	expenseRepo expense.Repository
}

// NewReviewExpenseUseCase 创建用例
func NewReviewExpenseUseCase(expenseRepo expense.Repository) *ReviewExpenseUseCase {
	return &ReviewExpenseUseCase{expenseRepo: expenseRepo}
}

// Submit 提交审批
func (uc *ReviewExpenseUseCase) Submit(ctx context.Context, id uint) (*ExpenseResponse, error) {
	return uc.review(ctx, id, func(e *expense.Expense) error {
		return e.Submit()
	})
}

// Approve 批准
func (uc *ReviewExpenseUseCase) Approve(ctx context.Context, id uint, approver string) (*ExpenseResponse, error) {
	return uc.review(ctx, id, func(e *expense.Expense) error {
		return e.Approve(approver)
	})
}

// Reject 驳回
func (uc *ReviewExpenseUseCase) Reject(ctx context.Context, id uint, approver string) (*ExpenseResponse, error) {
	return uc.review(ctx, id, func(e *expense.Expense) error {
		return e.Reject(approver)
	})
}

// review 查询→实体流转→落库的公共骨架
func (uc *ReviewExpenseUseCase) review(ctx context.Context, id uint, action func(*expense.Expense) error) (*ExpenseResponse, error) {
	e, err := uc.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := action(e); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	resp := toExpenseResponse(e)
	return &resp, nil
}
