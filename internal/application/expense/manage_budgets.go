package expense

import (
	"context"

	"github.com/xiebiao/shiptrack/internal/domain/expense"
)

// ManageBudgetsUseCase 预算管理与差异分析用例
type ManageBudgetsUseCase struct {
	expenseRepo expense.Repository
}

// NewManageBudgetsUseCase 创建用例
func NewManageBudgetsUseCase(expenseRepo expense.Repository) *ManageBudgetsUseCase {
	return &ManageBudgetsUseCase{expenseRepo: expenseRepo}
}

// CreateBudgetRequest 创建预算请求DTO
type CreateBudgetRequest struct {
	CategoryID  uint
	PeriodStart string // 2006-01-02
	PeriodEnd   string
	AmountUSD   int64 // 美分
}

// BudgetResponse 预算响应DTO
type BudgetResponse struct {
	ID          uint   `json:"id"`
	CategoryID  uint   `json:"category_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	AmountUSD   int64  `json:"amount_usd"`
}

// VarianceResponse 预算差异响应DTO
// 实际值为周期内已批准费用的美元总额;差异=预算-实际,正数为结余
type VarianceResponse struct {
	Budget      BudgetResponse `json:"budget"`
	ActualUSD   int64          `json:"actual_usd"`
	VarianceUSD int64          `json:"variance_usd"`
}

// Create 创建预算
func (uc *ManageBudgetsUseCase) Create(ctx context.Context, req CreateBudgetRequest) (*BudgetResponse, error) {
	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return nil, err
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if !periodEnd.After(periodStart) {
		return nil, expense.ErrInvalidPeriod
	}
	if req.AmountUSD <= 0 {
		return nil, expense.ErrInvalidAmount
	}

	budget := &expense.Budget{
		CategoryID:  req.CategoryID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		AmountUSD:   req.AmountUSD,
	}
	if err := uc.expenseRepo.CreateBudget(ctx, budget); err != nil {
		return nil, err
	}

	resp := toBudgetResponse(budget)
	return &resp, nil
}

// List 查询全部预算
func (uc *ManageBudgetsUseCase) List(ctx context.Context) ([]BudgetResponse, error) {
	budgets, err := uc.expenseRepo.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		list[i] = toBudgetResponse(b)
	}
	return list, nil
}

// Variance 单个预算的差异分析
// 只统计已批准的费用:草稿/待审/驳回不占预算
func (uc *ManageBudgetsUseCase) Variance(ctx context.Context, budgetID uint) (*VarianceResponse, error) {
	budget, err := uc.expenseRepo.FindBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	actual, err := uc.expenseRepo.SumApprovedUSD(ctx, budget.CategoryID, budget.PeriodStart, budget.PeriodEnd)
	if err != nil {
		return nil, err
	}

	v := &expense.Variance{Budget: budget, ActualUSD: actual}
	return &VarianceResponse{
		Budget:      toBudgetResponse(budget),
		ActualUSD:   actual,
		VarianceUSD: v.VarianceUSD(),
	}, nil
}

func toBudgetResponse(b *expense.Budget) BudgetResponse {
	return BudgetResponse{
		ID:          b.ID,
		CategoryID:  b.CategoryID,
		PeriodStart: b.PeriodStart.Format(dateLayout),
		PeriodEnd:   b.PeriodEnd.Format(dateLayout),
		AmountUSD:   b.AmountUSD,
	}
}
