package expense

import (
	"time"
)

// ExpenseStatus 费用单状态
// 工作流:draft → submitted → approved/rejected
// approved/rejected是终态
type ExpenseStatus string

const (
	StatusDraft     ExpenseStatus = "draft"     // 草稿
	StatusSubmitted ExpenseStatus = "submitted" // 已提交待审批
	StatusApproved  ExpenseStatus = "approved"  // 已批准
	StatusRejected  ExpenseStatus = "rejected"  // 已驳回
)

// expenseTransitions 合法的工作流流转表
var expenseTransitions = map[ExpenseStatus][]ExpenseStatus{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
	StatusApproved:  {},
	StatusRejected:  {},
}

// CanTransitionTo 检查是否可以流转到目标状态
func (s ExpenseStatus) CanTransitionTo(target ExpenseStatus) bool {
	allowed, ok := expenseTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// Expense 费用单实体(聚合根)
// 设计说明:
// 1. 金额使用int64存储"分"为单位(避免浮点数精度问题)
// 2. AmountUSD是按创建时汇率换算的美元金额,冗余存储便于跨币种聚合
// 3. ExpenseNumber是业务唯一编号(EXP-前缀+时间序列)
type Expense struct {
	ID            uint
	ExpenseNumber string // 费用单号(业务主键,全局唯一)
	CategoryID    uint
	VendorID      uint
	ShipmentID    *uint // 关联运单(可选)
	Description   string
	Amount        int64  // 原币金额(分)
	Currency      string // 币种(ISO 4217,如CNY/USD)
	AmountUSD     int64  // 美元金额(美分),按创建时汇率冗余
	Status        ExpenseStatus
	ExpenseDate   time.Time
	ApprovedBy    string // 审批人(批准/驳回时填写)
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewExpense 创建费用单(工厂方法),初始状态为草稿
func NewExpense(expenseNumber string, categoryID, vendorID uint, shipmentID *uint, description string, amount int64, currency string, amountUSD int64, expenseDate time.Time) *Expense {
	now := time.Now()
	return &Expense{
		ExpenseNumber: expenseNumber,
		CategoryID:    categoryID,
		VendorID:      vendorID,
		ShipmentID:    shipmentID,
		Description:   description,
		Amount:        amount,
		Currency:      currency,
		AmountUSD:     amountUSD,
		Status:        StatusDraft,
		ExpenseDate:   expenseDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Submit 提交审批(领域行为)
func (e *Expense) Submit() error {
	return e.transitionTo(StatusSubmitted)
}

// Approve 批准(领域行为)
// 业务规则:只有已提交的费用单可以批准
func (e *Expense) Approve(approver string) error {
	if err := e.transitionTo(StatusApproved); err != nil {
		return err
	}
	now := time.Now()
	e.ApprovedBy = approver
	e.ReviewedAt = &now
	return nil
}

// Reject 驳回(领域行为)
func (e *Expense) Reject(approver string) error {
	if err := e.transitionTo(StatusRejected); err != nil {
		return err
	}
	now := time.Now()
	e.ApprovedBy = approver
	e.ReviewedAt = &now
	return nil
}

// IsEditable 草稿状态才允许编辑金额等字段
func (e *Expense) IsEditable() bool {
	return e.Status == StatusDraft
}

func (e *Expense) transitionTo(target ExpenseStatus) error {
	if !e.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	e.Status = target
	e.UpdatedAt = time.Now()
	return nil
}

// Category 费用类别
type Category struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
}

// Vendor 供应商
type Vendor struct {
	ID          uint
	Name        string
	ContactInfo string
	CreatedAt   time.Time
}

// Budget 预算(按类别+周期)
type Budget struct {
	ID          uint
	CategoryID  uint
	PeriodStart time.Time
	PeriodEnd   time.Time
	AmountUSD   int64 // 预算金额(美分)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variance 预算差异(预算-实际,正数表示结余)
type Variance struct {
	Budget    *Budget
	ActualUSD int64 // 周期内已批准费用的美元总额(美分)
}

// VarianceUSD 差异额
func (v *Variance) VarianceUSD() int64 {
	return v.Budget.AmountUSD - v.ActualUSD
}
