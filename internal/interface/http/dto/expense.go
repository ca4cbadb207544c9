package dto

// CreateExpenseRequest HTTP创建费用单请求
type CreateExpenseRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required" example:"1"`
	VendorID    uint   `json:"vendor_id" binding:"required" example:"2"`
	ShipmentID  *uint  `json:"shipment_id" binding:"omitempty" example:"42"`
	Description string `json:"description" binding:"omitempty,max=1000" example:"干线运输费"`
	Amount      int64  `json:"amount" binding:"required,min=1" example:"100000"` // 原币金额(分)
	Currency    string `json:"currency" binding:"required,len=3" example:"CNY"`  // ISO 4217
	ExpenseDate string `json:"expense_date" binding:"omitempty" example:"2026-08-30"`
}

// UpdateExpenseRequest HTTP编辑草稿费用单请求(零值字段不更新)
type UpdateExpenseRequest struct {
	Description string `json:"description" binding:"omitempty,max=1000"`
	Amount      int64  `json:"amount" binding:"omitempty,min=1"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
}

// ReviewExpenseRequest HTTP审批请求(批准/驳回时携带审批人)
type ReviewExpenseRequest struct {
	Approver string `json:"approver" binding:"required,max=100" example:"王经理"`
}

// ListExpensesRequest HTTP费用单列表请求
type ListExpensesRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=draft submitted approved rejected"`
}

// CreateCategoryRequest HTTP创建费用类别请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"运输费"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// CreateVendorRequest HTTP创建供应商请求
type CreateVendorRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"远洋物流"`
	ContactInfo string `json:"contact_info" binding:"omitempty,max=500"`
}

// CreateBudgetRequest HTTP创建预算请求
type CreateBudgetRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required" example:"1"`
	PeriodStart string `json:"period_start" binding:"required" example:"2026-09-01"` // YYYY-MM-DD
	PeriodEnd   string `json:"period_end" binding:"required" example:"2026-10-01"`
	AmountUSD   int64  `json:"amount_usd" binding:"required,min=1" example:"500000"` // 美分
}
