package expense

import (
	"github.com/xiebiao/shiptrack/internal/domain/expense"
)

// ExpenseResponse 费用单响应DTO
type ExpenseResponse struct {
	ID            uint   `json:"id"`
	ExpenseNumber string `json:"expense_number"`
	CategoryID    uint   `json:"category_id"`
	VendorID      uint   `json:"vendor_id"`
	ShipmentID    *uint  `json:"shipment_id,omitempty"`
	Description   string `json:"description,omitempty"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	AmountUSD     int64  `json:"amount_usd"`
	Status        string `json:"status"`
	ExpenseDate   string `json:"expense_date"`
	ApprovedBy    string `json:"approved_by,omitempty"`
	ReviewedAt    string `json:"reviewed_at,omitempty"`
	CreatedAt     string `json:"created_at"`
}

const timeLayout = "2006-01-02 15:04:05"
const dateLayout = "2006-01-02"

func toExpenseResponse(e *expense.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:            e.ID,
		ExpenseNumber: e.ExpenseNumber,
		CategoryID:    e.CategoryID,
		VendorID:      e.VendorID,
		ShipmentID:    e.ShipmentID,
		Description:   e.Description,
		Amount:        e.Amount,
		Currency:      e.Currency,
		AmountUSD:     e.AmountUSD,
		Status:        string(e.Status),
		ExpenseDate:   e.ExpenseDate.Format(dateLayout),
		ApprovedBy:    e.ApprovedBy,
		CreatedAt:     e.CreatedAt.Format(timeLayout),
	}
	if e.ReviewedAt != nil {
		resp.ReviewedAt = e.ReviewedAt.Format(timeLayout)
	}
	return resp
}
