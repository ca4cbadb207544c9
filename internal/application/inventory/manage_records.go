// Package inventory 库存管理用例
package inventory

import (
	"context"

	"github.com/xiebiao/shiptrack/internal/application"
	"github.com/xiebiao/shiptrack/internal/domain/inventory"
)

// ManageRecordsUseCase 库存记录管理用例(建/查/列表)
// 预留/释放/转移不在这里暴露:它们只作为运单流转的副作用发生,
// 不提供独立的对外操作入口
type ManageRecordsUseCase struct {
	inventorySvc inventory.Service
	txManager    application.TxManager
}

// NewManageRecordsUseCase 创建用例
func NewManageRecordsUseCase(inventorySvc inventory.Service, txManager application.TxManager) *ManageRecordsUseCase {
	return &ManageRecordsUseCase{inventorySvc: inventorySvc, txManager: txManager}
}

// CreateRecordRequest 创建库存记录请求DTO
type CreateRecordRequest struct {
	ProductID  uint
	LocationID uint
	Quantity   int
	Reserved   int
}

// RecordResponse 库存记录响应DTO
type RecordResponse struct {
	ID         uint   `json:"id"`
	ProductID  uint   `json:"product_id"`
	LocationID uint   `json:"location_id"`
	Quantity   int    `json:"quantity"`
	Reserved   int    `json:"reserved"`
	Available  int    `json:"available"`
	UpdatedAt  string `json:"updated_at"`
}

// RecordListResponse 库存记录列表响应DTO
type RecordListResponse struct {
	List     []RecordResponse `json:"list"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Create 创建库存记录
func (uc *ManageRecordsUseCase) Create(ctx context.Context, req CreateRecordRequest) (*RecordResponse, error) {
	var result *inventory.Record
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		record, err := uc.inventorySvc.CreateRecord(txCtx, req.ProductID, req.LocationID, req.Quantity, req.Reserved)
		if err != nil {
			return err
		}
		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toRecordResponse(result)
	return &resp, nil
}

// Get 查询单条库存记录
func (uc *ManageRecordsUseCase) Get(ctx context.Context, productID, locationID uint) (*RecordResponse, error) {
	record, err := uc.inventorySvc.GetRecord(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}

	resp := toRecordResponse(record)
	return &resp, nil
}

// List 分页查询库存记录
func (uc *ManageRecordsUseCase) List(ctx context.Context, page, pageSize int) (*RecordListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	records, total, err := uc.inventorySvc.ListRecords(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]RecordResponse, len(records))
	for i, r := range records {
		list[i] = toRecordResponse(r)
	}
	return &RecordListResponse{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

func toRecordResponse(r *inventory.Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		LocationID: r.LocationID,
		Quantity:   r.Quantity,
		Reserved:   r.Reserved,
		Available:  r.Available(),
		UpdatedAt:  r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
