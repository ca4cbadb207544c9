package shipment

import (
	"context"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
)

// ListShipmentsUseCase 运单列表查询用例
type ListShipmentsUseCase struct {
	shipmentSvc shipment.Service
}

// NewListShipmentsUseCase 创建用例
func NewListShipmentsUseCase(shipmentSvc shipment.Service) *ListShipmentsUseCase {
	return &ListShipmentsUseCase{shipmentSvc: shipmentSvc}
}

// ListShipmentsRequest 列表查询请求DTO
type ListShipmentsRequest struct {
	Page     int
	PageSize int
	Status   string // 为空表示全部
}

// ListShipmentsResponse 列表查询响应DTO
type ListShipmentsResponse struct {
	List       []*ShipmentResponse `json:"list"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// Execute 执行列表查询
// 参数默认值:page默认1,pageSize默认20,最大100
func (uc *ListShipmentsUseCase) Execute(ctx context.Context, req ListShipmentsRequest) (*ListShipmentsResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	shipments, total, err := uc.shipmentSvc.List(ctx, shipment.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Status:   shipment.Status(req.Status),
	})
	if err != nil {
		return nil, err
	}

	list := make([]*ShipmentResponse, len(shipments))
	for i, s := range shipments {
		list[i] = toShipmentResponse(s)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListShipmentsResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
