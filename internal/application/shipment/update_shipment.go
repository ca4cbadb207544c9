package shipment

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
)

// UpdateShipmentUseCase 更新运单基本信息用例
// 状态不在这里改,状态流转走UpdateStatusUseCase
type UpdateShipmentUseCase struct {
	shipmentSvc shipment.Service
	cache       Cache
}

// NewUpdateShipmentUseCase 创建用例
func NewUpdateShipmentUseCase(shipmentSvc shipment.Service, cache Cache) *UpdateShipmentUseCase {
	return &UpdateShipmentUseCase{shipmentSvc: shipmentSvc, cache: cache}
}

// UpdateShipmentRequest 更新请求DTO(零值字段不更新)
type UpdateShipmentRequest struct {
	Carrier           string
	RecipientName     string
	EstimatedDelivery *time.Time
}

// Execute 执行更新
func (uc *UpdateShipmentUseCase) Execute(ctx context.Context, id uint, req UpdateShipmentRequest) (*ShipmentResponse, error) {
	s, err := uc.shipmentSvc.UpdateInfo(ctx, id, req.Carrier, req.RecipientName, req.EstimatedDelivery)
	if err != nil {
		return nil, err
	}

	// 失效公开追踪缓存(失败不影响更新结果,短TTL兜底)
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, s.TrackingNumber); err != nil {
			log.Printf("失效运单缓存失败: tracking=%s err=%v", s.TrackingNumber, err)
		}
	}

	return toShipmentResponse(s), nil
}
