package shipment

import (
	"context"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
)

// GetShipmentUseCase 运单详情查询用例(内部接口,按ID)
type GetShipmentUseCase struct {
	shipmentSvc shipment.Service
}

// NewGetShipmentUseCase 创建用例
func NewGetShipmentUseCase(shipmentSvc shipment.Service) *GetShipmentUseCase {
	return &GetShipmentUseCase{shipmentSvc: shipmentSvc}
}

// Execute 执行查询
func (uc *GetShipmentUseCase) Execute(ctx context.Context, id uint) (*ShipmentResponse, error) {
	s, err := uc.shipmentSvc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toShipmentResponse(s), nil
}
