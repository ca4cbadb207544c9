package shipment

import (
	"context"
	"time"

	"github.com/xiebiao/shiptrack/internal/application"
	"github.com/xiebiao/shiptrack/internal/domain/shipment"
)

// CreateShipmentUseCase 创建运单用例
type CreateShipmentUseCase struct {
	shipmentSvc shipment.Service
	txManager   application.TxManager
}

// NewCreateShipmentUseCase 创建用例
func NewCreateShipmentUseCase(shipmentSvc shipment.Service, txManager application.TxManager) *CreateShipmentUseCase {
	return &CreateShipmentUseCase{shipmentSvc: shipmentSvc, txManager: txManager}
}

// CreateShipmentRequest 创建运单请求DTO
// TrackingNumber为空时由系统生成
type CreateShipmentRequest struct {
	TrackingNumber        string
	OriginLocationID      uint
	DestinationLocationID uint
	Carrier               string
	RecipientName         string
	EstimatedDelivery     *time.Time
}

// Execute 执行创建运单用例
// 查重+落库放在同一事务(数据库唯一索引兜底并发窗口)
func (uc *CreateShipmentUseCase) Execute(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	trackingNumber := req.TrackingNumber
	if trackingNumber == "" {
		trackingNumber = shipment.GenerateTrackingNumber()
	}

	var result *shipment.Shipment
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		s, err := uc.shipmentSvc.CreateShipment(txCtx, shipment.CreateParams{
			TrackingNumber:        trackingNumber,
			OriginLocationID:      req.OriginLocationID,
			DestinationLocationID: req.DestinationLocationID,
			Carrier:               req.Carrier,
			RecipientName:         req.RecipientName,
			EstimatedDelivery:     req.EstimatedDelivery,
		})
		if err != nil {
			return err
		}
		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toShipmentResponse(result), nil
}
