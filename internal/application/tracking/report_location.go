// Package tracking 位置上报与轨迹查询用例
package tracking

import (
	"context"
	"time"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	"github.com/xiebiao/shiptrack/internal/domain/tracking"
	"github.com/xiebiao/shiptrack/pkg/metrics"
)

// ReportLocationUseCase 位置上报用例
// 设计说明:
// 1. 上报顺序是"先持久化,后广播":落库失败直接报错,
//    落库成功后的广播是尽力而为,失败不回滚记录
// 2. 单条INSERT无需显式事务
type ReportLocationUseCase struct {
	shipmentSvc  shipment.Service
	trackingRepo tracking.Repository
	publisher    shipment.EventPublisher
}

// NewReportLocationUseCase 创建用例
func NewReportLocationUseCase(
	shipmentSvc shipment.Service,
	trackingRepo tracking.Repository,
	publisher shipment.EventPublisher,
) *ReportLocationUseCase {
	return &ReportLocationUseCase{
		shipmentSvc:  shipmentSvc,
		trackingRepo: trackingRepo,
		publisher:    publisher,
	}
}

// ReportLocationRequest 位置上报请求DTO
// ReportedAt为零值时取服务端当前时间
type ReportLocationRequest struct {
	Latitude   float64
	Longitude  float64
	Speed      *float64
	Heading    *float64
	ReportedAt time.Time
}

// ReportLocationResponse 位置上报响应DTO
type ReportLocationResponse struct {
	ID         uint   `json:"id"`
	ShipmentID uint   `json:"shipment_id"`
	ReportedAt string `json:"reported_at"`
}

// Execute 执行位置上报
func (uc *ReportLocationUseCase) Execute(ctx context.Context, shipmentID uint, req ReportLocationRequest) (*ReportLocationResponse, error) {
	// 1. 运单必须存在(也拿到追踪号供事件携带)
	s, err := uc.shipmentSvc.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	// 2. 坐标校验+落库
	reportedAt := req.ReportedAt
	if reportedAt.IsZero() {
		reportedAt = time.Now()
	}
	update := tracking.NewLocationUpdate(shipmentID, req.Latitude, req.Longitude, req.Speed, req.Heading, reportedAt)
	if err := update.Validate(); err != nil {
		return nil, err
	}
	if err := uc.trackingRepo.Create(ctx, update); err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.LocationUpdatesTotal)

	// 3. 落库成功后广播(尽力而为)
	if uc.publisher != nil {
		uc.publisher.PublishLocationUpdate(shipment.LocationUpdateEvent{
			Type:           shipment.EventTypeLocationUpdate,
			ShipmentID:     shipmentID,
			TrackingNumber: s.TrackingNumber,
			Latitude:       req.Latitude,
			Longitude:      req.Longitude,
			Speed:          req.Speed,
			Heading:        req.Heading,
			Timestamp:      reportedAt,
		})
	}

	return &ReportLocationResponse{
		ID:         update.ID,
		ShipmentID: shipmentID,
		ReportedAt: update.ReportedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
