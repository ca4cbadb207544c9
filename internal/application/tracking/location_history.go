package tracking

import (
	"context"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	"github.com/xiebiao/shiptrack/internal/domain/tracking"
)

// LocationHistoryUseCase 轨迹历史查询用例
type LocationHistoryUseCase struct {
	shipmentSvc  shipment.Service
	trackingRepo tracking.Repository
}

// NewLocationHistoryUseCase 创建用例
func NewLocationHistoryUseCase(shipmentSvc shipment.Service, trackingRepo tracking.Repository) *LocationHistoryUseCase {
	return &LocationHistoryUseCase{shipmentSvc: shipmentSvc, trackingRepo: trackingRepo}
}

// LocationPoint 轨迹点DTO
type LocationPoint struct {
	ID         uint     `json:"id"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Speed      *float64 `json:"speed,omitempty"`
	Heading    *float64 `json:"heading,omitempty"`
	ReportedAt string   `json:"reported_at"`
}

// Execute 查询某运单的轨迹(按上报时间升序)
// limit<=0表示不限制条数
func (uc *LocationHistoryUseCase) Execute(ctx context.Context, shipmentID uint, limit int) ([]LocationPoint, error) {
	// 运单必须存在(不存在的运单返回404而非空轨迹)
	if _, err := uc.shipmentSvc.GetByID(ctx, shipmentID); err != nil {
		return nil, err
	}

	updates, err := uc.trackingRepo.ListByShipment(ctx, shipmentID, limit)
	if err != nil {
		return nil, err
	}

	points := make([]LocationPoint, len(updates))
	for i, u := range updates {
		points[i] = LocationPoint{
			ID:         u.ID,
			Latitude:   u.Latitude,
			Longitude:  u.Longitude,
			Speed:      u.Speed,
			Heading:    u.Heading,
			ReportedAt: u.ReportedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return points, nil
}
