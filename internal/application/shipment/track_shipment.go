package shipment

import (
	"context"
	"log"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	"github.com/xiebiao/shiptrack/internal/domain/tracking"
)

// TrackShipmentUseCase 公开追踪查询用例(按追踪号)
// 设计说明:
// 1. 这是唯一无需登录的读接口,是全系统的读热点
// 2. 运单主体走Cache-Aside:先查Redis,未命中回源MySQL并写回
// 3. 最新位置不缓存(更新频繁,缓存命中率低),直接查库
type TrackShipmentUseCase struct {
	shipmentSvc  shipment.Service
	trackingRepo tracking.Repository
	cache        Cache
}

// NewTrackShipmentUseCase 创建用例
func NewTrackShipmentUseCase(shipmentSvc shipment.Service, trackingRepo tracking.Repository, cache Cache) *TrackShipmentUseCase {
	return &TrackShipmentUseCase{
		shipmentSvc:  shipmentSvc,
		trackingRepo: trackingRepo,
		cache:        cache,
	}
}

// TrackShipmentResponse 公开追踪响应DTO
// 只暴露追踪必需的字段,不含收件人等内部信息
type TrackShipmentResponse struct {
	TrackingNumber    string            `json:"tracking_number"`
	Status            string            `json:"status"`
	Carrier           string            `json:"carrier"`
	EstimatedDelivery string            `json:"estimated_delivery,omitempty"`
	LatestLocation    *LocationResponse `json:"latest_location,omitempty"`
}

// LocationResponse 位置DTO
type LocationResponse struct {
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Speed      *float64 `json:"speed,omitempty"`
	Heading    *float64 `json:"heading,omitempty"`
	ReportedAt string   `json:"reported_at"`
}

// Execute 执行公开追踪查询
func (uc *TrackShipmentUseCase) Execute(ctx context.Context, trackingNumber string) (*TrackShipmentResponse, error) {
	s, err := uc.loadShipment(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	resp := &TrackShipmentResponse{
		TrackingNumber: s.TrackingNumber,
		Status:         string(s.Status),
		Carrier:        s.Carrier,
	}
	if s.EstimatedDelivery != nil {
		resp.EstimatedDelivery = s.EstimatedDelivery.Format(timeLayout)
	}

	// 最新位置:查不到不算错(还没上报过)
	latest, err := uc.trackingRepo.Latest(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		resp.LatestLocation = &LocationResponse{
			Latitude:   latest.Latitude,
			Longitude:  latest.Longitude,
			Speed:      latest.Speed,
			Heading:    latest.Heading,
			ReportedAt: latest.ReportedAt.Format(timeLayout),
		}
	}

	return resp, nil
}

// loadShipment Cache-Aside读运单
func (uc *TrackShipmentUseCase) loadShipment(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, trackingNumber)
		if err != nil {
			// 缓存故障降级为直接查库
			log.Printf("读运单缓存失败,回源数据库: tracking=%s err=%v", trackingNumber, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	s, err := uc.shipmentSvc.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, s); err != nil {
			log.Printf("写运单缓存失败: tracking=%s err=%v", trackingNumber, err)
		}
	}
	return s, nil
}
