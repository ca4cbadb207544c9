// Package shipment 运单相关用例
package shipment

import (
	"context"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
)

// Cache 运单缓存抽象(公开追踪接口的Cache-Aside)
// redis.ShipmentCache满足该接口;用例测试用fake实现
type Cache interface {
	Get(ctx context.Context, trackingNumber string) (*shipment.Shipment, error)
	Set(ctx context.Context, s *shipment.Shipment) error
	Invalidate(ctx context.Context, trackingNumber string) error
}

// ShipmentResponse 运单响应DTO
type ShipmentResponse struct {
	ID                    uint           `json:"id"`
	TrackingNumber        string         `json:"tracking_number"`
	OriginLocationID      uint           `json:"origin_location_id"`
	DestinationLocationID uint           `json:"destination_location_id"`
	Status                string         `json:"status"`
	Carrier               string         `json:"carrier"`
	RecipientName         string         `json:"recipient_name"`
	EstimatedDelivery     string         `json:"estimated_delivery,omitempty"`
	Items                 []ItemResponse `json:"items"`
	CreatedAt             string         `json:"created_at"`
	UpdatedAt             string         `json:"updated_at"`
}

// ItemResponse 运单明细DTO
type ItemResponse struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

const timeLayout = "2006-01-02 15:04:05"

func toShipmentResponse(s *shipment.Shipment) *ShipmentResponse {
	resp := &ShipmentResponse{
		ID:                    s.ID,
		TrackingNumber:        s.TrackingNumber,
		OriginLocationID:      s.OriginLocationID,
		DestinationLocationID: s.DestinationLocationID,
		Status:                string(s.Status),
		Carrier:               s.Carrier,
		RecipientName:         s.RecipientName,
		Items:                 make([]ItemResponse, len(s.Items)),
		CreatedAt:             s.CreatedAt.Format(timeLayout),
		UpdatedAt:             s.UpdatedAt.Format(timeLayout),
	}
	if s.EstimatedDelivery != nil {
		resp.EstimatedDelivery = s.EstimatedDelivery.Format(timeLayout)
	}
	for i, item := range s.Items {
		resp.Items[i] = toItemResponse(&item)
	}
	return resp
}

func toItemResponse(item *shipment.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Notes:     item.Notes,
	}
}
