// Package dto 定义HTTP请求/响应结构与binding校验规则
package dto

// CreateShipmentRequest HTTP创建运单请求
// tracking_number可选,不传时由系统生成
type CreateShipmentRequest struct {
	TrackingNumber        string `json:"tracking_number" binding:"omitempty,max=64" example:"ST1767052800123456"`
	OriginLocationID      uint   `json:"origin_location_id" binding:"required" example:"1"`
	DestinationLocationID uint   `json:"destination_location_id" binding:"required" example:"2"`
	Carrier               string `json:"carrier" binding:"omitempty,max=100" example:"顺丰速运"`
	RecipientName         string `json:"recipient_name" binding:"omitempty,max=100" example:"张三"`
	EstimatedDelivery     string `json:"estimated_delivery" binding:"omitempty" example:"2026-09-15"` // YYYY-MM-DD
}

// UpdateShipmentRequest HTTP更新运单请求(零值字段不更新)
type UpdateShipmentRequest struct {
	Carrier           string `json:"carrier" binding:"omitempty,max=100"`
	RecipientName     string `json:"recipient_name" binding:"omitempty,max=100"`
	EstimatedDelivery string `json:"estimated_delivery" binding:"omitempty"` // YYYY-MM-DD
}

// UpdateStatusRequest HTTP状态流转请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=dispatched in_transit delivered cancelled" example:"dispatched"`
}

// ListShipmentsRequest HTTP运单列表请求
type ListShipmentsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Status   string `form:"status" binding:"omitempty,oneof=pending dispatched in_transit delivered cancelled"`
}

// AddItemRequest HTTP追加明细请求
type AddItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required" example:"7"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=99999" example:"5"`
	Notes     string `json:"notes" binding:"omitempty,max=500"`
}

// UpdateItemRequest HTTP修改明细请求
type UpdateItemRequest struct {
	Quantity int    `json:"quantity" binding:"required,min=1,max=99999" example:"3"`
	Notes    string `json:"notes" binding:"omitempty,max=500"`
}

// ReportLocationRequest HTTP位置上报请求
// reported_at可选(RFC3339),不传取服务端时间
type ReportLocationRequest struct {
	Latitude   float64  `json:"latitude" binding:"required,min=-90,max=90" example:"31.2304"`
	Longitude  float64  `json:"longitude" binding:"required,min=-180,max=180" example:"121.4737"`
	Speed      *float64 `json:"speed" binding:"omitempty,min=0" example:"65.5"`
	Heading    *float64 `json:"heading" binding:"omitempty,min=0,max=360" example:"270"`
	ReportedAt string   `json:"reported_at" binding:"omitempty" example:"2026-08-30T12:00:00Z"`
}

// LocationHistoryRequest HTTP轨迹查询请求
type LocationHistoryRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000" example:"100"`
}
