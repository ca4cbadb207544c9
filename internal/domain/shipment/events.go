package shipment

import (
	"time"
)

// 事件类型(WebSocket消息type字段与MQ路由键后缀共用)
const (
	EventTypeStatusUpdate   = "status_update"
	EventTypeLocationUpdate = "location_update"
)

// StatusUpdateEvent 运单状态变更事件
// 在状态流转事务提交之后发布(提交前发布会把未落库的状态广播出去)
type StatusUpdateEvent struct {
	Type           string    `json:"type"`
	ShipmentID     uint      `json:"shipment_id"`
	TrackingNumber string    `json:"tracking_number"`
	OldStatus      Status    `json:"old_status"`
	NewStatus      Status    `json:"new_status"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewStatusUpdateEvent 构造状态变更事件
func NewStatusUpdateEvent(s *Shipment, oldStatus Status) StatusUpdateEvent {
	return StatusUpdateEvent{
		Type:           EventTypeStatusUpdate,
		ShipmentID:     s.ID,
		TrackingNumber: s.TrackingNumber,
		OldStatus:      oldStatus,
		NewStatus:      s.Status,
		Timestamp:      time.Now(),
	}
}

// LocationUpdateEvent 位置上报事件
type LocationUpdateEvent struct {
	Type           string    `json:"type"`
	ShipmentID     uint      `json:"shipment_id"`
	TrackingNumber string    `json:"tracking_number"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Speed          *float64  `json:"speed,omitempty"`
	Heading        *float64  `json:"heading,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// EventPublisher 事件发布接口(依赖倒置)
// 设计说明:
// 1. domain层只定义接口,infrastructure层组合具体通道
//    (进程内WebSocket广播 + 对外RabbitMQ发布)
// 2. 发布是尽力而为:失败不回滚已提交的业务变更,由实现方记录与计数
type EventPublisher interface {
	// PublishStatusUpdate 发布状态变更事件
	PublishStatusUpdate(event StatusUpdateEvent)

	// PublishLocationUpdate 发布位置上报事件
	PublishLocationUpdate(event LocationUpdateEvent)
}
