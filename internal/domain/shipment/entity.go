package shipment

import (
	"time"
)

// Shipment 运单实体(聚合根)
// DDD设计说明:
// 1. Shipment是运单聚合的根实体,Item是聚合内的子实体
// 2. TrackingNumber作为对外业务标识(数据库唯一索引),公开追踪接口用它查询
// 3. 起止站点只保存LocationID,不跨聚合引用站点实体
type Shipment struct {
	ID                    uint
	TrackingNumber        string // 追踪号(业务主键,全局唯一)
	OriginLocationID      uint   // 起运站点ID
	DestinationLocationID uint   // 目的站点ID
	Status                Status // 运单状态
	Carrier               string // 承运方
	RecipientName         string // 收件人
	EstimatedDelivery     *time.Time
	Items                 []Item // 运单明细(聚合内的子实体)
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Item 运单明细项
// 不是独立聚合根,必须通过Shipment访问;
// 只保存ProductID,不直接关联商品对象
type Item struct {
	ID         uint
	ShipmentID uint
	ProductID  uint
	Quantity   int
	Notes      string
}

// NewShipment 创建新运单(工厂方法)
// 初始状态为Pending(待派发),追踪号由外部传入
func NewShipment(trackingNumber string, originLocationID, destinationLocationID uint, carrier, recipientName string, estimatedDelivery *time.Time) *Shipment {
	now := time.Now()
	return &Shipment{
		TrackingNumber:        trackingNumber,
		OriginLocationID:      originLocationID,
		DestinationLocationID: destinationLocationID,
		Status:                StatusPending,
		Carrier:               carrier,
		RecipientName:         recipientName,
		EstimatedDelivery:     estimatedDelivery,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// CanTransitionTo 检查是否可以流转到目标状态
func (s *Shipment) CanTransitionTo(target Status) bool {
	return s.Status.CanTransitionTo(target)
}

// TransitionTo 状态流转
// 先校验流转表,成功后更新UpdatedAt
func (s *Shipment) TransitionTo(target Status) error {
	if !s.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	s.Status = target
	s.UpdatedAt = time.Now()
	return nil
}

// IsMutable 明细是否可修改
// 只有待派发的运单允许增删改明细(派发后库存已转移)
func (s *Shipment) IsMutable() bool {
	return s.Status == StatusPending
}
