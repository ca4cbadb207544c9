package shipment

import (
	"context"
)

// Repository 运单仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现;便于Mock测试
type Repository interface {
	// Create 创建运单(含明细)
	Create(ctx context.Context, s *Shipment) error

	// FindByID 根据ID查找运单(含明细)
	FindByID(ctx context.Context, id uint) (*Shipment, error)

	// FindByTrackingNumber 根据追踪号查找运单
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)

	// LockByID 悲观锁查询运单(状态流转时锁定,防止并发流转)
	LockByID(ctx context.Context, id uint) (*Shipment, error)

	// Update 更新运单主记录(不含明细)
	Update(ctx context.Context, s *Shipment) error

	// List 分页查询运单列表,status为空表示不过滤
	List(ctx context.Context, params ListParams) ([]*Shipment, int64, error)

	// AddItem 追加运单明细
	AddItem(ctx context.Context, item *Item) error

	// FindItem 查找单条明细
	FindItem(ctx context.Context, shipmentID, itemID uint) (*Item, error)

	// UpdateItem 更新明细
	UpdateItem(ctx context.Context, item *Item) error

	// DeleteItem 删除明细
	DeleteItem(ctx context.Context, shipmentID, itemID uint) error

	// ListItems 查询运单的全部明细
	ListItems(ctx context.Context, shipmentID uint) ([]*Item, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Status   Status // 为空表示全部
}
