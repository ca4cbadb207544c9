package tracking

import (
	"context"
)

// Repository 位置记录仓储接口(依赖倒置原则)
// 只追加+按运单查询,没有Update/Delete(记录不可变)
type Repository interface {
	// Create 追加一条位置记录
	Create(ctx context.Context, update *LocationUpdate) error

	// ListByShipment 查询某运单的轨迹历史(按上报时间升序)
	ListByShipment(ctx context.Context, shipmentID uint, limit int) ([]*LocationUpdate, error)

	// Latest 查询某运单的最新位置
	Latest(ctx context.Context, shipmentID uint) (*LocationUpdate, error)
}
