package inventory

import (
	"context"
)

// Repository 库存仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. Lock*方法使用SELECT FOR UPDATE锁定行,保证并发预留串行化
type Repository interface {
	// Create 创建库存记录
	Create(ctx context.Context, record *Record) error

	// FindByProductAndLocation 根据(商品,站点)查找库存记录
	FindByProductAndLocation(ctx context.Context, productID, locationID uint) (*Record, error)

	// LockByProductAndLocation 悲观锁查询库存记录
	// 并发Reserve依赖此锁串行化check-then-increment
	LockByProductAndLocation(ctx context.Context, productID, locationID uint) (*Record, error)

	// Update 更新库存记录
	Update(ctx context.Context, record *Record) error

	// ListByProduct 查询某商品在所有站点的库存
	ListByProduct(ctx context.Context, productID uint) ([]*Record, error)

	// List 分页查询库存记录
	List(ctx context.Context, page, pageSize int) ([]*Record, int64, error)
}
