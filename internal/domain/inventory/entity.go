package inventory

import (
	"time"
)

// Record 库存记录实体(聚合根)
// DDD设计说明:
// 1. 以(ProductID, LocationID)为业务唯一键,同一商品在不同站点各有一条记录
// 2. Quantity是在库总量,Reserved是其中已被运单预留的部分
// 3. 可用量Available = Quantity - Reserved,是派生值不落库
// 4. 不变式:Quantity >= 0 且 0 <= Reserved <= Quantity
type Record struct {
	ID         uint
	ProductID  uint // 商品ID
	LocationID uint // 站点ID
	Quantity   int  // 在库总量
	Reserved   int  // 已预留量
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewRecord 创建库存记录(工厂方法)
// 调用方需保证quantity>=0且0<=reserved<=quantity
func NewRecord(productID, locationID uint, quantity, reserved int) *Record {
	now := time.Now()
	return &Record{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   quantity,
		Reserved:   reserved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Available 可用量(未被预留的部分)
func (r *Record) Available() int {
	return r.Quantity - r.Reserved
}

// Reserve 预留库存(领域行为)
// 业务规则:可用量不足时整体拒绝,不做部分预留
func (r *Record) Reserve(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if r.Available() < qty {
		return ErrInsufficientInventory
	}
	r.Reserved += qty
	r.UpdatedAt = time.Now()
	return nil
}

// Release 释放预留(领域行为)
// 释放量超过已预留量时兜底为0,返回超出的部分供调用方计数告警
func (r *Record) Release(qty int) (overflow int) {
	if qty <= 0 {
		return 0
	}
	if qty > r.Reserved {
		overflow = qty - r.Reserved
		r.Reserved = 0
	} else {
		r.Reserved -= qty
	}
	r.UpdatedAt = time.Now()
	return overflow
}

// ApplyOutbound 出库(转移的源端扣减)
// 在库总量与预留量同时扣减,预留量兜底为0
// 注意:总量不做下限检查,调用方必须先通过Reserve保证覆盖
func (r *Record) ApplyOutbound(qty int) {
	if qty <= 0 {
		return
	}
	r.Quantity -= qty
	if r.Reserved > qty {
		r.Reserved -= qty
	} else {
		r.Reserved = 0
	}
	r.UpdatedAt = time.Now()
}

// ApplyInbound 入库(转移的目的端增加)
func (r *Record) ApplyInbound(qty int) {
	if qty <= 0 {
		return
	}
	r.Quantity += qty
	r.UpdatedAt = time.Now()
}
