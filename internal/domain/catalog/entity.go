package catalog

import (
	"time"
)

// Product 商品实体
// 库存台账与运单明细只引用ProductID,目录本身是简单的主数据
type Product struct {
	ID          uint
	SKU         string // 商品编码(业务唯一)
	Name        string
	Description string
	UnitWeight  float64 // 单件重量(kg),用于运费估算
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct 创建商品(工厂方法)
func NewProduct(sku, name, description string, unitWeight float64) *Product {
	now := time.Now()
	return &Product{
		SKU:         sku,
		Name:        name,
		Description: description,
		UnitWeight:  unitWeight,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Location 站点实体(仓库/配送中心)
type Location struct {
	ID        uint
	Code      string // 站点编码(业务唯一)
	Name      string
	Address   string
	City      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLocation 创建站点(工厂方法)
func NewLocation(code, name, address, city, country string) *Location {
	now := time.Now()
	return &Location{
		Code:      code,
		Name:      name,
		Address:   address,
		City:      city,
		Country:   country,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
