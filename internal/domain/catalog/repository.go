package catalog

import (
	"context"
)

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context, page, pageSize int) ([]*Product, int64, error)
}

// LocationRepository 站点仓储接口
type LocationRepository interface {
	Create(ctx context.Context, location *Location) error
	FindByID(ctx context.Context, id uint) (*Location, error)
	FindByCode(ctx context.Context, code string) (*Location, error)
	List(ctx context.Context, page, pageSize int) ([]*Location, int64, error)
}
