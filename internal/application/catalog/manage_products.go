// Package catalog 商品与站点主数据用例
package catalog

import (
	"context"

	"github.com/xiebiao/shiptrack/internal/domain/catalog"
)

// ManageProductsUseCase 商品主数据用例
type ManageProductsUseCase struct {
	productRepo catalog.ProductRepository
}

// NewManageProductsUseCase 创建用例
func NewManageProductsUseCase(productRepo catalog.ProductRepository) *ManageProductsUseCase {
	return &ManageProductsUseCase{productRepo: productRepo}
}

// CreateProductRequest 创建商品请求DTO
type CreateProductRequest struct {
	SKU         string
	Name        string
	Description string
	UnitWeight  float64
}

// ProductResponse 商品响应DTO
type ProductResponse struct {
	ID          uint    `json:"id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	UnitWeight  float64 `json:"unit_weight"`
	CreatedAt   string  `json:"created_at"`
}

// ProductListResponse 商品列表响应DTO
type ProductListResponse struct {
	List     []ProductResponse `json:"list"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Create 创建商品
func (uc *ManageProductsUseCase) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product := catalog.NewProduct(req.SKU, req.Name, req.Description, req.UnitWeight)
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	resp := toProductResponse(product)
	return &resp, nil
}

// Get 按ID查询商品
func (uc *ManageProductsUseCase) Get(ctx context.Context, id uint) (*ProductResponse, error) {
	product, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toProductResponse(product)
	return &resp, nil
}

// List 分页查询商品
func (uc *ManageProductsUseCase) List(ctx context.Context, page, pageSize int) (*ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	products, total, err := uc.productRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]ProductResponse, len(products))
	for i, p := range products {
		list[i] = toProductResponse(p)
	}
	return &ProductListResponse{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		UnitWeight:  p.UnitWeight,
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
