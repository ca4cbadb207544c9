package dto

// CreateProductRequest HTTP创建商品请求
type CreateProductRequest struct {
	SKU         string  `json:"sku" binding:"required,max=64" example:"SKU-A1001"`
	Name        string  `json:"name" binding:"required,max=200" example:"无线机械键盘"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	UnitWeight  float64 `json:"unit_weight" binding:"omitempty,min=0" example:"1.2"` // kg
}

// CreateLocationRequest HTTP创建站点请求
type CreateLocationRequest struct {
	Code    string `json:"code" binding:"required,max=32" example:"SHA-01"`
	Name    string `json:"name" binding:"required,max=200" example:"上海一号仓"`
	Address string `json:"address" binding:"omitempty,max=500"`
	City    string `json:"city" binding:"omitempty,max=100" example:"上海"`
	Country string `json:"country" binding:"omitempty,max=100" example:"中国"`
}
