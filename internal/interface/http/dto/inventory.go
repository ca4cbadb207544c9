package dto

// CreateInventoryRecordRequest HTTP创建库存记录请求
type CreateInventoryRecordRequest struct {
	ProductID  uint `json:"product_id" binding:"required" example:"7"`
	LocationID uint `json:"location_id" binding:"required" example:"1"`
	Quantity   int  `json:"quantity" binding:"min=0" example:"100"`
	Reserved   int  `json:"reserved" binding:"min=0" example:"0"`
}

// GetInventoryRecordRequest HTTP查询库存记录请求
type GetInventoryRecordRequest struct {
	ProductID  uint `form:"product_id" binding:"required"`
	LocationID uint `form:"location_id" binding:"required"`
}

// PageRequest 通用分页请求
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}
