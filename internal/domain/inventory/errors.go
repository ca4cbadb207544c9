package inventory

import (
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrRecordNotFound 库存记录不存在
	ErrRecordNotFound = apperrors.ErrInventoryNotFound

	// ErrInsufficientInventory 可用库存不足
	ErrInsufficientInventory = apperrors.ErrInsufficientInventory

	// ErrRecordDuplicate 同一商品在同一站点的库存记录已存在
	ErrRecordDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "该站点已存在此商品的库存记录")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInvalidInitialStock 无效的初始库存
	ErrInvalidInitialStock = apperrors.New(apperrors.ErrCodeInvalidParams, "初始库存不合法(需满足0<=预留<=总量)")
)
