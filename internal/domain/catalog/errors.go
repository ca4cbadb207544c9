package catalog

import (
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// 主数据领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	// ErrLocationNotFound 站点不存在
	ErrLocationNotFound = apperrors.New(apperrors.ErrCodeLocationNotFound, "站点不存在")

	// ErrSKUDuplicate 商品编码已存在
	ErrSKUDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "商品编码已存在")

	// ErrLocationCodeDuplicate 站点编码已存在
	ErrLocationCodeDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "站点编码已存在")
)
