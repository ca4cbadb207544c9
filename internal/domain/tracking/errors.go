package tracking

import (
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// 位置追踪领域错误定义
var (
	// ErrInvalidLatitude 纬度超出范围
	ErrInvalidLatitude = apperrors.New(apperrors.ErrCodeInvalidParams, "纬度必须在-90到90之间")

	// ErrInvalidLongitude 经度超出范围
	ErrInvalidLongitude = apperrors.New(apperrors.ErrCodeInvalidParams, "经度必须在-180到180之间")
)
