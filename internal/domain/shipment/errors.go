package shipment

import (
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// 运单领域错误定义
var (
	// ErrShipmentNotFound 运单不存在
	ErrShipmentNotFound = apperrors.ErrShipmentNotFound

	// ErrItemNotFound 运单明细不存在
	ErrItemNotFound = apperrors.ErrItemNotFound

	// ErrInvalidTransition 非法的状态流转
	ErrInvalidTransition = apperrors.ErrInvalidTransition

	// ErrTrackingNoDuplicate 追踪号已存在
	ErrTrackingNoDuplicate = apperrors.ErrTrackingNoDuplicate

	// ErrShipmentImmutable 非待派发状态的运单不允许修改明细
	ErrShipmentImmutable = apperrors.New(apperrors.ErrCodeBusinessError, "运单已派发,明细不可修改")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrSameLocation 起止站点相同
	ErrSameLocation = apperrors.New(apperrors.ErrCodeInvalidParams, "起运站点与目的站点不能相同")
)
