package expense

import (
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// 费用领域错误定义
var (
	// ErrExpenseNotFound 费用单不存在
	ErrExpenseNotFound = apperrors.ErrExpenseNotFound

	// ErrBudgetNotFound 预算不存在
	ErrBudgetNotFound = apperrors.ErrBudgetNotFound

	// ErrCategoryNotFound 费用类别不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeNotFound, "费用类别不存在")

	// ErrVendorNotFound 供应商不存在
	ErrVendorNotFound = apperrors.New(apperrors.ErrCodeNotFound, "供应商不存在")

	// ErrInvalidTransition 工作流状态不允许此操作
	ErrInvalidTransition = apperrors.New(apperrors.ErrCodeInvalidTransition, "当前工作流状态不允许此操作")

	// ErrExpenseImmutable 非草稿状态不允许编辑
	ErrExpenseImmutable = apperrors.New(apperrors.ErrCodeBusinessError, "费用单已提交,不可编辑")

	// ErrInvalidAmount 金额必须大于0
	ErrInvalidAmount = apperrors.New(apperrors.ErrCodeInvalidParams, "金额必须大于0")

	// ErrInvalidPeriod 预算周期不合法
	ErrInvalidPeriod = apperrors.New(apperrors.ErrCodeInvalidParams, "预算周期结束时间必须晚于开始时间")
)
