package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appexpense "github.com/xiebiao/shiptrack/internal/application/expense"
	"github.com/xiebiao/shiptrack/internal/interface/http/dto"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
	"github.com/xiebiao/shiptrack/pkg/response"
)

// ExpenseHandler 费用管理HTTP处理器
type ExpenseHandler struct {
	createUC    *appexpense.CreateExpenseUseCase
	queryUC     *appexpense.QueryExpensesUseCase
	reviewUC    *appexpense.ReviewExpenseUseCase
	budgetsUC   *appexpense.ManageBudgetsUseCase
	referenceUC *appexpense.ManageReferenceUseCase
}

// NewExpenseHandler 创建费用处理器
func NewExpenseHandler(
	createUC *appexpense.CreateExpenseUseCase,
	queryUC *appexpense.QueryExpensesUseCase,
	reviewUC *appexpense.ReviewExpenseUseCase,
	budgetsUC *appexpense.ManageBudgetsUseCase,
	referenceUC *appexpense.ManageReferenceUseCase,
) *ExpenseHandler {
	return &ExpenseHandler{
		createUC:    createUC,
		queryUC:     queryUC,
		reviewUC:    reviewUC,
		budgetsUC:   budgetsUC,
		referenceUC: referenceUC,
	}
}

// Create 创建费用单
// @Summary      创建费用单(草稿)
// @Description  美元金额按创建时汇率冗余存储,单号系统生成
// @Tags         费用模块
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateExpenseRequest true "费用信息"
// @Success      200 {object} response.Response{data=appexpense.ExpenseResponse}
// @Failure      400 {object} response.Response "不支持的币种/金额非法"
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	var expenseDate time.Time
	if req.ExpenseDate != "" {
		t, err := time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "expense_date格式错误,应为YYYY-MM-DD")
			return
		}
		expenseDate = t
	}

	result, err := h.createUC.Execute(c.Request.Context(), appexpense.CreateExpenseRequest{
		CategoryID:  req.CategoryID,
		VendorID:    req.VendorID,
		ShipmentID:  req.ShipmentID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		ExpenseDate: expenseDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 费用单详情
// @Summary      费用单详情
// @Tags         费用模块
// @Produce      json
// @Param        id path int true "费用单ID"
// @Success      200 {object} response.Response{data=appexpense.ExpenseResponse}
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.queryUC.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// List 费用单列表
// @Summary      费用单列表(分页,可按工作流状态过滤)
// @Tags         费用模块
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        status query string false "状态过滤"
// @Success      200 {object} response.Response{data=appexpense.ExpenseListResponse}
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var req dto.ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.queryUC.List(c.Request.Context(), req.Page, req.PageSize, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 编辑草稿费用单
// @Summary      编辑草稿费用单
// @Tags         费用模块
// @Accept       json
// @Produce      json
// @Param        id path int true "费用单ID"
// @Param        request body dto.UpdateExpenseRequest true "更新字段"
// @Success      200 {object} response.Response{data=appexpense.ExpenseResponse}
// @Failure      400 {object} response.Response "非草稿状态不可编辑"
// @Router       /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.queryUC.Update(c.Request.Context(), id, appexpense.UpdateExpenseRequest{
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Submit 提交审批
// @Summary      提交费用单审批
// @Tags         费用模块
// @Produce      json
// @Param        id path int true "费用单ID"
// @Success      200 {object} response.Response{data=appexpense.ExpenseResponse}
// @Failure      400 {object} response.Response "工作流状态不允许"
// @Router       /expenses/{id}/submit [post]
func (h *ExpenseHandler) Submit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.reviewUC.Submit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Approve 批准
// @Summary      批准费用单
// @Tags         费用模块
// @Accept       json
// @Produce      json
// @Param        id path int true "费用单ID"
// @Param        request body dto.ReviewExpenseRequest true "审批人"
// @Success      200 {object} response.Response{data=appexpense.ExpenseResponse}
// @Router       /expenses/{id}/approve [post]
func (h *ExpenseHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.reviewUC.Approve(c.Request.Context(), id, req.Approver)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Reject 驳回
// @Summary      驳回费用单
// @Tags         费用模块
// @Accept       json
// @Produce      json
// @Param        id path int true "费用单ID"
// @Param        request body dto.ReviewExpenseRequest true "审批人"
// @Success      200 {object} response.Response{data=appexpense.ExpenseResponse}
// @Router       /expenses/{id}/reject [post]
func (h *ExpenseHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.reviewUC.Reject(c.Request.Context(), id, req.Approver)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateCategory 创建费用类别
// @Summary      创建费用类别
// @Tags         费用模块
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "类别信息"
// @Success      200 {object} response.Response{data=appexpense.CategoryResponse}
// @Router       /expense-categories [post]
func (h *ExpenseHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.referenceUC.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListCategories 费用类别列表
// @Summary      费用类别列表
// @Tags         费用模块
// @Produce      json
// @Success      200 {object} response.Response{data=[]appexpense.CategoryResponse}
// @Router       /expense-categories [get]
func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	result, err := h.referenceUC.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateVendor 创建供应商
// @Summary      创建供应商
// @Tags         费用模块
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateVendorRequest true "供应商信息"
// @Success      200 {object} response.Response{data=appexpense.VendorResponse}
// @Router       /vendors [post]
func (h *ExpenseHandler) CreateVendor(c *gin.Context) {
	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.referenceUC.CreateVendor(c.Request.Context(), req.Name, req.ContactInfo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListVendors 供应商列表
// @Summary      供应商列表
// @Tags         费用模块
// @Produce      json
// @Success      200 {object} response.Response{data=[]appexpense.VendorResponse}
// @Router       /vendors [get]
func (h *ExpenseHandler) ListVendors(c *gin.Context) {
	result, err := h.referenceUC.ListVendors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateBudget 创建预算
// @Summary      创建预算(类别×周期)
// @Tags         费用模块
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBudgetRequest true "预算信息"
// @Success      200 {object} response.Response{data=appexpense.BudgetResponse}
// @Router       /budgets [post]
func (h *ExpenseHandler) CreateBudget(c *gin.Context) {
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.budgetsUC.Create(c.Request.Context(), appexpense.CreateBudgetRequest{
		CategoryID:  req.CategoryID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		AmountUSD:   req.AmountUSD,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListBudgets 预算列表
// @Summary      预算列表
// @Tags         费用模块
// @Produce      json
// @Success      200 {object} response.Response{data=[]appexpense.BudgetResponse}
// @Router       /budgets [get]
func (h *ExpenseHandler) ListBudgets(c *gin.Context) {
	result, err := h.budgetsUC.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// BudgetVariance 预算差异分析
// @Summary      预算差异分析(预算-周期内已批准费用)
// @Tags         费用模块
// @Produce      json
// @Param        id path int true "预算ID"
// @Success      200 {object} response.Response{data=appexpense.VarianceResponse}
// @Router       /budgets/{id}/variance [get]
func (h *ExpenseHandler) BudgetVariance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.budgetsUC.Variance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
