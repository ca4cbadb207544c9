package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/shiptrack/internal/application/inventory"
	"github.com/xiebiao/shiptrack/internal/interface/http/dto"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
	"github.com/xiebiao/shiptrack/pkg/response"
)

// InventoryHandler 库存HTTP处理器
// 只暴露记录的建/查:预留/释放/转移是运单流转的内部副作用
type InventoryHandler struct {
	recordsUC *appinventory.ManageRecordsUseCase
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(recordsUC *appinventory.ManageRecordsUseCase) *InventoryHandler {
	return &InventoryHandler{recordsUC: recordsUC}
}

// Create 创建库存记录
// @Summary      创建库存记录(商品×站点)
// @Tags         库存模块
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateInventoryRecordRequest true "库存记录"
// @Success      200 {object} response.Response{data=appinventory.RecordResponse}
// @Failure      400 {object} response.Response "记录已存在/初始量非法"
// @Router       /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.recordsUC.Create(c.Request.Context(), appinventory.CreateRecordRequest{
		ProductID:  req.ProductID,
		LocationID: req.LocationID,
		Quantity:   req.Quantity,
		Reserved:   req.Reserved,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 查询单条库存记录
// @Summary      查询库存记录(按商品+站点)
// @Tags         库存模块
// @Produce      json
// @Param        product_id query int true "商品ID"
// @Param        location_id query int true "站点ID"
// @Success      200 {object} response.Response{data=appinventory.RecordResponse}
// @Failure      404 {object} response.Response "记录不存在"
// @Router       /inventory/record [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	var req dto.GetInventoryRecordRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.recordsUC.Get(c.Request.Context(), req.ProductID, req.LocationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// List 库存记录列表
// @Summary      库存记录列表(分页)
// @Tags         库存模块
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=appinventory.RecordListResponse}
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.recordsUC.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
