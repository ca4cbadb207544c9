// Package handler HTTP处理器:参数绑定→调用用例→统一响应
package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appshipment "github.com/xiebiao/shiptrack/internal/application/shipment"
	"github.com/xiebiao/shiptrack/internal/interface/http/dto"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
	"github.com/xiebiao/shiptrack/pkg/response"
)

// ShipmentHandler 运单HTTP处理器
type ShipmentHandler struct {
	createUC *appshipment.CreateShipmentUseCase
	getUC    *appshipment.GetShipmentUseCase
	listUC   *appshipment.ListShipmentsUseCase
	updateUC *appshipment.UpdateShipmentUseCase
	statusUC *appshipment.UpdateStatusUseCase
	itemsUC  *appshipment.ManageItemsUseCase
}

// NewShipmentHandler 创建运单处理器
func NewShipmentHandler(
	createUC *appshipment.CreateShipmentUseCase,
	getUC *appshipment.GetShipmentUseCase,
	listUC *appshipment.ListShipmentsUseCase,
	updateUC *appshipment.UpdateShipmentUseCase,
	statusUC *appshipment.UpdateStatusUseCase,
	itemsUC *appshipment.ManageItemsUseCase,
) *ShipmentHandler {
	return &ShipmentHandler{
		createUC: createUC,
		getUC:    getUC,
		listUC:   listUC,
		updateUC: updateUC,
		statusUC: statusUC,
		itemsUC:  itemsUC,
	}
}

// parseID 解析路径中的数字ID
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "非法的"+name)
		return 0, false
	}
	return uint(id), true
}

// parseDate 解析YYYY-MM-DD,空串返回nil
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create 创建运单
// @Summary      创建运单
// @Tags         运单模块
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateShipmentRequest true "运单信息"
// @Success      200 {object} response.Response{data=appshipment.ShipmentResponse}
// @Failure      400 {object} response.Response "参数错误/运单号重复/起止站点相同"
// @Router       /shipments [post]
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	estimatedDelivery, err := parseDate(req.EstimatedDelivery)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "estimated_delivery格式错误,应为YYYY-MM-DD")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), appshipment.CreateShipmentRequest{
		TrackingNumber:        req.TrackingNumber,
		OriginLocationID:      req.OriginLocationID,
		DestinationLocationID: req.DestinationLocationID,
		Carrier:               req.Carrier,
		RecipientName:         req.RecipientName,
		EstimatedDelivery:     estimatedDelivery,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 运单详情
// @Summary      运单详情(含明细)
// @Tags         运单模块
// @Produce      json
// @Param        id path int true "运单ID"
// @Success      200 {object} response.Response{data=appshipment.ShipmentResponse}
// @Failure      404 {object} response.Response "运单不存在"
// @Router       /shipments/{id} [get]
func (h *ShipmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// List 运单列表
// @Summary      运单列表(分页,可按状态过滤)
// @Tags         运单模块
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        status query string false "状态过滤"
// @Success      200 {object} response.Response{data=appshipment.ListShipmentsResponse}
// @Router       /shipments [get]
func (h *ShipmentHandler) List(c *gin.Context) {
	var req dto.ListShipmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), appshipment.ListShipmentsRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Status:   req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 更新运单基本信息
// @Summary      更新运单基本信息(不含状态)
// @Tags         运单模块
// @Accept       json
// @Produce      json
// @Param        id path int true "运单ID"
// @Param        request body dto.UpdateShipmentRequest true "更新字段"
// @Success      200 {object} response.Response{data=appshipment.ShipmentResponse}
// @Router       /shipments/{id} [put]
func (h *ShipmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	estimatedDelivery, err := parseDate(req.EstimatedDelivery)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "estimated_delivery格式错误,应为YYYY-MM-DD")
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), id, appshipment.UpdateShipmentRequest{
		Carrier:           req.Carrier,
		RecipientName:     req.RecipientName,
		EstimatedDelivery: estimatedDelivery,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus 状态流转
// @Summary      运单状态流转
// @Description  pending→dispatched触发库存转移,pending→cancelled释放预留,状态与库存变更同一事务
// @Tags         运单模块
// @Accept       json
// @Produce      json
// @Param        id path int true "运单ID"
// @Param        request body dto.UpdateStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=appshipment.ShipmentResponse}
// @Failure      400 {object} response.Response "非法流转/库存不足"
// @Router       /shipments/{id}/status [put]
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.statusUC.Execute(c.Request.Context(), id, appshipment.UpdateStatusRequest{Target: req.Status})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddItem 追加明细
// @Summary      追加运单明细(在起运站点预留库存)
// @Tags         运单模块
// @Accept       json
// @Produce      json
// @Param        id path int true "运单ID"
// @Param        request body dto.AddItemRequest true "明细"
// @Success      200 {object} response.Response{data=appshipment.ItemResponse}
// @Failure      400 {object} response.Response "库存不足/运单不可修改"
// @Router       /shipments/{id}/items [post]
func (h *ShipmentHandler) AddItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.itemsUC.AddItem(c.Request.Context(), id, appshipment.AddItemRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateItem 修改明细
// @Summary      修改运单明细数量(按差额调整预留)
// @Tags         运单模块
// @Accept       json
// @Produce      json
// @Param        id path int true "运单ID"
// @Param        item_id path int true "明细ID"
// @Param        request body dto.UpdateItemRequest true "明细"
// @Success      200 {object} response.Response{data=appshipment.ItemResponse}
// @Router       /shipments/{id}/items/{item_id} [put]
func (h *ShipmentHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.itemsUC.UpdateItem(c.Request.Context(), id, itemID, appshipment.UpdateItemRequest{
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveItem 删除明细
// @Summary      删除运单明细(释放其预留)
// @Tags         运单模块
// @Produce      json
// @Param        id path int true "运单ID"
// @Param        item_id path int true "明细ID"
// @Success      200 {object} response.Response
// @Router       /shipments/{id}/items/{item_id} [delete]
func (h *ShipmentHandler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	if err := h.itemsUC.RemoveItem(c.Request.Context(), id, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListItems 明细列表
// @Summary      运单明细列表
// @Tags         运单模块
// @Produce      json
// @Param        id path int true "运单ID"
// @Success      200 {object} response.Response{data=[]appshipment.ItemResponse}
// @Router       /shipments/{id}/items [get]
func (h *ShipmentHandler) ListItems(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.itemsUC.ListItems(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
