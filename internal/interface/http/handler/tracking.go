package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appshipment "github.com/xiebiao/shiptrack/internal/application/shipment"
	apptracking "github.com/xiebiao/shiptrack/internal/application/tracking"
	"github.com/xiebiao/shiptrack/internal/interface/http/dto"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
	"github.com/xiebiao/shiptrack/pkg/response"
)

// TrackingHandler 位置上报/轨迹查询/公开追踪HTTP处理器
type TrackingHandler struct {
	reportUC  *apptracking.ReportLocationUseCase
	historyUC *apptracking.LocationHistoryUseCase
	trackUC   *appshipment.TrackShipmentUseCase
}

// NewTrackingHandler 创建处理器
func NewTrackingHandler(
	reportUC *apptracking.ReportLocationUseCase,
	historyUC *apptracking.LocationHistoryUseCase,
	trackUC *appshipment.TrackShipmentUseCase,
) *TrackingHandler {
	return &TrackingHandler{reportUC: reportUC, historyUC: historyUC, trackUC: trackUC}
}

// ReportLocation 位置上报
// @Summary      上报运单位置
// @Description  先持久化轨迹点,再向订阅者广播(广播尽力而为)
// @Tags         追踪模块
// @Accept       json
// @Produce      json
// @Param        id path int true "运单ID"
// @Param        request body dto.ReportLocationRequest true "位置信息"
// @Success      200 {object} response.Response{data=apptracking.ReportLocationResponse}
// @Failure      400 {object} response.Response "坐标越界"
// @Failure      404 {object} response.Response "运单不存在"
// @Router       /shipments/{id}/location [post]
func (h *TrackingHandler) ReportLocation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ReportLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	var reportedAt time.Time
	if req.ReportedAt != "" {
		t, err := time.Parse(time.RFC3339, req.ReportedAt)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "reported_at格式错误,应为RFC3339")
			return
		}
		reportedAt = t
	}

	result, err := h.reportUC.Execute(c.Request.Context(), id, apptracking.ReportLocationRequest{
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Speed:      req.Speed,
		Heading:    req.Heading,
		ReportedAt: reportedAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// LocationHistory 轨迹历史
// @Summary      运单轨迹历史(按上报时间升序)
// @Tags         追踪模块
// @Produce      json
// @Param        id path int true "运单ID"
// @Param        limit query int false "最多返回条数"
// @Success      200 {object} response.Response{data=[]apptracking.LocationPoint}
// @Router       /shipments/{id}/locations [get]
func (h *TrackingHandler) LocationHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.LocationHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.historyUC.Execute(c.Request.Context(), id, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Track 公开追踪
// @Summary      公开追踪(按追踪号,无需登录)
// @Description  运单主体走Redis缓存,返回脱敏后的追踪信息
// @Tags         追踪模块
// @Produce      json
// @Param        tracking_number path string true "追踪号"
// @Success      200 {object} response.Response{data=appshipment.TrackShipmentResponse}
// @Failure      404 {object} response.Response "运单不存在"
// @Router       /track/{tracking_number} [get]
func (h *TrackingHandler) Track(c *gin.Context) {
	trackingNumber := c.Param("tracking_number")
	if trackingNumber == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "追踪号不能为空")
		return
	}

	result, err := h.trackUC.Execute(c.Request.Context(), trackingNumber)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
