package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/shiptrack/internal/application/catalog"
	"github.com/xiebiao/shiptrack/internal/interface/http/dto"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
	"github.com/xiebiao/shiptrack/pkg/response"
)

// CatalogHandler 商品与站点主数据HTTP处理器
type CatalogHandler struct {
	productsUC  *appcatalog.ManageProductsUseCase
	locationsUC *appcatalog.ManageLocationsUseCase
}

// NewCatalogHandler 创建主数据处理器
func NewCatalogHandler(productsUC *appcatalog.ManageProductsUseCase, locationsUC *appcatalog.ManageLocationsUseCase) *CatalogHandler {
	return &CatalogHandler{productsUC: productsUC, locationsUC: locationsUC}
}

// CreateProduct 创建商品
// @Summary      创建商品
// @Tags         主数据模块
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=appcatalog.ProductResponse}
// @Failure      400 {object} response.Response "SKU重复"
// @Router       /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.productsUC.Create(c.Request.Context(), appcatalog.CreateProductRequest{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		UnitWeight:  req.UnitWeight,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetProduct 商品详情
// @Summary      商品详情
// @Tags         主数据模块
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=appcatalog.ProductResponse}
// @Router       /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.productsUC.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListProducts 商品列表
// @Summary      商品列表(分页)
// @Tags         主数据模块
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=appcatalog.ProductListResponse}
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.productsUC.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateLocation 创建站点
// @Summary      创建站点(仓库/配送中心)
// @Tags         主数据模块
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLocationRequest true "站点信息"
// @Success      200 {object} response.Response{data=appcatalog.LocationResponse}
// @Failure      400 {object} response.Response "站点编码重复"
// @Router       /locations [post]
func (h *CatalogHandler) CreateLocation(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.locationsUC.Create(c.Request.Context(), appcatalog.CreateLocationRequest{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetLocation 站点详情
// @Summary      站点详情
// @Tags         主数据模块
// @Produce      json
// @Param        id path int true "站点ID"
// @Success      200 {object} response.Response{data=appcatalog.LocationResponse}
// @Router       /locations/{id} [get]
func (h *CatalogHandler) GetLocation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.locationsUC.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListLocations 站点列表
// @Summary      站点列表(分页)
// @Tags         主数据模块
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=appcatalog.LocationListResponse}
// @Router       /locations [get]
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.locationsUC.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
