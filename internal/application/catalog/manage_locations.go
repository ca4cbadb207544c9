package catalog

import (
	"context"

	"github.com/xiebiao/shiptrack/internal/domain/catalog"
)

// ManageLocationsUseCase 站点主数据用例
type ManageLocationsUseCase struct {
	locationRepo catalog.LocationRepository
}

// NewManageLocationsUseCase 创建用例
func NewManageLocationsUseCase(locationRepo catalog.LocationRepository) *ManageLocationsUseCase {
	return &ManageLocationsUseCase{locationRepo: locationRepo}
}

// CreateLocationRequest 创建站点请求DTO
type CreateLocationRequest struct {
	Code    string
	Name    string
	Address string
	City    string
	Country string
}

// LocationResponse 站点响应DTO
type LocationResponse struct {
	ID        uint   `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	CreatedAt string `json:"created_at"`
}

// LocationListResponse 站点列表响应DTO
type LocationListResponse struct {
	List     []LocationResponse `json:"list"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// Create 创建站点
func (uc *ManageLocationsUseCase) Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	location := catalog.NewLocation(req.Code, req.Name, req.Address, req.City, req.Country)
	if err := uc.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}

	resp := toLocationResponse(location)
	return &resp, nil
}

// Get 按ID查询站点
func (uc *ManageLocationsUseCase) Get(ctx context.Context, id uint) (*LocationResponse, error) {
	location, err := uc.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toLocationResponse(location)
	return &resp, nil
}

// List 分页查询站点
func (uc *ManageLocationsUseCase) List(ctx context.Context, page, pageSize int) (*LocationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	locations, total, err := uc.locationRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]LocationResponse, len(locations))
	for i, l := range locations {
		list[i] = toLocationResponse(l)
	}
	return &LocationListResponse{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

func toLocationResponse(l *catalog.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		Address:   l.Address,
		City:      l.City,
		Country:   l.Country,
		CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
