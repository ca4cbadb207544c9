package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/shiptrack/internal/domain/catalog"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// productRepository 商品仓储实现(MySQL)
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) catalog.ProductRepository {
	return &productRepository{db: db}
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *catalog.Product) error {
	model := &ProductModel{
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		UnitWeight:  p.UnitWeight,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	var model ProductModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// FindBySKU 根据SKU查找商品
func (r *productRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var model ProductModel
	if err := getDB(ctx, r.db).Where("sku = ?", sku).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// List 分页查询商品列表
func (r *productRepository) List(ctx context.Context, page, pageSize int) ([]*catalog.Product, int64, error) {
	var models []ProductModel
	var total int64

	query := getDB(ctx, r.db).Model(&ProductModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	offset := (page - 1) * pageSize
	if err := query.Order("id ASC").Limit(pageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	products := make([]*catalog.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, total, nil
}

func toProductEntity(model *ProductModel) *catalog.Product {
	return &catalog.Product{
		ID:          model.ID,
		SKU:         model.SKU,
		Name:        model.Name,
		Description: model.Description,
		UnitWeight:  model.UnitWeight,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// locationRepository 站点仓储实现(MySQL)
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository 创建站点仓储
func NewLocationRepository(db *gorm.DB) catalog.LocationRepository {
	return &locationRepository{db: db}
}

// Create 创建站点
func (r *locationRepository) Create(ctx context.Context, l *catalog.Location) error {
	model := &LocationModel{
		Code:    l.Code,
		Name:    l.Name,
		Address: l.Address,
		City:    l.City,
		Country: l.Country,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrLocationCodeDuplicate
		}
		return apperrors.Wrap(err, "创建站点失败")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找站点
func (r *locationRepository) FindByID(ctx context.Context, id uint) (*catalog.Location, error) {
	var model LocationModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrLocationNotFound
		}
		return nil, apperrors.Wrap(err, "查询站点失败")
	}
	return toLocationEntity(&model), nil
}

// FindByCode 根据编码查找站点
func (r *locationRepository) FindByCode(ctx context.Context, code string) (*catalog.Location, error) {
	var model LocationModel
	if err := getDB(ctx, r.db).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrLocationNotFound
		}
		return nil, apperrors.Wrap(err, "查询站点失败")
	}
	return toLocationEntity(&model), nil
}

// List 分页查询站点列表
func (r *locationRepository) List(ctx context.Context, page, pageSize int) ([]*catalog.Location, int64, error) {
	var models []LocationModel
	var total int64

	query := getDB(ctx, r.db).Model(&LocationModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询站点总数失败")
	}

	offset := (page - 1) * pageSize
	if err := query.Order("id ASC").Limit(pageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询站点列表失败")
	}

	locations := make([]*catalog.Location, len(models))
	for i := range models {
		locations[i] = toLocationEntity(&models[i])
	}
	return locations, total, nil
}

func toLocationEntity(model *LocationModel) *catalog.Location {
	return &catalog.Location{
		ID:        model.ID,
		Code:      model.Code,
		Name:      model.Name,
		Address:   model.Address,
		City:      model.City,
		Country:   model.Country,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
