package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/shiptrack/internal/domain/inventory"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// inventoryRepository 库存仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/inventory/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. LockByProductAndLocation使用SELECT FOR UPDATE,
//    并发Reserve的check-then-increment在数据库行锁上串行化
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

// Create 创建库存记录
func (r *inventoryRepository) Create(ctx context.Context, record *inventory.Record) error {
	model := &InventoryRecordModel{
		ProductID:  record.ProductID,
		LocationID: record.LocationID,
		Quantity:   record.Quantity,
		Reserved:   record.Reserved,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return inventory.ErrRecordDuplicate
		}
		return apperrors.Wrap(err, "创建库存记录失败")
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	record.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByProductAndLocation 根据(商品,站点)查找库存记录
func (r *inventoryRepository) FindByProductAndLocation(ctx context.Context, productID, locationID uint) (*inventory.Record, error) {
	var model InventoryRecordModel
	err := getDB(ctx, r.db).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存记录失败")
	}

	return toInventoryEntity(&model), nil
}

// LockByProductAndLocation 悲观锁查询库存记录
func (r *inventoryRepository) LockByProductAndLocation(ctx context.Context, productID, locationID uint) (*inventory.Record, error) {
	var model InventoryRecordModel
	// SELECT FOR UPDATE锁定行,必须在事务中调用才有意义
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "锁定库存记录失败")
	}

	return toInventoryEntity(&model), nil
}

// Update 更新库存记录
func (r *inventoryRepository) Update(ctx context.Context, record *inventory.Record) error {
	model := &InventoryRecordModel{
		ID:         record.ID,
		ProductID:  record.ProductID,
		LocationID: record.LocationID,
		Quantity:   record.Quantity,
		Reserved:   record.Reserved,
		CreatedAt:  record.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新库存记录失败")
	}

	record.UpdatedAt = model.UpdatedAt
	return nil
}

// ListByProduct 查询某商品在所有站点的库存
func (r *inventoryRepository) ListByProduct(ctx context.Context, productID uint) ([]*inventory.Record, error) {
	var models []InventoryRecordModel
	err := getDB(ctx, r.db).
		Where("product_id = ?", productID).
		Order("location_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询商品库存失败")
	}

	records := make([]*inventory.Record, len(models))
	for i := range models {
		records[i] = toInventoryEntity(&models[i])
	}
	return records, nil
}

// List 分页查询库存记录
func (r *inventoryRepository) List(ctx context.Context, page, pageSize int) ([]*inventory.Record, int64, error) {
	var models []InventoryRecordModel
	var total int64

	query := getDB(ctx, r.db).Model(&InventoryRecordModel{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询库存总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("product_id ASC, location_id ASC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询库存列表失败")
	}

	records := make([]*inventory.Record, len(models))
	for i := range models {
		records[i] = toInventoryEntity(&models[i])
	}
	return records, total, nil
}

// toInventoryEntity GORM模型 → 领域实体
func toInventoryEntity(model *InventoryRecordModel) *inventory.Record {
	return &inventory.Record{
		ID:         model.ID,
		ProductID:  model.ProductID,
		LocationID: model.LocationID,
		Quantity:   model.Quantity,
		Reserved:   model.Reserved,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
