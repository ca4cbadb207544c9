package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// shipmentRepository 运单仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/shipment/repository.go定义的接口
// 2. 状态在数据库存字符串,未知历史值原样往返(领域层流转时才拒绝)
// 3. 追踪号冲突由唯一索引兜底,转换为业务错误
type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository 创建运单仓储
func NewShipmentRepository(db *gorm.DB) shipment.Repository {
	return &shipmentRepository{db: db}
}

// Create 创建运单(含明细)
func (r *shipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	model := &ShipmentModel{
		TrackingNumber:        s.TrackingNumber,
		OriginLocationID:      s.OriginLocationID,
		DestinationLocationID: s.DestinationLocationID,
		Status:                string(s.Status),
		Carrier:               s.Carrier,
		RecipientName:         s.RecipientName,
		EstimatedDelivery:     s.EstimatedDelivery,
	}
	for _, item := range s.Items {
		model.Items = append(model.Items, ShipmentItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return shipment.ErrTrackingNoDuplicate
		}
		return apperrors.Wrap(err, "创建运单失败")
	}

	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		s.Items[i].ID = model.Items[i].ID
		s.Items[i].ShipmentID = model.ID
	}
	return nil
}

// FindByID 根据ID查找运单(含明细)
func (r *shipmentRepository) FindByID(ctx context.Context, id uint) (*shipment.Shipment, error) {
	var model ShipmentModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shipment.ErrShipmentNotFound
		}
		return nil, apperrors.Wrap(err, "查询运单失败")
	}

	return toShipmentEntity(&model), nil
}

// FindByTrackingNumber 根据追踪号查找运单
func (r *shipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	var model ShipmentModel
	err := getDB(ctx, r.db).
		Preload("Items").
		Where("tracking_number = ?", trackingNumber).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shipment.ErrShipmentNotFound
		}
		return nil, apperrors.Wrap(err, "查询运单失败")
	}

	return toShipmentEntity(&model), nil
}

// LockByID 悲观锁查询运单
// 状态流转在此串行化(防止并发重复取消导致双重释放)
func (r *shipmentRepository) LockByID(ctx context.Context, id uint) (*shipment.Shipment, error) {
	var model ShipmentModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shipment.ErrShipmentNotFound
		}
		return nil, apperrors.Wrap(err, "锁定运单失败")
	}

	return toShipmentEntity(&model), nil
}

// Update 更新运单主记录(不含明细)
func (r *shipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	model := &ShipmentModel{
		ID:                    s.ID,
		TrackingNumber:        s.TrackingNumber,
		OriginLocationID:      s.OriginLocationID,
		DestinationLocationID: s.DestinationLocationID,
		Status:                string(s.Status),
		Carrier:               s.Carrier,
		RecipientName:         s.RecipientName,
		EstimatedDelivery:     s.EstimatedDelivery,
		CreatedAt:             s.CreatedAt,
	}

	// Omit明细关联,避免Save级联覆盖明细表
	if err := getDB(ctx, r.db).Omit("Items").Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新运单失败")
	}

	s.UpdatedAt = model.UpdatedAt
	return nil
}

// List 分页查询运单列表
func (r *shipmentRepository) List(ctx context.Context, params shipment.ListParams) ([]*shipment.Shipment, int64, error) {
	var models []ShipmentModel
	var total int64

	query := getDB(ctx, r.db).Model(&ShipmentModel{})
	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询运单总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(params.PageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询运单列表失败")
	}

	shipments := make([]*shipment.Shipment, len(models))
	for i := range models {
		shipments[i] = toShipmentEntity(&models[i])
	}
	return shipments, total, nil
}

// AddItem 追加运单明细
func (r *shipmentRepository) AddItem(ctx context.Context, item *shipment.Item) error {
	model := &ShipmentItemModel{
		ShipmentID: item.ShipmentID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		Notes:      item.Notes,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建运单明细失败")
	}

	item.ID = model.ID
	return nil
}

// FindItem 查找单条明细
func (r *shipmentRepository) FindItem(ctx context.Context, shipmentID, itemID uint) (*shipment.Item, error) {
	var model ShipmentItemModel
	err := getDB(ctx, r.db).
		Where("id = ? AND shipment_id = ?", itemID, shipmentID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shipment.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询运单明细失败")
	}

	return toItemEntity(&model), nil
}

// UpdateItem 更新明细
func (r *shipmentRepository) UpdateItem(ctx context.Context, item *shipment.Item) error {
	model := &ShipmentItemModel{
		ID:         item.ID,
		ShipmentID: item.ShipmentID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		Notes:      item.Notes,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新运单明细失败")
	}
	return nil
}

// DeleteItem 删除明细
func (r *shipmentRepository) DeleteItem(ctx context.Context, shipmentID, itemID uint) error {
	result := getDB(ctx, r.db).
		Where("id = ? AND shipment_id = ?", itemID, shipmentID).
		Delete(&ShipmentItemModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除运单明细失败")
	}
	if result.RowsAffected == 0 {
		return shipment.ErrItemNotFound
	}
	return nil
}

// ListItems 查询运单的全部明细
func (r *shipmentRepository) ListItems(ctx context.Context, shipmentID uint) ([]*shipment.Item, error) {
	var models []ShipmentItemModel
	err := getDB(ctx, r.db).
		Where("shipment_id = ?", shipmentID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询运单明细失败")
	}

	items := make([]*shipment.Item, len(models))
	for i := range models {
		items[i] = toItemEntity(&models[i])
	}
	return items, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toShipmentEntity GORM模型 → 领域实体
func toShipmentEntity(model *ShipmentModel) *shipment.Shipment {
	s := &shipment.Shipment{
		ID:                    model.ID,
		TrackingNumber:        model.TrackingNumber,
		OriginLocationID:      model.OriginLocationID,
		DestinationLocationID: model.DestinationLocationID,
		Status:                shipment.Status(model.Status),
		Carrier:               model.Carrier,
		RecipientName:         model.RecipientName,
		EstimatedDelivery:     model.EstimatedDelivery,
		CreatedAt:             model.CreatedAt,
		UpdatedAt:             model.UpdatedAt,
	}
	for i := range model.Items {
		s.Items = append(s.Items, *toItemEntity(&model.Items[i]))
	}
	return s
}

// toItemEntity GORM模型 → 领域实体
func toItemEntity(model *ShipmentItemModel) *shipment.Item {
	return &shipment.Item{
		ID:         model.ID,
		ShipmentID: model.ShipmentID,
		ProductID:  model.ProductID,
		Quantity:   model.Quantity,
		Notes:      model.Notes,
	}
}
