package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/shiptrack/internal/domain/tracking"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// locationUpdateRepository 位置记录仓储实现(MySQL)
// 只追加+查询,没有Update/Delete(记录不可变)
type locationUpdateRepository struct {
	db *gorm.DB
}

// NewLocationUpdateRepository 创建位置记录仓储
func NewLocationUpdateRepository(db *gorm.DB) tracking.Repository {
	return &locationUpdateRepository{db: db}
}

// Create 追加一条位置记录
func (r *locationUpdateRepository) Create(ctx context.Context, update *tracking.LocationUpdate) error {
	model := &LocationUpdateModel{
		ShipmentID: update.ShipmentID,
		Latitude:   update.Latitude,
		Longitude:  update.Longitude,
		Speed:      update.Speed,
		Heading:    update.Heading,
		ReportedAt: update.ReportedAt,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存位置记录失败")
	}

	update.ID = model.ID
	update.CreatedAt = model.CreatedAt
	return nil
}

// ListByShipment 查询某运单的轨迹历史(按上报时间升序)
func (r *locationUpdateRepository) ListByShipment(ctx context.Context, shipmentID uint, limit int) ([]*tracking.LocationUpdate, error) {
	var models []LocationUpdateModel

	query := getDB(ctx, r.db).
		Where("shipment_id = ?", shipmentID).
		Order("reported_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询轨迹历史失败")
	}

	updates := make([]*tracking.LocationUpdate, len(models))
	for i := range models {
		updates[i] = toLocationUpdateEntity(&models[i])
	}
	return updates, nil
}

// Latest 查询某运单的最新位置
func (r *locationUpdateRepository) Latest(ctx context.Context, shipmentID uint) (*tracking.LocationUpdate, error) {
	var model LocationUpdateModel
	err := getDB(ctx, r.db).
		Where("shipment_id = ?", shipmentID).
		Order("reported_at DESC").
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 尚无位置上报,不是错误
		}
		return nil, apperrors.Wrap(err, "查询最新位置失败")
	}

	return toLocationUpdateEntity(&model), nil
}

// toLocationUpdateEntity GORM模型 → 领域实体
func toLocationUpdateEntity(model *LocationUpdateModel) *tracking.LocationUpdate {
	return &tracking.LocationUpdate{
		ID:         model.ID,
		ShipmentID: model.ShipmentID,
		Latitude:   model.Latitude,
		Longitude:  model.Longitude,
		Speed:      model.Speed,
		Heading:    model.Heading,
		ReportedAt: model.ReportedAt,
		CreatedAt:  model.CreatedAt,
	}
}
