package shipment

import (
	"context"
	"log"

	"github.com/xiebiao/shiptrack/internal/application"
	"github.com/xiebiao/shiptrack/internal/domain/shipment"
)

// ManageItemsUseCase 运单明细维护用例(增/改/删/查)
// 明细变更伴随库存预留变更,必须在同一事务:
// 预留失败时明细不产生/不修改,不会出现"有明细没预留"
type ManageItemsUseCase struct {
	shipmentSvc shipment.Service
	txManager   application.TxManager
	cache       Cache
}

// NewManageItemsUseCase 创建用例
func NewManageItemsUseCase(shipmentSvc shipment.Service, txManager application.TxManager, cache Cache) *ManageItemsUseCase {
	return &ManageItemsUseCase{shipmentSvc: shipmentSvc, txManager: txManager, cache: cache}
}

// AddItemRequest 追加明细请求DTO
type AddItemRequest struct {
	ProductID uint
	Quantity  int
	Notes     string
}

// AddItem 追加明细(在起运站点预留库存)
func (uc *ManageItemsUseCase) AddItem(ctx context.Context, shipmentID uint, req AddItemRequest) (*ItemResponse, error) {
	var result *shipment.Item
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		item, err := uc.shipmentSvc.AddItem(txCtx, shipmentID, req.ProductID, req.Quantity, req.Notes)
		if err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx, shipmentID)
	resp := toItemResponse(result)
	return &resp, nil
}

// UpdateItemRequest 修改明细请求DTO
type UpdateItemRequest struct {
	Quantity int
	Notes    string
}

// UpdateItem 修改明细数量(按差额调整预留)
func (uc *ManageItemsUseCase) UpdateItem(ctx context.Context, shipmentID, itemID uint, req UpdateItemRequest) (*ItemResponse, error) {
	var result *shipment.Item
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		item, err := uc.shipmentSvc.UpdateItem(txCtx, shipmentID, itemID, req.Quantity, req.Notes)
		if err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx, shipmentID)
	resp := toItemResponse(result)
	return &resp, nil
}

// RemoveItem 删除明细(释放其预留)
func (uc *ManageItemsUseCase) RemoveItem(ctx context.Context, shipmentID, itemID uint) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		return uc.shipmentSvc.RemoveItem(txCtx, shipmentID, itemID)
	})
	if err != nil {
		return err
	}

	uc.invalidateCache(ctx, shipmentID)
	return nil
}

// ListItems 查询运单明细
func (uc *ManageItemsUseCase) ListItems(ctx context.Context, shipmentID uint) ([]ItemResponse, error) {
	items, err := uc.shipmentSvc.ListItems(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	list := make([]ItemResponse, len(items))
	for i, item := range items {
		list[i] = toItemResponse(item)
	}
	return list, nil
}

// invalidateCache 明细变更后失效公开追踪缓存(尽力而为)
func (uc *ManageItemsUseCase) invalidateCache(ctx context.Context, shipmentID uint) {
	if uc.cache == nil {
		return
	}
	s, err := uc.shipmentSvc.GetByID(ctx, shipmentID)
	if err != nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, s.TrackingNumber); err != nil {
		log.Printf("失效运单缓存失败: tracking=%s err=%v", s.TrackingNumber, err)
	}
}
